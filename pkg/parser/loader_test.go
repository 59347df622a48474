package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibeship/spawner-skills/pkg/skill"
)

func TestLoaderSplitsSeparatorDocuments(t *testing.T) {
	tmpDir := t.TempDir()
	content := `# First Skill

## Identity
First.

<|RELATED_DOC_SEP-7f3a|>

# Second Skill

## Identity
Second.
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "combined.md"), []byte(content), 0o644))

	loader, err := NewLoader(tmpDir)
	require.NoError(t, err)

	docs, warnings, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, docs, 2)

	assert.Equal(t, 0, docs[0].DocIndex)
	assert.Equal(t, 1, docs[1].DocIndex)
	assert.Contains(t, docs[0].Content, "# First Skill")
	assert.NotContains(t, docs[0].Content, "Second")
	assert.Contains(t, docs[1].Content, "# Second Skill")
	assert.NotContains(t, docs[1].Content, "RELATED_DOC_SEP")
}

func TestLoaderSkipsUnreadableFiles(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "good.md"), []byte("# Good\n"), 0o644))
	// A dangling symlink matches *.md but cannot be read.
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "missing-target"), filepath.Join(tmpDir, "bad.md")))

	loader, err := NewLoader(tmpDir)
	require.NoError(t, err)

	docs, warnings, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Content, "# Good")

	require.Len(t, warnings, 1)
	assert.Equal(t, skill.WarnIOError, warnings[0].Kind)
	assert.Contains(t, warnings[0].Path, "bad.md")
}

func TestLoaderMissingRootFails(t *testing.T) {
	loader, err := NewLoader(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)

	_, _, err = loader.Load(context.Background())
	assert.Error(t, err)
}

func TestLoaderIsRestartable(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "skill.md")
	require.NoError(t, os.WriteFile(path, []byte("# Before\n"), 0o644))

	loader, err := NewLoader(tmpDir)
	require.NoError(t, err)

	docs, _, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Content, "Before")

	require.NoError(t, os.WriteFile(path, []byte("# After\n"), 0o644))
	docs, _, err = loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Content, "After")
}

func TestLoaderPatterns(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "marketing"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "marketing", "seo.md"), []byte("# SEO\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "README.txt"), []byte("not markdown"), 0o644))

	loader, err := NewLoader(tmpDir, WithPatterns("marketing/*.md"))
	require.NoError(t, err)

	docs, warnings, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, docs, 1)
	assert.Contains(t, docs[0].Path, "seo.md")
}

func TestWithPatternsRejectsInvalid(t *testing.T) {
	_, err := NewLoader(t.TempDir(), WithPatterns("[invalid"))
	assert.Error(t, err)
}
