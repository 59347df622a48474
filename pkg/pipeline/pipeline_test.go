package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, n int) string {
	t.Helper()
	tmpDir := t.TempDir()
	for i := 0; i < n; i++ {
		content := fmt.Sprintf(`# Skill %02d

> Summary for skill %02d.

**Category:** marketing | **Version:** 1.0.0

**Tags:** tag%d

## Identity
Identity of skill %02d.

## Sharp Edges

### [HIGH] Edge one
**Situation:** Something goes wrong.
**Solution:** Fix it.

## Collaboration

### When to Hand Off

| Trigger | Delegate To | Context |
|---------|-------------|---------|
| keyword%d | Skill %02d | routine |
`, i, i, i%3, i, i, (i+1)%n)
		path := filepath.Join(tmpDir, fmt.Sprintf("skill-%02d.md", i))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return tmpDir
}

func TestBuildIndexesCorpus(t *testing.T) {
	root := writeCorpus(t, 4)

	result, err := Build(context.Background(), root, Options{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Files)
	assert.Equal(t, 4, result.Documents)
	assert.Equal(t, 4, result.Index.Len())
	assert.Equal(t, "Skill 00", result.Index.Skills()[0].Name)
}

func TestConcurrentBuildMatchesSequential(t *testing.T) {
	root := writeCorpus(t, 12)

	sequential, err := Build(context.Background(), root, Options{Workers: 1})
	require.NoError(t, err)
	concurrent, err := Build(context.Background(), root, Options{Workers: 8})
	require.NoError(t, err)

	seqJSON, err := json.Marshal(sequential.Index.Skills())
	require.NoError(t, err)
	conJSON, err := json.Marshal(concurrent.Index.Skills())
	require.NoError(t, err)
	assert.JSONEq(t, string(seqJSON), string(conJSON))

	assert.Equal(t, sequential.Index.Warnings(), concurrent.Index.Warnings())
}

func TestBuildMissingRootFails(t *testing.T) {
	_, err := Build(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)
}

func TestBuildCanceledContext(t *testing.T) {
	root := writeCorpus(t, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, root, Options{})
	assert.Error(t, err)
}
