package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoot(t *testing.T) {
	assert.Equal(t, "/corpus", resolveRoot([]string{"/corpus"}))

	viper.Set("root", "/from-config")
	defer viper.Set("root", "")
	assert.Equal(t, "/from-config", resolveRoot(nil))

	viper.Set("root", "")
	assert.Equal(t, ".", resolveRoot(nil))
}

func TestCorpusStats(t *testing.T) {
	tmpDir := t.TempDir()
	content := `# Sample Skill

**Category:** marketing | **Version:** 1.0.0

## Identity
Test identity.

## Sharp Edges

### [HIGH] Something breaks
**Situation:** It breaks.
**Solution:** Fix it.

## Collaboration

### When to Hand Off

| Trigger | Delegate To | Context |
|---------|-------------|---------|
| legal | Legal Counsel | contracts |
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "sample.md"), []byte(content), 0o644))

	result, err := buildCorpus(context.Background(), tmpDir)
	require.NoError(t, err)

	stats := corpusStats(result)
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, 1, stats.Skills)
	assert.Equal(t, 1, stats.SharpEdges)
	assert.Equal(t, 1, stats.Handoffs)
}

func TestRelevantEvent(t *testing.T) {
	assert.True(t, relevantEvent(fsnotify.Event{Name: "a.md", Op: fsnotify.Write}))
	assert.True(t, relevantEvent(fsnotify.Event{Name: "newdir", Op: fsnotify.Create}))
	assert.False(t, relevantEvent(fsnotify.Event{Name: "a.md", Op: fsnotify.Chmod}))
	assert.False(t, relevantEvent(fsnotify.Event{Name: "a.txt", Op: fsnotify.Write}))
}
