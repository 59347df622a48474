package main

import (
	"context"

	"github.com/spf13/viper"

	"github.com/vibeship/spawner-skills/pkg/pipeline"
	"github.com/vibeship/spawner-skills/pkg/presenter"
	"github.com/vibeship/spawner-skills/pkg/skill"
)

// resolveRoot picks the corpus root: positional argument, then config,
// then the current directory.
func resolveRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if root := viper.GetString("root"); root != "" {
		return root
	}
	return "."
}

// buildCorpus runs the full pipeline with the configured worker count and
// include patterns.
func buildCorpus(ctx context.Context, root string) (*pipeline.Result, error) {
	return pipeline.Build(ctx, root, pipeline.Options{
		Workers:  viper.GetInt("workers"),
		Patterns: viper.GetStringSlice("patterns"),
	})
}

// corpusStats summarizes a build result for the presenter.
func corpusStats(result *pipeline.Result) presenter.CorpusStats {
	stats := presenter.CorpusStats{
		Files:     result.Files,
		Documents: result.Documents,
		Skills:    result.Index.Len(),
		Warnings:  len(result.Index.Warnings()),
	}
	for _, sk := range result.Index.Skills() {
		stats.SharpEdges += len(sk.SharpEdges)
		stats.Handoffs += len(sk.Handoffs)
	}
	return stats
}

// snapshot is the serialized form of a built index, consumed by the
// external spawner CLI.
type snapshot struct {
	Skills   []*skill.Skill  `json:"skills"`
	Warnings []skill.Warning `json:"warnings,omitempty"`
}
