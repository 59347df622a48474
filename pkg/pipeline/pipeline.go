// Package pipeline runs the load, parse, and index stages over a skill
// corpus. Documents are parsed by a bounded worker pool; parsing one
// document never depends on another. Results are merged into the index
// only after every worker has finished, since cross-skill checks need
// the full set. The built index is immutable.
package pipeline

import (
	"context"
	"runtime"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vibeship/spawner-skills/pkg/index"
	"github.com/vibeship/spawner-skills/pkg/logger"
	"github.com/vibeship/spawner-skills/pkg/parser"
	"github.com/vibeship/spawner-skills/pkg/skill"
	"github.com/vibeship/spawner-skills/pkg/telemetry"
)

// Options configures a corpus build.
type Options struct {
	// Workers bounds the parse pool; 0 means one worker per CPU.
	Workers int
	// Patterns are doublestar include patterns for corpus files.
	Patterns []string
}

// Result is a completed corpus build.
type Result struct {
	Index     *index.Index
	Documents int
	Files     int
}

// Build parses every document under root and indexes the outcome. The
// only hard failure is an unavailable root (or cancellation); per-file
// problems surface as warnings on the index.
func Build(ctx context.Context, root string, opts Options) (*Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var loaderOpts []parser.LoaderOption
	if len(opts.Patterns) > 0 {
		loaderOpts = append(loaderOpts, parser.WithPatterns(opts.Patterns...))
	}
	loader, err := parser.NewLoader(root, loaderOpts...)
	if err != nil {
		return nil, err
	}

	var (
		docs         []parser.Document
		loadWarnings []skill.Warning
	)
	err = telemetry.WithSpan(ctx, "corpus.load", func(ctx context.Context) error {
		var loadErr error
		docs, loadWarnings, loadErr = loader.Load(ctx)
		return loadErr
	}, attribute.String("corpus.root", root))
	if err != nil {
		return nil, err
	}

	// One result slot per document keeps the merge order independent of
	// worker scheduling: a concurrent build and a sequential build
	// produce identical indices.
	parsed := make([]*skill.Skill, len(docs))
	docWarnings := make([][]skill.Warning, len(docs))

	err = telemetry.WithSpan(ctx, "corpus.parse", func(ctx context.Context) error {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					parsed[i], docWarnings[i] = parser.ParseDocument(ctx, docs[i])
				}
			}()
		}
		for i := range docs {
			select {
			case jobs <- i:
			case <-ctx.Done():
				close(jobs)
				wg.Wait()
				return ctx.Err()
			}
		}
		close(jobs)
		wg.Wait()
		return nil
	}, attribute.Int("corpus.documents", len(docs)), attribute.Int("corpus.workers", workers))
	if err != nil {
		return nil, err
	}

	warnings := loadWarnings
	skills := make([]*skill.Skill, 0, len(parsed))
	for i, s := range parsed {
		if s != nil {
			skills = append(skills, s)
		}
		warnings = append(warnings, docWarnings[i]...)
	}

	var ix *index.Index
	_ = telemetry.WithSpan(ctx, "corpus.index", func(context.Context) error {
		ix = index.Build(skills, warnings)
		return nil
	})

	files := map[string]struct{}{}
	for _, d := range docs {
		files[d.Path] = struct{}{}
	}

	logger.G(ctx).WithField("files", len(files)).
		WithField("documents", len(docs)).
		WithField("skills", ix.Len()).
		WithField("warnings", len(warnings)).
		Debug("corpus build complete")

	return &Result{Index: ix, Documents: len(docs), Files: len(files)}, nil
}
