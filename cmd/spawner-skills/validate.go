package main

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vibeship/spawner-skills/pkg/presenter"
	"github.com/vibeship/spawner-skills/pkg/skill"
)

var validateCmd = &cobra.Command{
	Use:   "validate [corpus-dir]",
	Short: "Run data-quality checks over a corpus",
	Long: `Parses the corpus and reports every diagnostic: unreadable files,
malformed sections, unrecognized severity tokens, incomplete handoff rows,
and handoff targets that name no skill in the corpus.

Dangling and incomplete handoffs are advisory; skill sets may be partial.
The exit code is non-zero only when files could not be read or parsed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := buildCorpus(cmd.Context(), resolveRoot(args))
		if err != nil {
			return err
		}

		warnings := append([]skill.Warning{}, result.Index.Warnings()...)
		warnings = append(warnings, result.Index.Validate()...)

		var hardFailures *multierror.Error
		for _, w := range warnings {
			presenter.Warning(w.String())
			if w.Kind == skill.WarnIOError {
				hardFailures = multierror.Append(hardFailures, errors.New(w.String()))
			}
		}

		stats := corpusStats(result)
		stats.Warnings = len(warnings)
		presenter.Stats(stats)

		if err := hardFailures.ErrorOrNil(); err != nil {
			return errors.Wrap(err, "corpus has unreadable files")
		}
		if len(warnings) == 0 {
			presenter.Success("corpus is clean")
		}
		return nil
	},
}
