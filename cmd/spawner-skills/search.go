package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vibeship/spawner-skills/pkg/presenter"
)

var searchCmd = &cobra.Command{
	Use:   "search <text> [corpus-dir]",
	Short: "Find handoff rules whose trigger matches the given text",
	Long: `Matches the given text against every handoff trigger pattern in the
corpus. Trigger cells are pipe-delimited alternations (api|endpoint|rest)
and are evaluated as case-insensitive regular expressions.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := buildCorpus(cmd.Context(), resolveRoot(args[1:]))
		if err != nil {
			return err
		}

		matches := result.Index.FindByTrigger(args[0])
		if len(matches) == 0 {
			presenter.Info("no handoff rules match " + fmt.Sprintf("%q", args[0]))
			return nil
		}

		out := cmd.OutOrStdout()
		for _, m := range matches {
			fmt.Fprintf(out, "%s -> %s", m.Skill.Name, m.Rule.DelegateTo)
			if m.Rule.Context != "" {
				fmt.Fprintf(out, "  (%s)", m.Rule.Context)
			}
			fmt.Fprintf(out, "  [trigger: %s]\n", m.Rule.Trigger)
		}
		return nil
	},
}
