package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vibeship/spawner-skills/pkg/skill"
)

var listCmd = &cobra.Command{
	Use:   "list [corpus-dir]",
	Short: "List the skills in a corpus",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := buildCorpus(cmd.Context(), resolveRoot(args))
		if err != nil {
			return err
		}

		skills := result.Index.Skills()
		if tag, _ := cmd.Flags().GetString("tag"); tag != "" {
			skills = result.Index.ByTag(tag)
		} else if category, _ := cmd.Flags().GetString("category"); category != "" {
			skills = result.Index.ByCategory(category)
		}

		if pattern, _ := cmd.Flags().GetString("filter"); pattern != "" {
			g, err := glob.Compile(strings.ToLower(pattern))
			if err != nil {
				return errors.Wrapf(err, "invalid filter pattern %q", pattern)
			}
			var filtered []*skill.Skill
			for _, sk := range skills {
				if g.Match(strings.ToLower(sk.Name)) {
					filtered = append(filtered, sk)
				}
			}
			skills = filtered
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCATEGORY\tVERSION\tTAGS\tEDGES\tHANDOFFS")
		for _, sk := range skills {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
				sk.Name, sk.Category, sk.Version,
				strings.Join(sk.Tags, ","),
				len(sk.SharpEdges), len(sk.Handoffs))
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().String("filter", "", "Glob filter on skill names (e.g. 'market*')")
	listCmd.Flags().String("tag", "", "Only skills carrying this tag")
	listCmd.Flags().String("category", "", "Only skills in this category")
}
