package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vibeship/spawner-skills/pkg/skill"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	severityStyle = map[skill.Severity]lipgloss.Style{
		skill.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		skill.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		skill.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		skill.SeverityCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		skill.SeverityUnknown:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

var showCmd = &cobra.Command{
	Use:   "show <skill-name> [corpus-dir]",
	Short: "Show one skill in detail",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := buildCorpus(cmd.Context(), resolveRoot(args[1:]))
		if err != nil {
			return err
		}

		sk, ok := result.Index.Lookup(args[0])
		if !ok {
			return errors.Errorf("skill %q not found in corpus", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(sk.Name))
		meta := []string{}
		if sk.Category != "" {
			meta = append(meta, "category: "+sk.Category)
		}
		if sk.Version != "" {
			meta = append(meta, "version: "+sk.Version)
		}
		if len(sk.Tags) > 0 {
			meta = append(meta, "tags: "+strings.Join(sk.Tags, ", "))
		}
		if len(meta) > 0 {
			fmt.Fprintln(out, mutedStyle.Render(strings.Join(meta, " | ")))
		}
		if sk.Summary != "" {
			fmt.Fprintf(out, "\n%s\n", sk.Summary)
		}

		if len(sk.Expertise) > 0 {
			fmt.Fprintf(out, "\n%s\n", headingStyle.Render("Expertise"))
			for _, area := range sk.Expertise {
				fmt.Fprintf(out, "  - %s\n", area)
			}
		}

		if len(sk.Patterns) > 0 {
			fmt.Fprintf(out, "\n%s\n", headingStyle.Render("Patterns"))
			for _, p := range sk.Patterns {
				fmt.Fprintf(out, "  %s", p.Name)
				if p.When != "" {
					fmt.Fprintf(out, " %s", mutedStyle.Render("(when: "+p.When+")"))
				}
				fmt.Fprintln(out)
			}
		}

		if len(sk.AntiPatterns) > 0 {
			fmt.Fprintf(out, "\n%s\n", headingStyle.Render("Anti-Patterns"))
			for _, a := range sk.AntiPatterns {
				fmt.Fprintf(out, "  %s\n", a.Name)
			}
		}

		if len(sk.SharpEdges) > 0 {
			fmt.Fprintf(out, "\n%s\n", headingStyle.Render("Sharp Edges"))
			for _, edge := range sk.SharpEdges {
				style := severityStyle[edge.Severity]
				fmt.Fprintf(out, "  %s %s\n", style.Render("["+string(edge.Severity)+"]"), edge.Title)
			}
		}

		if len(sk.Handoffs) > 0 {
			fmt.Fprintf(out, "\n%s\n", headingStyle.Render("Handoffs"))
			for _, rule := range sk.Handoffs {
				trigger, delegate := rule.Trigger, rule.DelegateTo
				if trigger == "" {
					trigger = mutedStyle.Render("(empty)")
				}
				if delegate == "" {
					delegate = mutedStyle.Render("(empty)")
				}
				fmt.Fprintf(out, "  %s -> %s\n", trigger, delegate)
			}
		}

		return nil
	},
}
