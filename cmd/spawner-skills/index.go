package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vibeship/spawner-skills/pkg/presenter"
)

var indexCmd = &cobra.Command{
	Use:   "index [corpus-dir]",
	Short: "Build the skill index and emit it as JSON or YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := resolveRoot(args)
		result, err := buildCorpus(cmd.Context(), root)
		if err != nil {
			return err
		}

		snap := snapshot{
			Skills:   result.Index.Skills(),
			Warnings: result.Index.Warnings(),
		}

		format, _ := cmd.Flags().GetString("format")
		var encoded []byte
		switch format {
		case "json":
			encoded, err = json.MarshalIndent(snap, "", "  ")
		case "yaml":
			encoded, err = yaml.Marshal(snap)
		default:
			return errors.Errorf("unsupported format %q (json or yaml)", format)
		}
		if err != nil {
			return errors.Wrap(err, "failed to encode index")
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" || output == "-" {
			// Stats would corrupt piped output; stdout carries only
			// the encoded index here.
			cmd.OutOrStdout().Write(encoded)
			cmd.OutOrStdout().Write([]byte("\n"))
			return nil
		}

		if err := os.WriteFile(output, append(encoded, '\n'), 0o644); err != nil {
			return errors.Wrap(err, "failed to write index file")
		}
		presenter.Success("index written to " + output)
		presenter.Stats(corpusStats(result))
		return nil
	},
}

func init() {
	indexCmd.Flags().StringP("output", "o", "", "Write the index to a file instead of stdout")
	indexCmd.Flags().String("format", "json", "Output format (json or yaml)")
}
