package main

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vibeship/spawner-skills/pkg/skill"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the skill record",
	Long: `Prints the JSON schema of the serialized skill record, so downstream
consumers of 'spawner-skills index' output can validate what they read.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := jsonschema.Reflector{DoNotReference: false}
		schema := reflector.Reflect(&skill.Skill{})

		encoded, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode schema")
		}
		cmd.OutOrStdout().Write(encoded)
		cmd.OutOrStdout().Write([]byte("\n"))
		return nil
	},
}
