package main

import (
	"github.com/spf13/cobra"

	"github.com/vibeship/spawner-skills/pkg/presenter"
	"github.com/vibeship/spawner-skills/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [corpus-dir]",
	Short: "Serve the skill index over HTTP",
	Long: `Builds the index once and serves it read-only over HTTP:

  GET /api/skills            list skills (?tag= or ?category= to filter)
  GET /api/skills/{name}     one skill in full
  GET /api/handoffs?trigger= handoff rules matching a trigger text
  GET /api/graph             the collaboration graph
  GET /api/warnings          parse and validation diagnostics
  GET /healthz               liveness`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		result, err := buildCorpus(ctx, resolveRoot(args))
		if err != nil {
			return err
		}
		presenter.Stats(corpusStats(result))

		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetInt("port")
		srv, err := server.NewServer(result.Index, &server.Config{Host: host, Port: port})
		if err != nil {
			return err
		}
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().String("host", "127.0.0.1", "Host to bind")
	serveCmd.Flags().Int("port", 8391, "Port to bind")
}
