package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vibeship/spawner-skills/pkg/presenter"
	"github.com/vibeship/spawner-skills/pkg/store"
)

var installCmd = &cobra.Command{
	Use:   "install [corpus-dir]",
	Short: "Parse the corpus and persist it to the skills database",
	Long: `Parses the corpus and writes the resulting skill records into the
local SQLite skills database as a new build snapshot. The spawner
orchestrator reads the latest build from this database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		root := resolveRoot(args)

		result, err := buildCorpus(ctx, root)
		if err != nil {
			return err
		}

		dbPath := viper.GetString("db_path")
		if dbPath == "" {
			dbPath, err = store.DefaultDBPath()
			if err != nil {
				return err
			}
		}

		st, err := store.NewStore(ctx, dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		buildID, err := st.SaveBuild(ctx, root, result.Index)
		if err != nil {
			return err
		}

		keep, _ := cmd.Flags().GetInt("keep-builds")
		if err := st.PruneBuilds(ctx, keep); err != nil {
			return err
		}

		presenter.Success(fmt.Sprintf("installed %d skills (build %s) to %s", result.Index.Len(), buildID, dbPath))
		presenter.Stats(corpusStats(result))
		return nil
	},
}

func init() {
	installCmd.Flags().String("db", "", "Path to the skills database (default ~/.spawner-skills/skills.db)")
	installCmd.Flags().Int("keep-builds", 5, "Number of build snapshots to retain")
	viper.BindPFlag("db_path", installCmd.Flags().Lookup("db"))
}
