// Command spawner-skills parses a directory tree of spawner skill
// documents into a structured, searchable index, and serves or persists
// the result for downstream consumers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vibeship/spawner-skills/pkg/logger"
	"github.com/vibeship/spawner-skills/pkg/presenter"
	"github.com/vibeship/spawner-skills/pkg/telemetry"
	"github.com/vibeship/spawner-skills/pkg/version"
)

func init() {
	viper.SetEnvPrefix("SPAWNER_SKILLS")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.spawner-skills")
	viper.AddConfigPath(".")

	// Missing config files are fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "spawner-skills",
	Short: "Parse and index spawner skill documents",
	Long: `spawner-skills ingests a directory tree of markdown skill documents
(identity, patterns, anti-patterns, sharp edges, collaboration rules) and
builds a searchable index of structured skill records.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text or json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().Int("workers", 0, "Parse worker count (0 = one per CPU)")
	rootCmd.PersistentFlags().StringArray("pattern", nil, "Include pattern for corpus files (default **/*.md)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("patterns", rootCmd.PersistentFlags().Lookup("pattern"))

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.InitTracer(ctx, telemetry.Config{
		Enabled:        viper.GetBool("tracing.enabled"),
		ServiceVersion: version.Get().Version,
		SamplerType:    viper.GetString("tracing.sampler"),
		SamplerRatio:   viper.GetFloat64("tracing.ratio"),
	})
	if err != nil {
		presenter.Error(err, "failed to initialize tracing")
	} else {
		defer shutdown(context.Background())
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		presenter.Error(err, "")
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}
}
