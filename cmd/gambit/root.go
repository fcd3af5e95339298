package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/gambit/internal/cli"
	"github.com/aretw0/gambit/pkg/runner"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gambit",
	Short: "gambit is a chess board driven by a hierarchical state chart",
	Long: `gambit runs a two-player chess game whose behavior is a declarative state chart.
Play it in the terminal, replay scripted games, serve sessions over HTTP,
or inspect the chart itself.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("chart", "", "YAML chart to run instead of the built-in chess chart (env "+cli.EnvChart+")")
	flags.String("redis", "", "Redis address for sessions; in-memory when empty (env "+cli.EnvRedisAddr+")")
	flags.String("session", "", "Persist the game under this session ID")
	flags.String("store-dir", "", "Keep sessions as JSON files in this directory (env "+cli.EnvStoreDir+")")
	flags.Bool("debug", false, "Enable debug logs on stderr")
	flags.Bool("log-json", false, "Write debug logs as JSON")
}

// configFrom reads the persistent flags and resolves the environment fallbacks.
func configFrom(cmd *cobra.Command) cli.Config {
	flags := cmd.Flags()
	var cfg cli.Config
	cfg.ChartPath, _ = flags.GetString("chart")
	cfg.RedisAddr, _ = flags.GetString("redis")
	cfg.SessionID, _ = flags.GetString("session")
	cfg.StoreDir, _ = flags.GetString("store-dir")
	cfg.Debug, _ = flags.GetBool("debug")
	cfg.JSONLogs, _ = flags.GetBool("log-json")
	return cfg.Resolve()
}

// withSignals runs fn with a context cancelled on SIGINT or SIGTERM.
func withSignals(parent context.Context, fn func(ctx context.Context) error) error {
	signals := runner.NewSignalManager(parent)
	defer signals.Stop()
	return fn(signals.Context())
}
