package main

import (
	"context"

	"github.com/aretw0/gambit/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP session server",
	Long:  `Serves chess sessions over a JSON API with SSE updates and Prometheus metrics on /metrics.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		return withSignals(cmd.Context(), func(ctx context.Context) error {
			return cli.RunServe(ctx, cfg, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (env "+cli.EnvAddr+", default "+cli.DefaultAddr+")")
}
