package main

import (
	"context"

	"github.com/aretw0/gambit/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on an interactive board",
	Long:  `Opens a mouse-driven board in the terminal. Click a piece, then its destination. Press q or Esc to leave.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)
		return withSignals(cmd.Context(), func(ctx context.Context) error {
			return cli.RunPlay(ctx, cfg, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
