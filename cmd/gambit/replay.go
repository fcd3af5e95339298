package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/gambit/internal/cli"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Replay a game script and print the board",
	Long: `Reads one click or move per line ("e2", "e2e4", "e2-e4") from the file or stdin
and prints the board after every render. Lines starting with # are comments.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)
		var in io.Reader = cmd.InOrStdin()
		if len(args) > 0 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()
			in = f
		}
		return withSignals(cmd.Context(), func(ctx context.Context) error {
			return cli.RunReplay(ctx, cfg, in, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
