package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/gambit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gambit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gambit version %s\n", strings.TrimSpace(gambit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
