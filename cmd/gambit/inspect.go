package main

import (
	"github.com/aretw0/gambit/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the chart as a Mermaid state diagram",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Graph(configFrom(cmd), cmd.OutOrStdout())
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe the chart's states, events and transitions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Describe(configFrom(cmd), cmd.OutOrStdout())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [chart.yaml]",
	Short: "Check a chart for consistency",
	Long:  `Loads the chart, resolves its guards and actions and reports every structural issue.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFrom(cmd)
		if len(args) > 0 {
			cfg.ChartPath = args[0]
		}
		return cli.Validate(cfg, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd, describeCmd, validateCmd)
}
