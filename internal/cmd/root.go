// Package cmd wires the ralph CLI: subcommand routing, flag parsing, and
// the mapping from upgrade results to exit codes.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Build metadata, injected by main via ldflags.
	ralphVersion = "dev"
	ralphCommit  = "none"
	ralphDate    = "unknown"

	// Global flags
	outputFormat string
)

func Execute(version, commit, date string) error {
	ralphVersion = version
	ralphCommit = commit
	ralphDate = date

	rootCmd := &cobra.Command{
		Use:          "ralph",
		Short:        "A dispatcher for AI provider agents",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation: banner plus a pointer at the help.
			fmt.Printf("ralph %s - A dispatcher for AI provider agents\n", ralphVersion)
			fmt.Println()
			fmt.Println("Use 'ralph --help' for more information.")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newUpgradeCmd())

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd.Execute()
}
