package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyonbot/ralph-cli/internal/upgrade"
)

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade ralph to the latest released version",
		Long: `Download the latest release, verify its checksum, and replace the
current executable in place. The running binary is backed up during the
swap and restored if installation fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpgrade(cmd)
		},
	}
}

func runUpgrade(cmd *cobra.Command) error {
	up, err := newUpgrader()
	if err != nil {
		return err
	}

	outcome, err := up.Run()
	if err != nil {
		var permErr *upgrade.PermissionError
		if errors.As(err, &permErr) {
			fmt.Fprintln(cmd.ErrOrStderr(), upgrade.PermissionSuggestions(permErr.Path))
		}
		return err
	}

	if outcome.Upgraded {
		fmt.Printf("Upgraded ralph v%s -> v%s\n", outcome.Current, outcome.Latest)
	} else {
		fmt.Printf("ralph v%s is already the latest version\n", outcome.Current)
	}
	return nil
}
