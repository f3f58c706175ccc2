package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lyonbot/ralph-cli/internal/config"
	"github.com/lyonbot/ralph-cli/internal/output"
	"github.com/lyonbot/ralph-cli/internal/upgrade"
)

var checkOnly bool

// versionInfo is the machine-readable shape of `ralph version`.
type versionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	Latest  string `json:"latest,omitempty" yaml:"latest,omitempty"`
}

func (v versionInfo) String() string {
	return fmt.Sprintf("ralph %s", v.Version)
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information and check for updates",
		Long: `Display the current ralph version and optionally check whether a newer
release has been published.

Examples:
  ralph version           # Show current version
  ralph version --check   # Check if an update is available`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Check for updates without installing")

	return cmd
}

func runVersion() error {
	info := versionInfo{
		Version: ralphVersion,
		Commit:  ralphCommit,
		Date:    ralphDate,
	}

	if checkOnly {
		up, err := newUpgrader()
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}
		outcome, err := up.Check()
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}
		info.Latest = outcome.Latest.String()

		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		if format != output.FormatText {
			return output.NewWriter(os.Stdout, format).Write(info)
		}

		fmt.Printf("Current version: %s\n", outcome.Current)
		if !outcome.UpdateAvailable() {
			fmt.Println("Already running latest version")
			return nil
		}
		fmt.Printf("Latest version: %s available\n", outcome.Latest)
		fmt.Println()
		fmt.Println("Run 'ralph upgrade' to install")
		return nil
	}

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	return output.NewWriter(os.Stdout, format).Write(info)
}

// newUpgrader builds the upgrade engine from config file, environment, and
// build metadata.
func newUpgrader() (*upgrade.Upgrader, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = cfg.GitHub.Token
	}

	return upgrade.NewUpgrader(upgrade.Options{
		CurrentVersion: ralphVersion,
		Owner:          cfg.GitHub.Owner,
		Repo:           cfg.GitHub.Repo,
		Token:          token,
	})
}
