package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zotplug/zotplug/internal/branding"
	"github.com/zotplug/zotplug/internal/updater"
)

var (
	versionShort bool
	versionJSON  bool
	versionCheck bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		if versionCheck {
			return checkLatest(cmd)
		}
		return nil
	},
}

func checkLatest(cmd *cobra.Command) error {
	status, err := updater.New(buildVersion).Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}

	out := cmd.OutOrStdout()
	if !status.UpdateAvailable {
		fmt.Fprintln(out, "You are running the latest release.")
		return nil
	}
	fmt.Fprintf(out, "A newer release is available: %s\n", status.Latest)
	if status.URL != "" {
		fmt.Fprintf(out, "  %s\n", status.URL)
	}
	return nil
}
