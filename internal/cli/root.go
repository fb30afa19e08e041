package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/zotplug/zotplug/internal/branding"
	"github.com/zotplug/zotplug/internal/config"
	"github.com/zotplug/zotplug/internal/logging"
	"github.com/zotplug/zotplug/internal/scaffold"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbosity    int
	templatesDir string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds Zotero plugins: it copies a template variant, substitutes your
plugin's name, id and namespace throughout, and writes package.json and manifest.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbosity, cmd.ErrOrStderr())
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().StringVar(&templatesDir, "templates", "", "Template root directory (default: built-in templates)")
}

// templateRoot returns the on-disk template root when --templates is set,
// otherwise the templates embedded in the binary.
func templateRoot() afero.Fs {
	if templatesDir != "" {
		return scaffold.DirTemplates(templatesDir)
	}
	return scaffold.Templates()
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}
