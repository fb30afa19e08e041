package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/zotplug/zotplug/internal/config"
	"github.com/zotplug/zotplug/internal/generator"
	"github.com/zotplug/zotplug/internal/logging"
	"github.com/zotplug/zotplug/internal/manifest"
	"github.com/zotplug/zotplug/internal/prompt"
	"github.com/zotplug/zotplug/internal/runtime"
	"github.com/zotplug/zotplug/internal/scaffold"
)

var (
	createVariant     string
	createAnswers     string
	createYes         bool
	createForce       bool
	createSkipInstall bool
	createSkipLint    bool
	createRuntime     string
)

func init() {
	createCmd.Flags().StringVar(&createVariant, "variant", "", "Template variant name, e.g. src-2.0")
	createCmd.Flags().StringVar(&createAnswers, "answers", "", "YAML file with answers to the questions")
	createCmd.Flags().BoolVarP(&createYes, "yes", "y", false, "Accept defaults without prompting")
	createCmd.Flags().BoolVar(&createForce, "force", false, "Overwrite an existing project")
	createCmd.Flags().BoolVar(&createSkipInstall, "skip-install", false, "Do not run npm install")
	createCmd.Flags().BoolVar(&createSkipLint, "skip-lint", false, "Do not run the lint command")
	createCmd.Flags().StringVar(&createRuntime, "runtime", "", "Post-step runtime: npm or none (default from config)")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [dir]",
	Short: "Scaffold a new Zotero plugin",
	Long: `Scaffold a new Zotero plugin in dir (default: the current directory).

The plugin sources land in dir/client; package.json is written to dir.

Examples:
  zotplug create zotero-example
  zotplug create --yes --variant src-2.0 zotero-example
  zotplug create --answers answers.yaml --skip-install .`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	runtimeName := createRuntime
	if runtimeName == "" {
		runtimeName = config.Get(config.KeyRuntime)
	}
	if !runtime.Supported(runtimeName) {
		return fmt.Errorf("unknown runtime %q: use %q or %q", runtimeName, runtime.RuntimeNPM, runtime.RuntimeNone)
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", abs, err)
	}

	templates := templateRoot()
	variants, err := scaffold.ListVariants(templates)
	if err != nil {
		return err
	}

	preset := prompt.Answers{}
	if createAnswers != "" {
		preset, err = prompt.LoadAnswers(afero.NewOsFs(), createAnswers)
		if err != nil {
			return err
		}
	}
	preset = preset.Merge(prompt.Answers{Variant: createVariant})

	collector := &prompt.Collector{
		Env:      prompt.SystemEnvironment{Dir: abs},
		Variants: variants,
		Defaults: prompt.Answers{
			UserName:  config.Get(config.KeyUserName),
			UserEmail: config.Get(config.KeyUserEmail),
			RepoOwner: config.Get(config.KeyRepoOwner),
		},
		Preset:      preset,
		Interactive: !createYes,
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
		Logger:      logging.Get("prompt"),
	}
	answers, err := collector.Collect(cmd.Context())
	if err != nil {
		return err
	}

	summary, err := generator.Generate(cmd.Context(), generator.Options{
		Templates: templates,
		Dest:      afero.NewBasePathFs(afero.NewOsFs(), abs),
		Dir:       abs,
		Values:    answers.Values,
		Variant:   answers.Answers.Variant,
		Manifest: manifest.Options{
			Version:      config.Get(config.KeyVersion),
			Dependencies: config.Dependencies(),
		},
		Force: createForce,
		Runtime: runtime.Dispatch(runtimeName, runtime.Options{
			LintCommand: config.Get(config.KeyLint),
			Stdout:      cmd.ErrOrStderr(),
			Stderr:      cmd.ErrOrStderr(),
		}),
		SkipInstall: createSkipInstall,
		SkipLint:    createSkipLint,
		Logger:      logging.Get("generator"),
	})
	if err != nil {
		return err
	}

	warnings := append(answers.Warnings, summary.Warnings...)
	printCreateResult(cmd.OutOrStdout(), dir, answers.Answers, summary, warnings)
	return nil
}

func printCreateResult(w io.Writer, dir string, a prompt.Answers, summary *generator.Summary, warnings []string) {
	fmt.Fprintf(w, "\nCreated %s (%s) in %s/\n", a.PluginName, summary.Variant.DisplayName(), dir)
	for _, f := range summary.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}

	if len(warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, msg := range warnings {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}

	fmt.Fprintln(w, "\nNext steps:")
	step := 1
	if dir != "." {
		fmt.Fprintf(w, "  %d. cd %s\n", step, dir)
		step++
	}
	if createSkipInstall {
		fmt.Fprintf(w, "  %d. npm install\n", step)
		step++
	}
	fmt.Fprintf(w, "  %d. npm run build\n", step)
	fmt.Fprintln(w, "\nAlso look at the `zotero-plugin` package that is now installed for your plugin.")
}
