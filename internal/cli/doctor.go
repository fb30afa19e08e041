package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zotplug/zotplug/internal/config"
	"github.com/zotplug/zotplug/internal/manifest"
	"github.com/zotplug/zotplug/internal/scaffold"
)

var (
	checkRuntime   bool
	checkTemplates bool
	checkManifest  string
)

func init() {
	doctorCmd.Flags().BoolVar(&checkRuntime, "check-runtime", false, "Verify git, Node.js and npm are available")
	doctorCmd.Flags().BoolVar(&checkTemplates, "check-templates", false, "Verify every template variant loads")
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a package.json or manifest.json at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment used for generating plugins",
	Long:  `Run diagnostic checks on the tools, templates and configuration create relies on.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		anyFlag := checkRuntime || checkTemplates || checkManifest != ""

		if !anyFlag || checkRuntime {
			runRuntimeCheck(out)
		}
		if !anyFlag || checkTemplates {
			if err := runTemplateCheck(out); err != nil {
				return err
			}
		}
		if !anyFlag {
			runConfigCheck(out)
		}
		if checkManifest != "" {
			return runManifestCheck(out, checkManifest)
		}
		return nil
	},
}

func runRuntimeCheck(w io.Writer) {
	fmt.Fprintln(w, "Runtime check:")
	checkBinary(w, "git")
	checkBinary(w, "node")
	checkBinary(w, "npm")
}

func checkBinary(w io.Writer, name string) {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
}

func runTemplateCheck(w io.Writer) error {
	fmt.Fprintln(w, "Template check:")
	variants, err := scaffold.ListVariants(templateRoot())
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("template check failed: %w", err)
	}
	if len(variants) == 0 {
		fmt.Fprintln(w, "  [WARN] No template variants found")
		return nil
	}
	for _, v := range variants {
		fmt.Fprintf(w, "  [ OK ] %s: %s\n", v.Name, v.DisplayName())
	}
	return nil
}

func runConfigCheck(w io.Writer) {
	fmt.Fprintln(w, "Config check:")
	path := config.FilePath()
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  [INFO] No config file at %s; using defaults\n", path)
	} else {
		fmt.Fprintf(w, "  [ OK ] %s\n", path)
	}
	fmt.Fprintf(w, "  [INFO] runtime=%s lint=%q version=%s\n",
		config.Get(config.KeyRuntime), config.Get(config.KeyLint), config.Get(config.KeyVersion))
}

func runManifestCheck(w io.Writer, path string) error {
	fmt.Fprintf(w, "Manifest validation: %s\n", path)

	kind := manifest.KindAddon
	if filepath.Base(path) == manifest.PackageFile {
		kind = manifest.KindPackage
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("reading manifest: %w", err)
	}
	result, err := manifest.Validate(kind, data)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		fmt.Fprintf(w, "  [ OK ] Valid %s manifest\n", kind)
		return nil
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(w, "    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(w, "    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}
