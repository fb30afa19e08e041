package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zotplug/zotplug/internal/scaffold"
)

var variantsJSON bool

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List template variants",
	Long:  `List the template variants create can scaffold, oldest Zotero target first.`,
	Args:  cobra.NoArgs,
	RunE:  runVariants,
}

func init() {
	variantsCmd.Flags().BoolVar(&variantsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(variantsCmd)
}

// variantEntry represents a template variant for display.
type variantEntry struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Manifest string `json:"manifest"`
}

func runVariants(cmd *cobra.Command, args []string) error {
	variants, err := scaffold.ListVariants(templateRoot())
	if err != nil {
		return err
	}
	if len(variants) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No template variants found.")
		return nil
	}

	entries := make([]variantEntry, len(variants))
	for i, v := range variants {
		entries[i] = variantEntry{
			Name:     v.Name,
			Label:    v.DisplayName(),
			Manifest: v.ManifestPath(),
		}
	}

	if variantsJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Label)
	}
	return w.Flush()
}
