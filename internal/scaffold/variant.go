package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// VariantFile is the per-variant metadata file. It is never copied to the
// output tree.
const VariantFile = "variant.yaml"

// DefaultSecondaryManifest is the output file that, when materialized,
// receives the generated secondary manifest.
const DefaultSecondaryManifest = "manifest.json"

// ErrVariantNotFound is returned when a variant directory does not exist.
var ErrVariantNotFound = errors.New("template variant not found")

var variantName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// RenameRule moves an output file after the bulk copy. To may reference
// tokens (%plugin.base%).
type RenameRule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// DefaultRenames apply to every variant.
var DefaultRenames = []RenameRule{
	{From: "locale/en-US/make-it-red.ftl", To: "locale/en-US/%plugin.base%.ftl"},
	{From: "chrome/locale/en-US/make-it-red.properties", To: "chrome/locale/en-US/%plugin.base%.properties"},
}

// DefaultDeletes remove scaffolding-only files superseded by generated ones.
var DefaultDeletes = []string{"install.rdf"}

// Variant describes one template set.
type Variant struct {
	Name              string       `yaml:"-"`
	Label             string       `yaml:"label"`
	Renames           []RenameRule `yaml:"renames,omitempty"`
	Deletes           []string     `yaml:"deletes,omitempty"`
	SecondaryManifest string       `yaml:"secondary_manifest,omitempty"`
}

// RenameRules returns the variant's renames followed by the defaults it
// does not already cover.
func (v *Variant) RenameRules() []RenameRule {
	rules := append([]RenameRule(nil), v.Renames...)
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		seen[r.From] = true
	}
	for _, r := range DefaultRenames {
		if !seen[r.From] {
			rules = append(rules, r)
		}
	}
	return rules
}

// DeletePatterns returns the doublestar patterns of files to remove.
func (v *Variant) DeletePatterns() []string {
	patterns := append([]string(nil), v.Deletes...)
	for _, p := range DefaultDeletes {
		if !slices.Contains(patterns, p) {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// ManifestPath returns the output-relative path of the secondary manifest.
func (v *Variant) ManifestPath() string {
	if v.SecondaryManifest != "" {
		return v.SecondaryManifest
	}
	return DefaultSecondaryManifest
}

// DisplayName returns the label, falling back to the directory name.
func (v *Variant) DisplayName() string {
	if v.Label != "" {
		return v.Label
	}
	return v.Name
}

// LoadVariant reads the variant directory name from the template root. A
// missing variant.yaml yields a variant with default rules.
func LoadVariant(root afero.Fs, name string) (*Variant, error) {
	if !variantName.MatchString(name) {
		return nil, fmt.Errorf("%w: invalid name %q", ErrVariantNotFound, name)
	}

	info, err := root.Stat(name)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrVariantNotFound, name)
	}

	v := &Variant{Name: name}
	data, err := afero.ReadFile(root, path.Join(name, VariantFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("reading %s for variant %s: %w", VariantFile, name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("parsing %s for variant %s: %w", VariantFile, name, err)
	}
	v.Name = name
	return v, nil
}

// ListVariants returns every variant under the template root, ordered by
// the version in the directory name (src-1.0 < src-1.2 < src-2.0).
func ListVariants(root afero.Fs) ([]*Variant, error) {
	entries, err := afero.ReadDir(root, ".")
	if err != nil {
		return nil, fmt.Errorf("reading template root: %w", err)
	}

	var variants []*Variant
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		v, err := LoadVariant(root, entry.Name())
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}

	sort.SliceStable(variants, func(i, j int) bool {
		return variantLess(variants[i].Name, variants[j].Name)
	})
	return variants, nil
}

func variantLess(a, b string) bool {
	va, errA := variantVersion(a)
	vb, errB := variantVersion(b)
	switch {
	case errA == nil && errB == nil && !va.Equal(vb):
		return va.LessThan(vb)
	case errA == nil && errB != nil:
		return true
	case errA != nil && errB == nil:
		return false
	default:
		return a < b
	}
}

// variantVersion parses the version suffix of names like "src-1.2".
func variantVersion(name string) (*semver.Version, error) {
	if i := strings.LastIndex(name, "-"); i >= 0 {
		name = name[i+1:]
	}
	return semver.NewVersion(name)
}
