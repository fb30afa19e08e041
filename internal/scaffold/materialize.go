package scaffold

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/zotplug/zotplug/internal/logging"
)

// OutputEntry is one materialized file.
type OutputEntry struct {
	Path     string   // final slash-separated path relative to the destination
	Template string   // source path relative to the variant directory
	Strategy Strategy // how the content was rendered
	Changed  bool     // content differs from the template
}

// Result holds the outcome of a materialization.
type Result struct {
	Variant  *Variant
	Entries  []OutputEntry
	Renamed  []string
	Deleted  []string
	Warnings []string
}

// Files returns the output paths in sorted order.
func (r *Result) Files() []string {
	files := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		files[i] = e.Path
	}
	return files
}

// Has reports whether the output tree contains path.
func (r *Result) Has(p string) bool {
	for _, e := range r.Entries {
		if e.Path == p {
			return true
		}
	}
	return false
}

// Materializer transforms a template variant into an output tree.
type Materializer struct {
	Source afero.Fs // template root, one directory per variant
	Dest   afero.Fs // destination root
	Rules  Rules    // literal substitutions for contents and paths
	Funcs  template.FuncMap
	Logger zerolog.Logger
}

// New returns a Materializer with the default rules and template helpers.
func New(src, dst afero.Fs) *Materializer {
	return &Materializer{
		Source: src,
		Dest:   dst,
		Rules:  DefaultRules(),
		Funcs:  TemplateFuncs(),
		Logger: logging.Discard(),
	}
}

// Materialize renders variant from src into dst using the default rules.
func Materialize(src, dst afero.Fs, values Values, variant string) (*Result, error) {
	return New(src, dst).Materialize(variant, values)
}

// Materialize renders the named variant into the destination. Filesystem
// errors on the destination are fatal; a template that fails to render is
// copied verbatim and reported as a warning.
func (m *Materializer) Materialize(variantName string, values Values) (*Result, error) {
	logger := m.Logger.With().Str("variant", variantName).Logger()
	defer logging.Operation(logger, "materialize")()

	variant, err := LoadVariant(m.Source, variantName)
	if err != nil {
		return nil, err
	}

	templates, err := m.enumerate(variantName)
	if err != nil {
		return nil, err
	}

	result := &Result{Variant: variant}
	entries := make(map[string]*OutputEntry, len(templates))

	for _, rel := range templates {
		entry, warning, err := m.materializeFile(variantName, rel, values)
		if err != nil {
			return nil, err
		}
		if warning != "" {
			logger.Warn().Str("template", rel).Msg(warning)
			result.Warnings = append(result.Warnings, warning)
		}
		if prev, ok := entries[entry.Path]; ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s and %s both map to %s; keeping %s", prev.Template, rel, entry.Path, rel))
		}
		entries[entry.Path] = entry
		logger.Debug().
			Str("template", rel).
			Str("output", entry.Path).
			Stringer("strategy", entry.Strategy).
			Bool("changed", entry.Changed).
			Msg("Materialized file")
	}

	if err := m.applyRenames(variant, values, entries, result, logger); err != nil {
		return nil, err
	}
	if err := m.applyDeletes(variant, entries, result, logger); err != nil {
		return nil, err
	}

	result.Entries = make([]OutputEntry, 0, len(entries))
	for _, e := range entries {
		result.Entries = append(result.Entries, *e)
	}
	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].Path < result.Entries[j].Path
	})

	logger.Info().Int("files", len(result.Entries)).Msg("Materialized variant")
	return result, nil
}

// enumerate lists every file of the variant, hidden files included, as
// sorted paths relative to the variant directory.
func (m *Materializer) enumerate(variant string) ([]string, error) {
	var files []string
	prefix := variant + "/"
	err := doublestar.GlobWalk(afero.NewIOFS(m.Source), variant+"/**", func(p string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, prefix)
		if rel == VariantFile {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing templates for variant %s: %w", variant, err)
	}
	sort.Strings(files)
	return files, nil
}

func (m *Materializer) materializeFile(variant, rel string, values Values) (*OutputEntry, string, error) {
	src := path.Join(variant, rel)
	content, err := afero.ReadFile(m.Source, src)
	if err != nil {
		return nil, "", fmt.Errorf("reading template %s: %w", src, err)
	}

	perm := os.FileMode(0644)
	if info, err := m.Source.Stat(src); err == nil && info.Mode()&0111 != 0 {
		perm = 0755
	}

	strategy := DetectStrategy(content)
	var warning string
	out, err := m.renderer(strategy).Render(rel, content, values)
	if err != nil {
		warning = fmt.Sprintf("%s copied verbatim: %v", rel, err)
		out, strategy = content, StrategyVerbatim
	}

	entry := &OutputEntry{
		Path:     m.Rules.Apply(rel, values),
		Template: rel,
		Strategy: strategy,
		Changed:  string(out) != string(content),
	}
	if err := m.write(entry.Path, out, perm); err != nil {
		return nil, "", err
	}
	return entry, warning, nil
}

func (m *Materializer) renderer(s Strategy) Renderer {
	switch s {
	case StrategyLiteral:
		return literalRenderer{rules: m.Rules}
	case StrategyExpression:
		return expressionRenderer{funcs: m.Funcs}
	default:
		return verbatimRenderer{}
	}
}

// write stores one output file. Parent directories are created as needed,
// the destination root included.
func (m *Materializer) write(rel string, data []byte, perm os.FileMode) error {
	name := filepath.FromSlash(rel)
	dir := filepath.Dir(name)
	if err := m.Dest.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := afero.WriteFile(m.Dest, name, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// applyRenames moves files named by the variant's rename rules. Rules whose
// source was not materialized by this run, or whose target references a
// missing token, are skipped.
func (m *Materializer) applyRenames(v *Variant, values Values, entries map[string]*OutputEntry, result *Result, logger zerolog.Logger) error {
	for _, rule := range v.RenameRules() {
		to, ok := Expand(rule.To, values)
		if !ok || to == rule.From {
			continue
		}

		e, produced := entries[rule.From]
		if !produced {
			logger.Debug().Str("from", rule.From).Msg("Rename source not materialized, skipping")
			continue
		}

		from := filepath.FromSlash(rule.From)
		target := filepath.FromSlash(to)
		if dir := filepath.Dir(target); dir != "." {
			if err := m.Dest.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dir, err)
			}
		}
		if err := m.Dest.Rename(from, target); err != nil {
			return fmt.Errorf("renaming %s to %s: %w", rule.From, to, err)
		}

		delete(entries, rule.From)
		e.Path = to
		entries[to] = e
		result.Renamed = append(result.Renamed, rule.From+" -> "+to)
		logger.Debug().Str("from", rule.From).Str("to", to).Msg("Renamed file")
	}
	return nil
}

// applyDeletes removes materialized files matching the variant's delete
// patterns. Files that were not produced by this run are never touched.
func (m *Materializer) applyDeletes(v *Variant, entries map[string]*OutputEntry, result *Result, logger zerolog.Logger) error {
	paths := make([]string, 0, len(entries))
	for p := range entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, pattern := range v.DeletePatterns() {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid delete pattern %q in variant %s", pattern, v.Name)
		}
		for _, p := range paths {
			if _, ok := entries[p]; !ok || !doublestar.MatchUnvalidated(pattern, p) {
				continue
			}
			if err := m.Dest.Remove(filepath.FromSlash(p)); err != nil {
				return fmt.Errorf("deleting %s: %w", p, err)
			}
			delete(entries, p)
			result.Deleted = append(result.Deleted, p)
			logger.Debug().Str("path", p).Msg("Deleted scaffolding file")
		}
	}
	return nil
}
