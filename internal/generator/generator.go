// Package generator wires a complete run together: it materializes a
// template variant into the project's client directory, writes the
// manifests and runs the optional post-generation steps.
package generator

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/zotplug/zotplug/internal/logging"
	"github.com/zotplug/zotplug/internal/manifest"
	"github.com/zotplug/zotplug/internal/runtime"
	"github.com/zotplug/zotplug/internal/scaffold"
)

// ClientDir holds the plugin sources inside a generated project.
const ClientDir = "client"

// ErrDestinationNotEmpty is returned when the destination already holds a
// generated project and Force is not set.
var ErrDestinationNotEmpty = errors.New("destination already contains a package.json")

// Options configures one generation run.
type Options struct {
	// Templates is the template root with one directory per variant.
	Templates afero.Fs
	// Dest is the project root.
	Dest afero.Fs
	// Dir is the OS path of Dest. Post-steps run there; empty skips them.
	Dir string

	Values   scaffold.Values
	Variant  string
	Manifest manifest.Options

	// Force overwrites an existing project.
	Force bool

	// Runtime runs the post-steps; nil skips them.
	Runtime     runtime.Runtime
	SkipInstall bool
	SkipLint    bool

	Logger zerolog.Logger
}

// Summary describes what a run produced.
type Summary struct {
	Variant   *scaffold.Variant
	Files     []string // project-relative, sorted
	Manifests []string
	Renamed   []string
	Deleted   []string
	Warnings  []string
}

// Generate materializes opts.Variant into <Dest>/client, writes package.json
// and, when the variant ships one, the client manifest.json, then runs the
// post-steps.
func Generate(ctx context.Context, opts Options) (*Summary, error) {
	logger := opts.Logger.With().Str("variant", opts.Variant).Logger()
	defer logging.Operation(logger, "generate")()

	exists, err := afero.Exists(opts.Dest, manifest.PackageFile)
	if err != nil {
		return nil, fmt.Errorf("checking destination: %w", err)
	}
	if exists && !opts.Force {
		return nil, fmt.Errorf("%w (use --force to overwrite)", ErrDestinationNotEmpty)
	}

	values := opts.Values
	if _, ok := values.Get(scaffold.TokenTemplate); !ok {
		values = values.With(scaffold.TokenTemplate, opts.Variant)
	}

	if err := opts.Dest.MkdirAll(ClientDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", ClientDir, err)
	}
	m := scaffold.New(opts.Templates, afero.NewBasePathFs(opts.Dest, ClientDir))
	m.Logger = logger
	res, err := m.Materialize(opts.Variant, values)
	if err != nil {
		return nil, fmt.Errorf("materializing templates: %w", err)
	}

	summary := &Summary{
		Variant:  res.Variant,
		Renamed:  res.Renamed,
		Deleted:  res.Deleted,
		Warnings: append([]string(nil), res.Warnings...),
	}
	for _, f := range res.Files() {
		summary.Files = append(summary.Files, path.Join(ClientDir, f))
	}

	if err := writeManifests(opts, values, res, summary); err != nil {
		return nil, err
	}
	sort.Strings(summary.Files)

	if err := runPostSteps(ctx, opts, summary, logger); err != nil {
		return nil, err
	}

	logger.Info().
		Int("files", len(summary.Files)).
		Int("warnings", len(summary.Warnings)).
		Msg("Project generated")
	return summary, nil
}

func writeManifests(opts Options, values scaffold.Values, res *scaffold.Result, summary *Summary) error {
	pkg, err := manifest.WritePackage(opts.Dest, values, opts.Manifest)
	if err != nil {
		return fmt.Errorf("writing %s: %w", manifest.PackageFile, err)
	}
	summary.record(pkg)

	// The client manifest is only rewritten for variants that ship one.
	rel := res.Variant.ManifestPath()
	if !res.Has(rel) {
		return nil
	}
	addon, err := manifest.WriteAddon(opts.Dest, path.Join(ClientDir, rel), values, opts.Manifest)
	if err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	summary.record(addon)
	return nil
}

func (s *Summary) record(w *manifest.Written) {
	s.Manifests = append(s.Manifests, w.Path)
	s.Warnings = append(s.Warnings, w.Warnings()...)
	for _, f := range s.Files {
		if f == w.Path {
			return
		}
	}
	s.Files = append(s.Files, w.Path)
}

func runPostSteps(ctx context.Context, opts Options, summary *Summary, logger zerolog.Logger) error {
	if opts.Runtime == nil || opts.Dir == "" {
		return nil
	}

	if !opts.SkipInstall {
		logger.Info().Str("dir", opts.Dir).Msg("Installing dependencies")
		warning, err := opts.Runtime.Install(ctx, opts.Dir)
		if err != nil {
			return fmt.Errorf("installing dependencies: %w", err)
		}
		summary.warn(warning)
	}

	if !opts.SkipLint {
		logger.Info().Str("dir", opts.Dir).Msg("Running lint")
		warning, err := opts.Runtime.Lint(ctx, opts.Dir)
		if err != nil {
			return fmt.Errorf("running lint: %w", err)
		}
		summary.warn(warning)
	}
	return nil
}

func (s *Summary) warn(w string) {
	if w != "" {
		s.Warnings = append(s.Warnings, w)
	}
}
