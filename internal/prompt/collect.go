package prompt

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/zotplug/zotplug/internal/branding"
	"github.com/zotplug/zotplug/internal/logging"
	"github.com/zotplug/zotplug/internal/scaffold"
)

// Result is the outcome of Collect.
type Result struct {
	Answers  Answers
	Values   scaffold.Values
	Variant  *scaffold.Variant
	Warnings []string
}

// Collector resolves every question, in order, from presets, interactive
// input or defaults.
type Collector struct {
	Env      Environment
	Variants []*scaffold.Variant

	// Defaults replace environment lookups for the questions they answer.
	Defaults Answers
	// Preset answers skip their question but are still validated.
	Preset Answers

	// Interactive asks unanswered questions on In/Out. Otherwise defaults
	// are taken as-is.
	Interactive bool
	In          io.Reader
	Out         io.Writer

	Logger zerolog.Logger
}

// NewCollector returns a non-interactive collector over the system
// environment.
func NewCollector(variants []*scaffold.Variant) *Collector {
	return &Collector{
		Env:      SystemEnvironment{},
		Variants: variants,
		Logger:   logging.Discard(),
	}
}

type question struct {
	label    string
	field    *string
	def      func() string
	validate func(string) error
}

// Collect runs the questions and builds the value mapping.
func (c *Collector) Collect(ctx context.Context) (*Result, error) {
	done := logging.Operation(c.Logger, "collect answers")
	defer done()

	var p *Prompter
	if c.Interactive {
		p = NewPrompter(c.In, c.Out)
	}

	res := &Result{}
	a := c.Preset

	questions := []question{
		{"Your name", &a.UserName, func() string { return c.gitDefault(ctx, c.Defaults.UserName, "user.name") }, nil},
		{"Your email", &a.UserEmail, func() string { return c.gitDefault(ctx, c.Defaults.UserEmail, "user.email") }, nil},
		{"GitHub repo owner", &a.RepoOwner, func() string { return c.ownerDefault(ctx, res) }, nil},
		{"GitHub repo name", &a.RepoName, func() string { return c.repoDefault(res) }, validateRepoName},
		{"Plugin ID", &a.PluginID, func() string { return DefaultPluginID(a.RepoName, a.UserEmail) }, validatePluginID},
		{"Plugin description", &a.PluginName, func() string { return HumanName(PluginBase(a.PluginID)) }, validatePluginName},
	}
	for _, q := range questions {
		if err := c.resolve(p, q); err != nil {
			return nil, err
		}
	}

	variant, err := c.chooseVariant(p, a.Variant)
	if err != nil {
		return nil, err
	}
	a.Variant = variant.Name

	ns := question{"Plugin namespace", &a.Namespace, func() string { return DefaultNamespace(a.PluginName) }, validateNamespace}
	if err := c.resolve(p, ns); err != nil {
		return nil, err
	}
	a.Namespace = NormalizeNamespace(a.Namespace)

	res.Answers = a
	res.Values = a.Values()
	res.Variant = variant

	c.Logger.Info().
		Str("plugin_id", a.PluginID).
		Str("variant", a.Variant).
		Str("namespace", a.Namespace).
		Msg("Answers collected")
	return res, nil
}

func (c *Collector) resolve(p *Prompter, q question) error {
	check := func(v string) error {
		if q.validate == nil {
			return nil
		}
		if err := q.validate(v); err != nil {
			return fmt.Errorf("%s: %w", q.label, err)
		}
		return nil
	}

	if *q.field != "" {
		return check(*q.field)
	}
	if p == nil {
		def := q.def()
		if err := check(def); err != nil {
			return err
		}
		*q.field = def
		return nil
	}

	answer, err := p.Ask(q.label, q.def(), q.validate)
	if err != nil {
		return err
	}
	*q.field = answer
	return nil
}

func (c *Collector) chooseVariant(p *Prompter, preset string) (*scaffold.Variant, error) {
	if len(c.Variants) == 0 {
		return nil, fmt.Errorf("no template variants available")
	}

	if preset != "" {
		for _, v := range c.Variants {
			if v.Name == preset {
				return v, nil
			}
		}
		return nil, fmt.Errorf("%w: %q", scaffold.ErrVariantNotFound, preset)
	}

	// The newest variant is the default unless the user configured one.
	def := len(c.Variants) - 1
	for i, v := range c.Variants {
		if v.Name == c.Defaults.Variant {
			def = i
		}
	}
	if p == nil {
		return c.Variants[def], nil
	}

	labels := make([]string, len(c.Variants))
	for i, v := range c.Variants {
		labels[i] = v.DisplayName()
	}
	idx, err := p.Select("What kind of plugin are you building?", labels, def)
	if err != nil {
		return nil, err
	}
	return c.Variants[idx], nil
}

func (c *Collector) gitDefault(ctx context.Context, configured, key string) string {
	if configured != "" {
		return configured
	}
	if c.Env == nil {
		return ""
	}
	value, err := c.Env.GitConfig(ctx, key)
	if err != nil {
		c.Logger.Debug().Err(err).Str("key", key).Msg("No git default")
		return ""
	}
	return value
}

func (c *Collector) ownerDefault(ctx context.Context, res *Result) string {
	if owner := c.gitDefault(ctx, c.Defaults.RepoOwner, "github.user"); owner != "" {
		return owner
	}
	res.Warnings = append(res.Warnings, fmt.Sprintf(
		"could not determine your GitHub username; using %q (set it with `%s config set repo.owner <name>`)",
		OwnerPlaceholder, branding.CLIName()))
	return OwnerPlaceholder
}

func (c *Collector) repoDefault(res *Result) string {
	if c.Env == nil {
		return ""
	}
	dir, err := c.Env.WorkingDir()
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("could not determine working directory: %v", err))
		return ""
	}
	return MakePluginName(filepath.Base(dir))
}
