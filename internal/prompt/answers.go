package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/zotplug/zotplug/internal/scaffold"
)

// ErrInvalidAnswer is returned when an answer fails validation and cannot
// be asked again.
var ErrInvalidAnswer = errors.New("invalid answer")

// Answers holds one value per question. Empty fields are unanswered.
type Answers struct {
	UserName   string `yaml:"user_name,omitempty"`
	UserEmail  string `yaml:"user_email,omitempty"`
	RepoOwner  string `yaml:"repo_owner,omitempty"`
	RepoName   string `yaml:"repo_name,omitempty"`
	PluginID   string `yaml:"plugin_id,omitempty"`
	PluginName string `yaml:"plugin_name,omitempty"`
	Variant    string `yaml:"variant,omitempty"`
	Namespace  string `yaml:"namespace,omitempty"`
}

// LoadAnswers reads an answers file. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func LoadAnswers(fsys afero.Fs, path string) (Answers, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Answers{}, fmt.Errorf("reading answers file %s: %w", path, err)
	}

	var a Answers
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil && !errors.Is(err, io.EOF) {
		return Answers{}, fmt.Errorf("parsing answers file %s: %w", path, err)
	}
	return a, nil
}

// Merge returns a copy of a with every non-empty field of over applied.
func (a Answers) Merge(over Answers) Answers {
	pick := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	out := a
	pick(&out.UserName, over.UserName)
	pick(&out.UserEmail, over.UserEmail)
	pick(&out.RepoOwner, over.RepoOwner)
	pick(&out.RepoName, over.RepoName)
	pick(&out.PluginID, over.PluginID)
	pick(&out.PluginName, over.PluginName)
	pick(&out.Variant, over.Variant)
	pick(&out.Namespace, over.Namespace)
	return out
}

// Values converts complete answers into the token mapping. The plugin base
// is derived from the id and the namespace is normalized.
func (a Answers) Values() scaffold.Values {
	return scaffold.NewValues(map[string]string{
		scaffold.TokenUserName:   a.UserName,
		scaffold.TokenUserEmail:  a.UserEmail,
		scaffold.TokenRepoOwner:  a.RepoOwner,
		scaffold.TokenRepoName:   a.RepoName,
		scaffold.TokenPluginID:   a.PluginID,
		scaffold.TokenPluginBase: PluginBase(a.PluginID),
		scaffold.TokenPluginName: a.PluginName,
		scaffold.TokenTemplate:   a.Variant,
		scaffold.TokenNamespace:  NormalizeNamespace(a.Namespace),
	})
}
