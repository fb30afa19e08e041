package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"

	"github.com/spf13/afero"

	"github.com/zotplug/zotplug/internal/scaffold"
)

// PackageFile is the name of the npm manifest at the project root.
const PackageFile = "package.json"

// Written describes a manifest that was written and validated.
type Written struct {
	Path       string
	Data       []byte
	Validation *ValidationResult
}

// Warnings returns the schema issues of the written document.
func (w *Written) Warnings() []string {
	return w.Validation.Warnings(w.Path)
}

// Encode renders doc as two-space indented JSON with a trailing newline.
// HTML characters are kept as-is so script strings like "a && b" survive.
func Encode(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes doc, writes it to name on fsys and validates the written
// bytes against the schema for kind.
func Write(fsys afero.Fs, name string, kind Kind, doc any) (*Written, error) {
	data, err := Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}

	if dir := path.Dir(name); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", name, err)
		}
	}
	if err := afero.WriteFile(fsys, name, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", name, err)
	}

	result, err := Validate(kind, data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", name, err)
	}
	return &Written{Path: name, Data: data, Validation: result}, nil
}

// WritePackage builds package.json from v and writes it at the root of fsys.
func WritePackage(fsys afero.Fs, v scaffold.Values, opts Options) (*Written, error) {
	pkg, err := BuildPackage(v, opts)
	if err != nil {
		return nil, err
	}
	return Write(fsys, PackageFile, KindPackage, pkg)
}

// WriteAddon builds manifest.json from v and writes it to name, replacing
// whatever the template tree put there.
func WriteAddon(fsys afero.Fs, name string, v scaffold.Values, opts Options) (*Written, error) {
	m, err := BuildAddon(v, opts)
	if err != nil {
		return nil, err
	}
	return Write(fsys, name, KindAddon, m)
}
