package manifest

import (
	"errors"
	"fmt"
	"maps"

	"github.com/Masterminds/semver/v3"

	"github.com/zotplug/zotplug/internal/scaffold"
)

// DefaultVersion is the version a freshly generated plugin starts at.
const DefaultVersion = "0.0.1"

// Zotero compatibility range written into manifest.json.
const (
	StrictMinVersion = "6.999"
	StrictMaxVersion = "7.0.*"
)

// ErrInvalidVersion is returned when the configured seed version is not a
// strict semantic version.
var ErrInvalidVersion = errors.New("invalid plugin version")

// DefaultDependencies seeds package.json when the user configured none.
var DefaultDependencies = map[string]string{
	"@typescript-eslint/eslint-plugin": "^6.21.0",
	"@typescript-eslint/parser":        "^6.21.0",
	"esbuild":                          "^0.20.1",
	"eslint":                           "^8.57.0",
	"typescript":                       "^5.3.3",
	"zotero-plugin":                    "^2.0.14",
	"zotero-types":                     "^1.3.20",
}

// Options tunes the generated manifests.
type Options struct {
	// Version is the seed version. Empty means DefaultVersion.
	Version string
	// Dependencies replaces DefaultDependencies when non-nil.
	Dependencies map[string]string
}

func (o Options) version() (string, error) {
	if o.Version == "" {
		return DefaultVersion, nil
	}
	v, err := semver.StrictNewVersion(o.Version)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidVersion, o.Version, err)
	}
	return v.String(), nil
}

func (o Options) dependencies() map[string]string {
	if o.Dependencies != nil {
		return maps.Clone(o.Dependencies)
	}
	return maps.Clone(DefaultDependencies)
}

// RepoURL returns the GitHub page of the plugin repository.
func RepoURL(v scaffold.Values) string {
	return fmt.Sprintf("https://github.com/%s/%s", v.String(scaffold.TokenRepoOwner), v.String(scaffold.TokenRepoName))
}

// ReleaseURL returns the download prefix of the rolling "release" tag that
// hosts the update manifests.
func ReleaseURL(v scaffold.Values) string {
	return RepoURL(v) + "/releases/download/release/"
}

// UpdateLink returns the download link pattern for a released XPI.
func UpdateLink(v scaffold.Values) string {
	return fmt.Sprintf("%s/releases/download/v{version}/%s-{version}.xpi", RepoURL(v), v.String(scaffold.TokenPluginBase))
}

// BuildPackage assembles package.json from the value mapping.
func BuildPackage(v scaffold.Values, opts Options) (*PackageJSON, error) {
	version, err := opts.version()
	if err != nil {
		return nil, err
	}

	base := v.String(scaffold.TokenPluginBase)
	name := v.String(scaffold.TokenPluginName)
	repo := RepoURL(v)

	return &PackageJSON{
		Name:        base,
		Version:     version,
		Description: name,
		Scripts: Scripts{
			Lint:        "eslint . --ext .ts --cache --cache-location .eslintcache/",
			Prebuild:    "npm run lint",
			Build:       "tsc --noEmit && node esbuild.js",
			Postbuild:   "zotero-plugin-zipup build " + base,
			Release:     "zotero-plugin-release",
			Postversion: "git push --follow-tags",
		},
		Repository: Repository{
			Type: "git",
			URL:  repo + ".git",
		},
		Author: Person{
			Name:  v.String(scaffold.TokenUserName),
			Email: v.String(scaffold.TokenUserEmail),
		},
		Bugs:         Bugs{URL: repo + "/issues"},
		Homepage:     repo,
		Dependencies: opts.dependencies(),
		XPI: XPI{
			Name:       name + " for Zotero",
			UpdateLink: UpdateLink(v),
			ReleaseURL: ReleaseURL(v),
		},
	}, nil
}

// BuildAddon assembles manifest.json from the value mapping.
func BuildAddon(v scaffold.Values, opts Options) (*AddonManifest, error) {
	version, err := opts.version()
	if err != nil {
		return nil, err
	}

	name := v.String(scaffold.TokenPluginName)
	return &AddonManifest{
		ManifestVersion: 2,
		Name:            name,
		Version:         version,
		Description:     name,
		Applications: Applications{
			Zotero: ZoteroApplication{
				ID:               v.String(scaffold.TokenPluginID),
				UpdateURL:        ReleaseURL(v) + "update.rdf",
				StrictMinVersion: StrictMinVersion,
				StrictMaxVersion: StrictMaxVersion,
			},
		},
	}, nil
}
