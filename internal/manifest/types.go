package manifest

// PackageJSON is the npm package.json written at the root of a generated
// project. Field order is the order keys appear in the written file.
type PackageJSON struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description"`
	Scripts      Scripts           `json:"scripts"`
	Repository   Repository        `json:"repository"`
	Author       Person            `json:"author"`
	Bugs         Bugs              `json:"bugs"`
	Homepage     string            `json:"homepage"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	XPI          XPI               `json:"xpi"`
}

// Scripts holds the npm scripts wired to the zotero-plugin build tooling.
type Scripts struct {
	Lint        string `json:"lint"`
	Prebuild    string `json:"prebuild"`
	Build       string `json:"build"`
	Postbuild   string `json:"postbuild"`
	Release     string `json:"release"`
	Postversion string `json:"postversion"`
}

// Repository is the package.json repository block.
type Repository struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Person is a package.json author.
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Bugs is the package.json bugs block.
type Bugs struct {
	URL string `json:"url"`
}

// XPI configures the zotero-plugin packaging tools. UpdateLink keeps the
// literal {version} placeholder, which the release tooling expands.
type XPI struct {
	Name       string `json:"name"`
	UpdateLink string `json:"updateLink"`
	ReleaseURL string `json:"releaseURL"`
}

// AddonManifest is the manifest.json of bootstrapped plugins.
type AddonManifest struct {
	ManifestVersion int          `json:"manifest_version"`
	Name            string       `json:"name"`
	Version         string       `json:"version"`
	Description     string       `json:"description"`
	Applications    Applications `json:"applications"`
}

// Applications holds the per-application settings of an AddonManifest.
type Applications struct {
	Zotero ZoteroApplication `json:"zotero"`
}

// ZoteroApplication pins the plugin id, update URL and compatible Zotero
// versions.
type ZoteroApplication struct {
	ID               string `json:"id"`
	UpdateURL        string `json:"update_url"`
	StrictMinVersion string `json:"strict_min_version"`
	StrictMaxVersion string `json:"strict_max_version"`
}
