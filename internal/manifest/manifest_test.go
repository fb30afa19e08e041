package manifest

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/zotplug/zotplug/internal/scaffold"
)

func exampleValues() scaffold.Values {
	return scaffold.NewValues(map[string]string{
		scaffold.TokenPluginBase: "zotero-example",
		scaffold.TokenPluginID:   "zotero-example@example.org",
		scaffold.TokenPluginName: "Example",
		scaffold.TokenRepoOwner:  "octocat",
		scaffold.TokenRepoName:   "zotero-example",
		scaffold.TokenUserName:   "Ada Lovelace",
		scaffold.TokenUserEmail:  "ada@example.org",
	})
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("written JSON does not parse: %v\n%s", err, data)
	}
	return out
}

func TestWritePackage(t *testing.T) {
	fs := afero.NewMemMapFs()

	w, err := WritePackage(fs, exampleValues(), Options{})
	if err != nil {
		t.Fatalf("WritePackage() error: %v", err)
	}
	if w.Path != PackageFile {
		t.Errorf("Path = %q, want %q", w.Path, PackageFile)
	}
	if !w.Validation.Valid {
		t.Errorf("expected valid package.json, got issues: %v", w.Warnings())
	}

	data, err := afero.ReadFile(fs, PackageFile)
	if err != nil {
		t.Fatalf("reading package.json: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"name": "zotero-example"`) {
		t.Errorf("package.json missing name:\n%s", text)
	}

	doc := decode(t, data)
	scripts := doc["scripts"].(map[string]any)
	if got := scripts["postbuild"]; got != "zotero-plugin-zipup build zotero-example" {
		t.Errorf("scripts.postbuild = %v", got)
	}
	if got := doc["version"]; got != DefaultVersion {
		t.Errorf("version = %v, want %s", got, DefaultVersion)
	}
	xpi := doc["xpi"].(map[string]any)
	if got := xpi["name"]; got != "Example for Zotero" {
		t.Errorf("xpi.name = %v", got)
	}
	if got := xpi["updateLink"]; got != "https://github.com/octocat/zotero-example/releases/download/v{version}/zotero-example-{version}.xpi" {
		t.Errorf("xpi.updateLink = %v", got)
	}
	if got := xpi["releaseURL"]; got != "https://github.com/octocat/zotero-example/releases/download/release/" {
		t.Errorf("xpi.releaseURL = %v", got)
	}
	repo := doc["repository"].(map[string]any)
	if got := repo["url"]; got != "https://github.com/octocat/zotero-example.git" {
		t.Errorf("repository.url = %v", got)
	}
	author := doc["author"].(map[string]any)
	if author["name"] != "Ada Lovelace" || author["email"] != "ada@example.org" {
		t.Errorf("author = %v", author)
	}
}

func TestEncodeFormatting(t *testing.T) {
	data, err := Encode(map[string]string{"build": "tsc --noEmit && node esbuild.js"})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := "{\n  \"build\": \"tsc --noEmit && node esbuild.js\"\n}\n"
	if string(data) != want {
		t.Errorf("Encode() = %q, want %q", data, want)
	}
}

func TestPackageFieldOrder(t *testing.T) {
	pkg, err := BuildPackage(exampleValues(), Options{})
	if err != nil {
		t.Fatalf("BuildPackage() error: %v", err)
	}
	data, err := Encode(pkg)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	text := string(data)

	keys := []string{`"name"`, `"version"`, `"description"`, `"scripts"`, `"repository"`, `"author"`, `"bugs"`, `"homepage"`, `"dependencies"`, `"xpi"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(text, "\n  "+k)
		if idx < 0 {
			t.Fatalf("%s missing from package.json:\n%s", k, text)
		}
		if idx < last {
			t.Errorf("%s is out of order", k)
		}
		last = idx
	}
}

func TestBuildPackageDeterministic(t *testing.T) {
	a, _ := BuildPackage(exampleValues(), Options{})
	b, _ := BuildPackage(exampleValues(), Options{})
	da, _ := Encode(a)
	db, _ := Encode(b)
	if string(da) != string(db) {
		t.Error("identical values produced different package.json bytes")
	}
}

func TestBuildPackageOptions(t *testing.T) {
	deps := map[string]string{"zotero-plugin": "^3.0.0"}
	pkg, err := BuildPackage(exampleValues(), Options{Version: "1.2.3", Dependencies: deps})
	if err != nil {
		t.Fatalf("BuildPackage() error: %v", err)
	}
	if pkg.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", pkg.Version)
	}
	if len(pkg.Dependencies) != 1 || pkg.Dependencies["zotero-plugin"] != "^3.0.0" {
		t.Errorf("Dependencies = %v", pkg.Dependencies)
	}

	deps["zotero-plugin"] = "changed"
	if pkg.Dependencies["zotero-plugin"] != "^3.0.0" {
		t.Error("BuildPackage kept a reference to the caller's dependency map")
	}
}

func TestBuildPackageDefaultDependenciesAreCopied(t *testing.T) {
	pkg, err := BuildPackage(exampleValues(), Options{})
	if err != nil {
		t.Fatalf("BuildPackage() error: %v", err)
	}
	pkg.Dependencies["zotero-plugin"] = "mutated"
	if DefaultDependencies["zotero-plugin"] == "mutated" {
		t.Error("BuildPackage exposed DefaultDependencies")
	}
}

func TestBuildPackageInvalidVersion(t *testing.T) {
	for _, version := range []string{"1.0", "v1.0.0", "latest"} {
		t.Run(version, func(t *testing.T) {
			_, err := BuildPackage(exampleValues(), Options{Version: version})
			if !errors.Is(err, ErrInvalidVersion) {
				t.Errorf("BuildPackage(%q) error = %v, want ErrInvalidVersion", version, err)
			}
		})
	}
}

func TestWriteAddon(t *testing.T) {
	fs := afero.NewMemMapFs()

	w, err := WriteAddon(fs, "client/manifest.json", exampleValues(), Options{})
	if err != nil {
		t.Fatalf("WriteAddon() error: %v", err)
	}
	if !w.Validation.Valid {
		t.Errorf("expected valid manifest.json, got issues: %v", w.Warnings())
	}

	data, err := afero.ReadFile(fs, "client/manifest.json")
	if err != nil {
		t.Fatalf("reading manifest.json: %v", err)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Error("manifest.json should end with a newline")
	}

	doc := decode(t, data)
	if doc["manifest_version"] != float64(2) {
		t.Errorf("manifest_version = %v", doc["manifest_version"])
	}
	if doc["name"] != "Example" || doc["description"] != "Example" {
		t.Errorf("name/description = %v/%v", doc["name"], doc["description"])
	}
	zotero := doc["applications"].(map[string]any)["zotero"].(map[string]any)
	want := map[string]string{
		"id":                 "zotero-example@example.org",
		"update_url":         "https://github.com/octocat/zotero-example/releases/download/release/update.rdf",
		"strict_min_version": "6.999",
		"strict_max_version": "7.0.*",
	}
	for k, v := range want {
		if zotero[k] != v {
			t.Errorf("applications.zotero.%s = %v, want %s", k, zotero[k], v)
		}
	}
}

func TestWriteAddonReplacesExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "client/manifest.json", []byte(`{"name": "Make It Red"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteAddon(fs, "client/manifest.json", exampleValues(), Options{}); err != nil {
		t.Fatalf("WriteAddon() error: %v", err)
	}
	data, _ := afero.ReadFile(fs, "client/manifest.json")
	if strings.Contains(string(data), "Make It Red") {
		t.Errorf("old manifest content survived:\n%s", data)
	}
}

func TestWriteReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	if _, err := WritePackage(fs, exampleValues(), Options{}); err == nil {
		t.Fatal("expected error writing to a read-only filesystem")
	}
}
