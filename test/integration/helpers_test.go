//go:build integration

package integration_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/zotplug/zotplug/internal/generator"
	"github.com/zotplug/zotplug/internal/logging"
	"github.com/zotplug/zotplug/internal/prompt"
	"github.com/zotplug/zotplug/internal/scaffold"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // ZOTPLUG_HOME
	ProjectDir string // where the plugin is generated
}

// setupTestEnv creates isolated temp directories and points ZOTPLUG_HOME at
// one of them so no user configuration leaks into the run.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: filepath.Join(t.TempDir(), "zotero-example"),
	}
	t.Setenv("ZOTPLUG_HOME", env.HomeDir)

	if err := os.MkdirAll(env.ProjectDir, 0755); err != nil {
		t.Fatalf("creating project dir: %v", err)
	}
	return env
}

// exampleAnswers is the answer set used across the end-to-end tests.
func exampleAnswers(variant string) prompt.Answers {
	return prompt.Answers{
		UserName:   "Ada Lovelace",
		UserEmail:  "ada@example.org",
		RepoOwner:  "octocat",
		RepoName:   "zotero-example",
		PluginID:   "zotero-example@example.org",
		PluginName: "Example",
		Variant:    variant,
		Namespace:  "Zotero.Example",
	}
}

// generate runs the full pipeline for variant into dir with no post-steps.
func generate(t *testing.T, dir, variant string) *generator.Summary {
	t.Helper()

	a := exampleAnswers(variant)
	summary, err := generator.Generate(context.Background(), generator.Options{
		Templates: scaffold.Templates(),
		Dest:      afero.NewBasePathFs(afero.NewOsFs(), dir),
		Values:    a.Values(),
		Variant:   variant,
		Logger:    logging.Discard(),
	})
	if err != nil {
		t.Fatalf("Generate(%s): %v", variant, err)
	}
	return summary
}

// readTree returns every regular file under root keyed by slash path.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return out
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
