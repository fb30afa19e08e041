package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/zotplug/zotplug/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyUserName     = "user.name"
	KeyUserEmail    = "user.email"
	KeyRepoOwner    = "repo.owner"
	KeyVersion      = "version"
	KeyRuntime      = "runtime"
	KeyLint         = "lint"
	KeyDependencies = "dependencies"
)

// Defaults for keys that always have a value.
const (
	DefaultVersion = "0.0.1"
	DefaultRuntime = "npm"
	DefaultLint    = "npm run lint -- --fix"
)

// Dir returns the path to the config directory (~/.zotplug/). ZOTPLUG_HOME
// overrides the location.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.zotplug/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Nested keys map to env vars with dots replaced, e.g. ZOTPLUG_USER_EMAIL.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyVersion, DefaultVersion)
	viper.SetDefault(KeyRuntime, DefaultRuntime)
	viper.SetDefault(KeyLint, DefaultLint)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Dependencies returns the dependency overrides for generated package.json
// files, or nil when none are configured.
func Dependencies() map[string]string {
	deps := viper.GetStringMapString(KeyDependencies)
	if len(deps) == 0 {
		return nil
	}
	return deps
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
