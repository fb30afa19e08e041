// Package config manages user-level settings stored at ~/.zotplug/config.yaml.
// Settings provide defaults for generation answers (author identity, GitHub
// owner), the seed version written into package.json, and the post-step
// runtime and lint command.
package config
