// Package prompt collects the answers that drive one generation run. Answers
// come from an answers file and command-line presets, from user defaults in
// the config file and git, or from an interactive terminal session, and are
// turned into the immutable scaffold.Values the materializer consumes.
package prompt
