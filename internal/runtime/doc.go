// Package runtime runs the post-generation steps of a scaffolded plugin:
// installing its npm dependencies and running its lint command. Dispatch
// selects the implementation from the configured runtime name.
package runtime
