package runtime

import (
	"context"
	"fmt"
	"io"
)

// Runtime runs post-generation steps in a project directory. Conditions
// that leave the project usable, such as a missing toolchain, come back as
// a warning string; only hard failures are errors.
type Runtime interface {
	// Install fetches the project's dependencies.
	Install(ctx context.Context, dir string) (string, error)
	// Lint runs the configured lint/format command.
	Lint(ctx context.Context, dir string) (string, error)
}

// Supported runtime identifiers.
const (
	RuntimeNPM  = "npm"
	RuntimeNone = "none"
)

// Options configures the runtime returned by Dispatch.
type Options struct {
	// LintCommand is split into words like a shell would. Empty skips linting.
	LintCommand string
	// Stdout and Stderr receive command output; nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Supported reports whether name is a known runtime identifier.
func Supported(name string) bool {
	return name == RuntimeNPM || name == RuntimeNone
}

// Dispatch returns the Runtime for name. Unknown names yield a runtime whose
// steps fail.
func Dispatch(name string, opts Options) Runtime {
	switch name {
	case RuntimeNPM:
		return &NodeRuntime{
			LintCommand: opts.LintCommand,
			Stdout:      opts.Stdout,
			Stderr:      opts.Stderr,
		}
	case RuntimeNone:
		return noopRuntime{}
	default:
		return &unknownRuntime{name: name}
	}
}

// noopRuntime skips every step.
type noopRuntime struct{}

func (noopRuntime) Install(context.Context, string) (string, error) { return "", nil }
func (noopRuntime) Lint(context.Context, string) (string, error)    { return "", nil }

// unknownRuntime is returned when the runtime identifier is not recognized.
type unknownRuntime struct {
	name string
}

func (u *unknownRuntime) err() error {
	return fmt.Errorf("unknown runtime %q: supported runtimes are %q and %q", u.name, RuntimeNPM, RuntimeNone)
}

func (u *unknownRuntime) Install(context.Context, string) (string, error) { return "", u.err() }
func (u *unknownRuntime) Lint(context.Context, string) (string, error)    { return "", u.err() }
