package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/shlex"
)

// NodeRuntime installs and lints through npm.
type NodeRuntime struct {
	LintCommand string
	// Stdout and Stderr receive command output; nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Install runs `npm install` when dir has a package.json. A missing Node.js
// or npm is a warning.
func (n *NodeRuntime) Install(ctx context.Context, dir string) (string, error) {
	if _, err := os.Stat(filepath.Join(dir, "package.json")); err != nil {
		return fmt.Sprintf("no package.json in %s; skipping npm install", dir), nil
	}

	if _, err := exec.LookPath("node"); err != nil {
		return "Node.js not found; skipping npm install", nil
	}
	npmPath, err := exec.LookPath("npm")
	if err != nil {
		return "npm not found; skipping dependency installation", nil
	}

	if err := n.command(ctx, dir, npmPath, "install").Run(); err != nil {
		return "", fmt.Errorf("npm install in %s: %w", dir, err)
	}
	return "", nil
}

// Lint runs LintCommand in dir. A non-zero exit is reported as a warning.
func (n *NodeRuntime) Lint(ctx context.Context, dir string) (string, error) {
	if n.LintCommand == "" {
		return "", nil
	}
	args, err := shlex.Split(n.LintCommand)
	if err != nil {
		return "", fmt.Errorf("parsing lint command %q: %w", n.LintCommand, err)
	}
	if len(args) == 0 {
		return "", nil
	}

	bin, err := exec.LookPath(args[0])
	if err != nil {
		return fmt.Sprintf("%s not found; skipping lint", args[0]), nil
	}

	err = n.command(ctx, dir, bin, args[1:]...).Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("lint command %q exited with status %d", n.LintCommand, exitErr.ExitCode()), nil
	}
	if err != nil {
		return "", fmt.Errorf("running lint command %q: %w", n.LintCommand, err)
	}
	return "", nil
}

func (n *NodeRuntime) command(ctx context.Context, dir, bin string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdout = orDiscard(n.Stdout)
	cmd.Stderr = orDiscard(n.Stderr)
	return cmd
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
