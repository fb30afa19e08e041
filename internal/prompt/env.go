package prompt

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Environment supplies the machine-specific defaults for questions.
type Environment interface {
	// GitConfig returns the value of a git configuration key.
	GitConfig(ctx context.Context, key string) (string, error)
	// WorkingDir returns the directory the project is generated in.
	WorkingDir() (string, error)
}

// SystemEnvironment reads git configuration through the git binary.
type SystemEnvironment struct {
	// Dir overrides the working directory when set.
	Dir string
}

// GitConfig runs `git config --get key`.
func (e SystemEnvironment) GitConfig(ctx context.Context, key string) (string, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("git not found on PATH: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, gitPath, "config", "--get", key)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git config %s: %s: %w", key, msg, err)
		}
		return "", fmt.Errorf("git config %s: %w", key, err)
	}

	value := strings.TrimSpace(stdout.String())
	if value == "" {
		return "", fmt.Errorf("git config %s is empty", key)
	}
	return value, nil
}

// WorkingDir returns Dir, or the process working directory.
func (e SystemEnvironment) WorkingDir() (string, error) {
	if e.Dir != "" {
		return e.Dir, nil
	}
	return os.Getwd()
}
