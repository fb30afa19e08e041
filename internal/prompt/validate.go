package prompt

import (
	"fmt"
	"strings"
)

func validateRepoName(name string) error {
	if strings.TrimPrefix(name, RepoPrefix) == "" {
		return fmt.Errorf("%w: repository name must be more than %q", ErrInvalidAnswer, RepoPrefix)
	}
	if strings.ContainsAny(name, " \t/") {
		return fmt.Errorf("%w: repository name %q contains spaces or slashes", ErrInvalidAnswer, name)
	}
	return nil
}

func validatePluginID(id string) error {
	if PluginBase(id) == "" {
		return fmt.Errorf("%w: plugin id %q needs a name before \"@\"", ErrInvalidAnswer, id)
	}
	if strings.ContainsAny(id, " \t/") {
		return fmt.Errorf("%w: plugin id %q contains spaces or slashes", ErrInvalidAnswer, id)
	}
	return nil
}

func validatePluginName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: plugin description is required", ErrInvalidAnswer)
	}
	return nil
}

func validateNamespace(ns string) error {
	if NormalizeNamespace(ns) == NamespaceRoot {
		return fmt.Errorf("%w: namespace %q has no letters or digits", ErrInvalidAnswer, ns)
	}
	return nil
}
