package prompt

import (
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
)

// RepoPrefix is the conventional prefix of Zotero plugin repositories.
const RepoPrefix = "zotero-"

// NamespaceRoot is the global object plugin namespaces hang off.
const NamespaceRoot = "Zotero."

// OwnerPlaceholder stands in for the repository owner when it cannot be
// looked up.
const OwnerPlaceholder = "your-github-username"

var (
	wordStart    = regexp.MustCompile(`(^|-)([a-z])`)
	nonAlnum     = regexp.MustCompile(`[^A-Za-z0-9]`)
	namespaceTop = regexp.MustCompile(`^Zotero.`)
)

// MakePluginName turns a directory name into a repository name: kebab case,
// with RepoPrefix added unless already present.
func MakePluginName(name string) string {
	name = strcase.ToKebab(name)
	if !strings.HasPrefix(name, RepoPrefix) {
		name = RepoPrefix + name
	}
	return name
}

// DefaultPluginID suggests <repo>@<email domain>. An email without "@" is
// used whole.
func DefaultPluginID(repo, email string) string {
	domain := email
	if _, after, ok := strings.Cut(email, "@"); ok {
		domain = after
	}
	return repo + "@" + domain
}

// PluginBase returns the part of a plugin id before "@".
func PluginBase(id string) string {
	base, _, _ := strings.Cut(id, "@")
	return base
}

// HumanName derives a display name from a plugin base:
// "zotero-better-notes" becomes "Better Notes".
func HumanName(base string) string {
	name := strings.Replace(base, RepoPrefix, "", 1)
	name = wordStart.ReplaceAllStringFunc(name, func(s string) string {
		return strings.ReplaceAll(strings.ToUpper(s), "-", " ")
	})
	return strings.TrimSpace(name)
}

// DefaultNamespace suggests Zotero.<Name> for a display name.
func DefaultNamespace(name string) string {
	return NamespaceRoot + strings.ReplaceAll(name, " ", "")
}

// NormalizeNamespace reduces a namespace to Zotero. followed by
// alphanumerics. A leading "Zotero." is accepted but not required.
func NormalizeNamespace(ns string) string {
	ns = namespaceTop.ReplaceAllString(ns, "")
	return NamespaceRoot + nonAlnum.ReplaceAllString(ns, "")
}
