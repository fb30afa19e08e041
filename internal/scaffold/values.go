package scaffold

import (
	"sort"
	"strings"
)

// Token names understood by the built-in templates and rules.
const (
	TokenPluginID   = "plugin.id"
	TokenPluginBase = "plugin.base"
	TokenPluginName = "plugin.name"
	TokenNamespace  = "code.namespace"
	TokenTemplate   = "code.template"
	TokenUserName   = "user.name"
	TokenUserEmail  = "user.email"
	TokenRepoOwner  = "repo.owner"
	TokenRepoName   = "repo.name"
)

// Values is the immutable token mapping for one generation run. The zero
// value is an empty mapping.
type Values struct {
	entries map[string]string
}

// NewValues copies m into a new Values.
func NewValues(m map[string]string) Values {
	entries := make(map[string]string, len(m))
	for k, v := range m {
		entries[k] = v
	}
	return Values{entries: entries}
}

// Get returns the value for key and whether it is present.
func (v Values) Get(key string) (string, bool) {
	val, ok := v.entries[key]
	return val, ok
}

// String returns the value for key, or "" when absent.
func (v Values) String(key string) string {
	return v.entries[key]
}

// Len returns the number of tokens.
func (v Values) Len() int {
	return len(v.entries)
}

// Keys returns the token names in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v.entries))
	for k := range v.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// With returns a copy of v with key set to value.
func (v Values) With(key, value string) Values {
	next := NewValues(v.entries)
	next.entries[key] = value
	return next
}

// Map returns a copy of the mapping.
func (v Values) Map() map[string]string {
	return NewValues(v.entries).entries
}

// groups splits dotted token names into the two-level shape expression
// templates address as .group.name. Undotted names land in the "" group.
func (v Values) groups() map[string]map[string]string {
	out := make(map[string]map[string]string)
	for k, val := range v.entries {
		group, name, ok := strings.Cut(k, ".")
		if !ok {
			group, name = "", k
		}
		if out[group] == nil {
			out[group] = make(map[string]string)
		}
		out[group][name] = val
	}
	return out
}
