package scaffold

import (
	"regexp"
	"strings"
)

// tokenRef matches %group.name% references inside rule replacements and
// rename targets.
var tokenRef = regexp.MustCompile(`%([A-Za-z][A-Za-z0-9_]*(?:\.[A-Za-z0-9_]+)*)%`)

// Rule is one literal find/replace step. Replace may reference capture
// groups ($1, ${1}) and tokens (%plugin.base%).
type Rule struct {
	Pattern *regexp.Regexp
	Replace string
}

// NewRule compiles pattern into a Rule. It panics on an invalid pattern and
// is meant for package-level rule tables.
func NewRule(pattern, replace string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Replace: replace}
}

// Apply runs the rule over s. A rule that references a token missing from
// v leaves s untouched.
func (r Rule) Apply(s string, v Values) string {
	repl, ok := expandTokens(r.Replace, v, true)
	if !ok {
		return s
	}
	return r.Pattern.ReplaceAllString(s, repl)
}

// Rules is an ordered rule list. Order matters: the most specific pattern
// comes first so a shorter token never rewrites part of a longer one.
type Rules []Rule

// Apply rewrites s in a single pass. At each position the first rule in
// list order that matches wins, and replaced text is never matched again, so
// a value that itself contains a template token is inserted as is.
func (rs Rules) Apply(s string, v Values) string {
	var (
		active []activeRule
		alts   []string
		group  = 1
	)
	for _, r := range rs {
		repl, ok := expandTokens(r.Replace, v, true)
		if !ok {
			continue
		}
		active = append(active, activeRule{Rule: r, repl: repl, group: group})
		alts = append(alts, "("+r.Pattern.String()+")")
		group += 1 + r.Pattern.NumSubexp()
	}
	if len(active) == 0 {
		return s
	}

	combined := regexp.MustCompile(strings.Join(alts, "|"))
	matches := combined.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}

	var out []byte
	last := 0
	for _, m := range matches {
		out = append(out, s[last:m[0]]...)
		for _, a := range active {
			if m[2*a.group] < 0 {
				continue
			}
			// The rule's own groups follow its wrapping group, which is the
			// layout Expand expects for the rule's pattern.
			sub := m[2*a.group : 2*(a.group+1+a.Pattern.NumSubexp())]
			out = a.Pattern.ExpandString(out, a.repl, s, sub)
			break
		}
		last = m[1]
	}
	return string(append(out, s[last:]...))
}

type activeRule struct {
	Rule
	repl  string
	group int
}

// DefaultRules returns the substitutions for the make-it-red templates.
func DefaultRules() Rules {
	return Rules{
		NewRule(`https://github\.com/zotero/make-it-red`, "https://github.com/%repo.owner%/%repo.name%"),
		NewRule(`make-it-red@zotero\.org`, "%plugin.id%"),
		NewRule(`make-it-red-ftl`, "%plugin.base%-ftl"),
		NewRule(`make-it-red\.ftl`, "%plugin.base%.ftl"),
		NewRule(`make-it-red\.properties`, "%plugin.base%.properties"),
		NewRule(`Zotero\.MakeItRed`, "%code.namespace%"),
		NewRule(`Makes everything red`, "%plugin.name%"),
		NewRule(`Make It Red`, "%plugin.name%"),
		NewRule(`(content|locale|skin)(\s+)make-it-red(\s)`, "${1}${2}%plugin.base%${3}"),
		NewRule(`(['"])make-it-red(['"])`, "${1}%plugin.base%${2}"),
		NewRule(`\.make-it-red\.`, ".%plugin.base%."),
		NewRule(`/make-it-red/`, "/%plugin.base%/"),
		NewRule(`make-it-red([-.])`, "%plugin.base%${1}"),
	}
}

// Expand resolves %token% references in s. The boolean is false when any
// referenced token is missing, in which case s is returned unchanged.
func Expand(s string, v Values) (string, bool) {
	return expandTokens(s, v, false)
}

func expandTokens(s string, v Values, escapeDollar bool) (string, bool) {
	ok := true
	out := tokenRef.ReplaceAllStringFunc(s, func(ref string) string {
		val, found := v.Get(ref[1 : len(ref)-1])
		if !found {
			ok = false
			return ref
		}
		if escapeDollar {
			return strings.ReplaceAll(val, "$", "$$")
		}
		return val
	})
	if !ok {
		return s, false
	}
	return out, true
}
