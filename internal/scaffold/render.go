package scaffold

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"github.com/iancoleman/strcase"
)

// ExpressionMarker flags a template file for the expression strategy.
const ExpressionMarker = "<%"

// Strategy selects how a template file's content is rendered.
type Strategy int

const (
	// StrategyVerbatim copies bytes unchanged (binary files, failed expressions).
	StrategyVerbatim Strategy = iota
	// StrategyLiteral applies the ordered find/replace rules.
	StrategyLiteral
	// StrategyExpression evaluates <% %> actions against the value mapping.
	StrategyExpression
)

func (s Strategy) String() string {
	switch s {
	case StrategyVerbatim:
		return "verbatim"
	case StrategyLiteral:
		return "literal"
	case StrategyExpression:
		return "expression"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// DetectStrategy picks the strategy for a file from its content.
func DetectStrategy(content []byte) Strategy {
	if isBinary(content) {
		return StrategyVerbatim
	}
	if bytes.Contains(content, []byte(ExpressionMarker)) {
		return StrategyExpression
	}
	return StrategyLiteral
}

func isBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	if kind, _ := filetype.Match(content); kind != filetype.Unknown {
		return true
	}
	return !utf8.Valid(content)
}

// Renderer turns template content into output content.
type Renderer interface {
	Render(name string, content []byte, v Values) ([]byte, error)
}

type verbatimRenderer struct{}

func (verbatimRenderer) Render(_ string, content []byte, _ Values) ([]byte, error) {
	return content, nil
}

type literalRenderer struct {
	rules Rules
}

func (r literalRenderer) Render(_ string, content []byte, v Values) ([]byte, error) {
	source := string(content)
	out := r.rules.Apply(source, v)
	if out == source {
		return content, nil
	}
	return []byte(out), nil
}

// expressionRenderer evaluates text/template actions delimited by <% %>.
// Tokens are addressed as .group.name, e.g. <% .plugin.name %>; missing
// tokens render as the empty string.
type expressionRenderer struct {
	funcs template.FuncMap
}

func (r expressionRenderer) Render(name string, content []byte, v Values) ([]byte, error) {
	tmpl, err := template.New(name).
		Delims(ExpressionMarker, "%>").
		Option("missingkey=zero").
		Funcs(r.funcs).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v.groups()); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// TemplateFuncs are the helpers available inside expression templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"kebab":      strcase.ToKebab,
		"snake":      strcase.ToSnake,
		"camel":      strcase.ToCamel,
		"lowerCamel": strcase.ToLowerCamel,
		"upper":      strings.ToUpper,
		"lower":      strings.ToLower,
	}
}
