package manifest

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

// Kind selects the schema a document is validated against.
type Kind string

const (
	KindPackage Kind = "package"
	KindAddon   Kind = "addon"
)

func (k Kind) resource() string {
	return string(k) + ".schema.json"
}

var (
	compiledSchemas map[Kind]*jsonschema.Schema
	compileOnce     sync.Once
	compileErr      error
	printer         = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// Warnings renders the issues as one line each, prefixed with file.
func (r *ValidationResult) Warnings(file string) []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.describe(file))
	}
	return out
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/name", "/xpi/updateLink")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

func (i ValidationIssue) describe(file string) string {
	path := i.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s%s: %s", file, path, i.Message)
}

// getSchemas compiles the embedded JSON schemas once.
func getSchemas() (map[Kind]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		kinds := []Kind{KindPackage, KindAddon}
		for _, k := range kinds {
			raw, err := schemaFS.ReadFile("schema/" + k.resource())
			if err != nil {
				compileErr = fmt.Errorf("reading %s schema: %w", k, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling %s schema JSON: %w", k, err)
				return
			}
			if err := c.AddResource(k.resource(), doc); err != nil {
				compileErr = fmt.Errorf("adding %s schema resource: %w", k, err)
				return
			}
		}

		schemas := make(map[Kind]*jsonschema.Schema, len(kinds))
		for _, k := range kinds {
			s, err := c.Compile(k.resource())
			if err != nil {
				compileErr = fmt.Errorf("compiling %s schema: %w", k, err)
				return
			}
			schemas[k] = s
		}
		compiledSchemas = schemas
	})
	return compiledSchemas, compileErr
}

// Validate checks raw JSON bytes against the schema for kind.
// The error return is for malformed JSON or schema compilation failures.
// Validation issues are returned in the ValidationResult.
func Validate(kind Kind, data []byte) (*ValidationResult, error) {
	schemas, err := getSchemas()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	schema, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("unknown manifest kind %q", kind)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectValidationIssues(cause, issues)
		}
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	var keyword, msg string
	if ve.ErrorKind != nil {
		if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
			keyword = kwPath[len(kwPath)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}

	// Container keywords only repeat what their causes say.
	if keyword == "allOf" || keyword == "$ref" || keyword == "" {
		return
	}

	*issues = append(*issues, ValidationIssue{
		Path:    path,
		Message: msg,
		Keyword: keyword,
	})
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
