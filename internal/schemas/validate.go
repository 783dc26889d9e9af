// Package schemas validates generative-service responses against embedded
// JSON Schemas.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Embedded schema names.
const (
	ReviewSchema       = "review.schema.json"
	OptimizationSchema = "optimization.schema.json"
	KeyphraseSchema    = "keyphrases.schema.json"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// MalformedError reports a document that is not a JSON object.
type MalformedError struct {
	Cause error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed JSON document: %v", e.Cause)
}

func (e *MalformedError) Unwrap() error {
	return e.Cause
}

// Load returns the content of an embedded schema.
func Load(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return "", &SchemaLoadError{Path: name, Message: "schema not embedded", Cause: err}
	}
	return string(data), nil
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// Validate checks jsonContent against the named embedded schema.
func Validate(name, jsonContent string) error {
	schema, err := Load(name)
	if err != nil {
		return err
	}
	return ValidateJSONString(schema, jsonContent)
}

// Sanitize validates jsonContent against the named schema and drops whatever
// fails: a bad array element is removed from its array, any other bad value
// removes its top-level field. Callers then decode the result so dropped
// fields take their zero or default values. Documents that are not objects,
// or that fail at the root, are returned as errors along with the field errors.
func Sanitize(name, jsonContent string) ([]byte, []FieldError, error) {
	schema, err := Load(name)
	if err != nil {
		return nil, nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(jsonContent), &doc); err != nil {
		return nil, nil, &MalformedError{Cause: err}
	}
	if doc == nil {
		return nil, nil, &MalformedError{Cause: fmt.Errorf("document is null")}
	}

	err = ValidateJSONString(schema, jsonContent)
	if err == nil {
		return []byte(jsonContent), nil, nil
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		return nil, nil, err
	}

	drops := make(map[string][]int)
	for _, fe := range verr.Errors {
		if fe.Field == "(root)" {
			return nil, verr.Errors, verr
		}
		parts := strings.Split(fe.Field, ".")
		key := parts[0]
		if len(parts) > 1 {
			if idx, convErr := strconv.Atoi(parts[1]); convErr == nil {
				if _, isArray := doc[key].([]any); isArray {
					drops[key] = append(drops[key], idx)
					continue
				}
			}
		}
		delete(doc, key)
	}
	for key, indices := range drops {
		items, ok := doc[key].([]any)
		if !ok {
			continue
		}
		doc[key] = removeIndices(items, indices)
	}

	cleaned, err := json.Marshal(doc)
	if err != nil {
		return nil, verr.Errors, &MalformedError{Cause: err}
	}
	if err := ValidateJSONString(schema, string(cleaned)); err != nil {
		return nil, verr.Errors, err
	}
	return cleaned, verr.Errors, nil
}

func removeIndices(items []any, indices []int) []any {
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
	last := -1
	for _, i := range indices {
		if i == last || i < 0 || i >= len(items) {
			continue
		}
		items = append(items[:i], items[i+1:]...)
		last = i
	}
	return items
}
