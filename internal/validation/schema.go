package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// ValidateSchema ensures the schema can be compiled.
func ValidateSchema(schema map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	if _, err := compileSchema(schema); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return nil
}

// ValidatePayload validates payload against the provided JSON schema.
func ValidatePayload(schema map[string]any, payload map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	if payload == nil {
		payload = map[string]any{}
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if err := compiled.Validate(normalizeJSON(payload)); err != nil {
		return &PayloadValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// normalizeJSON round-trips through encoding/json so Go-native values (ints,
// custom map types) line up with the decoder output the validator expects.
func normalizeJSON(payload map[string]any) any {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return payload
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return payload
	}
	return normalized
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	leaves := flattenValidationErrors(err)
	issues := make([]ValidationIssue, 0, len(leaves))
	for _, leaf := range leaves {
		issues = append(issues, ValidationIssue{
			Location: leaf.InstanceLocation,
			Message:  leaf.Message,
		})
	}
	if len(issues) == 0 {
		issues = append(issues, ValidationIssue{
			Location: err.InstanceLocation,
			Message:  err.Message,
		})
	}
	return issues
}

func flattenValidationErrors(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if err == nil {
		return nil
	}
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, flattenValidationErrors(cause)...)
	}
	return leaves
}
