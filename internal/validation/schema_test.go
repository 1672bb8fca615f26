package validation

import (
	"errors"
	"testing"
)

var chapterMetadataSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"source": map[string]any{"type": "string"},
		"documents": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": true,
			},
		},
	},
	"additionalProperties": true,
}

func TestValidatePayloadAcceptsChapterMetadata(t *testing.T) {
	payload := map[string]any{
		"source": "markdown",
		"documents": []any{
			map[string]any{"path": "basics/classes.md", "checksum": "abc"},
		},
	}

	if err := ValidatePayload(chapterMetadataSchema, payload); err != nil {
		t.Fatalf("expected payload to validate: %v", err)
	}
}

func TestValidatePayloadReportsIssues(t *testing.T) {
	payload := map[string]any{
		"source": 42,
	}

	err := ValidatePayload(chapterMetadataSchema, payload)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}

	issues := Issues(err)
	if len(issues) == 0 {
		t.Fatal("expected at least one issue")
	}
	if issues[0].Location == "" && issues[0].Message == "" {
		t.Fatalf("issue should carry location or message: %#v", issues[0])
	}
}

func TestValidateSchemaRejectsBrokenSchema(t *testing.T) {
	schema := map[string]any{
		"type": "not-a-type",
	}
	if err := ValidateSchema(schema); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidatePayloadEmptySchemaIsNoop(t *testing.T) {
	if err := ValidatePayload(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("nil schema should validate anything: %v", err)
	}
}
