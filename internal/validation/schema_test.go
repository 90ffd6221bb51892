package validation

import (
	"errors"
	"testing"
)

func objectSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":    map[string]any{"type": "string"},
			"subtitle": map[string]any{"type": "string"},
		},
		"required":             []any{"title"},
		"additionalProperties": true,
	}
}

func TestValidatePayloadAcceptsValidPayload(t *testing.T) {
	t.Parallel()

	err := ValidatePayload(objectSchema(), map[string]any{
		"title":    "Hello",
		"subtitle": "World",
		"extra":    42,
	})
	if err != nil {
		t.Fatalf("expected payload to validate, got %v", err)
	}
}

func TestValidatePayloadEmptySchemaAcceptsAnything(t *testing.T) {
	t.Parallel()

	if err := ValidatePayload(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("expected nil schema to accept payload, got %v", err)
	}
	if err := ValidatePayload(map[string]any{}, nil); err != nil {
		t.Fatalf("expected empty schema to accept nil payload, got %v", err)
	}
}

func TestValidatePayloadReportsIssues(t *testing.T) {
	t.Parallel()

	err := ValidatePayload(objectSchema(), map[string]any{"subtitle": 7})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}

	issues := Issues(err)
	if len(issues) == 0 {
		t.Fatal("expected validation issues")
	}
	for _, issue := range issues {
		if issue.Message == "" {
			t.Fatalf("expected issue message, got %+v", issue)
		}
	}
}

func TestValidateSchemaRejectsBrokenSchema(t *testing.T) {
	t.Parallel()

	err := ValidateSchema(map[string]any{"type": "not-a-type"})
	if err == nil {
		t.Fatal("expected schema compilation to fail")
	}
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestIssuesFallsBackToErrorMessage(t *testing.T) {
	t.Parallel()

	issues := Issues(errors.New("boom"))
	if len(issues) != 1 || issues[0].Message != "boom" {
		t.Fatalf("unexpected issues %+v", issues)
	}
	if Issues(nil) != nil {
		t.Fatal("expected nil issues for nil error")
	}
}
