package openapi_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/openapi"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/petstore.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestForms_ExtractsOperationsWithBodies(t *testing.T) {
	forms, err := openapi.Forms(context.Background(), loadFixture(t), openapi.Options{Validate: true})
	if err != nil {
		t.Fatalf("forms: %v", err)
	}

	var ids []string
	for id := range forms {
		ids = append(ids, id)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 forms, got %v", ids)
	}
	feedback, ok := forms["post:/feedback"]
	if !ok {
		t.Fatalf("expected generated id for feedback operation, got %v", ids)
	}
	if diff := cmp.Diff([]model.Field{{Name: "message", Type: model.FieldTypeString, Format: "textarea"}}, feedback.Fields); diff != "" {
		t.Fatalf("feedback fields mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_MapsAccountSchema(t *testing.T) {
	def, err := openapi.Form(context.Background(), loadFixture(t), "createAccount", openapi.Options{})
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	want := model.FormDefinition{
		ID:    "createAccount",
		Title: "Create an account",
		Metadata: map[string]string{
			"method":   "POST",
			"endpoint": "/accounts",
		},
		Fields: []model.Field{
			{Name: "accept_terms", Type: model.FieldTypeBoolean, Required: true},
			{Name: "age", Type: model.FieldTypeInteger, Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "18"}},
				{Kind: model.ValidationRuleMax, Params: map[string]string{"value": "130"}},
			}},
			{Name: "email", Type: model.FieldTypeString, Label: "Email address", Required: true, Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "3"}},
				{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "120"}},
				{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "^[^@]+@[^@]+$"}},
			}},
			{Name: "newsletter", Type: model.FieldTypeBoolean, Widget: "radio", Value: "weekly"},
			{Name: "owner.name", Type: model.FieldTypeString, Required: true},
			{Name: "plan", Type: model.FieldTypeString, Default: "free", Enum: []any{"free", "pro"}},
		},
	}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}

	c, err := form.FromDefinition(def, form.WithValues(map[string]any{
		"email":        "ada@example.com",
		"age":          21,
		"accept_terms": true,
		"owner":        map[string]any{"name": "Ada"},
	}))
	if err != nil {
		t.Fatalf("from definition: %v", err)
	}
	out, err := c.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	wantOut := map[string]any{
		"accept_terms": true,
		"age":          21,
		"email":        "ada@example.com",
		"owner":        map[string]any{"name": "Ada"},
		"plan":         "free",
	}
	if diff := cmp.Diff(wantOut, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := openapi.Form(ctx, loadFixture(t), "missing", openapi.Options{}); !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := openapi.Forms(ctx, nil, openapi.Options{}); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := openapi.Forms(cancelled, loadFixture(t), openapi.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
