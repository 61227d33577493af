package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/openapi"
)

// MustLoadDefinition reads a definition file and returns the form with the
// given id. Failures abort the test.
func MustLoadDefinition(t *testing.T, path, id string) model.FormDefinition {
	t.Helper()

	form, err := LoadDefinition(path, id)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return form
}

// LoadDefinition is the error-returning variant of MustLoadDefinition for
// callers doing setup outside of *testing.T.
func LoadDefinition(path, id string) (model.FormDefinition, error) {
	if path == "" {
		return model.FormDefinition{}, errors.New("testsupport: definition path is required")
	}
	store, err := definition.LoadFile(path)
	if err != nil {
		return model.FormDefinition{}, fmt.Errorf("testsupport: load definition: %w", err)
	}
	return store.Form(id)
}

// MustLoadOperationForm derives the form for one operation of an OpenAPI
// fixture.
func MustLoadOperationForm(t *testing.T, path, operationID string) model.FormDefinition {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	form, err := openapi.Form(Context(), data, operationID, openapi.Options{})
	if err != nil {
		t.Fatalf("openapi form %q: %v", operationID, err)
	}
	return form
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
