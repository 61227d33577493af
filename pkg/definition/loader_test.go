package definition_test

import (
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/model"
)

func TestLoadFS(t *testing.T) {
	store, err := definition.LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}

	if diff := cmp.Diff([]string{"contact", "signup"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	contact, err := store.Form("contact")
	if err != nil {
		t.Fatalf("form contact: %v", err)
	}
	want := model.FormDefinition{
		ID:    "contact",
		Title: "Contact us",
		Fields: []model.Field{
			{Name: "name", Required: true},
			{Name: "message", Widget: "textarea", Required: true},
		},
	}
	if diff := cmp.Diff(want, contact); diff != "" {
		t.Fatalf("contact mismatch (-want +got):\n%s", diff)
	}

	signup, err := store.Form("signup")
	if err != nil {
		t.Fatalf("form signup: %v", err)
	}
	if len(signup.Fields) != 5 {
		t.Fatalf("expected 5 signup fields, got %d", len(signup.Fields))
	}
	email := signup.Fields[0]
	if email.Validations[0].Params["pattern"] != `^[^@\s]+@[^@\s]+$` {
		t.Fatalf("unexpected pattern %q", email.Validations[0].Params["pattern"])
	}
	if diff := cmp.Diff([]any{"free", "pro"}, signup.Fields[2].Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SingleFormTakesIDFromSource(t *testing.T) {
	forms, err := definition.Parse([]byte("fields:\n  - name: q\n"), "forms/search.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(forms) != 1 || forms[0].ID != "search" {
		t.Fatalf("expected single form with id search, got %+v", forms)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":           "  ",
		"invalid":         "{not: [valid",
		"no forms":        "title: nothing",
		"unnamed field":   "id: x\nfields:\n  - label: Missing\n",
		"duplicate field": "id: x\nfields:\n  - name: a\n  - name: a\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := definition.Parse([]byte(data), "case.yaml"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFS_DuplicateForms(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("id: dup\nfields:\n  - name: a\n")},
		"b.json": {Data: []byte(`{"id": "dup", "fields": [{"name": "b"}]}`)},
	}
	if _, err := definition.LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate form error")
	}
}

func TestStore_FormNotFound(t *testing.T) {
	store, err := definition.LoadFS(nil)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
	if _, err := store.Form("missing"); !errors.Is(err, definition.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	store, err := definition.LoadFile("testdata/contact.json")
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if _, err := store.Form("contact"); err != nil {
		t.Fatalf("form: %v", err)
	}
}
