package model

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"name":         "Name",
		"accept_terms": "Accept Terms",
		"firstName":    "First Name",
		"address2":     "Address 2",
		"owner.email":  "Owner Email",
		"ALLCAPS":      "Allcaps",
	}
	for in, want := range cases {
		if got := DefaultLabeler(in); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}

	if got := (Field{Name: "x", Label: "Custom"}).DisplayLabel(); got != "Custom" {
		t.Fatalf("explicit label ignored, got %q", got)
	}
}
