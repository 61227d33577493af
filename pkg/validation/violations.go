package validation

import (
	"fmt"
	"strings"
)

// Violation is one failed check. An empty Path marks a form-level violation.
type Violation struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Violations collects violations in the order validators report them. The zero
// value is ready to use. It satisfies fields.ValidationContext for form-level
// messages; use At to obtain a context scoped to one field.
type Violations struct {
	items []Violation
}

// New returns an empty collection.
func New() *Violations {
	return &Violations{}
}

// AddViolation records a form-level violation.
func (v *Violations) AddViolation(message string) {
	v.Add("", message)
}

// Add records a violation under path.
func (v *Violations) Add(path, message string) {
	v.items = append(v.items, Violation{
		Path:    strings.TrimSpace(path),
		Message: message,
	})
}

// At returns a context that records violations under path.
func (v *Violations) At(path string) *Scope {
	return &Scope{parent: v, path: strings.TrimSpace(path)}
}

// All returns a copy of the recorded violations.
func (v *Violations) All() []Violation {
	if v == nil || len(v.items) == 0 {
		return nil
	}
	return append([]Violation(nil), v.items...)
}

// For returns the messages recorded under path.
func (v *Violations) For(path string) []string {
	if v == nil {
		return nil
	}
	var out []string
	for _, item := range v.items {
		if item.Path == path {
			out = append(out, item.Message)
		}
	}
	return out
}

// Len reports the number of recorded violations.
func (v *Violations) Len() int {
	if v == nil {
		return 0
	}
	return len(v.items)
}

// Empty reports whether nothing was recorded.
func (v *Violations) Empty() bool {
	return v.Len() == 0
}

// Mapping groups messages into field-level and form-level buckets.
func (v *Violations) Mapping() ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if v == nil {
		mapping.Fields = nil
		return mapping
	}
	for _, item := range v.items {
		if item.Path == "" {
			mapping.Form = append(mapping.Form, item.Message)
			continue
		}
		mapping.Fields[item.Path] = append(mapping.Fields[item.Path], item.Message)
	}
	for path, messages := range mapping.Fields {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			delete(mapping.Fields, path)
			continue
		}
		mapping.Fields[path] = normalized
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// Err returns nil when nothing was recorded, otherwise an *Error carrying the
// grouped messages.
func (v *Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &Error{Mapping: v.Mapping(), Violations: v.All()}
}

// Scope is a ValidationContext bound to a single field path.
type Scope struct {
	parent *Violations
	path   string
}

// AddViolation records message under the scope path.
func (s *Scope) AddViolation(message string) {
	s.parent.Add(s.path, message)
}

// Path returns the scope path.
func (s *Scope) Path() string {
	return s.path
}

// ErrorMapping splits messages into field-level and form-level groups.
type ErrorMapping struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// Error is returned by Violations.Err.
type Error struct {
	Mapping    ErrorMapping
	Violations []Violation
}

func (e *Error) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "validation: failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, item := range e.Violations {
		if item.Path == "" {
			parts = append(parts, item.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", item.Path, item.Message))
	}
	return "validation: " + strings.Join(parts, "; ")
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
