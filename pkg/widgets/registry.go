package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formfields/pkg/model"
)

// Built-in widget identifiers. Each maps onto a fields factory of the same
// name.
const (
	WidgetInput    = "input"
	WidgetTextarea = "textarea"
	WidgetSelect   = "select"
	WidgetCheckbox = "checkbox"
	WidgetRadio    = "radio"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects a widget for fields that do not name one explicitly.
// Higher priority wins; ties fall back to registration order. Fields no
// matcher claims resolve to the fallback widget.
type Registry struct {
	mu       sync.RWMutex
	rules    []rule
	fallback string
}

// NewRegistry constructs a registry with the built-in matchers registered
// and WidgetInput as fallback.
func NewRegistry() *Registry {
	reg := &Registry{fallback: WidgetInput}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// SetFallback changes the widget used when no matcher applies. An empty name
// disables the fallback.
func (r *Registry) SetFallback(name string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.fallback = strings.ToLower(strings.TrimSpace(name))
	r.mu.Unlock()
}

// Resolve returns the widget for a field. The explicit Widget attribute and
// the "widget" metadata key win over matchers.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	fallback := r.fallback
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	if fallback != "" {
		return fallback, true
	}
	return "", false
}

// Decorate implements model.Decorator, filling in Widget for every field that
// does not set one.
func (r *Registry) Decorate(form *model.FormDefinition) error {
	if r == nil || form == nil {
		return nil
	}
	for idx, field := range form.Fields {
		if field.Widget != "" {
			continue
		}
		if widget, ok := r.Resolve(field); ok {
			form.Fields[idx].Widget = widget
		}
	}
	return nil
}

func explicitWidget(field model.Field) string {
	if widget := strings.TrimSpace(field.Widget); widget != "" {
		return strings.ToLower(widget)
	}
	if field.Metadata != nil {
		if widget := strings.TrimSpace(field.Metadata["widget"]); widget != "" {
			return strings.ToLower(widget)
		}
	}
	return ""
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCheckbox, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		return len(field.Enum) > 0
	})

	r.Register(WidgetTextarea, 60, func(field model.Field) bool {
		if field.Type != "" && field.Type != model.FieldTypeString {
			return false
		}
		format := strings.ToLower(strings.TrimSpace(field.Format))
		return format == "textarea" || format == "markdown" || format == "html"
	})
}
