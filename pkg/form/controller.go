package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/validation"
	"github.com/goliatone/go-formfields/pkg/validators"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

var (
	// ErrUnknownField is returned for names the controller does not manage.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrDuplicateField is returned when two entries share a name.
	ErrDuplicateField = errors.New("form: duplicate field")
	// ErrConflictingField is returned when one field name is a dotted prefix
	// of another, so both cannot share the nested output.
	ErrConflictingField = errors.New("form: conflicting field path")
	// ErrUnknownWidget is returned when a definition names a widget without
	// a registered constructor.
	ErrUnknownWidget = errors.New("form: unknown widget")
)

// Constructor builds a field behaviour from validators. The fields factories
// (fields.Input, fields.Checkbox, ...) satisfy it.
type Constructor func(validators ...fields.Validator) (fields.Behavior, error)

// Entry pairs a field name with its behaviour.
type Entry struct {
	Name     string
	Behavior fields.Behavior
}

// Field is shorthand for building an Entry.
func Field(name string, behavior fields.Behavior) Entry {
	return Entry{Name: name, Behavior: behavior}
}

// Controller owns the value store for a set of fields.
type Controller struct {
	id           string
	order        []string
	behaviors    map[string]fields.Behavior
	definitions  map[string]model.Field
	values       map[string]any
	initial      map[string]any
	registry     *widgets.Registry
	constructors map[string]Constructor
}

// Option configures a Controller.
type Option func(*Controller)

// WithID names the form.
func WithID(id string) Option {
	return func(c *Controller) {
		c.id = strings.TrimSpace(id)
	}
}

// WithValues seeds the controller with canonical values keyed by field name
// or nested by dotted path segments. Values pass through FilterInput.
func WithValues(values map[string]any) Option {
	return func(c *Controller) {
		c.initial = values
	}
}

// WithRegistry overrides the widget registry used by FromDefinition.
func WithRegistry(registry *widgets.Registry) Option {
	return func(c *Controller) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithConstructor registers the behaviour constructor for a widget name,
// replacing any built-in one.
func WithConstructor(widget string, ctor Constructor) Option {
	return func(c *Controller) {
		name := strings.ToLower(strings.TrimSpace(widget))
		if name == "" || ctor == nil {
			return
		}
		c.constructors[name] = ctor
	}
}

// New builds a controller over explicit entries, in the given order.
func New(entries []Entry, opts ...Option) (*Controller, error) {
	c := newController(opts)
	for _, entry := range entries {
		if err := c.add(entry.Name, entry.Behavior, nil); err != nil {
			return nil, err
		}
	}
	c.seed(nil)
	return c, nil
}

// FromDefinition builds a controller from a declarative definition. Widgets
// are resolved through the registry, validators through validators.FromRules,
// and field defaults seed values that WithValues does not provide.
func FromDefinition(def model.FormDefinition, opts ...Option) (*Controller, error) {
	c := newController(opts)
	if c.id == "" {
		c.id = def.ID
	}

	defaults := make(map[string]any, len(def.Fields))
	for _, field := range def.Fields {
		widget, ok := c.registry.Resolve(field)
		if !ok {
			return nil, fmt.Errorf("%w: field %q resolves to no widget", ErrUnknownWidget, field.Name)
		}
		ctor, ok := c.constructors[widget]
		if !ok {
			return nil, fmt.Errorf("%w: %q (field %q)", ErrUnknownWidget, widget, field.Name)
		}
		list, err := validators.FromRules(field)
		if err != nil {
			return nil, fmt.Errorf("form: field %q: %w", field.Name, err)
		}
		behavior, err := ctor(list...)
		if err != nil {
			return nil, fmt.Errorf("form: field %q: %w", field.Name, err)
		}
		field.Widget = widget
		if err := c.add(field.Name, behavior, &field); err != nil {
			return nil, err
		}
		if field.Default != nil {
			defaults[field.Name] = field.Default
		}
	}
	c.seed(defaults)
	return c, nil
}

func newController(opts []Option) *Controller {
	c := &Controller{
		behaviors:   make(map[string]fields.Behavior),
		definitions: make(map[string]model.Field),
		values:      make(map[string]any),
		registry:    widgets.NewRegistry(),
		constructors: map[string]Constructor{
			widgets.WidgetInput:    fields.Input,
			widgets.WidgetTextarea: fields.Textarea,
			widgets.WidgetSelect:   fields.Select,
			widgets.WidgetCheckbox: fields.Checkbox,
			widgets.WidgetRadio:    fields.Radio,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Controller) add(name string, behavior fields.Behavior, def *model.Field) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("form: field name is required")
	}
	if behavior == nil {
		return fmt.Errorf("form: field %q has no behaviour", name)
	}
	if _, exists := c.behaviors[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateField, name)
	}
	for _, existing := range c.order {
		if strings.HasPrefix(name, existing+".") || strings.HasPrefix(existing, name+".") {
			return fmt.Errorf("%w: %q and %q", ErrConflictingField, existing, name)
		}
	}
	c.order = append(c.order, name)
	c.behaviors[name] = behavior
	if def != nil {
		c.definitions[name] = *def
	}
	return nil
}

func (c *Controller) seed(defaults map[string]any) {
	for _, name := range c.order {
		value, ok := lookup(c.initial, name)
		if !ok {
			value = defaults[name]
		}
		c.store(name, value)
	}
}

func (c *Controller) store(name string, value any) {
	if value == nil {
		value = ""
	}
	c.values[name] = c.behaviors[name].FilterInput(value)
}

// ID returns the form id.
func (c *Controller) ID() string {
	return c.id
}

// Names returns the field names in declaration order.
func (c *Controller) Names() []string {
	return append([]string(nil), c.order...)
}

// Field returns the behaviour registered under name.
func (c *Controller) Field(name string) (fields.Behavior, bool) {
	b, ok := c.behaviors[name]
	return b, ok
}

// Definition returns the declarative field a FromDefinition controller was
// built from, with its resolved widget.
func (c *Controller) Definition(name string) (model.Field, bool) {
	def, ok := c.definitions[name]
	return def, ok
}

// Value returns the internal value of a field.
func (c *Controller) Value(name string) (any, error) {
	if _, ok := c.behaviors[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return c.values[name], nil
}

// SetValue stores a canonical value for a field through FilterInput.
func (c *Controller) SetValue(name string, value any) error {
	if _, ok := c.behaviors[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.store(name, value)
	return nil
}

// Bind returns the bound methods for a field.
func (c *Controller) Bind(name string) (fields.Methods, error) {
	behavior, ok := c.behaviors[name]
	if !ok {
		return fields.Methods{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	update := func(v any) { c.values[name] = v }
	current := func() any { return c.values[name] }
	return fields.Bind(behavior, c, name, update, current), nil
}

// Props returns the props for a field.
func (c *Controller) Props(name string) (fields.Props, error) {
	methods, err := c.Bind(name)
	if err != nil {
		return nil, err
	}
	return methods.Props(), nil
}

// Handle dispatches a UI event to a field.
func (c *Controller) Handle(name string, event fields.Event) error {
	methods, err := c.Bind(name)
	if err != nil {
		return err
	}
	methods.Handle(event)
	return nil
}

// ValidateField validates one field into violations.
func (c *Controller) ValidateField(name string, violations *validation.Violations) error {
	behavior, ok := c.behaviors[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	behavior.Validate(c.values[name], violations.At(name))
	return nil
}

// Validate runs every field's validators in declaration order.
func (c *Controller) Validate() *validation.Violations {
	violations := validation.New()
	for _, name := range c.order {
		c.behaviors[name].Validate(c.values[name], violations.At(name))
	}
	return violations
}

// Output returns the externally visible values, nested by dotted names.
// Fields whose FilterOutput omits the value are left out.
func (c *Controller) Output() map[string]any {
	out := make(map[string]any, len(c.order))
	for _, name := range c.order {
		value, ok := c.behaviors[name].FilterOutput(c.values[name])
		if !ok {
			continue
		}
		assign(out, name, value)
	}
	return out
}

// Submit validates the form and returns its output, or the violations as a
// *validation.Error.
func (c *Controller) Submit() (map[string]any, error) {
	if err := c.Validate().Err(); err != nil {
		return nil, err
	}
	return c.Output(), nil
}
