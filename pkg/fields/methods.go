package fields

// Methods binds a behaviour to one named slot of a form. It is what a form
// controller hands to a UI element.
type Methods struct {
	behavior Behavior
	form     Form
	name     string
	update   UpdateFunc
	current  func() any
	handler  ChangeHandler
}

// Bind wires b to a form slot. update stores a new internal value and current
// reads it back; both are owned by the caller.
func Bind(b Behavior, form Form, name string, update UpdateFunc, current func() any) Methods {
	if update == nil {
		update = func(any) {}
	}
	if current == nil {
		current = func() any { return nil }
	}
	m := Methods{
		behavior: b,
		form:     form,
		name:     name,
		update:   update,
		current:  current,
	}
	raw := b.CreateChangeHandler(form, update)
	m.handler = func(event Event, _ any) {
		raw(event, current())
	}
	return m
}

// Name returns the bound slot name.
func (m Methods) Name() string {
	return m.name
}

// Props returns the behaviour props for the current value plus the slot name.
// The handler in the props reads the current value when it fires.
func (m Methods) Props() Props {
	props := m.behavior.ToProps(m.form, m.handler, m.current())
	if props == nil {
		props = Props{}
	}
	props[PropName] = m.name
	return props
}

// Handle dispatches event through the bound change handler.
func (m Methods) Handle(event Event) {
	m.handler(event, nil)
}

// SetValue stores v through FilterInput. A nil value is stored as the empty
// string.
func (m Methods) SetValue(v any) {
	if v == nil {
		v = ""
	}
	m.update(m.behavior.FilterInput(v))
}
