package fields

// Checked is the compound value a CheckedField tracks internally. It never
// leaves the field in raw form; FilterOutput collapses it.
type Checked struct {
	Checked bool `json:"checked"`
	Value   any  `json:"value,omitempty"`
}

// CheckedField handles checkboxes and radio buttons.
type CheckedField struct {
	Field
}

// NewCheckedField constructs a CheckedField with the given validators.
func NewCheckedField(validators ...Validator) (*CheckedField, error) {
	base, err := NewField(validators...)
	if err != nil {
		return nil, err
	}
	return &CheckedField{Field: *base}, nil
}

// ToProps exposes the checked flag and binds the handler to onClick.
func (f *CheckedField) ToProps(_ Form, onChange ChangeHandler, current any) Props {
	return Props{
		PropChecked: asChecked(current).Checked,
		PropOnClick: onChange,
	}
}

// CreateChangeHandler toggles the checked flag of the value current at event
// time and records the element value alongside it.
func (f *CheckedField) CreateChangeHandler(_ Form, update UpdateFunc) ChangeHandler {
	return func(event Event, current any) {
		update(Checked{
			Checked: !asChecked(current).Checked,
			Value:   event.Target.Value,
		})
	}
}

// FilterOutput reports the element value when checked, or true when that value
// is empty. Unchecked fields are omitted.
func (f *CheckedField) FilterOutput(current any) (any, bool) {
	c := asChecked(current)
	if !c.Checked {
		return nil, false
	}
	if Truthy(c.Value) {
		return c.Value, true
	}
	return true, true
}

// FilterInput rebuilds the compound shape from a canonical value. Only the
// checked flag survives the round trip.
func (f *CheckedField) FilterInput(in any) any {
	return Checked{Checked: Truthy(in)}
}

// Validate runs the validators against the collapsed output value, so they
// see nil for an unchecked field and never the compound shape.
func (f *CheckedField) Validate(current any, ctx ValidationContext) {
	out, ok := f.FilterOutput(current)
	if !ok {
		out = nil
	}
	f.Field.Validate(out, ctx)
}

// asChecked reads the compound shape. Anything else is treated as unchecked.
func asChecked(value any) Checked {
	switch typed := value.(type) {
	case Checked:
		return typed
	case *Checked:
		if typed == nil {
			return Checked{}
		}
		return *typed
	case map[string]any:
		return Checked{
			Checked: Truthy(typed["checked"]),
			Value:   typed["value"],
		}
	default:
		return Checked{}
	}
}
