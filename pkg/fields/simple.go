package fields

// SimpleField handles controls driven by a value attribute and an onChange
// event: text inputs, textareas and selects.
type SimpleField struct {
	Field
}

// NewSimpleField constructs a SimpleField with the given validators.
func NewSimpleField(validators ...Validator) (*SimpleField, error) {
	base, err := NewField(validators...)
	if err != nil {
		return nil, err
	}
	return &SimpleField{Field: *base}, nil
}

// ToProps binds the current value verbatim together with the change handler.
func (f *SimpleField) ToProps(_ Form, onChange ChangeHandler, current any) Props {
	return Props{
		PropValue:    current,
		PropOnChange: onChange,
	}
}

// CreateChangeHandler forwards event.Target.Value to update unchanged.
func (f *SimpleField) CreateChangeHandler(_ Form, update UpdateFunc) ChangeHandler {
	return func(event Event, _ any) {
		update(event.Target.Value)
	}
}
