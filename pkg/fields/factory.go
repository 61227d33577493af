package fields

// Input builds a SimpleField for text-like inputs.
func Input(validators ...Validator) (Behavior, error) {
	return simple(validators)
}

// Textarea builds a SimpleField for multi-line inputs.
func Textarea(validators ...Validator) (Behavior, error) {
	return simple(validators)
}

// Select builds a SimpleField for select boxes.
func Select(validators ...Validator) (Behavior, error) {
	return simple(validators)
}

// Checkbox builds a CheckedField.
func Checkbox(validators ...Validator) (Behavior, error) {
	return checked(validators)
}

// Radio builds a CheckedField.
func Radio(validators ...Validator) (Behavior, error) {
	return checked(validators)
}

// Must panics when err is non-nil. It is meant for package level field
// declarations where a bad validator is a programming error.
func Must(b Behavior, err error) Behavior {
	if err != nil {
		panic(err)
	}
	return b
}

func simple(validators []Validator) (Behavior, error) {
	f, err := NewSimpleField(validators...)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func checked(validators []Validator) (Behavior, error) {
	f, err := NewCheckedField(validators...)
	if err != nil {
		return nil, err
	}
	return f, nil
}
