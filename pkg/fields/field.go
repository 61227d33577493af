package fields

import "fmt"

// Form is the controller that owns the canonical value store. Behaviours
// receive it as context only; the built-in fields never inspect it.
type Form any

// ValidationContext collects violations during a validate pass. It is
// supplied by the caller and passed through to every validator untouched.
type ValidationContext interface {
	AddViolation(message string)
}

// Validator checks a value and reports failures through ctx.
type Validator func(value any, ctx ValidationContext)

// UpdateFunc stores a new value for the field in the owning form.
type UpdateFunc func(value any)

// ChangeHandler reacts to a UI event. current is the field value at the time
// the event fires.
type ChangeHandler func(event Event, current any)

// Target mirrors the element that raised an event.
type Target struct {
	Name    string
	Value   any
	Checked bool
}

// Event is the minimal event payload a change handler needs.
type Event struct {
	Target Target
}

// Prop keys produced by the built-in behaviours.
const (
	PropName     = "name"
	PropValue    = "value"
	PropChecked  = "checked"
	PropOnChange = "onChange"
	PropOnClick  = "onClick"
)

// Props is the set of bindings handed to a UI element.
type Props map[string]any

// Handler returns the ChangeHandler stored under key, if any.
func (p Props) Handler(key string) (ChangeHandler, bool) {
	h, ok := p[key].(ChangeHandler)
	return h, ok && h != nil
}

// Behavior is the capability set every field satisfies.
type Behavior interface {
	// ToProps returns the bindings for a UI element showing current.
	ToProps(form Form, onChange ChangeHandler, current any) Props
	// CreateChangeHandler returns a handler that forwards new values to update.
	CreateChangeHandler(form Form, update UpdateFunc) ChangeHandler
	// FilterOutput maps the internal value to the externally visible one. A
	// false second result means the value is omitted from output.
	FilterOutput(current any) (any, bool)
	// FilterInput maps a canonical value into the internal representation.
	FilterInput(in any) any
	// Validate runs the field validators against current.
	Validate(current any, ctx ValidationContext)
}

var (
	_ Behavior = (*Field)(nil)
	_ Behavior = (*SimpleField)(nil)
	_ Behavior = (*CheckedField)(nil)
)

// Field is the base behaviour. It holds the validator list and provides
// identity filters, empty props and a no-op change handler. Custom fields
// embed it and override what they need.
type Field struct {
	validators []Validator
}

// NewField constructs a base field. Any nil validator fails the whole
// construction with ErrInvalidArgument.
func NewField(validators ...Validator) (*Field, error) {
	list := make([]Validator, 0, len(validators))
	for idx, v := range validators {
		if v == nil {
			return nil, fmt.Errorf("%w: validator %d is nil", ErrInvalidArgument, idx)
		}
		list = append(list, v)
	}
	return &Field{validators: list}, nil
}

// ValidatorsOf normalises loosely typed validator declarations, as produced by
// configuration code, into a validator list. Accepted elements are Validator,
// func(any, ValidationContext) and []Validator.
func ValidatorsOf(values ...any) ([]Validator, error) {
	out := make([]Validator, 0, len(values))
	for idx, value := range values {
		switch typed := value.(type) {
		case Validator:
			if typed == nil {
				return nil, fmt.Errorf("%w: element %d is nil", ErrInvalidArgument, idx)
			}
			out = append(out, typed)
		case func(any, ValidationContext):
			if typed == nil {
				return nil, fmt.Errorf("%w: element %d is nil", ErrInvalidArgument, idx)
			}
			out = append(out, Validator(typed))
		case []Validator:
			for nestedIdx, nested := range typed {
				if nested == nil {
					return nil, fmt.Errorf("%w: element %d[%d] is nil", ErrInvalidArgument, idx, nestedIdx)
				}
				out = append(out, nested)
			}
		default:
			return nil, fmt.Errorf("%w: element %d has type %T", ErrInvalidArgument, idx, value)
		}
	}
	return out, nil
}

// Validators returns a copy of the validator list.
func (f *Field) Validators() []Validator {
	if f == nil || len(f.validators) == 0 {
		return nil
	}
	return append([]Validator(nil), f.validators...)
}

// ToProps returns no bindings.
func (f *Field) ToProps(Form, ChangeHandler, any) Props {
	return Props{}
}

// CreateChangeHandler returns a handler that does nothing.
func (f *Field) CreateChangeHandler(Form, UpdateFunc) ChangeHandler {
	return func(Event, any) {}
}

// FilterOutput returns current unchanged.
func (f *Field) FilterOutput(current any) (any, bool) {
	return current, true
}

// FilterInput returns in unchanged.
func (f *Field) FilterInput(in any) any {
	return in
}

// Validate invokes every validator in order with (current, ctx). Panics
// raised by a validator are not recovered.
func (f *Field) Validate(current any, ctx ValidationContext) {
	if f == nil {
		return
	}
	for _, validate := range f.validators {
		validate(current, ctx)
	}
}
