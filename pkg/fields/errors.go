package fields

import "errors"

// ErrInvalidArgument is returned when a field is constructed with something
// that is not a validator function.
var ErrInvalidArgument = errors.New("fields: all field validators must be functions")
