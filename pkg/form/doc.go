// Package form is a small controller that owns the canonical values of a set
// of named fields and drives them through the fields.Behavior contract. It
// maps incoming values through FilterInput, hands out bound props and change
// handlers, validates every field into a validation.Violations collection
// and assembles output through FilterOutput, omitting what fields ask to
// omit. Dotted field names ("owner.email") nest in input and output maps.
//
// A Controller is not safe for concurrent use.
package form
