// Package fields describes form inputs as state and validation adapters. A
// field never renders anything: it produces bound props for the current value,
// builds change handlers that forward new values to the owning form, maps
// values between the canonical form store and its own internal shape
// (FilterInput/FilterOutput), and runs its validators in declaration order.
//
// SimpleField covers text-like controls (input, textarea, select) whose props
// are {value, onChange}. CheckedField covers checkboxes and radios: it keeps a
// compound Checked{Checked, Value} internally, exposes {checked, onClick}, and
// collapses the compound shape on output so a checked box without an explicit
// value reports true and an unchecked box is omitted. Custom behaviours embed
// Field or implement Behavior directly.
package fields
