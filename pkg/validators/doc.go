// Package validators provides ready-made fields.Validator constructors and
// builds validator lists from declarative model rules.
//
// Every validator except Required accepts an omitted value (nil), so optional
// fields only fail when they carry something.
package validators
