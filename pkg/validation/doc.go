// Package validation provides the violation collector handed to field
// validators. Violations records messages in report order, scopes them to
// field paths via At, and groups them into an ErrorMapping whose messages are
// trimmed and de-duplicated for display.
package validation
