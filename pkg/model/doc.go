// Package model defines the declarative form definitions that configuration
// files and OpenAPI documents are turned into. Validation rules use the
// canonical identifiers min/max, minLength/maxLength, pattern and noMarkup
// with string parameters so definitions round-trip through JSON and YAML
// without loss.
package model
