// Package openapi turns OpenAPI 3 operations into form definitions. The
// request body schema of each operation (JSON, form-urlencoded or multipart,
// in that order of preference) becomes one model.FormDefinition keyed by
// operationId. Scalar properties become fields; nested objects flatten into
// dotted names; arrays are skipped. Schema constraints map onto validation
// rules and the x-formfields-widget / x-formfields-value extensions override
// widget resolution and the checked value of checkboxes. kin-openapi types
// stay inside this package.
package openapi
