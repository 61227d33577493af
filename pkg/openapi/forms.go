package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfields/pkg/model"
)

const (
	extensionWidget = "x-formfields-widget"
	extensionValue  = "x-formfields-value"

	// maxDepth bounds nested object flattening so recursive references
	// terminate.
	maxDepth = 8
)

// ErrOperationNotFound is returned by Form for an unknown operation id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Options configures document loading.
type Options struct {
	// Validate runs kin-openapi document validation before extraction.
	Validate bool
	// AllowExternalRefs lets the loader follow references outside the
	// document.
	AllowExternalRefs bool
}

// Forms extracts a form definition for every operation that declares an
// object request body.
func Forms(ctx context.Context, data []byte, opts Options) (map[string]model.FormDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opts.AllowExternalRefs,
	}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if opts.Validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	forms := make(map[string]model.FormDefinition)
	if doc.Paths == nil {
		return forms, nil
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			form, ok := formFromOperation(method, path, operation)
			if !ok {
				continue
			}
			forms[form.ID] = form
		}
	}
	return forms, nil
}

// Form extracts the definition for a single operation id.
func Form(ctx context.Context, data []byte, operationID string, opts Options) (model.FormDefinition, error) {
	forms, err := Forms(ctx, data, opts)
	if err != nil {
		return model.FormDefinition{}, err
	}
	form, ok := forms[operationID]
	if !ok {
		return model.FormDefinition{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	return form, nil
}

func formFromOperation(method, path string, operation *openapi3.Operation) (model.FormDefinition, bool) {
	if operation == nil {
		return model.FormDefinition{}, false
	}
	schema := requestSchema(operation.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return model.FormDefinition{}, false
	}

	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	form := model.FormDefinition{
		ID:          id,
		Title:       operation.Summary,
		Description: operation.Description,
		Metadata: map[string]string{
			"method":   strings.ToUpper(method),
			"endpoint": path,
		},
	}
	form.Fields = collectFields(schema, "", 0)
	return form, len(form.Fields) > 0
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func collectFields(schema *openapi3.Schema, prefix string, depth int) []model.Field {
	if schema == nil || depth > maxDepth {
		return nil
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	var out []model.Field
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		switch schemaType(prop) {
		case "object":
			out = append(out, collectFields(prop, path, depth+1)...)
			continue
		case "array":
			continue
		}

		field := convertProperty(path, prop)
		if _, ok := required[name]; ok {
			field.Required = true
		}
		out = append(out, field)
	}
	return out
}

func convertProperty(path string, prop *openapi3.Schema) model.Field {
	field := model.Field{
		Name:        path,
		Type:        fieldType(schemaType(prop)),
		Format:      prop.Format,
		Label:       prop.Title,
		Description: prop.Description,
		Default:     prop.Default,
	}
	if len(prop.Enum) > 0 {
		field.Enum = append([]any(nil), prop.Enum...)
	}
	if widget, ok := prop.Extensions[extensionWidget].(string); ok {
		field.Widget = strings.ToLower(strings.TrimSpace(widget))
	}
	if value, ok := prop.Extensions[extensionValue]; ok && value != nil {
		field.Value = fmt.Sprint(value)
	}

	if prop.MinLength > 0 {
		field.Validations = append(field.Validations, rule(model.ValidationRuleMinLength, strconv.FormatUint(prop.MinLength, 10)))
	}
	if prop.MaxLength != nil {
		field.Validations = append(field.Validations, rule(model.ValidationRuleMaxLength, strconv.FormatUint(*prop.MaxLength, 10)))
	}
	if prop.Pattern != "" {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": prop.Pattern},
		})
	}
	if prop.Min != nil {
		field.Validations = append(field.Validations, rule(model.ValidationRuleMin, strconv.FormatFloat(*prop.Min, 'f', -1, 64)))
	}
	if prop.Max != nil {
		field.Validations = append(field.Validations, rule(model.ValidationRuleMax, strconv.FormatFloat(*prop.Max, 'f', -1, 64)))
	}
	return field
}

func rule(kind, value string) model.ValidationRule {
	return model.ValidationRule{Kind: kind, Params: map[string]string{"value": value}}
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		if len(schema.Properties) > 0 {
			return "object"
		}
		return ""
	}
	for _, t := range schema.Type.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}

func fieldType(raw string) model.FieldType {
	switch raw {
	case "integer":
		return model.FieldTypeInteger
	case "number":
		return model.FieldTypeNumber
	case "boolean":
		return model.FieldTypeBoolean
	case "string":
		return model.FieldTypeString
	default:
		return ""
	}
}
