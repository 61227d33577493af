package model

// FieldType is the value type a definition declares for a field.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleNoMarkup  = "noMarkup"
)

// ValidationRule is a single declarative constraint. Numeric bounds and length
// limits keep their threshold in Params["value"]; pattern rules keep the
// expression in Params["pattern"]. An optional Params["message"] overrides the
// default violation message.
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field declares one form input. Widget names the field behaviour (input,
// textarea, select, checkbox, radio); when empty it is resolved from Type,
// Format and Enum. Value is the element value a checkbox or radio reports
// when checked.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type,omitempty" yaml:"type,omitempty"`
	Widget      string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Required    bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any               `json:"default,omitempty" yaml:"default,omitempty"`
	Value       string            `json:"value,omitempty" yaml:"value,omitempty"`
	Enum        []any             `json:"enum,omitempty" yaml:"enum,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// DisplayLabel returns Label or a label derived from Name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return DefaultLabeler(f.Name)
}

// FormDefinition is the declarative description of a form.
type FormDefinition struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
