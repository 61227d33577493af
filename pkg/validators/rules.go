package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
)

// ErrInvalidRule is returned when a declarative rule cannot be turned into a
// validator.
var ErrInvalidRule = errors.New("validators: invalid rule")

// FromRules builds the validator list declared by a field definition: the
// Required flag first, then each rule in order, then OneOf when the field
// declares an enum.
func FromRules(field model.Field) ([]fields.Validator, error) {
	var out []fields.Validator
	if field.Required {
		out = append(out, Required())
	}

	for idx, rule := range field.Validations {
		v, err := fromRule(rule)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q rule %d (%s): %v", ErrInvalidRule, field.Name, idx, rule.Kind, err)
		}
		out = append(out, v)
	}

	if len(field.Enum) > 0 {
		out = append(out, OneOf(field.Enum))
	}
	return out, nil
}

func fromRule(rule model.ValidationRule) (fields.Validator, error) {
	message := rule.Params["message"]
	switch strings.TrimSpace(rule.Kind) {
	case "required":
		return Required(message), nil
	case model.ValidationRuleMin:
		limit, err := floatParam(rule)
		if err != nil {
			return nil, err
		}
		return Min(limit, message), nil
	case model.ValidationRuleMax:
		limit, err := floatParam(rule)
		if err != nil {
			return nil, err
		}
		return Max(limit, message), nil
	case model.ValidationRuleMinLength:
		n, err := intParam(rule)
		if err != nil {
			return nil, err
		}
		return MinLength(n, message), nil
	case model.ValidationRuleMaxLength:
		n, err := intParam(rule)
		if err != nil {
			return nil, err
		}
		return MaxLength(n, message), nil
	case model.ValidationRulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return nil, errors.New("pattern is required")
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		return Pattern(re, message), nil
	case model.ValidationRuleNoMarkup:
		return NoMarkup(message), nil
	default:
		return nil, errors.New("unknown kind")
	}
}

func floatParam(rule model.ValidationRule) (float64, error) {
	raw := strings.TrimSpace(rule.Params["value"])
	if raw == "" {
		return 0, errors.New("value is required")
	}
	return strconv.ParseFloat(raw, 64)
}

func intParam(rule model.ValidationRule) (int, error) {
	raw := strings.TrimSpace(rule.Params["value"])
	if raw == "" {
		return 0, errors.New("value is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("value must not be negative")
	}
	return n, nil
}
