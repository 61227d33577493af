package validators

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formfields/pkg/fields"
)

// Default violation messages.
const (
	MessageRequired = "required"
	MessagePattern  = "does not match required pattern"
	MessageOneOf    = "is not an allowed option"
	MessageMarkup   = "must not contain markup"
	MessageNumber   = "must be a number"
)

// Required fails for nil, false, empty or whitespace-only strings and zero
// numbers.
func Required(message ...string) fields.Validator {
	msg := pick(message, MessageRequired)
	return func(value any, ctx fields.ValidationContext) {
		if s, ok := value.(string); ok {
			value = strings.TrimSpace(s)
		}
		if !fields.Truthy(value) {
			ctx.AddViolation(msg)
		}
	}
}

// MinLength fails when the string form of a non-empty value has fewer than n
// runes. Empty values are left to Required.
func MinLength(n int, message ...string) fields.Validator {
	msg := pick(message, fmt.Sprintf("min length %d", n))
	return func(value any, ctx fields.ValidationContext) {
		s := stringify(value)
		if s == "" {
			return
		}
		if utf8.RuneCountInString(s) < n {
			ctx.AddViolation(msg)
		}
	}
}

// MaxLength fails when the string form of the value has more than n runes.
func MaxLength(n int, message ...string) fields.Validator {
	msg := pick(message, fmt.Sprintf("max length %d", n))
	return func(value any, ctx fields.ValidationContext) {
		if value == nil {
			return
		}
		if utf8.RuneCountInString(stringify(value)) > n {
			ctx.AddViolation(msg)
		}
	}
}

// Pattern fails when the string form of a non-empty value does not match re.
func Pattern(re *regexp.Regexp, message ...string) fields.Validator {
	msg := pick(message, MessagePattern)
	return func(value any, ctx fields.ValidationContext) {
		s := stringify(value)
		if s == "" {
			return
		}
		if !re.MatchString(s) {
			ctx.AddViolation(msg)
		}
	}
}

// Min fails when a numeric value is below limit. Non-numeric values are
// reported as such; empty values are skipped.
func Min(limit float64, message ...string) fields.Validator {
	msg := pick(message, fmt.Sprintf("min %v", limit))
	return numeric(func(v float64) bool { return v >= limit }, msg)
}

// Max fails when a numeric value is above limit.
func Max(limit float64, message ...string) fields.Validator {
	msg := pick(message, fmt.Sprintf("max %v", limit))
	return numeric(func(v float64) bool { return v <= limit }, msg)
}

// OneOf fails when a non-empty value is not one of options. Values are
// compared by their string form so "1" matches 1.
func OneOf(options []any, message ...string) fields.Validator {
	msg := pick(message, MessageOneOf)
	allowed := make(map[string]struct{}, len(options))
	for _, option := range options {
		allowed[stringify(option)] = struct{}{}
	}
	return func(value any, ctx fields.ValidationContext) {
		s := stringify(value)
		if s == "" {
			return
		}
		if _, ok := allowed[s]; !ok {
			ctx.AddViolation(msg)
		}
	}
}

func numeric(ok func(float64) bool, msg string) fields.Validator {
	return func(value any, ctx fields.ValidationContext) {
		if value == nil {
			return
		}
		n, parsed := toFloat(value)
		if !parsed {
			if stringify(value) == "" {
				return
			}
			ctx.AddViolation(MessageNumber)
			return
		}
		if !ok(n) {
			ctx.AddViolation(msg)
		}
	}
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func pick(message []string, fallback string) string {
	for _, m := range message {
		if trimmed := strings.TrimSpace(m); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
