package validators_test

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/validation"
	"github.com/goliatone/go-formfields/pkg/validators"
)

func run(v fields.Validator, value any) []string {
	ctx := validation.New()
	v(value, ctx)
	return ctx.For("")
}

func TestValidators(t *testing.T) {
	cases := []struct {
		name      string
		validator fields.Validator
		value     any
		want      []string
	}{
		{name: "required nil", validator: validators.Required(), value: nil, want: []string{"required"}},
		{name: "required blank", validator: validators.Required(), value: "   ", want: []string{"required"}},
		{name: "required custom message", validator: validators.Required("Name is required"), value: "", want: []string{"Name is required"}},
		{name: "required ok", validator: validators.Required(), value: "x"},
		{name: "required checked true", validator: validators.Required(), value: true},
		{name: "min length short", validator: validators.MinLength(3), value: "ab", want: []string{"min length 3"}},
		{name: "min length runes", validator: validators.MinLength(3), value: "héé"},
		{name: "min length skips nil", validator: validators.MinLength(3), value: nil},
		{name: "min length skips empty", validator: validators.MinLength(3), value: ""},
		{name: "max length long", validator: validators.MaxLength(2), value: "abc", want: []string{"max length 2"}},
		{name: "pattern mismatch", validator: validators.Pattern(regexp.MustCompile(`^\d+$`)), value: "12a", want: []string{"does not match required pattern"}},
		{name: "pattern skips empty", validator: validators.Pattern(regexp.MustCompile(`^\d+$`)), value: ""},
		{name: "min number", validator: validators.Min(1), value: 0, want: []string{"min 1"}},
		{name: "min parses strings", validator: validators.Min(1), value: "2"},
		{name: "min rejects text", validator: validators.Min(1), value: "abc", want: []string{"must be a number"}},
		{name: "max float", validator: validators.Max(1.5), value: 2.0, want: []string{"max 1.5"}},
		{name: "min int8", validator: validators.Min(1), value: int8(0), want: []string{"min 1"}},
		{name: "min int16 ok", validator: validators.Min(1), value: int16(5)},
		{name: "max uint", validator: validators.Max(10), value: uint(11), want: []string{"max 10"}},
		{name: "max uint64 ok", validator: validators.Max(10), value: uint64(3)},
		{name: "min json number", validator: validators.Min(1), value: json.Number("0.5"), want: []string{"min 1"}},
		{name: "max json number ok", validator: validators.Max(10), value: json.Number("7")},
		{name: "min skips empty", validator: validators.Min(1), value: ""},
		{name: "one of ok", validator: validators.OneOf([]any{"a", 1}), value: "1"},
		{name: "one of miss", validator: validators.OneOf([]any{"a", "b"}), value: "c", want: []string{"is not an allowed option"}},
		{name: "no markup html", validator: validators.NoMarkup(), value: "<b>hi</b>", want: []string{"must not contain markup"}},
		{name: "no markup plain", validator: validators.NoMarkup(), value: "fish & chips < 5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, run(tc.validator, tc.value)); diff != "" {
				t.Fatalf("violations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromRules(t *testing.T) {
	field := model.Field{
		Name:     "code",
		Required: true,
		Enum:     []any{"abc", "abcd", "zz"},
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "3"}},
			{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "^a", "message": "must start with a"}},
		},
	}

	list, err := validators.FromRules(field)
	if err != nil {
		t.Fatalf("from rules: %v", err)
	}
	behavior, err := fields.Input(list...)
	if err != nil {
		t.Fatalf("input: %v", err)
	}

	ctx := validation.New()
	behavior.Validate("zz", ctx.At("code"))

	want := []string{"min length 3", "must start with a"}
	if diff := cmp.Diff(want, ctx.For("code")); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}

	ctx = validation.New()
	behavior.Validate("", ctx.At("code"))
	if diff := cmp.Diff([]string{"required"}, ctx.For("code")); diff != "" {
		t.Fatalf("empty violations mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRules_OptionalEmptyField(t *testing.T) {
	field := model.Field{
		Name: "nickname",
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "3"}},
			{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "10"}},
		},
	}
	list, err := validators.FromRules(field)
	if err != nil {
		t.Fatalf("from rules: %v", err)
	}
	behavior := fields.Must(fields.Input(list...))

	ctx := validation.New()
	behavior.Validate("", ctx.At("nickname"))
	if !ctx.Empty() {
		t.Fatalf("expected optional empty field to pass, got %v", ctx.All())
	}

	behavior.Validate("ab", ctx.At("nickname"))
	if diff := cmp.Diff([]string{"min length 3"}, ctx.For("nickname")); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRules_InvalidRule(t *testing.T) {
	cases := []model.ValidationRule{
		{Kind: "bogus"},
		{Kind: model.ValidationRuleMin},
		{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "-1"}},
		{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "("}},
	}
	for _, rule := range cases {
		_, err := validators.FromRules(model.Field{Name: "x", Validations: []model.ValidationRule{rule}})
		if !errors.Is(err, validators.ErrInvalidRule) {
			t.Fatalf("rule %+v: expected ErrInvalidRule, got %v", rule, err)
		}
	}
}
