package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/validation"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

// Session walks a form controller field by field in the terminal. Every
// answer is dispatched to the field as a UI event, so the field behaviour
// decides how the value is stored, and the field is validated before moving
// on.
type Session struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
}

// New constructs a session with defaults (survey driver, JSON output).
func New(options ...Option) (*Session, error) {
	s := &Session{
		driver:       NewSurveyDriver(),
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	switch s.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s.outputFormat)
	}
	return s, nil
}

// ContentType reports the serialization format used by Run.
func (s *Session) ContentType() string {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run prompts every field of c, then validates the whole form and returns
// the serialized output.
func (s *Session) Run(ctx context.Context, c *form.Controller) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNoController
	}

	for _, name := range c.Names() {
		if err := s.promptField(ctx, c, name); err != nil {
			return nil, err
		}
	}

	values, err := c.Submit()
	if err != nil {
		return nil, err
	}
	if s.submitTransformer != nil {
		values, err = s.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return s.serialize(values)
}

func (s *Session) promptField(ctx context.Context, c *form.Controller, name string) error {
	methods, err := c.Bind(name)
	if err != nil {
		return err
	}
	def, ok := c.Definition(name)
	if !ok {
		def = model.Field{Name: name}
	}

	for attempt := 1; ; attempt++ {
		props := methods.Props()
		var answered bool
		switch {
		case hasKey(props, fields.PropChecked):
			answered, err = s.promptChecked(ctx, methods, def, props)
		case hasKey(props, fields.PropValue):
			answered, err = s.promptValue(ctx, methods, def, props)
		default:
			// Behaviours without value bindings have nothing to ask.
			return nil
		}
		if err != nil {
			return err
		}
		exhausted := s.maxAttempts > 0 && attempt >= s.maxAttempts
		if !answered {
			// Unparsable answers count against the limit too.
			if exhausted {
				return fmt.Errorf("%w: field %q", ErrTooManyAttempts, name)
			}
			continue
		}

		violations := validation.New()
		if err := c.ValidateField(name, violations); err != nil {
			return err
		}
		if violations.Empty() {
			return nil
		}
		messages := strings.Join(violations.Mapping().Fields[name], ", ")
		if err := s.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: %s", s.theme.ErrorPrefix, def.DisplayLabel(), messages)); err != nil {
			return err
		}
		if exhausted {
			return fmt.Errorf("%w: field %q: %w", ErrTooManyAttempts, name, violations.Err())
		}
	}
}

// promptChecked asks a yes/no question and toggles the field only when the
// answer differs from its current state.
func (s *Session) promptChecked(ctx context.Context, methods fields.Methods, def model.Field, props fields.Props) (bool, error) {
	current, _ := props[fields.PropChecked].(bool)
	answer, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: def.DisplayLabel(),
		Default: current,
		Help:    displayHelp(def),
	})
	if err != nil {
		return false, err
	}
	if answer != current {
		methods.Handle(fields.Event{Target: fields.Target{
			Name:    methods.Name(),
			Value:   def.Value,
			Checked: answer,
		}})
	}
	return true, nil
}

func (s *Session) promptValue(ctx context.Context, methods fields.Methods, def model.Field, props fields.Props) (bool, error) {
	label := def.DisplayLabel()
	help := displayHelp(def)
	current := stringify(props[fields.PropValue])

	var (
		response string
		err      error
	)
	switch {
	case len(def.Enum) > 0:
		options := stringifyEnum(def.Enum)
		idx, selErr := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: indexOf(options, current),
			Help:         help,
		})
		if selErr != nil {
			return false, selErr
		}
		if idx < 0 || idx >= len(options) {
			return false, s.driver.Info(ctx, fmt.Sprintf("%sInvalid %s selection", s.theme.ErrorPrefix, label))
		}
		methods.Handle(fields.Event{Target: fields.Target{Name: methods.Name(), Value: def.Enum[idx]}})
		return true, nil
	case def.Format == "password" || strings.EqualFold(def.Metadata["cli.secret"], "true"):
		response, err = s.driver.Password(ctx, InputConfig{Message: label, Help: help})
	case def.Widget == widgets.WidgetTextarea:
		response, err = s.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current, Help: help})
	default:
		response, err = s.driver.Input(ctx, InputConfig{Message: label, Default: current, Help: help})
	}
	if err != nil {
		return false, err
	}

	value, err := parseValue(def.Type, response)
	if err != nil {
		return false, s.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: %v", s.theme.ErrorPrefix, label, err))
	}
	methods.Handle(fields.Event{Target: fields.Target{Name: methods.Name(), Value: value}})
	return true, nil
}

// parseValue converts numeric answers so output keeps the declared type.
// Blank answers stay empty strings.
func parseValue(kind model.FieldType, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw, nil
	}
	switch kind {
	case model.FieldTypeInteger:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, errors.New("must be a whole number")
		}
		return n, nil
	case model.FieldTypeNumber:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, errors.New("must be a number")
		}
		return f, nil
	default:
		return raw, nil
	}
}

func (s *Session) serialize(values map[string]any) ([]byte, error) {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func hasKey(props fields.Props, key string) bool {
	_, ok := props[key]
	return ok
}

func displayHelp(field model.Field) string {
	if h := field.Metadata["cli.help"]; h != "" {
		return h
	}
	return field.Description
}

func stringify(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func stringifyEnum(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = stringify(v)
	}
	return out
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flatten(joinKey(prefix, key), val, out)
		}
	default:
		out.Set(prefix, stringify(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	nested, ok := value.(map[string]any)
	if !ok {
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, value)
		}
		return
	}
	keys := make([]string, 0, len(nested))
	for key := range nested {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		writePretty(b, joinKey(prefix, key), nested[key])
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
