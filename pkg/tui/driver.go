package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig describes a single-line question. Default pre-fills the current
// field value.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig describes a choice among a field's enum options, shown by their
// string form.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// TextAreaConfig configures a multi-line text prompt.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver is the terminal a Session talks to. Each method asks one
// question for one field; Info prints feedback between questions.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Password(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver returns a driver that asks through survey/v2 on the
// process terminal and prints messages to stdout.
func NewSurveyDriver() PromptDriver {
	return &surveyDriver{out: os.Stdout}
}

// ask runs one survey prompt into a fresh T. A cancelled context skips the
// prompt, and Ctrl+C surfaces as ErrAborted.
func ask[T any](ctx context.Context, prompt survey.Prompt) (T, error) {
	var answer T
	if err := ctx.Err(); err != nil {
		return answer, err
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return answer, ErrAborted
		}
		return answer, err
	}
	return answer, nil
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	return ask[string](ctx, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default})
}

// Password never shows a default so stored secrets are not echoed back.
func (d *surveyDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return ask[string](ctx, &survey.Password{Message: cfg.Message, Help: cfg.Help})
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	return ask[bool](ctx, &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default})
}

// Select answers with the chosen index. survey fills an int target with the
// option position rather than its label.
func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	return ask[int](ctx, prompt)
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	return ask[string](ctx, &survey.Multiline{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default})
}

// Info prints one line of feedback between prompts, typically a validation
// message for the field about to be asked again.
func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}
