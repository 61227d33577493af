package tui

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestSurveyDriver_CancelledContextSkipsPrompts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	d := &surveyDriver{out: &out}

	if _, err := d.Input(ctx, InputConfig{Message: "Name"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("input: expected context.Canceled, got %v", err)
	}
	if _, err := d.Confirm(ctx, ConfirmConfig{Message: "Agree"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("confirm: expected context.Canceled, got %v", err)
	}
	if _, err := d.Select(ctx, SelectConfig{Message: "Plan", Options: []string{"free"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("select: expected context.Canceled, got %v", err)
	}
	if err := d.Info(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Fatalf("info: expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", out.String())
	}
}

func TestSurveyDriver_InfoWritesLine(t *testing.T) {
	var out bytes.Buffer
	d := &surveyDriver{out: &out}
	if err := d.Info(context.Background(), "✗ Invalid Age: min 18"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if got, want := out.String(), "✗ Invalid Age: min 18\n"; got != want {
		t.Fatalf("info output: want %q got %q", want, got)
	}
}
