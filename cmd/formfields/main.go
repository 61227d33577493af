package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/openapi"
	"github.com/goliatone/go-formfields/pkg/tui"
)

func main() {
	definitionPath := flag.String("definition", "", "form definition file (YAML or JSON)")
	openapiPath := flag.String("openapi", "", "OpenAPI document path")
	opID := flag.String("operation", "", "operation ID to build the form from (with -openapi)")
	formID := flag.String("form", "", "form ID inside the definition file")
	format := flag.String("format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	output := flag.String("output", "", "output file (stdout if empty)")
	maxAttempts := flag.Int("max-attempts", 0, "re-prompt limit for invalid answers (0 is unlimited)")
	flag.Parse()

	ctx := context.Background()

	def, err := loadForm(ctx, *definitionPath, *openapiPath, *opID, *formID)
	if err != nil {
		log.Fatalf("Failed to load form: %v", err)
	}

	controller, err := form.FromDefinition(def)
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}

	session, err := tui.New(
		tui.WithOutputFormat(tui.OutputFormat(*format)),
		tui.WithMaxAttempts(*maxAttempts),
	)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	if def.Title != "" {
		fmt.Println(def.Title)
	}

	payload, err := session.Run(ctx, controller)
	if errors.Is(err, tui.ErrAborted) {
		os.Exit(130)
	}
	if err != nil {
		log.Fatalf("Failed to collect form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Values written to %s\n", *output)
		return
	}
	fmt.Println(string(payload))
}

func loadForm(ctx context.Context, definitionPath, openapiPath, opID, formID string) (model.FormDefinition, error) {
	definitionPath = strings.TrimSpace(definitionPath)
	openapiPath = strings.TrimSpace(openapiPath)

	switch {
	case definitionPath != "" && openapiPath != "":
		return model.FormDefinition{}, errors.New("use either -definition or -openapi, not both")
	case openapiPath != "":
		if opID == "" {
			return model.FormDefinition{}, errors.New("-operation is required with -openapi")
		}
		data, err := os.ReadFile(openapiPath)
		if err != nil {
			return model.FormDefinition{}, err
		}
		return openapi.Form(ctx, data, opID, openapi.Options{Validate: true})
	case definitionPath != "":
		store, err := definition.LoadFile(definitionPath)
		if err != nil {
			return model.FormDefinition{}, err
		}
		if formID == "" {
			ids := store.IDs()
			if len(ids) != 1 {
				return model.FormDefinition{}, fmt.Errorf("-form is required, file defines %s", strings.Join(ids, ", "))
			}
			formID = ids[0]
		}
		return store.Form(formID)
	default:
		return model.FormDefinition{}, errors.New("-definition or -openapi is required")
	}
}
