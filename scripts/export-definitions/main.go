package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/definition"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/openapi"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

type exportFile struct {
	Forms map[string]model.FormDefinition `yaml:"forms"`
}

func main() {
	var (
		schemaPath  = flag.String("schema", "pkg/openapi/testdata/petstore.yaml", "OpenAPI schema path")
		operationID = flag.String("operation", "", "operation ID to export (all operations when empty)")
		outputPath  = flag.String("output", "definitions.yaml", "output path for the definition file")
	)
	flag.Parse()

	ctx := context.Background()

	data, err := os.ReadFile(*schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read schema: %v\n", err)
		os.Exit(1)
	}

	forms, err := openapi.Forms(ctx, data, openapi.Options{Validate: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to derive forms: %v\n", err)
		os.Exit(1)
	}
	if *operationID != "" {
		form, ok := forms[*operationID]
		if !ok {
			fmt.Fprintf(os.Stderr, "operation %q has no form\n", *operationID)
			os.Exit(1)
		}
		forms = map[string]model.FormDefinition{*operationID: form}
	}

	registry := widgets.NewRegistry()
	ids := make([]string, 0, len(forms))
	for id, form := range forms {
		if err := model.Apply(&form, registry); err != nil {
			fmt.Fprintf(os.Stderr, "failed to resolve widgets for %s: %v\n", id, err)
			os.Exit(1)
		}
		forms[id] = form
		ids = append(ids, id)
	}
	sort.Strings(ids)

	payload, err := yaml.Marshal(exportFile{Forms: forms})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode definitions: %v\n", err)
		os.Exit(1)
	}

	// The exported file must load back through the definition store.
	if _, err := definition.Parse(payload, *outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "exported definitions do not load: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write definitions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote %d form definition(s) to %s: %v\n", len(ids), *outputPath, ids)
}
