package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-formkit/pkg/flow"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/response"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/template"
)

func main() {
	formPath := flag.String("form", "", "form document JSON path")
	templateID := flag.String("template", "", "builtin template id to start from")
	openapiPath := flag.String("openapi", "", "OpenAPI document path to import")
	operation := flag.String("operation", "", "operation ID to import from the OpenAPI document")
	renderName := flag.String("render", "", "render the form instead of printing it (html)")
	step := flag.Int("step", 0, "step index to render for multi-step forms")
	fill := flag.Bool("fill", false, "fill the form interactively and print the responses")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	form, err := loadForm(ctx, *formPath, *templateID, *openapiPath, *operation)
	if err != nil {
		log.Fatalf("Failed to load form: %v", err)
	}

	switch {
	case *fill:
		runner := tui.NewRunner()
		var collected response.Snapshot
		submitter := flow.SubmitterFunc(func(_ context.Context, formID string, snap response.Snapshot) (flow.Receipt, error) {
			collected = snap
			return flow.Receipt{ID: formID, Status: "collected"}, nil
		})
		if _, err := runner.Run(ctx, flow.NewSession(form), submitter); err != nil {
			log.Fatalf("Failed to fill form: %v", err)
		}
		payload, err := json.MarshalIndent(collected, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode responses: %v", err)
		}
		emit(payload, *output)

	case *renderName != "":
		registry := render.NewRegistry()
		htmlRenderer, err := html.New()
		if err != nil {
			log.Fatalf("Failed to configure renderer: %v", err)
		}
		registry.MustRegister(htmlRenderer)

		renderer, err := registry.Get(*renderName)
		if err != nil {
			log.Fatalf("Unknown renderer: %v", err)
		}
		out, err := renderer.Render(ctx, form, render.Options{Step: *step})
		if err != nil {
			log.Fatalf("Failed to render form: %v", err)
		}
		emit(out, *output)

	default:
		payload, err := json.MarshalIndent(form, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode form: %v", err)
		}
		emit(payload, *output)
	}
}

func loadForm(ctx context.Context, formPath, templateID, openapiPath, operation string) (schema.Form, error) {
	switch {
	case formPath != "":
		data, err := os.ReadFile(formPath)
		if err != nil {
			return schema.Form{}, err
		}
		var form schema.Form
		if err := json.Unmarshal(data, &form); err != nil {
			return schema.Form{}, fmt.Errorf("decode %s: %w", formPath, err)
		}
		if err := form.Validate(); err != nil {
			return schema.Form{}, err
		}
		return form, nil

	case templateID != "":
		catalog, err := template.BuiltinCatalog()
		if err != nil {
			return schema.Form{}, err
		}
		return template.ApplyByID(catalog, schema.Form{Title: "Untitled form"}, templateID)

	case openapiPath != "":
		data, err := os.ReadFile(openapiPath)
		if err != nil {
			return schema.Form{}, err
		}
		return openapi.ImportForm(ctx, data, openapi.Options{OperationID: operation})

	default:
		return schema.Form{}, fmt.Errorf("one of -form, -template or -openapi is required")
	}
}

func emit(payload []byte, output string) {
	if output != "" {
		if err := os.WriteFile(output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Written to %s\n", output)
		return
	}
	fmt.Println(string(payload))
}
