package commands

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	strcase "github.com/openintent/oiml-sub000/internal/util/strings"
)

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new [file]",
		Short: "Interactively scaffold a starter intent document",
		Long: `Create a starter intent document by answering a few prompts.
The generated file validates against the packaged oiml.intent schema.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNew,
	}
}

func runNew(cmd *cobra.Command, args []string) error {
	answers := struct {
		Entity string
		IDType string
		Scope  string
	}{}

	questions := []*survey.Question{
		{
			Name: "entity",
			Prompt: &survey.Input{
				Message: "Entity name:",
				Default: "user",
			},
			Validate: survey.Required,
		},
		{
			Name: "idtype",
			Prompt: &survey.Select{
				Message: "Primary key type:",
				Options: []string{"uuid", "int"},
				Default: "uuid",
			},
		},
		{
			Name: "scope",
			Prompt: &survey.Input{
				Message: "Scope (optional):",
			},
		},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return err
	}

	entity := strcase.ToSnakeCase(answers.Entity)
	doc := map[string]any{
		"version": "1.0.0",
		"type":    "oiml.intent",
		"intents": []map[string]any{
			newEntityIntent(entity, answers.IDType, answers.Scope),
		},
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	path := entity + ".oiml.yml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return err
	}

	color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(), "✓ wrote %s\n", path)
	return nil
}

func newEntityIntent(entity, idType, scope string) map[string]any {
	intent := map[string]any{
		"kind":   "add_entity",
		"entity": entity,
		"fields": []map[string]any{
			{"name": "id", "type": idType, "primary_key": true, "required": true},
			{"name": "created_at", "type": "timestamp", "default": "now"},
		},
	}
	if scope != "" {
		intent["scope"] = scope
	}
	return intent
}
