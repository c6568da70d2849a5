package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openintent/oiml-sub000/internal/engine"
	"github.com/openintent/oiml-sub000/internal/intent"
	"github.com/openintent/oiml-sub000/internal/transform"
)

var (
	validateFormat string
	validateFamily string
	validateJSON   bool
	validateMatrix string
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate an intent document against its declared schema version",
		Long: `Validate a YAML or JSON document against the schema version it
declares. Intent documents are additionally lowered to IR so structural
problems surface in the same run.`,
		Example: `  # Validate an intent document
  oiml validate changes.oiml.yml

  # Validate a project manifest
  oiml validate project.yml --family project

  # Machine-readable output
  oiml validate changes.oiml.yml --json`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}

	cmd.Flags().StringVar(&validateFormat, "format", "", "Document format: yaml or json (default: by extension)")
	cmd.Flags().StringVar(&validateFamily, "family", "intent", "Document family: intent, project, or plan")
	cmd.Flags().BoolVar(&validateJSON, "json", false, "Output the validation result as JSON")
	cmd.Flags().StringVar(&validateMatrix, "matrix", "", "Compatibility matrix path override")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	resp, err := validateFile(args[0], logger)
	if err != nil {
		return err
	}

	if validateJSON {
		return printJSON(cmd, resp)
	}
	printValidation(cmd, resp)
	if !resp.Valid {
		return fmt.Errorf("validation failed with %d error(s)", len(resp.Errors))
	}
	return nil
}

// validateFile parses and validates one document file
func validateFile(path string, logger *zap.Logger) (*engine.ValidationResponse, error) {
	eng, cfg, err := buildEngine(validateMatrix, logger)
	if err != nil {
		return nil, err
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	format, err := documentFormat(path, validateFormat)
	if err != nil {
		return nil, err
	}

	obj, err := intent.Parse(text, format)
	if err != nil {
		return nil, err
	}
	logger.Info("parsed document", zap.String("path", path), zap.String("format", string(format)))

	switch validateFamily {
	case "intent":
		ctx := transform.Context{DefaultScope: cfg.DefaultScope}
		return eng.ValidateIntent(obj, ctx)
	case "project":
		return eng.ValidateProject(obj)
	case "plan":
		return eng.ValidatePlan(obj)
	default:
		return nil, fmt.Errorf("unknown document family %q (expected intent, project, or plan)", validateFamily)
	}
}

// documentFormat picks the wire format from an explicit flag or the
// file extension
func documentFormat(path, explicit string) (intent.Format, error) {
	if explicit != "" {
		return intent.ParseFormat(explicit)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		ext = "yaml"
	}
	return intent.ParseFormat(ext)
}

func printValidation(cmd *cobra.Command, resp *engine.ValidationResponse) {
	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	infoColor := color.New(color.FgCyan)

	if resp.Valid {
		successColor.Fprintln(cmd.OutOrStdout(), "✓ "+resp.Message)
		if resp.IntentID != "" {
			infoColor.Fprintf(cmd.OutOrStdout(), "  id: %s\n", resp.IntentID)
		}
		if resp.SchemaVersion != "" {
			infoColor.Fprintf(cmd.OutOrStdout(), "  schema: %s\n", resp.SchemaVersion)
		}
		for _, d := range resp.Diagnostics {
			color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "  warning: %s\n", d)
		}
		return
	}

	errorColor.Fprintf(cmd.OutOrStdout(), "✗ %d validation error(s)\n", len(resp.Errors))
	for _, e := range resp.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", e)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}
