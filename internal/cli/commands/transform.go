package commands

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// NewTransformCommand creates the transform command
func NewTransformCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform <file>",
		Short: "Lower a valid intent document to canonical IR",
		Long: `Validate an intent document and print the lowered IR as JSON.
The document must be valid; transformation never runs on documents that
fail schema validation.`,
		Example: `  # Print the IR for an intent document
  oiml transform changes.oiml.yml`,
		Args: cobra.ExactArgs(1),
		RunE: runTransform,
	}

	cmd.Flags().StringVar(&validateFormat, "format", "", "Document format: yaml or json (default: by extension)")

	return cmd
}

func runTransform(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	validateFamily = "intent"
	resp, err := validateFile(args[0], logger)
	if err != nil {
		return err
	}

	if !resp.Valid {
		printValidation(cmd, resp)
		return fmt.Errorf("document is not valid; nothing to transform")
	}
	if !resp.IRAvailable {
		return fmt.Errorf("no intent in the document is transformable")
	}

	raw, err := json.MarshalIndent(resp.IR, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}
