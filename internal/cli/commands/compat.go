package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	compatCategory string
	compatMatrix   string
	compatJSON     bool
)

// NewCompatCommand creates the compat command
func NewCompatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compat <oiml-version> <framework> <framework-version>",
		Short: "Resolve the template pack compatible with a schema and framework version",
		Example: `  # Which prisma template pack works with oiml 0.1.0 and prisma 6.19.0?
  oiml compat 0.1.0 prisma 6.19.0

  # Narrow to a category
  oiml compat 0.1.0 prisma 6.19.0 --category orm`,
		Args: cobra.ExactArgs(3),
		RunE: runCompat,
	}

	cmd.Flags().StringVar(&compatCategory, "category", "", "Template category filter")
	cmd.Flags().StringVar(&compatMatrix, "matrix", "", "Compatibility matrix path override")
	cmd.Flags().BoolVar(&compatJSON, "json", false, "Output the resolution as JSON")

	return cmd
}

func runCompat(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	eng, _, err := buildEngine(compatMatrix, logger)
	if err != nil {
		return err
	}

	res, err := eng.ResolveCompatibility(args[0], args[1], args[2], compatCategory)
	if err != nil {
		return err
	}

	if compatJSON {
		return printJSON(cmd, res)
	}

	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	infoColor := color.New(color.FgCyan)

	if !res.Compatible {
		errorColor.Fprintln(cmd.OutOrStdout(), "✗ "+res.Reason)
		if len(res.AvailableFrameworks) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  available frameworks: %s\n",
				strings.Join(res.AvailableFrameworks, ", "))
		}
		for _, c := range res.Candidates {
			fmt.Fprintf(cmd.OutOrStdout(), "  template %s requires: %v\n", c.TemplateVersion, c.Compat)
		}
		return fmt.Errorf("no compatible template pack")
	}

	successColor.Fprintf(cmd.OutOrStdout(), "✓ %s %s\n", res.TemplatePack, res.TemplateVersion)
	infoColor.Fprintf(cmd.OutOrStdout(), "  framework: %s", res.Framework)
	if res.Category != "" {
		infoColor.Fprintf(cmd.OutOrStdout(), " (%s)", res.Category)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	infoColor.Fprintf(cmd.OutOrStdout(), "  digest: %s\n", res.Digest)
	if len(res.BreakingChanges) > 0 {
		warn := color.New(color.FgYellow)
		warn.Fprintln(cmd.OutOrStdout(), "  breaking changes:")
		for _, bc := range res.BreakingChanges {
			warn.Fprintf(cmd.OutOrStdout(), "    - %s\n", bc)
		}
	}
	return nil
}
