// Package commands implements the oiml command-line tool. The commands
// are a thin invocation layer: they read local files, call into the
// engine, and print results. All semantics live in the internal packages.
package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openintent/oiml-sub000/internal/cli/config"
	"github.com/openintent/oiml-sub000/internal/compat"
	"github.com/openintent/oiml-sub000/internal/engine"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "oiml",
		Short: "OIML intent validation and lowering tooling",
		Long: color.CyanString(`oiml - Open Intent Markup Language tooling

Validate declarative intent documents against versioned schemas, lower
them into the canonical IR consumed by code generators, and resolve
which template pack is compatible with a schema and framework version.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed progress output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(NewTransformCommand())
	rootCmd.AddCommand(NewCompatCommand())
	rootCmd.AddCommand(NewNewCommand())
	rootCmd.AddCommand(NewWatchCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

// newLogger builds the command logger: human-readable development output
// when --verbose is set, otherwise silent
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// buildEngine constructs the engine from the tool configuration. The
// matrix is loaded only when a path is configured or given; compat
// queries without one fail with a clear error.
func buildEngine(matrixPath string, logger *zap.Logger) (*engine.Engine, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if matrixPath == "" {
		matrixPath = cfg.MatrixPath
	}

	var matrix *compat.Matrix
	if matrixPath != "" {
		matrix, err = compat.LoadMatrix(matrixPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("loaded compatibility matrix",
			zap.String("path", matrixPath),
			zap.Int("entries", matrix.Len()))
	}

	logger.Info("building engine", zap.Strings("schema_paths", cfg.SchemaPaths))
	eng := engine.New(engine.Options{
		SchemaPaths: cfg.SchemaPaths,
		Matrix:      matrix,
	})
	return eng, cfg, nil
}
