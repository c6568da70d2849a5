package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openintent/oiml-sub000/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>...",
		Short: "Revalidate intent documents whenever they change",
		Long: `Watch one or more intent documents and revalidate them on every
save. Structural problems and schema violations are reported as soon
as they are introduced.`,
		Example: `  oiml watch changes.oiml.yml
  oiml watch intents/*.oiml.yml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVar(&validateFormat, "format", "", "Document format: yaml or json (default: by extension)")
	cmd.Flags().StringVar(&validateMatrix, "matrix", "", "Compatibility matrix path override")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	revalidate := func(paths []string) {
		for _, path := range paths {
			color.New(color.FgCyan).Fprintf(cmd.OutOrStdout(), "-> %s\n", path)
			resp, err := validateFile(path, logger)
			if err != nil {
				color.New(color.FgRed, color.Bold).Fprintf(cmd.OutOrStdout(), "✗ %v\n", err)
				continue
			}
			printValidation(cmd, resp)
		}
	}

	// Validate everything once before waiting for changes
	revalidate(args)

	watcher, err := watch.New(args, revalidate, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "watching for changes, press Ctrl+C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down", zap.Int("files", len(args)))
	return nil
}
