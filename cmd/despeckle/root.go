// Command despeckle is a thin CLI driver over internal/despeckle, the
// batch CLI SPEC_FULL.md §7 restores: ScanTailor itself is a GUI
// application, but a repository where the only way to invoke the engine is
// from Go code would be unusual for this corpus, where every example repo
// ships a cmd/ entry point. The engine package carries no CLI logic of its
// own — that non-goal still applies to internal/despeckle itself.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"despeckle/internal/logger"
)

func execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "despeckle",
		Short:        "Remove speckle noise from binary page images",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log := logger.NewConsoleLogger(level)
			cmd.SetContext(withLogger(cmd.Context(), log))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newBatchCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

type loggerKey struct{}

func withLogger(ctx context.Context, log *logger.ZerologAdapter) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

func loggerFromContext(ctx context.Context) *logger.ZerologAdapter {
	log, _ := ctx.Value(loggerKey{}).(*logger.ZerologAdapter)
	if log == nil {
		log = logger.NewConsoleLogger(zerolog.InfoLevel)
	}
	return log
}
