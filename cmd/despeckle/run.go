package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"despeckle/internal/config"
	"despeckle/internal/debugsink"
	"despeckle/internal/despeckle"
	"despeckle/internal/dpi"
	"despeckle/internal/metrics"
	"despeckle/internal/pipeline"
)

func newRunCmd() *cobra.Command {
	var flags config.Flags
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "run <input> <output>",
		Short: "Despeckle a single page image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{}
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			cfg.Resolve(flags)

			level, err := parseLevel(cfg.Level)
			if err != nil {
				return err
			}
			resolution, err := dpi.New(cfg.DPIHoriz, cfg.DPIVert)
			if err != nil {
				return err
			}

			log := loggerFromContext(cmd.Context())

			var sink despeckle.Sink
			if cfg.DebugDir != "" {
				fileSink, err := debugsink.NewFileSink(cfg.DebugDir)
				if err != nil {
					return err
				}
				sink = fileSink
			}

			opts := pipeline.Options{
				DPI:     resolution,
				Level:   level,
				Sink:    sink,
				Log:     log,
				Tracker: metrics.NewTracker(nil),
			}

			if err := pipeline.ProcessFile(cmd.Context(), args[0], args[1], opts); err != nil {
				return err
			}
			fmt.Printf("despeckled %s -> %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a TOML config file")
	cmd.Flags().StringVar(&flags.Level, "level", "", "cautious, normal, aggressive, or a number")
	cmd.Flags().IntVar(&flags.DPIHoriz, "dpi-x", 0, "horizontal DPI (default 300)")
	cmd.Flags().IntVar(&flags.DPIVert, "dpi-y", 0, "vertical DPI (default 300)")
	cmd.Flags().StringVar(&flags.DebugDir, "debug-dir", "", "write intermediate snapshots here")

	return cmd
}
