package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"despeckle/internal/config"
	"despeckle/internal/debugsink"
	"despeckle/internal/despeckle"
	"despeckle/internal/dpi"
	"despeckle/internal/pipeline"
)

func newBatchCmd() *cobra.Command {
	var flags config.Flags
	var cfgPath string
	var pattern string

	cmd := &cobra.Command{
		Use:   "batch <input-dir>",
		Short: "Despeckle every page image in a directory",
		Args:  cobra.ExactArgs(1),
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
			if cfg.OutputDir == "" {
				return fmt.Errorf("batch: output-dir is required (flag or config file)")
			}

			inputs, err := filepath.Glob(filepath.Join(args[0], pattern))
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return fmt.Errorf("batch: no files matched %s in %s", pattern, args[0])
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

			batchCfg := pipeline.BatchConfig{
				Options: pipeline.Options{
					DPI:   resolution,
					Level: level,
					Sink:  sink,
					Log:   log,
				},
				OutputDir: cfg.OutputDir,
				Workers:   cfg.Workers,
			}

			results := pipeline.Run(cmd.Context(), batchCfg, inputs)

			failures := 0
			for _, r := range results {
				if r.Error != nil {
					failures++
					fmt.Printf("FAIL %s: %v\n", r.Input, r.Error)
				}
			}
			fmt.Printf("processed %d pages, %d failed\n", len(results), failures)
			if failures > 0 {
				return fmt.Errorf("batch: %d of %d pages failed", failures, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a TOML config file")
	cmd.Flags().StringVar(&flags.Level, "level", "", "cautious, normal, aggressive, or a number")
	cmd.Flags().IntVar(&flags.DPIHoriz, "dpi-x", 0, "horizontal DPI (default 300)")
	cmd.Flags().IntVar(&flags.DPIVert, "dpi-y", 0, "vertical DPI (default 300)")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", "", "directory to write despeckled pages to")
	cmd.Flags().StringVar(&flags.DebugDir, "debug-dir", "", "write intermediate snapshots here")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "parallel workers (default NumCPU)")
	cmd.Flags().StringVar(&pattern, "pattern", "*.png", "glob pattern for input files")

	return cmd
}
