// Package config loads batch defaults for the despeckle CLI from a TOML
// file, following drsaluml-mu-bmd-to-webp/internal/config/config.go's
// load-then-Resolve-against-flags shape (there JSON, here
// github.com/BurntSushi/toml, per SPEC_FULL.md §5.3).
package config

import (
	"fmt"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds batch-run defaults that CLI flags may override.
type Config struct {
	Level       string `toml:"level"`       // "cautious", "normal", "aggressive", or a float string
	DPIHoriz    int    `toml:"dpi_horizontal"`
	DPIVert     int    `toml:"dpi_vertical"`
	OutputDir   string `toml:"output_dir"`
	DebugDir    string `toml:"debug_dir"`
	Workers     int    `toml:"workers"`
}

// Load reads a TOML config file. A missing file is not resolved here;
// callers decide whether a missing --config flag is fatal.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that take priority over the config file.
type Flags struct {
	Level     string
	DPIHoriz  int
	DPIVert   int
	OutputDir string
	DebugDir  string
	Workers   int
}

// Resolve overrides Config fields with every flag that is set (non-empty
// or positive), then applies defaults for anything still unset.
func (c *Config) Resolve(f Flags) {
	if f.Level != "" {
		c.Level = f.Level
	}
	if f.DPIHoriz > 0 {
		c.DPIHoriz = f.DPIHoriz
	}
	if f.DPIVert > 0 {
		c.DPIVert = f.DPIVert
	}
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
	if f.DebugDir != "" {
		c.DebugDir = f.DebugDir
	}
	if f.Workers > 0 {
		c.Workers = f.Workers
	}

	if c.Level == "" {
		c.Level = "normal"
	}
	if c.DPIHoriz <= 0 {
		c.DPIHoriz = 300
	}
	if c.DPIVert <= 0 {
		c.DPIVert = 300
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
