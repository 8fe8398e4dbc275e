// Package config loads meshtool settings from defaults, a YAML or TOML
// file and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/meshops/pkg/meshops"
)

// Config holds all meshtool settings.
type Config struct {
	Processing ProcessingConfig `yaml:"processing" toml:"processing"`
	Grid       GridConfig       `yaml:"grid" toml:"grid"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// ProcessingConfig holds the settings of attribute generation.
type ProcessingConfig struct {
	Workers             int      `yaml:"workers" toml:"workers"` // 0 = GOMAXPROCS
	TangentAlgorithm    string   `yaml:"tangent_algorithm" toml:"tangent_algorithm"`
	DirectionsMode      string   `yaml:"directions_mode" toml:"directions_mode"`
	SubdivLevel         int      `yaml:"subdiv_level" toml:"subdiv_level"`
	AdaptiveSubdiv      bool     `yaml:"adaptive_subdiv" toml:"adaptive_subdiv"`
	SubdivBias          int      `yaml:"subdiv_bias" toml:"subdiv_bias"`
	AreaWeightedNormals bool     `yaml:"area_weighted_normals" toml:"area_weighted_normals"`
	Timeout             Duration `yaml:"timeout" toml:"timeout"` // 0 = none
}

// Duration is a time.Duration stored as text ("90s", "1m") in both YAML
// and TOML files.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// GridConfig holds the defaults of the grid command.
type GridConfig struct {
	Resolution int     `yaml:"resolution" toml:"resolution"`
	Size       float32 `yaml:"size" toml:"size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
	JSON    bool   `yaml:"json" toml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Processing: ProcessingConfig{
			Workers:          0,
			TangentAlgorithm: "default",
			DirectionsMode:   "linear",
			SubdivLevel:      3,
			Timeout:          Duration(time.Minute),
		},
		Grid: GridConfig{
			Resolution: 16,
			Size:       1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Options converts the processing settings into generation options.
func (p ProcessingConfig) Options() (meshops.Options, error) {
	opts := meshops.DefaultOptions()
	opts.Workers = p.Workers
	opts.AreaWeightedNormals = p.AreaWeightedNormals
	opts.Subdivision = meshops.SubdivisionSettings{
		MaxLevel: p.SubdivLevel,
		Adaptive: p.AdaptiveSubdiv,
		Bias:     p.SubdivBias,
	}

	opts.TangentAlgorithm = meshops.TangentAlgorithmFromName(p.TangentAlgorithm)
	if opts.TangentAlgorithm == meshops.TangentInvalid {
		return opts, fmt.Errorf("processing.tangent_algorithm: unknown algorithm %q", p.TangentAlgorithm)
	}

	mode, err := meshops.ParseDirectionsMode(p.DirectionsMode)
	if err != nil {
		return opts, fmt.Errorf("processing.directions_mode: %w", err)
	}
	opts.DirectionsMode = mode

	if p.SubdivLevel < 0 || p.SubdivLevel > meshops.MaxSubdivLevel {
		return opts, fmt.Errorf("processing.subdiv_level: %d outside [0,%d]", p.SubdivLevel, meshops.MaxSubdivLevel)
	}
	return opts, nil
}
