package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("log-file", "", "Also log to this file")
	flagWorkers   = flag.Int("workers", 0, "Worker goroutines per pass (0 = config value)")
	flagTangents  = flag.String("tangents", "", "Tangent algorithm")
	flagDirection = flag.String("directions", "", "Vertex directions mode (linear, normalized_linear, tangent)")
	flagSubdiv    = flag.Int("subdiv", -1, "Uniform subdivision level")
	flagAdaptive  = flag.Bool("adaptive", false, "Scale subdivision levels by edge length")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagWorkers > 0 {
		cfg.Processing.Workers = *flagWorkers
	}
	if *flagTangents != "" {
		cfg.Processing.TangentAlgorithm = *flagTangents
	}
	if *flagDirection != "" {
		cfg.Processing.DirectionsMode = *flagDirection
	}
	if *flagSubdiv >= 0 {
		cfg.Processing.SubdivLevel = *flagSubdiv
	}
	if *flagAdaptive {
		cfg.Processing.AdaptiveSubdiv = true
	}
}
