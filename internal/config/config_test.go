package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/meshops/pkg/meshops"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Processing.Workers != 0 {
		t.Errorf("expected workers 0, got %d", cfg.Processing.Workers)
	}
	if cfg.Processing.SubdivLevel != 3 {
		t.Errorf("expected subdiv level 3, got %d", cfg.Processing.SubdivLevel)
	}
	if cfg.Processing.Timeout != Duration(time.Minute) {
		t.Errorf("expected timeout 1m, got %v", cfg.Processing.Timeout)
	}
	if cfg.Grid.Resolution != 16 {
		t.Errorf("expected grid resolution 16, got %d", cfg.Grid.Resolution)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	opts, err := cfg.Processing.Options()
	if err != nil {
		t.Fatalf("default options: %v", err)
	}
	if opts.TangentAlgorithm != meshops.TangentLengyel {
		t.Errorf("expected lengyel tangents, got %v", opts.TangentAlgorithm)
	}
	if opts.DirectionsMode != meshops.DirectionsLinear {
		t.Errorf("expected linear directions, got %v", opts.DirectionsMode)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
processing:
  workers: 4
  tangent_algorithm: lengyel
  directions_mode: normalized_linear
  subdiv_level: 2
  adaptive_subdiv: true
  subdiv_bias: -1
  timeout: 5s

grid:
  resolution: 8
  size: 2.5

logging:
  level: "debug"
  log_file: "meshtool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Processing.Workers != 4 {
		t.Errorf("expected workers 4, got %d", cfg.Processing.Workers)
	}
	if cfg.Processing.Timeout != Duration(5*time.Second) {
		t.Errorf("expected timeout 5s, got %v", cfg.Processing.Timeout)
	}
	if cfg.Grid.Size != 2.5 {
		t.Errorf("expected grid size 2.5, got %f", cfg.Grid.Size)
	}
	if cfg.Logging.LogFile != "meshtool.log" {
		t.Errorf("expected log file 'meshtool.log', got %s", cfg.Logging.LogFile)
	}

	opts, err := cfg.Processing.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	want := meshops.SubdivisionSettings{MaxLevel: 2, Adaptive: true, Bias: -1}
	if opts.Subdivision != want {
		t.Errorf("expected subdivision %+v, got %+v", want, opts.Subdivision)
	}
	if opts.DirectionsMode != meshops.DirectionsNormalizedLinear {
		t.Errorf("expected normalized_linear, got %v", opts.DirectionsMode)
	}
	if opts.Workers != 4 {
		t.Errorf("expected 4 workers in options, got %d", opts.Workers)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "processing:\n  workers: not a number\n  invalid syntax here\n"},
		{"unknown key", "processing:\n  wrokers: 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("empty file changed the config: %+v", cfg)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/meshtool.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ProcessingConfig)
	}{
		{"tangent algorithm", func(p *ProcessingConfig) { p.TangentAlgorithm = "fancy" }},
		{"directions mode", func(p *ProcessingConfig) { p.DirectionsMode = "radial" }},
		{"subdiv level", func(p *ProcessingConfig) { p.SubdivLevel = meshops.MaxSubdivLevel + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default().Processing
			tt.modify(&p)
			if _, err := p.Options(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("grid:\n  resolution: 4\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find meshtool.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "workers flag",
			setup: func() { *flagWorkers = 8 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Processing.Workers != 8 {
					t.Errorf("expected 8 workers, got %d", cfg.Processing.Workers)
				}
			},
			teardown: func() { *flagWorkers = 0 },
		},
		{
			name:  "subdiv zero overrides default",
			setup: func() { *flagSubdiv = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Processing.SubdivLevel != 0 {
					t.Errorf("expected subdiv level 0, got %d", cfg.Processing.SubdivLevel)
				}
			},
			teardown: func() { *flagSubdiv = -1 },
		},
		{
			name: "algorithm flags",
			setup: func() {
				*flagTangents = "lengyel"
				*flagDirection = "tangent"
				*flagAdaptive = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Processing.TangentAlgorithm != "lengyel" {
					t.Errorf("expected lengyel, got %s", cfg.Processing.TangentAlgorithm)
				}
				if cfg.Processing.Timeout != Duration(90*time.Second) {
		t.Errorf("expected timeout 90s, got %v", time.Duration(cfg.Processing.Timeout))
	}
	if cfg.Processing.DirectionsMode != "tangent" {
					t.Errorf("expected tangent mode, got %s", cfg.Processing.DirectionsMode)
				}
				if !cfg.Processing.AdaptiveSubdiv {
					t.Error("expected adaptive subdivision")
				}
			},
			teardown: func() {
				*flagTangents = ""
				*flagDirection = ""
				*flagAdaptive = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	yamlContent := `
processing:
  workers: 2
  subdiv_level: 4
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWorkers = 6
	defer func() {
		*flagConfig = ""
		*flagWorkers = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Workers come from the flag, the level from the file.
	if cfg.Processing.Workers != 6 {
		t.Errorf("expected workers 6 from flag, got %d", cfg.Processing.Workers)
	}
	if cfg.Processing.SubdivLevel != 4 {
		t.Errorf("expected subdiv level 4 from file, got %d", cfg.Processing.SubdivLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(configPath, []byte("grid:\n  resolution: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Grid.Resolution != 3 {
		t.Errorf("expected resolution 3 from env config, got %d", cfg.Grid.Resolution)
	}
}

func TestLoadRejectsInvalidProcessing(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("processing:\n  directions_mode: radial\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, configPath)

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid directions mode")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	cfg.Processing.Workers = 3
	cfg.Logging.JSON = true

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("saved config differs after reload:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadFromTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "meshtool.toml")
	tomlContent := `
[processing]
workers = 2
directions_mode = "tangent"
timeout = "90s"

[grid]
resolution = 5
size = 0.5

[logging]
level = "warn"
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Processing.Workers != 2 {
		t.Errorf("expected workers 2, got %d", cfg.Processing.Workers)
	}
	if cfg.Processing.Timeout != Duration(90*time.Second) {
		t.Errorf("expected timeout 90s, got %v", time.Duration(cfg.Processing.Timeout))
	}
	if cfg.Processing.DirectionsMode != "tangent" {
		t.Errorf("expected tangent mode, got %s", cfg.Processing.DirectionsMode)
	}
	if cfg.Grid.Resolution != 5 || cfg.Grid.Size != 0.5 {
		t.Errorf("expected grid 5/0.5, got %d/%f", cfg.Grid.Resolution, cfg.Grid.Size)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Processing.SubdivLevel != 3 {
		t.Errorf("expected default subdiv level 3, got %d", cfg.Processing.SubdivLevel)
	}
}

func TestLoadFromTOMLUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "meshtool.toml")
	if err := os.WriteFile(configPath, []byte("[grid]\nresolutoin = 5\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for unknown TOML key")
	}
}

func TestSaveToTOMLWritesDurationAsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshtool.toml")
	cfg := Default()
	cfg.Processing.Timeout = Duration(90 * time.Second)

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "1m30s") {
		t.Errorf("expected timeout written as text, got:\n%s", data)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("saved config differs after reload:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", FileName, "processing:\n  timeout: soon\n"},
		{"toml", "meshtool.toml", "[processing]\ntimeout = \"soon\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error for invalid duration")
			}
		})
	}
}
