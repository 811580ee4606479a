package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the pipeline settings. Load reads a YAML file over the
// defaults, so a settings file only needs the keys it overrides.
type Config struct {
	Seed           uint32  `yaml:"seed"`
	NoiseLayers    int     `yaml:"noise_layers"`
	NoiseScale     float64 `yaml:"noise_scale"`
	WorldAmplitude float64 `yaml:"world_amplitude"`
	MeshWorkers    int     `yaml:"mesh_workers"`
	MeshQueueSize  int     `yaml:"mesh_queue_size"`
	WorldRadius    int     `yaml:"world_radius"`
	TickRateHz     int     `yaml:"tick_rate_hz"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Seed:           0xDEADBEEF,
		NoiseLayers:    3,
		NoiseScale:     1.0 / 32.0,
		WorldAmplitude: 16,
		MeshWorkers:    max(runtime.NumCPU(), 1),
		MeshQueueSize:  4096,
		WorldRadius:    2,
		TickRateHz:     60,
	}
}

// Load reads a YAML settings file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg.normalized(), nil
}

// normalized clamps values a settings file could set to something unusable.
func (c Config) normalized() Config {
	if c.NoiseLayers < 1 {
		c.NoiseLayers = 1
	}
	if c.MeshWorkers < 1 {
		c.MeshWorkers = max(runtime.NumCPU(), 1)
	}
	if c.MeshQueueSize < 1 {
		c.MeshQueueSize = 4096
	}
	if c.WorldRadius < 0 {
		c.WorldRadius = 0
	}
	if c.TickRateHz < 1 {
		c.TickRateHz = 60
	}
	return c
}
