package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration decodes TOML strings like "16ms" into a time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Pools   PoolsConfig   `toml:"pools"`
	Logging LoggingConfig `toml:"logging"`
	Scene   SceneConfig   `toml:"scene"`
	Scripts ScriptsConfig `toml:"scripts"`
}

type EngineConfig struct {
	TickRate Duration `toml:"tick_rate"`
	// Groups are updated in listed order each tick by the driver loop.
	Groups []string `toml:"groups"`
}

type PoolsConfig struct {
	MaxSize int `toml:"max_size"` // recycle pool capacity per component kind
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // "json" or "console"
}

type SceneConfig struct {
	Manifest string `toml:"manifest"`
}

type ScriptsConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			TickRate: Duration{16 * time.Millisecond},
			Groups:   []string{"simulation", "interaction"},
		},
		Pools: PoolsConfig{MaxSize: 128},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Scene:   SceneConfig{Manifest: "scene/demo.yaml"},
		Scripts: ScriptsConfig{Dir: "scripts"},
	}
}

// Load reads a TOML config file over the defaults. A missing file returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Engine.TickRate.Duration <= 0 {
		return cfg, fmt.Errorf("config %s: tick_rate must be positive", path)
	}
	return cfg, nil
}
