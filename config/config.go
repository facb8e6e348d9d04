package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/foundry/core/factory"
)

type Config struct {
	Registry  factory.Options        `json:"registry"`
	Game      GameConfig             `json:"game"`
	Observers []factory.ModuleConfig `json:"observers"`
	// ObserverBuffer, when positive, delivers events to the observers from
	// a background goroutine through a queue of that many events.
	ObserverBuffer int          `json:"observer_buffer"`
	Audit          AuditConfig  `json:"audit"`
	Server         ServerConfig `json:"server"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults fills every section's unset fields.
func (c *Config) SetDefaults() {
	c.Game.SetDefaults()
	c.Audit.SetDefaults()
	c.Server.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if err := c.Audit.Validate(); err != nil {
		return fmt.Errorf("audit: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.ObserverBuffer < 0 {
		return fmt.Errorf("observer_buffer must not be negative")
	}
	for i, o := range c.Observers {
		if o.Type == "" {
			return fmt.Errorf("observers[%d]: type is required", i)
		}
	}
	return nil
}

// Load reads the file at path, applies K_ prefixed environment overrides
// (K_GAME__WORLD sets game.world) and validates the result. An empty path
// loads the environment over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
