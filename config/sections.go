package config

import (
	"fmt"

	"github.com/kilianp07/foundry/core/audit"
	"github.com/kilianp07/foundry/world"
)

// GameConfig selects the world played by default.
type GameConfig struct {
	World  string `json:"world"`
	Player string `json:"player"`
}

func (c *GameConfig) SetDefaults() {
	if c.World == "" {
		c.World = world.FrogWorld
	}
	if c.Player == "" {
		c.Player = world.DefaultPlayer
	}
}

func (c GameConfig) Validate() error {
	if c.World == "" {
		return fmt.Errorf("world is required")
	}
	return nil
}

// AuditConfig defines where creation events are persisted.
type AuditConfig struct {
	// Enabled turns on the audit store.
	Enabled bool `json:"enabled"`
	// Backend selects the store type: "jsonl", "rotating" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *AuditConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = audit.BackendJSONL
	}
	if c.Path == "" {
		c.Path = "audit.jsonl"
	}
}

// Validate checks mandatory fields.
func (c AuditConfig) Validate() error {
	switch c.Backend {
	case audit.BackendJSONL, audit.BackendRotating, audit.BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address        string `json:"address"`
	MetricsEnabled bool   `json:"metrics_enabled"`
	MetricsAddress string `json:"metrics_address"`
	// Token, when set, is required as a bearer token by the audit endpoint.
	Token string `json:"token"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.MetricsAddress == "" {
		c.MetricsAddress = ":2112"
	}
}

func (c ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	if c.MetricsEnabled && c.MetricsAddress == c.Address {
		return fmt.Errorf("metrics_address must differ from address")
	}
	return nil
}
