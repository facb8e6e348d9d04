package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/foundry/core/audit"
	"github.com/kilianp07/foundry/world"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `registry:
  allow_overwrite: true
game:
  world: "wizard-world"
  player: "Nick"
observers:
  - type: "log"
  - type: "influx"
    conf:
      url: "http://localhost:8086"
      bucket: "creations"
audit:
  enabled: true
  backend: "sqlite"
  path: "audit.db"
server:
  address: ":9000"
  metrics_enabled: true
  token: "secret"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"allow_overwrite", cfg.Registry.AllowOverwrite, true},
		{"world", cfg.Game.World, "wizard-world"},
		{"player", cfg.Game.Player, "Nick"},
		{"observers", len(cfg.Observers), 2},
		{"observer type", cfg.Observers[1].Type, "influx"},
		{"observer conf", cfg.Observers[1].Conf["bucket"], "creations"},
		{"audit.enabled", cfg.Audit.Enabled, true},
		{"audit.backend", cfg.Audit.Backend, "sqlite"},
		{"audit.path", cfg.Audit.Path, "audit.db"},
		{"server.address", cfg.Server.Address, ":9000"},
		{"server.metrics_enabled", cfg.Server.MetricsEnabled, true},
		{"server.metrics_address", cfg.Server.MetricsAddress, ":2112"},
		{"server.token", cfg.Server.Token, "secret"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadJSONWithEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"game":{"world":"frog-world"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("K_GAME__PLAYER", "Ada")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Game.World != world.FrogWorld || cfg.Game.Player != "Ada" {
		t.Fatalf("unexpected game %+v", cfg.Game)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(cfg.Observers) != 0 {
		t.Fatalf("unexpected observers %+v", cfg.Observers)
	}
	if cfg.Game.World != world.FrogWorld || cfg.Game.Player != world.DefaultPlayer {
		t.Fatalf("unexpected game defaults %+v", cfg.Game)
	}
	if cfg.Audit.Enabled || cfg.Audit.Backend != audit.BackendJSONL || cfg.Audit.Path == "" {
		t.Fatalf("unexpected audit defaults %+v", cfg.Audit)
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("unexpected server defaults %+v", cfg.Server)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"config.toml":   "",
		"backend.yaml":  "audit:\n  backend: mongo\n",
		"observer.yaml": "observers:\n  - conf: {}\n",
		"metrics.yaml":  "server:\n  address: \":2112\"\n  metrics_enabled: true\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
