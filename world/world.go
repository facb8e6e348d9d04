// Package world provides the game-world families: a hero and the obstacle
// it meets, bundled so that both always come from the same world.
package world

import (
	"fmt"

	"github.com/kilianp07/foundry/core/factory"
	"github.com/kilianp07/foundry/core/family"
)

// World names.
const (
	FrogWorld   = "frog-world"
	WizardWorld = "wizard-world"
)

// AdultAge is the age from which ForAge picks the wizard world.
const AdultAge = 18

// DefaultPlayer names the hero when no player is configured.
const DefaultPlayer = "Player"

// Character is the capability of the primary entity.
type Character interface {
	Name() string
	InteractWith(obstacle Hazard) string
}

// Hazard is the capability of the obstacle entity.
type Hazard interface {
	Name() string
	Action() string
}

var (
	// Hero is the primary-entity role.
	Hero = family.NewRole[Character]("primary-entity")
	// Obstacle is the obstacle-entity role.
	Obstacle = family.NewRole[Hazard]("obstacle-entity")
	// Schema declares the roles every world provides, hero first.
	Schema = family.MustSchema("world", Hero, Obstacle)
)

// Settings are the raw settings accepted by world constructors.
type Settings struct {
	Player string `json:"player"`
}

func decodeSettings(conf map[string]any) (Settings, error) {
	var s Settings
	if err := factory.Decode(conf, &s); err != nil {
		return s, fmt.Errorf("world settings: %w", err)
	}
	if s.Player == "" {
		s.Player = DefaultPlayer
	}
	return s, nil
}

// NewCatalog returns a catalog holding the built-in worlds.
func NewCatalog(opts ...factory.Option) (*family.Catalog, error) {
	cat := family.NewCatalog(Schema, opts...)
	if err := cat.Register(FrogWorld, NewFrogWorld); err != nil {
		return nil, err
	}
	if err := cat.Register(WizardWorld, NewWizardWorld); err != nil {
		return nil, err
	}
	return cat, nil
}

// ForAge picks the world suited to a player's age.
func ForAge(age int) string {
	if age < AdultAge {
		return FrogWorld
	}
	return WizardWorld
}
