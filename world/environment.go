package world

import (
	"github.com/kilianp07/foundry/core/compose"
	"github.com/kilianp07/foundry/core/family"
)

// Environment is a composed world: one hero facing one obstacle.
type Environment struct {
	ctx *compose.Context
}

// NewEnvironment composes f into a playable environment.
func NewEnvironment(f *family.Factory, opts ...compose.Option) (*Environment, error) {
	ctx, err := compose.Compose(f, opts...)
	if err != nil {
		return nil, err
	}
	return &Environment{ctx: ctx}, nil
}

// Play lets the hero interact with the obstacle and returns the outcome.
func (e *Environment) Play() (string, error) {
	var outcome string
	err := compose.Use(e.ctx, Hero, func(h Character) error {
		return compose.Use(e.ctx, Obstacle, func(o Hazard) error {
			outcome = h.InteractWith(o)
			return nil
		})
	})
	return outcome, err
}

// World returns the name of the composed world.
func (e *Environment) World() string { return e.ctx.Family() }

// ID returns the composition id.
func (e *Environment) ID() string { return e.ctx.ID() }

// Close releases the environment.
func (e *Environment) Close() error { return e.ctx.Close() }

// Round is the result of one played environment.
type Round struct {
	World         string `json:"world"`
	Player        string `json:"player"`
	CompositionID string `json:"composition_id"`
	Outcome       string `json:"outcome"`
}

// Play selects name from cat, composes it for player, plays it once and
// releases it.
func Play(cat *family.Catalog, name, player string, opts ...compose.Option) (Round, error) {
	if player == "" {
		player = DefaultPlayer
	}
	f, err := cat.Select(name, map[string]any{"player": player})
	if err != nil {
		return Round{}, err
	}
	env, err := NewEnvironment(f, opts...)
	if err != nil {
		return Round{}, err
	}
	defer func() { _ = env.Close() }()
	outcome, err := env.Play()
	if err != nil {
		return Round{}, err
	}
	return Round{World: env.World(), Player: player, CompositionID: env.ID(), Outcome: outcome}, nil
}
