package world

import (
	"fmt"

	"github.com/kilianp07/foundry/core/family"
)

// Frog is the hero of the frog world.
type Frog struct {
	name string
}

func (f *Frog) Name() string { return f.name }

// InteractWith describes the frog meeting obstacle.
func (f *Frog) InteractWith(obstacle Hazard) string {
	return fmt.Sprintf("%s the Frog encounters %s and %s!", f.name, obstacle.Name(), obstacle.Action())
}

// Bug is the obstacle of the frog world.
type Bug struct{}

func (Bug) Name() string   { return "a bug" }
func (Bug) Action() string { return "eats it" }

// NewFrogWorld builds the frog world family.
func NewFrogWorld(conf map[string]any) (*family.Factory, error) {
	s, err := decodeSettings(conf)
	if err != nil {
		return nil, err
	}
	return family.New(FrogWorld, Schema,
		family.Bind(Hero, func() (Character, error) { return &Frog{name: s.Player}, nil }),
		family.Bind(Obstacle, func() (Hazard, error) { return Bug{}, nil }),
	)
}
