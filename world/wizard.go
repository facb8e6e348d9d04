package world

import (
	"fmt"

	"github.com/kilianp07/foundry/core/family"
)

// Wizard is the hero of the wizard world.
type Wizard struct {
	name string
}

func (w *Wizard) Name() string { return w.name }

// InteractWith describes the wizard fighting obstacle.
func (w *Wizard) InteractWith(obstacle Hazard) string {
	return fmt.Sprintf("%s the Wizard battles against %s and %s!", w.name, obstacle.Name(), obstacle.Action())
}

// Ork is the obstacle of the wizard world.
type Ork struct{}

func (Ork) Name() string   { return "an evil ork" }
func (Ork) Action() string { return "kills it" }

// NewWizardWorld builds the wizard world family.
func NewWizardWorld(conf map[string]any) (*family.Factory, error) {
	s, err := decodeSettings(conf)
	if err != nil {
		return nil, err
	}
	return family.New(WizardWorld, Schema,
		family.Bind(Hero, func() (Character, error) { return &Wizard{name: s.Player}, nil }),
		family.Bind(Obstacle, func() (Hazard, error) { return Ork{}, nil }),
	)
}
