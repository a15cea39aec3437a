package engine

import (
	"fmt"
	"strings"

	"github.com/tatianab/petcare/internal/models"
)

// Action is a care action the user can take.
type Action string

const (
	ActionFeed  Action = "feed"
	ActionPlay  Action = "play"
	ActionClean Action = "clean"
	ActionHug   Action = "hug"
	ActionRest  Action = "rest"
)

var AllActions = []Action{ActionFeed, ActionPlay, ActionClean, ActionHug, ActionRest}

var actionDeltas = map[Action]StatDelta{
	ActionFeed:  {Hunger: 30, Happiness: 15},
	ActionPlay:  {Happiness: 25, Energy: -10},
	ActionClean: {Happiness: 20, Energy: -5},
	ActionHug:   {Happiness: 30, Energy: 5},
	ActionRest:  {Energy: 30, Happiness: 5},
}

// Delta returns the stat change the action applies.
func (a Action) Delta() StatDelta {
	return actionDeltas[a]
}

func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := actionDeltas[a]; !ok {
		return "", models.NewValidationError("action", fmt.Sprintf("unknown action %q", s))
	}
	return a, nil
}

// Perform applies a care action and returns the pet's reaction sound.
func (e *Engine) Perform(pet models.Pet, a Action) (models.Pet, string, error) {
	delta, ok := actionDeltas[a]
	if !ok {
		return pet, "", models.NewValidationError("action", fmt.Sprintf("unknown action %q", a))
	}
	next := e.ApplyStatDelta(pet, delta)
	e.log.Info("care action", "id", pet.ID, "action", a,
		"happiness", next.Stats.Happiness, "energy", next.Stats.Energy, "hunger", next.Stats.Hunger)
	return next, e.ReactionSound(pet.Species), nil
}

// ReactionSound picks one of the species' sounds.
func (e *Engine) ReactionSound(s models.Species) string {
	return pick(e.rand, s.Info().Sounds)
}

func pick(r Rand, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[r.IntN(len(options))]
}
