package engine

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tatianab/petcare/internal/models"
)

// Default stats for a freshly created pet.
const (
	StartHappiness = 100
	StartEnergy    = 100
	StartHunger    = 80
	StartLevel     = 1
)

// Rand is the source of randomness for chat replies and reaction sounds.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Engine applies the pet rules. It holds no pet of its own: every operation
// takes a pet value and returns the next one without touching the input.
type Engine struct {
	rand        Rand
	now         func() time.Time
	newID       func() string
	log         *slog.Logger
	storyteller Storyteller
}

type Option func(*Engine)

// WithRand pins the random source, mostly for tests.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs replaces the pet id generator.
func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithStoryteller lets story requests in chat be answered by s.
func WithStoryteller(s Storyteller) Option {
	return func(e *Engine) { e.storyteller = s }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rand:  globalRand{},
		now:   time.Now,
		newID: uuid.NewString,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) stamp() time.Time {
	return e.now().UTC()
}

// CreatePet makes a new pet with the default look.
func (e *Engine) CreatePet(name string, species models.Species) (models.Pet, error) {
	return e.CreateCustomPet(name, species, models.DefaultAppearance())
}

// CreateCustomPet makes a new pet with a look chosen before the first save.
// Empty appearance fields fall back to the defaults.
func (e *Engine) CreateCustomPet(name string, species models.Species, look models.Appearance) (models.Pet, error) {
	name = strings.TrimSpace(name)
	if err := models.ValidateName(name); err != nil {
		return models.Pet{}, err
	}
	if !species.Valid() {
		return models.Pet{}, models.NewValidationError("species", fmt.Sprintf("unknown species %q", species))
	}
	look = withDefaults(look)
	if err := look.Validate(); err != nil {
		return models.Pet{}, err
	}

	pet := models.Pet{
		ID:         e.newID(),
		Name:       name,
		Species:    species,
		Appearance: look,
		Stats: models.Stats{
			Happiness: StartHappiness,
			Energy:    StartEnergy,
			Hunger:    StartHunger,
			Mood:      models.DeriveMood(StartHappiness, StartEnergy, StartHunger),
		},
		Training:        models.Training{Level: StartLevel},
		Achievements:    []string{models.AchievementNewFriend},
		LastInteraction: e.stamp(),
	}
	e.log.Info("pet created", "id", pet.ID, "name", pet.Name, "species", pet.Species)
	return pet, nil
}

func withDefaults(look models.Appearance) models.Appearance {
	def := models.DefaultAppearance()
	if look.Color == "" {
		look.Color = def.Color
	}
	if look.Pattern == "" {
		look.Pattern = def.Pattern
	}
	if look.Size == "" {
		look.Size = def.Size
	}
	return look
}

// StatDelta is a change to the stats. Zero fields leave a stat as it is.
type StatDelta struct {
	Happiness int
	Energy    int
	Hunger    int
}

// ApplyStatDelta adds d to the stats, clamps each to [0,100], recomputes the
// mood and refreshes LastInteraction.
func (e *Engine) ApplyStatDelta(pet models.Pet, d StatDelta) models.Pet {
	next := pet.Clone()
	s := &next.Stats
	s.Happiness = models.Clamp(s.Happiness + d.Happiness)
	s.Energy = models.Clamp(s.Energy + d.Energy)
	s.Hunger = models.Clamp(s.Hunger + d.Hunger)
	s.Mood = models.DeriveMood(s.Happiness, s.Energy, s.Hunger)
	next.LastInteraction = e.stamp()

	if s.Mood != pet.Stats.Mood {
		e.log.Debug("mood changed", "id", pet.ID, "from", pet.Stats.Mood, "to", s.Mood)
	}
	return next
}

// Customize changes the pet's look. Species cannot change after creation.
func (e *Engine) Customize(pet models.Pet, look models.Appearance) (models.Pet, error) {
	look = withDefaults(look)
	if err := look.Validate(); err != nil {
		return pet, err
	}
	next := pet.Clone()
	next.Appearance = look
	return next, nil
}

// Rename gives the pet a new display name.
func (e *Engine) Rename(pet models.Pet, name string) (models.Pet, error) {
	name = strings.TrimSpace(name)
	if err := models.ValidateName(name); err != nil {
		return pet, err
	}
	next := pet.Clone()
	next.Name = name
	return next, nil
}
