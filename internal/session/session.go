// Package session owns the one pet of a running petcare instance. It hands
// the pet to the engine for every change and saves the result before
// returning, so the saved record always matches what the user sees.
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tatianab/petcare/internal/engine"
	"github.com/tatianab/petcare/internal/models"
	"github.com/tatianab/petcare/internal/store"
)

// ErrNoPet is returned when an action needs a pet and none has been created.
var ErrNoPet = errors.New("no pet yet")

type Session struct {
	engine *engine.Engine
	store  store.Store
	log    *slog.Logger
	pet    *models.Pet
}

func New(eng *engine.Engine, s store.Store, log *slog.Logger) *Session {
	return &Session{engine: eng, store: s, log: log}
}

// Open loads the saved pet, if there is one.
func (s *Session) Open(ctx context.Context) error {
	pet, err := store.LoadPet(ctx, s.store, s.log)
	if err != nil {
		return err
	}
	s.pet = pet
	if pet != nil {
		s.log.Info("pet loaded", "id", pet.ID, "name", pet.Name)
	}
	return nil
}

// Engine exposes the engine for read-only helpers such as greetings.
func (s *Session) Engine() *engine.Engine {
	return s.engine
}

// Pet returns a copy of the current pet.
func (s *Session) Pet() (models.Pet, bool) {
	if s.pet == nil {
		return models.Pet{}, false
	}
	return s.pet.Clone(), true
}

func (s *Session) commit(ctx context.Context, next models.Pet) error {
	if err := store.SavePet(ctx, s.store, next); err != nil {
		return err
	}
	s.pet = &next
	return nil
}

func (s *Session) current() (models.Pet, error) {
	if s.pet == nil {
		return models.Pet{}, ErrNoPet
	}
	return *s.pet, nil
}

// Create replaces any current pet with a new one.
func (s *Session) Create(ctx context.Context, name string, species models.Species, look models.Appearance) (models.Pet, error) {
	pet, err := s.engine.CreateCustomPet(name, species, look)
	if err != nil {
		return models.Pet{}, err
	}
	if err := s.commit(ctx, pet); err != nil {
		return models.Pet{}, err
	}
	return pet, nil
}

// Perform runs a care action and returns the pet's reaction sound.
func (s *Session) Perform(ctx context.Context, a engine.Action) (models.Pet, string, error) {
	pet, err := s.current()
	if err != nil {
		return models.Pet{}, "", err
	}
	next, sound, err := s.engine.Perform(pet, a)
	if err != nil {
		return pet, "", err
	}
	return next, sound, s.commit(ctx, next)
}

func (s *Session) Train(ctx context.Context, skill models.Skill) (models.Pet, error) {
	pet, err := s.current()
	if err != nil {
		return models.Pet{}, err
	}
	next, err := s.engine.TrainSkill(pet, skill)
	if err != nil {
		return pet, err
	}
	return next, s.commit(ctx, next)
}

func (s *Session) LearnPhotos(ctx context.Context, count int) (models.Pet, error) {
	pet, err := s.current()
	if err != nil {
		return models.Pet{}, err
	}
	next, err := s.engine.RecordPhotoTraining(pet, count)
	if err != nil {
		return pet, err
	}
	return next, s.commit(ctx, next)
}

func (s *Session) Chat(ctx context.Context, text string) (models.Pet, engine.Reply, error) {
	pet, err := s.current()
	if err != nil {
		return models.Pet{}, engine.Reply{}, err
	}
	next, reply := s.engine.Chat(ctx, pet, text)
	return next, reply, s.commit(ctx, next)
}

func (s *Session) Customize(ctx context.Context, look models.Appearance) (models.Pet, error) {
	pet, err := s.current()
	if err != nil {
		return models.Pet{}, err
	}
	next, err := s.engine.Customize(pet, look)
	if err != nil {
		return pet, err
	}
	return next, s.commit(ctx, next)
}

func (s *Session) Rename(ctx context.Context, name string) (models.Pet, error) {
	pet, err := s.current()
	if err != nil {
		return models.Pet{}, err
	}
	next, err := s.engine.Rename(pet, name)
	if err != nil {
		return pet, err
	}
	return next, s.commit(ctx, next)
}

// Reset deletes the saved pet and forgets the current one.
func (s *Session) Reset(ctx context.Context) error {
	if err := store.ResetPet(ctx, s.store); err != nil {
		return err
	}
	if s.pet != nil {
		s.log.Info("pet reset", "id", s.pet.ID)
	}
	s.pet = nil
	return nil
}
