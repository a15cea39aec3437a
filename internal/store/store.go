// Package store keeps the encoded pet record between runs.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tatianab/petcare/internal/models"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("record not found")

// Store holds opaque text records under string keys.
type Store interface {
	// Load returns the record for key, or ErrNotFound.
	Load(ctx context.Context, key string) (string, error)
	// Save replaces the record for key.
	Save(ctx context.Context, key, value string) error
	// Delete removes the record for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// LoadPet reads the saved pet. A missing record, or one that no longer
// decodes, means there is no pet: both return nil without an error. Only
// storage failures are returned.
func LoadPet(ctx context.Context, s Store, log *slog.Logger) (*models.Pet, error) {
	text, err := s.Load(ctx, models.RecordKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load pet: %w", err)
	}

	pet, err := models.Decode(text)
	if err != nil {
		log.Warn("discarding unreadable pet record", "key", models.RecordKey, "err", err)
		return nil, nil
	}
	return &pet, nil
}

func SavePet(ctx context.Context, s Store, pet models.Pet) error {
	text, err := models.Encode(pet)
	if err != nil {
		return err
	}
	if err := s.Save(ctx, models.RecordKey, text); err != nil {
		return fmt.Errorf("save pet: %w", err)
	}
	return nil
}

// ResetPet forgets the saved pet entirely.
func ResetPet(ctx context.Context, s Store) error {
	if err := s.Delete(ctx, models.RecordKey); err != nil {
		return fmt.Errorf("reset pet: %w", err)
	}
	return nil
}

// MemoryStore keeps records in memory. It is used by tests and the simulator.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]string)}
}

func (m *MemoryStore) Load(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.records[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Save(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = value
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
