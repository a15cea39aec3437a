package models

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// RecordKey is the well-known key the pet record is stored under.
const RecordKey = "petcare-pet"

// record is the stored shape of a Pet. The timestamp is kept as text so only
// a complete RFC 3339 value decodes; YAML would otherwise accept a cut-off
// "2026-10-1" as a date.
type record struct {
	ID              string     `yaml:"id"`
	Name            string     `yaml:"name"`
	Species         Species    `yaml:"species"`
	Appearance      Appearance `yaml:"appearance"`
	Stats           Stats      `yaml:"stats"`
	Training        Training   `yaml:"training"`
	Achievements    []string   `yaml:"achievements"`
	LastInteraction string     `yaml:"last_interaction"`
}

// Encode serializes the pet to YAML. LastInteraction is written in UTC as an
// RFC 3339 timestamp with nanoseconds, so Decode gets back the same instant.
func Encode(p Pet) (string, error) {
	rec := record{
		ID:              p.ID,
		Name:            p.Name,
		Species:         p.Species,
		Appearance:      p.Appearance,
		Stats:           p.Stats,
		Training:        p.Training,
		Achievements:    p.Achievements,
		LastInteraction: p.LastInteraction.UTC().Format(time.RFC3339Nano),
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode pet: %w", err)
	}
	return string(data), nil
}

// Decode parses text produced by Encode and checks every field against its
// allowed range. Any problem is reported as a *DecodeError.
func Decode(text string) (Pet, error) {
	if strings.TrimSpace(text) == "" {
		return Pet{}, &DecodeError{Reason: "empty record"}
	}

	dec := yaml.NewDecoder(strings.NewReader(text))
	dec.KnownFields(true)

	var rec record
	if err := dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return Pet{}, &DecodeError{Reason: "empty record"}
		}
		return Pet{}, &DecodeError{Reason: "malformed record", Err: err}
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Pet{}, &DecodeError{Reason: "trailing content after record", Err: err}
	}

	p := Pet{
		ID:           rec.ID,
		Name:         rec.Name,
		Species:      rec.Species,
		Appearance:   rec.Appearance,
		Stats:        rec.Stats,
		Training:     rec.Training,
		Achievements: rec.Achievements,
	}
	if rec.LastInteraction != "" {
		t, err := time.Parse(time.RFC3339Nano, rec.LastInteraction)
		if err != nil {
			return Pet{}, &DecodeError{Reason: "malformed last_interaction", Err: err}
		}
		p.LastInteraction = t.UTC()
	}

	if err := p.Validate(); err != nil {
		return Pet{}, &DecodeError{Reason: "invalid record", Err: err}
	}
	return p, nil
}

// Validate checks that p satisfies every pet invariant.
func (p Pet) Validate() error {
	if p.ID == "" {
		return NewValidationError("id", "missing")
	}
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if !p.Species.Valid() {
		return NewValidationError("species", fmt.Sprintf("unknown species %q", p.Species))
	}
	if err := p.Appearance.Validate(); err != nil {
		return err
	}

	s := p.Stats
	for _, stat := range []struct {
		name  string
		value int
	}{{"happiness", s.Happiness}, {"energy", s.Energy}, {"hunger", s.Hunger}} {
		if stat.value < MinStat || stat.value > MaxStat {
			return NewValidationError(stat.name, fmt.Sprintf("%d out of range", stat.value))
		}
	}
	if !s.Mood.Valid() {
		return NewValidationError("mood", fmt.Sprintf("unknown mood %q", s.Mood))
	}
	if want := DeriveMood(s.Happiness, s.Energy, s.Hunger); s.Mood != want {
		return NewValidationError("mood", fmt.Sprintf("%q does not match stats (want %q)", s.Mood, want))
	}

	if p.Training.Level < 1 {
		return NewValidationError("level", fmt.Sprintf("%d is below 1", p.Training.Level))
	}
	if p.Training.ImagesLearned < 0 {
		return NewValidationError("images_learned", "negative")
	}

	seen := make(map[string]bool, len(p.Achievements))
	for _, a := range p.Achievements {
		if seen[a] {
			return NewValidationError("achievements", fmt.Sprintf("duplicate %q", a))
		}
		seen[a] = true
	}
	if !seen[AchievementNewFriend] {
		return NewValidationError("achievements", "missing "+AchievementNewFriend)
	}

	if p.LastInteraction.IsZero() {
		return NewValidationError("last_interaction", "missing")
	}
	return nil
}

// ValidateName checks a display name as the user typed it.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return NewValidationError("name", fmt.Sprintf("must be at most %d characters", MaxNameLength))
	}
	return nil
}

func (a Appearance) Validate() error {
	if !ValidColor(a.Color) {
		return NewValidationError("color", fmt.Sprintf("%q is not in the palette", a.Color))
	}
	if !a.Pattern.Valid() {
		return NewValidationError("pattern", fmt.Sprintf("unknown pattern %q", a.Pattern))
	}
	if !a.Size.Valid() {
		return NewValidationError("size", fmt.Sprintf("unknown size %q", a.Size))
	}
	return nil
}
