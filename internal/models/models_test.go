package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func samplePet() Pet {
	return Pet{
		ID:      "4f5b7f0e-6a43-4c39-9a8a-5d8f2b0f1c11",
		Name:    "Rex",
		Species: SpeciesDog,
		Appearance: Appearance{
			Color:   "#45B7D1",
			Pattern: PatternSpotted,
			Size:    SizeBig,
		},
		Stats: Stats{Happiness: 70, Energy: 55, Hunger: 40, Mood: MoodPlayful},
		Training: Training{
			Level:         3,
			CanDraw:       true,
			CanSing:       true,
			ImagesLearned: 4,
		},
		Achievements:    []string{AchievementNewFriend, "learned-draw", "learned-sing"},
		LastInteraction: time.Date(2026, 10, 18, 9, 30, 15, 123456789, time.UTC),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pet := samplePet()

	text, err := Encode(pet)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode: %v\nrecord was:\n%s", err, text)
	}
	if diff := cmp.Diff(pet, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if !got.LastInteraction.Equal(pet.LastInteraction) {
		t.Errorf("LastInteraction = %v, want %v", got.LastInteraction, pet.LastInteraction)
	}
}

func TestEncodeNormalizesToUTC(t *testing.T) {
	pet := samplePet()
	zone := time.FixedZone("UTC+9", 9*60*60)
	pet.LastInteraction = pet.LastInteraction.In(zone)

	text, err := Encode(pet)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(text, "2026-10-18T09:30:15.123456789Z") {
		t.Errorf("expected UTC RFC 3339 timestamp in record, got:\n%s", text)
	}

	got, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.LastInteraction.Equal(pet.LastInteraction) {
		t.Errorf("LastInteraction = %v, want same instant as %v", got.LastInteraction, pet.LastInteraction)
	}
}

func TestDecodeErrors(t *testing.T) {
	valid, err := Encode(samplePet())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	mutate := func(f func(p *Pet)) string {
		p := samplePet()
		f(&p)
		text, err := Encode(p)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		return text
	}

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t"},
		{"truncated quarter", valid[:len(valid)/4]},
		{"truncated half", valid[:len(valid)/2]},
		{"truncated three quarters", valid[:len(valid)*3/4]},
		{"not yaml", "{{{ this is not : a pet"},
		{"scalar", "just a string"},
		{"unknown field", valid + "favorite_toy: ball\n"},
		{"second document", valid + "---\ngarbage\n"},
		{"repeated record", valid + "---\n" + valid},
		{"date without time", strings.Replace(valid, "2026-10-18T09:30:15.123456789Z", "2026-10-18", 1)},
		{"timestamp without zone", strings.Replace(valid, "2026-10-18T09:30:15.123456789Z", "2026-10-18T09:30:15.123456789", 1)},
		{"bad species", strings.Replace(valid, "species: dog", "species: dragon", 1)},
		{"bad mood", mutate(func(p *Pet) { p.Stats.Mood = "grumpy" })},
		{"mood disagrees with stats", mutate(func(p *Pet) { p.Stats.Mood = MoodHappy })},
		{"bad size", mutate(func(p *Pet) { p.Appearance.Size = "huge" })},
		{"bad pattern", mutate(func(p *Pet) { p.Appearance.Pattern = "plaid" })},
		{"bad color", mutate(func(p *Pet) { p.Appearance.Color = "#000000" })},
		{"stat too high", mutate(func(p *Pet) { p.Stats.Energy = 101 })},
		{"stat negative", mutate(func(p *Pet) { p.Stats.Hunger = -1 })},
		{"missing id", mutate(func(p *Pet) { p.ID = "" })},
		{"missing name", mutate(func(p *Pet) { p.Name = "" })},
		{"level zero", mutate(func(p *Pet) { p.Training.Level = 0 })},
		{"negative images", mutate(func(p *Pet) { p.Training.ImagesLearned = -2 })},
		{"duplicate achievement", mutate(func(p *Pet) { p.Achievements = append(p.Achievements, "learned-draw") })},
		{"no new-friend", mutate(func(p *Pet) { p.Achievements = []string{"learned-draw"} })},
		{"missing timestamp", mutate(func(p *Pet) { p.LastInteraction = time.Time{} })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text)
			if err == nil {
				t.Fatalf("Decode(%q) succeeded, want error", tt.text)
			}
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("Decode error = %T (%v), want *DecodeError", err, err)
			}
		})
	}
}

func TestDecodeRejectsEveryTruncation(t *testing.T) {
	whole := samplePet()
	wholeSecond := samplePet()
	wholeSecond.LastInteraction = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	for _, pet := range []Pet{whole, wholeSecond} {
		text, err := Encode(pet)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		// Dropping only the final newline still leaves the full record.
		for i := 0; i < len(text)-1; i++ {
			got, err := Decode(text[:i])
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("Decode(%q) = %+v, %v; want *DecodeError", text[:i], got, err)
			}
		}
	}
}

func TestDecodeWrapsValidationError(t *testing.T) {
	valid, _ := Encode(samplePet())
	_, err := Decode(strings.Replace(valid, "species: dog", "species: dragon", 1))

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected wrapped *ValidationError, got %v", err)
	}
	if vErr.Field != "species" {
		t.Errorf("Field = %q, want species", vErr.Field)
	}
}

func TestDeriveMood(t *testing.T) {
	tests := []struct {
		happiness, energy, hunger int
		want                      Mood
	}{
		{90, 50, 50, MoodHappy},
		{50, 10, 50, MoodSleepy},
		{50, 50, 5, MoodHungry},
		{50, 50, 50, MoodPlayful},
		{81, 0, 0, MoodHappy},
		{80, 29, 0, MoodSleepy},
		{80, 30, 19, MoodHungry},
		{80, 30, 20, MoodPlayful},
	}
	for _, tt := range tests {
		if got := DeriveMood(tt.happiness, tt.energy, tt.hunger); got != tt.want {
			t.Errorf("DeriveMood(%d, %d, %d) = %s, want %s", tt.happiness, tt.energy, tt.hunger, got, tt.want)
		}
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"Rex", false},
		{"  Rex  ", false},
		{"", true},
		{"   ", true},
		{strings.Repeat("a", MaxNameLength), false},
		{strings.Repeat("a", MaxNameLength+1), true},
		{strings.Repeat("ñ", MaxNameLength), false},
	}
	for _, tt := range tests {
		err := ValidateName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestPetHelpers(t *testing.T) {
	pet := samplePet()

	if got := pet.SkillCount(); got != 2 {
		t.Errorf("SkillCount = %d, want 2", got)
	}
	if !pet.HasAchievement("learned-sing") || pet.HasAchievement("learned-dance") {
		t.Errorf("HasAchievement gave unexpected results for %v", pet.Achievements)
	}

	later := pet.LastInteraction.Add(3 * time.Hour)
	if got := pet.SinceLastInteraction(later); got != 3*time.Hour {
		t.Errorf("SinceLastInteraction = %v, want 3h", got)
	}
	if got := pet.SinceLastInteraction(pet.LastInteraction.Add(-time.Minute)); got != 0 {
		t.Errorf("SinceLastInteraction in the past = %v, want 0", got)
	}

	clone := pet.Clone()
	clone.Achievements[0] = "changed"
	if pet.Achievements[0] != AchievementNewFriend {
		t.Errorf("Clone shares achievements with original")
	}
}

func TestSpeciesInfo(t *testing.T) {
	for _, s := range AllSpecies {
		info := s.Info()
		if len(info.Sounds) != 3 {
			t.Errorf("%s: got %d sounds, want 3", s, len(info.Sounds))
		}
		for _, m := range AllMoods {
			if info.Moods[m] == "" {
				t.Errorf("%s: missing emoji for mood %s", s, m)
			}
		}
	}
}
