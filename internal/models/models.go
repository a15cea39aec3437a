package models

import (
	"slices"
	"time"
)

const (
	MinStat = 0
	MaxStat = 100

	MaxNameLength = 20
)

// Species is the kind of animal a pet is.
type Species string

const (
	SpeciesCat    Species = "cat"
	SpeciesDog    Species = "dog"
	SpeciesRabbit Species = "rabbit"
	SpeciesBird   Species = "bird"
)

// AllSpecies lists the species in the order the create flow offers them.
var AllSpecies = []Species{SpeciesCat, SpeciesDog, SpeciesRabbit, SpeciesBird}

func (s Species) Valid() bool {
	return slices.Contains(AllSpecies, s)
}

// Mood is derived from stats; it is never set on its own.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSleepy  Mood = "sleepy"
	MoodHungry  Mood = "hungry"
	MoodPlayful Mood = "playful"
)

var AllMoods = []Mood{MoodHappy, MoodSleepy, MoodHungry, MoodPlayful}

func (m Mood) Valid() bool {
	return slices.Contains(AllMoods, m)
}

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeBig    Size = "big"
)

var AllSizes = []Size{SizeSmall, SizeMedium, SizeBig}

func (s Size) Valid() bool {
	return slices.Contains(AllSizes, s)
}

type Pattern string

const (
	PatternSolid   Pattern = "solid"
	PatternSpotted Pattern = "spotted"
	PatternStriped Pattern = "striped"
)

var AllPatterns = []Pattern{PatternSolid, PatternSpotted, PatternStriped}

func (p Pattern) Valid() bool {
	return slices.Contains(AllPatterns, p)
}

// Palette is the fixed set of colors a pet can have.
var Palette = []string{
	"#FF6B9D", "#4ECDC4", "#45B7D1", "#96CEB4",
	"#FFEAA7", "#DDA0DD", "#FF9A9E", "#A8EDEA",
}

func ValidColor(c string) bool {
	return slices.Contains(Palette, c)
}

// Skill is something a pet can be trained to do.
type Skill string

const (
	SkillDraw  Skill = "draw"
	SkillSing  Skill = "sing"
	SkillDance Skill = "dance"
)

var AllSkills = []Skill{SkillDraw, SkillSing, SkillDance}

func (s Skill) Valid() bool {
	return slices.Contains(AllSkills, s)
}

// Appearance is how a pet looks.
type Appearance struct {
	Color   string  `yaml:"color"`
	Pattern Pattern `yaml:"pattern"`
	Size    Size    `yaml:"size"`
}

// DefaultAppearance is what a new pet looks like unless the create flow says otherwise.
func DefaultAppearance() Appearance {
	return Appearance{Color: Palette[0], Pattern: PatternSolid, Size: SizeMedium}
}

// Stats holds the three bounded stats and the mood derived from them.
type Stats struct {
	Happiness int  `yaml:"happiness"`
	Energy    int  `yaml:"energy"`
	Hunger    int  `yaml:"hunger"`
	Mood      Mood `yaml:"mood"`
}

// Training tracks the pet's level and unlocked skills.
type Training struct {
	Level         int  `yaml:"level"`
	CanDraw       bool `yaml:"can_draw"`
	CanSing       bool `yaml:"can_sing"`
	CanDance      bool `yaml:"can_dance"`
	ImagesLearned int  `yaml:"images_learned"`
}

// Has reports whether the skill has been unlocked.
func (t Training) Has(s Skill) bool {
	switch s {
	case SkillDraw:
		return t.CanDraw
	case SkillSing:
		return t.CanSing
	case SkillDance:
		return t.CanDance
	}
	return false
}

// Pet is the user's companion and the only persisted entity.
type Pet struct {
	ID              string
	Name            string
	Species         Species
	Appearance      Appearance
	Stats           Stats
	Training        Training
	Achievements    []string
	LastInteraction time.Time
}

// Clone returns a copy that shares no memory with p.
func (p Pet) Clone() Pet {
	p.Achievements = slices.Clone(p.Achievements)
	return p
}

func (p Pet) HasAchievement(tag string) bool {
	return slices.Contains(p.Achievements, tag)
}

// SkillCount is the number of unlocked skills.
func (p Pet) SkillCount() int {
	n := 0
	for _, s := range AllSkills {
		if p.Training.Has(s) {
			n++
		}
	}
	return n
}

// SinceLastInteraction is how long the pet has been left alone, never negative.
func (p Pet) SinceLastInteraction(now time.Time) time.Duration {
	d := now.Sub(p.LastInteraction)
	if d < 0 {
		return 0
	}
	return d
}
