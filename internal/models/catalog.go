package models

// Achievement tags.
const (
	AchievementNewFriend = "new-friend"
	AchievementTrainer   = "trainer"
)

// SkillAchievement is the tag earned the first time a skill is learned.
func SkillAchievement(s Skill) string {
	return "learned-" + string(s)
}

// Achievement is an entry in the catalog shown on the profile.
type Achievement struct {
	ID   string
	Name string
	Icon string
}

// Achievements is the full catalog in display order.
var Achievements = []Achievement{
	{ID: AchievementNewFriend, Name: "New Friend", Icon: "🎉"},
	{ID: SkillAchievement(SkillDraw), Name: "Artist", Icon: "🎨"},
	{ID: SkillAchievement(SkillSing), Name: "Singer", Icon: "🎵"},
	{ID: SkillAchievement(SkillDance), Name: "Dancer", Icon: "💃"},
	{ID: AchievementTrainer, Name: "Trainer", Icon: "📸"},
}

// SpeciesInfo is the presentation data for one species.
type SpeciesInfo struct {
	Name     string
	Emoji    string
	FullBody string
	Sounds   []string
	Moods    map[Mood]string
}

var speciesCatalog = map[Species]SpeciesInfo{
	SpeciesCat: {
		Name:     "Cat",
		Emoji:    "🐱",
		FullBody: "🐈",
		Sounds:   []string{"Meow!", "Purr!", "Mrow!"},
		Moods:    map[Mood]string{MoodHappy: "😸", MoodSleepy: "😴", MoodHungry: "🍽️", MoodPlayful: "🎾"},
	},
	SpeciesDog: {
		Name:     "Dog",
		Emoji:    "🐶",
		FullBody: "🐕",
		Sounds:   []string{"Woof!", "Bark!", "Ruff!"},
		Moods:    map[Mood]string{MoodHappy: "😊", MoodSleepy: "💤", MoodHungry: "🦴", MoodPlayful: "⚽"},
	},
	SpeciesRabbit: {
		Name:     "Rabbit",
		Emoji:    "🐰",
		FullBody: "🐇",
		Sounds:   []string{"Hop!", "Squeak!", "Nibble!"},
		Moods:    map[Mood]string{MoodHappy: "🥕", MoodSleepy: "😴", MoodHungry: "🥬", MoodPlayful: "🏃"},
	},
	SpeciesBird: {
		Name:     "Bird",
		Emoji:    "🐦",
		FullBody: "🦜",
		Sounds:   []string{"Tweet!", "Chirp!", "Sing!"},
		Moods:    map[Mood]string{MoodHappy: "🎵", MoodSleepy: "😴", MoodHungry: "🌾", MoodPlayful: "🪶"},
	},
}

// Info returns the catalog entry for s. Unknown species get a generic entry.
func (s Species) Info() SpeciesInfo {
	if info, ok := speciesCatalog[s]; ok {
		return info
	}
	return SpeciesInfo{Name: string(s), Emoji: "🐾", FullBody: "🐾", Sounds: []string{"..."}, Moods: map[Mood]string{}}
}

// Clamp bounds v to [MinStat, MaxStat].
func Clamp(v int) int {
	return max(MinStat, min(MaxStat, v))
}

// DeriveMood maps stats to a mood. The first matching rule wins.
func DeriveMood(happiness, energy, hunger int) Mood {
	switch {
	case happiness > 80:
		return MoodHappy
	case energy < 30:
		return MoodSleepy
	case hunger < 20:
		return MoodHungry
	default:
		return MoodPlayful
	}
}
