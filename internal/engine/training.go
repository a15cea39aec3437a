package engine

import (
	"fmt"
	"math"

	"github.com/tatianab/petcare/internal/models"
)

// PhotoHappinessBonus is how much happier a pet gets from a photo lesson.
const PhotoHappinessBonus = 10

// TrainSkill unlocks a skill. The flag is idempotent but every call is a
// lesson, so the level goes up by one each time until it reaches math.MaxInt.
func (e *Engine) TrainSkill(pet models.Pet, skill models.Skill) (models.Pet, error) {
	if !skill.Valid() {
		return pet, models.NewValidationError("skill", fmt.Sprintf("unknown skill %q", skill))
	}

	next := pet.Clone()
	switch skill {
	case models.SkillDraw:
		next.Training.CanDraw = true
	case models.SkillSing:
		next.Training.CanSing = true
	case models.SkillDance:
		next.Training.CanDance = true
	}
	if next.Training.Level < math.MaxInt {
		next.Training.Level++
	}
	next.Achievements = addAchievement(next.Achievements, models.SkillAchievement(skill))

	e.log.Info("skill trained", "id", pet.ID, "skill", skill, "level", next.Training.Level)
	return next, nil
}

// RecordPhotoTraining counts photos the pet learned from. Photos always teach
// drawing, and make the pet happier.
func (e *Engine) RecordPhotoTraining(pet models.Pet, count int) (models.Pet, error) {
	if count < 1 {
		return pet, models.NewValidationError("count", fmt.Sprintf("%d photos, need at least 1", count))
	}
	if count > math.MaxInt-pet.Training.ImagesLearned {
		return pet, models.NewValidationError("count", fmt.Sprintf("%d photos is more than the pet can remember", count))
	}

	next := e.ApplyStatDelta(pet, StatDelta{Happiness: PhotoHappinessBonus})
	next.Training.ImagesLearned += count
	next.Training.CanDraw = true
	next.Achievements = addAchievement(next.Achievements, models.AchievementTrainer)

	e.log.Info("photos learned", "id", pet.ID, "count", count, "total", next.Training.ImagesLearned)
	return next, nil
}

func addAchievement(list []string, tag string) []string {
	for _, a := range list {
		if a == tag {
			return list
		}
	}
	return append(list, tag)
}
