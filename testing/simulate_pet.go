package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/tatianab/petcare/internal/engine"
	"github.com/tatianab/petcare/internal/logger"
	"github.com/tatianab/petcare/internal/models"
	"github.com/tatianab/petcare/internal/session"
	"github.com/tatianab/petcare/internal/store"
)

const maxTurns = 20

// A scripted owner who looks after a pet without the TUI. Each turn picks
// something to do based on the pet's mood, the way a player would, and the
// run ends by reloading the save to check it matches.
func main() {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(42, 7))

	dir, err := os.MkdirTemp("", "petcare-sim-")
	if err != nil {
		log.Fatalf("Failed to create save dir: %v", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.NewFileStore(dir)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	petLog := logger.New(os.Stderr, "warn")
	eng := engine.NewEngine(engine.WithRand(rng), engine.WithLogger(petLog))
	sess := session.New(eng, st, petLog)

	fmt.Println("--- Step 1: Creating a pet ---")
	species := models.AllSpecies[rng.IntN(len(models.AllSpecies))]
	pet, err := sess.Create(ctx, "Sim", species, models.Appearance{Color: models.Palette[rng.IntN(len(models.Palette))]})
	if err != nil {
		log.Fatalf("Failed to create pet: %v", err)
	}
	fmt.Printf("Created %s the %s (%s)\n\n", pet.Name, pet.Species.Info().Name, pet.Appearance.Color)

	fmt.Println("--- Step 2: Caring for the pet ---")
	messages := []string{"Draw something!", "Sing a song!", "Dance for me!", "Tell me a story!", "How are you?"}
	for turn := 1; turn <= maxTurns; turn++ {
		pet, _ = sess.Pet()
		fmt.Printf("--- Turn %d (%s) ---\n", turn, pet.Stats.Mood)

		switch {
		case turn%5 == 0:
			skill := models.AllSkills[rng.IntN(len(models.AllSkills))]
			pet, err = sess.Train(ctx, skill)
			fmt.Printf("Trained %s, level %d\n", skill, pet.Training.Level)
		case turn%7 == 0:
			pet, err = sess.LearnPhotos(ctx, 1+rng.IntN(5))
			fmt.Printf("Studied photos, %d learned\n", pet.Training.ImagesLearned)
		case turn%3 == 0:
			var reply engine.Reply
			msg := messages[rng.IntN(len(messages))]
			pet, reply, err = sess.Chat(ctx, msg)
			fmt.Printf("Owner: %s\nPet (%s): %s\n", msg, reply.Kind, reply.Text)
		default:
			action := chooseAction(pet, rng)
			var sound string
			pet, sound, err = sess.Perform(ctx, action)
			fmt.Printf("Action: %s -> %s\n", action, sound)
		}
		if err != nil {
			log.Fatalf("Turn %d failed: %v", turn, err)
		}

		fmt.Printf("Stats: Happiness=%d, Energy=%d, Hunger=%d, Achievements=%v\n\n",
			pet.Stats.Happiness, pet.Stats.Energy, pet.Stats.Hunger, pet.Achievements)
	}

	fmt.Println("--- Step 3: Reloading the save ---")
	reloaded := session.New(eng, st, petLog)
	if err := reloaded.Open(ctx); err != nil {
		log.Fatalf("Failed to reload: %v", err)
	}
	got, ok := reloaded.Pet()
	if !ok {
		log.Fatal("Reloaded session has no pet")
	}
	want, _ := sess.Pet()
	if got.Stats != want.Stats || got.Training != want.Training || !got.LastInteraction.Equal(want.LastInteraction) {
		log.Fatalf("Reloaded pet differs:\n got %+v\nwant %+v", got, want)
	}
	fmt.Printf("Reloaded %s at level %d with %d achievements.\n", got.Name, got.Training.Level, len(got.Achievements))
}

func chooseAction(pet models.Pet, rng *rand.Rand) engine.Action {
	switch pet.Stats.Mood {
	case models.MoodSleepy:
		return engine.ActionRest
	case models.MoodHungry:
		return engine.ActionFeed
	}
	return engine.AllActions[rng.IntN(len(engine.AllActions))]
}
