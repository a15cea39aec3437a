package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/tatianab/petcare/internal/models"
)

// ChatHappinessBonus is added once for every reply the pet gives.
const ChatHappinessBonus = 5

// ReplyKind tells the UI how to render a reply.
type ReplyKind string

const (
	KindText    ReplyKind = "text"
	KindDrawing ReplyKind = "drawing"
	KindSong    ReplyKind = "song"
	KindDance   ReplyKind = "dance"
)

type Reply struct {
	Text string
	Kind ReplyKind
}

var (
	drawings = []string{"🌈", "🏠", "🌸", "🦋", "⭐", "🎈", "🍎", "🌞"}

	songs = []string{
		"🎵 La la la, you are my best friend! 🎵",
		"🎶 Happy happy day, let's go out and play! 🎶",
		"🎵 I love you, you love me, we're a happy family! 🎵",
	}

	danceLine = "💃 *dancing* 💃 Look at me go! Do you like my dance moves? 🕺"

	stories = []string{
		"Once upon a time, there was a magical pet who could fly! ✨🦋",
		"In a faraway land, all the animals were friends and played together! 🌈🐾",
		"There was a brave little pet who saved the day with kindness! 💖🦸",
	}
)

func fillers(s models.Species) []string {
	sounds := s.Info().Sounds
	sound := func(i int) string {
		if i < len(sounds) {
			return sounds[i]
		}
		return sounds[len(sounds)-1]
	}
	return []string{
		sound(0) + " That sounds fun!",
		sound(1) + " I love talking with you!",
		sound(2) + " You're the best friend ever!",
		"I'm so happy! What else can we do together? 😊",
		"That's amazing! Tell me more! ✨",
	}
}

// GenerateReply picks the pet's answer to text. Skill requests only get the
// special reply when the skill has been learned; otherwise they fall through
// to ordinary chatter. It does not change the pet.
func (e *Engine) GenerateReply(pet models.Pet, text string) Reply {
	msg := strings.ToLower(text)
	t := pet.Training

	switch {
	case strings.Contains(msg, "draw") && t.CanDraw:
		return Reply{
			Text: fmt.Sprintf("Here's my drawing for you! %s I made this just for you!", pick(e.rand, drawings)),
			Kind: KindDrawing,
		}
	case strings.Contains(msg, "sing") && t.CanSing:
		return Reply{Text: pick(e.rand, songs), Kind: KindSong}
	case strings.Contains(msg, "dance") && t.CanDance:
		return Reply{Text: danceLine, Kind: KindDance}
	case strings.Contains(msg, "story"):
		return Reply{Text: pick(e.rand, stories), Kind: KindText}
	}
	return Reply{Text: pick(e.rand, fillers(pet.Species)), Kind: KindText}
}

// Chat answers text and applies the chat happiness bonus exactly once.
// With a storyteller configured, story requests are answered by it; if it
// fails the canned story is used.
func (e *Engine) Chat(ctx context.Context, pet models.Pet, text string) (models.Pet, Reply) {
	reply := e.GenerateReply(pet, text)

	if e.storyteller != nil && reply.Kind == KindText && strings.Contains(strings.ToLower(text), "story") {
		story, err := e.storyteller.TellStory(ctx, pet, text)
		if err != nil {
			e.log.Warn("storyteller failed, using canned story", "id", pet.ID, "err", err)
		} else if story = strings.TrimSpace(story); story != "" {
			reply.Text = story
		}
	}

	next := e.ApplyStatDelta(pet, StatDelta{Happiness: ChatHappinessBonus})
	e.log.Debug("chat reply", "id", pet.ID, "kind", reply.Kind)
	return next, reply
}

// Greeting is the first thing the pet says when a chat opens.
func (e *Engine) Greeting(pet models.Pet) string {
	return fmt.Sprintf("Hi! I'm %s! What do you want me to do? 🐾", pet.Name)
}
