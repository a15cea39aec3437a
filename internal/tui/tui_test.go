package tui

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/petcare/internal/engine"
	"github.com/tatianab/petcare/internal/models"
	"github.com/tatianab/petcare/internal/session"
	"github.com/tatianab/petcare/internal/store"
)

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func newTestModel(t *testing.T) (model, *session.Session) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sess := session.New(engine.NewEngine(engine.WithRand(firstRand{})), store.NewMemoryStore(), log)
	if err := sess.Open(context.Background()); err != nil {
		t.Fatal(err)
	}
	m := NewModel(sess)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(model), sess
}

func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func submit(t *testing.T, m model, text string) (model, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(model), cmd
}

func TestCreateFlow(t *testing.T) {
	m, sess := newTestModel(t)
	if m.state != stateChooseSpecies {
		t.Fatalf("state = %v, want species chooser", m.state)
	}

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")}, // dog
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyRight}, // second color
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.state != stateChooseName {
		t.Fatalf("state = %v, want name entry", m.state)
	}

	m, _ = submit(t, m, "   ")
	if m.state != stateChooseName || m.notice == "" {
		t.Fatalf("blank name accepted: state=%v notice=%q", m.state, m.notice)
	}

	m, _ = submit(t, m, "Rex")
	if m.state != statePlaying {
		t.Fatalf("state = %v, want playing", m.state)
	}
	pet, ok := sess.Pet()
	if !ok {
		t.Fatal("no pet after create")
	}
	if pet.Name != "Rex" || pet.Species != models.SpeciesDog || pet.Appearance.Color != models.Palette[1] {
		t.Errorf("created %+v", pet)
	}
	if !strings.Contains(m.View(), "REX") {
		t.Errorf("view does not show the pet:\n%s", m.View())
	}
}

func playingModel(t *testing.T) (model, *session.Session) {
	t.Helper()
	m, sess := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = submit(t, m, "Mochi")
	if m.state != statePlaying {
		t.Fatalf("setup: state = %v", m.state)
	}
	return m, sess
}

func TestCareCommand(t *testing.T) {
	m, sess := playingModel(t)
	before, _ := sess.Pet()

	m, _ = submit(t, m, "/play")
	after, _ := sess.Pet()
	if after.Stats.Energy != before.Stats.Energy-10 {
		t.Errorf("Energy = %d, want %d", after.Stats.Energy, before.Stats.Energy-10)
	}
	if !strings.Contains(m.chatLog, "Meow!") {
		t.Errorf("no reaction in log:\n%s", m.chatLog)
	}

	m, _ = submit(t, m, "/juggle")
	if !strings.Contains(m.notice, "unknown command") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestTrainingWaitsForTick(t *testing.T) {
	m, sess := playingModel(t)

	m, cmd := submit(t, m, "/train sing")
	if cmd == nil || m.busy == "" {
		t.Fatal("training did not start a delay")
	}
	if pet, _ := sess.Pet(); pet.Training.CanSing {
		t.Fatal("skill learned before the delay finished")
	}

	// Enter is ignored while the pet is busy.
	m, cmd = submit(t, m, "/feed")
	if cmd != nil {
		t.Error("command accepted while busy")
	}

	m = press(t, m, trainDueMsg{skill: models.SkillSing})
	pet, _ := sess.Pet()
	if !pet.Training.CanSing || pet.Training.Level != 2 {
		t.Errorf("after training: %+v", pet.Training)
	}
	if m.busy != "" {
		t.Errorf("still busy: %q", m.busy)
	}
}

func TestChatAndPhotos(t *testing.T) {
	m, sess := playingModel(t)

	m, cmd := submit(t, m, "draw me something")
	if cmd == nil || m.busy != "typing" {
		t.Fatalf("chat did not start typing delay (busy=%q)", m.busy)
	}
	m = press(t, m, replyDueMsg{text: "draw me something"})
	if !strings.Contains(m.chatLog, "Meow! That sounds fun!") {
		t.Errorf("expected filler reply for untrained pet:\n%s", m.chatLog)
	}

	m = press(t, m, photosDueMsg{count: 3})
	pet, _ := sess.Pet()
	if !pet.Training.CanDraw || pet.Training.ImagesLearned != 3 {
		t.Errorf("after photos: %+v", pet.Training)
	}

	m = press(t, m, replyDueMsg{text: "draw me something"})
	if !strings.Contains(m.chatLog, "Here's my drawing for you!") {
		t.Errorf("expected drawing after photo training:\n%s", m.chatLog)
	}
}

func TestUsageNotices(t *testing.T) {
	m, _ := playingModel(t)
	for _, in := range []string{"/train juggle", "/photos", "/photos 0", "/color 9", "/pattern plaid", "/size", "/name"} {
		var cmd tea.Cmd
		m, cmd = submit(t, m, in)
		if !strings.HasPrefix(m.notice, "usage:") {
			t.Errorf("%s: notice = %q", in, m.notice)
		}
		if cmd != nil {
			t.Errorf("%s: unexpected command", in)
		}
	}
}

func TestColorAndProfile(t *testing.T) {
	m, sess := playingModel(t)

	m, _ = submit(t, m, "/color 5")
	pet, _ := sess.Pet()
	if pet.Appearance.Color != models.Palette[4] {
		t.Errorf("Color = %q, want %q", pet.Appearance.Color, models.Palette[4])
	}

	m, _ = submit(t, m, "/profile")
	if !m.showProfile {
		t.Fatal("profile not shown")
	}
	view := m.View()
	for _, want := range []string{"ACHIEVEMENTS", "New Friend", "1 of 5 unlocked"} {
		if !strings.Contains(view, want) {
			t.Errorf("profile missing %q", want)
		}
	}
}

func TestPatternSizeAndName(t *testing.T) {
	m, sess := playingModel(t)

	m, _ = submit(t, m, "/pattern striped")
	m, _ = submit(t, m, "/size big")
	m, _ = submit(t, m, "/name Sir Mochi")
	pet, _ := sess.Pet()
	if pet.Appearance.Pattern != models.PatternStriped || pet.Appearance.Size != models.SizeBig {
		t.Errorf("Appearance = %+v", pet.Appearance)
	}
	if pet.Name != "Sir Mochi" {
		t.Errorf("Name = %q, want Sir Mochi", pet.Name)
	}
	if !strings.Contains(m.View(), "SIR MOCHI") {
		t.Errorf("view does not show the new name:\n%s", m.View())
	}

	m, _ = submit(t, m, "/name "+strings.Repeat("x", models.MaxNameLength+1))
	if m.notice == "" {
		t.Error("overlong name accepted without a notice")
	}
	if pet, _ := sess.Pet(); pet.Name != "Sir Mochi" {
		t.Errorf("Name = %q after rejected rename", pet.Name)
	}
}

func TestPhotoOverflowShowsNotice(t *testing.T) {
	m, sess := playingModel(t)
	m = press(t, m, photosDueMsg{count: math.MaxInt})
	m = press(t, m, photosDueMsg{count: 1})
	if m.state != statePlaying {
		t.Fatalf("state = %v, want playing", m.state)
	}
	if m.notice == "" {
		t.Error("no notice for too many photos")
	}
	if pet, _ := sess.Pet(); pet.Training.ImagesLearned != math.MaxInt {
		t.Errorf("ImagesLearned = %d", pet.Training.ImagesLearned)
	}
}

func TestResetReturnsToCreate(t *testing.T) {
	m, sess := playingModel(t)
	m, _ = submit(t, m, "/reset")
	if m.state != stateChooseSpecies {
		t.Errorf("state = %v, want species chooser", m.state)
	}
	if _, ok := sess.Pet(); ok {
		t.Error("pet survived reset")
	}
}
