package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/petcare/internal/engine"
	"github.com/tatianab/petcare/internal/models"
	"github.com/tatianab/petcare/internal/session"
)

// Simulated delays. The engine answers instantly; the pauses are only here
// so the pet looks like it is thinking.
var (
	typingDelay = 1500 * time.Millisecond
	trainDelay  = 4 * time.Second
	photoDelay  = 3 * time.Second
)

type sessionState int

const (
	stateChooseSpecies sessionState = iota
	stateChooseColor
	stateChooseName
	statePlaying
	stateError
)

type model struct {
	state       sessionState
	session     *session.Session
	textInput   textinput.Model
	viewport    viewport.Model
	spinner     spinner.Model
	bar         progress.Model
	err         error
	notice      string
	busy        string
	chatLog     string
	showProfile bool
	width       int
	height      int

	speciesIdx int
	colorIdx   int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	petStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	replyStyles = map[engine.ReplyKind]lipgloss.Style{
		engine.KindDrawing: lipgloss.NewStyle().Foreground(lipgloss.Color("#9D174D")).Background(lipgloss.Color("#FCE7F3")).Padding(0, 1),
		engine.KindSong:    lipgloss.NewStyle().Foreground(lipgloss.Color("#1E40AF")).Background(lipgloss.Color("#DBEAFE")).Padding(0, 1),
		engine.KindDance:   lipgloss.NewStyle().Foreground(lipgloss.Color("#854D0E")).Background(lipgloss.Color("#FEF9C3")).Padding(0, 1),
	}

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF9A9E"))

	sideStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

// moodLabels is how moods are shown to the user.
var moodLabels = map[models.Mood]string{
	models.MoodHappy:   "Happy",
	models.MoodSleepy:  "Tired",
	models.MoodHungry:  "Hungry",
	models.MoodPlayful: "Playful",
}

var actionReactions = map[engine.Action]string{
	engine.ActionFeed:  "😋",
	engine.ActionPlay:  "🎉",
	engine.ActionClean: "✨",
	engine.ActionHug:   "💕",
	engine.ActionRest:  "💤",
}

func NewModel(sess *session.Session) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		session:   sess,
		textInput: ti,
		spinner:   sp,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
	}
	if pet, ok := sess.Pet(); ok {
		m.startPlaying(pet)
	} else {
		m.startCreate()
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type replyDueMsg struct{ text string }

type trainDueMsg struct{ skill models.Skill }

type photosDueMsg struct{ count int }

func (m *model) startCreate() {
	m.state = stateChooseSpecies
	m.speciesIdx = 0
	m.colorIdx = 0
	m.chatLog = ""
	m.showProfile = false
	m.textInput.Reset()
	m.textInput.CharLimit = models.MaxNameLength
	m.textInput.Placeholder = "Type a name..."
}

func (m *model) startPlaying(pet models.Pet) {
	m.state = statePlaying
	m.textInput.Reset()
	m.textInput.CharLimit = 156
	m.textInput.Placeholder = fmt.Sprintf("Talk to %s...", pet.Name)
	m.chatLog = petStyle.Render(m.session.Engine().Greeting(pet)) + "\n\n"
	m.refreshLog()
}

func (m *model) logWidth() int {
	return int(float64(m.width) * 0.6)
}

func (m *model) refreshLog() {
	m.viewport.SetContent(m.chatLog)
	m.viewport.GotoBottom()
}

func (m *model) appendUser(text string) {
	m.chatLog += userStyle.Width(m.logWidth()).Render("> "+text) + "\n\n"
	m.refreshLog()
}

func (m *model) appendPet(text string, kind engine.ReplyKind) {
	style, ok := replyStyles[kind]
	if !ok {
		style = petStyle
	}
	m.chatLog += style.Width(m.logWidth()).Render(text) + "\n\n"
	m.refreshLog()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	ctx := context.Background()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

		switch m.state {
		case stateChooseSpecies:
			m.updateChooser(msg, &m.speciesIdx, len(models.AllSpecies), stateChooseColor)
			return m, nil
		case stateChooseColor:
			m.updateChooser(msg, &m.colorIdx, len(models.Palette), stateChooseName)
			return m, nil
		case stateChooseName:
			if msg.Type == tea.KeyEnter {
				return m.createPet(ctx), nil
			}
		case statePlaying:
			if msg.Type == tea.KeyEnter {
				if m.busy != "" {
					return m, nil
				}
				input := strings.TrimSpace(m.textInput.Value())
				if input == "" {
					return m, nil
				}
				m.textInput.Reset()
				m.notice = ""
				return m.handleInput(ctx, input)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = max(msg.Height-8, 3)
		m.viewport.SetContent(m.chatLog)

	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case replyDueMsg:
		m.busy = ""
		_, reply, err := m.session.Chat(ctx, msg.text)
		if err != nil {
			return m.fail(err), nil
		}
		m.appendPet(reply.Text, reply.Kind)
		return m, nil

	case trainDueMsg:
		m.busy = ""
		pet, err := m.session.Train(ctx, msg.skill)
		if err != nil {
			return m.fail(err), nil
		}
		m.appendPet(fmt.Sprintf("%s learned to %s! Level %d now. 🎓", pet.Name, msg.skill, pet.Training.Level), engine.KindText)
		return m, nil

	case photosDueMsg:
		m.busy = ""
		pet, err := m.session.LearnPhotos(ctx, msg.count)
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			m.notice = vErr.Error()
			return m, nil
		}
		if err != nil {
			return m.fail(err), nil
		}
		m.appendPet(fmt.Sprintf("%s studied %d photos and can draw now! 🎨 (%d photos so far)",
			pet.Name, msg.count, pet.Training.ImagesLearned), engine.KindDrawing)
		return m, nil
	}

	if m.state == stateChooseName || m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) updateChooser(msg tea.KeyMsg, idx *int, n int, next sessionState) {
	switch msg.Type {
	case tea.KeyLeft, tea.KeyUp:
		*idx = (*idx + n - 1) % n
	case tea.KeyRight, tea.KeyDown, tea.KeyTab:
		*idx = (*idx + 1) % n
	case tea.KeyEnter:
		m.state = next
	case tea.KeyBackspace:
		if m.state == stateChooseColor {
			m.state = stateChooseSpecies
		}
	case tea.KeyRunes:
		if d, err := strconv.Atoi(string(msg.Runes)); err == nil && d >= 1 && d <= n {
			*idx = d - 1
		}
	}
}

func (m model) createPet(ctx context.Context) model {
	look := models.DefaultAppearance()
	look.Color = models.Palette[m.colorIdx]

	pet, err := m.session.Create(ctx, m.textInput.Value(), models.AllSpecies[m.speciesIdx], look)
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		m.notice = vErr.Error()
		return m
	}
	if err != nil {
		return m.fail(err)
	}
	m.notice = ""
	m.startPlaying(pet)
	return m
}

func (m model) fail(err error) model {
	m.err = err
	m.state = stateError
	return m
}

func (m model) handleInput(ctx context.Context, input string) (tea.Model, tea.Cmd) {
	if !strings.HasPrefix(input, "/") {
		m.appendUser(input)
		m.busy = "typing"
		return m, tea.Batch(m.spinner.Tick, tea.Tick(typingDelay, func(time.Time) tea.Msg {
			return replyDueMsg{text: input}
		}))
	}

	fields := strings.Fields(input)
	name, args := strings.TrimPrefix(fields[0], "/"), fields[1:]

	switch name {
	case "quit":
		return m, tea.Quit

	case "reset":
		if err := m.session.Reset(ctx); err != nil {
			return m.fail(err), nil
		}
		m.startCreate()
		return m, nil

	case "profile":
		m.showProfile = !m.showProfile
		return m, nil

	case "train":
		if len(args) != 1 || !models.Skill(args[0]).Valid() {
			m.notice = "usage: /train draw|sing|dance"
			return m, nil
		}
		skill := models.Skill(args[0])
		m.busy = "Learning to " + string(skill)
		return m, tea.Batch(m.spinner.Tick, tea.Tick(trainDelay, func(time.Time) tea.Msg {
			return trainDueMsg{skill: skill}
		}))

	case "photos":
		n := 0
		if len(args) == 1 {
			n, _ = strconv.Atoi(args[0])
		}
		if n < 1 {
			m.notice = "usage: /photos N (N ≥ 1)"
			return m, nil
		}
		m.busy = "Learning from photos"
		return m, tea.Batch(m.spinner.Tick, tea.Tick(photoDelay, func(time.Time) tea.Msg {
			return photosDueMsg{count: n}
		}))

	case "color":
		n := 0
		if len(args) == 1 {
			n, _ = strconv.Atoi(args[0])
		}
		if n < 1 || n > len(models.Palette) {
			m.notice = fmt.Sprintf("usage: /color 1-%d", len(models.Palette))
			return m, nil
		}
		return m.customize(ctx, func(look *models.Appearance) { look.Color = models.Palette[n-1] })

	case "pattern":
		if len(args) != 1 || !models.Pattern(args[0]).Valid() {
			m.notice = "usage: /pattern " + joinValues(models.AllPatterns)
			return m, nil
		}
		return m.customize(ctx, func(look *models.Appearance) { look.Pattern = models.Pattern(args[0]) })

	case "size":
		if len(args) != 1 || !models.Size(args[0]).Valid() {
			m.notice = "usage: /size " + joinValues(models.AllSizes)
			return m, nil
		}
		return m.customize(ctx, func(look *models.Appearance) { look.Size = models.Size(args[0]) })

	case "name":
		newName := strings.TrimSpace(strings.TrimPrefix(input, "/name"))
		if newName == "" {
			m.notice = "usage: /name NEW NAME"
			return m, nil
		}
		pet, err := m.session.Rename(ctx, newName)
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.appendPet(fmt.Sprintf("%s likes the new name!", pet.Name), engine.KindText)
		return m, nil
	}

	action, err := engine.ParseAction(name)
	if err != nil {
		m.notice = fmt.Sprintf("unknown command /%s", name)
		return m, nil
	}
	_, sound, err := m.session.Perform(ctx, action)
	if err != nil {
		return m.fail(err), nil
	}
	m.appendPet(sound+" "+actionReactions[action], engine.KindText)
	return m, nil
}

func (m model) customize(ctx context.Context, change func(*models.Appearance)) (tea.Model, tea.Cmd) {
	pet, _ := m.session.Pet()
	look := pet.Appearance
	change(&look)
	if _, err := m.session.Customize(ctx, look); err != nil {
		m.notice = err.Error()
	}
	return m, nil
}

func joinValues[T ~string](values []T) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return strings.Join(out, "|")
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateChooseSpecies:
		var opts []string
		for i, sp := range models.AllSpecies {
			info := sp.Info()
			opts = append(opts, choice(i == m.speciesIdx, fmt.Sprintf("%d %s %s", i+1, info.Emoji, info.Name)))
		}
		s = fmt.Sprintf("Make Your Pet! (1/3)\n\nChoose a pet:\n\n%s\n\n%s",
			strings.Join(opts, "  "),
			helpStyle.Render("←/→ or 1-4 to pick, Enter to continue"))

	case stateChooseColor:
		var opts []string
		for i, c := range models.Palette {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("●")
			opts = append(opts, choice(i == m.colorIdx, fmt.Sprintf("%d %s", i+1, swatch)))
		}
		info := models.AllSpecies[m.speciesIdx].Info()
		s = fmt.Sprintf("Make Your Pet! (2/3)\n\n%s Choose a color:\n\n%s\n\n%s",
			info.FullBody,
			strings.Join(opts, " "),
			helpStyle.Render("←/→ or 1-8 to pick, Enter to continue, Backspace to go back"))

	case stateChooseName:
		info := models.AllSpecies[m.speciesIdx].Info()
		s = fmt.Sprintf("Make Your Pet! (3/3)\n\n%s Name your pet:\n\n%s",
			lipgloss.NewStyle().Foreground(lipgloss.Color(models.Palette[m.colorIdx])).Render(info.FullBody),
			m.textInput.View())
		if m.notice != "" {
			s += "\n\n" + noticeStyle.Render(m.notice)
		}

	case statePlaying:
		side := m.renderPet()
		if m.showProfile {
			side = m.renderProfile()
		}
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			sideStyle.Width(max(m.width-m.logWidth()-4, 24)).Render(side),
		)

		status := ""
		if m.busy != "" {
			status = m.spinner.View() + " " + m.busy + "..."
		}
		if m.notice != "" {
			status = noticeStyle.Render(m.notice)
		}

		help := helpStyle.Render("/feed /play /clean /hug /rest · /train draw|sing|dance · /photos N · /color N · /pattern · /size · /name · /profile · /reset · /quit")

		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			status,
			m.textInput.View(),
			help,
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func choice(selected bool, label string) string {
	if selected {
		return selectedStyle.Render(label)
	}
	return label
}

func (m model) renderPet() string {
	pet, ok := m.session.Pet()
	if !ok {
		return ""
	}
	info := pet.Species.Info()
	body := lipgloss.NewStyle().Foreground(lipgloss.Color(pet.Appearance.Color)).Render(info.FullBody)

	header := titleStyle.Render(strings.ToUpper(pet.Name)) + "\n" +
		fmt.Sprintf("%s %s  %s\n", body, info.Moods[pet.Stats.Mood], moodLabels[pet.Stats.Mood]) +
		fmt.Sprintf("%s · %s · %s\n\n", info.Name, pet.Appearance.Size, pet.Appearance.Pattern)

	stats := titleStyle.Render("STATS") + "\n" +
		m.statLine("Happiness", pet.Stats.Happiness) +
		m.statLine("Energy   ", pet.Stats.Energy) +
		m.statLine("Hunger   ", pet.Stats.Hunger) + "\n"

	var skills []string
	for _, sk := range models.AllSkills {
		if pet.Training.Has(sk) {
			skills = append(skills, string(sk))
		}
	}
	training := titleStyle.Render("TRAINING") + "\n" +
		fmt.Sprintf("Level %d\n", pet.Training.Level)
	if len(skills) == 0 {
		training += "(no tricks yet)"
	} else {
		training += "Can " + strings.Join(skills, ", ")
	}

	return header + stats + training
}

func (m model) statLine(label string, v int) string {
	return fmt.Sprintf("%s %s %3d\n", label, m.bar.ViewAs(float64(v)/100), v)
}

func (m model) renderProfile() string {
	pet, ok := m.session.Pet()
	if !ok {
		return ""
	}

	s := titleStyle.Render(strings.ToUpper(pet.Name)+"'S PROFILE") + "\n" +
		fmt.Sprintf("Level:  %d\nPhotos: %d\nSkills: %d\n", pet.Training.Level, pet.Training.ImagesLearned, pet.SkillCount()) +
		fmt.Sprintf("Last seen: %s\n\n", lastSeen(pet.SinceLastInteraction(time.Now())))

	s += titleStyle.Render("ACHIEVEMENTS") + "\n"
	unlocked := 0
	for _, a := range models.Achievements {
		if pet.HasAchievement(a.ID) {
			unlocked++
			s += a.Icon + " " + a.Name + "\n"
		} else {
			s += lockedStyle.Render("🔒 "+a.Name) + "\n"
		}
	}
	s += fmt.Sprintf("\n%d of %d unlocked", unlocked, len(models.Achievements))
	return s
}

func lastSeen(d time.Duration) string {
	if h := int(d.Hours()); h > 0 {
		return fmt.Sprintf("%dh ago", h)
	}
	return "just now"
}

func Run(sess *session.Session) error {
	p := tea.NewProgram(NewModel(sess), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
