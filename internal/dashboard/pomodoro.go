package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/yks/internal/model"
	"github.com/verte-zerg/yks/internal/state"
)

// Pomodoro defaults.
const (
	DefaultFocus      = 25 * time.Minute
	DefaultShortBreak = 5 * time.Minute
	pomodoroLesson    = "Matematik"
)

var pomodoroTimerStyle = titleStyle.Padding(1, 2)

// PomodoroOptions configures the focus timer.
type PomodoroOptions struct {
	Focus  time.Duration
	Break  time.Duration
	Lesson string
	Logger *zap.Logger
	Clock  func() time.Time
}

type pomodoroTickMsg struct{ gen int }

type focusLoggedMsg struct {
	entry model.StudyEntry
	err   error
}

// Pomodoro is a focus timer. Every finished focus period is logged as a topic study session.
type Pomodoro struct {
	store *state.Store
	opts  PomodoroOptions

	remaining time.Duration
	running   bool
	onBreak   bool
	gen       int
	logged    int

	status string
	errMsg string
}

// NewPomodoro constructs a stopped timer at the start of a focus period.
func NewPomodoro(st *state.Store, opts PomodoroOptions) *Pomodoro {
	if opts.Focus <= 0 {
		opts.Focus = DefaultFocus
	}
	if opts.Break <= 0 {
		opts.Break = DefaultShortBreak
	}
	if strings.TrimSpace(opts.Lesson) == "" {
		opts.Lesson = pomodoroLesson
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Pomodoro{store: st, opts: opts, remaining: opts.Focus}
}

// Init implements tea.Model.
func (p *Pomodoro) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p *Pomodoro) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pomodoroTickMsg:
		if !p.running || msg.gen != p.gen {
			return p, nil
		}
		return p, p.advance()
	case focusLoggedMsg:
		if msg.err != nil {
			p.opts.Logger.Warn("failed to log focus session", zap.Error(msg.err))
			p.status = ""
			p.errMsg = describeError(msg.err)
		} else {
			p.logged++
			p.errMsg = ""
			p.status = fmt.Sprintf("Kaydedildi: %s %d dk", msg.entry.Lesson, msg.entry.Minutes)
		}
		if p.running {
			return p, p.tick()
		}
		return p, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return p, tea.Quit
		case " ", "enter":
			p.running = !p.running
			p.gen++
			if p.running {
				return p, p.tick()
			}
			return p, nil
		case "r":
			p.reset()
			return p, nil
		}
	}
	return p, nil
}

// advance counts one second down. A finished focus period starts the break
// and logs the session; a finished break stops the timer.
func (p *Pomodoro) advance() tea.Cmd {
	p.remaining -= time.Second
	if p.remaining > 0 {
		return p.tick()
	}
	if p.onBreak {
		p.reset()
		p.status = "Mola bitti."
		return nil
	}
	p.onBreak = true
	p.remaining = p.opts.Break
	return p.logFocus()
}

func (p *Pomodoro) reset() {
	p.running = false
	p.onBreak = false
	p.gen++
	p.remaining = p.opts.Focus
}

func (p *Pomodoro) tick() tea.Cmd {
	gen := p.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return pomodoroTickMsg{gen: gen} })
}

func (p *Pomodoro) logFocus() tea.Cmd {
	now := p.opts.Clock()
	entry := model.StudyEntry{
		Date:      model.DateKey(now),
		Lesson:    p.opts.Lesson,
		Minutes:   max(int(p.opts.Focus/time.Minute), 1),
		StudyType: model.StudyTopic,
		TimeSlot:  slotAt(now),
	}
	st := p.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		saved, err := st.AddStudyEntry(ctx, entry)
		return focusLoggedMsg{entry: saved, err: err}
	}
}

func slotAt(t time.Time) model.TimeSlot {
	switch h := t.Hour(); {
	case h < 12:
		return model.SlotMorning
	case h < 17:
		return model.SlotNoon
	default:
		return model.SlotEvening
	}
}

// View implements tea.Model.
func (p *Pomodoro) View() string {
	mode := "Odak modu"
	if p.onBreak {
		mode = "Kısa mola zamanı"
	}
	secs := int(p.remaining / time.Second)
	lines := []string{
		cardTitleStyle.Render("Pomodoro") + "  " + mutedStyle.Render(p.opts.Lesson),
		pomodoroTimerStyle.Render(fmt.Sprintf("%02d:%02d", secs/60, secs%60)),
		mode,
	}
	switch {
	case p.errMsg != "":
		lines = append(lines, errorStyle.Render(p.errMsg))
	case p.status != "":
		lines = append(lines, goodStyle.Render(p.status))
	}
	action := "Başlat"
	if p.running {
		action = "Duraklat"
	}
	lines = append(lines, "", headerStyle.Render(fmt.Sprintf("Boşluk: %s  r: Sıfırla  q: Çıkış  Kayıt: %d", action, p.logged)))
	return strings.Join(lines, "\n")
}
