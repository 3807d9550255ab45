package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/yks/internal/model"
	"github.com/verte-zerg/yks/internal/seed"
	"github.com/verte-zerg/yks/internal/stats"
	"github.com/verte-zerg/yks/internal/state"
)

var testToday = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.Local)

func clock() time.Time { return testToday }

func newTestModel(t *testing.T, user string) *Model {
	t.Helper()
	st := state.New(state.WithClock(clock))
	if user != "" {
		st.SetUser(context.Background(), user)
	}
	m := NewModel(st, Options{Clock: clock})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	run(t, m, m.Init())
	return m
}

// run executes cmd synchronously and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	m.Update(cmd())
}

func press(t *testing.T, m *Model, key tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(key)
	if cmd != nil {
		m.Update(cmd())
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBootstrapMarksInitialized(t *testing.T) {
	m := newTestModel(t, "local")
	if m.loading {
		t.Fatalf("expected loading to finish")
	}
	if !m.view.Initialized {
		t.Fatalf("expected store to be initialized")
	}
	if m.errMsg != "" {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
}

func TestToggleResizeAndMove(t *testing.T) {
	m := newTestModel(t, "local")
	first := m.view.Widgets[0].ID
	second := m.view.Widgets[1].ID

	press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.view.Widgets[0].Visible {
		t.Fatalf("expected first widget hidden after toggle")
	}

	press(t, m, runes("s"))
	if m.view.Widgets[0].Size != model.SizeLarge {
		t.Fatalf("expected large size, got %q", m.view.Widgets[0].Size)
	}

	press(t, m, runes("J"))
	if m.view.Widgets[0].ID != second || m.view.Widgets[1].ID != first {
		t.Fatalf("unexpected order after move: %s, %s", m.view.Widgets[0].ID, m.view.Widgets[1].ID)
	}
	if m.cursor != 1 {
		t.Fatalf("expected cursor to follow moved widget, got %d", m.cursor)
	}
	for i, w := range m.view.Widgets {
		if w.Order != i {
			t.Fatalf("widget %s has order %d at index %d", w.ID, w.Order, i)
		}
	}
}

func TestMoveAtEdgeIsNoop(t *testing.T) {
	m := newTestModel(t, "local")
	_, cmd := m.Update(runes("K"))
	if cmd != nil {
		t.Fatalf("expected no command when moving the first widget up")
	}
}

func TestCursorWraps(t *testing.T) {
	m := newTestModel(t, "local")
	m.Update(runes("k"))
	if m.cursor != len(m.view.Widgets)-1 {
		t.Fatalf("expected cursor to wrap to last widget, got %d", m.cursor)
	}
}

func TestActionWithoutUserShowsError(t *testing.T) {
	m := newTestModel(t, "")
	press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.errMsg != "Kullanıcı seçilmedi." {
		t.Fatalf("expected no-user error, got %q", m.errMsg)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	m := newTestModel(t, "local")
	id := firstUnread(m.view.Notifications)
	if id == "" {
		t.Fatalf("expected unread seed notification")
	}
	press(t, m, runes("n"))
	for _, n := range m.view.Notifications {
		if n.ID == id && !n.Read {
			t.Fatalf("expected notification %s to be read", id)
		}
	}
}

func TestViewRendersVisibleWidgets(t *testing.T) {
	m := newTestModel(t, "local")
	out := m.View()
	for _, want := range []string{"YKS Takip", "Widgetlar", "Zaman Analizleri", "Deneme Net Gelişimi", "Çıkış: q"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestRenderBoardEmpty(t *testing.T) {
	widgets := seed.DefaultWidgets()
	for i := range widgets {
		widgets[i].Visible = false
	}
	out := renderBoard(renderContext{today: testToday, days: 7}, widgets, "", 100)
	if !strings.Contains(out, "Görünür widget yok") {
		t.Fatalf("expected empty board message, got %q", out)
	}
}

func TestRenderCardUnknownComponent(t *testing.T) {
	w := model.WidgetConfig{ID: "x", Title: "Özel", Component: "heatmap", Visible: true, Size: model.SizeMedium}
	out := renderCard(renderContext{today: testToday, days: 7}, w, false, 60)
	if !strings.Contains(out, "Bilinmeyen bileşen: heatmap") {
		t.Fatalf("expected unknown component notice, got %q", out)
	}
}

func TestPlanSuggestionWrapsToWidth(t *testing.T) {
	const width = 24
	out := renderPlanSuggestion(renderContext{today: testToday, days: 7}, width)
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped suggestion, got %q", out)
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > width {
			t.Fatalf("line %q is %d cells wide", line, w)
		}
	}
	want := strings.Fields(stats.Suggest(nil, testToday).Text)
	if got := strings.Fields(out); strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("wrapping changed the text: %q", out)
	}
}
