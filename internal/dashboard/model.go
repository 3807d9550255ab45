// Package dashboard provides the Bubble Tea widget board.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/verte-zerg/yks/internal/model"
	"github.com/verte-zerg/yks/internal/state"
	"github.com/verte-zerg/yks/internal/stats"
)

const (
	sidebarWidth   = 30
	actionTimeout  = 15 * time.Second
	headerHeight   = 2
	footerHeight   = 2
	minBodyHeight  = 3
	narrowTerminal = 70
)

var (
	titleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	mutedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	goodStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	cardTitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	cardValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	activeItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	inactiveItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	cardStyle         = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	selectedCardStyle = cardStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	sidebarStyle      = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Options configures the dashboard.
type Options struct {
	Days     int
	ExamDate time.Time
	Logger   *zap.Logger
	Clock    func() time.Time
}

type bootstrapMsg struct{ err error }

type actionMsg struct {
	status string
	err    error
}

// Model implements the Bubble Tea dashboard.
type Model struct {
	store *state.Store
	opts  Options

	view     state.View
	cursor   int
	viewport viewport.Model

	width  int
	height int

	loading bool
	status  string
	errMsg  string
}

// NewModel constructs a dashboard over the state store.
func NewModel(st *state.Store, opts Options) *Model {
	if opts.Days <= 0 {
		opts.Days = stats.DefaultDayCount
	}
	if opts.ExamDate.IsZero() {
		opts.ExamDate = stats.TYTExamDate
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	m := &Model{
		store:    st,
		opts:     opts,
		viewport: viewport.New(0, 0),
		loading:  true,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.bootstrap()
}

func (m *Model) bootstrap() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return bootstrapMsg{err: st.Bootstrap(ctx)}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderContent()
		return m, nil
	case bootstrapMsg:
		m.loading = false
		m.setResult("Veriler yüklendi.", msg.err)
		m.refresh()
		return m, nil
	case actionMsg:
		m.setResult(msg.status, msg.err)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected, ok := m.selected()
	switch msg.String() {
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case " ", "enter":
		if !ok {
			return m, nil
		}
		return m, m.action("Görünürlük güncellendi.", func(ctx context.Context) error {
			return m.store.ToggleWidget(ctx, selected.ID)
		})
	case "s":
		if !ok {
			return m, nil
		}
		size := model.SizeLarge
		if selected.Size == model.SizeLarge {
			size = model.SizeMedium
		}
		return m, m.action("Boyut güncellendi.", func(ctx context.Context) error {
			return m.store.ResizeWidget(ctx, selected.ID, size)
		})
	case "K", "shift+up":
		return m, m.move(-1)
	case "J", "shift+down":
		return m, m.move(1)
	case "y":
		return m, m.action("Düzen senkronize edildi.", m.store.SyncWidgets)
	case "n":
		id := firstUnread(m.view.Notifications)
		if id == "" {
			return m, nil
		}
		return m, m.action("Bildirim okundu.", func(ctx context.Context) error {
			return m.store.MarkNotificationRead(ctx, id)
		})
	case "r":
		m.loading = true
		return m, m.bootstrap()
	case "g", "home":
		m.viewport.GotoTop()
		return m, nil
	case "G", "end":
		m.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// move swaps the selected widget with its neighbour and keeps it selected.
func (m *Model) move(delta int) tea.Cmd {
	selected, ok := m.selected()
	target := m.cursor + delta
	if !ok || target < 0 || target >= len(m.view.Widgets) {
		return nil
	}
	over := m.view.Widgets[target].ID
	m.cursor = target
	return m.action("Sıralama güncellendi.", func(ctx context.Context) error {
		return m.store.ReorderWidgets(ctx, selected.ID, over)
	})
}

func (m *Model) action(status string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return actionMsg{status: status, err: fn(ctx)}
	}
}

func (m *Model) setResult(status string, err error) {
	if err != nil {
		m.opts.Logger.Warn("dashboard action failed", zap.Error(err))
		m.status = ""
		m.errMsg = describeError(err)
		return
	}
	m.errMsg = ""
	m.status = status
}

func describeError(err error) string {
	switch {
	case errors.Is(err, state.ErrNoUser):
		return "Kullanıcı seçilmedi."
	case errors.Is(err, state.ErrNotFound):
		return "Kayıt bulunamadı."
	default:
		return err.Error()
	}
}

func (m *Model) refresh() {
	m.view = m.store.View()
	if m.cursor >= len(m.view.Widgets) {
		m.cursor = max(len(m.view.Widgets)-1, 0)
	}
	m.renderContent()
}

func (m *Model) selected() (model.WidgetConfig, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Widgets) {
		return model.WidgetConfig{}, false
	}
	return m.view.Widgets[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	count := len(m.view.Widgets)
	if count == 0 {
		return
	}
	m.cursor = (m.cursor + delta + count) % count
	m.renderContent()
}

func (m *Model) boardWidth() int {
	if m.width <= 0 {
		return 80
	}
	if m.width < narrowTerminal {
		return m.width
	}
	return m.width - sidebarWidth
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.viewport.Width = m.boardWidth()
	m.viewport.Height = max(m.height-headerHeight-footerHeight, minBodyHeight)
}

func (m *Model) renderContent() {
	selected, _ := m.selected()
	rc := renderContext{snap: m.view.Snapshot(), today: m.opts.Clock(), days: m.opts.Days}
	m.viewport.SetContent(renderBoard(rc, m.view.Widgets, selected.ID, m.boardWidth()))
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	bodyHeight := max(m.height-headerHeight-footerHeight, minBodyHeight)
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := m.viewport.View()
	if m.width >= narrowTerminal {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(bodyHeight), body)
	}
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, fitLines(body, m.width, bodyHeight), footer}, "\n")
}

func (m *Model) renderHeader() string {
	name := "Misafir"
	if p := m.view.Profile; p != nil && p.FullName != "" {
		name = p.FullName
	}
	today := m.opts.Clock()
	if p := m.view.Profile; p != nil && p.TargetExam != "" {
		name += " · " + p.TargetExam
	}
	brand := "YKS Takip"
	unread := 0
	for _, n := range m.view.Notifications {
		if !n.Read {
			unread++
		}
	}
	info := fmt.Sprintf("Sınava %d gün  Seri %d gün  Okunmamış %d",
		stats.DaysUntil(m.opts.ExamDate, today), stats.Streak(m.view.StudyEntries, today), unread)
	if m.store.Offline() {
		info += "  (çevrimdışı)"
	}
	if m.loading {
		info += "  yükleniyor…"
	}
	title := titleStyle.Render(brand) + "  " + truncateLine(name, m.width-runewidth.StringWidth(brand)-2)
	return title + "\n" + headerStyle.Render(truncateLine(info, m.width))
}

func (m *Model) renderSidebar(height int) string {
	lines := []string{cardTitleStyle.Render("Widgetlar")}
	inner := sidebarWidth - 4
	for i, w := range m.view.Widgets {
		mark := "[ ]"
		if w.Visible {
			mark = "[x]"
		}
		label := fmt.Sprintf("%s %s %s", mark, runewidth.Truncate(w.Title, inner-8, "…"), w.Size)
		if i == m.cursor {
			lines = append(lines, activeItemStyle.Render("> "+label))
		} else {
			lines = append(lines, inactiveItemStyle.Render("  "+label))
		}
	}
	if n := firstUnreadNotification(m.view.Notifications); n != nil {
		lines = append(lines, "", cardTitleStyle.Render("Bildirim"))
		lines = append(lines, strings.Split(lipgloss.NewStyle().Width(inner).Render(n.Title), "\n")...)
	}
	return sidebarStyle.Width(sidebarWidth - 2).Height(max(height-2, 1)).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Seç: ↑/↓  Aç/Kapa: space  Boyut: s  Taşı: K/J  Senkron: y  Bildirim: n  Yenile: r  Çıkış: q")
	switch {
	case m.errMsg != "":
		return help + "\n" + errorStyle.Render(m.errMsg)
	case m.status != "":
		return help + "\n" + mutedStyle.Render(m.status)
	default:
		return help
	}
}

func firstUnread(items []model.Notification) string {
	if n := firstUnreadNotification(items); n != nil {
		return n.ID
	}
	return ""
}

func firstUnreadNotification(items []model.Notification) *model.Notification {
	for i := range items {
		if !items[i].Read {
			return &items[i]
		}
	}
	return nil
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
