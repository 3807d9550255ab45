package dashboard

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/yks/internal/model"
	"github.com/verte-zerg/yks/internal/seed"
	"github.com/verte-zerg/yks/internal/stats"
)

const (
	lessonRows  = 6
	netRows     = 5
	cardChrome  = 4
	minCardText = 20
	trendWindow = 3
)

type renderContext struct {
	snap  model.Snapshot
	today time.Time
	days  int
}

type widgetRenderer func(rc renderContext, width int) string

var renderers = map[string]widgetRenderer{
	seed.ComponentTimeSeries:      renderTimeSeries,
	seed.ComponentLessonRadar:     renderLessonRadar,
	seed.ComponentMockPerformance: renderMockPerformance,
	seed.ComponentPlanSuggestion:  renderPlanSuggestion,
}

// renderBoard lays out the visible widgets in order. Large cards take a full
// row, medium cards are paired side by side.
func renderBoard(rc renderContext, widgets []model.WidgetConfig, selected string, width int) string {
	if width <= 0 {
		width = 80
	}
	half := width / 2
	stacked := width < 80
	rows := []string{}
	var pending string
	flush := func() {
		if pending != "" {
			rows = append(rows, pending)
			pending = ""
		}
	}
	for _, w := range widgets {
		if !w.Visible {
			continue
		}
		if w.Size == model.SizeLarge || stacked {
			flush()
			rows = append(rows, renderCard(rc, w, w.ID == selected, width))
			continue
		}
		card := renderCard(rc, w, w.ID == selected, half)
		if pending == "" {
			pending = card
			continue
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, pending, card))
		pending = ""
	}
	flush()
	if len(rows) == 0 {
		return mutedStyle.Render("Görünür widget yok. Menüden bir widget aç (space).")
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(rc renderContext, w model.WidgetConfig, selected bool, width int) string {
	inner := max(width-cardChrome, minCardText)
	title := cardTitleStyle.Render(runewidth.Truncate(w.Title, inner, "…"))
	desc := mutedStyle.Render(runewidth.Truncate(w.Description, inner, "…"))
	body := "Bilinmeyen bileşen: " + w.Component
	if render, ok := renderers[w.Component]; ok {
		body = render(rc, inner)
	}
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	return style.Width(inner + 2).Render(strings.Join([]string{title, desc, "", body}, "\n"))
}

func renderTimeSeries(rc renderContext, width int) string {
	series := stats.DailySeries(rc.snap.StudyEntries, rc.days, rc.today)
	bars := make([]stats.Bar, len(series))
	for i, d := range series {
		bars[i] = stats.Bar{Label: d.Date[5:], Value: float64(d.Minutes), Text: fmt.Sprintf("%d dk", d.Minutes)}
	}
	var buf bytes.Buffer
	if err := stats.RenderBars(&buf, "", bars, width); err != nil {
		return errorStyle.Render(err.Error())
	}
	lines := []string{strings.TrimRight(buf.String(), "\n")}
	lines = append(lines, "Eğilim: "+stats.Sparkline(stats.MovingAverage(stats.MinutesValues(series), trendWindow)))

	week := stats.WeeklyTotals(rc.snap.StudyEntries, rc.today)
	total := 0
	for _, d := range week {
		total += d.Minutes
	}
	lines = append(lines, fmt.Sprintf("Bu hafta: %s", stats.FormatMinutes(total)))

	eff := stats.EfficiencyData(rc.snap.StudyEntries, rc.today)
	values := make([]float64, len(eff))
	for i, p := range eff {
		values[i] = p.Efficiency
	}
	if spark := stats.Sparkline(values); spark != "" {
		lines = append(lines, "Verim: "+spark)
	}
	return strings.Join(lines, "\n")
}

func renderLessonRadar(rc renderContext, width int) string {
	dist := stats.LessonDistribution(rc.snap.StudyEntries)
	if len(dist) == 0 {
		return mutedStyle.Render("Henüz çalışma kaydı yok.")
	}
	top := stats.TopLessons(dist, lessonRows)
	bars := make([]stats.Bar, len(top))
	for i, b := range top {
		bars[i] = stats.Bar{Label: runewidth.Truncate(b.Lesson, 14, "…"), Value: float64(b.Minutes), Text: stats.FormatMinutes(b.Minutes)}
	}
	var buf bytes.Buffer
	if err := stats.RenderBars(&buf, "", bars, width); err != nil {
		return errorStyle.Render(err.Error())
	}
	lines := []string{strings.TrimRight(buf.String(), "\n")}
	if weak := stats.BottomLessons(dist, 1); len(weak) == 1 && len(dist) > 1 {
		lines = append(lines, mutedStyle.Render("En az: "+weak[0].Lesson))
	}
	return strings.Join(lines, "\n")
}

func renderMockPerformance(rc renderContext, _ int) string {
	trend := stats.NetTrend(rc.snap.MockExams)
	if len(trend) == 0 {
		return mutedStyle.Render("Henüz deneme yok.")
	}
	tyt := make([]float64, len(trend))
	ayt := make([]float64, len(trend))
	for i, p := range trend {
		tyt[i] = p.TYT
		ayt[i] = p.AYT
	}
	start := max(len(trend)-netRows, 0)
	lines := []string{"Tarih        TYT     AYT"}
	for _, p := range trend[start:] {
		lines = append(lines, fmt.Sprintf("%s  %6.2f  %6.2f", p.Date, p.TYT, p.AYT))
	}
	lines = append(lines, "TYT "+stats.Sparkline(tyt)+"  AYT "+stats.Sparkline(ayt))
	if dTYT, dAYT, ok := stats.NetDelta(trend); ok {
		lines = append(lines, deltaStyle(dTYT).Render(fmt.Sprintf("TYT %+.2f", dTYT))+"  "+deltaStyle(dAYT).Render(fmt.Sprintf("AYT %+.2f", dAYT)))
	}
	return strings.Join(lines, "\n")
}

func renderPlanSuggestion(rc renderContext, width int) string {
	s := stats.Suggest(rc.snap.StudyEntries, rc.today)
	lines := []string{cardValueStyle.Width(width).Render(s.Text)}
	if len(rc.snap.Goals) > 0 {
		lines = append(lines, "")
	}
	for _, g := range rc.snap.Goals {
		label := runewidth.Truncate(g.Title, max(width-6, 8), "…")
		lines = append(lines, fmt.Sprintf("%s %s", runewidth.FillRight(label, max(width-6, 8)), progressText(g.Progress())))
	}
	return strings.Join(lines, "\n")
}

func progressText(p int) string {
	text := fmt.Sprintf("%%%d", p)
	if p >= 100 {
		return goodStyle.Render(text)
	}
	return text
}

func deltaStyle(v float64) lipgloss.Style {
	switch {
	case v > 0:
		return goodStyle
	case v < 0:
		return errorStyle
	default:
		return mutedStyle
	}
}
