package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/yks/internal/model"
)

// TYTExamDate is the scheduled date of the 2026 TYT session.
var TYTExamDate = time.Date(2026, time.June, 20, 0, 0, 0, 0, time.Local)

// ReportOptions controls the plain-text report.
type ReportOptions struct {
	Days     int
	Width    int
	ExamDate time.Time
	Today    time.Time
}

// RenderReport prints every dashboard section as plain text.
func RenderReport(w io.Writer, snap model.Snapshot, opts ReportOptions) error {
	if opts.Days <= 0 {
		opts.Days = DefaultDayCount
	}
	if opts.Today.IsZero() {
		opts.Today = time.Now()
	}
	if opts.ExamDate.IsZero() {
		opts.ExamDate = TYTExamDate
	}
	sections := []func(io.Writer, model.Snapshot, ReportOptions) error{
		renderSummarySection,
		renderDailySection,
		renderWeeklySection,
		renderLessonSection,
		renderNetSection,
		renderGoalSection,
		renderTopicSection,
		renderSuggestionSection,
	}
	for _, render := range sections {
		if err := render(w, snap, opts); err != nil {
			return err
		}
	}
	return nil
}

func renderSummarySection(w io.Writer, snap model.Snapshot, opts ReportOptions) error {
	s := Summarize(snap.StudyEntries, snap.MockExams)
	lines := []string{
		"Summary",
		fmt.Sprintf("Total time: %s", FormatMinutes(s.Minutes)),
		fmt.Sprintf("Questions: %d", s.Questions),
		fmt.Sprintf("Mock exams: %d", s.Exams),
		fmt.Sprintf("Active lessons: %d", s.Lessons),
		fmt.Sprintf("Streak: %d days", Streak(snap.StudyEntries, opts.Today)),
		fmt.Sprintf("Days to exam: %d", DaysUntil(opts.ExamDate, opts.Today)),
	}
	return writeLines(w, lines)
}

func renderDailySection(w io.Writer, snap model.Snapshot, opts ReportOptions) error {
	series := DailySeries(snap.StudyEntries, opts.Days, opts.Today)
	bars := make([]Bar, len(series))
	for i, d := range series {
		bars[i] = Bar{
			Label: d.Date,
			Value: float64(d.Minutes),
			Text:  fmt.Sprintf("%d dk · %d soru", d.Minutes, d.Questions),
		}
	}
	if err := RenderBars(w, fmt.Sprintf("Last %d days", opts.Days), bars, opts.Width); err != nil {
		return err
	}
	eff := EfficiencyData(snap.StudyEntries, opts.Today)
	values := make([]float64, len(eff))
	for i, p := range eff {
		values[i] = p.Efficiency
	}
	return writeLines(w, []string{"Efficiency (questions/min): " + Sparkline(values)})
}

func renderWeeklySection(w io.Writer, snap model.Snapshot, opts ReportOptions) error {
	week := WeeklyTotals(snap.StudyEntries, opts.Today)
	rows := make([][]string, 0, len(week))
	for _, d := range week {
		rows = append(rows, []string{d.Label, strconv.Itoa(d.Minutes), strconv.Itoa(d.Questions)})
	}
	return writeTable(w, "This week", []string{"Gün", "Dakika", "Soru"}, rows, map[int]bool{1: true, 2: true})
}

func renderLessonSection(w io.Writer, snap model.Snapshot, _ ReportOptions) error {
	dist := LessonDistribution(snap.StudyEntries)
	if len(dist) == 0 {
		return writeLines(w, []string{"Lessons", "No study entries found."})
	}
	rows := make([][]string, 0, len(dist))
	for _, b := range TopLessons(dist, len(dist)) {
		rows = append(rows, []string{b.Lesson, strconv.Itoa(b.Minutes), strconv.Itoa(b.Questions)})
	}
	return writeTable(w, "Lessons", []string{"Ders", "Dakika", "Soru"}, rows, map[int]bool{1: true, 2: true})
}

func renderNetSection(w io.Writer, snap model.Snapshot, _ ReportOptions) error {
	trend := NetTrend(snap.MockExams)
	if len(trend) == 0 {
		return writeLines(w, []string{"Net trend", "No mock exams found."})
	}
	rows := make([][]string, 0, len(trend))
	for _, p := range trend {
		rows = append(rows, []string{p.Date, formatNet(p.TYT), formatNet(p.AYT)})
	}
	if err := writeTable(w, "Net trend", []string{"Tarih", "TYT", "AYT"}, rows, map[int]bool{1: true, 2: true}); err != nil {
		return err
	}
	if tyt, ayt, ok := NetDelta(trend); ok {
		return writeLines(w, []string{fmt.Sprintf("Change since previous exam: TYT %+.2f  AYT %+.2f", tyt, ayt)})
	}
	return nil
}

func renderGoalSection(w io.Writer, snap model.Snapshot, _ ReportOptions) error {
	if len(snap.Goals) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(snap.Goals))
	for _, g := range snap.Goals {
		rows = append(rows, []string{
			g.Title,
			string(g.Period),
			formatGoalValue(g.Current, g.Unit) + " / " + formatGoalValue(g.Target, g.Unit),
			fmt.Sprintf("%%%d", g.Progress()),
		})
	}
	return writeTable(w, "Goals", []string{"Hedef", "Periyot", "Durum", "İlerleme"}, rows, map[int]bool{3: true})
}

func renderTopicSection(w io.Writer, snap model.Snapshot, _ ReportOptions) error {
	if len(snap.Topics) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(snap.Topics))
	for _, t := range snap.Topics {
		rows = append(rows, []string{
			t.Lesson,
			fmt.Sprintf("%d/%d", t.Completed, t.Total),
			fmt.Sprintf("%%%d", t.Completion()),
			strings.Join(t.MissingTopics, ", "),
		})
	}
	return writeTable(w, "Topics", []string{"Ders", "Konu", "Tamam", "Eksik"}, rows, map[int]bool{1: true, 2: true})
}

func renderSuggestionSection(w io.Writer, snap model.Snapshot, opts ReportOptions) error {
	s := Suggest(snap.StudyEntries, opts.Today)
	return writeLines(w, []string{"Today", s.Text})
}

func formatNet(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatGoalValue(v float64, unit string) string {
	if unit == "dk" {
		return FormatMinutes(int(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + unit
}

func writeTable(w io.Writer, title string, headers []string, rows [][]string, rightAlign map[int]bool) error {
	lines := append([]string{title}, formatTable(headers, rows, rightAlign)...)
	return writeLines(w, lines)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
