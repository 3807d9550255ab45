package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/yks/internal/lesson"
	"github.com/verte-zerg/yks/internal/model"
	"github.com/verte-zerg/yks/internal/stats"
)

// Date ranges of the history listing.
const (
	rangeAll   = "all"
	rangeToday = "today"
	rangeWeek  = "week"
	rangeMonth = "month"
)

var (
	historySearch   string
	historyLesson   string
	historyType     string
	historyRange    string
	historySort     string
	historyExamSort string
	historyAsc      bool
)

// historyFilter selects the records shown by the history command.
type historyFilter struct {
	search    string
	lesson    string
	studyType model.StudyType
	dateRange string
	today     time.Time
}

func (f historyFilter) validate() error {
	switch f.dateRange {
	case rangeAll, rangeToday, rangeWeek, rangeMonth:
	default:
		return fmt.Errorf("unknown range %q (all, today, week, month)", f.dateRange)
	}
	if f.studyType != "" && !f.studyType.Valid() {
		return fmt.Errorf("unknown study type %q", f.studyType)
	}
	return nil
}

// inRange reports whether a date key falls in the window ending today.
// Week and month cover the last 7 and 30 days including today.
func (f historyFilter) inRange(date string) bool {
	if f.dateRange == rangeAll {
		return true
	}
	d, err := model.ParseDate(date)
	if err != nil {
		return false
	}
	end := stats.StartOfDay(f.today)
	days := 1
	switch f.dateRange {
	case rangeWeek:
		days = 7
	case rangeMonth:
		days = 30
	}
	start := end.AddDate(0, 0, -(days - 1))
	return !d.Before(start) && !d.After(end)
}

func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func filterEntries(entries []model.StudyEntry, f historyFilter) []model.StudyEntry {
	var name string
	if f.lesson != "" {
		name, _ = lesson.Canonical(f.lesson)
	}
	out := make([]model.StudyEntry, 0, len(entries))
	for _, e := range entries {
		if !matchesSearch(f.search, e.Lesson, e.SubTopic, e.Notes) || !f.inRange(e.Date) {
			continue
		}
		if name != "" && e.Lesson != name {
			continue
		}
		if f.studyType != "" && e.StudyType != f.studyType {
			continue
		}
		out = append(out, e)
	}
	return out
}

// filterExams applies the search and the date range. Lesson and type filters only select entries.
func filterExams(exams []model.MockExam, f historyFilter) []model.MockExam {
	out := make([]model.MockExam, 0, len(exams))
	for _, e := range exams {
		if matchesSearch(f.search, e.Title, string(e.ExamType)) && f.inRange(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

func sortEntries(entries []model.StudyEntry, field string, asc bool) error {
	var compare func(a, b model.StudyEntry) int
	switch field {
	case "date":
		compare = func(a, b model.StudyEntry) int { return strings.Compare(a.Date, b.Date) }
	case "minutes":
		compare = func(a, b model.StudyEntry) int { return cmp.Compare(a.Minutes, b.Minutes) }
	case "questions":
		compare = func(a, b model.StudyEntry) int { return cmp.Compare(a.QuestionCount, b.QuestionCount) }
	case "lesson":
		compare = func(a, b model.StudyEntry) int { return strings.Compare(a.Lesson, b.Lesson) }
	default:
		return fmt.Errorf("unknown sort field %q (date, minutes, questions, lesson)", field)
	}
	slices.SortStableFunc(entries, direction(compare, asc))
	return nil
}

func sortExams(exams []model.MockExam, field string, asc bool) error {
	var compare func(a, b model.MockExam) int
	switch field {
	case "date":
		compare = func(a, b model.MockExam) int { return strings.Compare(a.Date, b.Date) }
	case "net":
		compare = func(a, b model.MockExam) int { return cmp.Compare(a.TotalNet(), b.TotalNet()) }
	case "title":
		compare = func(a, b model.MockExam) int { return strings.Compare(a.Title, b.Title) }
	default:
		return fmt.Errorf("unknown exam sort field %q (date, net, title)", field)
	}
	slices.SortStableFunc(exams, direction(compare, asc))
	return nil
}

func direction[T any](compare func(a, b T) int, asc bool) func(a, b T) int {
	if asc {
		return compare
	}
	return func(a, b T) int { return compare(b, a) }
}

// entrySummary totals the listed entries. The average is rounded to whole minutes.
type entrySummary struct {
	count      int
	minutes    int
	questions  int
	avgMinutes int
}

func summarizeEntries(entries []model.StudyEntry) entrySummary {
	s := entrySummary{count: len(entries)}
	for _, e := range entries {
		s.minutes += e.Minutes
		s.questions += e.QuestionCount
	}
	if s.count > 0 {
		s.avgMinutes = (s.minutes + s.count/2) / s.count
	}
	return s
}

func averageNet(exams []model.MockExam) float64 {
	if len(exams) == 0 {
		return 0
	}
	var total float64
	for _, e := range exams {
		total += e.TotalNet()
	}
	return total / float64(len(exams))
}

func writeHistory(w io.Writer, entries []model.StudyEntry, exams []model.MockExam) error {
	if err := printf(w, "Çalışma kayıtları\n"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Date, e.Lesson, string(e.StudyType), string(e.TimeSlot), strconv.Itoa(e.Minutes), strconv.Itoa(e.QuestionCount), e.SubTopic})
	}
	if err := stats.WriteTable(w, []string{"Tarih", "Ders", "Tür", "Dilim", "Dakika", "Soru", "Konu"}, rows); err != nil {
		return err
	}
	sum := summarizeEntries(entries)
	if err := printf(w, "%d kayıt, toplam %s, %d soru, ortalama %d dk\n\nDenemeler\n",
		sum.count, stats.FormatMinutes(sum.minutes), sum.questions, sum.avgMinutes); err != nil {
		return err
	}

	rows = make([][]string, 0, len(exams))
	for _, e := range exams {
		rows = append(rows, []string{e.Date, e.Title, string(e.ExamType), string(e.Difficulty), fmt.Sprintf("%.2f", e.TotalNet())})
	}
	if err := stats.WriteTable(w, []string{"Tarih", "Başlık", "Tür", "Zorluk", "Net"}, rows); err != nil {
		return err
	}
	return printf(w, "%d deneme, ortalama net %.1f\n", len(exams), averageNet(exams))
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List study sessions and mock exams",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySearch, "search", "", "match lesson, sub topic, notes or exam title")
	cmd.Flags().StringVar(&historyLesson, "lesson", "", "only sessions of this lesson")
	cmd.Flags().StringVar(&historyType, "type", "", "only sessions of this study type")
	cmd.Flags().StringVar(&historyRange, "range", rangeAll, "date range (all, today, week, month)")
	cmd.Flags().StringVar(&historySort, "sort", "date", "session sort field (date, minutes, questions, lesson)")
	cmd.Flags().StringVar(&historyExamSort, "exam-sort", "date", "exam sort field (date, net, title)")
	cmd.Flags().BoolVar(&historyAsc, "asc", false, "sort ascending")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	f := historyFilter{
		search:    strings.TrimSpace(historySearch),
		lesson:    strings.TrimSpace(historyLesson),
		studyType: model.StudyType(strings.TrimSpace(historyType)),
		dateRange: historyRange,
		today:     time.Now(),
	}
	if err := f.validate(); err != nil {
		return err
	}
	return withApp(cmd, func(_ context.Context, a *app) error {
		v := a.state.View()
		entries := filterEntries(v.StudyEntries, f)
		exams := filterExams(v.MockExams, f)
		if err := sortEntries(entries, historySort, historyAsc); err != nil {
			return err
		}
		if err := sortExams(exams, historyExamSort, historyAsc); err != nil {
			return err
		}
		return writeHistory(cmd.OutOrStdout(), entries, exams)
	})
}
