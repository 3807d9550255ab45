package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/yks/internal/model"
)

func TestLessonDistributionKeepsFirstOccurrenceOrder(t *testing.T) {
	entries := []model.StudyEntry{
		entry("2026-10-14", "Fizik", 30, 10),
		entry("2026-10-13", "Türkçe", 60, 40),
		entry("2026-10-12", "Fizik", 45, 12),
	}

	dist := LessonDistribution(entries)
	if len(dist) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(dist))
	}
	if dist[0].Lesson != "Fizik" || dist[0].Minutes != 75 || dist[0].Questions != 22 {
		t.Fatalf("unexpected first bucket: %+v", dist[0])
	}
	if dist[1].Lesson != "Türkçe" || dist[1].Minutes != 60 {
		t.Fatalf("unexpected second bucket: %+v", dist[1])
	}

	top := TopLessons(dist, 1)
	if len(top) != 1 || top[0].Lesson != "Fizik" {
		t.Fatalf("unexpected top lessons: %+v", top)
	}
	bottom := BottomLessons(dist, 5)
	if len(bottom) != 2 || bottom[0].Lesson != "Türkçe" {
		t.Fatalf("unexpected bottom lessons: %+v", bottom)
	}
	if dist[0].Lesson != "Fizik" {
		t.Fatalf("ranking must not reorder the input")
	}
}

func TestSummarize(t *testing.T) {
	entries := []model.StudyEntry{
		entry("2026-10-14", "Fizik", 30, 10),
		entry("2026-10-13", "Fizik", 60, 40),
	}
	s := Summarize(entries, []model.MockExam{{ID: "a"}})
	if s.Minutes != 90 || s.Questions != 50 || s.Exams != 1 || s.Lessons != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{0: "0 dk", 45: "45 dk", 60: "1 sa 0 dk", 125: "2 sa 5 dk"}
	for in, want := range cases {
		if got := FormatMinutes(in); got != want {
			t.Fatalf("FormatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestStreak(t *testing.T) {
	today := day(2026, time.October, 14)
	entries := []model.StudyEntry{
		entry("2026-10-14", "Fizik", 30, 10),
		entry("2026-10-13", "Fizik", 30, 10),
		entry("2026-10-12", "Fizik", 30, 10),
		entry("2026-10-10", "Fizik", 30, 10),
	}
	if got := Streak(entries, today); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
	if got := Streak(entries[1:], today); got != 2 {
		t.Fatalf("expected streak 2 without today, got %d", got)
	}
	if got := Streak(nil, today); got != 0 {
		t.Fatalf("expected streak 0, got %d", got)
	}
}

func TestDaysUntil(t *testing.T) {
	today := day(2026, time.October, 14)
	if got := DaysUntil(day(2026, time.October, 24), today); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := DaysUntil(day(2026, time.June, 20), today); got != 0 {
		t.Fatalf("expected past dates to clamp to 0, got %d", got)
	}
}

func TestSuggestPicksLeastStudiedLesson(t *testing.T) {
	today := day(2026, time.October, 14)
	entries := []model.StudyEntry{
		entry("2026-10-14", "Matematik", 120, 60),
		entry("2026-10-12", "Fizik", 30, 10),
		entry("2026-09-01", "Tarih", 5, 1),
	}

	s := Suggest(entries, today)
	if s.Lesson != "Fizik" {
		t.Fatalf("expected Fizik, got %s", s.Lesson)
	}
	if s.DaysAgo != 2 || s.Minutes != 60 || s.Questions != 46 {
		t.Fatalf("unexpected sizing: %+v", s)
	}
	if !strings.Contains(s.Text, "Fizik") || strings.Contains(s.Text, "{") {
		t.Fatalf("unexpected text: %q", s.Text)
	}
}

func TestSuggestWithoutEntries(t *testing.T) {
	s := Suggest(nil, day(2026, time.October, 14))
	if s.Text != noDataSuggestion || s.Lesson != "" {
		t.Fatalf("unexpected suggestion: %+v", s)
	}
}

func TestSuggestCapsSessionSize(t *testing.T) {
	today := day(2026, time.October, 14)
	entries := []model.StudyEntry{entry("2026-09-01", "Tarih", 30, 10)}
	s := Suggest(entries, today)
	if s.Lesson != fallbackLesson || s.DaysAgo != suggestWindowDays {
		t.Fatalf("unexpected fallback: %+v", s)
	}
	if s.Minutes != 110 || s.Questions != 86 {
		t.Fatalf("unexpected sizing: %+v", s)
	}
}

func TestRenderBarsScalesToMax(t *testing.T) {
	var buf bytes.Buffer
	bars := []Bar{{Label: "a", Value: 10, Text: "10"}, {Label: "bb", Value: 5, Text: "5"}}
	if err := RenderBars(&buf, "Title", bars, 40); err != nil {
		t.Fatalf("render bars: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if got := strings.Count(lines[1], "█"); got != 32 {
		t.Fatalf("expected full bar of 32, got %d", got)
	}
	if got := strings.Count(lines[2], "█"); got != 16 {
		t.Fatalf("expected half bar of 16, got %d", got)
	}
}

func TestRenderReportSections(t *testing.T) {
	snap := model.Snapshot{
		StudyEntries: []model.StudyEntry{entry("2026-10-14", "Türkçe", 60, 40)},
		MockExams: []model.MockExam{{Date: "2026-10-10", Summary: []model.ExamDetail{
			{Lesson: "Türkçe", Net: 30},
		}}},
		Goals: []model.Goal{{ID: "g", Title: "Günlük soru", Target: 100, Current: 40, Unit: "soru", Period: model.PeriodDaily}},
	}
	var buf bytes.Buffer
	err := RenderReport(&buf, snap, ReportOptions{Days: 7, Width: 60, Today: day(2026, time.October, 14)})
	if err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Last 7 days", "This week", "Lessons", "Net trend", "Goals", "%40", "Today"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "Total time: 1 sa 0 dk") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}
