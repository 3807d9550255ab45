package stats

import (
	"testing"
	"time"

	"github.com/verte-zerg/yks/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.Local)
}

func entry(date, lessonName string, minutes, questions int) model.StudyEntry {
	return model.StudyEntry{
		Date:          date,
		Lesson:        lessonName,
		Minutes:       minutes,
		QuestionCount: questions,
		StudyType:     model.StudyQuestions,
		TimeSlot:      model.SlotEvening,
	}
}

func TestDailySeriesZeroFillsWindow(t *testing.T) {
	today := day(2026, time.October, 14)
	entries := []model.StudyEntry{
		entry("2026-10-14", "Türkçe", 60, 40),
		entry("2026-10-14", "Fizik", 30, 10),
		entry("2026-10-12", "Matematik", 90, 55),
		entry("2026-09-01", "Tarih", 45, 20),
	}

	series := DailySeries(entries, 7, today)
	if len(series) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(series))
	}
	if series[0].Date != "2026-10-08" || series[6].Date != "2026-10-14" {
		t.Fatalf("unexpected window %s..%s", series[0].Date, series[6].Date)
	}
	if series[6].Minutes != 90 || series[6].Questions != 50 {
		t.Fatalf("unexpected today bucket: %+v", series[6])
	}
	if series[4].Minutes != 90 || series[5].Minutes != 0 {
		t.Fatalf("unexpected buckets: %+v %+v", series[4], series[5])
	}

	total := 0
	for _, d := range series {
		total += d.Minutes
	}
	if total != 180 {
		t.Fatalf("expected window total 180, got %d", total)
	}
}

func TestDailySeriesEmptyWindow(t *testing.T) {
	if got := DailySeries(nil, 0, day(2026, time.October, 14)); len(got) != 0 {
		t.Fatalf("expected empty series, got %d buckets", len(got))
	}
}

func TestWeeklyTotalsStartsOnMonday(t *testing.T) {
	today := day(2026, time.October, 14)
	entries := []model.StudyEntry{
		entry("2026-10-12", "Türkçe", 50, 30),
		entry("2026-10-18", "Kimya", 20, 15),
		entry("2026-10-11", "Kimya", 99, 99),
	}

	week := WeeklyTotals(entries, today)
	if len(week) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(week))
	}
	want := []string{"Pzt", "Sal", "Çar", "Per", "Cum", "Cmt", "Paz"}
	for i, label := range want {
		if week[i].Label != label {
			t.Fatalf("bucket %d: expected %s, got %s", i, label, week[i].Label)
		}
	}
	if week[0].Date != "2026-10-12" || week[0].Minutes != 50 {
		t.Fatalf("unexpected monday bucket: %+v", week[0])
	}
	if week[6].Date != "2026-10-18" || week[6].Questions != 15 {
		t.Fatalf("unexpected sunday bucket: %+v", week[6])
	}
}

func TestStartOfWeekOnSunday(t *testing.T) {
	got := StartOfWeek(day(2026, time.October, 18))
	if model.DateKey(got) != "2026-10-12" {
		t.Fatalf("expected 2026-10-12, got %s", model.DateKey(got))
	}
}

func TestEfficiency(t *testing.T) {
	if got := Efficiency(10, 0); got != 0 {
		t.Fatalf("expected 0 for zero minutes, got %v", got)
	}
	if got := Efficiency(30, 60); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}

	points := EfficiencyData([]model.StudyEntry{entry("2026-10-14", "Türkçe", 40, 20)}, day(2026, time.October, 14))
	if len(points) != DefaultDayCount {
		t.Fatalf("expected %d points, got %d", DefaultDayCount, len(points))
	}
	if points[len(points)-1].Efficiency != 0.5 || points[0].Efficiency != 0 {
		t.Fatalf("unexpected efficiency points: %+v", points)
	}
}
