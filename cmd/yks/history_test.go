package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/yks/internal/model"
)

var historyToday = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.Local)

func historyEntries() []model.StudyEntry {
	return []model.StudyEntry{
		{ID: "a", Date: "2026-10-14", Lesson: "Matematik", Minutes: 90, QuestionCount: 40, StudyType: model.StudyQuestions, SubTopic: "Fonksiyonlar"},
		{ID: "b", Date: "2026-10-10", Lesson: "Din Kültürü", Minutes: 30, QuestionCount: 10, StudyType: model.StudyTopic, Notes: "tekrar lazım"},
		{ID: "c", Date: "2026-09-20", Lesson: "Matematik", Minutes: 60, QuestionCount: 25, StudyType: model.StudyTopic},
		{ID: "d", Date: "2026-08-01", Lesson: "Fizik", Minutes: 45, QuestionCount: 5, StudyType: model.StudyReview},
	}
}

func entryIDs(entries []model.StudyEntry) string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return strings.Join(ids, ",")
}

func TestFilterEntries(t *testing.T) {
	tests := []struct {
		name   string
		filter historyFilter
		want   string
	}{
		{"all", historyFilter{dateRange: rangeAll}, "a,b,c,d"},
		{"today", historyFilter{dateRange: rangeToday}, "a"},
		{"week", historyFilter{dateRange: rangeWeek}, "a,b"},
		{"month", historyFilter{dateRange: rangeMonth}, "a,b,c"},
		{"lesson synonym", historyFilter{dateRange: rangeAll, lesson: "DKAB"}, "b"},
		{"study type", historyFilter{dateRange: rangeAll, studyType: model.StudyTopic}, "b,c"},
		{"search notes", historyFilter{dateRange: rangeAll, search: "TEKRAR"}, "b"},
		{"search sub topic", historyFilter{dateRange: rangeMonth, search: "fonk"}, "a"},
		{"combined", historyFilter{dateRange: rangeMonth, lesson: "Matematik", studyType: model.StudyTopic}, "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.today = historyToday
			if got := entryIDs(filterEntries(historyEntries(), tt.filter)); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSortEntries(t *testing.T) {
	tests := []struct {
		field string
		asc   bool
		want  string
	}{
		{"date", false, "a,b,c,d"},
		{"date", true, "d,c,b,a"},
		{"minutes", false, "a,c,d,b"},
		{"questions", true, "d,b,c,a"},
		{"lesson", true, "b,d,a,c"},
	}
	for _, tt := range tests {
		entries := historyEntries()
		if err := sortEntries(entries, tt.field, tt.asc); err != nil {
			t.Fatalf("sort %s: %v", tt.field, err)
		}
		if got := entryIDs(entries); got != tt.want {
			t.Fatalf("sort %s asc=%v: got %s, want %s", tt.field, tt.asc, got, tt.want)
		}
	}
	if err := sortEntries(historyEntries(), "net", false); err == nil {
		t.Fatalf("expected error for unknown sort field")
	}
}

func TestExamsFilterSortAndSummary(t *testing.T) {
	exams := []model.MockExam{
		{ID: "x", Title: "TYT Deneme 15", Date: "2026-10-13", ExamType: model.ExamTYT, Summary: []model.ExamDetail{{Lesson: "Türkçe", Net: 30}, {Lesson: "Matematik", Net: 25}}},
		{ID: "y", Title: "AYT Sayısal 8", Date: "2026-10-09", ExamType: model.ExamAYT, Summary: []model.ExamDetail{{Lesson: "AYT Matematik", Net: 33}}},
		{ID: "z", Title: "TYT Deneme 9", Date: "2026-07-01", ExamType: model.ExamTYT, Summary: []model.ExamDetail{{Lesson: "Türkçe", Net: 20}}},
	}
	got := filterExams(exams, historyFilter{dateRange: rangeMonth, today: historyToday, lesson: "Fizik"})
	if len(got) != 2 {
		t.Fatalf("expected lesson filter to ignore exams, got %d", len(got))
	}
	if err := sortExams(got, "net", true); err != nil {
		t.Fatalf("sort: %v", err)
	}
	if got[0].ID != "y" || got[1].ID != "x" {
		t.Fatalf("unexpected order %s, %s", got[0].ID, got[1].ID)
	}
	if avg := averageNet(got); avg != 44 {
		t.Fatalf("expected average net 44, got %v", avg)
	}
	if got := filterExams(exams, historyFilter{dateRange: rangeAll, search: "ayt"}); len(got) != 1 || got[0].ID != "y" {
		t.Fatalf("expected search on title and type, got %+v", got)
	}
	if averageNet(nil) != 0 {
		t.Fatalf("expected zero average without exams")
	}
}

func TestSummarizeEntries(t *testing.T) {
	sum := summarizeEntries(historyEntries())
	if sum.count != 4 || sum.minutes != 225 || sum.questions != 80 || sum.avgMinutes != 56 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if got := summarizeEntries(nil); got.avgMinutes != 0 {
		t.Fatalf("expected zero average, got %+v", got)
	}
}

func TestHistoryFilterValidate(t *testing.T) {
	if err := (historyFilter{dateRange: "year"}).validate(); err == nil {
		t.Fatalf("expected range error")
	}
	if err := (historyFilter{dateRange: rangeAll, studyType: "uyku"}).validate(); err == nil {
		t.Fatalf("expected study type error")
	}
	if err := (historyFilter{dateRange: rangeWeek, studyType: model.StudyReview}).validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWriteHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := writeHistory(&buf, historyEntries()[:2], nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Çalışma kayıtları", "Din Kültürü", "2 kayıt", "ortalama 60 dk", "0 deneme, ortalama net 0.0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
