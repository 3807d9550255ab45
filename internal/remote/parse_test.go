package remote

import (
	"errors"
	"testing"

	"github.com/verte-zerg/yks/internal/model"
)

func TestParseStudyEntryDefaults(t *testing.T) {
	row := StudyEntryRow{
		ID:     "e1",
		Date:   strPtr("2026-10-14T08:30:00Z"),
		Lesson: strPtr("dkab"),
	}
	entry, err := ParseStudyEntry(row)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if entry.Date != "2026-10-14" {
		t.Fatalf("expected truncated date, got %q", entry.Date)
	}
	if entry.Lesson != "Din Kültürü" {
		t.Fatalf("expected canonical lesson, got %q", entry.Lesson)
	}
	if entry.StudyType != model.DefaultStudyType || entry.TimeSlot != model.SlotMorning {
		t.Fatalf("unexpected defaults: %+v", entry)
	}
	if entry.Minutes != 0 || entry.Net != nil {
		t.Fatalf("unexpected optional fields: %+v", entry)
	}
}

func TestParseStudyEntryRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name  string
		row   StudyEntryRow
		field string
	}{
		{"no date", StudyEntryRow{ID: "a", Lesson: strPtr("Türkçe")}, "date"},
		{"bad date", StudyEntryRow{ID: "b", Date: strPtr("yesterday"), Lesson: strPtr("Türkçe")}, "date"},
		{"no lesson", StudyEntryRow{ID: "c", Date: strPtr("2026-10-14"), Lesson: strPtr("  ")}, "lesson"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseStudyEntry(tc.row)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if perr.Field != tc.field || perr.Table != "study_entries" || perr.ID != tc.row.ID {
				t.Fatalf("unexpected parse error: %+v", perr)
			}
		})
	}
}

func TestParseStudyEntryNet(t *testing.T) {
	tyt := 81.25
	row := StudyEntryRow{ID: "e", Date: strPtr("2026-10-14"), Lesson: strPtr("Matematik"), TYTNet: &tyt}
	entry, err := ParseStudyEntry(row)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if entry.Net == nil || entry.Net.TYT == nil || *entry.Net.TYT != 81.25 || entry.Net.AYT != nil {
		t.Fatalf("unexpected net: %+v", entry.Net)
	}
	tyt = 0
	if *entry.Net.TYT != 81.25 {
		t.Fatalf("parsed net must not alias the row")
	}
}

func TestParseMockExamDefaults(t *testing.T) {
	row := MockExamRow{
		ID:   "m1",
		Date: strPtr("2026-10-10"),
		Details: []MockExamDetailRow{
			{Lesson: strPtr("Türkçe"), Correct: intPtr(30), Wrong: intPtr(8), Net: floatPtr(28)},
			{Lesson: strPtr("ayt tarih"), Correct: intPtr(8), Empty: intPtr(2)},
		},
	}
	exam, err := ParseMockExam(row)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if exam.Title != defaultExamTitle || exam.ExamType != model.ExamTYT || exam.Difficulty != model.DifficultyMedium {
		t.Fatalf("unexpected defaults: %+v", exam)
	}
	if len(exam.Summary) != 2 || exam.Summary[0].Net != 28 || exam.Summary[0].Empty != 0 {
		t.Fatalf("unexpected summary: %+v", exam.Summary)
	}
	if exam.Summary[1].Lesson != "AYT Tarih" || exam.Summary[1].Correct != 8 {
		t.Fatalf("expected canonical detail lesson, got %q", exam.Summary[1].Lesson)
	}
}

func TestParseMockExamRejectsDetailWithoutLesson(t *testing.T) {
	row := MockExamRow{ID: "m", Date: strPtr("2026-10-10"), Details: []MockExamDetailRow{{Correct: intPtr(3)}}}
	_, err := ParseMockExam(row)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Table != "mock_exam_details" {
		t.Fatalf("expected detail parse error, got %v", err)
	}
}

func TestParseWidgetDefaults(t *testing.T) {
	w, err := ParseWidget(WidgetRow{ID: "w", Component: strPtr("timeSeries"), Size: strPtr("xl")})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if w.Size != model.SizeMedium || w.Visible || w.Order != 0 {
		t.Fatalf("unexpected widget: %+v", w)
	}
	if _, err := ParseWidget(WidgetRow{ID: "x"}); err == nil {
		t.Fatalf("expected error for widget without component")
	}
}

func TestParseTopicAndNotification(t *testing.T) {
	topic, err := ParseTopic(TopicRow{ID: "t", Lesson: strPtr("Kimya")})
	if err != nil {
		t.Fatalf("parse topic: %v", err)
	}
	if topic.MissingTopics == nil || len(topic.MissingTopics) != 0 {
		t.Fatalf("expected empty missing topics, got %#v", topic.MissingTopics)
	}

	n, err := ParseNotification(NotificationRow{ID: "n"})
	if err != nil {
		t.Fatalf("parse notification: %v", err)
	}
	if n.Type != model.NotifyInfo || n.Read || !n.CreatedAt.IsZero() {
		t.Fatalf("unexpected notification: %+v", n)
	}

	g, err := ParseGoal(GoalRow{ID: "g"})
	if err != nil {
		t.Fatalf("parse goal: %v", err)
	}
	if g.Period != model.PeriodDaily || g.Progress() != 0 {
		t.Fatalf("unexpected goal: %+v", g)
	}
}

func TestParseRowsCollectsErrors(t *testing.T) {
	rows := []StudyEntryRow{
		{ID: "ok", Date: strPtr("2026-10-14"), Lesson: strPtr("Türkçe")},
		{ID: "bad", Lesson: strPtr("Türkçe")},
	}
	entries, err := parseRows(rows, ParseStudyEntry)
	if len(entries) != 1 || entries[0].ID != "ok" {
		t.Fatalf("expected the good row, got %+v", entries)
	}
	var partial *PartialError
	if !errors.As(err, &partial) || len(partial.Errs) != 1 {
		t.Fatalf("expected partial error, got %v", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.ID != "bad" {
		t.Fatalf("expected wrapped parse error, got %v", err)
	}
}
