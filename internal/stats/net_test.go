package stats

import (
	"testing"

	"github.com/verte-zerg/yks/internal/model"
)

func TestNetScore(t *testing.T) {
	if got := NetScore(30, 8); got != 28 {
		t.Fatalf("expected 28, got %v", got)
	}
	if got := NetScore(5, 40); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := NetScore(0, 0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestDetailNetClampsToQuestionCount(t *testing.T) {
	if got := DetailNet("Fizik", 10, 0); got != 7 {
		t.Fatalf("expected clamp to 7, got %v", got)
	}
	d := NewExamDetail("Türkçe", 32, 4, 4)
	if d.Net != 31 {
		t.Fatalf("expected net 31, got %v", d.Net)
	}
}

func TestNetTrendReversesAndSplitsSections(t *testing.T) {
	exams := []model.MockExam{
		{Date: "2026-10-10", Summary: []model.ExamDetail{
			{Lesson: "Türkçe", Net: 30},
			{Lesson: "AYT Matematik", Net: 25.5},
			{Lesson: "YDT İngilizce", Net: 50},
		}},
		{Date: "2026-10-03", Summary: []model.ExamDetail{
			{Lesson: "Türkçe", Net: 28},
			{Lesson: "Matematik", Net: 20},
		}},
	}

	trend := NetTrend(exams)
	if len(trend) != 2 {
		t.Fatalf("expected 2 points, got %d", len(trend))
	}
	if trend[0].Date != "2026-10-03" || trend[0].TYT != 48 || trend[0].AYT != 0 {
		t.Fatalf("unexpected first point: %+v", trend[0])
	}
	if trend[1].Date != "2026-10-10" || trend[1].TYT != 30 || trend[1].AYT != 25.5 {
		t.Fatalf("unexpected second point: %+v", trend[1])
	}

	tyt, ayt, ok := NetDelta(trend)
	if !ok || tyt != -18 || ayt != 25.5 {
		t.Fatalf("unexpected delta: %v %v %v", tyt, ayt, ok)
	}
	if _, _, ok := NetDelta(trend[:1]); ok {
		t.Fatalf("expected no delta for a single point")
	}
}

func TestNetTrendEmpty(t *testing.T) {
	if got := NetTrend(nil); len(got) != 0 {
		t.Fatalf("expected empty trend, got %d", len(got))
	}
}
