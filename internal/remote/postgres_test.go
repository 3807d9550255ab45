package remote

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/yks/internal/model"
)

func openTestPostgres(t *testing.T) *Postgres {
	t.Helper()
	dsn := os.Getenv("YKS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("YKS_TEST_DATABASE_URL not set")
	}
	p, err := OpenPostgres(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := p.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return p
}

func TestPostgresMockExamRoundTrip(t *testing.T) {
	p := openTestPostgres(t)
	ctx := context.Background()
	user := uuid.NewString()
	exam := model.MockExam{
		Title: "AYT Sayısal 8", Date: "2026-10-09", ExamType: model.ExamAYT, Duration: 180, Difficulty: model.DifficultyMedium,
		Summary: []model.ExamDetail{{Lesson: "AYT Matematik", Correct: 36, Wrong: 8, Net: 34}, {Lesson: "AYT Fizik", Correct: 12, Net: 12}},
	}
	id, err := p.AddMockExam(ctx, user, exam)
	if err != nil {
		t.Fatalf("add exam: %v", err)
	}
	exams, err := p.ListMockExams(ctx, user, MockExamLimit)
	if err != nil {
		t.Fatalf("list exams: %v", err)
	}
	if len(exams) != 1 || exams[0].ID != id || len(exams[0].Summary) != 2 || exams[0].Summary[0].Lesson != "AYT Matematik" {
		t.Fatalf("unexpected exams: %+v", exams)
	}
}

func TestPostgresSeedAndWidgets(t *testing.T) {
	p := openTestPostgres(t)
	ctx := context.Background()
	user := uuid.NewString()
	defaults := model.Defaults{
		Goals:   []model.Goal{{ID: uuid.NewString(), Title: "Günlük 5 saat", Target: 300, Unit: "dk", Period: model.PeriodDaily}},
		Widgets: []model.WidgetConfig{{ID: "time-series", Component: "timeSeries", Visible: true, Size: model.SizeMedium}},
	}
	seeded, err := p.SeedDefaults(ctx, user, defaults)
	if err != nil || !seeded {
		t.Fatalf("seed: seeded=%v err=%v", seeded, err)
	}
	if seeded, err := p.SeedDefaults(ctx, user, defaults); err != nil || seeded {
		t.Fatalf("second seed: seeded=%v err=%v", seeded, err)
	}
	widgets := defaults.Widgets
	widgets[0].Size = model.SizeLarge
	if err := p.SaveWidgets(ctx, user, widgets); err != nil {
		t.Fatalf("save widgets: %v", err)
	}
	got, err := p.ListWidgets(ctx, user)
	if err != nil || len(got) != 1 || got[0].Size != model.SizeLarge {
		t.Fatalf("unexpected widgets: %+v err=%v", got, err)
	}
}
