package charts

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/yks/internal/model"
	"github.com/verte-zerg/yks/internal/seed"
)

func TestRenderIncludesEverySeries(t *testing.T) {
	today := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.Local)
	var buf bytes.Buffer
	if err := Render(&buf, seed.Sample(today), today, 7); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{PageTitle, "Dakika", "Soru", "TYT", "AYT", "2026-10-14", "2026-10-08"} {
		if !strings.Contains(out, want) {
			t.Fatalf("chart page missing %q", want)
		}
	}
}

func TestRenderEmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, model.Snapshot{}, time.Now(), 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "<html") {
		t.Fatalf("expected an html page")
	}
}
