package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Ders", "Dakika", "Soru"}
	rows := [][]string{
		{"Türkçe", "120", "50"},
		{"AYT Fizik", "90", "25"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Ders      Dakika Soru" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Türkçe       120   50" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "AYT Fizik     90   25" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
