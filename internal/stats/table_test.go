package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Data", "Peso (kg)", "Variação"}
	rows := [][]string{
		{"01/01/2024", "85.0", "-"},
		{"08/01/2024", "84.2", "-0.8"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Data       Peso (kg) Variação" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "01/01/2024      85.0        -" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "08/01/2024      84.2     -0.8" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
