package render

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Site", "Count", "Share"}
	rows := [][]string{
		{"KSC LC-39A", "10", "41.67%"},
		{"VAFB SLC-4E", "4", "16.67%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Site        Count  Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "KSC LC-39A     10 41.67%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "VAFB SLC-4E     4 16.67%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Site", "N"}, [][]string{{"發射場", "1"}}, map[int]bool{1: true})
	if lines[0] != "Site   N" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "發射場 1" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestFormatTableShortRows(t *testing.T) {
	lines := formatTable([]string{"Label", "Count"}, [][]string{{"Success"}, {"Fail", "3"}}, map[int]bool{1: true})
	want := []string{"Label   Count", "Success      ", "Fail        3"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %q", lines)
	}
}
