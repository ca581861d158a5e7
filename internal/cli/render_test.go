package cli

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Entries",
		Headers: []string{"Date", "Cost"},
		Rows: [][]string{
			{"Jan 08, 2024", "₹400.00"},
			{"---"},
			{"Total", "₹12,346"},
		},
	})
	for _, want := range []string{"Entries", "Jan 08, 2024", "₹400.00", "₹12,346", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{0, 30, 60})
	if utf8.RuneCountInString(got) != 3 {
		t.Fatalf("sparkline %q has %d runes, want 3", got, utf8.RuneCountInString(got))
	}
	runes := []rune(got)
	if runes[0] != '▁' || runes[2] != '█' {
		t.Fatalf("sparkline = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Fatal("empty sparkline should be empty")
	}
}

func TestRenderGauge(t *testing.T) {
	got := RenderGauge(0.5, 10)
	if !strings.Contains(got, "50.0%") {
		t.Fatalf("gauge = %q, want 50.0%%", got)
	}
	if !strings.Contains(RenderGauge(3, 10), "100.0%") {
		t.Fatal("gauge did not clamp at 100%")
	}
}
