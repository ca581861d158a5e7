package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTabAtXMatchesRenderedWidths(t *testing.T) {
	for active := range Tabs {
		pos := 0
		for i := range Tabs {
			w := TabWidth(i, active)
			if got := TabAtX(pos+w/2, active); got != i {
				t.Fatalf("active=%d x=%d -> tab %d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := TabAtX(pos+50, active); got != -1 {
			t.Fatalf("past last tab -> %d, want -1", got)
		}
	}
}

func TestRenderTabBarWidth(t *testing.T) {
	total := 0
	for i := range Tabs {
		total += TabWidth(i, 0)
	}
	total += len(Tabs) - 1

	bar := RenderTabBar(0, 80)
	if w := lipgloss.Width(bar); w != 80 {
		t.Fatalf("tab bar width = %d, want 80", w)
	}
	if total > 80 {
		t.Fatalf("tabs need %d columns", total)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('3'); got != 2 {
		t.Fatalf("TabIdxByKey('3') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("TabIdxByKey('z') = %d, want -1", got)
	}
}
