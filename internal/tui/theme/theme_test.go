package theme

import "testing"

func TestByNameFallsBackToDefault(t *testing.T) {
	if got := ByName("no-such-theme"); got.Name != FlexokiDark.Name {
		t.Fatalf("ByName(unknown) = %q, want %q", got.Name, FlexokiDark.Name)
	}
	if got := ByName("tokyo-night"); got.Name != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %q", got.Name)
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Fatalf("Active = %q, want terminal", Active.Name)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("len(Names()) = %d, want %d", len(names), len(All))
	}
	if names[0] != "flexoki-dark" {
		t.Fatalf("first theme = %q", names[0])
	}
}

func TestPalettesSetEveryColor(t *testing.T) {
	for _, th := range All {
		colors := map[string]string{
			"Background":   string(th.Background),
			"Surface":      string(th.Surface),
			"SurfaceHover": string(th.SurfaceHover),
			"Border":       string(th.Border),
			"BorderAccent": string(th.BorderAccent),
			"TextDim":      string(th.TextDim),
			"TextMuted":    string(th.TextMuted),
			"TextPrimary":  string(th.TextPrimary),
			"Accent":       string(th.Accent),
			"AccentBright": string(th.AccentBright),
			"Green":        string(th.Green),
			"Orange":       string(th.Orange),
			"Red":          string(th.Red),
			"Yellow":       string(th.Yellow),
			"Cyan":         string(th.Cyan),
		}
		for role, c := range colors {
			if c == "" {
				t.Errorf("%s: %s is unset", th.Name, role)
			}
		}
	}
}
