package services

import "testing"

func TestExtractVolume(t *testing.T) {
	tests := []struct {
		text   string
		want   float64
		wantOK bool
	}{
		{"Monster Energy, 16 Fl Oz (Pack of 24)", 384, true},
		{"24-Pack 16 oz", 384, true},
		{"single 16oz can", 0, false},
		{"Monster Energy Drink, Pack of 15, 16 fl oz cans", 240, true},
		{"Monster Energy Zero Ultra 15.5 Fl Oz (Pack of 12)", 186, true},
		{"Monster Energy 24 Count 16 FL OZ", 384, true},
		{"Monster Java Mean Bean, 15 fl oz, 12 pack", 180, true},
		{"Monster Rehab 24 x 15.5 oz", 372, true},
		{"Monster Energy Original 16 Ounce (Pack of 24)", 384, true},
		{"Monster Energy Ultra, 16 oz, 24 cans", 384, true},
		{"Case of 1,000 count, 16 fl oz", 16000, true},
		{"Monster Energy Drink, Green, Original, 16 Fl Oz, 24 Count (Pack of 1)", 384, true},
		{"Monster Energy Ultra Zero, 16 oz, 12 Ct (Pack of 1)", 192, true},
		{"Monster Energy Drink 12 Fl Oz", 0, false},
		{"", 0, false},
		{"pack of 0, 16 fl oz", 0, false},
	}

	for _, tt := range tests {
		got, ok := ExtractVolume(tt.text)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ExtractVolume(%q) = %v, %v; want %v, %v", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestExtractVolumeFirstPatternWins(t *testing.T) {
	// Both "pack of 24 ... 16 fl oz" and the looser "12 oz" phrasing are
	// present; the fluid-ounce pattern is earlier in the cascade.
	got, ok := ExtractVolume("Pack of 24, 16 fl oz cans, compare to 12 oz 6 pack")
	if !ok || got != 384 {
		t.Errorf("got %v, %v; want 384, true", got, ok)
	}
}

func TestExtractVolumeIsCommutative(t *testing.T) {
	a, okA := ExtractVolume("16 fl oz (pack of 24)")
	b, okB := ExtractVolume("pack of 16, 24 fl oz")
	if !okA || !okB || a != b {
		t.Errorf("expected equal totals, got %v (%v) and %v (%v)", a, okA, b, okB)
	}
}
