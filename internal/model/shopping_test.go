package model

import "testing"

func TestIsPaletteColor(t *testing.T) {
	if len(StorePalette) != 10 {
		t.Fatalf("palette size = %d, want 10", len(StorePalette))
	}
	for _, c := range StorePalette {
		if !IsPaletteColor(c) {
			t.Errorf("IsPaletteColor(%q) = false", c)
		}
	}
	for _, c := range []string{"", DefaultStoreColor, "#B5EAD7", "red"} {
		if IsPaletteColor(c) {
			t.Errorf("IsPaletteColor(%q) = true, want false", c)
		}
	}
}
