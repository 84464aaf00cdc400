package donut_test

import (
	"testing"

	"github.com/midbel/donut"
)

func TestBrighter(t *testing.T) {
	tests := []struct {
		Color string
		Want  string
	}{
		{Color: "#0071a9", Want: "#00a1f1"},
		{Color: "#000000", Want: "#000000"},
		{Color: "#ffffff", Want: "#ffffff"},
		{Color: "steelblue", Want: "steelblue"},
		{Color: "rgba(0,0,0,.1)", Want: "rgba(0,0,0,.1)"},
	}
	for _, tt := range tests {
		if got := donut.Brighter(tt.Color); got != tt.Want {
			t.Errorf("brighter(%s): want %s, got %s", tt.Color, tt.Want, got)
		}
	}
}

func TestPalette(t *testing.T) {
	if len(donut.Category10) != 10 || len(donut.Tableau10) != 10 {
		t.Fatalf("palettes should have 10 colors")
	}
	if c := donut.Category10.Color(0); c != "#1f77b4" {
		t.Errorf("first color: want #1f77b4, got %s", c)
	}
	if donut.Category10.Color(12) != donut.Category10.Color(2) {
		t.Errorf("palette should cycle")
	}
	if c := donut.Palette(nil).Color(1); c != "" {
		t.Errorf("empty palette should give no color, got %s", c)
	}
}
