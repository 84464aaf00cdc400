package donut_test

import (
	"testing"

	"github.com/midbel/donut"
	"github.com/midbel/donut/scene"
)

func TestLabelRenderer(t *testing.T) {
	var (
		s      = scene.New()
		root   = s.Canvas(100, 100)
		labels = donut.NewLabelRenderer(root)
	)
	labels.Redraw("Total", donut.Number(327), "", "")
	labels.Redraw("Low", donut.Number(132), "$", " tickets")

	groups := s.Root().FindAll("label-group")
	if len(groups) != 1 {
		t.Fatalf("label groups: want 1, got %d", len(groups))
	}
	texts := groups[0].Texts()
	if len(texts) != 2 || texts[0] != "Low" || texts[1] != "$132 tickets" {
		t.Errorf("unexpected label %v", texts)
	}
	if c := groups[0].Find("label-value"); c == nil || c.Dy != 15 {
		t.Errorf("value line should be drawn 15 pixels below the center")
	}

	labels.Clear()
	if len(s.Root().FindAll("label-group")) != 0 {
		t.Errorf("label should be removed")
	}
}

func TestLabelRenderer_Blank(t *testing.T) {
	var (
		s      = scene.New()
		labels = donut.NewLabelRenderer(s.Canvas(100, 100))
	)
	labels.Redraw("Total", donut.Blank, "", "%")
	texts := s.Root().Texts()
	if len(texts) != 2 || texts[1] != "0%" {
		t.Errorf("blank value should read as 0, got %v", texts)
	}
}
