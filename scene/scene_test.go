package scene

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/midbel/donut"
)

func TestNode_Remove(t *testing.T) {
	var (
		s    = New()
		root = s.Canvas(100, 100)
		a    = root.Group("a")
		b    = root.Group("b")
	)
	a.Text("hello", "", 0)
	a.Remove()

	children := s.Root().Children()
	if len(children) != 1 || children[0] != b.(*Node) {
		t.Fatalf("unexpected children after removal: %d", len(children))
	}
	if s.Root().Find("a") != nil {
		t.Errorf("removed group should not be found")
	}
	a.Remove()
}

func TestNode_Dispatch(t *testing.T) {
	var (
		s     = New()
		g     = s.Canvas(100, 100).Group("slice")
		count int
	)
	g.On(donut.PointerEnter, func() { count++ })
	n := g.(*Node)
	if !n.Dispatch(donut.PointerEnter) || count != 1 {
		t.Fatalf("listener not called")
	}
	if n.Dispatch(donut.PointerLeave) {
		t.Errorf("no listener registered for leave")
	}
	g.Off(donut.PointerEnter)
	if n.Listens(donut.PointerEnter) {
		t.Errorf("listener should be removed")
	}
}

func TestScene_Move(t *testing.T) {
	var (
		s      = New()
		view   = s.Canvas(200, 200).Group("view")
		events []string
	)
	view.Translate(100, 100)

	quarter := donut.Sector{Start: 0, End: math.Pi / 2, Inner: 50, Outer: 80}
	g := view.Group("slice")
	g.Path(quarter, "red")
	g.On(donut.PointerEnter, func() { events = append(events, "enter") })
	g.On(donut.PointerLeave, func() { events = append(events, "leave") })

	s.Move(165, 100)
	s.Move(166, 100)
	s.Move(100, 165)
	s.Move(165, 100)
	s.Leave()

	want := []string{"enter", "leave", "enter", "leave"}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Errorf("events: want %v, got %v", want, events)
	}
}

func TestScene_Canvas(t *testing.T) {
	s := New()
	first := s.Canvas(10, 10)
	first.Group("a")
	s.Canvas(20, 20)
	if len(s.Root().Children()) != 0 {
		t.Errorf("new canvas should be empty")
	}
	if s.Root().Width != 20 {
		t.Errorf("width: want 20, got %f", s.Root().Width)
	}
}

func TestScene_WriteSVG(t *testing.T) {
	s := New()
	var buf bytes.Buffer
	if err := s.WriteSVG(&buf); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}

	root := s.Canvas(200, 200)
	root.SetID("chart")
	view := root.Group("donut-chart")
	view.Translate(100, 100)
	view.Circle(80, "rgba(0,0,0,.1)")
	view.Group("slice").Path(donut.Sector{Start: 0, End: math.Pi, Inner: 50, Outer: 80}, "#0071a9")
	view.Group("slice").Path(donut.Sector{Start: 0, End: 2 * math.Pi, Inner: 50, Outer: 80}, "#00b2ff")
	view.Group("label-group").Text("Total", "label", -2)

	if err := s.WriteSVG(&buf); err != nil {
		t.Fatal(err)
	}
	str := buf.String()
	for _, want := range []string{"<svg", "chart", "donut-chart", "<path", "<circle", "Total"} {
		if !strings.Contains(str, want) {
			t.Errorf("%q not found in document", want)
		}
	}
}
