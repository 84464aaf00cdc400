package scene

import (
	"bufio"
	"io"
	"math"

	"github.com/midbel/donut"
	"github.com/midbel/svg"
)

// WriteSVG serializes the scene as a SVG document.
func (s *Scene) WriteSVG(w io.Writer) error {
	if s.root == nil {
		return ErrEmpty
	}
	el := svg.NewSVG(svg.WithDimension(s.root.Width, s.root.Height))
	el.OmitProlog = true

	grp := svg.NewGroup(svg.WithID(s.root.ID))
	grp.Class = append(grp.Class, "donut")
	for _, c := range s.root.children {
		if e := convert(c); e != nil {
			grp.Append(e)
		}
	}
	el.Append(grp.AsElement())

	bw := bufio.NewWriter(w)
	el.Render(bw)
	return bw.Flush()
}

func convert(n *Node) svg.Element {
	switch n.Kind {
	case KindGroup:
		return convertGroup(n)
	case KindCircle:
		ci := svg.NewCircle(
			svg.WithRadius(n.Radius),
			svg.WithFill(svg.NewFill(n.Fill)),
		)
		return ci.AsElement()
	case KindPath:
		pat := svg.NewPath(svg.WithFill(svg.NewFill(n.Fill)))
		pat.Rendering = "geometricPrecision"
		appendSector(&pat, n.Sector)
		return pat.AsElement()
	case KindText:
		txt := svg.NewText(n.Content, svg.WithPosition(0, n.Dy), svg.WithAnchor("middle"))
		return txt.AsElement()
	default:
		return nil
	}
}

func convertGroup(n *Node) svg.Element {
	var g svg.Group
	if n.Class != "" {
		g.Class = append(g.Class, n.Class)
	}
	if n.X != 0 || n.Y != 0 {
		g.Transform = svg.Translate(n.X, n.Y)
	}
	for _, c := range n.children {
		if e := convert(c); e != nil {
			g.Append(e)
		}
	}
	return g.AsElement()
}

func appendSector(pat *svg.Path, sec donut.Sector) {
	if sec.Empty() {
		return
	}
	if sec.Full() {
		appendRing(pat, sec.Outer, true)
		if sec.Inner > 0 {
			appendRing(pat, sec.Inner, false)
		}
		pat.ClosePath()
		return
	}
	pat.AbsMoveTo(position(sec.Start, sec.Outer))
	pat.AbsArcTo(position(sec.End, sec.Outer), sec.Outer, sec.Outer, 0, sec.Large(), true)
	if sec.Inner > 0 {
		pat.AbsLineTo(position(sec.End, sec.Inner))
		pat.AbsArcTo(position(sec.Start, sec.Inner), sec.Inner, sec.Inner, 0, sec.Large(), false)
	} else {
		pat.AbsLineTo(svg.NewPos(0, 0))
	}
	pat.ClosePath()
}

func appendRing(pat *svg.Path, radius float64, sweep bool) {
	var (
		top    = svg.NewPos(0, -radius)
		bottom = svg.NewPos(0, radius)
	)
	pat.AbsMoveTo(top)
	pat.AbsArcTo(bottom, radius, radius, 0, true, sweep)
	pat.AbsArcTo(top, radius, radius, 0, true, sweep)
}

// position rounds coordinates to the micro pixel so that the trigonometric
// noise around the axes does not reach the document.
func position(angle, radius float64) svg.Pos {
	x, y := donut.PointAt(angle, radius)
	return svg.NewPos(round(x), round(y))
}

func round(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}
