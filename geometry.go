package donut

import (
	"math"
)

const (
	fullTurn = 2 * math.Pi
	halfTurn = math.Pi

	// HoverOffset is added to both radii of a focused segment.
	HoverOffset = 5.0

	epsilon = 1e-9
)

// Slice is the angular span of one segment. Angles are in radians, measured
// clockwise from 12 o'clock.
type Slice struct {
	Index int
	Start float64
	End   float64
	Segment
}

func (s Slice) Span() float64 {
	return s.End - s.Start
}

// Layout converts the values of data into contiguous angular spans starting
// at angle 0, in the order given. The last non empty slice always ends at
// exactly 2π. Without any positive value, every slice has a zero span.
func Layout(data []Segment) []Slice {
	var total float64
	for _, s := range data {
		total += s.weight()
	}
	var (
		list = make([]Slice, 0, len(data))
		sum  float64
		prev float64
	)
	for i, s := range data {
		sum += s.weight()
		end := prev
		switch {
		case total == 0:
		case sum >= total:
			end = fullTurn
		default:
			end = fullTurn * (sum / total)
		}
		list = append(list, Slice{
			Index:   i,
			Start:   prev,
			End:     end,
			Segment: s,
		})
		prev = end
	}
	return list
}

// Arc is a pair of radii an annular sector is drawn with.
type Arc struct {
	Inner float64
	Outer float64
}

// Expand returns the arc with both radii increased by n.
func (a Arc) Expand(n float64) Arc {
	return Arc{
		Inner: a.Inner + n,
		Outer: a.Outer + n,
	}
}

func (a Arc) Sector(s Slice) Sector {
	return Sector{
		Start: s.Start,
		End:   s.End,
		Inner: a.Inner,
		Outer: a.Outer,
	}
}

// Sector describes an annular sector: two concentric radii and two angular
// bounds.
type Sector struct {
	Start float64
	End   float64
	Inner float64
	Outer float64
}

func (s Sector) Span() float64 {
	return s.End - s.Start
}

// Empty reports whether the sector has no visible extent.
func (s Sector) Empty() bool {
	return s.Span() <= epsilon || s.Outer <= 0
}

// Full reports whether the sector covers the whole turn.
func (s Sector) Full() bool {
	return s.Span() >= fullTurn-epsilon
}

// Large reports whether the sector spans more than half a turn. It is the
// large-arc flag of an SVG elliptical arc.
func (s Sector) Large() bool {
	return s.Span() > halfTurn
}

// Contains reports whether the point x, y (relative to the center of the
// chart) lies inside the sector.
func (s Sector) Contains(x, y float64) bool {
	if s.Empty() {
		return false
	}
	r := math.Hypot(x, y)
	if r < s.Inner || r > s.Outer {
		return false
	}
	if s.Full() {
		return true
	}
	a := math.Atan2(x, -y)
	if a < 0 {
		a += fullTurn
	}
	return a >= s.Start && a < s.End
}

// PointAt gives the coordinates of the point at angle and radius from the
// center.
func PointAt(angle, radius float64) (float64, float64) {
	return radius * math.Sin(angle), -radius * math.Cos(angle)
}

// Geometry produces the resting and hover sectors of a dataset.
type Geometry struct {
	Rest  Arc
	Hover Arc
}

func NewGeometry(inner, outer float64) Geometry {
	rest := Arc{
		Inner: inner,
		Outer: outer,
	}
	return Geometry{
		Rest:  rest,
		Hover: rest.Expand(HoverOffset),
	}
}

// Shape bundles the slice of a segment with its two sectors.
type Shape struct {
	Slice
	Rest  Sector
	Hover Sector
}

// Build lays data out and returns one shape per segment, in order.
func (g Geometry) Build(data []Segment) []Shape {
	var list []Shape
	for _, s := range Layout(data) {
		list = append(list, Shape{
			Slice: s,
			Rest:  g.Rest.Sector(s),
			Hover: g.Hover.Sector(s),
		})
	}
	return list
}
