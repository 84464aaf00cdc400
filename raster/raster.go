// Package raster paints scenes into images.
package raster

import (
	"fmt"
	"image"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/midbel/donut"
	"github.com/midbel/donut/scene"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	DefaultFontSize = 12.0

	// step is the largest angle between two points of an approximated arc.
	step = math.Pi / 90
)

type Renderer struct {
	Background gg.RGBA
	face       text.Face
}

// New creates a renderer drawing text with the Go Regular font.
func New() (*Renderer, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: loading font: %w", err)
	}
	r := Renderer{
		Background: gg.RGB(1, 1, 1),
		face:       src.Face(DefaultFontSize),
	}
	return &r, nil
}

// Draw paints the scene and returns the resulting image.
func (r *Renderer) Draw(s *scene.Scene) (image.Image, error) {
	dc, err := r.draw(s)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (r *Renderer) WritePNG(w io.Writer, s *scene.Scene) error {
	dc, err := r.draw(s)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

func (r *Renderer) draw(s *scene.Scene) (*gg.Context, error) {
	root := s.Root()
	if root == nil {
		return nil, scene.ErrEmpty
	}
	var (
		width  = int(math.Ceil(root.Width))
		height = int(math.Ceil(root.Height))
		dc     = gg.NewContext(width, height)
	)
	dc.ClearWithColor(r.Background)
	dc.SetFont(r.face)
	if err := r.paint(dc, root, 0, 0); err != nil {
		dc.Close()
		return nil, err
	}
	return dc, nil
}

func (r *Renderer) paint(dc *gg.Context, n *scene.Node, x, y float64) error {
	x += n.X
	y += n.Y
	switch n.Kind {
	case scene.KindCircle:
		if !setColor(dc, n.Fill) {
			break
		}
		dc.DrawCircle(x, y, n.Radius)
		if err := dc.Fill(); err != nil {
			return err
		}
	case scene.KindPath:
		if n.Sector.Empty() || !setColor(dc, n.Fill) {
			break
		}
		traceSector(dc, n.Sector, x, y)
		if err := dc.Fill(); err != nil {
			return err
		}
	case scene.KindText:
		if n.Content == "" {
			break
		}
		dc.SetRGB(0.5, 0.5, 0.5)
		dc.DrawStringAnchored(n.Content, x, y+n.Dy, 0.5, 0)
	}
	for _, c := range n.Children() {
		if err := r.paint(dc, c, x, y); err != nil {
			return err
		}
	}
	return nil
}

// traceSector approximates the outline of sec with line segments.
func traceSector(dc *gg.Context, sec donut.Sector, cx, cy float64) {
	var (
		span  = sec.Span()
		count = int(math.Max(2, math.Ceil(span/step)))
		delta = span / float64(count)
	)
	if sec.Full() {
		traceCircle(dc, sec.Outer, cx, cy, count, delta, false)
		if sec.Inner > 0 {
			traceCircle(dc, sec.Inner, cx, cy, count, delta, true)
		}
		dc.SetFillRule(gg.FillRuleEvenOdd)
		return
	}
	dc.SetFillRule(gg.FillRuleNonZero)
	for i := 0; i <= count; i++ {
		px, py := donut.PointAt(sec.Start+float64(i)*delta, sec.Outer)
		if i == 0 {
			dc.MoveTo(cx+px, cy+py)
		} else {
			dc.LineTo(cx+px, cy+py)
		}
	}
	if sec.Inner <= 0 {
		dc.LineTo(cx, cy)
	} else {
		for i := count; i >= 0; i-- {
			px, py := donut.PointAt(sec.Start+float64(i)*delta, sec.Inner)
			dc.LineTo(cx+px, cy+py)
		}
	}
	dc.ClosePath()
}

func traceCircle(dc *gg.Context, radius, cx, cy float64, count int, delta float64, reverse bool) {
	for i := 0; i <= count; i++ {
		a := float64(i) * delta
		if reverse {
			a = -a
		}
		px, py := donut.PointAt(a, radius)
		if i == 0 {
			dc.MoveTo(cx+px, cy+py)
		} else {
			dc.LineTo(cx+px, cy+py)
		}
	}
	dc.ClosePath()
}

// setColor sets the current color from a SVG fill. It reports false when the
// fill can not be painted.
func setColor(dc *gg.Context, fill string) bool {
	fill = strings.TrimSpace(strings.ToLower(fill))
	switch {
	case fill == "" || fill == "none" || fill == "transparent":
		return false
	case strings.HasPrefix(fill, "#"):
		dc.SetHexColor(fill)
	case strings.HasPrefix(fill, "rgb"):
		c, ok := parseFunctional(fill)
		if !ok {
			return false
		}
		dc.SetRGBA(c.R, c.G, c.B, c.A)
	default:
		c, ok := colornames.Map[fill]
		if !ok {
			return false
		}
		dc.SetColor(c)
	}
	return true
}

// parseFunctional parses the rgb() and rgba() notations.
func parseFunctional(str string) (gg.RGBA, bool) {
	var c gg.RGBA
	lp, rp := strings.IndexByte(str, '('), strings.LastIndexByte(str, ')')
	if lp < 0 || rp < lp {
		return c, false
	}
	parts := strings.Split(str[lp+1:rp], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return c, false
	}
	var values [4]float64
	values[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return c, false
		}
		if i < 3 {
			f /= 255
		}
		values[i] = math.Max(0, math.Min(1, f))
	}
	return gg.RGBA2(values[0], values[1], values[2], values[3]), true
}
