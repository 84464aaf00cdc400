package donut

import (
	"time"
)

const (
	DefaultWidth       = 246.0
	DefaultHeight      = 246.0
	DefaultInnerRadius = 60.0
	DefaultTween       = 450 * time.Millisecond
	DefaultTotal       = "Total"

	// hoverSpace is kept between the outer radius and the border of the
	// container so that a focused segment is never clipped.
	hoverSpace = 20.0
	// captionSpace is added below the chart when it has a caption.
	captionSpace = 30.0
)

// Options configures a chart. Zero values stand for "use the default".
type Options struct {
	Width       float64
	Height      float64
	InnerRadius float64
	OuterRadius float64
	// Tween is reserved for animated transitions.
	Tween time.Duration

	Value    Value
	PreUnit  string
	PostUnit string
	Caption  string
	// Palette colors the segments without a color of their own.
	Palette Palette

	Data []Segment
}

// Config is the resolved, immutable configuration of one render pass.
type Config struct {
	Width       float64
	Height      float64
	InnerRadius float64
	OuterRadius float64
	Tween       time.Duration

	Value    Value
	PreUnit  string
	PostUnit string
	Caption  string
	Palette  Palette
}

// Resolve derives the configuration of a render pass from o. When unset, the
// outer radius is computed from the resolved width.
func Resolve(o Options) Config {
	cfg := Config{
		Width:       o.Width,
		Height:      o.Height,
		InnerRadius: o.InnerRadius,
		OuterRadius: o.OuterRadius,
		Tween:       o.Tween,
		Value:       o.Value,
		PreUnit:     o.PreUnit,
		PostUnit:    o.PostUnit,
		Caption:     o.Caption,
		Palette:     o.Palette,
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.InnerRadius <= 0 {
		cfg.InnerRadius = DefaultInnerRadius
	}
	if cfg.OuterRadius <= 0 {
		cfg.OuterRadius = cfg.Width/2 - hoverSpace
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = Category10
	}
	if cfg.Tween <= 0 {
		cfg.Tween = DefaultTween
	}
	return cfg
}

// SurfaceHeight is the height of the drawing surface, including the space
// reserved for the caption.
func (c Config) SurfaceHeight() float64 {
	if c.Caption != "" {
		return c.Height + captionSpace
	}
	return c.Height
}

func (c Config) Geometry() Geometry {
	return NewGeometry(c.InnerRadius, c.OuterRadius)
}
