package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/midbel/donut"
	"github.com/midbel/donut/raster"
	"github.com/midbel/donut/scene"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
)

var (
	ErrEmpty   = errors.New("chart has no segment")
	ErrFormat  = errors.New("unsupported format")
	ErrSegment = errors.New("no such segment")
)

// draw renders opts on a new scene. When focus is a valid index, the scene
// shows the segment at that index focused.
func draw(opts donut.Options, focus int) (*scene.Scene, error) {
	var (
		s = scene.New()
		c = donut.New(s, opts)
	)
	c.DataChanged(opts.Data)
	if c.State() != donut.Rendered {
		return nil, ErrEmpty
	}
	if focus >= 0 && !c.Focus(focus) {
		return nil, fmt.Errorf("%d: %w", focus, ErrSegment)
	}
	return s, nil
}

func write(w io.Writer, s *scene.Scene, format string) error {
	switch format {
	case formatSVG, "":
		return s.WriteSVG(w)
	case formatPNG:
		r, err := raster.New()
		if err != nil {
			return err
		}
		return r.WritePNG(w, s)
	default:
		return fmt.Errorf("%s: %w", format, ErrFormat)
	}
}

func contentType(format string) string {
	if format == formatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}
