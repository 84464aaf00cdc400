package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/midbel/donut"
	"github.com/midbel/donut/decode"
)

func ticketOptions(t *testing.T) donut.Options {
	t.Helper()
	opts, err := decode.DecodeFile("testdata/tickets.chart")
	if err != nil {
		t.Fatal(err)
	}
	return opts
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{formatSVG, formatPNG} {
		if err := renderFile("testdata/tickets.chart", dir, format, -1); err != nil {
			t.Fatalf("%s: %s", format, err)
		}
		info, err := os.Stat(filepath.Join(dir, "tickets."+format))
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Errorf("%s: empty file", format)
		}
	}
	r, err := os.Open(filepath.Join(dir, "tickets."+formatPNG))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, err := png.Decode(r); err != nil {
		t.Errorf("png output not complete: %s", err)
	}
	if err := renderFile("testdata/unknown.chart", dir, formatSVG, -1); err == nil {
		t.Errorf("missing file should fail")
	}
}
