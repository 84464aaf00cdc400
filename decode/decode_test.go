package decode

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/midbel/donut"
)

func TestDecoder_Decode(t *testing.T) {
	r, err := os.Open("testdata/sample.chart")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	opts, err := NewDecoder(r).Decode()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Width != 200 || opts.Height != 200 {
		t.Errorf("size: want 200x200, got %.0fx%.0f", opts.Width, opts.Height)
	}
	if opts.InnerRadius != 50 {
		t.Errorf("inner radius: want 50, got %f", opts.InnerRadius)
	}
	if opts.Value.IsBlank() || opts.Value.Float() != 327 {
		t.Errorf("value: want 327, got %s", opts.Value)
	}
	if opts.Caption != "Ticket Priority" {
		t.Errorf("caption: want %q, got %q", "Ticket Priority", opts.Caption)
	}
	if opts.Tween != 300*time.Millisecond {
		t.Errorf("tween: want 300ms, got %s", opts.Tween)
	}
	want := []donut.Segment{
		{Value: 132, Color: "#0071a9", Label: "Low"},
		{Value: 145, Color: "#00b2ff", Label: "Normal"},
		{Value: 50, Color: "#57cbff", Label: "High"},
	}
	if len(opts.Data) != len(want) {
		t.Fatalf("segments: want %d, got %d", len(want), len(opts.Data))
	}
	for i := range want {
		if opts.Data[i] != want[i] {
			t.Errorf("segment %d: want %+v, got %+v", i, want[i], opts.Data[i])
		}
	}
}

func TestDecodeFile(t *testing.T) {
	opts, err := DecodeFile("testdata/load.chart")
	if err != nil {
		t.Fatal(err)
	}
	if opts.PreUnit != "$" || opts.PostUnit != " tickets" {
		t.Errorf("units: got %q and %q", opts.PreUnit, opts.PostUnit)
	}
	if len(opts.Data) != 4 {
		t.Fatalf("segments: want 4, got %d", len(opts.Data))
	}
	first := donut.Segment{Value: 132, Color: "#0071a9", Label: "Low"}
	if opts.Data[0] != first {
		t.Errorf("first segment: want %+v, got %+v", first, opts.Data[0])
	}
	last := donut.Segment{Value: 10, Color: "rebeccapurple", Label: "Other"}
	if opts.Data[3] != last {
		t.Errorf("included segment: want %+v, got %+v", last, opts.Data[3])
	}
}

func TestDecoder_Tween(t *testing.T) {
	opts, err := NewDecoder(strings.NewReader("set tween 250\n")).Decode()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Tween != 250*time.Millisecond {
		t.Errorf("tween: want 250ms, got %s", opts.Tween)
	}
}

func TestDecoder_Errors(t *testing.T) {
	tests := []struct {
		Name  string
		Input string
	}{
		{
			Name:  "unknown-option",
			Input: "set radius 10\n",
		},
		{
			Name:  "negative-value",
			Input: "segment -1, #fff, Low\n",
		},
		{
			Name:  "undefined-variable",
			Input: "segment 10, $color\n",
		},
		{
			Name:  "trailing-comma",
			Input: "segment 10, #fff,\n",
		},
		{
			Name:  "missing-keyword",
			Input: "width 10\n",
		},
		{
			Name:  "bad-size",
			Input: "set size 1, 2, 3\n",
		},
		{
			Name:  "empty-declare",
			Input: "declare color\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := NewDecoder(strings.NewReader(tt.Input)).Decode()
			if err == nil {
				t.Fatalf("expected error decoding %q", tt.Input)
			}
		})
	}
}

func TestDecoder_OptionError(t *testing.T) {
	_, err := NewDecoder(strings.NewReader("set width 10\nset radius 10\n")).Decode()
	var oe OptionError
	if !errors.As(err, &oe) {
		t.Fatalf("expected OptionError, got %v", err)
	}
	if oe.Option != "radius" || oe.Section != "set" {
		t.Errorf("unexpected option error: %+v", oe)
	}
	if oe.Line != 2 {
		t.Errorf("line: want 2, got %d", oe.Line)
	}
}

func TestScanner(t *testing.T) {
	input := "# comment\nsegment 10, #fff, \"Low prio\"\n"
	sc, err := Scan(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []Token{
		{Type: Comment, Literal: "comment"},
		{Type: EOL},
		{Type: Keyword, Literal: "segment"},
		{Type: Literal, Literal: "10"},
		{Type: Comma},
		{Type: Literal, Literal: "#fff"},
		{Type: Comma},
		{Type: Literal, Literal: "Low prio"},
		{Type: EOL},
		{Type: EOF},
	}
	for i, w := range want {
		got := sc.Scan()
		if got.Type != w.Type || got.Literal != w.Literal {
			t.Fatalf("token %d: want %s, got %s", i, w, got)
		}
	}
}

func TestDecoder_BlankSeparated(t *testing.T) {
	input := "declare palette '#0071a9' '#00b2ff'\nsegment 132 $palette Low\nsegment 50 steelblue\n"
	opts, err := NewDecoder(strings.NewReader(input)).Decode()
	if err != nil {
		t.Fatal(err)
	}
	want := []donut.Segment{
		{Value: 132, Color: "#0071a9", Label: "Low"},
		{Value: 50, Color: "steelblue"},
	}
	if len(opts.Data) != len(want) {
		t.Fatalf("segments: want %d, got %d", len(want), len(opts.Data))
	}
	for i := range want {
		if opts.Data[i] != want[i] {
			t.Errorf("segment %d: want %+v, got %+v", i, want[i], opts.Data[i])
		}
	}
}

func TestDecoder_DisableFiles(t *testing.T) {
	dir := t.TempDir()
	secret := filepath.Join(dir, "secret.csv")
	if err := os.WriteFile(secret, []byte("value,color,label\n42,#fff,hidden\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{"load " + secret + "\n", "include " + secret + "\n"} {
		dec := NewDecoder(strings.NewReader(input))
		dec.DisableFiles()
		opts, err := dec.Decode()
		if err == nil {
			t.Errorf("%q: expected error", input)
		}
		if len(opts.Data) != 0 {
			t.Errorf("%q: file content decoded: %v", input, opts.Data)
		}
		if err != nil && strings.Contains(err.Error(), "hidden") {
			t.Errorf("%q: error reveals file content: %s", input, err)
		}
	}

	opts, err := NewDecoder(strings.NewReader("load " + secret + "\n")).Decode()
	if err != nil {
		t.Fatal(err)
	}
	if len(opts.Data) != 1 {
		t.Errorf("segments: want 1, got %d", len(opts.Data))
	}
}

func TestDecoder_LoadTwoColumns(t *testing.T) {
	opts, err := DecodeFile("testdata/two.chart")
	if err != nil {
		t.Fatal(err)
	}
	want := []donut.Segment{
		{Value: 10, Color: "#fff"},
		{Value: 20, Color: "#000"},
	}
	if len(opts.Data) != len(want) {
		t.Fatalf("segments: want %d, got %d", len(want), len(opts.Data))
	}
	for i := range want {
		if opts.Data[i] != want[i] {
			t.Errorf("segment %d: want %+v, got %+v", i, want[i], opts.Data[i])
		}
	}

	input := "load " + filepath.Join("testdata", "two.csv") + " using 0, 1, 2\n"
	if _, err := NewDecoder(strings.NewReader(input)).Decode(); err == nil {
		t.Errorf("missing column given explicitly should fail")
	}
}

func TestDecoder_Numbers(t *testing.T) {
	for _, input := range []string{
		"set width NaN\n",
		"set inner-radius +Inf\n",
		"set value abc\n",
		"segment NaN, #fff\n",
		"load data.csv using a\n",
	} {
		_, err := NewDecoder(strings.NewReader(input)).Decode()
		var de DecodeError
		if !errors.As(err, &de) {
			t.Errorf("%q: expected DecodeError, got %v", input, err)
			continue
		}
		if de.Line != 1 {
			t.Errorf("%q: line: want 1, got %d", input, de.Line)
		}
	}
}

func TestDecoder_Palette(t *testing.T) {
	tests := []struct {
		Input string
		Want  donut.Palette
	}{
		{Input: "set palette tableau10\n", Want: donut.Tableau10},
		{Input: "set palette category10\n", Want: donut.Category10},
		{Input: "set palette #fff, #000\n", Want: donut.Palette{"#fff", "#000"}},
	}
	for _, tt := range tests {
		opts, err := NewDecoder(strings.NewReader(tt.Input)).Decode()
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(opts.Palette, tt.Want) {
			t.Errorf("%q: want %v, got %v", tt.Input, tt.Want, opts.Palette)
		}
	}
}
