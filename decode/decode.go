package decode

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/midbel/donut"
	"github.com/midbel/slices"
)

const maxDepth = 16

type Decoder struct {
	file  string
	path  string
	depth int

	env       map[string][]string
	delimiter rune
	nofile    bool

	scan *Scanner
	err  error
	curr Token
	peek Token
}

func NewDecoder(r io.Reader) *Decoder {
	d := Decoder{
		path:      ".",
		env:       make(map[string][]string),
		delimiter: comma,
	}
	if r, ok := r.(interface{ Name() string }); ok {
		d.file = r.Name()
		d.path = filepath.Dir(d.file)
	}
	d.scan, d.err = Scan(r)
	if d.err == nil {
		d.next()
		d.next()
	}
	return &d
}

// DisableFiles makes the decoder reject the load and include statements.
func (d *Decoder) DisableFiles() {
	d.nofile = true
}

// DecodeFile decodes the chart description stored in file.
func DecodeFile(file string) (donut.Options, error) {
	r, err := os.Open(file)
	if err != nil {
		return donut.Options{}, err
	}
	defer r.Close()
	return NewDecoder(r).Decode()
}

func (d *Decoder) Decode() (donut.Options, error) {
	var opts donut.Options
	return opts, d.decode(&opts)
}

func (d *Decoder) decode(opts *donut.Options) error {
	if d.err != nil {
		return d.err
	}
	d.skipEOL()
	for !d.done() {
		if err := d.expect(Keyword, "keyword expected"); err != nil {
			return err
		}
		var err error
		switch d.curr.Literal {
		case kwSet:
			err = d.decodeSet(opts)
		case kwSegment:
			err = d.decodeSegment(opts)
		case kwLoad:
			err = d.decodeLoad(opts)
		case kwInclude:
			err = d.decodeInclude(opts)
		case kwDeclare:
			err = d.decodeDeclare()
		default:
			err = d.decodeError(fmt.Sprintf("unexpected %q keyword", d.curr.Literal))
		}
		if err != nil {
			return err
		}
		d.skipEOL()
	}
	return nil
}

func (d *Decoder) decodeSet(opts *donut.Options) error {
	d.next()
	if err := d.expect(Literal, "option expected"); err != nil {
		return err
	}
	var (
		err error
		cmd = d.curr
	)
	d.next()
	switch cmd.Literal {
	case "width":
		opts.Width, err = d.getFloat()
	case "height":
		opts.Height, err = d.getFloat()
	case "size":
		var list []float64
		if list, err = d.getFloatList(); err != nil {
			break
		}
		switch len(list) {
		case 1:
			opts.Width, opts.Height = list[0], list[0]
		case 2:
			opts.Width, opts.Height = list[0], list[1]
		default:
			err = d.decodeError("invalid number of values given for chart size")
		}
	case "inner-radius":
		opts.InnerRadius, err = d.getFloat()
	case "outer-radius":
		opts.OuterRadius, err = d.getFloat()
	case "tween":
		opts.Tween, err = d.getDuration()
	case "value":
		var f float64
		if f, err = d.getFloat(); err == nil {
			opts.Value = donut.Number(f)
		}
	case "pre-unit":
		opts.PreUnit, err = d.getString()
	case "post-unit":
		opts.PostUnit, err = d.getString()
	case "label", "caption":
		opts.Caption, err = d.getString()
	case "delimiter":
		err = d.decodeDelimiter()
	case "palette":
		opts.Palette, err = d.getPalette()
	default:
		d.curr = cmd
		err = d.optionError("set")
	}
	if err != nil {
		return err
	}
	return d.eol()
}

func (d *Decoder) decodeDelimiter() error {
	str, err := d.getString()
	if err != nil {
		return err
	}
	if str == `\t` {
		str = "\t"
	}
	if utf8.RuneCountInString(str) != 1 {
		return d.decodeError("delimiter should be a single character")
	}
	d.delimiter, _ = utf8.DecodeRuneInString(str)
	return nil
}

func (d *Decoder) decodeSegment(opts *donut.Options) error {
	d.next()
	list, err := d.getStringList()
	if err != nil {
		return err
	}
	seg, err := makeSegment(list)
	if err != nil {
		return d.decodeError(err.Error())
	}
	opts.Data = append(opts.Data, seg)
	return d.eol()
}

func (d *Decoder) decodeLoad(opts *donut.Options) error {
	if d.nofile {
		return d.decodeError("load statement not allowed")
	}
	d.next()
	file, err := d.getString()
	if err != nil {
		return err
	}
	var (
		cols     = []int{0, 1, 2}
		explicit = d.isKw(kwUsing)
	)
	if explicit {
		d.next()
		if cols, err = d.getIntList(); err != nil {
			return err
		}
		if len(cols) < 1 || len(cols) > 3 {
			return d.decodeError("using expects between 1 and 3 columns")
		}
	}
	if err := d.eol(); err != nil {
		return err
	}
	list, err := loadSegments(d.resolve(file), d.delimiter, cols, explicit)
	if err != nil {
		return err
	}
	opts.Data = append(opts.Data, list...)
	return nil
}

func (d *Decoder) decodeInclude(opts *donut.Options) error {
	if d.nofile {
		return d.decodeError("include statement not allowed")
	}
	d.next()
	file, err := d.getString()
	if err != nil {
		return err
	}
	if err := d.eol(); err != nil {
		return err
	}
	if d.depth >= maxDepth {
		return d.decodeError("too many nested includes")
	}
	r, err := os.Open(d.resolve(file))
	if err != nil {
		return err
	}
	defer r.Close()

	sub := NewDecoder(r)
	sub.depth = d.depth + 1
	sub.env = d.env
	sub.delimiter = d.delimiter
	sub.nofile = d.nofile
	if err := sub.decode(opts); err != nil {
		return err
	}
	d.delimiter = sub.delimiter
	return nil
}

func (d *Decoder) decodeDeclare() error {
	d.next()
	if err := d.expect(Literal, "literal expected"); err != nil {
		return err
	}
	ident := d.curr.Literal
	d.next()
	values, err := d.getStringList()
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return d.decodeError(fmt.Sprintf("no value given for %s", ident))
	}
	d.env[ident] = values
	return d.eol()
}

func (d *Decoder) resolve(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(d.path, file)
}

func (d *Decoder) is(kind rune) bool {
	return d.curr.Type == kind
}

func (d *Decoder) peekIs(kind rune) bool {
	return d.peek.Type == kind
}

func (d *Decoder) isKw(kw string) bool {
	return d.is(Keyword) && d.curr.Literal == kw
}

func (d *Decoder) expect(kind rune, msg string) error {
	if d.is(kind) {
		return nil
	}
	return d.decodeError(msg)
}

func (d *Decoder) next() {
	d.curr = d.peek
	d.peek = d.scan.Scan()
}

func (d *Decoder) done() bool {
	return d.curr.Type == EOF
}

func (d *Decoder) eol() error {
	if !d.is(EOL) && !d.is(EOF) && !d.is(Comment) {
		return d.decodeError("expected end of line or end of file")
	}
	d.next()
	return nil
}

func (d *Decoder) optionError(section string) error {
	return OptionError{
		Position: d.curr.Position,
		File:     d.file,
		Option:   d.curr.Literal,
		Section:  section,
	}
}

func (d *Decoder) decodeError(msg string) error {
	return DecodeError{
		Position: d.curr.Position,
		File:     d.file,
		Message:  msg,
	}
}

func (d *Decoder) skipEOL() {
	for d.is(EOL) || d.is(Comment) {
		d.next()
	}
}

func (d *Decoder) getString() (string, error) {
	var str string
	switch d.curr.Type {
	case Literal:
		str = d.curr.Literal
	case Variable:
		vs, ok := d.env[d.curr.Literal]
		if !ok {
			return "", d.decodeError(fmt.Sprintf("%s: undefined variable", d.curr.Literal))
		}
		str = slices.Fst(vs)
	default:
		return "", d.decodeError("expected literal or variable")
	}
	defer d.next()
	return str, nil
}

func (d *Decoder) getInt() (int, error) {
	tok := d.curr
	str, err := d.getString()
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(str)
	if err != nil {
		d.curr = tok
		return 0, d.decodeError(fmt.Sprintf("%s: invalid integer", str))
	}
	return i, nil
}

func (d *Decoder) getFloat() (float64, error) {
	tok := d.curr
	str, err := d.getString()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		d.curr = tok
		return 0, d.decodeError(fmt.Sprintf("%s: invalid number", str))
	}
	return f, nil
}

// getPalette accepts the name of a builtin palette or a list of colors.
func (d *Decoder) getPalette() (donut.Palette, error) {
	list, err := d.getStringList()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, d.decodeError("no color given for palette")
	}
	if len(list) > 1 {
		return donut.Palette(list), nil
	}
	switch name := slices.Fst(list); name {
	case "category10":
		return donut.Category10, nil
	case "tableau10":
		return donut.Tableau10, nil
	default:
		return donut.Palette(list), nil
	}
}

// getDuration accepts a Go duration or a number of milliseconds.
func (d *Decoder) getDuration() (time.Duration, error) {
	str, err := d.getString()
	if err != nil {
		return 0, err
	}
	if dur, err := time.ParseDuration(str); err == nil {
		return dur, nil
	}
	ms, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration", str)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

func (d *Decoder) getStringList() ([]string, error) {
	var list []string
	for !d.is(EOL) && !d.is(EOF) {
		str, err := d.getString()
		if err != nil {
			return nil, err
		}
		list = append(list, str)
		if err := d.nextListItem(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (d *Decoder) getIntList() ([]int, error) {
	var list []int
	for !d.is(EOL) && !d.is(EOF) {
		i, err := d.getInt()
		if err != nil {
			return nil, err
		}
		list = append(list, i)
		if err := d.nextListItem(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (d *Decoder) getFloatList() ([]float64, error) {
	var list []float64
	for !d.is(EOL) && !d.is(EOF) {
		f, err := d.getFloat()
		if err != nil {
			return nil, err
		}
		list = append(list, f)
		if err := d.nextListItem(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (d *Decoder) nextListItem() error {
	switch d.curr.Type {
	case Comma:
		if d.peekIs(EOL) || d.peekIs(EOF) {
			return d.decodeError("end of line not expected after ','")
		}
		d.next()
	case EOF, EOL, Literal, Variable:
	default:
		return d.decodeError("expected ',' or end of line")
	}
	return nil
}

// makeSegment builds a segment from its value, color and label.
func makeSegment(fields []string) (donut.Segment, error) {
	var seg donut.Segment
	if len(fields) == 0 || len(fields) > 3 {
		return seg, fmt.Errorf("segment expects a value, a color and an optional label")
	}
	v, err := strconv.ParseFloat(slices.Fst(fields), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return seg, fmt.Errorf("%s: invalid segment value", slices.Fst(fields))
	}
	if v < 0 {
		return seg, fmt.Errorf("%s: segment value should not be negative", slices.Fst(fields))
	}
	seg.Value = v
	if len(fields) > 1 {
		seg.Color = fields[1]
	}
	if len(fields) > 2 {
		seg.Label = slices.Lst(fields)
	}
	return seg, nil
}

// loadSegments reads the rows of a CSV file, header excluded. Only the value
// column is required unless the columns were given explicitly.
func loadSegments(file string, delimiter rune, cols []int, explicit bool) ([]donut.Segment, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	rs := csv.NewReader(r)
	rs.Comma = delimiter
	rs.FieldsPerRecord = -1
	if _, err := rs.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	var list []donut.Segment
	for {
		row, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		var fields []string
		for i, ix := range cols {
			if !explicit && i > 0 && ix >= len(row) {
				break
			}
			if ix < 0 || ix >= len(row) {
				return nil, fmt.Errorf("%s: invalid column index %d", file, ix)
			}
			fields = append(fields, row[ix])
		}
		seg, err := makeSegment(fields)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		list = append(list, seg)
	}
	return list, nil
}
