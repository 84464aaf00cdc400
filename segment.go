package donut

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"strconv"
)

// Segment is one weighted, colored and labeled item of a dataset. Its identity
// is its position in the dataset.
type Segment struct {
	Value float64
	Color string
	Label string
}

// weight returns the value used by the layout. Values that can not be drawn
// count as zero.
func (s Segment) weight() float64 {
	if s.Value < 0 || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return 0
	}
	return s.Value
}

// Fingerprint hashes the value, color and label of every segment in order.
// Two datasets with the same content have the same fingerprint.
func Fingerprint(data []Segment) uint64 {
	var (
		h   = fnv.New64a()
		buf [8]byte
	)
	for _, s := range data {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(s.Value))
		h.Write(buf[:])
		h.Write([]byte(s.Color))
		h.Write([]byte{0})
		h.Write([]byte(s.Label))
		h.Write([]byte{0})
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(len(data)))
	h.Write(buf[:])
	return h.Sum64()
}

// Value is a number that may be left blank.
type Value struct {
	number float64
	set    bool
}

// Blank is the unset value.
var Blank Value

func Number(f float64) Value {
	return Value{
		number: f,
		set:    true,
	}
}

func (v Value) IsBlank() bool {
	return !v.set
}

func (v Value) Float() float64 {
	return v.number
}

// String formats the value the way the center label displays it: blank, zero
// and NaN all read as "0".
func (v Value) String() string {
	if !v.set || v.number == 0 || math.IsNaN(v.number) {
		return "0"
	}
	return strconv.FormatFloat(v.number, 'f', -1, 64)
}
