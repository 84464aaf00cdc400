package donut

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

type Palette []string

var (
	Category10 Palette
	Tableau10  Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

// Color returns the color at index i, cycling through the palette.
func (p Palette) Color(i int) string {
	if len(p) == 0 || i < 0 {
		return ""
	}
	return p[i%len(p)]
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

const brighterFactor = 1 / 0.7

// Brighter lightens a hexadecimal color by the same factor d3 uses. Colors
// that are not in hexadecimal notation are returned unchanged.
func Brighter(color string) string {
	if !isHexColor(color) {
		return color
	}
	var (
		c = gg.Hex(color)
		r = brighten(c.R)
		g = brighten(c.G)
		b = brighten(c.B)
	)
	if c.A < 1 {
		return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, channel(c.A))
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func brighten(f float64) int {
	return channel(f * brighterFactor)
}

func channel(f float64) int {
	return int(math.Round(math.Max(0, math.Min(1, f)) * 255))
}

func isHexColor(str string) bool {
	str, ok := strings.CutPrefix(str, "#")
	if !ok {
		return false
	}
	switch len(str) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range str {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
