package df

import (
	"fmt"
	"math"
	"strings"
)

// *********** Printing ***********

// PrettyPrint lays out cols side by side under header. Each element of cols must be a
// []float64 or []string of the same length.
func PrettyPrint(header []string, cols ...any) string {
	var colsS [][]string

	for ind := 0; ind < len(cols); ind++ {
		colsS = append(colsS, stringSlice(header[ind], cols[ind]))
	}

	out := ""
	for row := 0; row < len(colsS[0]); row++ {
		for c := 0; c < len(colsS); c++ {
			out += colsS[c][row]
		}
		out += "\n"
	}

	return out
}

func stringSlice(header string, inVal any) []string {
	const pad = 3
	c := []string{header}

	format := ""
	n := 0
	var dt DataTypes
	switch x := inVal.(type) {
	case []float64:
		format = selectFormat(x)
		n = len(x)
		dt = DTfloat
	case []string:
		format = "%s"
		n = len(x)
		dt = DTstring
	default:
		panic(fmt.Errorf("unsupported data type"))
	}

	maxLen := len(header)
	for ind := 0; ind < n; ind++ {
		var el string
		switch x := inVal.(type) {
		case []float64:
			el = fmt.Sprintf(format, x[ind])
		case []string:
			el = x[ind]
		}

		if l := len(el); l > maxLen {
			maxLen = l
		}

		c = append(c, el)
	}

	for ind, cx := range c {
		padded := cx + strings.Repeat(" ", maxLen-len(cx)+pad)
		if dt == DTfloat {
			padded = strings.Repeat(" ", maxLen-len(cx)+pad) + cx
		}
		c[ind] = padded
	}

	return c
}

// selectFormat picks the number of decimal places from the spread of x.
func selectFormat(x []float64) string {
	var minX, maxX float64
	first := true
	for _, xv := range x {
		if math.IsNaN(xv) {
			continue
		}

		xva := math.Abs(xv)
		if first {
			minX, maxX, first = xva, xva, false
		}

		if xva < minX {
			minX = xva
		}

		if xva > maxX {
			maxX = xva
		}
	}

	if first {
		return "%.1f"
	}

	rangeX := maxX - minX
	l := math.Log10(rangeX)
	var dp int
	switch {
	case rangeX == 0:
		dp = 1
	case l < -1:
		dp = int(math.Abs(l)+0.5) + 1
	case l > 1:
		dp = 0
	default:
		dp = 1
	}

	return "%." + fmt.Sprintf("%d", dp) + "f"
}

// *********** Other ***********

// Has reports whether needle is an element of haystack.
func Has[C comparable](needle C, haystack []C) bool {
	return Position(needle, haystack) >= 0
}

// Position returns the index of the first needle in haystack, or -1.
func Position[C comparable](needle C, haystack []C) int {
	for ind, straw := range haystack {
		if needle == straw {
			return ind
		}
	}

	return -1
}

// validName rejects empty names and names with control characters. Source labels carry
// spaces and punctuation, so those are allowed.
func validName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}

	return !strings.ContainsAny(name, "\n\r\t")
}
