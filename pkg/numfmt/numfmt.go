// Package numfmt formats counters for display.
package numfmt

import (
	"math"
	"strconv"
	"strings"
)

// Value is a number that may be missing. The zero Value is missing.
type Value struct {
	n     float64
	valid bool
}

// Of returns a present Value.
func Of(n float64) Value {
	return Value{n: n, valid: true}
}

// Int returns a present Value from an integer counter.
func Int(n int64) Value {
	return Of(float64(n))
}

// Missing returns an absent Value.
func Missing() Value {
	return Value{}
}

// Parse reads a counter stored as text. Empty or non-numeric input is missing.
func Parse(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing()
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return Missing()
	}
	return Of(n)
}

// Valid reports whether the value is present.
func (v Value) Valid() bool {
	return v.valid
}

// Float returns the value, or 0 when missing.
func (v Value) Float() float64 {
	if !v.valid {
		return 0
	}
	return v.n
}

// Int64 returns the value truncated to an integer, or 0 when missing or
// negative. Counters are never negative.
func (v Value) Int64() int64 {
	if !v.valid || v.n <= 0 {
		return 0
	}
	if v.n >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v.n)
}

// Compact formats v the way the dashboard shows counters: 1.2B, 3.4M, 5.6K,
// thousands-separated integers below 1000, and "0" for zero or missing.
func Compact(v Value) string {
	if !v.valid || v.n == 0 {
		return "0"
	}
	n := v.n
	switch {
	case n >= 1e9:
		return strconv.FormatFloat(n/1e9, 'f', 1, 64) + "B"
	case n >= 1e6:
		return strconv.FormatFloat(n/1e6, 'f', 1, 64) + "M"
	case n >= 1e3:
		return strconv.FormatFloat(n/1e3, 'f', 1, 64) + "K"
	default:
		return Grouped(int64(n))
	}
}

// CompactInt is Compact for an integer counter.
func CompactInt(n int64) string {
	return Compact(Int(n))
}

// Grouped formats n with comma thousands separators.
func Grouped(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Percent formats a rate with the given number of decimals and a % suffix.
func Percent(rate float64, decimals int) string {
	return strconv.FormatFloat(rate, 'f', decimals, 64) + "%"
}
