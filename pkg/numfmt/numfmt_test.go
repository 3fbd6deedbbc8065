package numfmt

import "testing"

func TestCompact(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"missing", Missing(), "0"},
		{"zero", Int(0), "0"},
		{"small", Int(7), "7"},
		{"below thousand", Int(999), "999"},
		{"thousand", Int(1000), "1.0K"},
		{"thousands", Int(1234), "1.2K"},
		{"millions", Int(3_450_000), "3.5M"},
		{"billions", Int(5_600_000_000), "5.6B"},
		{"fractional below thousand", Of(12.9), "12"},
		{"parsed text", Parse(" 2500 "), "2.5K"},
		{"unparsable text", Parse("n/a"), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compact(tt.in); got != tt.want {
				t.Errorf("Compact() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGrouped(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{123, "123"},
		{1234, "1,234"},
		{1234567, "1,234,567"},
		{-9876543, "-9,876,543"},
	}
	for _, tt := range tests {
		if got := Grouped(tt.in); got != tt.want {
			t.Errorf("Grouped(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in        string
		wantValid bool
		wantInt   int64
	}{
		{"42", true, 42},
		{"42.9", true, 42},
		{"", false, 0},
		{"abc", false, 0},
		{"NaN", false, 0},
		{"-5", true, 0},
		{"1e3", true, 1000},
	}
	for _, tt := range tests {
		v := Parse(tt.in)
		if v.Valid() != tt.wantValid {
			t.Errorf("Parse(%q).Valid() = %v, want %v", tt.in, v.Valid(), tt.wantValid)
		}
		if v.Int64() != tt.wantInt {
			t.Errorf("Parse(%q).Int64() = %d, want %d", tt.in, v.Int64(), tt.wantInt)
		}
	}
}
