package script

import (
	"math"
	"testing"
)

func TestLiteralForms(t *testing.T) {
	tests := []struct {
		in                 string
		address, intv, flt bool
	}{
		{"0x1000", true, true, true},
		{"1000", true, true, true},
		{"-0x10", true, true, true},
		{"ABCDEF12", true, false, false},
		{"0x123456789", false, false, false},
		{"-5", true, true, true},
		{"1.5", false, false, true},
		{"-0.25", false, false, true},
		{"INFINITY", false, false, true},
		{"-infinity", false, false, true},
		{"NaN", false, false, true},
		{"0x", false, false, false},
		{"x", false, false, false},
		{"", false, false, false},
	}
	for _, tt := range tests {
		if got := IsAddressValid(tt.in); got != tt.address {
			t.Errorf("IsAddressValid(%q) = %v", tt.in, got)
		}
		if got := IsIntValueValid(tt.in); got != tt.intv {
			t.Errorf("IsIntValueValid(%q) = %v", tt.in, got)
		}
		if got := IsFloatValueValid(tt.in); got != tt.flt {
			t.Errorf("IsFloatValueValid(%q) = %v", tt.in, got)
		}
	}
}

func TestConvertAddress_NegativeIsMagnitude(t *testing.T) {
	v, err := ConvertAddress("-0x10")
	if err != nil || v != -0x10 {
		t.Fatalf("ConvertAddress(-0x10) = %d, %v", v, err)
	}
	v, _ = ConvertAddress("FFFFFFFF")
	if v != -1 {
		t.Fatalf("ConvertAddress(FFFFFFFF) = %d, want -1", v)
	}
}

func TestConvertAddress_RoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "0x20001000", "7FFFFFFF", "80000000", "-0x1", "FFFFFFFF"} {
		v, err := ConvertAddress(s)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		back, err := ConvertAddress(Hex8(v))
		if err != nil || back != v {
			t.Errorf("%s: round trip %d -> %s -> %d", s, v, Hex8(v), back)
		}
	}
}

func TestConvertIntValue(t *testing.T) {
	tests := []struct {
		in   string
		want int32
	}{
		{"0x10", 16},
		{"-0x10", -16},
		{"10", 10},
		{"-10", -10},
		{"0xFFFFFFFF", -1},
	}
	for _, tt := range tests {
		got, err := ConvertIntValue(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ConvertIntValue(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
	if _, err := ConvertIntValue("4294967296"); err == nil {
		t.Error("decimal overflow was accepted")
	}
}

func TestConvertFloatValue_HexIsBitsDecimalIsNumber(t *testing.T) {
	hex, err := ConvertFloatValue("0x3F800000")
	if err != nil {
		t.Fatal(err)
	}
	dec, err := ConvertFloatValue("1")
	if err != nil {
		t.Fatal(err)
	}
	if hex != math.Float32bits(1) || dec != math.Float32bits(1) {
		t.Fatalf("got %08X and %08X, want both %08X", hex, dec, math.Float32bits(1))
	}
	// "1" read as hex bits would be a denormal, not 1.0.
	if raw, _ := ConvertFloatValue("0x1"); raw != 1 {
		t.Fatalf("0x1 = %08X, want raw pattern 00000001", raw)
	}
	specials := map[string]uint32{
		"INFINITY":  0x7F800000,
		"-Infinity": 0xFF800000,
		"nan":       0xFFC00000,
		"-0":        0x80000000,
		"0.5":       0x3F000000,
	}
	for in, want := range specials {
		if got, _ := ConvertFloatValue(in); got != want {
			t.Errorf("ConvertFloatValue(%q) = %08X, want %08X", in, got, want)
		}
	}
}

func TestHex8(t *testing.T) {
	if got := Hex8(-1); got != "FFFFFFFF" {
		t.Errorf("Hex8(-1) = %s", got)
	}
	if got := Hex8(0xABC); got != "00000ABC" {
		t.Errorf("Hex8(0xABC) = %s", got)
	}
}
