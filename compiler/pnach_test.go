package compiler

import "testing"

func TestConvertRawToPnach(t *testing.T) {
	got := ConvertRawToPnach("20000100 00000001\nE0010001 00000100\nhello")
	want := "patch=1,EE,20000100,extended,00000001\npatch=1,EE,E0010001,extended,00000100\nhello"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPnachPair(t *testing.T) {
	tests := []struct {
		line      string
		addr, val string
		ok        bool
	}{
		{"patch=1,EE,20000100,extended,00000001", "20000100", "00000001", true},
		{"  patch = 0 , ee , 2000abcd , Extended , deadbeef ", "2000ABCD", "DEADBEEF", true},
		{"patch=1,IOP,20000100,extended,00000001", "", "", false},
		{"patch=1,EE,20000100,word,00000001", "", "", false},
		{"// comment", "", "", false},
	}
	for _, tt := range tests {
		addr, val, ok := PnachPair(tt.line)
		if ok != tt.ok || addr != tt.addr || val != tt.val {
			t.Errorf("PnachPair(%q) = %q %q %v", tt.line, addr, val, ok)
		}
	}
}

func TestConvertPnachToRaw(t *testing.T) {
	src := "gametitle=Test\r\npatch=1,EE,20000100,extended,00000001\r\n"
	want := "gametitle=Test\r\n20000100 00000001\n"
	if got := ConvertPnachToRaw(src); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	raw := "20000100 00000001\n50000100 00000004"
	if got := ConvertPnachToRaw(ConvertRawToPnach(raw)); got != raw {
		t.Errorf("round trip = %q", got)
	}
}
