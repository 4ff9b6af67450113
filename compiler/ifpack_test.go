package compiler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/intuitionamiga/clps2c/script"
)

func TestIf_Codes(t *testing.T) {
	tests := []struct {
		name  string
		cond  string
		dtype bool
		want  string
	}{
		{"equal byte", "If 0x100 =. 1", false, "E1010001 00000100"},
		{"not equal half", "If 0x100 !: 0x1234", false, "E0011234 10000100"},
		{"less", "If 0x100 <: 2", false, "E0010002 20000100"},
		{"greater", "If 0x100 >. 2", false, "E1010002 30000100"},
		{"nand", "If 0x100 ~&: 2", false, "E0010002 40000100"},
		{"and", "If 0x100 &: 2", false, "E0010002 50000100"},
		{"nor", "If 0x100 ~|: 2", false, "E0010002 60000100"},
		{"or", "If 0x100 |: 2", false, "E0010002 70000100"},
		{"d-type byte", "If 0x100 =. 1", true, "D0000100 01010001"},
		{"d-type half", "If 0x100 !: 0xBEEF", true, "D0000100 0110BEEF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := compileLines(t, Options{DType: tt.dtype}, tt.cond, "W32 0x200 1", "EndIf")
			expectOutput(t, out, tt.want, "20000200 00000001")
		})
	}
}

func TestIf_Nested(t *testing.T) {
	out := compileLines(t, Options{},
		"If 0x100 =. 1",
		"W32 0x200 1",
		"If 0x104 =. 2",
		"I32 0x300 1",
		"EI",
		"EndIf",
		"W32 0x204 1",
	)
	expectOutput(t, out,
		"E1040001 00000100",
		"20000200 00000001",
		"E1020002 00000104",
		"30400000 00000300",
		"00000001 00000000",
		"20000204 00000001",
	)
}

func TestIf_LogicalAnd(t *testing.T) {
	out := compileLines(t, Options{},
		"If 0x100 =. 1 && 0x104 !: 0x20",
		"W32 0x200 1",
		"EndIf",
	)
	expectOutput(t, out,
		"E1020001 00000100",
		"E0010020 10000104",
		"20000200 00000001",
	)

	out = compileLines(t, Options{},
		"Set p 0x100",
		"If p =. 1 && p+4 =. 2 && p+8 =. 3",
		"W32 0x200 1",
		"EndIf",
	)
	expectOutput(t, out,
		"E1030001 00000100",
		"E1020002 00000104",
		"E1010003 00000108",
		"20000200 00000001",
	)
}

// scopeLines builds an If scope of n single-line writes.
func scopeLines(n int) []string {
	lines := []string{"If 0x100 =. 1"}
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("W32 0x%X 1", 0x1000+i*4))
	}
	return append(lines, "EndIf")
}

func TestIf_ScopeCapacity(t *testing.T) {
	out := compileLines(t, Options{}, scopeLines(255)...)
	lines := strings.Split(out, "\n")
	if len(lines) != 256 || lines[0] != "E1FF0001 00000100" {
		t.Fatalf("255-line scope: %d lines, first %q", len(lines), lines[0])
	}

	out = compileLines(t, Options{}, scopeLines(256)...)
	lines = strings.Split(out, "\n")
	if len(lines) != 258 {
		t.Fatalf("256-line scope: got %d lines, want 258", len(lines))
	}
	if lines[0] != "E1FF0001 00000100" {
		t.Errorf("first part header = %q", lines[0])
	}
	if lines[256] != "E1010001 00000100" || lines[257] != "200013FC 00000001" {
		t.Errorf("second part = %q", lines[256:])
	}
}

func TestIf_SplitKeepsNesting(t *testing.T) {
	src := []string{"If 0x100 =. 1", "If 0x104 =. 2"}
	for i := 0; i < 300; i++ {
		src = append(src, fmt.Sprintf("W32 0x%X 1", 0x1000+i*4))
	}
	src = append(src, "EndIf", "EndIf")

	c := New(Options{})
	out, err := c.Compile(src, "split.txt")
	if err != nil {
		t.Fatal(err)
	}
	var headers []string
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, "E") {
			headers = append(headers, l)
		}
	}
	// Outer 0xFF = inner If + 254 writes; the reopened pair holds 46 writes.
	want := []string{
		"E1FF0001 00000100",
		"E1FE0002 00000104",
		"E12F0001 00000100",
		"E12E0002 00000104",
	}
	if strings.Join(headers, "|") != strings.Join(want, "|") {
		t.Errorf("headers = %q, want %q", headers, want)
	}
}

func TestIf_SplitBeforeIfAtLimit(t *testing.T) {
	// 254 writes bring the running count to 254; the nested If makes it
	// 255 and is moved into the next part instead of opening here.
	src := []string{"If 0x100 =. 1"}
	for i := 0; i < 254; i++ {
		src = append(src, "W32 0x1000 1")
	}
	src = append(src, "If 0x104 =. 2", "W32 0x2000 2", "EndIf", "EndIf")

	out := compileLines(t, Options{}, src...)
	lines := strings.Split(out, "\n")
	if lines[0] != "E1FE0001 00000100" {
		t.Errorf("first header = %q", lines[0])
	}
	rest := lines[255:]
	want := []string{"E1020001 00000100", "E1010002 00000104", "20002000 00000002"}
	if strings.Join(rest, "|") != strings.Join(want, "|") {
		t.Errorf("second part = %q, want %q", rest, want)
	}
}

func TestIf_Errors(t *testing.T) {
	compileExpectError(t, script.MissEndIf, "If 0x100 =. 1", "W32 0x200 1")
	compileExpectError(t, script.WrongSyntax, "If 0x100 == 1", "EndIf")
	compileExpectError(t, script.WrongSyntax, "If", "EndIf")
	compileExpectError(t, script.IfScopeTooLarge,
		"If 0x100 =. 1",
		`SRW "`+strings.Repeat(`\n`, 300)+`"`,
		"EndIf",
	)
}

func TestMatchEndIf(t *testing.T) {
	cmds := CommandList([]string{"IF", "IF", "ENDIF", "W32", "ENDIF", "ENDIF"}, "m.txt")
	if got := matchEndIf(cmds, 1); got != 4 {
		t.Errorf("matchEndIf(1) = %d, want 4", got)
	}
	if got := matchEndIf(cmds, 2); got != 2 {
		t.Errorf("matchEndIf(2) = %d, want 2", got)
	}
	if got := matchEndIf(cmds[:2], 1); got != -1 {
		t.Errorf("unclosed = %d, want -1", got)
	}
}
