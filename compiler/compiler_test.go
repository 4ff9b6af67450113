package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/diff"

	"github.com/intuitionamiga/clps2c/script"
)

// compileLines compiles source lines and fails the test on error.
func compileLines(t *testing.T, opts Options, lines ...string) string {
	t.Helper()
	out, err := New(opts).Compile(lines, "test.txt")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return out
}

// compileExpectError compiles source lines and checks the error kind.
func compileExpectError(t *testing.T, kind script.ErrorKind, lines ...string) *script.Error {
	t.Helper()
	_, err := New(Options{}).Compile(lines, "test.txt")
	if err == nil {
		t.Fatalf("expected %s, compile succeeded", kind)
	}
	var se *script.Error
	if !errors.As(err, &se) {
		t.Fatalf("expected *script.Error, got %T: %v", err, err)
	}
	if se.Kind != kind {
		t.Fatalf("got %s, want %s (%v)", se.Kind, kind, err)
	}
	return se
}

func expectOutput(t *testing.T, got string, want ...string) {
	t.Helper()
	w := strings.Join(want, "\n")
	if got != w {
		t.Errorf("output mismatch (-want +got):\n%s", diff.Diff(w, got))
	}
}

func TestCompiler_Writes(t *testing.T) {
	tests := []struct {
		name string
		src  []string
		want []string
	}{
		{"write32", []string{"Write32 0x1000 5"}, []string{"20001000 00000005"}},
		{"write8 truncates", []string{"W8 20E71C00 0x1FF"}, []string{"00E71C00 000000FF"}},
		{"write16", []string{"W16 100 0x12345"}, []string{"10000100 00002345"}},
		{"address terms", []string{"W32 0x100+0x10+4 1"}, []string{"20000114 00000001"}},
		{"negative value", []string{"W32 0x100 -1"}, []string{"20000100 FFFFFFFF"}},
		{"float decimal", []string{"WF 0x100 1"}, []string{"20000100 3F800000"}},
		{"float bits", []string{"WF 0x100 0x3F800000"}, []string{"20000100 3F800000"}},
		{"string", []string{`WS 0x100 "park"`}, []string{"20000100 6B726170"}},
		{"string remainder", []string{`WS 0x100 "hello"`}, []string{"20000100 6C6C6568", "00000104 0000006F"}},
		{"string escapes", []string{`WS 0x100 "a\0b\n"`}, []string{"20000100 0A620061"}},
		{"bytes remainder 3", []string{`WB 0x100 "00 11 22 33 44 55 66"`},
			[]string{"20000100 33221100", "10000104 00005544", "00000106 00000066"}},
		{"bytes remainder 2", []string{`WB 0x100 "AA BB"`}, []string{"10000100 0000BBAA"}},
		{"copy", []string{"CB 0x100 0x200 0x10"}, []string{"50000100 00000010", "00000200 00000000"}},
		{"fill8", []string{"F8 0x100 0xAB 0x20"}, []string{"80000100 00200001", "000000AB 00000000"}},
		{"fill16", []string{"F16 0x100 0x1234 0x20"}, []string{"80000100 00100001", "10001234 00000000"}},
		{"fill32", []string{"F32 0x100 0xDEADBEEF 0x20"}, []string{"40000100 00080001", "DEADBEEF 00000000"}},
		{"increment8", []string{"I8 0x100 1"}, []string{"30000001 00000100"}},
		{"increment16", []string{"I16 0x100 0x1234"}, []string{"30201234 00000100"}},
		{"increment32", []string{"I32 0x100 0x10000"}, []string{"30400000 00000100", "00010000 00000000"}},
		{"decrement8", []string{"D8 0x100 1"}, []string{"30100001 00000100"}},
		{"decrement16", []string{"Decrement16 0x100 2"}, []string{"30300002 00000100"}},
		{"decrement32", []string{"D32 0x100 3"}, []string{"30500000 00000100", "00000003 00000000"}},
		{"or8", []string{"OR8 0x100 0x0F"}, []string{"70000100 0000000F"}},
		{"and16", []string{"AND16 0x100 0xFF00"}, []string{"70000100 0030FF00"}},
		{"xor8", []string{"XOR8 0x100 0x1"}, []string{"70000100 00400001"}},
		{"xor16", []string{"XOR16 0x100 0x1"}, []string{"70000100 00500001"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectOutput(t, compileLines(t, Options{}, tt.src...), tt.want...)
		})
	}
}

func TestCompiler_WritePointer(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"8-bit", "WP8 0x100,0x4 0xFF", []string{"60000100 000000FF", "00000001 00000004"}},
		{"16-bit odd rest", "WP16 0x100,0x4,0x8 1",
			[]string{"60000100 00000001", "00010002 00000004", "00000008 00000000"}},
		{"32-bit even rest", "WP32 0x100,0x10,0x20,0x30 0x5",
			[]string{"60000100 00000005", "00020003 00000010", "00000020 00000030"}},
		{"float", "WPF 0x100,0x4 1", []string{"60000100 3F800000", "00020001 00000004"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectOutput(t, compileLines(t, Options{}, tt.src), tt.want...)
		})
	}
}

func TestCompiler_Weights(t *testing.T) {
	c := New(Options{})
	cmds := CommandList([]string{"WP32 0x100,1,2,3,4 5", `WS 0x0 "hello"`, `SR "x"`, `SRW "a\nb"`}, "w.txt")
	for _, cmd := range cmds {
		if _, err := c.handle(cmd); err != nil {
			t.Fatalf("%s: %v", cmd.FullLine, err)
		}
	}
	want := []int{4, 2, 0, 2}
	for i, cmd := range cmds {
		if cmd.Weight != want[i] {
			t.Errorf("%s: weight %d, want %d", cmd.FullLine, cmd.Weight, want[i])
		}
	}
}

func TestCompiler_SendRaw(t *testing.T) {
	expectOutput(t, compileLines(t, Options{}, "W32 0x100 1", `SR "X"`), "20000100 00000001X")
	expectOutput(t, compileLines(t, Options{}, `SRW "a\nb"`, "W32 0x100 1"), "a", "b", "20000100 00000001")
	expectOutput(t, compileLines(t, Options{}, `SendRaw "say \"hi\"\t"`), "say \"hi\"\t")
}

func TestCompiler_SetEncoding(t *testing.T) {
	expectOutput(t, compileLines(t, Options{}, "SetEncoding UTF-16", `WS 0x100 "ab"`), "20000100 00620061")
	expectOutput(t, compileLines(t, Options{}, "SE UTF-16", "SE UTF-8", `WS 0x100 "ab"`), "10000100 00006261")
	compileExpectError(t, script.ValueInvalid, "SetEncoding ASCII")
	compileExpectError(t, script.WrongSyntax, "SetEncoding")
}

func TestCompiler_Errors(t *testing.T) {
	tests := []struct {
		name string
		kind script.ErrorKind
		src  []string
	}{
		{"unknown command", script.UnknownCommand, []string{"FOO 1 2"}},
		{"missing value", script.WrongSyntax, []string{"W32 0x100"}},
		{"extra argument", script.WrongSyntax, []string{"W32 0x100 1 2"}},
		{"bad address", script.AddressInvalid, []string{"W32 0xZZ 1"}},
		{"bad value", script.ValueInvalid, []string{"W32 0x100 0xZZ"}},
		{"bad bytes", script.ValueInvalid, []string{`WB 0x100 "0 11"`}},
		{"string missing quotes", script.MissingQuotes, []string{`WS 0x100 "a"+"b`}},
		{"pointer without offset", script.WrongSyntax, []string{"WP32 0x100 5"}},
		{"negative copy", script.ValueInvalid, []string{"CB 0x100 0x200 -1"}},
		{"fill8 too long", script.ValueInvalid, []string{"F8 0x100 1 0x10000"}},
		{"fill16 odd", script.LengthNotDivisibleBy2, []string{"F16 0x100 1 3"}},
		{"fill16 too long", script.ValueInvalid, []string{"F16 0x100 1 0x20000"}},
		{"fill32 unaligned", script.LengthNotDivisibleBy4, []string{"F32 0x100 1 6"}},
		{"fill32 too long", script.ValueInvalid, []string{"F32 0x100 1 0x40000"}},
		{"asm end alone", script.MissAsmStart, []string{"ASM_END"}},
		{"asm end missing", script.MissAsmEnd, []string{"ASM_START 0x100000", "nop"}},
		{"asm start no address", script.WrongSyntax, []string{"ASM_START", "ASM_END"}},
		{"asm end with data", script.WrongSyntax, []string{"ASM_START 0x100000", "nop", "ASM_END 1"}},
		{"asm error", script.AsmUnknownMnemonic, []string{"ASM_START 0x100000", "frob $t0", "ASM_END"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compileExpectError(t, tt.kind, tt.src...)
		})
	}
}

func TestCompiler_ErrorLocation(t *testing.T) {
	se := compileExpectError(t, script.UnknownCommand,
		"/* header",
		"   comment */",
		"W32 0x100 1",
		"BOGUS",
	)
	file, idx := se.Command.Location()
	if file != "test.txt" || idx != 3 {
		t.Errorf("location = %s:%d, want test.txt:3", file, idx)
	}
	report := script.FormatDiagnostic(se)
	if !strings.Contains(report, "UNKNOWN_COMMAND at line 4 in file test.txt") {
		t.Errorf("report:\n%s", report)
	}
}

func TestCompiler_Asm(t *testing.T) {
	c := New(Options{Listing: true})
	out, err := c.Compile([]string{
		"Set value 0x8123",
		"ASM_START 0x100000",
		"li $t0,value",
		"jr $ra",
		"nop",
		"ASM_END",
		"W32 0x200 1",
	}, "asm.txt")
	if err != nil {
		t.Fatal(err)
	}
	expectOutput(t, out,
		"20100000 34088123",
		"20100004 03E00008",
		"20100008 00000000",
		"20000200 00000001",
	)

	listing := c.Listing()
	if len(listing) != 3 {
		t.Fatalf("listing has %d entries, want 3", len(listing))
	}
	if listing[0].Address != 0x20100000 || listing[0].Word != 0x34088123 {
		t.Errorf("listing[0] = %v", listing[0])
	}
}

func TestCompiler_AsmScopeWeight(t *testing.T) {
	out := compileLines(t, Options{},
		"If 0x100 =: 1",
		"ASM_START 0x100000",
		"nop",
		"nop",
		"ASM_END",
		"EndIf",
	)
	expectOutput(t, out, "E0020001 00000100", "20100000 00000000", "20100004 00000000")
}

func TestCompiler_Pnach(t *testing.T) {
	out := compileLines(t, Options{Pnach: true}, "W32 0x100 1", "CB 0x100 0x200 4")
	expectOutput(t, out,
		"patch=1,EE,20000100,extended,00000001",
		"patch=1,EE,50000100,extended,00000004",
		"patch=1,EE,00000200,extended,00000000",
	)
}

func TestCompiler_EmptyScript(t *testing.T) {
	if out := compileLines(t, Options{}, "", "// nothing", "   "); out != "" {
		t.Errorf("output = %q, want empty", out)
	}
	if out := compileLines(t, Options{}, "Set a 1"); out != "" {
		t.Errorf("output = %q, want empty", out)
	}
}

func TestCompiler_Reuse(t *testing.T) {
	c := New(Options{})
	if _, err := c.Compile([]string{"Function F()", "EndFunction"}, "a.txt"); err != nil {
		t.Fatal(err)
	}
	// Functions from the first run must not leak into the second.
	if _, err := c.Compile([]string{"Function F()", "EndFunction"}, "b.txt"); err != nil {
		t.Fatalf("second compile: %v", err)
	}
}
