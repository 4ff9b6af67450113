package script

import (
	"strings"
	"testing"
)

func TestErrorKind_Names(t *testing.T) {
	tests := map[ErrorKind]string{
		WrongSyntax:                "WRONG_SYNTAX",
		FunctionInsideFunction:     "FUNCTION_COMMAND_INSIDE_FUNCTION_DEFINITION",
		LengthNotDivisibleBy4:      "LENGTH_MUST_BE_DIVISIBLE_BY_4",
		AsmShiftAmountValueInvalid: "ASM_SHIFT_AMOUNT_VALUE_INVALID",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("%d.String() = %s, want %s", int(k), k, want)
		}
		if k.Message() == "" {
			t.Errorf("%s has no message", k)
		}
	}
}

func TestFormatDiagnostic_RootFirst(t *testing.T) {
	cmd := NewCommand("Write32 zz 1")
	cmd.Traceback = []TraceEntry{
		{FilePath: "lib.txt", FullLine: "Write32 zz 1", LineIdx: 4},
		{FilePath: "main.txt", FullLine: `Include "lib.txt"`, LineIdx: 0},
	}
	out := FormatDiagnostic(NewError(AddressInvalid, cmd))

	if !strings.HasPrefix(out, "ERROR: ADDRESS_INVALID at line 5 in file lib.txt\n") {
		t.Fatalf("header wrong:\n%s", out)
	}
	root := strings.Index(out, "at main.txt:1 - Include \"lib.txt\"")
	site := strings.Index(out, "at lib.txt:5 - Write32 zz 1")
	if root < 0 || site < 0 || root > site {
		t.Fatalf("traceback order wrong:\n%s", out)
	}
	if !strings.Contains(out, "Line that produced the error:\nWrite32 zz 1") {
		t.Fatalf("missing source line:\n%s", out)
	}
}
