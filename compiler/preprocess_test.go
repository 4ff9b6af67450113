package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/intuitionamiga/clps2c/script"
)

func TestPreprocess_SetShadowing(t *testing.T) {
	out := compileLines(t, Options{},
		"Set x 5",
		"Write32 0x1000 x",
		"Set x 10",
		"Write32 0x1004 x",
	)
	expectOutput(t, out, "20001000 00000005", "20001004 0000000A")
}

func TestPreprocess_SetChains(t *testing.T) {
	out := compileLines(t, Options{},
		"Set base 0x100",
		"Set field base+0x10",
		"Set ptr base,0x20",
		"W32 field+4 1",
		"WP32 ptr 2",
	)
	expectOutput(t, out,
		"20000114 00000001",
		"60000100 00000002",
		"00020001 00000020",
	)
}

func TestPreprocess_SetErrors(t *testing.T) {
	compileExpectError(t, script.WrongSyntax, "Set x")
	compileExpectError(t, script.SetStackOverflow, "Set a b", "Set b a", "W32 0x100 a")
}

func TestPreprocess_Call(t *testing.T) {
	tests := []struct {
		name string
		src  []string
		want []string
	}{
		{
			"arguments are substituted as text",
			[]string{"Function Add(a,b)", "Write32 0x2000 a+b", "EndFunction", "Call Add(0x1,0x2)"},
			[]string{"20002000 00000003"},
		},
		{
			"argument with terms",
			[]string{"Function Add(a, b)", "Write32 0x2000 a+b", "EndFunction", "Call Add(0x10+0x1, 2)"},
			[]string{"20002000 00000013"},
		},
		{
			"no arguments",
			[]string{"Function One()", "W32 0x100 1", "EndFunction", "Call One()", "Call One()"},
			[]string{"20000100 00000001", "20000100 00000001"},
		},
		{
			"string argument with comma",
			[]string{"Function Text(s)", "WS 0x100 s", "EndFunction", `Call Text("a,b")`},
			[]string{"10000100 00002C61", "00000102 00000062"},
		},
		{
			"nested call",
			[]string{
				"Function Inner(v)", "Write32 0x3000 v", "EndFunction",
				"Function Outer(x)", "Call Inner(x)", "EndFunction",
				"Call Outer(7)",
			},
			[]string{"20003000 00000007"},
		},
		{
			"nested call with terms",
			[]string{
				"Function Inner(a, v)", "Write32 a v", "EndFunction",
				"Function Outer(base)", "Call Inner(base+4, 1)", "EndFunction",
				"Call Outer(0x100)",
			},
			[]string{"20000104 00000001"},
		},
		{
			"parameter named like a global",
			[]string{
				"Set addr 0x200",
				"Function Put(addr)", "W32 addr 1", "EndFunction",
				"Call Put(addr)",
			},
			[]string{"20000200 00000001"},
		},
		{
			"function defined after use",
			[]string{"Call Late()", "Function Late()", "W8 0x1 2", "EndFunction"},
			[]string{"00000001 00000002"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectOutput(t, compileLines(t, Options{}, tt.src...), tt.want...)
		})
	}
}

func TestPreprocess_CallSetsSeeCallSite(t *testing.T) {
	// Sets inside a body resolve at the position the body is inlined to.
	out := compileLines(t, Options{},
		"Function Put()", "W32 0x100 v", "EndFunction",
		"Set v 1",
		"Call Put()",
		"Set v 2",
		"Call Put()",
	)
	expectOutput(t, out, "20000100 00000001", "20000100 00000002")
}

func TestPreprocess_FunctionErrors(t *testing.T) {
	tests := []struct {
		name string
		kind script.ErrorKind
		src  []string
	}{
		{"missing end", script.MissEndFunction, []string{"Function F()", "W32 0x100 1"}},
		{"missing start", script.MissFunction, []string{"W32 0x100 1", "EndFunction"}},
		{"end before start", script.MissFunction, []string{"EndFunction", "Function F()", "EndFunction"}},
		{"bare function", script.WrongSyntax, []string{"Function", "EndFunction"}},
		{"no parens", script.WrongSyntax, []string{"Function F", "EndFunction"}},
		{"duplicate", script.FunctionAlreadyDefined, []string{"Function F()", "EndFunction", "Function F()", "EndFunction"}},
		{"nested function", script.FunctionInsideFunction, []string{"Function F()", "Function G()", "EndFunction"}},
		{"include inside", script.IncludeInsideFunction, []string{"Function F()", `Include "x.txt"`, "EndFunction"}},
		{"unknown function", script.ValueInvalid, []string{"Call Nope()"}},
		{"call syntax", script.WrongSyntax, []string{"Function F()", "EndFunction", "Call F"}},
		{"argument count", script.ArgumentCountMismatch, []string{"Function F(a,b)", "EndFunction", "Call F(1)"}},
		{"paren in argument", script.WrongSyntax, []string{"Function F(a)", "EndFunction", "Call F(1,(2))"}},
		{"direct recursion", script.CallStackOverflow, []string{"Function F()", "Call F()", "EndFunction", "Call F()"}},
		{"mutual recursion", script.CallStackOverflow, []string{
			"Function F()", "Call G()", "EndFunction",
			"Function G()", "Call F()", "EndFunction",
			"Call F()",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compileExpectError(t, tt.kind, tt.src...)
		})
	}
}

func TestPreprocess_CallTraceback(t *testing.T) {
	se := compileExpectError(t, script.UnknownCommand,
		"Function F()",
		"BOGUS",
		"EndFunction",
		"Call F()",
	)
	tb := se.Command.Traceback
	if len(tb) != 2 || tb[0].LineIdx != 1 || tb[1].LineIdx != 3 {
		t.Errorf("traceback = %+v", tb)
	}
}

func TestCallArgs(t *testing.T) {
	tests := []struct {
		arg  string
		want []string
	}{
		{"()", []string{""}},
		{"(1, 2 ,3)", []string{"1", "2", "3"}},
		{`("a,b", c)`, []string{`"a,b"`, "c"}},
		{`("say \"x,y\"",1)`, []string{`"say \"x,y\""`, "1"}},
		{"(base+4,0x10)", []string{"base+4", "0x10"}},
	}
	for _, tt := range tests {
		cmd := &script.Command{FullLine: "Call F" + tt.arg, Type: "CALL", Data: []string{"F", tt.arg}}
		got, err := callArgs(cmd)
		if err != nil {
			t.Errorf("%s: %v", tt.arg, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("callArgs(%s) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}

// writeFiles creates files under a temp dir and returns the dir.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestPreprocess_Include(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.txt":      "Include \"lib.txt\"\r\nInclude \"sub/inner.txt\"\r\nW32 0x104 2\r\n",
		"lib.txt":       "Set v 1\nW32 0x100 v\n",
		"sub/inner.txt": "Include \"leaf.txt\"\n",
		"sub/leaf.txt":  "W8 0x200 v\n",
	})
	c := New(Options{})
	out, err := c.CompileFile(filepath.Join(dir, "main.txt"))
	if err != nil {
		t.Fatal(err)
	}
	expectOutput(t, out, "20000100 00000001", "00000200 00000001", "20000104 00000002")

	if files := c.Files(); len(files) != 4 {
		t.Errorf("Files() = %q, want 4 entries", files)
	}
}

func TestPreprocess_IncludeErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"self.txt":    `Include "self.txt"`,
		"a.txt":       `Include "b.txt"`,
		"b.txt":       `Include "a.txt"`,
		"missing.txt": `Include "nowhere.txt"`,
		"folder.txt":  `Include "sub"`,
		"sub/x.txt":   "",
		"noquote.txt": `Include lib.txt`,
		"twoargs.txt": `Include "a.txt" "b.txt"`,
		"bad.txt":     "Include \"broken.txt\"\n",
		"broken.txt":  "\nW32 zz 1\n",
	})
	tests := []struct {
		file string
		kind script.ErrorKind
	}{
		{"self.txt", script.IncludeStackOverflow},
		{"a.txt", script.IncludeStackOverflow},
		{"missing.txt", script.ValueInvalid},
		{"folder.txt", script.ValueInvalid},
		{"noquote.txt", script.MissingQuotes},
		{"twoargs.txt", script.WrongSyntax},
		{"bad.txt", script.AddressInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := New(Options{}).CompileFile(filepath.Join(dir, tt.file))
			var se *script.Error
			if !errors.As(err, &se) || se.Kind != tt.kind {
				t.Fatalf("got %v, want %s", err, tt.kind)
			}
		})
	}

	// Diagnostics point into the included file and list the chain root first.
	_, err := New(Options{}).CompileFile(filepath.Join(dir, "bad.txt"))
	var se *script.Error
	if !errors.As(err, &se) {
		t.Fatal(err)
	}
	file, idx := se.Command.Location()
	if filepath.Base(file) != "broken.txt" || idx != 1 {
		t.Errorf("location = %s:%d", file, idx)
	}
	report := script.FormatDiagnostic(se)
	root := strings.Index(report, "bad.txt:1")
	site := strings.Index(report, "broken.txt:2")
	if root == -1 || site == -1 || root > site {
		t.Errorf("traceback order wrong:\n%s", report)
	}
}

func TestPreprocess_IncludeInsideFunctionBodyIsNotExpanded(t *testing.T) {
	// Expansion skips function bodies, so the body check reports the Include.
	compileExpectError(t, script.IncludeInsideFunction,
		"Function F()", `Include "whatever.txt"`, "EndFunction")
}

func TestPreprocess_SymbolFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"game.sym": strings.Join([]string{
			"00100000 main",
			"00100010 Player_Update,1C",
			"00100040 .byt:4",
			"zzzz broken",
			"00100050",
		}, "\n"),
		"main.txt": "Include \"game.sym\"\nW32 Player_Update 1\nW32 main+4 2\n",
	})
	out, err := New(Options{}).CompileFile(filepath.Join(dir, "main.txt"))
	if err != nil {
		t.Fatal(err)
	}
	expectOutput(t, out, "20100010 00000001", "20100004 00000002")
}

func TestSymbols(t *testing.T) {
	cmds := CommandList([]string{"00100000 main", "00100010 f,1C", "00100040 .asc:8", "nothex x"}, "s.sym")
	got := symbols(cmds)
	if len(got) != 2 {
		t.Fatalf("got %d commands, want 2", len(got))
	}
	for i, want := range [][]string{{"main", "00100000"}, {"f", "00100010"}} {
		if got[i].Type != "SET" || !slices.Equal(got[i].Data, want) {
			t.Errorf("cmd %d = %s %q, want SET %q", i, got[i].Type, got[i].Data, want)
		}
	}
}
