package script

import (
	"reflect"
	"testing"

	fuzz "github.com/google/gofuzz"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		typ  string
		data []string
	}{
		{"plain", "Write32 0x1000 5", "WRITE32", []string{"0x1000", "5"}},
		{"type upper-cased", "w8 x 1", "W8", []string{"x", "1"}},
		{"plus terms", "Write32 base +0x10 +off 1", "WRITE32", []string{"base", "+0x10", "+off", "1"}},
		{"glued plus terms", "Write32 base+0x10+off 1", "WRITE32", []string{"base", "+0x10", "+off", "1"}},
		{"plus with blanks", "Write32 base + 4 1", "WRITE32", []string{"base", "+ 4", "1"}},
		{"comma terms", "add $t0,$t1,$t2", "ADD", []string{"$t0", ",$t1", ",$t2"}},
		{"comma with blank", "addiu $sp, $sp, -0x10", "ADDIU", []string{"$sp", ", $sp", ", -0x10"}},
		{"comma paren", "lw $t0,0x10($t1)", "LW", []string{"$t0", ",0x10($t1)"}},
		{"paren group", "Call Add(0x1,\"a,b\")", "CALL", []string{"Add", "(0x1,\"a,b\")"}},
		{"quoted string", `WriteString 0x100 "hello world"`, "WRITESTRING", []string{"0x100", `"hello world"`}},
		{"escaped quote", `SendRaw "a\"b c"`, "SENDRAW", []string{`"a\"b c"`}},
		{"unterminated string", `WS 0x100 "abc def`, "WS", []string{"0x100", `"abc def`}},
		{"plus string", `WS 0x100 "a"+"b c"+5`, "WS", []string{"0x100", `"a"`, `+"b c"`, "+5"}},
		{"quoted comma term", `x a,"b c"`, "X", []string{"a", `,"b c"`}},
		{"if line", "If 0x1000 =. 5 && 0x2000 !: 6", "IF", []string{"0x1000", "=.", "5", "&&", "0x2000", "!:", "6"}},
		{"label", "loop: addiu $t0,1", "LOOP:", []string{"addiu", "$t0", ",1"}},
		{"lone plus", "x +", "X", []string{"+"}},
		{"plus string ends past a backslash pair", `WriteString 0x100 "a"+"b\\"x`, "WRITESTRING", []string{"0x100", `"a"`, `+"b\\"x`}},
		{"plus string ends on a lone backslash", `x +"1a\ "1`, "X", []string{`+"1a\`, `"1`}},
		{"plus string keeps its marker", `b+" \,")1x`, "B", []string{`+" \`, `")1x`}},
		{"plus string as type", `+"\ ")+ b)a`, `+"\`, []string{`")+ b)a`}},
		{"empty", "", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, data := Tokenize(tt.line)
			if typ != tt.typ {
				t.Errorf("type = %q, want %q", typ, tt.typ)
			}
			if len(data) == 0 && len(tt.data) == 0 {
				return
			}
			if !reflect.DeepEqual(data, tt.data) {
				t.Errorf("data = %q, want %q", data, tt.data)
			}
		})
	}
}

func TestTokenize_PlusTermBacksOff(t *testing.T) {
	// The bare term cannot run into a quote, so only "+ " is taken.
	_, data := Tokenize(`x +  y"`)
	want := []string{"+ ", `y"`}
	if !reflect.DeepEqual(data, want) {
		t.Fatalf("data = %q, want %q", data, want)
	}
}

func TestSplitPlusTerms(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a+b", []string{"a", "+b"}},
		{"0x100 + off", []string{"0x100", "+ off"}},
		{`"x"+"y"`, []string{`"x"`, `+"y"`}},
		{"single", []string{"single"}},
		{`+"1a\ "1`, []string{`+"1a\`, `"1`}},
		{`b+" \,")1x`, []string{"b", `+" \`, `")1x`}},
	}
	for _, tt := range tests {
		if got := SplitPlusTerms(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitPlusTerms(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize_RandomLinesDoNotPanic(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for n := 0; n < 2000; n++ {
		var line string
		f.Fuzz(&line)
		Tokenize(line)
		SplitPlusTerms(line)
		IsAddressValid(line)
		IsFloatValueValid(line)
	}
}
