// preprocess.go - Include, Function, Call and Set expansion

package compiler

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/intuitionamiga/clps2c/script"
)

// ---------------------------------------------------------------------
// Include
// ---------------------------------------------------------------------

// expandIncludes replaces every Include outside a function definition with
// the commands of the included file. Scanning resumes at the first
// inserted command, so nested includes expand too.
func (c *Compiler) expandIncludes(cmds []*script.Command) ([]*script.Command, error) {
	inFunction := false
	for i := 0; i < len(cmds); i++ {
		cmd := cmds[i]
		switch {
		case cmd.Type == "FUNCTION":
			inFunction = true
		case cmd.Type == "ENDFUNCTION":
			inFunction = false
		case cmd.Type == "INCLUDE" && !inFunction:
			included, err := c.include(cmd)
			if err != nil {
				return nil, err
			}
			for _, inc := range included {
				inc.AppendTraceback(cmd)
			}
			cmds = slices.Replace(cmds, i, i+1, included...)
			i--
		}
	}
	return cmds, nil
}

// samePath compares two file paths after making them absolute.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func (c *Compiler) include(cmd *script.Command) ([]*script.Command, error) {
	if cmd.WordCount() != 2 {
		return nil, script.NewError(script.WrongSyntax, cmd)
	}
	path, err := script.Unquote(cmd.Data[0])
	if err != nil {
		return nil, script.NewError(script.MissingQuotes, cmd)
	}

	// Relative paths start from the folder of the file holding the Include.
	if !filepath.IsAbs(path) {
		parent, _ := cmd.Location()
		path = filepath.Join(filepath.Dir(parent), path)
	}

	for _, tb := range cmd.Traceback {
		if samePath(tb.FilePath, path) {
			return nil, script.NewError(script.IncludeStackOverflow, cmd)
		}
	}

	if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
		return nil, script.NewError(script.ValueInvalid, cmd)
	}
	lines, err := c.readLines(path)
	if err != nil {
		return nil, script.NewError(script.ValueInvalid, cmd)
	}
	c.logf("include %s", path)

	included := CommandList(TextCleanUp(lines), path)
	if filepath.Ext(path) == ".sym" {
		included = symbols(included)
	}
	return included, nil
}

// symbols turns the lines of a symbol file into Set commands:
//
//	00100000 label
//	00100008 function,1C
//	00100040 .byt:4
//
// Labels and functions become `Set name address`. Data directives and
// lines without a valid address are dropped without error.
func symbols(cmds []*script.Command) []*script.Command {
	out := cmds[:0]
	for _, cmd := range cmds {
		if len(cmd.Data) == 0 || strings.HasPrefix(cmd.Data[0], ".") {
			continue
		}
		address := cmd.Type
		if !script.IsAddressValid(address) {
			continue
		}
		cmd.Type = "SET"
		if len(cmd.Data) == 1 {
			cmd.Data = append(cmd.Data, address)
		} else {
			cmd.Data = append(cmd.Data[:1], address)
		}
		out = append(out, cmd)
	}
	return out
}

// ---------------------------------------------------------------------
// Function
// ---------------------------------------------------------------------

// Function is a reusable block of commands inlined by Call.
type Function struct {
	Name     string
	Args     []string
	Commands []*script.Command
	Command  *script.Command // the Function line
}

var functionHeader = regexp.MustCompile(`(?i)Function (\w+)\(([^)]*)\)`)

func parseFunction(cmd *script.Command) (*Function, bool) {
	m := functionHeader.FindStringSubmatch(cmd.FullLine)
	if m == nil {
		return nil, false
	}
	fn := &Function{Name: m[1], Command: cmd}
	if m[2] != "" {
		for _, a := range strings.Split(m[2], ",") {
			fn.Args = append(fn.Args, strings.TrimSpace(a))
		}
	}
	return fn, true
}

// indexOf returns the index of the first command of type typ at or after
// from, or -1.
func indexOf(cmds []*script.Command, typ string, from int) int {
	for i := max(from, 0); i < len(cmds); i++ {
		if cmds[i].Type == typ {
			return i
		}
	}
	return -1
}

// extractFunctions registers every Function..EndFunction block and
// removes it from the command stream.
func (c *Compiler) extractFunctions(cmds []*script.Command) ([]*script.Command, error) {
	for i := 0; i < len(cmds); {
		start := indexOf(cmds, "FUNCTION", i)
		end := indexOf(cmds, "ENDFUNCTION", i)
		switch {
		case start == -1 && end == -1:
			return cmds, nil
		case end != -1 && (start == -1 || end < start):
			return nil, script.NewError(script.MissFunction, cmds[end])
		case end == -1:
			return nil, script.NewError(script.MissEndFunction, cmds[start])
		}

		def := cmds[start]
		if def.WordCount() == 1 {
			return nil, script.NewError(script.WrongSyntax, def)
		}
		fn, ok := parseFunction(def)
		if !ok {
			return nil, script.NewError(script.WrongSyntax, def)
		}
		if _, dup := c.functions[fn.Name]; dup {
			return nil, script.NewError(script.FunctionAlreadyDefined, def)
		}
		c.functions[fn.Name] = fn

		for _, body := range cmds[start+1 : end] {
			switch body.Type {
			case "FUNCTION":
				return nil, script.NewError(script.FunctionInsideFunction, body)
			case "INCLUDE":
				return nil, script.NewError(script.IncludeInsideFunction, body)
			}
			fn.Commands = append(fn.Commands, body)
		}
		c.logf("function %s(%s): %d commands", fn.Name, strings.Join(fn.Args, ","), len(fn.Commands))

		cmds = slices.Delete(cmds, start, end+1)
		i = start
	}
	return cmds, nil
}

// ---------------------------------------------------------------------
// Call
// ---------------------------------------------------------------------

var callHeader = regexp.MustCompile(`(?i)Call (\w+)(\(.*\))`)

func renumber(cmds []*script.Command) {
	for i, cmd := range cmds {
		cmd.ID = i
	}
}

// expandCalls inlines every Call until none is left. IDs are reassigned
// after each expansion.
func (c *Compiler) expandCalls(cmds []*script.Command) ([]*script.Command, error) {
	for at := indexOf(cmds, "CALL", 0); at != -1; at = indexOf(cmds, "CALL", at) {
		call := cmds[at]
		body, err := c.inline(call)
		if err != nil {
			return nil, err
		}
		for _, b := range body {
			if b.Type != "CALL" || len(b.Data) == 0 {
				continue
			}
			if b.Data[0] == call.Data[0] || slices.Contains(b.CallChain, b.Data[0]) {
				return nil, script.NewError(script.CallStackOverflow, b)
			}
		}
		cmds = slices.Replace(cmds, at, at+1, body...)
		renumber(cmds)
	}
	return cmds, nil
}

// inline returns a fresh copy of the body of the function call invokes,
// with the call's arguments substituted for the parameter names.
func (c *Compiler) inline(call *script.Command) ([]*script.Command, error) {
	m := callHeader.FindStringSubmatch(call.FullLine)
	if m == nil || len(call.Data) < 2 {
		return nil, script.NewError(script.WrongSyntax, call)
	}
	fn, ok := c.functions[m[1]]
	if !ok {
		return nil, script.NewError(script.ValueInvalid, call)
	}

	args, err := callArgs(call)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 && args[0] == "" {
		args = nil
	}
	if len(args) != len(fn.Args) {
		return nil, script.NewError(script.ArgumentCountMismatch, call)
	}

	// Parameters are bound in a table of their own, visible to this body only.
	params := script.NewSets()
	for i, name := range fn.Args {
		if args[i] == name {
			continue
		}
		values := []string{args[i]}
		if strings.Contains(args[i], "+") {
			values = script.SplitPlusTerms(args[i])
		}
		params.Add(script.LocalVar{Name: name, Values: values})
	}

	body := make([]*script.Command, len(fn.Commands))
	chain := append(slices.Clone(call.CallChain), fn.Name)
	for i, src := range fn.Commands {
		b := src.Clone()
		b.ID = 0
		b.AppendTraceback(call)
		b.CallChain = slices.Clone(chain)
		body[i] = b
	}
	if params.Len() == 0 {
		return body, nil
	}

	if err := params.ApplyToCommands(body); err != nil {
		return nil, err
	}

	// A nested Call keeps its argument list in one token; substitute the
	// parameter names inside it by hand.
	for _, b := range body {
		if b.Type != "CALL" || len(b.Data) < 2 {
			continue
		}
		nested, err := callArgs(b)
		if err != nil {
			return nil, err
		}
		for _, arg := range nested {
			for _, term := range script.SplitPlusTerms(arg) {
				name := strings.TrimSpace(strings.TrimPrefix(term, "+"))
				if !params.Declared(name) {
					continue
				}
				values, err := params.Resolve(name, b.ID)
				if err != nil {
					return nil, script.NewError(script.SetStackOverflow, b)
				}
				b.Data[1] = replaceName(b.Data[1], name, strings.Join(values, ""))
			}
		}
	}
	return body, nil
}

// replaceName replaces whole-word occurrences of name in s.
func replaceName(s, name, with string) string {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	return re.ReplaceAllLiteralString(s, with)
}

// callArgs splits the parenthesized argument list of a Call. Commas inside
// string literals do not split; a parenthesis outside one is an error.
func callArgs(call *script.Command) ([]string, error) {
	if len(call.Data) < 2 {
		return nil, script.NewError(script.WrongSyntax, call)
	}
	list := strings.TrimRight(strings.TrimLeft(call.Data[1], "("), ")")

	var args []string
	var cur strings.Builder
	inString, escape := false, false
	for _, ch := range list {
		switch {
		case ch == ',' && !inString:
			args = append(args, cur.String())
			cur.Reset()
			continue
		case ch == '\\' && inString:
			escape = true
		case ch == '"' && !escape:
			inString = !inString
		default:
			if !inString && (ch == '(' || ch == ')') {
				return nil, script.NewError(script.WrongSyntax, call)
			}
			escape = false
		}
		cur.WriteRune(ch)
	}
	args = append(args, cur.String())

	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return args, nil
}

// ---------------------------------------------------------------------
// Set
// ---------------------------------------------------------------------

// collectSets moves every Set command into the variable table, then
// resolves variable names in the remaining commands.
func (c *Compiler) collectSets(cmds []*script.Command) ([]*script.Command, error) {
	out := make([]*script.Command, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd.Type != "SET" {
			out = append(out, cmd)
			continue
		}
		if cmd.WordCount() < 3 {
			return nil, script.NewError(script.WrongSyntax, cmd)
		}
		c.sets.Add(script.LocalVar{Name: cmd.Data[0], Values: slices.Clone(cmd.Data[1:]), ID: cmd.ID})
	}
	c.logf("%d set definitions", c.sets.Len())

	if err := c.sets.ApplyToCommands(out); err != nil {
		return nil, err
	}
	return out, nil
}
