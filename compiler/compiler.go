// compiler.go - CLPS2C script compiler

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

CLPS2C compiler: turns a CLPS2C script into PS2 raw or pnach cheat codes
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later

Pipeline, each stage stopping at the first error:

  1. clean-up       tabs and comments removed, lines trimmed
  2. Include        included files spliced in (.sym files become Sets)
  3. Function       definitions registered and removed
  4. IDs            every command numbered by position
  5. Call           function bodies inlined, arguments substituted
  6. Set            variables collected and resolved by position
  7. handlers       every command rendered, asm scopes assembled
  8. If packer      && chains nested, scopes split to fit nn, nn filled

Output is one "AAAAAAAA VVVVVVVV" pair per line, or pnach patch lines.
*/

package compiler

import (
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/intuitionamiga/clps2c/assembler"
	"github.com/intuitionamiga/clps2c/script"
)

// Options selects the output flavour.
type Options struct {
	DType   bool // D-type conditionals instead of E-type
	Pnach   bool // patch=1,EE,... lines instead of raw pairs
	Listing bool // record an assembly listing of every asm scope

	// Logf receives progress messages. Nil discards them.
	Logf func(format string, args ...any)
}

// Compiler compiles one script at a time. Each Compile call starts from a
// clean state; a Compiler must not be shared between goroutines.
type Compiler struct {
	opts      Options
	functions map[string]*Function
	sets      *script.Sets
	encoding  encoding.Encoding
	ee        *assembler.EEAssembler
	files     mapset.Set[string]
	listing   []assembler.ListingEntry
}

// New creates a compiler with the given options.
func New(opts Options) *Compiler {
	c := &Compiler{opts: opts, ee: assembler.NewEEAssembler()}
	c.ee.SetListingMode(opts.Listing)
	c.reset()
	return c
}

func (c *Compiler) reset() {
	c.functions = make(map[string]*Function)
	c.sets = script.NewSets()
	c.encoding = unicode.UTF8
	c.files = mapset.NewSet[string]()
	c.listing = nil
}

func (c *Compiler) logf(format string, args ...any) {
	if c.opts.Logf != nil {
		c.opts.Logf(format, args...)
	}
}

// Files lists every file read by the last compile, sorted.
func (c *Compiler) Files() []string {
	files := c.files.ToSlice()
	slices.Sort(files)
	return files
}

// Listing returns the assembly listing of the last compile. It is empty
// unless Options.Listing is set.
func (c *Compiler) Listing() []assembler.ListingEntry {
	return c.listing
}

// CompileFile reads and compiles the script at path.
func (c *Compiler) CompileFile(path string) (string, error) {
	c.reset()
	lines, err := c.readLines(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	c.logf("read %s: %d lines", path, len(lines))
	return c.compile(lines, path)
}

// Compile compiles the lines of a script. path names the script in
// diagnostics and is the base for relative Include paths.
func (c *Compiler) Compile(lines []string, path string) (string, error) {
	c.reset()
	return c.compile(lines, path)
}

func (c *Compiler) compile(lines []string, path string) (string, error) {
	cmds := CommandList(TextCleanUp(lines), path)
	if len(cmds) == 0 {
		return "", nil
	}

	cmds, err := c.expandIncludes(cmds)
	if err != nil {
		return "", err
	}
	if cmds, err = c.extractFunctions(cmds); err != nil {
		return "", err
	}
	renumber(cmds)
	if cmds, err = c.expandCalls(cmds); err != nil {
		return "", err
	}
	if cmds, err = c.collectSets(cmds); err != nil {
		return "", err
	}
	c.logf("%d commands after preprocessing", len(cmds))

	if err := c.render(cmds); err != nil {
		return "", err
	}
	if indexOf(cmds, "IF", 0) != -1 {
		if cmds, err = c.packIfs(cmds); err != nil {
			return "", err
		}
	}

	var sb strings.Builder
	first := true
	for _, cmd := range cmds {
		if cmd.Output == "" {
			continue
		}
		out := cmd.Output
		if first {
			out, first = strings.TrimPrefix(out, "\n"), false
		}
		sb.WriteString(out)
	}
	if c.opts.Pnach {
		return ConvertRawToPnach(sb.String()), nil
	}
	return sb.String(), nil
}

// render runs the handler of every command. Commands between ASM_START
// and ASM_END are collected and assembled as a whole at ASM_END.
func (c *Compiler) render(cmds []*script.Command) error {
	var scope []*script.Command
	inAsm := false
	var base uint32

	for _, cmd := range cmds {
		if inAsm {
			if cmd.Type != "ASM_END" {
				scope = append(scope, cmd)
				continue
			}
			out, err := c.asmEnd(cmd, scope, base)
			if err != nil {
				return err
			}
			cmd.SetOutput(out)
			scope, inAsm, base = nil, false, 0
			continue
		}

		if cmd.Type == "ASM_START" {
			b, err := asmStart(cmd)
			if err != nil {
				return err
			}
			cmd.SetOutput("")
			inAsm, base = true, b
			continue
		}

		out, err := c.handle(cmd)
		if err != nil {
			return err
		}
		cmd.SetOutput(out)
	}

	if inAsm {
		return script.NewError(script.MissAsmEnd, cmds[len(cmds)-1])
	}
	return nil
}
