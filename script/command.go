// command.go - Command model of a tokenized CLPS2C source line

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

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package script

import "slices"

// TraceEntry locates one source line of a command's origin.
type TraceEntry struct {
	FilePath string
	FullLine string
	LineIdx  int
}

// Command is one tokenized directive of a script.
//
// Commands are rewritten in place as the compiler expands includes, calls
// and Sets. Clone returns an independent copy whenever a command has to be
// duplicated.
type Command struct {
	FullLine string
	ID       int
	Weight   int // address/value lines produced, used by the If packer
	Type     string
	Data     []string
	Output   string
	Rendered bool // Output was produced by a handler, even if empty

	// Traceback lists the origin of the command innermost first: the
	// command's own line, then the Include or Call lines that brought it in.
	Traceback []TraceEntry

	// CallChain names the functions whose inlining produced this command.
	CallChain []string
}

// NewCommand tokenizes line into a fresh command without a traceback.
func NewCommand(line string) *Command {
	typ, data := Tokenize(line)
	return &Command{FullLine: line, Type: typ, Data: data}
}

// Derive builds a command from line that keeps the identity of src: its
// source text, ID and traceback, so errors still point at src's line.
// With keepData the new command takes src.Data[1:] as its arguments instead
// of tokenizing them from line.
func Derive(line string, src *Command, keepData bool) *Command {
	typ, data := Tokenize(line)
	if keepData {
		data = nil
		if len(src.Data) > 1 {
			data = slices.Clone(src.Data[1:])
		}
	}
	return &Command{
		FullLine:  src.FullLine,
		ID:        src.ID,
		Type:      typ,
		Data:      data,
		Traceback: slices.Clone(src.Traceback),
		CallChain: slices.Clone(src.CallChain),
	}
}

// WordCount counts the type and every argument token.
func (c *Command) WordCount() int {
	return len(c.Data) + 1
}

// Clone returns a deep copy sharing no slices with c.
func (c *Command) Clone() *Command {
	n := *c
	n.Data = slices.Clone(c.Data)
	n.Traceback = slices.Clone(c.Traceback)
	n.CallChain = slices.Clone(c.CallChain)
	return &n
}

// AppendTraceback records that c was brought in by parent.
func (c *Command) AppendTraceback(parent *Command) {
	c.Traceback = append(c.Traceback, parent.Traceback...)
}

// SetOutput stores a handler result.
func (c *Command) SetOutput(out string) {
	c.Output = out
	c.Rendered = true
}

// Location returns the innermost source position of the command.
func (c *Command) Location() (string, int) {
	if len(c.Traceback) == 0 {
		return "", 0
	}
	return c.Traceback[0].FilePath, c.Traceback[0].LineIdx
}
