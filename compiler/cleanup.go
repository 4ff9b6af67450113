// cleanup.go - Source clean-up and command list building

package compiler

import (
	"os"
	"regexp"
	"strings"

	"github.com/intuitionamiga/clps2c/script"
)

// ---------------------------------------------------------------------
// Source clean-up
// ---------------------------------------------------------------------
//
// Both comment patterns also match string literals so that comment
// markers inside quotes survive: a match starting with '"' is kept as is.

var (
	blockComment = regexp.MustCompile(`(?s)("(?:\\.|[^"])*"?)|(/\*.*?(?:\*/|$))`)
	lineComment  = regexp.MustCompile(`("(?:\\.|[^"])*"?)|(//.*(?:\r\n|\n)?)`)
)

// TextCleanUp strips tabs and comments and trims every line. The number of
// lines never changes, so line indices stay valid for diagnostics.
func TextCleanUp(lines []string) []string {
	code := strings.ReplaceAll(strings.Join(lines, "\n"), "\t", "")

	code = blockComment.ReplaceAllStringFunc(code, func(m string) string {
		if strings.HasPrefix(m, `"`) {
			return m
		}
		return strings.Repeat("\n", strings.Count(m, "\n"))
	})
	code = lineComment.ReplaceAllStringFunc(code, func(m string) string {
		if strings.HasPrefix(m, `"`) {
			return m
		}
		if strings.HasSuffix(m, "\n") {
			return "\n"
		}
		return ""
	})

	out := strings.Split(code, "\n")
	for i, l := range out {
		out[i] = strings.TrimSpace(l)
	}
	return out
}

// CommandList tokenizes every non-empty line of path. Each command starts
// its traceback with its own line.
func CommandList(lines []string, path string) []*script.Command {
	var cmds []*script.Command
	for idx, line := range lines {
		if line == "" {
			continue
		}
		cmd := script.NewCommand(line)
		cmd.Traceback = []script.TraceEntry{{FilePath: path, FullLine: line, LineIdx: idx}}
		cmds = append(cmds, cmd)
	}
	return cmds
}

// splitLines breaks file content into lines without their terminators.
func splitLines(data []byte) []string {
	text := strings.TrimPrefix(string(data), "\uFEFF")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// readLines loads a script or include file and records it for watchers.
func (c *Compiler) readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c.files.Add(path)
	return splitLines(data), nil
}
