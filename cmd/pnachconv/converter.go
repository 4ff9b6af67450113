package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/intuitionamiga/clps2c/compiler"
)

// Direction selects which way a file is converted.
type Direction int

const (
	DirAuto    Direction = iota // decided from the input
	DirToPnach                  // raw pairs -> patch lines
	DirToRaw                    // patch lines -> raw pairs
)

// ParseDirection maps the -to flag value to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DirAuto, nil
	case "pnach":
		return DirToPnach, nil
	case "raw":
		return DirToRaw, nil
	}
	return DirAuto, fmt.Errorf("unknown direction %q (want auto, pnach or raw)", s)
}

// LineKind classifies one line of a code file.
type LineKind int

const (
	LineOther    LineKind = iota
	LineRaw               // AAAAAAAA VVVVVVVV
	LinePatch             // patch=1,EE,AAAAAAAA,extended,VVVVVVVV
	LineBadPatch          // starts like a patch line but does not parse
)

var (
	rawLine   = regexp.MustCompile(`^[0-9A-Fa-f]{8} [0-9A-Fa-f]{8}$`)
	patchLike = regexp.MustCompile(`(?i)^patch\s*=`)
)

// ClassifyLine reports what kind of line s is, ignoring surrounding blanks.
func ClassifyLine(s string) LineKind {
	s = strings.TrimSpace(s)
	switch {
	case rawLine.MatchString(s):
		return LineRaw
	case patchLike.MatchString(s):
		if _, _, ok := compiler.PnachPair(s); ok {
			return LinePatch
		}
		return LineBadPatch
	}
	return LineOther
}

// Converter rewrites code files between raw pairs and pnach patch lines.
type Converter struct {
	direction Direction
	title     string

	converted int
	copied    int
	errors    int
}

// NewConverter creates a Converter that picks the direction from its input.
func NewConverter() *Converter {
	return &Converter{direction: DirAuto}
}

// detect picks the direction for an auto converter: any patch line means
// the file is a pnach file.
func detect(lines []string) Direction {
	for _, l := range lines {
		switch ClassifyLine(l) {
		case LinePatch, LineBadPatch:
			return DirToRaw
		}
	}
	return DirToPnach
}

// ConvertLine converts one line in direction dir. Lines that are not codes
// are copied; malformed patch lines are replaced by an error comment.
func (c *Converter) ConvertLine(line string, dir Direction) string {
	trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
	switch kind := ClassifyLine(trimmed); {
	case dir == DirToPnach && kind == LineRaw:
		c.converted++
		return compiler.ConvertRawToPnach(strings.ToUpper(trimmed))
	case dir == DirToRaw && kind == LinePatch:
		addr, val, _ := compiler.PnachPair(trimmed)
		c.converted++
		return addr + " " + val
	case dir == DirToRaw && kind == LineBadPatch:
		c.errors++
		return "// ERROR: malformed patch line: " + trimmed
	}
	c.copied++
	return strings.TrimSuffix(line, "\r")
}

// ConvertFile converts a whole file. Raw to pnach output gets a
// gametitle line when a title is set.
func (c *Converter) ConvertFile(input string) string {
	lines := strings.Split(strings.TrimSuffix(input, "\n"), "\n")
	dir := c.direction
	if dir == DirAuto {
		dir = detect(lines)
	}

	var output []string
	if dir == DirToPnach && c.title != "" {
		output = append(output, "gametitle="+c.title, "")
	}
	for _, line := range lines {
		output = append(output, c.ConvertLine(line, dir))
	}
	return strings.Join(output, "\n") + "\n"
}

func (c *Converter) ConvertFileFromPath(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return c.ConvertFile(string(data)), nil
}
