// ifpack.go - If scope packing and splitting

package compiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/intuitionamiga/clps2c/script"
)

// ---------------------------------------------------------------------
// If packer
// ---------------------------------------------------------------------
//
// A conditional code skips at most 0xFF lines (its nn field). The packer
// turns && chains into nested scopes, splits scopes holding more than
// 0xFF lines into sibling scopes, then fills in every nn.

const maxIfLines = 0xFF

// matchEndIf returns the index of the EndIf closing the scope whose body
// starts at from, or -1.
func matchEndIf(cmds []*script.Command, from int) int {
	depth := 0
	for j := from; j < len(cmds); j++ {
		switch cmds[j].Type {
		case "IF":
			depth++
		case "ENDIF":
			if depth == 0 {
				return j
			}
			depth--
		}
	}
	return -1
}

// scopeWeight sums the lines of the If at idx, nested scopes included.
// An unclosed scope weighs 0.
func scopeWeight(cmds []*script.Command, idx int) int {
	end := matchEndIf(cmds, idx+1)
	if end == -1 {
		return 0
	}
	w := 0
	for _, cmd := range cmds[idx+1 : end+1] {
		w += cmd.Weight
	}
	return w
}

func (c *Compiler) packIfs(cmds []*script.Command) ([]*script.Command, error) {
	for i := indexOf(cmds, "IF", 0); i != -1; i = indexOf(cmds, "IF", i+1) {
		if matchEndIf(cmds, i+1) == -1 {
			return nil, script.NewError(script.MissEndIf, cmds[i])
		}
	}

	cmds, err := c.expandAnd(cmds)
	if err != nil {
		return nil, err
	}
	if cmds, err = splitIfs(cmds); err != nil {
		return nil, err
	}

	for i, cmd := range cmds {
		if cmd.Type == "IF" {
			cmd.Output = strings.ReplaceAll(cmd.Output, "nn", fmt.Sprintf("%02X", scopeWeight(cmds, i)))
		}
	}
	return cmds, nil
}

// nthIndex returns the index of the n-th (0-based) token equal to tok.
func nthIndex(data []string, tok string, n int) int {
	for i, d := range data {
		if d == tok {
			if n == 0 {
				return i
			}
			n--
		}
	}
	return -1
}

func nextAndIf(cmds []*script.Command, from int) int {
	for i := from; i < len(cmds); i++ {
		if cmds[i].Type == "IF" && strings.Contains(cmds[i].FullLine, "&&") {
			return i
		}
	}
	return -1
}

// expandAnd rewrites `If A && B ... EndIf` into `If A / If B ... EndIf /
// EndIf`. Each extra If is a copy of the original cut down to one clause.
func (c *Compiler) expandAnd(cmds []*script.Command) ([]*script.Command, error) {
	for at := nextAndIf(cmds, 0); at != -1; {
		n := strings.Count(cmds[at].FullLine, "&&")
		for k := 0; k < n; k++ {
			extra := cmds[at].Clone()
			extra.Data = extra.Data[nthIndex(extra.Data, "&&", k)+1:]
			if j := slices.Index(extra.Data, "&&"); j != -1 {
				extra.Data = extra.Data[:j]
			}
			out, err := c.ifCode(extra)
			if err != nil {
				return nil, err
			}
			extra.SetOutput(out)
			cmds = slices.Insert(cmds, at+1+k, extra)
		}

		if end := matchEndIf(cmds, at+n+1); end != -1 {
			closers := make([]*script.Command, n)
			for k := range closers {
				closers[k] = cmds[end].Clone()
			}
			cmds = slices.Insert(cmds, end, closers...)
		}
		at = nextAndIf(cmds, at+n+1)
	}
	return cmds, nil
}

// splitIfs closes and reopens the open scopes wherever the running line
// count of an oversized scope would pass maxIfLines. An If reached with
// exactly maxIfLines counted is pushed to the next part together with its
// own line.
func splitIfs(cmds []*script.Command) ([]*script.Command, error) {
	for i := indexOf(cmds, "IF", 0); i != -1; i = indexOf(cmds, "IF", i+1) {
		if scopeWeight(cmds, i) <= maxIfLines {
			continue
		}

		open := []*script.Command{cmds[i]}
		w := 0
	scan:
		for j := i + 1; j < len(cmds); j++ {
			w += cmds[j].Weight
			if w > maxIfLines {
				// The reopened scopes must be smaller than the one being
				// split, or the split would repeat forever.
				if w-cmds[j].Weight <= len(open)-1 {
					return nil, script.NewError(script.IfScopeTooLarge, cmds[j])
				}
				patch := make([]*script.Command, 0, 2*len(open))
				for range open {
					patch = append(patch, script.NewCommand("ENDIF"))
				}
				for _, o := range open {
					patch = append(patch, o.Clone())
				}
				cmds = slices.Insert(cmds, j, patch...)
				break scan
			}

			switch cmds[j].Type {
			case "IF":
				if w == maxIfLines {
					j-- // counted again on the next pass, which splits
					continue
				}
				open = append(open, cmds[j])
			case "ENDIF":
				open = open[:len(open)-1]
				if len(open) == 0 {
					break scan
				}
			}
		}
	}
	return cmds, nil
}
