// sets.go - Set variables resolved by source position

package script

import (
	"errors"
	"slices"
	"sort"
	"strings"
	"unicode"
)

// LocalVar is one Set definition: a name bound to raw value tokens at the
// position of the defining command.
type LocalVar struct {
	Name   string
	Values []string
	ID     int
}

// Sets indexes Set definitions per name, each list ordered by ID, so a
// lookup finds the closest definition at or before a command position.
type Sets struct {
	byName map[string][]LocalVar
	count  int
}

var errSetCycle = errors.New("set cycle")

// NewSets returns an empty table.
func NewSets() *Sets {
	return &Sets{byName: make(map[string][]LocalVar)}
}

// Add registers v. Definitions sharing an ID keep their insertion order.
func (s *Sets) Add(v LocalVar) {
	list := s.byName[v.Name]
	at := sort.Search(len(list), func(k int) bool { return list[k].ID > v.ID })
	s.byName[v.Name] = slices.Insert(list, at, v)
	s.count++
}

// Len counts every definition.
func (s *Sets) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Declared reports whether name has a definition anywhere in the script.
func (s *Sets) Declared(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.byName[name]
	return ok
}

// Lookup returns the definition of name with the greatest ID not above
// atID. Among definitions sharing that ID the first one wins.
func (s *Sets) Lookup(name string, atID int) (LocalVar, bool) {
	if s == nil {
		return LocalVar{}, false
	}
	list := s.byName[name]
	k := sort.Search(len(list), func(k int) bool { return list[k].ID > atID }) - 1
	if k < 0 {
		return LocalVar{}, false
	}
	for k > 0 && list[k-1].ID == list[k].ID {
		k--
	}
	return list[k], true
}

// Resolve expands name as seen from position atID. Values naming other
// variables are expanded recursively, looked up from the same atID. An
// undefined name yields no values.
func (s *Sets) Resolve(name string, atID int) ([]string, error) {
	return s.resolve(name, atID, nil)
}

func (s *Sets) resolve(name string, atID int, active []string) ([]string, error) {
	if slices.Contains(active, name) {
		return nil, errSetCycle
	}
	v, ok := s.Lookup(name, atID)
	if !ok {
		return nil, nil
	}
	active = append(active, name)
	out := make([]string, 0, len(v.Values))
	for _, tok := range v.Values {
		marker, bare := splitMarker(tok)
		if s.Declared(bare) {
			sub, err := s.resolve(bare, atID, active)
			if err != nil {
				return nil, err
			}
			if len(sub) > 0 {
				sub[0] = marker + sub[0]
				out = append(out, sub...)
				continue
			}
		}
		out = append(out, tok)
	}
	return out, nil
}

// splitMarker separates a leading '+' or ',' from the name after it.
func splitMarker(tok string) (string, string) {
	if tok == "" || (tok[0] != '+' && tok[0] != ',') {
		return "", tok
	}
	return tok[:1], strings.TrimLeftFunc(tok[1:], unicode.IsSpace)
}

// ApplyToCommand replaces every argument naming a variable with its values
// as seen from cmd's position. The first value takes over the argument's
// '+' or ',' marker. Other marked arguments lose the blanks after their
// marker.
func (s *Sets) ApplyToCommand(cmd *Command) error {
	for i := 0; i < len(cmd.Data); i++ {
		marker, bare := splitMarker(cmd.Data[i])
		if s.Declared(bare) {
			vals, err := s.resolve(bare, cmd.ID, nil)
			if err != nil {
				return NewError(SetStackOverflow, cmd)
			}
			if len(vals) > 0 {
				vals[0] = marker + vals[0]
				for j := 1; j < len(vals); j++ {
					if m, rest := splitMarker(vals[j]); m != "" {
						vals[j] = m + rest
					}
				}
				cmd.Data = slices.Replace(cmd.Data, i, i+1, vals...)
				i += len(vals) - 1
				continue
			}
		}
		if marker != "" {
			cmd.Data[i] = marker + bare
		}
	}
	return nil
}

// ApplyToCommands runs ApplyToCommand over cmds, stopping at the first error.
func (s *Sets) ApplyToCommands(cmds []*Command) error {
	for _, c := range cmds {
		if err := s.ApplyToCommand(c); err != nil {
			return err
		}
	}
	return nil
}
