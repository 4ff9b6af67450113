// tokenizer.go - CLPS2C line tokenizer

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

import "strings"

// ---------------------------------------------------------------------
// Line tokenizer
// ---------------------------------------------------------------------
//
// At each position the scanner tries, in order:
//
//	(...)       a parenthesized group up to the last ')' of the line
//	"..."       a quoted string with \ escapes, possibly unterminated
//	+term       '+', blanks, then a quoted string or a bare run
//	,term       ',', an optional quote, blanks, then a run
//	word        a run of anything but blanks, '(', '+' and ','
//
// A position where nothing matches is skipped. Term boundaries are the next
// '+', ',', space or the end of the line; when a term cannot end on a
// boundary the scanner backs off the same way a backtracking regexp would.

// Tokenize splits a cleaned source line into its upper-cased type and the
// ordered argument tokens. Tokens keep their leading '+' or ',' marker.
func Tokenize(line string) (string, []string) {
	toks := scan(line, false)
	if len(toks) == 0 {
		return "", nil
	}
	return strings.ToUpper(toks[0]), toks[1:]
}

// SplitPlusTerms splits one call argument such as `base+0x10` into the
// word and '+' terms it is made of.
func SplitPlusTerms(s string) []string {
	return scan(s, true)
}

func scan(s string, plusOnly bool) []string {
	var out []string
	for i := 0; i < len(s); {
		var end int
		if plusOnly {
			end = matchPlus(s, i, false)
			if end < 0 {
				end = matchWord(s, i)
			}
		} else {
			end = matchParen(s, i)
			if end < 0 && s[i] == '"' {
				end = quotedEnds(s, i)[0]
			}
			if end < 0 {
				end = matchPlus(s, i, true)
			}
			if end < 0 {
				end = matchComma(s, i)
			}
			if end < 0 {
				end = matchWord(s, i)
			}
		}
		if end < 0 {
			i++
			continue
		}
		out = append(out, s[i:end])
		i = end
	}
	return out
}

func isBlank(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// atBoundary reports whether a '+' or ',' term may end at j.
func atBoundary(s string, j int) bool {
	return j == len(s) || s[j] == '+' || s[j] == ' ' || s[j] == ','
}

func matchParen(s string, i int) int {
	if s[i] != '(' {
		return -1
	}
	if j := strings.LastIndexByte(s, ')'); j > i {
		return j + 1
	}
	return -1
}

// quotedEnds lists the possible ends of a quoted string starting at s[i]
// in the order a backtracking match tries them. The first entry is the
// greedy match. A backslash either escapes the byte after it or stands
// alone, so both readings are walked.
func quotedEnds(s string, i int) []int {
	var ends []int
	seen := make([]bool, len(s)+2)
	visited := make([]bool, len(s)+1)
	add := func(e int) {
		if !seen[e] {
			seen[e] = true
			ends = append(ends, e)
		}
	}
	var walk func(p int)
	walk = func(p int) {
		if visited[p] {
			return
		}
		visited[p] = true
		if p < len(s) {
			if s[p] == '\\' && p+1 < len(s) && s[p+1] != '\n' {
				walk(p + 2)
			}
			if s[p] != '"' {
				walk(p + 1)
			} else {
				add(p + 1)
			}
		}
		add(p)
	}
	walk(i + 1)
	return ends
}

// lazyRun grows a run from k one byte at a time, never crossing a byte in
// stop, and returns the first end accepted by ok.
func lazyRun(s string, k int, stop string, ok func(int) bool) int {
	for j := k; j < len(s) && strings.IndexByte(stop, s[j]) < 0; j++ {
		if ok(j + 1) {
			return j + 1
		}
	}
	return -1
}

func matchPlus(s string, i int, emptyTerm bool) int {
	if s[i] != '+' {
		return -1
	}
	bound := func(j int) bool { return atBoundary(s, j) }
	ws := i + 1
	for ws < len(s) && isBlank(s[ws]) {
		ws++
	}
	for k := ws; k > i; k-- {
		if k < len(s) && s[k] == '"' {
			for _, e := range quotedEnds(s, k) {
				if bound(e) {
					return e
				}
			}
		} else if e := lazyRun(s, k, `+"`, bound); e >= 0 {
			return e
		}
		if emptyTerm && bound(k) {
			return k
		}
	}
	return -1
}

func matchComma(s string, i int) int {
	if s[i] != ',' {
		return -1
	}
	for _, quoted := range []bool{true, false} {
		start := i + 1
		if quoted {
			if start >= len(s) || s[start] != '"' {
				continue
			}
			start++
		}
		sp := start
		for sp < len(s) && s[sp] == ' ' {
			sp++
		}
		for k := sp; k >= start; k-- {
			e := lazyRun(s, k, `,"`, func(j int) bool {
				if !quoted {
					return atBoundary(s, j)
				}
				return j < len(s) && s[j] == '"' && atBoundary(s, j+1)
			})
			if e >= 0 {
				if quoted {
					e++
				}
				return e
			}
		}
	}
	return -1
}

func matchWord(s string, i int) int {
	j := i
	for j < len(s) && !isBlank(s[j]) && s[j] != '(' && s[j] != '+' && s[j] != ',' {
		j++
	}
	if j == i {
		return -1
	}
	return j
}
