// pnach.go - Raw and pnach code conversion

package compiler

import (
	"regexp"
	"strings"
)

var (
	rawPair   = regexp.MustCompile(`([0-9A-F]{8}) ([0-9A-F]{8})`)
	pnachLine = regexp.MustCompile(`(?i)^patch\s*=\s*\d+\s*,\s*EE\s*,\s*([0-9A-F]{8})\s*,\s*extended\s*,\s*([0-9A-F]{8})\s*$`)
)

// ConvertRawToPnach rewrites every "AAAAAAAA VVVVVVVV" pair as a pnach
// patch line. Anything else is left alone.
func ConvertRawToPnach(source string) string {
	return rawPair.ReplaceAllString(source, "patch=1,EE,${1},extended,${2}")
}

// PnachPair parses one "patch=1,EE,AAAAAAAA,extended,VVVVVVVV" line into
// its address and value, upper-cased.
func PnachPair(line string) (string, string, bool) {
	m := pnachLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", false
	}
	return strings.ToUpper(m[1]), strings.ToUpper(m[2]), true
}

// ConvertPnachToRaw turns extended EE patch lines back into raw pairs.
// Other lines are kept unchanged.
func ConvertPnachToRaw(source string) string {
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		if addr, val, ok := PnachPair(strings.TrimSuffix(l, "\r")); ok {
			lines[i] = addr + " " + val
		}
	}
	return strings.Join(lines, "\n")
}
