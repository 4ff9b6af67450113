// values.go - Address, integer and float literal parsing

package script

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------
// Literal forms
// ---------------------------------------------------------------------

var (
	addressRe = regexp.MustCompile(`^-?(0x)?[0-9A-Fa-f]{1,8}$`)
	intRe     = regexp.MustCompile(`^-?0x[0-9A-Fa-f]{1,8}$|^-?[0-9]+$`)
	floatRe   = regexp.MustCompile(`^-?0x[0-9A-Fa-f]{1,8}$|^-?[0-9]+(\.[0-9]+)?$|^(?i:-?infinity|nan)$`)
	aobRe     = regexp.MustCompile(`^([0-9A-Fa-f]{2} )*[0-9A-Fa-f]{2}$`)
)

// IsAddressValid accepts 1-8 hex digits with optional '-' and "0x".
func IsAddressValid(s string) bool { return addressRe.MatchString(s) }

// IsIntValueValid accepts "0x"/"-0x" hex or a signed decimal.
func IsIntValueValid(s string) bool { return intRe.MatchString(s) }

// IsFloatValueValid accepts the int forms, decimals with a fraction,
// INFINITY, -INFINITY and NAN.
func IsFloatValueValid(s string) bool { return floatRe.MatchString(s) }

// IsAOBValid accepts space-separated hex byte pairs.
func IsAOBValid(s string) bool { return aobRe.MatchString(s) }

// hexMagnitude parses the digits after an optional '-' and "0x".
func hexMagnitude(s string) (neg bool, v uint32, err error) {
	neg = strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "0x")
	u, err := strconv.ParseUint(s, 16, 32)
	return neg, uint32(u), err
}

// ConvertAddress parses an address literal. A leading '-' negates the
// magnitude; it is never a two's complement digit string.
func ConvertAddress(s string) (int32, error) {
	neg, v, err := hexMagnitude(s)
	if err != nil {
		return 0, err
	}
	if neg {
		return -int32(v), nil
	}
	return int32(v), nil
}

func isHexLiteral(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "-0x")
}

// ConvertIntValue parses an int literal. Hex digits are taken as a 32-bit
// pattern, decimals must fit a signed 32-bit integer.
func ConvertIntValue(s string) (int32, error) {
	if isHexLiteral(s) {
		neg, v, err := hexMagnitude(s)
		if err != nil {
			return 0, err
		}
		if neg {
			return -int32(v), nil
		}
		return int32(v), nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

// ConvertUIntValue is ConvertIntValue for unsigned sums.
func ConvertUIntValue(s string) (uint32, error) {
	if isHexLiteral(s) {
		neg, v, err := hexMagnitude(s)
		if neg {
			v = -v
		}
		return v, err
	}
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

// nanBits is the single precision NaN the reference tool emits.
const nanBits = 0xFFC00000

// ConvertFloatValue returns the IEEE-754 single precision pattern of s.
// Hex literals already are the pattern; decimals are numbers to encode.
func ConvertFloatValue(s string) (uint32, error) {
	if isHexLiteral(s) {
		v, err := ConvertIntValue(s)
		return uint32(v), err
	}
	if strings.EqualFold(s, "nan") {
		return nanBits, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return math.Float32bits(float32(f)), nil
}

// Hex8 renders v as 8 upper-case hex digits, two's complement for negatives.
func Hex8(v int32) string {
	return fmt.Sprintf("%08X", uint32(v))
}
