// accumulate.go - Multi-term argument accumulators

package script

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------
// Multi-term arguments
// ---------------------------------------------------------------------
//
// An argument may continue over '+' tokens: `base +0x10 +off`. Each reader
// starts at Data[*i] and leaves *i on the first token it did not consume.

func current(cmd *Command, i *int) (string, error) {
	if *i >= len(cmd.Data) {
		return "", NewError(WrongSyntax, cmd)
	}
	return cmd.Data[*i], nil
}

// AddressInt sums an address and its '+' terms.
func AddressInt(cmd *Command, i *int) (int32, error) {
	tok, err := current(cmd, i)
	if err != nil {
		return 0, err
	}
	if !IsAddressValid(tok) {
		return 0, NewError(AddressInvalid, cmd)
	}
	sum, _ := ConvertAddress(tok)
	for *i++; *i < len(cmd.Data); *i++ {
		tok = cmd.Data[*i]
		if !strings.HasPrefix(tok, "+") {
			break
		}
		if !IsAddressValid(tok[1:]) {
			return 0, NewError(AddressInvalid, cmd)
		}
		v, _ := ConvertAddress(tok[1:])
		sum += v
	}
	return sum, nil
}

// Address is AddressInt rendered as the 7 hex digits that follow a code
// type nibble.
func Address(cmd *Command, i *int) (string, error) {
	v, err := AddressInt(cmd, i)
	if err != nil {
		return "", err
	}
	return Hex8(v)[1:], nil
}

// Addresses reads a pointer chain `base,off1,off2+x`. Every ',' starts a
// new element; the first token without a marker ends the chain. The base
// comes back as 7 digits, offsets as 8.
func Addresses(cmd *Command, i *int) ([]string, error) {
	tok, err := current(cmd, i)
	if err != nil {
		return nil, err
	}
	if !IsAddressValid(tok) {
		return nil, NewError(AddressInvalid, cmd)
	}
	var list []string
	acc, _ := ConvertAddress(tok)
	for *i++; *i < len(cmd.Data); *i++ {
		tok = cmd.Data[*i]
		if strings.HasPrefix(tok, ",") {
			list = append(list, Hex8(acc))
			acc = 0
		} else if !strings.HasPrefix(tok, "+") {
			list = append(list, Hex8(acc))
			acc = 0
			break
		}
		if !IsAddressValid(tok[1:]) {
			return nil, NewError(AddressInvalid, cmd)
		}
		v, _ := ConvertAddress(tok[1:])
		acc += v
	}
	if acc != 0 {
		list = append(list, Hex8(acc))
	}
	if len(list) == 0 {
		return nil, NewError(WrongSyntax, cmd)
	}
	list[0] = list[0][1:]
	return list, nil
}

// IntValueInt sums an int value and its '+' terms.
func IntValueInt(cmd *Command, i *int) (int32, error) {
	tok, err := current(cmd, i)
	if err != nil {
		return 0, err
	}
	if !IsIntValueValid(tok) {
		return 0, NewError(ValueInvalid, cmd)
	}
	sum, err := ConvertIntValue(tok)
	if err != nil {
		return 0, NewError(ValueInvalid, cmd)
	}
	for *i++; *i < len(cmd.Data); *i++ {
		tok = cmd.Data[*i]
		if !strings.HasPrefix(tok, "+") {
			break
		}
		if !IsIntValueValid(tok[1:]) {
			return 0, NewError(ValueInvalid, cmd)
		}
		v, err := ConvertIntValue(tok[1:])
		if err != nil {
			return 0, NewError(ValueInvalid, cmd)
		}
		sum += v
	}
	return sum, nil
}

// IntValue is IntValueInt as 8 hex digits.
func IntValue(cmd *Command, i *int) (string, error) {
	v, err := IntValueInt(cmd, i)
	if err != nil {
		return "", err
	}
	return Hex8(v), nil
}

// FloatValue returns the bit pattern of a float argument as 8 hex digits.
// Decimal '+' terms are added as floats to the running value; hex terms
// are collected and added to the final bit pattern as integers.
func FloatValue(cmd *Command, i *int) (string, error) {
	tok, err := current(cmd, i)
	if err != nil {
		return "", err
	}
	if !IsFloatValueValid(tok) {
		return "", NewError(ValueInvalid, cmd)
	}
	bits, err := ConvertFloatValue(tok)
	if err != nil {
		return "", NewError(ValueInvalid, cmd)
	}
	var raw []string
	for *i++; *i < len(cmd.Data); *i++ {
		tok = cmd.Data[*i]
		if !strings.HasPrefix(tok, "+") {
			break
		}
		term := tok[1:]
		if !IsFloatValueValid(term) {
			return "", NewError(ValueInvalid, cmd)
		}
		if isHexLiteral(term) {
			raw = append(raw, term)
			continue
		}
		v, err := ConvertFloatValue(term)
		if err != nil {
			return "", NewError(ValueInvalid, cmd)
		}
		bits = math.Float32bits(math.Float32frombits(v) + math.Float32frombits(bits))
	}
	for _, term := range raw {
		v, err := ConvertIntValue(term)
		if err != nil {
			return "", NewError(ValueInvalid, cmd)
		}
		bits += uint32(v)
	}
	return Hex8(int32(bits)), nil
}

func quoted(s string) bool {
	return len(s) > 1 && s[0] == '"' && s[len(s)-1] == '"'
}

// insideQuotes returns the text between the first and the last quote.
func insideQuotes(s string) string {
	first := strings.IndexByte(s, '"')
	last := strings.LastIndexByte(s, '"')
	if first < 0 || last <= first {
		return ""
	}
	return s[first+1 : last]
}

// appendText adds text to a value that may still carry its closing quote.
func appendText(value, text string) string {
	if strings.HasSuffix(value, `"`) {
		return strings.TrimRight(value, `"`) + text + `"`
	}
	return value + text
}

// StringValue joins a string argument: quoted strings and int terms
// chained with '+'. Consecutive int terms are summed and spliced in as
// decimal text before the next string term. The string must be the last
// argument of the command.
func StringValue(cmd *Command, i *int) (string, error) {
	tok, err := current(cmd, i)
	if err != nil {
		return "", err
	}
	var value string
	var sum uint32
	if strings.HasPrefix(tok, `"`) {
		value = tok
	} else {
		if !IsIntValueValid(tok) {
			return "", NewError(ValueInvalid, cmd)
		}
		v, err := ConvertUIntValue(tok)
		if err != nil {
			return "", NewError(ValueInvalid, cmd)
		}
		sum += v
	}
	for *i++; *i < len(cmd.Data); *i++ {
		tok = cmd.Data[*i]
		if !strings.HasPrefix(tok, "+") || tok == "+" {
			return "", NewError(WrongSyntax, cmd)
		}
		term := tok[1:]
		if term[0] != '"' {
			if !IsIntValueValid(term) {
				return "", NewError(ValueInvalid, cmd)
			}
			v, err := ConvertUIntValue(term)
			if err != nil {
				return "", NewError(ValueInvalid, cmd)
			}
			sum += v
			continue
		}
		if sum > 0 {
			value = appendText(value, strconv.FormatUint(uint64(sum), 10))
			sum = 0
		}
		if !quoted(term) {
			return "", NewError(MissingQuotes, cmd)
		}
		value = appendText(value, insideQuotes(term))
	}
	if sum > 0 {
		value = appendText(value, strconv.FormatUint(uint64(sum), 10))
	}
	if quoted(value) {
		value = insideQuotes(value)
	}
	return value, nil
}

// Unquote returns the text between the outer quotes of a literal such as
// an Include path, or an error when the quotes are missing.
func Unquote(s string) (string, error) {
	if !quoted(s) {
		return "", fmt.Errorf("%s: not quoted", s)
	}
	return insideQuotes(s), nil
}
