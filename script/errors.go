// errors.go - Compile error kinds and diagnostic rendering

package script

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a compile failure.
type ErrorKind int

const (
	OK ErrorKind = iota
	UnknownCommand
	WrongSyntax
	AddressInvalid
	ValueInvalid
	MissEndIf
	MissAsmStart
	MissAsmEnd
	MissFunction
	MissEndFunction
	FunctionInsideFunction
	FunctionAlreadyDefined
	IncludeInsideFunction
	IncludeStackOverflow
	CallStackOverflow
	ArgumentCountMismatch
	MissingQuotes
	LengthNotDivisibleBy2
	LengthNotDivisibleBy4
	SetStackOverflow
	IfScopeTooLarge

	AsmUnknownMnemonic
	AsmWrongSyntax
	AsmUndefinedLabel
	AsmLabelAlreadyDefined
	AsmUnknownRegister
	AsmWrongDest
	AsmWrongInterlock
	AsmImmediateValueInvalid
	AsmShiftAmountValueInvalid
)

var kindInfo = [...]struct {
	name string
	msg  string
}{
	OK:                     {"OK", "No error."},
	UnknownCommand:         {"UNKNOWN_COMMAND", "The command is not part of the language. See the list of supported commands in the documentation."},
	WrongSyntax:            {"WRONG_SYNTAX", "The command's arguments do not follow its syntax. See the command list in the documentation."},
	AddressInvalid:         {"ADDRESS_INVALID", "The (ADDRESS) argument was invalid. An address is 1 to 8 hex digits, optionally negative and optionally prefixed with 0x."},
	ValueInvalid:           {"VALUE_INVALID", "The (VALUE) argument was invalid or out of range for this command."},
	MissEndIf:              {"MISS_ENDIF", "An \"If\" scope was opened but not closed. Every \"If\" needs a matching \"EndIf\"."},
	MissAsmStart:           {"MISS_ASM_START", "An \"ASM_END\" was found without a preceding \"ASM_START\"."},
	MissAsmEnd:             {"MISS_ASM_END", "An \"ASM_START\" scope was opened but not closed. Every \"ASM_START\" needs a matching \"ASM_END\"."},
	MissFunction:           {"MISS_FUNCTION", "An \"EndFunction\" was found without a preceding \"Function\"."},
	MissEndFunction:        {"MISS_ENDFUNCTION", "A \"Function\" scope was opened but not closed. Every \"Function\" needs a matching \"EndFunction\"."},
	FunctionInsideFunction: {"FUNCTION_COMMAND_INSIDE_FUNCTION_DEFINITION", "A \"Function\" command appears inside another \"Function\" definition. Function definitions cannot be nested."},
	FunctionAlreadyDefined: {"FUNCTION_ALREADY_DEFINED", "A function with the same (NAME) is already defined. A function can only be defined once."},
	IncludeInsideFunction:  {"INCLUDE_COMMAND_INSIDE_FUNCTION_DEFINITION", "An \"Include\" command appears inside a \"Function\" definition. Move the include outside of the function."},
	IncludeStackOverflow:   {"INCLUDE_STACK_OVERFLOW", "An \"Include\" command tries to include a file that is already being included.\nA file cannot include itself, directly or through other files."},
	CallStackOverflow:      {"CALL_STACK_OVERFLOW", "A \"Call\" command calls a function that is already being expanded.\nRecursive functions are not allowed."},
	ArgumentCountMismatch:  {"ARGUMENT_COUNT_MISMATCH", "The \"Call\" passes a different number of arguments than the \"Function\" definition declares."},
	MissingQuotes:          {"MISSING_QUOTES", "The argument must start and end with quotes."},
	LengthNotDivisibleBy2:  {"LENGTH_MUST_BE_DIVISIBLE_BY_2", "The length argument must be divisible by 2."},
	LengthNotDivisibleBy4:  {"LENGTH_MUST_BE_DIVISIBLE_BY_4", "The length argument must be divisible by 4."},
	SetStackOverflow:       {"SET_STACK_OVERFLOW", "A \"Set\" variable refers back to itself through its own values.\nVariable chains must not form a cycle."},
	IfScopeTooLarge:        {"IF_SCOPE_TOO_LARGE", "An \"If\" scope holds a command that produces more than 255 lines on its own, so the scope cannot be split."},

	AsmUnknownMnemonic:         {"ASM_UNKNOWN_MNEMONIC", "The assembler does not know this opcode. Not every R5900 instruction is supported."},
	AsmWrongSyntax:             {"ASM_WRONG_SYNTAX", "The assembler could not assemble the instruction. Check its operands."},
	AsmUndefinedLabel:          {"ASM_UNDEFINED_LABEL", "A branch refers to a label that is not defined in this assembly scope."},
	AsmLabelAlreadyDefined:     {"ASM_LABEL_ALREADY_DEFINED", "A label with the same name already exists in this assembly scope.\nLabels are case-insensitive."},
	AsmUnknownRegister:         {"ASM_UNKNOWN_REGISTER", "The instruction uses an unknown register."},
	AsmWrongDest:               {"ASM_WRONG_DEST", "The \"dest\" field is wrong. It should have length between 1 and 4 with letters x,y,z,w each once, in that order."},
	AsmWrongInterlock:          {"ASM_WRONG_INTERLOCK", "The \"interlock\" field is wrong. The only allowed suffix is \"i\"."},
	AsmImmediateValueInvalid:   {"ASM_IMMEDIATE_VALUE_INVALID", "The \"immediate\" field is wrong."},
	AsmShiftAmountValueInvalid: {"ASM_SHIFT_AMOUNT_VALUE_INVALID", "The \"shift amount\" field is wrong. The shift amount should be between 0x00 and 0x1F."},
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindInfo[k].name
}

// Message explains the kind to a script author.
func (k ErrorKind) Message() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return ""
	}
	return kindInfo[k].msg
}

// Error is a compile failure tied to the command that caused it.
type Error struct {
	Kind    ErrorKind
	Command *Command
}

// NewError returns an *Error for cmd.
func NewError(kind ErrorKind, cmd *Command) *Error {
	return &Error{Kind: kind, Command: cmd}
}

func (e *Error) Error() string {
	if e.Command == nil {
		return e.Kind.String()
	}
	file, idx := e.Command.Location()
	return fmt.Sprintf("%s at line %d in file %s: %s", e.Kind, idx+1, file, e.Command.FullLine)
}

// FormatDiagnostic renders the report shown in place of compiled output.
// Traceback frames are listed from the root file down to the error site.
func FormatDiagnostic(e *Error) string {
	var sb strings.Builder
	file, idx := "", 0
	line := ""
	if e.Command != nil {
		file, idx = e.Command.Location()
		line = e.Command.FullLine
	}
	fmt.Fprintf(&sb, "ERROR: %s at line %d in file %s\n", e.Kind, idx+1, file)
	sb.WriteString(e.Kind.Message())
	sb.WriteString("\n\nLine that produced the error:\n")
	sb.WriteString(line)
	sb.WriteString("\n\nTraceback:")
	if e.Command != nil {
		tb := e.Command.Traceback
		for i := len(tb) - 1; i >= 0; i-- {
			fmt.Fprintf(&sb, "\nat %s:%d - %s", tb[i].FilePath, tb[i].LineIdx+1, tb[i].FullLine)
		}
	}
	return sb.String()
}
