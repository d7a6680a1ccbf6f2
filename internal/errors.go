package internal

import "fmt"

// ErrorKind identifies the reason a program failed to compile or run. Each
// kind is itself an error, so errors returned by this package can be tested
// with errors.Is(err, StackUnderflow) and so on.
type ErrorKind int

// Error kinds. The first group arises while parsing, the second while linking
// or executing a program.
const (
	// NoError is the zero ErrorKind. It is never returned.
	NoError ErrorKind = iota

	// MalformedNumber indicates a number literal with no terminating
	// linefeed, a missing sign, or a magnitude that overflows 64 bits.
	MalformedNumber
	// MalformedLabel indicates a label literal with no terminating linefeed.
	MalformedLabel
	// UnexpectedEOF indicates that the source ended in the middle of a
	// command.
	UnexpectedEOF
	// UnrecognizedCommand indicates a token sequence that begins no command.
	UnrecognizedCommand

	// StackUnderflow indicates an operation needing more operands than the
	// stack holds.
	StackUnderflow
	// IndexOutOfRange indicates a copy or slide argument outside the stack.
	IndexOutOfRange
	// UnboundHeapAddress indicates a retrieve from an address never stored.
	UnboundHeapAddress
	// DivisionByZero indicates div or mod with a zero divisor.
	DivisionByZero
	// DuplicateLabel indicates two marks with the same label.
	DuplicateLabel
	// UndefinedLabel indicates a jump or call to a label with no mark.
	UndefinedLabel
	// ReturnWithoutCall indicates a return with an empty call stack.
	ReturnWithoutCall
	// IOError indicates a failed read or write, including end of input and
	// non-numeric input to readnum.
	IOError

	// StepLimit indicates that a VM executed its maximum number of
	// instructions.
	StepLimit
	// Canceled indicates that the context passed to Run was done.
	Canceled
)

var kindNames = [...]string{
	"no error",
	"malformed number",
	"malformed label",
	"unexpected end of input",
	"unrecognized command",
	"stack underflow",
	"index out of range",
	"unbound heap address",
	"division by zero",
	"duplicate label",
	"undefined label",
	"return without call",
	"i/o error",
	"step limit exceeded",
	"canceled",
}

// String returns a short description of the error kind.
func (k ErrorKind) String() string {
	if k < NoError || k > Canceled {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

// Error returns the description of the kind prefixed with "whitespace: ".
func (k ErrorKind) Error() string {
	return "whitespace: " + k.String()
}

// IsSyntax returns whether the kind arises while parsing.
func (k ErrorKind) IsSyntax() bool {
	return MalformedNumber <= k && k <= UnrecognizedCommand
}

// A SyntaxError is an error found while parsing source text.
type SyntaxError struct {
	Kind ErrorKind
	// Pos is the position of the token at which parsing failed. For errors
	// at the end of input, it is the position just past the last character.
	Pos Pos
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("whitespace: %v: %s", e.Pos, e.Kind.String())
}

// Unwrap returns the error kind.
func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

// A RuntimeError is an error raised while linking or executing a program.
type RuntimeError struct {
	Kind ErrorKind
	// IP is the index of the instruction that failed.
	IP int
	// Cmd is the instruction that failed.
	Cmd Command
	// Err is the underlying cause, if any, e.g. an I/O error.
	Err error
}

func (e *RuntimeError) Error() string {
	s := fmt.Sprintf("whitespace: %s at instruction %d", e.Kind.String(), e.IP)
	if e.Cmd.Op != BadOp {
		s += " (" + e.Cmd.Op.String() + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the error kind and the underlying cause.
func (e *RuntimeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
