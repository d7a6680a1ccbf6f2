package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is the operation performed by a command.
type Op int

// Operations, grouped by family.
const (
	BadOp Op = iota

	// Stack manipulation.

	Push    // push n
	Dup     // duplicate the top
	Swap    // swap the top two
	Discard // discard the top
	Copy    // copy the nth item to the top
	Slide   // remove n items below the top; n may be up to len-1

	// Arithmetic.

	Add
	Sub
	Mul
	Div
	Mod

	// Heap access.

	Store    // pop value, pop address, bind
	Retrieve // pop address, push its value

	// Flow control.

	Mark     // define a label
	Call     // call a subroutine
	Jump     // jump unconditionally
	JumpZero // pop; jump if zero
	JumpNeg  // pop; jump if negative
	Return   // return from a subroutine
	Exit     // end the program

	// I/O.

	OutChar  // pop and write a character
	OutNum   // pop and write a number
	ReadChar // pop an address, read a character there
	ReadNum  // pop an address, read a number there

	numOps
)

// Family is the group to which an operation belongs. The family is selected
// by the first one or two tokens of a command.
type Family int

// Command families.
const (
	NoFamily Family = iota
	StackFamily
	ArithFamily
	HeapFamily
	FlowFamily
	IOFamily
)

func (f Family) String() string {
	switch f {
	case StackFamily:
		return "stack"
	case ArithFamily:
		return "arithmetic"
	case HeapFamily:
		return "heap"
	case FlowFamily:
		return "flow"
	case IOFamily:
		return "i/o"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// opInfo describes the syntax of an operation.
type opInfo struct {
	name   string
	family Family
	tokens string // S, T, L
	arg    argKind
}

type argKind int

const (
	noArg argKind = iota
	numberArg
	labelArg
)

var ops = [numOps]opInfo{
	BadOp:    {"badop", NoFamily, "", noArg},
	Push:     {"push", StackFamily, "SS", numberArg},
	Dup:      {"dup", StackFamily, "SLS", noArg},
	Swap:     {"swap", StackFamily, "SLT", noArg},
	Discard:  {"discard", StackFamily, "SLL", noArg},
	Copy:     {"copy", StackFamily, "STS", numberArg},
	Slide:    {"slide", StackFamily, "STL", numberArg},
	Add:      {"add", ArithFamily, "TSSS", noArg},
	Sub:      {"sub", ArithFamily, "TSST", noArg},
	Mul:      {"mul", ArithFamily, "TSSL", noArg},
	Div:      {"div", ArithFamily, "TSTS", noArg},
	Mod:      {"mod", ArithFamily, "TSTT", noArg},
	Store:    {"store", HeapFamily, "TTS", noArg},
	Retrieve: {"retrieve", HeapFamily, "TTT", noArg},
	Mark:     {"mark", FlowFamily, "LSS", labelArg},
	Call:     {"call", FlowFamily, "LST", labelArg},
	Jump:     {"jump", FlowFamily, "LSL", labelArg},
	JumpZero: {"jz", FlowFamily, "LTS", labelArg},
	JumpNeg:  {"jn", FlowFamily, "LTT", labelArg},
	Return:   {"ret", FlowFamily, "LTL", noArg},
	Exit:     {"exit", FlowFamily, "LLL", noArg},
	OutChar:  {"outc", IOFamily, "TLSS", noArg},
	OutNum:   {"outn", IOFamily, "TLST", noArg},
	ReadChar: {"readc", IOFamily, "TLTS", noArg},
	ReadNum:  {"readn", IOFamily, "TLTT", noArg},
}

func (op Op) info() opInfo {
	if op < 0 || op >= numOps {
		return ops[BadOp]
	}
	return ops[op]
}

// String returns the mnemonic of the operation.
func (op Op) String() string {
	if op <= BadOp || op >= numOps {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return ops[op].name
}

// Family returns the family of the operation.
func (op Op) Family() Family {
	return op.info().family
}

// HasNumber returns whether the operation takes a number argument.
func (op Op) HasNumber() bool {
	return op.info().arg == numberArg
}

// HasLabel returns whether the operation takes a label argument.
func (op Op) HasLabel() bool {
	return op.info().arg == labelArg
}

// Tokens returns the token prefix that encodes the operation, not including
// its argument.
func (op Op) Tokens() []Token {
	s := op.info().tokens
	toks := make([]Token, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'S':
			toks[i] = Space
		case 'T':
			toks[i] = Tab
		case 'L':
			toks[i] = LineFeed
		}
	}
	return toks
}

// A Label names a flow control target. It is a string of '0' and '1'
// characters, one per bit, so that labels are comparable. The empty label is
// valid.
type Label string

// NewLabel creates a label from a bit sequence.
func NewLabel(bits []bool) Label {
	var b strings.Builder
	b.Grow(len(bits))
	for _, bit := range bits {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return Label(b.String())
}

// Bits returns the label's bit sequence.
func (l Label) Bits() []bool {
	bits := make([]bool, len(l))
	for i := 0; i < len(l); i++ {
		bits[i] = l[i] == '1'
	}
	return bits
}

// Ident returns a Go identifier unique to the label.
func (l Label) Ident() string {
	return "W" + string(l)
}

func (l Label) String() string {
	return strconv.Quote(string(l))
}

// A Command is a single parsed instruction.
type Command struct {
	Op Op
	// Arg is the number argument of push, copy, and slide.
	Arg int64
	// Label is the label argument of flow control commands.
	Label Label
	// Pos is the position of the command's first token.
	Pos Pos
}

// String returns the command in mnemonic form.
func (c Command) String() string {
	switch {
	case c.Op.HasNumber():
		return c.Op.String() + " " + strconv.FormatInt(c.Arg, 10)
	case c.Op.HasLabel():
		return c.Op.String() + " " + c.Label.String()
	}
	return c.Op.String()
}

// A Program is a parsed sequence of commands. Command indices are instruction
// addresses.
type Program []Command

// String disassembles the program, one command per line.
func (p Program) String() string {
	var b strings.Builder
	for i, c := range p {
		fmt.Fprintf(&b, "%4d  %-8v  %v\n", i, c.Pos, c)
	}
	return b.String()
}

// Encode writes the canonical source text of the program. Parsing the result
// produces the same commands, except that a command with argument
// math.MinInt64 encodes a magnitude that fails to parse.
func Encode(p Program) string {
	var b []byte
	for _, c := range p {
		b = AppendCommand(b, c)
	}
	return string(b)
}

// AppendCommand appends the source text of c to b.
func AppendCommand(b []byte, c Command) []byte {
	for _, t := range c.Op.Tokens() {
		b = append(b, t.Char())
	}
	switch {
	case c.Op.HasNumber():
		b = AppendNumber(b, c.Arg)
	case c.Op.HasLabel():
		b = AppendLabel(b, c.Label)
	}
	return b
}

// AppendNumber appends the encoding of n to b: a sign, the binary digits of
// the magnitude from most significant, and a linefeed. Zero has no digits.
func AppendNumber(b []byte, n int64) []byte {
	m := uint64(n)
	if n < 0 {
		b = append(b, '\t')
		m = -m
	} else {
		b = append(b, ' ')
	}
	if m != 0 {
		for _, d := range strconv.FormatUint(m, 2) {
			if d == '1' {
				b = append(b, '\t')
			} else {
				b = append(b, ' ')
			}
		}
	}
	return append(b, '\n')
}

// AppendLabel appends the encoding of l to b.
func AppendLabel(b []byte, l Label) []byte {
	for i := 0; i < len(l); i++ {
		if l[i] == '1' {
			b = append(b, '\t')
		} else {
			b = append(b, ' ')
		}
	}
	return append(b, '\n')
}
