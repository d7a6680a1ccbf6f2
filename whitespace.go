package whitespace

import (
	"context"
	"io"
	"os"

	"github.com/zephyrtronium/whitespace/internal"
)

// A VM executes a single linked program.
type VM = internal.VM

// A Program is a parsed sequence of commands. Command indices are instruction
// addresses.
type Program = internal.Program

// A Command is a single parsed instruction.
type Command = internal.Command

// Op is the operation performed by a command.
type Op = internal.Op

// Family is the group of operations selected by a command's first tokens.
type Family = internal.Family

// A Label names a flow control target. Labels are bit strings; labels that
// differ only in leading zeros are distinct.
type Label = internal.Label

// Labels maps each label to the index of its mark.
type Labels = internal.Labels

// A Token is a single lexical element: space, tab, or linefeed.
type Token = internal.Token

// Pos is a line and column in source text.
type Pos = internal.Pos

// A Lexer produces the tokens of a source text one at a time.
type Lexer = internal.Lexer

// A Parser converts source text into commands.
type Parser = internal.Parser

// An Analysis describes the static control flow of a program.
type Analysis = internal.Analysis

// Encoding selects how outc converts numbers to output characters.
type Encoding = internal.Encoding

// ErrorKind identifies the reason a program failed to compile or run. Each
// kind is itself an error for use with errors.Is.
type ErrorKind = internal.ErrorKind

// A SyntaxError is an error found while parsing source text.
type SyntaxError = internal.SyntaxError

// A RuntimeError is an error raised while linking or executing a program.
type RuntimeError = internal.RuntimeError

// Tokens.
const (
	Space    = internal.Space
	Tab      = internal.Tab
	LineFeed = internal.LineFeed
)

// Operations.
const (
	BadOp    = internal.BadOp
	Push     = internal.Push
	Dup      = internal.Dup
	Swap     = internal.Swap
	Discard  = internal.Discard
	Copy     = internal.Copy
	Slide    = internal.Slide
	Add      = internal.Add
	Sub      = internal.Sub
	Mul      = internal.Mul
	Div      = internal.Div
	Mod      = internal.Mod
	Store    = internal.Store
	Retrieve = internal.Retrieve
	Mark     = internal.Mark
	Call     = internal.Call
	Jump     = internal.Jump
	JumpZero = internal.JumpZero
	JumpNeg  = internal.JumpNeg
	Return   = internal.Return
	Exit     = internal.Exit
	OutChar  = internal.OutChar
	OutNum   = internal.OutNum
	ReadChar = internal.ReadChar
	ReadNum  = internal.ReadNum
)

// Output encodings.
const (
	Latin1      = internal.Latin1
	Windows1252 = internal.Windows1252
	UTF8        = internal.UTF8
	Raw         = internal.Raw
)

// Error kinds.
const (
	MalformedNumber     = internal.MalformedNumber
	MalformedLabel      = internal.MalformedLabel
	UnexpectedEOF       = internal.UnexpectedEOF
	UnrecognizedCommand = internal.UnrecognizedCommand
	StackUnderflow      = internal.StackUnderflow
	IndexOutOfRange     = internal.IndexOutOfRange
	UnboundHeapAddress  = internal.UnboundHeapAddress
	DivisionByZero      = internal.DivisionByZero
	DuplicateLabel      = internal.DuplicateLabel
	UndefinedLabel      = internal.UndefinedLabel
	ReturnWithoutCall   = internal.ReturnWithoutCall
	IOError             = internal.IOError
	StepLimit           = internal.StepLimit
	Canceled            = internal.Canceled
)

// Parse parses an entire source text. The error, if any, is a *SyntaxError.
func Parse(src []byte) (Program, error) {
	return internal.Parse(src)
}

// Lex returns all tokens of src in order. Characters other than space, tab,
// and linefeed are ignored.
func Lex(src []byte) []Token {
	return internal.Lex(src)
}

// NewLexer creates a lexer over src.
func NewLexer(src []byte) *Lexer {
	return internal.NewLexer(src)
}

// NewParser creates a parser over src.
func NewParser(src []byte) *Parser {
	return internal.NewParser(src)
}

// NewLabel creates a label from a bit sequence.
func NewLabel(bits []bool) Label {
	return internal.NewLabel(bits)
}

// NewVM links a program and prepares a VM to run it, reading from in and
// writing to out. The only possible error is a *RuntimeError with kind
// DuplicateLabel.
func NewVM(p Program, in io.Reader, out io.Writer) (*VM, error) {
	return internal.NewVM(p, in, out)
}

// Link builds the label table of a program.
func Link(p Program) (Labels, error) {
	return internal.Link(p)
}

// Analyze links p and finds its reachable instructions and undefined label
// references.
func Analyze(p Program) (*Analysis, error) {
	return internal.Analyze(p)
}

// Encode writes the canonical source text of a program.
func Encode(p Program) string {
	return internal.Encode(p)
}

// ParseEncoding returns the output encoding with the given name.
func ParseEncoding(name string) (Encoding, error) {
	return internal.ParseEncoding(name)
}

// PlatformVersion describes the operating system, e.g. "Linux 6.1.0".
func PlatformVersion() string {
	return internal.PlatformVersion()
}

// Load parses source text and links the resulting program into a new VM
// configured by cfg. A nil cfg uses DefaultConfig. Trace output, if enabled,
// goes to standard error.
func Load(src []byte, in io.Reader, out io.Writer, cfg *Config) (*VM, error) {
	p, err := Parse(src)
	if err != nil {
		return nil, err
	}
	vm, err := NewVM(p, in, out)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Apply(vm, os.Stderr); err != nil {
		return nil, err
	}
	return vm, nil
}

// Run parses, links, and executes source text with default settings.
func Run(ctx context.Context, src []byte, in io.Reader, out io.Writer) error {
	vm, err := Load(src, in, out, nil)
	if err != nil {
		return err
	}
	return vm.Run(ctx)
}
