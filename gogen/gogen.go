// Package gogen translates Whitespace programs to Go source code.
//
// A translated program behaves as the interpreter does, except that it has no
// instruction limit. Each basic block of the program becomes one case of a
// switch on the program counter inside a loop. Blocks that continue into the
// next block use fallthrough; jumps, calls, and returns set the program
// counter and continue the loop. Labels become constants named W followed by
// their bits, so "" is W and "0110" is W0110.
package gogen

import (
	"bytes"
	"fmt"
	"go/token"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/tools/imports"

	"github.com/zephyrtronium/whitespace/internal"
)

// Options controls translation.
type Options struct {
	// Package is the name of the generated package. If it is empty or main,
	// the output is a command that runs the program on standard input and
	// output. Otherwise, the package exports only Run.
	Package string
	// Prune omits blocks that are never executed.
	Prune bool
	// Encoding is the output encoding of outc.
	Encoding internal.Encoding
}

// Generate translates p to Go source. The only possible errors are a
// *internal.RuntimeError with kind DuplicateLabel and an invalid package name.
func Generate(p internal.Program, opts Options) ([]byte, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = "main"
	}
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("gogen: invalid package name %q", pkg)
	}
	a, err := internal.Analyze(p)
	if err != nil {
		return nil, err
	}
	g := generator{prog: p, analysis: a, opts: opts}
	g.printf("// Code generated by ws; DO NOT EDIT.\n\npackage %s\n\n", pkg)
	g.prelude(pkg == "main")
	g.labels()
	g.run()
	src, err := imports.Process("whitespace.go", g.buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		// Generated code failing to parse is a bug in this package.
		return nil, fmt.Errorf("gogen: formatting output: %w", err)
	}
	return src, nil
}

type generator struct {
	buf      bytes.Buffer
	prog     internal.Program
	analysis *internal.Analysis
	opts     Options
}

func (g *generator) printf(format string, args ...interface{}) {
	fmt.Fprintf(&g.buf, format, args...)
}

// labels declares a constant for each mark.
func (g *generator) labels() {
	if len(g.analysis.Labels) == 0 {
		return
	}
	g.printf("// Labels.\nconst (\n")
	for i, c := range g.prog {
		if c.Op == internal.Mark {
			g.printf("%s = %d // %v\n", c.Label.Ident(), i, c.Label)
		}
	}
	g.printf(")\n\n")
}

// block is a maximal run of instructions entered only at its first.
type block struct {
	start, end int
}

// blocks splits the program into basic blocks. Marks begin blocks, and flow
// control other than marks ends them.
func (g *generator) blocks() []block {
	var bs []block
	start := 0
	for i, c := range g.prog {
		if c.Op == internal.Mark && i > start {
			bs = append(bs, block{start, i})
			start = i
		}
		if c.Op.Family() == internal.FlowFamily && c.Op != internal.Mark {
			bs = append(bs, block{start, i + 1})
			start = i + 1
		}
	}
	if start < len(g.prog) {
		bs = append(bs, block{start, len(g.prog)})
	}
	return bs
}

// run emits the function executing the program.
func (g *generator) run() {
	g.printf("func run(m *machine) {\n")
	bs := g.blocks()
	if len(bs) == 0 {
		g.printf("}\n")
		return
	}
	g.printf("pc := 0\nfor {\nswitch pc {\n")
	for _, b := range bs {
		if g.opts.Prune && !g.analysis.Reachable[b.start] {
			continue
		}
		g.block(b)
	}
	if n := len(g.prog); g.prog[n-1].Op == internal.Call {
		// Returning from a final call ends the program.
		g.printf("case %d:\nreturn\n", n)
	}
	g.printf("default:\npanic(fmt.Sprintf(\"whitespace: no instruction %%d\", pc))\n")
	g.printf("}\n}\n}\n")
}

// block emits one case of the dispatch switch.
func (g *generator) block(b block) {
	g.printf("case %d:\n", b.start)
	for i := b.start; i < b.end; i++ {
		g.command(i)
	}
	last := g.prog[b.end-1]
	switch last.Op {
	case internal.Jump, internal.Call, internal.Return, internal.Exit:
		return
	}
	if g.undefined(b.end - 1) {
		g.printf("return\n")
		return
	}
	if b.end == len(g.prog) {
		g.printf("return\n")
		return
	}
	g.printf("fallthrough\n")
}

// undefined returns whether the instruction at i refers to a label with no
// mark.
func (g *generator) undefined(i int) bool {
	c := g.prog[i]
	if !c.Op.HasLabel() || c.Op == internal.Mark {
		return false
	}
	_, ok := g.analysis.Labels[c.Label]
	return !ok
}

// command emits the statements for the instruction at i.
func (g *generator) command(i int) {
	c := g.prog[i]
	g.printf("// %d: %v\n", i, c)
	if g.undefined(i) {
		g.printf("m.fail(%q, %d, %q, nil)\n", internal.UndefinedLabel.String(), i, c.Op.String())
		if c.Op == internal.Jump || c.Op == internal.Call {
			g.printf("return\n")
		}
		return
	}
	target := c.Label.Ident()
	switch c.Op {
	case internal.Push:
		g.printf("m.push(%d)\n", c.Arg)
	case internal.Copy, internal.Slide:
		g.printf("m.%v(%d, %d)\n", c.Op, i, c.Arg)
	case internal.Dup, internal.Swap, internal.Discard,
		internal.Add, internal.Sub, internal.Mul, internal.Div, internal.Mod,
		internal.Store, internal.Retrieve,
		internal.OutChar, internal.OutNum, internal.ReadChar, internal.ReadNum:
		g.printf("m.%v(%d)\n", c.Op, i)
	case internal.Mark:
		// Marks only begin blocks.
	case internal.Call:
		g.printf("m.calls = append(m.calls, %d)\npc = %s\ncontinue\n", i+1, target)
	case internal.Jump:
		g.printf("pc = %s\ncontinue\n", target)
	case internal.JumpZero:
		g.printf("if m.pop(%d, \"jz\") == 0 {\npc = %s\ncontinue\n}\n", i, target)
	case internal.JumpNeg:
		g.printf("if m.pop(%d, \"jn\") < 0 {\npc = %s\ncontinue\n}\n", i, target)
	case internal.Return:
		g.printf("pc = m.ret(%d)\ncontinue\n", i)
	case internal.Exit:
		g.printf("return\n")
	default:
		g.printf("m.fail(%q, %d, %q, nil)\n", internal.UnrecognizedCommand.String(), i, c.Op.String())
	}
}

// prelude emits the runtime shared by all translated programs.
func (g *generator) prelude(command bool) {
	g.printf(`import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

`)
	g.printf("const (\n")
	for _, k := range []struct {
		name string
		kind internal.ErrorKind
	}{
		{"errUnderflow", internal.StackUnderflow},
		{"errRange", internal.IndexOutOfRange},
		{"errUnbound", internal.UnboundHeapAddress},
		{"errDivZero", internal.DivisionByZero},
		{"errNoCall", internal.ReturnWithoutCall},
		{"errIO", internal.IOError},
	} {
		g.printf("%s = %q\n", k.name, k.kind.String())
	}
	g.printf(")\n\n")
	g.printf("%s", runtime)
	g.outc()
	if command {
		g.printf("%s", mainFunc)
	}
}

// outc emits the character output method for the selected encoding.
func (g *generator) outc() {
	g.printf("func (m *machine) outc(ip int) {\nv := m.pop(ip, \"outc\")\n")
	switch g.opts.Encoding {
	case internal.Latin1:
		// Latin-1 code points equal their byte values.
		g.printf("m.write(ip, \"outc\", func() error { _, err := m.out.WriteRune(rune(byte(v))); return err })\n")
	case internal.Windows1252:
		g.printf("r := rune(byte(v))\nif 0x80 <= r && r < 0xa0 {\nr = cp1252[r-0x80]\n}\n")
		g.printf("m.write(ip, \"outc\", func() error { _, err := m.out.WriteRune(r); return err })\n")
		g.printf("}\n\nvar cp1252 = [32]rune{")
		for b := 0x80; b < 0xa0; b++ {
			g.printf("%#x, ", charmap.Windows1252.DecodeByte(byte(b)))
		}
		g.printf("}\n\n")
		return
	case internal.UTF8:
		g.printf("r := rune(v)\nif int64(r) != v || !utf8.ValidRune(r) {\nr = utf8.RuneError\n}\n")
		g.printf("m.write(ip, \"outc\", func() error { _, err := m.out.WriteRune(r); return err })\n")
	default:
		g.printf("m.write(ip, \"outc\", func() error { return m.out.WriteByte(byte(v)) })\n")
	}
	g.printf("}\n\n")
}

const mainFunc = `func main() {
	if err := Run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
`

const runtime = `// Run executes the program.
func Run(in io.Reader, out io.Writer) (err error) {
	m := &machine{
		heap: make(map[int64]int64),
		in:   bufio.NewReader(in),
		out:  bufio.NewWriter(out),
	}
	defer func() {
		r := recover()
		if ferr := m.out.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("whitespace: %s: %w", errIO, ferr)
		}
		if r == nil {
			return
		}
		e, ok := r.(*runtimeError)
		if !ok {
			panic(r)
		}
		err = e
	}()
	run(m)
	return nil
}

type runtimeError struct {
	kind string
	ip   int
	op   string
	err  error
}

func (e *runtimeError) Error() string {
	s := fmt.Sprintf("whitespace: %s at instruction %d (%s)", e.kind, e.ip, e.op)
	if e.err != nil {
		s += ": " + e.err.Error()
	}
	return s
}

func (e *runtimeError) Unwrap() error {
	return e.err
}

type machine struct {
	stack []int64
	heap  map[int64]int64
	calls []int
	in    *bufio.Reader
	out   *bufio.Writer
}

func (m *machine) fail(kind string, ip int, op string, err error) {
	panic(&runtimeError{kind: kind, ip: ip, op: op, err: err})
}

func (m *machine) need(n, ip int, op string) []int64 {
	if len(m.stack) < n {
		m.fail(errUnderflow, ip, op, nil)
	}
	return m.stack
}

func (m *machine) push(v int64) {
	m.stack = append(m.stack, v)
}

func (m *machine) pop(ip int, op string) int64 {
	s := m.need(1, ip, op)
	m.stack = s[:len(s)-1]
	return s[len(s)-1]
}

func (m *machine) pop2(ip int, op string) (int64, int64) {
	s := m.need(2, ip, op)
	n := len(s)
	m.stack = s[:n-2]
	return s[n-2], s[n-1]
}

func (m *machine) dup(ip int) {
	s := m.need(1, ip, "dup")
	m.push(s[len(s)-1])
}

func (m *machine) swap(ip int) {
	s := m.need(2, ip, "swap")
	n := len(s)
	s[n-1], s[n-2] = s[n-2], s[n-1]
}

func (m *machine) discard(ip int) {
	m.pop(ip, "discard")
}

func (m *machine) copy(ip int, k int64) {
	s := m.need(1, ip, "copy")
	if k < 0 || k >= int64(len(s)) {
		m.fail(errRange, ip, "copy", nil)
	}
	m.push(s[len(s)-1-int(k)])
}

func (m *machine) slide(ip int, k int64) {
	s := m.need(1, ip, "slide")
	n := len(s)
	if k < 0 || k >= int64(n) {
		m.fail(errRange, ip, "slide", nil)
	}
	top := s[n-1]
	m.stack = append(s[:n-1-int(k)], top)
}

func (m *machine) add(ip int) {
	a, b := m.pop2(ip, "add")
	m.push(a + b)
}

func (m *machine) sub(ip int) {
	a, b := m.pop2(ip, "sub")
	m.push(a - b)
}

func (m *machine) mul(ip int) {
	a, b := m.pop2(ip, "mul")
	m.push(a * b)
}

func (m *machine) div(ip int) {
	s := m.need(2, ip, "div")
	if s[len(s)-1] == 0 {
		m.fail(errDivZero, ip, "div", nil)
	}
	a, b := m.pop2(ip, "div")
	m.push(a / b)
}

func (m *machine) mod(ip int) {
	s := m.need(2, ip, "mod")
	if s[len(s)-1] == 0 {
		m.fail(errDivZero, ip, "mod", nil)
	}
	a, b := m.pop2(ip, "mod")
	m.push(a % b)
}

func (m *machine) store(ip int) {
	addr, v := m.pop2(ip, "store")
	m.heap[addr] = v
}

func (m *machine) retrieve(ip int) {
	addr := m.pop(ip, "retrieve")
	v, ok := m.heap[addr]
	if !ok {
		m.fail(errUnbound, ip, "retrieve", nil)
	}
	m.push(v)
}

func (m *machine) ret(ip int) int {
	k := len(m.calls)
	if k == 0 {
		m.fail(errNoCall, ip, "ret", nil)
	}
	pc := m.calls[k-1]
	m.calls = m.calls[:k-1]
	return pc
}

func (m *machine) write(ip int, op string, f func() error) {
	if err := f(); err != nil {
		m.fail(errIO, ip, op, err)
	}
}

func (m *machine) outn(ip int) {
	v := m.pop(ip, "outn")
	m.write(ip, "outn", func() error { _, err := m.out.WriteString(strconv.FormatInt(v, 10)); return err })
}

func (m *machine) read(ip int, op string, f func() (int64, error)) {
	addr := m.pop(ip, op)
	m.write(ip, op, m.out.Flush)
	v, err := f()
	if err != nil {
		m.fail(errIO, ip, op, err)
	}
	m.heap[addr] = v
}

func (m *machine) readc(ip int) {
	m.read(ip, "readc", func() (int64, error) {
		b, err := m.in.ReadByte()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return int64(b), err
	})
}

func (m *machine) readn(ip int) {
	m.read(ip, "readn", func() (int64, error) {
		line, err := m.in.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return 0, err
			}
			if line == "" {
				return 0, io.ErrUnexpectedEOF
			}
		}
		return strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	})
}

`
