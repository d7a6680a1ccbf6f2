// Command ws runs or translates Whitespace programs.
//
// Usage:
//
//	ws [flags] [file ...]
//
// The named files are joined to form the program text. With no files, the
// program is read from standard input, and the program itself then has no
// input. By default the program is interpreted. With -gen, it is translated
// to Go source instead; with -disasm, it is listed in mnemonic form; with
// -vet, unreachable code and undefined labels are reported.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"

	"golang.org/x/term"

	"github.com/zephyrtronium/whitespace"
	"github.com/zephyrtronium/whitespace/gogen"
)

// options holds the mode flags. Settings shared with config files are
// applied to a whitespace.Config instead.
type options struct {
	gen     bool
	output  string
	disasm  bool
	vet     bool
	prune   bool
	version bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("ws: ")

	var opts options
	var cfgFile, encoding, pkg string
	var limit int
	var trace bool
	flag.BoolVar(&opts.gen, "gen", false, "translate the program to Go source")
	flag.StringVar(&opts.output, "o", "", "write translated source to this file instead of standard output")
	flag.BoolVar(&opts.disasm, "disasm", false, "print the program in mnemonic form")
	flag.BoolVar(&opts.vet, "vet", false, "report unreachable code and undefined labels")
	flag.BoolVar(&opts.prune, "prune", false, "omit unreachable code from translated source")
	flag.BoolVar(&opts.version, "version", false, "print version information")
	flag.StringVar(&cfgFile, "config", "", "load settings from this YAML file")
	flag.IntVar(&limit, "limit", 0, "maximum number of instructions to execute (0 for no limit)")
	flag.StringVar(&encoding, "encoding", "latin1", "output encoding of outc: latin1, windows1252, utf8, or raw")
	flag.StringVar(&pkg, "package", "main", "package name of translated source")
	flag.BoolVar(&trace, "trace", false, "log each executed instruction to standard error")
	flag.Parse()

	if opts.version {
		fmt.Println(version())
		return
	}

	cfg := whitespace.DefaultConfig()
	if cfgFile != "" {
		var err error
		cfg, err = whitespace.LoadConfig(cfgFile)
		if err != nil {
			log.Fatal(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "limit":
			cfg.Limit = limit
		case "encoding":
			cfg.Encoding = encoding
		case "trace":
			cfg.Trace = trace
		case "package":
			cfg.Package = pkg
		case "gen":
			if opts.gen {
				cfg.Backend = whitespace.Translate
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	name, src, err := readSource(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	var in io.Reader = os.Stdin
	if flag.NArg() == 0 {
		in = strings.NewReader("")
	} else if cfg.RawTerminal {
		restore := rawTerminal()
		defer restore()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := ws(ctx, name, src, cfg, opts, in, os.Stdout, os.Stderr); err != nil {
		log.Print(err)
		stop()
		exit(1)
	}
}

// exit is os.Exit, replaced while raw terminal mode must be restored.
var exit = os.Exit

// readSource reads and joins the named files, or standard input if there
// are none. The returned name identifies the source in messages.
func readSource(files []string) (string, []byte, error) {
	if len(files) == 0 {
		src, err := io.ReadAll(os.Stdin)
		return "stdin", src, err
	}
	var src []byte
	for _, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", nil, err
		}
		src = append(src, b...)
	}
	return strings.Join(files, "+"), src, nil
}

// rawTerminal puts standard input into raw mode if it is a terminal, so
// that readc sees each key as it is pressed. It returns a function restoring
// the previous mode.
func rawTerminal() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		log.Printf("raw mode unavailable: %v", err)
		return func() {}
	}
	restore := func() { term.Restore(fd, old) }
	exit = func(code int) {
		restore()
		os.Exit(code)
	}
	return restore
}

// ws performs the selected action on a program.
func ws(ctx context.Context, name string, src []byte, cfg *whitespace.Config, opts options, in io.Reader, stdout, stderr io.Writer) error {
	p, err := whitespace.Parse(src)
	if err != nil {
		return describe(name, err)
	}
	switch {
	case opts.disasm:
		_, err := io.WriteString(stdout, p.String())
		return err
	case opts.vet:
		return vet(name, p, stderr)
	case cfg.Backend == whitespace.Translate:
		return translate(p, cfg, opts, stdout)
	}
	vm, err := whitespace.NewVM(p, in, stdout)
	if err != nil {
		return describe(name, err)
	}
	if err := cfg.Apply(vm, stderr); err != nil {
		return err
	}
	if err := vm.Run(ctx); err != nil {
		return describe(name, err)
	}
	return nil
}

// vet reports unreachable instructions and undefined labels.
func vet(name string, p whitespace.Program, w io.Writer) error {
	a, err := whitespace.Analyze(p)
	if err != nil {
		return describe(name, err)
	}
	for _, i := range a.Undefined {
		fmt.Fprintf(w, "%s:%v: %v refers to undefined label\n", name, p[i].Pos, p[i])
	}
	// Report runs of unreachable instructions once each.
	u := a.Unreachable()
	for k := 0; k < len(u); {
		j := k
		for j+1 < len(u) && u[j+1] == u[j]+1 {
			j++
		}
		if u[k] == u[j] {
			fmt.Fprintf(w, "%s:%v: instruction %d is unreachable\n", name, p[u[k]].Pos, u[k])
		} else {
			fmt.Fprintf(w, "%s:%v: instructions %d-%d are unreachable\n", name, p[u[k]].Pos, u[k], u[j])
		}
		k = j + 1
	}
	if len(a.Undefined) > 0 {
		return fmt.Errorf("%s: %d undefined label references", name, len(a.Undefined))
	}
	return nil
}

// translate writes the program as Go source.
func translate(p whitespace.Program, cfg *whitespace.Config, opts options, stdout io.Writer) error {
	enc, err := whitespace.ParseEncoding(cfg.Encoding)
	if err != nil {
		return err
	}
	src, err := gogen.Generate(p, gogen.Options{Package: cfg.Package, Prune: opts.prune, Encoding: enc})
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err = stdout.Write(src)
		return err
	}
	return os.WriteFile(opts.output, src, 0o644)
}

// describe formats an error for the user: syntax errors as name:line:col,
// runtime errors with the failing instruction.
func describe(name string, err error) error {
	var serr *whitespace.SyntaxError
	if errors.As(err, &serr) {
		return fmt.Errorf("%s:%v: %s", name, serr.Pos, serr.Kind.String())
	}
	var rerr *whitespace.RuntimeError
	if errors.As(err, &rerr) {
		var b strings.Builder
		fmt.Fprintf(&b, "%s: instruction %d", name, rerr.IP)
		if rerr.Cmd.Op != whitespace.BadOp {
			fmt.Fprintf(&b, " (%v at %v)", rerr.Cmd, rerr.Cmd.Pos)
		}
		fmt.Fprintf(&b, ": %s", rerr.Kind.String())
		if rerr.Err != nil {
			fmt.Fprintf(&b, ": %v", rerr.Err)
		}
		return errors.New(b.String())
	}
	return err
}

func version() string {
	v := "(devel)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		v = bi.Main.Version
	}
	return fmt.Sprintf("ws %s %s %s/%s (%s)", v, runtime.Version(), runtime.GOOS, runtime.GOARCH, whitespace.PlatformVersion())
}
