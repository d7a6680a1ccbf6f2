package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zephyrtronium/whitespace"
	"github.com/zephyrtronium/whitespace/testutils"
)

// TestWS tests each action of the command.
func TestWS(t *testing.T) {
	cases := map[string]struct {
		src    string
		input  string
		opts   options
		cfg    func(*whitespace.Config)
		out    string
		errout string
		err    string
	}{
		"Run": {
			src: "SS STTL SS STSSL TSSS TLST",
			out: "7",
		},
		"Input": {
			src:   "SS SL TLTT SS SL TTT TLST",
			input: "-12\n",
			out:   "-12",
		},
		"Disasm": {
			src:  "SS STTL LSS TL LLL",
			opts: options{disasm: true},
			out:  "   0  1:1       push 3\n   1  2:1       mark \"1\"\n   2  4:1       exit\n",
		},
		"Vet": {
			src:    "LSL TL SS STL SS STL LSS SL",
			opts:   options{vet: true},
			errout: "test.ws:1:1: jump \"1\" refers to undefined label\ntest.ws:4:1: instructions 1-3 are unreachable\n",
			err:    "test.ws: 1 undefined label references",
		},
		"VetClean": {
			src:  "SS STL TLST",
			opts: options{vet: true},
		},
		"Syntax": {
			src: "SS ST",
			err: "test.ws:1:5: malformed number",
		},
		"Runtime": {
			src: "SS STL SS SL TSTS",
			err: "test.ws: instruction 2 (div at 3:1): division by zero",
		},
		"IO": {
			src: "SS SL TLTS",
			err: "test.ws: instruction 1 (readc at 2:1): i/o error: unexpected EOF",
		},
		"Limit": {
			src: "LSS L LSL L",
			cfg: func(c *whitespace.Config) { c.Limit = 10 },
			err: "test.ws: instruction 0 (mark \"\" at 1:1): step limit exceeded",
		},
		"Trace": {
			src:    "SS STL",
			cfg:    func(c *whitespace.Config) { c.Trace = true },
			errout: "trace:    0  push 1           []\n",
		},
		"Translate": {
			src: "SS STL TLST",
			cfg: func(c *whitespace.Config) { c.Backend = whitespace.Translate },
			out: "// Code generated by ws; DO NOT EDIT.",
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := whitespace.DefaultConfig()
			if c.cfg != nil {
				c.cfg(cfg)
			}
			var out, errout bytes.Buffer
			err := ws(context.Background(), "test.ws", testutils.WS(c.src), cfg, c.opts, strings.NewReader(c.input), &out, &errout)
			if c.err == "" && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if c.err != "" && (err == nil || err.Error() != c.err) {
				t.Errorf("wrong error: wanted %q, got %v", c.err, err)
			}
			if !strings.HasPrefix(out.String(), c.out) || c.out == "" && out.Len() != 0 {
				t.Errorf("wrong output: wanted %q, got %q", c.out, out.String())
			}
			if errout.String() != c.errout {
				t.Errorf("wrong diagnostics: wanted %q, got %q", c.errout, errout.String())
			}
		})
	}
}

// TestTranslateFile tests writing translated source to a file.
func TestTranslateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.go")
	cfg := whitespace.DefaultConfig()
	cfg.Backend = whitespace.Translate
	cfg.Package = "prog"
	var out bytes.Buffer
	err := ws(context.Background(), "test.ws", testutils.WS("SS STL TLST"), cfg, options{output: path, prune: true}, nil, &out, &out)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte("package prog")) {
		t.Errorf("wrong package in output:\n%s", b)
	}
}

// TestReadSource tests joining source files.
func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.ws"), filepath.Join(dir, "b.ws")
	if err := os.WriteFile(a, testutils.WS("SS STL"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, testutils.WS("TLST"), 0o644); err != nil {
		t.Fatal(err)
	}
	name, src, err := readSource([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if name != a+"+"+b {
		t.Errorf("wrong name %q", name)
	}
	if string(src) != string(testutils.WS("SS STL TLST")) {
		t.Errorf("wrong source %q", src)
	}
	if _, _, err := readSource([]string{filepath.Join(dir, "missing.ws")}); err == nil {
		t.Error("missing file read")
	}
}

// TestVersion tests that the version names the command.
func TestVersion(t *testing.T) {
	if v := version(); !strings.HasPrefix(v, "ws ") {
		t.Errorf("wrong version %q", v)
	}
}
