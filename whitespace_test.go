package whitespace_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zephyrtronium/whitespace"
	"github.com/zephyrtronium/whitespace/testutils"
)

// TestPrograms tests complete programs from source text.
func TestPrograms(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Add": {
			Source: "SS STTL  SS STSSL  TSSS",
			Pass:   testutils.PassStack(7),
		},
		"Count": {
			// push 1; mark 0: dup outn push 1 add dup push 4 sub jn 0; exit
			Source: "SS STL  LSS SL  SLS TLST  SS STL TSSS  SLS SS STSSL TSST  LTT SL  LLL",
			Pass:   testutils.PassOutput("123"),
		},
		"Subroutine": {
			// call 1; push 3; exit; mark 1: push 33 outc ret
			Source: "LST TL  SS STTL  LLL  LSS TL  SS STSSSSTL TLSS  LTL",
			Pass: func(r testutils.Result) bool {
				return r.Err == nil && r.Output == "!" && len(r.VM.Stack) == 1 && r.VM.Stack[0] == 3
			},
		},
		"Echo": {
			// push 0 readc push 0 retrieve outc
			Source: "SS SL TLTS SS SL TTT TLSS",
			Input:  "x",
			Pass:   testutils.PassOutput("x"),
		},
		"Heap": {
			// push 1 push 2 store push 1 retrieve
			Source: "SS STL SS STSL TTS SS STL TTT",
			Pass:   testutils.PassStack(2),
		},
		"DivZero": {
			Source: "SS STL SS SL TSTS",
			Pass:   testutils.PassFailure(whitespace.DivisionByZero),
		},
		"DupEmpty": {
			Source: "SLS",
			Pass:   testutils.PassFailure(whitespace.StackUnderflow),
		},
		"SelfLoop": {
			// mark "" jump "": loops until the limit, never an undefined label
			Source: "LSS L  LSL L",
			Pass:   testutils.PassFailure(whitespace.StepLimit),
		},
		"Undefined": {
			Source: "LSL TL",
			Pass:   testutils.PassFailure(whitespace.UndefinedLabel),
		},
		"Duplicate": {
			Source: "LSS TL  LSS TL",
			Pass:   testutils.PassFailure(whitespace.DuplicateLabel),
		},
		"Syntax": {
			Source: "SS STT",
			Pass:   testutils.PassFailure(whitespace.MalformedNumber),
		},
		"Commented": {
			Source: "push: SS one: STL  output: TLST  end: LLL",
			Pass:   testutils.PassOutput("1"),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// TestLoad tests that Load applies configuration to the VM.
func TestLoad(t *testing.T) {
	cfg := whitespace.DefaultConfig()
	cfg.Limit = 10
	cfg.Encoding = "raw"
	var out bytes.Buffer
	vm, err := whitespace.Load(testutils.WS("SS STTTSTSSTL TLSS"), nil, &out, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if vm.Limit != 10 || vm.Encoding != whitespace.Raw {
		t.Errorf("config not applied: limit %d, encoding %v", vm.Limit, vm.Encoding)
	}
	if err := vm.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\xe9" {
		t.Errorf("wrong output %q", got)
	}
}

// TestLoadErrors tests that Load reports parse and link errors.
func TestLoadErrors(t *testing.T) {
	_, err := whitespace.Load(testutils.WS("STT"), nil, nil, nil)
	var serr *whitespace.SyntaxError
	if !errors.As(err, &serr) || serr.Kind != whitespace.UnrecognizedCommand {
		t.Errorf("wanted unrecognized command, got %v", err)
	}
	_, err = whitespace.Load(testutils.WS("LSSL LSSL"), nil, nil, nil)
	var rerr *whitespace.RuntimeError
	if !errors.As(err, &rerr) || rerr.Kind != whitespace.DuplicateLabel {
		t.Errorf("wanted duplicate label, got %v", err)
	}
	cfg := whitespace.DefaultConfig()
	cfg.Encoding = "morse"
	if _, err := whitespace.Load(nil, nil, nil, cfg); err == nil {
		t.Error("bad encoding was accepted")
	}
}

// TestRoundTrip tests that encoding a parsed program reproduces its tokens.
func TestRoundTrip(t *testing.T) {
	src := testutils.WS("SS STL  LSS SL  SLS TLST  SS STL TSSS  SLS SS STSSL TSST  LTT SL  LLL")
	p, err := whitespace.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := whitespace.Encode(p); got != string(src) {
		t.Errorf("wrong encoding:\nwant %q\ngot  %q", src, got)
	}
	if !strings.Contains(p.String(), "jn \"0\"") {
		t.Errorf("disassembly missing jn:\n%s", p)
	}
}
