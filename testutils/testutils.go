// Package testutils provides utilities for testing Whitespace programs in Go.
package testutils

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zephyrtronium/whitespace"
)

// Limit is the instruction limit of VMs created by SourceTestCase, so that a
// looping program fails its test instead of hanging.
const Limit = 1 << 20

// WS converts readable notation into source text: S is a space, T a tab, and
// L a linefeed. All other characters are dropped, so notation may be spaced
// out or annotated.
func WS(notation string) []byte {
	var b []byte
	for _, r := range notation {
		switch r {
		case 'S':
			b = append(b, ' ')
		case 'T':
			b = append(b, '\t')
		case 'L':
			b = append(b, '\n')
		}
	}
	return b
}

// Result is the outcome of running a program.
type Result struct {
	// VM is the VM after running. It is nil if the program did not parse or
	// link.
	VM *whitespace.VM
	// Output is everything the program wrote.
	Output string
	// Err is the error from parsing, linking, or running.
	Err error
}

// A SourceTestCase is a test case containing Whitespace source code and a
// predicate to check the result.
type SourceTestCase struct {
	// Source is the program in the notation accepted by WS.
	Source string
	// Input is the program's standard input.
	Input string
	// Pass is a predicate taking the result of running Source. If Pass
	// returns false, then the test fails.
	Pass func(r Result) bool
}

// Run parses and runs the test case's program.
func (c SourceTestCase) Run() Result {
	var out bytes.Buffer
	p, err := whitespace.Parse(WS(c.Source))
	if err != nil {
		return Result{Err: err}
	}
	vm, err := whitespace.NewVM(p, strings.NewReader(c.Input), &out)
	if err != nil {
		return Result{Err: err}
	}
	vm.Limit = Limit
	err = vm.Run(context.Background())
	return Result{VM: vm, Output: out.String(), Err: err}
}

// TestFunc returns a test function for the test case.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		r := c.Run()
		if !c.Pass(r) {
			if r.VM != nil {
				t.Errorf("%s: %s produced wrong result; output %q, stack %v, error %v", name, c.Source, r.Output, r.VM.Stack, r.Err)
			} else {
				t.Errorf("%s: %s produced wrong result; error %v", name, c.Source, r.Err)
			}
		}
	}
}

// PassOutput returns a Pass function that predicates on successful
// termination with the given output.
func PassOutput(want string) func(Result) bool {
	return func(r Result) bool {
		return r.Err == nil && r.Output == want
	}
}

// PassStack returns a Pass function that predicates on successful
// termination with the given operand stack, bottom first.
func PassStack(want ...int64) func(Result) bool {
	return func(r Result) bool {
		if r.Err != nil || r.VM == nil || len(r.VM.Stack) != len(want) {
			return false
		}
		for i, v := range want {
			if r.VM.Stack[i] != v {
				return false
			}
		}
		return true
	}
}

// PassFailure returns a Pass function that predicates on an error of the
// given kind.
func PassFailure(kind whitespace.ErrorKind) func(Result) bool {
	return func(r Result) bool {
		return errors.Is(r.Err, kind)
	}
}
