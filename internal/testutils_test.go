package internal

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// ws converts readable notation into source text: S is a space, T a tab, and
// L a linefeed. All other characters are dropped, so notation may be spaced
// out for reading.
func ws(notation string) []byte {
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

// run links and runs p with the given input, returning the VM, its output,
// and the error from Run.
func run(t *testing.T, p Program, input string) (*VM, string, error) {
	t.Helper()
	var out bytes.Buffer
	vm, err := NewVM(p, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("could not link %v: %v", p, err)
	}
	vm.Limit = 100000
	err = vm.Run(context.Background())
	return vm, out.String(), err
}

// cmd is shorthand for a command with no position.
func cmd(op Op) Command {
	return Command{Op: op}
}

func num(op Op, n int64) Command {
	return Command{Op: op, Arg: n}
}

func lbl(op Op, l Label) Command {
	return Command{Op: op, Label: l}
}

func equalStacks(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
