package internal

import (
	"bufio"
	"context"
	"io"
	"log"
	"strings"
)

// checkEvery is the number of instructions between context checks in Run.
const checkEvery = 1024

// VM is an interpreter for a single program. Each VM owns its stacks and heap;
// separate VMs share nothing and may run concurrently, but a single VM must
// not be used from multiple goroutines.
type VM struct {
	// Program is the program being executed.
	Program Program
	// Labels is the program's label table.
	Labels Labels
	// targets holds the resolved label target of each instruction.
	targets []int

	// Stack is the operand stack, top last.
	Stack []int64
	// Heap maps addresses to values. Addresses never stored are unbound.
	Heap map[int64]int64
	// Calls is the call stack of return addresses, top last.
	Calls []int
	// IP is the index of the next instruction to execute.
	IP int
	// Steps is the number of instructions executed so far.
	Steps int
	// Exited is set when an exit instruction executes.
	Exited bool

	// Limit is the maximum number of instructions Run executes. Zero means no
	// limit.
	Limit int
	// Encoding selects how outc writes characters.
	Encoding Encoding
	// Trace, if not nil, receives one line for each instruction executed.
	Trace *log.Logger

	in  *bufio.Reader
	out *bufio.Writer
}

// NewVM links a program and prepares a VM to run it, reading from in and
// writing to out. A nil in behaves as empty input, and a nil out discards
// output. The only possible error is a *RuntimeError with kind
// DuplicateLabel, in which case no VM is returned.
func NewVM(p Program, in io.Reader, out io.Writer) (*VM, error) {
	labels, err := Link(p)
	if err != nil {
		return nil, err
	}
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	vm := VM{
		Program: p,
		Labels:  labels,
		targets: labels.Resolve(p),
		Heap:    make(map[int64]int64),
		in:      bufio.NewReader(in),
		out:     bufio.NewWriter(out),
	}
	return &vm, nil
}

// Reset clears the VM's runtime state so that the program can be run again
// from the beginning. Settings and buffered input are kept.
func (vm *VM) Reset() {
	vm.Stack = vm.Stack[:0]
	vm.Heap = make(map[int64]int64)
	vm.Calls = vm.Calls[:0]
	vm.IP = 0
	vm.Steps = 0
	vm.Exited = false
}

// Done returns whether the program has terminated normally, either by an exit
// instruction or by running past its last instruction.
func (vm *VM) Done() bool {
	return vm.Exited || vm.IP >= len(vm.Program)
}

// Run executes instructions until the program terminates or fails. Output is
// flushed before Run returns. The error, if any, is a *RuntimeError.
func (vm *VM) Run(ctx context.Context) (err error) {
	defer func() {
		if ferr := vm.Flush(); err == nil {
			err = ferr
		}
	}()
	for !vm.Done() {
		if vm.Limit > 0 && vm.Steps >= vm.Limit {
			return vm.fail(StepLimit, vm.IP, nil)
		}
		if vm.Steps%checkEvery == 0 {
			if cerr := ctx.Err(); cerr != nil {
				return vm.fail(Canceled, vm.IP, cerr)
			}
		}
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered output.
func (vm *VM) Flush() error {
	if err := vm.out.Flush(); err != nil {
		return &RuntimeError{Kind: IOError, IP: vm.IP, Err: err}
	}
	return nil
}

// fail creates a runtime error for the instruction at ip.
func (vm *VM) fail(kind ErrorKind, ip int, cause error) error {
	e := RuntimeError{Kind: kind, IP: ip, Err: cause}
	if ip >= 0 && ip < len(vm.Program) {
		e.Cmd = vm.Program[ip]
	}
	return &e
}
