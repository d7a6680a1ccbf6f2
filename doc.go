/*
Package whitespace implements the Whitespace programming language.

Whitespace is an esoteric, stack-based language whose programs are written
entirely in spaces, tabs, and linefeeds. Every other character is a comment,
so a Whitespace program can hide inside the indentation of any other text.
It was originally developed by Edwin Brady and Chris Morris.

This package parses source text into a Program, a flat sequence of commands,
and executes programs with a VM. The same programs can instead be translated
to Go source by package gogen. The ws command wraps both.

To run a program, use Run, or use Load to obtain a VM that can be configured
before running:

	vm, err := whitespace.Load(src, os.Stdin, os.Stdout, nil)
	if err != nil {
		// handle syntax or duplicate label error
	}
	vm.Limit = 1e6
	err = vm.Run(ctx)

Separate VMs share no state and may run concurrently.

Whitespace Primer

A program is a sequence of commands. Each command begins with a short token
prefix selecting its family and operation, written here with S for space, T
for tab, and L for linefeed:

	S     stack manipulation   push, dup, swap, discard, copy, slide
	TS    arithmetic           add, sub, mul, div, mod
	TT    heap access          store, retrieve
	L     flow control         mark, call, jump, jz, jn, ret, exit
	TL    I/O                  outc, outn, readc, readn

Push, copy, and slide take a number argument. A number is a sign (S for
non-negative, T for negative) followed by binary digits most significant
first (S is 0, T is 1) and terminated by L. For example, SSTSTL pushes 5.
Flow control commands other than ret and exit take a label argument, a string
of bits terminated by L. Labels are compared as bit strings, so the labels S
and SS are different.

Copy n copies the item n places below the top, so copy 0 is dup. Slide n
removes the n items just below the top and keeps the top; n may be anything
from zero to one less than the stack depth, so slide with the largest n
leaves only the top item. Other values of n are an index out of range error.

Hello World begins

	SS STSSTSSSL   push 72
	TLSS           outc

and continues likewise for each character, then ends with LLL, exit.

Programs operate on a stack of 64-bit integers and a heap mapping integer
addresses to values. Arithmetic wraps on overflow; div and mod truncate
toward zero. Store pops a value and then an address. Retrieving an address
that was never stored is an error, as are underflowing the stack, returning
with no call, and jumping to a label that no mark defines. Running past the
last command ends the program as if by exit.

Output characters are written by outc from the low 8 bits of the value,
interpreted as Latin-1 and encoded as UTF-8. The VM's Encoding field selects
other conversions. Any buffered output is flushed before each read.
*/
package whitespace
