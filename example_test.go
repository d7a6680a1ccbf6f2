package whitespace_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zephyrtronium/whitespace"
	"github.com/zephyrtronium/whitespace/testutils"
)

func ExampleRun() {
	// push 72, outc, push 105, outc, exit
	src := testutils.WS("SS STSSTSSSL TLSS  SS STTSTSSTL TLSS  LLL")
	if err := whitespace.Run(context.Background(), src, nil, os.Stdout); err != nil {
		fmt.Println(err)
	}
	// Output: Hi
}

func ExampleParse() {
	src := testutils.WS("SS STTL  LSS TSL  SLS  TLST  LTS TSL")
	p, err := whitespace.Parse(src)
	if err != nil {
		panic(err)
	}
	for _, c := range p {
		fmt.Println(c)
	}
	// Output:
	// push 3
	// mark "10"
	// dup
	// outn
	// jz "10"
}

func ExampleEncode() {
	p := whitespace.Program{
		{Op: whitespace.Push, Arg: -2},
		{Op: whitespace.OutNum},
	}
	fmt.Printf("%q\n", whitespace.Encode(p))
	// Output: "  \t\t \n\t\n \t"
}

func ExampleVM_Run() {
	// Reads a number and prints its square.
	src := testutils.WS("SS SL SLS TLTT TTT SLS TSSL TLST")
	vm, err := whitespace.Load(src, strings.NewReader("12\n"), os.Stdout, nil)
	if err != nil {
		panic(err)
	}
	if err := vm.Run(context.Background()); err != nil {
		fmt.Println(err)
	}
	// Output: 144
}

func ExampleRuntimeError() {
	// push 1, push 0, div
	src := testutils.WS("SS STL SS SL TSTS")
	err := whitespace.Run(context.Background(), src, nil, nil)
	fmt.Println(err)
	fmt.Println(errors.Is(err, whitespace.DivisionByZero))
	// Output:
	// whitespace: division by zero at instruction 2 (div)
	// true
}
