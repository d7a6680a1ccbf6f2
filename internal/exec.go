package internal

// Step executes the instruction at IP. If the instruction fails, IP still
// indicates it, and the error is a *RuntimeError. Step must not be called
// once Done returns true.
func (vm *VM) Step() error {
	ip := vm.IP
	c := vm.Program[ip]
	if vm.Trace != nil {
		vm.Trace.Printf("%4d  %-16v %v", ip, c, vm.Stack)
	}
	vm.Steps++
	next := ip + 1
	s := vm.Stack
	n := len(s)
	switch c.Op {
	case Push:
		vm.Stack = append(s, c.Arg)
	case Dup:
		if n < 1 {
			return vm.fail(StackUnderflow, ip, nil)
		}
		vm.Stack = append(s, s[n-1])
	case Swap:
		if n < 2 {
			return vm.fail(StackUnderflow, ip, nil)
		}
		s[n-1], s[n-2] = s[n-2], s[n-1]
	case Discard:
		if n < 1 {
			return vm.fail(StackUnderflow, ip, nil)
		}
		vm.Stack = s[:n-1]
	case Copy:
		if n < 1 {
			return vm.fail(StackUnderflow, ip, nil)
		}
		if c.Arg < 0 || c.Arg >= int64(n) {
			return vm.fail(IndexOutOfRange, ip, nil)
		}
		vm.Stack = append(s, s[n-1-int(c.Arg)])
	case Slide:
		if n < 1 {
			return vm.fail(StackUnderflow, ip, nil)
		}
		if c.Arg < 0 || c.Arg >= int64(n) {
			return vm.fail(IndexOutOfRange, ip, nil)
		}
		top := s[n-1]
		s = s[:n-1-int(c.Arg)]
		vm.Stack = append(s, top)

	case Add, Sub, Mul, Div, Mod:
		if n < 2 {
			return vm.fail(StackUnderflow, ip, nil)
		}
		lhs, rhs := s[n-2], s[n-1]
		var r int64
		switch c.Op {
		case Add:
			r = lhs + rhs
		case Sub:
			r = lhs - rhs
		case Mul:
			r = lhs * rhs
		case Div:
			if rhs == 0 {
				return vm.fail(DivisionByZero, ip, nil)
			}
			r = lhs / rhs
		case Mod:
			if rhs == 0 {
				return vm.fail(DivisionByZero, ip, nil)
			}
			r = lhs % rhs
		}
		s[n-2] = r
		vm.Stack = s[:n-1]

	case Store:
		if n < 2 {
			return vm.fail(StackUnderflow, ip, nil)
		}
		// The value is on top, the address below it.
		vm.Heap[s[n-2]] = s[n-1]
		vm.Stack = s[:n-2]
	case Retrieve:
		if n < 1 {
			return vm.fail(StackUnderflow, ip, nil)
		}
		v, ok := vm.Heap[s[n-1]]
		if !ok {
			return vm.fail(UnboundHeapAddress, ip, nil)
		}
		s[n-1] = v

	case Mark:
		// Marks are resolved before execution.
	case Call, Jump, JumpZero, JumpNeg:
		t := vm.targets[ip]
		if t < 0 {
			return vm.fail(UndefinedLabel, ip, nil)
		}
		switch c.Op {
		case Call:
			vm.Calls = append(vm.Calls, ip+1)
			next = t
		case Jump:
			next = t
		default:
			if n < 1 {
				return vm.fail(StackUnderflow, ip, nil)
			}
			v := s[n-1]
			vm.Stack = s[:n-1]
			if v == 0 && c.Op == JumpZero || v < 0 && c.Op == JumpNeg {
				next = t
			}
		}
	case Return:
		k := len(vm.Calls)
		if k == 0 {
			return vm.fail(ReturnWithoutCall, ip, nil)
		}
		next = vm.Calls[k-1]
		vm.Calls = vm.Calls[:k-1]
	case Exit:
		vm.Exited = true

	case OutChar, OutNum:
		if n < 1 {
			return vm.fail(StackUnderflow, ip, nil)
		}
		v := s[n-1]
		vm.Stack = s[:n-1]
		var err error
		if c.Op == OutChar {
			err = writeChar(vm.out, vm.Encoding, v)
		} else {
			err = writeNum(vm.out, v)
		}
		if err != nil {
			return vm.fail(IOError, ip, err)
		}
	case ReadChar, ReadNum:
		if n < 1 {
			return vm.fail(StackUnderflow, ip, nil)
		}
		addr := s[n-1]
		vm.Stack = s[:n-1]
		// Anything written so far may be a prompt.
		if err := vm.out.Flush(); err != nil {
			return vm.fail(IOError, ip, err)
		}
		var v int64
		var err error
		if c.Op == ReadChar {
			v, err = readChar(vm.in)
		} else {
			v, err = readNum(vm.in)
		}
		if err != nil {
			return vm.fail(IOError, ip, err)
		}
		vm.Heap[addr] = v

	default:
		return vm.fail(UnrecognizedCommand, ip, nil)
	}
	vm.IP = next
	return nil
}
