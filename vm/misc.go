package vm

import "fmt"

// --- Numeric output ---

func p_dot(vm *VM)   { fmt.Fprintf(vm.out, "%d ", vm.pop()) }
func p_u_dot(vm *VM) { fmt.Fprintf(vm.out, "%d ", uint64(vm.pop())) }

func p_dot_s(vm *VM) {
	fmt.Fprintf(vm.out, "<%d> ", vm.depth())
	for i := vm.depth() - 1; i >= 0; i-- {
		fmt.Fprintf(vm.out, "%d ", vm.dstack[i])
	}
}

// --- Stack-value constants and whitespace ---

func p_noop(vm *VM)   {}
func p_true(vm *VM)   { vm.push(-1) }
func p_false(vm *VM)  { vm.push(0) }
func p_bl(vm *VM)     { vm.push(32) }
func p_space(vm *VM)  { fmt.Fprint(vm.out, " ") }
func p_spaces(vm *VM) {
	n := vm.pop()
	for ; n > 0; n-- {
		fmt.Fprint(vm.out, " ")
	}
}

// --- ABORT / ABORT" ---

func p_abort(vm *VM) { vm.haltf("ABORT called") }

// p_abort_quote compiles ( flag -- ): if flag is true at run time, type the
// parsed message and abort; otherwise fall through. IMMEDIATE,
// compile-only.
func p_abort_quote(vm *VM) {
	s := vm.nextParse('"')
	vm.compileCell(Cell(vm.xt0Branch))
	fwd := vm.here
	vm.compileCell(0)

	vm.compileCell(Cell(vm.xtSLit))
	vm.compileCell(Cell(len(s)))
	vm.haltif(vm.mem.WriteAt(vm.here, []byte(s)))
	vm.here += align(Cell(len(s)))

	if xt := vm.Find("type"); xt >= 0 {
		vm.compileCell(Cell(xt))
	}
	if xt := vm.Find("abort"); xt >= 0 {
		vm.compileCell(Cell(xt))
	}
	vm.mustStore(fwd, vm.here)
}

// --- ." and .( ---

// p_dot_quote is ." : compiled, it types its parsed string at run time;
// interpreted, it types immediately. IMMEDIATE.
func p_dot_quote(vm *VM) {
	s := vm.nextParse('"')
	if vm.state {
		vm.compileCell(Cell(vm.xtSLit))
		vm.compileCell(Cell(len(s)))
		vm.haltif(vm.mem.WriteAt(vm.here, []byte(s)))
		vm.here += align(Cell(len(s)))
		if xt := vm.Find("type"); xt >= 0 {
			vm.compileCell(Cell(xt))
		}
	} else {
		fmt.Fprint(vm.out, s)
	}
}

// p_dot_paren is .( : always prints its parsed text immediately, even while
// compiling. IMMEDIATE.
func p_dot_paren(vm *VM) {
	s := vm.nextParse(')')
	fmt.Fprint(vm.out, s)
}
