package vm

// This file implements the stack, arithmetic, comparison, logic, and
// memory primitives. See registry.go for how these and every other
// primitive word get wired into a fresh VM's dictionary.

func p_dup(vm *VM)  { vm.push(vm.tos()) }
func p_drop(vm *VM) { vm.pop() }
func p_swap(vm *VM) { a := vm.pop(); b := vm.pop(); vm.push(a); vm.push(b) }
func p_over(vm *VM) { vm.push(vm.pickDepth(1)) }
func p_rot(vm *VM)  { c := vm.pop(); b := vm.pop(); a := vm.pop(); vm.push(b); vm.push(c); vm.push(a) }
func p_mrot(vm *VM) { c := vm.pop(); b := vm.pop(); a := vm.pop(); vm.push(c); vm.push(a); vm.push(b) } // -rot
func p_nip(vm *VM)  { a := vm.pop(); vm.pop(); vm.push(a) }
func p_tuck(vm *VM) { a := vm.pop(); b := vm.pop(); vm.push(a); vm.push(b); vm.push(a) }
func p_qdup(vm *VM) {
	if vm.tos() != 0 {
		vm.push(vm.tos())
	}
}
func p_2dup(vm *VM) {
	vm.push(vm.pickDepth(1))
	vm.push(vm.pickDepth(1))
}
func p_2drop(vm *VM) { vm.pop(); vm.pop() }
func p_2swap(vm *VM) {
	d := vm.pop()
	c := vm.pop()
	b := vm.pop()
	a := vm.pop()
	vm.push(c)
	vm.push(d)
	vm.push(a)
	vm.push(b)
}
func p_2over(vm *VM) {
	vm.push(vm.pickDepth(3))
	vm.push(vm.pickDepth(3))
}

func p_to_r(vm *VM)    { vm.rpush(vm.pop()) }
func p_r_from(vm *VM)  { vm.push(vm.rpop()) }
func p_r_fetch(vm *VM) { vm.push(vm.rtos()) }
func p_2to_r(vm *VM)   { b := vm.pop(); a := vm.pop(); vm.rpush(a); vm.rpush(b) }
func p_2r_from(vm *VM) { b := vm.rpop(); a := vm.rpop(); vm.push(a); vm.push(b) }
func p_2r_fetch(vm *VM) {
	vm.push(vm.rpickDepth(1))
	vm.push(vm.rpickDepth(0))
}

func p_depth(vm *VM) { vm.push(Cell(vm.depth())) }
func p_pick(vm *VM)  { n := vm.pop(); vm.push(vm.pickDepth(int(n))) }

// Arithmetic

func p_add(vm *VM) { b := vm.pop(); a := vm.pop(); vm.push(a + b) }
func p_sub(vm *VM) { b := vm.pop(); a := vm.pop(); vm.push(a - b) }
func p_mul(vm *VM) { b := vm.pop(); a := vm.pop(); vm.push(a * b) }
func p_div(vm *VM) {
	b := vm.pop()
	a := vm.pop()
	if b == 0 {
		vm.halt(errDivideByZero)
	}
	vm.push(a / b)
}
func p_mod(vm *VM) {
	b := vm.pop()
	a := vm.pop()
	if b == 0 {
		vm.halt(errDivideByZero)
	}
	vm.push(a % b)
}
func p_divmod(vm *VM) {
	b := vm.pop()
	a := vm.pop()
	if b == 0 {
		vm.halt(errDivideByZero)
	}
	vm.push(a % b)
	vm.push(a / b)
}
func p_negate(vm *VM) { vm.push(-vm.pop()) }
func p_abs(vm *VM) {
	a := vm.pop()
	if a < 0 {
		a = -a
	}
	vm.push(a)
}
func p_min(vm *VM) {
	b := vm.pop()
	a := vm.pop()
	if b < a {
		a = b
	}
	vm.push(a)
}
func p_max(vm *VM) {
	b := vm.pop()
	a := vm.pop()
	if b > a {
		a = b
	}
	vm.push(a)
}
func p_1add(vm *VM) { vm.push(vm.pop() + 1) }
func p_1sub(vm *VM) { vm.push(vm.pop() - 1) }
func p_star_slash(vm *VM) {
	c := vm.pop()
	b := vm.pop()
	a := vm.pop()
	vm.push(Cell((int64(a) * int64(b)) / int64(c)))
}

// Comparison: Forth booleans are all-bits-set (-1) for true, 0 for false.

func boolCell(b bool) Cell {
	if b {
		return -1
	}
	return 0
}

func p_eq(vm *VM)  { b := vm.pop(); vm.push(boolCell(vm.pop() == b)) }
func p_neq(vm *VM) { b := vm.pop(); vm.push(boolCell(vm.pop() != b)) }
func p_lt(vm *VM)  { b := vm.pop(); vm.push(boolCell(vm.pop() < b)) }
func p_gt(vm *VM)  { b := vm.pop(); vm.push(boolCell(vm.pop() > b)) }
func p_ult(vm *VM) { b := uint64(vm.pop()); vm.push(boolCell(uint64(vm.pop()) < b)) }
func p_0eq(vm *VM) { vm.push(boolCell(vm.pop() == 0)) }
func p_0lt(vm *VM) { vm.push(boolCell(vm.pop() < 0)) }
func p_0gt(vm *VM) { vm.push(boolCell(vm.pop() > 0)) }

// Logic / bitwise

func p_and(vm *VM)    { b := vm.pop(); vm.push(vm.pop() & b) }
func p_or(vm *VM)     { b := vm.pop(); vm.push(vm.pop() | b) }
func p_xor(vm *VM)    { b := vm.pop(); vm.push(vm.pop() ^ b) }
func p_invert(vm *VM) { vm.push(^vm.pop()) }
func p_lshift(vm *VM) { n := vm.pop(); vm.push(Cell(uint64(vm.pop()) << uint(n))) }
func p_rshift(vm *VM) { n := vm.pop(); vm.push(Cell(uint64(vm.pop()) >> uint(n))) }

// Memory

func p_fetch(vm *VM) {
	addr := vm.pop()
	v, err := vm.mem.Load(addr)
	vm.haltif(err)
	vm.push(v)
}
func p_store(vm *VM) {
	addr := vm.pop()
	val := vm.pop()
	vm.haltif(vm.mem.Store(addr, val))
}
func p_cfetch(vm *VM) {
	addr := vm.pop()
	b, err := vm.mem.LoadByte(addr)
	vm.haltif(err)
	vm.push(Cell(b))
}
func p_cstore(vm *VM) {
	addr := vm.pop()
	val := vm.pop()
	vm.haltif(vm.mem.StoreByte(addr, byte(val)))
}
func p_pstore(vm *VM) {
	addr := vm.pop()
	val := vm.pop()
	old, err := vm.mem.Load(addr)
	vm.haltif(err)
	vm.haltif(vm.mem.Store(addr, old+val))
}

func p_here(vm *VM)  { vm.push(vm.here) }
func p_allot(vm *VM) { vm.here += vm.pop() }
func p_cells(vm *VM) { vm.push(vm.pop() * cellSize) }
func p_cell_plus(vm *VM) { vm.push(vm.pop() + cellSize) }

func p_comma(vm *VM) {
	vm.here = align(vm.here)
	vm.compileCell(vm.pop())
}
func p_c_comma(vm *VM) {
	vm.haltif(vm.mem.StoreByte(vm.here, byte(vm.pop())))
	vm.here++
}

func p_move(vm *VM) {
	n := vm.pop()
	dst := vm.pop()
	src := vm.pop()
	vm.haltif(vm.mem.Move(dst, src, n))
}
func p_fill(vm *VM) {
	c := vm.pop()
	n := vm.pop()
	addr := vm.pop()
	vm.haltif(vm.mem.Fill(addr, n, byte(c)))
}
func p_slash_string(vm *VM) {
	n := vm.pop()
	u := vm.pop()
	addr := vm.pop()
	if n > u {
		n = u
	}
	vm.push(addr + n)
	vm.push(u - n)
}
func p_count(vm *VM) {
	addr := vm.pop()
	b, err := vm.mem.LoadByte(addr)
	vm.haltif(err)
	vm.push(addr + 1)
	vm.push(Cell(b))
}
