package vm

// This file implements the compile-time (mostly IMMEDIATE) words that
// drive colon-definition compilation, control flow, and DO-loops, plus the
// small set of runtime-support execution tokens ((lit), (branch), ...)
// that compiled code actually calls through.
//
// Control-flow words use the data stack itself to hold their
// forward/back-patch addresses across a definition's compilation, exactly
// as the engine they're grounded on does — there is no separate compiler
// stack.

// nextWord consumes and returns the next whitespace-delimited token from
// the line currently being interpreted.
func (vm *VM) nextWord() string {
	tok, next := word(vm.tib, vm.tibPos)
	vm.tibPos = next
	return tok
}

// nextParse consumes and returns the text up to delim from the line
// currently being interpreted.
func (vm *VM) nextParse(delim byte) string {
	text, next := parseDelim(vm.tib, vm.tibPos, delim)
	vm.tibPos = next
	return text
}

// --- Runtime support (not directly user-visible, but need XTs) ---

func p_lit(vm *VM) { vm.push(vm.fetchIP()) }

func p_branch(vm *VM) { vm.ip = vm.fetchIP() }

func p_0branch(vm *VM) {
	dest := vm.fetchIP()
	if vm.pop() == 0 {
		vm.ip = dest
	}
}

func p_exit(vm *VM) { vm.ip = vm.rpop() }

func p_does_runtime(vm *VM) {
	vm.dict[vm.latest].Kind = kindDoes
	vm.dict[vm.latest].Does = vm.ip
	vm.ip = vm.rpop() // return from (exit the body of) the defining word
}

func p_does_compile(vm *VM) { vm.compileCell(Cell(vm.xtDoes)) }

func p_slit(vm *VM) {
	n := vm.fetchIP()
	addr := vm.ip
	vm.push(addr)
	vm.push(n)
	vm.ip += align(n)
}

// --- Colon definitions ---

func p_colon(vm *VM) {
	name := vm.nextWord()
	if name == "" {
		vm.haltf(": requires a name")
	}
	idx := vm.define(name, false, kindColon)
	vm.dict[idx].Flags |= flagHidden
	vm.here = align(vm.here)
	vm.dict[idx].Param = vm.here
	vm.state = true
}

func p_semicolon(vm *VM) {
	vm.compileCell(Cell(vm.xtExit))
	vm.dict[vm.latest].Flags &^= flagHidden
	vm.state = false
}

func p_immediate(vm *VM) { vm.dict[vm.latest].Flags |= flagImmediate }

func p_lbracket(vm *VM) { vm.state = false }
func p_rbracket(vm *VM) { vm.state = true }

// stateAddr is the fixed arena address the STATE variable is read/written
// through, mirroring the original engine's choice to keep it out of the
// normal dictionary-variable allocation path.
const stateAddr Cell = 0

func p_state(vm *VM) {
	v := Cell(0)
	if vm.state {
		v = -1
	}
	vm.mustStore(stateAddr, v)
	vm.push(stateAddr)
}

func (vm *VM) findOrAbort(name string) int {
	xt := vm.Find(name)
	if xt < 0 {
		vm.halt(&UndefinedWordError{Word: name})
	}
	return xt
}

func p_tick(vm *VM) {
	name := vm.nextWord()
	vm.push(Cell(vm.findOrAbort(name)))
}

func p_bracket_tick(vm *VM) {
	name := vm.nextWord()
	xt := vm.findOrAbort(name)
	vm.compileCell(Cell(vm.xtLit))
	vm.compileCell(Cell(xt))
}

func p_execute(vm *VM) { vm.Execute(int(vm.pop())) }

func p_to_body(vm *VM) {
	xt := vm.pop()
	vm.push(vm.dict[xt].Param)
}

func p_create(vm *VM) {
	name := vm.nextWord()
	if name == "" {
		vm.haltf("CREATE requires a name")
	}
	idx := vm.define(name, false, kindVariable)
	vm.here = align(vm.here)
	vm.dict[idx].Param = vm.here
}

func p_find(vm *VM) {
	length := vm.pop()
	addr := vm.pop()
	b, err := vm.mem.Bytes(addr, length)
	vm.haltif(err)
	name := string(b)
	if xt := vm.Find(name); xt >= 0 {
		vm.push(Cell(xt))
		if vm.dict[xt].Immediate() {
			vm.push(1)
		} else {
			vm.push(-1)
		}
	} else {
		vm.push(addr)
		vm.push(length)
		vm.push(0)
	}
}

func p_literal(vm *VM) {
	vm.compileCell(Cell(vm.xtLit))
	vm.compileCell(vm.pop())
}

func p_compile_comma(vm *VM) { vm.compileCell(vm.pop()) }

func p_postpone(vm *VM) {
	name := vm.nextWord()
	xt := vm.findOrAbort(name)
	if vm.dict[xt].Immediate() {
		vm.compileCell(Cell(xt))
	} else {
		vm.compileCell(Cell(vm.xtLit))
		vm.compileCell(Cell(xt))
		vm.compileCell(Cell(vm.findOrAbort("compile,")))
	}
}

func p_recurse(vm *VM) { vm.compileCell(Cell(vm.latest)) }

func p_user_exit(vm *VM) {
	if vm.state {
		vm.compileCell(Cell(vm.xtExit))
	}
}

// --- Control flow (IMMEDIATE) ---

func p_if(vm *VM) {
	vm.compileCell(Cell(vm.xt0Branch))
	vm.push(vm.here)
	vm.compileCell(0)
}

func p_else(vm *VM) {
	vm.compileCell(Cell(vm.xtBranch))
	fwd2 := vm.here
	vm.compileCell(0)
	fwd1 := vm.pop()
	vm.mustStore(fwd1, vm.here)
	vm.push(fwd2)
}

func p_then(vm *VM) {
	fwd := vm.pop()
	vm.mustStore(fwd, vm.here)
}

func p_begin(vm *VM) { vm.push(vm.here) }

func p_while(vm *VM) {
	vm.compileCell(Cell(vm.xt0Branch))
	orig := vm.here
	vm.compileCell(0)
	dest := vm.pop()
	vm.push(orig)
	vm.push(dest)
}

func p_repeat(vm *VM) {
	back := vm.pop()
	orig := vm.pop()
	vm.compileCell(Cell(vm.xtBranch))
	vm.compileCell(back)
	vm.mustStore(orig, vm.here)
}

func p_until(vm *VM) {
	back := vm.pop()
	vm.compileCell(Cell(vm.xt0Branch))
	vm.compileCell(back)
}

func p_again(vm *VM) {
	back := vm.pop()
	vm.compileCell(Cell(vm.xtBranch))
	vm.compileCell(back)
}

// --- DO/LOOP runtime ---

func p_do_rt(vm *VM) {
	idx := vm.pop()
	lim := vm.pop()
	vm.rpush(lim)
	vm.rpush(idx)
}

func p_qdo_rt(vm *VM) {
	dest := vm.fetchIP()
	idx := vm.pop()
	lim := vm.pop()
	if idx == lim {
		vm.ip = dest
	} else {
		vm.rpush(lim)
		vm.rpush(idx)
	}
}

func p_loop_rt(vm *VM) {
	dest := vm.fetchIP()
	idx := vm.rpop() + 1
	lim := vm.rtos()
	if idx == lim {
		vm.rpop()
	} else {
		vm.rpush(idx)
		vm.ip = dest
	}
}

// p_ploop_rt implements +LOOP's runtime, which must terminate when the
// index crosses the limit in either direction (the step may be negative),
// not just when it lands on it exactly: adding step can jump straight past
// lim. crossed detects that: old and new sit on opposite sides of lim, and
// the step points from old toward lim (step and old-lim differ in sign).
func p_ploop_rt(vm *VM) {
	dest := vm.fetchIP()
	step := vm.pop()
	oldIdx := vm.rpop()
	newIdx := oldIdx + step
	lim := vm.rtos()

	oldDiff := oldIdx - lim
	newDiff := newIdx - lim
	crossed := (oldDiff^newDiff) < 0 && (oldDiff^step) < 0
	done := crossed || newDiff == 0

	if done {
		vm.rpop()
	} else {
		vm.rpush(newIdx)
		vm.ip = dest
	}
}

// --- DO/LOOP compile-time (IMMEDIATE) ---

func p_do_compile(vm *VM) {
	vm.compileCell(Cell(vm.xtDo))
	vm.push(0) // no forward ref for DO (only ?DO needs one)
	vm.push(vm.here)
}

func p_qdo_compile(vm *VM) {
	vm.compileCell(Cell(vm.xtQDo))
	orig := vm.here
	vm.compileCell(0)
	vm.push(orig)
	vm.push(vm.here)
}

func p_loop_compile(vm *VM) {
	back := vm.pop()
	orig := vm.pop()
	vm.compileCell(Cell(vm.xtLoop))
	vm.compileCell(back)
	if orig != 0 {
		vm.mustStore(orig, vm.here)
	}
}

func p_ploop_compile(vm *VM) {
	back := vm.pop()
	orig := vm.pop()
	vm.compileCell(Cell(vm.xtPLoop))
	vm.compileCell(back)
	if orig != 0 {
		vm.mustStore(orig, vm.here)
	}
}

func p_i(vm *VM)      { vm.push(vm.rtos()) }
func p_j(vm *VM)      { vm.push(vm.rpickDepth(2)) }
func p_unloop(vm *VM) { vm.rpop(); vm.rpop() }

// --- CASE/OF/ENDOF/ENDCASE (IMMEDIATE) ---

func p_case(vm *VM) { vm.push(0) } // sentinel

func p_of(vm *VM) {
	vm.compileCell(Cell(vm.findOrAbort("over")))
	vm.compileCell(Cell(vm.findOrAbort("=")))
	vm.compileCell(Cell(vm.xt0Branch))
	orig := vm.here
	vm.compileCell(0)
	vm.compileCell(Cell(vm.findOrAbort("drop")))
	vm.push(orig)
}

func p_endof(vm *VM) {
	vm.compileCell(Cell(vm.xtBranch))
	fwd := vm.here
	vm.compileCell(0)
	orig := vm.pop()
	vm.mustStore(orig, vm.here)
	vm.push(fwd)
}

func p_endcase(vm *VM) {
	vm.compileCell(Cell(vm.findOrAbort("drop")))
	for vm.tos() != 0 {
		fwd := vm.pop()
		vm.mustStore(fwd, vm.here)
	}
	vm.pop() // sentinel
}
