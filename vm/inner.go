package vm

import "github.com/fifthvm/fifth/internal/panicerr"

// w and ip live on the VM itself (not passed as parameters) to match the
// original engine's single-threaded register style; cloned VMs each get
// their own copy, so this is safe across concurrent clones.
//
// w is the execution token currently dispatching; ip is the threaded-code
// program counter into the arena, valid only while running a colon or
// does> body.

// docol enters a colon definition: push the return address, then jump the
// instruction pointer to the definition's compiled body.
func docol(vm *VM, xt int) {
	vm.rpush(vm.ip)
	vm.ip = vm.dict[xt].Param
}

// dovar pushes a variable's address.
func dovar(vm *VM, xt int) {
	vm.push(vm.dict[xt].Param)
}

// docon pushes a constant's value.
func docon(vm *VM, xt int) {
	vm.push(vm.dict[xt].Param)
}

// dodoes pushes a CREATEd word's parameter field, then enters its DOES>
// clause the same way docol enters a colon body.
func dodoes(vm *VM, xt int) {
	vm.push(vm.dict[xt].Param)
	vm.rpush(vm.ip)
	vm.ip = vm.dict[xt].Does
}

// Execute dispatches xt once. Colon and does> words then run the
// threaded-code loop until their matching (exit); primitives, variables,
// and constants return immediately.
func (vm *VM) Execute(xt int) {
	vm.w = xt
	e := &vm.dict[xt]
	switch e.Kind {
	case kindColon:
		docol(vm, xt)
		vm.runLoop()
	case kindDoes:
		dodoes(vm, xt)
		vm.runLoop()
	case kindVariable:
		dovar(vm, xt)
	case kindConstant:
		docon(vm, xt)
	case kindPrimitive:
		e.prim(vm)
	}
}

// runLoop drives the threaded-code inner interpreter: fetch the cell at ip,
// advance ip, dispatch it as an xt, and repeat until the return stack
// unwinds back below the depth it had when this invocation started. That
// depth is captured after the initiating docol/dodoes has already pushed
// one return address, so the loop ends as soon as the matching (exit) pops
// it: a colon word whose body is just "(exit)" runs that one step and
// returns. Only a word started through Execute (EXECUTE, the outer
// interpreter) gets a runLoop, and so a base, of its own.
//
// Nested calls don't actually recurse through runLoop: a docol inside a
// docol just pushes another return address and keeps running in the same
// loop, so Go's own call stack never grows with Forth call depth.
func (vm *VM) runLoop() {
	rBase := len(vm.rstack)
	for vm.running && len(vm.rstack) >= rBase {
		xt := int(vm.fetchIP())
		vm.w = xt
		e := &vm.dict[xt]
		vm.trace("xt %d %s", xt, e.Name)
		switch e.Kind {
		case kindColon:
			docol(vm, xt)
		case kindDoes:
			dodoes(vm, xt)
		case kindVariable:
			dovar(vm, xt)
		case kindConstant:
			docon(vm, xt)
		case kindPrimitive:
			e.prim(vm)
		}
	}
}

// fetchIP reads the cell at ip and advances ip past it.
func (vm *VM) fetchIP() Cell {
	v, err := vm.mem.Load(vm.ip)
	vm.haltif(err)
	vm.ip += cellSize
	return v
}

// compileCell appends xt (or a literal value) to the definition currently
// under construction, advancing here.
func (vm *VM) compileCell(v Cell) {
	vm.mustStore(vm.here, v)
	vm.here += cellSize
}

// Run drives the VM over its configured input until EOF, a fatal error, or
// BYE. It isolates the run in its own goroutine via panicerr.Recover so
// that an unrecovered Go panic surfaces as an error rather than crashing
// the process, matching how a worker spawned via SPAWN is isolated.
func (vm *VM) Run() error {
	return panicerr.Recover("fifth", vm.runOnce)
}

func (vm *VM) runOnce() (err error) {
	defer vm.out.Flush()
	defer func() {
		if r := recover(); r != nil {
			if he, ok := r.(haltError); ok {
				err = he
				return
			}
			panic(r)
		}
	}()
	vm.driveInput()
	return nil
}
