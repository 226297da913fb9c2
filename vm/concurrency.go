package vm

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxThreads bounds the global thread-slot table, matching the original
// engine's fixed-size array of worker slots.
const maxThreads = 64

// threadSlot tracks one spawned worker: its cloned VM, the word it's
// running, and the result it leaves behind. The table is process-wide
// (not per-VM) because SPAWN/WAIT/WAIT-ALL/THREAD-DONE? are meant to
// coordinate across every VM in the process, mirroring the single static
// array the engine this is grounded on uses.
type threadSlot struct {
	vm     *VM
	xt     int
	active bool
	done   bool
	result Cell
	err    error
	doneCh chan struct{}
}

var (
	threadMu     sync.Mutex
	threads      [maxThreads]*threadSlot
	nextThreadID int
)

// Clone returns a new VM sharing none of the receiver's mutable state: a
// deep copy of the dictionary and the used prefix of the arena, fresh
// stacks, and the same cached runtime-support XTs, base, and output sink.
// It is the unit of work SPAWN hands to a new goroutine.
func (vm *VM) Clone() *VM {
	child := &VM{
		dict:        append([]DictEntry(nil), vm.dict...),
		latest:      vm.latest,
		here:        vm.here,
		mem:         vm.mem.Clone(vm.here),
		dstackLimit: vm.dstackLimit,
		rstackLimit: vm.rstackLimit,
		base:        vm.base,
		in:          nil,
		out:         vm.out,
		loaded:      make(map[string]bool, len(vm.loaded)),
		running:     true,
		logf:        vm.logf,
		xtLit:       vm.xtLit,
		xtBranch:    vm.xtBranch,
		xt0Branch:   vm.xt0Branch,
		xtExit:      vm.xtExit,
		xtSLit:      vm.xtSLit,
		xtDo:        vm.xtDo,
		xtQDo:       vm.xtQDo,
		xtLoop:      vm.xtLoop,
		xtPLoop:     vm.xtPLoop,
		xtDoes:      vm.xtDoes,
	}
	for k, v := range vm.loaded {
		child.loaded[k] = v
	}
	return child
}

func allocThreadSlot(child *VM, xt int) (int, bool) {
	threadMu.Lock()
	defer threadMu.Unlock()
	for i := 0; i < maxThreads; i++ {
		idx := (nextThreadID + i) % maxThreads
		if threads[idx] == nil || !threads[idx].active {
			nextThreadID = (idx + 1) % maxThreads
			threads[idx] = &threadSlot{vm: child, xt: xt, active: true, doneCh: make(chan struct{})}
			return idx, true
		}
	}
	return 0, false
}

// runWorker executes the slot's word to completion, pinned to its own OS
// thread the way the engine this is grounded on gives every spawned
// worker a real pthread. A panic (including an unrecovered halt) is
// captured as the worker's error rather than crashing the process.
func runWorker(id int) {
	slot := threads[id]
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(slot.doneCh)
	defer func() {
		if r := recover(); r != nil {
			if he, ok := r.(haltError); ok {
				slot.err = he
			} else {
				slot.err = fmt.Errorf("spawn: %v", r)
			}
		}
	}()

	slot.vm.Execute(slot.xt)
	if slot.vm.depth() > 0 {
		slot.result = slot.vm.pop()
	}
	threadMu.Lock()
	slot.done = true
	threadMu.Unlock()
}

func p_spawn(vm *VM) {
	xt := int(vm.pop())
	child := vm.Clone()
	id, ok := allocThreadSlot(child, xt)
	if !ok {
		vm.push(-1)
		return
	}
	go runWorker(id)
	vm.push(Cell(id))
}

func p_wait(vm *VM) {
	id := int(vm.pop())
	threadMu.Lock()
	if id < 0 || id >= maxThreads || threads[id] == nil || !threads[id].active {
		threadMu.Unlock()
		vm.push(0)
		return
	}
	slot := threads[id]
	threadMu.Unlock()

	<-slot.doneCh

	threadMu.Lock()
	slot.active = false
	threadMu.Unlock()

	vm.push(slot.result)
}

func p_wait_all(vm *VM) {
	threadMu.Lock()
	var slots []*threadSlot
	for i := 0; i < maxThreads; i++ {
		if threads[i] != nil && threads[i].active {
			slots = append(slots, threads[i])
		}
	}
	threadMu.Unlock()

	var g errgroup.Group
	for _, slot := range slots {
		slot := slot
		g.Go(func() error {
			<-slot.doneCh
			threadMu.Lock()
			slot.active = false
			threadMu.Unlock()
			return nil
		})
	}
	g.Wait()
}

func p_thread_done(vm *VM) {
	id := int(vm.pop())
	threadMu.Lock()
	defer threadMu.Unlock()
	if id < 0 || id >= maxThreads || threads[id] == nil || !threads[id].active {
		vm.push(-1) // invalid/unknown id counts as done
		return
	}
	vm.push(boolCell(threads[id].done))
}

func p_nproc(vm *VM) {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	vm.push(Cell(n))
}
