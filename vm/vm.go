package vm

import (
	"bufio"
	"io"
	"os"

	"github.com/fifthvm/fifth/internal/fileinput"
	"github.com/fifthvm/fifth/internal/flushio"
)

// fileSlot tracks one open file handle, addressable by a small integer
// handle the way OPEN-FILE/CLOSE-FILE expect.
type fileSlot struct {
	f    *os.File
	open bool
}

// VM is one Fifth machine: dictionary, arena, stacks, and the bits of
// mutable interpreter state (base, compile state, current input) that the
// inner and outer interpreters thread through. A zero VM is not usable;
// construct one with New.
type VM struct {
	dict   []DictEntry
	latest int
	here   Cell

	mem *Arena

	dstack      []Cell
	rstack      []Cell
	dstackLimit int
	rstackLimit int

	state bool // true while compiling a colon definition
	base  int

	w  int  // xt currently dispatching
	ip Cell // threaded-code program counter, valid while a colon/does> body runs

	in  *fileinput.Input
	out flushio.WriteFlusher

	tib    string // current line being interpreted
	tibPos int

	// interactiveName, when non-empty, names the input source that should
	// receive "  ok"/"  compiled " prompts: the original REPL's stdin.
	interactiveName string

	files       []fileSlot
	fileReaders map[int]*bufio.Reader
	loaded      map[string]bool // REQUIRE dedup, keyed by absolute path
	includeDir  []string        // search path stack for relative includes, innermost last

	stdin *bufio.Reader // lazily opened for KEY/ACCEPT

	// cached execution tokens for the runtime-support words, set once by
	// registerPrimitives and consulted by the compiler and inner loop.
	xtLit    int
	xtBranch int
	xt0Branch int
	xtExit   int
	xtSLit   int
	xtDo     int
	xtQDo    int
	xtLoop   int
	xtPLoop  int
	xtDoes   int

	running  bool
	exitCode int

	logf func(string, ...interface{})

	pnoBuf [128]byte // pictured numeric output buffer, filled back-to-front
	pnoPos int
}

// reservedLow is how many arena bytes are reserved up front for system
// variables (STATE, BASE, etc.) before any dictionary word claims space,
// matching the original engine's choice to start HERE at 64.
const reservedLow = 64

// New constructs a ready-to-run VM with opts applied, the standard
// primitive set registered, and HERE positioned past the reserved low
// memory region.
func New(opts ...Option) *VM {
	vm := &VM{
		latest:      -1,
		here:        reservedLow,
		mem:         &Arena{},
		dstackLimit: defaultStackDepth,
		rstackLimit: defaultStackDepth,
		base:        10,
		in:          &fileinput.Input{},
		out:         flushio.NewWriteFlusher(io.Discard),
		loaded:      make(map[string]bool),
		running:     true,
		logf:        func(string, ...interface{}) {},
	}
	for _, opt := range opts {
		opt(vm)
	}
	if err := vm.mem.Grow(vm.here); err != nil {
		panic(err) // reservedLow is a small constant; this cannot fail
	}
	vm.registerPrimitives()
	return vm
}

// mustStore stores val at addr, halting the VM on failure. Used during
// bootstrap registration (AddVariable) and anywhere else a write is known
// to be in-bounds by construction.
func (vm *VM) mustStore(addr, val Cell) {
	if err := vm.mem.Store(addr, val); err != nil {
		vm.halt(err)
	}
}

// Close releases the VM's open file handles and nested input sources.
func (vm *VM) Close() error {
	for i := range vm.files {
		if vm.files[i].open {
			vm.files[i].f.Close()
			vm.files[i].open = false
		}
	}
	return vm.in.Close()
}

// ExitCode returns the VM's exit code. Nothing in the VM assigns it: BYE
// only stops the run, and a halt that escapes a line is returned by Run as
// an error, so it is always 0.
func (vm *VM) ExitCode() int { return vm.exitCode }

// Output returns the VM's current output sink, for primitives that need to
// write directly (EMIT, TYPE, numeric output).
func (vm *VM) Output() io.Writer { return vm.out }

// trace logs a single inner-loop step when tracing is enabled (see
// WithTrace); it is a no-op otherwise.
func (vm *VM) trace(format string, args ...interface{}) {
	vm.logf(format, args...)
}
