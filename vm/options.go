package vm

import (
	"io"

	"github.com/fifthvm/fifth/internal/flushio"
)

// Option configures a VM at construction time.
type Option func(*VM)

// WithInput seeds the VM's initial input source, named name, read one line
// at a time. Use this for a source file loaded before the VM runs; use
// WithREPL for an interactive stdin source that should print prompts.
func WithInput(name string, r io.Reader) Option {
	return func(vm *VM) { vm.in.Push(name, r) }
}

// WithREPL seeds the VM's input with an interactive source: lines read
// from r are echoed with "  ok"/"  compiled " prompts the way the original
// engine's REPL behaves. Only meaningful at depth 1 — reading from a
// nested INCLUDE/REQUIRE never prompts regardless of this setting.
func WithREPL(name string, r io.Reader) Option {
	return func(vm *VM) {
		vm.in.Push(name, r)
		vm.interactiveName = name
	}
}

// WithOutput adds w as an additional output sink; EMIT/TYPE/./etc. write to
// every sink added this way, not just the last one. Without any WithOutput
// the VM's output goes nowhere (io.Discard) — a bare New() is for running
// input purely for its stack-level effects.
func WithOutput(w io.Writer) Option {
	return func(vm *VM) { vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(w)) }
}

// WithMemLimit bounds the arena to at most n bytes. A limit of 0 (the
// default) means unlimited.
func WithMemLimit(n int) Option {
	return func(vm *VM) { vm.mem.SetLimit(n) }
}

// WithStackDepth overrides the default bound on both the data and return
// stacks.
func WithStackDepth(n int) Option {
	return func(vm *VM) {
		vm.dstackLimit = n
		vm.rstackLimit = n
	}
}

// WithTrace routes a log line for every inner-loop dispatch step through
// logf, for debugging. The default is silent.
func WithTrace(logf func(string, ...interface{})) Option {
	return func(vm *VM) { vm.logf = logf }
}

// WithIncludeDir pushes dir onto the search path consulted for relative
// INCLUDE/REQUIRE filenames.
func WithIncludeDir(dir string) Option {
	return func(vm *VM) { vm.includeDir = append(vm.includeDir, dir) }
}
