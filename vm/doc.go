// Package vm implements Fifth, a minimal Forth engine: a dictionary-driven
// outer interpreter, a threaded-code inner interpreter, a metacompiling
// control-flow compiler, cloned-VM concurrency, and a C source generator for
// an optional native execution path.
//
// Memory model: a single growable byte arena. Forth addresses are byte
// offsets into it; cells are stored and fetched through aligned accesses,
// and C@/C! address individual bytes within the same space.
package vm
