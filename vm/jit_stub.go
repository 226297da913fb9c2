// +build !jit

package vm

import "fmt"

// runJIT is the default, toolchain-free build: JIT can still generate C
// (EMIT-C), it just can't compile and run it in-process. Building with the
// jit tag swaps in the real implementation in jit.go.
func runJIT(src string) error {
	return fmt.Errorf("built without the jit tag: no native C toolchain wired in")
}
