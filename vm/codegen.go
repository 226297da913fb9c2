package vm

import (
	"fmt"
	"strings"
)

// cRuntimeHeader declares the C-side stack primitives every generated word
// body calls into. It is emitted once per generated program, ahead of any
// word bodies.
const cRuntimeHeader = `#include <stdint.h>
#include <stdio.h>

typedef intptr_t cell_t;

static cell_t ds[256];
static int dsp = 0;

static void f_push(cell_t v) { ds[dsp++] = v; }
static cell_t f_pop(void) { return ds[--dsp]; }

static void f_add(void)  { cell_t b=f_pop(), a=f_pop(); f_push(a+b); }
static void f_sub(void)  { cell_t b=f_pop(), a=f_pop(); f_push(a-b); }
static void f_mul(void)  { cell_t b=f_pop(), a=f_pop(); f_push(a*b); }
static void f_div(void)  { cell_t b=f_pop(), a=f_pop(); f_push(a/b); }
static void f_dup(void)  { cell_t a=f_pop(); f_push(a); f_push(a); }
static void f_drop(void) { f_pop(); }
static void f_swap(void) { cell_t b=f_pop(), a=f_pop(); f_push(b); f_push(a); }
static void f_dot(void)  { printf("%ld ", (long)f_pop()); }
`

// sanitizeIdent turns a Forth word name into a valid C identifier, the way
// the engine this is grounded on does: map every byte that isn't
// alphanumeric or underscore to underscore, and prefix a leading digit.
func sanitizeIdent(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" {
		return "_"
	}
	if s[0] >= '0' && s[0] <= '9' {
		return "_" + s
	}
	return s
}

// builtinCName maps a handful of primitives with direct C runtime
// equivalents onto the function the generated code calls. Anything not
// listed here has no native translation and is left as a comment for a
// human (or a future primitive) to fill in, matching the source generator's
// own admission that not every primitive has a C body.
var builtinCName = map[string]string{
	"+": "f_add", "-": "f_sub", "*": "f_mul", "/": "f_div",
	"dup": "f_dup", "drop": "f_drop", "swap": "f_swap", ".": "f_dot",
}

// codegenWord renders xt's colon-definition body as a C function body,
// walking the threaded code the same way runLoop does but emitting a line
// of C per cell instead of dispatching it.
func (vm *VM) codegenWord(xt int) string {
	e := &vm.dict[xt]
	name := sanitizeIdent(e.Name)
	var b strings.Builder
	fmt.Fprintf(&b, "static void word_%s(void) {\n", name)

	ip := e.Param
	exited := false
	for !exited {
		cell, err := vm.mem.Load(ip)
		if err != nil {
			fmt.Fprintf(&b, "    // truncated: %v\n", err)
			break
		}
		ip += cellSize

		switch int(cell) {
		case vm.xtExit:
			fmt.Fprint(&b, "    return;\n")
			exited = true
			continue
		case vm.xtLit:
			lit, _ := vm.mem.Load(ip)
			ip += cellSize
			fmt.Fprintf(&b, "    f_push(%d);\n", lit)
		case vm.xtBranch:
			target, _ := vm.mem.Load(ip)
			ip += cellSize
			fmt.Fprintf(&b, "    goto L%d;\n", target)
		case vm.xt0Branch:
			target, _ := vm.mem.Load(ip)
			ip += cellSize
			fmt.Fprintf(&b, "    if (f_pop() == 0) goto L%d;\n", target)
		default:
			target := int(cell)
			if target < 0 || target >= len(vm.dict) {
				fmt.Fprintf(&b, "    // bad xt %d\n", target)
				continue
			}
			te := &vm.dict[target]
			switch te.Kind {
			case kindColon:
				fmt.Fprintf(&b, "    word_%s();\n", sanitizeIdent(te.Name))
			case kindPrimitive:
				if cname, ok := builtinCName[te.Name]; ok {
					fmt.Fprintf(&b, "    %s();\n", cname)
				} else {
					fmt.Fprintf(&b, "    // TODO: no C translation for %q\n", te.Name)
				}
			default:
				fmt.Fprintf(&b, "    // TODO: unsupported word kind for %q\n", te.Name)
			}
		}
		fmt.Fprintf(&b, "L%d:;\n", ip)
	}
	fmt.Fprint(&b, "}\n")
	return b.String()
}

// codegenProgram renders a complete standalone C translation unit: runtime
// header, a forward declaration and body for every colon word currently
// defined, and a main() that calls entry.
func (vm *VM) codegenProgram(entry int) string {
	var b strings.Builder
	b.WriteString(cRuntimeHeader)
	b.WriteString("\n")

	var bodies []string
	for i, e := range vm.dict {
		if e.Kind != kindColon || e.Hidden() {
			continue
		}
		fmt.Fprintf(&b, "static void word_%s(void);\n", sanitizeIdent(e.Name))
		bodies = append(bodies, vm.codegenWord(i))
	}
	b.WriteString("\n")
	for _, body := range bodies {
		b.WriteString(body)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "int main(void) {\n    word_%s();\n    return 0;\n}\n", sanitizeIdent(vm.dict[entry].Name))
	return b.String()
}

// p_emit_c writes the generated C translation of the most recently defined
// colon word (vm.latest) to the VM's output sink, for inspection without
// running it. ( -- )
func p_emit_c(vm *VM) {
	xt := vm.latestColon("EMIT-C")
	fmt.Fprint(vm.out, vm.codegenProgram(xt))
}

// p_jit generates a standalone C translation of the most recently defined
// colon word (vm.latest) and compiles and runs it via the host C toolchain
// (see jit.go/jit_stub.go). Built without the jit tag, it reports that the
// capability isn't available rather than silently falling back to the
// interpreter. ( -- )
func p_jit(vm *VM) {
	xt := vm.latestColon("JIT")
	src := vm.codegenProgram(xt)
	if err := runJIT(src); err != nil {
		vm.haltf("JIT: %v", err)
	}
}

// latestColon returns vm.latest, halting under who (the invoking word's
// name, for the error message) if it isn't a colon definition.
func (vm *VM) latestColon(who string) int {
	if vm.latest < 0 || vm.dict[vm.latest].Kind != kindColon {
		vm.haltf("%s: no colon definition to target", who)
	}
	return vm.latest
}
