package vm

import "strings"

// entryKind tags what kind of dictionary entry a DictEntry is: the
// tagged-variant alternative to per-entry function-pointer dispatch.
type entryKind uint8

const (
	kindPrimitive entryKind = iota
	kindColon
	kindVariable
	kindConstant
	kindDoes
)

const (
	flagImmediate uint8 = 0x80
	flagHidden    uint8 = 0x40
	flagLenMask   uint8 = 0x3f
	nameMaxLen          = 31
)

// DictEntry is one dictionary word: a name, chaining link, flags, a tagged
// kind, and the kind-specific payload (Param for a variable/constant/colon
// body address, Does for a DOES> clause address).
type DictEntry struct {
	Link  int // index of the previous entry, -1 at the end of the chain
	Flags uint8
	Name  string
	Kind  entryKind
	Param Cell
	Does  Cell // -1 unless Kind == kindDoes
	prim  func(*VM)
}

// NameLen returns the name length encoded in the low six bits of Flags,
// which must always equal len(Name).
func (e *DictEntry) NameLen() int { return int(e.Flags & flagLenMask) }

// Immediate reports whether the word executes even while compiling.
func (e *DictEntry) Immediate() bool { return e.Flags&flagImmediate != 0 }

// Hidden reports whether the word is mid-definition and so invisible to Find.
func (e *DictEntry) Hidden() bool { return e.Flags&flagHidden != 0 }

func makeFlags(name string, immediate bool) uint8 {
	n := len(name)
	if n > nameMaxLen {
		n = nameMaxLen
	}
	f := uint8(n)
	if immediate {
		f |= flagImmediate
	}
	return f
}

// Find looks up name (case-insensitively) by walking the dictionary chain
// from latest, skipping hidden entries. It returns -1 if not found.
func (vm *VM) Find(name string) int {
	for i := vm.latest; i >= 0; i = vm.dict[i].Link {
		e := &vm.dict[i]
		if e.Hidden() {
			continue
		}
		if e.NameLen() != len(name) {
			continue
		}
		if strings.EqualFold(e.Name, name) {
			return i
		}
	}
	return -1
}

// define appends a new entry and returns its index, threading it onto the
// dictionary chain as the new latest word.
func (vm *VM) define(name string, immediate bool, kind entryKind) int {
	idx := len(vm.dict)
	vm.dict = append(vm.dict, DictEntry{
		Link:  vm.latest,
		Flags: makeFlags(name, immediate),
		Name:  name,
		Kind:  kind,
		Does:  -1,
	})
	vm.latest = idx
	return idx
}

// AddPrimitive registers a Go-implemented word.
func (vm *VM) AddPrimitive(name string, immediate bool, fn func(*VM)) int {
	idx := vm.define(name, immediate, kindPrimitive)
	vm.dict[idx].prim = fn
	return idx
}

// AddConstant registers a word that pushes a fixed value.
func (vm *VM) AddConstant(name string, value Cell) int {
	idx := vm.define(name, false, kindConstant)
	vm.dict[idx].Param = value
	return idx
}

// AddVariable registers a word whose body is one arena cell, initialized to
// initial, pushing its address when executed.
func (vm *VM) AddVariable(name string, initial Cell) int {
	idx := vm.define(name, false, kindVariable)
	vm.here = align(vm.here)
	vm.dict[idx].Param = vm.here
	vm.mustStore(vm.here, initial)
	vm.here += cellSize
	return idx
}
