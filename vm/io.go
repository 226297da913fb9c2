package vm

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fifthvm/fifth/internal/runeio"
)

// baseAddr is the fixed arena address BASE reads/writes through. Like
// STATE, changes to it don't feed back into the interpreter's own base
// unless DECIMAL/HEX are used — a faithfully preserved quirk of the
// engine this is grounded on, not a Go-side bug.
const baseAddr Cell = 8

// stdoutFID is the sentinel file id EMIT-FILE/WRITE-FILE recognize as
// meaning "the VM's own output sink" rather than a slot in vm.files.
const stdoutFID Cell = -2

// writeRune writes r through the ANSI-safe rune writer: ASCII passes
// through as a raw byte, NEL becomes "\r\n", the other C1 controls get
// their classic 7-bit escape form, everything else is UTF-8 encoded.
func (vm *VM) writeRune(r rune) {
	if _, err := runeio.WriteANSIRune(vm.out, r); err != nil {
		vm.haltf("write: %v", err)
	}
}

func p_emit(vm *VM) {
	vm.writeRune(rune(vm.pop()))
}

func p_type(vm *VM) {
	length := vm.pop()
	addr := vm.pop()
	b, err := vm.mem.Bytes(addr, length)
	vm.haltif(err)
	vm.out.Write(b)
}

func p_cr(vm *VM) { fmt.Fprint(vm.out, "\n") }

func p_key(vm *VM) {
	var buf [1]byte
	if _, err := vm.keyReader().Read(buf[:]); err != nil {
		vm.push(-1)
		return
	}
	vm.push(Cell(buf[0]))
}

func p_accept(vm *VM) {
	maxlen := vm.pop()
	addr := vm.pop()
	line, err := vm.keyReader().ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		vm.push(0)
		return
	}
	if Cell(len(line)) > maxlen {
		line = line[:maxlen]
	}
	vm.haltif(vm.mem.WriteAt(addr, []byte(line)))
	vm.push(Cell(len(line)))
}

// keyReader lazily wraps stdin for KEY/ACCEPT, independent of whatever
// nested source driveInput is currently reading lines from.
func (vm *VM) keyReader() *bufio.Reader {
	if vm.stdin == nil {
		vm.stdin = bufio.NewReader(os.Stdin)
	}
	return vm.stdin
}

// --- File I/O ---

func (vm *VM) fileAlloc() int {
	for i := range vm.files {
		if !vm.files[i].open {
			return i
		}
	}
	vm.files = append(vm.files, fileSlot{})
	return len(vm.files) - 1
}

func cstr(vm *VM, addr, length Cell) string {
	b, err := vm.mem.Bytes(addr, length)
	vm.haltif(err)
	return string(b)
}

// expandPath expands a leading "~" (alone, or followed by "/") against
// $HOME, matching the engine's expand_path.
func expandPath(p string) string {
	if p == "~" {
		if home := os.Getenv("HOME"); home != "" {
			return home
		}
		return p
	}
	if strings.HasPrefix(p, "~/") {
		if home := os.Getenv("HOME"); home != "" {
			return home + p[1:]
		}
	}
	return p
}

func p_open_file(vm *VM) {
	mode := vm.pop()
	length := vm.pop()
	addr := vm.pop()
	path := expandPath(cstr(vm, addr, length))

	flags := os.O_RDONLY
	switch mode {
	case 1:
		flags = os.O_WRONLY
	case 2:
		flags = os.O_RDWR
	}

	f, err := os.OpenFile(path, flags, 0)
	if err != nil {
		vm.push(0)
		vm.push(-1)
		return
	}
	slot := vm.fileAlloc()
	vm.files[slot] = fileSlot{f: f, open: true}
	vm.push(Cell(slot))
	vm.push(0)
}

func p_create_file(vm *VM) {
	vm.pop() // mode, unused: always truncate-create like the engine does
	length := vm.pop()
	addr := vm.pop()
	path := expandPath(cstr(vm, addr, length))

	f, err := os.Create(path)
	if err != nil {
		vm.push(0)
		vm.push(-1)
		return
	}
	slot := vm.fileAlloc()
	vm.files[slot] = fileSlot{f: f, open: true}
	vm.push(Cell(slot))
	vm.push(0)
}

func (vm *VM) fileAt(fid Cell) (*os.File, bool) {
	i := int(fid)
	if i < 0 || i >= len(vm.files) || !vm.files[i].open {
		return nil, false
	}
	return vm.files[i].f, true
}

func p_close_file(vm *VM) {
	fid := vm.pop()
	f, ok := vm.fileAt(fid)
	if !ok {
		vm.push(-1)
		return
	}
	f.Close()
	vm.files[int(fid)].open = false
	vm.push(0)
}

func p_write_file(vm *VM) {
	fid := vm.pop()
	length := vm.pop()
	addr := vm.pop()
	if fid == stdoutFID {
		b, err := vm.mem.Bytes(addr, length)
		vm.haltif(err)
		if _, err := vm.out.Write(b); err != nil {
			vm.push(-1)
			return
		}
		vm.push(0)
		return
	}
	f, ok := vm.fileAt(fid)
	if !ok {
		vm.push(-1)
		return
	}
	b, err := vm.mem.Bytes(addr, length)
	vm.haltif(err)
	if _, err := f.Write(b); err != nil {
		vm.push(-1)
		return
	}
	vm.push(0)
}

func p_read_line(vm *VM) {
	fid := vm.pop()
	maxlen := vm.pop()
	addr := vm.pop()
	f, ok := vm.fileAt(fid)
	if !ok {
		vm.push(0)
		vm.push(0)
		vm.push(-1)
		return
	}
	r := vm.fileReader(int(fid), f)
	line, err := r.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil && line == "" {
		vm.push(0)
		vm.push(0)
		vm.push(0)
		return
	}
	if Cell(len(line)) > maxlen {
		line = line[:maxlen]
	}
	vm.haltif(vm.mem.WriteAt(addr, []byte(line)))
	vm.push(Cell(len(line)))
	vm.push(-1)
	vm.push(0)
}

// fileReader returns a buffered reader cached per file slot so that
// repeated READ-LINE calls don't lose any data already buffered past the
// last line.
func (vm *VM) fileReader(slot int, f *os.File) *bufio.Reader {
	if vm.fileReaders == nil {
		vm.fileReaders = make(map[int]*bufio.Reader)
	}
	r, ok := vm.fileReaders[slot]
	if !ok {
		r = bufio.NewReader(f)
		vm.fileReaders[slot] = r
	}
	return r
}

func p_emit_file(vm *VM) {
	fid := vm.pop()
	c := vm.pop()
	if fid == stdoutFID {
		vm.writeRune(rune(c))
		vm.push(0)
		return
	}
	f, ok := vm.fileAt(fid)
	if !ok {
		vm.push(-1)
		return
	}
	fmt.Fprintf(f, "%c", byte(c))
	vm.push(0)
}

func p_flush_file(vm *VM) {
	fid := vm.pop()
	if fid == stdoutFID {
		vm.out.Flush()
		vm.push(0)
		return
	}
	f, ok := vm.fileAt(fid)
	if !ok {
		vm.push(-1)
		return
	}
	f.Sync()
	vm.push(0)
}

func p_ro(vm *VM) { vm.push(0) }
func p_wo(vm *VM) { vm.push(1) }
func p_rw(vm *VM) { vm.push(2) }

func p_throw(vm *VM) {
	ior := vm.pop()
	if ior != 0 {
		vm.haltf("THROW %d", ior)
	}
}

func p_stdout(vm *VM) { vm.push(stdoutFID) }

// --- System ---

func p_system(vm *VM) {
	length := vm.pop()
	addr := vm.pop()
	cmd := cstr(vm, addr, length)
	c := exec.Command("sh", "-c", cmd)
	c.Stdout = vm.out
	c.Stderr = os.Stderr
	c.Stdin = os.Stdin
	c.Run()
}

func p_bye(vm *VM) { vm.running = false }

func p_getenv(vm *VM) {
	length := vm.pop()
	addr := vm.pop()
	name := cstr(vm, addr, length)
	val, ok := os.LookupEnv(name)
	if !ok {
		vm.push(0)
		vm.push(0)
		return
	}
	dest := vm.here
	vm.haltif(vm.mem.WriteAt(dest, []byte(val)))
	vm.here += Cell(len(val))
	vm.push(dest)
	vm.push(Cell(len(val)))
}

// openForRead opens path for the nested-input stack (INCLUDE/REQUIRE/
// INCLUDED); a thin wrapper so loadFile doesn't need to import os itself.
func (vm *VM) openForRead(path string) (*os.File, error) {
	return os.Open(path)
}

// --- File loading: INCLUDE/REQUIRE/INCLUDED ---

func (vm *VM) resolveIncludePath(name string) string {
	path := expandPath(name)
	if filepath.IsAbs(path) {
		return path
	}
	for i := len(vm.includeDir) - 1; i >= 0; i-- {
		candidate := filepath.Join(vm.includeDir[i], path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// nextFileName consumes the next whitespace-delimited token as a file
// name. Unlike nextWord it has no length limit.
func (vm *VM) nextFileName() string {
	line, pos := vm.tib, vm.tibPos
	for pos < len(line) && line[pos] <= ' ' {
		pos++
	}
	start := pos
	for pos < len(line) && line[pos] > ' ' {
		pos++
	}
	vm.tibPos = pos
	return line[start:pos]
}

func p_include(vm *VM) {
	name := vm.nextFileName()
	if name == "" {
		vm.haltf("INCLUDE requires a filename")
	}
	vm.haltif(vm.loadFile(vm.resolveIncludePath(name)))
}

func p_require(vm *VM) {
	name := vm.nextFileName()
	if name == "" {
		vm.haltf("REQUIRE requires a filename")
	}
	path := vm.resolveIncludePath(name)
	resolved, err := filepath.Abs(path)
	if err != nil {
		resolved = path
	}
	if vm.loaded[resolved] {
		return
	}
	vm.loaded[resolved] = true
	vm.haltif(vm.loadFile(path))
}

func p_included(vm *VM) {
	length := vm.pop()
	addr := vm.pop()
	path := expandPath(cstr(vm, addr, length))
	vm.haltif(vm.loadFile(path))
}

// --- Comments ---

func p_backslash(vm *VM) { vm.tibPos = len(vm.tib) }
func p_paren(vm *VM)     { vm.nextParse(')') }

// --- Base ---

func p_base(vm *VM) {
	vm.mustStore(baseAddr, Cell(vm.base))
	vm.push(baseAddr)
}
func p_decimal(vm *VM) { vm.base = 10 }
func p_hex(vm *VM)     { vm.base = 16 }

// --- Slurp ---

func p_slurp_file(vm *VM) {
	length := vm.pop()
	addr := vm.pop()
	path := expandPath(cstr(vm, addr, length))

	data, err := os.ReadFile(path)
	if err != nil {
		vm.push(0)
		vm.push(0)
		return
	}
	dest := vm.here
	vm.haltif(vm.mem.WriteAt(dest, data))
	vm.push(dest)
	vm.push(Cell(len(data)))
}
