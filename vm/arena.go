package vm

import "fmt"

// Arena is the engine's single data space: a growable, byte-addressable
// slice of memory. Dictionary bodies, compiled threaded code, and string
// literals all live here; cell-granularity accesses (Load/Store) require
// cell alignment, while byte-granularity accesses (LoadByte/StoreByte) do
// not. The arena never shrinks and is never aliased between a parent VM and
// a clone spawned from it.
type Arena struct {
	bytes []byte
	limit int // 0 means unlimited
}

// LimitError reports that growing the arena would exceed its configured
// memory limit.
type LimitError struct {
	Requested int
	Limit     int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("arena: grow to %d bytes exceeds limit %d", e.Requested, e.Limit)
}

// SetLimit bounds the arena's total size in bytes. A limit of 0 means
// unlimited, the default.
func (a *Arena) SetLimit(n int) { a.limit = n }

// Size returns the arena's current committed size in bytes.
func (a *Arena) Size() Cell { return Cell(len(a.bytes)) }

// Grow ensures the arena is at least n bytes long, zero-filling any new
// space. It returns a *LimitError if doing so would exceed the configured
// limit.
func (a *Arena) Grow(n Cell) error {
	want := int(n)
	if want <= len(a.bytes) {
		return nil
	}
	if a.limit > 0 && want > a.limit {
		return &LimitError{Requested: want, Limit: a.limit}
	}
	grown := make([]byte, want)
	copy(grown, a.bytes)
	a.bytes = grown
	return nil
}

func (a *Arena) checkRange(addr, n Cell) error {
	if addr < 0 || n < 0 || int(addr+n) > len(a.bytes) {
		return fmt.Errorf("arena: access [%d,%d) out of range (size %d)", addr, addr+n, len(a.bytes))
	}
	return nil
}

// Load reads one cell at addr (must be cell-aligned).
func (a *Arena) Load(addr Cell) (Cell, error) {
	if err := a.checkRange(addr, cellSize); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < cellSize; i++ {
		v |= uint64(a.bytes[int(addr)+i]) << (8 * uint(i))
	}
	return Cell(v), nil
}

// Store writes one cell at addr (must be cell-aligned), growing the arena
// if necessary.
func (a *Arena) Store(addr Cell, val Cell) error {
	if err := a.Grow(addr + cellSize); err != nil {
		return err
	}
	v := uint64(val)
	for i := 0; i < cellSize; i++ {
		a.bytes[int(addr)+i] = byte(v >> (8 * uint(i)))
	}
	return nil
}

// LoadByte reads a single byte at addr.
func (a *Arena) LoadByte(addr Cell) (byte, error) {
	if err := a.checkRange(addr, 1); err != nil {
		return 0, err
	}
	return a.bytes[int(addr)], nil
}

// StoreByte writes a single byte at addr, growing the arena if necessary.
func (a *Arena) StoreByte(addr Cell, val byte) error {
	if err := a.Grow(addr + 1); err != nil {
		return err
	}
	a.bytes[int(addr)] = val
	return nil
}

// Bytes returns a slice view of n bytes starting at addr, without copying.
// Callers must not retain it across further arena growth.
func (a *Arena) Bytes(addr, n Cell) ([]byte, error) {
	if err := a.checkRange(addr, n); err != nil {
		return nil, err
	}
	return a.bytes[int(addr) : int(addr)+int(n)], nil
}

// WriteAt copies data into the arena at addr, growing it as needed.
func (a *Arena) WriteAt(addr Cell, data []byte) error {
	if err := a.Grow(addr + Cell(len(data))); err != nil {
		return err
	}
	copy(a.bytes[int(addr):], data)
	return nil
}

// Move copies n bytes from src to dst, handling overlap like memmove.
func (a *Arena) Move(dst, src, n Cell) error {
	if err := a.checkRange(src, n); err != nil {
		return err
	}
	if err := a.Grow(dst + n); err != nil {
		return err
	}
	copy(a.bytes[int(dst):int(dst)+int(n)], a.bytes[int(src):int(src)+int(n)])
	return nil
}

// Fill sets n bytes starting at dst to val.
func (a *Arena) Fill(dst, n Cell, val byte) error {
	if err := a.Grow(dst + n); err != nil {
		return err
	}
	buf := a.bytes[int(dst) : int(dst)+int(n)]
	for i := range buf {
		buf[i] = val
	}
	return nil
}

// Clone returns a deep copy of the arena, truncated to used (no aliasing
// with the receiver's backing array).
func (a *Arena) Clone(used Cell) *Arena {
	n := int(used)
	if n > len(a.bytes) {
		n = len(a.bytes)
	}
	cp := make([]byte, n)
	copy(cp, a.bytes[:n])
	return &Arena{bytes: cp, limit: a.limit}
}
