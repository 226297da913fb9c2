// Package fileinput supplies a stack of nested named input sources — stdin
// plus any files pulled in by INCLUDE/REQUIRE — read one line at a time, the
// same granularity the engine's outer interpreter consumes.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a line within a named source, for diagnostics.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// source is one entry in the Input stack.
type source struct {
	Location
	r  *bufio.Scanner
	cl io.Closer
}

// Input is a stack of nested line-based sources. Pushing a new source (via
// Push) suspends the current one until the new one hits EOF, matching
// nested file inclusion: INCLUDE/REQUIRE push, and exhausting a file pops
// back to whatever was including it.
type Input struct {
	stack []*source
	Last  Location
}

// Push adds r as the new innermost input source, read until it is
// exhausted before falling back to whatever was pushed before it. name
// identifies it in Location/diagnostics.
func (in *Input) Push(name string, r io.Reader) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 1024*1024)
	cl, _ := r.(io.Closer)
	in.stack = append(in.stack, &source{
		Location: Location{Name: name, Line: 0},
		r:        sc,
		cl:       cl,
	})
}

// Depth reports how many sources are currently nested, including the
// innermost one.
func (in *Input) Depth() int { return len(in.stack) }

// ReadLine returns the next line of text from the innermost live source,
// popping exhausted sources and falling back to their parent until one
// yields a line or the stack is empty (io.EOF).
func (in *Input) ReadLine() (string, error) {
	for len(in.stack) > 0 {
		top := in.stack[len(in.stack)-1]
		if top.r.Scan() {
			top.Line++
			in.Last = top.Location
			return top.r.Text(), nil
		}
		if err := top.r.Err(); err != nil {
			in.pop()
			return "", err
		}
		in.pop()
	}
	return "", io.EOF
}

// Top returns the Location of the innermost source, for error reporting.
func (in *Input) Top() (Location, bool) {
	if len(in.stack) == 0 {
		return Location{}, false
	}
	return in.stack[len(in.stack)-1].Location, true
}

func (in *Input) pop() {
	n := len(in.stack) - 1
	top := in.stack[n]
	if top.cl != nil {
		top.cl.Close()
	}
	in.stack = in.stack[:n]
}

// PopTo closes and discards nested sources, innermost first, until at most
// depth remain. It is a no-op if the stack is already that shallow or
// shallower.
func (in *Input) PopTo(depth int) {
	for len(in.stack) > depth {
		in.pop()
	}
}

// Close closes every remaining nested source, innermost first.
func (in *Input) Close() error {
	var err error
	for len(in.stack) > 0 {
		n := len(in.stack) - 1
		if top := in.stack[n]; top.cl != nil {
			if cerr := top.cl.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
		in.stack = in.stack[:n]
	}
	return err
}
