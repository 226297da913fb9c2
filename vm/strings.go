package vm

// This file implements string literals, character words, pictured numeric
// output, and the Gforth-compatible number-parsing words.

// stashString writes s into the arena at vm.here without advancing it (used
// by the interpret-mode path of S"/S\", which hands back a scratch address
// valid only until the next word that claims HERE).
func (vm *VM) stashString(s string) Cell {
	addr := vm.here
	vm.haltif(vm.mem.WriteAt(addr, []byte(s)))
	return addr
}

// compileString compiles (s") followed by the string's length and bytes,
// advancing here past the (cell-aligned) payload.
func (vm *VM) compileString(s string) {
	vm.compileCell(Cell(vm.xtSLit))
	vm.compileCell(Cell(len(s)))
	vm.haltif(vm.mem.WriteAt(vm.here, []byte(s)))
	vm.here += align(Cell(len(s)))
}

func p_s_quote(vm *VM) {
	s := vm.nextParse('"')
	if vm.state {
		vm.compileString(s)
	} else {
		addr := vm.stashString(s)
		vm.push(addr)
		vm.push(Cell(len(s)))
	}
}

var sQuoteEscapes = map[byte]byte{
	'n': '\n', 'r': '\r', 't': '\t', '"': '"', '\\': '\\',
	'0': 0, 'a': '\a', 'b': '\b', 'e': 27,
}

// p_s_bs_quote is S\", like S" but with backslash escapes; an escaped quote
// does not end the string, only a bare one does.
func p_s_bs_quote(vm *VM) {
	line, pos := vm.tib, vm.tibPos
	if pos < len(line) && line[pos] == ' ' {
		pos++
	}
	var buf []byte
	for pos < len(line) {
		c := line[pos]
		pos++
		if c == '"' {
			break
		}
		if c == '\\' && pos < len(line) {
			esc := line[pos]
			pos++
			if r, ok := sQuoteEscapes[esc]; ok {
				buf = append(buf, r)
			} else {
				buf = append(buf, esc)
			}
			continue
		}
		buf = append(buf, c)
	}
	vm.tibPos = pos

	s := string(buf)
	if vm.state {
		vm.compileString(s)
	} else {
		addr := vm.stashString(s)
		vm.push(addr)
		vm.push(Cell(len(s)))
	}
}

func p_bracket_char(vm *VM) {
	tok := vm.nextWord()
	if tok == "" {
		vm.haltf("[CHAR] needs a character")
	}
	if vm.state {
		vm.compileCell(Cell(vm.xtLit))
		vm.compileCell(Cell(tok[0]))
	} else {
		vm.push(Cell(tok[0]))
	}
}

func p_char(vm *VM) {
	tok := vm.nextWord()
	if tok == "" {
		vm.haltf("CHAR needs a character")
	}
	vm.push(Cell(tok[0]))
}

func p_parse_name(vm *VM) {
	tok := vm.nextWord()
	dest := vm.here
	vm.haltif(vm.mem.WriteAt(dest, []byte(tok)))
	vm.here += Cell(len(tok))
	vm.push(dest)
	vm.push(Cell(len(tok)))
}

// --- Pictured numeric output ---

func p_pno_begin(vm *VM) { vm.pnoPos = len(vm.pnoBuf) }

func pnoDigit(vm *VM, rem int) byte {
	if rem < 10 {
		return '0' + byte(rem)
	}
	return 'a' + byte(rem-10)
}

func p_pno_digit(vm *VM) {
	d := uint64(vm.pop())
	rem := int(d % uint64(vm.base))
	d /= uint64(vm.base)
	vm.push(Cell(d))
	vm.pnoPos--
	vm.pnoBuf[vm.pnoPos] = pnoDigit(vm, rem)
}

func p_pno_digits(vm *VM) {
	for {
		p_pno_digit(vm)
		if vm.tos() == 0 {
			break
		}
	}
}

func p_pno_end(vm *VM) {
	vm.pop()
	n := len(vm.pnoBuf) - vm.pnoPos
	addr := vm.here
	vm.haltif(vm.mem.WriteAt(addr, vm.pnoBuf[vm.pnoPos:vm.pnoPos+n]))
	vm.push(addr)
	vm.push(Cell(n))
}

func p_hold(vm *VM) {
	c := byte(vm.pop())
	vm.pnoPos--
	vm.pnoBuf[vm.pnoPos] = c
}

func p_sign(vm *VM) {
	if vm.pop() < 0 {
		vm.pnoPos--
		vm.pnoBuf[vm.pnoPos] = '-'
	}
}

// digitValue returns the numeric value of an ASCII digit/letter, and
// whether c is a plausible digit at all (the caller still checks it
// against the active base).
func digitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// --- Number parsing (Gforth compatibility) ---

func p_s_to_number(vm *VM) {
	length := vm.pop()
	addr := vm.pop()
	b, err := vm.mem.Bytes(addr, length)
	vm.haltif(err)
	s := string(b)
	for len(s) > 0 {
		c := s[len(s)-1]
		if c == ' ' || c == '\n' || c == '\r' {
			s = s[:len(s)-1]
			continue
		}
		break
	}
	if n, ok := tryNumber(s, vm.base); ok {
		vm.push(n)
		vm.push(0)
		vm.push(-1)
	} else {
		vm.push(0)
		vm.push(0)
		vm.push(0)
	}
}

// p_to_number converts as many leading digits of the string as are valid
// in the current base, returning the accumulated double (low cell only;
// the high cell is always 0, matching the engine this is grounded on) and
// the unconverted remainder.
func p_to_number(vm *VM) {
	u := vm.pop()
	addr := vm.pop()
	_ = vm.pop() // dhi, ignored
	dlo := vm.pop()

	for u > 0 {
		b, err := vm.mem.LoadByte(addr)
		vm.haltif(err)
		digit, ok := digitValue(b)
		if !ok || digit >= vm.base {
			break
		}
		dlo = dlo*Cell(vm.base) + Cell(digit)
		addr++
		u--
	}
	vm.push(dlo)
	vm.push(0)
	vm.push(addr)
	vm.push(u)
}
