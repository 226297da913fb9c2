package vm

// registerPrimitives installs the standard word set, in the same order the
// engine this is grounded on does: the runtime-support words the compiler
// and inner loop reference by cached XT first, then everything else a
// source file can call by name.
func (vm *VM) registerPrimitives() {
	vm.xtLit = vm.AddPrimitive("(lit)", false, p_lit)
	vm.xtBranch = vm.AddPrimitive("(branch)", false, p_branch)
	vm.xt0Branch = vm.AddPrimitive("(0branch)", false, p_0branch)
	vm.xtExit = vm.AddPrimitive("(exit)", false, p_exit)
	vm.xtSLit = vm.AddPrimitive("(s\")", false, p_slit)
	vm.xtDo = vm.AddPrimitive("(do)", false, p_do_rt)
	vm.xtQDo = vm.AddPrimitive("(?do)", false, p_qdo_rt)
	vm.xtLoop = vm.AddPrimitive("(loop)", false, p_loop_rt)
	vm.xtPLoop = vm.AddPrimitive("(+loop)", false, p_ploop_rt)
	vm.xtDoes = vm.AddPrimitive("(does>)", false, p_does_runtime)

	// stack shuffling
	vm.AddPrimitive("dup", false, p_dup)
	vm.AddPrimitive("drop", false, p_drop)
	vm.AddPrimitive("swap", false, p_swap)
	vm.AddPrimitive("over", false, p_over)
	vm.AddPrimitive("rot", false, p_rot)
	vm.AddPrimitive("-rot", false, p_mrot)
	vm.AddPrimitive("nip", false, p_nip)
	vm.AddPrimitive("tuck", false, p_tuck)
	vm.AddPrimitive("?dup", false, p_qdup)
	vm.AddPrimitive("2dup", false, p_2dup)
	vm.AddPrimitive("2drop", false, p_2drop)
	vm.AddPrimitive("2swap", false, p_2swap)
	vm.AddPrimitive("2over", false, p_2over)
	vm.AddPrimitive(">r", false, p_to_r)
	vm.AddPrimitive("r>", false, p_r_from)
	vm.AddPrimitive("r@", false, p_r_fetch)
	vm.AddPrimitive("2>r", false, p_2to_r)
	vm.AddPrimitive("2r>", false, p_2r_from)
	vm.AddPrimitive("2r@", false, p_2r_fetch)
	vm.AddPrimitive("depth", false, p_depth)
	vm.AddPrimitive("pick", false, p_pick)

	// arithmetic
	vm.AddPrimitive("+", false, p_add)
	vm.AddPrimitive("-", false, p_sub)
	vm.AddPrimitive("*", false, p_mul)
	vm.AddPrimitive("/", false, p_div)
	vm.AddPrimitive("mod", false, p_mod)
	vm.AddPrimitive("/mod", false, p_divmod)
	vm.AddPrimitive("negate", false, p_negate)
	vm.AddPrimitive("abs", false, p_abs)
	vm.AddPrimitive("min", false, p_min)
	vm.AddPrimitive("max", false, p_max)
	vm.AddPrimitive("1+", false, p_1add)
	vm.AddPrimitive("1-", false, p_1sub)
	vm.AddPrimitive("*/", false, p_star_slash)

	// comparison and logic
	vm.AddPrimitive("=", false, p_eq)
	vm.AddPrimitive("<>", false, p_neq)
	vm.AddPrimitive("<", false, p_lt)
	vm.AddPrimitive(">", false, p_gt)
	vm.AddPrimitive("u<", false, p_ult)
	vm.AddPrimitive("0=", false, p_0eq)
	vm.AddPrimitive("0<", false, p_0lt)
	vm.AddPrimitive("0>", false, p_0gt)
	vm.AddPrimitive("and", false, p_and)
	vm.AddPrimitive("or", false, p_or)
	vm.AddPrimitive("xor", false, p_xor)
	vm.AddPrimitive("invert", false, p_invert)
	vm.AddPrimitive("lshift", false, p_lshift)
	vm.AddPrimitive("rshift", false, p_rshift)

	// memory
	vm.AddPrimitive("@", false, p_fetch)
	vm.AddPrimitive("!", false, p_store)
	vm.AddPrimitive("c@", false, p_cfetch)
	vm.AddPrimitive("c!", false, p_cstore)
	vm.AddPrimitive("+!", false, p_pstore)
	vm.AddPrimitive("here", false, p_here)
	vm.AddPrimitive("allot", false, p_allot)
	vm.AddPrimitive("cells", false, p_cells)
	vm.AddPrimitive("cell+", false, p_cell_plus)
	vm.AddPrimitive(",", false, p_comma)
	vm.AddPrimitive("c,", false, p_c_comma)
	vm.AddPrimitive("move", false, p_move)
	vm.AddPrimitive("fill", false, p_fill)
	vm.AddPrimitive("/string", false, p_slash_string)
	vm.AddPrimitive("count", false, p_count)

	// compiler and dictionary
	vm.AddPrimitive(":", false, p_colon)
	vm.AddPrimitive(";", true, p_semicolon)
	vm.AddPrimitive("immediate", false, p_immediate)
	vm.AddPrimitive("[", true, p_lbracket)
	vm.AddPrimitive("]", false, p_rbracket)
	vm.AddPrimitive("state", false, p_state)
	vm.AddPrimitive("'", false, p_tick)
	vm.AddPrimitive("[']", true, p_bracket_tick)
	vm.AddPrimitive("execute", false, p_execute)
	vm.AddPrimitive(">body", false, p_to_body)
	vm.AddPrimitive("create", false, p_create)
	vm.AddPrimitive("find", false, p_find)
	vm.AddPrimitive("literal", true, p_literal)
	vm.AddPrimitive("compile,", false, p_compile_comma)
	vm.AddPrimitive("postpone", true, p_postpone)
	vm.AddPrimitive("recurse", true, p_recurse)
	vm.AddPrimitive("exit", true, p_user_exit)
	vm.AddPrimitive("does>", true, p_does_compile)

	// control flow
	vm.AddPrimitive("if", true, p_if)
	vm.AddPrimitive("else", true, p_else)
	vm.AddPrimitive("then", true, p_then)
	vm.AddPrimitive("begin", true, p_begin)
	vm.AddPrimitive("while", true, p_while)
	vm.AddPrimitive("repeat", true, p_repeat)
	vm.AddPrimitive("until", true, p_until)
	vm.AddPrimitive("again", true, p_again)
	vm.AddPrimitive("do", true, p_do_compile)
	vm.AddPrimitive("?do", true, p_qdo_compile)
	vm.AddPrimitive("loop", true, p_loop_compile)
	vm.AddPrimitive("+loop", true, p_ploop_compile)
	vm.AddPrimitive("i", false, p_i)
	vm.AddPrimitive("j", false, p_j)
	vm.AddPrimitive("unloop", false, p_unloop)
	vm.AddPrimitive("case", true, p_case)
	vm.AddPrimitive("of", true, p_of)
	vm.AddPrimitive("endof", true, p_endof)
	vm.AddPrimitive("endcase", true, p_endcase)

	// strings, characters, numeric output
	vm.AddPrimitive("s\"", true, p_s_quote)
	vm.AddPrimitive("s\\\"", true, p_s_bs_quote)
	vm.AddPrimitive("[char]", true, p_bracket_char)
	vm.AddPrimitive("char", false, p_char)
	vm.AddPrimitive("parse-name", false, p_parse_name)
	vm.AddPrimitive(".\"", true, p_dot_quote)
	vm.AddPrimitive(".(", true, p_dot_paren)
	vm.AddPrimitive("abort\"", true, p_abort_quote)
	vm.AddPrimitive("<#", false, p_pno_begin)
	vm.AddPrimitive("#", false, p_pno_digit)
	vm.AddPrimitive("#s", false, p_pno_digits)
	vm.AddPrimitive("#>", false, p_pno_end)
	vm.AddPrimitive("hold", false, p_hold)
	vm.AddPrimitive("sign", false, p_sign)
	vm.AddPrimitive(".", false, p_dot)
	vm.AddPrimitive("u.", false, p_u_dot)
	vm.AddPrimitive(".s", false, p_dot_s)

	// misc
	vm.AddPrimitive("noop", false, p_noop)
	vm.AddPrimitive("true", false, p_true)
	vm.AddPrimitive("false", false, p_false)
	vm.AddPrimitive("bl", false, p_bl)
	vm.AddPrimitive("space", false, p_space)
	vm.AddPrimitive("spaces", false, p_spaces)
	vm.AddPrimitive("abort", false, p_abort)

	// console and file I/O
	vm.AddPrimitive("emit", false, p_emit)
	vm.AddPrimitive("type", false, p_type)
	vm.AddPrimitive("cr", false, p_cr)
	vm.AddPrimitive("key", false, p_key)
	vm.AddPrimitive("accept", false, p_accept)
	vm.AddPrimitive("open-file", false, p_open_file)
	vm.AddPrimitive("create-file", false, p_create_file)
	vm.AddPrimitive("close-file", false, p_close_file)
	vm.AddPrimitive("write-file", false, p_write_file)
	vm.AddPrimitive("read-line", false, p_read_line)
	vm.AddPrimitive("emit-file", false, p_emit_file)
	vm.AddPrimitive("flush-file", false, p_flush_file)
	vm.AddPrimitive("r/o", false, p_ro)
	vm.AddPrimitive("w/o", false, p_wo)
	vm.AddPrimitive("r/w", false, p_rw)
	vm.AddPrimitive("throw", false, p_throw)
	vm.AddPrimitive("stdout", false, p_stdout)

	// system
	vm.AddPrimitive("system", false, p_system)
	vm.AddPrimitive("bye", false, p_bye)
	vm.AddPrimitive("getenv", false, p_getenv)

	// file loading and comments
	vm.AddPrimitive("include", false, p_include)
	vm.AddPrimitive("require", false, p_require)
	vm.AddPrimitive("included", false, p_included)
	vm.AddPrimitive("\\", true, p_backslash)
	vm.AddPrimitive("(", true, p_paren)

	// base
	vm.AddPrimitive("base", false, p_base)
	vm.AddPrimitive("decimal", false, p_decimal)
	vm.AddPrimitive("hex", false, p_hex)

	vm.AddPrimitive("slurp-file", false, p_slurp_file)

	// concurrency
	vm.AddPrimitive("spawn", false, p_spawn)
	vm.AddPrimitive("wait", false, p_wait)
	vm.AddPrimitive("wait-all", false, p_wait_all)
	vm.AddPrimitive("thread-done?", false, p_thread_done)
	vm.AddPrimitive("nproc", false, p_nproc)

	// code generation
	vm.AddPrimitive("jit", false, p_jit)
	vm.AddPrimitive("emit-c", false, p_emit_c)

	// Gforth-compatible number parsing
	vm.AddPrimitive("s>number?", false, p_s_to_number)
	vm.AddPrimitive(">number", false, p_to_number)

	vm.AddConstant("cell", cellSize)
}
