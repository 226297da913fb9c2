package vm

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSource(t *testing.T, src string) (string, *VM) {
	t.Helper()
	var out bytes.Buffer
	m := New(WithInput("test", strings.NewReader(src)), WithOutput(&out))
	require.NoError(t, m.Run())
	return out.String(), m
}

func TestArithmeticAndDot(t *testing.T) {
	out, _ := runSource(t, "2 3 + . ")
	assert.Equal(t, "5 ", out)
}

func TestColonDefinition(t *testing.T) {
	out, _ := runSource(t, ": square dup * ; 5 square .")
	assert.Equal(t, "25 ", out)
}

func TestIfElseThen(t *testing.T) {
	out, _ := runSource(t, `: sign? dup 0< if ." negative" else ." non-negative" then ;
		-3 sign? 7 sign?`)
	assert.Equal(t, "negativenon-negative", out)
}

func TestDoLoop(t *testing.T) {
	out, _ := runSource(t, ": count 5 0 do i . loop ; count")
	assert.Equal(t, "0 1 2 3 4 ", out)
}

func TestBeginUntil(t *testing.T) {
	out, _ := runSource(t, ": down 3 begin dup . 1- dup 0= until drop ; down")
	assert.Equal(t, "3 2 1 ", out)
}

func TestStringLiteralAndType(t *testing.T) {
	out, _ := runSource(t, `s" hello" type`)
	assert.Equal(t, "hello", out)
}

func TestDotQuoteCompiled(t *testing.T) {
	out, _ := runSource(t, `: greet ." hi there" ; greet`)
	assert.Equal(t, "hi there", out)
}

func TestCaseOf(t *testing.T) {
	out, _ := runSource(t, `: name case 1 of ." one" endof 2 of ." two" endof ." other" endcase ;
		2 name`)
	assert.Equal(t, "two", out)
}

func TestUndefinedWordAborts(t *testing.T) {
	out, _ := runSource(t, "1 2 bogus-word 3 4 + .")
	assert.Contains(t, out, "ABORT")
	// with no REPL source, the abort drains every input source, so nothing
	// after it runs
}

func TestDivideByZeroAborts(t *testing.T) {
	out, _ := runSource(t, "1 0 / .")
	assert.Contains(t, out, "ABORT")
}

func TestDotSPrintsTopFirst(t *testing.T) {
	out, _ := runSource(t, "1 2 3 .s")
	assert.Equal(t, "<3> 3 2 1 ", out)
}

func TestCreateAndFetchStore(t *testing.T) {
	out, _ := runSource(t, "create counter 0 , counter @ . 1 counter +! counter @ .")
	assert.Equal(t, "0 1 ", out)
}

func TestRecurse(t *testing.T) {
	src := `: fact dup 1 > if dup 1- recurse * else drop 1 then ;
		5 fact .`
	out, _ := runSource(t, src)
	assert.Equal(t, "120 ", out)
}

func TestBaseHexDecimal(t *testing.T) {
	out, _ := runSource(t, "hex ff . decimal")
	assert.Equal(t, "255 ", out)
}

func TestCreateDoesConstant(t *testing.T) {
	out, _ := runSource(t, ": make-const create , does> @ ; 5 make-const foo foo .")
	assert.Equal(t, "5 ", out)
}

// TestAbortMidIncludeResumesOuterSource checks that an ABORT partway through
// an INCLUDE'd file drops the rest of that file and resumes at the source
// that did the INCLUDE, rather than continuing to read the aborted file.
func TestAbortMidIncludeResumesOuterSource(t *testing.T) {
	dir := t.TempDir()
	included := filepath.Join(dir, "included.fs")
	require.NoError(t, os.WriteFile(included, []byte(`." inside" bogus-word ." never"`+"\n"), 0644))

	var out bytes.Buffer
	src := fmt.Sprintf("include %s\n.\" after\"\n", included)
	m := New(WithREPL("<repl>", strings.NewReader(src)), WithOutput(&out))
	require.NoError(t, m.Run())

	got := out.String()
	assert.Contains(t, got, "inside")
	assert.Contains(t, got, "ABORT")
	assert.Contains(t, got, "after")
	assert.NotContains(t, got, "never")
}
