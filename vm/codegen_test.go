package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeIdent(t *testing.T) {
	assert.Equal(t, "square", sanitizeIdent("square"))
	assert.Equal(t, "_rot", sanitizeIdent("-rot"))
	assert.Equal(t, "_2dup", sanitizeIdent("2dup"))
	assert.Equal(t, "a_b", sanitizeIdent("a.b"))
}

func TestCodegenWordEmitsKnownPrimitives(t *testing.T) {
	_, m := runSource(t, ": square dup * ;")
	xt := m.Find("square")
	if !assert.GreaterOrEqual(t, xt, 0) {
		return
	}
	src := m.codegenWord(xt)
	assert.Contains(t, src, "static void word_square(void)")
	assert.Contains(t, src, "f_dup();")
	assert.Contains(t, src, "f_mul();")
	assert.Contains(t, src, "return;")
}

func TestCodegenWordCallsOtherColonWords(t *testing.T) {
	_, m := runSource(t, ": square dup * ; : quad square square ;")
	xt := m.Find("quad")
	if !assert.GreaterOrEqual(t, xt, 0) {
		return
	}
	src := m.codegenWord(xt)
	assert.Contains(t, src, "word_square();")
}

func TestCodegenProgramIncludesHeaderAndMain(t *testing.T) {
	_, m := runSource(t, ": square dup * ;")
	xt := m.Find("square")
	src := m.codegenProgram(xt)
	assert.Contains(t, src, "#include <stdint.h>")
	assert.Contains(t, src, "int main(void)")
	assert.Contains(t, src, "word_square();")
}

func TestEmitCWritesProgram(t *testing.T) {
	out, _ := runSource(t, `: square dup * ; emit-c`)
	assert.Contains(t, out, "int main(void)")
}

func TestJitWithoutBuildTagReportsUnavailable(t *testing.T) {
	out, _ := runSource(t, `: square dup * ; jit`)
	assert.Contains(t, out, "ABORT")
	assert.Contains(t, out, "jit")
}

func TestEmitCWithNoColonDefinitionAborts(t *testing.T) {
	out, _ := runSource(t, `emit-c`)
	assert.Contains(t, out, "ABORT")
}
