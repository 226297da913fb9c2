package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSBackslashQuoteEscapes(t *testing.T) {
	out, _ := runSource(t, `s\" line1\nline2\ttab" type`)
	assert.Equal(t, "line1\nline2\ttab", out)
}

func TestSBackslashQuoteEscapedQuoteDoesNotEnd(t *testing.T) {
	out, _ := runSource(t, `s\" say \"hi\"" type`)
	assert.Equal(t, `say "hi"`, out)
}

func TestBracketCharAndChar(t *testing.T) {
	out, _ := runSource(t, `char A . [char] B .`)
	assert.Equal(t, "65 66 ", out)
}

func TestPicturedNumericOutput(t *testing.T) {
	out, _ := runSource(t, `: show <# #s #> type ; 123 show`)
	assert.Equal(t, "123", out)
}

func TestPicturedNumericOutputWithSign(t *testing.T) {
	out, _ := runSource(t, `: show dup abs <# #s swap sign #> type ; -42 show`)
	assert.Equal(t, "-42", out)
}

func TestToNumberPartialConversion(t *testing.T) {
	out, _ := runSource(t, `s" 12ab" 0 0 2swap >number type`)
	assert.Equal(t, "ab", out)
}

func TestDigitValue(t *testing.T) {
	v, ok := digitValue('7')
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	v, ok = digitValue('a')
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	_, ok = digitValue('!')
	assert.False(t, ok)
}
