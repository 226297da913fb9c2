package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWord(t *testing.T) {
	tok, next := word("  dup drop", 0)
	assert.Equal(t, "dup", tok)
	tok, next = word("  dup drop", next)
	assert.Equal(t, "drop", tok)
	tok, _ = word("  dup drop", next)
	assert.Equal(t, "", tok)
}

func TestParseDelim(t *testing.T) {
	text, next := parseDelim(`s" hello world" drop`, 2, '"')
	assert.Equal(t, "hello world", text)
	tok, _ := word(`s" hello world" drop`, next)
	assert.Equal(t, "drop", tok)
}

func TestTryNumber(t *testing.T) {
	cases := []struct {
		in   string
		base int
		want Cell
		ok   bool
	}{
		{"123", 10, 123, true},
		{"-123", 10, -123, true},
		{"+5", 10, 5, true},
		{"$ff", 10, 255, true},
		{"0xFF", 10, 255, true},
		{"%101", 10, 5, true},
		{"#42", 16, 42, true},
		{"ff", 16, 255, true},
		{"notanumber", 10, 0, false},
		{"", 10, 0, false},
		{"-", 10, 0, false},
	}
	for _, c := range cases {
		got, ok := tryNumber(c.in, c.base)
		assert.Equalf(t, c.ok, ok, "parsing %q", c.in)
		if c.ok {
			assert.Equalf(t, c.want, got, "parsing %q", c.in)
		}
	}
}
