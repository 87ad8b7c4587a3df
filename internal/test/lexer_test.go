package test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTokensIncludeSeparators(t *testing.T) {
	assert.Contains(t, validTokens, ";")
	assert.Contains(t, validTokens, "//comment\n")

	for _, tok := range validTokens {
		assert.NotEmpty(t, tok)
	}
}

func TestGetRandomTokensWithSep(t *testing.T) {
	out := GetRandomTokensWithSep(50, "#")

	toks := strings.Split(out, "#")
	assert.Len(t, toks, 50)
	for _, tok := range toks {
		assert.Contains(t, validTokens, tok)
	}
}

func TestCounter(t *testing.T) {
	assert.Equal(t, "let x = 0;\nwhile (x < 3) {\n  x = x + 1;\n}\n", Counter(3))
}
