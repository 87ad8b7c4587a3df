package test

import (
	"fmt"
	"math/rand"
	"strings"
)

var validTokens = []string{
	"let", "if", "else", "while", "print", "return", "true", "false",
	"(", ")", "{", "}", ";",
	"x", "counter", "loop_2",
	"+", "-", "*", "/", "&&", "||", ">", "<", "==", "===", "=",
	"0", "123", "3.25", "1000000",
	"//comment\n", "\n",
}

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	var toks []string
	for len(toks) < size {
		toks = append(toks, validTokens[rand.Intn(len(validTokens))])
	}

	return strings.Join(toks, sep)
}

// Counter returns a program that counts x up to n in a while loop.
func Counter(n int) string {
	return fmt.Sprintf("let x = 0;\nwhile (x < %d) {\n  x = x + 1;\n}\n", n)
}
