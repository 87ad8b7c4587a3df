package stride

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type BufferedTokenizerMocker struct {
	buf []Token
	pos int
}

func NewBufferedTokenizerMocker(toks []Token) *BufferedTokenizerMocker {
	return &BufferedTokenizerMocker{
		buf: toks,
		pos: 0,
	}
}

func (b *BufferedTokenizerMocker) Do() {
	return
}

func (b *BufferedTokenizerMocker) Get() Token {
	if len(b.buf) <= b.pos {
		return Token{Typ: TokenEOF}
	}

	tok := b.buf[b.pos]
	b.pos++

	return tok
}

func (b *BufferedTokenizerMocker) GetFilename() string {
	return "testing"
}

func num(v float64) *NumberLiteral {
	return &NumberLiteral{Value: v}
}

func ident(name string) *Identifier {
	return &Identifier{Name: name}
}

func binary(op BinaryOp, lhs, rhs Expr) *BinaryExpr {
	return &BinaryExpr{Operation: op, Op1: lhs, Op2: rhs}
}

func TestParser(t *testing.T) {
	cases := []struct {
		data   []Token
		fail   bool
		expect []Stmt
	}{
		{
			[]Token{
				{TokenLet, "let", nil},
				{TokenIdentifier, "x", nil},
				{TokenAssign, "=", nil},
				{TokenNumber, "1", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Stmt{
				&LetStmt{Name: "x", Value: num(1)},
			},
		},
		{
			[]Token{
				{TokenLineComment, "this is a comment", nil},
			},
			false,
			nil,
		},
		{
			[]Token{
				{TokenWhile, "while", nil},
				{TokenOpenParentheses, "(", nil},
				{TokenTrue, "true", nil},
				{TokenCloseParentheses, ")", nil},
				{TokenOpenCurly, "{", nil},
				{TokenLineComment, " this is a comment ", nil},
				{TokenCloseCurly, "}", nil},
			},
			false,
			[]Stmt{
				&WhileStmt{Test: &BoolLiteral{Value: true}, Body: []Stmt{}},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "únicódeShouldBeVàlid", nil},
				{TokenAssign, "=", nil},
				{TokenFalse, "false", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Stmt{
				&AssignStmt{Name: "únicódeShouldBeVàlid", Value: &BoolLiteral{Value: false}},
			},
		},
		{
			[]Token{
				{TokenLet, "let", nil},
				{TokenAssign, "=", nil},
				{TokenNumber, "1", nil},
				{TokenSemicolon, ";", nil},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenIdentifier, "x", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "3", nil},
				{TokenMulti, "*", nil},
				{TokenNumber, "2", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Stmt{
				&ExprStmt{
					Expr: binary(BinaryAddition, ident("x"), binary(BinaryMultiplication, num(3), num(2))),
				},
			},
		},
		{
			[]Token{
				{TokenOpenParentheses, "(", nil},
				{TokenNumber, "1", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "3", nil},
				{TokenCloseParentheses, ")", nil},
				{TokenMulti, "*", nil},
				{TokenNumber, "2", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Stmt{
				&ExprStmt{
					Expr: binary(BinaryMultiplication, binary(BinaryAddition, num(1), num(3)), num(2)),
				},
			},
		},
		{
			[]Token{
				{TokenNumber, "1", nil},
				{TokenMinus, "-", nil},
				{TokenNumber, "3", nil},
				{TokenPlus, "+", nil},
				{TokenNumber, "1", nil},
				{TokenSemicolon, ";", nil},
			},
			false,
			[]Stmt{
				&ExprStmt{
					Expr: binary(BinaryAddition, binary(BinarySubtraction, num(1), num(3)), num(1)),
				},
			},
		},
		{
			[]Token{
				{TokenPrint, "print", nil},
				{TokenOpenParentheses, "(", nil},
				{TokenNumber, "1", nil},
			},
			true,
			nil,
		},
	}

	for _, c := range cases {
		tokenizer := NewBufferedTokenizerMocker(c.data)
		p := NewParser(tokenizer)

		got, err := p.Run()
		if c.fail {
			assert.Error(t, err)
			assert.IsType(t, SyntaxErrors{}, err)
			continue
		}

		require.NoError(t, err)
		expect := &AST{
			Filename:   "testing",
			Statements: c.expect,
		}

		assert.Equal(t, expect, got)
	}
}

func parse(t *testing.T, src string) *AST {
	t.Helper()

	ast, err := NewCompiler().ParseFromReader("test.st", strings.NewReader(src))
	require.NoError(t, err)

	return ast
}

func TestParseProgram(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		expect []Stmt
	}{
		{
			"precedence",
			"x + 10 === y && x + y > 25 || false;",
			[]Stmt{
				&ExprStmt{
					Expr: binary(BinaryOr,
						binary(BinaryAnd,
							binary(BinaryEqual, binary(BinaryAddition, ident("x"), num(10)), ident("y")),
							binary(BinaryGreater, binary(BinaryAddition, ident("x"), ident("y")), num(25)),
						),
						&BoolLiteral{Value: false},
					),
				},
			},
		},
		{
			"left associative",
			"let r = 8 / 4 / 2 - 1 - 1;",
			[]Stmt{
				&LetStmt{
					Name: "r",
					Value: binary(BinarySubtraction,
						binary(BinarySubtraction,
							binary(BinaryDivision, binary(BinaryDivision, num(8), num(4)), num(2)),
							num(1),
						),
						num(1),
					),
				},
			},
		},
		{
			"unary minus",
			"let n = -2 * 3;",
			[]Stmt{
				&LetStmt{
					Name:  "n",
					Value: binary(BinaryMultiplication, binary(BinarySubtraction, num(0), num(2)), num(3)),
				},
			},
		},
		{
			"if else",
			`
			let x = 0;
			if (x < 10) {
				let x = 5;
				x = x + 1;
			}
			else {
				x = x + 5;
			}
			`,
			[]Stmt{
				&LetStmt{Name: "x", Value: num(0)},
				&IfStmt{
					Test: binary(BinaryLess, ident("x"), num(10)),
					Then: []Stmt{
						&LetStmt{Name: "x", Value: num(5)},
						&AssignStmt{Name: "x", Value: binary(BinaryAddition, ident("x"), num(1))},
					},
					Else: []Stmt{
						&AssignStmt{Name: "x", Value: binary(BinaryAddition, ident("x"), num(5))},
					},
				},
			},
		},
		{
			"if without else",
			"if (true) { x = 1; }",
			[]Stmt{
				&IfStmt{
					Test: &BoolLiteral{Value: true},
					Then: []Stmt{&AssignStmt{Name: "x", Value: num(1)}},
				},
			},
		},
		{
			"while print return",
			`
			while (x < 10) { x = x + 1; print(x); }
			return x * 2;
			`,
			[]Stmt{
				&WhileStmt{
					Test: binary(BinaryLess, ident("x"), num(10)),
					Body: []Stmt{
						&AssignStmt{Name: "x", Value: binary(BinaryAddition, ident("x"), num(1))},
						&PrintStmt{Value: ident("x")},
					},
				},
				&ReturnStmt{Value: binary(BinaryMultiplication, ident("x"), num(2))},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := parse(t, c.src)

			if diff := cmp.Diff(c.expect, got.Statements, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("statements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		msgs []string
	}{
		{
			"missing semicolon",
			"let x = 1",
			[]string{"test.st:1:10: expected ';', found end of file"},
		},
		{
			"recovers after a bad statement",
			"let = 1;\nlet y = ;\nlet z = 2;",
			[]string{
				"test.st:1:5: expected variable name, found '='",
				"test.st:2:9: invalid symbol ';'",
			},
		},
		{
			"unclosed block",
			"while (true) { x = 1;",
			[]string{"test.st:1:22: unclosed block statement"},
		},
		{
			"lexer error",
			"let x = 1;\nlet y = $;",
			[]string{
				"test.st:2:9: invalid symbol '$'",
				"test.st:2:9: unexpected end of file",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewCompiler().ParseFromReader("test.st", strings.NewReader(c.src))
			require.Error(t, err)

			var errs SyntaxErrors
			require.ErrorAs(t, err, &errs)

			var msgs []string
			for _, e := range errs {
				msgs = append(msgs, e.Error())
			}

			assert.Equal(t, c.msgs, msgs)
		})
	}
}
