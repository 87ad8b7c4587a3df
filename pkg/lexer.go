package stride

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

//go:generate stringer -type=TokenType -trimprefix=Token
const (
	EOF rune = 0

	TokenError TokenType = iota
	TokenEOF
	TokenNumber

	TokenIdentifier
	TokenLet
	TokenIf
	TokenElse
	TokenWhile
	TokenPrint
	TokenReturn
	TokenTrue
	TokenFalse

	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
	TokenAnd
	TokenOr
	TokenGreater
	TokenLess
	TokenEqual
	TokenAssign
	TokenSemicolon
	TokenLineComment
	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
)

var keywordTable = map[string]TokenType{
	"let":    TokenLet,
	"if":     TokenIf,
	"else":   TokenElse,
	"while":  TokenWhile,
	"print":  TokenPrint,
	"return": TokenReturn,
	"true":   TokenTrue,
	"false":  TokenFalse,
}

var operatorTable = map[string]TokenType{
	"+":   TokenPlus,
	"-":   TokenMinus,
	"*":   TokenMulti,
	"/":   TokenDiv,
	"&&":  TokenAnd,
	"||":  TokenOr,
	">":   TokenGreater,
	"<":   TokenLess,
	"==":  TokenEqual,
	"===": TokenEqual,
	"=":   TokenAssign,
	";":   TokenSemicolon,
	"//":  TokenLineComment,
	"(":   TokenOpenParentheses,
	")":   TokenCloseParentheses,
	"{":   TokenOpenCurly,
	"}":   TokenCloseCurly,
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

func (t Token) isValid() bool {
	return t.Typ != TokenError && t.Typ != TokenEOF
}

func (t Token) isComment() bool {
	return t.Typ == TokenLineComment
}

// Tokenizer is what the parser reads tokens from. Do produces the tokens
// and is run on its own goroutine; Get blocks until the next one is ready.
type Tokenizer interface {
	Do()
	Get() Token
	GetFilename() string
}

type Lexer struct {
	filename string
	reader   *bufio.Reader
	closer   io.Closer
	done     chan Token

	line, col int
	start     Location
}

// NewLexer opens filename for lexing. The file is closed once every token
// has been produced.
func NewLexer(filename string) (*Lexer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	l := newLexer(filename, f)
	l.closer = f
	return l, nil
}

func NewLexerFromReader(reader io.Reader) *Lexer {
	return newLexer("<input>", reader)
}

func NewNamedLexer(filename string, reader io.Reader) *Lexer {
	return newLexer(filename, reader)
}

func newLexer(filename string, reader io.Reader) *Lexer {
	return &Lexer{
		filename: filename,
		reader:   bufio.NewReader(reader),
		done:     make(chan Token),
		line:     1,
		col:      1,
	}
}

func (l *Lexer) Chan() chan Token {
	return l.done
}

func (l *Lexer) GetFilename() string {
	return l.filename
}

func (l *Lexer) Do() {
	l.Run()
}

// Get returns the next token. Once the lexer is finished it keeps
// returning EOF.
func (l *Lexer) Get() Token {
	tok, ok := <-l.done
	if !ok {
		return Token{Typ: TokenEOF, Loc: l.location()}
	}

	return tok
}

func (l *Lexer) Run() {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	if l.closer != nil {
		_ = l.closer.Close()
	}

	close(l.done)
}

func (l *Lexer) RunBlocking() ([]Token, error) {
	go l.Run()

	var tokens []Token
	for t := range l.Chan() {
		if t.Typ == TokenEOF {
			return tokens, nil
		}

		if t.Typ == TokenError {
			return nil, fmt.Errorf("%s: %s", t.Loc, t.Value)
		}

		tokens = append(tokens, t)
	}

	return tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = *l.location()

		switch r := l.peek(); {
		case r == EOF:
			l.emmitNext(TokenEOF)
			return nil
		case unicode.IsSpace(r):
			l.next()
			continue
		case '0' <= r && r <= '9':
			return numberState
		case unicode.IsLetter(r) || r == '_':
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); '0' <= r && r <= '9'; r = l.peek() {
		num.WriteRune(l.next())
	}

	if l.peek() == '.' {
		num.WriteRune(l.next())

		digits := 0
		for r := l.peek(); '0' <= r && r <= '9'; r = l.peek() {
			num.WriteRune(l.next())
			digits++
		}

		if digits == 0 {
			return l.errorf("malformed number '%s'", num.String())
		}
	}

	return l.emmitValue(TokenNumber, num.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'; r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emmitValue(t, id.String())
	}

	return l.emmitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	// Longest match first: "===" before "==" before "=".
	for size := 3; size > 0; size-- {
		buf, _ := l.reader.Peek(size)
		if len(buf) < size {
			continue
		}

		tok, ok := operatorTable[string(buf)]
		if !ok {
			continue
		}

		for i := 0; i < size; i++ {
			l.next()
		}

		if tok == TokenLineComment {
			return lineCommentState
		}

		return l.emmitValue(tok, string(buf))
	}

	return l.errorf("invalid symbol '%c'", l.next())
}

func lineCommentState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); r != '\n' && r != EOF; r = l.peek() {
		id.WriteRune(l.next())
	}

	return l.emmitValue(TokenLineComment, id.String())
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	loc := l.start
	l.done <- Token{
		Typ:   TokenError,
		Value: fmt.Sprintf(format, args...),
		Loc:   &loc,
	}

	return nil
}

func (l *Lexer) emmitNext(t TokenType) stateFunc {
	loc := l.start
	l.done <- Token{
		Typ:   t,
		Value: string(l.next()),
		Loc:   &loc,
	}

	return defaultState
}

func (l *Lexer) emmitValue(t TokenType, val string) stateFunc {
	loc := l.start
	l.done <- Token{
		Typ:   t,
		Value: val,
		Loc:   &loc,
	}

	return defaultState
}

func (l *Lexer) location() *Location {
	return &Location{
		Filename: l.filename,
		Line:     l.line,
		Col:      l.col,
	}
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	_ = l.reader.UnreadRune()
	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}
