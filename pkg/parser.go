package stride

import (
	"fmt"
	"strconv"
)

type SyntacticAnalyzer interface {
	Run() (*AST, error)
	GetFilename() string
}

type Parser struct {
	filename  string
	tokenizer Tokenizer
	buf       *Token
	last      *Location

	errors SyntaxErrors
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		filename:  tokenizer.GetFilename(),
	}
}

func (p *Parser) GetFilename() string {
	return p.filename
}

// Run parses every statement up to EOF. Syntax errors don't stop the
// parser: it skips to the next statement and keeps going, so every error in
// the file is reported at once. If any were found the returned error is a
// SyntaxErrors.
func (p *Parser) Run() (*AST, error) {
	go p.tokenizer.Do()

	ast := &AST{
		Filename: p.filename,
	}

	for p.peek().Typ != TokenEOF {
		stmt, err := p.statement()
		if err != nil {
			p.synchronize(err)
			continue
		}

		ast.Statements = append(ast.Statements, stmt)
	}

	if len(p.errors) != 0 {
		return ast, p.errors
	}

	return ast, nil
}

func (p *Parser) peek() Token {
	if p.buf == nil {
		temp := p.next()
		p.buf = &temp
	}

	return *p.buf
}

func (p *Parser) next() Token {
	if p.buf != nil {
		if !p.buf.isValid() {
			// If an invalid token is buffered, don't try to get more tokens
			return *p.buf
		}

		temp := p.buf
		p.buf = nil

		return *temp
	}

	tok := p.tokenizer.Get()
	if tok.isComment() {
		return p.next()
	}

	if tok.Typ == TokenError {
		// The lexer stops after an error, so the error is reported once and
		// the parser sees EOF from there on.
		p.errors = append(p.errors, &SyntaxError{Loc: tok.Loc, Msg: tok.Value})
		tok = Token{Typ: TokenEOF, Loc: tok.Loc}
	}

	if !tok.isValid() {
		// If a token is invalid (such as Error or EOF) keep it buffered since no more valid tokens are expected
		p.buf = &tok
	}

	if tok.Loc != nil {
		p.last = tok.Loc
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) expect(typ TokenType, what string) (Token, error) {
	tok := p.next()
	if tok.Typ != typ {
		return tok, p.errorf(tok, "expected %s, found %s", what, describe(tok))
	}

	return tok, nil
}

func (p *Parser) errorf(tok Token, format string, args ...interface{}) error {
	loc := tok.Loc
	if loc == nil {
		loc = p.last
	}

	return &SyntaxError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// synchronize records err and skips past the end of the broken statement.
func (p *Parser) synchronize(err error) {
	if se, ok := err.(*SyntaxError); ok {
		p.errors = append(p.errors, se)
	}

	for tok := p.peek(); tok.isValid(); tok = p.peek() {
		p.next()
		if tok.Typ == TokenSemicolon || tok.Typ == TokenCloseCurly {
			return
		}
	}
}

func describe(tok Token) string {
	switch tok.Typ {
	case TokenEOF:
		return "end of file"
	case TokenIdentifier, TokenNumber:
		return fmt.Sprintf("%s '%s'", tok.Typ, tok.Value)
	default:
		return fmt.Sprintf("'%s'", tok.Value)
	}
}

func (p *Parser) statement() (Stmt, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenLet:
		return p.letStmt()
	case TokenIf:
		return p.ifStmt()
	case TokenWhile:
		return p.whileStmt()
	case TokenPrint:
		return p.printStmt()
	case TokenReturn:
		return p.returnStmt()
	case TokenIdentifier:
		return p.assignOrExprStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) letStmt() (Stmt, error) {
	p.next() // let keyword

	name, err := p.expect(TokenIdentifier, "variable name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenAssign, "'='"); err != nil {
		return nil, err
	}

	value, err := p.terminatedExpr()
	if err != nil {
		return nil, err
	}

	return &LetStmt{Name: name.Value, Value: value}, nil
}

func (p *Parser) assignOrExprStmt() (Stmt, error) {
	id := p.next()
	if !p.check(TokenAssign) {
		// Not an assignment: the identifier starts an expression.
		lhs, err := p.binaryExpr(&Identifier{Name: id.Value}, 0)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenSemicolon, "';'"); err != nil {
			return nil, err
		}

		return &ExprStmt{Expr: lhs}, nil
	}

	p.next() // Skip =

	value, err := p.terminatedExpr()
	if err != nil {
		return nil, err
	}

	return &AssignStmt{Name: id.Value, Value: value}, nil
}

func (p *Parser) ifStmt() (Stmt, error) {
	p.next() // if keyword

	test, err := p.condition()
	if err != nil {
		return nil, err
	}

	then, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Test: test, Then: then}
	if !p.check(TokenElse) {
		return stmt, nil
	}

	p.next() // else keyword

	if stmt.Else, err = p.blockStmt(); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) whileStmt() (Stmt, error) {
	p.next() // while keyword

	test, err := p.condition()
	if err != nil {
		return nil, err
	}

	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{Test: test, Body: body}, nil
}

func (p *Parser) printStmt() (Stmt, error) {
	p.next() // print keyword

	value, err := p.condition()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	return &PrintStmt{Value: value}, nil
}

func (p *Parser) returnStmt() (Stmt, error) {
	p.next() // return keyword

	value, err := p.terminatedExpr()
	if err != nil {
		return nil, err
	}

	return &ReturnStmt{Value: value}, nil
}

func (p *Parser) exprStmt() (Stmt, error) {
	expr, err := p.terminatedExpr()
	if err != nil {
		return nil, err
	}

	return &ExprStmt{Expr: expr}, nil
}

// condition parses a parenthesised expression, as used by if, while and
// print.
func (p *Parser) condition() (Expr, error) {
	if _, err := p.expect(TokenOpenParentheses, "'('"); err != nil {
		return nil, err
	}

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses, "')'"); err != nil {
		return nil, err
	}

	return expr, nil
}

func (p *Parser) terminatedExpr() (Expr, error) {
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "';'"); err != nil {
		return nil, err
	}

	return expr, nil
}

func (p *Parser) blockStmt() ([]Stmt, error) {
	if _, err := p.expect(TokenOpenCurly, "'{'"); err != nil {
		return nil, err
	}

	stmts := []Stmt{}
	for tok := p.peek(); tok.isValid() && tok.Typ != TokenCloseCurly; tok = p.peek() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	switch closer := p.next(); closer.Typ {
	case TokenCloseCurly:
		return stmts, nil
	case TokenEOF:
		return nil, p.errorf(closer, "unclosed block statement")
	default:
		return nil, p.errorf(closer, "unexpected token in block statement: %s", describe(closer))
	}
}

// Binding powers, lowest first. Every operator is left associative.
var precedence = map[TokenType]int{
	TokenOr:      1,
	TokenAnd:     2,
	TokenGreater: 3,
	TokenLess:    3,
	TokenEqual:   3,
	TokenPlus:    4,
	TokenMinus:   4,
	TokenMulti:   5,
	TokenDiv:     5,
}

var binaryOps = map[TokenType]BinaryOp{
	TokenOr:      BinaryOr,
	TokenAnd:     BinaryAnd,
	TokenGreater: BinaryGreater,
	TokenLess:    BinaryLess,
	TokenEqual:   BinaryEqual,
	TokenPlus:    BinaryAddition,
	TokenMinus:   BinarySubtraction,
	TokenMulti:   BinaryMultiplication,
	TokenDiv:     BinaryDivision,
}

func (p *Parser) expr() (Expr, error) {
	lhs, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}

	return p.binaryExpr(lhs, 0)
}

// binaryExpr folds operators binding tighter than min onto lhs.
func (p *Parser) binaryExpr(lhs Expr, min int) (Expr, error) {
	for {
		tok := p.peek()
		prec, ok := precedence[tok.Typ]
		if !ok || prec <= min {
			return lhs, nil
		}

		p.next()

		rhs, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}

		// Operators that bind tighter than this one belong to the right
		// operand.
		for next, ok := precedence[p.peek().Typ]; ok && next > prec; next, ok = precedence[p.peek().Typ] {
			if rhs, err = p.binaryExpr(rhs, prec); err != nil {
				return nil, err
			}
		}

		lhs = &BinaryExpr{
			Operation: binaryOps[tok.Typ],
			Op1:       lhs,
			Op2:       rhs,
		}
	}
}

func (p *Parser) unaryExpr() (Expr, error) {
	if p.check(TokenMinus) { // Unary negative, lowered to 0 - operand
		p.next()

		operand, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}

		return &BinaryExpr{
			Operation: BinarySubtraction,
			Op1:       &NumberLiteral{Value: 0},
			Op2:       operand,
		}, nil
	}

	return p.primary()
}

func (p *Parser) primary() (Expr, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenOpenParentheses:
		return p.parenthesisedExpression()
	case TokenIdentifier:
		p.next()
		return &Identifier{Name: tok.Value}, nil
	}

	return p.literal()
}

func (p *Parser) parenthesisedExpression() (Expr, error) {
	p.next() // (

	exp, err := p.expr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenCloseParentheses, "closing parenthesis"); err != nil {
		return nil, err
	}

	return exp, nil
}

func (p *Parser) literal() (Expr, error) {
	switch tok := p.peek(); tok.Typ {
	case TokenNumber:
		p.next()

		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid number '%s'", tok.Value)
		}

		return &NumberLiteral{Value: v}, nil
	case TokenTrue, TokenFalse:
		p.next()
		return &BoolLiteral{Value: tok.Typ == TokenTrue}, nil
	case TokenEOF:
		return nil, p.errorf(tok, "unexpected end of file")
	default:
		// Left in place: synchronize skips it along with the rest of the
		// statement.
		return nil, p.errorf(tok, "invalid symbol %s", describe(tok))
	}
}
