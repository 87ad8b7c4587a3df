package stride

// AST is a parsed program. Nodes are never mutated once the parser hands
// them out.
type AST struct {
	Filename   string
	Statements []Stmt
}

type Node interface {
	node()
}

type Expr interface {
	Node
	expr()
}

type Stmt interface {
	Node
	stmt()
}

type BoolLiteral struct {
	Value bool
}

type NumberLiteral struct {
	Value float64
}

type Identifier struct {
	Name string
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryAnd            BinaryOp = "&&"
	BinaryOr             BinaryOp = "||"
	BinaryGreater        BinaryOp = ">"
	BinaryLess           BinaryOp = "<"
	BinaryEqual          BinaryOp = "=="
)

// IsLogical reports whether the operator takes boolean operands. Every
// other operator takes numbers.
func (op BinaryOp) IsLogical() bool {
	return op == BinaryAnd || op == BinaryOr
}

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

type LetStmt struct {
	Name  string
	Value Expr
}

type AssignStmt struct {
	Name  string
	Value Expr
}

type IfStmt struct {
	Test Expr
	Then []Stmt
	Else []Stmt
}

type WhileStmt struct {
	Test Expr
	Body []Stmt
}

type PrintStmt struct {
	Value Expr
}

type ExprStmt struct {
	Expr Expr
}

type ReturnStmt struct {
	Value Expr
}

func (*BoolLiteral) node()   {}
func (*NumberLiteral) node() {}
func (*Identifier) node()    {}
func (*BinaryExpr) node()    {}
func (*LetStmt) node()       {}
func (*AssignStmt) node()    {}
func (*IfStmt) node()        {}
func (*WhileStmt) node()     {}
func (*PrintStmt) node()     {}
func (*ExprStmt) node()      {}
func (*ReturnStmt) node()    {}

func (*BoolLiteral) expr()   {}
func (*NumberLiteral) expr() {}
func (*Identifier) expr()    {}
func (*BinaryExpr) expr()    {}

func (*LetStmt) stmt()    {}
func (*AssignStmt) stmt() {}
func (*IfStmt) stmt()     {}
func (*WhileStmt) stmt()  {}
func (*PrintStmt) stmt()  {}
func (*ExprStmt) stmt()   {}
func (*ReturnStmt) stmt() {}
