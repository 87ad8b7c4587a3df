package stride

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type IRGenerator interface {
	Do() IR
}

type IR interface {
	fmt.Stringer
}

// dynValue is a lowered runtime value. Booleans keep 0 or 1 in num so both
// variants share one representation.
type dynValue struct {
	isBool value.Value // i1
	num    value.Value // double
}

var zero = constant.NewFloat(types.Double, 0)

type LLVMIRBuilder struct {
	mod   *ir.Module
	fn    *ir.Func
	entry *ir.Block
	block *ir.Block
	done  *ir.Block
	scope *SymbolTable

	printf   *ir.Func
	snprintf *ir.Func
	strtod   *ir.Func
	exit     *ir.Func
	builtins map[string]*ir.Func

	strs   map[string]constant.Constant
	blocks int
	slots  int
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:      ir.NewModule(),
		builtins: make(map[string]*ir.Func),
		strs:     make(map[string]constant.Constant),
	}

	defineBuiltins(builder)
	return builder
}

// program lowers the top level statements into main. Allocas all live in
// the entry block, which jumps to the body once everything is generated.
func (b *LLVMIRBuilder) program(stmts []Stmt) {
	b.fn = b.mod.NewFunc("main", types.I32)
	b.entry = b.fn.NewBlock("entry")
	b.done = b.fn.NewBlock("done")

	body := b.newBlock("body")
	b.block = body

	b.scope = b.newScope(nil, stmts)
	b.statements(stmts)

	b.block.NewBr(b.done)
	b.entry.NewBr(body)
	b.done.NewRet(constant.NewInt(types.I32, 0))
}

// newScope allocates the slots of a block and clears their bound flags in
// the current basic block, which is where the block is entered.
func (b *LLVMIRBuilder) newScope(parent *SymbolTable, stmts []Stmt) *SymbolTable {
	table := NewSymbolTable(parent)
	for _, name := range Declarations(stmts) {
		b.slots++
		slot := &Slot{
			Name:   name,
			Bound:  b.entry.NewAlloca(types.I1),
			IsBool: b.entry.NewAlloca(types.I1),
			Num:    b.entry.NewAlloca(types.Double),
		}
		slot.Bound.SetName(fmt.Sprintf("%s.bound.%d", name, b.slots))
		slot.IsBool.SetName(fmt.Sprintf("%s.isbool.%d", name, b.slots))
		slot.Num.SetName(fmt.Sprintf("%s.num.%d", name, b.slots))

		table.Add(name, slot)
	}

	for _, slot := range table.Slots() {
		b.block.NewStore(constant.False, slot.Bound)
	}

	return table
}

func (b *LLVMIRBuilder) newBlock(name string) *ir.Block {
	b.blocks++
	return b.fn.NewBlock(fmt.Sprintf("%s.%d", name, b.blocks))
}

// str returns a pointer to a NUL terminated global holding s.
func (b *LLVMIRBuilder) str(s string) constant.Constant {
	if c, ok := b.strs[s]; ok {
		return c
	}

	data := constant.NewCharArrayFromString(s + "\x00")
	glob := b.mod.NewGlobalDef(fmt.Sprintf(".str.%d", len(b.strs)), data)
	glob.Immutable = true

	idx := constant.NewInt(types.I32, 0)
	c := constant.NewGetElementPtr(types.NewArray(uint64(len(s)+1), types.I8), glob, idx, idx)
	b.strs[s] = c

	return c
}

// trap stops the program unconditionally. Code generated afterwards lands
// in an unreachable block.
func (b *LLVMIRBuilder) trap(msg string) {
	b.block.NewCall(b.builtins["stride.trap"], b.str(msg))
	b.block.NewUnreachable()
	b.block = b.newBlock("dead")
}

// guard stops the program with msg when failed is true at run time.
func (b *LLVMIRBuilder) guard(failed value.Value, msg string) {
	fail := b.newBlock("trap")
	ok := b.newBlock("ok")

	b.block.NewCondBr(failed, fail, ok)

	fail.NewCall(b.builtins["stride.trap"], b.str(msg))
	fail.NewUnreachable()

	b.block = ok
}

func (b *LLVMIRBuilder) not(v value.Value) value.Value {
	return b.block.NewXor(v, constant.True)
}

func (b *LLVMIRBuilder) statements(stmts []Stmt) {
	for _, stmt := range stmts {
		b.statement(stmt)
	}
}

// nested lowers the statements of an if branch or loop body in a fresh
// scope.
func (b *LLVMIRBuilder) nested(table *SymbolTable, stmts []Stmt) {
	outer := b.scope
	b.scope = table
	b.statements(stmts)
	b.scope = outer
}

func (b *LLVMIRBuilder) statement(stmt Stmt) {
	switch s := stmt.(type) {
	case *LetStmt:
		v := b.expression(s.Value)

		slot := b.scope.Get(s.Name)
		b.guard(b.block.NewLoad(types.I1, slot.Bound), (&RedeclarationError{Name: s.Name}).Error())

		b.block.NewStore(v.isBool, slot.IsBool)
		b.block.NewStore(v.num, slot.Num)
		b.block.NewStore(constant.True, slot.Bound)
	case *AssignStmt:
		v := b.expression(s.Value)

		isBool, num, ok := b.resolve(s.Name)
		if !ok {
			return
		}

		b.block.NewStore(v.isBool, isBool)
		b.block.NewStore(v.num, num)
	case *IfStmt:
		test := b.condition(s.Test, "if")

		then := b.newBlock("if.then")
		els := b.newBlock("if.else")
		end := b.newBlock("if.end")
		b.block.NewCondBr(test, then, els)

		b.block = then
		b.nested(b.newScope(b.scope, s.Then), s.Then)
		b.block.NewBr(end)

		b.block = els
		b.nested(b.newScope(b.scope, s.Else), s.Else)
		b.block.NewBr(end)

		b.block = end
	case *WhileStmt:
		// The loop frame is entered once; the test is lowered against the
		// outer scope on every iteration.
		loop := b.newScope(b.scope, s.Body)

		header := b.newBlock("while.test")
		body := b.newBlock("while.body")
		end := b.newBlock("while.end")
		b.block.NewBr(header)

		b.block = header
		test := b.condition(s.Test, "while")
		b.block.NewCondBr(test, body, end)

		b.block = body
		b.nested(loop, s.Body)
		b.block.NewBr(header)

		b.block = end
	case *PrintStmt:
		v := b.expression(s.Value)
		b.block.NewCall(b.builtins["stride.print"], v.isBool, v.num)
	case *ExprStmt:
		b.expression(s.Expr)
	case *ReturnStmt:
		b.expression(s.Value)
		b.block.NewBr(b.done)
		b.block = b.newBlock("after.return")
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

// condition lowers a test expression to an i1, stopping the program if it
// isn't a boolean.
func (b *LLVMIRBuilder) condition(expr Expr, statement string) value.Value {
	v := b.expression(expr)
	b.guard(b.not(v.isBool), fmt.Sprintf("%s test expression isn't of boolean type", statement))

	return b.block.NewFCmp(enum.FPredONE, v.num, zero)
}

// resolve picks, at run time, the innermost slot for name whose let has
// already run. This is what keeps shadowing and declare-before-use
// identical to the interpreter, loops included.
func (b *LLVMIRBuilder) resolve(name string) (isBool, num value.Value, ok bool) {
	msg := (&UndeclaredVariableError{Name: name}).Error()

	candidates := b.scope.Candidates(name)
	if len(candidates) == 0 {
		b.trap(msg)
		return nil, nil, false
	}

	var found value.Value
	for i := len(candidates) - 1; i >= 0; i-- {
		slot := candidates[i]
		bound := b.block.NewLoad(types.I1, slot.Bound)

		if found == nil {
			found, isBool, num = bound, slot.IsBool, slot.Num
			continue
		}

		isBool = b.block.NewSelect(bound, slot.IsBool, isBool)
		num = b.block.NewSelect(bound, slot.Num, num)
		found = b.block.NewOr(found, bound)
	}

	b.guard(b.not(found), msg)
	return isBool, num, true
}

func (b *LLVMIRBuilder) expression(expr Expr) dynValue {
	switch e := expr.(type) {
	case *BoolLiteral:
		num := zero
		if e.Value {
			num = constant.NewFloat(types.Double, 1)
		}

		return dynValue{isBool: constant.True, num: num}
	case *NumberLiteral:
		return dynValue{isBool: constant.False, num: constant.NewFloat(types.Double, e.Value)}
	case *Identifier:
		isBool, num, ok := b.resolve(e.Name)
		if !ok {
			return dynValue{isBool: constant.False, num: zero}
		}

		return dynValue{
			isBool: b.block.NewLoad(types.I1, isBool),
			num:    b.block.NewLoad(types.Double, num),
		}
	case *BinaryExpr:
		return b.binaryExpression(e)
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr) dynValue {
	v1 := b.expression(expr.Op1)
	v2 := b.expression(expr.Op2)

	if expr.Operation.IsLogical() {
		both := b.block.NewAnd(v1.isBool, v2.isBool)
		b.guard(b.not(both), fmt.Sprintf("type mismatch: '%s' expects boolean operands", expr.Operation))

		l := b.block.NewFCmp(enum.FPredONE, v1.num, zero)
		r := b.block.NewFCmp(enum.FPredONE, v2.num, zero)

		var res value.Value
		switch expr.Operation {
		case BinaryAnd:
			res = b.block.NewAnd(l, r)
		case BinaryOr:
			res = b.block.NewOr(l, r)
		}

		return b.boolean(res)
	}

	either := b.block.NewOr(v1.isBool, v2.isBool)
	b.guard(either, fmt.Sprintf("type mismatch: '%s' expects number operands", expr.Operation))

	switch expr.Operation {
	case BinaryAddition:
		return b.number(b.block.NewFAdd(v1.num, v2.num))
	case BinarySubtraction:
		return b.number(b.block.NewFSub(v1.num, v2.num))
	case BinaryMultiplication:
		return b.number(b.block.NewFMul(v1.num, v2.num))
	case BinaryDivision:
		b.guard(b.block.NewFCmp(enum.FPredOEQ, v2.num, zero), (&DivisionByZeroError{}).Error())
		return b.number(b.block.NewFDiv(v1.num, v2.num))
	case BinaryGreater:
		return b.boolean(b.block.NewFCmp(enum.FPredOGT, v1.num, v2.num))
	case BinaryLess:
		return b.boolean(b.block.NewFCmp(enum.FPredOLT, v1.num, v2.num))
	case BinaryEqual:
		return b.boolean(b.block.NewFCmp(enum.FPredOEQ, v1.num, v2.num))
	default:
		panic("unexpected binary op: " + expr.Operation)
	}
}

func (b *LLVMIRBuilder) number(v value.Value) dynValue {
	return dynValue{isBool: constant.False, num: v}
}

func (b *LLVMIRBuilder) boolean(v value.Value) dynValue {
	return dynValue{isBool: constant.True, num: b.block.NewUIToFP(v, types.Double)}
}

type LLVMGenerator struct {
	ast *AST
}

func NewLLVMGenerator(ast *AST) *LLVMGenerator {
	return &LLVMGenerator{
		ast: ast,
	}
}

func (g LLVMGenerator) Do() IR {
	builder := NewLLVMIRBuilder()
	builder.program(g.ast.Statements)

	return builder.mod
}
