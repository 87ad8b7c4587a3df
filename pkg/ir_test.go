package stride

import (
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) string {
	t.Helper()

	mod, err := NewCompiler().CompileFromReader("test.st", strings.NewReader(src))
	require.NoError(t, err)

	return mod.String()
}

func TestCompileBuiltins(t *testing.T) {
	out := compile(t, "")

	assert.Contains(t, out, "define i32 @main()")
	assert.Contains(t, out, "@printf(")
	assert.Contains(t, out, "@exit(")
	assert.Contains(t, out, "@stride.print(")
	assert.Contains(t, out, "@stride.trap(")
	assert.Contains(t, out, `c"runtime error: %s\0A\00"`)
	assert.Contains(t, out, "@snprintf(")
	assert.Contains(t, out, "@strtod(")
	assert.Contains(t, out, `c"%.*f\00"`)
	assert.Contains(t, out, "ret i32 0")
}

func TestCompileArithmetic(t *testing.T) {
	out := compile(t, `
		let x = 10;
		let y = x * 2 - 1;
		print(x / y + 1);
		print(x > y);
	`)

	for _, op := range []string{"fmul double", "fsub double", "fdiv double", "fadd double", "fcmp ogt double"} {
		assert.Contains(t, out, op)
	}

	assert.Contains(t, out, "call void @stride.print(")
	assert.Contains(t, out, `c"division by zero\00"`)
	assert.Contains(t, out, `c"type mismatch: '*' expects number operands\00"`)
	assert.Contains(t, out, `c"variable can't be redeclared: x\00"`)
}

func TestCompileScopes(t *testing.T) {
	out := compile(t, `
		let x = 0;
		if (true) { x = 1; let x = 2; } else {}
		while (x < 10) { let i = 1; x = x + i; }
	`)

	// One set of slots per block that declares a name.
	assert.Contains(t, out, "%x.bound.1 = alloca i1")
	assert.Contains(t, out, "%x.bound.2 = alloca i1")
	assert.Contains(t, out, "%i.bound.3 = alloca i1")
	assert.Contains(t, out, "%x.num.1 = alloca double")

	// The inner x is picked at run time once its let has run.
	assert.Contains(t, out, "select i1")
	assert.Contains(t, out, `c"if test expression isn't of boolean type\00"`)
	assert.Contains(t, out, `c"while test expression isn't of boolean type\00"`)
	assert.Contains(t, out, `c"undeclared variable: x\00"`)
}

func TestCompileLogical(t *testing.T) {
	out := compile(t, "let b = true && false || true; print(b);")

	assert.Contains(t, out, `c"type mismatch: '&&' expects boolean operands\00"`)
	assert.Contains(t, out, `c"type mismatch: '||' expects boolean operands\00"`)
	assert.Contains(t, out, "uitofp i1")
}

func TestCompileUndeclared(t *testing.T) {
	// Nothing can ever declare y, so the trap is unconditional.
	out := compile(t, "print(y);")

	assert.Contains(t, out, `c"undeclared variable: y\00"`)
	assert.Contains(t, out, "unreachable")
}

func TestCompileReturn(t *testing.T) {
	mod, err := NewCompiler().CompileFromReader("test.st", strings.NewReader("let x = 1; return x; print(x);"))
	require.NoError(t, err)

	m, ok := mod.(*ir.Module)
	require.True(t, ok)

	var main *ir.Func
	for _, f := range m.Funcs {
		if f.Name() == "main" {
			main = f
		}
	}
	require.NotNil(t, main)

	// Every block is terminated, including the one after return.
	for _, block := range main.Blocks {
		assert.NotNil(t, block.Term, block.Name())
	}

	assert.Equal(t, "entry", main.Blocks[0].Name())
}

func TestCompileSyntaxError(t *testing.T) {
	_, err := NewCompiler().CompileFromReader("test.st", strings.NewReader("let x = ;"))
	assert.IsType(t, SyntaxErrors{}, err)
}

func TestStringsAreShared(t *testing.T) {
	b := NewLLVMIRBuilder()

	assert.Same(t, b.str("abc"), b.str("abc"))
	assert.NotSame(t, b.str("abc"), b.str("abd"))
}
