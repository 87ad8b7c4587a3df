package stride

import (
	"math"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// TrapExitStatus is the process exit status of a compiled program that
// stops on a runtime error.
const TrapExitStatus = 70

const (
	printBufferSize = 1536

	// Enough decimals for the smallest subnormal double.
	maxPrintPrecision = 1074
)

func defineBuiltins(b *LLVMIRBuilder) {
	b.printf = b.mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	b.printf.Sig.Variadic = true

	b.snprintf = b.mod.NewFunc("snprintf", types.I32,
		ir.NewParam("buf", types.I8Ptr),
		ir.NewParam("size", types.I64),
		ir.NewParam("format", types.I8Ptr),
	)
	b.snprintf.Sig.Variadic = true

	b.strtod = b.mod.NewFunc("strtod", types.Double,
		ir.NewParam("str", types.I8Ptr),
		ir.NewParam("end", types.NewPointer(types.I8Ptr)),
	)

	b.exit = b.mod.NewFunc("exit", types.Void, ir.NewParam("status", types.I32))

	defineBuiltinFunc(b, "stride.print", builtinPrint)
	defineBuiltinFunc(b, "stride.trap", builtinTrap)
}

type funcDefinition = func(b *LLVMIRBuilder) *ir.Func

func defineBuiltinFunc(b *LLVMIRBuilder, name string, definition funcDefinition) {
	f := definition(b)
	f.SetName(name)
	b.builtins[name] = f
}

// builtinPrint prints a lowered value the way the interpreter does:
// booleans as their literal word, numbers in the shortest fixed point form
// that reads back as the same double.
func builtinPrint(b *LLVMIRBuilder) *ir.Func {
	isBool := ir.NewParam("isBool", types.I1)
	num := ir.NewParam("num", types.Double)
	f := b.mod.NewFunc("", types.Void, isBool, num)

	entry := f.NewBlock("entry")
	boolean := f.NewBlock("bool")
	number := f.NewBlock("number")
	special := f.NewBlock("special")
	search := f.NewBlock("search")
	retry := f.NewBlock("retry")
	found := f.NewBlock("found")

	bufType := types.NewArray(printBufferSize, types.I8)
	buf := entry.NewAlloca(bufType)
	prec := entry.NewAlloca(types.I32)
	entry.NewStore(constant.NewInt(types.I32, 0), prec)
	entry.NewCondBr(isBool, boolean, number)

	truth := boolean.NewFCmp(enum.FPredONE, num, constant.NewFloat(types.Double, 0))
	word := boolean.NewSelect(truth, b.str("true"), b.str("false"))
	boolean.NewCall(b.printf, b.str("%s\n"), word)
	boolean.NewRet(nil)

	// NaN and the infinities are spelled like strconv does.
	nan := number.NewFCmp(enum.FPredUNO, num, num)
	posInf := number.NewFCmp(enum.FPredOEQ, num, constant.NewFloat(types.Double, math.Inf(1)))
	negInf := number.NewFCmp(enum.FPredOEQ, num, constant.NewFloat(types.Double, math.Inf(-1)))
	name := number.NewSelect(posInf, b.str("+Inf"), number.NewSelect(negInf, b.str("-Inf"), b.str("NaN")))
	number.NewCondBr(number.NewOr(nan, number.NewOr(posInf, negInf)), special, search)

	special.NewCall(b.printf, b.str("%s\n"), name)
	special.NewRet(nil)

	idx := constant.NewInt(types.I32, 0)
	text := search.NewGetElementPtr(bufType, buf, idx, idx)
	p := search.NewLoad(types.I32, prec)
	search.NewCall(b.snprintf, text, constant.NewInt(types.I64, printBufferSize), b.str("%.*f"), p, num)
	back := search.NewCall(b.strtod, text, constant.NewNull(types.NewPointer(types.I8Ptr)))
	exact := search.NewFCmp(enum.FPredOEQ, back, num)
	last := search.NewICmp(enum.IPredSGE, p, constant.NewInt(types.I32, maxPrintPrecision))
	search.NewCondBr(search.NewOr(exact, last), found, retry)

	retry.NewStore(retry.NewAdd(p, constant.NewInt(types.I32, 1)), prec)
	retry.NewBr(search)

	found.NewCall(b.printf, b.str("%s\n"), text)
	found.NewRet(nil)

	return f
}

// builtinTrap reports a runtime error and exits. It never returns.
func builtinTrap(b *LLVMIRBuilder) *ir.Func {
	msg := ir.NewParam("msg", types.I8Ptr)
	f := b.mod.NewFunc("", types.Void, msg)

	entry := f.NewBlock("entry")
	entry.NewCall(b.printf, b.str("runtime error: %s\n"), msg)
	entry.NewCall(b.exit, constant.NewInt(types.I32, TrapExitStatus))
	entry.NewUnreachable()

	return f
}
