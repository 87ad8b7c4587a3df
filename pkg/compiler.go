package stride

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
)

type CompilerOption func(*Compiler)

func WithCompilerLogger(logger *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// Compiler drives the front end and hands well formed programs to either
// the interpreter or the LLVM IR generator. Programs with syntax errors
// never reach either of them.
type Compiler struct {
	logger *slog.Logger
}

func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return c
}

func (c *Compiler) Parse(filename string) (*AST, error) {
	lexer, err := NewLexer(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open source")
	}

	return c.parse(NewParser(lexer))
}

func (c *Compiler) ParseFromReader(filename string, reader io.Reader) (*AST, error) {
	return c.parse(NewParser(NewNamedLexer(filename, reader)))
}

func (c *Compiler) parse(p SyntacticAnalyzer) (*AST, error) {
	ast, err := p.Run()
	if err != nil {
		c.logger.Debug("parse failed", slog.String("file", p.GetFilename()), slog.Any("error", err))
		return nil, err
	}

	c.logger.Debug("parsed", slog.String("file", p.GetFilename()), slog.Int("statements", len(ast.Statements)))
	return ast, nil
}

// Compile lowers the program in filename to LLVM IR.
func (c *Compiler) Compile(filename string) (IR, error) {
	ast, err := c.Parse(filename)
	if err != nil {
		return nil, err
	}

	return c.generate(NewLLVMGenerator(ast)), nil
}

func (c *Compiler) CompileFromReader(filename string, reader io.Reader) (IR, error) {
	ast, err := c.ParseFromReader(filename, reader)
	if err != nil {
		return nil, err
	}

	return c.generate(NewLLVMGenerator(ast)), nil
}

func (c *Compiler) generate(g IRGenerator) IR {
	return g.Do()
}

// Interpret runs the program in filename with interp and returns the final
// top level bindings.
func (c *Compiler) Interpret(interp *Interpreter, filename string) (*Environment, error) {
	ast, err := c.Parse(filename)
	if err != nil {
		return nil, err
	}

	env, err := interp.Run(ast.Statements)
	if err != nil {
		return nil, errors.Wrap(err, ast.Filename)
	}

	return env, nil
}
