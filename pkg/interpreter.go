package stride

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

type InterpreterOption func(*Interpreter)

// WithOutput sets where print statements write. Defaults to os.Stdout.
func WithOutput(w io.Writer) InterpreterOption {
	return func(i *Interpreter) {
		i.out = w
	}
}

func WithLogger(logger *slog.Logger) InterpreterOption {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

type Interpreter struct {
	out    io.Writer
	logger *slog.Logger

	returned Value
}

func NewInterpreter(opts ...InterpreterOption) *Interpreter {
	i := &Interpreter{
		out: os.Stdout,
	}

	for _, opt := range opts {
		opt(i)
	}

	if i.logger == nil {
		i.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return i
}

// returnSignal unwinds every enclosing block once a return statement runs.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string {
	return "return outside of program"
}

// Run executes program against a fresh root environment and returns it.
// A return statement stops the program; its value is then available from
// Returned.
func (i *Interpreter) Run(program []Stmt) (*Environment, error) {
	env := NewEnvironment(nil)
	if err := i.Exec(env, program); err != nil {
		return nil, err
	}

	return env, nil
}

// Exec executes stmts in order against env, which is usually a root kept
// alive between calls.
func (i *Interpreter) Exec(env *Environment, stmts []Stmt) error {
	i.returned = nil

	for idx, stmt := range stmts {
		err := i.Execute(env, stmt)
		if err == nil {
			continue
		}

		var ret *returnSignal
		if errors.As(err, &ret) {
			i.returned = ret.value
			i.logger.Debug("program returned", slog.Int("statement", idx+1), slog.String("value", ret.value.String()))
			return nil
		}

		return errors.Wrapf(err, "statement %d", idx+1)
	}

	return nil
}

// Returned reports the value carried by the return statement that stopped
// the last run, if any.
func (i *Interpreter) Returned() (Value, bool) {
	return i.returned, i.returned != nil
}

// Execute runs a single statement against env.
func (i *Interpreter) Execute(env *Environment, stmt Stmt) error {
	switch s := stmt.(type) {
	case *LetStmt:
		v, err := Evaluate(env, s.Value)
		if err != nil {
			return err
		}

		i.logger.Debug("declare", slog.String("name", s.Name), slog.String("value", v.String()))
		return env.Declare(s.Name, v)
	case *AssignStmt:
		v, err := Evaluate(env, s.Value)
		if err != nil {
			return err
		}

		return env.Assign(s.Name, v)
	case *IfStmt:
		return i.executeIf(env, s)
	case *WhileStmt:
		return i.executeWhile(env, s)
	case *PrintStmt:
		v, err := Evaluate(env, s.Value)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(i.out, v.String())
		return err
	case *ExprStmt:
		_, err := Evaluate(env, s.Expr)
		return err
	case *ReturnStmt:
		v, err := Evaluate(env, s.Value)
		if err != nil {
			return err
		}

		return &returnSignal{value: v}
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}

func (i *Interpreter) executeIf(env *Environment, s *IfStmt) error {
	ok, err := i.test(env, s.Test, "if")
	if err != nil {
		return err
	}

	branch := s.Else
	if ok {
		branch = s.Then
	}

	i.logger.Debug("enter block", slog.String("statement", "if"), slog.Bool("branch", ok))
	return i.block(env.Child(), branch)
}

func (i *Interpreter) executeWhile(env *Environment, s *WhileStmt) error {
	// One frame for the whole loop: declarations in the body survive into
	// the next iteration but not past the loop. The test only sees env.
	child := env.Child()
	i.logger.Debug("enter block", slog.String("statement", "while"))

	for {
		ok, err := i.test(env, s.Test, "while")
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		if err := i.block(child, s.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) test(env *Environment, expr Expr, statement string) (bool, error) {
	v, err := Evaluate(env, expr)
	if err != nil {
		return false, err
	}

	b, ok := v.(Bool)
	if !ok {
		return false, &NonBooleanConditionError{Statement: statement, Value: v}
	}

	return bool(b), nil
}

func (i *Interpreter) block(env *Environment, stmts []Stmt) error {
	for _, stmt := range stmts {
		if err := i.Execute(env, stmt); err != nil {
			return err
		}
	}

	return nil
}
