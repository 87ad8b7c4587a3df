package stride

import (
	"fmt"
	"strings"
)

type UndeclaredVariableError struct {
	Name string
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("undeclared variable: %s", e.Name)
}

type RedeclarationError struct {
	Name string
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("variable can't be redeclared: %s", e.Name)
}

type TypeMismatchError struct {
	Op    BinaryOp
	Left  Value
	Right Value
}

func (e *TypeMismatchError) Error() string {
	want := "number"
	if e.Op.IsLogical() {
		want = "boolean"
	}

	return fmt.Sprintf("type mismatch: '%s' expects %s operands, got %s and %s",
		e.Op, want, e.Left.Type(), e.Right.Type())
}

type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string {
	return "division by zero"
}

type NonBooleanConditionError struct {
	Statement string
	Value     Value
}

func (e *NonBooleanConditionError) Error() string {
	return fmt.Sprintf("%s test expression isn't of boolean type: got %s", e.Statement, e.Value.Type())
}

type Location struct {
	Filename string
	Line     int
	Col      int
}

func (l *Location) String() string {
	if l == nil {
		return "<unknown>"
	}

	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Col)
}

type SyntaxError struct {
	Loc *Location
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// SyntaxErrors is every error found while parsing a single file.
type SyntaxErrors []*SyntaxError

func (e SyntaxErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, "\n")
}
