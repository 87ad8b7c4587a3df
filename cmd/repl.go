package main

import (
	"fmt"
	"io"
	"strings"

	"go.stride.dev/pkg"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

const replSource = "<repl>"

type lineReader interface {
	Readline() (string, error)
}

func startREPL(c *stride.Compiler, interp *stride.Interpreter, cfg *Config, w io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return errors.Wrap(err, "start repl")
	}
	defer rl.Close()

	return repl(c, interp, rl, w)
}

// repl reads one line at a time and runs it against a root environment that
// lives for the whole session. A line holding a single bare expression
// echoes its value.
func repl(c *stride.Compiler, interp *stride.Interpreter, rl lineReader, w io.Writer) error {
	root := stride.NewEnvironment(nil)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}

		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		ast, err := c.ParseFromReader(replSource, strings.NewReader(line))
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}

		if err := evalLine(interp, root, ast.Statements, w); err != nil {
			fmt.Fprintln(w, "error:", err)
		}
	}
}

func evalLine(interp *stride.Interpreter, root *stride.Environment, stmts []stride.Stmt, w io.Writer) error {
	if len(stmts) == 1 {
		if s, ok := stmts[0].(*stride.ExprStmt); ok {
			v, err := stride.Evaluate(root, s.Expr)
			if err != nil {
				return err
			}

			fmt.Fprintln(w, v)
			return nil
		}
	}

	if err := interp.Exec(root, stmts); err != nil {
		return err
	}

	if v, ok := interp.Returned(); ok {
		fmt.Fprintf(w, "returned %s\n", v)
	}

	return nil
}
