package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"

	"go.stride.dev/pkg"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const usage = `usage: stride [flags] <command> [args]

commands:
  run FILE         interpret FILE and print its top level bindings
  ir FILE          print the LLVM IR for FILE
  check FILE...    report syntax errors in every FILE
  repl             start an interactive session

flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("stride", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Config file (default ./"+defaultConfigFile+" if present)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	bindings := fs.String("bindings", "", "How run prints the final bindings (none, text, yaml)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	path, explicit := *configPath, *configPath != ""
	if !explicit {
		path = defaultConfigFile
	}

	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}

	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if *bindings != "" {
		cfg.Bindings = *bindings
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	level, _ := parseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	c := stride.NewCompiler(stride.WithCompilerLogger(logger))
	interp := stride.NewInterpreter(stride.WithOutput(stdout), stride.WithLogger(logger))

	switch cmd, files := rest[0], rest[1:]; cmd {
	case "run":
		if len(files) != 1 {
			return errors.New("run takes exactly one file")
		}

		return runFile(c, interp, files[0], cfg.Bindings, stdout)
	case "ir":
		if len(files) != 1 {
			return errors.New("ir takes exactly one file")
		}

		mod, err := c.Compile(files[0])
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(stdout, mod.String())
		return err
	case "check":
		if len(files) == 0 {
			return errors.New("check takes at least one file")
		}

		return checkFiles(c, files, stdout)
	case "repl":
		return startREPL(c, interp, cfg, stdout)
	default:
		fs.Usage()
		return errors.Errorf("unknown command: %s", cmd)
	}
}

func runFile(c *stride.Compiler, interp *stride.Interpreter, filename, format string, w io.Writer) error {
	env, err := c.Interpret(interp, filename)
	if err != nil {
		return err
	}

	if v, ok := interp.Returned(); ok {
		fmt.Fprintf(w, "returned %s\n", v)
	}

	return printBindings(w, env.Bindings(), format)
}

func printBindings(w io.Writer, bindings map[string]stride.Value, format string) error {
	switch format {
	case "none":
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(bindings); err != nil {
			return errors.Wrap(err, "encode bindings")
		}

		return enc.Close()
	default:
		names := make([]string, 0, len(bindings))
		for name := range bindings {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if _, err := fmt.Fprintf(w, "%s = %s\n", name, bindings[name]); err != nil {
				return err
			}
		}

		return nil
	}
}

// checkFiles parses every file concurrently and reports their syntax errors
// in argument order.
func checkFiles(c *stride.Compiler, files []string, w io.Writer) error {
	results := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			_, err := c.Parse(file)
			results[i] = err
			return nil
		})
	}

	_ = g.Wait()

	failed := 0
	for i, err := range results {
		if err == nil {
			fmt.Fprintf(w, "%s: ok\n", files[i])
			continue
		}

		failed++
		fmt.Fprintln(w, err)
	}

	if failed != 0 {
		return errors.Errorf("%d of %d files have errors", failed, len(files))
	}

	return nil
}
