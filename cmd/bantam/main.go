package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"bantam/internal/ast"
	"bantam/internal/diag"
	"bantam/internal/frontend"
	"bantam/internal/loader"
	"bantam/internal/printer"
	"bantam/internal/session"
)

const version = "0.1.0"

// errReported means the diagnostics were already printed.
var errReported = errors.New("diagnostics reported")

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "check":
		err = cmdCheck(args)
	case "fmt":
		err = cmdFmt(args)
	case "translate":
		err = cmdTranslate(args)
	case "dump":
		err = cmdDump(args)
	case "repl":
		err = cmdRepl(args)
	case "help", "-h", "--help":
		usage()
	case "version", "--version":
		fmt.Println("bantam", version)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`Bantam Java front end

Usage:
  bantam check [-q] <file.btm|dir>
  bantam fmt [-w] <file.btm|dir>
  bantam translate [-o out.java] <file.btm|dir>
  bantam dump <file.btm|dir>
  bantam repl

Commands:
  version    Bantam front end version
  check      Report lexical, syntax and semantic errors
  fmt        Print the program in canonical form
  translate  Print an equivalent Java program
  dump       Print the syntax tree with inferred types
  repl       Interactive checking shell

Every command accepts -v to trace the pipeline on stderr; so does
setting BANTAM_DEBUG.`)
}

// newFlags returns a flag set for a subcommand with the shared -v flag.
func newFlags(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	verbose := fs.Bool("v", false, "trace the pipeline on stderr")
	return fs, verbose
}

func newLogger(verbose bool) *log.Logger {
	logger := log.New(io.Discard, "bantam: ", log.Ltime|log.Lmicroseconds)
	if verbose || os.Getenv("BANTAM_DEBUG") != "" {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func inputPath(fs *flag.FlagSet, cmd string) (string, error) {
	if fs.NArg() < 1 {
		return "", fmt.Errorf("%s: missing input file or directory", cmd)
	}
	return fs.Arg(0), nil
}

// -------------- Pipeline --------------

// checkPath loads and checks the program at path, printing any
// diagnostics to stderr.
func checkPath(path string, logger *log.Logger) (*frontend.Result, error) {
	sources, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Printf("loaded %d source(s) from %s, fingerprint %s", len(sources), path, session.Sum(sources...))

	res := frontend.Check(sources...)
	logger.Printf("parsed %d class(es), analyzed=%t, %d diagnostic(s)", len(res.Program.Classes), res.Analyzed(), len(res.Diagnostics))

	printDiagnostics(os.Stderr, res.Diagnostics)
	return res, nil
}

func printDiagnostics(w io.Writer, ds []diag.Diagnostic) {
	for _, d := range ds {
		fmt.Fprintln(w, d.Error())
	}
	if n := len(ds); n > 0 {
		fmt.Fprintf(w, "%d error(s)\n", n)
	}
}

// -------------- CHECK --------------

func cmdCheck(args []string) error {
	fs, verbose := newFlags("check")
	quiet := fs.Bool("q", false, "print nothing on success")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := inputPath(fs, "check")
	if err != nil {
		return err
	}

	res, err := checkPath(path, newLogger(*verbose))
	if err != nil {
		return err
	}
	if !res.OK() {
		return errReported
	}
	if !*quiet {
		fmt.Printf("%s: ok (%d classes)\n", path, len(res.Program.Classes))
	}
	return nil
}

// -------------- FMT --------------

func cmdFmt(args []string) error {
	fs, verbose := newFlags("fmt")
	write := fs.Bool("w", false, "rewrite source files in place")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := inputPath(fs, "fmt")
	if err != nil {
		return err
	}

	logger := newLogger(*verbose)
	res, err := checkPath(path, logger)
	if err != nil {
		return err
	}
	// semantic errors do not prevent formatting
	if !res.Analyzed() {
		return errReported
	}

	if !*write {
		fmt.Print(printer.Pretty(res.Program))
		return nil
	}
	for file, prog := range byFile(res.Program) {
		if err := os.WriteFile(file, []byte(printer.Pretty(prog)), 0644); err != nil {
			return fmt.Errorf("cannot write %s: %w", file, err)
		}
		logger.Printf("formatted %s", file)
	}
	return nil
}

// byFile splits a merged program back into the files it was read from.
func byFile(prog *ast.Program) map[string]*ast.Program {
	files := make(map[string]*ast.Program)
	for _, c := range prog.Classes {
		p, ok := files[c.File]
		if !ok {
			p = &ast.Program{}
			files[c.File] = p
		}
		p.Classes = append(p.Classes, c)
	}
	return files
}

// -------------- TRANSLATE --------------

func cmdTranslate(args []string) error {
	fs, verbose := newFlags("translate")
	out := fs.String("o", "", "output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := inputPath(fs, "translate")
	if err != nil {
		return err
	}

	logger := newLogger(*verbose)
	res, err := checkPath(path, logger)
	if err != nil {
		return err
	}
	if !res.OK() {
		return errReported
	}

	java := printer.Translate(res.Program, res.Bindings)
	if *out == "" {
		fmt.Print(java)
		return nil
	}
	if filepath.Ext(*out) != ".java" {
		logger.Printf("output %s does not end in .java", *out)
	}
	if err := os.WriteFile(*out, []byte(java), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}
	return nil
}

// -------------- DUMP --------------

func cmdDump(args []string) error {
	fs, verbose := newFlags("dump")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := inputPath(fs, "dump")
	if err != nil {
		return err
	}

	res, err := checkPath(path, newLogger(*verbose))
	if err != nil {
		return err
	}
	fmt.Print(dump(res))
	if !res.OK() {
		return errReported
	}
	return nil
}

func dump(res *frontend.Result) string {
	if !res.Analyzed() {
		return ast.Dump(res.Program)
	}
	return ast.DumpTypes(res.Program, res.Bindings.TypeOf)
}
