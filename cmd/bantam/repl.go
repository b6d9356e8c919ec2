package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"bantam/internal/frontend"
	"bantam/internal/lexer"
	"bantam/internal/loader"
	"bantam/internal/printer"
	"bantam/internal/session"
	"bantam/internal/token"
)

const (
	historyFile = ".bantam_history"
	promptMain  = "bantam> "
	promptCont  = "   ...> "
	replSource  = "<repl>"
)

const replHelp = `Type a program (classes may span several lines) to check it, or:
  :load <path>  load and check a file or directory
  :reload       re-read the last loaded path
  :fmt          print the current program in canonical form
  :java         print the current program translated to Java
  :dump         print the syntax tree with inferred types
  :stats        show session cache statistics
  :help         show this message
  :quit         leave`

type repl struct {
	sess *session.Session
	path string // last :load argument
	last *frontend.Result
}

func cmdRepl(args []string) error {
	fs, verbose := newFlags("repl")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := newLogger(*verbose)

	fmt.Println("Bantam", version, "- type :help for commands")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	r := &repl{sess: session.New()}
	for {
		input, ok := readProgram(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		if strings.HasPrefix(input, ":") {
			if quit := r.command(input); quit {
				return nil
			}
			continue
		}
		r.check(loader.Source{Path: replSource, Text: input})
		logger.Printf("%+v", r.sess.Stats())
	}
}

// readProgram reads lines until every brace opened so far is closed.
func readProgram(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// ctrl-c drops the pending input
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || braceDepth(src) <= 0 {
			return src, true
		}
	}
}

func braceDepth(src string) int {
	l := lexer.New(replSource, src)
	depth := 0
	for tok := l.NextToken(); tok.Kind != token.EOF; tok = l.NextToken() {
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
	}
	return depth
}

func (r *repl) command(input string) (quit bool) {
	fields := strings.Fields(input)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Println(replHelp)
	case ":load":
		if len(fields) != 2 {
			fmt.Println("usage: :load <path>")
			return false
		}
		r.path = fields[1]
		r.load()
	case ":reload":
		if r.path == "" {
			fmt.Println("nothing loaded yet")
			return false
		}
		r.load()
	case ":fmt":
		if r.ready(parsedTree) {
			fmt.Print(printer.Pretty(r.last.Program))
		}
	case ":java":
		if r.ready(cleanTree) {
			fmt.Print(printer.Translate(r.last.Program, r.last.Bindings))
		}
	case ":dump":
		if r.ready(anyTree) {
			fmt.Print(dump(r.last))
		}
	case ":stats":
		st := r.sess.Stats()
		fmt.Printf("checks: %d, cache hits: %d, cached results: %d\n", st.Checks, st.Hits, st.Entries)
	default:
		fmt.Println("unknown command. Type :help for a list.")
	}
	return false
}

func (r *repl) load() {
	sources, err := loader.Load(r.path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	r.check(sources...)
}

func (r *repl) check(sources ...loader.Source) {
	r.last = r.sess.Check(sources...)
	printDiagnostics(os.Stdout, r.last.Diagnostics)
	if r.last.OK() {
		fmt.Printf("ok (%d classes)\n", len(r.last.Program.Classes))
	}
}

// need says whether the last result can be printed at the given level.
type need int

const (
	anyTree    need = iota // a partial tree after syntax errors is fine
	parsedTree             // no lexical or syntax errors
	cleanTree              // no errors at all
)

func (r *repl) ready(n need) bool {
	switch {
	case r.last == nil:
		fmt.Println("no program yet")
		return false
	case n == parsedTree && !r.last.Analyzed():
		fmt.Println("the current program does not parse")
		return false
	case n == cleanTree && !r.last.OK():
		fmt.Println("the current program has errors")
		return false
	}
	return true
}
