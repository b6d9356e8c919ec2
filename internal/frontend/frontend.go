// Package frontend runs the phases of the Bantam front end over a set of
// sources: lexing, parsing, hierarchy construction and semantic analysis.
package frontend

import (
	"bantam/internal/ast"
	"bantam/internal/diag"
	"bantam/internal/lexer"
	"bantam/internal/loader"
	"bantam/internal/parser"
	"bantam/internal/semant"
	"bantam/internal/types"
)

// Result is everything one run produced. Hierarchy and Bindings are nil if
// the run stopped after parsing.
type Result struct {
	Program     *ast.Program
	Hierarchy   *types.Hierarchy
	Bindings    *semant.Bindings
	Diagnostics []diag.Diagnostic
}

// OK reports whether the program is free of diagnostics of every kind.
func (r *Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// Analyzed reports whether semantic analysis ran.
func (r *Result) Analyzed() bool {
	return r.Bindings != nil
}

// Check lexes and parses every source into one program and, if that
// succeeded without diagnostics, analyzes it.
func Check(sources ...loader.Source) *Result {
	sink := diag.NewSink()

	progs := make([]*ast.Program, 0, len(sources))
	for _, src := range sources {
		l := lexer.New(src.Path, src.Text)
		p := parser.New(l)
		prog := p.ParseProgram()

		sink.Append(l.Errors()...)
		sink.Append(p.Errors()...)
		progs = append(progs, prog)
	}

	res := &Result{Program: mergePrograms(progs)}
	if sink.HasErrors() {
		res.Diagnostics = sink.Diagnostics()
		return res
	}

	res.Hierarchy = types.Build(res.Program, sink)
	if !semant.HasMain(res.Program) {
		file := ""
		if len(sources) > 0 {
			file = sources[0].Path
		}
		sink.Report(diag.Semantic, diag.E3011, file, 0, "no class Main with a method void main()")
	}
	res.Bindings, _ = semant.Analyze(res.Program, res.Hierarchy, sink)

	res.Diagnostics = sink.Diagnostics()
	return res
}

func mergePrograms(programs []*ast.Program) *ast.Program {
	merged := &ast.Program{}
	for _, prog := range programs {
		merged.Classes = append(merged.Classes, prog.Classes...)
	}
	return merged
}
