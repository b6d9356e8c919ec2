// Package printer turns a syntax tree back into text: canonical Bantam
// source, or an equivalent Java program.
package printer

import (
	"fmt"
	"strings"

	"bantam/internal/ast"
	"bantam/internal/semant"
	"bantam/internal/token"
	"bantam/internal/types"
)

// Pretty returns prog as canonically formatted Bantam source. Pretty
// printing its own output after a re-parse gives the same text.
func Pretty(prog *ast.Program) string {
	p := &printer{}
	p.program(prog)
	return p.sb.String()
}

// Translate returns a Java program equivalent to prog. b, when non-nil,
// supplies the inferred local types from a successful analysis.
func Translate(prog *ast.Program, b *semant.Bindings) string {
	p := &printer{java: true, bindings: b}
	p.sb.WriteString(javaPrelude)
	p.program(prog)
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	indent int

	java     bool
	bindings *semant.Bindings
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(&p.sb, format, args...)
}

// line writes one indented line.
func (p *printer) line(format string, args ...interface{}) {
	p.sb.WriteString(strings.Repeat("\t", p.indent))
	p.printf(format, args...)
	p.sb.WriteByte('\n')
}

// ---------- Declarations ----------

func (p *printer) program(prog *ast.Program) {
	for i, c := range prog.Classes {
		if i > 0 {
			p.sb.WriteByte('\n')
		}
		p.class(c)
	}
}

func (p *printer) class(c *ast.Class) {
	header := "class " + c.Name
	if c.Parent != "" && c.Parent != types.Object {
		header += " extends " + c.Parent
	}
	p.line("%s {", header)
	p.indent++

	prevMethod := false
	for i, m := range c.Members {
		_, isMethod := m.(*ast.Method)
		if i > 0 && (isMethod || prevMethod) {
			p.sb.WriteByte('\n')
		}
		prevMethod = isMethod

		switch m := m.(type) {
		case *ast.Field:
			p.field(m)
		case *ast.Method:
			p.method(m)
		}
	}

	if p.java && c.Name == "Main" {
		if len(c.Members) > 0 {
			p.sb.WriteByte('\n')
		}
		p.line("public static void main(String[] args) {")
		p.line("\tnew Main().main();")
		p.line("}")
	}

	p.indent--
	p.line("}")
}

func (p *printer) field(f *ast.Field) {
	decl := f.Type + " " + f.Name
	if p.java {
		decl = "protected " + decl
	}
	if f.Init != nil {
		decl += " = " + p.expr(f.Init, precAssign)
	}
	p.line("%s;", decl)
}

func (p *printer) method(m *ast.Method) {
	formals := make([]string, len(m.Formals))
	for i, f := range m.Formals {
		formals[i] = f.Type + " " + f.Name
	}
	sig := fmt.Sprintf("%s %s(%s)", m.ReturnType, m.Name, strings.Join(formals, ", "))
	if p.java {
		sig = "public " + sig
	}

	p.line("%s {", sig)
	p.indent++
	p.stmts(m.Body)
	p.indent--
	p.line("}")
}

// ---------- Statements ----------

func (p *printer) stmts(list []ast.Stmt) {
	for _, s := range list {
		p.stmt(s)
	}
}

func (p *printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.DeclStmt:
		p.line("%s %s = %s;", p.localType(s), s.Name, p.expr(s.Init, precAssign))

	case *ast.ExprStmt:
		p.line("%s;", p.expr(s.X, precAssign))

	case *ast.IfStmt:
		p.body(fmt.Sprintf("if (%s)", p.expr(s.Pred, precAssign)), s.Then)
		if s.Else != nil {
			p.body("else", s.Else)
		}

	case *ast.WhileStmt:
		p.body(fmt.Sprintf("while (%s)", p.expr(s.Pred, precAssign)), s.Body)

	case *ast.ForStmt:
		var init, pred, update string
		if s.Init != nil {
			init = p.expr(s.Init, precAssign)
		}
		if s.Pred != nil {
			pred = " " + p.expr(s.Pred, precAssign)
		}
		if s.Update != nil {
			update = " " + p.expr(s.Update, precAssign)
		}
		p.body(fmt.Sprintf("for (%s;%s;%s)", init, pred, update), s.Body)

	case *ast.BreakStmt:
		p.line("break;")

	case *ast.BlockStmt:
		p.line("{")
		p.indent++
		p.stmts(s.Stmts)
		p.indent--
		p.line("}")

	case *ast.ReturnStmt:
		if s.Result == nil {
			p.line("return;")
		} else {
			p.line("return %s;", p.expr(s.Result, precAssign))
		}
	}
}

// body writes a statement header followed by its body. A block body opens
// on the header line; any other statement goes on its own indented line.
func (p *printer) body(header string, s ast.Stmt) {
	b, ok := s.(*ast.BlockStmt)
	if !ok {
		p.line("%s", header)
		p.indent++
		p.stmt(s)
		p.indent--
		return
	}
	p.line("%s {", header)
	p.indent++
	p.stmts(b.Stmts)
	p.indent--
	p.line("}")
}

// localType is "var" except for Java locals initialized to null, which
// Java cannot infer.
func (p *printer) localType(s *ast.DeclStmt) string {
	if p.java && p.bindings != nil && p.bindings.Locals[s] == types.Null {
		return types.Object
	}
	return "var"
}

// ---------- Expressions ----------

// Precedence levels, loosest first.
const (
	precAssign = iota + 1
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precPrefix
	precPostfix
	precChain // field access and method calls
	precPrimary
)

func binaryPrec(op token.Kind) int {
	switch op {
	case token.OrOr:
		return precOr
	case token.AndAnd:
		return precAnd
	case token.Eq, token.NotEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precRelational
	case token.Plus, token.Minus:
		return precAdditive
	default:
		return precMultiplicative
	}
}

func precOf(e ast.Expr) int {
	switch e := e.(type) {
	case *ast.AssignExpr:
		return precAssign
	case *ast.BinaryExpr:
		return binaryPrec(e.Op)
	case *ast.InstanceofExpr:
		return precRelational
	case *ast.UnaryExpr:
		if e.Postfix {
			return precPostfix
		}
		return precPrefix
	case *ast.VarExpr, *ast.DispatchExpr:
		return precChain
	default:
		return precPrimary
	}
}

// expr renders e, parenthesized if it binds looser than min.
func (p *printer) expr(e ast.Expr, min int) string {
	s := p.bare(e)
	if precOf(e) < min {
		return "(" + s + ")"
	}
	return s
}

func (p *printer) bare(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.DispatchExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = p.expr(a, precAssign)
		}
		call := e.Method + "(" + strings.Join(args, ", ") + ")"
		if e.Ref == nil {
			return call
		}
		return p.expr(e.Ref, precChain) + "." + call

	case *ast.NewExpr:
		return "new " + e.Type + "()"

	case *ast.InstanceofExpr:
		return p.expr(e.X, precAdditive) + " instanceof " + e.Type

	case *ast.CastExpr:
		if p.java {
			return "((" + e.Type + ") (" + p.expr(e.X, precAssign) + "))"
		}
		return "cast(" + e.Type + ", " + p.expr(e.X, precAssign) + ")"

	case *ast.AssignExpr:
		target := e.Name
		if e.RefName != "" {
			target = e.RefName + "." + e.Name
		}
		return target + " = " + p.expr(e.Value, precAssign)

	case *ast.VarExpr:
		if e.Ref == nil {
			return e.Name
		}
		return p.expr(e.Ref, precChain) + "." + e.Name

	case *ast.BinaryExpr:
		prec := binaryPrec(e.Op)
		left := prec
		if prec == precRelational {
			left = prec + 1
		}
		return p.expr(e.Left, left) + " " + e.Op.Op() + " " + p.expr(e.Right, prec+1)

	case *ast.UnaryExpr:
		if e.Postfix {
			return p.expr(e.X, precChain) + e.Op.Op()
		}
		op, x := e.Op.Op(), p.expr(e.X, precPrefix)
		// keep "- -x" from reading as "--x"
		if (e.Op == token.Minus || e.Op == token.Decr) && strings.HasPrefix(x, "-") {
			return op + " " + x
		}
		return op + x

	case *ast.IntLiteral:
		return e.Raw

	case *ast.BoolLiteral:
		if e.Value {
			return "true"
		}
		return "false"

	case *ast.StringLiteral:
		return `"` + e.Raw + `"`
	}

	panic(fmt.Sprintf("printer: unexpected expression %T", e))
}
