package parser_test

import (
	"strings"
	"testing"

	"bantam/internal/ast"
	"bantam/internal/diag"
	"bantam/internal/lexer"
	"bantam/internal/parser"
	"bantam/internal/token"
)

func parse(t *testing.T, input string) (*ast.Program, []diag.Diagnostic) {
	t.Helper()
	l := lexer.New("Test.btm", input)
	p := parser.New(l)
	prog := p.ParseProgram()
	errs := append(l.Errors(), p.Errors()...)
	return prog, errs
}

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, errs := parse(t, input)
	if len(errs) > 0 {
		for _, e := range errs {
			t.Logf("parser error: %s", e.Error())
		}
		t.Fatalf("expected no parser errors, got %d", len(errs))
	}
	return prog
}

func TestParseSimpleProgram(t *testing.T) {
	input := `class Main {
    int count = 3;
    void main() {
        var a = new A();
        a.go(count, "hi");
        return;
    }
}

class A extends B {
    boolean go(int n, String s) {
        return n > 0;
    }
}
`
	prog := mustParse(t, input)

	if len(prog.Classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(prog.Classes))
	}

	main := prog.Classes[0]
	if main.Name != "Main" || main.Parent != "Object" {
		t.Errorf("expected Main extends Object, got %s extends %s", main.Name, main.Parent)
	}
	if main.File != "Test.btm" {
		t.Errorf("expected class file Test.btm, got %q", main.File)
	}
	if len(main.Fields()) != 1 || len(main.Methods()) != 1 {
		t.Fatalf("expected 1 field and 1 method, got %d and %d", len(main.Fields()), len(main.Methods()))
	}
	if main.Fields()[0].Init == nil {
		t.Errorf("expected field initializer")
	}

	a := prog.Classes[1]
	if a.Parent != "B" {
		t.Errorf("expected parent B, got %q", a.Parent)
	}
	m := a.Methods()[0]
	if m.ReturnType != "boolean" || len(m.Formals) != 2 {
		t.Fatalf("unexpected method signature %s %s/%d", m.ReturnType, m.Name, len(m.Formals))
	}
	if m.Formals[1].Type != "String" || m.Formals[1].Name != "s" {
		t.Errorf("unexpected second formal %+v", m.Formals[1])
	}
}

func TestParseStatements(t *testing.T) {
	input := `class Main {
    void main() {
        var i = 0;
        while (i < 10) { i++; }
        for (i = 0; i < 3; i = i + 1) { if (i == 2) break; else { } }
        for (;;) { break; }
        { i--; }
    }
}
`
	prog := mustParse(t, input)
	body := prog.Classes[0].Methods()[0].Body
	if len(body) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(body))
	}

	if _, ok := body[0].(*ast.DeclStmt); !ok {
		t.Errorf("expected *ast.DeclStmt, got %T", body[0])
	}
	if _, ok := body[1].(*ast.WhileStmt); !ok {
		t.Errorf("expected *ast.WhileStmt, got %T", body[1])
	}

	f, ok := body[2].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", body[2])
	}
	if f.Init == nil || f.Pred == nil || f.Update == nil {
		t.Errorf("expected all three for clauses, got %+v", f)
	}

	empty := body[3].(*ast.ForStmt)
	if empty.Init != nil || empty.Pred != nil || empty.Update != nil {
		t.Errorf("expected empty for clauses, got %+v", empty)
	}

	if _, ok := body[4].(*ast.BlockStmt); !ok {
		t.Errorf("expected *ast.BlockStmt, got %T", body[4])
	}
}

func TestParsePrecedence(t *testing.T) {
	input := `class Main {
    void main() {
        var b = 1 + 2 * 3 < 7 && true || !false;
    }
}
`
	prog := mustParse(t, input)
	decl := prog.Classes[0].Methods()[0].Body[0].(*ast.DeclStmt)

	or, ok := decl.Init.(*ast.BinaryExpr)
	if !ok || or.Op != token.OrOr {
		t.Fatalf("expected || at the root, got %#v", decl.Init)
	}
	and, ok := or.Left.(*ast.BinaryExpr)
	if !ok || and.Op != token.AndAnd {
		t.Fatalf("expected && under ||, got %#v", or.Left)
	}
	lt, ok := and.Left.(*ast.BinaryExpr)
	if !ok || lt.Op != token.Lt {
		t.Fatalf("expected < under &&, got %#v", and.Left)
	}
	plus, ok := lt.Left.(*ast.BinaryExpr)
	if !ok || plus.Op != token.Plus {
		t.Fatalf("expected + under <, got %#v", lt.Left)
	}
	if mul, ok := plus.Right.(*ast.BinaryExpr); !ok || mul.Op != token.Star {
		t.Fatalf("expected * on the right of +, got %#v", plus.Right)
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	input := `class Main {
    void main() {
        x = 1;
        this.x = 2;
        super.y = 3;
        a = b = 4;
    }
}
`
	prog := mustParse(t, input)
	body := prog.Classes[0].Methods()[0].Body

	tests := []struct {
		ref  string
		name string
	}{
		{"", "x"},
		{"this", "x"},
		{"super", "y"},
		{"", "a"},
	}
	for i, tt := range tests {
		as, ok := body[i].(*ast.ExprStmt).X.(*ast.AssignExpr)
		if !ok {
			t.Fatalf("stmt %d: expected *ast.AssignExpr, got %T", i, body[i].(*ast.ExprStmt).X)
		}
		if as.RefName != tt.ref || as.Name != tt.name {
			t.Errorf("stmt %d: expected %s.%s, got %s.%s", i, tt.ref, tt.name, as.RefName, as.Name)
		}
	}

	chained := body[3].(*ast.ExprStmt).X.(*ast.AssignExpr)
	if _, ok := chained.Value.(*ast.AssignExpr); !ok {
		t.Errorf("expected right-associative assignment, got %T", chained.Value)
	}
}

func TestParseExpressionForms(t *testing.T) {
	input := `class Main {
    void main() {
        var c = cast(Object, "s");
        var d = c instanceof String;
        var n = this.name.length();
        var m = -n;
        var s = "a\tb";
    }
}
`
	prog := mustParse(t, input)
	body := prog.Classes[0].Methods()[0].Body
	init := func(i int) ast.Expr { return body[i].(*ast.DeclStmt).Init }

	if c, ok := init(0).(*ast.CastExpr); !ok || c.Type != "Object" {
		t.Errorf("expected cast to Object, got %#v", init(0))
	}
	if io, ok := init(1).(*ast.InstanceofExpr); !ok || io.Type != "String" {
		t.Errorf("expected instanceof String, got %#v", init(1))
	}

	d, ok := init(2).(*ast.DispatchExpr)
	if !ok || d.Method != "length" {
		t.Fatalf("expected dispatch of length, got %#v", init(2))
	}
	field, ok := d.Ref.(*ast.VarExpr)
	if !ok || field.Name != "name" {
		t.Fatalf("expected field access name, got %#v", d.Ref)
	}
	if this, ok := field.Ref.(*ast.VarExpr); !ok || this.Name != "this" {
		t.Errorf("expected this qualifier, got %#v", field.Ref)
	}

	if u, ok := init(3).(*ast.UnaryExpr); !ok || u.Op != token.Minus || u.Postfix {
		t.Errorf("expected prefix negation, got %#v", init(3))
	}

	s := init(4).(*ast.StringLiteral)
	if s.Value != "a\tb" || s.Raw != `a\tb` {
		t.Errorf("unexpected string literal value=%q raw=%q", s.Value, s.Raw)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		want  string
	}{
		{
			name:  "missing semicolon",
			input: "class A { int x }",
			code:  diag.E2002,
			want:  "expected ;",
		},
		{
			name:  "not a statement",
			input: "class A { void m() { 1 + 2; } }",
			code:  diag.E2005,
			want:  "not a statement",
		},
		{
			name:  "invalid assignment target",
			input: "class A { void m() { m() = 3; } }",
			code:  diag.E2004,
			want:  "invalid assignment target",
		},
		{
			name:  "deep assignment target",
			input: "class A { void m() { a.b.c = 3; } }",
			code:  diag.E2004,
			want:  "invalid assignment target",
		},
		{
			name:  "missing expression",
			input: "class A { void m() { var x = ; } }",
			code:  diag.E2003,
			want:  "expected expression",
		},
		{
			name:  "top level junk",
			input: "int x; class A { }",
			code:  diag.E2001,
			want:  "unexpected token at top level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parse(t, tt.input)
			if len(errs) == 0 {
				t.Fatalf("expected a syntax error")
			}
			first := errs[0]
			if first.Kind != diag.Syntax {
				t.Errorf("expected syntax error, got %s", first.Kind)
			}
			if first.Code.Code != tt.code.Code {
				t.Errorf("expected code %s, got %s", tt.code.Code, first.Code.Code)
			}
			if !strings.Contains(first.Msg, tt.want) {
				t.Errorf("expected message containing %q, got %q", tt.want, first.Msg)
			}
			if first.File != "Test.btm" || first.Line != 1 {
				t.Errorf("unexpected location %s:%d", first.File, first.Line)
			}
		})
	}
}

func TestParserRecoversAndTerminates(t *testing.T) {
	inputs := []string{
		"class",
		"class A {",
		"class A { void m( { } }",
		"class A { void m() { if (x { } } }",
		"class A { ) ) ) }",
		"class A { void m() { var = 3; x.; } }",
		"class A { void m() { cast(; } }",
	}
	for _, in := range inputs {
		_, errs := parse(t, in)
		if len(errs) == 0 {
			t.Errorf("%q: expected syntax errors", in)
		}
	}
}
