package printer_test

import (
	"strings"
	"testing"

	"bantam/internal/ast"
	"bantam/internal/diag"
	"bantam/internal/lexer"
	"bantam/internal/parser"
	"bantam/internal/printer"
	"bantam/internal/semant"
	"bantam/internal/types"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.New("Test.btm", input)
	p := parser.New(l)
	prog := p.ParseProgram()
	for _, e := range append(l.Errors(), p.Errors()...) {
		t.Fatalf("parse error: %s\n%s", e.Error(), input)
	}
	return prog
}

const sample = `class Main extends Object {
  int n = 1+2*3; String s = "a\tb";
  void main() {
    var x = -(-n) - - 1;
    var b = (1 < 2) == (x >= 3) && !true || x instanceof Object;
    var c = cast(Object, "s").toString().length();
    if (b) x = x + 1; else { x++; }
    while (b) { b = false; break; }
    for (x = 0; x < 10; x = (x + 1) * 2) x--;
    for (;;) { break; }
    { var y = x = this.n = 4; }
    this.n = (n + 1) % 3;
    new Main().go(x, null);
    return;
  }
  int go(int a, Object o) { return a; }
}
class Sub extends Main { }
`

func TestPrettyIsIdempotent(t *testing.T) {
	first := printer.Pretty(parse(t, sample))
	second := printer.Pretty(parse(t, first))
	if first != second {
		t.Fatalf("pretty print not idempotent:\n--- first ---\n%s\n--- second ---\n%s", first, second)
	}
}

func TestPrettyLayout(t *testing.T) {
	got := printer.Pretty(parse(t, `class A extends B { int x; int m(int a){ if (a>0) return a; else return -a; } }`))
	want := "class A extends B {\n" +
		"\tint x;\n" +
		"\n" +
		"\tint m(int a) {\n" +
		"\t\tif (a > 0)\n" +
		"\t\t\treturn a;\n" +
		"\t\telse\n" +
		"\t\t\treturn -a;\n" +
		"\t}\n" +
		"}\n"
	if got != want {
		t.Fatalf("unexpected layout:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyParenthesizesOnlyWhenNeeded(t *testing.T) {
	got := printer.Pretty(parse(t, sample))

	for _, want := range []string{
		"int n = 1 + 2 * 3;",
		`String s = "a\tb";`,
		"var x = - -n - -1;",
		"var b = 1 < 2 == x >= 3 && !true || x instanceof Object;",
		`var c = cast(Object, "s").toString().length();`,
		"for (x = 0; x < 10; x = (x + 1) * 2)",
		"for (;;) {",
		"var y = x = this.n = 4;",
		"this.n = (n + 1) % 3;",
		"new Main().go(x, null);",
		"class Main {",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestTranslate(t *testing.T) {
	prog := parse(t, `class Main {
    String greeting = "hi";
    void main() {
        var io = new TextIO();
        var o = cast(Object, greeting);
        var n = null;
        io.putString(greeting).putInt(1);
    }
}
class Sub extends Main { }
`)
	sink := diag.NewSink()
	h := types.Build(prog, sink)
	b, ok := semant.Analyze(prog, h, sink)
	if !ok {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}

	got := printer.Translate(prog, b)
	for _, want := range []string{
		"final class Sys {",
		"final class TextIO {",
		"class Main {",
		"protected String greeting = \"hi\";",
		"public void main() {",
		"var io = new TextIO();",
		"var o = ((Object) (greeting));",
		"Object n = null;",
		"public static void main(String[] args) {",
		"class Sub extends Main {",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected translation to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "cast(") {
		t.Errorf("cast syntax leaked into Java output")
	}
}

func TestTranslateWithoutBindings(t *testing.T) {
	got := printer.Translate(parse(t, "class A { void m() { var x = 1; } }"), nil)
	if !strings.Contains(got, "var x = 1;") {
		t.Fatalf("expected var declaration, got:\n%s", got)
	}
	if strings.Contains(got, "static void main") {
		t.Fatalf("unexpected entry point for a program without Main")
	}
}
