package lexer_test

import (
	"strings"
	"testing"

	"bantam/internal/diag"
	"bantam/internal/lexer"
	"bantam/internal/token"
)

func TestNextToken_BasicProgram(t *testing.T) {
	input := `class Main extends Object {
    int count = 10;
    void main() {
        var s = "hi\n";
        if (count >= 3 && !done) { count++; }
        x.y = cast(Foo, z) instanceof Bar;
    }
}
`

	tests := []struct {
		kind token.Kind
		lit  string
	}{
		{token.Class, "class"},
		{token.Ident, "Main"},
		{token.Extends, "extends"},
		{token.Ident, "Object"},
		{token.LBrace, "{"},

		{token.Ident, "int"},
		{token.Ident, "count"},
		{token.Assign, "="},
		{token.Int, "10"},
		{token.Semicolon, ";"},

		{token.Ident, "void"},
		{token.Ident, "main"},
		{token.LParen, "("},
		{token.RParen, ")"},
		{token.LBrace, "{"},

		{token.Var, "var"},
		{token.Ident, "s"},
		{token.Assign, "="},
		{token.String, `hi\n`},
		{token.Semicolon, ";"},

		{token.If, "if"},
		{token.LParen, "("},
		{token.Ident, "count"},
		{token.GtEq, ">="},
		{token.Int, "3"},
		{token.AndAnd, "&&"},
		{token.Bang, "!"},
		{token.Ident, "done"},
		{token.RParen, ")"},
		{token.LBrace, "{"},
		{token.Ident, "count"},
		{token.Incr, "++"},
		{token.Semicolon, ";"},
		{token.RBrace, "}"},

		{token.Ident, "x"},
		{token.Dot, "."},
		{token.Ident, "y"},
		{token.Assign, "="},
		{token.Cast, "cast"},
		{token.LParen, "("},
		{token.Ident, "Foo"},
		{token.Comma, ","},
		{token.Ident, "z"},
		{token.RParen, ")"},
		{token.Instanceof, "instanceof"},
		{token.Ident, "Bar"},
		{token.Semicolon, ";"},

		{token.RBrace, "}"},
		{token.RBrace, "}"},
		{token.EOF, ""},
	}

	l := lexer.New("Main.btm", input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (lexeme=%q, pos=%+v)",
				i, tt.kind, tok.Kind, tok.Lexeme, tok.Pos)
		}

		if tok.Lexeme != tt.lit {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q",
				i, tt.lit, tok.Lexeme)
		}
	}

	if errs := l.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected lexer errors: %v", errs)
	}
}

func TestNextToken_Comments(t *testing.T) {
	input := `// line comment
a /* block
comment */ b / c`
	l := lexer.New("", input)
	want := []token.Kind{token.Ident, token.Ident, token.Slash, token.Ident, token.EOF}
	for i, k := range want {
		tok := l.NextToken()
		if tok.Kind != k {
			t.Fatalf("token %d: expected %s, got %s", i, k, tok.Kind)
		}
	}
}

func TestNextToken_Positions(t *testing.T) {
	l := lexer.New("", "a\n  bb")
	a := l.NextToken()
	b := l.NextToken()
	if a.Pos.Line != 1 || a.Pos.Column != 1 {
		t.Errorf("unexpected position for a: %+v", a.Pos)
	}
	if b.Pos.Line != 2 || b.Pos.Column != 3 {
		t.Errorf("unexpected position for bb: %+v", b.Pos)
	}
	if b.Lexeme != "bb" {
		t.Errorf("identifier at end of input truncated: %q", b.Lexeme)
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		msg   string
	}{
		{"int too large", "x = 2147483648;", diag.E1002, "too large"},
		{"unterminated string", `"abc`, diag.E1003, "unterminated string"},
		{"multiline string", "\"ab\ncd\"", diag.E1004, "multiple lines"},
		{"bad escape", `"a\qb"`, diag.E1005, "escape"},
		{"string too long", `"` + strings.Repeat("a", 5001) + `"`, diag.E1006, "exceeds"},
		{"unterminated comment", "a /* never closed", diag.E1007, "block comment"},
		{"lone ampersand", "a & b", diag.E1001, "unsupported character"},
		{"lone pipe", "a | b", diag.E1001, "unsupported character"},
		{"hash", "#", diag.E1001, "unsupported character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := lexer.New("bad.btm", tt.input)
			for tok := l.NextToken(); tok.Kind != token.EOF; tok = l.NextToken() {
			}
			errs := l.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			e := errs[0]
			if e.Code != tt.code || e.Kind != diag.Lexical || e.File != "bad.btm" {
				t.Fatalf("unexpected diagnostic: %+v", e)
			}
			if !strings.Contains(e.Msg, tt.msg) {
				t.Fatalf("expected message containing %q, got %q", tt.msg, e.Msg)
			}
		})
	}
}

func TestIllegalTokenDoesNotStopScanning(t *testing.T) {
	l := lexer.New("", "a # b")
	kinds := []token.Kind{}
	for tok := l.NextToken(); tok.Kind != token.EOF; tok = l.NextToken() {
		kinds = append(kinds, tok.Kind)
	}
	if len(kinds) != 3 || kinds[1] != token.Illegal || kinds[2] != token.Ident {
		t.Fatalf("unexpected token kinds: %v", kinds)
	}
}
