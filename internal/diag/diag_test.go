package diag_test

import (
	"testing"

	"github.com/go-test/deep"

	"bantam/internal/diag"
)

func TestSinkKeepsDiscoveryOrder(t *testing.T) {
	s := diag.NewSink()
	s.Reportf(diag.Semantic, diag.E3003, "a.btm", 7, "second %s", "thing")
	s.Report(diag.Lexical, diag.E1001, "a.btm", 2, "first")
	s.Report(diag.Semantic, diag.E3003, "a.btm", 7, "second thing")

	want := []diag.Diagnostic{
		{Kind: diag.Semantic, Code: diag.E3003, File: "a.btm", Line: 7, Msg: "second thing"},
		{Kind: diag.Lexical, Code: diag.E1001, File: "a.btm", Line: 2, Msg: "first"},
		{Kind: diag.Semantic, Code: diag.E3003, File: "a.btm", Line: 7, Msg: "second thing"},
	}
	if diff := deep.Equal(s.Diagnostics(), want); diff != nil {
		t.Error(diff)
	}
	if s.Count(diag.Semantic) != 2 || s.Count(diag.Syntax) != 0 {
		t.Fatalf("unexpected counts: semantic=%d syntax=%d", s.Count(diag.Semantic), s.Count(diag.Syntax))
	}
}

func TestSinkSince(t *testing.T) {
	s := diag.NewSink()
	s.Report(diag.Syntax, diag.E2001, "", 1, "a")
	mark := s.Len()
	if got := s.Since(mark); got != nil {
		t.Fatalf("expected nothing since mark, got %v", got)
	}
	s.Report(diag.Semantic, diag.E3005, "", 2, "b")
	got := s.Since(mark)
	if len(got) != 1 || got[0].Msg != "b" {
		t.Fatalf("unexpected diagnostics since mark: %v", got)
	}
}

func TestDiagnosticError(t *testing.T) {
	d := diag.Diagnostic{Kind: diag.Semantic, Code: diag.E3005, File: "Main.btm", Line: 12, Msg: "break outside loop"}
	want := "Main.btm:12: semantic error E3005: break outside loop"
	if d.Error() != want {
		t.Fatalf("expected %q, got %q", want, d.Error())
	}

	d.File = ""
	d.Code = diag.Code{}
	if got := d.Error(); got != "12: semantic error: break outside loop" {
		t.Fatalf("unexpected rendering without file: %q", got)
	}
}
