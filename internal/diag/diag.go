// Package diag collects the diagnostics produced by every phase of the
// front end. A Sink only ever appends; records keep discovery order.
package diag

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Lexical Kind = iota
	Syntax
	Semantic
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type Diagnostic struct {
	Kind Kind
	Code Code
	File string
	Line int
	Msg  string
}

func (d Diagnostic) Error() string {
	var sb strings.Builder
	if d.File != "" {
		sb.WriteString(d.File)
		sb.WriteByte(':')
	}
	fmt.Fprintf(&sb, "%d: %s error", d.Line, d.Kind)
	if d.Code.Code != "" {
		fmt.Fprintf(&sb, " %s", d.Code.Code)
	}
	sb.WriteString(": ")
	sb.WriteString(d.Msg)
	return sb.String()
}

// Sink is an append-only diagnostic list. It is not safe for concurrent use;
// every analysis run owns its own Sink.
type Sink struct {
	list []Diagnostic
}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Report(kind Kind, code Code, file string, line int, msg string) {
	s.list = append(s.list, Diagnostic{
		Kind: kind,
		Code: code,
		File: file,
		Line: line,
		Msg:  msg,
	})
}

func (s *Sink) Reportf(kind Kind, code Code, file string, line int, format string, args ...interface{}) {
	s.Report(kind, code, file, line, fmt.Sprintf(format, args...))
}

// Append copies already-built diagnostics into the sink.
func (s *Sink) Append(ds ...Diagnostic) {
	s.list = append(s.list, ds...)
}

// Diagnostics returns a copy of the recorded diagnostics in discovery order.
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.list))
	copy(out, s.list)
	return out
}

func (s *Sink) Len() int {
	return len(s.list)
}

// Count returns the number of diagnostics of the given kind.
func (s *Sink) Count(kind Kind) int {
	n := 0
	for _, d := range s.list {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func (s *Sink) HasErrors() bool {
	return len(s.list) > 0
}

// Since returns the diagnostics recorded after the first mark entries.
func (s *Sink) Since(mark int) []Diagnostic {
	if mark >= len(s.list) {
		return nil
	}
	out := make([]Diagnostic, len(s.list)-mark)
	copy(out, s.list[mark:])
	return out
}
