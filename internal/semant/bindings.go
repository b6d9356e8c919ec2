package semant

import (
	"fmt"

	"bantam/internal/ast"
)

// CastKind classifies a legal cast.
type CastKind int

const (
	CastIdentity CastKind = iota // target equals the static type
	CastUp                       // static type is a strict subtype of the target
)

func (k CastKind) String() string {
	if k == CastUp {
		return "upcast"
	}
	return "identity"
}

// CheckDir records which way an instanceof test relates the static type of
// its subject to the target type.
type CheckDir int

const (
	CheckUp   CheckDir = iota // static type is a subtype of the target
	CheckDown                 // target is a subtype of the static type
)

func (d CheckDir) String() string {
	if d == CheckDown {
		return "down"
	}
	return "up"
}

// Bindings stores what analysis learned about the tree, keyed by node:
//
//   - Types: every expression -> its resolved type name
//   - Locals: every local declaration -> its inferred type
//   - Casts: legal casts -> identity or upcast
//   - Instanceofs: comparable instanceof tests -> check direction
type Bindings struct {
	Types       map[ast.Expr]string
	Locals      map[*ast.DeclStmt]string
	Casts       map[*ast.CastExpr]CastKind
	Instanceofs map[*ast.InstanceofExpr]CheckDir
}

func NewBindings() *Bindings {
	return &Bindings{
		Types:       make(map[ast.Expr]string),
		Locals:      make(map[*ast.DeclStmt]string),
		Casts:       make(map[*ast.CastExpr]CastKind),
		Instanceofs: make(map[*ast.InstanceofExpr]CheckDir),
	}
}

// TypeOf returns the resolved type of e, or "" if e was never analyzed.
func (b *Bindings) TypeOf(e ast.Expr) string {
	return b.Types[e]
}

// setType fills the type slot of e. A slot is written once per run.
func (b *Bindings) setType(e ast.Expr, typ string) string {
	if typ == "" {
		panic(fmt.Sprintf("semant: empty type for %T at %s", e, e.Pos()))
	}
	if prev, ok := b.Types[e]; ok {
		panic(fmt.Sprintf("semant: %T at %s typed twice (%s, then %s)", e, e.Pos(), prev, typ))
	}
	b.Types[e] = typ
	return typ
}
