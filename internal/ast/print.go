package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump returns a human-readable representation of the AST.
func Dump(node Node) string {
	return DumpTypes(node, nil)
}

// DumpTypes is Dump with every expression line suffixed by the type typeOf
// reports for it. A nil typeOf prints no types.
func DumpTypes(node Node, typeOf func(Expr) string) string {
	var sb strings.Builder
	d := dumper{w: &sb, typeOf: typeOf}
	d.node(node, 0)
	return sb.String()
}

type dumper struct {
	w      io.Writer
	typeOf func(Expr) string
}

func (d *dumper) line(indent int, n Node, format string, args ...interface{}) {
	ind := strings.Repeat("  ", indent)
	fmt.Fprintf(d.w, "%s%s", ind, fmt.Sprintf(format, args...))
	if e, ok := n.(Expr); ok && d.typeOf != nil {
		t := d.typeOf(e)
		if t == "" {
			t = "?"
		}
		fmt.Fprintf(d.w, " : %s", t)
	}
	fmt.Fprintf(d.w, " @%d\n", n.Pos().Line)
}

func (d *dumper) node(n Node, indent int) {
	if n == nil {
		return
	}

	switch n := n.(type) {
	case *Program:
		fmt.Fprintf(d.w, "%sProgram\n", strings.Repeat("  ", indent))
		for _, c := range n.Classes {
			d.node(c, indent+1)
		}

	case *Class:
		d.line(indent, n, "Class name=%s parent=%s file=%s", n.Name, n.Parent, n.File)
		for _, m := range n.Members {
			d.node(m, indent+1)
		}

	case *Field:
		d.line(indent, n, "Field name=%s type=%s", n.Name, n.Type)
		if n.Init != nil {
			d.node(n.Init, indent+1)
		}

	case *Method:
		d.line(indent, n, "Method name=%s returns=%s", n.Name, n.ReturnType)
		for _, f := range n.Formals {
			d.node(f, indent+1)
		}
		d.stmts(n.Body, indent+1)

	case *Formal:
		d.line(indent, n, "Formal name=%s type=%s", n.Name, n.Type)

	case *DeclStmt:
		d.line(indent, n, "DeclStmt name=%s", n.Name)
		d.node(n.Init, indent+1)

	case *ExprStmt:
		d.line(indent, n, "ExprStmt")
		d.node(n.X, indent+1)

	case *IfStmt:
		d.line(indent, n, "IfStmt")
		d.node(n.Pred, indent+1)
		d.node(n.Then, indent+1)
		if n.Else != nil {
			fmt.Fprintf(d.w, "%s  Else:\n", strings.Repeat("  ", indent))
			d.node(n.Else, indent+2)
		}

	case *WhileStmt:
		d.line(indent, n, "WhileStmt")
		d.node(n.Pred, indent+1)
		d.node(n.Body, indent+1)

	case *ForStmt:
		d.line(indent, n, "ForStmt")
		for _, part := range []struct {
			label string
			e     Expr
		}{{"Init", n.Init}, {"Pred", n.Pred}, {"Update", n.Update}} {
			if part.e != nil {
				fmt.Fprintf(d.w, "%s  %s:\n", strings.Repeat("  ", indent), part.label)
				d.node(part.e, indent+2)
			}
		}
		d.node(n.Body, indent+1)

	case *BreakStmt:
		d.line(indent, n, "BreakStmt")

	case *BlockStmt:
		d.line(indent, n, "BlockStmt")
		d.stmts(n.Stmts, indent+1)

	case *ReturnStmt:
		d.line(indent, n, "ReturnStmt")
		if n.Result != nil {
			d.node(n.Result, indent+1)
		}

	case *DispatchExpr:
		d.line(indent, n, "DispatchExpr method=%s", n.Method)
		if n.Ref != nil {
			d.node(n.Ref, indent+1)
		}
		for _, a := range n.Args {
			d.node(a, indent+1)
		}

	case *NewExpr:
		d.line(indent, n, "NewExpr type=%s", n.Type)

	case *InstanceofExpr:
		d.line(indent, n, "InstanceofExpr type=%s", n.Type)
		d.node(n.X, indent+1)

	case *CastExpr:
		d.line(indent, n, "CastExpr type=%s", n.Type)
		d.node(n.X, indent+1)

	case *AssignExpr:
		if n.RefName != "" {
			d.line(indent, n, "AssignExpr name=%s.%s", n.RefName, n.Name)
		} else {
			d.line(indent, n, "AssignExpr name=%s", n.Name)
		}
		d.node(n.Value, indent+1)

	case *VarExpr:
		d.line(indent, n, "VarExpr name=%s", n.Name)
		if n.Ref != nil {
			d.node(n.Ref, indent+1)
		}

	case *BinaryExpr:
		d.line(indent, n, "BinaryExpr op=%s", n.Op.Op())
		d.node(n.Left, indent+1)
		d.node(n.Right, indent+1)

	case *UnaryExpr:
		fix := "prefix"
		if n.Postfix {
			fix = "postfix"
		}
		d.line(indent, n, "UnaryExpr op=%s %s", n.Op.Op(), fix)
		d.node(n.X, indent+1)

	case *IntLiteral:
		d.line(indent, n, "IntLiteral %d", n.Value)

	case *BoolLiteral:
		d.line(indent, n, "BoolLiteral %t", n.Value)

	case *StringLiteral:
		d.line(indent, n, "StringLiteral %q", n.Value)

	default:
		fmt.Fprintf(d.w, "%s<unknown node %T>\n", strings.Repeat("  ", indent), n)
	}
}

func (d *dumper) stmts(list []Stmt, indent int) {
	for _, s := range list {
		d.node(s, indent)
	}
}
