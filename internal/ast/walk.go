package ast

// Inspect traverses the tree rooted at node in depth-first source order,
// calling f for every node. If f returns false the children of that node
// are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, c := range n.Classes {
			Inspect(c, f)
		}
	case *Class:
		for _, m := range n.Members {
			Inspect(m, f)
		}
	case *Field:
		if n.Init != nil {
			Inspect(n.Init, f)
		}
	case *Method:
		for _, formal := range n.Formals {
			Inspect(formal, f)
		}
		inspectStmts(n.Body, f)
	case *Formal:
	case *DeclStmt:
		Inspect(n.Init, f)
	case *ExprStmt:
		Inspect(n.X, f)
	case *IfStmt:
		Inspect(n.Pred, f)
		Inspect(n.Then, f)
		Inspect(n.Else, f)
	case *WhileStmt:
		Inspect(n.Pred, f)
		Inspect(n.Body, f)
	case *ForStmt:
		Inspect(n.Init, f)
		Inspect(n.Pred, f)
		Inspect(n.Update, f)
		Inspect(n.Body, f)
	case *BreakStmt:
	case *BlockStmt:
		inspectStmts(n.Stmts, f)
	case *ReturnStmt:
		Inspect(n.Result, f)

	case *DispatchExpr:
		Inspect(n.Ref, f)
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *NewExpr:
	case *InstanceofExpr:
		Inspect(n.X, f)
	case *CastExpr:
		Inspect(n.X, f)
	case *AssignExpr:
		Inspect(n.Value, f)
	case *VarExpr:
		Inspect(n.Ref, f)
	case *BinaryExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *UnaryExpr:
		Inspect(n.X, f)
	case *IntLiteral, *BoolLiteral, *StringLiteral:
	}
}

func inspectStmts(list []Stmt, f func(Node) bool) {
	for _, s := range list {
		Inspect(s, f)
	}
}

// Exprs returns every expression node below root in traversal order.
func Exprs(root Node) []Expr {
	var out []Expr
	Inspect(root, func(n Node) bool {
		if e, ok := n.(Expr); ok {
			out = append(out, e)
		}
		return true
	})
	return out
}
