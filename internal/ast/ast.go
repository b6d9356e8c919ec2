package ast

import "bantam/internal/token"

// Basic interfaces

type Node interface {
	Pos() token.Position
}

// Member is a class member: *Field or *Method.
type Member interface {
	Node
	memberNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

// Program / Class

type Program struct {
	Classes []*Class
}

func (p *Program) Pos() token.Position {
	if len(p.Classes) > 0 {
		return p.Classes[0].Pos()
	}
	return token.Position{}
}

type Class struct {
	File      string // source the class was parsed from
	ClassPos  token.Position
	Name      string
	NamePos   token.Position
	Parent    string // "Object" when no extends clause is given
	ParentPos token.Position
	Members   []Member
}

func (c *Class) Pos() token.Position { return c.ClassPos }

// Fields returns the class's fields in declaration order.
func (c *Class) Fields() []*Field {
	var out []*Field
	for _, m := range c.Members {
		if f, ok := m.(*Field); ok {
			out = append(out, f)
		}
	}
	return out
}

// Methods returns the class's methods in declaration order.
func (c *Class) Methods() []*Method {
	var out []*Method
	for _, m := range c.Members {
		if md, ok := m.(*Method); ok {
			out = append(out, md)
		}
	}
	return out
}

// ---------- Members ----------

type Field struct {
	Type    string
	TypePos token.Position
	Name    string
	NamePos token.Position
	Init    Expr // nil if the field has no initializer
}

func (f *Field) Pos() token.Position { return f.TypePos }
func (f *Field) memberNode()         {}

type Method struct {
	ReturnType string
	TypePos    token.Position
	Name       string
	NamePos    token.Position
	Formals    []*Formal
	Body       []Stmt
	LBrace     token.Position
	RBrace     token.Position
}

func (m *Method) Pos() token.Position { return m.TypePos }
func (m *Method) memberNode()         {}

type Formal struct {
	Type    string
	TypePos token.Position
	Name    string
	NamePos token.Position
}

func (f *Formal) Pos() token.Position { return f.TypePos }

// ---------- Statements ----------

type DeclStmt struct {
	VarPos  token.Position
	Name    string
	NamePos token.Position
	Init    Expr
}

func (s *DeclStmt) Pos() token.Position { return s.VarPos }
func (s *DeclStmt) stmtNode()           {}

type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }
func (s *ExprStmt) stmtNode()           {}

type IfStmt struct {
	IfPos token.Position
	Pred  Expr
	Then  Stmt
	Else  Stmt // nil without an else branch
}

func (s *IfStmt) Pos() token.Position { return s.IfPos }
func (s *IfStmt) stmtNode()           {}

type WhileStmt struct {
	WhilePos token.Position
	Pred     Expr
	Body     Stmt
}

func (s *WhileStmt) Pos() token.Position { return s.WhilePos }
func (s *WhileStmt) stmtNode()           {}

type ForStmt struct {
	ForPos token.Position
	Init   Expr // may be nil
	Pred   Expr // may be nil
	Update Expr // may be nil
	Body   Stmt
}

func (s *ForStmt) Pos() token.Position { return s.ForPos }
func (s *ForStmt) stmtNode()           {}

type BreakStmt struct {
	BreakPos token.Position
}

func (s *BreakStmt) Pos() token.Position { return s.BreakPos }
func (s *BreakStmt) stmtNode()           {}

type BlockStmt struct {
	LBrace token.Position
	Stmts  []Stmt
	RBrace token.Position
}

func (s *BlockStmt) Pos() token.Position { return s.LBrace }
func (s *BlockStmt) stmtNode()           {}

type ReturnStmt struct {
	ReturnPos token.Position
	Result    Expr // nil for `return;`
}

func (s *ReturnStmt) Pos() token.Position { return s.ReturnPos }
func (s *ReturnStmt) stmtNode()           {}

// ---------- Expressions ----------

// DispatchExpr is a method call. Ref is nil for an unqualified call, which
// dispatches on the implicit `this`.
type DispatchExpr struct {
	Ref     Expr
	Method  string
	NamePos token.Position
	Args    []Expr
	RParen  token.Position
}

func (e *DispatchExpr) Pos() token.Position { return e.NamePos }
func (e *DispatchExpr) exprNode()           {}

type NewExpr struct {
	NewPos  token.Position
	Type    string
	TypePos token.Position
}

func (e *NewExpr) Pos() token.Position { return e.NewPos }
func (e *NewExpr) exprNode()           {}

type InstanceofExpr struct {
	X       Expr
	OpPos   token.Position
	Type    string
	TypePos token.Position
}

func (e *InstanceofExpr) Pos() token.Position { return e.OpPos }
func (e *InstanceofExpr) exprNode()           {}

type CastExpr struct {
	CastPos token.Position
	Type    string
	TypePos token.Position
	X       Expr
}

func (e *CastExpr) Pos() token.Position { return e.CastPos }
func (e *CastExpr) exprNode()           {}

// AssignExpr assigns to Name, optionally qualified by RefName ("this",
// "super" or a variable holding an object).
type AssignExpr struct {
	RefName string
	RefPos  token.Position
	Name    string
	NamePos token.Position
	Value   Expr
}

func (e *AssignExpr) Pos() token.Position {
	if e.RefName != "" {
		return e.RefPos
	}
	return e.NamePos
}
func (e *AssignExpr) exprNode() {}

// VarExpr names a variable or field. With a non-nil Ref it reads field Name
// of the object Ref evaluates to. The unqualified names this, super and null
// are VarExprs too.
type VarExpr struct {
	Ref     Expr
	Name    string
	NamePos token.Position
}

func (e *VarExpr) Pos() token.Position {
	if e.Ref != nil {
		return e.Ref.Pos()
	}
	return e.NamePos
}
func (e *VarExpr) exprNode() {}

type BinaryExpr struct {
	OpPos token.Position
	Op    token.Kind
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) Pos() token.Position { return e.OpPos }
func (e *BinaryExpr) exprNode()           {}

// UnaryExpr covers -, !, ++ and --. Postfix is only meaningful for ++/--.
type UnaryExpr struct {
	OpPos   token.Position
	Op      token.Kind
	X       Expr
	Postfix bool
}

func (e *UnaryExpr) Pos() token.Position { return e.OpPos }
func (e *UnaryExpr) exprNode()           {}

type IntLiteral struct {
	Value  int32
	LitPos token.Position
	Raw    string
}

func (e *IntLiteral) Pos() token.Position { return e.LitPos }
func (e *IntLiteral) exprNode()           {}

type BoolLiteral struct {
	Value  bool
	LitPos token.Position
}

func (e *BoolLiteral) Pos() token.Position { return e.LitPos }
func (e *BoolLiteral) exprNode()           {}

// StringLiteral keeps both the decoded value and the escaped source text.
type StringLiteral struct {
	Value  string
	Raw    string
	LitPos token.Position
}

func (e *StringLiteral) Pos() token.Position { return e.LitPos }
func (e *StringLiteral) exprNode()           {}
