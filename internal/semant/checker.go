// Package semant type-checks a parsed Bantam program against its class
// hierarchy.
//
// The checker visits every node once. Each expression gets a type in the
// Bindings even when it is ill-typed: on an error the rule reports a
// diagnostic and substitutes a fallback (usually Object) so the enclosing
// expressions can still be checked.
package semant

import (
	"fmt"

	"bantam/internal/ast"
	"bantam/internal/diag"
	"bantam/internal/scope"
	"bantam/internal/token"
	"bantam/internal/types"
)

// loop is one entry of the stack of enclosing loops.
type loop struct {
	stmt  ast.Stmt
	outer *loop
}

// frame is the traversal context. It is passed by value and never mutated;
// nested constructs derive a new frame.
type frame struct {
	class  *types.Class
	file   string
	method *ast.Method // nil inside field initializers
	loops  *loop
}

func (f frame) inMethod(m *ast.Method) frame {
	f.method = m
	return f
}

func (f frame) inLoop(s ast.Stmt) frame {
	f.loops = &loop{stmt: s, outer: f.loops}
	return f
}

type checker struct {
	h    *types.Hierarchy
	sink *diag.Sink
	b    *Bindings

	vars *scope.Table[string]
}

// Analyze checks prog and returns the bindings it produced. ok is false if
// any diagnostic was reported to sink during the run.
//
// h must not be modified while Analyze runs. Separate runs may share h but
// need their own sink.
func Analyze(prog *ast.Program, h *types.Hierarchy, sink *diag.Sink) (b *Bindings, ok bool) {
	c := &checker{
		h:    h,
		sink: sink,
		b:    NewBindings(),
	}

	mark := sink.Len()
	for _, decl := range prog.Classes {
		c.checkClass(decl)
	}
	return c.b, len(sink.Since(mark)) == 0
}

func (c *checker) errorf(fr frame, pos token.Position, code diag.Code, format string, args ...interface{}) {
	c.sink.Report(diag.Semantic, code, fr.file, pos.Line, fmt.Sprintf(format, args...))
}

func (c *checker) subtype(t1, t2 string) bool {
	return c.h.IsSubtype(t1, t2)
}

// classOf returns the class named typ, or nil for primitives, null, void
// and undeclared names.
func (c *checker) classOf(typ string) *types.Class {
	return c.h.Lookup(typ)
}

// ----- Classes and members -----

func (c *checker) checkClass(decl *ast.Class) {
	class := c.h.ClassOf(decl)
	if class == nil {
		class = c.h.Lookup(decl.Name)
	}
	if class == nil {
		panic(fmt.Sprintf("semant: class %s missing from hierarchy", decl.Name))
	}

	fr := frame{class: class, file: decl.File}

	// One scope per ancestor, Object outermost, so that a class's own
	// fields hide inherited ones.
	c.vars = scope.New[string]()
	lineage := class.Lineage()
	guards := make([]*scope.Guard, 0, len(lineage))
	for i := len(lineage) - 1; i >= 0; i-- {
		guards = append(guards, c.vars.Enter())
		for _, f := range lineage[i].Fields() {
			c.vars.Add(f.Name, f.Type)
		}
	}
	defer func() {
		for i := len(guards) - 1; i >= 0; i-- {
			guards[i].Exit()
		}
	}()

	for _, m := range decl.Members {
		switch m := m.(type) {
		case *ast.Field:
			c.checkField(fr, m)
		case *ast.Method:
			c.checkMethod(fr, m)
		}
	}
}

func (c *checker) checkField(fr frame, f *ast.Field) {
	if !c.h.IsDeclared(f.Type) {
		c.errorf(fr, f.TypePos, diag.E3001, "type %s of field %s is not declared", f.Type, f.Name)
	}
	if f.Init == nil {
		return
	}
	initType := c.expr(fr, f.Init)
	if !c.subtype(initType, f.Type) {
		c.errorf(fr, f.NamePos, diag.E3003,
			"initializer of field %s has type %s, which is not compatible with %s", f.Name, initType, f.Type)
	}
}

func (c *checker) checkMethod(fr frame, m *ast.Method) {
	if m.ReturnType != types.Void && !c.h.IsDeclared(m.ReturnType) {
		c.errorf(fr, m.TypePos, diag.E3001, "return type %s of method %s is not declared", m.ReturnType, m.Name)
	}

	g := c.vars.Enter()
	defer g.Exit()

	fr = fr.inMethod(m)
	for _, f := range m.Formals {
		c.checkFormal(fr, f)
	}
	c.stmts(fr, m.Body)

	if m.ReturnType == types.Void {
		return
	}
	if n := len(m.Body); n == 0 {
		c.errorf(fr, m.NamePos, diag.E3005, "method %s must end with a return statement", m.Name)
	} else if _, ok := m.Body[n-1].(*ast.ReturnStmt); !ok {
		c.errorf(fr, m.NamePos, diag.E3005, "method %s must end with a return statement", m.Name)
	}
}

func (c *checker) checkFormal(fr frame, f *ast.Formal) {
	if !c.h.IsDeclared(f.Type) {
		c.errorf(fr, f.TypePos, diag.E3001, "type %s of formal parameter %s is not declared", f.Type, f.Name)
	}
	if level, ok := c.vars.LookupLevel(f.Name); ok && level == c.vars.Level() {
		c.errorf(fr, f.NamePos, diag.E3008, "formal parameter %s is already declared", f.Name)
	}
	c.vars.Add(f.Name, f.Type)
}

// ----- Statements -----

func (c *checker) stmts(fr frame, list []ast.Stmt) {
	for _, s := range list {
		c.stmt(fr, s)
	}
}

// scoped checks s in a fresh nested scope.
func (c *checker) scoped(fr frame, s ast.Stmt) {
	g := c.vars.Enter()
	defer g.Exit()
	c.stmt(fr, s)
}

func (c *checker) stmt(fr frame, s ast.Stmt) {
	switch s := s.(type) {
	case *ast.DeclStmt:
		c.checkDecl(fr, s)

	case *ast.ExprStmt:
		c.expr(fr, s.X)

	case *ast.IfStmt:
		if t := c.expr(fr, s.Pred); t != types.Boolean {
			c.errorf(fr, s.IfPos, diag.E3003, "predicate of if statement has type %s, not boolean", t)
		}
		c.scoped(fr, s.Then)
		if s.Else != nil {
			c.scoped(fr, s.Else)
		}

	case *ast.WhileStmt:
		if t := c.expr(fr, s.Pred); !c.subtype(t, types.Boolean) {
			c.errorf(fr, s.WhilePos, diag.E3003, "predicate of while statement has type %s, not boolean", t)
		}
		c.scoped(fr.inLoop(s), s.Body)

	case *ast.ForStmt:
		if s.Init != nil {
			if t := c.expr(fr, s.Init); !c.subtype(t, types.Int) {
				c.errorf(fr, s.ForPos, diag.E3003, "initial expression of for statement has type %s, not int", t)
			}
		}
		if s.Pred != nil {
			if t := c.expr(fr, s.Pred); !c.subtype(t, types.Boolean) {
				c.errorf(fr, s.ForPos, diag.E3003, "predicate of for statement has type %s, not boolean", t)
			}
		}
		if s.Update != nil {
			if t := c.expr(fr, s.Update); !c.subtype(t, types.Int) {
				c.errorf(fr, s.ForPos, diag.E3003, "update expression of for statement has type %s, not int", t)
			}
		}
		c.scoped(fr.inLoop(s), s.Body)

	case *ast.BreakStmt:
		if fr.loops == nil {
			c.errorf(fr, s.BreakPos, diag.E3005, "break outside loop")
		}

	case *ast.BlockStmt:
		g := c.vars.Enter()
		c.stmts(fr, s.Stmts)
		g.Exit()

	case *ast.ReturnStmt:
		c.checkReturn(fr, s)

	default:
		panic(fmt.Sprintf("semant: unexpected statement %T", s))
	}
}

func (c *checker) checkDecl(fr frame, s *ast.DeclStmt) {
	typ := c.expr(fr, s.Init)

	if types.IsReserved(s.Name) {
		c.errorf(fr, s.NamePos, diag.E3009, "variable name %s is a reserved word", s.Name)
	}
	if _, ok := c.vars.Lookup(s.Name); ok {
		c.errorf(fr, s.NamePos, diag.E3008, "variable %s is already declared", s.Name)
	}

	c.b.Locals[s] = typ
	c.vars.Add(s.Name, typ)
}

func (c *checker) checkReturn(fr frame, s *ast.ReturnStmt) {
	want := fr.method.ReturnType
	if s.Result != nil {
		if t := c.expr(fr, s.Result); !c.subtype(t, want) {
			c.errorf(fr, s.ReturnPos, diag.E3003,
				"return value has type %s, which is not compatible with the return type %s of method %s",
				t, want, fr.method.Name)
		}
		return
	}
	if want != types.Void {
		c.errorf(fr, s.ReturnPos, diag.E3003, "method %s returns %s, so return must have a value", fr.method.Name, want)
	}
}

// ----- Expressions -----

// expr resolves the type of e, records it and returns it.
func (c *checker) expr(fr frame, e ast.Expr) string {
	switch e := e.(type) {
	case *ast.DispatchExpr:
		return c.b.setType(e, c.checkDispatch(fr, e))
	case *ast.NewExpr:
		return c.b.setType(e, c.checkNew(fr, e))
	case *ast.InstanceofExpr:
		return c.b.setType(e, c.checkInstanceof(fr, e))
	case *ast.CastExpr:
		return c.b.setType(e, c.checkCast(fr, e))
	case *ast.AssignExpr:
		return c.b.setType(e, c.checkAssign(fr, e))
	case *ast.VarExpr:
		return c.b.setType(e, c.checkVar(fr, e))
	case *ast.BinaryExpr:
		return c.b.setType(e, c.checkBinary(fr, e))
	case *ast.UnaryExpr:
		return c.b.setType(e, c.checkUnary(fr, e))
	case *ast.IntLiteral:
		return c.b.setType(e, types.Int)
	case *ast.BoolLiteral:
		return c.b.setType(e, types.Boolean)
	case *ast.StringLiteral:
		return c.b.setType(e, types.String)
	default:
		panic(fmt.Sprintf("semant: unexpected expression %T", e))
	}
}

func (c *checker) checkDispatch(fr frame, e *ast.DispatchExpr) string {
	recvType := fr.class.Name
	if e.Ref != nil {
		recvType = c.expr(fr, e.Ref)
	}

	recv := c.classOf(recvType)
	if recv == nil {
		c.errorf(fr, e.NamePos, diag.E3003, "cannot call method %s on a value of type %s", e.Method, recvType)
		recv = c.h.Root()
	}

	result := types.Object
	method, found := recv.LookupMethod(e.Method)
	if found {
		result = method.Result
	} else {
		c.errorf(fr, e.NamePos, diag.E3002, "method %s is not declared in class %s", e.Method, recv.Name)
	}

	argTypes := make([]string, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = c.expr(fr, arg)
	}

	if !found {
		return result
	}
	if len(argTypes) != len(method.Params) {
		c.errorf(fr, e.NamePos, diag.E3004, "method %s takes %d arguments but %d were given",
			e.Method, len(method.Params), len(argTypes))
		return result
	}
	for i, at := range argTypes {
		if at != method.Params[i] {
			c.errorf(fr, e.NamePos, diag.E3003, "argument %d of method %s has type %s, but the formal type is %s",
				i+1, e.Method, at, method.Params[i])
		}
	}
	return result
}

func (c *checker) checkNew(fr frame, e *ast.NewExpr) string {
	if c.classOf(e.Type) == nil {
		c.errorf(fr, e.TypePos, diag.E3001, "type %s does not exist", e.Type)
		return types.Object
	}
	return e.Type
}

func (c *checker) checkInstanceof(fr frame, e *ast.InstanceofExpr) string {
	if c.classOf(e.Type) == nil {
		c.errorf(fr, e.TypePos, diag.E3001, "type %s in instanceof does not exist", e.Type)
	}

	t := c.expr(fr, e.X)
	switch {
	case c.subtype(t, e.Type):
		c.b.Instanceofs[e] = CheckUp
	case c.subtype(e.Type, t):
		c.b.Instanceofs[e] = CheckDown
	default:
		c.errorf(fr, e.OpPos, diag.E3007, "incomparable types %s and %s in instanceof", t, e.Type)
	}
	return types.Boolean
}

// checkCast accepts identity casts and upcasts. An upcast keeps the static
// type of the operand.
func (c *checker) checkCast(fr frame, e *ast.CastExpr) string {
	source := c.expr(fr, e.X)
	target := e.Type

	switch {
	case types.IsPrimitive(target):
		c.errorf(fr, e.CastPos, diag.E3006, "cannot cast to primitive type %s", target)
		return types.Object
	case types.IsPrimitive(source):
		c.errorf(fr, e.CastPos, diag.E3006, "cannot cast an expression of primitive type %s", source)
		return types.Object
	case target == source:
		c.b.Casts[e] = CastIdentity
		return target
	case c.subtype(source, target):
		c.b.Casts[e] = CastUp
		return source
	case c.classOf(target) == nil:
		c.errorf(fr, e.TypePos, diag.E3001, "target type %s does not exist", target)
		return types.Object
	default:
		c.errorf(fr, e.CastPos, diag.E3006, "cannot cast %s to %s: no inheritance relationship", source, target)
		return types.Object
	}
}

func (c *checker) checkAssign(fr frame, e *ast.AssignExpr) string {
	lookup := c.vars.Lookup

	switch e.RefName {
	case "", "this":
	case "super":
		lookup = fieldLookup(fr.class.Parent)
	default:
		refType, ok := c.vars.Lookup(e.RefName)
		if !ok {
			c.errorf(fr, e.RefPos, diag.E3002, "reference variable %s does not exist", e.RefName)
			refType = types.Object
		}
		ref := c.classOf(refType)
		if ref == nil {
			c.errorf(fr, e.RefPos, diag.E3003, "reference variable %s has type %s, which has no fields", e.RefName, refType)
			ref = c.h.Root()
		}
		lookup = fieldLookup(ref)
	}

	left, ok := lookup(e.Name)
	if !ok {
		c.errorf(fr, e.NamePos, diag.E3002, "variable or field %s is not declared", e.Name)
		left = types.Object
	}

	right := c.expr(fr, e.Value)
	if !c.subtype(right, left) {
		c.errorf(fr, e.NamePos, diag.E3003, "cannot assign a value of type %s to %s of type %s", right, e.Name, left)
		return left
	}
	return right
}

func fieldLookup(class *types.Class) func(string) (string, bool) {
	return func(name string) (string, bool) {
		if class == nil {
			return "", false
		}
		f, ok := class.LookupField(name)
		if !ok {
			return "", false
		}
		return f.Type, true
	}
}

func (c *checker) checkVar(fr frame, e *ast.VarExpr) string {
	if e.Ref == nil {
		switch e.Name {
		case "this":
			return fr.class.Name
		case "super":
			if fr.class.Parent == nil {
				c.errorf(fr, e.NamePos, diag.E3002, "class %s has no superclass", fr.class.Name)
				return types.Object
			}
			return fr.class.Parent.Name
		case "null":
			return types.Null
		}
		if t, ok := c.vars.Lookup(e.Name); ok {
			return t
		}
		c.errorf(fr, e.NamePos, diag.E3002, "variable %s is not declared", e.Name)
		return types.Object
	}

	refType := c.expr(fr, e.Ref)
	ref := c.classOf(refType)
	if ref == nil {
		c.errorf(fr, e.NamePos, diag.E3003, "cannot access field %s of a value of type %s", e.Name, refType)
		return types.Object
	}
	if f, ok := ref.LookupField(e.Name); ok {
		return f.Type
	}
	c.errorf(fr, e.NamePos, diag.E3002, "field %s is not declared in class %s", e.Name, ref.Name)
	return types.Object
}

func (c *checker) checkBinary(fr frame, e *ast.BinaryExpr) string {
	left := c.expr(fr, e.Left)
	right := c.expr(fr, e.Right)
	op := e.Op.Op()

	switch e.Op {
	case token.Eq, token.NotEq:
		if !c.subtype(left, right) && !c.subtype(right, left) {
			c.errorf(fr, e.OpPos, diag.E3003, "values compared with %s have incompatible types %s and %s", op, left, right)
		}
		return types.Boolean

	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		if left != types.Int || right != types.Int {
			c.errorf(fr, e.OpPos, diag.E3003, "values compared with %s are not both ints (%s, %s)", op, left, right)
		}
		return types.Boolean

	case token.Plus, token.Minus, token.Star, token.Slash, token.Percent:
		if left != types.Int || right != types.Int {
			c.errorf(fr, e.OpPos, diag.E3003, "operands of %s are not both ints (%s, %s)", op, left, right)
		}
		return types.Int

	case token.AndAnd, token.OrOr:
		if left != types.Boolean || right != types.Boolean {
			c.errorf(fr, e.OpPos, diag.E3003, "operands of %s are not both booleans (%s, %s)", op, left, right)
		}
		return types.Boolean
	}

	panic(fmt.Sprintf("semant: unexpected binary operator %s", e.Op))
}

func (c *checker) checkUnary(fr frame, e *ast.UnaryExpr) string {
	switch e.Op {
	case token.Minus:
		if t := c.expr(fr, e.X); t != types.Int {
			c.errorf(fr, e.OpPos, diag.E3003, "operand of - has type %s, not int", t)
		}
		return types.Int

	case token.Bang:
		if t := c.expr(fr, e.X); t != types.Boolean {
			c.errorf(fr, e.OpPos, diag.E3003, "operand of ! has type %s, not boolean", t)
		}
		return types.Boolean

	case token.Incr, token.Decr:
		op := e.Op.Op()
		if _, ok := e.X.(*ast.VarExpr); !ok {
			c.errorf(fr, e.OpPos, diag.E3005, "operand of %s must be a variable, optionally qualified by this or super", op)
		}
		if t := c.expr(fr, e.X); t != types.Int {
			c.errorf(fr, e.OpPos, diag.E3003, "operand of %s has type %s, not int", op, t)
		}
		return types.Int
	}

	panic(fmt.Sprintf("semant: unexpected unary operator %s", e.Op))
}
