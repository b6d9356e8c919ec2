package types

import (
	"strings"

	"bantam/internal/ast"
	"bantam/internal/diag"
)

type builder struct {
	h    *Hierarchy
	sink *diag.Sink
}

// Build registers the classes of prog on top of the built-ins, links
// parents and collects member signatures. Problems are reported to sink and
// repaired so the result is always a tree rooted at Object: a class with an
// unusable parent, or one on an inheritance cycle, is re-parented to Object.
//
// Classes whose name cannot be registered still get a node, reachable via
// ClassOf, so their bodies can be checked.
func Build(prog *ast.Program, sink *diag.Sink) *Hierarchy {
	b := &builder{h: NewHierarchy(), sink: sink}

	for _, decl := range prog.Classes {
		b.declare(decl)
	}
	for _, c := range b.h.decls {
		b.link(c)
	}
	for _, c := range b.h.decls {
		b.breakCycle(c)
	}
	for _, c := range b.h.decls {
		b.collectMembers(c)
	}
	for _, c := range b.h.decls {
		b.checkOverrides(c)
	}

	return b.h
}

func (b *builder) errorf(file string, line int, code diag.Code, format string, args ...interface{}) {
	b.sink.Reportf(diag.Semantic, code, file, line, format, args...)
}

func (b *builder) declare(decl *ast.Class) {
	c := newClass(decl.Name, decl.Parent)
	c.Decl = decl
	b.h.byDecl[decl] = c
	b.h.decls = append(b.h.decls, c)

	line := decl.NamePos.Line
	switch {
	case IsReserved(decl.Name):
		b.errorf(decl.File, line, diag.E3009, "class name %s is a reserved word", decl.Name)
	case IsBuiltin(decl.Name):
		b.errorf(decl.File, line, diag.E3008, "class %s redefines a built-in class", decl.Name)
	case b.h.Lookup(decl.Name) != nil:
		prev := b.h.Lookup(decl.Name)
		b.errorf(decl.File, line, diag.E3008, "class %s is already defined at %s:%d",
			decl.Name, prev.File(), prev.Decl.NamePos.Line)
	default:
		b.h.register(c)
	}
}

func (b *builder) link(c *Class) {
	decl := c.Decl
	line := decl.ParentPos.Line
	if line == 0 {
		line = decl.NamePos.Line
	}

	parent := b.h.Lookup(c.ParentName)
	switch {
	case parent == nil:
		b.errorf(decl.File, line, diag.E3010, "parent class %s of class %s is not defined", c.ParentName, c.Name)
		parent = b.h.Root()
	case !parent.Extendable:
		b.errorf(decl.File, line, diag.E3010, "class %s cannot extend built-in class %s", c.Name, parent.Name)
		parent = b.h.Root()
	}
	c.Parent = parent
}

// breakCycle reports the inheritance cycle through c, if any, and cuts it
// at c. Each cycle is reported once since it no longer exists afterwards.
func (b *builder) breakCycle(c *Class) {
	path := []string{c.Name}
	onCycle := false
	for k, n := c.Parent, 0; k != nil && n <= len(b.h.decls); k, n = k.Parent, n+1 {
		path = append(path, k.Name)
		if k == c {
			onCycle = true
			break
		}
	}
	if !onCycle {
		return
	}
	b.errorf(c.File(), c.Decl.NamePos.Line, diag.E3010, "inheritance cycle: %s", strings.Join(path, " -> "))
	c.Parent = b.h.Root()
}

func (b *builder) collectMembers(c *Class) {
	decl := c.Decl
	for _, member := range decl.Members {
		switch mem := member.(type) {
		case *ast.Field:
			line := mem.NamePos.Line
			if IsReserved(mem.Name) {
				b.errorf(decl.File, line, diag.E3009, "field name %s is a reserved word", mem.Name)
				continue
			}
			if _, dup := c.OwnField(mem.Name); dup {
				b.errorf(decl.File, line, diag.E3008, "field %s is already declared in class %s", mem.Name, c.Name)
				continue
			}
			c.addField(&Field{Name: mem.Name, Type: mem.Type, Decl: mem})

		case *ast.Method:
			if _, dup := c.OwnMethod(mem.Name); dup {
				b.errorf(decl.File, mem.NamePos.Line, diag.E3008, "method %s is already declared in class %s", mem.Name, c.Name)
				continue
			}
			params := make([]string, 0, len(mem.Formals))
			for _, f := range mem.Formals {
				params = append(params, f.Type)
			}
			c.addMethod(&Method{Name: mem.Name, Result: mem.ReturnType, Params: params, Decl: mem})
		}
	}
}

func (b *builder) checkOverrides(c *Class) {
	if c.Parent == nil {
		return
	}
	for _, m := range c.Methods() {
		inherited, ok := c.Parent.LookupMethod(m.Name)
		if !ok || m.SameSignature(inherited) {
			continue
		}
		b.errorf(c.File(), m.Decl.NamePos.Line, diag.E3010,
			"method %s overrides %s.%s with a different signature (want %s)",
			m.Name, inherited.Owner.Name, inherited.Name, inherited)
	}
}
