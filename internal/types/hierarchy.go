package types

import "bantam/internal/ast"

// Hierarchy indexes classes by name. It is built once per analysis run and
// is read-only afterwards.
type Hierarchy struct {
	classes map[string]*Class
	order   []*Class

	// every declared class, including those whose name could not be
	// registered (duplicates, reserved or built-in names)
	byDecl map[*ast.Class]*Class
	decls  []*Class
}

// NewHierarchy returns a hierarchy holding only the built-in classes.
func NewHierarchy() *Hierarchy {
	h := &Hierarchy{
		classes: make(map[string]*Class),
		byDecl:  make(map[*ast.Class]*Class),
	}
	h.declareBuiltins()
	return h
}

// Lookup returns the class registered under name, or nil.
func (h *Hierarchy) Lookup(name string) *Class {
	return h.classes[name]
}

func (h *Hierarchy) Root() *Class {
	return h.classes[Object]
}

// Classes returns the registered classes, built-ins first.
func (h *Hierarchy) Classes() []*Class {
	return h.order
}

// ClassOf returns the hierarchy node built for a class declaration.
func (h *Hierarchy) ClassOf(decl *ast.Class) *Class {
	return h.byDecl[decl]
}

// Declare registers a user class named name with the given parent, linked
// immediately. It is meant for hand-built hierarchies; Build does its own
// registration and reporting.
func (h *Hierarchy) Declare(name, parent string) *Class {
	c := newClass(name, parent)
	c.Parent = h.classes[parent]
	h.register(c)
	return c
}

func (h *Hierarchy) register(c *Class) {
	h.classes[c.Name] = c
	h.order = append(h.order, c)
}

// AddField adds a field to a class built with Declare.
func (c *Class) AddField(name, typ string) *Field {
	f := &Field{Name: name, Type: typ}
	c.addField(f)
	return f
}

// AddMethod adds a method to a class built with Declare.
func (c *Class) AddMethod(result, name string, params ...string) *Method {
	m := &Method{Name: name, Result: result, Params: params}
	c.addMethod(m)
	return m
}
