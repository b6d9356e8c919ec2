package types

import (
	"strings"

	"bantam/internal/ast"
)

// Names of the types the language treats specially.
const (
	Object  = "Object"
	String  = "String"
	Int     = "int"
	Boolean = "boolean"
	Void    = "void"
	Null    = "null"
)

var reserved = map[string]bool{
	"null":    true,
	"this":    true,
	"super":   true,
	"void":    true,
	"int":     true,
	"boolean": true,
}

// IsReserved reports whether name may not be used for a class, field or
// local variable.
func IsReserved(name string) bool {
	return reserved[name]
}

// Field is an instance variable.
type Field struct {
	Name  string
	Type  string
	Decl  *ast.Field // nil for built-in classes
	Owner *Class
}

// Method is a method signature.
type Method struct {
	Name   string
	Result string
	Params []string
	Decl   *ast.Method // nil for built-in classes
	Owner  *Class
}

func (m *Method) String() string {
	return m.Result + " " + m.Name + "(" + strings.Join(m.Params, ", ") + ")"
}

// SameSignature reports whether m and o have the same return type and
// formal types.
func (m *Method) SameSignature(o *Method) bool {
	if m.Result != o.Result || len(m.Params) != len(o.Params) {
		return false
	}
	for i, p := range m.Params {
		if o.Params[i] != p {
			return false
		}
	}
	return true
}

// Class is one node of the class hierarchy.
type Class struct {
	Name       string
	ParentName string // as written in the source
	Parent     *Class // nil only for Object
	Decl       *ast.Class
	Builtin    bool
	Extendable bool

	fields      map[string]*Field
	fieldOrder  []*Field
	methods     map[string]*Method
	methodOrder []*Method
}

func newClass(name, parent string) *Class {
	return &Class{
		Name:       name,
		ParentName: parent,
		Extendable: true,
		fields:     make(map[string]*Field),
		methods:    make(map[string]*Method),
	}
}

// File is the source file the class was declared in, or "" for built-ins.
func (c *Class) File() string {
	if c.Decl == nil {
		return ""
	}
	return c.Decl.File
}

// Fields returns the fields the class itself declares, in order.
func (c *Class) Fields() []*Field { return c.fieldOrder }

// Methods returns the methods the class itself declares, in order.
func (c *Class) Methods() []*Method { return c.methodOrder }

func (c *Class) OwnField(name string) (*Field, bool) {
	f, ok := c.fields[name]
	return f, ok
}

func (c *Class) OwnMethod(name string) (*Method, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// LookupField finds a field declared by c or one of its ancestors.
func (c *Class) LookupField(name string) (*Field, bool) {
	for k := c; k != nil; k = k.Parent {
		if f, ok := k.fields[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// LookupMethod finds the nearest declaration of a method, starting at c.
func (c *Class) LookupMethod(name string) (*Method, bool) {
	for k := c; k != nil; k = k.Parent {
		if m, ok := k.methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Lineage returns c followed by its ancestors up to Object.
func (c *Class) Lineage() []*Class {
	var out []*Class
	for k := c; k != nil; k = k.Parent {
		out = append(out, k)
	}
	return out
}

func (c *Class) addField(f *Field) {
	f.Owner = c
	c.fields[f.Name] = f
	c.fieldOrder = append(c.fieldOrder, f)
}

func (c *Class) addMethod(m *Method) {
	m.Owner = c
	c.methods[m.Name] = m
	c.methodOrder = append(c.methodOrder, m)
}
