package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bantam/internal/types"
)

func shapes() *types.Hierarchy {
	h := types.NewHierarchy()
	h.Declare("Shape", "Object")
	h.Declare("Circle", "Shape")
	h.Declare("Square", "Shape")
	h.Declare("Unit", "Circle")
	return h
}

func TestIsPrimitive(t *testing.T) {
	assert.True(t, types.IsPrimitive("int"))
	assert.True(t, types.IsPrimitive("boolean"))
	assert.False(t, types.IsPrimitive("String"))
	assert.False(t, types.IsPrimitive("void"))
	assert.False(t, types.IsPrimitive("null"))
}

func TestIsSubtypeReflexive(t *testing.T) {
	h := shapes()
	for _, typ := range []string{"int", "boolean", "Object", "String", "TextIO", "Sys", "Shape", "Circle", "Unit"} {
		assert.True(t, h.IsSubtype(typ, typ), typ)
	}
}

func TestIsSubtypeChain(t *testing.T) {
	h := shapes()

	assert.True(t, h.IsSubtype("Unit", "Circle"))
	assert.True(t, h.IsSubtype("Unit", "Shape"))
	assert.True(t, h.IsSubtype("Unit", "Object"))
	assert.True(t, h.IsSubtype("String", "Object"))

	assert.False(t, h.IsSubtype("Shape", "Circle"))
	assert.False(t, h.IsSubtype("Circle", "Square"))
	assert.False(t, h.IsSubtype("Object", "String"))
	assert.False(t, h.IsSubtype("Circle", "Undefined"))
	assert.False(t, h.IsSubtype("Undefined", "Object"))
}

func TestNullIsSubtypeOfEveryReferenceType(t *testing.T) {
	h := shapes()
	for _, typ := range []string{"Object", "String", "Shape", "Unit", "null"} {
		assert.True(t, h.IsSubtype("null", typ), typ)
	}
	assert.False(t, h.IsSubtype("null", "int"))
	assert.False(t, h.IsSubtype("null", "boolean"))
	assert.False(t, h.IsSubtype("Object", "null"))
}

func TestNoPrimitiveWidening(t *testing.T) {
	h := shapes()
	assert.False(t, h.IsSubtype("int", "boolean"))
	assert.False(t, h.IsSubtype("boolean", "int"))
	assert.False(t, h.IsSubtype("int", "Object"))
	assert.False(t, h.IsSubtype("Object", "int"))
}

func TestIsDeclared(t *testing.T) {
	h := shapes()
	assert.True(t, h.IsDeclared("int"))
	assert.True(t, h.IsDeclared("boolean"))
	assert.True(t, h.IsDeclared("Object"))
	assert.True(t, h.IsDeclared("Circle"))
	assert.False(t, h.IsDeclared("void"))
	assert.False(t, h.IsDeclared("null"))
	assert.False(t, h.IsDeclared("Triangle"))
}

func TestLookupThroughParents(t *testing.T) {
	h := shapes()
	shape := h.Lookup("Shape")
	shape.AddField("area", "int")
	shape.AddMethod("int", "sides")

	unit := h.Lookup("Unit")
	f, ok := unit.LookupField("area")
	assert.True(t, ok)
	assert.Equal(t, "Shape", f.Owner.Name)

	m, ok := unit.LookupMethod("sides")
	assert.True(t, ok)
	assert.Equal(t, "int sides()", m.String())

	m, ok = unit.LookupMethod("toString")
	assert.True(t, ok)
	assert.Equal(t, "Object", m.Owner.Name)

	var names []string
	for _, c := range unit.Lineage() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Unit", "Circle", "Shape", "Object"}, names)
}
