// Package scope implements the nested name table used while checking
// method bodies.
package scope

// Table is a stack of name to value mappings. Lookups search from the
// innermost open scope outwards.
type Table[V any] struct {
	levels []map[string]V
}

func New[V any]() *Table[V] {
	return &Table[V]{}
}

// Guard closes the scope opened by Enter.
type Guard struct {
	exit     func()
	released bool
}

// Exit pops the scope. It panics if called twice or if an inner scope is
// still open.
func (g *Guard) Exit() {
	if g.released {
		panic("scope: guard released twice")
	}
	g.released = true
	g.exit()
}

// Enter opens a new innermost scope.
func (t *Table[V]) Enter() *Guard {
	t.levels = append(t.levels, make(map[string]V))
	level := len(t.levels)
	return &Guard{exit: func() {
		if len(t.levels) != level {
			panic("scope: unbalanced exit")
		}
		t.levels = t.levels[:level-1]
	}}
}

// Add binds name in the innermost scope, replacing any binding of the same
// name at that level.
func (t *Table[V]) Add(name string, v V) {
	if len(t.levels) == 0 {
		panic("scope: add with no open scope")
	}
	t.levels[len(t.levels)-1][name] = v
}

func (t *Table[V]) Lookup(name string) (V, bool) {
	for i := len(t.levels) - 1; i >= 0; i-- {
		if v, ok := t.levels[i][name]; ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// LookupLevel reports the level (1 for the outermost scope) of the
// innermost binding of name.
func (t *Table[V]) LookupLevel(name string) (int, bool) {
	for i := len(t.levels) - 1; i >= 0; i-- {
		if _, ok := t.levels[i][name]; ok {
			return i + 1, true
		}
	}
	return 0, false
}

// Level is the number of open scopes.
func (t *Table[V]) Level() int {
	return len(t.levels)
}
