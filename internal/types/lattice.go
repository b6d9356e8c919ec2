package types

// IsPrimitive reports whether t is int or boolean.
func IsPrimitive(t string) bool {
	return t == Int || t == Boolean
}

// IsSubtype reports whether t1 is t2 or a descendant of it. null is a
// subtype of every non-primitive type; primitives are subtypes only of
// themselves.
func (h *Hierarchy) IsSubtype(t1, t2 string) bool {
	if t1 == Null && !IsPrimitive(t2) {
		return true
	}
	if IsPrimitive(t1) || IsPrimitive(t2) {
		return t1 == t2
	}

	target := h.Lookup(t2)
	for c := h.Lookup(t1); c != nil; c = c.Parent {
		if c == target {
			return true
		}
	}
	return false
}

// IsDeclared reports whether t names a primitive or a registered class.
func (h *Hierarchy) IsDeclared(t string) bool {
	return IsPrimitive(t) || h.Lookup(t) != nil
}
