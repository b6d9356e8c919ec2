package types

type builtinMethod struct {
	result string
	name   string
	params []string
}

type builtinClass struct {
	name       string
	parent     string
	extendable bool
	methods    []builtinMethod
}

func m(result, name string, params ...string) builtinMethod {
	return builtinMethod{result: result, name: name, params: params}
}

var builtinClasses = []builtinClass{
	{
		name:       Object,
		extendable: true,
		methods: []builtinMethod{
			m(Object, "clone"),
			m(Boolean, "equals", Object),
			m(String, "toString"),
		},
	},
	{
		name:   String,
		parent: Object,
		methods: []builtinMethod{
			m(Int, "length"),
			m(Boolean, "equals", Object),
			m(String, "toString"),
			m(String, "substring", Int, Int),
			m(String, "concat", String),
		},
	},
	{
		name:   "TextIO",
		parent: Object,
		methods: []builtinMethod{
			m(Void, "readStdin"),
			m(Void, "readFile", String),
			m(Void, "writeStdout"),
			m(Void, "writeStderr"),
			m(Void, "writeFile", String),
			m(String, "getString"),
			m(Int, "getInt"),
			m("TextIO", "putString", String),
			m("TextIO", "putInt", Int),
		},
	},
	{
		name:   "Sys",
		parent: Object,
		methods: []builtinMethod{
			m(Void, "exit", Int),
			m(Int, "time"),
			m(Int, "random"),
		},
	},
}

// IsBuiltin reports whether name is one of the predefined classes.
func IsBuiltin(name string) bool {
	for _, b := range builtinClasses {
		if b.name == name {
			return true
		}
	}
	return false
}

func (h *Hierarchy) declareBuiltins() {
	for _, b := range builtinClasses {
		c := newClass(b.name, b.parent)
		c.Builtin = true
		c.Extendable = b.extendable
		if b.parent != "" {
			c.Parent = h.classes[b.parent]
		}
		for _, bm := range b.methods {
			c.addMethod(&Method{Name: bm.name, Result: bm.result, Params: bm.params})
		}
		h.register(c)
	}
}
