package semant

import (
	"bantam/internal/ast"
	"bantam/internal/types"
)

// HasMain reports whether prog has a class Main declaring void main() with
// no parameters.
func HasMain(prog *ast.Program) bool {
	for _, c := range prog.Classes {
		if c.Name != "Main" {
			continue
		}
		for _, m := range c.Methods() {
			if m.Name == "main" && m.ReturnType == types.Void && len(m.Formals) == 0 {
				return true
			}
		}
	}
	return false
}
