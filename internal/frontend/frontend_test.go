package frontend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bantam/internal/diag"
	"bantam/internal/frontend"
	"bantam/internal/loader"
)

func TestCheckValidProgramAcrossFiles(t *testing.T) {
	res := frontend.Check(
		loader.Source{Path: "Main.btm", Text: "class Main { void main() { var s = new Shape(); s.draw(); } }"},
		loader.Source{Path: "Shape.btm", Text: "class Shape { void draw() { } }"},
	)
	require.True(t, res.OK(), "%v", res.Diagnostics)
	assert.True(t, res.Analyzed())
	require.Len(t, res.Program.Classes, 2)
	assert.Equal(t, "Shape.btm", res.Program.Classes[1].File)
	assert.NotNil(t, res.Hierarchy.Lookup("Shape"))
}

func TestCheckStopsAfterSyntaxErrors(t *testing.T) {
	res := frontend.Check(
		loader.Source{Path: "A.btm", Text: "class Main { void main() { var x = 1 @ 2; } }"},
		loader.Source{Path: "B.btm", Text: "class B { int x }"},
	)
	require.False(t, res.OK())
	assert.False(t, res.Analyzed())
	assert.Nil(t, res.Hierarchy)

	kinds := map[diag.Kind]int{}
	for _, d := range res.Diagnostics {
		kinds[d.Kind]++
	}
	assert.Equal(t, 1, kinds[diag.Lexical])
	assert.GreaterOrEqual(t, kinds[diag.Syntax], 1)
	assert.Zero(t, kinds[diag.Semantic])
	assert.Equal(t, "A.btm", res.Diagnostics[0].File)
}

func TestCheckReportsMissingMain(t *testing.T) {
	res := frontend.Check(loader.Source{Path: "A.btm", Text: "class A { }"})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.E3011.Code, res.Diagnostics[0].Code.Code)
	assert.True(t, res.Analyzed())
}

func TestCheckCollectsEveryPhase(t *testing.T) {
	res := frontend.Check(loader.Source{Path: "Main.btm", Text: `
class Main extends Missing {
    void main() { var x = 5 + true; break; }
}`})
	require.Len(t, res.Diagnostics, 3)
	assert.Contains(t, res.Diagnostics[0].Msg, "parent class Missing")
	assert.Contains(t, res.Diagnostics[1].Msg, "not both ints")
	assert.Contains(t, res.Diagnostics[2].Msg, "break outside loop")
}
