package token

import "fmt"

type Kind int

const (
	Illegal Kind = iota
	EOF

	Ident  // Identifier
	Int    // Integer constant
	String // String constant

	// Keywords
	Class
	Extends
	Var
	If
	Else
	While
	For
	Break
	Return
	New
	Instanceof
	Cast
	True
	False

	// Operators
	Assign // =

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %

	Incr // ++
	Decr // --

	Bang   // !
	AndAnd // &&
	OrOr   // ||

	Eq    // ==
	NotEq // !=
	Lt    // <
	LtEq  // <=
	Gt    // >
	GtEq  // >=

	// Symbols
	Comma     // ,
	Semicolon // ;
	Dot       // .

	LParen // (
	RParen // )
	LBrace // {
	RBrace // }
)

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

var kindNames = [...]string{
	Illegal:    "Illegal",
	EOF:        "EOF",
	Ident:      "Ident",
	Int:        "Int",
	String:     "String",
	Class:      "Class",
	Extends:    "Extends",
	Var:        "Var",
	If:         "If",
	Else:       "Else",
	While:      "While",
	For:        "For",
	Break:      "Break",
	Return:     "Return",
	New:        "New",
	Instanceof: "Instanceof",
	Cast:       "Cast",
	True:       "True",
	False:      "False",
	Assign:     "Assign",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Percent:    "Percent",
	Incr:       "Incr",
	Decr:       "Decr",
	Bang:       "Bang",
	AndAnd:     "AndAnd",
	OrOr:       "OrOr",
	Eq:         "Eq",
	NotEq:      "NotEq",
	Lt:         "Lt",
	LtEq:       "LtEq",
	Gt:         "Gt",
	GtEq:       "GtEq",
	Comma:      "Comma",
	Semicolon:  "Semicolon",
	Dot:        "Dot",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var operators = map[Kind]string{
	Assign:  "=",
	Plus:    "+",
	Minus:   "-",
	Star:    "*",
	Slash:   "/",
	Percent: "%",
	Incr:    "++",
	Decr:    "--",
	Bang:    "!",
	AndAnd:  "&&",
	OrOr:    "||",
	Eq:      "==",
	NotEq:   "!=",
	Lt:      "<",
	LtEq:    "<=",
	Gt:      ">",
	GtEq:    ">=",
}

// Op returns the source spelling of an operator kind, or "" for non-operators.
func (k Kind) Op() string {
	return operators[k]
}

var keywords = map[string]Kind{
	"class":      Class,
	"extends":    Extends,
	"var":        Var,
	"if":         If,
	"else":       Else,
	"while":      While,
	"for":        For,
	"break":      Break,
	"return":     Return,
	"new":        New,
	"instanceof": Instanceof,
	"cast":       Cast,
	"true":       True,
	"false":      False,
}

func LookupIdent(lit string) Kind {
	if kind, ok := keywords[lit]; ok {
		return kind
	}
	return Ident
}

var punctuation = map[Kind]string{
	Comma:     ",",
	Semicolon: ";",
	Dot:       ".",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
}

// Spelling returns the fixed source text of a kind when it has one, and
// the kind name otherwise. It is meant for messages.
func (k Kind) Spelling() string {
	if s, ok := operators[k]; ok {
		return s
	}
	if s, ok := punctuation[k]; ok {
		return s
	}
	for kw, kind := range keywords {
		if kind == k {
			return kw
		}
	}
	return k.String()
}
