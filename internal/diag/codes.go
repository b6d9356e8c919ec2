package diag

// Code identifies one entry of the diagnostic catalogue.
type Code struct {
	Code        string
	Name        string
	Description string
}

// Lexical errors (E1xxx)
var (
	E1001 = Code{"E1001", "unsupported-character", "character is not part of the Bantam alphabet"}
	E1002 = Code{"E1002", "int-too-large", "integer constant exceeds 2147483647"}
	E1003 = Code{"E1003", "unterminated-string", "string constant is not closed"}
	E1004 = Code{"E1004", "multiline-string", "string constant spans more than one line"}
	E1005 = Code{"E1005", "invalid-escape", "unsupported escape sequence in string constant"}
	E1006 = Code{"E1006", "string-too-long", "string constant exceeds 5000 characters"}
	E1007 = Code{"E1007", "unterminated-comment", "block comment is not closed"}
)

// Syntax errors (E2xxx)
var (
	E2001 = Code{"E2001", "unexpected-token", "unexpected token encountered"}
	E2002 = Code{"E2002", "missing-token", "expected token not found"}
	E2003 = Code{"E2003", "missing-expression", "expected an expression"}
	E2004 = Code{"E2004", "invalid-assignment-target", "left side of = is not a variable or field"}
	E2005 = Code{"E2005", "not-a-statement", "expression cannot be used as a statement"}
)

// Semantic errors (E3xxx)
var (
	E3001 = Code{"E3001", "undeclared-type", "type is neither primitive nor a declared class"}
	E3002 = Code{"E3002", "undeclared-name", "variable, field or method is not declared"}
	E3003 = Code{"E3003", "type-incompatibility", "expression type does not fit where it is used"}
	E3004 = Code{"E3004", "arity-mismatch", "wrong number of arguments in method call"}
	E3005 = Code{"E3005", "structural-misuse", "construct used where it is not allowed"}
	E3006 = Code{"E3006", "cast-illegality", "cast between primitive or unrelated types"}
	E3007 = Code{"E3007", "comparison-illegality", "instanceof on incomparable types"}
	E3008 = Code{"E3008", "duplicate-declaration", "name already declared in this scope"}
	E3009 = Code{"E3009", "reserved-name", "reserved identifier used as a name"}
	E3010 = Code{"E3010", "class-hierarchy", "invalid class declaration or inheritance"}
	E3011 = Code{"E3011", "missing-main", "no class Main with a void main() method"}
)
