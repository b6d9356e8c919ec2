package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"bantam/internal/diag"
	"bantam/internal/token"
)

const maxStringLen = 5000

type Lexer struct {
	file  string
	input []rune

	pos int

	ch   rune
	line int
	col  int

	errors []diag.Diagnostic
}

func New(file, input string) *Lexer {
	l := &Lexer{
		file:  file,
		input: []rune(input),
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// File returns the source name the lexer reports diagnostics against.
func (l *Lexer) File() string {
	return l.file
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := token.Position{
		Line:   l.line,
		Column: l.col,
	}

	ch := l.ch

	// EOF
	if ch == 0 {
		return token.Token{
			Kind:   token.EOF,
			Lexeme: "",
			Pos:    pos,
		}
	}

	if isDigit(ch) {
		lit := l.readNumber()
		if _, err := strconv.ParseInt(lit, 10, 32); err != nil {
			l.errorf(pos, diag.E1002, "integer constant %s is too large", lit)
			return token.Token{Kind: token.Illegal, Lexeme: lit, Pos: pos}
		}
		return token.Token{
			Kind:   token.Int,
			Lexeme: lit,
			Pos:    pos,
		}
	}

	// Identifiers / keywords
	if isLetter(ch) {
		lit := l.readIdentifier()
		return token.Token{
			Kind:   token.LookupIdent(lit),
			Lexeme: lit,
			Pos:    pos,
		}
	}

	if ch == '"' {
		l.readChar() // consume opening quote
		lit, ok := l.readString(pos)
		kind := token.String
		if !ok {
			kind = token.Illegal
		}
		return token.Token{Kind: kind, Lexeme: lit, Pos: pos}
	}

	// Single- and two-character tokens
	var kind token.Kind
	var lexeme string

	switch ch {
	case ';':
		kind = token.Semicolon
		lexeme = ";"
	case ',':
		kind = token.Comma
		lexeme = ","
	case '.':
		kind = token.Dot
		lexeme = "."
	case '(':
		kind = token.LParen
		lexeme = "("
	case ')':
		kind = token.RParen
		lexeme = ")"
	case '{':
		kind = token.LBrace
		lexeme = "{"
	case '}':
		kind = token.RBrace
		lexeme = "}"
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			kind = token.Incr
			lexeme = "++"
		} else {
			kind = token.Plus
			lexeme = "+"
		}
	case '-':
		if l.peekChar() == '-' {
			l.readChar()
			kind = token.Decr
			lexeme = "--"
		} else {
			kind = token.Minus
			lexeme = "-"
		}
	case '*':
		kind = token.Star
		lexeme = "*"
	case '/':
		kind = token.Slash
		lexeme = "/"
	case '%':
		kind = token.Percent
		lexeme = "%"
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			kind = token.NotEq
			lexeme = "!="
		} else {
			kind = token.Bang
			lexeme = "!"
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			kind = token.AndAnd
			lexeme = "&&"
		} else {
			kind = token.Illegal
			lexeme = "&"
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			kind = token.OrOr
			lexeme = "||"
		} else {
			kind = token.Illegal
			lexeme = "|"
		}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			kind = token.Eq
			lexeme = "=="
		} else {
			kind = token.Assign
			lexeme = "="
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			kind = token.LtEq
			lexeme = "<="
		} else {
			kind = token.Lt
			lexeme = "<"
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			kind = token.GtEq
			lexeme = ">="
		} else {
			kind = token.Gt
			lexeme = ">"
		}
	default:
		kind = token.Illegal
		lexeme = string(ch)
	}

	if kind == token.Illegal {
		l.errorf(pos, diag.E1001, "unsupported character %q", lexeme)
	}

	l.readChar()

	return token.Token{
		Kind:   kind,
		Lexeme: lexeme,
		Pos:    pos,
	}
}

// Helpers

func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input) + 1
		return
	}

	l.ch = l.input[l.pos]
	l.pos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peekChar() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for unicode.IsSpace(l.ch) {
			l.readChar()
		}

		if l.ch == '/' {
			switch l.peekChar() {
			case '/':
				l.readChar() // '/'
				l.readChar() // second '/'
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				continue
			case '*':
				start := token.Position{Line: l.line, Column: l.col}
				l.readChar() // '/'
				l.readChar() // '*'
				for {
					if l.ch == 0 {
						l.errorf(start, diag.E1007, "unterminated block comment")
						return
					}
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar() // '*'
						l.readChar() // '/'
						break
					}
					l.readChar()
				}
				continue
			}
		}

		break
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos - 1 // current rune is already in l.ch
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return string(l.input[start : l.pos-1])
}

func (l *Lexer) readNumber() string {
	start := l.pos - 1
	for isDigit(l.ch) {
		l.readChar()
	}
	return string(l.input[start : l.pos-1])
}

// readString scans the body of a string constant after its opening quote and
// returns the raw text between the quotes, escapes left intact. The scan
// always runs to the closing quote (or EOF) so that one bad constant yields a
// single token.
func (l *Lexer) readString(start token.Position) (string, bool) {
	var sb []rune
	ok := true
	multiline := false
	for {
		if l.ch == 0 {
			l.errorf(start, diag.E1003, "unterminated string constant")
			return string(sb), false
		}
		if l.ch == '"' {
			l.readChar() // closing quote
			break
		}
		if l.ch == '\n' {
			multiline = true
		}
		if l.ch == '\\' {
			escPos := token.Position{Line: l.line, Column: l.col}
			sb = append(sb, l.ch)
			l.readChar()
			if !validEscape(l.ch) {
				l.errorf(escPos, diag.E1005, "unsupported escape sequence \\%c in string constant", l.ch)
				ok = false
			}
			if l.ch == 0 {
				continue
			}
		}
		sb = append(sb, l.ch)
		l.readChar()
	}

	if multiline {
		l.errorf(start, diag.E1004, "string constant cannot span multiple lines")
		ok = false
	}
	if len(sb) > maxStringLen {
		l.errorf(start, diag.E1006, "string constant exceeds %d characters", maxStringLen)
		ok = false
	}
	return string(sb), ok
}

func validEscape(ch rune) bool {
	switch ch {
	case 'n', 't', '"', '\\', 'f':
		return true
	}
	return false
}

func (l *Lexer) errorf(pos token.Position, code diag.Code, format string, args ...interface{}) {
	d := diag.Diagnostic{
		Kind: diag.Lexical,
		Code: code,
		File: l.file,
		Line: pos.Line,
	}
	d.Msg = fmt.Sprintf(format, args...)
	l.errors = append(l.errors, d)
}

func (l *Lexer) Errors() []diag.Diagnostic {
	return l.errors
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	if ch > utf8.RuneSelf {
		return false
	}
	return ch >= '0' && ch <= '9'
}
