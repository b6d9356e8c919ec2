package parser

import (
	"fmt"
	"strconv"
	"strings"

	"bantam/internal/ast"
	"bantam/internal/diag"
	"bantam/internal/lexer"
	"bantam/internal/token"
)

type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors []diag.Diagnostic
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// init cur/peek
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the syntax diagnostics. Lexical diagnostics stay on the
// lexer.
func (p *Parser) Errors() []diag.Diagnostic {
	return p.errors
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(pos token.Position, code diag.Code, format string, args ...interface{}) {
	p.errors = append(p.errors, diag.Diagnostic{
		Kind: diag.Syntax,
		Code: code,
		File: p.l.File(),
		Line: pos.Line,
		Msg:  fmt.Sprintf(format, args...),
	})
}

func (p *Parser) expect(kind token.Kind) token.Token {
	if p.cur.Kind != kind {
		p.errorf(p.cur.Pos, diag.E2002, "expected %s, got %s", kind.Spelling(), describe(p.cur))
	}
	tok := p.cur
	p.nextToken()
	return tok
}

// expectIdent consumes an identifier. On mismatch it reports what was
// being parsed and consumes nothing unless the token is a keyword or
// illegal, so the caller's recovery sees the structural token.
func (p *Parser) expectIdent(what string) token.Token {
	tok := p.cur
	if tok.Kind == token.Ident {
		p.nextToken()
		return tok
	}
	p.errorf(tok.Pos, diag.E2002, "expected %s, got %s", what, describe(tok))
	if !isStructural(tok.Kind) {
		p.nextToken()
	}
	return token.Token{Kind: token.Illegal, Pos: tok.Pos}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.Int:
		return fmt.Sprintf("%s %s", strings.ToLower(tok.Kind.String()), tok.Lexeme)
	case token.String:
		return "string constant"
	}
	return fmt.Sprintf("%q", tok.Lexeme)
}

func isStructural(k token.Kind) bool {
	switch k {
	case token.Semicolon, token.RParen, token.RBrace, token.LBrace, token.EOF:
		return true
	}
	return false
}

// ---------- Top-level ----------

func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}

	for p.cur.Kind != token.EOF {
		if p.cur.Kind == token.Class {
			if c := p.parseClass(); c != nil {
				prog.Classes = append(prog.Classes, c)
			}
			continue
		}
		p.errorf(p.cur.Pos, diag.E2001, "unexpected token at top level: %s", describe(p.cur))
		p.nextToken()
	}

	return prog
}

func (p *Parser) parseClass() *ast.Class {
	classTok := p.cur
	p.nextToken()

	nameTok := p.expectIdent("class name after 'class'")

	c := &ast.Class{
		File:     p.l.File(),
		ClassPos: classTok.Pos,
		Name:     nameTok.Lexeme,
		NamePos:  nameTok.Pos,
		Parent:   "Object",
	}

	if p.cur.Kind == token.Extends {
		p.nextToken()
		parentTok := p.expectIdent("parent class name after 'extends'")
		c.Parent = parentTok.Lexeme
		c.ParentPos = parentTok.Pos
	}

	p.expect(token.LBrace)
	for p.cur.Kind != token.RBrace && p.cur.Kind != token.EOF {
		start := p.cur.Pos
		if m := p.parseMember(); m != nil {
			c.Members = append(c.Members, m)
		}
		if p.cur.Pos == start {
			p.nextToken()
		}
	}
	p.expect(token.RBrace)

	return c
}

func (p *Parser) parseMember() ast.Member {
	if p.cur.Kind != token.Ident {
		p.errorf(p.cur.Pos, diag.E2001, "expected field or method declaration, got %s", describe(p.cur))
		return nil
	}
	typeTok := p.cur
	p.nextToken()
	nameTok := p.expectIdent("member name")

	if p.cur.Kind == token.LParen {
		return p.parseMethod(typeTok, nameTok)
	}

	f := &ast.Field{
		Type:    typeTok.Lexeme,
		TypePos: typeTok.Pos,
		Name:    nameTok.Lexeme,
		NamePos: nameTok.Pos,
	}
	if p.cur.Kind == token.Assign {
		p.nextToken() // consume '='
		f.Init = p.parseExpr()
	}
	p.expect(token.Semicolon)
	return f
}

func (p *Parser) parseMethod(typeTok, nameTok token.Token) *ast.Method {
	m := &ast.Method{
		ReturnType: typeTok.Lexeme,
		TypePos:    typeTok.Pos,
		Name:       nameTok.Lexeme,
		NamePos:    nameTok.Pos,
	}

	p.expect(token.LParen)
	if p.cur.Kind != token.RParen {
		for {
			ft := p.expectIdent("formal parameter type")
			fn := p.expectIdent("formal parameter name")
			m.Formals = append(m.Formals, &ast.Formal{
				Type:    ft.Lexeme,
				TypePos: ft.Pos,
				Name:    fn.Lexeme,
				NamePos: fn.Pos,
			})
			if p.cur.Kind != token.Comma {
				break
			}
			p.nextToken()
		}
	}
	p.expect(token.RParen)

	body := p.parseBlock()
	m.Body = body.Stmts
	m.LBrace = body.LBrace
	m.RBrace = body.RBrace
	return m
}

// ---------- Statements ----------

func (p *Parser) parseBlock() *ast.BlockStmt {
	lbrace := p.expect(token.LBrace)
	b := &ast.BlockStmt{LBrace: lbrace.Pos}

	for p.cur.Kind != token.RBrace && p.cur.Kind != token.EOF {
		start := p.cur.Pos
		if st := p.parseStatement(); st != nil {
			b.Stmts = append(b.Stmts, st)
		}
		if p.cur.Pos == start {
			p.nextToken()
		}
	}

	rbrace := p.expect(token.RBrace)
	b.RBrace = rbrace.Pos
	return b
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Kind {
	case token.Var:
		return p.parseDeclStmt()
	case token.If:
		return p.parseIfStmt()
	case token.While:
		return p.parseWhileStmt()
	case token.For:
		return p.parseForStmt()
	case token.Break:
		return p.parseBreakStmt()
	case token.Return:
		return p.parseReturnStmt()
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.errorf(p.cur.Pos, diag.E2003, "empty statement")
		p.nextToken()
		return nil
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseDeclStmt() ast.Stmt {
	varTok := p.cur
	p.nextToken()
	nameTok := p.expectIdent("variable name after 'var'")
	p.expect(token.Assign)
	init := p.parseExpr()
	p.expect(token.Semicolon)

	return &ast.DeclStmt{
		VarPos:  varTok.Pos,
		Name:    nameTok.Lexeme,
		NamePos: nameTok.Pos,
		Init:    init,
	}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	startTok := p.cur
	x := p.parseExpr()
	if x == nil {
		if p.cur.Kind == token.Semicolon {
			p.nextToken()
		}
		return nil
	}
	if !isStatementExpr(x) {
		p.errorf(startTok.Pos, diag.E2005, "not a statement: only assignments, method calls, new and ++/-- may be used as statements")
	}
	p.expect(token.Semicolon)
	return &ast.ExprStmt{X: x}
}

func isStatementExpr(x ast.Expr) bool {
	switch e := x.(type) {
	case *ast.AssignExpr, *ast.DispatchExpr, *ast.NewExpr:
		return true
	case *ast.UnaryExpr:
		return e.Op == token.Incr || e.Op == token.Decr
	}
	return false
}

func (p *Parser) parseIfStmt() ast.Stmt {
	ifTok := p.cur
	p.nextToken()
	p.expect(token.LParen)
	pred := p.parseExpr()
	p.expect(token.RParen)
	then := p.parseStatement()

	s := &ast.IfStmt{
		IfPos: ifTok.Pos,
		Pred:  pred,
		Then:  then,
	}
	if p.cur.Kind == token.Else {
		p.nextToken()
		s.Else = p.parseStatement()
	}
	return s
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	whileTok := p.cur
	p.nextToken()
	p.expect(token.LParen)
	pred := p.parseExpr()
	p.expect(token.RParen)
	body := p.parseStatement()

	return &ast.WhileStmt{
		WhilePos: whileTok.Pos,
		Pred:     pred,
		Body:     body,
	}
}

func (p *Parser) parseForStmt() ast.Stmt {
	forTok := p.cur
	p.nextToken()
	p.expect(token.LParen)

	s := &ast.ForStmt{ForPos: forTok.Pos}

	if p.cur.Kind != token.Semicolon {
		s.Init = p.parseExpr()
	}
	p.expect(token.Semicolon)

	if p.cur.Kind != token.Semicolon {
		s.Pred = p.parseExpr()
	}
	p.expect(token.Semicolon)

	if p.cur.Kind != token.RParen {
		s.Update = p.parseExpr()
	}
	p.expect(token.RParen)

	s.Body = p.parseStatement()
	return s
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	breakTok := p.cur
	p.nextToken()

	// break is always followed by a semicolon
	p.expect(token.Semicolon)

	return &ast.BreakStmt{
		BreakPos: breakTok.Pos,
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	retTok := p.cur
	p.nextToken()

	s := &ast.ReturnStmt{ReturnPos: retTok.Pos}
	if p.cur.Kind != token.Semicolon {
		s.Result = p.parseExpr()
	}
	p.expect(token.Semicolon)
	return s
}

// ---------- Expressions (with priorities) ----------

func (p *Parser) parseExpr() ast.Expr {
	left := p.parseOr()
	if p.cur.Kind != token.Assign {
		return left
	}

	assignTok := p.cur
	p.nextToken()
	value := p.parseExpr()

	if v, ok := left.(*ast.VarExpr); ok {
		if v.Ref == nil {
			return &ast.AssignExpr{
				Name:    v.Name,
				NamePos: v.NamePos,
				Value:   value,
			}
		}
		if ref, ok := v.Ref.(*ast.VarExpr); ok && ref.Ref == nil {
			return &ast.AssignExpr{
				RefName: ref.Name,
				RefPos:  ref.NamePos,
				Name:    v.Name,
				NamePos: v.NamePos,
				Value:   value,
			}
		}
	}
	if left != nil {
		p.errorf(assignTok.Pos, diag.E2004, "invalid assignment target: expected a variable name, optionally qualified by one reference name")
	}
	return left
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.cur.Kind == token.OrOr {
		opTok := p.cur
		p.nextToken()
		right := p.parseAnd()
		left = &ast.BinaryExpr{
			OpPos: opTok.Pos,
			Op:    opTok.Kind,
			Left:  left,
			Right: right,
		}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.cur.Kind == token.AndAnd {
		opTok := p.cur
		p.nextToken()
		right := p.parseEquality()
		left = &ast.BinaryExpr{
			OpPos: opTok.Pos,
			Op:    opTok.Kind,
			Left:  left,
			Right: right,
		}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.cur.Kind == token.Eq || p.cur.Kind == token.NotEq {
		opTok := p.cur
		p.nextToken()
		right := p.parseRelational()
		left = &ast.BinaryExpr{
			OpPos: opTok.Pos,
			Op:    opTok.Kind,
			Left:  left,
			Right: right,
		}
	}
	return left
}

// Relational operators do not chain: a < b < c is a syntax error.
func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	switch p.cur.Kind {
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		opTok := p.cur
		p.nextToken()
		right := p.parseAdditive()
		return &ast.BinaryExpr{
			OpPos: opTok.Pos,
			Op:    opTok.Kind,
			Left:  left,
			Right: right,
		}
	case token.Instanceof:
		opTok := p.cur
		p.nextToken()
		typeTok := p.expectIdent("type name after 'instanceof'")
		return &ast.InstanceofExpr{
			X:       left,
			OpPos:   opTok.Pos,
			Type:    typeTok.Lexeme,
			TypePos: typeTok.Pos,
		}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.cur.Kind == token.Plus || p.cur.Kind == token.Minus {
		opTok := p.cur
		p.nextToken()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{
			OpPos: opTok.Pos,
			Op:    opTok.Kind,
			Left:  left,
			Right: right,
		}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.cur.Kind == token.Star || p.cur.Kind == token.Slash || p.cur.Kind == token.Percent {
		opTok := p.cur
		p.nextToken()
		right := p.parseUnary()
		left = &ast.BinaryExpr{
			OpPos: opTok.Pos,
			Op:    opTok.Kind,
			Left:  left,
			Right: right,
		}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.Kind {
	case token.Minus, token.Bang, token.Incr, token.Decr:
		opTok := p.cur
		p.nextToken()
		x := p.parseUnary()
		return &ast.UnaryExpr{
			OpPos: opTok.Pos,
			Op:    opTok.Kind,
			X:     x,
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	if x == nil {
		return nil
	}

	for p.cur.Kind == token.Dot {
		p.nextToken()
		nameTok := p.expectIdent("field or method name after '.'")
		if p.cur.Kind == token.LParen {
			args, rparen := p.parseArgs()
			x = &ast.DispatchExpr{
				Ref:     x,
				Method:  nameTok.Lexeme,
				NamePos: nameTok.Pos,
				Args:    args,
				RParen:  rparen,
			}
			continue
		}
		x = &ast.VarExpr{
			Ref:     x,
			Name:    nameTok.Lexeme,
			NamePos: nameTok.Pos,
		}
	}

	if p.cur.Kind == token.Incr || p.cur.Kind == token.Decr {
		opTok := p.cur
		p.nextToken()
		x = &ast.UnaryExpr{
			OpPos:   opTok.Pos,
			Op:      opTok.Kind,
			X:       x,
			Postfix: true,
		}
	}
	return x
}

func (p *Parser) parseArgs() ([]ast.Expr, token.Position) {
	p.expect(token.LParen)
	var args []ast.Expr
	if p.cur.Kind != token.RParen {
		for {
			args = append(args, p.parseExpr())
			if p.cur.Kind != token.Comma {
				break
			}
			p.nextToken()
		}
	}
	rparen := p.expect(token.RParen)
	return args, rparen.Pos
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur

	switch tok.Kind {
	case token.LParen:
		p.nextToken()
		x := p.parseExpr()
		p.expect(token.RParen)
		return x

	case token.Int:
		p.nextToken()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 32)
		if err != nil {
			p.errorf(tok.Pos, diag.E2001, "invalid integer constant %q", tok.Lexeme)
		}
		return &ast.IntLiteral{Value: int32(v), LitPos: tok.Pos, Raw: tok.Lexeme}

	case token.String:
		p.nextToken()
		return &ast.StringLiteral{Value: unescape(tok.Lexeme), Raw: tok.Lexeme, LitPos: tok.Pos}

	case token.True, token.False:
		p.nextToken()
		return &ast.BoolLiteral{Value: tok.Kind == token.True, LitPos: tok.Pos}

	case token.New:
		p.nextToken()
		typeTok := p.expectIdent("class name after 'new'")
		p.expect(token.LParen)
		p.expect(token.RParen)
		return &ast.NewExpr{NewPos: tok.Pos, Type: typeTok.Lexeme, TypePos: typeTok.Pos}

	case token.Cast:
		p.nextToken()
		p.expect(token.LParen)
		typeTok := p.expectIdent("target type in cast")
		p.expect(token.Comma)
		x := p.parseExpr()
		p.expect(token.RParen)
		return &ast.CastExpr{CastPos: tok.Pos, Type: typeTok.Lexeme, TypePos: typeTok.Pos, X: x}

	case token.Ident:
		p.nextToken()
		if p.cur.Kind == token.LParen {
			args, rparen := p.parseArgs()
			return &ast.DispatchExpr{
				Method:  tok.Lexeme,
				NamePos: tok.Pos,
				Args:    args,
				RParen:  rparen,
			}
		}
		return &ast.VarExpr{Name: tok.Lexeme, NamePos: tok.Pos}

	case token.Illegal:
		// already reported by the lexer
		p.nextToken()
		return nil
	}

	p.errorf(tok.Pos, diag.E2003, "expected expression, got %s", describe(tok))
	if !isStructural(tok.Kind) {
		p.nextToken()
	}
	return nil
}

func unescape(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'f':
			sb.WriteByte('\f')
		default:
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
