// Package parser implements a recursive-descent parser: a
// precedence-climbing expression parser wrapped around a
// straightforward statement grammar.
package parser

import (
	"fmt"
	"strconv"

	"sixc/pkg/ast"
	"sixc/pkg/token"
)

// Error is returned on the first parse error; like the lexer, the
// parser halts rather than attempting recovery.
type Error struct {
	Line, Column int
	Message      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

type Parser struct {
	tokens  []token.Token
	pos     int
	current token.Token
	err     error
}

func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	if len(tokens) > 0 {
		p.current = tokens[0]
	}
	return p
}

// Parse consumes the entire token stream and returns the statement list,
// or the first error encountered.
func Parse(tokens []token.Token) (*ast.Program, error) {
	p := New(tokens)
	prog := p.parseProgram()
	if p.err != nil {
		return nil, p.err
	}
	return prog, nil
}

func (p *Parser) fail(tok token.Token, format string, args ...interface{}) {
	if p.err == nil {
		p.err = &Error{tok.Line, tok.Column, fmt.Sprintf(format, args...)}
	}
}

func (p *Parser) failed() bool { return p.err != nil }

func (p *Parser) advance() {
	if p.failed() {
		return
	}
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.current = p.tokens[p.pos]
}

func (p *Parser) check(typ token.Type) bool { return p.current.Type == typ }

func (p *Parser) match(typ token.Type) bool {
	if !p.check(typ) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(typ token.Type, context string) token.Token {
	tok := p.current
	if !p.check(typ) {
		p.fail(tok, "expected %s %s, found %s", typ, context, describe(tok))
		return tok
	}
	p.advance()
	return tok
}

func describe(tok token.Token) string {
	if tok.Type == token.Ident || tok.Type == token.Number {
		return fmt.Sprintf("%s %q", tok.Type, tok.Value)
	}
	return tok.Type.String()
}

// --- Expression grammar: precedence table ---

// binaryPrecedence returns the precedence level of a binary operator, or
// -1 if tok is not a binary operator. Higher binds tighter.
func binaryPrecedence(typ token.Type) int {
	switch typ {
	case token.OrOr:
		return 1
	case token.XorXor:
		return 2
	case token.AndAnd:
		return 3
	case token.Or:
		return 4
	case token.Xor:
		return 5
	case token.And:
		return 6
	case token.EqEq, token.Neq:
		return 7
	case token.Lt, token.Lte, token.Gt, token.Gte:
		return 8
	case token.Shl, token.Shr:
		return 9
	case token.Plus, token.Minus:
		return 10
	default:
		return -1
	}
}

func (p *Parser) parseExpr() *ast.Node {
	return p.parseBinary(1)
}

func (p *Parser) parseBinary(minPrec int) *ast.Node {
	left := p.parseUnary()
	for !p.failed() {
		prec := binaryPrecedence(p.current.Type)
		if prec < minPrec {
			return left
		}
		opTok := p.current
		p.advance()
		// Left-associative: the right side only accepts strictly higher
		// precedence, so `a - b - c` parses as `(a - b) - c`.
		right := p.parseBinary(prec + 1)
		left = ast.NewBinary(opTok, opTok.Type, left, right)
	}
	return left
}

func (p *Parser) parseUnary() *ast.Node {
	switch p.current.Type {
	case token.Minus, token.Complement, token.Not:
		opTok := p.current
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnary(opTok, opTok.Type, operand)
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() *ast.Node {
	tok := p.current
	switch tok.Type {
	case token.Number:
		p.advance()
		n, _ := strconv.Atoi(tok.Value)
		return ast.NewIntLiteral(tok, uint8(n))
	case token.Input:
		p.advance()
		p.expect(token.LParen, "after 'input'")
		p.expect(token.RParen, "to close 'input()'")
		return ast.NewCall(tok, ast.BuiltinInput, nil)
	case token.Ident:
		p.advance()
		return ast.NewVar(tok, tok.Value)
	case token.LParen:
		p.advance()
		expr := p.parseExpr()
		p.expect(token.RParen, "to close parenthesized expression")
		return expr
	default:
		p.fail(tok, "expected an expression, found %s", describe(tok))
		return ast.NewIntLiteral(tok, 0)
	}
}

// --- Statement grammar ---

func (p *Parser) parseProgram() *ast.Program {
	var stmts []*ast.Node
	for !p.failed() && !p.check(token.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	return &ast.Program{Stmts: stmts}
}

func (p *Parser) parseBlock() *ast.Node {
	tok := p.expect(token.LBrace, "to start a block")
	var stmts []*ast.Node
	for !p.failed() && !p.check(token.RBrace) && !p.check(token.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(token.RBrace, "to close block")
	return ast.NewBlock(tok, stmts)
}

func (p *Parser) parseStmt() *ast.Node {
	tok := p.current
	switch tok.Type {
	case token.Var:
		return p.parseVarDecl()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Do:
		return p.parseDoWhile()
	case token.Output:
		return p.parseOutput()
	case token.Ident:
		return p.parseAssignOrPost()
	case token.Input:
		// Bare `input();` as a statement, discarding the result.
		expr := p.parseExpr()
		p.expect(token.Semi, "after expression statement")
		return ast.NewExprStmt(tok, expr)
	default:
		p.fail(tok, "expected a statement, found %s", describe(tok))
		p.advance()
		return ast.NewBlock(tok, nil)
	}
}

func (p *Parser) parseVarDecl() *ast.Node {
	tok := p.expect(token.Var, "")
	nameTok := p.expect(token.Ident, "after 'var'")
	p.expect(token.Eq, "in variable declaration")
	init := p.parseExpr()
	p.expect(token.Semi, "after variable declaration")
	return ast.NewVarDecl(tok, nameTok.Value, init)
}

// parseAssignOrPost implements `assignOrPost := IDENT ('=' expr | '++' | '--') ';'`.
func (p *Parser) parseAssignOrPost() *ast.Node {
	nameTok := p.expect(token.Ident, "")
	switch p.current.Type {
	case token.Eq:
		p.advance()
		expr := p.parseExpr()
		p.expect(token.Semi, "after assignment")
		return ast.NewAssign(nameTok, nameTok.Value, expr)
	case token.Inc:
		p.advance()
		p.expect(token.Semi, "after '++'")
		return ast.NewPostInc(nameTok, nameTok.Value)
	case token.Dec:
		p.advance()
		p.expect(token.Semi, "after '--'")
		return ast.NewPostDec(nameTok, nameTok.Value)
	default:
		p.fail(p.current, "expected '=', '++' or '--' after identifier, found %s", describe(p.current))
		return ast.NewBlock(nameTok, nil)
	}
}

// parseIf implements `if := 'if' '(' expr ')' block ('else' block)? ';'`.
// if/while/do-while statements require a trailing ';' after the
// closing brace, matching this language's block-terminated-statement
// grammar.
func (p *Parser) parseIf() *ast.Node {
	tok := p.expect(token.If, "")
	p.expect(token.LParen, "after 'if'")
	cond := p.parseExpr()
	p.expect(token.RParen, "after if condition")
	then := p.parseBlock()
	var els *ast.Node
	if p.match(token.Else) {
		els = p.parseBlock()
	}
	p.expect(token.Semi, "after if statement")
	return ast.NewIf(tok, cond, then, els)
}

func (p *Parser) parseWhile() *ast.Node {
	tok := p.expect(token.While, "")
	p.expect(token.LParen, "after 'while'")
	cond := p.parseExpr()
	p.expect(token.RParen, "after while condition")
	body := p.parseBlock()
	p.expect(token.Semi, "after while statement")
	return ast.NewWhile(tok, cond, body)
}

func (p *Parser) parseDoWhile() *ast.Node {
	tok := p.expect(token.Do, "")
	body := p.parseBlock()
	p.expect(token.While, "after do-block")
	p.expect(token.LParen, "after 'while'")
	cond := p.parseExpr()
	p.expect(token.RParen, "after do-while condition")
	p.expect(token.Semi, "after do-while statement")
	return ast.NewDoWhile(tok, body, cond)
}

func (p *Parser) parseOutput() *ast.Node {
	tok := p.expect(token.Output, "")
	p.expect(token.LParen, "after 'output'")
	expr := p.parseExpr()
	p.expect(token.RParen, "to close 'output(...)'")
	p.expect(token.Semi, "after output statement")
	return ast.NewOutputStmt(tok, expr)
}
