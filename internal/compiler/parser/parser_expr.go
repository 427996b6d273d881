package parser

import (
	"github.com/halvardsen/pseudogo/internal/compiler/ast"
	"github.com/halvardsen/pseudogo/internal/compiler/token"
	"github.com/halvardsen/pseudogo/internal/diag"
)

// Precedence levels, lowest to highest, per spec.md §4.2.
const (
	LOWEST     = iota
	PREC_OR    // OR
	PREC_AND   // AND
	PREC_REL   // = < <= > >= <>
	PREC_ADD   // + -
	PREC_MUL   // * / DIV MOD
	PREC_UNARY // unary - / NOT
	PREC_POW   // ^ (right-associative)
)

var binaryPrecedence = map[string]int{
	"OR": PREC_OR,
	"AND": PREC_AND,
	"=": PREC_REL, "<": PREC_REL, "<=": PREC_REL, ">": PREC_REL, ">=": PREC_REL, "<>": PREC_REL,
	"+": PREC_ADD, "-": PREC_ADD, "&": PREC_ADD,
	"*": PREC_MUL, "/": PREC_MUL, "DIV": PREC_MUL, "MOD": PREC_MUL,
	"^": PREC_POW,
}

// curBinaryOp maps the current token to its operator spelling, if it is a binary
// operator token (punctuation or the AND/OR/DIV/MOD keywords).
func (p *Parser) curBinaryOp() (string, bool) {
	switch p.curToken.Kind {
	case token.EQ:
		return "=", true
	case token.LT:
		return "<", true
	case token.LT_EQ:
		return "<=", true
	case token.GT:
		return ">", true
	case token.GT_EQ:
		return ">=", true
	case token.NOT_EQ:
		return "<>", true
	case token.PLUS:
		return "+", true
	case token.MINUS:
		return "-", true
	case token.AMP:
		return "&", true
	case token.STAR:
		return "*", true
	case token.SLASH:
		return "/", true
	case token.CARET:
		return "^", true
	case token.KEYWORD:
		switch p.curToken.Keyword {
		case "AND", "OR", "DIV", "MOD":
			return p.curToken.Keyword, true
		}
	}
	return "", false
}

// parseExpression is the precedence-climbing loop: parse a prefix
// (unary/primary) form, then repeatedly fold in binary operators whose
// precedence is at least minPrec. ^ is right-associative; every other
// operator is left-associative.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()

	for {
		op, ok := p.curBinaryOp()
		if !ok {
			break
		}
		prec := binaryPrecedence[op]
		if prec < minPrec {
			break
		}
		p.nextToken()
		nextMin := prec + 1
		if op == "^" {
			nextMin = prec // right-associative: same precedence recurses
		}
		right := p.parseExpression(nextMin)
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Sp: diag.Span{Start: left.Span().Start, End: right.Span().End}}
	}
	return left
}

// parsePrefix parses unary operators and primaries.
func (p *Parser) parsePrefix() ast.Expression {
	switch {
	case p.curIs(token.MINUS):
		start := p.curToken.Span
		p.nextToken()
		operand := p.parseExpression(PREC_UNARY)
		return &ast.UnaryExpr{Op: "-", Operand: operand, Sp: diag.Span{Start: start.Start, End: operand.Span().End}}
	case p.curIsKw("NOT"):
		start := p.curToken.Span
		p.nextToken()
		operand := p.parseExpression(PREC_UNARY)
		return &ast.UnaryExpr{Op: "NOT", Operand: operand, Sp: diag.Span{Start: start.Start, End: operand.Span().End}}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.curToken
	switch tok.Kind {
	case token.INTEGER_LIT:
		p.nextToken()
		return &ast.Literal{Kind: ast.LitInteger, Text: tok.Lexeme, Sp: tok.Span}
	case token.REAL_LIT:
		p.nextToken()
		return &ast.Literal{Kind: ast.LitReal, Text: tok.Lexeme, Sp: tok.Span}
	case token.STRING_LIT:
		p.nextToken()
		return &ast.Literal{Kind: ast.LitString, Str: tok.Lexeme, Sp: tok.Span}
	case token.CHAR_LIT:
		p.nextToken()
		return &ast.Literal{Kind: ast.LitChar, Str: tok.Lexeme, Sp: tok.Span}
	case token.LPAREN:
		p.nextToken()
		inner := p.parseExpression(LOWEST)
		p.expect(token.RPAREN, "SYN030", "Expected ')' to close parenthesized expression")
		return inner
	case token.IDENT:
		return p.parseIdentOrCallOrIndex()
	case token.KEYWORD:
		switch tok.Keyword {
		case "TRUE":
			p.nextToken()
			return &ast.Literal{Kind: ast.LitBoolean, Bool: true, Sp: tok.Span}
		case "FALSE":
			p.nextToken()
			return &ast.Literal{Kind: ast.LitBoolean, Bool: false, Sp: tok.Span}
		default:
			if token.BuiltinFunctions[tok.Keyword] {
				return p.parseBuiltinCall(tok)
			}
		}
	}
	p.errorAtCur("SYN031", "Expected an expression")
	return &ast.BadExpr{Sp: tok.Span}
}

func (p *Parser) parseIdentOrCallOrIndex() ast.Expression {
	tok := p.curToken
	p.nextToken()
	switch {
	case p.curIs(token.LPAREN):
		return p.finishCall(tok)
	case p.curIs(token.LBRACKET):
		return p.parseArrayIndices(tok)
	default:
		return &ast.Ident{Name: tok.Lexeme, Sp: tok.Span}
	}
}

func (p *Parser) parseBuiltinCall(tok token.Token) ast.Expression {
	p.nextToken()
	if !p.expect(token.LPAREN, "SYN032", "Expected '(' after built-in function name") {
		return &ast.BadExpr{Sp: tok.Span}
	}
	return p.finishCallArgs(tok.Keyword, tok.Span)
}

func (p *Parser) finishCall(tok token.Token) ast.Expression {
	p.nextToken() // consume '('
	return p.finishCallArgs(tok.Lexeme, tok.Span)
}

func (p *Parser) finishCallArgs(name string, startSpan diag.Span) ast.Expression {
	var args []ast.Expression
	if !p.curIs(token.RPAREN) {
		args = append(args, p.parseExpression(LOWEST))
		for p.curIs(token.COMMA) {
			p.nextToken()
			args = append(args, p.parseExpression(LOWEST))
		}
	}
	end := p.curToken.Span
	p.expect(token.RPAREN, "SYN057", "Expected ')' to close argument list")
	return &ast.CallExpr{Name: name, Args: args, Sp: diag.Span{Start: startSpan.Start, End: end.End}}
}
