// Package parser implements the pseudocode grammar: recursive descent for
// statements, Pratt (operator-precedence) parsing for expressions.
package parser

import (
	"strconv"

	"github.com/halvardsen/pseudogo/internal/compiler/ast"
	"github.com/halvardsen/pseudogo/internal/compiler/token"
	"github.com/halvardsen/pseudogo/internal/diag"
)

// Parser consumes a token stream and builds a Program.
type Parser struct {
	toks []token.Token
	pos  int

	curToken  token.Token
	peekToken token.Token

	Diagnostics diag.List
}

// New creates a Parser over a complete token stream (as produced by
// lexer.AllTokens, terminated by EOF).
func New(toks []token.Token) *Parser {
	p := &Parser{toks: toks}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.toks) {
		p.peekToken = p.toks[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Kind: token.EOF}
	}
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curToken.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peekToken.Kind == k }
func (p *Parser) curIsKw(kw string) bool   { return p.curToken.Is(kw) }
func (p *Parser) peekIsKw(kw string) bool  { return p.peekToken.Is(kw) }

// expect advances past the current token if it is of kind k, else reports
// diagnostic code at the current token's span and leaves the cursor in place.
func (p *Parser) expect(k token.Kind, code, message string) bool {
	if p.curIs(k) {
		p.nextToken()
		return true
	}
	p.errorAtCur(code, message)
	return false
}

func (p *Parser) expectKw(kw, code, message string) bool {
	if p.curIsKw(kw) {
		p.nextToken()
		return true
	}
	p.errorAtCur(code, message)
	return false
}

func (p *Parser) errorAtCur(code, message string) {
	p.Diagnostics.Error(code, message, p.curToken.Span)
}

func (p *Parser) errorAtCurHint(code, message, hint string) {
	p.Diagnostics.ErrorHint(code, message, hint, p.curToken.Span)
}

// skipNewlines consumes zero or more leading NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.nextToken()
	}
}

// recoverToNewline discards tokens up to and including the next NEWLINE,
// or up to EOF, per spec.md §4.2's line-level recovery rule.
func (p *Parser) recoverToNewline() {
	for !p.curIs(token.NEWLINE) && !p.curIs(token.EOF) {
		p.nextToken()
	}
	if p.curIs(token.NEWLINE) {
		p.nextToken()
	}
}

// Parse is the entry point: consumes the whole token stream and returns a
// Program plus any diagnostics accumulated along the way.
func Parse(toks []token.Token) (*ast.Program, diag.List) {
	p := New(toks)
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
	}
	return prog, p.Diagnostics
}

// stopSet is a small set of keywords parseStatements should stop before.
type stopSet map[string]bool

func stops(kws ...string) stopSet {
	s := make(stopSet, len(kws))
	for _, k := range kws {
		s[k] = true
	}
	return s
}

func (s stopSet) matches(tok token.Token) bool {
	return tok.Kind == token.KEYWORD && s[tok.Keyword]
}

// parseStatements parses statements until the lookahead keyword is in
// stop, or EOF is reached.
func (p *Parser) parseStatements(stop stopSet) []ast.Statement {
	var out []ast.Statement
	p.skipNewlines()
	for !p.curIs(token.EOF) && !stop.matches(p.curToken) {
		stmt := p.parseStatement()
		if stmt != nil {
			out = append(out, stmt)
		}
		p.skipNewlines()
	}
	return out
}

// parseStatement dispatches on the current token's kind.
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curIs(token.KEYWORD):
		switch p.curToken.Keyword {
		case "DECLARE":
			return p.parseDeclare()
		case "CONSTANT":
			return p.parseConstant()
		case "INPUT":
			return p.parseInput()
		case "OUTPUT":
			return p.parseOutput()
		case "IF":
			return p.parseIf()
		case "CASE":
			return p.parseCase()
		case "FOR":
			return p.parseFor()
		case "REPEAT":
			return p.parseRepeat()
		case "WHILE":
			return p.parseWhile()
		case "PROCEDURE":
			return p.parseProcedure()
		case "FUNCTION":
			return p.parseFunction()
		case "CALL":
			return p.parseCallStatement()
		case "RETURN":
			return p.parseReturn()
		case "OPENFILE":
			return p.parseOpenFile()
		case "READFILE":
			return p.parseReadFile()
		case "WRITEFILE":
			return p.parseWriteFile()
		case "CLOSEFILE":
			return p.parseCloseFile()
		default:
			start := p.curToken.Span
			p.errorAtCur("SYN004", "Unexpected keyword "+p.curToken.Keyword+" at start of statement")
			p.recoverToNewline()
			return &ast.BadStmt{Sp: start}
		}
	case p.curIs(token.IDENT):
		return p.parseAssignment()
	default:
		start := p.curToken.Span
		p.errorAtCur("SYN004", "Expected a statement")
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
}

// parseAssignment handles `target <- expr` where target is an identifier
// optionally followed by array indices.
func (p *Parser) parseAssignment() ast.Statement {
	start := p.curToken.Span
	target := p.parsePrimaryTarget()

	if !p.expect(token.ASSIGN, "SYN010", "Expected assignment arrow '<-' or '←'") {
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	value := p.parseExpression(LOWEST)
	return &ast.AssignStmt{Target: target, Value: value, Sp: diag.Span{Start: start.Start, End: value.Span().End}}
}

// parsePrimaryTarget parses an identifier, optionally subscripted, as an
// assignment/input target.
func (p *Parser) parsePrimaryTarget() ast.Expression {
	nameTok := p.curToken
	p.nextToken()
	if p.curIs(token.LBRACKET) {
		return p.parseArrayIndices(nameTok)
	}
	return &ast.Ident{Name: nameTok.Lexeme, Sp: nameTok.Span}
}

func (p *Parser) parseArrayIndices(nameTok token.Token) ast.Expression {
	p.nextToken() // consume '['
	var indices []ast.Expression
	indices = append(indices, p.parseExpression(LOWEST))
	for p.curIs(token.COMMA) {
		p.nextToken()
		indices = append(indices, p.parseExpression(LOWEST))
	}
	end := p.curToken.Span
	p.expect(token.RBRACKET, "SYN011", "Expected ']' to close array index")
	return &ast.ArrayAccess{Name: nameTok.Lexeme, Indices: indices, Sp: diag.Span{Start: nameTok.Span.Start, End: end.End}}
}

// ---- DECLARE / CONSTANT / types ----

func (p *Parser) parseDeclare() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume DECLARE

	var names []string
	if !p.curIs(token.IDENT) {
		p.errorAtCur("SYN012", "Expected identifier after DECLARE")
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	names = append(names, p.curToken.Lexeme)
	p.nextToken()
	for p.curIs(token.COMMA) {
		p.nextToken()
		if !p.curIs(token.IDENT) {
			p.errorAtCur("SYN012", "Expected identifier after ','")
			p.recoverToNewline()
			return &ast.BadStmt{Sp: start}
		}
		names = append(names, p.curToken.Lexeme)
		p.nextToken()
	}

	if !p.expect(token.COLON, "SYN013", "Expected ':' before declared type") {
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}

	typ := p.parseType()
	if typ == nil {
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	return &ast.DeclareStmt{Names: names, Type: typ, Sp: diag.Span{Start: start.Start, End: typ.Span().End}}
}

func (p *Parser) parseConstant() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume CONSTANT

	if !p.curIs(token.IDENT) {
		p.errorAtCur("SYN014", "Expected identifier after CONSTANT")
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	name := p.curToken.Lexeme
	p.nextToken()

	if !p.expect(token.ASSIGN, "SYN015", "Expected '<-' after constant name") {
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	value := p.parseExpression(LOWEST)
	return &ast.ConstantStmt{Name: name, Value: value, Sp: diag.Span{Start: start.Start, End: value.Span().End}}
}

var basicTypeNames = map[string]bool{
	"INTEGER": true, "REAL": true, "CHAR": true, "STRING": true, "BOOLEAN": true,
}

// parseType parses either a basic type name or ARRAY[lo:hi(,lo:hi)?] OF Type.
func (p *Parser) parseType() *ast.TypeRef {
	start := p.curToken.Span
	if p.curIsKw("ARRAY") {
		p.nextToken()
		if !p.expect(token.LBRACKET, "SYN016", "Expected '[' after ARRAY") {
			return nil
		}
		dims := []ast.ArrayDim{p.parseArrayDim()}
		for p.curIs(token.COMMA) {
			p.nextToken()
			dims = append(dims, p.parseArrayDim())
		}
		end := p.curToken.Span
		if !p.expect(token.RBRACKET, "SYN017", "Expected ']' to close array bounds") {
			return nil
		}
		if !p.expectKw("OF", "SYN019", "Expected OF after array bounds") {
			return nil
		}
		elemTok := p.curToken
		elem, ok := p.parseBasicTypeName()
		if !ok {
			p.errorAtCur("SYN020", "Expected element type name after OF")
			return nil
		}
		_ = end
		return &ast.TypeRef{IsArray: true, Element: elem, Dims: dims, Sp: diag.Span{Start: start.Start, End: elemTok.Span.End}}
	}

	name, ok := p.parseBasicTypeName()
	if !ok {
		p.errorAtCur("SYN021", "Expected a type name")
		return nil
	}
	return &ast.TypeRef{Basic: name, Sp: diag.Span{Start: start.Start, End: start.End}}
}

func (p *Parser) parseBasicTypeName() (string, bool) {
	if p.curIs(token.KEYWORD) && basicTypeNames[p.curToken.Keyword] {
		name := p.curToken.Keyword
		p.nextToken()
		return name, true
	}
	return "", false
}

// parseArrayDim parses one "lo:hi" bound pair; bounds must be (optionally
// signed) integer literals per spec.md §3.
func (p *Parser) parseArrayDim() ast.ArrayDim {
	lo, okLo := p.parseSignedIntLiteral()
	if !okLo {
		p.errorAtCur("SYN022", "Array bound must be an integer literal")
	}
	p.expect(token.COLON, "SYN022", "Expected ':' between array bounds")
	hi, okHi := p.parseSignedIntLiteral()
	if !okHi {
		p.errorAtCur("SYN022", "Array bound must be an integer literal")
	}
	return ast.ArrayDim{Lower: lo, Upper: hi}
}

func (p *Parser) parseSignedIntLiteral() (int, bool) {
	neg := false
	if p.curIs(token.MINUS) {
		neg = true
		p.nextToken()
	}
	if !p.curIs(token.INTEGER_LIT) {
		return 0, false
	}
	n, err := strconv.Atoi(p.curToken.Lexeme)
	p.nextToken()
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// parseParams parses a comma-separated parameter list already positioned
// just after '('; returns with the cursor after ')'.
func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param
	if p.curIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	for {
		params = append(params, p.parseParam())
		if p.curIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RPAREN, "SYN024", "Expected ')' to close parameter list")
	return params
}

func (p *Parser) parseParam() *ast.Param {
	start := p.curToken.Span
	byRef := false
	if p.curIsKw("BYREF") {
		byRef = true
		p.nextToken()
	} else if p.curIsKw("BYVAL") {
		p.nextToken()
	}
	if !p.curIs(token.IDENT) {
		p.errorAtCur("SYN025", "Expected parameter name")
		return &ast.Param{Sp: start}
	}
	name := p.curToken.Lexeme
	p.nextToken()
	p.expect(token.COLON, "SYN026", "Expected ':' after parameter name")
	typ := p.parseType()
	end := start
	if typ != nil {
		end = typ.Sp
	}
	return &ast.Param{Name: name, Type: typ, ByRef: byRef, Sp: diag.Span{Start: start.Start, End: end.End}}
}
