package parser

import (
	"github.com/halvardsen/pseudogo/internal/compiler/ast"
	"github.com/halvardsen/pseudogo/internal/compiler/token"
	"github.com/halvardsen/pseudogo/internal/diag"
)

func (p *Parser) parseInput() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume INPUT
	target := p.parsePrimaryTarget()
	return &ast.InputStmt{Target: target, Sp: diag.Span{Start: start.Start, End: target.Span().End}}
}

func (p *Parser) parseOutput() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume OUTPUT
	values := []ast.Expression{p.parseExpression(LOWEST)}
	for p.curIs(token.COMMA) {
		p.nextToken()
		values = append(values, p.parseExpression(LOWEST))
	}
	end := values[len(values)-1].Span()
	return &ast.OutputStmt{Values: values, Sp: diag.Span{Start: start.Start, End: end.End}}
}

func (p *Parser) parseIf() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume IF
	cond := p.parseExpression(LOWEST)

	if !p.expectKw("THEN", "SYN055", "Expected THEN after IF condition") {
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}

	thenBody := p.parseStatements(stops("ELSE", "ENDIF"))

	var elseBody []ast.Statement
	if p.curIsKw("ELSE") {
		p.nextToken()
		elseBody = p.parseStatements(stops("ENDIF"))
	}

	end := p.curToken.Span
	p.expectKw("ENDIF", "SYN018", "Expected ENDIF to close IF statement")
	return &ast.IfStmt{Cond: cond, Then: thenBody, Else: elseBody, Sp: diag.Span{Start: start.Start, End: end.End}}
}

func (p *Parser) parseCase() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume CASE
	if !p.expectKw("OF", "SYN035", "Expected OF after CASE") {
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	subject := p.parseExpression(LOWEST)
	p.skipNewlines()

	var clauses []ast.CaseClause
	seenOtherwise := false
	for !p.curIsKw("ENDCASE") && !p.curIs(token.EOF) {
		clause := p.parseCaseClause()
		if seenOtherwise {
			p.Diagnostics.Error("SYN056", "OTHERWISE must be the last clause of a CASE statement", clause.Sp)
		}
		if clause.Otherwise {
			seenOtherwise = true
		}
		clauses = append(clauses, clause)
		p.skipNewlines()
	}

	end := p.curToken.Span
	p.expectKw("ENDCASE", "SYN027", "Expected ENDCASE to close CASE statement")
	return &ast.CaseStmt{Subject: subject, Clauses: clauses, Sp: diag.Span{Start: start.Start, End: end.End}}
}

// parseCaseClause parses one "value:" or "lo TO hi:" or "OTHERWISE:" clause
// followed by a single statement body, per spec.md §4.2 (TO ranges are
// supplemented, see SPEC_FULL.md). The body statement must begin on the
// same source line as the ':' (or OTHERWISE), else SYN023.
func (p *Parser) parseCaseClause() ast.CaseClause {
	start := p.curToken.Span
	if p.curIsKw("OTHERWISE") {
		p.nextToken()
		colonLine := p.curToken.Span.Start.Line
		p.expect(token.COLON, "SYN037", "Expected ':' after OTHERWISE")
		body := p.parseClauseBody(colonLine)
		return ast.CaseClause{Otherwise: true, Body: body, Sp: diag.Span{Start: start.Start, End: p.bodySpanEnd(body, start)}}
	}

	low := p.parseExpression(LOWEST)
	if p.curIsKw("TO") {
		p.nextToken()
		high := p.parseExpression(LOWEST)
		colonLine := p.curToken.Span.Start.Line
		p.expect(token.COLON, "SYN037", "Expected ':' after CASE range")
		body := p.parseClauseBody(colonLine)
		return ast.CaseClause{IsRange: true, Low: low, High: high, Body: body, Sp: diag.Span{Start: start.Start, End: p.bodySpanEnd(body, start)}}
	}

	colonLine := p.curToken.Span.Start.Line
	p.expect(token.COLON, "SYN037", "Expected ':' after CASE value")
	body := p.parseClauseBody(colonLine)
	return ast.CaseClause{Value: low, Body: body, Sp: diag.Span{Start: start.Start, End: p.bodySpanEnd(body, start)}}
}

// parseClauseBody enforces that a CASE clause's statement starts on the
// same line as its ':'/OTHERWISE token.
func (p *Parser) parseClauseBody(colonLine int) ast.Statement {
	if p.curIs(token.NEWLINE) || p.curToken.Span.Start.Line != colonLine {
		p.errorAtCur("SYN023", "CASE clause statement must begin on the same line as its ':' or OTHERWISE")
		p.skipNewlines()
	}
	if p.curIsKw("ENDCASE") || p.curIs(token.EOF) {
		return nil
	}
	return p.parseStatement()
}

func (p *Parser) bodySpanEnd(body ast.Statement, fallback diag.Span) diag.Position {
	if body == nil {
		return fallback.End
	}
	return body.Span().End
}

func (p *Parser) parseFor() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume FOR
	if !p.curIs(token.IDENT) {
		p.errorAtCur("SYN038", "Expected loop variable after FOR")
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	iterator := p.curToken.Lexeme
	p.nextToken()

	if !p.expect(token.ASSIGN, "SYN039", "Expected '<-' after FOR loop variable") {
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	from := p.parseExpression(LOWEST)
	if !p.expectKw("TO", "SYN040", "Expected TO in FOR range") {
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	to := p.parseExpression(LOWEST)

	var step ast.Expression
	if p.curIsKw("STEP") {
		p.nextToken()
		step = p.parseExpression(LOWEST)
	}

	body := p.parseStatements(stops("NEXT"))

	end := p.curToken.Span
	nextTok := p.curToken
	p.expectKw("NEXT", "SYN041", "Expected NEXT to close FOR statement")
	nextName := ""
	if p.curIs(token.IDENT) {
		nextName = p.curToken.Lexeme
		end = p.curToken.Span
		p.nextToken()
		if nextName != iterator {
			p.Diagnostics.ErrorHint("SYN028", "NEXT "+nextName+" does not match loop variable "+iterator,
				"use NEXT "+iterator+" to match the FOR header", nextTok.Span)
		}
	}

	return &ast.ForStmt{
		Iterator: iterator, Start: from, End: to, Step: step, Body: body, NextName: nextName,
		Sp: diag.Span{Start: start.Start, End: end.End},
	}
}

func (p *Parser) parseRepeat() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume REPEAT
	body := p.parseStatements(stops("UNTIL"))
	p.expectKw("UNTIL", "SYN042", "Expected UNTIL to close REPEAT statement")
	cond := p.parseExpression(LOWEST)
	return &ast.RepeatStmt{Body: body, Cond: cond, Sp: diag.Span{Start: start.Start, End: cond.Span().End}}
}

func (p *Parser) parseWhile() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume WHILE
	cond := p.parseExpression(LOWEST)
	if !p.expectKw("DO", "SYN043", "Expected DO after WHILE condition") {
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	body := p.parseStatements(stops("ENDWHILE"))
	end := p.curToken.Span
	p.expectKw("ENDWHILE", "SYN044", "Expected ENDWHILE to close WHILE statement")
	return &ast.WhileStmt{Cond: cond, Body: body, Sp: diag.Span{Start: start.Start, End: end.End}}
}

func (p *Parser) parseProcedure() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume PROCEDURE
	if !p.curIs(token.IDENT) {
		p.errorAtCur("SYN045", "Expected procedure name")
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	name := p.curToken.Lexeme
	p.nextToken()

	var params []*ast.Param
	if p.curIs(token.LPAREN) {
		p.nextToken()
		params = p.parseParams()
	}

	body := p.parseStatements(stops("ENDPROCEDURE"))
	end := p.curToken.Span
	p.expectKw("ENDPROCEDURE", "SYN046", "Expected ENDPROCEDURE to close PROCEDURE")
	return &ast.ProcedureDecl{Name: name, Params: params, Body: body, Sp: diag.Span{Start: start.Start, End: end.End}}
}

func (p *Parser) parseFunction() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume FUNCTION
	if !p.curIs(token.IDENT) {
		p.errorAtCur("SYN047", "Expected function name")
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	name := p.curToken.Lexeme
	p.nextToken()

	var params []*ast.Param
	if p.curIs(token.LPAREN) {
		p.nextToken()
		params = p.parseParams()
	}

	if !p.expectKw("RETURNS", "SYN048", "Expected RETURNS after FUNCTION parameter list") {
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	retType := p.parseType()

	body := p.parseStatements(stops("ENDFUNCTION"))
	end := p.curToken.Span
	p.expectKw("ENDFUNCTION", "SYN049", "Expected ENDFUNCTION to close FUNCTION")
	return &ast.FunctionDecl{Name: name, Params: params, ReturnType: retType, Body: body, Sp: diag.Span{Start: start.Start, End: end.End}}
}

func (p *Parser) parseCallStatement() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume CALL
	if !p.curIs(token.IDENT) {
		p.errorAtCur("SYN050", "Expected a name after CALL")
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	nameTok := p.curToken
	name := nameTok.Lexeme
	p.nextToken()

	var args []ast.Expression
	end := nameTok.Span
	if p.curIs(token.LPAREN) {
		p.nextToken()
		if !p.curIs(token.RPAREN) {
			args = append(args, p.parseExpression(LOWEST))
			for p.curIs(token.COMMA) {
				p.nextToken()
				args = append(args, p.parseExpression(LOWEST))
			}
		}
		end = p.curToken.Span
		p.expect(token.RPAREN, "SYN057", "Expected ')' to close argument list")
	}
	return &ast.CallStmt{Name: name, Args: args, Sp: diag.Span{Start: start.Start, End: end.End}}
}

func (p *Parser) parseReturn() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume RETURN
	if p.curIs(token.NEWLINE) || p.curIs(token.EOF) {
		return &ast.ReturnStmt{Sp: start}
	}
	value := p.parseExpression(LOWEST)
	return &ast.ReturnStmt{Value: value, Sp: diag.Span{Start: start.Start, End: value.Span().End}}
}

func (p *Parser) parseOpenFile() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume OPENFILE
	file := p.parseExpression(PREC_UNARY)
	if !p.expectKw("FOR", "SYN051", "Expected FOR after OPENFILE file name") {
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	var mode ast.OpenFileMode
	switch {
	case p.curIsKw("READ"):
		mode = ast.FileRead
	case p.curIsKw("WRITE"):
		mode = ast.FileWrite
	default:
		p.errorAtCur("SYN052", "Expected READ or WRITE as file mode")
		p.recoverToNewline()
		return &ast.BadStmt{Sp: start}
	}
	end := p.curToken.Span
	p.nextToken()
	return &ast.OpenFileStmt{File: file, Mode: mode, Sp: diag.Span{Start: start.Start, End: end.End}}
}

func (p *Parser) parseReadFile() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume READFILE
	file := p.parseExpression(PREC_UNARY)
	p.expect(token.COMMA, "SYN053", "Expected ',' between file name and target in READFILE")
	target := p.parsePrimaryTarget()
	return &ast.ReadFileStmt{File: file, Target: target, Sp: diag.Span{Start: start.Start, End: target.Span().End}}
}

func (p *Parser) parseWriteFile() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume WRITEFILE
	file := p.parseExpression(PREC_UNARY)
	p.expect(token.COMMA, "SYN054", "Expected ',' between file name and value in WRITEFILE")
	value := p.parseExpression(LOWEST)
	return &ast.WriteFileStmt{File: file, Value: value, Sp: diag.Span{Start: start.Start, End: value.Span().End}}
}

func (p *Parser) parseCloseFile() ast.Statement {
	start := p.curToken.Span
	p.nextToken() // consume CLOSEFILE
	file := p.parseExpression(PREC_UNARY)
	return &ast.CloseFileStmt{File: file, Sp: diag.Span{Start: start.Start, End: file.Span().End}}
}
