package parser

import (
	"github.com/aotlang/aotc/internal/ast"
	"github.com/aotlang/aotc/internal/source"
	"github.com/aotlang/aotc/internal/token"
)

// parseBlock parses a brace-delimited statement sequence, allocating a
// child scope for its locals (spec §4.2/§4.3 Pass 2).
func (p *Parser) parseBlock() *ast.Block {
	start := p.loc()
	if !p.expect(token.LBrace) {
		p.fatal("expected '{'")
	}
	p.enterScope()
	blockScope := p.curScope

	var stmts []ast.Stmt
	for !p.match(token.RBrace) {
		if p.match(token.EndOfFile) {
			p.fatal("unterminated block")
		}
		if p.expect(token.Semicolon) {
			continue
		}
		stmts = append(stmts, p.parseStmt())
	}
	end := p.loc()
	p.next() // '}'
	p.exitScope()

	return &ast.Block{SourceSpan: source.NewSpan(start, end), Scope: blockScope, Stmts: stmts}
}

// parseStmt dispatches on the current token's leading keyword, matching
// stmc's ParseStmt.cpp layout (spec §4.2).
func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.match(token.LBrace):
		return p.parseBlock()
	case p.matchIdent("ret"):
		return p.parseRetStmt()
	case p.matchIdent("if"):
		return p.parseIfStmt()
	case p.matchIdent("while"):
		return p.parseWhileStmt()
	case p.matchIdent("break"):
		return p.parseBreakStmt()
	case p.matchIdent("continue"):
		return p.parseContinueStmt()
	case p.matchIdent("asm"):
		return p.parseAsmStmt()
	case p.isLocalDeclStart():
		return p.parseDeclStmt()
	default:
		return p.parseExprStmt()
	}
}

// isLocalDeclStart reports whether the upcoming tokens look like
// `identifier "::"`, the only ambiguity a single-token lookahead parser
// has to resolve explicitly (spec §4.2).
func (p *Parser) isLocalDeclStart() bool {
	if !p.match(token.Identifier) {
		return false
	}
	return p.lex.Peek(0).Kind == token.ColonColon
}

func (p *Parser) parseDeclStmt() ast.Stmt {
	start := p.loc()
	name := p.cur.Value
	p.next()
	p.next() // '::'
	decl := p.parseBindingDecl(name, start, nil)
	return &ast.DeclStmt{SourceSpan: decl.Span(), Decl: decl}
}

func (p *Parser) parseRetStmt() ast.Stmt {
	start := p.loc()
	p.next() // 'ret'
	var expr ast.Expr
	if !p.match(token.Semicolon) {
		expr = p.parseExpr()
	}
	end := p.loc()
	if !p.expect(token.Semicolon) {
		p.fatal("expected ';' after 'ret'")
	}
	return &ast.Ret{SourceSpan: source.NewSpan(start, end), Expr: expr}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.loc()
	p.next() // 'if'
	if !p.expect(token.LParen) {
		p.fatal("expected '(' after 'if'")
	}
	cond := p.parseExpr()
	if !p.expect(token.RParen) {
		p.fatal("expected ')' after if condition")
	}
	then := p.parseStmt()
	var elseStmt ast.Stmt
	if p.expectIdent("else") {
		elseStmt = p.parseStmt()
	}
	return &ast.If{SourceSpan: p.since(start), Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.loc()
	p.next() // 'while'
	if !p.expect(token.LParen) {
		p.fatal("expected '(' after 'while'")
	}
	cond := p.parseExpr()
	if !p.expect(token.RParen) {
		p.fatal("expected ')' after while condition")
	}
	var body ast.Stmt
	if !p.expect(token.Semicolon) {
		body = p.parseStmt()
	}
	return &ast.While{SourceSpan: p.since(start), Cond: cond, Body: body}
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	start := p.loc()
	p.next() // 'break'
	end := p.loc()
	if !p.expect(token.Semicolon) {
		p.fatal("expected ';' after 'break'")
	}
	return &ast.Break{SourceSpan: source.NewSpan(start, end)}
}

func (p *Parser) parseContinueStmt() ast.Stmt {
	start := p.loc()
	p.next() // 'continue'
	end := p.loc()
	if !p.expect(token.Semicolon) {
		p.fatal("expected ';' after 'continue'")
	}
	return &ast.Continue{SourceSpan: source.NewSpan(start, end)}
}

// parseAsmStmt parses `asm "template" : outs : ins : clobbers;`, the
// GCC-style inline-assembly operand syntax (spec §3.5 Asm node).
func (p *Parser) parseAsmStmt() ast.Stmt {
	start := p.loc()
	p.next() // 'asm'
	if !p.match(token.String) {
		p.fatal("expected asm template string")
	}
	template := p.cur.Value
	p.next()

	var outs, ins, clobbers []string
	var args []ast.Expr
	if p.expect(token.Colon) {
		outs, args = p.parseAsmOperandList(args)
		if p.expect(token.Colon) {
			ins, args = p.parseAsmOperandList(args)
			if p.expect(token.Colon) {
				clobbers = p.parseAsmStringList()
			}
		}
	}

	end := p.loc()
	if !p.expect(token.Semicolon) {
		p.fatal("expected ';' after asm statement")
	}
	return &ast.Asm{
		SourceSpan: source.NewSpan(start, end),
		Template:   template,
		Outs:       outs,
		Ins:        ins,
		Args:       args,
		Clobbers:   clobbers,
	}
}

func (p *Parser) parseAsmOperandList(args []ast.Expr) ([]string, []ast.Expr) {
	var constraints []string
	if p.match(token.Colon) || p.match(token.Semicolon) {
		return constraints, args
	}
	for {
		if !p.match(token.String) {
			p.fatal("expected asm operand constraint string")
		}
		constraints = append(constraints, p.cur.Value)
		p.next()
		if p.expect(token.LParen) {
			args = append(args, p.parseExpr())
			if !p.expect(token.RParen) {
				p.fatal("expected ')' after asm operand expression")
			}
		}
		if !p.expect(token.Comma) {
			break
		}
	}
	return constraints, args
}

func (p *Parser) parseAsmStringList() []string {
	var names []string
	if p.match(token.Semicolon) {
		return names
	}
	for {
		if !p.match(token.String) {
			p.fatal("expected clobber string")
		}
		names = append(names, p.cur.Value)
		p.next()
		if !p.expect(token.Comma) {
			break
		}
	}
	return names
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.loc()
	expr := p.parseExpr()
	end := p.loc()
	if !p.expect(token.Semicolon) {
		p.fatal("expected ';' after expression statement")
	}
	return &ast.ExprStmt{SourceSpan: source.NewSpan(start, end), Expr: expr}
}
