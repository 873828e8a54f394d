// Package parser implements the single-token-lookahead recursive-descent
// parser of spec §4.2, grounded on original_source/stmc's Parser — its
// `match`/`expect`/`since` cursor idiom, its `name :: ...` binding
// declaration grammar, and its precedence-climbing expression parser.
package parser

import (
	"strconv"

	"github.com/aotlang/aotc/internal/ast"
	"github.com/aotlang/aotc/internal/diag"
	"github.com/aotlang/aotc/internal/lexer"
	"github.com/aotlang/aotc/internal/scope"
	"github.com/aotlang/aotc/internal/source"
	"github.com/aotlang/aotc/internal/token"
	"github.com/aotlang/aotc/internal/types"
)

// Parser builds a TranslationUnit from a token stream. Entering a new
// lexical block allocates a child scope before parsing its contents, so
// local declarations insert into the correct node (spec §4.2).
type Parser struct {
	lex   *lexer.Lexer
	bag   *diag.Bag
	types *types.Interner
	file  string

	cur      token.Token
	prevLoc  source.Loc
	curScope *scope.Scope
}

// New creates a Parser reading from lex, reporting fatal parse errors to
// bag, and interning types into in.
func New(lex *lexer.Lexer, bag *diag.Bag, in *types.Interner, file string) *Parser {
	p := &Parser{lex: lex, bag: bag, types: in, file: file}
	p.next()
	return p
}

func (p *Parser) next() {
	p.prevLoc = p.cur.Loc
	p.cur = p.lex.Lex()
}

func (p *Parser) loc() source.Loc { return p.cur.Loc }

func (p *Parser) since(start source.Loc) source.Span {
	return source.NewSpan(start, p.cur.Loc)
}

// exprSpan builds the ExprBase every expression node embeds, spanning from
// start to the current cursor position.
func exprSpan(p *Parser, start source.Loc) ast.ExprBase {
	return ast.ExprBase{SourceSpan: p.since(start)}
}

func (p *Parser) match(kind token.Kind) bool { return p.cur.Kind == kind }

func (p *Parser) matchIdent(keyword string) bool {
	return p.cur.Kind == token.Identifier && p.cur.Value == keyword
}

// expect is destructive on match and non-destructive on mismatch (spec
// §4.2 contract).
func (p *Parser) expect(kind token.Kind) bool {
	if !p.match(kind) {
		return false
	}
	p.next()
	return true
}

func (p *Parser) expectIdent(keyword string) bool {
	if !p.matchIdent(keyword) {
		return false
	}
	p.next()
	return true
}

// fatal reports a parse error and aborts the pipeline (spec §7:
// ParseError is always fatal, no recovery attempted).
func (p *Parser) fatal(msg string) {
	p.bag.FatalAt(diag.KindParse, msg, p.cur.Loc)
}

func (p *Parser) fatalSpan(msg string, span source.Span) {
	p.bag.FatalSpan(diag.KindParse, msg, span)
}

func (p *Parser) enterScope() {
	p.curScope = scope.NewChild(p.curScope)
}

func (p *Parser) exitScope() {
	p.curScope = p.curScope.Parent()
}

func (p *Parser) declare(name string, decl scope.NamedDecl) {
	if err := p.curScope.Insert(name, decl); err != nil {
		p.bag.ErrorAt(diag.KindNameConflict, err.Error(), p.prevLoc)
	}
}

// Parse consumes the entire token stream and returns the populated
// TranslationUnit (spec §4.2 output contract).
func (p *Parser) Parse() *ast.TranslationUnit {
	tu := &ast.TranslationUnit{File: p.file}
	root := scope.New()
	tu.Scope = root
	p.curScope = root

	for !p.match(token.EndOfFile) {
		decl := p.parseTopLevelDecl()
		if decl != nil {
			tu.Decls = append(tu.Decls, decl)
		}
	}
	return tu
}

func (p *Parser) parseTopLevelDecl() ast.Decl {
	start := p.loc()
	runes := p.parseRuneDecorators()

	if !p.match(token.Identifier) {
		p.fatal("expected identifier")
	}

	if p.matchIdent("load") {
		return p.parseLoadDecl()
	}

	name := p.cur.Value
	p.next()

	if !p.expect(token.ColonColon) {
		p.fatal("expected '::' after name")
	}

	return p.parseBindingDecl(name, start, runes)
}

func (p *Parser) parseLoadDecl() ast.Decl {
	start := p.loc()
	p.next() // 'load'
	if !p.match(token.String) {
		p.fatal("expected string path after 'load'")
	}
	path := p.cur.Value
	p.next()
	for p.expect(token.Semicolon) {
	}
	return &ast.Load{SourceSpan: p.since(start), Path: path}
}

// parseBindingDecl parses what follows `name :: `: a function, a struct, an
// enum, or a variable (spec §4.2). runes were already parsed ahead of the
// name (a rune decorator precedes the declaration it modifies).
func (p *Parser) parseBindingDecl(name string, start source.Loc, runes []ast.Rune) ast.Decl {
	switch {
	case p.match(token.LParen):
		return p.parseFunctionDecl(name, start, runes)
	case p.matchIdent("struct"):
		return p.parseStructDecl(name, start, runes)
	case p.matchIdent("enum"):
		return p.parseEnumDecl(name, start, runes)
	default:
		return p.parseVariableDecl(name, start, runes)
	}
}

func (p *Parser) parseFunctionDecl(name string, start source.Loc, runes []ast.Rune) ast.Decl {
	p.next() // '('
	p.enterScope()
	fnScope := p.curScope

	var params []*ast.Parameter
	var paramTypes []*types.Type
	for !p.expect(token.RParen) {
		if !p.match(token.Identifier) {
			p.fatal("expected parameter name")
		}
		pStart := p.loc()
		pName := p.cur.Value
		p.next()
		if !p.expect(token.Colon) {
			p.fatal("expected ':' after parameter name")
		}
		pType := p.parseType()
		param := &ast.Parameter{SourceSpan: p.since(pStart), Name: pName, Type: pType}
		p.declare(pName, param)
		params = append(params, param)
		paramTypes = append(paramTypes, pType.Type)

		if p.expect(token.RParen) {
			break
		}
		if !p.expect(token.Comma) {
			p.fatal("expected ','")
		}
	}

	if !p.expect(token.Arrow) {
		p.fatal("expected '->' after parameter list")
	}
	retType := p.parseType()

	var body *ast.Block
	end := p.loc()
	if p.match(token.LBrace) {
		body = p.parseBlock()
		end = body.SourceSpan.End
		for p.expect(token.Semicolon) {
		}
	} else if !p.expect(token.Semicolon) {
		p.fatal("expected function body or ';'")
	}

	p.exitScope()

	fnType := types.QualType{Type: p.types.Function(retType.Type, paramTypes)}
	fn := &ast.Function{
		SourceSpan: source.NewSpan(start, end),
		Name:       name,
		Runes:      runes,
		Type:       fnType,
		ReturnType: retType,
		Scope:      fnScope,
		Params:     params,
		Body:       body,
	}
	p.declare(name, fn)
	return fn
}

func (p *Parser) parseStructDecl(name string, start source.Loc, runes []ast.Rune) ast.Decl {
	p.next() // 'struct'
	if !p.expect(token.LBrace) {
		p.fatal("expected '{' after 'struct'")
	}

	structType := p.types.Struct(name, nil)
	decl := &ast.Struct{Name: name, Runes: runes, Type: structType}
	structType.Declaration = decl

	end := p.loc()
	var fields []*ast.Field
	for !p.expect(token.RBrace) {
		if !p.match(token.Identifier) {
			p.fatal("expected field name")
		}
		fStart := p.loc()
		fName := p.cur.Value
		p.next()
		if !p.expect(token.Colon) {
			p.fatal("expected ':' after field name")
		}
		fType := p.parseType()
		field := &ast.Field{SourceSpan: p.since(fStart), Name: fName, Runes: nil, Type: fType}
		fields = append(fields, field)

		if p.match(token.RBrace) {
			end = p.loc()
			p.next()
			break
		}
		if !p.expect(token.Comma) {
			p.fatal("expected ','")
		}
	}

	decl.SourceSpan = source.NewSpan(start, end)
	decl.Fields = fields
	p.declare(name, decl)
	return decl
}

func (p *Parser) parseEnumDecl(name string, start source.Loc, runes []ast.Rune) ast.Decl {
	p.next() // 'enum'

	var underlying types.QualType
	if p.match(token.Identifier) && !p.matchIdent("struct") {
		underlying = p.parseType()
	} else {
		underlying = types.QualType{Type: p.types.Primitive(types.I64)}
	}

	enumType := p.types.Enum(name, underlying.Type, nil)
	decl := &ast.Enum{Name: name, Runes: runes, Underlying: underlying.Type, Type: enumType}
	enumType.Declaration = decl

	if !p.expect(token.LBrace) {
		p.fatal("expected '{' after enum underlying type")
	}

	var variants []*ast.Variant
	var value int64
	end := p.loc()
	for !p.expect(token.RBrace) {
		if !p.match(token.Identifier) {
			p.fatal("expected variant name")
		}
		vStart := p.loc()
		vName := p.cur.Value
		p.next()

		if p.expect(token.Assign) {
			neg := p.expect(token.Minus)
			if !p.match(token.Integer) {
				p.fatal("expected integer variant value")
			}
			n, err := strconv.ParseInt(p.cur.Value, 10, 64)
			if err != nil {
				p.fatal("invalid integer literal: " + p.cur.Value)
			}
			if neg {
				n = -n
			}
			value = n
			p.next()
		}

		variant := &ast.Variant{
			SourceSpan: p.since(vStart),
			Name:       vName,
			Type:       types.QualType{Type: enumType},
			Value:      value,
		}
		value++
		p.declare(vName, variant)
		variants = append(variants, variant)

		if p.match(token.RBrace) {
			end = p.loc()
			p.next()
			break
		}
		if !p.expect(token.Comma) {
			p.fatal("expected ','")
		}
	}

	decl.SourceSpan = source.NewSpan(start, end)
	decl.Variants = variants
	p.declare(name, decl)
	return decl
}

func (p *Parser) parseVariableDecl(name string, start source.Loc, runes []ast.Rune) ast.Decl {
	varType := p.parseType()

	var init ast.Expr
	end := p.loc()
	if p.expect(token.Assign) {
		init = p.parseExpr()
		end = p.prevLoc
	}
	for p.expect(token.Semicolon) {
	}

	v := &ast.Variable{
		SourceSpan: source.NewSpan(start, end),
		Name:       name,
		Runes:      runes,
		Type:       varType,
		Init:       init,
	}
	p.declare(name, v)
	return v
}

// parseRuneDecorators recognizes `@ident` and `@[ident, ident]` decorator
// lists (grounded on lace's ParseRune.cpp). Unknown rune names are
// reported but do not abort parsing.
func (p *Parser) parseRuneDecorators() []ast.Rune {
	if !p.expect(token.At) {
		return nil
	}

	var runes []ast.Rune
	if p.expect(token.LBracket) {
		for !p.expect(token.RBracket) {
			if !p.match(token.Identifier) {
				p.fatal("expected rune name")
			}
			if r, ok := p.resolveRune(p.cur.Value); ok {
				runes = append(runes, r)
			}
			p.next()

			if p.expect(token.RBracket) {
				break
			}
			if !p.expect(token.Comma) {
				p.fatal("expected ','")
			}
		}
	} else {
		if !p.match(token.Identifier) {
			p.fatal("expected rune name")
		}
		if r, ok := p.resolveRune(p.cur.Value); ok {
			runes = append(runes, r)
		}
		p.next()
	}
	return runes
}

func (p *Parser) resolveRune(name string) (ast.Rune, bool) {
	kind, ok := ast.RuneTable[name]
	if !ok {
		p.bag.ErrorAt(diag.KindParse, "unknown rune: "+name, p.cur.Loc)
		return ast.Rune{}, false
	}
	return ast.Rune{Kind: kind}, true
}

// primitiveTypeNames maps the surface spelling of builtin types to their
// internal Kind (grounded on stmc's parse_type_specifier keyword table).
var primitiveTypeNames = map[string]types.Kind{
	"void": types.Void,
	"bool": types.Bool,
	"char": types.Char,
	"s8":   types.I8,
	"s16":  types.I16,
	"s32":  types.I32,
	"s64":  types.I64,
	"u8":   types.U8,
	"u16":  types.U16,
	"u32":  types.U32,
	"u64":  types.U64,
	"f32":  types.F32,
	"f64":  types.F64,
}

// parseType implements the mini-grammar of spec §4.2: `mut? ("*" Type |
// IDENT)`. An unknown identifier produces a Deferred placeholder, not a
// parse error (spec §3.3).
func (p *Parser) parseType() types.QualType {
	qual := types.QualNone
	if p.expectIdent("mut") {
		qual = types.QualMut
	}

	if p.expect(token.Star) {
		pointee := p.parseType()
		return types.QualType{Type: p.types.Pointer(pointee), Qual: qual}
	}

	if !p.match(token.Identifier) {
		p.fatal("expected type")
	}
	name := p.cur.Value
	p.next()

	if kind, ok := primitiveTypeNames[name]; ok {
		return types.QualType{Type: p.types.Primitive(kind), Qual: qual}
	}
	return types.QualType{Type: p.types.Deferred(name), Qual: qual}
}
