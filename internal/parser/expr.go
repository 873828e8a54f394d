package parser

import (
	"strconv"

	"github.com/aotlang/aotc/internal/ast"
	"github.com/aotlang/aotc/internal/token"
)

// assignOps maps every compound/plain assignment token to its Operator
// (spec §4.2: assignment is the lowest-precedence, right-associative
// level).
var assignOps = map[token.Kind]ast.Operator{
	token.Assign:        ast.OpAssign,
	token.PlusAssign:    ast.OpAddAssign,
	token.MinusAssign:   ast.OpSubAssign,
	token.StarAssign:    ast.OpMulAssign,
	token.SlashAssign:   ast.OpDivAssign,
	token.PercentAssign: ast.OpModAssign,
	token.AmpAssign:     ast.OpAndAssign,
	token.PipeAssign:    ast.OpOrAssign,
	token.CaretAssign:   ast.OpXorAssign,
	token.ShlAssign:     ast.OpShlAssign,
	token.ShrAssign:     ast.OpShrAssign,
}

// parseExpr parses a full expression by precedence climbing, lowest
// (assignment) to highest (postfix), per spec §4.2's explicit precedence
// table, grounded on stmc's parser binary-operator climb.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expr {
	start := p.loc()
	lhs := p.parseLogicalOr()
	if op, ok := assignOps[p.cur.Kind]; ok {
		p.next()
		rhs := p.parseAssignment() // right-associative
		return &ast.BinaryOp{ExprBase: exprSpan(p, start), Op: op, LHS: lhs, RHS: rhs}
	}
	return lhs
}

func (p *Parser) parseLogicalOr() ast.Expr {
	start := p.loc()
	left := p.parseLogicalAnd()
	for p.match(token.PipePipe) {
		p.next()
		right := p.parseLogicalAnd()
		left = &ast.BinaryOp{ExprBase: exprSpan(p, start), Op: ast.OpLogOr, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	start := p.loc()
	left := p.parseBitOr()
	for p.match(token.AmpAmp) {
		p.next()
		right := p.parseBitOr()
		left = &ast.BinaryOp{ExprBase: exprSpan(p, start), Op: ast.OpLogAnd, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseBitOr() ast.Expr {
	start := p.loc()
	left := p.parseBitXor()
	for p.match(token.Pipe) {
		p.next()
		right := p.parseBitXor()
		left = &ast.BinaryOp{ExprBase: exprSpan(p, start), Op: ast.OpBitOr, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expr {
	start := p.loc()
	left := p.parseBitAnd()
	for p.match(token.Caret) {
		p.next()
		right := p.parseBitAnd()
		left = &ast.BinaryOp{ExprBase: exprSpan(p, start), Op: ast.OpBitXor, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expr {
	start := p.loc()
	left := p.parseEquality()
	for p.match(token.Amp) {
		p.next()
		right := p.parseEquality()
		left = &ast.BinaryOp{ExprBase: exprSpan(p, start), Op: ast.OpBitAnd, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	start := p.loc()
	left := p.parseRelational()
	for {
		var op ast.Operator
		switch p.cur.Kind {
		case token.Eq:
			op = ast.OpEq
		case token.NotEq:
			op = ast.OpNotEq
		default:
			return left
		}
		p.next()
		right := p.parseRelational()
		left = &ast.BinaryOp{ExprBase: exprSpan(p, start), Op: op, LHS: left, RHS: right}
	}
}

func (p *Parser) parseRelational() ast.Expr {
	start := p.loc()
	left := p.parseShift()
	for {
		var op ast.Operator
		switch p.cur.Kind {
		case token.Less:
			op = ast.OpLess
		case token.LessEq:
			op = ast.OpLessEq
		case token.Greater:
			op = ast.OpGreater
		case token.GreaterEq:
			op = ast.OpGreaterEq
		default:
			return left
		}
		p.next()
		right := p.parseShift()
		left = &ast.BinaryOp{ExprBase: exprSpan(p, start), Op: op, LHS: left, RHS: right}
	}
}

func (p *Parser) parseShift() ast.Expr {
	start := p.loc()
	left := p.parseAdditive()
	for {
		var op ast.Operator
		switch p.cur.Kind {
		case token.Shl:
			op = ast.OpShl
		case token.Shr:
			op = ast.OpShr
		default:
			return left
		}
		p.next()
		right := p.parseAdditive()
		left = &ast.BinaryOp{ExprBase: exprSpan(p, start), Op: op, LHS: left, RHS: right}
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	start := p.loc()
	left := p.parseMultiplicative()
	for {
		var op ast.Operator
		switch p.cur.Kind {
		case token.Plus:
			op = ast.OpAdd
		case token.Minus:
			op = ast.OpSub
		default:
			return left
		}
		p.next()
		right := p.parseMultiplicative()
		left = &ast.BinaryOp{ExprBase: exprSpan(p, start), Op: op, LHS: left, RHS: right}
	}
}

func (p *Parser) parseMultiplicative() ast.Expr {
	start := p.loc()
	left := p.parseUnary()
	for {
		var op ast.Operator
		switch p.cur.Kind {
		case token.Star:
			op = ast.OpMul
		case token.Slash:
			op = ast.OpDiv
		case token.Percent:
			op = ast.OpMod
		default:
			return left
		}
		p.next()
		right := p.parseUnary()
		left = &ast.BinaryOp{ExprBase: exprSpan(p, start), Op: op, LHS: left, RHS: right}
	}
}

// unaryOps maps prefix operator tokens to their Operator (spec §4.2:
// unary binds tighter than every binary level, looser than postfix).
var unaryOps = map[token.Kind]ast.Operator{
	token.Bang:  ast.OpNot,
	token.Tilde: ast.OpBitNot,
	token.Minus: ast.OpNeg,
	token.Amp:   ast.OpAddr,
	token.Star:  ast.OpDeref,
	token.Inc:   ast.OpInc,
	token.Dec:   ast.OpDec,
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.loc()
	if op, ok := unaryOps[p.cur.Kind]; ok {
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryOp{ExprBase: exprSpan(p, start), Op: op, Prefix: true, Expr: operand}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	start := p.loc()
	e := p.parsePrimary()
	for {
		switch {
		case p.expect(token.LParen):
			var args []ast.Expr
			for !p.expect(token.RParen) {
				args = append(args, p.parseExpr())
				if p.expect(token.RParen) {
					break
				}
				if !p.expect(token.Comma) {
					p.fatal("expected ','")
				}
			}
			e = &ast.Call{ExprBase: exprSpan(p, start), Callee: e, Args: args}
		case p.expect(token.LBracket):
			idx := p.parseExpr()
			if !p.expect(token.RBracket) {
				p.fatal("expected ']'")
			}
			e = &ast.Subscript{ExprBase: exprSpan(p, start), Base: e, Index: idx}
		case p.expect(token.Dot):
			if !p.match(token.Identifier) {
				p.fatal("expected field name after '.'")
			}
			name := p.cur.Value
			p.next()
			e = &ast.Access{ExprBase: exprSpan(p, start), Base: e, Name: name, Field: nil}
		case p.match(token.Inc):
			p.next()
			e = &ast.UnaryOp{ExprBase: exprSpan(p, start), Op: ast.OpInc, Prefix: false, Expr: e}
		case p.match(token.Dec):
			p.next()
			e = &ast.UnaryOp{ExprBase: exprSpan(p, start), Op: ast.OpDec, Prefix: false, Expr: e}
		default:
			return e
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.loc()
	switch {
	case p.match(token.Integer):
		v, err := strconv.ParseInt(p.cur.Value, 10, 64)
		if err != nil {
			p.fatal("invalid integer literal: " + p.cur.Value)
		}
		p.next()
		return &ast.IntegerLit{ExprBase: exprSpan(p, start), Value: v}

	case p.match(token.Float):
		v, err := strconv.ParseFloat(p.cur.Value, 64)
		if err != nil {
			p.fatal("invalid float literal: " + p.cur.Value)
		}
		p.next()
		return &ast.FloatLit{ExprBase: exprSpan(p, start), Value: v}

	case p.match(token.Character):
		v := byte(0)
		if len(p.cur.Value) > 0 {
			v = p.cur.Value[0]
		}
		p.next()
		return &ast.CharLit{ExprBase: exprSpan(p, start), Value: v}

	case p.match(token.String):
		v := p.cur.Value
		p.next()
		return &ast.StringLit{ExprBase: exprSpan(p, start), Value: v}

	case p.matchIdent("true"):
		p.next()
		return &ast.BoolLit{ExprBase: exprSpan(p, start), Value: true}

	case p.matchIdent("false"):
		p.next()
		return &ast.BoolLit{ExprBase: exprSpan(p, start), Value: false}

	case p.matchIdent("null"):
		p.next()
		return &ast.NullLit{ExprBase: exprSpan(p, start)}

	case p.matchIdent("sizeof"):
		p.next()
		if !p.expect(token.LParen) {
			p.fatal("expected '(' after 'sizeof'")
		}
		target := p.parseType()
		if !p.expect(token.RParen) {
			p.fatal("expected ')' after sizeof operand")
		}
		return &ast.Sizeof{ExprBase: exprSpan(p, start), Target: target}

	case p.matchIdent("cast"):
		p.next()
		if !p.expect(token.Less) {
			p.fatal("expected '<' after 'cast'")
		}
		target := p.parseType()
		if !p.expect(token.Greater) {
			p.fatal("expected '>' after cast target type")
		}
		if !p.expect(token.LParen) {
			p.fatal("expected '(' after cast target")
		}
		inner := p.parseExpr()
		if !p.expect(token.RParen) {
			p.fatal("expected ')' after cast operand")
		}
		return &ast.Cast{ExprBase: exprSpan(p, start), Target: target, Expr: inner}

	case p.expect(token.LParen):
		inner := p.parseExpr()
		if !p.expect(token.RParen) {
			p.fatal("expected ')'")
		}
		return &ast.Paren{ExprBase: exprSpan(p, start), Expr: inner}

	case p.match(token.Identifier):
		name := p.cur.Value
		p.next()
		return &ast.DeclRef{ExprBase: exprSpan(p, start), Name: name, Decl: nil}

	default:
		p.fatal("expected expression")
		return nil
	}
}
