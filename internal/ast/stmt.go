package ast

import "github.com/aotlang/aotc/internal/source"

// ExprStmt is a bare expression used as a statement: an assignment, a
// call, or an increment/decrement (spec §3.5).
type ExprStmt struct {
	SourceSpan source.Span
	Expr       Expr
}

func (s *ExprStmt) stmtNode()         {}
func (s *ExprStmt) Span() source.Span { return s.SourceSpan }

// Stmt is any statement node.
type Stmt interface {
	stmtNode()
	Span() source.Span
}

// Block is a brace-delimited sequence of statements with its own scope
// (spec §4.3 Pass 2: entering a Block makes its scope current).
type Block struct {
	SourceSpan source.Span
	Scope      any // *scope.Scope
	Stmts      []Stmt
}

func (s *Block) stmtNode()         {}
func (s *Block) Span() source.Span { return s.SourceSpan }

// DeclStmt wraps a local declaration (e.g. `x :: s64 = 0;`) as a
// statement.
type DeclStmt struct {
	SourceSpan source.Span
	Decl       Decl
}

func (s *DeclStmt) stmtNode()         {}
func (s *DeclStmt) Span() source.Span { return s.SourceSpan }

// Ret is a `ret [expr];` statement.
type Ret struct {
	SourceSpan source.Span
	Expr       Expr // nil for a bare `ret;`
}

func (s *Ret) stmtNode()         {}
func (s *Ret) Span() source.Span { return s.SourceSpan }
func (s *Ret) HasExpr() bool     { return s.Expr != nil }

// If is `if (cond) then [else else_]`.
type If struct {
	SourceSpan source.Span
	Cond       Expr
	Then       Stmt
	Else       Stmt // nil if no else clause
}

func (s *If) stmtNode()         {}
func (s *If) Span() source.Span { return s.SourceSpan }
func (s *If) HasElse() bool     { return s.Else != nil }

// While is `while (cond) [body]`.
type While struct {
	SourceSpan source.Span
	Cond       Expr
	Body       Stmt // nil for a bodyless while
}

func (s *While) stmtNode()         {}
func (s *While) Span() source.Span { return s.SourceSpan }
func (s *While) HasBody() bool     { return s.Body != nil }

// Break is legal only inside a While (spec §4.4).
type Break struct {
	SourceSpan source.Span
}

func (s *Break) stmtNode()         {}
func (s *Break) Span() source.Span { return s.SourceSpan }

// Continue is legal only inside a While (spec §4.4).
type Continue struct {
	SourceSpan source.Span
}

func (s *Continue) stmtNode()         {}
func (s *Continue) Span() source.Span { return s.SourceSpan }

// Asm is an inline-assembly statement: an instruction template plus its
// output, input, and clobber operand lists.
type Asm struct {
	SourceSpan source.Span
	Template   string
	Outs       []string
	Ins        []string
	Args       []Expr
	Clobbers   []string
}

func (s *Asm) stmtNode()         {}
func (s *Asm) Span() source.Span { return s.SourceSpan }
