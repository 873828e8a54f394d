// Package ast defines the tagged-sum AST of spec §3.5: three disjoint node
// families — Decl, Stmt, Expr — each a closed set of concrete struct types
// behind a marker interface. Analysis passes dispatch with a type switch
// over the concrete type, not a virtual visitor (spec §9 DESIGN NOTES).
//
// Each family's concrete types double as scope.NamedDecl where the
// declaration introduces a name: they satisfy it structurally (a DeclName
// method), so this package never imports internal/scope and the ownership
// graph stays acyclic.
package ast

import (
	"github.com/aotlang/aotc/internal/source"
	"github.com/aotlang/aotc/internal/types"
)

// Decl is any declaration node.
type Decl interface {
	declNode()
	Span() source.Span
}

// ValueDecl is a Decl that introduces a named value: its Type is what a
// DeclRef binds to (spec §4.3 Pass 2).
type ValueDecl interface {
	Decl
	DeclName() string
	DeclType() types.QualType
}

// TypeDecl is a Decl that introduces a named type: symbol analysis Pass 1
// requires a Deferred type's name to resolve to one of these (spec §4.3).
type TypeDecl interface {
	Decl
	DeclName() string
	ResolvedType() *types.Type
}

// TranslationUnit is the root of one parsed source file.
type TranslationUnit struct {
	File  string
	Scope any // *scope.Scope; untyped here to avoid an import cycle
	Decls []Decl
}

func (d *TranslationUnit) declNode()          {}
func (d *TranslationUnit) Span() source.Span  { return source.Span{} }

// Load is a `load "path";` declaration pulling in another translation unit.
type Load struct {
	SourceSpan source.Span
	Path       string
}

func (d *Load) declNode()         {}
func (d *Load) Span() source.Span { return d.SourceSpan }

// Variable is a `name :: Type [= expr];` declaration, at file scope or
// inside a block.
type Variable struct {
	SourceSpan source.Span
	Name       string
	Runes      []Rune
	Type       types.QualType
	Init       Expr // nil if no initializer
}

func (d *Variable) declNode()           {}
func (d *Variable) Span() source.Span   { return d.SourceSpan }
func (d *Variable) DeclName() string    { return d.Name }
func (d *Variable) DeclType() types.QualType { return d.Type }
func (d *Variable) HasInit() bool       { return d.Init != nil }

// Parameter is one function parameter.
type Parameter struct {
	SourceSpan source.Span
	Name       string
	Type       types.QualType
}

func (d *Parameter) declNode()               {}
func (d *Parameter) Span() source.Span       { return d.SourceSpan }
func (d *Parameter) DeclName() string        { return d.Name }
func (d *Parameter) DeclType() types.QualType { return d.Type }

// Function is `name :: (params) -> ret { body }` or, with no body, a
// forward declaration terminated by `;`.
type Function struct {
	SourceSpan source.Span
	Name       string
	Runes      []Rune
	Type       types.QualType // Function type: params + return
	ReturnType types.QualType // the return type's own qualifier (spec §8
	                          // scenario 4: "mut *mut void" — the pooled
	                          // Function type's Return is unqualified, so
	                          // the surface qualifier is kept here)
	Scope  any // *scope.Scope for the parameter/body scope
	Params []*Parameter
	Body   *Block // nil for a forward declaration
}

func (d *Function) declNode()                {}
func (d *Function) Span() source.Span        { return d.SourceSpan }
func (d *Function) DeclName() string         { return d.Name }
func (d *Function) DeclType() types.QualType { return d.Type }
func (d *Function) HasBody() bool            { return d.Body != nil }

// Field is one struct member.
type Field struct {
	SourceSpan source.Span
	Name       string
	Runes      []Rune
	Type       types.QualType
}

func (d *Field) declNode()                {}
func (d *Field) Span() source.Span        { return d.SourceSpan }
func (d *Field) DeclName() string         { return d.Name }
func (d *Field) DeclType() types.QualType { return d.Type }

// Variant is one enum member, with its resolved i64 value (spec §8
// scenario 3: auto-increment, explicit values, negative values).
type Variant struct {
	SourceSpan source.Span
	Name       string
	Runes      []Rune
	Type       types.QualType // the enclosing enum's underlying type
	Value      int64
}

func (d *Variant) declNode()                {}
func (d *Variant) Span() source.Span        { return d.SourceSpan }
func (d *Variant) DeclName() string         { return d.Name }
func (d *Variant) DeclType() types.QualType { return d.Type }

// Alias introduces a named alternative spelling for an existing type. The
// parser never constructs one: `name :: Type;` parses as a Variable.
type Alias struct {
	SourceSpan source.Span
	Name       string
	Runes      []Rune
	Underlying *types.Type
}

func (d *Alias) declNode()                    {}
func (d *Alias) Span() source.Span            { return d.SourceSpan }
func (d *Alias) DeclName() string             { return d.Name }
func (d *Alias) ResolvedType() *types.Type    { return d.Underlying }

// Struct declares an aggregate type with named, typed fields.
type Struct struct {
	SourceSpan source.Span
	Name       string
	Runes      []Rune
	Fields     []*Field
	Type       *types.Type // the canonical Struct type interned for Name
}

func (d *Struct) declNode()                 {}
func (d *Struct) Span() source.Span         { return d.SourceSpan }
func (d *Struct) DeclName() string          { return d.Name }
func (d *Struct) ResolvedType() *types.Type { return d.Type }

// Enum declares a closed set of named integer variants over an underlying
// primitive (defaulting to s64 per spec §8 scenario 3).
type Enum struct {
	SourceSpan source.Span
	Name       string
	Runes      []Rune
	Underlying *types.Type
	Variants   []*Variant
	Type       *types.Type // the canonical Enum type interned for Name
}

func (d *Enum) declNode()                 {}
func (d *Enum) Span() source.Span         { return d.SourceSpan }
func (d *Enum) DeclName() string          { return d.Name }
func (d *Enum) ResolvedType() *types.Type { return d.Type }
