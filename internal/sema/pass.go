// Package sema implements the two analysis stages of spec §4.3/§4.4:
// symbol analysis (deferred-type resolution, then scope-based reference
// binding) and semantic analysis (type checking with implicit-cast
// insertion and control-flow validation).
//
// The Pass/PassManager shape is grounded on the teacher's
// internal/semantic/pass.go: a small ordered pipeline that stops early
// once a stage has recorded an error, rather than cascading into
// nonsensical downstream diagnostics.
package sema

import (
	"github.com/aotlang/aotc/internal/ast"
	"github.com/aotlang/aotc/internal/diag"
	"github.com/aotlang/aotc/internal/types"
)

// Pass is one stage of analysis over an already-parsed TranslationUnit.
type Pass interface {
	Name() string
	Run(tu *ast.TranslationUnit, in *types.Interner, bag *diag.Bag)
}

// PassManager runs passes in order, stopping after the first pass that
// leaves an error recorded in bag.
type PassManager struct {
	passes []Pass
}

// NewPassManager creates a manager running passes in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// Run executes every pass in order against tu, short-circuiting once bag
// has recorded an error.
func (pm *PassManager) Run(tu *ast.TranslationUnit, in *types.Interner, bag *diag.Bag) {
	for _, p := range pm.passes {
		pm.runPass(p, tu, in, bag)
		if bag.HasErrors() {
			return
		}
	}
}

// runPass recovers a *diag.Abort panic from a fatal diagnostic (spec §9:
// a single fatal path, caught at the pipeline stage boundary) so one bad
// pass doesn't crash passes after it; the diagnostic is already recorded
// in bag by the time it panics.
func (pm *PassManager) runPass(p Pass, tu *ast.TranslationUnit, in *types.Interner, bag *diag.Bag) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*diag.Abort); !ok {
				panic(r)
			}
		}
	}()
	p.Run(tu, in, bag)
}

// Analyze runs the standard two-stage pipeline (symbol analysis, then
// semantic analysis) over tu.
func Analyze(tu *ast.TranslationUnit, in *types.Interner, bag *diag.Bag) {
	pm := NewPassManager(&SymbolAnalysisPass{}, &SemanticAnalysisPass{})
	pm.Run(tu, in, bag)
}
