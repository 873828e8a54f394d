package cmd

import (
	"fmt"
	"os"

	"github.com/aotlang/aotc/internal/ast"
	"github.com/aotlang/aotc/internal/diag"
	"github.com/aotlang/aotc/internal/lexer"
	"github.com/aotlang/aotc/internal/parser"
	"github.com/aotlang/aotc/internal/sema"
	"github.com/aotlang/aotc/internal/types"
)

// unit bundles one translation unit's parsed/analyzed state, threaded
// between the parse/check/ir subcommands so each can start
// from wherever an earlier stage left off.
type unit struct {
	file string
	src  string
	bag  *diag.Bag
	in   *types.Interner
	tu   *ast.TranslationUnit
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// parseUnit runs the lexer and parser over path, recovering a fatal parse
// diagnostic rather than letting it escape — mirrors the pipeline
// driver's single recover point at each stage boundary (spec §5).
func parseUnit(path string) (*unit, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(path, src)
	bag.SetOutputStream(os.Stderr)
	in := types.NewInterner()
	lex := lexer.New(src, bag)
	p := parser.New(lex, bag, in, path)

	u := &unit{file: path, src: src, bag: bag, in: in}
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(*diag.Abort); !ok {
					panic(r)
				}
			}
		}()
		u.tu = p.Parse()
	}()
	return u, nil
}

// analyzeUnit runs symbol + semantic analysis over an already-parsed
// unit, recovering a fatal diagnostic the same way parseUnit does.
func analyzeUnit(u *unit) {
	if u.tu == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*diag.Abort); !ok {
				panic(r)
			}
		}
	}()
	sema.Analyze(u.tu, u.in, u.bag)
}

// finish flushes a unit's diagnostics and returns an error if the job
// failed, matching spec §6's exit-code contract (1 on any error-or-worse
// diagnostic).
func finish(u *unit) error {
	if u.bag.Flush() != 0 {
		return fmt.Errorf("%s: compilation failed", u.file)
	}
	return nil
}
