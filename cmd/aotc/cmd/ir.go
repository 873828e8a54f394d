package cmd

import (
	"fmt"
	"os"

	"github.com/aotlang/aotc/internal/ast"
	"github.com/aotlang/aotc/internal/ir"
	"github.com/spf13/cobra"
)

var irCmd = &cobra.Command{
	Use:   "ir [patterns...]",
	Short: "Build a skeleton CFG from a checked translation unit and dump it",
	Long: `Parses, analyzes, and registers every function and variable
declaration onto a CFG (spec §3.6), then always dumps it as JSON; the
--print-ir option does not affect this subcommand. Bodies are not lowered — this subcommand exercises the
CFG's naming/registration surface, not a full AST-to-IR translation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIR,
}

func init() {
	rootCmd.AddCommand(irCmd)
}

func runIR(cmd *cobra.Command, args []string) error {
	files, err := expandPatterns(args)
	if err != nil {
		return err
	}

	failed := false
	for _, path := range files {
		u, err := parseUnit(path)
		if err != nil {
			exitWithError("%v", err)
			failed = true
			continue
		}
		analyzeUnit(u)
		if err := finish(u); err != nil {
			exitWithError("%v", err)
			failed = true
			continue
		}

		cfg := ir.NewCFG(u.in, u.bag)
		registerSignatures(cfg, u.tu)

		doc, err := cfg.Dump()
		if err != nil {
			exitWithError("%s: rendering IR: %v", path, err)
			failed = true
			continue
		}
		fmt.Fprintln(os.Stdout, string(doc))
	}
	if failed {
		return fmt.Errorf("ir failed")
	}
	return nil
}

// registerSignatures walks a checked translation unit's top-level
// declarations, registering every function's pooled signature type on
// cfg so the dump reports the unit's call surface.
func registerSignatures(cfg *ir.CFG, tu *ast.TranslationUnit) {
	if tu == nil {
		return
	}
	for _, d := range tu.Decls {
		switch n := d.(type) {
		case *ast.Function:
			cfg.AddFunction(n.Name, n.Type.Type)
		case *ast.Variable:
			cfg.AddGlobal(n.Name, n.Type)
		}
	}
}
