package cmd

import (
	"fmt"
	"os"

	"github.com/aotlang/aotc/internal/ast"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [patterns...]",
	Short: "Parse source files into an AST",
	Long: `Parse each file into a TranslationUnit. With --print-tree (global
flag), also dump the resulting AST.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
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
		if opts.PrintTree && u.tu != nil {
			ast.Print(os.Stdout, u.tu)
		}
		if err := finish(u); err != nil {
			exitWithError("%v", err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("parsing failed")
	}
	return nil
}
