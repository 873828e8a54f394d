package cmd

import (
	"fmt"
	"os"

	"github.com/aotlang/aotc/internal/ast"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [patterns...]",
	Short: "Parse and run symbol + semantic analysis",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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
		if opts.PrintTree && u.tu != nil {
			ast.Print(os.Stdout, u.tu)
		}
		if err := finish(u); err != nil {
			exitWithError("%v", err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("check failed")
	}
	return nil
}
