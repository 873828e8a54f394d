package cmd

import (
	"fmt"
	"os"

	"github.com/aotlang/aotc/internal/diag"
	"github.com/aotlang/aotc/internal/lexer"
	"github.com/aotlang/aotc/internal/token"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [patterns...]",
	Short: "Tokenize one or more source files",
	Long: `Tokenize source files and print the resulting token stream, one token
per line, as "kind(value) @line:col".

File arguments are glob patterns (e.g. "src/**/*.lc"), expanded with
doublestar so a single invocation can cover a whole tree.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	files, err := expandPatterns(args)
	if err != nil {
		return err
	}

	failed := false
	for _, path := range files {
		if err := lexFile(path); err != nil {
			exitWithError("%v", err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("lexing failed")
	}
	return nil
}

func lexFile(path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}

	bag := diag.NewBag(path, src)
	bag.SetOutputStream(os.Stderr)
	lex := lexer.New(src, bag)

	for {
		tok := lex.Lex()
		fmt.Printf("%s @%d:%d\n", tok.String(), tok.Loc.Line, tok.Loc.Col)
		if tok.Kind == token.EndOfFile {
			break
		}
	}

	if bag.Flush() != 0 {
		return fmt.Errorf("%s: lexing reported errors", path)
	}
	return nil
}

// expandPatterns glob-expands every argument with doublestar, matching
// cmd/aotc's worklist convention for taking a whole source tree in one
// invocation (e.g. "src/**/*.lc").
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			files = append(files, pattern)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}
