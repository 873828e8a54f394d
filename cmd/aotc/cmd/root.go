package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/aotlang/aotc/internal/config"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
)

var (
	Version = "0.1.0-dev"

	configPath string
	envFile    string
	opts       config.Options
)

var rootCmd = &cobra.Command{
	Use:   "aotc",
	Short: "Ahead-of-time compiler core for the source language",
	Long: `aotc drives the compiler core's pipeline stages — lex, parse, check,
ir, regalloc — each runnable standalone for debugging a single stage
without running the whole pipeline.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(context.Background(), afs.New(), configPath, envFile)
		if err != nil {
			return err
		}
		opts = loaded

		if v, _ := cmd.Flags().GetBool("verbose"); v {
			opts.Verbose = true
		}
		if v, _ := cmd.Flags().GetBool("debug"); v {
			opts.Debug = true
		}
		if v, _ := cmd.Flags().GetBool("print-tree"); v {
			opts.PrintTree = true
		}
		if v, _ := cmd.Flags().GetBool("print-ir"); v {
			opts.PrintIR = true
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
`))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML options file (local path, embedded FS, or remote URI)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", ".env-style overrides file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "retain source positions through IR")
	rootCmd.PersistentFlags().Bool("print-tree", false, "dump the parsed AST")
	rootCmd.PersistentFlags().Bool("print-ir", false, "dump the lowered IR as JSON")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+msg+"\n", args...)
}
