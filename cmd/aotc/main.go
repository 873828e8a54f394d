// Command aotc drives the ahead-of-time compiler core's pipeline stages
// (lex, parse, check, ir, regalloc) as standalone, debuggable steps.
package main

import (
	"os"

	"github.com/aotlang/aotc/cmd/aotc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
