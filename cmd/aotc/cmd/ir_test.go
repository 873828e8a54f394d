package cmd

import (
	"testing"

	"github.com/aotlang/aotc/internal/ir"
)

func TestRegisterSignaturesRegistersFunctionsAndGlobals(t *testing.T) {
	path := writeTemp(t, "prog.src", `
count :: s64 = 0;

add :: (a: s64, b: s64) -> s64 {
	ret a + b;
};
`)
	u, err := parseUnit(path)
	if err != nil {
		t.Fatalf("parseUnit: %v", err)
	}
	analyzeUnit(u)
	if u.bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", u.bag.Entries())
	}

	cfg := ir.NewCFG(u.in, u.bag)
	registerSignatures(cfg, u.tu)

	if _, ok := cfg.Function("add"); !ok {
		t.Fatalf("expected add to be registered as a function")
	}
	found := false
	for _, g := range cfg.Globals() {
		if g.Name == "count" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected count to be registered as a global")
	}
}
