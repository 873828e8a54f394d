package diag

import (
	"strings"
	"testing"

	"github.com/aotlang/aotc/internal/source"
)

func TestBagHasErrors(t *testing.T) {
	b := NewBag("f.lc", "")
	if b.HasErrors() {
		t.Fatalf("fresh bag should have no errors")
	}
	b.Warn("just a warning")
	if b.HasErrors() {
		t.Fatalf("warnings must not flip HasErrors")
	}
	b.ErrorAt(KindTypeMismatch, "bad types", source.Loc{Line: 1, Col: 1})
	if !b.HasErrors() {
		t.Fatalf("an Error-level diagnostic must flip HasErrors")
	}
}

func TestBagFlushExitCode(t *testing.T) {
	b := NewBag("f.lc", "")
	b.ClearOutputStream()
	if code := b.Flush(); code != 0 {
		t.Fatalf("Flush() = %d, want 0", code)
	}
	b.Error(KindNameConflict, "dup")
	if code := b.Flush(); code != 1 {
		t.Fatalf("Flush() = %d, want 1", code)
	}
}

func TestFatalPanicsAbort(t *testing.T) {
	b := NewBag("f.lc", "")
	defer func() {
		r := recover()
		abort, ok := r.(*Abort)
		if !ok {
			t.Fatalf("expected *Abort panic, got %#v", r)
		}
		if abort.Diagnostic.Kind != KindUnresolvedName {
			t.Fatalf("unexpected kind: %v", abort.Diagnostic.Kind)
		}
	}()
	b.FatalAt(KindUnresolvedName, "unresolved: y", source.Loc{Line: 3, Col: 8})
	t.Fatalf("unreachable")
}

func TestFormatIncludesCaret(t *testing.T) {
	src := "let x = y;\n"
	d := Diagnostic{
		Severity: SevError,
		Kind:     KindUnresolvedName,
		Message:  "unresolved: y",
		File:     "f.lc",
		HasLoc:   true,
		Loc:      source.Loc{Line: 1, Col: 9},
	}
	out := Format(d, src, false)
	if !strings.Contains(out, "unresolved: y") {
		t.Fatalf("expected message in output: %s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret in output: %s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Fatalf("expected no ANSI codes with color=false: %s", out)
	}
}

func TestFormatColorAddsANSICodes(t *testing.T) {
	src := "let x = y;\n"
	d := Diagnostic{
		Severity: SevError,
		Kind:     KindUnresolvedName,
		Message:  "unresolved: y",
		File:     "f.lc",
		HasLoc:   true,
		Loc:      source.Loc{Line: 1, Col: 9},
	}
	out := Format(d, src, true)
	if !strings.Contains(out, "\033[") {
		t.Fatalf("expected ANSI codes with color=true: %s", out)
	}
}

func TestFormatWithContextShowsSurroundingLines(t *testing.T) {
	src := "a\nb\nc := d;\ne\nf\n"
	d := Diagnostic{
		Severity: SevError,
		Kind:     KindUnresolvedName,
		Message:  "unresolved: d",
		File:     "f.lc",
		HasLoc:   true,
		Loc:      source.Loc{Line: 3, Col: 6},
	}
	out := FormatWithContext(d, src, 1, false)
	for _, want := range []string{"b\n", "c := d;", "4 | e"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected context to contain %q, got:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret in output: %s", out)
	}
}

func TestFormatWithContextFallsBackWithoutSource(t *testing.T) {
	d := Diagnostic{Severity: SevError, Kind: KindUnresolvedName, Message: "unresolved: y"}
	out := FormatWithContext(d, "", 2, false)
	if !strings.Contains(out, "unresolved: y") {
		t.Fatalf("expected message in fallback output: %s", out)
	}
}

func TestBagFlushUsesContextLinesWhenSet(t *testing.T) {
	var buf strings.Builder
	b := NewBag("f.lc", "a\nb := c;\nd\n")
	b.SetOutputStream(&buf)
	b.SetContextLines(1)
	b.ErrorAt(KindUnresolvedName, "unresolved: c", source.Loc{Line: 2, Col: 6})
	b.Flush()
	if !strings.Contains(buf.String(), "a\n") || !strings.Contains(buf.String(), "d\n") {
		t.Fatalf("expected context lines around the error in Flush output: %s", buf.String())
	}
}

func TestBagJSONRoundTrips(t *testing.T) {
	b := NewBag("f.lc", "")
	b.ErrorAt(KindTypeMismatch, "bad types", source.Loc{Line: 2, Col: 3})
	b.Warn("heads up")
	doc, err := b.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if got := CountSeverityJSON(doc, "error"); got != 1 {
		t.Fatalf("CountSeverityJSON(error) = %d, want 1", got)
	}
	if got := CountSeverityJSON(doc, "warning"); got != 1 {
		t.Fatalf("CountSeverityJSON(warning) = %d, want 1", got)
	}
}
