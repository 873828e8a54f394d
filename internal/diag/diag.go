// Package diag implements the Diagnostics collaborator described in spec
// §6/§7: info/warn/error/fatal reporting against an optional source
// location or span, with a stable "errors seen" flag and a single fatal
// path (the original's Location/Span-overloaded logger is collapsed here
// into one Bag type that is threaded explicitly through the pipeline
// instead of living as process-global state, per spec §9 DESIGN NOTES).
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aotlang/aotc/internal/source"
)

// Kind is the closed error taxonomy of spec §7.
type Kind int

const (
	KindNote Kind = iota
	KindWarn
	KindLex
	KindParse
	KindUnresolvedName
	KindTypeMismatch
	KindInvalidCast
	KindControlContext
	KindNameConflict
	KindAllocFailure
)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindWarn:
		return "warning"
	case KindLex:
		return "lex error"
	case KindParse:
		return "parse error"
	case KindUnresolvedName:
		return "unresolved name"
	case KindTypeMismatch:
		return "type mismatch"
	case KindInvalidCast:
		return "invalid cast"
	case KindControlContext:
		return "control-flow error"
	case KindNameConflict:
		return "name conflict"
	case KindAllocFailure:
		return "allocation failure"
	default:
		return "error"
	}
}

// Severity classifies how a diagnostic affects pipeline flow.
type Severity int

const (
	SevNote Severity = iota
	SevWarn
	SevError
	SevFatal
)

// Diagnostic is a single reported message, optionally located.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	File     string
	HasLoc   bool
	Loc      source.Loc
	HasSpan  bool
	Span     source.Span
}

// Abort is the panic value used to unwind out of a fatal diagnostic. A
// single recover point per translation unit (the pipeline driver) turns it
// back into a normal, reported failure instead of crashing the process;
// this is the "single fatal path" called for in spec §9, replacing the
// original's fatal-calls-error-then-exit double bookkeeping.
type Abort struct {
	Diagnostic Diagnostic
}

func (a *Abort) Error() string { return a.Diagnostic.Message }

// Bag collects diagnostics for one translation unit and tracks whether any
// error-or-worse diagnostic has been seen.
type Bag struct {
	File    string
	Source  string
	entries []Diagnostic
	seen    bool
	out     io.Writer

	color        bool
	contextLines int
}

// NewBag creates an empty Bag for the given file and source text. Source is
// used only to render caret excerpts; it may be empty.
func NewBag(file, src string) *Bag {
	return &Bag{File: file, Source: src, out: os.Stderr}
}

// SetOutputStream changes where Flush renders to. A nil writer disables
// rendering (diagnostics are still recorded).
func (b *Bag) SetOutputStream(w io.Writer) { b.out = w }

// ClearOutputStream disables rendering until SetOutputStream is called
// again.
func (b *Bag) ClearOutputStream() { b.out = nil }

// SetColor toggles ANSI color codes in Flush's rendering (mirrors the
// teacher's CompilerError.Format(color bool) parameter).
func (b *Bag) SetColor(enabled bool) { b.color = enabled }

// SetContextLines sets how many source lines of context Flush renders
// around each diagnostic's line via FormatWithContext. Zero (the default)
// renders a single line through Format instead.
func (b *Bag) SetContextLines(n int) { b.contextLines = n }

func (b *Bag) add(d Diagnostic) {
	b.entries = append(b.entries, d)
	if d.Severity >= SevError {
		b.seen = true
	}
}

// Note records an informational diagnostic.
func (b *Bag) Note(msg string) { b.add(Diagnostic{Severity: SevNote, Kind: KindNote, Message: msg, File: b.File}) }

// NoteAt records an informational diagnostic at a location.
func (b *Bag) NoteAt(msg string, loc source.Loc) {
	b.add(Diagnostic{Severity: SevNote, Kind: KindNote, Message: msg, File: b.File, HasLoc: true, Loc: loc})
}

// Warn records a warning.
func (b *Bag) Warn(msg string) { b.add(Diagnostic{Severity: SevWarn, Kind: KindWarn, Message: msg, File: b.File}) }

// WarnAt records a warning at a location.
func (b *Bag) WarnAt(msg string, loc source.Loc) {
	b.add(Diagnostic{Severity: SevWarn, Kind: KindWarn, Message: msg, File: b.File, HasLoc: true, Loc: loc})
}

// Error records a recoverable error of the given kind.
func (b *Bag) Error(kind Kind, msg string) {
	b.add(Diagnostic{Severity: SevError, Kind: kind, Message: msg, File: b.File})
}

// ErrorAt records a recoverable error at a location.
func (b *Bag) ErrorAt(kind Kind, msg string, loc source.Loc) {
	b.add(Diagnostic{Severity: SevError, Kind: kind, Message: msg, File: b.File, HasLoc: true, Loc: loc})
}

// ErrorSpan records a recoverable error across a span.
func (b *Bag) ErrorSpan(kind Kind, msg string, span source.Span) {
	b.add(Diagnostic{Severity: SevError, Kind: kind, Message: msg, File: b.File, HasSpan: true, Span: span})
}

// Fatal records a fatal diagnostic and unwinds the current pipeline stage
// via panic(*Abort). Callers at a stage boundary must recover it.
func (b *Bag) Fatal(kind Kind, msg string) {
	d := Diagnostic{Severity: SevFatal, Kind: kind, Message: msg, File: b.File}
	b.add(d)
	panic(&Abort{Diagnostic: d})
}

// FatalAt is Fatal with a location attached.
func (b *Bag) FatalAt(kind Kind, msg string, loc source.Loc) {
	d := Diagnostic{Severity: SevFatal, Kind: kind, Message: msg, File: b.File, HasLoc: true, Loc: loc}
	b.add(d)
	panic(&Abort{Diagnostic: d})
}

// FatalSpan is Fatal with a span attached.
func (b *Bag) FatalSpan(kind Kind, msg string, span source.Span) {
	d := Diagnostic{Severity: SevFatal, Kind: kind, Message: msg, File: b.File, HasSpan: true, Span: span}
	b.add(d)
	panic(&Abort{Diagnostic: d})
}

// HasErrors reports whether any error-or-worse diagnostic has been seen.
func (b *Bag) HasErrors() bool { return b.seen }

// Entries returns every diagnostic recorded so far, in report order.
func (b *Bag) Entries() []Diagnostic { return b.entries }

// Flush renders every diagnostic to the configured output stream (if any)
// and returns the process exit code spec §6 prescribes: 1 if any
// error-or-worse diagnostic was seen, 0 otherwise.
func (b *Bag) Flush() int {
	if b.out != nil {
		for _, d := range b.entries {
			if b.contextLines > 0 {
				fmt.Fprintln(b.out, FormatWithContext(d, b.Source, b.contextLines, b.color))
			} else {
				fmt.Fprintln(b.out, Format(d, b.Source, b.color))
			}
		}
	}
	if b.seen {
		return 1
	}
	return 0
}

// ANSI codes, matching the teacher's internal/errors.CompilerError.Format
// exactly: bold message text, bold-red caret, dim context lines.
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiBoldRed = "\033[1;31m"
	ansiDim     = "\033[2m"
)

func wrapColor(s, code string, color bool) string {
	if !color {
		return s
	}
	return code + s + ansiReset
}

// diagnosticLoc picks a diagnostic's reporting location, preferring the
// start of a span over a bare location.
func diagnosticLoc(d Diagnostic) (source.Loc, bool) {
	if d.HasSpan {
		return d.Span.Start, true
	}
	if d.HasLoc {
		return d.Loc, true
	}
	return source.Loc{}, false
}

// Format renders a single diagnostic as a human-readable line, with a
// caret-pointed source excerpt when both a location and source text are
// available. If color is true, the message and caret are wrapped in ANSI
// codes (mirrors the teacher's CompilerError.Format(color bool)).
func Format(d Diagnostic, src string, color bool) string {
	var sb strings.Builder

	loc, hasLoc := diagnosticLoc(d)

	if d.File != "" && hasLoc {
		fmt.Fprintf(&sb, "%s:%s: %s: %s", d.File, loc, d.Severity, wrapColor(d.Message, ansiBold, color))
	} else if hasLoc {
		fmt.Fprintf(&sb, "%s: %s: %s", loc, d.Severity, wrapColor(d.Message, ansiBold, color))
	} else {
		fmt.Fprintf(&sb, "%s: %s", d.Severity, wrapColor(d.Message, ansiBold, color))
	}

	if hasLoc && src != "" {
		lines := strings.Split(src, "\n")
		if int(loc.Line) >= 1 && int(loc.Line) <= len(lines) {
			line := lines[loc.Line-1]
			sb.WriteString("\n  ")
			sb.WriteString(line)
			sb.WriteString("\n  ")
			if loc.Col >= 1 {
				sb.WriteString(strings.Repeat(" ", int(loc.Col-1)))
			}
			sb.WriteString(wrapColor("^", ansiBoldRed, color))
		}
	}

	return sb.String()
}

// FormatWithContext renders a diagnostic the way Format does, but surrounds
// its source line with contextLines of additional lines on either side
// (dimmed when color is set), mirroring the teacher's
// CompilerError.FormatWithContext. Falls back to Format when there is no
// location or no source text to draw context from.
func FormatWithContext(d Diagnostic, src string, contextLines int, color bool) string {
	loc, hasLoc := diagnosticLoc(d)
	if !hasLoc || src == "" {
		return Format(d, src, color)
	}

	lines := strings.Split(src, "\n")
	if int(loc.Line) < 1 || int(loc.Line) > len(lines) {
		return Format(d, src, color)
	}

	var sb strings.Builder
	if d.File != "" {
		fmt.Fprintf(&sb, "%s:%s: %s: %s\n", d.File, loc, d.Severity, wrapColor(d.Message, ansiBold, color))
	} else {
		fmt.Fprintf(&sb, "%s: %s: %s\n", loc, d.Severity, wrapColor(d.Message, ansiBold, color))
	}

	start := int(loc.Line) - contextLines
	if start < 1 {
		start = 1
	}
	end := int(loc.Line) + contextLines
	if end > len(lines) {
		end = len(lines)
	}

	for n := start; n <= end; n++ {
		lineNumStr := fmt.Sprintf("%4d | ", n)
		line := lines[n-1]
		if n == int(loc.Line) {
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)))
			if loc.Col >= 1 {
				sb.WriteString(strings.Repeat(" ", int(loc.Col-1)))
			}
			sb.WriteString(wrapColor("^", ansiBoldRed, color))
			sb.WriteString("\n")
		} else {
			sb.WriteString(wrapColor(lineNumStr+line, ansiDim, color))
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "note"
	case SevWarn:
		return "warning"
	case SevError:
		return "error"
	case SevFatal:
		return "fatal error"
	default:
		return "error"
	}
}
