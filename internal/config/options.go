// Package config loads spec §6's Options collaborator: the settings the
// core pipeline reads (output name, pass budget, thread count, and the
// debug/verbose/print_tree/print_ir toggles) without ever parsing argv
// itself — that's cmd/aotc's job.
package config

// OptLevel is spec §6's closed optimization-budget enum: "opt:
// None|Few|Default|Many|Space → pass budget".
type OptLevel int

const (
	OptNone OptLevel = iota
	OptFew
	OptDefault
	OptMany
	OptSpace
)

var optLevelNames = map[string]OptLevel{
	"none": OptNone, "few": OptFew, "default": OptDefault,
	"many": OptMany, "space": OptSpace,
}

func (o OptLevel) String() string {
	for name, level := range optLevelNames {
		if level == o {
			return name
		}
	}
	return "default"
}

// Options mirrors spec §6's recognized settings table exactly:
// output, opt, threads, debug, multithread, time, verbose, print_tree,
// print_ir.
type Options struct {
	Output      string   `yaml:"output"`
	Opt         OptLevel `yaml:"-"`
	Threads     uint32   `yaml:"threads"`
	Debug       bool     `yaml:"debug"`
	Multithread bool     `yaml:"multithread"`
	Time        bool     `yaml:"time"`
	Verbose     bool     `yaml:"verbose"`
	PrintTree   bool     `yaml:"print_tree"`
	PrintIR     bool     `yaml:"print_ir"`

	// OptName backs Opt through YAML, since go-yaml decodes scalar node
	// text, not the OptLevel enum directly.
	OptName string `yaml:"opt"`
}

// Defaults returns the baseline Options a translation unit runs with
// absent any file or environment override: single-threaded, no debug
// metadata, the default pass budget.
func Defaults() Options {
	return Options{
		Threads: 1,
		Opt:     OptDefault,
		OptName: "default",
	}
}
