package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/viant/afs"
)

// Load builds an Options value by layering, in order: Defaults(), an
// optional YAML file (read through fs so the driver can point it at a
// local path, embedded FS, or remote URI without this package knowing
// which), then `.env`-style environment overrides. Each layer only
// overrides the fields it actually sets; an empty yamlPath or envFile
// skips that layer.
//
// Matches the teacher's layered-configuration convention: the pipeline
// itself only ever sees a fully resolved Options value, never the
// mechanism that produced it.
func Load(ctx context.Context, fs afs.Service, yamlPath, envFile string) (Options, error) {
	opts := Defaults()

	if yamlPath != "" {
		if err := loadYAML(ctx, fs, yamlPath, &opts); err != nil {
			return Options{}, fmt.Errorf("config: loading %s: %w", yamlPath, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Options{}, fmt.Errorf("config: loading %s: %w", envFile, err)
		}
	}
	applyEnv(&opts)

	resolveOpt(&opts)
	return opts, nil
}

func loadYAML(ctx context.Context, fs afs.Service, path string, opts *Options) error {
	data, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, opts)
}

// envPrefix namespaces every recognized Options field as an environment
// variable, so AOTC_THREADS/AOTC_DEBUG/... never collide with unrelated
// process environment.
const envPrefix = "AOTC_"

func applyEnv(opts *Options) {
	if v, ok := os.LookupEnv(envPrefix + "OUTPUT"); ok {
		opts.Output = v
	}
	if v, ok := os.LookupEnv(envPrefix + "OPT"); ok {
		opts.OptName = v
	}
	if v, ok := os.LookupEnv(envPrefix + "THREADS"); ok {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			opts.Threads = uint32(n)
		}
	}
	applyEnvBool(envPrefix+"DEBUG", &opts.Debug)
	applyEnvBool(envPrefix+"MULTITHREAD", &opts.Multithread)
	applyEnvBool(envPrefix+"TIME", &opts.Time)
	applyEnvBool(envPrefix+"VERBOSE", &opts.Verbose)
	applyEnvBool(envPrefix+"PRINT_TREE", &opts.PrintTree)
	applyEnvBool(envPrefix+"PRINT_IR", &opts.PrintIR)
}

func applyEnvBool(name string, dst *bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}

// resolveOpt maps OptName's textual form (set by YAML or environment
// overrides) onto the closed OptLevel enum, leaving the current Opt
// value untouched on an unrecognized name.
func resolveOpt(opts *Options) {
	if level, ok := optLevelNames[normalizeOptName(opts.OptName)]; ok {
		opts.Opt = level
	}
}

func normalizeOptName(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
