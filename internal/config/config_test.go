package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestDefaultsAreSingleThreadedWithDefaultOptBudget(t *testing.T) {
	opts := Defaults()
	assert.Equal(t, uint32(1), opts.Threads)
	assert.Equal(t, OptDefault, opts.Opt)
	assert.False(t, opts.Debug)
}

func TestLoadAppliesYAMLFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aotc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threads: 4\ndebug: true\nopt: many\n"), 0o644))

	opts, err := Load(context.Background(), afs.New(), path, "")
	require.NoError(t, err)
	assert.Equal(t, uint32(4), opts.Threads)
	assert.True(t, opts.Debug)
	assert.Equal(t, OptMany, opts.Opt)
}

func TestLoadWithNoFileKeepsDefaults(t *testing.T) {
	opts, err := Load(context.Background(), afs.New(), "", "")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Threads, opts.Threads)
	assert.Equal(t, Defaults().Opt, opts.Opt)
}

func TestEnvOverridesTakePrecedenceOverYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aotc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threads: 4\n"), 0o644))

	t.Setenv("AOTC_THREADS", "8")
	t.Setenv("AOTC_VERBOSE", "true")

	opts, err := Load(context.Background(), afs.New(), path, "")
	require.NoError(t, err)
	assert.Equal(t, uint32(8), opts.Threads)
	assert.True(t, opts.Verbose)
}
