package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "lrucache.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
[Log]
Verbosity = "debug"

[Bench]
Capacity = 512
Shards = 1
Duration = "250ms"
`), 0o600))

	c := defaultConfig()
	require.NoError(t, loadConfig(file, &c))
	require.Equal(t, "debug", c.Log.Verbosity)
	require.Equal(t, 512, c.Bench.Capacity)
	require.Equal(t, 1, c.Bench.Shards)
	require.Equal(t, 80, c.Bench.ReadPct, "unset fields keep defaults")

	d, err := c.Bench.duration()
	require.NoError(t, err)
	require.Equal(t, "250ms", d.String())
}

func TestLoadConfig_UnknownField(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(file, []byte("[Bench]\nPolicy = \"2q\"\n"), 0o600))

	c := defaultConfig()
	err := loadConfig(file, &c)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Policy")
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l, err := newLogger(&buf, logConfig{Verbosity: "warn", JSON: true})
	require.NoError(t, err)
	l.Info("dropped")
	l.Warn("kept", "k", 1)
	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), `"msg":"kept"`)

	_, err = newLogger(&buf, logConfig{Verbosity: "loud"})
	require.Error(t, err)
}

func TestBenchConfigValidate(t *testing.T) {
	t.Parallel()

	bc := defaultConfig().Bench
	require.NoError(t, bc.validate())

	bad := bc
	bad.ReadPct = 101
	require.Error(t, bad.validate())

	bad = bc
	bad.ZipfS = 1
	require.Error(t, bad.validate())
}

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runDemo(&out, demoConfig{PerfCapacity: 10, PerfOps: 100}))

	s := out.String()
	require.Contains(t, s, "=== Test 1: basic operations ===")
	require.Contains(t, s, "Most Recent -> Least Recent:\n(3:3) -> (1:1)\n")
	require.Contains(t, s, "Cache is empty")
	require.Contains(t, s, "get(2): miss")
	require.Equal(t, 7, strings.Count(s, "=== Test "))
}

func TestRunBench_Short(t *testing.T) {
	if testing.Short() {
		t.Skip("runs a timed workload")
	}
	bc := defaultConfig().Bench
	bc.Capacity = 1000
	bc.Keys = 5000
	bc.Workers = 2
	bc.Duration = "50ms"
	bc.MetricsAddr = ""
	bc.Seed = 1

	var out bytes.Buffer
	require.NoError(t, runBench(t.Context(), &out, bc))
	require.Contains(t, out.String(), "Cap()=1000")
}
