package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/mergesim/market"
	"github.com/katalvlaran/mergesim/seedseq"
	"github.com/katalvlaran/mergesim/variates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mergesim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadFull(t *testing.T) {
	t.Setenv("MERGESIM_TEST_LEVEL", "debug")
	cfg, err := LoadAndValidate(filepath.Join("testdata", "mnl.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Sample.SampleSize)
	assert.Equal(t, market.ShareDirFlat, cfg.Sample.Shares.Dist)
	assert.Equal(t, market.RecaptureInsideOut, cfg.Sample.Shares.Recapture)
	assert.Equal(t, []float64{5, 4, 3, 2, 1}, cfg.Sample.Shares.FirmCountWeights)
	assert.Equal(t, market.MarginBeta, cfg.Sample.Margins.Dist)
	assert.Equal(t, market.Firm2MNL, cfg.Sample.Margins.Firm2)
	assert.Equal(t, []uint64{11, 12, 13}, cfg.Run.Seeds)
	assert.Equal(t, 4, cfg.Run.Threads)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.level())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadAndValidate(filepath.Join("testdata", "minimal.yaml"))
	require.NoError(t, err)

	want := market.DefaultSampleSpec()
	want.SampleSize = 2000
	assert.Equal(t, want, cfg.Sample)
	assert.Equal(t, variates.DefaultThreads, cfg.Run.Threads)
	assert.Equal(t, variates.DefaultChunkRows, cfg.Run.ChunkRows)
	assert.Equal(t, "pcg", cfg.Run.Generator)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Nil(t, cfg.Run.seedPools())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MERGESIM_THREADS", "3")
	t.Setenv("MERGESIM_LOG_LEVEL", "WARN")
	cfg, err := LoadAndValidate(filepath.Join("testdata", "minimal.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Run.Threads)
	assert.Equal(t, "warn", cfg.Logging.Level)

	t.Setenv("MERGESIM_THREADS", "many")
	_, err = LoadAndValidate(filepath.Join("testdata", "minimal.yaml"))
	require.Error(t, err)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown enum", "sample:\n  shares:\n    dist: lognormal\n", "ShareDist"},
		{"bad generator", "run:\n  generator: xorshift\n", "Config.Run.Generator"},
		{"bad format", "logging:\n  format: xml\n", "Config.Logging.Format"},
		{"negative threads", "run:\n  threads: -2\n", "Config.Run.Threads"},
		{"incompatible", "sample:\n  shares:\n    recapture: outside-in\n", "Shares.Recapture"},
		{"not yaml", "sample: [", "parse config yaml"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadAndValidate(writeConfig(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	_, err := LoadAndValidate(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read config file")
}

func TestSeedPools(t *testing.T) {
	rc := RunConfig{Seeds: []uint64{1, 2}, Generator: "mt19937"}
	pools := rc.seedPools()
	require.Len(t, pools, 2)
	assert.Equal(t, seedseq.MT19937, pools[0].Generator())
	assert.Equal(t, seedseq.New(2).Entropy(), pools[1].Entropy())
}
