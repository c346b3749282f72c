package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pieterm/buttonwatch/pkg/config"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger(&buf, "debug", "json")
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	logger.Info("main loop")
	assert.Contains(t, buf.String(), `"msg":"main loop"`)

	logger, err = newLogger(&buf, "warn", "TEXT")
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))

	_, err = newLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = newLogger(&buf, "info", "xml")
	assert.Error(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buttond.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debounce: 8ms\nfault_policy: degraded\n"), 0o644))

	saved := flags
	t.Cleanup(func() { flags = saved })

	flags = Flags{ConfigFile: path, TraceFile: "run.cbor", FaultPolicy: "halt"}
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "run.cbor", cfg.TraceFile)
	assert.Equal(t, "halt", cfg.FaultPolicy)

	flags = Flags{FaultPolicy: "sometimes"}
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	saved := flags
	t.Cleanup(func() { flags = saved })

	flags = Flags{ConfigFile: "buttond.example.yaml"}
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
