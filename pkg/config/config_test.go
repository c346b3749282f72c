package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pieterm/buttonwatch/pkg/task"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 3000*time.Millisecond, cfg.RenderPeriod)
	assert.Equal(t, 5000*time.Millisecond, cfg.IdlePeriod)
	assert.Equal(t, 2, cfg.ReceiversPerButton)
	assert.Equal(t, []Button{
		{Name: "button1", Pin: "GPIO35"},
		{Name: "button2", Pin: "GPIO0"},
	}, cfg.Buttons)
	assert.Equal(t, Display{Width: 240, Height: 135}, cfg.Display)
	assert.Equal(t, task.FaultPolicyDegraded, cfg.Policy())
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
debounce: 10ms
render_period: 1s
receivers_per_button: 3
fault_policy: halt
buttons:
  - name: left
    pin: GPIO12
`))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Millisecond, cfg.Debounce)
	assert.Equal(t, time.Second, cfg.RenderPeriod)
	assert.Equal(t, DefaultIdlePeriod, cfg.IdlePeriod)
	assert.Equal(t, 3, cfg.ReceiversPerButton)
	assert.Equal(t, []Button{{Name: "left", Pin: "GPIO12"}}, cfg.Buttons)
	assert.Equal(t, task.FaultPolicyHalt, cfg.Policy())
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("debounse: 5ms\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero debounce", func(c *Config) { c.Debounce = 0 }, "debounce"},
		{"negative render period", func(c *Config) { c.RenderPeriod = -time.Second }, "render_period"},
		{"zero idle period", func(c *Config) { c.IdlePeriod = 0 }, "idle_period"},
		{"no receivers", func(c *Config) { c.ReceiversPerButton = 0 }, "receivers_per_button"},
		{"negative observers", func(c *Config) { c.ObserversPerButton = -1 }, "observers_per_button"},
		{"no buttons", func(c *Config) { c.Buttons = nil }, "at least one button"},
		{"unnamed button", func(c *Config) { c.Buttons[0].Name = "" }, "name is required"},
		{"button without pin", func(c *Config) { c.Buttons[1].Pin = "" }, "pin is required"},
		{"duplicate name", func(c *Config) { c.Buttons[1].Name = "button1" }, "duplicate button name"},
		{"shared pin", func(c *Config) { c.Buttons[1].Pin = "GPIO35" }, "used twice"},
		{"empty display", func(c *Config) { c.Display.Width = 0 }, "display size"},
		{"bad policy", func(c *Config) { c.FaultPolicy = "retry" }, "unknown fault policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMoreObserversThanReceiversIsValid(t *testing.T) {
	cfg := Default()
	cfg.ObserversPerButton = 3
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buttond.yaml")
	require.NoError(t, os.WriteFile(path, []byte("idle_period: 250ms\ntrace_file: /tmp/t.cbor\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.IdlePeriod)
	assert.Equal(t, "/tmp/t.cbor", cfg.TraceFile)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debounce: 0s\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestWriteIsParseable(t *testing.T) {
	cfg := Default()
	cfg.Image = "logo.bmp"

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))
	assert.Contains(t, buf.String(), "debounce: 5ms")

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}
