// Package config loads and validates the buttond configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pieterm/buttonwatch/pkg/button"
	"github.com/pieterm/buttonwatch/pkg/display"
	"github.com/pieterm/buttonwatch/pkg/task"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Defaults.
const (
	DefaultIdlePeriod         = 5000 * time.Millisecond
	DefaultReceiversPerButton = 2
	DefaultObserversPerButton = 2
)

// Button binds a logical button name to an input pin.
type Button struct {
	Name string `yaml:"name"`
	Pin  string `yaml:"pin"`
}

// Display is the logical display size.
type Display struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config is the complete process configuration.
type Config struct {
	// Debounce is the quiet period after each accepted edge.
	Debounce time.Duration `yaml:"debounce"`

	// RenderPeriod is the redraw period of the render task.
	RenderPeriod time.Duration `yaml:"render_period"`

	// IdlePeriod is the heartbeat period of the idle loop.
	IdlePeriod time.Duration `yaml:"idle_period"`

	// ReceiversPerButton is the receiver capacity of each button's watch.
	ReceiversPerButton int `yaml:"receivers_per_button"`

	// ObserversPerButton is how many observers try to register per button.
	// Observers beyond ReceiversPerButton are refused at startup.
	ObserversPerButton int `yaml:"observers_per_button"`

	Buttons []Button `yaml:"buttons"`
	Display Display  `yaml:"display"`

	// Image is a BMP file to render. Empty means the embedded logo.
	Image string `yaml:"image,omitempty"`

	// FaultPolicy is "degraded" or "halt".
	FaultPolicy string `yaml:"fault_policy"`

	// TraceFile is the CBOR trace output path. Empty disables it.
	TraceFile string `yaml:"trace_file,omitempty"`
}

// Default returns the board's stock configuration.
func Default() *Config {
	return &Config{
		Debounce:           button.DefaultDebounce,
		RenderPeriod:       display.DefaultRenderPeriod,
		IdlePeriod:         DefaultIdlePeriod,
		ReceiversPerButton: DefaultReceiversPerButton,
		ObserversPerButton: DefaultObserversPerButton,
		Buttons: []Button{
			{Name: "button1", Pin: "GPIO35"},
			{Name: "button2", Pin: "GPIO0"},
		},
		Display: Display{
			Width:  display.DefaultWidth,
			Height: display.DefaultHeight,
		},
		FaultPolicy: task.FaultPolicyDegraded.String(),
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Debounce <= 0 {
		return fmt.Errorf("%w: debounce must be positive, got %s", ErrInvalidConfig, c.Debounce)
	}
	if c.RenderPeriod <= 0 {
		return fmt.Errorf("%w: render_period must be positive, got %s", ErrInvalidConfig, c.RenderPeriod)
	}
	if c.IdlePeriod <= 0 {
		return fmt.Errorf("%w: idle_period must be positive, got %s", ErrInvalidConfig, c.IdlePeriod)
	}
	if c.ReceiversPerButton < 1 {
		return fmt.Errorf("%w: receivers_per_button must be at least 1, got %d", ErrInvalidConfig, c.ReceiversPerButton)
	}
	if c.ObserversPerButton < 0 {
		return fmt.Errorf("%w: observers_per_button must not be negative, got %d", ErrInvalidConfig, c.ObserversPerButton)
	}
	if len(c.Buttons) == 0 {
		return fmt.Errorf("%w: at least one button is required", ErrInvalidConfig)
	}

	names := make(map[string]bool, len(c.Buttons))
	pins := make(map[string]bool, len(c.Buttons))
	for i, b := range c.Buttons {
		if b.Name == "" {
			return fmt.Errorf("%w: buttons[%d]: name is required", ErrInvalidConfig, i)
		}
		if b.Pin == "" {
			return fmt.Errorf("%w: button %s: pin is required", ErrInvalidConfig, b.Name)
		}
		if names[b.Name] {
			return fmt.Errorf("%w: duplicate button name %s", ErrInvalidConfig, b.Name)
		}
		if pins[b.Pin] {
			return fmt.Errorf("%w: pin %s used twice", ErrInvalidConfig, b.Pin)
		}
		names[b.Name] = true
		pins[b.Pin] = true
	}

	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: display size must be positive, got %dx%d",
			ErrInvalidConfig, c.Display.Width, c.Display.Height)
	}
	if _, err := task.ParseFaultPolicy(c.FaultPolicy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Policy returns the parsed fault policy. Call Validate first.
func (c *Config) Policy() task.FaultPolicy {
	p, _ := task.ParseFaultPolicy(c.FaultPolicy)
	return p
}

// Write encodes the configuration as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.document()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// document mirrors Config with durations as strings, which is how Parse
// accepts them.
func (c *Config) document() any {
	type doc struct {
		Debounce           string   `yaml:"debounce"`
		RenderPeriod       string   `yaml:"render_period"`
		IdlePeriod         string   `yaml:"idle_period"`
		ReceiversPerButton int      `yaml:"receivers_per_button"`
		ObserversPerButton int      `yaml:"observers_per_button"`
		Buttons            []Button `yaml:"buttons"`
		Display            Display  `yaml:"display"`
		Image              string   `yaml:"image,omitempty"`
		FaultPolicy        string   `yaml:"fault_policy"`
		TraceFile          string   `yaml:"trace_file,omitempty"`
	}
	return doc{
		Debounce:           c.Debounce.String(),
		RenderPeriod:       c.RenderPeriod.String(),
		IdlePeriod:         c.IdlePeriod.String(),
		ReceiversPerButton: c.ReceiversPerButton,
		ObserversPerButton: c.ObserversPerButton,
		Buttons:            c.Buttons,
		Display:            c.Display,
		Image:              c.Image,
		FaultPolicy:        c.FaultPolicy,
		TraceFile:          c.TraceFile,
	}
}
