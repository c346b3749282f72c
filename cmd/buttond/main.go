// Command buttond runs the button and display tasks on simulated
// peripherals.
//
// Two debounced buttons publish their state to observers that log every
// change, while a render task keeps a logo centered at the top of a
// 240x135 framebuffer. With -interactive, a console drives the simulated
// pins and inspects the running tasks.
//
// Usage:
//
//	buttond [flags]
//
// Flags:
//
//	-config string        Configuration file path (YAML)
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-log-format string    Log format: text, json (default "text")
//	-trace string         Trace file path (CBOR), overrides trace_file
//	-fault-policy string  Fault policy: degraded, halt, overrides fault_policy
//	-interactive          Start the interactive console
//	-print-config         Print the effective configuration and exit
//
// Examples:
//
//	# Start with the stock board configuration
//	buttond
//
//	# Press buttons by hand and record a trace
//	buttond -interactive -trace buttond.cbor
//
//	# Stop everything on the first hardware fault
//	buttond -config /etc/buttond.yaml -fault-policy halt
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/pieterm/buttonwatch/cmd/buttond/interactive"
	"github.com/pieterm/buttonwatch/pkg/app"
	"github.com/pieterm/buttonwatch/pkg/button"
	"github.com/pieterm/buttonwatch/pkg/config"
	"github.com/pieterm/buttonwatch/pkg/display"
	"github.com/pieterm/buttonwatch/pkg/gpio"
	tracelog "github.com/pieterm/buttonwatch/pkg/log"
)

// Flags holds the command-line settings.
type Flags struct {
	ConfigFile  string
	LogLevel    string
	LogFormat   string
	TraceFile   string
	FaultPolicy string
	Interactive bool
	PrintConfig bool
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.LogFormat, "log-format", "text", "Log format: text, json")
	flag.StringVar(&flags.TraceFile, "trace", "", "Trace file path (CBOR), overrides trace_file")
	flag.StringVar(&flags.FaultPolicy, "fault-policy", "", "Fault policy: degraded, halt, overrides fault_policy")
	flag.BoolVar(&flags.Interactive, "interactive", false, "Start the interactive console")
	flag.BoolVar(&flags.PrintConfig, "print-config", false, "Print the effective configuration and exit")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "buttond: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flags.PrintConfig {
		return cfg.Write(os.Stdout)
	}

	// Simulated board: one pull-up pin per button and a framebuffer.
	pins := make(map[string]*gpio.Pin, len(cfg.Buttons))
	fb := display.NewFramebuffer(cfg.Display.Width, cfg.Display.Height)
	board := app.Board{
		Inputs:  make(map[string]button.Input, len(cfg.Buttons)),
		Display: fb,
	}
	for _, b := range cfg.Buttons {
		pin := gpio.NewPin(b.Pin)
		pins[b.Name] = pin
		board.Inputs[b.Pin] = pin
	}

	var console *interactive.Console
	logOut := io.Writer(os.Stderr)
	if flags.Interactive {
		console, err = interactive.New(interactive.Peripherals{
			Pins:    pins,
			Display: fb,
			Hold:    4 * cfg.Debounce,
		})
		if err != nil {
			return err
		}
		logOut = console.Stdout()
	}

	logger, err := newLogger(logOut, flags.LogLevel, flags.LogFormat)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	sinks := []tracelog.Logger{}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		sinks = append(sinks, tracelog.NewSlogAdapter(logger))
	}
	if cfg.TraceFile != "" {
		fileLogger, err := tracelog.NewFileLogger(cfg.TraceFile)
		if err != nil {
			return fmt.Errorf("open trace file: %w", err)
		}
		defer func() {
			if n := fileLogger.Dropped(); n > 0 {
				logger.Warn("trace events dropped", "count", n)
			}
			fileLogger.Close()
		}()
		sinks = append(sinks, fileLogger)
	}
	trace := tracelog.NewStamper(tracelog.NewMultiLogger(sinks...), runID)

	logger.Info("buttond starting",
		"run_id", runID,
		"buttons", len(cfg.Buttons),
		"debounce", cfg.Debounce,
		"receivers_per_button", cfg.ReceiversPerButton,
		"fault_policy", cfg.FaultPolicy)

	a, err := app.New(cfg, board, app.Options{
		Logger: logger,
		Trace:  trace,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if console != nil {
		console.Attach(a)
		go console.Run(ctx, stop)
	}

	if err := a.Run(ctx); err != nil {
		return err
	}
	logger.Info("buttond stopped")
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flags.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(flags.ConfigFile); err != nil {
			return nil, err
		}
	}
	if flags.TraceFile != "" {
		cfg.TraceFile = flags.TraceFile
	}
	if flags.FaultPolicy != "" {
		cfg.FaultPolicy = flags.FaultPolicy
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (must be text or json)", format)
	}
}
