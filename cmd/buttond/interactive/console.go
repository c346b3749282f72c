// Package interactive provides the interactive command-line interface
// for buttond.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/jonboulle/clockwork"

	"github.com/pieterm/buttonwatch/pkg/app"
	"github.com/pieterm/buttonwatch/pkg/display"
	"github.com/pieterm/buttonwatch/pkg/gpio"
)

// Peripherals are the simulated devices the console can drive.
type Peripherals struct {
	// Pins maps button names to their simulated input pins.
	Pins map[string]*gpio.Pin

	Display *display.Framebuffer

	// Hold is how long "click" keeps a button down.
	Hold time.Duration

	// Clock paces "click". Nil means the real clock.
	Clock clockwork.Clock
}

// Console handles interactive mode for buttond.
type Console struct {
	periph Peripherals
	app    *app.App
	rl     *readline.Instance
}

// New creates a console. Call Attach before Run.
func New(periph Peripherals) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "buttond> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return newConsole(periph, rl), nil
}

func newConsole(periph Peripherals, rl *readline.Instance) *Console {
	if periph.Hold <= 0 {
		periph.Hold = 50 * time.Millisecond
	}
	if periph.Clock == nil {
		periph.Clock = clockwork.NewRealClock()
	}
	return &Console{periph: periph, rl: rl}
}

// Attach sets the running system used by status commands.
func (c *Console) Attach(a *app.App) {
	c.app = a
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run starts the interactive command loop. It calls cancel when the user
// quits.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp(c.rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		if quit := c.Execute(line, c.rl.Stdout()); quit {
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}
	}
}

// Execute runs one command line and reports whether the user asked to quit.
func (c *Console) Execute(line string, w io.Writer) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp(w)

	case "press", "p":
		c.withPin(w, args, func(pin *gpio.Pin) { pin.Press() })

	case "release", "r":
		c.withPin(w, args, func(pin *gpio.Pin) { pin.Release() })

	case "click", "c":
		c.withPin(w, args, func(pin *gpio.Pin) {
			pin.Press()
			c.periph.Clock.Sleep(c.periph.Hold)
			pin.Release()
		})

	case "bounce", "b":
		c.cmdBounce(w, args)

	case "fault":
		c.cmdFault(w, args)

	case "status", "s":
		c.cmdStatus(w)

	case "snapshot":
		c.cmdSnapshot(w, args)

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (c *Console) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Button Commands:
  press <button>        - Drive the button's pin low
  release <button>      - Drive the button's pin high
  click <button>        - Press, hold briefly, release
  bounce <button> [n]   - Toggle the pin 2n times (default 3)

Faults:
  fault <button>        - Break the button's edge detection
  fault display         - Break the display

Inspection:
  status                - Show tasks, button states and render count
  snapshot <file.png>   - Save the framebuffer as PNG

  help                  - Show this help
  quit                  - Stop buttond`)
}

// withPin resolves args[0] to a pin and runs fn on it.
func (c *Console) withPin(w io.Writer, args []string, fn func(*gpio.Pin)) {
	if len(args) < 1 {
		fmt.Fprintf(w, "Usage: <command> <button> (buttons: %s)\n", strings.Join(c.buttonNames(), ", "))
		return
	}
	pin, ok := c.periph.Pins[args[0]]
	if !ok {
		fmt.Fprintf(w, "Unknown button: %s\n", args[0])
		return
	}
	fn(pin)
	fmt.Fprintf(w, "%s (%s) is %s\n", args[0], pin.Name(), pin.Level())
}

func (c *Console) cmdBounce(w io.Writer, args []string) {
	n := 3
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			fmt.Fprintf(w, "Invalid bounce count: %s\n", args[1])
			return
		}
		n = v
	}
	c.withPin(w, args, func(pin *gpio.Pin) { pin.Bounce(n) })
}

func (c *Console) cmdFault(w io.Writer, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(w, "Usage: fault <button|display>")
		return
	}
	cause := errors.New("injected from console")

	if args[0] == "display" {
		if c.periph.Display == nil {
			fmt.Fprintln(w, "No display attached")
			return
		}
		c.periph.Display.Fail(cause)
		fmt.Fprintln(w, "Display faulted; the render task stops on its next draw")
		return
	}

	pin, ok := c.periph.Pins[args[0]]
	if !ok {
		fmt.Fprintf(w, "Unknown button: %s\n", args[0])
		return
	}
	pin.Fail(cause)
	fmt.Fprintf(w, "%s faulted\n", args[0])
}

func (c *Console) cmdStatus(w io.Writer) {
	if c.app == nil {
		fmt.Fprintln(w, "Not running")
		return
	}

	fmt.Fprintln(w, "Tasks:")
	for _, st := range c.app.Status() {
		if st.Err != nil {
			fmt.Fprintf(w, "  %-22s %-8s %v\n", st.Name, st.State, st.Err)
		} else {
			fmt.Fprintf(w, "  %-22s %s\n", st.Name, st.State)
		}
	}

	fmt.Fprintln(w, "Buttons:")
	for _, name := range c.app.Buttons() {
		wt, _ := c.app.Watch(name)
		state := "-"
		if v, ok := wt.Peek(); ok {
			state = v.String()
		}
		fmt.Fprintf(w, "  %-10s %-9s receivers %d/%d", name, state, wt.Receivers(), wt.Capacity())
		if n := c.app.Refused(name); n > 0 {
			fmt.Fprintf(w, ", %d refused", n)
		}
		fmt.Fprintln(w)
	}

	n, at := c.app.Renderer().Renders()
	fmt.Fprintf(w, "Display: %d draws, last at (%d,%d)\n", n, at.X, at.Y)
}

func (c *Console) cmdSnapshot(w io.Writer, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(w, "Usage: snapshot <file.png>")
		return
	}
	if c.periph.Display == nil {
		fmt.Fprintln(w, "No display attached")
		return
	}
	if err := display.SavePNG(args[0], c.periph.Display.Snapshot()); err != nil {
		fmt.Fprintf(w, "Snapshot failed: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Saved %s\n", args[0])
}

func (c *Console) buttonNames() []string {
	names := make([]string, 0, len(c.periph.Pins))
	for name := range c.periph.Pins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
