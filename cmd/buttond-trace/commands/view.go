// Package commands implements the buttond-trace CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pieterm/buttonwatch/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Task     string
	Button   string
	Category *log.Category
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{Task: f.Task, Button: f.Button, Category: f.Category}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [run:id] CATEGORY task
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [run:%s] %-10s %s\n", ts, shortenRunID(event.RunID), event.Category.String(), event.Task)

	switch {
	case event.Transition != nil:
		formatTransitionDetails(w, event.Button, event.Transition)
	case event.Lifecycle != nil:
		formatLifecycleDetails(w, event.Lifecycle)
	case event.Fault != nil:
		formatFaultDetails(w, event.Button, event.Fault)
	}

	fmt.Fprintln(w)
}

// shortenRunID returns the first 8 characters of the run ID.
func shortenRunID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatTransitionDetails(w io.Writer, btn string, tr *log.TransitionEvent) {
	fmt.Fprintf(w, "  %s %s %s", btn, tr.Role.String(), tr.State)
	if tr.Observer != "" {
		fmt.Fprintf(w, " (by %s)", tr.Observer)
	}
	fmt.Fprintln(w)
}

func formatLifecycleDetails(w io.Writer, lc *log.LifecycleEvent) {
	if lc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", lc.OldState, lc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", lc.NewState)
	}
	if lc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", lc.Reason)
	}
}

func formatFaultDetails(w io.Writer, btn string, f *log.FaultEvent) {
	fmt.Fprintf(w, "  Source: %s\n", f.Source)
	if btn != "" {
		fmt.Fprintf(w, "  Button: %s\n", btn)
	}
	fmt.Fprintf(w, "  Message: %s\n", f.Message)
	if f.Fatal {
		fmt.Fprintln(w, "  Fatal: true")
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "transition":
		return log.CategoryTransition, nil
	case "lifecycle":
		return log.CategoryLifecycle, nil
	case "fault":
		return log.CategoryFault, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be transition, lifecycle, or fault)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
