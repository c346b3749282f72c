package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pieterm/buttonwatch/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Buttons          map[string]*ButtonStats
	Runs             map[string]int
	Faults           []string
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// ButtonStats holds transition counts for one button.
type ButtonStats struct {
	Published map[string]int
	Observed  map[string]int

	// MaxLatency is the longest time from publish to observation.
	MaxLatency time.Duration

	lastPublish time.Time
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Buttons:          make(map[string]*ButtonStats),
		Runs:             make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++
	s.Runs[event.RunID]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	if tr := event.Transition; tr != nil && event.Button != "" {
		bs, ok := s.Buttons[event.Button]
		if !ok {
			bs = &ButtonStats{
				Published: make(map[string]int),
				Observed:  make(map[string]int),
			}
			s.Buttons[event.Button] = bs
		}
		switch tr.Role {
		case log.RolePublished:
			bs.Published[tr.State]++
			bs.lastPublish = event.Timestamp
		case log.RoleObserved:
			bs.Observed[tr.State]++
			if !bs.lastPublish.IsZero() {
				if d := event.Timestamp.Sub(bs.lastPublish); d > bs.MaxLatency {
					bs.MaxLatency = d
				}
			}
		}
	}

	if f := event.Fault; f != nil {
		s.Faults = append(s.Faults, fmt.Sprintf("%s %s: %s", event.Task, f.Source, f.Message))
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Button Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Runs: %d\n", len(stats.Runs))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryTransition, log.CategoryLifecycle, log.CategoryFault} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Buttons: %d\n", len(stats.Buttons))
	names := make([]string, 0, len(stats.Buttons))
	for name := range stats.Buttons {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		bs := stats.Buttons[name]
		fmt.Fprintf(w, "  [%s] published %d pressed, %d released; observed %d pressed, %d released\n",
			name,
			bs.Published["Pressed"], bs.Published["Released"],
			bs.Observed["Pressed"], bs.Observed["Released"])
		if bs.MaxLatency > 0 {
			fmt.Fprintf(w, "           Max latency: %s\n", formatDuration(bs.MaxLatency))
		}
	}

	if len(stats.Faults) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Faults: %d\n", len(stats.Faults))
		for _, f := range stats.Faults {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
}
