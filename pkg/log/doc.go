// Package log provides the structured trace log for buttonwatch.
//
// The trace is separate from operational logging (slog). It captures a
// machine-readable record of what the tasks did during one run: button
// transitions as published and observed, task lifecycle changes, and
// hardware faults.
//
// # Basic Usage
//
//	// Console only
//	console := log.NewSlogAdapter(slog.Default())
//
//	// Binary file, viewable with buttond-trace
//	file, _ := log.NewFileLogger("/var/log/buttond.cbor")
//
//	// Both, with every event stamped with the run ID and time
//	trace := log.NewStamper(log.NewMultiLogger(console, file), runID)
//
// # File Format
//
// Trace files are a sequence of CBOR-encoded events with integer keys.
// The running system never reads its own trace back.
package log
