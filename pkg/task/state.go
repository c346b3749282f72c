package task

import (
	"errors"
	"fmt"
	"strings"
)

// State is a task lifecycle state.
type State uint8

const (
	// StatePending means the task is registered but not yet running.
	StatePending State = iota

	// StateRunning means the task function is executing.
	StateRunning

	// StateExited means the task returned cleanly.
	StateExited

	// StateFaulted means the task returned an error.
	StateFaulted
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateRunning:
		return "RUNNING"
	case StateExited:
		return "EXITED"
	case StateFaulted:
		return "FAULTED"
	default:
		return "UNKNOWN"
	}
}

// FaultPolicy decides what a task fault does to the other tasks.
type FaultPolicy uint8

const (
	// FaultPolicyDegraded keeps the remaining tasks running.
	FaultPolicyDegraded FaultPolicy = iota

	// FaultPolicyHalt stops every task.
	FaultPolicyHalt
)

// ErrUnknownFaultPolicy is returned by ParseFaultPolicy.
var ErrUnknownFaultPolicy = errors.New("unknown fault policy")

// String returns the policy name as used in configuration files.
func (p FaultPolicy) String() string {
	switch p {
	case FaultPolicyDegraded:
		return "degraded"
	case FaultPolicyHalt:
		return "halt"
	default:
		return "unknown"
	}
}

// ParseFaultPolicy parses "degraded" or "halt". The empty string is
// FaultPolicyDegraded.
func ParseFaultPolicy(s string) (FaultPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "degraded":
		return FaultPolicyDegraded, nil
	case "halt":
		return FaultPolicyHalt, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFaultPolicy, s)
	}
}
