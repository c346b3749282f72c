// Package task supervises the long-lived goroutines of the system.
//
// Every task is named and moves through a small lifecycle:
//
//	PENDING -> RUNNING -> EXITED
//	                   -> FAULTED
//
// A task that returns nil, or returns because the supervisor context was
// cancelled, has EXITED. Any other error is a fault. What happens to the
// other tasks then depends on the FaultPolicy:
//
//   - FaultPolicyDegraded: the faulted task stays down, the rest keep running.
//   - FaultPolicyHalt: the supervisor context is cancelled and Wait returns
//     the fault.
//
// Faults are never retried.
package task
