// Package watch implements a single-producer, multi-consumer latest-value
// broadcast.
//
// A Watch holds exactly one current value. The single Sender overwrites it;
// every registered Receiver independently observes that the value changed.
//
// # Latest Value Semantics
//
// There is no queue. If the Sender publishes twice before a Receiver looks,
// the Receiver sees only the second value. Memory is bounded by the receiver
// capacity, not by the publish rate. Consumers that must see every
// transition (counting presses, for example) cannot be built on a Watch.
//
// # Capacity
//
// The number of receivers is fixed when the Watch is constructed. Receiver
// registration beyond that capacity fails deterministically and leaves the
// existing receivers untouched. Receivers are not released; registration is
// expected to happen once at startup.
//
// # Concurrency
//
// Send never blocks and never fails. Changed suspends the calling goroutine
// until the value changes or the context is cancelled. A Receiver is a
// cursor owned by one goroutine and must not be shared.
package watch
