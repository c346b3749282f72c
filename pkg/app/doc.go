// Package app assembles the button and display tasks from a configuration
// and a set of initialized peripherals, and runs them under one supervisor.
//
// For each configured button the app creates one watch, one debouncer
// publishing into it, and up to ObserversPerButton observers reading from
// it. Observers that find the watch full are refused at startup: the app
// logs "no extra watchers available" and runs without them.
//
// Next to the button tasks run the render task and an idle loop that logs
// a heartbeat.
package app
