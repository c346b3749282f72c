// Package gpio provides a simulated digital input pin with edge-triggered
// waits.
//
// A Pin models a push-button wired to ground with a pull-up resistor: it
// idles High and reads Low while pressed. Pressing produces a falling edge,
// releasing a rising edge.
//
// Edge waits behave like an armed edge interrupt. An edge wakes only the
// waiters registered when it happens; edges that occur while nobody waits
// are lost. This is what makes a quiet period after an accepted edge an
// effective debounce.
//
// The same Pin drives the host simulator (buttond) and the tests.
package gpio
