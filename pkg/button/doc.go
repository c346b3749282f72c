// Package button turns raw, bouncing digital inputs into clean button state
// transitions and relays them to observers.
//
// # Debouncing
//
// A Debouncer is a strict two-state cycle:
//
//	IdleReleased --falling edge--> publish Pressed,  quiet period --> IdlePressed
//	IdlePressed  --rising edge-->  publish Released, quiet period --> IdleReleased
//
// There is no bouncing state. Bounce is suppressed by the quiet period after
// each accepted edge: edges arriving during it are not waited for and so
// never seen. The default quiet period is 5 ms.
//
// # Distribution
//
// Each Debouncer is the only Sender of one watch.Watch[State]. Observers
// each own one watch.Receiver and log every state they see. Observers may
// miss intermediate states if transitions outpace them; they always see
// the latest one.
//
// # Faults
//
// An error from the input facility is a hardware fault. The Debouncer stops
// and returns an error wrapping ErrInputFault. It does not retry.
package button
