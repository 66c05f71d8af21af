// Package state provides push-based observable values and the routine store
// built on them.
//
// An Observable holds a value and notifies subscribers on every
// replacement. Subscribe invokes the callback once immediately with the
// current value, so a subscriber never has to read and subscribe
// separately. A Derived value recomputes from its source on every change
// of the source.
//
// Callbacks run synchronously on the goroutine that replaced the value, in
// subscription order, outside the observable's lock: a callback may read or
// even replace the value it observes.
package state
