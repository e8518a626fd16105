// Package deferred provides a single-resolution result handed from a command
// handler to whoever dispatched it. The handler returns the Result right
// away and resolves it later, from whatever callback chain finally produces
// the value. Resolving twice is a programming error.
package deferred
