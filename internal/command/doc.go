// Package command hosts textual commands. A Spec names a command, declares
// its positional parameters and supplies the handler; the Registry binds
// words typed by the user to those parameters and invokes the handler,
// which answers with a deferred.Outcome.
package command
