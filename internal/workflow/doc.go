// Package workflow implements the addon commands: list, enable, disable,
// install and uninstall. Every handler answers with exactly one message.
// Lookups against installed add-ons and the search-then-install flow run
// through asynchronous collaborators, so those handlers return a pending
// deferred.Result and resolve it from the final callback of the chain.
//
// Failures a user can cause or observe (nothing matched, the repository
// was unreachable, the download broke) are reported as resolution messages,
// never as errors. Only a collaborator that calls back twice for the same
// outcome breaks the protocol, and that panics.
//
// At most one repository search runs at a time. Sessions tracks it: a new
// install either reports the running search or, when forced, cancels it and
// takes its place.
package workflow
