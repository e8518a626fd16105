// Package cli defines the Cobra command tree for addonctl. The addon
// subcommands and the interactive shell share one command registry; each
// invocation dispatches words through it and prints the message the command
// resolves to.
package cli
