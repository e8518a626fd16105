// Package markup builds result messages that carry a small set of display
// markers, and renders those messages for a terminal.
//
// Add-on names come from catalogs and state files and may contain anything,
// so they are always wrapped with Literal. Everything outside a literal
// section is text written by this program and safe to interpret.
package markup
