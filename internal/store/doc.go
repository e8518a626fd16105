// Package store keeps the records of installed add-ons in a YAML state file
// and serves them through the addon.Manager contract.
package store
