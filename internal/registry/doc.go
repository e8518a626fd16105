// Package registry is the add-on catalog: it discovers addon.yaml manifests
// under one or more source directories, answers repository searches in the
// background and installs add-ons by copying them into the installed
// directory while reporting lifecycle events to listeners.
package registry
