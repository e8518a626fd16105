// Package manifest parses and validates addon.yaml files, the manifests that
// describe an add-on in the catalog.
package manifest
