// Package sheeterr collects the sentinel errors shared across the engine so
// that cell.go, sheet.go, and formula all report failures the caller can
// check with errors.Is, without import cycles between those packages.
package sheeterr

import "errors"

var (
	// ErrInvalidPosition is returned by any API call given a position outside
	// the configured grid bounds.
	ErrInvalidPosition = errors.New("position is out of grid bounds")

	// ErrFormulaParse is returned when formula text is syntactically invalid.
	ErrFormulaParse = errors.New("could not parse formula")

	// ErrCircularDependency is returned when an edit would close a cycle in
	// the dependency graph. The sheet is left unchanged.
	ErrCircularDependency = errors.New("edit would introduce a circular dependency")
)
