// Package cellgrid is an in-memory spreadsheet engine: a two-dimensional
// sparse grid of cells whose contents are either empty, literal text, or a
// formula referencing other cells. It parses formulas, evaluates them
// lazily with memoization, rejects edits that would introduce cyclic
// dependencies, propagates invalidation when inputs change, and computes
// the bounding box of the populated region.
//
// The engine is single-threaded and non-suspending: every exported method
// runs synchronously to completion on the calling goroutine. A *Cell
// returned from GetCell is valid only until the next SetCell or ClearCell
// call on the same Sheet.
//
// Persistence, undo/redo, multi-sheet workbooks, range references, named
// ranges, units, and locale-specific number formatting are out of scope;
// see the render subpackage for the one supported external consumer
// (textual rendering of values and texts).
package cellgrid

import (
	"github.com/kalexmills/cellgrid/formula"
	"github.com/kalexmills/cellgrid/internal/sheeterr"
)

// Edit-time sentinel errors, checked with errors.Is. These are the only
// errors SetCell, GetCell, and ClearCell ever return; evaluation-time
// failures never cross the API as errors, they live inside a cell's Value
// (see ErrRef, ErrValue, ErrDiv0 below).
var (
	ErrInvalidPosition    = sheeterr.ErrInvalidPosition
	ErrFormulaParse       = sheeterr.ErrFormulaParse
	ErrCircularDependency = sheeterr.ErrCircularDependency
)

// Position, Size, and Value are defined in the formula package (which also
// owns cell-reference parsing) and re-exported here as aliases so callers
// of this package's public API never need to import formula directly.
type (
	Position = formula.Position
	Size     = formula.Size
	Value    = formula.Value
	ErrCode  = formula.ErrCode
)

// PosNone is the sentinel "no position".
var PosNone = formula.PosNone

// NewPosition builds a Position from zero-indexed row and column.
func NewPosition(row, col int) Position {
	return formula.NewPosition(row, col)
}

// ParsePosition parses text in LETTERS+DIGITS form (e.g. "B3") into a
// Position.
func ParsePosition(text string) (Position, error) {
	return formula.ParsePosition(text)
}

// Value error codes, re-exported for callers that need to branch on a
// cell's error kind.
const (
	ErrRef   = formula.ErrRef
	ErrValue = formula.ErrValue
	ErrDiv0  = formula.ErrDiv0
)
