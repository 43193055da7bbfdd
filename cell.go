package cellgrid

import (
	"strings"

	"github.com/kalexmills/cellgrid/formula"
)

// cellKind discriminates Cell's tagged union: the variant is always exactly
// one of these three, dispatch is an exhaustive switch.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellText
	cellFormula
)

// memoSlot is an explicit option-typed cache: a value plus a freshness
// flag, with no implicit conversions. It is filled only by GetValue and
// marked stale only by invalidate.
type memoSlot struct {
	value Value
	fresh bool
}

// Cell holds exactly one of three variants (Empty/Text/Formula) plus a
// memoized value slot. Cells never hold a reference back to their owning
// Sheet; Sheet is threaded explicitly into GetValue so the Cell has no
// lifetime coupling beyond the map slot the Sheet stores it in.
type Cell struct {
	kind cellKind

	rawText string // Text variant: the raw string verbatim, including any escape apostrophe

	expr     formula.Expr // Formula variant: parsed AST
	normExpr string       // Formula variant: canonical pretty-printed expression, no leading '='

	memo memoSlot
}

// newEmptyCell builds a fresh Empty cell with a stale memo.
func newEmptyCell() *Cell {
	return &Cell{kind: cellEmpty}
}

// set replaces c's variant based on text: empty text becomes Empty, text
// starting with '=' and at least two runes long becomes Formula (parsing
// the remainder), anything else becomes Text. The memo is left stale.
// Returns a parse error (sheeterr.ErrFormulaParse) without mutating c if
// the formula text is syntactically invalid.
func (c *Cell) set(text string) error {
	switch {
	case text == "":
		*c = Cell{kind: cellEmpty}
	case strings.HasPrefix(text, "=") && len(text) >= 2:
		expr, err := formula.Parse(text[1:])
		if err != nil {
			return err
		}
		*c = Cell{kind: cellFormula, expr: expr, normExpr: formula.Print(expr)}
	default:
		*c = Cell{kind: cellText, rawText: text}
	}
	return nil
}

// invalidate marks c's memo stale, forcing the next GetValue to recompute.
func (c *Cell) invalidate() {
	c.memo.fresh = false
}

// isEmpty reports whether c is the Empty variant.
func (c *Cell) isEmpty() bool {
	return c.kind == cellEmpty
}

// GetValue returns c's memoized value if fresh; otherwise it recomputes the
// value from c's variant (evaluating the AST against sheet for Formula
// cells), caches it, marks it fresh, and returns it.
func (c *Cell) GetValue(sheet *Sheet) Value {
	if c.memo.fresh {
		return c.memo.value
	}
	var v Value
	switch c.kind {
	case cellFormula:
		v = formula.Evaluate(c.expr, sheet)
	case cellText:
		v = textValue(c.rawText)
	default:
		v = formula.StringValue("")
	}
	c.memo.value = v
	c.memo.fresh = true
	return v
}

// textValue strips a single leading apostrophe escape marker, if present,
// from s. The apostrophe is stripped from the value only, never from the
// text GetText returns.
func textValue(s string) Value {
	if strings.HasPrefix(s, "'") {
		return formula.StringValue(s[1:])
	}
	return formula.StringValue(s)
}

// GetText returns c's verbatim text: the raw string (Text), "=" plus the
// canonical normalized expression (Formula), or "" (Empty). Pure; never
// touches the memo.
func (c *Cell) GetText() string {
	switch c.kind {
	case cellText:
		return c.rawText
	case cellFormula:
		return "=" + c.normExpr
	default:
		return ""
	}
}

// ReferencedCells returns the positions c's formula (if any) directly
// references, sorted in row-major order. Empty for Empty/Text cells.
func (c *Cell) ReferencedCells() []Position {
	if c.kind != cellFormula {
		return nil
	}
	return formula.ReferencedCells(c.expr)
}
