package formula

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kalexmills/cellgrid/config"
	"github.com/kalexmills/cellgrid/internal/sheeterr"
)

// Position is a zero-indexed (row, col) grid coordinate.
type Position struct {
	Row int
	Col int
}

// PosNone is the sentinel "no position". It is never a valid Position. The
// engine itself does not use it; PrintableSizeFrom handles an empty set of
// positions with an explicit length check.
var PosNone = Position{Row: -1, Col: -1}

// NewPosition builds a Position from zero-indexed row and column.
func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// IsValid reports whether p lies within the configured grid bounds.
func (p Position) IsValid() bool {
	return p.Row >= 0 && p.Row < config.MaxRows && p.Col >= 0 && p.Col < config.MaxCols
}

// posRegexp matches the textual form of a position: one or more letters
// (the column, base-26) followed by one or more digits (the 1-indexed row).
// Go's regexp package guarantees linear-time matching in the input size.
var posRegexp = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

// ParsePosition parses text in LETTERS+DIGITS form (e.g. "B3") into a
// Position. Column letters may be given in either case; row digits are
// 1-indexed in text and converted to the zero-indexed internal form.
// Parsing rejects empty strings, malformed shapes, and coordinates outside
// the configured grid with sheeterr.ErrInvalidPosition.
func ParsePosition(text string) (Position, error) {
	groups := posRegexp.FindStringSubmatch(text)
	if len(groups) != 3 {
		return Position{}, fmt.Errorf("%w: %q is not a valid cell reference", sheeterr.ErrInvalidPosition, text)
	}
	colExpr, rowExpr := groups[1], groups[2]

	col, err := decodeColumn(colExpr)
	if err != nil {
		return Position{}, fmt.Errorf("%w: bad column %q in %q", sheeterr.ErrInvalidPosition, colExpr, text)
	}
	row1, err := strconv.Atoi(rowExpr)
	if err != nil {
		return Position{}, fmt.Errorf("%w: bad row %q in %q", sheeterr.ErrInvalidPosition, rowExpr, text)
	}
	p := Position{Row: row1 - 1, Col: col}
	if !p.IsValid() {
		return Position{}, fmt.Errorf("%w: %q outside grid bounds", sheeterr.ErrInvalidPosition, text)
	}
	return p, nil
}

// decodeColumn decodes a base-26 column expression (A..Z, AA.., case
// insensitive) into its zero-indexed integer form.
func decodeColumn(str string) (int, error) {
	col := 0
	for _, ch := range strings.ToUpper(str) {
		if ch < 'A' || ch > 'Z' {
			return 0, sheeterr.ErrInvalidPosition
		}
		col = col*26 + int(ch-'A'+1)
	}
	return col - 1, nil
}

// Format renders p in canonical uppercase LETTERS+DIGITS form. Total over
// valid positions.
func (p Position) Format() string {
	return encodeColumn(p.Col) + strconv.Itoa(p.Row+1)
}

// String satisfies fmt.Stringer so Positions print legibly in test failures
// and error messages.
func (p Position) String() string {
	return p.Format()
}

func encodeColumn(col int) string {
	col++ // work in 1-indexed terms to reuse the classic base-26 "spreadsheet column" trick
	var buf []byte
	for col > 0 {
		col--
		buf = append(buf, byte('A'+col%26))
		col /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// Size is a (rows, cols) extent.
type Size struct {
	Rows int
	Cols int
}

// PrintableSizeFrom computes the smallest rectangle anchored at (0,0)
// containing every position in positions. It returns the zero Size when
// positions is empty.
func PrintableSizeFrom(positions []Position) Size {
	if len(positions) == 0 {
		return Size{}
	}
	maxRow, maxCol := 0, 0
	for _, p := range positions {
		if p.Row > maxRow {
			maxRow = p.Row
		}
		if p.Col > maxCol {
			maxCol = p.Col
		}
	}
	return Size{Rows: maxRow + 1, Cols: maxCol + 1}
}
