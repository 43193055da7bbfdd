package formula

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalexmills/cellgrid/internal/sheeterr"
)

func TestParse_arithmetic(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want float64
	}{
		{"plain add", "1+2", 3},
		{"precedence", "2+3*4", 14},
		{"parens", "2*(3+4)", 14},
		{"unary minus", "-5+10", 5},
		{"unary minus over parens", "-(3+4)", -7},
		{"nested division", "10/2/5", 1},
		{"subtraction is left assoc", "10-2-3", 5},
		{"decimal literal", "1.5+1.5", 3},
		{"exponent literal", "1e2+1", 101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(tt.expr)
			require.NoError(t, err)
			got := Evaluate(e, emptySheet{})
			require.True(t, got.IsNumber(), "expected a number, got %v", got)
			assert.Equal(t, tt.want, got.Number())
		})
	}
}

func TestParse_syntaxErrors(t *testing.T) {
	tests := []string{"", "1+", "(1+2", "1 2", "A", "1A1", "@"}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			assert.ErrorIs(t, err, sheeterr.ErrFormulaParse)
		})
	}
}

func TestPrint_normalization(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2", "1+2"},
		{"1+ 2", "1+2"},
		{" 2 *( 3 + 4 ) ", "2*(3+4)"},
		{"1-(2+3)", "1-(2+3)"},
		{"1-(2-3)", "1-(2-3)"},
		{"1-2-3", "1-2-3"},
		{"1-2+3", "1-2+3"},
		{"(1-2)+3", "1-2+3"},
		{"1/(2/3)", "1/(2/3)"},
		{"1/(2*3)", "1/(2*3)"},
		{"(1/2)/3", "1/2/3"},
		{"-(1+2)", "-(1+2)"},
		{"-1+2", "-1+2"},
		{"1*2+3", "1*2+3"},
		{"(1+2)*3", "(1+2)*3"},
		{"A1+B2", "A1+B2"},
		{"a1+b2", "A1+B2"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, err := Parse(tt.expr)
			require.NoError(t, err)
			got := Print(e)
			assert.Equal(t, tt.want, got)

			// normalization is idempotent: re-parsing and re-printing the
			// canonical form must return exactly the same string (P2).
			e2, err := Parse(got)
			require.NoError(t, err)
			assert.Equal(t, got, Print(e2))
		})
	}
}

func TestEvaluate_refs(t *testing.T) {
	sh := stubSheet{
		NewPosition(0, 0): NumberValue(3),
		NewPosition(0, 1): StringValue("4"),
		NewPosition(0, 2): StringValue("abc"),
		NewPosition(0, 3): ErrorValue(ErrDiv0),
	}

	t.Run("ref to number cell", func(t *testing.T) {
		e, _ := Parse("A1")
		got := Evaluate(e, sh)
		assert.Equal(t, NumberValue(3), got)
	})
	t.Run("ref to numeric text coerces", func(t *testing.T) {
		e, _ := Parse("B1*2")
		got := Evaluate(e, sh)
		assert.Equal(t, NumberValue(8), got)
	})
	t.Run("ref to non-numeric text is #VALUE!", func(t *testing.T) {
		e, _ := Parse("C1")
		got := Evaluate(e, sh)
		assert.True(t, got.IsError())
		assert.Equal(t, ErrValue, got.ErrCode())
	})
	t.Run("ref to absent cell is zero", func(t *testing.T) {
		e, _ := Parse("Z9")
		got := Evaluate(e, sh)
		assert.Equal(t, NumberValue(0), got)
	})
	t.Run("ref propagates existing error", func(t *testing.T) {
		e, _ := Parse("D1+1")
		got := Evaluate(e, sh)
		assert.True(t, got.IsError())
		assert.Equal(t, ErrDiv0, got.ErrCode())
	})
	t.Run("division by zero is #DIV/0!", func(t *testing.T) {
		e, _ := Parse("1/0")
		got := Evaluate(e, sh)
		assert.True(t, got.IsError())
		assert.Equal(t, ErrDiv0, got.ErrCode())
	})
	t.Run("error propagation is left to right", func(t *testing.T) {
		// A+B where both are errors: observed error equals A's error (P7).
		sh2 := stubSheet{
			NewPosition(1, 0): ErrorValue(ErrRef),
			NewPosition(1, 1): ErrorValue(ErrValue),
		}
		e, _ := Parse("A2+B2")
		got := Evaluate(e, sh2)
		assert.Equal(t, ErrRef, got.ErrCode())
	})
}

func TestEvaluate_outOfGridRef(t *testing.T) {
	// A syntactically valid but out-of-grid reference parses fine and
	// evaluates to #REF! (the spec's preferred parse/eval split).
	huge := "ZZZZZZ999999999"
	e, err := Parse(huge)
	require.NoError(t, err)
	got := Evaluate(e, emptySheet{})
	assert.True(t, got.IsError())
	assert.Equal(t, ErrRef, got.ErrCode())
}

func TestReferencedCells(t *testing.T) {
	e, err := Parse("B2+A1+B2+C3")
	require.NoError(t, err)
	refs := ReferencedCells(e)
	assert.Equal(t, []Position{
		NewPosition(0, 0), // A1
		NewPosition(1, 1), // B2
		NewPosition(2, 2), // C3
	}, refs)
}

func TestNonFiniteResultIsDiv0(t *testing.T) {
	// math.MaxFloat64 * 10 overflows to +Inf, which the spec says must
	// surface as #DIV/0!, not a literal infinity.
	sh := stubSheet{NewPosition(0, 0): NumberValue(1.7976931348623157e+308)}
	e, err := Parse("A1*10")
	require.NoError(t, err)
	got := Evaluate(e, sh)
	assert.True(t, got.IsError())
	assert.Equal(t, ErrDiv0, got.ErrCode())
}

// stubSheet is a minimal in-memory formula.Sheet for tests that don't need
// a full cellgrid.Sheet.
type stubSheet map[Position]Value

func (s stubSheet) ValueAt(pos Position) (Value, bool) {
	v, ok := s[pos]
	return v, ok
}

type emptySheet struct{}

func (emptySheet) ValueAt(Position) (Value, bool) { return Value{}, false }

func TestErrorsAreSentinels(t *testing.T) {
	_, err := Parse("1+")
	assert.True(t, errors.Is(err, sheeterr.ErrFormulaParse))
}
