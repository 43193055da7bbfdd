package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalexmills/cellgrid/config"
)

func TestPosition_parseFormatRoundTrip(t *testing.T) {
	tests := []struct {
		text string
		want Position
	}{
		{"A1", NewPosition(0, 0)},
		{"B3", NewPosition(2, 1)},
		{"AA1", NewPosition(0, 26)},
		{"Z25", NewPosition(24, 25)},
		{"a1", NewPosition(0, 0)}, // lowercase accepted on input
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParsePosition(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// P1: parse(format(p)) == p for every valid position.
func TestPosition_P1_formatParseIdentity(t *testing.T) {
	positions := []Position{
		NewPosition(0, 0),
		NewPosition(2, 1),
		NewPosition(0, 26),
		NewPosition(24, 25),
		NewPosition(999, 700),
	}
	for _, p := range positions {
		got, err := ParsePosition(p.Format())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestPosition_formatIsUppercase(t *testing.T) {
	p, err := ParsePosition("aa1")
	require.NoError(t, err)
	assert.Equal(t, "AA1", p.Format())
}

func TestPosition_invalid(t *testing.T) {
	tests := []string{"", "1", "A", "A-1", "1A", "A0"}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			_, err := ParsePosition(text)
			assert.Error(t, err)
		})
	}
}

func TestPosition_outOfBounds(t *testing.T) {
	config.SetLimits(10, 10)
	defer config.ResetLimits()

	_, err := ParsePosition("K1") // column 10, zero-indexed, out of a 10-wide grid
	assert.Error(t, err)

	_, err = ParsePosition("A11")
	assert.Error(t, err)
}

func TestPrintableSizeFrom(t *testing.T) {
	assert.Equal(t, Size{}, PrintableSizeFrom(nil))
	assert.Equal(t, Size{Rows: 1, Cols: 1}, PrintableSizeFrom([]Position{NewPosition(0, 0)}))
	assert.Equal(t, Size{Rows: 3, Cols: 2}, PrintableSizeFrom([]Position{
		NewPosition(0, 0), NewPosition(2, 1), NewPosition(1, 0),
	}))
}
