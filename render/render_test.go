package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalexmills/cellgrid"
)

func pos(t *testing.T, text string) cellgrid.Position {
	t.Helper()
	p, err := cellgrid.ParsePosition(text)
	require.NoError(t, err)
	return p
}

func TestPrintValues(t *testing.T) {
	s := cellgrid.NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "hello"))
	require.NoError(t, s.SetCell(pos(t, "B1"), "=1/0"))
	require.NoError(t, s.SetCell(pos(t, "A2"), "42"))
	// B2 is left unset: an absent cell inside the printable rectangle.

	got, err := SprintValues(s, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello\t#DIV/0!\n42\t\n", got)
}

func TestPrintTexts(t *testing.T) {
	s := cellgrid.NewSheet()
	require.NoError(t, s.SetCell(pos(t, "A1"), "'=1+2"))
	require.NoError(t, s.SetCell(pos(t, "B1"), "=A1"))

	got, err := SprintTexts(s, nil)
	require.NoError(t, err)
	assert.Equal(t, "'=1+2\t=A1\n", got)
}

func TestPrintValues_emptySheet(t *testing.T) {
	s := cellgrid.NewSheet()
	got, err := SprintValues(s, nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
