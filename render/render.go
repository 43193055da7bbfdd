// Package render is the thin external consumer spec describes: it iterates
// a *cellgrid.Sheet's printable rectangle and formats values or texts to an
// io.Writer. It is the only place in this module that formats a Sheet for
// display; the core package exposes a pure API and never formats anything
// for presentation itself.
package render

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/kalexmills/cellgrid"
)

// PrintValues writes sheet's printable rectangle to w, one line per row,
// cells separated by a single tab, rows terminated by '\n'. Numbers use the
// same shortest-round-trip formatting as formula pretty-printing; strings
// are written verbatim (after escape-stripping); errors are written as
// their literal token. A position inside the rectangle holding no cell
// prints as an empty field.
func PrintValues(w io.Writer, sheet *cellgrid.Sheet, logger *slog.Logger) error {
	return printRectangle(w, sheet, logger, "values", func(c *cellgrid.Cell) string {
		return c.GetValue(sheet).String()
	})
}

// PrintTexts writes sheet's printable rectangle to w the same way
// PrintValues does, but using each cell's GetText() instead of its value.
func PrintTexts(w io.Writer, sheet *cellgrid.Sheet, logger *slog.Logger) error {
	return printRectangle(w, sheet, logger, "texts", func(c *cellgrid.Cell) string {
		return c.GetText()
	})
}

func printRectangle(w io.Writer, sheet *cellgrid.Sheet, logger *slog.Logger, what string, field func(*cellgrid.Cell) string) error {
	size := sheet.GetPrintableSize()
	bw := bufio.NewWriter(w)
	written := 0

	for r := 0; r < size.Rows; r++ {
		for c := 0; c < size.Cols; c++ {
			if c > 0 {
				n, err := bw.WriteRune('\t')
				if err != nil {
					return err
				}
				written += n
			}
			cell, err := sheet.GetCell(cellgrid.NewPosition(r, c))
			if err != nil {
				return err // unreachable: positions inside GetPrintableSize's rectangle are always valid
			}
			if cell == nil {
				continue // absent cell inside the rectangle prints as an empty field
			}
			s := field(cell)
			n, err := bw.WriteString(s)
			if err != nil {
				return err
			}
			written += n
		}
		n, err := bw.WriteRune('\n')
		if err != nil {
			return err
		}
		written += n
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if logger != nil {
		logger.Debug("rendered sheet", "kind", what, "rows", size.Rows, "cols", size.Cols, "bytes", written)
	}
	return nil
}

// sprint is a convenience for callers that want the rendered text as a
// string rather than writing it to an io.Writer.
func sprint(print func(io.Writer) error) (string, error) {
	var buf writerBuf
	if err := print(&buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

type writerBuf []byte

func (b *writerBuf) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}

// SprintValues renders sheet's values the way PrintValues does, returning
// the result as a string.
func SprintValues(sheet *cellgrid.Sheet, logger *slog.Logger) (string, error) {
	return sprint(func(w io.Writer) error { return PrintValues(w, sheet, logger) })
}

// SprintTexts renders sheet's texts the way PrintTexts does, returning the
// result as a string.
func SprintTexts(sheet *cellgrid.Sheet, logger *slog.Logger) (string, error) {
	return sprint(func(w io.Writer) error { return PrintTexts(w, sheet, logger) })
}
