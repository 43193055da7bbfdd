package formula

import (
	"strconv"

	"golang.org/x/exp/slices"
)

// Expr is a node in a parsed formula's AST. The set of concrete types is
// closed: NumExpr, RefExpr, UnaryExpr, BinaryExpr.
type Expr interface {
	isExpr()
}

// NumExpr is a numeric literal.
type NumExpr struct {
	Value float64
}

// RefExpr is a reference to another cell. Pos may be outside the grid; that
// is a parse-time-valid, evaluation-time #REF! per the parser's convention.
type RefExpr struct {
	Pos Position
}

// UnaryExpr applies a unary '+' or '-' to a child expression.
type UnaryExpr struct {
	Op TokenKind // TokPlus or TokMinus
	X  Expr
}

// BinaryExpr applies a binary '+', '-', '*', or '/' to two operands.
type BinaryExpr struct {
	Op   TokenKind
	X, Y Expr
}

func (NumExpr) isExpr()    {}
func (RefExpr) isExpr()    {}
func (UnaryExpr) isExpr()  {}
func (BinaryExpr) isExpr() {}

// ReferencedCells returns the distinct Positions appearing in Ref nodes of
// e, sorted in row-major order, each appearing exactly once.
func ReferencedCells(e Expr) []Position {
	var refs []Position
	collectRefs(e, &refs)
	slices.SortFunc(refs, func(a, b Position) bool {
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	return dedupeSorted(refs)
}

func collectRefs(e Expr, out *[]Position) {
	switch n := e.(type) {
	case RefExpr:
		*out = append(*out, n.Pos)
	case UnaryExpr:
		collectRefs(n.X, out)
	case BinaryExpr:
		collectRefs(n.X, out)
		collectRefs(n.Y, out)
	}
}

func dedupeSorted(refs []Position) []Position {
	if len(refs) == 0 {
		return nil
	}
	out := refs[:1]
	for _, p := range refs[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// Print renders e in canonical form: no spaces, parentheses kept only where
// needed to preserve meaning, cell refs uppercase, numbers formatted via
// the shortest round-trippable decimal representation.
func Print(e Expr) string {
	return render(e)
}

// nodePrec ranks e's own operator precedence for parenthesization purposes;
// higher binds tighter. Atoms (numbers, refs) bind tightest of all.
func nodePrec(e Expr) int {
	switch n := e.(type) {
	case BinaryExpr:
		if n.Op == TokPlus || n.Op == TokMinus {
			return 1
		}
		return 2
	case UnaryExpr:
		return 3
	default:
		return 4
	}
}

func render(e Expr) string {
	switch n := e.(type) {
	case NumExpr:
		return formatNumber(n.Value)
	case RefExpr:
		return n.Pos.Format()
	case UnaryExpr:
		// A unary child is parenthesized too: "--A1" would not parse back.
		s := render(n.X)
		if nodePrec(n.X) <= nodePrec(n) {
			s = "(" + s + ")"
		}
		return opSymbol(n.Op) + s
	case BinaryExpr:
		prec := nodePrec(n)
		nonAssoc := n.Op == TokMinus || n.Op == TokSlash
		left := renderChild(n.X, prec, false, false)
		right := renderChild(n.Y, prec, true, nonAssoc)
		return left + opSymbol(n.Op) + right
	}
	return ""
}

// renderChild renders child in the context of a parent with precedence
// parentPrec, wrapping it in parentheses when precedence would otherwise be
// lost: strictly lower precedence always needs parens; equal precedence on
// the right side of a non-associative parent ('-' or '/') needs parens too.
func renderChild(child Expr, parentPrec int, isRight, parentNonAssoc bool) string {
	s := render(child)
	cp := nodePrec(child)
	if cp < parentPrec || (isRight && cp == parentPrec && parentNonAssoc) {
		return "(" + s + ")"
	}
	return s
}

func opSymbol(op TokenKind) string {
	switch op {
	case TokPlus:
		return "+"
	case TokMinus:
		return "-"
	case TokStar:
		return "*"
	case TokSlash:
		return "/"
	}
	return ""
}

// formatNumber renders f using the shortest decimal representation that
// round-trips back to f, locale-independent ('.' as separator, no trailing
// zeros beyond what precision requires).
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
