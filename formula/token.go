package formula

import (
	"fmt"

	"github.com/kalexmills/cellgrid/internal/sheeterr"
)

// TokenKind classifies a single lexeme produced by tokenize.
type TokenKind int

const (
	TokNumber TokenKind = iota
	TokRef
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokLParen
	TokRParen
)

// Token is a single lexeme: its kind plus the raw text it was scanned from
// (used verbatim for TokNumber/TokRef, constant for everything else).
type Token struct {
	Kind TokenKind
	Text string
}

var singleCharTokens = map[rune]TokenKind{
	'+': TokPlus,
	'-': TokMinus,
	'*': TokStar,
	'/': TokSlash,
	'(': TokLParen,
	')': TokRParen,
}

// tokenize scans expr (the formula text with its leading '=' already
// stripped by the caller) into a token stream, returning
// sheeterr.ErrFormulaParse on any unrecognized character or malformed
// literal.
func tokenize(expr string) ([]Token, error) {
	runes := []rune(expr)
	var tokens []Token
	i := 0
	for i < len(runes) {
		ch := runes[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++
		case ch >= '0' && ch <= '9' || ch == '.':
			start := i
			i = scanNumber(runes, i)
			if i == start {
				return nil, fmt.Errorf("%w: malformed number at %q", sheeterr.ErrFormulaParse, string(runes[start:]))
			}
			tokens = append(tokens, Token{Kind: TokNumber, Text: string(runes[start:i])})
		case isLetter(ch):
			start := i
			for i < len(runes) && isLetter(runes[i]) {
				i++
			}
			if i >= len(runes) || !isDigit(runes[i]) {
				return nil, fmt.Errorf("%w: cell reference %q must end in digits", sheeterr.ErrFormulaParse, string(runes[start:i]))
			}
			for i < len(runes) && isDigit(runes[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: TokRef, Text: string(runes[start:i])})
		default:
			kind, ok := singleCharTokens[ch]
			if !ok {
				return nil, fmt.Errorf("%w: unexpected character %q", sheeterr.ErrFormulaParse, string(ch))
			}
			tokens = append(tokens, Token{Kind: kind, Text: string(ch)})
			i++
		}
	}
	return tokens, nil
}

// scanNumber consumes a NUMBER literal (decimal literal, optional fractional
// part, optional exponent) starting at i and returns the index just past it.
// It returns i unchanged if no digits were found at all.
func scanNumber(runes []rune, i int) int {
	start := i
	for i < len(runes) && isDigit(runes[i]) {
		i++
	}
	if i < len(runes) && runes[i] == '.' {
		i++
		for i < len(runes) && isDigit(runes[i]) {
			i++
		}
	}
	if i == start || (i == start+1 && runes[start] == '.') {
		return start // bare '.' with no digits either side is not a number
	}
	if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
		j := i + 1
		if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
			j++
		}
		expStart := j
		for j < len(runes) && isDigit(runes[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}
	return i
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }
func isLetter(ch rune) bool {
	return ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z'
}
