package huffman

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// Symbol represents a single 16-bit character code point.
type Symbol uint16

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxUint16)

// String returns the character quoted as a Go rune literal.  Surrogate
// halves, which are not runes on their own, are written as '\uXXXX'.
func (s Symbol) String() string {
	if utf16.IsSurrogate(rune(s)) {
		return "'" + s.text() + "'"
	}
	return strconv.QuoteRune(rune(s))
}

// text returns the character itself, or a \uXXXX escape for a surrogate half.
func (s Symbol) text() string {
	if utf16.IsSurrogate(rune(s)) {
		return fmt.Sprintf("\\u%04x", uint16(s))
	}
	return string(rune(s))
}

var _ fmt.Stringer = Symbol(0)

// SymbolsOf splits text into Symbols, one per rune.  Runes that do not fit
// in 16 bits and invalid UTF-8 are rejected with an error wrapping
// ErrSymbolRange.
func SymbolsOf(text string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(text))
	for i := 0; i < len(text); {
		sym, size, err := symbolAt(text, i)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
		i += size
	}
	return out, nil
}

// symbolAt decodes the character starting at byte offset i of text and
// returns it with its width in bytes.
func symbolAt(text string, i int) (Symbol, int, error) {
	r, size := utf8.DecodeRuneInString(text[i:])
	if r == utf8.RuneError && size <= 1 {
		return 0, size, fmt.Errorf("invalid UTF-8 at byte offset %d: %w", i, ErrSymbolRange)
	}
	if r > rune(MaxSymbol) {
		return 0, size, fmt.Errorf("character %U at byte offset %d: %w", r, i, ErrSymbolRange)
	}
	return Symbol(r), size, nil
}

func stringOf(symbols []Symbol) string {
	buf := make([]rune, len(symbols))
	for i, sym := range symbols {
		buf[i] = rune(sym)
	}
	return string(buf)
}
