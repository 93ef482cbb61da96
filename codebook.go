package huffman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Codebook maps Symbols to their codewords.  Entries are kept sorted by
// Symbol, so AllSymbols and Dump always list them in ascending order.
//
// The zero value is an empty Codebook ready to use.  A Codebook is not safe
// for concurrent use while it is being modified; once built, any number of
// goroutines may call its read-only methods.
type Codebook struct {
	symbols []Symbol
	codes   []Bits
}

// NewCodebook returns an empty Codebook.
func NewCodebook() *Codebook {
	return &Codebook{
		symbols: make([]Symbol, 0, 1),
		codes:   make([]Bits, 0, 1),
	}
}

// Insert binds sym to a copy of code.  If sym is already bound, its codeword
// is replaced in place; otherwise sym is inserted at the position that keeps
// the table sorted.
func (cb *Codebook) Insert(sym Symbol, code Bits) {
	code = code.Clone()

	if index, found := cb.indexOf(sym); found {
		cb.codes[index] = code
		return
	}

	length := len(cb.symbols)
	if length == cap(cb.symbols) {
		cb.grow()
	}

	index := 0
	for index < length && cb.symbols[index] < sym {
		index++
	}

	cb.symbols = cb.symbols[:length+1]
	cb.codes = cb.codes[:length+1]
	copy(cb.symbols[index+1:], cb.symbols[index:length])
	copy(cb.codes[index+1:], cb.codes[index:length])
	cb.symbols[index] = sym
	cb.codes[index] = code
}

// grow doubles the capacity of the table, starting from 1.
func (cb *Codebook) grow() {
	newCap := 2 * cap(cb.symbols)
	if newCap == 0 {
		newCap = 1
	}
	symbols := make([]Symbol, len(cb.symbols), newCap)
	codes := make([]Bits, len(cb.codes), newCap)
	copy(symbols, cb.symbols)
	copy(codes, cb.codes)
	cb.symbols = symbols
	cb.codes = codes
}

func (cb *Codebook) indexOf(sym Symbol) (int, bool) {
	index := sort.Search(len(cb.symbols), func(i int) bool {
		return cb.symbols[i] >= sym
	})
	return index, index < len(cb.symbols) && cb.symbols[index] == sym
}

// Len returns the number of bound Symbols.
func (cb *Codebook) Len() int {
	return len(cb.symbols)
}

// Contains returns true iff sym has a codeword.
func (cb *Codebook) Contains(sym Symbol) bool {
	_, found := cb.indexOf(sym)
	return found
}

// ContainsAll returns true iff every character of text has a codeword.  The
// empty string is trivially contained; invalid UTF-8 never is.
func (cb *Codebook) ContainsAll(text string) bool {
	for i := 0; i < len(text); {
		sym, size, err := symbolAt(text, i)
		if err != nil || !cb.Contains(sym) {
			return false
		}
		i += size
	}
	return true
}

// Lookup returns a copy of the codeword bound to sym.  The second result is
// false if sym has no codeword.
func (cb *Codebook) Lookup(sym Symbol) (Bits, bool) {
	index, found := cb.indexOf(sym)
	if !found {
		return Bits{}, false
	}
	return cb.codes[index].Clone(), true
}

// Encode concatenates the codewords for each character of text.
//
// Every character must be bound.  Encode stops at the first one that is not
// and returns an error wrapping ErrUnknownSymbol; no partial output is
// returned.  Invalid UTF-8 and characters above MaxSymbol fail with
// ErrSymbolRange.
func (cb *Codebook) Encode(text string) (Bits, error) {
	var out Bits
	for offset := 0; offset < len(text); {
		sym, size, err := symbolAt(text, offset)
		if err != nil {
			return Bits{}, err
		}
		if err := cb.appendCode(&out, sym); err != nil {
			return Bits{}, fmt.Errorf("byte offset %d: %w", offset, err)
		}
		offset += size
	}
	return out, nil
}

// EncodeSymbols is like Encode, but takes the input already split into
// Symbols.
func (cb *Codebook) EncodeSymbols(symbols []Symbol) (Bits, error) {
	var out Bits
	for index, sym := range symbols {
		if err := cb.appendCode(&out, sym); err != nil {
			return Bits{}, fmt.Errorf("symbol index %d: %w", index, err)
		}
	}
	return out, nil
}

func (cb *Codebook) appendCode(out *Bits, sym Symbol) error {
	index, found := cb.indexOf(sym)
	if !found {
		return fmt.Errorf("%v: %w", sym, ErrUnknownSymbol)
	}
	out.AppendBits(cb.codes[index])
	return nil
}

// AllSymbols returns the bound Symbols in ascending order.  The slice is a
// copy and may be modified freely.
func (cb *Codebook) AllSymbols() []Symbol {
	out := make([]Symbol, len(cb.symbols))
	copy(out, cb.symbols)
	return out
}

// String returns the bound characters as a list, e.g. "[a, b, c]".
func (cb *Codebook) String() string {
	parts := make([]string, len(cb.symbols))
	for i, sym := range cb.symbols {
		parts[i] = sym.text()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

var _ fmt.Stringer = (*Codebook)(nil)

// Dump writes a programmer-readable debugging dump of the Codebook's current
// state to the given writer.
func (cb *Codebook) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Codebook{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", len(cb.symbols))
	for i, sym := range cb.symbols {
		fmt.Fprintf(&buf, "\tLookup(%v) = %v\n", sym, cb.codes[i])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// MarshalJSON encodes the Codebook as an object mapping each Symbol's
// numeric value to its codeword as a string of '0' and '1' characters.
func (cb *Codebook) MarshalJSON() ([]byte, error) {
	m := make(map[Symbol]string, len(cb.symbols))
	for i, sym := range cb.symbols {
		m[sym] = cb.codes[i].Text()
	}
	return json.Marshal(m)
}

// UnmarshalJSON replaces the contents of the Codebook with the bindings
// encoded by MarshalJSON.
func (cb *Codebook) UnmarshalJSON(raw []byte) error {
	var m map[Symbol]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}

	fresh := NewCodebook()
	for sym, text := range m {
		code, err := ParseBits(text)
		if err != nil {
			return fmt.Errorf("codeword for %v: %w", sym, err)
		}
		fresh.Insert(sym, code)
	}
	*cb = *fresh
	return nil
}

var (
	_ json.Marshaler   = (*Codebook)(nil)
	_ json.Unmarshaler = (*Codebook)(nil)
)

type wireEntry struct {
	_      struct{} `cbor:",toarray"`
	Symbol Symbol
	Size   int
	Packed []byte
}

// MarshalBinary encodes the Codebook as a CBOR array of
// [symbol, size, packed bits] entries in ascending Symbol order.
func (cb *Codebook) MarshalBinary() ([]byte, error) {
	entries := make([]wireEntry, len(cb.symbols))
	for i, sym := range cb.symbols {
		code := cb.codes[i]
		entries[i] = wireEntry{Symbol: sym, Size: code.Len(), Packed: code.packed()}
	}
	return cbor.Marshal(entries)
}

// UnmarshalBinary replaces the contents of the Codebook with the bindings
// encoded by MarshalBinary.
func (cb *Codebook) UnmarshalBinary(data []byte) error {
	var entries []wireEntry
	if err := cbor.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("%v: %w", err, ErrCorruptCodebook)
	}

	fresh := NewCodebook()
	for i, entry := range entries {
		if i > 0 && entries[i-1].Symbol >= entry.Symbol {
			return fmt.Errorf("entry %d: symbols out of order: %w", i, ErrCorruptCodebook)
		}
		code, err := unpackBits(entry.Size, entry.Packed)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		fresh.Insert(entry.Symbol, code)
	}
	*cb = *fresh
	return nil
}
