package huffman

import (
	"fmt"
)

// MaxCodeSize is the longest codeword length accepted by CanonicalCodebook.
const MaxCodeSize = 32

// CanonicalCodebook builds the canonical Huffman code for the given bit
// lengths, one for each symbol, per the algorithm in RFC 1951 Section 3.2.2.
// Symbols with an assigned bit length of 0 are omitted from the code
// entirely.
//
// Not all inputs are valid for constructing a canonical Huffman code.  In
// particular, lengths that over-subscribe the code space, or that leave part
// of it unused, are rejected with an error wrapping ErrDegenerateCode.
// Degenerate codes consisting of 0 valid symbols or 1 valid symbol of length
// 1 are permitted, however, as there is no way to construct a non-degenerate
// Huffman code for such cases.  (A CodeTree built from the 1-symbol code is
// not valid, since its root has only one child.)
//
func CanonicalCodebook(sizes []byte) (*Codebook, error) {
	if len(sizes) > int(MaxSymbol)+1 {
		return nil, fmt.Errorf("%d code lengths given, max %d: %w", len(sizes), int(MaxSymbol)+1, ErrDegenerateCode)
	}

	var countArray [MaxCodeSize + 1]uint64
	var numSymbolsWithNonZeroSizes uint32
	var minSize, maxSize byte
	for _, size := range sizes {
		if size == 0 {
			continue
		}

		if size > MaxCodeSize {
			return nil, fmt.Errorf("bit length %d exceeds max %d: %w", size, MaxCodeSize, ErrDegenerateCode)
		}

		if numSymbolsWithNonZeroSizes == 0 {
			minSize = size
			maxSize = size
		} else if minSize > size {
			minSize = size
		} else if maxSize < size {
			maxSize = size
		}

		countArray[size]++
		numSymbolsWithNonZeroSizes++
	}

	cb := NewCodebook()

	// permit degenerate code with 0 symbols
	if numSymbolsWithNonZeroSizes == 0 {
		return cb, nil
	}

	var nextCodeArray [MaxCodeSize + 1]uint64
	var code uint64
	for bits := minSize; bits <= maxSize; bits++ {
		code = (code + countArray[bits-1]) << 1
		nextCodeArray[bits] = code
	}
	code += countArray[maxSize]

	// permit degenerate code with 1 symbol
	// forbid all other degenerate codes
	if code == 1 && maxSize == 1 {
		// pass
	} else if code != (uint64(1) << maxSize) {
		return nil, fmt.Errorf("expected %d codes of length %d, got %d: %w", uint64(1)<<maxSize, maxSize, code, ErrDegenerateCode)
	}

	for symbol, size := range sizes {
		if size == 0 {
			continue
		}

		code := nextCodeArray[size]
		nextCodeArray[size]++

		cb.Insert(Symbol(symbol), MakeReversedBits(int(size), code))
	}

	return cb, nil
}
