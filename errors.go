package huffman

import "errors"

var (
	// ErrSymbolRange is returned for text holding a character that is not
	// a single 16-bit code point.
	ErrSymbolRange = errors.New("huffman: character outside 16-bit range")

	// ErrUnknownSymbol is returned by Encode for a character that has no
	// binding in the Codebook.
	ErrUnknownSymbol = errors.New("huffman: character not in codebook")

	// ErrInvalidBits is returned when parsing a bit string that holds
	// anything other than '0' and '1'.
	ErrInvalidBits = errors.New("huffman: invalid bit string")

	// ErrCorruptCodebook is returned when decoding a serialized Codebook
	// fails.
	ErrCorruptCodebook = errors.New("huffman: corrupt codebook data")

	// ErrDegenerateCode is returned by CanonicalCodebook for code lengths
	// that do not describe a complete prefix code.
	ErrDegenerateCode = errors.New("huffman: degenerate code lengths")

	// ErrEmptyCode is returned when inserting a codeword of zero bits into
	// a CodeTree.
	ErrEmptyCode = errors.New("huffman: empty codeword")

	// ErrNotPrefixFree is returned when a codeword is a prefix of another
	// codeword, or two Symbols share a codeword.
	ErrNotPrefixFree = errors.New("huffman: codewords are not prefix-free")

	// ErrUnknownCode is returned by Decode for bits that leave the
	// CodeTree through a missing child.
	ErrUnknownCode = errors.New("huffman: bit sequence matches no codeword")

	// ErrIncompleteCode is returned by Decode when the bits end partway
	// through a codeword.
	ErrIncompleteCode = errors.New("huffman: bit sequence ends inside a codeword")
)
