// Package huffman implements the encode/decode core of a Huffman code: a
// Codebook that maps characters to variable-length bit sequences, and a
// CodeTree (a binary trie built from a Codebook) that reverses the mapping.
//
// Choosing the code itself from symbol frequencies is left to the caller.
// CanonicalCodebook can rebuild a Codebook from per-symbol code lengths,
// which is how a code is usually transmitted.
//
// References:
//
//     <https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
