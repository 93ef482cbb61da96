package huffman

import (
	"fmt"
	"iter"
	mathbits "math/bits"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

const wordSize = 64

// Bits represents an ordered sequence of bits of any length.  The zero value
// is the empty sequence.
//
// Bits values share storage when copied; use Clone before appending to a copy
// that must stay independent.
type Bits struct {
	words []uint64
	size  int
}

// MakeBits is a convenience function that constructs a sequence of size bits.
// The least significant bit of value is the first bit.
func MakeBits(size int, value uint64) Bits {
	assert.Assertf(size >= 0 && size <= wordSize, "size %d out of range [0, %d]", size, wordSize)
	if size == 0 {
		return Bits{}
	}
	if size < wordSize {
		value &= (uint64(1) << size) - 1
	}
	return Bits{words: []uint64{value}, size: size}
}

// MakeReversedBits constructs a sequence from bits that are in the other
// order, i.e. the most significant of the low size bits of value is the
// *first* bit.  This is how canonical codes are usually written.
func MakeReversedBits(size int, value uint64) Bits {
	assert.Assertf(size >= 0 && size <= wordSize, "size %d out of range [0, %d]", size, wordSize)
	if size == 0 {
		return Bits{}
	}
	return MakeBits(size, mathbits.Reverse64(value)>>(wordSize-size))
}

// ParseBits parses a string of '0' and '1' characters, first bit first.
func ParseBits(str string) (Bits, error) {
	var b Bits
	for i, ch := range str {
		switch ch {
		case '0':
			b.Append(false)
		case '1':
			b.Append(true)
		default:
			return Bits{}, fmt.Errorf("unexpected %q at offset %d in %q: %w", ch, i, str, ErrInvalidBits)
		}
	}
	return b, nil
}

// MustParseBits is like ParseBits but panics on error.
func MustParseBits(str string) Bits {
	b, err := ParseBits(str)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of bits in the sequence.
func (b Bits) Len() int {
	return b.size
}

// At returns the i'th bit.
func (b Bits) At(i int) bool {
	assert.Assertf(i >= 0 && i < b.size, "bit index %d out of range [0, %d)", i, b.size)
	return b.at(i)
}

func (b Bits) at(i int) bool {
	return (b.words[i/wordSize]>>(uint(i)%wordSize))&1 != 0
}

// Append adds one bit to the end of the sequence.
func (b *Bits) Append(bit bool) {
	index := uint(b.size) % wordSize
	if index == 0 {
		b.words = append(b.words, 0)
	}
	last := len(b.words) - 1
	if bit {
		b.words[last] |= uint64(1) << index
	} else {
		b.words[last] &^= uint64(1) << index
	}
	b.size++
}

// AppendBits adds every bit of other to the end of the sequence.
func (b *Bits) AppendBits(other Bits) {
	for i := 0; i < other.size; i++ {
		b.Append(other.at(i))
	}
}

// All returns an iterator over the bits in order.  The iterator may be used
// any number of times.
func (b Bits) All() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := 0; i < b.size; i++ {
			if !yield(b.at(i)) {
				return
			}
		}
	}
}

// Clone returns a copy of b that shares no storage with it.
func (b Bits) Clone() Bits {
	if b.size == 0 {
		return Bits{}
	}
	words := make([]uint64, (b.size+wordSize-1)/wordSize)
	copy(words, b.words)
	return Bits{words: words, size: b.size}
}

// Equal returns true iff both sequences hold the same bits.
func (b Bits) Equal(other Bits) bool {
	return b.compare(other) == 0
}

// compare orders sequences by length, then bit by bit with 0 before 1.
func (b Bits) compare(other Bits) int {
	if b.size != other.size {
		if b.size < other.size {
			return -1
		}
		return 1
	}
	for i := 0; i < b.size; i++ {
		x, y := b.at(i), other.at(i)
		if x != y {
			if y {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Text returns the bits as a string of '0' and '1' characters.
func (b Bits) Text() string {
	var sb strings.Builder
	sb.Grow(b.size)
	for i := 0; i < b.size; i++ {
		if b.at(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// String returns the string representation of this sequence.
func (b Bits) String() string {
	return strconv.Quote(b.Text())
}

var _ fmt.Stringer = Bits{}

// packed returns the bits eight to a byte, first bit in the least
// significant position.
func (b Bits) packed() []byte {
	out := make([]byte, (b.size+7)/8)
	for i := 0; i < b.size; i++ {
		if b.at(i) {
			out[i/8] |= 1 << (uint(i) % 8)
		}
	}
	return out
}

func unpackBits(size int, data []byte) (Bits, error) {
	if size < 0 || len(data) != (size+7)/8 {
		return Bits{}, fmt.Errorf("%d bytes cannot hold a %d-bit sequence: %w", len(data), size, ErrCorruptCodebook)
	}
	var b Bits
	for i := 0; i < size; i++ {
		b.Append(data[i/8]&(1<<(uint(i)%8)) != 0)
	}
	return b, nil
}

// Slice returns a copy of the bits in the half-open range [from, to).
func (b Bits) Slice(from, to int) Bits {
	assert.Assertf(from >= 0 && from <= to && to <= b.size, "slice [%d, %d) out of range [0, %d]", from, to, b.size)
	var out Bits
	for i := from; i < to; i++ {
		out.Append(b.at(i))
	}
	return out
}
