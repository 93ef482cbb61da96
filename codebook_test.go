package huffman

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestCodebook() *Codebook {
	cb := NewCodebook()
	cb.Insert('a', MustParseBits("0"))
	cb.Insert('b', MustParseBits("10"))
	cb.Insert('c', MustParseBits("11"))
	return cb
}

func TestCodebook_InsertKeepsOrder(t *testing.T) {
	cb := NewCodebook()
	cb.Insert('d', MustParseBits("0"))
	cb.Insert('b', MustParseBits("10"))
	cb.Insert('f', MustParseBits("11"))
	assert.Equal(t, []Symbol{'b', 'd', 'f'}, cb.AllSymbols())
	assert.Equal(t, "[b, d, f]", cb.String())

	cb.Insert(0xd800, MustParseBits("111"))
	assert.Equal(t, `[b, d, f, \ud800]`, cb.String())
}

func TestCodebook_ContainsAfterInsert(t *testing.T) {
	var cb Codebook
	inserted := []Symbol{'m', 'a', 'z', 'q', 'b', 'y', '0', 0x20ac}
	for i, sym := range inserted {
		cb.Insert(sym, MakeBits(8, uint64(i)))
		for _, prior := range inserted[:i+1] {
			if !cb.Contains(prior) {
				t.Fatalf("after inserting %v: expected Contains(%v)", sym, prior)
			}
		}
	}
	assert.False(t, cb.Contains('c'))
	assert.Equal(t, len(inserted), cb.Len())

	all := cb.AllSymbols()
	require.Len(t, all, len(inserted))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1], all[i])
	}
}

func TestCodebook_InsertReplaces(t *testing.T) {
	cb := makeTestCodebook()
	cb.Insert('b', MustParseBits("111"))
	assert.Equal(t, 3, cb.Len())
	assert.Equal(t, []Symbol{'a', 'b', 'c'}, cb.AllSymbols())

	code, found := cb.Lookup('b')
	require.True(t, found)
	assert.Equal(t, "111", code.Text())
}

func TestCodebook_Lookup(t *testing.T) {
	cb := makeTestCodebook()

	code, found := cb.Lookup('c')
	require.True(t, found)
	assert.Equal(t, "11", code.Text())

	_, found = cb.Lookup('x')
	assert.False(t, found)

	// Neither the inserted value nor the returned one alias the table.
	code.Append(false)
	again, _ := cb.Lookup('c')
	assert.Equal(t, "11", again.Text())

	src := MustParseBits("01")
	cb.Insert('d', src)
	src.Append(true)
	stored, _ := cb.Lookup('d')
	assert.Equal(t, "01", stored.Text())
}

func TestCodebook_AllSymbolsIsCopy(t *testing.T) {
	cb := makeTestCodebook()
	all := cb.AllSymbols()
	all[0] = 'z'
	assert.Equal(t, []Symbol{'a', 'b', 'c'}, cb.AllSymbols())
}

func TestCodebook_ContainsAll(t *testing.T) {
	cb := makeTestCodebook()
	assert.True(t, cb.ContainsAll(""))
	assert.True(t, cb.ContainsAll("abccba"))
	assert.False(t, cb.ContainsAll("abd"))
	assert.False(t, cb.ContainsAll("a😀"))
	assert.False(t, cb.ContainsAll("a\xff"))

	cb.Insert(0xfffd, MustParseBits("00"))
	assert.True(t, cb.ContainsAll("a\ufffd"))
	assert.False(t, cb.ContainsAll("a\xff"))
}

func TestCodebook_Encode(t *testing.T) {
	cb := makeTestCodebook()

	code, err := cb.Encode("abc")
	require.NoError(t, err)
	assert.Equal(t, "01011", code.Text())

	code, err = cb.Encode("")
	require.NoError(t, err)
	assert.Equal(t, 0, code.Len())

	_, err = cb.Encode("abx")
	require.ErrorIs(t, err, ErrUnknownSymbol)
	assert.Contains(t, err.Error(), "'x'")

	_, err = cb.Encode("a😀")
	require.ErrorIs(t, err, ErrSymbolRange)

	// Invalid UTF-8 is not read as U+FFFD, even when U+FFFD is bound.
	withReplacement := makeTestCodebook()
	withReplacement.Insert(0xfffd, MustParseBits("00"))
	_, err = withReplacement.Encode("a\xff")
	require.ErrorIs(t, err, ErrSymbolRange)
	assert.Contains(t, err.Error(), "byte offset 1")
	_, err = cb.Encode("a\xff")
	require.ErrorIs(t, err, ErrSymbolRange)

	code, err = cb.EncodeSymbols([]Symbol{'c', 'a'})
	require.NoError(t, err)
	assert.Equal(t, "110", code.Text())

	_, err = cb.EncodeSymbols([]Symbol{'a', 'q'})
	require.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestCodebook_Empty(t *testing.T) {
	var cb Codebook
	assert.True(t, cb.ContainsAll(""))
	assert.False(t, cb.ContainsAll("x"))
	assert.False(t, cb.Contains('x'))
	assert.Empty(t, cb.AllSymbols())
	assert.Equal(t, "[]", cb.String())

	code, err := cb.Encode("")
	require.NoError(t, err)
	assert.Equal(t, 0, code.Len())
}

func TestCodebook_Growth(t *testing.T) {
	cb := NewCodebook()
	assert.Equal(t, 1, cap(cb.symbols))
	for sym := Symbol(10); sym > 0; sym-- {
		cb.Insert(sym, MakeBits(4, uint64(sym)))
	}
	assert.Equal(t, 16, cap(cb.symbols))
	assert.Equal(t, 10, cb.Len())
	for sym := Symbol(1); sym <= 10; sym++ {
		code, found := cb.Lookup(sym)
		require.True(t, found)
		assert.True(t, code.Equal(MakeBits(4, uint64(sym))), "codeword for %v", sym)
	}
}

func TestCodebook_Dump(t *testing.T) {
	cb := makeTestCodebook()

	expectDump := strings.Join([]string{
		"Codebook{\n",
		"\tLen() = 3\n",
		"\tLookup('a') = \"0\"\n",
		"\tLookup('b') = \"10\"\n",
		"\tLookup('c') = \"11\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = cb.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestCodebook_MarshalJSON(t *testing.T) {
	cb := makeTestCodebook()

	raw, err := json.Marshal(cb)
	require.NoError(t, err)
	assert.Equal(t, `{"97":"0","98":"10","99":"11"}`, string(raw))

	var back Codebook
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, cb.AllSymbols(), back.AllSymbols())
	code, _ := back.Lookup('b')
	assert.Equal(t, "10", code.Text())

	err = json.Unmarshal([]byte(`{"97":"0z"}`), &back)
	require.ErrorIs(t, err, ErrInvalidBits)
}

func TestCodebook_MarshalBinary(t *testing.T) {
	cb := makeTestCodebook()
	cb.Insert(0x20ac, MustParseBits("0110100101"))

	data, err := cb.MarshalBinary()
	require.NoError(t, err)

	back := NewCodebook()
	require.NoError(t, back.UnmarshalBinary(data))
	require.Equal(t, cb.AllSymbols(), back.AllSymbols())
	for _, sym := range cb.AllSymbols() {
		expect, _ := cb.Lookup(sym)
		actual, _ := back.Lookup(sym)
		assert.True(t, expect.Equal(actual), "codeword for %v", sym)
	}

	require.ErrorIs(t, back.UnmarshalBinary([]byte{0xff, 0x00}), ErrCorruptCodebook)
}
