package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// CodeTree is a binary trie whose root-to-leaf paths are the codewords of a
// prefix code.  It is used to decode bit sequences back into text.
//
// A CodeTree shares no storage with the Codebook it was built from.  Like
// Codebook, it must not be modified concurrently with other use.  The zero
// value is an empty tree, the same as NewCodeTree(nil).
type CodeTree struct {
	root Node
}

// Codeword pairs a Symbol with the bit sequence that codes it.
type Codeword struct {
	Code   Bits
	Symbol Symbol
}

// NewCodeTree wraps an existing node graph.  A nil root is replaced by an
// internal node with no children.  The graph is not checked; see IsValid.
func NewCodeTree(root Node) *CodeTree {
	if !present(root) {
		root = NewInternal(nil, nil)
	}
	return &CodeTree{root: root}
}

// BuildCodeTree builds the tree for every codeword in cb.
//
// Codewords are inserted in ascending Symbol order.  The first one that
// cannot be inserted (see Insert) stops construction and BuildCodeTree
// returns a nil tree with the error, since the codewords inserted so far may
// form a valid tree that decodes the wrong text.
//
func BuildCodeTree(cb *Codebook) (*CodeTree, error) {
	t := NewCodeTree(nil)
	for i, sym := range cb.symbols {
		if err := t.Insert(cb.codes[i], sym); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Root returns the root node.
func (t *CodeTree) Root() Node {
	return t.rootNode()
}

// rootNode returns the root, or an empty internal node for the zero value.
func (t *CodeTree) rootNode() Node {
	if !present(t.root) {
		return NewInternal(nil, nil)
	}
	return t.root
}

// IsValid returns true iff every node is either a leaf or an internal node
// with both children present.  A tree with no codewords is not valid.
func (t *CodeTree) IsValid() bool {
	return present(t.root) && t.root.Valid()
}

// Insert adds the path for code, creating internal nodes as needed, and ends
// it with a leaf holding sym.
//
// Insert fails with ErrEmptyCode for an empty code, and with
// ErrNotPrefixFree if code passes through an existing leaf, ends on an
// existing internal node, or ends on a leaf holding another Symbol.  On
// failure the tree is left unchanged.
//
func (t *CodeTree) Insert(code Bits, sym Symbol) error {
	if code.Len() == 0 {
		return fmt.Errorf("codeword for %v: %w", sym, ErrEmptyCode)
	}

	if !present(t.root) {
		t.root = NewInternal(nil, nil)
	}
	in, ok := t.root.(*Internal)
	if !ok {
		return fmt.Errorf("codeword %v for %v: root is a leaf: %w", code, sym, ErrNotPrefixFree)
	}

	last := code.Len() - 1
	for i := 0; i < last; i++ {
		bit := code.at(i)
		child := in.Child(bit)
		if next, ok := child.(*Internal); ok && next != nil {
			in = next
			continue
		}
		if leaf, ok := child.(*Leaf); ok && leaf != nil {
			return fmt.Errorf("codeword %v for %v: prefix %v already codes %v: %w", code, sym, code.Slice(0, i+1), leaf.Symbol, ErrNotPrefixFree)
		}
		next := NewInternal(nil, nil)
		in.setChild(bit, next)
		in = next
	}

	bit := code.at(last)
	switch child := in.Child(bit).(type) {
	case *Internal:
		if child != nil {
			return fmt.Errorf("codeword %v for %v: is a prefix of another codeword: %w", code, sym, ErrNotPrefixFree)
		}
	case *Leaf:
		if child != nil && child.Symbol != sym {
			return fmt.Errorf("codeword %v for %v: already codes %v: %w", code, sym, child.Symbol, ErrNotPrefixFree)
		}
	}
	in.setChild(bit, NewLeaf(sym))
	return nil
}

// Decode decodes a sequence of complete codewords into text.
//
// Decode returns an error wrapping ErrUnknownCode if the bits leave the tree
// through a missing child, and an error wrapping ErrIncompleteCode if the
// last codeword is cut short.  Symbols that are surrogate halves cannot be
// represented in a Go string; use DecodeSymbols for those.
//
func (t *CodeTree) Decode(code Bits) (string, error) {
	symbols, err := t.DecodeSymbols(code)
	if err != nil {
		return "", err
	}
	return stringOf(symbols), nil
}

// DecodeSymbols is like Decode, but returns the Symbols themselves.
func (t *CodeTree) DecodeSymbols(code Bits) ([]Symbol, error) {
	var out []Symbol
	root := t.rootNode()
	node := root
	start := 0
	for i := 0; i < code.Len(); i++ {
		in, ok := node.(*Internal)
		if !ok {
			return nil, fmt.Errorf("bit offset %d: tree has no internal root: %w", i, ErrUnknownCode)
		}

		child := in.Child(code.at(i))
		if !present(child) {
			return nil, fmt.Errorf("bit offset %d: no codeword starts with %v: %w", start, code.Slice(start, i+1), ErrUnknownCode)
		}

		if leaf, ok := child.(*Leaf); ok {
			out = append(out, leaf.Symbol)
			node = root
			start = i + 1
			continue
		}
		node = child
	}

	if start != code.Len() {
		return nil, fmt.Errorf("bit offset %d: trailing bits %v: %w", start, code.Slice(start, code.Len()), ErrIncompleteCode)
	}
	return out, nil
}

// Codewords returns every codeword in the tree, shortest first, and in bit
// order among codewords of the same length.
func (t *CodeTree) Codewords() []Codeword {
	var out byCode
	walk(t.rootNode(), Bits{}, func(path Bits, leaf *Leaf) {
		if leaf != nil {
			out = append(out, Codeword{Code: path, Symbol: leaf.Symbol})
		}
	})
	out.Sort()
	return out
}

// Codebook returns a new Codebook holding every codeword in the tree.
func (t *CodeTree) Codebook() *Codebook {
	cb := NewCodebook()
	for _, cw := range t.Codewords() {
		cb.Insert(cw.Symbol, cw.Code)
	}
	return cb
}

// Dump writes a programmer-readable debugging dump of the CodeTree's current
// state to the given writer.  Missing children are listed after the
// codewords.
func (t *CodeTree) Dump(w io.Writer) (int64, error) {
	var missing byCode
	walk(t.rootNode(), Bits{}, func(path Bits, leaf *Leaf) {
		if leaf == nil {
			missing = append(missing, Codeword{Code: path})
		}
	})
	missing.Sort()

	var buf bytes.Buffer
	buf.WriteString("CodeTree{\n")
	fmt.Fprintf(&buf, "\tIsValid() = %t\n", t.IsValid())
	for _, cw := range t.Codewords() {
		fmt.Fprintf(&buf, "\tDecode(%v) = %v\n", cw.Code, cw.Symbol)
	}
	for _, cw := range missing {
		fmt.Fprintf(&buf, "\tMissing(%v)\n", cw.Code)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// walk calls visit for each leaf and each missing child below n, depth
// first, with the path that reaches it.  Missing children are passed as a
// nil leaf.
func walk(n Node, path Bits, visit func(path Bits, leaf *Leaf)) {
	switch v := n.(type) {
	case *Leaf:
		if v != nil {
			visit(path, v)
			return
		}
	case *Internal:
		if v != nil {
			for _, bit := range [2]bool{false, true} {
				next := path.Clone()
				next.Append(bit)
				walk(v.Child(bit), next, visit)
			}
			return
		}
	}
	visit(path, nil)
}

// present reports whether n is a non-nil node, looking through typed nils.
func present(n Node) bool {
	switch v := n.(type) {
	case *Leaf:
		return v != nil
	case *Internal:
		return v != nil
	}
	return false
}

// type byCode {{{

type byCode []Codeword

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	return list[i].Code.compare(list[j].Code) < 0
}

var _ sort.Interface = byCode(nil)

// }}}
