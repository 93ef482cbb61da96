package huffman

// Node is a node of a CodeTree.  It is either a *Leaf or an *Internal node.
type Node interface {
	// Valid returns true iff the subtree rooted at this node is a
	// well-formed code tree: every leaf is non-nil and every internal node
	// has both of its children.
	Valid() bool

	node()
}

// Leaf is a node that terminates a codeword.
type Leaf struct {
	Symbol Symbol
}

// NewLeaf returns a leaf holding sym.
func NewLeaf(sym Symbol) *Leaf {
	return &Leaf{Symbol: sym}
}

// Valid returns true for any non-nil leaf.
func (leaf *Leaf) Valid() bool {
	return leaf != nil
}

func (*Leaf) node() {}

// Internal is a node with a child for each bit value.  A nil child means no
// codeword continues that way.
type Internal struct {
	Zero Node
	One  Node
}

// NewInternal returns an internal node with the given children, either of
// which may be nil.
func NewInternal(zero, one Node) *Internal {
	return &Internal{Zero: zero, One: one}
}

// Child returns the child reached by following bit.
func (in *Internal) Child(bit bool) Node {
	if bit {
		return in.One
	}
	return in.Zero
}

func (in *Internal) setChild(bit bool, child Node) {
	if bit {
		in.One = child
	} else {
		in.Zero = child
	}
}

// Valid returns true iff both children are present and valid.
func (in *Internal) Valid() bool {
	return in != nil && in.Zero != nil && in.Zero.Valid() && in.One != nil && in.One.Valid()
}

func (*Internal) node() {}

var (
	_ Node = (*Leaf)(nil)
	_ Node = (*Internal)(nil)
)
