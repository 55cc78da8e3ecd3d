// Package xmldom implements an arena-backed XML document tree. The
// teacher module (sderkacs/exi-go) has no DOM at all — it is a pure
// SAX/grammar-driven codec — so this package is grounded instead on the
// exiCPP original's vendored rapidxml parser and its XMLDumper.cpp
// serializer. Per the re-architecture notes, the original's
// pointer-linked node tree is rebuilt here as an arena of Node values
// addressed by stable NodeId, rather than raw pointers, so the whole
// document can be released in one Arena.Reset.
package xmldom

import (
	"github.com/dkowalski/exicore/arena"
)

// NodeKind enumerates the kinds of node a Document can hold.
type NodeKind uint8

const (
	KindDocument NodeKind = iota
	KindElement
	KindData
	KindCDATA
	KindComment
	KindDeclaration
	KindDoctype
	KindPI
)

// NodeId is a stable index into a Document's node table. NilNode (-1)
// never refers to a real node; the zero value 0 is the document root.
type NodeId int32

const NilNode NodeId = -1

// Node is one element/text/comment/etc. node in the tree. Children and
// attributes are linked via NodeId rather than pointers so the table
// backing them can be a plain growable slice.
type Node struct {
	Kind NodeKind
	Name arena.StrRef
	Data arena.StrRef // text content (Data/CDATA/Comment/PI data) or declaration/doctype text

	Parent     NodeId
	FirstChild NodeId
	LastChild  NodeId
	PrevSib    NodeId
	NextSib    NodeId

	FirstAttr NodeId
	LastAttr  NodeId
}

// Attribute is stored in the Document's separate attribute table and
// addressed by its own index there; attributes are threaded from their
// owning element's FirstAttr/LastAttr via NextAttr, with PrevAttr
// chaining back.
type Attribute struct {
	Name  arena.StrRef
	Value arena.StrRef

	Owner    NodeId
	PrevAttr NodeId
	NextAttr NodeId
}

// ParseOptions toggles the non-destructive/copy interning mode and which
// auxiliary node kinds a parse keeps, mirroring the original parser's
// template parse-flag set (parse_non_destructive, parse_no_data_nodes,
// parse_validate_closing_tags, parse_comment_nodes, parse_doctype_node,
// parse_pi_nodes).
type ParseOptions struct {
	NonDestructive       bool
	NoDataNodes          bool
	ValidateClosingTags  bool
	CommentNodes         bool
	DoctypeNode          bool
	PINodes              bool
}

// Document owns a node table and the backing arena/interner used to
// allocate interned names and values. NodeId 0 is always the document's
// root pseudo-node.
type Document struct {
	arena    *arena.Arena
	interner *arena.Interner
	nodes    []Node
	attrs    []Attribute

	nonDestructive bool
}

// NewDocument creates an empty Document. When nonDestructive is true,
// names/values produced by Parse reference the original input buffer
// directly (arena.NonDestructiveRef) instead of being copied into the
// arena.
func NewDocument(nonDestructive bool) *Document {
	a := arena.New()
	d := &Document{
		arena:          a,
		interner:       arena.NewInterner(a),
		nonDestructive: nonDestructive,
	}
	root := d.allocNode(KindDocument)
	root.Parent, root.FirstChild, root.LastChild = NilNode, NilNode, NilNode
	root.PrevSib, root.NextSib = NilNode, NilNode
	root.FirstAttr, root.LastAttr = NilNode, NilNode
	return d
}

// Root returns the document's root node id.
func (d *Document) Root() NodeId { return 0 }

func (d *Document) allocNode(kind NodeKind) *Node {
	d.nodes = append(d.nodes, Node{
		Kind: kind, Parent: NilNode, FirstChild: NilNode, LastChild: NilNode,
		PrevSib: NilNode, NextSib: NilNode, FirstAttr: NilNode, LastAttr: NilNode,
	})
	return &d.nodes[len(d.nodes)-1]
}

// Node returns a pointer to the node's storage. Valid only until the
// next AllocateNode call (appends may reallocate the backing slice).
func (d *Document) Node(id NodeId) *Node {
	if id == NilNode {
		return nil
	}
	return &d.nodes[id]
}

func (d *Document) Attr(id NodeId) *Attribute {
	if id == NilNode {
		return nil
	}
	return &d.attrs[id]
}

// intern copies or wraps b depending on the document's interning mode.
func (d *Document) intern(b []byte) arena.StrRef {
	if d.nonDestructive {
		return arena.NonDestructiveRef(b)
	}
	return d.interner.Intern(b)
}

// AllocateNode creates a new, unlinked node of the given kind with name
// and data taken via the document's interning mode.
func (d *Document) AllocateNode(kind NodeKind, name, data []byte) NodeId {
	n := d.allocNode(kind)
	n.Name = d.intern(name)
	n.Data = d.intern(data)
	return NodeId(len(d.nodes) - 1)
}

// AllocateAttribute creates a new, unlinked attribute.
func (d *Document) AllocateAttribute(name, value []byte) NodeId {
	d.attrs = append(d.attrs, Attribute{
		Name: d.intern(name), Value: d.intern(value),
		Owner: NilNode, PrevAttr: NilNode, NextAttr: NilNode,
	})
	return NodeId(len(d.attrs) - 1)
}

// AppendChild links child as the last child of parent.
func (d *Document) AppendChild(parent, child NodeId) {
	p := d.Node(parent)
	c := d.Node(child)
	c.Parent = parent
	c.PrevSib = p.LastChild
	c.NextSib = NilNode
	if p.LastChild != NilNode {
		d.Node(p.LastChild).NextSib = child
	} else {
		p.FirstChild = child
	}
	p.LastChild = child
}

// PrependChild links child as the first child of parent.
func (d *Document) PrependChild(parent, child NodeId) {
	p := d.Node(parent)
	c := d.Node(child)
	c.Parent = parent
	c.NextSib = p.FirstChild
	c.PrevSib = NilNode
	if p.FirstChild != NilNode {
		d.Node(p.FirstChild).PrevSib = child
	} else {
		p.LastChild = child
	}
	p.FirstChild = child
}

// InsertChildBefore links child into parent's child list immediately
// before sibling. If sibling is NilNode, child is appended.
func (d *Document) InsertChildBefore(parent, child, sibling NodeId) {
	if sibling == NilNode {
		d.AppendChild(parent, child)
		return
	}
	p := d.Node(parent)
	c := d.Node(child)
	s := d.Node(sibling)
	c.Parent = parent
	c.NextSib = sibling
	c.PrevSib = s.PrevSib
	if s.PrevSib != NilNode {
		d.Node(s.PrevSib).NextSib = child
	} else {
		p.FirstChild = child
	}
	s.PrevSib = child
}

// RemoveChild unlinks child from its parent's child list. child's own
// Parent/sibling fields are cleared; its subtree remains allocated in
// the arena (arenas are reclaimed wholesale via Document.Reset, not
// node-by-node).
func (d *Document) RemoveChild(child NodeId) {
	c := d.Node(child)
	if c.Parent == NilNode {
		return
	}
	p := d.Node(c.Parent)
	if c.PrevSib != NilNode {
		d.Node(c.PrevSib).NextSib = c.NextSib
	} else {
		p.FirstChild = c.NextSib
	}
	if c.NextSib != NilNode {
		d.Node(c.NextSib).PrevSib = c.PrevSib
	} else {
		p.LastChild = c.PrevSib
	}
	c.Parent, c.PrevSib, c.NextSib = NilNode, NilNode, NilNode
}

// RemoveAllChildren unlinks every child of parent.
func (d *Document) RemoveAllChildren(parent NodeId) {
	p := d.Node(parent)
	child := p.FirstChild
	for child != NilNode {
		next := d.Node(child).NextSib
		d.Node(child).Parent, d.Node(child).PrevSib, d.Node(child).NextSib = NilNode, NilNode, NilNode
		child = next
	}
	p.FirstChild, p.LastChild = NilNode, NilNode
}

// AppendAttribute links attr as the last attribute of owner.
func (d *Document) AppendAttribute(owner, attr NodeId) {
	o := d.Node(owner)
	a := d.Attr(attr)
	a.Owner = owner
	a.PrevAttr = o.LastAttr
	a.NextAttr = NilNode
	if o.LastAttr != NilNode {
		d.Attr(o.LastAttr).NextAttr = attr
	} else {
		o.FirstAttr = attr
	}
	o.LastAttr = attr
}

// RemoveAttribute unlinks attr from its owner's attribute list.
func (d *Document) RemoveAttribute(attr NodeId) {
	a := d.Attr(attr)
	if a.Owner == NilNode {
		return
	}
	o := d.Node(a.Owner)
	if a.PrevAttr != NilNode {
		d.Attr(a.PrevAttr).NextAttr = a.NextAttr
	} else {
		o.FirstAttr = a.NextAttr
	}
	if a.NextAttr != NilNode {
		d.Attr(a.NextAttr).PrevAttr = a.PrevAttr
	} else {
		o.LastAttr = a.PrevAttr
	}
	a.Owner, a.PrevAttr, a.NextAttr = NilNode, NilNode, NilNode
}

// Children iterates the direct children of parent, calling fn for each.
// If name is non-empty, only KindElement children whose Name matches are
// visited (a filtered traversal, per spec's named-child-lookup
// requirement).
func (d *Document) Children(parent NodeId, name string, fn func(NodeId)) {
	child := d.Node(parent).FirstChild
	for child != NilNode {
		n := d.Node(child)
		if name == "" || (n.Kind == KindElement && n.Name.String() == name) {
			fn(child)
		}
		child = n.NextSib
	}
}

// Attributes iterates the attributes of owner.
func (d *Document) Attributes(owner NodeId, fn func(NodeId)) {
	a := d.Node(owner).FirstAttr
	for a != NilNode {
		fn(a)
		a = d.Attr(a).NextAttr
	}
}

// CloneNode deep-copies src (and its attributes and descendants) into
// dst's node table, returning the new, unlinked root of the clone.
// src and dst may be the same Document.
func (d *Document) CloneNode(dst *Document, src NodeId) NodeId {
	sn := d.Node(src)
	clone := dst.AllocateNode(sn.Kind, sn.Name.Bytes(), sn.Data.Bytes())

	d.Attributes(src, func(a NodeId) {
		sa := d.Attr(a)
		na := dst.AllocateAttribute(sa.Name.Bytes(), sa.Value.Bytes())
		dst.AppendAttribute(clone, na)
	})

	d.Children(src, "", func(c NodeId) {
		childClone := d.CloneNode(dst, c)
		dst.AppendChild(clone, childClone)
	})

	return clone
}

// Reset discards the entire document tree and its interned storage.
func (d *Document) Reset() {
	d.arena.Reset()
	d.nodes = d.nodes[:0]
	d.attrs = d.attrs[:0]
	root := d.allocNode(KindDocument)
	_ = root
}
