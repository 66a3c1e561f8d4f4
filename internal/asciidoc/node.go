package asciidoc

import "hash/fnv"

// NodeKind classifies every node in the document tree, block and inline
// alike, so a single Visitor interface can dispatch on one enum (spec.md
// §4.H "Backend interface is an enter/exit pair per node kind").
type NodeKind uint8

const (
	NodeDocument NodeKind = iota
	NodeSection
	NodePreamble
	NodePart
	NodeParagraph
	NodeAdmonition
	NodeDelimitedBlock // example/sidebar/quote/listing/literal/passthrough/comment/open
	NodeBlockMacro
	NodeList
	NodeListItem
	NodeDescriptionList
	NodeDescriptionListItem
	NodeTable
	NodeTableRow
	NodeTableCell
	NodeAttributeEntry
	NodeQuotedParagraph

	NodeText
	NodeBold
	NodeItalic
	NodeMonospace
	NodeMark
	NodeSuperscript
	NodeSubscript
	NodeLitMono
	NodeCurlyQuote
	NodeSpecialChar
	NodeNewline
	NodeFootnote
	NodeFootnoteRef
	NodeXref
	NodeLink
	NodeImage
	NodeButton
	NodeMenu
	NodeIcon
	NodeKeyboard
	NodeAttrRef
	NodeCallout
	NodePassthrough
)

//nolint:revive // cyclomatic - plain name table
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "Document"
	case NodeSection:
		return "Section"
	case NodePreamble:
		return "Preamble"
	case NodePart:
		return "Part"
	case NodeParagraph:
		return "Paragraph"
	case NodeAdmonition:
		return "Admonition"
	case NodeDelimitedBlock:
		return "DelimitedBlock"
	case NodeBlockMacro:
		return "BlockMacro"
	case NodeList:
		return "List"
	case NodeListItem:
		return "ListItem"
	case NodeDescriptionList:
		return "DescriptionList"
	case NodeDescriptionListItem:
		return "DescriptionListItem"
	case NodeTable:
		return "Table"
	case NodeTableRow:
		return "TableRow"
	case NodeTableCell:
		return "TableCell"
	case NodeAttributeEntry:
		return "AttributeEntry"
	case NodeQuotedParagraph:
		return "QuotedParagraph"
	case NodeText:
		return "Text"
	case NodeBold:
		return "Bold"
	case NodeItalic:
		return "Italic"
	case NodeMonospace:
		return "Monospace"
	case NodeMark:
		return "Mark"
	case NodeSuperscript:
		return "Superscript"
	case NodeSubscript:
		return "Subscript"
	case NodeLitMono:
		return "LitMono"
	case NodeCurlyQuote:
		return "CurlyQuote"
	case NodeSpecialChar:
		return "SpecialChar"
	case NodeNewline:
		return "Newline"
	case NodeFootnote:
		return "Footnote"
	case NodeFootnoteRef:
		return "FootnoteRef"
	case NodeXref:
		return "Xref"
	case NodeLink:
		return "Link"
	case NodeImage:
		return "Image"
	case NodeButton:
		return "Button"
	case NodeMenu:
		return "Menu"
	case NodeIcon:
		return "Icon"
	case NodeKeyboard:
		return "Keyboard"
	case NodeAttrRef:
		return "AttrRef"
	case NodeCallout:
		return "Callout"
	case NodePassthrough:
		return "Passthrough"
	default:
		return "Unknown"
	}
}

// Node is the interface implemented by every tree node, block or inline.
// A Builder assembles each node; the one in-place change afterwards is
// registerAnchors assigning a generated ID to an anchored block or
// section that had none (the hash is not recomputed). There are no
// parent back-pointers; the evaluator carries ancestry on its call stack,
// per spec.md §5's arena/ownership model.
type Node interface {
	Kind() NodeKind
	Loc() Location
	Hash() uint64
	Children() []Node
	Equal(other Node) bool
}

// baseNode holds the fields common to every concrete node type.
type baseNode struct {
	kind     NodeKind
	loc      Location
	hash     uint64
	children []Node
}

func (n *baseNode) Kind() NodeKind  { return n.kind }
func (n *baseNode) Loc() Location   { return n.loc }
func (n *baseNode) Hash() uint64    { return n.hash }
func (n *baseNode) Children() []Node {
	if n.children == nil {
		return nil
	}
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

// computeHash derives a content hash from kind, children hashes (in
// order), and a caller-supplied payload fingerprint (raw text, attribute
// values, etc). Mirrors the teacher's FNV-1a node-hash approach, extended
// with an explicit payload argument since AsciiDoc nodes carry typed
// fields rather than a single source-slice view.
func computeHash(kind NodeKind, children []Node, payload []byte) uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(kind)})
	for _, c := range children {
		ch := c.Hash()
		h.Write([]byte{byte(ch >> 56), byte(ch >> 48), byte(ch >> 40), byte(ch >> 32),
			byte(ch >> 24), byte(ch >> 16), byte(ch >> 8), byte(ch)})
	}
	h.Write(payload)
	return h.Sum64()
}

// NodeBuilder provides a fluent API for assembling a Node. Only the fields
// relevant to a given Kind need to be set; Build does not check which
// fields are present.
type NodeBuilder struct {
	n *genericNode
}

// genericNode backs every concrete Block/Inline exposed by this package;
// the accessor functions in inline.go (TextOf, TargetOf, StyleOf, ...)
// project out of it rather than each kind getting its own Go struct,
// which keeps the ~40-variant node vocabulary in one place the way the
// teacher keeps its smaller vocabulary in node.go.
type genericNode struct {
	baseNode
	Style      string
	Title      InlineNodes
	ID         string
	Roles      []string
	Options    []string
	Attrs      *AttrList
	Text       string
	Level      int
	Target     string
	LinkText   InlineNodes
	FootnoteID string
	CalloutNum int
	Cols       []ColumnSpec
	RowCount   int
}

// NewNodeBuilder starts a builder for the given kind.
func NewNodeBuilder(kind NodeKind) *NodeBuilder {
	return &NodeBuilder{n: &genericNode{baseNode: baseNode{kind: kind}}}
}

func (b *NodeBuilder) WithLoc(loc Location) *NodeBuilder        { b.n.loc = loc; return b }
func (b *NodeBuilder) WithChildren(c []Node) *NodeBuilder       { b.n.children = c; return b }
func (b *NodeBuilder) WithStyle(s string) *NodeBuilder          { b.n.Style = s; return b }
func (b *NodeBuilder) WithTitle(t InlineNodes) *NodeBuilder     { b.n.Title = t; return b }
func (b *NodeBuilder) WithID(id string) *NodeBuilder            { b.n.ID = id; return b }
func (b *NodeBuilder) WithRoles(r []string) *NodeBuilder        { b.n.Roles = r; return b }
func (b *NodeBuilder) WithOptions(o []string) *NodeBuilder      { b.n.Options = o; return b }
func (b *NodeBuilder) WithAttrs(a *AttrList) *NodeBuilder       { b.n.Attrs = a; return b }
func (b *NodeBuilder) WithText(t string) *NodeBuilder           { b.n.Text = t; return b }
func (b *NodeBuilder) WithLevel(l int) *NodeBuilder             { b.n.Level = l; return b }
func (b *NodeBuilder) WithTarget(t string) *NodeBuilder         { b.n.Target = t; return b }
func (b *NodeBuilder) WithLinkText(t InlineNodes) *NodeBuilder  { b.n.LinkText = t; return b }
func (b *NodeBuilder) WithFootnoteID(id string) *NodeBuilder    { b.n.FootnoteID = id; return b }
func (b *NodeBuilder) WithCalloutNum(n int) *NodeBuilder        { b.n.CalloutNum = n; return b }
func (b *NodeBuilder) WithCols(c []ColumnSpec) *NodeBuilder     { b.n.Cols = c; return b }

// Build finalizes the node, computing its content hash.
func (b *NodeBuilder) Build() Node {
	payload := []byte(b.n.Style + "\x00" + b.n.ID + "\x00" + b.n.Text + "\x00" + b.n.Target + "\x00" + b.n.FootnoteID)
	b.n.hash = computeHash(b.n.kind, b.n.children, payload)
	return b.n
}

// Equal performs deep structural comparison via content hash plus a kind
// check (hash collisions between differently-kinded
// nodes of the same shape are definitionally impossible since kind is
// folded into the hash, but checking Kind first is cheap and explicit).
func (n *genericNode) Equal(other Node) bool {
	if other == nil {
		return false
	}
	return n.Kind() == other.Kind() && n.Hash() == other.Hash()
}

// ColumnSpec is one parsed entry of a table's cols= attribute (spec.md §4.F).
type ColumnSpec struct {
	Multiplier int
	HAlign     byte // '<', '^', '>', or 0
	VAlign     byte // '<', '^', '>', or 0
	Width      int  // proportional width (percentage points if Percent); -1 for "~" (auto) or no width
	Percent    bool
	Style      byte // 'a','d','e','h','l','m','s', or 0
}
