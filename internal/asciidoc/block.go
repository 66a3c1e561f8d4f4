package asciidoc

// Block is any document-level node. It is the same underlying Node type
// as Inline; the distinction is purely about which parser (4.D vs 4.E)
// produced it and which Visitor methods dispatch on it.
type Block = Node

// BlockNodes is an ordered sequence of sibling blocks.
type BlockNodes []Block

// DelimitedBlockKind identifies which of the eight delimiter characters
// opened a delimited block (spec.md §6.5 "Delimiter grammar").
type DelimitedBlockKind uint8

const (
	DelimExample DelimitedBlockKind = iota
	DelimSidebar
	DelimQuote
	DelimListing
	DelimLiteral
	DelimPassthrough
	DelimComment
	DelimOpen
)

// DelimiterKindForByte maps a fence character to its DelimitedBlockKind,
// per the fixed table in spec.md §6.5.
func DelimiterKindForByte(b byte) (DelimitedBlockKind, bool) {
	switch b {
	case '=':
		return DelimExample, true
	case '*':
		return DelimSidebar, true
	case '_':
		return DelimQuote, true
	case '-':
		return DelimListing, true
	case '.':
		return DelimLiteral, true
	case '+':
		return DelimPassthrough, true
	case '/':
		return DelimComment, true
	}
	return 0, false
}

// NewParagraph builds a paragraph block from its parsed inline content.
func NewParagraph(loc Location, content InlineNodes, meta BlockMeta) Block {
	return meta.apply(NewNodeBuilder(NodeParagraph).WithLoc(loc)).
		WithChildren(inlinesToNodes(content)).Build()
}

// AdmonitionKind is the NOTE/TIP/WARNING/CAUTION/IMPORTANT prefix
// recognized on a promoted paragraph (spec.md §4.D rule 8).
type AdmonitionKind uint8

const (
	AdmonitionNote AdmonitionKind = iota
	AdmonitionTip
	AdmonitionWarning
	AdmonitionCaution
	AdmonitionImportant
)

// AdmonitionKindForWord maps the recognized leading word (without the
// trailing colon) to its AdmonitionKind.
func AdmonitionKindForWord(word string) (AdmonitionKind, bool) {
	switch word {
	case "NOTE":
		return AdmonitionNote, true
	case "TIP":
		return AdmonitionTip, true
	case "WARNING":
		return AdmonitionWarning, true
	case "CAUTION":
		return AdmonitionCaution, true
	case "IMPORTANT":
		return AdmonitionImportant, true
	}
	return 0, false
}

// NewAdmonition builds an admonition block (a paragraph promoted by a
// leading NOTE:/TIP:/.../ prefix).
func NewAdmonition(loc Location, kind AdmonitionKind, content InlineNodes, meta BlockMeta) Block {
	b := meta.apply(NewNodeBuilder(NodeAdmonition).WithLoc(loc)).
		WithStyle(admonitionWord(kind)).
		WithChildren(inlinesToNodes(content))
	return b.Build()
}

func admonitionWord(k AdmonitionKind) string {
	switch k {
	case AdmonitionTip:
		return "TIP"
	case AdmonitionWarning:
		return "WARNING"
	case AdmonitionCaution:
		return "CAUTION"
	case AdmonitionImportant:
		return "IMPORTANT"
	default:
		return "NOTE"
	}
}

// NewDelimitedBlock builds a delimited block (example/sidebar/quote/
// listing/literal/passthrough/comment/open) wrapping its already-parsed
// children (which for listing/literal/passthrough/comment is a single
// NodeText leaf holding the verbatim content, and for the others is a
// fully recursed BlockNodes).
func NewDelimitedBlock(loc Location, kind DelimitedBlockKind, children BlockNodes, meta BlockMeta) Block {
	return meta.apply(NewNodeBuilder(NodeDelimitedBlock).WithLoc(loc)).
		WithChildren(children).
		WithLevel(int(kind)).
		Build()
}

// DelimitedKind recovers the DelimitedBlockKind stored by NewDelimitedBlock.
func DelimitedKind(n Block) DelimitedBlockKind {
	return DelimitedBlockKind(n.(*genericNode).Level) //nolint:forcetypeassert // internal node representation
}

// NewBlockMacro builds a block macro node (image::, toc::, and other
// plugin macros recognized in "NAME::TARGET[ATTRS]" form).
func NewBlockMacro(loc Location, name, target string, attrs *AttrList, meta BlockMeta) Block {
	return meta.apply(NewNodeBuilder(NodeBlockMacro).WithLoc(loc)).
		WithStyle(name).
		WithTarget(target).
		WithAttrs(attrs).
		Build()
}

// ListKind distinguishes ordered and unordered lists; description lists
// are a separate node kind (NodeDescriptionList).
type ListKind uint8

const (
	ListUnordered ListKind = iota
	ListOrdered
)

// NewList builds a list block from its already-parsed items.
func NewList(loc Location, kind ListKind, items BlockNodes, meta BlockMeta) Block {
	return meta.apply(NewNodeBuilder(NodeList).WithLoc(loc)).
		WithChildren(items).
		WithLevel(int(kind)).
		Build()
}

// ListKindOf recovers the ListKind stored by NewList.
func ListKindOf(n Block) ListKind {
	return ListKind(n.(*genericNode).Level) //nolint:forcetypeassert // internal node representation
}

// NewListItem builds a single list item: its principal inline content
// plus any nested blocks (continuation blocks, nested lists) attached
// beneath it.
func NewListItem(loc Location, marker string, principal InlineNodes, nested BlockNodes) Block {
	children := append(inlinesToNodes(principal), nested...)
	return NewNodeBuilder(NodeListItem).WithLoc(loc).WithStyle(marker).WithChildren(children).Build()
}

// NewDescriptionList builds a description list from its term/description items.
func NewDescriptionList(loc Location, items BlockNodes, meta BlockMeta) Block {
	return meta.apply(NewNodeBuilder(NodeDescriptionList).WithLoc(loc)).WithChildren(items).Build()
}

// NewDescriptionListItem pairs a term with its description content.
func NewDescriptionListItem(loc Location, term InlineNodes, description BlockNodes) Block {
	termNode := NewNodeBuilder(NodeText).WithLoc(loc).WithChildren(inlinesToNodes(term)).Build()
	children := append(BlockNodes{termNode}, description...)
	return NewNodeBuilder(NodeDescriptionListItem).WithLoc(loc).WithChildren(children).Build()
}

// NewAttributeEntry builds a document-attribute-entry pseudo-block
// (":name: value" or ":name!:" or ":!name:").
func NewAttributeEntry(loc Location, name, value string, unset bool) Block {
	b := NewNodeBuilder(NodeAttributeEntry).WithLoc(loc).WithStyle(name).WithText(value)
	if unset {
		b = b.WithOptions([]string{"unset"})
	}
	return b.Build()
}

// NewQuotedParagraph builds a quoted-paragraph block: quoted content plus
// an optional attribution/citation extracted from a trailing "-- Attr,
// Cite" line (spec.md §4.D rule 7).
func NewQuotedParagraph(loc Location, content InlineNodes, attribution, citation string, meta BlockMeta) Block {
	b := meta.apply(NewNodeBuilder(NodeQuotedParagraph).WithLoc(loc)).
		WithChildren(inlinesToNodes(content)).
		WithStyle(attribution).
		WithTarget(citation)
	return b.Build()
}

// BlockMeta carries the accumulated metadata lines (block title, id, role,
// options, attribute list) consumed before a block's body, per spec.md
// §4.D "first accumulate block metadata from consecutive metadata lines".
type BlockMeta struct {
	Title *InlineNodes
	Attrs *AttrList
}

func (m BlockMeta) apply(b *NodeBuilder) *NodeBuilder {
	if m.Title != nil {
		b = b.WithTitle(*m.Title)
	}
	if m.Attrs != nil {
		b = b.WithAttrs(m.Attrs).WithID(m.Attrs.ID).WithRoles(m.Attrs.Roles).WithOptions(m.Attrs.Options)
		if len(m.Attrs.Positional) > 0 {
			b = b.WithStyle(m.Attrs.Positional[0])
		}
	}
	return b
}

func inlinesToNodes(in InlineNodes) []Node {
	out := make([]Node, len(in))
	for i, n := range in {
		out[i] = n
	}
	return out
}
