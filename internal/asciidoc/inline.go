package asciidoc

import "strings"

// Inline is any inline-level node (text run, formatted span, macro,
// reference). Shares the Node representation with Block; see block.go.
type Inline = Node

// InlineNodes is an ordered sequence of sibling inline nodes, the output
// type of the inline parser (spec.md §4.E).
type InlineNodes []Inline

// Subs is the substitution mask the inline parser consults to decide
// which transformations are active for a given span of content. Defaults
// are set per enclosing-block style and may be overridden by a block's
// subs= attribute (spec.md §4.E).
type Subs uint8

const (
	SubFormatting Subs = 1 << iota
	SubMacros
	SubAttrRefs
	SubSpecialChars
	SubCallouts
	SubReplacements
	SubPostReplacements
)

// DefaultSubs is the substitution set active for ordinary prose content
// (paragraphs, list items, table cells with style other than literal).
const DefaultSubs = SubFormatting | SubMacros | SubAttrRefs | SubSpecialChars | SubReplacements | SubPostReplacements

// VerbatimSubs is active inside listing/literal blocks: only special
// characters are escaped, nothing else is interpreted.
const VerbatimSubs = SubSpecialChars

// NewText builds a plain-text leaf inline node.
func NewText(loc Location, text string) Inline {
	return NewNodeBuilder(NodeText).WithLoc(loc).WithText(text).Build()
}

// FormattedKind identifies which of bold/italic/monospace/mark/superscript/
// subscript wraps a formatted inline span.
type FormattedKind uint8

const (
	FormatBold FormattedKind = iota
	FormatItalic
	FormatMonospace
	FormatMark
	FormatSuperscript
	FormatSubscript
)

var formattedKindToNode = map[FormattedKind]NodeKind{
	FormatBold:        NodeBold,
	FormatItalic:      NodeItalic,
	FormatMonospace:   NodeMonospace,
	FormatMark:        NodeMark,
	FormatSuperscript: NodeSuperscript,
	FormatSubscript:   NodeSubscript,
}

// NewFormatted wraps children in a bold/italic/monospace/mark/sup/sub
// span. constrained records whether the opening/closing pair used the
// constrained (single-char) or unconstrained (doubled-char) form, which
// the evaluator needs to choose markup in some backends.
func NewFormatted(loc Location, kind FormattedKind, children InlineNodes, attrs *AttrList, constrained bool) Inline {
	b := NewNodeBuilder(formattedKindToNode[kind]).WithLoc(loc).WithChildren(inlinesToNodes(children))
	if attrs != nil {
		b = b.WithAttrs(attrs).WithID(attrs.ID).WithRoles(attrs.Roles).WithOptions(attrs.Options)
	}
	if constrained {
		b = b.WithStyle("constrained")
	} else {
		b = b.WithStyle("unconstrained")
	}
	return b.Build()
}

// NewLitMono builds a literal-monospace span (backtick-plus form,
// `` `+...+` ``): content is preserved verbatim with attribute references
// suppressed, per spec.md §4.E.
func NewLitMono(loc Location, text string) Inline {
	return NewNodeBuilder(NodeLitMono).WithLoc(loc).WithText(text).Build()
}

// CurlyQuoteKind distinguishes double vs single curly-quote substitution.
type CurlyQuoteKind uint8

const (
	CurlyQuoteDouble CurlyQuoteKind = iota
	CurlyQuoteSingle
	CurlyApostrophe
)

// NewCurlyQuote builds a curly-quote replacement node.
func NewCurlyQuote(loc Location, kind CurlyQuoteKind, children InlineNodes) Inline {
	return NewNodeBuilder(NodeCurlyQuote).WithLoc(loc).WithLevel(int(kind)).WithChildren(inlinesToNodes(children)).Build()
}

// NewSpecialChar builds a raw '<'/'>'/'&' node to be entity-escaped by the backend.
func NewSpecialChar(loc Location, ch byte) Inline {
	return NewNodeBuilder(NodeSpecialChar).WithLoc(loc).WithText(string(ch)).Build()
}

// NewNewline builds the inline emitted between two consecutive non-blank
// lines; the backend decides whether it renders as a space or <br>.
func NewNewline(loc Location) Inline {
	return NewNodeBuilder(NodeNewline).WithLoc(loc).Build()
}

// NewFootnote builds a footnote:[...] or footnote:id[...] inline. num is
// the assigned sequence number; a back-reference to an earlier id is
// built with NewFootnoteRef instead.
func NewFootnote(loc Location, id string, content InlineNodes, num int) Inline {
	return NewNodeBuilder(NodeFootnote).WithLoc(loc).WithFootnoteID(id).
		WithChildren(inlinesToNodes(content)).WithCalloutNum(num).Build()
}

// NewFootnoteRef builds a footnoteref: back-reference to a previously
// defined footnote id.
func NewFootnoteRef(loc Location, id string) Inline {
	return NewNodeBuilder(NodeFootnoteRef).WithLoc(loc).WithFootnoteID(id).Build()
}

// NewXref builds an xref:id[text] or <<id,text>> inline; text may be nil
// when the reference should resolve to the anchor's reftext.
func NewXref(loc Location, target string, text InlineNodes) Inline {
	b := NewNodeBuilder(NodeXref).WithLoc(loc).WithTarget(target)
	if text != nil {
		b = b.WithLinkText(text)
	}
	return b.Build()
}

// NewLink builds a link:/bare-URL auto-link inline.
func NewLink(loc Location, target string, text InlineNodes, attrs *AttrList) Inline {
	b := NewNodeBuilder(NodeLink).WithLoc(loc).WithTarget(target).WithLinkText(text)
	if attrs != nil {
		b = b.WithAttrs(attrs)
	}
	return b.Build()
}

// NewImage builds an inline image:target[attrs] macro.
func NewImage(loc Location, target string, attrs *AttrList) Inline {
	return NewNodeBuilder(NodeImage).WithLoc(loc).WithTarget(target).WithAttrs(attrs).Build()
}

// NewButton, NewMenu, NewIcon, NewKeyboard build their respective UI macros.
func NewButton(loc Location, label string) Inline {
	return NewNodeBuilder(NodeButton).WithLoc(loc).WithText(label).Build()
}

func NewMenu(loc Location, path []string) Inline {
	children := make([]Node, len(path))
	for i, p := range path {
		children[i] = NewText(loc, p)
	}
	return NewNodeBuilder(NodeMenu).WithLoc(loc).WithChildren(children).Build()
}

func NewIcon(loc Location, name string, attrs *AttrList) Inline {
	return NewNodeBuilder(NodeIcon).WithLoc(loc).WithText(name).WithAttrs(attrs).Build()
}

func NewKeyboard(loc Location, keys []string) Inline {
	children := make([]Node, len(keys))
	for i, k := range keys {
		children[i] = NewText(loc, k)
	}
	return NewNodeBuilder(NodeKeyboard).WithLoc(loc).WithChildren(children).Build()
}

// NewAttrRef builds an unresolved attribute-reference leaf; the evaluator
// resolves it against the document's attribute table at eval time
// (spec.md keeps attribute substitution lazy so attribute-missing=skip/
// drop-line/warn can be honored uniformly).
func NewAttrRef(loc Location, name string) Inline {
	return NewNodeBuilder(NodeAttrRef).WithLoc(loc).WithText(name).Build()
}

// NewCallout builds a <N> / <.> callout marker inline.
func NewCallout(loc Location, num int) Inline {
	return NewNodeBuilder(NodeCallout).WithLoc(loc).WithCalloutNum(num).Build()
}

// NewPassthrough builds a +++...+++ / pass:[...] inline whose content
// bypasses all substitutions.
func NewPassthrough(loc Location, text string) Inline {
	return NewNodeBuilder(NodePassthrough).WithLoc(loc).WithText(text).Build()
}

// PlainText flattens inline content to its visible text, discarding
// formatting, by recursing into each node's children and concatenating
// their Text payloads. Used where a plain label is needed for inline
// content that may carry formatting, such as a section heading shown in
// an outline sidebar.
func PlainText(nodes InlineNodes) string {
	var sb strings.Builder
	for _, n := range nodes {
		switch n.Kind() {
		case NodeText, NodeSpecialChar, NodeLitMono, NodeButton, NodeIcon:
			sb.WriteString(TextOf(n))
		case NodeNewline:
			sb.WriteByte(' ')
		default:
			children := n.Children()
			inner := make(InlineNodes, len(children))
			for i, c := range children {
				inner[i] = c
			}
			sb.WriteString(PlainText(inner))
		}
	}
	return sb.String()
}

// TextOf returns the Text field of a node built via WithText, for node
// kinds where that is the payload (NodeText, NodeSpecialChar, NodeAttrRef,
// NodePassthrough, NodeLitMono, NodeButton, NodeIcon).
func TextOf(n Node) string {
	gn, ok := n.(*genericNode)
	if !ok {
		return ""
	}
	return gn.Text
}

// TargetOf returns the Target field (link/xref/image macro target).
func TargetOf(n Node) string {
	gn, ok := n.(*genericNode)
	if !ok {
		return ""
	}
	return gn.Target
}

// LinkTextOf returns the link-text children of a link/xref node, which
// may be nil.
func LinkTextOf(n Node) InlineNodes {
	gn, ok := n.(*genericNode)
	if !ok {
		return nil
	}
	return gn.LinkText
}

// AttrsOf returns the parsed AttrList attached to a node, if any.
func AttrsOf(n Node) *AttrList {
	gn, ok := n.(*genericNode)
	if !ok {
		return nil
	}
	return gn.Attrs
}

// FootnoteIDOf returns the footnote id a NodeFootnote/NodeFootnoteRef carries.
func FootnoteIDOf(n Node) string {
	gn, ok := n.(*genericNode)
	if !ok {
		return ""
	}
	return gn.FootnoteID
}

// CalloutNumOf returns the sequence number a NodeFootnote/NodeCallout carries.
func CalloutNumOf(n Node) int {
	gn, ok := n.(*genericNode)
	if !ok {
		return 0
	}
	return gn.CalloutNum
}

// TitleOf returns the block title inline content, if any was set via BlockMeta.
func TitleOf(n Node) InlineNodes {
	gn, ok := n.(*genericNode)
	if !ok {
		return nil
	}
	return gn.Title
}

// StyleOf returns the Style field (block style, admonition word, macro
// name, constrained/unconstrained marker).
func StyleOf(n Node) string {
	gn, ok := n.(*genericNode)
	if !ok {
		return ""
	}
	return gn.Style
}

// IDOf, RolesOf, OptionsOf expose the shorthand attribute fields.
func IDOf(n Node) string {
	gn, ok := n.(*genericNode)
	if !ok {
		return ""
	}
	return gn.ID
}

func RolesOf(n Node) []string {
	gn, ok := n.(*genericNode)
	if !ok {
		return nil
	}
	return gn.Roles
}

func OptionsOf(n Node) []string {
	gn, ok := n.(*genericNode)
	if !ok {
		return nil
	}
	return gn.Options
}

// ColsOf returns the parsed column specs attached to a table node.
func ColsOf(n Node) []ColumnSpec {
	gn, ok := n.(*genericNode)
	if !ok {
		return nil
	}
	return gn.Cols
}

// LevelOf returns the Level field: a section's heading level, or the
// CurlyQuoteKind/DelimitedBlockKind/ListKind a kind-specific constructor
// folded into it via WithLevel.
func LevelOf(n Node) int {
	gn, ok := n.(*genericNode)
	if !ok {
		return 0
	}
	return gn.Level
}
