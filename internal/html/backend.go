// Package html implements an Asciidoctor-compatible HTML5 Backend for
// the asciidoc evaluator.
package html

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/gada-doc/gada/internal/asciidoc"
)

// Backend renders a walked document tree to Asciidoctor-style HTML5
// markup (div.sect1/div.sectN wrappers, div.admonitionblock tables,
// pre.CodeRay-free code blocks). It embeds asciidoc.BaseBackend and
// overrides the node kinds it produces output for; every other kind
// falls through to a no-op enter/leave so structural container nodes
// like NodeListItem's nested blocks still get walked.
type Backend struct {
	asciidoc.BaseBackend
}

// New returns a ready-to-use Backend.
func New() *Backend { return &Backend{} }

//nolint:revive,gocyclo // cyclomatic - plain per-kind dispatch table
func (b *Backend) Enter(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	switch n.Kind() {
	case asciidoc.NodeDocument:
		return b.enterDocument(n, ctx)
	case asciidoc.NodeSection:
		return b.enterSection(n, ctx)
	case asciidoc.NodePreamble:
		ctx.Write(`<div id="preamble"><div class="sectionbody">`)
	case asciidoc.NodePart:
		ctx.Write(`<div class="partintro">`)
	case asciidoc.NodeParagraph:
		ctx.Write(openBlockDiv(n, "paragraph") + "<p>")
	case asciidoc.NodeAdmonition:
		return b.enterAdmonition(n, ctx)
	case asciidoc.NodeDelimitedBlock:
		return b.enterDelimitedBlock(n, ctx)
	case asciidoc.NodeBlockMacro:
		return b.enterBlockMacro(n, ctx)
	case asciidoc.NodeList:
		return b.enterList(n, ctx)
	case asciidoc.NodeListItem:
		ctx.Write("<li><p>")
	case asciidoc.NodeDescriptionList:
		ctx.Write(openBlockDiv(n, "dlist") + "<dl>")
	case asciidoc.NodeDescriptionListItem:
		b.descriptionListItem(n, ctx)
		return asciidoc.SkipChildren
	case asciidoc.NodeTable:
		return b.enterTable(n, ctx)
	case asciidoc.NodeTableRow:
		ctx.Write("<tr>")
	case asciidoc.NodeTableCell:
		ctx.Write(cellTag(n, true))
	case asciidoc.NodeAttributeEntry:
		return asciidoc.SkipChildren
	case asciidoc.NodeQuotedParagraph:
		ctx.Write(openBlockDiv(n, "quoteblock") + "<blockquote>")
	case asciidoc.NodeText:
		ctx.Write(escapeText(asciidoc.TextOf(n)))
	case asciidoc.NodeBold:
		ctx.Write("<strong>")
	case asciidoc.NodeItalic:
		ctx.Write("<em>")
	case asciidoc.NodeMonospace:
		ctx.Write("<code>")
	case asciidoc.NodeMark:
		ctx.Write(markOpenTag(n))
	case asciidoc.NodeSuperscript:
		ctx.Write("<sup>")
	case asciidoc.NodeSubscript:
		ctx.Write("<sub>")
	case asciidoc.NodeLitMono:
		ctx.Write("<code>" + escapeText(asciidoc.TextOf(n)) + "</code>")
		return asciidoc.SkipChildren
	case asciidoc.NodeCurlyQuote:
		ctx.Write(curlyQuoteEntity(asciidoc.CurlyQuoteKind(asciidoc.LevelOf(n))))
	case asciidoc.NodeSpecialChar:
		ctx.Write(specialCharEntity(asciidoc.TextOf(n)))
		return asciidoc.SkipChildren
	case asciidoc.NodeNewline:
		ctx.Write("\n")
	case asciidoc.NodeFootnote:
		b.enterFootnote(n, ctx)
		return asciidoc.SkipChildren
	case asciidoc.NodeFootnoteRef:
		ctx.Write(footnoteRefMarkup(asciidoc.FootnoteIDOf(n)))
		return asciidoc.SkipChildren
	case asciidoc.NodeXref:
		ctx.Write(b.xrefMarkup(n, ctx))
		return asciidoc.SkipChildren
	case asciidoc.NodeLink:
		ctx.Write(linkMarkup(n))
		return asciidoc.SkipChildren
	case asciidoc.NodeImage:
		ctx.Write(imageMarkup(n))
		return asciidoc.SkipChildren
	case asciidoc.NodeButton:
		ctx.Write(`<b class="button">` + escapeText(asciidoc.TextOf(n)) + "</b>")
		return asciidoc.SkipChildren
	case asciidoc.NodeMenu:
		ctx.Write(menuMarkup(n))
		return asciidoc.SkipChildren
	case asciidoc.NodeIcon:
		ctx.Write(iconMarkup(n))
		return asciidoc.SkipChildren
	case asciidoc.NodeKeyboard:
		ctx.Write(keyboardMarkup(n))
		return asciidoc.SkipChildren
	case asciidoc.NodeAttrRef:
		ctx.Write(resolveAttrRef(n, ctx))
		return asciidoc.SkipChildren
	case asciidoc.NodeCallout:
		ctx.Write(fmt.Sprintf(`<b class="conum">(%d)</b>`, asciidoc.CalloutNumOf(n)))
		return asciidoc.SkipChildren
	case asciidoc.NodePassthrough:
		ctx.Write(asciidoc.TextOf(n))
		return asciidoc.SkipChildren
	}
	return nil
}

//nolint:revive,gocyclo // cyclomatic - plain per-kind dispatch table
func (b *Backend) Leave(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	switch n.Kind() {
	case asciidoc.NodeDocument:
		b.leaveDocument(ctx)
	case asciidoc.NodeSection:
		ctx.Write("</div></div>")
	case asciidoc.NodePreamble:
		ctx.Write("</div></div>")
	case asciidoc.NodePart:
		ctx.Write("</div>")
	case asciidoc.NodeParagraph:
		ctx.Write("</p></div>")
	case asciidoc.NodeAdmonition:
		ctx.Write("</td></tr></table></div>")
	case asciidoc.NodeDelimitedBlock:
		b.leaveDelimitedBlock(n, ctx)
	case asciidoc.NodeList:
		ctx.Write(listCloseTag(n) + "</div>")
	case asciidoc.NodeListItem:
		ctx.Write("</p></li>")
	case asciidoc.NodeDescriptionList:
		ctx.Write("</dl></div>")
	case asciidoc.NodeTable:
		ctx.Write("</tbody></table></div>")
	case asciidoc.NodeTableRow:
		ctx.Write("</tr>")
	case asciidoc.NodeTableCell:
		ctx.Write(cellTag(n, false))
	case asciidoc.NodeQuotedParagraph:
		ctx.Write("</blockquote>" + attributionFooter(n) + "</div>")
	case asciidoc.NodeBold:
		ctx.Write("</strong>")
	case asciidoc.NodeItalic:
		ctx.Write("</em>")
	case asciidoc.NodeMonospace:
		ctx.Write("</code>")
	case asciidoc.NodeMark:
		ctx.Write(markCloseTag(n))
	case asciidoc.NodeSuperscript:
		ctx.Write("</sup>")
	case asciidoc.NodeSubscript:
		ctx.Write("</sub>")
	}
	return nil
}

func openBlockDiv(n asciidoc.Node, class string) string {
	classes := class
	for _, r := range asciidoc.RolesOf(n) {
		classes += " " + r
	}
	var sb strings.Builder
	sb.WriteString(`<div class="` + classes + `"`)
	if id := asciidoc.IDOf(n); id != "" {
		sb.WriteString(` id="` + id + `"`)
	}
	sb.WriteString(">")
	if title := asciidoc.TitleOf(n); title != nil {
		sb.WriteString(`<div class="title">` + escapeText(asciidoc.PlainText(title)) + "</div>")
	}
	return sb.String()
}

func escapeText(s string) string {
	return html.EscapeString(s)
}

func specialCharEntity(ch string) string {
	switch ch {
	case "<":
		return "&lt;"
	case ">":
		return "&gt;"
	case "&":
		return "&amp;"
	default:
		return ch
	}
}

func curlyQuoteEntity(kind asciidoc.CurlyQuoteKind) string {
	switch kind {
	case asciidoc.CurlyQuoteDouble:
		return "&#8220;"
	case asciidoc.CurlyQuoteSingle:
		return "&#8216;"
	default:
		return "&#8217;"
	}
}

func markOpenTag(n asciidoc.Node) string {
	if id := asciidoc.IDOf(n); id != "" {
		return `<span id="` + id + `" class="mark">`
	}
	return `<mark>`
}

func markCloseTag(n asciidoc.Node) string {
	if asciidoc.IDOf(n) != "" {
		return "</span>"
	}
	return "</mark>"
}

func (b *Backend) enterDocument(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	ctx.Write(`<!DOCTYPE html><html><head><meta charset="UTF-8"></head><body class="article">`)
	if title := asciidoc.TitleOf(n); title != nil {
		ctx.Write(`<div id="header"><h1>` + escapeText(asciidoc.PlainText(title)) + "</h1></div>")
	}
	ctx.Write(`<div id="content">`)
	return nil
}

// leaveDocument closes the content div, renders the accumulated footnote
// definitions (if any), and closes body/html.
func (b *Backend) leaveDocument(ctx *asciidoc.EvalContext) {
	ctx.Write("</div>")
	if entries := ctx.Doc.Footnotes.Entries(); len(entries) > 0 {
		ctx.Write(`<div id="footnotes"><hr>`)
		for i, e := range entries {
			num := i + 1
			ctx.Write(fmt.Sprintf(
				`<div class="footnote" id="_footnotedef_%d"><a href="#_footnoteref_%d">%d</a>. %s</div>`,
				num, num, num, escapeText(asciidoc.PlainText(e.Content)),
			))
		}
		ctx.Write("</div>")
	}
	ctx.Write("</body></html>")
}

func (b *Backend) enterSection(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	level := asciidoc.LevelOf(n)
	ctx.IncSectionCounter(level - 1)
	ctx.Write(fmt.Sprintf(`<div class="sect%d">`, level))
	heading := asciidoc.PlainText(asciidoc.TitleOf(n))
	htag := minInt(level+1, 6)
	ctx.Write(fmt.Sprintf(`<h%d id="%s">%s</h%d>`, htag, asciidoc.IDOf(n), escapeText(heading), htag))
	ctx.Write(`<div class="sectionbody">`)
	return nil
}

func (b *Backend) enterAdmonition(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	word := asciidoc.StyleOf(n)
	ctx.Write(openBlockDiv(n, "admonitionblock "+strings.ToLower(word)))
	ctx.Write(fmt.Sprintf(
		`<table><tr><td class="icon"><div class="title">%s</div></td><td class="content">`,
		word,
	))
	return nil
}

func (b *Backend) enterDelimitedBlock(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	switch asciidoc.DelimitedKind(n) {
	case asciidoc.DelimExample:
		ctx.ExampleCount++
		ctx.Write(openBlockDiv(n, "exampleblock"))
		ctx.Write(`<div class="content">`)
	case asciidoc.DelimSidebar:
		ctx.Write(openBlockDiv(n, "sidebarblock"))
		ctx.Write(`<div class="content">`)
	case asciidoc.DelimQuote:
		ctx.Write(openBlockDiv(n, "quoteblock"))
		ctx.Write(`<blockquote>`)
	case asciidoc.DelimListing:
		ctx.ListingCount++
		ctx.Write(openBlockDiv(n, "listingblock"))
		ctx.Write(`<div class="content"><pre class="highlight"><code>`)
		writeVerbatimChildren(n, ctx)
		return asciidoc.SkipChildren
	case asciidoc.DelimLiteral:
		ctx.Write(openBlockDiv(n, "literalblock"))
		ctx.Write(`<div class="content"><pre>`)
		writeVerbatimChildren(n, ctx)
		return asciidoc.SkipChildren
	case asciidoc.DelimPassthrough:
		writeVerbatimChildren(n, ctx)
		return asciidoc.SkipChildren
	case asciidoc.DelimComment:
		return asciidoc.SkipChildren
	case asciidoc.DelimOpen:
		ctx.Write(openBlockDiv(n, "openblock"))
		ctx.Write(`<div class="content">`)
	}
	return nil
}

// writeVerbatimChildren writes a listing/literal/passthrough block's
// single NodeText child escaped but otherwise unprocessed, since those
// kinds carry raw source text rather than recursed inline content.
func writeVerbatimChildren(n asciidoc.Node, ctx *asciidoc.EvalContext) {
	for _, c := range n.Children() {
		if c.Kind() == asciidoc.NodeText {
			ctx.Write(escapeText(asciidoc.TextOf(c)))
		}
	}
}

func (b *Backend) leaveDelimitedBlock(n asciidoc.Node, ctx *asciidoc.EvalContext) {
	switch asciidoc.DelimitedKind(n) {
	case asciidoc.DelimExample, asciidoc.DelimSidebar, asciidoc.DelimOpen:
		ctx.Write("</div></div>")
	case asciidoc.DelimQuote:
		ctx.Write("</blockquote>" + attributionFooter(n) + "</div>")
	case asciidoc.DelimListing:
		ctx.Write("</code></pre></div></div>")
	case asciidoc.DelimLiteral:
		ctx.Write("</pre></div></div>")
	}
}

func attributionFooter(n asciidoc.Node) string {
	attribution := asciidoc.StyleOf(n)
	if attribution == "" {
		return ""
	}
	citation := asciidoc.TargetOf(n)
	s := `<div class="attribution">&#8212; ` + escapeText(attribution)
	if citation != "" {
		s += `<br><cite>` + escapeText(citation) + "</cite>"
	}
	return s + "</div>"
}

func (b *Backend) enterBlockMacro(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	name := asciidoc.StyleOf(n)
	target := asciidoc.TargetOf(n)
	attrs := asciidoc.AttrsOf(n)
	switch name {
	case "image":
		ctx.FigureCount++
		alt := ""
		if attrs != nil {
			alt = attrs.Positional1()
		}
		ctx.Write(openBlockDiv(n, "imageblock"))
		ctx.Write(fmt.Sprintf(`<div class="content"><img src="%s" alt="%s"></div></div>`, target, escapeText(alt)))
	case "toc":
		ctx.Write(renderTOC(ctx))
	default:
		ctx.Write(fmt.Sprintf("<!-- unsupported block macro: %s -->", escapeText(name)))
	}
	return asciidoc.SkipChildren
}

func renderTOC(ctx *asciidoc.EvalContext) string {
	entries := asciidoc.BuildTOC(ctx.Doc.Sections, 2)
	var sb strings.Builder
	sb.WriteString(`<div id="toc" class="toc"><div id="toctitle">Table of Contents</div>`)
	writeTOCEntries(&sb, entries)
	sb.WriteString("</div>")
	return sb.String()
}

func writeTOCEntries(sb *strings.Builder, entries []*asciidoc.TOCEntry) {
	if len(entries) == 0 {
		return
	}
	sb.WriteString("<ul>")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf(`<li><a href="#%s">%s</a>`, e.ID, escapeText(asciidoc.PlainText(e.Title))))
		writeTOCEntries(sb, e.Children)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
}

func (b *Backend) enterList(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	if asciidoc.ListKindOf(n) == asciidoc.ListOrdered {
		ctx.Write(openBlockDiv(n, "olist arabic") + "<ol class=\"arabic\">")
	} else {
		ctx.Write(openBlockDiv(n, "ulist") + "<ul>")
	}
	return nil
}

func listCloseTag(n asciidoc.Node) string {
	if asciidoc.ListKindOf(n) == asciidoc.ListOrdered {
		return "</ol>"
	}
	return "</ul>"
}

func (b *Backend) enterTable(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	ctx.TableCount++
	cols := asciidoc.ColsOf(n)
	ctx.Write(openBlockDiv(n, "tableblock frame-all grid-all"))
	ctx.Write(`<table class="tableblock frame-all grid-all" style="width:100%">`)
	if len(cols) > 0 {
		ctx.Write(colgroupMarkup(cols))
	}
	ctx.Write(`<tbody>`)
	return nil
}

func colgroupMarkup(cols []asciidoc.ColumnSpec) string {
	var sb strings.Builder
	sb.WriteString("<colgroup>")
	for _, c := range cols {
		mult := c.Multiplier
		if mult < 1 {
			mult = 1
		}
		width := "auto"
		if c.Width > 0 {
			width = strconv.Itoa(c.Width) + "%"
		}
		for i := 0; i < mult; i++ {
			sb.WriteString(fmt.Sprintf(`<col style="width:%s">`, width))
		}
	}
	sb.WriteString("</colgroup>")
	return sb.String()
}

func cellTag(n asciidoc.Node, open bool) string {
	tag := "td"
	if rowRole(n) == "header" {
		tag = "th"
	}
	if open {
		return "<" + tag + ` class="tableblock halign-left valign-top">`
	}
	return "</" + tag + ">"
}

// rowRole reports the enclosing row's Style marker ("header"/"footer"/"")
// for a cell node; cells don't carry the role themselves (spec.md §4.F
// marks the row, not each cell), so the backend walks to the row during
// Enter(NodeTableRow) and remembers it via the row's own Style field,
// which is accessible here since cells are rendered strictly within
// their row's Enter/Leave bracket.
func rowRole(n asciidoc.Node) string {
	return asciidoc.StyleOf(n)
}

// descriptionListItem renders a dt/dd pair. NodeDescriptionListItem's
// first child is a synthetic NodeText wrapper around the term's inline
// content (see NewDescriptionListItem); the remaining children are the
// description's blocks.
func (b *Backend) descriptionListItem(n asciidoc.Node, ctx *asciidoc.EvalContext) {
	children := n.Children()
	if len(children) == 0 {
		return
	}
	ctx.Write("<dt>")
	for _, c := range children[0].Children() {
		_ = asciidoc.Walk(c, b, ctx)
	}
	ctx.Write("</dt><dd>")
	for _, desc := range children[1:] {
		_ = asciidoc.Walk(desc, b, ctx)
	}
	ctx.Write("</dd>")
}

func (b *Backend) enterFootnote(n asciidoc.Node, ctx *asciidoc.EvalContext) {
	num := asciidoc.CalloutNumOf(n)
	ctx.Write(fmt.Sprintf(`<sup class="footnote" id="_footnote_%d"><a id="_footnoteref_%d" class="footnote" href="#_footnotedef_%d" title="View footnote.">%d</a></sup>`,
		num, num, num, num))
}

func footnoteRefMarkup(id string) string {
	return fmt.Sprintf(`<sup class="footnoteref"><a class="footnote" href="#_footnotedef_%s" title="View footnote.">%s</a></sup>`, id, id)
}

// xrefMarkup resolves and renders a complete "<a href=...>text</a>" for
// an xref node. NodeXref carries its link text via LinkTextOf rather
// than Children (spec.md §4.H keeps xref resolution lazy, so the text is
// resolved here rather than pre-rendered by the walker), so the anchor
// is built whole rather than split across Enter/Leave.
func (b *Backend) xrefMarkup(n asciidoc.Node, ctx *asciidoc.EvalContext) string {
	target := asciidoc.TargetOf(n)
	text := asciidoc.ResolveXref(ctx, target, asciidoc.LinkTextOf(n), func(nodes asciidoc.InlineNodes) string {
		return escapeText(asciidoc.PlainText(nodes))
	})
	return fmt.Sprintf(`<a href="#%s">%s</a>`, target, text)
}

// linkMarkup renders a complete anchor for a link node, whose text
// similarly lives in LinkTextOf rather than Children.
func linkMarkup(n asciidoc.Node) string {
	target := asciidoc.TargetOf(n)
	attrs := asciidoc.AttrsOf(n)
	extra := ""
	if attrs != nil {
		if w := attrs.Get("window", ""); w != "" {
			extra += fmt.Sprintf(` target="%s"`, w)
		}
		if r := attrs.Get("rel", ""); r != "" {
			extra += fmt.Sprintf(` rel="%s"`, r)
		}
	}
	text := target
	if lt := asciidoc.LinkTextOf(n); lt != nil {
		text = asciidoc.PlainText(lt)
	}
	return fmt.Sprintf(`<a href="%s"%s>%s</a>`, target, extra, escapeText(text))
}

func imageMarkup(n asciidoc.Node) string {
	target := asciidoc.TargetOf(n)
	attrs := asciidoc.AttrsOf(n)
	alt := target
	if attrs != nil && attrs.Positional1() != "" {
		alt = attrs.Positional1()
	}
	return fmt.Sprintf(`<span class="image"><img src="%s" alt="%s"></span>`, target, escapeText(alt))
}

func menuMarkup(n asciidoc.Node) string {
	var parts []string
	for _, c := range n.Children() {
		parts = append(parts, escapeText(asciidoc.TextOf(c)))
	}
	return `<span class="menuseq">` + strings.Join(parts, `&#160;&#8250; `) + `</span>`
}

func iconMarkup(n asciidoc.Node) string {
	name := asciidoc.TextOf(n)
	return fmt.Sprintf(`<span class="icon">[%s]</span>`, escapeText(name))
}

func keyboardMarkup(n asciidoc.Node) string {
	var parts []string
	for _, c := range n.Children() {
		parts = append(parts, `<kbd>`+escapeText(asciidoc.TextOf(c))+`</kbd>`)
	}
	return `<span class="keyseq">` + strings.Join(parts, "+") + `</span>`
}

func resolveAttrRef(n asciidoc.Node, ctx *asciidoc.EvalContext) string {
	name := asciidoc.TextOf(n)
	if v, ok := ctx.Doc.Attributes[name]; ok {
		return escapeText(v)
	}
	return "{" + name + "}"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

