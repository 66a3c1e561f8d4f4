// Package html5s implements a semantic-HTML5 asciidoc.Backend: native
// <section>/<aside>/<figure> elements and ARIA doc-* roles in place of
// the classic Asciidoctor div-soup internal/html produces.
package html5s

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/gada-doc/gada/internal/asciidoc"
)

// Backend renders a walked document tree to semantic HTML5, following
// the "html5s" converter convention: section/aside/figure elements
// carrying role="doc-..." ARIA attributes instead of class-only div
// wrappers.
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
		ctx.Write(`<section id="preamble" aria-label="Preamble">`)
	case asciidoc.NodePart:
		ctx.Write(`<section class="open-block partintro">`)
	case asciidoc.NodeParagraph:
		ctx.Write(openDiv(n, "paragraph") + "<p>" + renderTitle(n))
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
		ctx.Write(openDiv(n, "description-list") + "<dl>")
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
		ctx.Write(openDiv(n, "quote-block") + "<blockquote>")
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
		ctx.Write("</section>")
	case asciidoc.NodePreamble:
		ctx.Write("</section>")
	case asciidoc.NodePart:
		ctx.Write("</section>")
	case asciidoc.NodeParagraph:
		ctx.Write("</p></div>")
	case asciidoc.NodeAdmonition:
		b.leaveAdmonition(n, ctx)
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

// openDiv opens a div wrapper carrying id/role the same way across
// paragraph/quote/description-list/list/table content.
func openDiv(n asciidoc.Node, class string) string {
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
	return sb.String()
}

func renderTitle(n asciidoc.Node) string {
	title := asciidoc.TitleOf(n)
	if title == nil {
		return ""
	}
	return `<span class="title">` + escapeText(asciidoc.PlainText(title)) + "</span> "
}

func escapeText(s string) string { return html.EscapeString(s) }

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
	ctx.Write(`<!DOCTYPE html><html><head><meta charset="UTF-8"></head><body>`)
	if title := asciidoc.TitleOf(n); title != nil {
		ctx.Write(`<header><h1>` + escapeText(asciidoc.PlainText(title)) + "</h1></header>")
	}
	ctx.Write(`<div id="content">`)
	return nil
}

func (b *Backend) leaveDocument(ctx *asciidoc.EvalContext) {
	ctx.Write("</div>")
	if entries := ctx.Doc.Footnotes.Entries(); len(entries) > 0 {
		ctx.Write(`<section class="footnotes" aria-label="Footnotes" role="doc-endnotes"><hr><ol>`)
		for i, e := range entries {
			num := i + 1
			ctx.Write(fmt.Sprintf(
				`<li id="_footnotedef_%d" role="doc-endnote"><p>%s <a href="#_footnoteref_%d" role="doc-backlink">&#8617;</a></p></li>`,
				num, escapeText(asciidoc.PlainText(e.Content)), num,
			))
		}
		ctx.Write("</ol></section>")
	}
	ctx.Write("</body></html>")
}

func (b *Backend) enterSection(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	level := asciidoc.LevelOf(n)
	ctx.IncSectionCounter(level - 1)
	classes := "doc-section level-" + strconv.Itoa(level)
	for _, r := range asciidoc.RolesOf(n) {
		classes += " " + r
	}
	ctx.Write(`<section class="` + classes + `"`)
	if id := asciidoc.IDOf(n); id != "" {
		ctx.Write(` id="` + id + `"`)
	}
	ctx.Write(">")
	heading := asciidoc.PlainText(asciidoc.TitleOf(n))
	htag := minInt(level+1, 6)
	ctx.Write(fmt.Sprintf(`<h%d>%s</h%d>`, htag, escapeText(heading), htag))
	return nil
}

// enterAdmonition uses <aside role="note"/"doc-tip"> for note/tip (truly
// supplementary content per ARIA) and <section role="doc-notice"> for
// the more disruptive caution/important/warning kinds.
func (b *Backend) enterAdmonition(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	word := asciidoc.StyleOf(n)
	tag, role := "section", "doc-notice"
	switch strings.ToLower(word) {
	case "note":
		tag, role = "aside", "note"
	case "tip":
		tag, role = "aside", "doc-tip"
	}
	classes := "admonition-block " + strings.ToLower(word)
	for _, r := range asciidoc.RolesOf(n) {
		classes += " " + r
	}
	ctx.Write(fmt.Sprintf(`<%s class="%s" role="%s">`, tag, classes, role))
	ctx.Write(fmt.Sprintf(`<h6 class="block-title"><span class="title-label">%s: </span></h6>`, word))
	return nil
}

func (b *Backend) leaveAdmonition(n asciidoc.Node, ctx *asciidoc.EvalContext) {
	word := strings.ToLower(asciidoc.StyleOf(n))
	if word == "note" || word == "tip" {
		ctx.Write("</aside>")
		return
	}
	ctx.Write("</section>")
}

func (b *Backend) enterDelimitedBlock(n asciidoc.Node, ctx *asciidoc.EvalContext) error {
	switch asciidoc.DelimitedKind(n) {
	case asciidoc.DelimExample:
		ctx.ExampleCount++
		ctx.Write(`<section class="example-block">` + renderTitle(n))
	case asciidoc.DelimSidebar:
		ctx.Write(`<aside class="sidebar-block">` + renderTitle(n))
	case asciidoc.DelimQuote:
		ctx.Write(`<section class="quote-block">` + renderTitle(n) + "<blockquote>")
	case asciidoc.DelimListing:
		ctx.ListingCount++
		tag := "figure"
		if asciidoc.TitleOf(n) == nil {
			tag = "div"
		}
		ctx.Write(fmt.Sprintf(`<%s class="listing-block">`, tag) + renderTitle(n) + `<pre><code>`)
		writeVerbatimChildren(n, ctx)
		return asciidoc.SkipChildren
	case asciidoc.DelimLiteral:
		ctx.Write(`<div class="literal-block"><pre>`)
		writeVerbatimChildren(n, ctx)
		return asciidoc.SkipChildren
	case asciidoc.DelimPassthrough:
		writeVerbatimChildren(n, ctx)
		return asciidoc.SkipChildren
	case asciidoc.DelimComment:
		return asciidoc.SkipChildren
	case asciidoc.DelimOpen:
		ctx.Write(`<div class="open-block">` + renderTitle(n))
	}
	return nil
}

func writeVerbatimChildren(n asciidoc.Node, ctx *asciidoc.EvalContext) {
	for _, c := range n.Children() {
		if c.Kind() == asciidoc.NodeText {
			ctx.Write(escapeText(asciidoc.TextOf(c)))
		}
	}
}

func (b *Backend) leaveDelimitedBlock(n asciidoc.Node, ctx *asciidoc.EvalContext) {
	switch asciidoc.DelimitedKind(n) {
	case asciidoc.DelimExample:
		ctx.Write("</section>")
	case asciidoc.DelimSidebar:
		ctx.Write("</aside>")
	case asciidoc.DelimQuote:
		ctx.Write("</blockquote>" + attributionFooter(n) + "</section>")
	case asciidoc.DelimListing:
		tag := "figure"
		if asciidoc.TitleOf(n) == nil {
			tag = "div"
		}
		ctx.Write("</code></pre></" + tag + ">")
	case asciidoc.DelimLiteral:
		ctx.Write("</pre></div>")
	case asciidoc.DelimOpen:
		ctx.Write("</div>")
	}
}

func attributionFooter(n asciidoc.Node) string {
	attribution := asciidoc.StyleOf(n)
	if attribution == "" {
		return ""
	}
	citation := asciidoc.TargetOf(n)
	s := `<footer class="attribution">&#8212; ` + escapeText(attribution)
	if citation != "" {
		s += `<br><cite>` + escapeText(citation) + "</cite>"
	}
	return s + "</footer>"
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
		tag := "div"
		if asciidoc.TitleOf(n) != nil {
			tag = "figure"
		}
		ctx.Write(fmt.Sprintf(`<%s class="image-block">`, tag))
		ctx.Write(fmt.Sprintf(`<img src="%s" alt="%s">`, target, escapeText(alt)))
		ctx.Write(renderTitle(n) + "</" + tag + ">")
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
	sb.WriteString(`<nav id="toc" role="doc-toc"><h2>Table of Contents</h2>`)
	writeTOCEntries(&sb, entries)
	sb.WriteString("</nav>")
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
		ctx.Write(openDiv(n, "doc-list ordered") + "<ol>")
	} else {
		ctx.Write(openDiv(n, "doc-list unordered") + "<ul>")
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
	ctx.Write(openDiv(n, "table-block") + `<table role="table">`)
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
	if asciidoc.StyleOf(n) == "header" {
		tag = "th"
	}
	if open {
		return "<" + tag + ">"
	}
	return "</" + tag + ">"
}

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
	ctx.Write(fmt.Sprintf(`<sup id="_footnote_%d"><a id="_footnoteref_%d" href="#_footnotedef_%d" role="doc-noteref">[%d]</a></sup>`,
		num, num, num, num))
}

func footnoteRefMarkup(id string) string {
	return fmt.Sprintf(`<sup><a href="#_footnotedef_%s" role="doc-noteref">%s</a></sup>`, id, id)
}

func (b *Backend) xrefMarkup(n asciidoc.Node, ctx *asciidoc.EvalContext) string {
	target := asciidoc.TargetOf(n)
	text := asciidoc.ResolveXref(ctx, target, asciidoc.LinkTextOf(n), func(nodes asciidoc.InlineNodes) string {
		return escapeText(asciidoc.PlainText(nodes))
	})
	return fmt.Sprintf(`<a href="#%s">%s</a>`, target, text)
}

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
	return fmt.Sprintf(`<img src="%s" alt="%s" class="inline-image">`, target, escapeText(alt))
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
	return fmt.Sprintf(`<span class="icon" role="img" aria-label="%s">[%s]</span>`, escapeText(name), escapeText(name))
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
