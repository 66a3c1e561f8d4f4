package asciidoc

import (
	"fmt"
	"strings"
)

// Dump renders doc's structured tree (sections, parts, and the blocks
// inside them) as an indented text outline, one line per node: its kind,
// level/id where relevant, and a clipped text preview. It exists for the
// gada fmt command's normalization smoke test (SPEC_FULL.md AMBIENT
// STACK "fmt"): a parse that makes it through structuring and anchor
// registration without panicking or losing nodes dumps cleanly, so a
// byte-for-byte diff across two runs over the same input is a basic
// parser-stability check.
func Dump(doc *Document) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Document doctype=%d title=%q\n", doc.Doctype, PlainText(doc.Title))
	dumpBlocks(&sb, doc.Preamble, 1)
	for _, s := range doc.Sections {
		dumpSection(&sb, s, 1)
	}
	for _, p := range doc.Parts {
		dumpPart(&sb, p, 1)
	}
	return sb.String()
}

func dumpPart(sb *strings.Builder, p *Part, depth int) {
	fmt.Fprintf(sb, "%sPart title=%q\n", indent(depth), PlainText(p.Title))
	dumpBlocks(sb, p.Intro, depth+1)
	for _, s := range p.Sections {
		dumpSection(sb, s, depth+1)
	}
}

func dumpSection(sb *strings.Builder, s *Section, depth int) {
	fmt.Fprintf(sb, "%sSection level=%d id=%q title=%q\n", indent(depth), s.Level, s.ID, PlainText(s.Heading))
	dumpBlocks(sb, s.Blocks, depth+1)
	for _, c := range s.Children {
		dumpSection(sb, c, depth+1)
	}
}

func dumpBlocks(sb *strings.Builder, blocks BlockNodes, depth int) {
	for _, b := range blocks {
		dumpNode(sb, b, depth)
	}
}

func dumpNode(sb *strings.Builder, n Node, depth int) {
	fmt.Fprintf(sb, "%s%s%s\n", indent(depth), n.Kind(), nodePreview(n))
	for _, c := range n.Children() {
		dumpNode(sb, c, depth+1)
	}
}

func nodePreview(n Node) string {
	gn, ok := n.(*genericNode)
	if !ok {
		return ""
	}
	var parts []string
	if gn.ID != "" {
		parts = append(parts, fmt.Sprintf("id=%q", gn.ID))
	}
	if gn.Style != "" {
		parts = append(parts, fmt.Sprintf("style=%q", gn.Style))
	}
	if gn.Target != "" {
		parts = append(parts, fmt.Sprintf("target=%q", gn.Target))
	}
	if gn.Text != "" {
		parts = append(parts, fmt.Sprintf("text=%q", clip(gn.Text, 40)))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

func indent(depth int) string { return strings.Repeat("  ", depth) }
