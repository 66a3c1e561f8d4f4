package asciidoc

import (
	"strings"

	"github.com/google/uuid"
)

// registerAnchors walks the structured document, registering every
// anchorable node (sections, tables, delimited blocks, and block macros
// with a title or explicit id) into doc.Anchors so xref resolution
// (spec.md §4.H) has something to look up. A node with an explicit [[id]]
// keeps it; a titled node with none gets a slug derived from its title
// text, deduplicated against the ids already seen. A title with no
// sluggable characters gets a synthesized uuid-based id instead. A
// non-section block with neither an explicit id nor a title is not
// registered.
func registerAnchors(doc *Document) {
	seen := map[string]int{}
	registerBlocks(doc, doc.Preamble, seen)
	var walk func(secs []*Section)
	walk = func(secs []*Section) {
		for _, s := range secs {
			id := s.ID
			if id == "" {
				id = uniqueSlug(slugify(PlainText(s.Heading)), seen)
				s.ID = id
			} else {
				seen[id]++
			}
			doc.Anchors.Register(&AnchorEntry{ID: id, Reftext: PlainText(s.Heading)})
			registerBlocks(doc, s.Blocks, seen)
			walk(s.Children)
		}
	}
	walk(doc.Sections)
}

// registerBlocks registers anchors for captioned non-section blocks
// (tables, delimited blocks, block macros) directly in blocks, recursing
// into list items so a titled table nested in a list is still reachable.
func registerBlocks(doc *Document, blocks BlockNodes, seen map[string]int) {
	for _, b := range blocks {
		gn, ok := b.(*genericNode)
		if !ok {
			continue
		}
		switch gn.kind {
		case NodeTable, NodeDelimitedBlock, NodeBlockMacro:
			registerAnchorableBlock(doc, gn, seen)
		}
		if len(gn.children) > 0 {
			registerBlocks(doc, gn.children, seen)
		}
	}
}

func registerAnchorableBlock(doc *Document, gn *genericNode, seen map[string]int) {
	title := strings.TrimSpace(PlainText(gn.Title))
	if gn.ID == "" && title == "" {
		return
	}
	id := gn.ID
	switch {
	case id != "":
		seen[id]++
	case title != "":
		id = uniqueSlug(slugify(title), seen)
	default:
		id = "_" + uuid.NewString()
		seen[id]++
	}
	gn.ID = id
	doc.Anchors.Register(&AnchorEntry{ID: id, Reftext: title})
}

// slugify lowercases s, replaces runs of non-alphanumeric characters with
// a single underscore, and trims leading/trailing underscores, mirroring
// Asciidoctor's default idseparator="_" auto-id algorithm.
func slugify(s string) string {
	var sb strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				sb.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(sb.String(), "_")
	if out == "" {
		return ""
	}
	return "_" + out
}

// uniqueSlug appends "_2", "_3", ... to base until the result is unseen,
// matching Asciidoctor's duplicate-id disambiguation. An empty base (a
// title with no sluggable characters) falls back to a synthesized id.
func uniqueSlug(base string, seen map[string]int) string {
	if base == "" {
		id := "_" + uuid.NewString()
		seen[id]++
		return id
	}
	n := seen[base]
	seen[base] = n + 1
	if n == 0 {
		return base
	}
	return base + "_" + itoa(n+1)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
