package asciidoc

import (
	"fmt"
	"strings"
)

// EvalContext carries the per-document evaluator state a Backend
// implementation consults from its Enter/Leave hooks (spec.md §4.H
// "Per-document state owned by the backend implementation"). The core
// engine owns and threads it; individual Backends read and mutate the
// fields relevant to their output format.
type EvalContext struct {
	Doc *Document

	// Captioned-instance counters, incremented on first enter of a
	// titled instance of that kind.
	FigureCount  int
	TableCount   int
	ListingCount int
	ExampleCount int

	// Section-level counter stack, bumped by IncSectionCounter.
	SectionCounters [5]uint16
	AppendixLetter  byte // 'A', 'B', ...
	PartNumber      int

	// Ephemeral flags disambiguating shared enter hooks.
	InTOC           bool
	InAppendix      bool
	InBibliography  bool
	InGlossaryList  bool
	IsSourceBlock   bool

	// xrefResolving guards against infinite recursion when an xref's
	// resolved text itself contains an xref (spec.md §4.H "Xref
	// resolution"): nested resolution attempts during an active
	// resolution become visitMissingXref instead of recursing.
	xrefResolving map[string]bool

	// Output buffering: a primary buffer plus an alternate the backend
	// can swap to in order to defer content (e.g. a block title rendered
	// after the block's open tag) and later flush it.
	primary   strings.Builder
	alternate strings.Builder
	buffering bool
}

// NewEvalContext creates an EvalContext for doc.
func NewEvalContext(doc *Document) *EvalContext {
	return &EvalContext{Doc: doc, xrefResolving: map[string]bool{}}
}

// Write appends to whichever buffer is currently active.
func (c *EvalContext) Write(s string) {
	if c.buffering {
		c.alternate.WriteString(s)
	} else {
		c.primary.WriteString(s)
	}
}

// StartBuffering swaps the active buffer to the alternate, so subsequent
// Write calls accumulate separately from the primary output.
func (c *EvalContext) StartBuffering() { c.buffering = true }

// SwapTake stops buffering and returns the buffered string, resetting the
// alternate buffer for reuse.
func (c *EvalContext) SwapTake() string {
	c.buffering = false
	s := c.alternate.String()
	c.alternate.Reset()
	return s
}

// Output returns the accumulated primary buffer content.
func (c *EvalContext) Output() string { return c.primary.String() }

// IncSectionCounter bumps the counter at depth (0-based, clamped to the
// 5-level stack) and returns its new value.
func (c *EvalContext) IncSectionCounter(depth int) uint16 {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(c.SectionCounters) {
		depth = len(c.SectionCounters) - 1
	}
	c.SectionCounters[depth]++
	for i := depth + 1; i < len(c.SectionCounters); i++ {
		c.SectionCounters[i] = 0
	}
	return c.SectionCounters[depth]
}

// ResetSectionCounters zeroes the counter stack. Neither bundled backend
// (internal/html, internal/html5s) calls it, so the counters are not reset
// on appendix entry or before a TOC walk.
func (c *EvalContext) ResetSectionCounters() {
	for i := range c.SectionCounters {
		c.SectionCounters[i] = 0
	}
}

// visitMissingXref is the fallback rendering of an xref whose resolution
// would recurse; it is itself rendered by the backend as a plain "link
// target not found" marker, not further resolved.
func visitMissingXref(target string) string {
	return fmt.Sprintf("[xref target not found: %s]", target)
}

// ResolveXref implements spec.md §4.H "Xref resolution": if the anchor
// exists and has reftext, use it; else use the xref's own linktext; else
// fall back to target. Guards against resolution cycles.
func ResolveXref(ctx *EvalContext, target string, linktext InlineNodes, renderInline func(InlineNodes) string) string {
	if len(ctx.xrefResolving) > 0 {
		return visitMissingXref(target)
	}
	entry, ok := ctx.Doc.Anchors.Lookup(target)
	if ok && entry.Reftext != "" {
		return entry.Reftext
	}
	if linktext == nil {
		return target
	}
	ctx.xrefResolving[target] = true
	defer delete(ctx.xrefResolving, target)
	return renderInline(linktext)
}

// Eval walks doc against backend in source order, producing backend's
// accumulated output. This is the public evaluator entry point described
// in spec.md §6.2.
func Eval(doc *Document, backend Backend) (string, error) {
	ctx := NewEvalContext(doc)

	root := documentRootNode(doc)
	if err := Walk(root, backend, ctx); err != nil {
		return "", err
	}
	return ctx.Output(), nil
}

// documentRootNode assembles a synthetic NodeDocument wrapping the
// preamble and section tree so Walk has a single entry point; sections
// are flattened into children in source order since Section is a plain
// struct rather than a Node, and doc.Parts is not walked (the structuring pass output
// is a tree of typed Go values, not itself part of the Node vocabulary,
// since TOC/section-numbering state does not need content hashing or
// visitor dispatch beyond what the document-level Enter/Leave hooks below
// already cover).
func documentRootNode(doc *Document) Node {
	children := append([]Node{}, doc.Preamble...)
	for _, s := range doc.Sections {
		children = append(children, sectionNode(s))
	}
	b := NewNodeBuilder(NodeDocument).WithChildren(children)
	if doc.Title != nil {
		b = b.WithTitle(doc.Title)
	}
	return b.Build()
}

func sectionNode(s *Section) Node {
	children := append([]Node{}, s.Blocks...)
	for _, child := range s.Children {
		children = append(children, sectionNode(child))
	}
	return NewNodeBuilder(NodeSection).
		WithLoc(s.Loc).
		WithLevel(s.Level).
		WithID(s.ID).
		WithTitle(s.Heading).
		WithOptions([]string{specialSectionOption(s.Special)}).
		WithChildren(children).
		Build()
}

func specialSectionOption(k SpecialSectionKind) string {
	switch k {
	case SpecialSectionAppendix:
		return "appendix"
	case SpecialSectionBibliography:
		return "bibliography"
	case SpecialSectionGlossary:
		return "glossary"
	case SpecialSectionPreface:
		return "preface"
	case SpecialSectionDedication:
		return "dedication"
	case SpecialSectionAbstract:
		return "abstract"
	default:
		return ""
	}
}
