package asciidoc

import "strings"

// Doctype selects article/book/manpage/inline structuring rules
// (spec.md §6.4 "doctype").
type Doctype uint8

const (
	DoctypeArticle Doctype = iota
	DoctypeBook
	DoctypeManpage
	DoctypeInline
)

func ParseDoctype(s string) Doctype {
	switch strings.ToLower(s) {
	case "book":
		return DoctypeBook
	case "manpage":
		return DoctypeManpage
	case "inline":
		return DoctypeInline
	default:
		return DoctypeArticle
	}
}

// SpecialSectionKind marks a section as appendix/bibliography/glossary/
// preface/dedication/abstract, which changes its numbering and TOC
// treatment (spec.md §4.G).
type SpecialSectionKind uint8

const (
	SpecialSectionNone SpecialSectionKind = iota
	SpecialSectionAppendix
	SpecialSectionBibliography
	SpecialSectionGlossary
	SpecialSectionPreface
	SpecialSectionDedication
	SpecialSectionAbstract
)

func specialSectionKindForStyle(style string) SpecialSectionKind {
	switch style {
	case "appendix":
		return SpecialSectionAppendix
	case "bibliography":
		return SpecialSectionBibliography
	case "glossary":
		return SpecialSectionGlossary
	case "preface":
		return SpecialSectionPreface
	case "dedication":
		return SpecialSectionDedication
	case "abstract":
		return SpecialSectionAbstract
	default:
		return SpecialSectionNone
	}
}

// Section is a heading plus the blocks and nested sections beneath it up
// to the next heading at its own level or shallower (spec.md §4.G).
type Section struct {
	Heading  InlineNodes
	Level    int
	Special  SpecialSectionKind
	ID       string
	Blocks   BlockNodes
	Children []*Section
	Loc      Location
}

// Part is a doctype=book top-level grouping of sections, optionally with
// introductory blocks attached via [partintro].
type Part struct {
	Title     InlineNodes
	Intro     BlockNodes
	Sections  []*Section
	Loc       Location
}

// Document is the root of a parsed AsciiDoc source: its document-header
// attributes, the flat preamble, and the structured section tree. The
// structuring pass does not populate Parts, for doctype=book or any other.
type Document struct {
	Doctype    Doctype
	Attributes map[string]string
	Title      InlineNodes
	Preamble   BlockNodes
	Sections   []*Section
	Parts      []*Part
	Anchors    *AnchorRegistry
	Footnotes  *FootnoteList
	Diagnostics Diagnostics
}

// NewDocument returns an empty Document with its registries initialized.
func NewDocument(doctype Doctype) *Document {
	return &Document{
		Doctype:    doctype,
		Attributes: map[string]string{},
		Anchors:    NewAnchorRegistry(),
		Footnotes:  &FootnoteList{},
	}
}

// AnchorEntry is one registered cross-reference target.
type AnchorEntry struct {
	ID      string
	Reftext string // explicit reftext, or "" to fall back to linktext/target
	File    string // resolved include path this anchor was defined in, "" for the root
}

// AnchorRegistry maps anchor ids to their entries, built during the
// structuring pass and consulted during xref evaluation (spec.md §4.H
// "Xref resolution").
type AnchorRegistry struct {
	entries map[string]*AnchorEntry
}

func NewAnchorRegistry() *AnchorRegistry {
	return &AnchorRegistry{entries: map[string]*AnchorEntry{}}
}

func (r *AnchorRegistry) Register(e *AnchorEntry) { r.entries[e.ID] = e }

func (r *AnchorRegistry) Lookup(id string) (*AnchorEntry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// FootnoteEntry is one footnote's recorded (id?, content); numbering is
// index+1.
type FootnoteEntry struct {
	ID      string // "" for anonymous footnote:[...] forms
	Content InlineNodes
}

// FootnoteList is the document's ordered footnote sequence, plus the
// id→number map backing PrevFootnoteRefNum.
type FootnoteList struct {
	entries []FootnoteEntry
	byID    map[string]int
}

// Append records a new footnote definition and returns its 1-based number.
func (f *FootnoteList) Append(id string, content InlineNodes) int {
	f.entries = append(f.entries, FootnoteEntry{ID: id, Content: content})
	n := len(f.entries)
	if id != "" {
		if f.byID == nil {
			f.byID = map[string]int{}
		}
		f.byID[id] = n
	}
	return n
}

// PrevFootnoteRefNum looks up the number previously assigned to id, for a
// footnote:id[] back-reference with no new content (spec.md §4.H
// "prev_footnote_ref_num(id) looks up previously-used id").
func (f *FootnoteList) PrevFootnoteRefNum(id string) (int, bool) {
	n, ok := f.byID[id]
	return n, ok
}

// Entries returns the recorded footnotes in definition order.
func (f *FootnoteList) Entries() []FootnoteEntry { return f.entries }

// TOCEntry is one heading surfaced in the table of contents.
type TOCEntry struct {
	Level    int
	ID       string
	Title    InlineNodes
	Children []*TOCEntry
}

// BuildTOC walks sections up to maxLevel and returns the resulting TOC
// tree. It applies no default of its own; callers pass toclevels, which
// the config and the backends default to 2.
func BuildTOC(sections []*Section, maxLevel int) []*TOCEntry {
	var out []*TOCEntry
	for _, s := range sections {
		entry := &TOCEntry{Level: s.Level, ID: s.ID, Title: s.Heading}
		if s.Level < maxLevel {
			entry.Children = BuildTOC(s.Children, maxLevel)
		}
		out = append(out, entry)
	}
	return out
}

// TOCPlacement is the toc attribute's value, controlling where the TOC
// renders (spec.md §6.4).
type TOCPlacement uint8

const (
	TOCNone TOCPlacement = iota
	TOCAuto
	TOCPreamble
	TOCMacro
	TOCLeft
	TOCRight
)

func ParseTOCPlacement(s string) TOCPlacement {
	switch strings.ToLower(s) {
	case "preamble":
		return TOCPreamble
	case "macro":
		return TOCMacro
	case "left":
		return TOCLeft
	case "right":
		return TOCRight
	case "":
		return TOCNone
	default:
		return TOCAuto
	}
}
