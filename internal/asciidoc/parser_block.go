package asciidoc

import "strings"

// blockParser implements spec.md §4.D: driven by a flat line sequence, it
// accumulates block metadata, then dispatches each block in turn to one
// of the eight recognized shapes.
type blockParser struct {
	doc         *Document
	strict      bool
	resolver    IncludeResolver
	currentPath string
	safeMode    SafeMode
}

// parseBlocks consumes lines (which may contain embedded blank Lines,
// unlike a single ContiguousLines run) and returns the resulting
// top-level BlockNodes, recursing into delimited blocks and lists as needed.
func (bp *blockParser) parseBlocks(lines []*Line) BlockNodes {
	var out BlockNodes
	i := 0
	for i < len(lines) {
		if lines[i].IsBlank() {
			i++
			continue
		}

		meta, consumed := bp.readMetadata(lines[i:])
		i += consumed
		if i >= len(lines) {
			break
		}
		line := lines[i]
		_, _, isHeading := isSectionHeading(cloneLine(line))

		switch {
		case isDelimiterOpen(line):
			block, n := bp.parseDelimitedBlock(lines[i:], meta)
			out = append(out, block)
			i += n

		case isBlockMacroLine(line):
			out = append(out, bp.parseBlockMacro(line, meta))
			i++

		case isListStarter(line):
			block, n := bp.parseList(lines[i:])
			out = append(out, block)
			i += n

		case isTableOpen(line):
			block, n := bp.parseTable(lines[i:], meta)
			out = append(out, block)
			i += n

		case isHeading:
			level, rest, _ := isSectionHeading(line)
			title := ParseInline(NewContiguousLines([]*Line{NewLine(rest)}), bp.doc, DefaultSubs)
			sec := meta.apply(NewNodeBuilder(NodeSection)).WithLoc(line.StartLoc()).WithLevel(level).WithTitle(title).Build()
			out = append(out, sec)
			i++

		case isAttributeEntryLine(line):
			out = append(out, bp.parseAttributeEntry(line))
			i++

		default:
			end := bp.paragraphEnd(lines, i)
			block := bp.parseParagraphOrQuoted(lines[i:end], meta)
			out = append(out, block)
			i = end
		}
	}
	return out
}

func cloneLine(l *Line) *Line {
	return NewLine(append([]Token{}, l.Remaining()...))
}

// readMetadata consumes consecutive metadata lines (block title starting
// with '.', attribute lines starting with '[') and returns the combined
// BlockMeta plus the number of lines consumed.
func (bp *blockParser) readMetadata(lines []*Line) (BlockMeta, int) {
	meta := BlockMeta{}
	n := 0
	for n < len(lines) {
		l := lines[n]
		if l.IsBlank() {
			break
		}
		if l.Current().Kind == TokenDots && l.Len() > 0 && l.Peek(0).Len() == 1 {
			l.ConsumeFront()
			title := ParseInline(NewContiguousLines([]*Line{l}), bp.doc, DefaultSubs)
			meta.Title = &title
			n++
			continue
		}
		if l.Current().Kind == TokenOpenBracket {
			if attrs, ok := parseAttrListLine(l); ok {
				meta.Attrs = attrs
				n++
				continue
			}
		}
		break
	}
	return meta, n
}

// parseAttrListLine parses a whole line of the form "[attrlist]".
func parseAttrListLine(l *Line) (*AttrList, bool) {
	toks := l.Remaining()
	if len(toks) == 0 || toks[0].Kind != TokenOpenBracket || toks[len(toks)-1].Kind != TokenCloseBracket {
		return nil, false
	}
	var sb strings.Builder
	for _, t := range toks[1 : len(toks)-1] {
		sb.Write(t.Lexeme)
	}
	al, err := ParseAttrList(sb.String())
	if err != nil {
		return nil, false
	}
	return al, true
}

func isAttributeEntryLine(l *Line) bool {
	toks := l.Remaining()
	if len(toks) < 2 || toks[0].Kind != TokenColon {
		return false
	}
	for i := 1; i < len(toks); i++ {
		if toks[i].Kind == TokenColon {
			return true
		}
	}
	return false
}

func (bp *blockParser) parseAttributeEntry(l *Line) Block {
	toks := l.Remaining()
	loc := l.StartLoc()
	// toks[0] = ':'; find the closing ':' for the name.
	end := -1
	for i := 1; i < len(toks); i++ {
		if toks[i].Kind == TokenColon {
			end = i
			break
		}
	}
	var nameSB strings.Builder
	for _, t := range toks[1:end] {
		nameSB.Write(t.Lexeme)
	}
	name := nameSB.String()
	unset := strings.HasPrefix(name, "!")
	if unset {
		name = name[1:]
	} else if strings.HasSuffix(name, "!") {
		unset = true
		name = name[:len(name)-1]
	}
	var valSB strings.Builder
	for _, t := range toks[end+1:] {
		valSB.Write(t.Lexeme)
	}
	value := strings.TrimSpace(valSB.String())
	if unset {
		delete(bp.doc.Attributes, name)
	} else {
		bp.doc.Attributes[name] = expandInlineAttrRefs(value, bp.doc.Attributes)
	}
	return NewAttributeEntry(loc, name, value, unset)
}

func isDelimiterOpen(l *Line) bool {
	return !l.Empty() && l.Current().Kind == TokenDelimiterLine
}

// parseDelimitedBlock scans from an opening TokenDelimiterLine to its
// matching closer (same character, same length), recursing to parse the
// interior per the block's kind (spec.md §4.D rule 1). Returns the
// number of lines consumed, including both delimiters.
func (bp *blockParser) parseDelimitedBlock(lines []*Line, meta BlockMeta) (Block, int) {
	opener := lines[0]
	openTok := opener.ConsumeFront()
	openLexeme := openTok.Lexeme
	kind := delimitedBlockKindFromLexeme(openLexeme)
	if style := meta.Attrs; style != nil && style.Positional1() != "" {
		if k, ok := delimitedKindFromStyleName(style.Positional1()); ok {
			kind = k
		}
	}

	closeIdx := -1
	for i := 1; i < len(lines); i++ {
		l := lines[i]
		if l.IsBlank() {
			continue
		}
		if l.Len() == 1 && l.Current().Kind == TokenDelimiterLine && string(l.Current().Lexeme) == string(openLexeme) {
			closeIdx = i
			break
		}
	}

	if closeIdx < 0 {
		// spec.md §4.D rule 1: unclosed delimiter block at EOF.
		bp.doc.Diagnostics.Add(SeverityError,
			"unclosed delimiter block, expected "+string(openLexeme)+", opened on line 1",
			opener.StartLoc(), bp.currentPath)
		closeIdx = len(lines)
	}

	interior := lines[1:closeIdx]
	var children BlockNodes
	switch kind {
	case DelimListing, DelimLiteral, DelimPassthrough, DelimComment:
		children = BlockNodes{NewText(opener.StartLoc(), joinRawLines(interior))}
	default:
		children = bp.parseBlocks(interior)
	}

	n := closeIdx + 1
	if closeIdx >= len(lines) {
		n = len(lines)
	}
	return NewDelimitedBlock(opener.StartLoc(), kind, children, meta), n
}

func delimitedBlockKindFromLexeme(lexeme []byte) DelimitedBlockKind {
	if len(lexeme) >= 2 && lexeme[0] == '-' {
		if len(lexeme) == 2 {
			return DelimOpen
		}
		return DelimListing
	}
	k, ok := DelimiterKindForByte(lexeme[0])
	if !ok {
		return DelimOpen
	}
	return k
}

func delimitedKindFromStyleName(name string) (DelimitedBlockKind, bool) {
	switch name {
	case "example":
		return DelimExample, true
	case "sidebar":
		return DelimSidebar, true
	case "quote":
		return DelimQuote, true
	case "listing", "source":
		return DelimListing, true
	case "literal":
		return DelimLiteral, true
	case "pass":
		return DelimPassthrough, true
	case "comment":
		return DelimComment, true
	case "open":
		return DelimOpen, true
	}
	return 0, false
}

// joinRawLines reconstructs the verbatim text of a raw content region
// (listing/literal/passthrough/comment) by rejoining each line's tokens'
// lexemes with newlines.
func joinRawLines(lines []*Line) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, t := range l.Remaining() {
			sb.Write(t.Lexeme)
		}
	}
	return sb.String()
}

func isBlockMacroLine(l *Line) bool {
	toks := l.Remaining()
	return len(toks) >= 2 && toks[0].Kind == TokenMacroName
}

func (bp *blockParser) parseBlockMacro(l *Line, meta BlockMeta) Block {
	loc := l.StartLoc()
	nameTok := l.ConsumeFront()
	name := strings.TrimSuffix(nameTok.Text(), ":")
	// Block macros use the double-colon form ("image::target[]"); the
	// scanner's macro-name token only absorbs the first colon, leaving
	// the second as a standalone TokenColon to skip here.
	if !l.Empty() && l.Current().Kind == TokenColon {
		l.ConsumeFront()
	}

	var targetSB strings.Builder
	for !l.Empty() && l.Current().Kind != TokenOpenBracket {
		targetSB.Write(l.ConsumeFront().Lexeme)
	}
	target := targetSB.String()

	var attrs *AttrList
	if !l.Empty() && l.Current().Kind == TokenOpenBracket {
		l.ConsumeFront()
		var sb strings.Builder
		for !l.Empty() && l.Current().Kind != TokenCloseBracket {
			sb.Write(l.ConsumeFront().Lexeme)
		}
		attrs, _ = ParseAttrList(sb.String())
	}
	if attrs == nil {
		attrs = NewAttrList()
	}
	return NewBlockMacro(loc, name, target, attrs, meta)
}

// paragraphEnd finds the index (relative to the full lines slice) where
// the current paragraph/quoted-paragraph/admonition ends: at the next
// blank line or end of input.
func (bp *blockParser) paragraphEnd(lines []*Line, start int) int {
	i := start
	for i < len(lines) && !lines[i].IsBlank() {
		i++
	}
	return i
}

// parseParagraphOrQuoted implements spec.md §4.D rules 7-8: detects a
// quoted paragraph (first line opens with '"', a trailing "-- Attr,
// Cite" attribution line) before falling back to ordinary paragraph
// parsing, with admonition-prefix promotion.
func (bp *blockParser) parseParagraphOrQuoted(lines []*Line, meta BlockMeta) Block {
	loc := lines[0].StartLoc()
	if len(lines) >= 2 {
		last := lines[len(lines)-1]
		if isAttributionLine(last) {
			attribution, citation := parseAttributionLine(last)
			content := ParseInline(NewContiguousLines(cloneLines(lines[:len(lines)-1])), bp.doc, DefaultSubs)
			return NewQuotedParagraph(loc, content, attribution, citation, meta)
		}
	}

	content := ParseInline(NewContiguousLines(cloneLines(lines)), bp.doc, DefaultSubs)
	if kind, ok := admonitionPrefix(content); ok {
		return NewAdmonition(loc, kind, stripAdmonitionPrefix(content), meta)
	}
	return NewParagraph(loc, content, meta)
}

func cloneLines(lines []*Line) []*Line {
	out := make([]*Line, len(lines))
	for i, l := range lines {
		out[i] = cloneLine(l)
	}
	return out
}

func isAttributionLine(l *Line) bool {
	toks := l.Remaining()
	return len(toks) >= 1 && toks[0].Kind == TokenDashes && toks[0].Len() == 2
}

func parseAttributionLine(l *Line) (attribution, citation string) {
	var sb strings.Builder
	for _, t := range l.Remaining()[1:] {
		sb.Write(t.Lexeme)
	}
	rest := strings.TrimSpace(sb.String())
	if idx := strings.LastIndex(rest, ","); idx >= 0 {
		return strings.TrimSpace(rest[:idx]), strings.TrimSpace(rest[idx+1:])
	}
	return rest, ""
}

// admonitionPrefix detects a leading "NOTE:"/"TIP:"/... inline text node
// and reports the matched kind.
func admonitionPrefix(content InlineNodes) (AdmonitionKind, bool) {
	if len(content) == 0 {
		return 0, false
	}
	text := TextOf(content[0])
	idx := strings.IndexByte(text, ':')
	if idx <= 0 {
		return 0, false
	}
	return AdmonitionKindForWord(text[:idx])
}

func stripAdmonitionPrefix(content InlineNodes) InlineNodes {
	if len(content) == 0 {
		return content
	}
	text := TextOf(content[0])
	idx := strings.IndexByte(text, ':')
	rest := strings.TrimPrefix(text[idx+1:], " ")
	if rest == "" {
		return content[1:]
	}
	out := append(InlineNodes{NewText(content[0].Loc(), rest)}, content[1:]...)
	return out
}
