package asciidoc

import "strings"

// inlineParser implements spec.md §4.E over the tokens of a
// ContiguousLines run. It is re-entrant: formatted spans recurse into
// inlineParser instances over the enclosed token slice with a possibly
// narrowed Subs mask.
type inlineParser struct {
	toks []Token
	pos  int
	doc  *Document
	subs Subs
}

// ParseInline parses one block's raw inline content into InlineNodes,
// honoring the given substitution mask (spec.md §4.E).
func ParseInline(lines *ContiguousLines, doc *Document, subs Subs) InlineNodes {
	var toks []Token
	all := lines.All()
	for i, l := range all {
		toks = append(toks, l.Remaining()...)
		if i < len(all)-1 {
			toks = append(toks, Token{Kind: TokenNewline})
		}
	}
	p := &inlineParser{toks: toks, doc: doc, subs: subs}
	return p.parseUntil(nil)
}

func (p *inlineParser) cur() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: TokenEOF}
	}
	return p.toks[p.pos]
}

func (p *inlineParser) peek(n int) Token {
	i := p.pos + n
	if i < 0 || i >= len(p.toks) {
		return Token{Kind: TokenEOF}
	}
	return p.toks[i]
}

func (p *inlineParser) advance() Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// formatSigil maps the run-kind that opens a constrained/unconstrained
// formatting pair to its FormattedKind.
var formatSigil = map[TokenKind]FormattedKind{
	TokenStar:      FormatBold,
	TokenUnderscore: FormatItalic,
	TokenBacktick:  FormatMonospace,
	TokenHash:      FormatMark,
	TokenCaret:     FormatSuperscript,
	TokenTilde:     FormatSubscript,
}

// parseUntil parses inline content until EOF or until stop returns true
// for the current token, collapsing adjacent plain-text runs into single
// Text nodes.
func (p *inlineParser) parseUntil(stop func(Token) bool) InlineNodes {
	var out InlineNodes
	var textBuf strings.Builder
	textStart := p.cur().Loc

	flush := func() {
		if textBuf.Len() > 0 {
			out = append(out, NewText(textStart, textBuf.String()))
			textBuf.Reset()
		}
	}

	for p.cur().Kind != TokenEOF {
		tok := p.cur()
		if stop != nil && stop(tok) {
			break
		}

		switch {
		case tok.Kind == TokenBackslash:
			p.advance()
			nxt := p.advance()
			textBuf.Write(nxt.Lexeme)
			continue

		case tok.Kind == TokenNewline:
			flush()
			out = append(out, NewNewline(tok.Loc))
			p.advance()
			textStart = p.cur().Loc
			continue

		case p.subs&SubMacros != 0 && tok.Kind == TokenMacroName:
			flush()
			out = append(out, p.parseMacro())
			textStart = p.cur().Loc
			continue

		case p.subs&SubAttrRefs != 0 && tok.Kind == TokenAttrRef:
			flush()
			name := strings.TrimSuffix(strings.TrimPrefix(tok.Text(), "{"), "}")
			out = append(out, NewAttrRef(tok.Loc, name))
			p.advance()
			textStart = p.cur().Loc
			continue

		case tok.Kind == TokenAttrRef:
			textBuf.Write(tok.Lexeme)
			p.advance()
			continue

		case p.subs&SubSpecialChars != 0 && (tok.Kind == TokenLessThan || tok.Kind == TokenGreaterThan || tok.Kind == TokenAmpersand):
			if tok.Kind == TokenLessThan && p.peek(1).Kind == TokenLessThan {
				flush()
				out = append(out, p.parseXrefShorthand())
				textStart = p.cur().Loc
				continue
			}
			flush()
			out = append(out, NewSpecialChar(tok.Loc, tok.Lexeme[0]))
			p.advance()
			textStart = p.cur().Loc
			continue

		case tok.Kind == TokenEntity:
			textBuf.Write(tok.Lexeme)
			p.advance()
			continue

		case p.subs&SubFormatting != 0 && isFormatSigil(tok.Kind):
			if node, ok := p.tryParseFormatted(tok); ok {
				flush()
				out = append(out, node)
				textStart = p.cur().Loc
				continue
			}
			textBuf.Write(tok.Lexeme)
			p.advance()
			continue

		default:
			textBuf.Write(tok.Lexeme)
			p.advance()
			continue
		}
	}
	flush()
	return out
}

func isFormatSigil(k TokenKind) bool {
	_, ok := formatSigil[k]
	return ok
}

// tryParseFormatted attempts to match opener at p.pos as the start of a
// constrained or unconstrained formatted span, per spec.md §4.E
// "Constrained vs unconstrained formatting". On success it consumes
// through the closer and returns the built node; on failure it leaves
// p.pos unchanged.
func (p *inlineParser) tryParseFormatted(opener Token) (Inline, bool) {
	start := p.pos
	kind := formatSigil[opener.Kind]
	unconstrained := opener.Len() >= 2

	if !unconstrained && !constrainedOpenBoundaryOK(p, start) {
		return nil, false
	}

	p.advance() // consume opener run
	closerIdx := p.findCloser(opener.Kind, opener.Len())
	if closerIdx < 0 {
		p.pos = start
		return nil, false
	}

	inner := p.toks[p.pos:closerIdx]
	if len(inner) == 0 {
		p.pos = start
		return nil, false // zero-width match forbidden for constrained forms; harmless to forbid universally
	}

	var attrs *AttrList
	sub := &inlineParser{toks: inner, doc: p.doc, subs: p.subs}
	children := sub.parseUntil(nil)

	p.pos = closerIdx + 1
	node := NewFormatted(opener.Loc, kind, children, attrs, !unconstrained)
	return node, true
}

// constrainedOpenBoundaryOK reports whether the token preceding idx is
// whitespace, line start, or punctuation, as spec.md §4.E requires for a
// constrained opener.
func constrainedOpenBoundaryOK(p *inlineParser, idx int) bool {
	if idx == 0 {
		return true
	}
	prev := p.toks[idx-1]
	switch prev.Kind {
	case TokenWhitespace, TokenUnicodeWhitespace, TokenNewline:
		return true
	}
	return !isWordByte(lastByte(prev.Lexeme))
}

func lastByte(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[len(b)-1]
}

// findCloser scans forward from p.pos for a closing run of the same kind:
// for an unconstrained opener, a run of the same length wherever it
// appears; for a constrained opener, a run of any length whose following
// token is whitespace/punctuation or EOF. It returns the run's index or -1.
func (p *inlineParser) findCloser(kind TokenKind, openLen int) int {
	for i := p.pos; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.Kind != kind {
			continue
		}
		if openLen >= 2 {
			if t.Len() != openLen {
				continue
			}
		}
		after := Token{Kind: TokenEOF}
		if i+1 < len(p.toks) {
			after = p.toks[i+1]
		}
		if openLen >= 2 || after.Kind == TokenEOF || after.Kind == TokenWhitespace ||
			after.Kind == TokenNewline || !isWordByte(lastByte(after.Lexeme)) {
			return i
		}
	}
	return -1
}

// parseMacro parses "NAME:TARGET[ATTRLIST]" starting at the current
// TokenMacroName, dispatching to a typed node constructor per recognized
// name (spec.md §4.E "Macros").
func (p *inlineParser) parseMacro() Inline {
	nameTok := p.advance()
	name := strings.TrimSuffix(nameTok.Text(), ":")
	loc := nameTok.Loc

	var targetSB strings.Builder
	for p.cur().Kind != TokenOpenBracket && p.cur().Kind != TokenEOF {
		targetSB.Write(p.advance().Lexeme)
	}
	target := targetSB.String()

	var attrs *AttrList
	var attrRaw string
	if p.cur().Kind == TokenOpenBracket {
		p.advance()
		var sb strings.Builder
		for p.cur().Kind != TokenCloseBracket && p.cur().Kind != TokenEOF {
			sb.Write(p.advance().Lexeme)
		}
		if p.cur().Kind == TokenCloseBracket {
			p.advance()
		}
		attrRaw = sb.String()
		attrs, _ = ParseAttrList(attrRaw)
	}
	if attrs == nil {
		attrs = NewAttrList()
	}

	switch name {
	case "footnote":
		text := parseAttrListInline(attrRaw, p.doc, p.subs)
		id := target
		if len(text) == 0 {
			if _, ok := p.doc.Footnotes.PrevFootnoteRefNum(id); ok {
				return NewFootnoteRef(loc, id)
			}
		}
		num := p.doc.Footnotes.Append(id, text)
		return NewFootnote(loc, id, text, num)
	case "footnoteref":
		return NewFootnoteRef(loc, target)
	case "xref":
		var text InlineNodes
		if attrRaw != "" {
			text = parseAttrListInline(attrRaw, p.doc, p.subs)
		}
		return NewXref(loc, target, text)
	case "link":
		text := parseAttrListInline(attrRaw, p.doc, p.subs)
		return applyLinkPunctuation(NewLink(loc, target, text, attrs))
	case "image":
		return NewImage(loc, target, attrs)
	case "icon":
		return NewIcon(loc, target, attrs)
	case "kbd":
		return NewKeyboard(loc, strings.Split(attrRaw, "+"))
	case "btn":
		return NewButton(loc, attrRaw)
	case "menu":
		path := append([]string{target}, strings.Split(attrRaw, ">")...)
		return NewMenu(loc, path)
	case "pass":
		return NewPassthrough(loc, attrRaw)
	case "anchor":
		return NewXref(loc, target, nil)
	default:
		return NewText(loc, nameTok.Text()+target)
	}
}

func parseAttrListInline(raw string, doc *Document, subs Subs) InlineNodes {
	if raw == "" {
		return nil
	}
	return ParseInline(NewContiguousLines([]*Line{NewLine([]Token{{Kind: TokenText, Lexeme: []byte(raw)}})}), doc, subs)
}

// applyLinkPunctuation rewrites a trailing '^' in the link text into the
// window=_blank/rel=noopener attributes, per spec.md §4.E. It handles only
// the caret: trailing '.,;:!?)' is not moved out of a link, and bare URLs
// are left as plain text rather than auto-linked.
func applyLinkPunctuation(n Inline) Inline {
	text := LinkTextOf(n)
	if len(text) == 0 {
		return n
	}
	last := text[len(text)-1]
	if s := TextOf(last); strings.HasSuffix(s, "^") {
		attrs := AttrsOf(n)
		if attrs == nil {
			attrs = NewAttrList()
		}
		attrs.Named["window"] = "_blank"
		attrs.Named["rel"] = "noopener"
		trimmed := append(InlineNodes{}, text[:len(text)-1]...)
		trimmed = append(trimmed, NewText(last.Loc(), strings.TrimSuffix(s, "^")))
		return NewLink(n.Loc(), TargetOf(n), trimmed, attrs)
	}
	return n
}

// parseXrefShorthand parses "<<id,text>>" or "<<id>>" starting at the
// first '<' of a recognized double-angle pair.
func (p *inlineParser) parseXrefShorthand() Inline {
	loc := p.cur().Loc
	p.advance()
	p.advance() // consume "<<"
	closeIdx := -1
	for i := p.pos; i < len(p.toks)-1; i++ {
		if p.toks[i].Kind == TokenGreaterThan && p.toks[i+1].Kind == TokenGreaterThan {
			closeIdx = i
			break
		}
	}
	if closeIdx < 0 {
		return NewText(loc, "<<")
	}
	inner := p.toks[p.pos:closeIdx]
	p.pos = closeIdx + 2

	var idSB strings.Builder
	i := 0
	for i < len(inner) && inner[i].Kind != TokenComma {
		idSB.Write(inner[i].Lexeme)
		i++
	}
	var text InlineNodes
	if i < len(inner) {
		sub := &inlineParser{toks: inner[i+1:], doc: p.doc, subs: p.subs}
		text = sub.parseUntil(nil)
	}
	return NewXref(loc, idSB.String(), text)
}
