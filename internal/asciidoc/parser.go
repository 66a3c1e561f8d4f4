package asciidoc

import "strings"

// ParseOptions configures a Parse call (spec.md §6.1).
type ParseOptions struct {
	Doctype      string            `validate:"omitempty,oneof=article book manpage inline"`
	SafeMode     string            `validate:"omitempty,oneof=unsafe safe server secure"`
	Strict       bool
	Attributes   map[string]string
	MaxIncludeDepth int
	Resolver     IncludeResolver
	CurrentPath  string
}

// Parser holds the mutable state threaded through one parse: the source
// lexer, accumulated document attributes, anchor/footnote registries, and
// diagnostics. A Parser instance is single-use; construct one per
// document via NewParser or the pooled variant in pool.go.
type Parser struct {
	lex      *Lexer
	opts     ParseOptions
	doc      *Document
	strict   bool
	maxDepth int
}

// NewParser creates a Parser over source with the given options. Before
// lexing, ifdef::/ifndef::/ifeval:: conditionals are folded away against
// opts.Attributes, so a block excluded by a caller-supplied attribute
// never reaches the block parser at all.
func NewParser(source []byte, opts ParseOptions) *Parser {
	source = PreprocessConditionals(source, opts.Attributes)
	lex := NewLexer(source)
	if opts.MaxIncludeDepth > 0 {
		lex.SetMaxIncludeDepth(opts.MaxIncludeDepth)
	}
	doc := NewDocument(ParseDoctype(opts.Doctype))
	for k, v := range opts.Attributes {
		doc.Attributes[k] = v
	}
	return &Parser{lex: lex, opts: opts, doc: doc, strict: opts.Strict, maxDepth: opts.MaxIncludeDepth}
}

// Parse runs the pipeline after NewParser's conditional preprocessing:
// byte lexing into lines, block parsing, the document structuring pass,
// and anchor registration. It is
// the library-level implementation behind the package-level Parse
// function in api.go.
func (p *Parser) Parse() (*Document, error) {
	lines := p.readAllLines()

	bp := &blockParser{doc: p.doc, strict: p.strict, resolver: p.opts.Resolver, currentPath: p.opts.CurrentPath, safeMode: ParseSafeMode(p.opts.SafeMode)}
	blocks := bp.parseBlocks(lines)

	structure(p.doc, blocks)
	registerAnchors(p.doc)
	return p.doc, nil
}

// readAllLines drains the Lexer to EOF, grouping tokens into Lines split
// at Newline boundaries. An include:: directive line is intercepted here
// rather than left for blockParser: its target is resolved and pushed
// onto the Lexer's source stack (source.go), so the included content is
// lexed in place exactly as if it had been written inline, with nested
// includes and nested depth tracking falling out of the pushdown stack
// for free.
func (p *Parser) readAllLines() []*Line {
	var lines []*Line
	var cur []Token
	for {
		tok := p.lex.Next()
		if tok.IsEOF() {
			if len(cur) > 0 {
				lines = append(lines, NewLine(cur))
			}
			return lines
		}
		if tok.Kind == TokenNewline {
			if target, attrs, ok := matchIncludeLine(cur); ok && p.expandInclude(target, attrs) {
				cur = nil
				continue
			}
			lines = append(lines, NewLine(cur))
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
}

// matchIncludeLine reports whether a completed line's tokens are an
// include:: directive, and if so extracts its target and attribute list.
func matchIncludeLine(toks []Token) (target string, attrs *AttrList, ok bool) {
	if len(toks) < 2 || (toks[0].Kind != TokenMacroName && toks[0].Kind != TokenDirective) {
		return "", nil, false
	}
	if strings.TrimRight(toks[0].Text(), ":") != "include" {
		return "", nil, false
	}
	l := NewLine(append([]Token{}, toks[1:]...))
	if !l.Empty() && l.Current().Kind == TokenColon {
		l.ConsumeFront()
	}
	var targetSB strings.Builder
	for !l.Empty() && l.Current().Kind != TokenOpenBracket {
		targetSB.Write(l.ConsumeFront().Lexeme)
	}
	target = targetSB.String()
	if !l.Empty() && l.Current().Kind == TokenOpenBracket {
		l.ConsumeFront()
		var sb strings.Builder
		for !l.Empty() && l.Current().Kind != TokenCloseBracket {
			sb.Write(l.ConsumeFront().Lexeme)
		}
		attrs, _ = ParseAttrList(sb.String())
	}
	return target, attrs, true
}

// expandInclude resolves target via the configured resolver and pushes
// its (possibly tag/line-filtered) content onto the Lexer. Returns false
// when no resolver is configured, leaving the include:: line to fall
// through to blockParser, which parses it as an ordinary paragraph (so
// callers that parse without a resolver still see the line rather than
// silently losing it).
func (p *Parser) expandInclude(target string, attrs *AttrList) bool {
	if p.opts.Resolver == nil {
		return false
	}
	mode := ParseSafeMode(p.opts.SafeMode)
	currentPath := p.lex.CurrentFile()
	if currentPath == "" {
		currentPath = p.opts.CurrentPath
	}
	resolvedPath, content, err := p.opts.Resolver.Resolve(currentPath, target, mode)
	if err != nil {
		p.doc.Diagnostics.Add(SeverityError, err.Error(), Location{}, currentPath)
		return true
	}
	if attrs != nil {
		if tags := attrs.Get("tags", ""); tags != "" {
			content = SelectTags(content, ParseTagSpecs(tags))
		} else if tag := attrs.Get("tag", ""); tag != "" {
			content = SelectTags(content, ParseTagSpecs(tag))
		}
	}
	if err := p.lex.PushInclude(resolvedPath, content); err != nil {
		p.doc.Diagnostics.Add(SeverityError, err.Error(), Location{}, currentPath)
	}
	return true
}

// splitContiguous groups lines into runs with no blank line inside,
// matching the ContiguousLines invariant (spec.md component B).
func splitContiguous(lines []*Line) []*ContiguousLines {
	var runs []*ContiguousLines
	var cur []*Line
	for _, l := range lines {
		if l.IsBlank() {
			if len(cur) > 0 {
				runs = append(runs, NewContiguousLines(cur))
				cur = nil
			}
			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		runs = append(runs, NewContiguousLines(cur))
	}
	return runs
}

// structure runs the spec.md §4.G structuring pass, grouping a flat
// BlockNodes stream into Sections by heading level. It does not build
// Parts for any doctype: doc.Parts is left empty, and a level-0 heading
// becomes a top-level Section.
func structure(doc *Document, blocks BlockNodes) {
	var preamble BlockNodes
	var sections []*Section
	var stack []*Section

	for _, b := range blocks {
		if b.Kind() != NodeSection {
			target := &preamble
			if len(stack) > 0 {
				target = &stack[len(stack)-1].Blocks
			}
			*target = append(*target, b)
			continue
		}
		gn, _ := b.(*genericNode) //nolint:forcetypeassert // internal node representation
		sec := &Section{
			Heading: gn.Title,
			Level:   gn.Level,
			ID:      gn.ID,
			Loc:     gn.loc,
			Special: specialSectionKindForStyle(gn.Style),
		}
		for len(stack) > 0 && stack[len(stack)-1].Level >= sec.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			sections = append(sections, sec)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, sec)
		}
		stack = append(stack, sec)
	}

	doc.Preamble = preamble
	doc.Sections = sections
}

// isSectionHeading reports whether a Line is "N '=' signs, whitespace,
// text" and returns the level (N-1) and remaining content tokens.
func isSectionHeading(l *Line) (level int, rest []Token, ok bool) {
	if l.Empty() || l.Current().Kind != TokenEquals {
		return 0, nil, false
	}
	eq := l.ConsumeFront()
	if l.Empty() || l.Current().Kind != TokenWhitespace {
		l.Restore(eq)
		return 0, nil, false
	}
	l.ConsumeFront() // whitespace
	return eq.Len() - 1, l.Remaining(), true
}

// trimTrailingSpace trims ASCII space/tab from both ends of s.
func trimTrailingSpace(s string) string { return strings.TrimSpace(s) }
