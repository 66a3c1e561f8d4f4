package asciidoc

// Line is an ordered run of tokens up to (but not including) the
// terminating Newline. A Line never spans a newline; newlines separate
// Lines inside a ContiguousLines.
type Line struct {
	tokens []Token
	front  int // index of the first unconsumed token
	back   int // index one past the last unconsumed token
}

// NewLine wraps a token slice (already split at a newline boundary) as a Line.
func NewLine(tokens []Token) *Line {
	return &Line{tokens: tokens, front: 0, back: len(tokens)}
}

// Empty reports whether the line has no unconsumed tokens left.
func (l *Line) Empty() bool { return l.front >= l.back }

// Len returns the number of unconsumed tokens.
func (l *Line) Len() int { return l.back - l.front }

// Current returns the first unconsumed token without advancing.
func (l *Line) Current() Token {
	if l.Empty() {
		return Token{Kind: TokenEOF}
	}
	return l.tokens[l.front]
}

// Peek returns the unconsumed token n positions ahead of Current (n=0 is
// Current itself).
func (l *Line) Peek(n int) Token {
	idx := l.front + n
	if idx < 0 || idx >= l.back {
		return Token{Kind: TokenEOF}
	}
	return l.tokens[idx]
}

// Nth is an alias for Peek kept for readability at call sites that index
// from the start of the line rather than relative to Current.
func (l *Line) Nth(n int) Token { return l.Peek(n) }

// ConsumeFront removes and returns the first unconsumed token.
func (l *Line) ConsumeFront() Token {
	tok := l.Current()
	if !l.Empty() {
		l.front++
	}
	return tok
}

// ConsumeBack removes and returns the last unconsumed token.
func (l *Line) ConsumeBack() Token {
	if l.Empty() {
		return Token{Kind: TokenEOF}
	}
	l.back--
	return l.tokens[l.back]
}

// Restore pushes a token back onto the front of the line (used when a
// lookahead decision is reverted).
func (l *Line) Restore(tok Token) {
	if l.front > 0 {
		l.front--
		l.tokens[l.front] = tok
	}
}

// Remaining returns the unconsumed tokens without mutating the cursor.
func (l *Line) Remaining() []Token {
	return l.tokens[l.front:l.back]
}

// TrimLeadingWhitespace consumes a single leading Whitespace token, if present.
func (l *Line) TrimLeadingWhitespace() {
	if !l.Empty() && l.Current().Kind == TokenWhitespace {
		l.ConsumeFront()
	}
}

// ContainsSeq reports whether the unconsumed tokens contain the given
// sequence of kinds, in order and contiguous.
func (l *Line) ContainsSeq(kinds ...TokenKind) bool {
	return l.IndexOfSeq(kinds...) >= 0
}

// IndexOfSeq returns the index (relative to Current, i.e. 0-based from the
// front cursor) of the first occurrence of the given contiguous kind
// sequence, or -1 if not present.
func (l *Line) IndexOfSeq(kinds ...TokenKind) int {
	if len(kinds) == 0 {
		return -1
	}
	rem := l.Remaining()
	for i := 0; i+len(kinds) <= len(rem); i++ {
		match := true
		for j, k := range kinds {
			if rem[i+j].Kind != k {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// ExtractPrefix returns the tokens before the first occurrence of the given
// kind sequence (not including the match), and reports whether a match was found.
func (l *Line) ExtractPrefix(kinds ...TokenKind) ([]Token, bool) {
	idx := l.IndexOfSeq(kinds...)
	if idx < 0 {
		return nil, false
	}
	return l.Remaining()[:idx], true
}

// IsBlank reports whether the line has no tokens besides whitespace.
func (l *Line) IsBlank() bool {
	for _, t := range l.Remaining() {
		if t.Kind != TokenWhitespace && t.Kind != TokenUnicodeWhitespace {
			return false
		}
	}
	return true
}

// StartLoc returns the location of the first unconsumed token, or an empty
// location at the end of the underlying tokens if the line has no tokens.
func (l *Line) StartLoc() Location {
	if len(l.tokens) == 0 {
		return Location{}
	}
	if l.Empty() {
		return l.tokens[len(l.tokens)-1].Loc
	}
	return l.tokens[l.front].Loc
}

// EndLoc returns the location of the last token originally on this line.
func (l *Line) EndLoc() Location {
	if len(l.tokens) == 0 {
		return Location{}
	}
	return l.tokens[len(l.tokens)-1].Loc
}

// ContiguousLines is a double-ended queue of Line with the invariant that
// no blank line appears between its members; it represents one maximal run
// of non-empty source lines handed to a block or inline parser.
type ContiguousLines struct {
	lines []*Line
}

// NewContiguousLines wraps a slice of lines (already verified contiguous
// and non-blank by the caller) as a ContiguousLines.
func NewContiguousLines(lines []*Line) *ContiguousLines {
	return &ContiguousLines{lines: lines}
}

// Empty reports whether there are no lines left.
func (c *ContiguousLines) Empty() bool { return len(c.lines) == 0 }

// Len returns the number of remaining lines.
func (c *ContiguousLines) Len() int { return len(c.lines) }

// PopFront removes and returns the first line, or nil if empty.
func (c *ContiguousLines) PopFront() *Line {
	if c.Empty() {
		return nil
	}
	l := c.lines[0]
	c.lines = c.lines[1:]
	return l
}

// PeekFront returns the first line without removing it, or nil if empty.
func (c *ContiguousLines) PeekFront() *Line {
	if c.Empty() {
		return nil
	}
	return c.lines[0]
}

// RestoreFront pushes a partially-consumed line back onto the front of the
// queue, for block parsers that over-read while probing ahead.
func (c *ContiguousLines) RestoreFront(l *Line) {
	c.lines = append([]*Line{l}, c.lines...)
}

// All returns every remaining line, for parsers (e.g. the table subsystem)
// that need random access rather than a pure queue.
func (c *ContiguousLines) All() []*Line { return c.lines }
