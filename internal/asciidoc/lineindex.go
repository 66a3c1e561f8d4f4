package asciidoc

import "sort"

// Position is a human-facing line/column coordinate derived from a byte
// offset, used to render diagnostics against the originating source line.
type Position struct {
	Line   int // 1-based
	Column int // 0-based byte offset within the line
	Offset int // original byte offset
}

// LineIndex converts byte offsets to Positions for one source buffer
// (one include depth). It builds lazily on first query and answers in
// O(log n) via binary search, the same shape as a lexer-adjacent line
// index used for diagnostic rendering.
type LineIndex struct {
	source     []byte
	lineStarts []int
	built      bool
}

// NewLineIndex creates a LineIndex over source. Construction is deferred
// until the first PositionAt/LineText call.
func NewLineIndex(source []byte) *LineIndex {
	return &LineIndex{source: source}
}

func (idx *LineIndex) build() {
	if idx.built {
		return
	}
	idx.lineStarts = []int{0}
	i := 0
	for i < len(idx.source) {
		switch idx.source[i] {
		case '\n':
			idx.lineStarts = append(idx.lineStarts, i+1)
			i++
		case '\r':
			if i+1 < len(idx.source) && idx.source[i+1] == '\n' {
				idx.lineStarts = append(idx.lineStarts, i+2)
				i += 2
			} else {
				idx.lineStarts = append(idx.lineStarts, i+1)
				i++
			}
		default:
			i++
		}
	}
	idx.built = true
}

// PositionAt returns the Position for a byte offset into the source this
// index was built over.
func (idx *LineIndex) PositionAt(offset int) Position {
	idx.build()
	if offset < 0 {
		offset = 0
	}
	if offset > len(idx.source) {
		offset = len(idx.source)
	}
	// Binary search for the line whose start is <= offset.
	n := sort.Search(len(idx.lineStarts), func(i int) bool {
		return idx.lineStarts[i] > offset
	})
	line := n // n is 1-based count of starts <= offset, i.e. the line number
	if line < 1 {
		line = 1
	}
	start := idx.lineStarts[line-1]

	return Position{Line: line, Column: offset - start, Offset: offset}
}

// LineText returns the raw text of the 1-based line containing offset,
// without its trailing newline. Used to render diagnostic underlines.
func (idx *LineIndex) LineText(offset int) []byte {
	idx.build()
	pos := idx.PositionAt(offset)
	start := idx.lineStarts[pos.Line-1]
	end := len(idx.source)
	if pos.Line < len(idx.lineStarts) {
		end = idx.lineStarts[pos.Line] - 1
	}
	if end > start && end <= len(idx.source) && idx.source[end-1] == '\r' {
		end--
	}
	if end < start {
		end = start
	}

	return idx.source[start:end]
}
