package asciidoc

import "fmt"

// DefaultMaxIncludeDepth bounds the pushdown source stack against runaway
// include cycles, mirroring the original implementation's include-depth
// ceiling.
const DefaultMaxIncludeDepth = 64

// sourceKind records why a frame was pushed, for diagnostics and for the
// "only one temporary-buffer frame at a time" rule.
type sourceKind uint8

const (
	sourceKindRoot sourceKind = iota
	sourceKindInclude
	sourceKindAttrExpansion
	sourceKindPassthrough
)

// sourceFrame is one level of the pushdown stack: a buffer being scanned,
// the scanner positioned within it, and the bookkeeping needed to resume
// the enclosing frame once this one is exhausted.
type sourceFrame struct {
	kind     sourceKind
	file     string // resolved path, "" for non-include frames
	scanner  *scanner
	index    *LineIndex
	temporary bool // single-use frame; popped and discarded, never re-entered
}

// Lexer is the source-stack-aware façade over scanner: it owns a stack of
// sourceFrames and always serves tokens from the top of the stack,
// transparently falling through to the frame beneath when one is
// exhausted. This is the component A "source stack & byte lexer" of the
// engine: include:: resolution is implemented as a push onto this stack
// rather than as a separate pass over the token stream. PushTemporary
// offers single-use frames for spliced content, but the parser does not
// call it: attribute references become lazy AttrRef nodes and pass:
// macros are handled by the inline parser.
type Lexer struct {
	stack          []*sourceFrame
	maxIncludeDepth int
	includeDepth    int
}

// NewLexer creates a Lexer over the root document source.
func NewLexer(source []byte) *Lexer {
	root := &sourceFrame{
		kind:    sourceKindRoot,
		scanner: newScanner(source),
		index:   NewLineIndex(source),
	}
	return &Lexer{
		stack:          []*sourceFrame{root},
		maxIncludeDepth: DefaultMaxIncludeDepth,
	}
}

// SetMaxIncludeDepth overrides DefaultMaxIncludeDepth.
func (lx *Lexer) SetMaxIncludeDepth(n int) { lx.maxIncludeDepth = n }

// Depth returns the current pushdown depth (0 at the root source).
func (lx *Lexer) Depth() int { return len(lx.stack) - 1 }

// ErrMaxIncludeDepth is returned by PushInclude when the include nesting
// limit would be exceeded.
type ErrMaxIncludeDepth struct{ Limit int }

func (e *ErrMaxIncludeDepth) Error() string {
	return fmt.Sprintf("maximum include depth of %d exceeded", e.Limit)
}

// PushInclude pushes a new frame for the resolved contents of an
// include:: directive. file is the resolved path, reported by
// CurrentFile and used as the base path for nested includes.
func (lx *Lexer) PushInclude(file string, content []byte) error {
	if lx.includeDepth >= lx.maxIncludeDepth {
		return &ErrMaxIncludeDepth{Limit: lx.maxIncludeDepth}
	}
	lx.includeDepth++
	lx.stack = append(lx.stack, &sourceFrame{
		kind:    sourceKindInclude,
		file:    file,
		scanner: newScanner(content),
		index:   NewLineIndex(content),
	})
	return nil
}

// PushTemporary pushes a single-use frame over content produced by
// attribute-reference expansion or inline-passthrough placeholder
// splicing. Only one temporary frame may be active at a time (spec.md
// §4.A "Temporary buffers"): attempting to push a second while one is
// live panics, since it indicates a bug in the caller rather than a
// recoverable document error.
func (lx *Lexer) PushTemporary(kind string, content []byte) {
	if lx.topTemporary() != nil {
		panic("asciidoc: nested temporary source buffer")
	}
	k := sourceKindAttrExpansion
	if kind == "passthrough" {
		k = sourceKindPassthrough
	}
	lx.stack = append(lx.stack, &sourceFrame{
		kind:      k,
		scanner:   newScanner(content),
		index:     NewLineIndex(content),
		temporary: true,
	})
}

func (lx *Lexer) topTemporary() *sourceFrame {
	for _, f := range lx.stack {
		if f.temporary {
			return f
		}
	}
	return nil
}

// pop discards the top frame, decrementing includeDepth if it was an
// include frame.
func (lx *Lexer) pop() {
	top := lx.stack[len(lx.stack)-1]
	if top.kind == sourceKindInclude {
		lx.includeDepth--
	}
	lx.stack = lx.stack[:len(lx.stack)-1]
}

// CurrentFile returns the resolved path of the innermost include frame,
// or "" if no include is active.
func (lx *Lexer) CurrentFile() string {
	for i := len(lx.stack) - 1; i >= 0; i-- {
		if lx.stack[i].kind == sourceKindInclude {
			return lx.stack[i].file
		}
	}
	return ""
}

// Next returns the next token, switching frames on the pushdown stack as
// they're exhausted. Depth in the returned Token's Location matches the
// frame it was produced by, per the source-stack contract: (depth, start)
// orders all tokens regardless of which physical buffer produced them.
func (lx *Lexer) Next() Token {
	for {
		top := lx.stack[len(lx.stack)-1]
		tok := top.scanner.next()
		if !tok.IsEOF() {
			tok.Loc.Depth = len(lx.stack) - 1
			return tok
		}
		if len(lx.stack) == 1 {
			return tok // root EOF: no frame beneath to fall through to
		}
		lx.pop()
	}
}

// PositionAt resolves a byte offset at the given depth to a human Position,
// using the LineIndex for the frame that was active at that depth when it
// produced the offset. Callers must supply the depth the Location carries;
// popped frames are not retained once exhausted, so this only resolves
// offsets belonging to frames still on the stack or the root.
func (lx *Lexer) PositionAt(depth, offset int) Position {
	if depth < 0 || depth >= len(lx.stack) {
		depth = 0
	}
	return lx.stack[depth].index.PositionAt(offset)
}

// LineTextAt mirrors PositionAt for diagnostic source-line rendering.
func (lx *Lexer) LineTextAt(depth, offset int) []byte {
	if depth < 0 || depth >= len(lx.stack) {
		depth = 0
	}
	return lx.stack[depth].index.LineText(offset)
}
