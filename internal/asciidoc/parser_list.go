package asciidoc

// ListMarker identifies one level of list nesting: its literal marker
// text (e.g. "*", "**", ".", "..", "1.") and whether it is ordered.
type ListMarker struct {
	Text    string
	Ordered bool
}

func isListStarter(l *Line) bool {
	_, ok := listMarkerAt(l)
	return ok
}

// listMarkerAt recognizes an unordered ("*"+ or a lone "-") or ordered
// ("."+ or digits+".") marker at the front of l, without consuming
// tokens. Description-list terms are not recognized here.
func listMarkerAt(l *Line) (ListMarker, bool) {
	if l.Empty() {
		return ListMarker{}, false
	}
	first := l.Peek(0)
	switch first.Kind {
	case TokenStar:
		if l.Peek(1).Kind == TokenWhitespace {
			return ListMarker{Text: first.Text(), Ordered: false}, true
		}
	case TokenDashes:
		if first.Len() == 1 && l.Peek(1).Kind == TokenWhitespace {
			return ListMarker{Text: "-", Ordered: false}, true
		}
	case TokenDots:
		if l.Peek(1).Kind == TokenWhitespace {
			return ListMarker{Text: first.Text(), Ordered: true}, true
		}
	case TokenDigits:
		if l.Peek(1).Kind == TokenDots && l.Peek(1).Len() == 1 && l.Peek(2).Kind == TokenWhitespace {
			return ListMarker{Text: first.Text() + ".", Ordered: true}, true
		}
	}
	return ListMarker{}, false
}

// isDescriptionTerm recognizes "term:: " at the front of l as two
// adjacent TokenColon tokens, since the scanner treats ':' as a
// single-char token rather than a run. ";;" terms are not recognized.
func isDescriptionTerm(l *Line) (termEnd int, ok bool) {
	toks := l.Remaining()
	for i := 0; i < len(toks)-1; i++ {
		if toks[i].Kind == TokenColon && toks[i+1].Kind == TokenColon {
			if i > 0 && toks[i-1].Kind == TokenColon {
				continue // tail of a longer colon run
			}
			if i+2 < len(toks) && toks[i+2].Kind == TokenColon {
				continue // leave "::: "/":::: " as a 3/4-colon delimiter, not a 2-colon term
			}
			return i, true
		}
	}
	return 0, false
}

// parseList implements spec.md §4.D rule 3 and the "List nesting
// algorithm": a stack of ListMarker values, continuing the top list on a
// matching marker, popping to the first matching ancestor on a shallower
// marker, and pushing a nested list on an unrelated marker. Terminated by
// two consecutive blank lines (or one blank line not followed by an
// item), a line that does not start with a list marker, or a "//-"
// detach sentinel.
func (bp *blockParser) parseList(lines []*Line) (Block, int) {
	type frame struct {
		marker ListMarker
		items  BlockNodes
	}
	var stack []frame
	loc := lines[0].StartLoc()
	i := 0

	flushTo := func(depth int) {
		for len(stack) > depth+1 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			nested := NewList(loc, listKindOfMarker(top.marker), top.items, BlockMeta{})
			parent := &stack[len(stack)-1]
			if len(parent.items) > 0 {
				parent.items[len(parent.items)-1] = appendNestedBlock(parent.items[len(parent.items)-1], nested)
			}
		}
	}

	for i < len(lines) {
		l := lines[i]
		if l.IsBlank() {
			if i+1 < len(lines) && isListStarter(lines[i+1]) {
				i++
				continue
			}
			break
		}
		if isDetachSentinel(l) {
			i++
			break
		}
		marker, ok := listMarkerAt(l)
		if !ok {
			break
		}
		depth := -1
		for d, f := range stack {
			if f.marker.Text == marker.Text && f.marker.Ordered == marker.Ordered {
				depth = d
				break
			}
		}
		if depth < 0 {
			stack = append(stack, frame{marker: marker})
			depth = len(stack) - 1
		} else {
			flushTo(depth)
		}

		l.ConsumeFront() // marker
		l.TrimLeadingWhitespace()
		itemEnd := bp.itemContentEnd(lines, i)
		content := ParseInline(NewContiguousLines(cloneLines(append([]*Line{l}, lines[i+1:itemEnd]...))), bp.doc, DefaultSubs)
		item := NewListItem(l.StartLoc(), marker.Text, content, nil)
		stack[depth].items = append(stack[depth].items, item)
		i = itemEnd
	}

	flushTo(0)
	top := stack[0]
	return NewList(loc, listKindOfMarker(top.marker), top.items, BlockMeta{}), i
}

func listKindOfMarker(m ListMarker) ListKind {
	if m.Ordered {
		return ListOrdered
	}
	return ListUnordered
}

// itemContentEnd finds where a single item's principal content ends: the
// next recognized list marker, a blank line, a lone "+" continuation
// line, or EOF. Other non-marker lines are absorbed into the item.
// Continuation blocks are not attached to the item: parseList ends the
// list at the "+" line.
func (bp *blockParser) itemContentEnd(lines []*Line, start int) int {
	i := start + 1
	for i < len(lines) {
		if lines[i].IsBlank() {
			return i
		}
		if isContinuationLine(lines[i]) {
			return i
		}
		if _, ok := listMarkerAt(lines[i]); ok {
			return i
		}
		i++
	}
	return i
}

func isContinuationLine(l *Line) bool {
	toks := l.Remaining()
	return len(toks) == 1 && toks[0].Kind == TokenPlus && toks[0].Len() == 1
}

func isDetachSentinel(l *Line) bool {
	toks := l.Remaining()
	return len(toks) == 2 && toks[0].Kind == TokenSlashes && toks[0].Len() == 1 && toks[1].Kind == TokenDashes && toks[1].Len() == 1
}

// appendNestedBlock attaches a nested block (typically a List) beneath
// the most recently built list item by rebuilding it with the nested
// block appended to its children; nodes are immutable, so "attach" means
// "rebuild".
func appendNestedBlock(item Block, nested Block) Block {
	children := append(item.Children(), nested)
	gn := item.(*genericNode) //nolint:forcetypeassert // internal node representation
	return NewNodeBuilder(NodeListItem).WithLoc(gn.loc).WithStyle(gn.Style).WithChildren(children).Build()
}
