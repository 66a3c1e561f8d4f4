package asciidoc

import "strings"

// tableFormat identifies the cell separator convention selected by the
// opening delimiter (spec.md §4.F "Delimiter -> format").
type tableFormat byte

const (
	formatPSV tableFormat = '|'
	formatCSV tableFormat = ','
	formatDSV tableFormat = ':'
	formatNested tableFormat = '!'
)

func isTableOpen(l *Line) bool {
	_, ok := tableFormatAt(l)
	return ok
}

func tableFormatAt(l *Line) (tableFormat, bool) {
	toks := l.Remaining()
	if len(toks) < 2 {
		return 0, false
	}
	if toks[1].Kind != TokenEquals || toks[1].Len() != 3 {
		return 0, false
	}
	switch toks[0].Kind {
	case TokenPipe:
		return formatPSV, true
	case TokenComma:
		return formatCSV, true
	case TokenColon:
		return formatDSV, true
	case TokenBang:
		return formatNested, true
	}
	return 0, false
}

// parseTable implements spec.md §4.F: it reads cell content between the
// opening and closing "X===" delimiters, splits it into rows on the
// format's separator, applies cols= (or infers columns from the first
// row), and promotes/demotes the header and footer rows per the
// %header/%noheader/%footer options.
func (bp *blockParser) parseTable(lines []*Line, meta BlockMeta) (Block, int) {
	loc := lines[0].StartLoc()
	format, _ := tableFormatAt(lines[0])
	sep := byte(format)
	if meta.Attrs != nil {
		if s := meta.Attrs.Get("separator", ""); s != "" {
			sep = s[0]
		}
	}

	closeIdx := len(lines)
	for i := 1; i < len(lines); i++ {
		l := lines[i]
		if l.IsBlank() {
			continue
		}
		if f, ok := tableFormatAt(l); ok && f == format {
			closeIdx = i
			break
		}
	}

	var cols []ColumnSpec
	if meta.Attrs != nil {
		if colsVal := meta.Attrs.Get("cols", ""); colsVal != "" {
			cols = parseColumnSpecs(colsVal)
		}
	}

	cellTexts := splitCells(lines[1:closeIdx], sep)
	ncols := len(cols)
	if ncols == 0 {
		ncols = inferColumnCount(cellTexts)
	}

	hasHeader := false
	hasFooter := false
	if meta.Attrs != nil {
		hasHeader = meta.Attrs.HasOption("header")
		hasFooter = meta.Attrs.HasOption("footer")
	}
	noHeader := meta.Attrs != nil && meta.Attrs.HasOption("noheader")
	if !noHeader && !hasHeader && len(cellTexts) > ncols && ncols > 0 {
		hasHeader = firstRowFollowedByBlank(lines[1:closeIdx], sep)
	}

	var rows BlockNodes
	for r := 0; r*ncols < len(cellTexts) && ncols > 0; r++ {
		start := r * ncols
		end := start + ncols
		if end > len(cellTexts) {
			end = len(cellTexts)
		}
		var cells BlockNodes
		for _, text := range cellTexts[start:end] {
			content := ParseInline(NewContiguousLines([]*Line{NewLine([]Token{{Kind: TokenText, Lexeme: []byte(text)}})}), bp.doc, DefaultSubs)
			cells = append(cells, NewNodeBuilder(NodeTableCell).WithLoc(loc).WithChildren(inlinesToNodes(content)).Build())
		}
		rows = append(rows, NewNodeBuilder(NodeTableRow).WithLoc(loc).WithChildren(cells).Build())
	}

	if hasHeader && len(rows) > 0 {
		rows[0] = markRow(rows[0], "header")
		rows = rows[1:] // header row becomes zero body rows when it was the only row (Open Question #3)
	}
	if hasFooter && len(rows) > 0 {
		rows[len(rows)-1] = markRow(rows[len(rows)-1], "footer")
	}

	table := meta.apply(NewNodeBuilder(NodeTable)).WithLoc(loc).WithCols(cols).WithChildren(rows).Build()
	n := closeIdx + 1
	if closeIdx >= len(lines) {
		n = len(lines)
	}
	return table, n
}

func markRow(row Block, role string) Block {
	gn := row.(*genericNode) //nolint:forcetypeassert // internal node representation
	return NewNodeBuilder(NodeTableRow).WithLoc(gn.loc).WithStyle(role).WithChildren(gn.children).Build()
}

// splitCells joins the raw lines of a table body and splits on the
// unescaped separator byte, trimming a leading cell-spec prefix (spec.md
// §4.F "Cell spec prefix") from each cell. Multi-line cell content
// (a cell's text continuing on following physical lines until the next
// separator) is supported by treating embedded newlines as part of the
// current cell.
func splitCells(lines []*Line, sep byte) []string {
	raw := joinRawLines(lines)
	var cells []string
	var cur strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == sep && (i == 0 || raw[i-1] != '\\') {
			cells = append(cells, strings.TrimSpace(stripCellPrefix(cur.String())))
			cur.Reset()
			continue
		}
		cur.WriteByte(raw[i])
	}
	if strings.TrimSpace(cur.String()) != "" {
		cells = append(cells, strings.TrimSpace(stripCellPrefix(cur.String())))
	}
	return cells
}

// stripCellPrefix removes a leading "[DUP*][SPAN+|RSPAN.CSPAN+][<|>|^][.<|.>|.^][style-char]"
// prefix preceding a cell's content, per spec.md §4.F "Cell spec prefix".
// Duplication/span counts are not yet expanded into phantom cells; this
// trims the syntax so it does not leak into rendered cell text.
func stripCellPrefix(s string) string {
	s = strings.TrimLeft(s, " \t\n")
	i := 0
	for i < len(s) && (isDigitByte(s[i]) || s[i] == '*' || s[i] == '+' || s[i] == '.' ||
		s[i] == '<' || s[i] == '>' || s[i] == '^') {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == 'a' || s[i] == 'd' || s[i] == 'e' || s[i] == 'h' || s[i] == 'l' || s[i] == 'm' || s[i] == 's') {
		if i+1 < len(s) && s[i+1] == '|' {
			return s[i+1:]
		}
	}
	return s
}

func inferColumnCount(cells []string) int {
	if len(cells) == 0 {
		return 0
	}
	return len(cells)
}

func firstRowFollowedByBlank(lines []*Line, _ byte) bool {
	return len(lines) > 1 && !lines[0].IsBlank() && lines[1].IsBlank()
}

// parseColumnSpecs parses a cols= value into ColumnSpecs, per spec.md
// §4.F "Column spec parsing": each entry matches
// "MULT*HALIGN.VALIGN WIDTH STYLE" with all parts optional.
func parseColumnSpecs(value string) []ColumnSpec {
	var out []ColumnSpec
	for _, entry := range splitColsEntries(value) {
		out = append(out, parseColumnSpec(strings.TrimSpace(entry)))
	}
	return out
}

func splitColsEntries(value string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ';' }) {
		out = append(out, part)
	}
	return out
}

func parseColumnSpec(entry string) ColumnSpec {
	spec := ColumnSpec{Multiplier: 1, Width: -1}
	i := 0
	digits := ""
	for i < len(entry) && isDigitByte(entry[i]) {
		digits += string(entry[i])
		i++
	}
	if i < len(entry) && entry[i] == '*' && digits != "" {
		spec.Multiplier = atoiOr(digits, 1)
		i++
		digits = ""
	} else if digits != "" {
		// digits not followed by '*' belong to WIDTH, not MULT; rewind.
		i -= len(digits)
		digits = ""
	}
	if i < len(entry) {
		switch entry[i] {
		case '<', '^', '>':
			spec.HAlign = entry[i]
			i++
		}
	}
	if i < len(entry) && entry[i] == '.' {
		i++
		if i < len(entry) {
			switch entry[i] {
			case '<', '^', '>':
				spec.VAlign = entry[i]
				i++
			}
		}
	}
	widthDigits := ""
	for i < len(entry) && isDigitByte(entry[i]) {
		widthDigits += string(entry[i])
		i++
	}
	if widthDigits != "" {
		spec.Width = atoiOr(widthDigits, 0)
		if i < len(entry) && entry[i] == '%' {
			spec.Percent = true
			i++
		}
	} else if i < len(entry) && entry[i] == '~' {
		spec.Width = -1
		i++
	}
	if i < len(entry) {
		switch entry[i] {
		case 'a', 'd', 'e', 'h', 'l', 'm', 's':
			spec.Style = entry[i]
		}
	}
	return spec
}

func atoiOr(s string, def int) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigitByte(s[i]) {
			return def
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}
