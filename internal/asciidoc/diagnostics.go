package asciidoc

import "fmt"

// Severity classifies a Diagnostic.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "error"
	}
}

// Diagnostic is a single parse or evaluation problem, located against the
// source stack depth/offset it was produced at so the caller can render a
// caret-underlined excerpt via Lexer.PositionAt/LineTextAt.
type Diagnostic struct {
	Severity Severity
	Message  string
	Loc      Location
	File     string // resolved include path, "" for the root document
}

func (d *Diagnostic) Error() string {
	if d.File != "" {
		return fmt.Sprintf("%s: %s (%s)", d.Severity, d.Message, d.File)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// ParseError is a fatal diagnostic raised during lexing or attribute-list
// parsing, before a document position is necessarily known. Callers that
// can attach a Location do so when converting it into a Diagnostic.
type ParseError struct {
	Message string
	Loc     Location
}

func (e *ParseError) Error() string { return e.Message }

// Diagnostics collects non-fatal problems gathered while parsing or
// evaluating a document, in the order they were observed.
type Diagnostics struct {
	items []*Diagnostic
}

// Add appends a diagnostic.
func (d *Diagnostics) Add(sev Severity, msg string, loc Location, file string) {
	d.items = append(d.items, &Diagnostic{Severity: sev, Message: msg, Loc: loc, File: file})
}

// All returns every diagnostic collected so far.
func (d *Diagnostics) All() []*Diagnostic { return d.items }

// HasErrors reports whether any collected diagnostic is SeverityError.
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.items {
		if item.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Render formats a diagnostic against its originating source line, with a
// caret under the offending span, mirroring spec.md §7: "Each diagnostic
// is rendered against the originating source line with a caret underline."
func (d *Diagnostic) Render(lx *Lexer) string {
	pos := lx.PositionAt(d.Loc.Depth, d.Loc.Start)
	line := lx.LineTextAt(d.Loc.Depth, d.Loc.Start)
	caretLine := make([]byte, len(line))
	for i := range caretLine {
		caretLine[i] = ' '
	}
	width := d.Loc.Len()
	if width < 1 {
		width = 1
	}
	for i := pos.Column; i < len(caretLine) && i < pos.Column+width; i++ {
		caretLine[i] = '^'
	}
	loc := fmt.Sprintf("%d:%d", pos.Line, pos.Column+1)
	if d.File != "" {
		loc = d.File + ":" + loc
	}
	return fmt.Sprintf("%s: %s: %s\n%s\n%s", loc, d.Severity, d.Message, line, caretLine)
}
