package asciidoc

import (
	"strconv"
	"strings"
)

// AttrList is the parsed form of a bracketed attribute list, e.g.
// "[.lead#intro,role=note]" or "[quote, Abraham Lincoln, Gettysburg Address]".
// It keeps positional attributes (by 1-based index, matching AsciiDoc's
// "first positional is the block style / shorthand target") and named
// attributes separately, plus the shorthand-parsed id/roles/options that
// apply to the first positional slot.
type AttrList struct {
	Positional []string
	Named      map[string]string
	ID         string
	Roles      []string
	Options    []string
}

// NewAttrList returns an empty, ready-to-use AttrList.
func NewAttrList() *AttrList {
	return &AttrList{Named: map[string]string{}}
}

// Get returns a named attribute, or def if absent.
func (a *AttrList) Get(name, def string) string {
	if v, ok := a.Named[name]; ok {
		return v
	}
	return def
}

// Positional1 returns the first positional attribute (the block style, for
// most contexts), or "" if none was given.
func (a *AttrList) Positional1() string {
	if len(a.Positional) == 0 {
		return ""
	}
	return a.Positional[0]
}

// HasOption reports whether the given option (e.g. "noheader") is set.
func (a *AttrList) HasOption(name string) bool {
	for _, o := range a.Options {
		if o == name {
			return true
		}
	}
	return false
}

// errFormattedTextShorthand is the diagnostic message for an attribute
// list attached to inline formatted text (e.g. "*[foo#id]text*") that uses
// anything beyond id/role/option shorthand. Preserved verbatim per
// spec.md Open Question #1: formatted-text attribute lists are
// restricted to the shorthand grammar and reject named or positional
// attributes outright.
const errFormattedTextShorthand = "formatted-text attribute lists support only id/role/option shorthand"

// ParseAttrList parses the contents of a bracketed attribute list (without
// the surrounding '[' ']'). Shorthand syntax ('#id', '.role', '%option')
// may appear attached to the first positional entry; subsequent entries
// are comma-separated and either bare positionals or name=value pairs,
// where value may be quoted with '"' to contain commas.
func ParseAttrList(src string) (*AttrList, error) {
	al := NewAttrList()
	fields, err := splitAttrListFields(src)
	if err != nil {
		return nil, err
	}
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if eq := findUnquotedEquals(field); eq >= 0 {
			name := strings.TrimSpace(field[:eq])
			val := unquote(strings.TrimSpace(field[eq+1:]))
			al.Named[name] = val
			if name == "id" {
				al.ID = val
			}
			continue
		}
		if i == 0 {
			al.parseShorthand(field)
			continue
		}
		al.Positional = append(al.Positional, unquote(field))
	}
	return al, nil
}

// parseShorthand splits the first positional field on shorthand sigils
// (#id, .role, %option) prefixed to a bare style name, e.g.
// "quote#q1.attribution%compact".
func (a *AttrList) parseShorthand(field string) {
	var style strings.Builder
	i := 0
	for i < len(field) {
		switch field[i] {
		case '#':
			j := i + 1
			for j < len(field) && field[j] != '.' && field[j] != '%' {
				j++
			}
			a.ID = field[i+1 : j]
			i = j
		case '.':
			j := i + 1
			for j < len(field) && field[j] != '.' && field[j] != '%' && field[j] != '#' {
				j++
			}
			a.Roles = append(a.Roles, field[i+1:j])
			i = j
		case '%':
			j := i + 1
			for j < len(field) && field[j] != '.' && field[j] != '%' && field[j] != '#' {
				j++
			}
			a.Options = append(a.Options, field[i+1:j])
			i = j
		default:
			style.WriteByte(field[i])
			i++
		}
	}
	if s := style.String(); s != "" {
		a.Positional = append(a.Positional, s)
	}
}

// ParseFormattedTextAttrList parses an attribute list attached directly to
// inline formatted text. Only id/role/option shorthand is permitted there;
// anything else (a bare style positional beyond shorthand, or any
// name=value pair) is rejected with errFormattedTextShorthand.
func ParseFormattedTextAttrList(src string) (*AttrList, error) {
	al := NewAttrList()
	src = strings.TrimSpace(src)
	if src == "" {
		return al, nil
	}
	if strings.ContainsAny(src, ",=") {
		return nil, &ParseError{Message: errFormattedTextShorthand}
	}
	var style strings.Builder
	al.parseShorthandInto(src, &style)
	if style.Len() > 0 {
		return nil, &ParseError{Message: errFormattedTextShorthand}
	}
	return al, nil
}

func (a *AttrList) parseShorthandInto(field string, style *strings.Builder) {
	i := 0
	for i < len(field) {
		switch field[i] {
		case '#':
			j := i + 1
			for j < len(field) && field[j] != '.' && field[j] != '%' {
				j++
			}
			a.ID = field[i+1 : j]
			i = j
		case '.':
			j := i + 1
			for j < len(field) && field[j] != '.' && field[j] != '%' && field[j] != '#' {
				j++
			}
			a.Roles = append(a.Roles, field[i+1:j])
			i = j
		case '%':
			j := i + 1
			for j < len(field) && field[j] != '.' && field[j] != '%' && field[j] != '#' {
				j++
			}
			a.Options = append(a.Options, field[i+1:j])
			i = j
		default:
			style.WriteByte(field[i])
			i++
		}
	}
}

// splitAttrListFields splits on top-level commas, respecting double-quoted
// spans so a quoted value may itself contain a comma.
func splitAttrListFields(src string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuotes {
		return nil, &ParseError{Message: "unterminated quoted attribute value"}
	}
	fields = append(fields, cur.String())
	return fields, nil
}

func findUnquotedEquals(field string) int {
	inQuotes := false
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case '"':
			inQuotes = !inQuotes
		case '=':
			if !inQuotes {
				return i
			}
		}
	}
	return -1
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// IntAttr returns a named attribute parsed as an integer, or def if absent
// or unparsable. Used for cols/colspan/rowspan-style numeric attributes.
func (a *AttrList) IntAttr(name string, def int) int {
	v, ok := a.Named[name]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}
