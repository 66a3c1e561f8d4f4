// Package asciidoc implements the core of an AsciiDoc document engine: a
// byte-level lexer with a pushdown source stack, a context-sensitive block
// and inline parser, a document model, and a visitor-driven evaluator that
// walks the resulting tree against a pluggable Backend.
package asciidoc

// TokenKind identifies the lexical category of a Token. Every delimiter
// character gets its own kind so the parser can recognize block and inline
// markup by exact run length without re-scanning the source.
type TokenKind uint8

const (
	// TokenEOF signals end of input for the current source depth.
	TokenEOF TokenKind = iota
	// TokenNewline represents a line ending (\n; \r\n is normalized by the lexer).
	TokenNewline
	// TokenWhitespace is a contiguous run of ASCII spaces or tabs.
	TokenWhitespace
	// TokenUnicodeWhitespace is a single non-ASCII whitespace code point
	// (NBSP, figure space, word joiner, etc.) recognized explicitly.
	TokenUnicodeWhitespace
	// TokenWord is a maximal run of alphanumerics and word-continuation bytes.
	TokenWord
	// TokenDigits is a maximal run of ASCII digits.
	TokenDigits
	// TokenText is a catch-all run of plain characters with no other meaning.
	TokenText

	// Repeating-run punctuation. Len() carries the run length, which is
	// semantically load-bearing (heading level, delimiter identity, list marker).

	// TokenEquals is a run of '='.
	TokenEquals
	// TokenDashes is a run of '-'.
	TokenDashes
	// TokenDots is a run of '.'.
	TokenDots
	// TokenSlashes is a run of '/'.
	TokenSlashes
	// TokenPlus is a run of '+'.
	TokenPlus
	// TokenUnderscore is a run of '_'.
	TokenUnderscore
	// TokenStar is a run of '*'.
	TokenStar
	// TokenBacktick is a run of '`'.
	TokenBacktick
	// TokenTilde is a run of '~'.
	TokenTilde
	// TokenHash is a run of '#'.
	TokenHash
	// TokenCaret is a run of '^'.
	TokenCaret

	// Single-character punctuation.

	// TokenColon is a single ':'.
	TokenColon
	// TokenSemicolon is a single ';'.
	TokenSemicolon
	// TokenComma is a single ','.
	TokenComma
	// TokenPipe is a single '|'.
	TokenPipe
	// TokenBang is a single '!'.
	TokenBang
	// TokenAmpersand is a single '&' not part of a recognized Entity.
	TokenAmpersand
	// TokenQuoteDouble is a single '"'.
	TokenQuoteDouble
	// TokenQuoteSingle is a single '\''.
	TokenQuoteSingle
	// TokenBackslash is a single '\\'.
	TokenBackslash
	// TokenPercent is a single '%'.
	TokenPercent

	// Brackets.

	// TokenOpenBrace is a single '{' (attribute reference open, or literal
	// when unterminated).
	TokenOpenBrace
	// TokenCloseBrace is a single '}'.
	TokenCloseBrace
	// TokenOpenBracket is a single '['.
	TokenOpenBracket
	// TokenCloseBracket is a single ']'.
	TokenCloseBracket
	// TokenOpenParen is a single '('.
	TokenOpenParen
	// TokenCloseParen is a single ')'.
	TokenCloseParen
	// TokenLessThan is a single '<'.
	TokenLessThan
	// TokenGreaterThan is a single '>'.
	TokenGreaterThan

	// Compound / recognized constructs.

	// TokenDelimiterLine is a whole-line delimiter: "--", or a run of >=4
	// of *_-+./= at line start, optionally followed by end of line.
	TokenDelimiterLine
	// TokenMacroName is a word immediately followed by ':' matching a
	// closed list of macro names (the colon is consumed).
	TokenMacroName
	// TokenUriScheme is a recognized URI scheme followed by "://" (or
	// ":///" for file).
	TokenUriScheme
	// TokenMaybeEmail is a word@dotted-domain candidate.
	TokenMaybeEmail
	// TokenAttrRef is a complete "{name}" attribute reference.
	TokenAttrRef
	// TokenDirective is a line-start preprocessor directive keyword
	// followed by "::" and non-whitespace.
	TokenDirective
	// TokenTermDelimiter is "::", ":::", "::::", or ";;" in description-list position.
	TokenTermDelimiter
	// TokenCalloutNum is "<N>", "<.>", or the HTML-comment equivalents.
	TokenCalloutNum
	// TokenEntity is "&#NNN;", "&#xHH;", or "&name;".
	TokenEntity
)

const unknownTokenKind = "UnknownToken"

// String returns a human-readable name for the token kind, used in
// diagnostics and tests.
//
//nolint:revive // cyclomatic - switch cases are simple string returns
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenNewline:
		return "Newline"
	case TokenWhitespace:
		return "Whitespace"
	case TokenUnicodeWhitespace:
		return "UnicodeWhitespace"
	case TokenWord:
		return "Word"
	case TokenDigits:
		return "Digits"
	case TokenText:
		return "Text"
	case TokenEquals:
		return "Equals"
	case TokenDashes:
		return "Dashes"
	case TokenDots:
		return "Dots"
	case TokenSlashes:
		return "Slashes"
	case TokenPlus:
		return "Plus"
	case TokenUnderscore:
		return "Underscore"
	case TokenStar:
		return "Star"
	case TokenBacktick:
		return "Backtick"
	case TokenTilde:
		return "Tilde"
	case TokenHash:
		return "Hash"
	case TokenCaret:
		return "Caret"
	case TokenColon:
		return "Colon"
	case TokenSemicolon:
		return "Semicolon"
	case TokenComma:
		return "Comma"
	case TokenPipe:
		return "Pipe"
	case TokenBang:
		return "Bang"
	case TokenAmpersand:
		return "Ampersand"
	case TokenQuoteDouble:
		return "QuoteDouble"
	case TokenQuoteSingle:
		return "QuoteSingle"
	case TokenBackslash:
		return "Backslash"
	case TokenPercent:
		return "Percent"
	case TokenOpenBrace:
		return "OpenBrace"
	case TokenCloseBrace:
		return "CloseBrace"
	case TokenOpenBracket:
		return "OpenBracket"
	case TokenCloseBracket:
		return "CloseBracket"
	case TokenOpenParen:
		return "OpenParen"
	case TokenCloseParen:
		return "CloseParen"
	case TokenLessThan:
		return "LessThan"
	case TokenGreaterThan:
		return "GreaterThan"
	case TokenDelimiterLine:
		return "DelimiterLine"
	case TokenMacroName:
		return "MacroName"
	case TokenUriScheme:
		return "UriScheme"
	case TokenMaybeEmail:
		return "MaybeEmail"
	case TokenAttrRef:
		return "AttrRef"
	case TokenDirective:
		return "Directive"
	case TokenTermDelimiter:
		return "TermDelimiter"
	case TokenCalloutNum:
		return "CalloutNum"
	case TokenEntity:
		return "Entity"
	default:
		return unknownTokenKind
	}
}

// isRun reports whether k is a kind produced by scanRun: their Len() is the
// number of repeated bytes and is semantically meaningful.
func (k TokenKind) isRun() bool {
	switch k {
	case TokenEquals, TokenDashes, TokenDots, TokenSlashes, TokenPlus,
		TokenUnderscore, TokenStar, TokenBacktick, TokenTilde, TokenHash, TokenCaret:
		return true
	default:
		return false
	}
}

// Location is the absolute byte span of a Token or AST node at a given
// include depth. Depth 0 is the primary source; pushed sources (includes,
// attribute expansions, passthrough placeholders) increment it.
type Location struct {
	Start   int
	End     int
	Depth   int
}

// Len returns the byte length of the location.
func (l Location) Len() int { return l.End - l.Start }

// encloses reports whether l fully encloses other at the same include
// depth. Locations at different depths are not compared and always report
// true; the evaluator treats (depth, start) as the ordering key per the
// source-stack contract, and structural enclosure is only meaningful
// within one depth.
func (l Location) encloses(other Location) bool {
	if l.Depth != other.Depth {
		return true
	}
	return l.Start <= other.Start && other.End <= l.End
}

// Token is a single lexical unit with an absolute source location and a
// zero-copy view into the buffer it was lexed from.
type Token struct {
	Kind    TokenKind
	Loc     Location
	Lexeme  []byte
}

// Len returns the run length for repeating-punctuation tokens (the count of
// '=' in a heading marker, the count of '-' in a listing delimiter, etc).
// For non-run tokens it returns the byte length of the lexeme.
func (t Token) Len() int {
	if t.Kind.isRun() {
		return len(t.Lexeme)
	}
	return t.Loc.Len()
}

// Text returns the token's lexeme as a string. This allocates; callers on
// a hot path should use Lexeme directly.
func (t Token) Text() string { return string(t.Lexeme) }

// IsEOF reports whether this token is the sentinel end-of-source token.
func (t Token) IsEOF() bool { return t.Kind == TokenEOF }
