// Package lexer converts source text into tokens with trivia and explicit
// indentation markers.
package lexer

import (
	"github.com/dhamidi/syspro/syntax"
)

// Lexer turns source text into tokens. It tracks the indentation level and
// the width of one indentation step, which is established by the first
// indented line of a block and forgotten again when indentation returns to
// column zero.
type Lexer struct {
	src    []rune
	pos    int
	tokens []syntax.Token

	indentLevel int
	indentUnit  int

	// index in tokens of the most recent non-indentation token, or -1
	lastReal int
}

func New(text string) *Lexer {
	return &Lexer{
		src:        []rune(text),
		indentUnit: -1,
		lastReal:   -1,
	}
}

// Tokenize scans text completely. It never fails: text that cannot form a
// token is returned as KindBad tokens.
func Tokenize(text string) []syntax.Token {
	return New(text).Tokens()
}

// Tokens runs the lexer to the end of input and returns every token.
func (l *Lexer) Tokens() []syntax.Token {
	for l.next() {
	}
	return l.tokens
}

// next scans one line break or one token together with the trivia before
// it. It reports false once the input is exhausted.
func (l *Lexer) next() bool {
	start := l.pos
	l.skipTrivia()

	if n := l.newlineLength(l.pos); n > 0 {
		newline := l.pos
		l.pos += n
		l.attachTrivia(l.pos - start)
		l.indent(newline)
		return true
	}

	if l.pos >= len(l.src) {
		l.attachTrivia(l.pos - start)
		l.emitIndentation(-l.indentLevel, len(l.src))
		l.indentLevel = 0
		return false
	}

	coreStart := l.pos
	tok := l.scanToken()
	if l.lastReal < 0 {
		start = 0
	}
	tok.Start = start
	tok.LeadingTrivia = coreStart - start
	l.tokens = append(l.tokens, tok)
	l.lastReal = len(l.tokens) - 1
	return true
}

func (l *Lexer) peek() rune {
	return l.peekAt(l.pos)
}

func (l *Lexer) peekAt(i int) rune {
	if i < 0 || i >= len(l.src) {
		return -1
	}
	return l.src[i]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f' || r == '\v'
}

func (l *Lexer) newlineLength(i int) int {
	switch l.peekAt(i) {
	case '\n':
		return 1
	case '\r':
		if l.peekAt(i+1) == '\n' {
			return 2
		}
	}
	return 0
}

func (l *Lexer) isTriviaAt(i int) bool {
	r := l.peekAt(i)
	return isSpace(r) || r == '#' || l.isLoneCarriageReturn(i)
}

func (l *Lexer) isLoneCarriageReturn(i int) bool {
	return l.peekAt(i) == '\r' && l.peekAt(i+1) != '\n'
}

// skipTrivia consumes whitespace and comments up to, but not including, the
// next line terminator or token.
func (l *Lexer) skipTrivia() {
	for l.pos < len(l.src) {
		switch {
		case isSpace(l.peek()) || l.isLoneCarriageReturn(l.pos):
			l.pos++
		case l.peek() == '#':
			for l.pos < len(l.src) && l.newlineLength(l.pos) == 0 {
				l.pos++
			}
		default:
			return
		}
	}
}

// attachTrivia extends the last real token over n trailing code points.
// Before the first real token the trivia is left for that token to absorb.
func (l *Lexer) attachTrivia(n int) {
	if n == 0 || l.lastReal < 0 {
		return
	}
	tok := &l.tokens[l.lastReal]
	tok.End += n
	tok.TrailingTrivia += n
}

// indent recomputes the indentation level for the line that starts after
// the line terminator at offset newline.
func (l *Lexer) indent(newline int) {
	width := 0
	i := l.pos
	for isSpace(l.peekAt(i)) {
		width++
		i++
	}
	if i >= len(l.src) || l.newlineLength(i) > 0 || l.peekAt(i) == '#' || l.isLoneCarriageReturn(i) {
		return
	}

	level := l.indentLevel
	switch {
	case width == 0:
		level = 0
		l.indentUnit = -1
	case l.indentLevel == 0 || l.indentUnit <= 0:
		level = 1
		l.indentUnit = width
	case width%l.indentUnit != 0:
		return
	default:
		level = width / l.indentUnit
	}

	l.emitIndentation(level-l.indentLevel, newline)
	l.indentLevel = level
}

func (l *Lexer) emitIndentation(delta int, offset int) {
	kind := syntax.KindIndent
	if delta < 0 {
		kind = syntax.KindDedent
		delta = -delta
	}
	for range delta {
		l.tokens = append(l.tokens, syntax.Token{Kind: kind, Start: offset, End: offset})
	}
}

// scanToken reads the token core at the current position and returns it
// with End set to the end of the core.
func (l *Lexer) scanToken() syntax.Token {
	start := l.pos

	if q := l.peek(); q == '"' || q == '\'' {
		end := l.delimitedEnd(start, q)
		if tok := classify(l.src[start:end]); tok.Kind != syntax.KindBad {
			return l.accept(tok, end)
		}
		return l.scanBad(start)
	}

	if isDecimalDigit(l.peek()) {
		return l.scanNumber(start)
	}

	n := l.longestMatch(start)
	if n == 0 {
		return l.scanBad(start)
	}
	return l.accept(classify(l.src[start:start+n]), start+n)
}

// scanNumber classifies a digit-led run of identifier characters as a whole,
// so a literal and its width suffix are judged together and a malformed
// suffix turns the entire run into a bad token.
func (l *Lexer) scanNumber(start int) syntax.Token {
	end := start
	for end < len(l.src) && isIdentifierPart(l.src[end]) {
		end++
	}
	if tok := classify(l.src[start:end]); tok.Kind == syntax.KindInteger {
		return l.accept(tok, end)
	}
	return l.scanBad(start)
}

func (l *Lexer) accept(tok syntax.Token, end int) syntax.Token {
	l.pos = end
	tok.End = end
	return tok
}

// longestMatch extends the candidate one code point at a time for as long as
// it still classifies as a token.
func (l *Lexer) longestMatch(start int) int {
	n := 0
	for start+n < len(l.src) && classify(l.src[start:start+n+1]).Kind != syntax.KindBad {
		n++
	}
	return n
}

// delimitedEnd returns the offset just past the closing delimiter q of the
// literal starting at start. An unterminated literal ends at the line break
// or at the end of input.
func (l *Lexer) delimitedEnd(start int, q rune) int {
	i := start + 1
	for i < len(l.src) {
		switch {
		case l.newlineLength(i) > 0:
			return i
		case l.src[i] == '\\' && i+1 < len(l.src) && l.newlineLength(i+1) == 0:
			i += 2
		case l.src[i] == q:
			return i + 1
		default:
			i++
		}
	}
	return len(l.src)
}

// scanBad consumes code points until trivia, a line break or the end of
// input and returns them as a single bad token.
func (l *Lexer) scanBad(start int) syntax.Token {
	end := start + 1
	for end < len(l.src) && !l.isTriviaAt(end) && l.newlineLength(end) == 0 {
		end++
	}
	return l.accept(syntax.Token{Kind: syntax.KindBad, Text: string(l.src[start:end])}, end)
}
