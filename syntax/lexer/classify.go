package lexer

import (
	"math"
	"strconv"
	"unicode"

	"github.com/dhamidi/syspro/syntax"
)

// classify maps a candidate piece of source text to exactly one token kind.
// Offsets and trivia are left for the caller to fill in. Text that matches
// no token form comes back as KindBad.
func classify(s []rune) syntax.Token {
	text := string(s)
	tok := syntax.Token{Kind: syntax.KindBad, Text: text}
	if len(s) == 0 {
		return tok
	}

	if kind, ok := syntax.LookupKeyword(text); ok {
		tok.Kind = kind
		return tok
	}
	if text == "true" || text == "false" {
		tok.Kind = syntax.KindBoolean
		tok.BoolValue = text == "true"
		return tok
	}
	if kind, ok := syntax.LookupSymbol(text); ok {
		tok.Kind = kind
		return tok
	}
	if isIdentifier(s) {
		tok.Kind = syntax.KindIdentifier
		return tok
	}
	if classifyInteger(s, &tok) {
		return tok
	}
	if value, ok := runeLiteral(s); ok {
		tok.Kind = syntax.KindRune
		tok.RuneValue = value
		return tok
	}
	if value, ok := stringLiteral(s); ok {
		tok.Kind = syntax.KindString
		tok.StringValue = value
		return tok
	}
	return tok
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r)
}

func isIdentifier(s []rune) bool {
	if !isIdentifierStart(s[0]) {
		return false
	}
	for _, r := range s[1:] {
		if !isIdentifierPart(r) {
			return false
		}
	}
	return true
}

func isDecimalDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

var integerLimits = map[syntax.IntegerType]uint64{
	syntax.Int32:  math.MaxInt32,
	syntax.Int64:  math.MaxInt64,
	syntax.UInt32: math.MaxUint32,
	syntax.UInt64: math.MaxUint64,
}

func classifyInteger(s []rune, tok *syntax.Token) bool {
	n := 0
	for n < len(s) && isDecimalDigit(s[n]) {
		n++
	}
	if n == 0 {
		return false
	}

	intType := syntax.Int64
	hasSuffix := n < len(s)
	if hasSuffix {
		t, ok := syntax.LookupIntegerSuffix(string(s[n:]))
		if !ok {
			return false
		}
		intType = t
	}

	value, err := strconv.ParseUint(string(s[:n]), 10, 64)
	if err != nil || value > integerLimits[intType] {
		return false
	}

	tok.Kind = syntax.KindInteger
	tok.IntegerType = intType
	tok.HasSuffix = hasSuffix
	tok.IntValue = value
	return true
}

func runeLiteral(s []rune) (rune, bool) {
	if len(s) < 3 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return 0, false
	}
	body, ok := unescape(s[1:len(s)-1], '\'')
	if !ok || len(body) != 1 {
		return 0, false
	}
	return body[0], true
}

func stringLiteral(s []rune) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	body, ok := unescape(s[1:len(s)-1], '"')
	if !ok {
		return "", false
	}
	return string(body), true
}

var escapes = map[rune]rune{
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'0':  0,
}

// unescape decodes the body of a quoted literal. An unescaped delimiter or
// line break inside the body is invalid.
func unescape(body []rune, delimiter rune) ([]rune, bool) {
	out := make([]rune, 0, len(body))
	for i := 0; i < len(body); i++ {
		r := body[i]
		switch {
		case r == '\\':
			if i+1 >= len(body) {
				return nil, false
			}
			decoded, ok := escapes[body[i+1]]
			if !ok {
				return nil, false
			}
			out = append(out, decoded)
			i++
		case r == delimiter || r == '\n':
			return nil, false
		default:
			out = append(out, r)
		}
	}
	return out, true
}
