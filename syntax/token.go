package syntax

import "fmt"

// TextSpan is a half-open range of code-point offsets.
type TextSpan struct {
	Start  int
	Length int
}

func (s TextSpan) End() int {
	return s.Start + s.Length
}

func (s TextSpan) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End()
}

func (s TextSpan) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End())
}

type IntegerType int

const (
	Int64 IntegerType = iota
	Int32
	UInt32
	UInt64
)

var integerTypeNames = map[IntegerType]string{
	Int64:  "i64",
	Int32:  "i32",
	UInt32: "u32",
	UInt64: "u64",
}

func (t IntegerType) String() string {
	if name, ok := integerTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// LookupIntegerSuffix maps a literal suffix such as "u32" to its type.
func LookupIntegerSuffix(suffix string) (IntegerType, bool) {
	for t, name := range integerTypeNames {
		if name == suffix {
			return t, true
		}
	}
	return 0, false
}

// Token is one lexical unit. Start and End cover the full extent of the
// token including its trivia; End is exclusive. The core text starts
// LeadingTrivia code points after Start and ends TrailingTrivia code points
// before End. Indentation tokens are zero-width.
type Token struct {
	Kind           Kind
	Start          int
	End            int
	LeadingTrivia  int
	TrailingTrivia int
	Text           string

	// Literal payloads, set according to Kind.
	BoolValue   bool
	IntegerType IntegerType
	HasSuffix   bool
	IntValue    uint64
	RuneValue   rune
	StringValue string
}

func (t Token) CoreStart() int {
	return t.Start + t.LeadingTrivia
}

func (t Token) CoreEnd() int {
	return t.End - t.TrailingTrivia
}

// Span is the full extent of the token including trivia.
func (t Token) Span() TextSpan {
	return TextSpan{Start: t.Start, Length: t.End - t.Start}
}

// CoreSpan is the extent of the token without trivia.
func (t Token) CoreSpan() TextSpan {
	return TextSpan{Start: t.CoreStart(), Length: t.CoreEnd() - t.CoreStart()}
}

// Direction is +1 for an indent, -1 for a dedent and 0 for every other token.
func (t Token) Direction() int {
	switch t.Kind {
	case KindIndent:
		return 1
	case KindDedent:
		return -1
	}
	return 0
}

func (t Token) IsIndentation() bool {
	return t.Kind == KindIndent || t.Kind == KindDedent
}

func (t Token) String() string {
	switch t.Kind {
	case KindIndent, KindDedent, KindEOF:
		return t.Kind.String()
	case KindInteger:
		if t.HasSuffix {
			return fmt.Sprintf("Integer(%d%s)", t.IntValue, t.IntegerType)
		}
		return fmt.Sprintf("Integer(%d)", t.IntValue)
	case KindBoolean:
		return fmt.Sprintf("Boolean(%t)", t.BoolValue)
	case KindRune:
		return fmt.Sprintf("Rune(%q)", t.RuneValue)
	case KindString:
		return fmt.Sprintf("String(%q)", t.StringValue)
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
}
