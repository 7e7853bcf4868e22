package syntax

import (
	"fmt"
	"strings"
)

type DiagnosticKind int

const (
	UnrecognisedToken DiagnosticKind = iota
	WrongSeparator
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnrecognisedToken:
		return "UnrecognisedToken"
	case WrongSeparator:
		return "WrongSeparator"
	}
	return "Unknown"
}

// Diagnostic reports a syntactic problem at Token. Expected lists the
// terminal kinds that would have been accepted at that position.
type Diagnostic struct {
	Kind     DiagnosticKind
	Span     TextSpan
	Token    Token
	Expected []Kind
}

func (d Diagnostic) Message() string {
	got := d.Token.Text
	if d.Token.Kind == KindEOF {
		got = "end of input"
	} else if got == "" {
		got = d.Token.Kind.String()
	} else {
		got = fmt.Sprintf("%q", got)
	}

	switch d.Kind {
	case WrongSeparator:
		if len(d.Expected) > 0 {
			return fmt.Sprintf("unexpected %s in list, expected %s", got, describeKinds(d.Expected))
		}
		return fmt.Sprintf("unexpected %s in list", got)
	default:
		if len(d.Expected) > 0 {
			return fmt.Sprintf("unexpected %s, expected %s", got, describeKinds(d.Expected))
		}
		return fmt.Sprintf("unexpected %s", got)
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Span, d.Kind, d.Message())
}

func describeKinds(kinds []Kind) string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if text := k.Text(); text != "" {
			names = append(names, fmt.Sprintf("%q", text))
		} else {
			names = append(names, strings.ToLower(k.String()))
		}
	}
	if len(names) > 6 {
		names = append(names[:6], "...")
	}
	return strings.Join(names, ", ")
}

// ParseResult is everything a parse produces. Root is never nil.
type ParseResult struct {
	Root          *Node
	Tokens        []Token
	InvalidRanges []TextSpan
	Diagnostics   []Diagnostic
}

func (r ParseResult) HasErrors() bool {
	return len(r.Diagnostics) > 0 || len(r.InvalidRanges) > 0
}
