package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/syspro/syntax"
)

// TokenEncoder writes one tab-separated line per token: the core start and
// end offsets, the kind and the token with its literal value.
type TokenEncoder struct {
	w      io.Writer
	tokens []syntax.Token
}

func NewTokenEncoder(w io.Writer) *TokenEncoder {
	return &TokenEncoder{w: w}
}

func (e *TokenEncoder) Encode(tokens []syntax.Token) error {
	e.tokens = tokens
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, tok := range e.tokens {
		fmt.Fprintf(&sb, "%d\t%d\t%s\t%s\n",
			tok.CoreStart(),
			tok.CoreEnd(),
			tok.Kind,
			tokenValue(tok),
		)
	}
	return []byte(sb.String()), nil
}

func tokenValue(tok syntax.Token) string {
	switch tok.Kind {
	case syntax.KindIndent, syntax.KindDedent:
		return "-"
	case syntax.KindInteger, syntax.KindBoolean, syntax.KindRune, syntax.KindString:
		return tok.String()
	}
	return fmt.Sprintf("%q", tok.Text)
}

// DiagnosticEncoder writes diagnostics in the conventional
// path:line:column: kind: message form understood by editors.
type DiagnosticEncoder struct {
	w      io.Writer
	path   string
	lines  *syntax.LineIndex
	result syntax.ParseResult
}

func NewDiagnosticEncoder(w io.Writer, path string, lines *syntax.LineIndex) *DiagnosticEncoder {
	return &DiagnosticEncoder{w: w, path: path, lines: lines}
}

func (e *DiagnosticEncoder) Encode(result syntax.ParseResult) error {
	e.result = result
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *DiagnosticEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, d := range e.result.Diagnostics {
		sb.WriteString(diagnosticLine(e.path, e.lines, d))
	}
	return []byte(sb.String()), nil
}

// diagnosticLine locates d at the core of its token so that trivia does
// not move the reported position.
func diagnosticLine(path string, lines *syntax.LineIndex, d syntax.Diagnostic) string {
	var where string
	if lines != nil {
		where = lines.Position(d.Token.CoreStart()).String()
	} else {
		where = fmt.Sprintf("%d", d.Token.CoreStart())
	}
	if path != "" {
		where = path + ":" + where
	}
	return fmt.Sprintf("%s: %s: %s\n", where, d.Kind, d.Message())
}
