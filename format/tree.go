package format

import (
	"io"
	"strings"

	"github.com/dhamidi/syspro/syntax"
)

// TreeEncoder writes the indented tree dump of a parse result followed by
// its diagnostics, one per line.
type TreeEncoder struct {
	w      io.Writer
	lines  *syntax.LineIndex
	result syntax.ParseResult
}

// NewTreeEncoder returns an encoder that reports diagnostic positions as
// line:column through lines, or as offsets when lines is nil.
func NewTreeEncoder(w io.Writer, lines *syntax.LineIndex) *TreeEncoder {
	return &TreeEncoder{w: w, lines: lines}
}

func (e *TreeEncoder) Encode(result syntax.ParseResult) error {
	e.result = result
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(e.result.Root.String())
	for _, d := range e.result.Diagnostics {
		sb.WriteString(diagnosticLine("", e.lines, d))
	}
	return []byte(sb.String()), nil
}
