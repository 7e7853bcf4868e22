package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/syspro/syntax"
)

// JSONEncoder writes the tree, invalid ranges and diagnostics of a parse
// result as one indented JSON document.
type JSONEncoder struct {
	w      io.Writer
	result syntax.ParseResult
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(result syntax.ParseResult) error {
	e.result = result
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.result, "", "  ")
}
