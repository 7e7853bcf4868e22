package format

import (
	"encoding"

	"github.com/dhamidi/syspro/syntax"
)

// Encoder writes a parse result in one output format. MarshalText renders
// the result passed to the most recent Encode.
type Encoder interface {
	encoding.TextMarshaler
	Encode(result syntax.ParseResult) error
}
