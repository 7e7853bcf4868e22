package parser

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/syspro/syntax"
	"github.com/dhamidi/syspro/syntax/grammar"
	"github.com/dhamidi/syspro/syntax/lexer"
)

var log = commonlog.GetLogger("syspro.parser")

type Option func(*config)

type config struct {
	table *grammar.Table
	log   commonlog.Logger
}

// WithTable parses with t instead of the default language table.
func WithTable(t *grammar.Table) Option {
	return func(c *config) {
		c.table = t
	}
}

func WithLogger(l commonlog.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

func newConfig(opts []Option) config {
	c := config{
		table: grammar.Default(),
		log:   log,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Parse tokenizes and parses text. It never fails: malformed input is
// reported through the diagnostics and invalid ranges of the result.
func Parse(text string, opts ...Option) syntax.ParseResult {
	return ParseTokens(lexer.Tokenize(text), opts...)
}

// ParseTokens parses an already tokenized text. The tokens must tile the
// source, as the tokens returned by lexer.Tokenize do. A ">>" token that
// closes two type argument lists is split in two; the tokens of the result
// reflect the split and the caller's slice is left untouched.
func ParseTokens(tokens []syntax.Token, opts ...Option) syntax.ParseResult {
	c := newConfig(opts)
	s := newState(c.table, tokens)

	raw := s.parseRoot()
	root := newPostprocessor(c.table).root(raw)

	for _, d := range s.diagnostics {
		c.log.Debugf("%s", d)
	}

	return syntax.ParseResult{
		Root:          root,
		Tokens:        s.tokens,
		InvalidRanges: s.invalid,
		Diagnostics:   s.diagnostics,
	}
}
