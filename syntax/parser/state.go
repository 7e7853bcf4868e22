package parser

import (
	"fmt"

	"github.com/dhamidi/syspro/syntax"
	"github.com/dhamidi/syspro/syntax/grammar"
)

// rawNode is a node of the tree built during descent. Leaves carry a token.
// Combinator nodes hold the matches of a List or SeparatedList. A
// placeholder stands for width empty slots: an absent preserve-empty
// optional or a required position that failed to match.
type rawNode struct {
	kind        syntax.Kind
	token       *syntax.Token
	children    []*rawNode
	combinator  bool
	placeholder bool
	width       int
}

func placeholder(width int) *rawNode {
	return &rawNode{placeholder: true, width: width}
}

// state is the mutable context of a single parse. It is never shared
// between parses; the table it reads from is.
type state struct {
	table  *grammar.Table
	oracle *grammar.Oracle
	tokens []syntax.Token
	pos    int
	eof    syntax.Token
	// owned is set once tokens has been copied from the caller's slice.
	owned bool

	diagnostics []syntax.Diagnostic
	invalid     []syntax.TextSpan
	eofReported bool
}

func newState(table *grammar.Table, tokens []syntax.Token) *state {
	end := 0
	if len(tokens) > 0 {
		end = tokens[len(tokens)-1].End
	}
	return &state{
		table:  table,
		oracle: grammar.NewOracle(table),
		tokens: tokens,
		eof:    syntax.Token{Kind: syntax.KindEOF, Start: end, End: end},
	}
}

func (s *state) peek() syntax.Token {
	return s.peekN(0)
}

func (s *state) peekN(n int) syntax.Token {
	if s.pos+n >= len(s.tokens) {
		return s.eof
	}
	return s.tokens[s.pos+n]
}

func (s *state) atEOF() bool {
	return s.pos >= len(s.tokens)
}

func (s *state) advance() syntax.Token {
	tok := s.peek()
	if !s.atEOF() {
		s.pos++
	}
	return tok
}

// fail records the lookahead as unexpected and skips it. Failures at the
// end of input are reported once.
func (s *state) fail(kind syntax.DiagnosticKind, expected grammar.Set) {
	tok := s.peek()
	if tok.Kind == syntax.KindEOF {
		if s.eofReported {
			return
		}
		s.eofReported = true
	}
	span := tok.Span()
	s.diagnostics = append(s.diagnostics, syntax.Diagnostic{
		Kind:     kind,
		Span:     span,
		Token:    tok,
		Expected: expected.Kinds(),
	})
	s.invalid = append(s.invalid, span)
	s.advance()
}

// parseRoot parses the start symbol. Tokens left over are skipped one at a
// time, and whatever the start symbol matches after each skip is merged
// into the first result.
func (s *state) parseRoot() *rawNode {
	start := grammar.Nonterminal{Kind: s.table.Start()}
	root := s.nonterminal(start.Kind)
	for !s.atEOF() {
		s.fail(syntax.UnrecognisedToken, s.oracle.First(start))
		merge(root, s.nonterminal(start.Kind))
	}
	return root
}

// merge appends the repetitions matched in src to the corresponding
// repetitions in dst. Both nodes come from the same production.
func merge(dst, src *rawNode) {
	for i, c := range src.children {
		if i >= len(dst.children) {
			dst.children = append(dst.children, c)
			continue
		}
		d := dst.children[i]
		switch {
		case c == nil || c.placeholder || c.token != nil:
		case d == nil || d.placeholder:
			dst.children[i] = c
		case d.combinator && c.combinator:
			d.children = append(d.children, c.children...)
		case d.token == nil && d.kind == c.kind:
			merge(d, c)
		}
	}
}

func (s *state) descend(sym grammar.Symbol) *rawNode {
	switch sym := sym.(type) {
	case grammar.Terminal:
		return s.terminal(sym.Kind)
	case grammar.Nonterminal:
		return s.nonterminal(sym.Kind)
	case grammar.Or:
		return s.or(sym)
	case grammar.Question:
		return s.question(sym)
	case grammar.List:
		return s.list(sym)
	case grammar.SeparatedList:
		return s.separatedList(sym)
	}
	panic(fmt.Sprintf("parser: unknown symbol %T", sym))
}

func (s *state) terminal(kind syntax.Kind) *rawNode {
	if kind == syntax.KindGreaterThan && s.peek().Kind == syntax.KindGreaterThanGreaterThan {
		s.splitShift()
	}
	if s.peek().Kind != kind {
		s.fail(syntax.UnrecognisedToken, grammar.NewSet(kind))
		return placeholder(1)
	}
	tok := s.advance()
	return &rawNode{kind: tok.Kind, token: &tok}
}

// splitShift replaces the ">>" lookahead with two ">" tokens, so that
// nested type argument lists can close together. The first token keeps the
// leading trivia and the second the trailing trivia.
func (s *state) splitShift() {
	if !s.owned {
		s.tokens = append([]syntax.Token(nil), s.tokens...)
		s.owned = true
	}
	tok := s.tokens[s.pos]
	mid := tok.CoreStart() + 1
	first := syntax.Token{
		Kind:          syntax.KindGreaterThan,
		Start:         tok.Start,
		End:           mid,
		LeadingTrivia: tok.LeadingTrivia,
		Text:          ">",
	}
	second := syntax.Token{
		Kind:           syntax.KindGreaterThan,
		Start:          mid,
		End:            tok.End,
		TrailingTrivia: tok.TrailingTrivia,
		Text:           ">",
	}
	s.tokens = append(s.tokens[:s.pos+1], s.tokens[s.pos:]...)
	s.tokens[s.pos] = first
	s.tokens[s.pos+1] = second
}

// nonterminal expands the production of kind, one child per element.
// Absent optionals leave nil children.
func (s *state) nonterminal(kind syntax.Kind) *rawNode {
	production, _ := s.table.Production(kind)
	node := &rawNode{kind: kind, children: make([]*rawNode, 0, len(production))}
	for _, elem := range production {
		node.children = append(node.children, s.descend(elem))
	}
	return node
}

// or takes the first alternative that can start with the lookahead.
func (s *state) or(sym grammar.Or) *rawNode {
	t := s.peek().Kind
	for _, alt := range sym.Alternatives {
		if s.oracle.First(alt).Has(t) {
			return s.descend(alt)
		}
	}
	s.fail(syntax.UnrecognisedToken, s.oracle.First(sym))
	return placeholder(s.table.SlotWidth(sym))
}

func (s *state) question(sym grammar.Question) *rawNode {
	if s.oracle.First(sym.Inner).Has(s.peek().Kind) {
		return s.descend(sym.Inner)
	}
	if sym.PreserveEmpty {
		return placeholder(s.table.SlotWidth(sym.Inner))
	}
	return nil
}

func (s *state) list(sym grammar.List) *rawNode {
	node := &rawNode{combinator: true}
	first := s.oracle.First(sym.Inner)
	for first.Has(s.peek().Kind) {
		start := s.pos
		node.children = append(node.children, s.descend(sym.Inner))
		if s.pos == start {
			break
		}
	}
	return node
}

// separatedList matches elements with separator tokens between them. A
// separator that is not followed by an element and an element that is not
// preceded by a separator are both reported as WrongSeparator and skipped.
func (s *state) separatedList(sym grammar.SeparatedList) *rawNode {
	node := &rawNode{combinator: true}
	first := s.oracle.First(sym.Inner)
	if !first.Has(s.peek().Kind) {
		return node
	}
	node.children = append(node.children, s.descend(sym.Inner))

	for {
		tok := s.peek()
		switch {
		case tok.Kind == sym.Separator:
			if !first.Has(s.peekN(1).Kind) {
				s.fail(syntax.WrongSeparator, first)
				return node
			}
			sep := s.advance()
			node.children = append(node.children, &rawNode{kind: sep.Kind, token: &sep})
			node.children = append(node.children, s.descend(sym.Inner))
		case first.Has(tok.Kind):
			s.fail(syntax.WrongSeparator, grammar.NewSet(sym.Separator))
		default:
			return node
		}
	}
}
