package parser

import (
	"github.com/dhamidi/syspro/syntax"
	"github.com/dhamidi/syspro/syntax/grammar"
)

// postprocessor rewrites a raw tree into the public tree. It reads the tags
// of the table and keeps no other state.
type postprocessor struct {
	table *grammar.Table
}

func newPostprocessor(table *grammar.Table) *postprocessor {
	return &postprocessor{table: table}
}

func (p *postprocessor) root(raw *rawNode) *syntax.Node {
	nodes := p.process(raw)
	if len(nodes) == 1 && nodes[0] != nil {
		return nodes[0]
	}
	return &syntax.Node{Kind: p.table.Start(), Children: nodes}
}

// process returns the public nodes that take the place of n in its parent.
// Nil entries are empty slots.
func (p *postprocessor) process(n *rawNode) []*syntax.Node {
	switch {
	case n == nil:
		return nil
	case n.placeholder:
		return make([]*syntax.Node, n.width)
	case n.token != nil:
		return []*syntax.Node{leaf(*n.token)}
	case n.combinator:
		return p.children(n)
	}

	switch p.table.Tag(n.kind) {
	case grammar.TagRemovable:
		return p.children(n)
	case grammar.TagList:
		return []*syntax.Node{{Kind: syntax.KindList, Children: p.children(n)}}
	case grammar.TagSeparatedList:
		return []*syntax.Node{{Kind: syntax.KindSeparatedList, Children: p.children(n)}}
	case grammar.TagChain:
		return p.chain(n)
	case grammar.TagPrimary:
		return p.primary(n)
	case grammar.TagShape:
		return p.shape(n)
	}
	return []*syntax.Node{{Kind: n.kind, Children: p.children(n)}}
}

func (p *postprocessor) children(n *rawNode) []*syntax.Node {
	var out []*syntax.Node
	for _, c := range n.children {
		out = append(out, p.process(c)...)
	}
	return out
}

// leaf wraps boolean literals in a true or false literal expression.
func leaf(tok syntax.Token) *syntax.Node {
	if tok.Kind != syntax.KindBoolean {
		return syntax.NewLeaf(tok)
	}
	kind := syntax.KindFalseLiteralExpression
	if tok.BoolValue {
		kind = syntax.KindTrueLiteralExpression
	}
	return &syntax.Node{Kind: kind, Children: []*syntax.Node{syntax.NewLeaf(tok)}}
}

// chain folds `operand tail?` where tail is `op operand tail?` into
// left-associative binary expressions. The expression kind comes from the
// operator token.
func (p *postprocessor) chain(n *rawNode) []*syntax.Node {
	if len(n.children) == 0 {
		return nil
	}
	result := p.process(n.children[0])
	var tail *rawNode
	if len(n.children) > 1 && matched(n.children[1]) {
		tail = n.children[1]
	}

	for tail != nil {
		var parts []*syntax.Node
		var next *rawNode
		for i, c := range tail.children {
			if i == len(tail.children)-1 {
				if next = nested(c, tail); next != nil {
					continue
				}
			}
			parts = append(parts, p.process(c)...)
		}

		kind, ok := p.operatorKind(parts)
		if !ok {
			result = append(result, parts...)
		} else {
			children := make([]*syntax.Node, 0, len(result)+len(parts))
			children = append(children, result...)
			children = append(children, parts...)
			result = []*syntax.Node{{Kind: kind, Children: children}}
		}
		tail = next
	}
	return result
}

func matched(c *rawNode) bool {
	return c != nil && !c.placeholder && !c.combinator && c.token == nil
}

// nested returns c if it is a matched instance of the same helper as like.
func nested(c, like *rawNode) *rawNode {
	if !matched(c) || c.kind != like.kind {
		return nil
	}
	return c
}

func (p *postprocessor) operatorKind(parts []*syntax.Node) (syntax.Kind, bool) {
	if len(parts) == 0 || parts[0] == nil || parts[0].Token == nil {
		return 0, false
	}
	return p.table.OperatorKind(parts[0].Token.Kind)
}

// primary folds an atom and its suffixes into member access, invocation and
// index expressions, innermost first.
func (p *postprocessor) primary(n *rawNode) []*syntax.Node {
	if len(n.children) == 0 {
		return nil
	}
	result := p.process(n.children[0])
	if len(n.children) < 2 || n.children[1] == nil {
		return result
	}

	for _, suffix := range n.children[1].children {
		if suffix == nil {
			continue
		}
		parts := p.process(suffix)
		kind, ok := p.table.SuffixKind(suffix.kind)
		if !ok {
			result = append(result, parts...)
			continue
		}
		children := make([]*syntax.Node, 0, len(result)+len(parts))
		children = append(children, result...)
		children = append(children, parts...)
		result = []*syntax.Node{{Kind: kind, Children: children}}
	}
	return result
}

// shape picks the long kind when any optional after the first element was
// matched.
func (p *postprocessor) shape(n *rawNode) []*syntax.Node {
	shape, _ := p.table.Shape(n.kind)
	kind := shape.Short
	for _, c := range n.children[1:] {
		if c != nil && !c.placeholder {
			kind = shape.Long
		}
	}
	return []*syntax.Node{{Kind: kind, Children: p.children(n)}}
}
