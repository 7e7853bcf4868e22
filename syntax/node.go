package syntax

import "strings"

// Node is a node of the public syntax tree. A leaf wraps exactly one token
// and has no children; an interior node has a kind and an ordered list of
// slots. A slot is nil when an optional part of the construct is absent.
type Node struct {
	Kind     Kind
	Token    *Token
	Children []*Node
}

func NewLeaf(tok Token) *Node {
	return &Node{Kind: tok.Kind, Token: &tok}
}

func (n *Node) IsLeaf() bool {
	return n.Token != nil
}

func (n *Node) SlotCount() int {
	return len(n.Children)
}

// Slot returns the child at index i, or nil if the slot is empty or out of range.
func (n *Node) Slot(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

func (n *Node) FirstChildOfKind(kind Kind) *Node {
	for _, child := range n.Children {
		if child != nil && child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child != nil && child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Tokens returns the leaves of n in source order.
func (n *Node) Tokens() []Token {
	var tokens []Token
	Inspect(n, func(node *Node) bool {
		if node.Token != nil {
			tokens = append(tokens, *node.Token)
		}
		return true
	})
	return tokens
}

// Span covers the cores of the first and last tokens below n.
func (n *Node) Span() (TextSpan, bool) {
	first := n.firstToken()
	last := n.lastToken()
	if first == nil || last == nil {
		return TextSpan{}, false
	}
	return TextSpan{Start: first.CoreStart(), Length: last.CoreEnd() - first.CoreStart()}, true
}

func (n *Node) firstToken() *Token {
	if n.Token != nil {
		return n.Token
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if tok := child.firstToken(); tok != nil {
			return tok
		}
	}
	return nil
}

func (n *Node) lastToken() *Token {
	if n.Token != nil {
		return n.Token
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if n.Children[i] == nil {
			continue
		}
		if tok := n.Children[i].lastToken(); tok != nil {
			return tok
		}
	}
	return nil
}

// Inspect walks the tree in depth-first order, skipping nil slots. If fn
// returns false the children of that node are not visited.
func Inspect(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		Inspect(child, fn)
	}
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if n.Token != nil && !n.Token.IsIndentation() {
		sb.WriteString(" ")
		sb.WriteString(n.Token.Text)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		if child == nil {
			sb.WriteString(strings.Repeat("  ", indent+1))
			sb.WriteString("<empty>\n")
			continue
		}
		child.writeIndent(sb, indent+1)
	}
}
