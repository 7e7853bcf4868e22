package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/syspro/syntax"
	"github.com/dhamidi/syspro/syntax/parser"
)

// ErrSyntax is returned by PrettyPrint for source that does not parse
// cleanly.
var ErrSyntax = errors.New("source has syntax errors")

// Printer writes a syntax tree back out as source in canonical layout:
// four spaces per indentation level, single spaces around binary operators
// and after separators, one blank line between top-level definitions.
// Comments are carried over from the source text.
type Printer struct {
	w           io.Writer
	source      []rune
	indent      int
	indentStr   string
	atLineStart bool
	last        int      // offset in source just after the last printed token
	pending     []string // comments found inside the current line
	err         error
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:           w,
		indentStr:   "    ",
		atLineStart: true,
	}
}

// Print writes root, which must have been parsed from source.
func (p *Printer) Print(root *syntax.Node, source string) error {
	p.source = []rune(source)
	p.last = 0
	p.pending = nil

	p.printNode(root)
	for _, c := range comments(p.source, p.last, len(p.source)) {
		p.writeIndent()
		p.write(c)
		p.newline()
	}
	return p.err
}

func (p *Printer) printNode(n *syntax.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case syntax.KindSourceText:
		p.printSourceText(n)
	case syntax.KindTypeDefinition:
		p.printTypeDefinition(n)
	case syntax.KindFunctionDefinition:
		p.printFunctionDefinition(n)
	case syntax.KindVariableDefinition:
		p.printVariableDefinition(n)
		p.endLine()
	default:
		if isStatement(n.Kind) {
			p.printStatement(n)
			return
		}
		p.printInline(n)
	}
}

func (p *Printer) printSourceText(n *syntax.Node) {
	definitions := n.Slot(0)
	if definitions == nil {
		return
	}
	for i, def := range definitions.Children {
		if i > 0 {
			p.newline()
		}
		p.printNode(def)
	}
}

func (p *Printer) printTypeDefinition(n *syntax.Node) {
	p.token(n.Slot(0))
	p.write(" ")
	p.token(n.Slot(1))
	if n.Slot(2) != nil {
		p.token(n.Slot(2))
		p.printInline(n.Slot(3))
		p.token(n.Slot(4))
	}
	if bound := n.Slot(5); bound != nil {
		p.write(" ")
		p.printInline(bound)
	}
	p.endLine()
	p.block(n.Slot(7))
}

func (p *Printer) printFunctionDefinition(n *syntax.Node) {
	if modifiers := n.Slot(0); modifiers != nil {
		for _, m := range modifiers.Children {
			p.token(m)
			p.write(" ")
		}
	}
	p.token(n.Slot(1))
	p.write(" ")
	p.token(n.Slot(2))
	p.token(n.Slot(3))
	p.printInline(n.Slot(4))
	p.token(n.Slot(5))
	if n.Slot(6) != nil {
		p.token(n.Slot(6))
		p.write(" ")
		p.printInline(n.Slot(7))
	}
	p.endLine()
	p.block(n.Slot(9))
}

func (p *Printer) printVariableDefinition(n *syntax.Node) {
	p.token(n.Slot(0))
	p.write(" ")
	p.token(n.Slot(1))
	if n.Slot(2) != nil {
		p.token(n.Slot(2))
		p.write(" ")
		p.printInline(n.Slot(3))
	}
	if n.Slot(4) != nil {
		p.write(" ")
		p.token(n.Slot(4))
		p.write(" ")
		p.printInline(n.Slot(5))
	}
}

func (p *Printer) block(list *syntax.Node) {
	if list == nil {
		return
	}
	p.indent++
	for _, item := range list.Children {
		p.printNode(item)
	}
	p.indent--
}

func isStatement(kind syntax.Kind) bool {
	switch kind {
	case syntax.KindVariableDefinitionStatement, syntax.KindAssignmentStatement,
		syntax.KindExpressionStatement, syntax.KindReturnStatement, syntax.KindBreakStatement,
		syntax.KindContinueStatement, syntax.KindIfStatement, syntax.KindWhileStatement,
		syntax.KindForStatement:
		return true
	}
	return false
}

func (p *Printer) printStatement(n *syntax.Node) {
	switch n.Kind {
	case syntax.KindVariableDefinitionStatement:
		p.printVariableDefinition(n.Slot(0))
		p.endLine()
	case syntax.KindAssignmentStatement:
		p.printInline(n.Slot(0))
		p.write(" ")
		p.token(n.Slot(1))
		p.write(" ")
		p.printInline(n.Slot(2))
		p.endLine()
	case syntax.KindExpressionStatement:
		p.printInline(n.Slot(0))
		p.endLine()
	case syntax.KindReturnStatement:
		p.token(n.Slot(0))
		if value := n.Slot(1); value != nil {
			p.write(" ")
			p.printInline(value)
		}
		p.endLine()
	case syntax.KindBreakStatement, syntax.KindContinueStatement:
		p.token(n.Slot(0))
		p.endLine()
	case syntax.KindIfStatement:
		p.token(n.Slot(0))
		p.write(" ")
		p.printInline(n.Slot(1))
		p.endLine()
		p.block(n.Slot(3))
		if n.Slot(5) != nil {
			p.token(n.Slot(5))
			p.endLine()
			p.block(n.Slot(7))
		}
	case syntax.KindWhileStatement:
		p.token(n.Slot(0))
		p.write(" ")
		p.printInline(n.Slot(1))
		p.endLine()
		p.block(n.Slot(3))
	case syntax.KindForStatement:
		p.token(n.Slot(0))
		p.write(" ")
		p.printInline(n.Slot(1))
		p.write(" ")
		p.token(n.Slot(2))
		p.write(" ")
		p.printInline(n.Slot(3))
		p.endLine()
		p.block(n.Slot(5))
	}
}

var binaryKinds = map[syntax.Kind]bool{
	syntax.KindLogicalOrExpression:          true,
	syntax.KindLogicalAndExpression:         true,
	syntax.KindBitwiseOrExpression:          true,
	syntax.KindBitwiseExclusiveOrExpression: true,
	syntax.KindBitwiseAndExpression:         true,
	syntax.KindEqualsExpression:             true,
	syntax.KindNotEqualsExpression:          true,
	syntax.KindLessThanExpression:           true,
	syntax.KindLessThanOrEqualExpression:    true,
	syntax.KindGreaterThanExpression:        true,
	syntax.KindGreaterThanOrEqualExpression: true,
	syntax.KindBitwiseLeftShiftExpression:   true,
	syntax.KindBitwiseRightShiftExpression:  true,
	syntax.KindAddExpression:                true,
	syntax.KindSubtractExpression:           true,
	syntax.KindMultiplyExpression:           true,
	syntax.KindDivideExpression:             true,
	syntax.KindModuloExpression:             true,
}

// printInline prints expressions, names and the other constructs that
// never span more than one line.
func (p *Printer) printInline(n *syntax.Node) {
	if n == nil {
		return
	}
	if n.Token != nil {
		p.token(n)
		return
	}
	switch {
	case binaryKinds[n.Kind]:
		p.printInline(n.Slot(0))
		p.write(" ")
		p.token(n.Slot(1))
		p.write(" ")
		p.printInline(n.Slot(2))
	case n.Kind == syntax.KindIsExpression:
		p.printInline(n.Slot(0))
		p.write(" ")
		p.token(n.Slot(1))
		p.write(" ")
		p.printInline(n.Slot(2))
		if n.Slot(3) != nil {
			p.write(" ")
			p.token(n.Slot(3))
		}
	case n.Kind == syntax.KindTypeBound:
		p.token(n.Slot(0))
		p.write(" ")
		p.printInline(n.Slot(1))
	case n.Kind == syntax.KindTypeParameterDefinition:
		p.token(n.Slot(0))
		if bound := n.Slot(1); bound != nil {
			p.write(" ")
			p.printInline(bound)
		}
	case n.Kind == syntax.KindParameterDefinition:
		p.token(n.Slot(0))
		p.token(n.Slot(1))
		p.write(" ")
		p.printInline(n.Slot(2))
	case n.Kind == syntax.KindSeparatedList:
		p.printSeparated(n)
	default:
		for _, child := range n.Children {
			p.printInline(child)
		}
	}
}

// printSeparated puts a space after commas and around other separators.
func (p *Printer) printSeparated(n *syntax.Node) {
	for i, child := range n.Children {
		if i%2 == 0 {
			p.printInline(child)
			continue
		}
		if child != nil && child.Kind != syntax.KindComma {
			p.write(" ")
		}
		p.token(child)
		p.write(" ")
	}
}

// token prints a leaf. Comments between the previous token and this one are
// printed on their own lines when the token starts a line, and otherwise
// held back until the end of the line.
func (p *Printer) token(n *syntax.Node) {
	if n == nil || n.Token == nil || n.Token.IsIndentation() {
		return
	}
	tok := n.Token
	found := comments(p.source, p.last, tok.CoreStart())
	if p.atLineStart {
		for _, c := range found {
			p.writeIndent()
			p.write(c)
			p.newline()
		}
	} else {
		p.pending = append(p.pending, found...)
	}
	p.writeIndent()
	p.write(tok.Text)
	p.last = tok.CoreEnd()
}

func (p *Printer) endLine() {
	if c, end, ok := trailingComment(p.source, p.last); ok {
		p.pending = append(p.pending, c)
		p.last = end
	}
	if len(p.pending) > 0 {
		p.write(" " + strings.Join(p.pending, " "))
		p.pending = nil
	}
	p.newline()
}

func (p *Printer) writeIndent() {
	if !p.atLineStart {
		return
	}
	for i := 0; i < p.indent; i++ {
		p.write(p.indentStr)
	}
	p.atLineStart = false
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *Printer) newline() {
	p.write("\n")
	p.atLineStart = true
}

func isLineEnd(r rune) bool {
	return r == '\n' || r == '\r'
}

// comments returns the comments in src[from:to], which must hold trivia
// only.
func comments(src []rune, from, to int) []string {
	var out []string
	for i := from; i < to && i < len(src); i++ {
		if src[i] != '#' {
			continue
		}
		j := i
		for j < to && !isLineEnd(src[j]) {
			j++
		}
		out = append(out, strings.TrimRight(string(src[i:j]), " \t"))
		i = j
	}
	return out
}

// trailingComment finds a comment between from and the end of its line.
func trailingComment(src []rune, from int) (string, int, bool) {
	for i := from; i < len(src) && !isLineEnd(src[i]); i++ {
		if src[i] != '#' {
			continue
		}
		j := i
		for j < len(src) && !isLineEnd(src[j]) {
			j++
		}
		return strings.TrimRight(string(src[i:j]), " \t"), j, true
	}
	return "", from, false
}

// PrettyPrint parses source and prints it in canonical layout.
func PrettyPrint(source []byte) ([]byte, error) {
	text := string(source)
	result := parser.Parse(text)
	if len(result.Diagnostics) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, result.Diagnostics[0])
	}

	var buf bytes.Buffer
	if err := NewPrinter(&buf).Print(result.Root, text); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
