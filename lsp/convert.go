package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/syspro/format"
	"github.com/dhamidi/syspro/syntax"
	"github.com/dhamidi/syspro/workspace"
)

const diagnosticSource = "syspro"

func toPosition(lines *syntax.LineIndex, offset int) protocol.Position {
	line, column := lines.UTF16Position(offset)
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(column)}
}

func toRange(lines *syntax.LineIndex, span syntax.TextSpan) protocol.Range {
	return protocol.Range{
		Start: toPosition(lines, span.Start),
		End:   toPosition(lines, span.End()),
	}
}

func fromPosition(lines *syntax.LineIndex, pos protocol.Position) int {
	return lines.Offset(int(pos.Line), int(pos.Character))
}

// toDiagnostics converts the diagnostics of doc. Ranges cover the core of
// the offending token so editors underline the token and not its trivia.
func toDiagnostics(doc *workspace.Document) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(doc.Result.Diagnostics))
	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource
	for _, d := range doc.Result.Diagnostics {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    toRange(doc.Lines, d.Token.CoreSpan()),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.Kind.String()},
			Source:   &source,
			Message:  d.Message(),
		})
	}
	return diagnostics
}

// documentSymbols lists the definitions of doc as an outline. Definitions
// without a name are left out.
func documentSymbols(doc *workspace.Document) []protocol.DocumentSymbol {
	definitions := doc.Result.Root.Slot(0)
	if definitions == nil {
		return []protocol.DocumentSymbol{}
	}
	symbols := []protocol.DocumentSymbol{}
	for _, def := range definitions.Children {
		if sym, ok := definitionSymbol(doc.Lines, def, false); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func definitionSymbol(lines *syntax.LineIndex, n *syntax.Node, member bool) (protocol.DocumentSymbol, bool) {
	if n == nil {
		return protocol.DocumentSymbol{}, false
	}

	var name *syntax.Node
	var kind protocol.SymbolKind
	var detail string
	var children []protocol.DocumentSymbol

	switch n.Kind {
	case syntax.KindTypeDefinition:
		name = n.Slot(1)
		kind = typeSymbolKind(n.Slot(0))
		if params := n.Slot(3); params != nil {
			detail = "<" + sourceText(params) + ">"
		}
		if members := n.Slot(7); members != nil {
			for _, m := range members.Children {
				if sym, ok := definitionSymbol(lines, m, true); ok {
					children = append(children, sym)
				}
			}
		}
	case syntax.KindFunctionDefinition:
		name = n.Slot(2)
		kind = protocol.SymbolKindFunction
		if member {
			kind = protocol.SymbolKindMethod
		}
		detail = "(" + sourceText(n.Slot(4)) + ")"
		if ret := n.Slot(7); ret != nil {
			detail += ": " + sourceText(ret)
		}
	case syntax.KindVariableDefinition:
		name = n.Slot(1)
		kind = protocol.SymbolKindVariable
		if typ := n.Slot(3); typ != nil {
			detail = sourceText(typ)
		}
	default:
		return protocol.DocumentSymbol{}, false
	}

	if name == nil || name.Token == nil {
		return protocol.DocumentSymbol{}, false
	}
	span, _ := n.Span()
	sym := protocol.DocumentSymbol{
		Name:           name.Token.Text,
		Kind:           kind,
		Range:          toRange(lines, span),
		SelectionRange: toRange(lines, name.Token.CoreSpan()),
		Children:       children,
	}
	if detail != "" {
		sym.Detail = &detail
	}
	return sym, true
}

func typeSymbolKind(keyword *syntax.Node) protocol.SymbolKind {
	if keyword == nil {
		return protocol.SymbolKindClass
	}
	switch keyword.Kind {
	case syntax.KindInterface:
		return protocol.SymbolKindInterface
	case syntax.KindObject:
		return protocol.SymbolKindObject
	}
	return protocol.SymbolKindClass
}

// sourceText joins the token texts below n with the spacing of the source.
func sourceText(n *syntax.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	prevEnd := -1
	for _, tok := range n.Tokens() {
		if tok.IsIndentation() {
			continue
		}
		if prevEnd >= 0 && tok.CoreStart() > prevEnd {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text)
		prevEnd = tok.CoreEnd()
	}
	return sb.String()
}

var foldable = map[syntax.Kind]bool{
	syntax.KindTypeDefinition:     true,
	syntax.KindFunctionDefinition: true,
	syntax.KindIfStatement:        true,
	syntax.KindWhileStatement:     true,
	syntax.KindForStatement:       true,
}

// foldingRanges returns one region per block construct spanning more than
// one line.
func foldingRanges(doc *workspace.Document) []protocol.FoldingRange {
	ranges := []protocol.FoldingRange{}
	kind := string(protocol.FoldingRangeKindRegion)
	syntax.Inspect(doc.Result.Root, func(n *syntax.Node) bool {
		if !foldable[n.Kind] {
			return true
		}
		span, ok := n.Span()
		if !ok {
			return true
		}
		start, _ := doc.Lines.UTF16Position(span.Start)
		end, _ := doc.Lines.UTF16Position(span.End())
		if end > start {
			ranges = append(ranges, protocol.FoldingRange{
				StartLine: protocol.UInteger(start),
				EndLine:   protocol.UInteger(end),
				Kind:      &kind,
			})
		}
		return true
	})
	return ranges
}

// nodePath returns the nodes whose core span holds offset, outermost first.
// A cursor just after a token still counts as on it.
func nodePath(root *syntax.Node, offset int) []*syntax.Node {
	var path []*syntax.Node
	n := root
	for n != nil {
		path = append(path, n)
		var next *syntax.Node
		for _, child := range n.Children {
			if child == nil {
				continue
			}
			span, ok := child.Span()
			if !ok {
				continue
			}
			if span.Contains(offset) || (child.Token != nil && offset == span.End()) {
				next = child
				break
			}
		}
		n = next
	}
	return path
}

// hover describes the token under offset and the nodes that contain it.
func hover(doc *workspace.Document, offset int) *protocol.Hover {
	path := nodePath(doc.Result.Root, offset)
	leaf := path[len(path)-1]
	if leaf.Token == nil {
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "`%s`\n\n", leaf.Token)
	for i := len(path) - 2; i >= 0; i-- {
		if path[i].Kind == syntax.KindList || path[i].Kind == syntax.KindSeparatedList {
			continue
		}
		fmt.Fprintf(&sb, "- %s\n", path[i].Kind)
	}

	r := toRange(doc.Lines, leaf.Token.CoreSpan())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: sb.String(),
		},
		Range: &r,
	}
}

// formatEdits replaces the whole document with its canonical layout.
// Documents with syntax errors are left alone.
func formatEdits(doc *workspace.Document) ([]protocol.TextEdit, error) {
	out, err := format.PrettyPrint([]byte(doc.Text))
	if err != nil {
		return nil, err
	}
	if string(out) == doc.Text {
		return []protocol.TextEdit{}, nil
	}
	end := utf8.RuneCountInString(doc.Text)
	return []protocol.TextEdit{{
		Range:   toRange(doc.Lines, syntax.TextSpan{Start: 0, Length: end}),
		NewText: string(out),
	}}, nil
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}
