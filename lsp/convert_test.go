package lsp

import (
	"errors"
	"testing"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/syspro/format"
	"github.com/dhamidi/syspro/workspace"
)

const listSource = "class List<T>\n    var head: T\n    def size(): Int32\n        return 0\nobject Main\n"

func newDocument(t *testing.T, text string) *workspace.Document {
	t.Helper()
	ws := workspace.New("", workspace.WithLogger(commonlog.MOCK_LOGGER))
	return ws.Update("a.syspro", text, 1)
}

func pos(line, character int) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(character)}
}

func TestToDiagnostics(t *testing.T) {
	doc := newDocument(t, "class A\n  def f(1)")
	diagnostics := toDiagnostics(doc)
	if len(diagnostics) == 0 {
		t.Fatal("toDiagnostics() returned nothing")
	}

	d := diagnostics[0]
	want := protocol.Range{Start: pos(1, 8), End: pos(1, 9)}
	if d.Range != want {
		t.Errorf("Range = %v, want %v", d.Range, want)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("Severity = %v, want error", d.Severity)
	}
	if d.Code == nil || d.Code.Value != "UnrecognisedToken" {
		t.Errorf("Code = %v, want UnrecognisedToken", d.Code)
	}
	if d.Message != `unexpected "1", expected ")"` {
		t.Errorf("Message = %q", d.Message)
	}
}

func TestToDiagnosticsUTF16(t *testing.T) {
	doc := newDocument(t, "class A\n  var s = \"😀\" )")
	diagnostics := toDiagnostics(doc)
	if len(diagnostics) == 0 {
		t.Fatal("toDiagnostics() returned nothing")
	}
	// The emoji takes two UTF-16 code units.
	want := protocol.Range{Start: pos(1, 15), End: pos(1, 16)}
	if diagnostics[0].Range != want {
		t.Errorf("Range = %v, want %v", diagnostics[0].Range, want)
	}
}

func TestDocumentSymbols(t *testing.T) {
	symbols := documentSymbols(newDocument(t, listSource))
	if len(symbols) != 2 {
		t.Fatalf("len(symbols) = %d, want 2", len(symbols))
	}

	list := symbols[0]
	if list.Name != "List" || list.Kind != protocol.SymbolKindClass {
		t.Errorf("symbols[0] = %s %v, want List class", list.Name, list.Kind)
	}
	if list.Detail == nil || *list.Detail != "<T>" {
		t.Errorf("symbols[0].Detail = %v, want <T>", list.Detail)
	}
	wantRange := protocol.Range{Start: pos(0, 0), End: pos(3, 16)}
	if list.Range != wantRange {
		t.Errorf("symbols[0].Range = %v, want %v", list.Range, wantRange)
	}
	wantSelection := protocol.Range{Start: pos(0, 6), End: pos(0, 10)}
	if list.SelectionRange != wantSelection {
		t.Errorf("symbols[0].SelectionRange = %v, want %v", list.SelectionRange, wantSelection)
	}

	tests := []struct {
		name   string
		kind   protocol.SymbolKind
		detail string
	}{
		{"head", protocol.SymbolKindVariable, "T"},
		{"size", protocol.SymbolKindMethod, "(): Int32"},
	}
	if len(list.Children) != len(tests) {
		t.Fatalf("len(children) = %d, want %d", len(list.Children), len(tests))
	}
	for i, tt := range tests {
		got := list.Children[i]
		if got.Name != tt.name || got.Kind != tt.kind {
			t.Errorf("children[%d] = %s %v, want %s %v", i, got.Name, got.Kind, tt.name, tt.kind)
		}
		if got.Detail == nil || *got.Detail != tt.detail {
			t.Errorf("children[%d].Detail = %v, want %q", i, got.Detail, tt.detail)
		}
	}

	if main := symbols[1]; main.Name != "Main" || main.Kind != protocol.SymbolKindObject {
		t.Errorf("symbols[1] = %s %v, want Main object", main.Name, main.Kind)
	}
}

func TestDocumentSymbolsSkipsUnnamed(t *testing.T) {
	symbols := documentSymbols(newDocument(t, "class\n"))
	if len(symbols) != 0 {
		t.Errorf("documentSymbols() = %v, want none", symbols)
	}
}

func TestFoldingRanges(t *testing.T) {
	ranges := foldingRanges(newDocument(t, listSource))
	want := [][2]protocol.UInteger{{0, 3}, {2, 3}}
	if len(ranges) != len(want) {
		t.Fatalf("len(ranges) = %d, want %d: %v", len(ranges), len(want), ranges)
	}
	for i, r := range ranges {
		if r.StartLine != want[i][0] || r.EndLine != want[i][1] {
			t.Errorf("ranges[%d] = %d-%d, want %d-%d", i, r.StartLine, r.EndLine, want[i][0], want[i][1])
		}
	}
}

func TestHover(t *testing.T) {
	doc := newDocument(t, listSource)
	h := hover(doc, fromPosition(doc.Lines, pos(1, 9)))
	if h == nil {
		t.Fatal("hover() = nil")
	}
	content, ok := h.Contents.(protocol.MarkupContent)
	if !ok {
		t.Fatalf("Contents = %T, want MarkupContent", h.Contents)
	}
	want := "`Identifier(head)`\n\n- VariableDefinition\n- TypeDefinition\n- SourceText\n"
	if content.Value != want {
		t.Errorf("Contents = %q, want %q", content.Value, want)
	}
	wantRange := protocol.Range{Start: pos(1, 8), End: pos(1, 12)}
	if h.Range == nil || *h.Range != wantRange {
		t.Errorf("Range = %v, want %v", h.Range, wantRange)
	}
}

func TestFormatEdits(t *testing.T) {
	doc := newDocument(t, "class A\n  var x = 1\n")
	edits, err := formatEdits(doc)
	if err != nil {
		t.Fatalf("formatEdits: %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("len(edits) = %d, want 1", len(edits))
	}
	wantRange := protocol.Range{Start: pos(0, 0), End: pos(2, 0)}
	if edits[0].Range != wantRange {
		t.Errorf("Range = %v, want %v", edits[0].Range, wantRange)
	}
	if edits[0].NewText != "class A\n    var x = 1\n" {
		t.Errorf("NewText = %q", edits[0].NewText)
	}

	edits, err = formatEdits(newDocument(t, edits[0].NewText))
	if err != nil || len(edits) != 0 {
		t.Errorf("formatEdits(formatted) = %v, %v, want no edits", edits, err)
	}

	if _, err := formatEdits(newDocument(t, "class A\n  def f(1)")); !errors.Is(err, format.ErrSyntax) {
		t.Errorf("formatEdits(broken) = %v, want ErrSyntax", err)
	}
}

func TestApplyChanges(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		changes []any
		want    string
	}{
		{
			name:    "whole",
			text:    "class A\n",
			changes: []any{protocol.TextDocumentContentChangeEventWhole{Text: "class B\n"}},
			want:    "class B\n",
		},
		{
			name: "range",
			text: "class A\n",
			changes: []any{protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{Start: pos(0, 6), End: pos(0, 7)},
				Text:  "Box",
			}},
			want: "class Box\n",
		},
		{
			name: "insert then append",
			text: "class A\n",
			changes: []any{
				protocol.TextDocumentContentChangeEvent{
					Range: &protocol.Range{Start: pos(1, 0), End: pos(1, 0)},
					Text:  "  var x\n",
				},
				protocol.TextDocumentContentChangeEvent{
					Range: &protocol.Range{Start: pos(1, 7), End: pos(1, 7)},
					Text:  " = 1",
				},
			},
			want: "class A\n  var x = 1\n",
		},
		{
			name: "after astral rune",
			text: "\"😀\" x",
			changes: []any{protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{Start: pos(0, 5), End: pos(0, 6)},
				Text:  "y",
			}},
			want: "\"😀\" y",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyChanges(tt.text, tt.changes); got != tt.want {
				t.Errorf("applyChanges() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestURIs(t *testing.T) {
	if got, _ := uriToPath("file:///tmp/a%20b.syspro"); got != "/tmp/a b.syspro" {
		t.Errorf("uriToPath() = %q", got)
	}
	if got := pathToURI("/tmp/a b.syspro"); got != "file:///tmp/a%20b.syspro" {
		t.Errorf("pathToURI() = %q", got)
	}
	if got := pathToURI("untitled://1"); got != "untitled://1" {
		t.Errorf("pathToURI() = %q", got)
	}
}
