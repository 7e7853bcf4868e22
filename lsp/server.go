// Package lsp serves syspro workspaces over the Language Server Protocol.
//
// The server keeps every open document parsed and publishes its
// diagnostics after each change. It also answers document symbol, folding
// range, hover and formatting requests from the syntax tree.
package lsp

import (
	"context"
	"errors"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/syspro/syntax"
	"github.com/dhamidi/syspro/workspace"
)

const lsName = "syspro"

var log = commonlog.GetLogger("syspro.lsp")

type Server struct {
	workspace *workspace.Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
	debug     bool
}

func NewServer(version string, debug bool) *Server {
	ls := &Server{
		version: version,
		debug:   debug,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentFoldingRange:   ls.textDocumentFoldingRange,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentFormatting:     ls.textDocumentFormatting,
	}

	ls.server = server.NewServer(&ls.handler, lsName, debug)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) RunTCP(address string) error {
	return ls.server.RunTCP(address)
}

func (ls *Server) RunWebSocket(address string) error {
	return ls.server.RunWebSocket(address)
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = workspace.New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindIncremental),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.ScanAll(context.Background()); err != nil {
		log.Warningf("scan %s: %s", ls.workspace.RootDir(), err)
	}
	for _, doc := range ls.workspace.Documents() {
		if doc.HasErrors() {
			ls.publish(ctx, doc)
		}
	}
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	doc := ls.workspace.Update(path, params.TextDocument.Text, int(params.TextDocument.Version))
	ls.publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	doc, err := ls.workspace.Get(path)
	if err != nil {
		log.Warningf("change to unopened document %s", path)
		return nil
	}

	text := applyChanges(doc.Text, params.ContentChanges)
	doc = ls.workspace.Update(path, text, int(params.TextDocument.Version))
	ls.publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	// The buffer may have held unsaved text.
	if _, err := ls.workspace.LoadFile(path); err != nil {
		ls.workspace.Remove(path)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var doc *workspace.Document
	if params.Text != nil {
		doc = ls.workspace.Update(path, *params.Text, 0)
	} else if doc, err = ls.workspace.LoadFile(path); err != nil {
		return nil
	}
	ls.publish(ctx, doc)
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, err := ls.document(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	return documentSymbols(doc), nil
}

func (ls *Server) textDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc, err := ls.document(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	return foldingRanges(doc), nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := ls.document(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	return hover(doc, fromPosition(doc.Lines, params.Position)), nil
}

func (ls *Server) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc, err := ls.document(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	edits, err := formatEdits(doc)
	if err != nil {
		log.Debugf("format %s: %s", doc.Path, err)
		return nil, nil
	}
	return edits, nil
}

func (ls *Server) document(uri protocol.DocumentUri) (*workspace.Document, error) {
	if ls.workspace == nil {
		return nil, errors.New("server not initialized")
	}
	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}
	return ls.workspace.Get(path)
}

func (ls *Server) publish(ctx *glsp.Context, doc *workspace.Document) {
	params := protocol.PublishDiagnosticsParams{
		URI:         pathToURI(doc.Path),
		Diagnostics: toDiagnostics(doc),
	}
	if doc.Version > 0 {
		version := protocol.UInteger(doc.Version)
		params.Version = &version
	}
	log.Debugf("publishing %d diagnostics for %s", len(params.Diagnostics), doc.Path)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}

// applyChanges applies content changes in order. A change without a range
// replaces the whole text.
func applyChanges(text string, changes []any) string {
	for _, change := range changes {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = change.Text
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				text = change.Text
				continue
			}
			lines := syntax.NewLineIndex(text)
			runes := []rune(text)
			start := fromPosition(lines, change.Range.Start)
			end := fromPosition(lines, change.Range.End)
			if end < start {
				start, end = end, start
			}
			text = string(runes[:start]) + change.Text + string(runes[end:])
		}
	}
	return text
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
