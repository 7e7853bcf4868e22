// Package workspace keeps the parsed state of a set of source files.
//
// A Workspace maps file paths to documents. Every document holds the text
// it was last updated with and the parse result for that text. Workspaces
// are safe for concurrent use: the language server updates documents from
// editor notifications while the watcher reloads them from disk.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/syspro/syntax"
	"github.com/dhamidi/syspro/syntax/parser"
)

// ErrNotFound is returned for paths that have no document.
var ErrNotFound = errors.New("document not found")

// DefaultExtension is the file extension of source files.
const DefaultExtension = ".syspro"

var log = commonlog.GetLogger("syspro.workspace")

type Option func(*Workspace)

// WithExtensions replaces the set of file extensions that Load picks up.
func WithExtensions(exts ...string) Option {
	return func(w *Workspace) {
		w.extensions = exts
	}
}

// WithConcurrency limits the number of files parsed at the same time.
func WithConcurrency(n int) Option {
	return func(w *Workspace) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

func WithLogger(l commonlog.Logger) Option {
	return func(w *Workspace) {
		w.log = l
	}
}

type Workspace struct {
	mu          sync.RWMutex
	rootDir     string
	docs        map[string]*Document
	extensions  []string
	concurrency int
	log         commonlog.Logger
}

// Document is an immutable snapshot of one file.
type Document struct {
	Path    string
	Text    string
	Version int
	Result  syntax.ParseResult
	Lines   *syntax.LineIndex
}

func (d *Document) HasErrors() bool {
	return d.Result.HasErrors()
}

func New(rootDir string, opts ...Option) *Workspace {
	w := &Workspace{
		rootDir:     rootDir,
		docs:        make(map[string]*Document),
		extensions:  []string{DefaultExtension},
		concurrency: runtime.GOMAXPROCS(0),
		log:         log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Matches reports whether path has one of the workspace's source extensions.
func (w *Workspace) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// ScanAll loads every source file below the root directory.
func (w *Workspace) ScanAll(ctx context.Context) error {
	return w.Load(ctx, w.rootDir)
}

// Load parses the given files and every source file below the given
// directories. Files named explicitly are loaded whatever their extension.
// Hidden directories are skipped.
func (w *Workspace) Load(ctx context.Context, paths ...string) error {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("load %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if w.Matches(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("walk %s: %w", root, err)
		}
	}

	w.log.Debugf("loading %d files with concurrency %d", len(files), w.concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := w.LoadFile(path)
			return err
		})
	}
	return g.Wait()
}

// LoadFile reads path from disk and updates its document.
func (w *Workspace) LoadFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return w.Update(path, string(content), 0), nil
}

// Update parses text and stores it as the document for path. Parsing
// happens outside the lock.
func (w *Workspace) Update(path, text string, version int) *Document {
	path = filepath.Clean(path)
	doc := &Document{
		Path:    path,
		Text:    text,
		Version: version,
		Result:  parser.Parse(text, parser.WithLogger(w.log)),
		Lines:   syntax.NewLineIndex(text),
	}
	w.log.Debugf("parsed %s: %d tokens, %d diagnostics", path, len(doc.Result.Tokens), len(doc.Result.Diagnostics))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[path] = doc
	return doc
}

func (w *Workspace) Remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, filepath.Clean(path))
}

func (w *Workspace) Get(path string) (*Document, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	doc, ok := w.docs[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return doc, nil
}

// Documents returns every document sorted by path.
func (w *Workspace) Documents() []*Document {
	w.mu.RLock()
	docs := make([]*Document, 0, len(w.docs))
	for _, doc := range w.docs {
		docs = append(docs, doc)
	}
	w.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs
}

// ErrorCount is the number of diagnostics over all documents.
func (w *Workspace) ErrorCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	for _, doc := range w.docs {
		n += len(doc.Result.Diagnostics)
	}
	return n
}
