package grammar

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dhamidi/syspro/syntax"
)

// Tag tells the post-processor how to reshape the nodes of a nonterminal.
type Tag int

const (
	// TagNone keeps the node under its own kind.
	TagNone Tag = iota
	// TagRemovable splices the node's children into its parent.
	TagRemovable
	// TagList renames the node to syntax.KindList.
	TagList
	// TagSeparatedList renames the node to syntax.KindSeparatedList.
	TagSeparatedList
	// TagChain folds an operand followed by operator tails into
	// left-associative binary expression nodes.
	TagChain
	// TagPrimary folds an atom followed by suffixes into access,
	// invocation and index nodes.
	TagPrimary
	// TagShape picks one of two public kinds depending on whether the
	// node's optional tail was matched.
	TagShape
)

var tagNames = map[Tag]string{
	TagNone:          "None",
	TagRemovable:     "Removable",
	TagList:          "List",
	TagSeparatedList: "SeparatedList",
	TagChain:         "Chain",
	TagPrimary:       "Primary",
	TagShape:         "Shape",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Shape names the two kinds a TagShape nonterminal can become.
type Shape struct {
	Short syntax.Kind
	Long  syntax.Kind
}

type rule struct {
	production Production
	tag        Tag
	name       string
}

// Table is an immutable production table. It is safe for concurrent use.
type Table struct {
	start     syntax.Kind
	rules     map[syntax.Kind]rule
	operators map[syntax.Kind]syntax.Kind
	suffixes  map[syntax.Kind]syntax.Kind
	shapes    map[syntax.Kind]Shape
}

func (t *Table) Start() syntax.Kind {
	return t.start
}

func (t *Table) Production(kind syntax.Kind) (Production, bool) {
	r, ok := t.rules[kind]
	return r.production, ok
}

func (t *Table) Tag(kind syntax.Kind) Tag {
	return t.rules[kind].tag
}

// Name returns the production name of kind. Helper kinds have names that
// exist only in the table.
func (t *Table) Name(kind syntax.Kind) string {
	if r, ok := t.rules[kind]; ok && r.name != "" {
		return r.name
	}
	return kind.String()
}

// OperatorKind maps a binary operator token kind to the expression kind it
// produces inside a TagChain fold.
func (t *Table) OperatorKind(op syntax.Kind) (syntax.Kind, bool) {
	kind, ok := t.operators[op]
	return kind, ok
}

// SuffixKind maps a suffix nonterminal of a TagPrimary fold to the
// expression kind it produces.
func (t *Table) SuffixKind(suffix syntax.Kind) (syntax.Kind, bool) {
	kind, ok := t.suffixes[suffix]
	return kind, ok
}

func (t *Table) Shape(kind syntax.Kind) (Shape, bool) {
	s, ok := t.shapes[kind]
	return s, ok
}

// Kinds returns every nonterminal with a production, in kind order.
func (t *Table) Kinds() []syntax.Kind {
	kinds := make([]syntax.Kind, 0, len(t.rules))
	for k := range t.rules {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// SlotWidth is the number of public slots an absent preserve-empty optional
// over sym occupies. It is 1 unless sym splices a fixed number of children
// into its parent.
func (t *Table) SlotWidth(sym Symbol) int {
	if w := t.width(sym, 0); w > 0 {
		return w
	}
	return 1
}

// width returns -1 when the number of slots is not fixed.
func (t *Table) width(sym Symbol, depth int) int {
	if depth > len(t.rules) {
		return -1
	}
	switch s := sym.(type) {
	case Terminal:
		return 1
	case Nonterminal:
		if t.Tag(s.Kind) != TagRemovable {
			return 1
		}
		total := 0
		for _, elem := range t.rules[s.Kind].production {
			w := t.width(elem, depth+1)
			if w < 0 {
				return -1
			}
			total += w
		}
		return total
	case Question:
		if s.PreserveEmpty {
			return t.width(s.Inner, depth+1)
		}
		return -1
	case Or:
		w := -1
		for i, alt := range s.Alternatives {
			aw := t.width(alt, depth+1)
			if i > 0 && aw != w {
				return -1
			}
			w = aw
		}
		return w
	case List, SeparatedList:
		return -1
	}
	panic(unknownSymbol(sym))
}

// Builder assembles a Table. Build validates the result.
type Builder struct {
	table *Table
	err   error
}

func NewBuilder(start syntax.Kind) *Builder {
	return &Builder{table: &Table{
		start:     start,
		rules:     make(map[syntax.Kind]rule),
		operators: make(map[syntax.Kind]syntax.Kind),
		suffixes:  make(map[syntax.Kind]syntax.Kind),
		shapes:    make(map[syntax.Kind]Shape),
	}}
}

// Rule registers the production of a public nonterminal.
func (b *Builder) Rule(kind syntax.Kind, symbols ...Symbol) *Builder {
	return b.add(kind, TagNone, "", symbols)
}

// Helper registers the production of a grammar-internal nonterminal.
func (b *Builder) Helper(kind syntax.Kind, name string, tag Tag, symbols ...Symbol) *Builder {
	if !kind.IsHelper() {
		b.fail(fmt.Errorf("grammar: helper %s uses public kind %d", name, kind))
	}
	return b.add(kind, tag, name, symbols)
}

// Operators registers the expression kind produced by each operator token.
func (b *Builder) Operators(ops map[syntax.Kind]syntax.Kind) *Builder {
	for op, kind := range ops {
		b.table.operators[op] = kind
	}
	return b
}

func (b *Builder) Suffix(suffix, kind syntax.Kind) *Builder {
	b.table.suffixes[suffix] = kind
	return b
}

func (b *Builder) Shape(kind syntax.Kind, shape Shape) *Builder {
	b.table.shapes[kind] = shape
	return b
}

func (b *Builder) add(kind syntax.Kind, tag Tag, name string, symbols []Symbol) *Builder {
	if _, dup := b.table.rules[kind]; dup {
		b.fail(fmt.Errorf("grammar: duplicate production for %s", b.table.Name(kind)))
	}
	if kind.IsTerminal() {
		b.fail(fmt.Errorf("grammar: production for terminal %s", kind))
	}
	b.table.rules[kind] = rule{production: Production(symbols), tag: tag, name: name}
	return b
}

func (b *Builder) fail(err error) {
	b.err = errors.Join(b.err, err)
}

// Build checks that every referenced nonterminal is defined, that no
// nonterminal is left-recursive and that tagged helpers carry the data
// their tag needs.
func (b *Builder) Build() (*Table, error) {
	t := b.table
	if b.err != nil {
		return nil, b.err
	}
	if syntax.TerminalCount > setCapacity {
		return nil, fmt.Errorf("grammar: %d terminal kinds exceed set capacity %d", syntax.TerminalCount, setCapacity)
	}
	if _, ok := t.rules[t.start]; !ok {
		return nil, fmt.Errorf("grammar: start symbol %s has no production", t.Name(t.start))
	}

	var errs []error
	for _, kind := range t.Kinds() {
		r := t.rules[kind]
		if len(r.production) == 0 {
			errs = append(errs, fmt.Errorf("grammar: empty production for %s", t.Name(kind)))
		}
		for _, sym := range r.production {
			errs = append(errs, t.checkReferences(sym)...)
		}
		if r.tag == TagShape {
			if _, ok := t.shapes[kind]; !ok {
				errs = append(errs, fmt.Errorf("grammar: shape helper %s has no shape", t.Name(kind)))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	oracle := NewOracle(t)
	for _, kind := range t.Kinds() {
		if oracle.leftRecursive(kind) {
			errs = append(errs, fmt.Errorf("grammar: %s is left-recursive", t.Name(kind)))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

func (t *Table) checkReferences(sym Symbol) []error {
	switch s := sym.(type) {
	case Terminal:
		if !s.Kind.IsTerminal() {
			return []error{fmt.Errorf("grammar: terminal symbol with nonterminal kind %s", t.Name(s.Kind))}
		}
		return nil
	case Nonterminal:
		if _, ok := t.rules[s.Kind]; !ok {
			return []error{fmt.Errorf("grammar: missing production for %s", t.Name(s.Kind))}
		}
		return nil
	case Or:
		var errs []error
		for _, alt := range s.Alternatives {
			errs = append(errs, t.checkReferences(alt)...)
		}
		return errs
	case Question:
		return t.checkReferences(s.Inner)
	case List:
		return t.checkReferences(s.Inner)
	case SeparatedList:
		if !s.Separator.IsTerminal() {
			return []error{fmt.Errorf("grammar: separator %s is not a terminal", t.Name(s.Separator))}
		}
		return t.checkReferences(s.Inner)
	}
	panic(unknownSymbol(sym))
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := newDefaultBuilder().Build()
	if err != nil {
		panic(err)
	}
	return t
})

// Default returns the production table of the language. It is built on
// first use and shared by every caller.
func Default() *Table {
	return defaultTable()
}
