package grammar

import (
	"math/bits"
	"strings"

	"github.com/dhamidi/syspro/syntax"
)

const setCapacity = 128

// Set is a set of terminal kinds.
type Set struct {
	words [setCapacity / 64]uint64
}

func NewSet(kinds ...syntax.Kind) Set {
	var s Set
	for _, k := range kinds {
		s.Add(k)
	}
	return s
}

func (s *Set) Add(k syntax.Kind) {
	s.words[k/64] |= 1 << (uint(k) % 64)
}

func (s Set) Has(k syntax.Kind) bool {
	if k < 0 || int(k) >= setCapacity {
		return false
	}
	return s.words[k/64]&(1<<(uint(k)%64)) != 0
}

func (s *Set) Union(other Set) {
	for i := range s.words {
		s.words[i] |= other.words[i]
	}
}

func (s Set) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

func (s Set) IsEmpty() bool {
	return s.Len() == 0
}

// Kinds lists the members in kind order.
func (s Set) Kinds() []syntax.Kind {
	var kinds []syntax.Kind
	for k := syntax.Kind(0); int(k) < setCapacity; k++ {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (s Set) String() string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Oracle answers FIRST and nullability questions about the symbols of a
// table. Answers for nonterminals are computed on demand and remembered, so
// an Oracle must not be shared between goroutines; create one per parse.
type Oracle struct {
	table        *Table
	first        map[syntax.Kind]Set
	nullable     map[syntax.Kind]bool
	firstWalk    walk
	nullableWalk walk
}

// walk tracks the nonterminals a recursive computation is inside of. A
// nonterminal met again while active is cut with an empty answer; results
// that depended on a cut are only final for the outermost nonterminal.
type walk struct {
	active map[syntax.Kind]bool
	cuts   int
}

func newWalk() walk {
	return walk{active: make(map[syntax.Kind]bool)}
}

// enter marks kind active. It reports false if kind was already active.
func (w *walk) enter(kind syntax.Kind) bool {
	if w.active[kind] {
		w.cuts++
		return false
	}
	w.active[kind] = true
	return true
}

// final reports whether a result computed since cuts was observed can be
// remembered.
func (w *walk) final(cuts int) bool {
	return w.cuts == cuts || len(w.active) == 1
}

func NewOracle(t *Table) *Oracle {
	return &Oracle{
		table:        t,
		first:        make(map[syntax.Kind]Set),
		nullable:     make(map[syntax.Kind]bool),
		firstWalk:    newWalk(),
		nullableWalk: newWalk(),
	}
}

// First returns the terminal kinds that can begin a match of sym. Leading
// elements of a production that can match empty contribute their FIRST
// sets and are skipped over.
func (o *Oracle) First(sym Symbol) Set {
	switch s := sym.(type) {
	case Terminal:
		return NewSet(s.Kind)
	case Nonterminal:
		return o.firstOf(s.Kind)
	case Or:
		var set Set
		for _, alt := range s.Alternatives {
			set.Union(o.First(alt))
		}
		return set
	case Question:
		return o.First(s.Inner)
	case List:
		return o.First(s.Inner)
	case SeparatedList:
		return o.First(s.Inner)
	}
	panic(unknownSymbol(sym))
}

func (o *Oracle) firstOf(kind syntax.Kind) Set {
	if set, ok := o.first[kind]; ok {
		return set
	}
	cuts := o.firstWalk.cuts
	if !o.firstWalk.enter(kind) {
		return Set{}
	}
	defer delete(o.firstWalk.active, kind)

	var set Set
	production, _ := o.table.Production(kind)
	for _, elem := range production {
		set.Union(o.First(elem))
		if !o.Nullable(elem) {
			break
		}
	}
	if o.firstWalk.final(cuts) {
		o.first[kind] = set
	}
	return set
}

// Nullable reports whether sym can match without consuming a token.
func (o *Oracle) Nullable(sym Symbol) bool {
	switch s := sym.(type) {
	case Terminal:
		return false
	case Nonterminal:
		return o.nullableOf(s.Kind)
	case Or:
		for _, alt := range s.Alternatives {
			if o.Nullable(alt) {
				return true
			}
		}
		return false
	case Question, List, SeparatedList:
		return true
	}
	panic(unknownSymbol(sym))
}

func (o *Oracle) nullableOf(kind syntax.Kind) bool {
	if n, ok := o.nullable[kind]; ok {
		return n
	}
	cuts := o.nullableWalk.cuts
	if !o.nullableWalk.enter(kind) {
		return false
	}
	defer delete(o.nullableWalk.active, kind)

	result := true
	production, _ := o.table.Production(kind)
	for _, elem := range production {
		if !o.Nullable(elem) {
			result = false
			break
		}
	}
	if o.nullableWalk.final(cuts) {
		o.nullable[kind] = result
	}
	return result
}

// leftRecursive reports whether kind can reach itself without consuming a
// token.
func (o *Oracle) leftRecursive(kind syntax.Kind) bool {
	seen := make(map[syntax.Kind]bool)
	var visit func(sym Symbol) bool
	var visitKind func(k syntax.Kind) bool

	visitKind = func(k syntax.Kind) bool {
		if k == kind {
			return true
		}
		if seen[k] {
			return false
		}
		seen[k] = true
		production, _ := o.table.Production(k)
		for _, elem := range production {
			if visit(elem) {
				return true
			}
			if !o.Nullable(elem) {
				break
			}
		}
		return false
	}

	visit = func(sym Symbol) bool {
		switch s := sym.(type) {
		case Terminal:
			return false
		case Nonterminal:
			return visitKind(s.Kind)
		case Or:
			for _, alt := range s.Alternatives {
				if visit(alt) {
					return true
				}
			}
			return false
		case Question:
			return visit(s.Inner)
		case List:
			return visit(s.Inner)
		case SeparatedList:
			return visit(s.Inner)
		}
		panic(unknownSymbol(sym))
	}

	production, _ := o.table.Production(kind)
	for _, elem := range production {
		if visit(elem) {
			return true
		}
		if !o.Nullable(elem) {
			break
		}
	}
	return false
}
