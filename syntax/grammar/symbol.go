package grammar

import (
	"fmt"
	"strings"

	"github.com/dhamidi/syspro/syntax"
)

// Symbol is one element of a production. The set of implementations is
// closed: Terminal, Nonterminal, Or, Question, List and SeparatedList.
type Symbol interface {
	fmt.Stringer
	isSymbol()
}

// Terminal matches exactly one token of Kind.
type Terminal struct {
	Kind syntax.Kind
}

// Nonterminal expands the production registered for Kind.
type Nonterminal struct {
	Kind syntax.Kind
}

// Or takes the first alternative whose FIRST set admits the lookahead.
type Or struct {
	Alternatives []Symbol
}

// Question matches Inner zero or one time. With PreserveEmpty set an absent
// Inner still occupies its slots in the tree.
type Question struct {
	Inner         Symbol
	PreserveEmpty bool
}

// List matches Inner zero or more times.
type List struct {
	Inner Symbol
}

// SeparatedList matches Inner zero or more times with Separator between
// consecutive elements.
type SeparatedList struct {
	Inner     Symbol
	Separator syntax.Kind
}

func (Terminal) isSymbol()      {}
func (Nonterminal) isSymbol()   {}
func (Or) isSymbol()            {}
func (Question) isSymbol()      {}
func (List) isSymbol()          {}
func (SeparatedList) isSymbol() {}

func (s Terminal) String() string {
	if text := s.Kind.Text(); text != "" {
		return fmt.Sprintf("%q", text)
	}
	return strings.ToUpper(s.Kind.String())
}

func (s Nonterminal) String() string {
	return s.Kind.String()
}

func (s Or) String() string {
	parts := make([]string, len(s.Alternatives))
	for i, alt := range s.Alternatives {
		parts[i] = alt.String()
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

func (s Question) String() string {
	if s.PreserveEmpty {
		return "[" + s.Inner.String() + "]!"
	}
	return "[" + s.Inner.String() + "]"
}

func (s List) String() string {
	return "{" + s.Inner.String() + "}"
}

func (s SeparatedList) String() string {
	return fmt.Sprintf("{%s / %q}", s.Inner, s.Separator.Text())
}

// Production is the ordered right-hand side of a nonterminal.
type Production []Symbol

func (p Production) String() string {
	parts := make([]string, len(p))
	for i, sym := range p {
		parts[i] = sym.String()
	}
	return strings.Join(parts, " ")
}

func unknownSymbol(sym Symbol) string {
	return fmt.Sprintf("grammar: unknown symbol %T", sym)
}
