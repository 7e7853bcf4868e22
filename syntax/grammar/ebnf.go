package grammar

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/syspro/syntax"
)

// lexical productions for the token classes that have no fixed spelling.
// Indentation markers are synthesised by the lexer; they are written as
// single marker characters so the grammar stays verifiable.
var lexicalProductions = map[syntax.Kind]string{
	syntax.KindIdentifier: `identifier = letter { letter | digit } .`,
	syntax.KindInteger:    `integer = digit { digit } [ "i32" | "i64" | "u32" | "u64" ] .`,
	syntax.KindBoolean:    `boolean = "true" | "false" .`,
	syntax.KindRune:       `rune = "'" character "'" .`,
	syntax.KindString:     "string = `\"` { character } `\"` .",
	syntax.KindIndent:     `indent = "→" .`,
	syntax.KindDedent:     `dedent = "←" .`,
}

var lexicalSupport = map[string]string{
	"letter":    `letter = "a" … "z" | "A" … "Z" | "_" .`,
	"digit":     `digit = "0" … "9" .`,
	"character": `character = " " … "~" .`,
}

var lexicalDependencies = map[syntax.Kind][]string{
	syntax.KindIdentifier: {"letter", "digit"},
	syntax.KindInteger:    {"digit"},
	syntax.KindRune:       {"character"},
	syntax.KindString:     {"character"},
}

// WriteEBNF renders the table in the EBNF dialect of golang.org/x/exp/ebnf.
// Keywords and symbols become quoted tokens, other token classes become
// lexical productions.
func WriteEBNF(w io.Writer, t *Table) error {
	var buf bytes.Buffer
	used := make(map[syntax.Kind]bool)

	kinds := t.Kinds()
	// Start symbol first so the file reads top-down.
	ordered := []syntax.Kind{t.start}
	for _, k := range kinds {
		if k != t.start {
			ordered = append(ordered, k)
		}
	}

	for _, k := range ordered {
		production, _ := t.Production(k)
		parts := make([]string, len(production))
		for i, sym := range production {
			parts[i] = t.ebnfSymbol(sym, used)
		}
		fmt.Fprintf(&buf, "%s = %s .\n", t.Name(k), strings.Join(parts, " "))
	}

	support := make(map[string]bool)
	buf.WriteString("\n")
	for k := syntax.Kind(0); int(k) < syntax.TerminalCount; k++ {
		if !used[k] {
			continue
		}
		buf.WriteString(lexicalProductions[k])
		buf.WriteString("\n")
		for _, dep := range lexicalDependencies[k] {
			support[dep] = true
		}
	}
	for _, name := range []string{"letter", "digit", "character"} {
		if support[name] {
			buf.WriteString(lexicalSupport[name])
			buf.WriteString("\n")
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func (t *Table) ebnfSymbol(sym Symbol, used map[syntax.Kind]bool) string {
	switch s := sym.(type) {
	case Terminal:
		if text := s.Kind.Text(); text != "" {
			return strconv.Quote(text)
		}
		used[s.Kind] = true
		return strings.SplitN(lexicalProductions[s.Kind], " ", 2)[0]
	case Nonterminal:
		return t.Name(s.Kind)
	case Or:
		parts := make([]string, len(s.Alternatives))
		for i, alt := range s.Alternatives {
			parts[i] = t.ebnfSymbol(alt, used)
		}
		return "( " + strings.Join(parts, " | ") + " )"
	case Question:
		return "[ " + t.ebnfSymbol(s.Inner, used) + " ]"
	case List:
		return "{ " + t.ebnfSymbol(s.Inner, used) + " }"
	case SeparatedList:
		inner := t.ebnfSymbol(s.Inner, used)
		sep := strconv.Quote(s.Separator.Text())
		return fmt.Sprintf("[ %s { %s %s } ]", inner, sep, inner)
	}
	panic(unknownSymbol(sym))
}

// Verify renders the table as EBNF and checks it with ebnf.Verify: every
// production is defined and reachable from the start symbol.
func Verify(t *Table) error {
	var buf bytes.Buffer
	if err := WriteEBNF(&buf, t); err != nil {
		return err
	}
	g, err := ebnf.Parse("grammar.ebnf", &buf)
	if err != nil {
		return fmt.Errorf("parse ebnf: %w", err)
	}
	if err := ebnf.Verify(g, t.Name(t.start)); err != nil {
		return fmt.Errorf("verify ebnf: %w", err)
	}
	return nil
}
