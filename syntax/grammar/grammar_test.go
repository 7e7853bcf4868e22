package grammar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dhamidi/syspro/syntax"
)

func TestDefaultBuilds(t *testing.T) {
	table := Default()
	if table.Start() != syntax.KindSourceText {
		t.Errorf("Start() = %v, want %v", table.Start(), syntax.KindSourceText)
	}
	if Default() != table {
		t.Errorf("Default() returned a different table on the second call")
	}
}

func TestDefaultVerifies(t *testing.T) {
	if err := Verify(Default()); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
}

func TestWriteEBNF(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEBNF(&buf, Default()); err != nil {
		t.Fatalf("WriteEBNF() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "SourceText = DefinitionList .\n") {
		t.Errorf("output does not start with the start production:\n%s", out)
	}
	for _, want := range []string{
		`ReturnStatement = "return" [ LogicalOr ] .`,
		`ArgumentList = [ LogicalOr { "," LogicalOr } ] .`,
		`identifier = letter { letter | digit } .`,
		`indent = "→" .`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestFirst(t *testing.T) {
	table := Default()
	oracle := NewOracle(table)

	tests := []struct {
		name   string
		symbol Symbol
		want   []syntax.Kind
		reject []syntax.Kind
	}{
		{
			name:   "type definition",
			symbol: nonterm(syntax.KindTypeDefinition),
			want:   []syntax.Kind{syntax.KindClass, syntax.KindObject, syntax.KindInterface},
			reject: []syntax.Kind{syntax.KindIdentifier},
		},
		{
			name:   "function skips optional modifiers",
			symbol: nonterm(syntax.KindFunctionDefinition),
			want:   []syntax.Kind{syntax.KindAbstract, syntax.KindNative, syntax.KindDef},
			reject: []syntax.Kind{syntax.KindIdentifier},
		},
		{
			name:   "expression",
			symbol: expression,
			want: []syntax.Kind{
				syntax.KindIdentifier, syntax.KindInteger, syntax.KindBoolean,
				syntax.KindOpenParen, syntax.KindExclamation, syntax.KindMinus,
				syntax.KindThis, syntax.KindNull,
			},
			reject: []syntax.Kind{syntax.KindAsterisk, syntax.KindIndent},
		},
		{
			name:   "name expression",
			symbol: nonterm(nameExpression),
			want:   []syntax.Kind{syntax.KindQuestion, syntax.KindIdentifier},
			reject: []syntax.Kind{syntax.KindLessThan},
		},
		{
			name:   "terminal",
			symbol: term(syntax.KindComma),
			want:   []syntax.Kind{syntax.KindComma},
		},
		{
			name:   "additive tail",
			symbol: nonterm(additiveTail),
			want:   []syntax.Kind{syntax.KindPlus, syntax.KindMinus},
			reject: []syntax.Kind{syntax.KindAsterisk},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := oracle.First(tt.symbol)
			for _, k := range tt.want {
				if !first.Has(k) {
					t.Errorf("First(%v) missing %v; got %v", tt.symbol, k, first)
				}
			}
			for _, k := range tt.reject {
				if first.Has(k) {
					t.Errorf("First(%v) contains %v", tt.symbol, k)
				}
			}
		})
	}
}

func TestNullable(t *testing.T) {
	oracle := NewOracle(Default())

	tests := []struct {
		name   string
		symbol Symbol
		want   bool
	}{
		{"terminal", term(syntax.KindDef), false},
		{"question", opt(term(syntax.KindDef)), true},
		{"list", list(term(syntax.KindDef)), true},
		{"statement list", nonterm(statementList), true},
		{"function", nonterm(syntax.KindFunctionDefinition), false},
		{"or with nullable branch", or(term(syntax.KindDef), opt(term(syntax.KindVar))), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := oracle.Nullable(tt.symbol); got != tt.want {
				t.Errorf("Nullable(%v) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestSlotWidth(t *testing.T) {
	table := Default()

	tests := []struct {
		name   string
		symbol Symbol
		want   int
	}{
		{"terminal", term(syntax.KindIdentifier), 1},
		{"public nonterminal", nonterm(syntax.KindTypeBound), 1},
		{"list wrapper", nonterm(modifierList), 1},
		{"type parameters", nonterm(typeParameters), 3},
		{"statement block", nonterm(statementBlock), 3},
		{"else clause", nonterm(elseClause), 4},
		{"type annotation", nonterm(typeAnnotation), 2},
		{"variable list", list(term(syntax.KindIdentifier)), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.SlotWidth(tt.symbol); got != tt.want {
				t.Errorf("SlotWidth(%v) = %d, want %d", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestBuildRejects(t *testing.T) {
	const (
		a = syntax.KindFirstHelper + 500 + iota
		b
	)

	tests := []struct {
		name    string
		builder func() *Builder
		want    string
	}{
		{
			name: "missing production",
			builder: func() *Builder {
				return NewBuilder(syntax.KindSourceText).
					Rule(syntax.KindSourceText, nonterm(syntax.KindTypeDefinition))
			},
			want: "missing production for TypeDefinition",
		},
		{
			name: "left recursion through optional prefix",
			builder: func() *Builder {
				return NewBuilder(syntax.KindSourceText).
					Rule(syntax.KindSourceText, nonterm(a)).
					Helper(a, "A", TagRemovable, opt(term(syntax.KindDef)), nonterm(b)).
					Helper(b, "B", TagRemovable, nonterm(a), term(syntax.KindVar))
			},
			want: "A is left-recursive",
		},
		{
			name: "duplicate",
			builder: func() *Builder {
				return NewBuilder(syntax.KindSourceText).
					Rule(syntax.KindSourceText, term(syntax.KindDef)).
					Rule(syntax.KindSourceText, term(syntax.KindVar))
			},
			want: "duplicate production for SourceText",
		},
		{
			name: "missing start",
			builder: func() *Builder {
				return NewBuilder(syntax.KindSourceText).
					Rule(syntax.KindTypeBound, term(syntax.KindBound))
			},
			want: "start symbol SourceText has no production",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder().Build()
			if err == nil {
				t.Fatalf("Build() error = nil, want %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Build() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestOracleCycles(t *testing.T) {
	const (
		x = syntax.KindFirstHelper + 510 + iota
		y
	)

	// Build rejects this table, but its left-recursion check still asks
	// the oracle about the cycle between X and Y.
	table := NewBuilder(syntax.KindSourceText).
		Rule(syntax.KindSourceText, nonterm(x)).
		Helper(x, "X", TagRemovable, or(nonterm(y), term(syntax.KindDef), opt(term(syntax.KindVar)))).
		Helper(y, "Y", TagRemovable, nonterm(x)).
		table
	wantFirst := NewSet(syntax.KindDef, syntax.KindVar)

	tests := []struct {
		name  string
		order []syntax.Kind
	}{
		{"outer first", []syntax.Kind{x, y}},
		{"inner first", []syntax.Kind{y, x}},
	}

	for _, tt := range tests {
		t.Run(tt.name+" FIRST", func(t *testing.T) {
			oracle := NewOracle(table)
			for _, kind := range tt.order {
				if got := oracle.First(nonterm(kind)); got != wantFirst {
					t.Errorf("First(%s) = %v, want %v", table.Name(kind), got, wantFirst)
				}
			}
		})
		t.Run(tt.name+" nullable", func(t *testing.T) {
			oracle := NewOracle(table)
			for _, kind := range tt.order {
				if !oracle.Nullable(nonterm(kind)) {
					t.Errorf("Nullable(%s) = false, want true", table.Name(kind))
				}
			}
		})
	}
}

func TestSet(t *testing.T) {
	s := NewSet(syntax.KindDef, syntax.KindBound)
	if !s.Has(syntax.KindDef) || !s.Has(syntax.KindBound) {
		t.Errorf("set %v is missing members", s)
	}
	if s.Has(syntax.KindVar) {
		t.Errorf("set %v contains Var", s)
	}
	if s.Has(syntax.KindSourceText) {
		t.Errorf("set %v contains a nonterminal", s)
	}
	s.Union(NewSet(syntax.KindVar))
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if got := s.Kinds(); len(got) != 3 || got[0] != syntax.KindDef {
		t.Errorf("Kinds() = %v", got)
	}
}
