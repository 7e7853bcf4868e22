package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/syspro/syntax"
	"github.com/dhamidi/syspro/syntax/parser"
)

func TestPrettyPrint(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "spacing",
			input: "class   A\n  def f( a:Int ,b : Int ):Int\n    return a+b*2 # sum\n",
			want:  "class A\n    def f(a: Int, b: Int): Int\n        return a + b * 2 # sum\n",
		},
		{
			name: "comments and blocks",
			input: "# header\nclass A\n  var x = 1 # one\n\n  # doc\n  def f()\n" +
				"    if x\n      x = -x\n    else\n      return\nobject B\n",
			want: "# header\nclass A\n    var x = 1 # one\n    # doc\n    def f()\n" +
				"        if x\n            x = -x\n        else\n            return\n\nobject B\n",
		},
		{
			name:  "generics and bounds",
			input: "class Box<T<:Eq&Show> <: Container<T>\n  val xs: ?List<T>\n",
			want:  "class Box<T <: Eq & Show> <: Container<T>\n    val xs: ?List<T>\n",
		},
		{
			name:  "expressions",
			input: "object O\n  override def run()\n    for x in this.items(1,2)[0]\n      while !(x is Foo y)\n        continue\n",
			want:  "object O\n    override def run()\n        for x in this.items(1, 2)[0]\n            while !(x is Foo y)\n                continue\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrettyPrint([]byte(tt.input))
			if err != nil {
				t.Fatalf("PrettyPrint() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("PrettyPrint() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestPrettyPrintRejectsErrors(t *testing.T) {
	_, err := PrettyPrint([]byte("class A\n  def f(,)"))
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("PrettyPrint() error = %v, want ErrSyntax", err)
	}
}

// shape renders kinds and token texts so that trees parsed from differently
// laid out sources can be compared.
func shape(n *syntax.Node) string {
	if n == nil {
		return "_"
	}
	if n.Token != nil {
		return n.Token.Text
	}
	parts := []string{n.Kind.String()}
	for _, child := range n.Children {
		parts = append(parts, shape(child))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func TestPrettyPrintRoundTrip(t *testing.T) {
	inputs := []string{
		"class A\n    def f(): Boolean\n        return true",
		"interface Eq<T>\n  abstract def equals(other: T): Boolean\nobject Main\n  native def print(s: String)\n",
		"class L<T> <: I<T>\n  var head: ?N<T>\n  def add(item: T)\n    if head == null\n      head = N(item)\n    else\n      head.add(item)\n",
		"class C\n  def f()\n    var i = 0\n    while i < 10 && (i % 2 == 0 || i >> 1 != 3)\n      i = i + 1\n    x[i].y = 'c'\n",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := PrettyPrint([]byte(input))
			if err != nil {
				t.Fatalf("PrettyPrint() error = %v", err)
			}
			second, err := PrettyPrint(first)
			if err != nil {
				t.Fatalf("PrettyPrint() of output error = %v\n%s", err, first)
			}
			if string(first) != string(second) {
				t.Errorf("not idempotent:\n%s\nthen\n%s", first, second)
			}
			before := shape(parser.Parse(input).Root)
			after := shape(parser.Parse(string(first)).Root)
			if before != after {
				t.Errorf("tree changed:\n%s\nbecame\n%s", before, after)
			}
		})
	}
}
