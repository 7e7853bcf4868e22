package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dhamidi/syspro/syntax"
	"github.com/dhamidi/syspro/syntax/lexer"
	"github.com/dhamidi/syspro/syntax/parser"
)

func TestTokenEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTokenEncoder(&buf).Encode(lexer.Tokenize("class A\n  var n = 7u32")); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := strings.Join([]string{
		"0\t5\tClass\t\"class\"",
		"6\t7\tIdentifier\t\"A\"",
		"7\t7\tIndent\t-",
		"10\t13\tVar\t\"var\"",
		"14\t15\tIdentifier\t\"n\"",
		"16\t17\tEquals\t\"=\"",
		"18\t22\tInteger\tInteger(7u32)",
		"22\t22\tDedent\t-",
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestDiagnosticEncoder(t *testing.T) {
	text := "class A\n  def f(1)"
	result := parser.Parse(text)

	var buf bytes.Buffer
	enc := NewDiagnosticEncoder(&buf, "a.syspro", syntax.NewLineIndex(text))
	if err := enc.Encode(result); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(result.Diagnostics) {
		t.Fatalf("got %d lines for %d diagnostics:\n%s", len(lines), len(result.Diagnostics), buf.String())
	}
	if want := "a.syspro:2:9: UnrecognisedToken: unexpected \"1\", expected \")\""; lines[0] != want {
		t.Errorf("line = %q, want %q", lines[0], want)
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(parser.Parse("interface I")); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"kind": "SourceText"`,
		`"kind": "TypeDefinition"`,
		`"text": "interface"`,
		`"diagnostics": []`,
		`null`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestTreeEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTreeEncoder(&buf, nil).Encode(parser.Parse("interface I )")); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	out := buf.String()

	prefix := "SourceText\n  List\n    TypeDefinition\n      Interface interface\n      Identifier I\n      <empty>\n"
	if !strings.HasPrefix(out, prefix) {
		t.Errorf("output does not start with %q:\n%s", prefix, out)
	}
	if !strings.HasSuffix(out, "12: UnrecognisedToken: unexpected \")\", expected \"class\", \"interface\", \"object\"\n") {
		t.Errorf("output does not end with the diagnostic:\n%s", out)
	}
}
