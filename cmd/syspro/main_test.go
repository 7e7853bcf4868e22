package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenizeStdin(t *testing.T) {
	out, err := run(t, "class A", "tokenize", "-")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	want := "0\t5\tClass\t\"class\"\n6\t7\tIdentifier\t\"A\"\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"text", "TypeDefinition"},
		{"json", `"kind": "TypeDefinition"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := run(t, "class A\n", "parse", "--format", tt.format)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output does not contain %q:\n%s", tt.want, out)
			}
		})
	}

	if _, err := run(t, "", "parse", "--format", "xml"); err == nil {
		t.Error("parse --format xml succeeded")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.syspro")
	bad := filepath.Join(dir, "bad.syspro")
	if err := os.WriteFile(good, []byte("class A\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if out, err := run(t, "", "check", dir); err != nil || out != "" {
		t.Errorf("check(good) = %q, %v, want no output", out, err)
	}

	if err := os.WriteFile(bad, []byte("class A\n  def f(1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "check", dir)
	if !errors.Is(err, errSyntax) {
		t.Errorf("check(bad) error = %v, want errSyntax", err)
	}
	if !strings.HasPrefix(out, bad+":2:9: UnrecognisedToken: ") {
		t.Errorf("check(bad) output = %q", out)
	}
}

func TestFmt(t *testing.T) {
	out, err := run(t, "class A\n  var x = 1\n", "fmt")
	if err != nil {
		t.Fatalf("fmt: %v", err)
	}
	if out != "class A\n    var x = 1\n" {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, "class A\n", "fmt", "-w"); err == nil {
		t.Error("fmt -w without a file succeeded")
	}
}

func TestFmtWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.syspro")
	if err := os.WriteFile(path, []byte("class A\n  var x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "fmt", "-w", path); err != nil {
		t.Fatalf("fmt -w: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "class A\n    var x = 1\n" {
		t.Errorf("file = %q", got)
	}
}

func TestGrammar(t *testing.T) {
	out, err := run(t, "", "grammar")
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}
	if !strings.HasPrefix(out, "SourceText = DefinitionList .\n") {
		t.Errorf("output starts with %q", out[:min(len(out), 40)])
	}

	out, err = run(t, "", "grammar", "--verify")
	if err != nil || out != "grammar ok\n" {
		t.Errorf("grammar --verify = %q, %v", out, err)
	}
}
