package syntax

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    *jsonToken  `json:"token,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

type jsonToken struct {
	Kind           string `json:"kind"`
	Text           string `json:"text,omitempty"`
	Start          int    `json:"start"`
	End            int    `json:"end"`
	LeadingTrivia  int    `json:"leadingTrivia,omitempty"`
	TrailingTrivia int    `json:"trailingTrivia,omitempty"`
	Value          any    `json:"value,omitempty"`
}

type jsonDiagnostic struct {
	Kind     string   `json:"kind"`
	Span     jsonSpan `json:"span"`
	Message  string   `json:"message"`
	Expected []string `json:"expected,omitempty"`
}

type jsonResult struct {
	Root          *jsonNode        `json:"root"`
	InvalidRanges []jsonSpan       `json:"invalidRanges"`
	Diagnostics   []jsonDiagnostic `json:"diagnostics"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.toJSON())
}

func (d Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.toJSON())
}

func (r ParseResult) MarshalJSON() ([]byte, error) {
	jr := jsonResult{
		Root:          r.Root.toJSON(),
		InvalidRanges: make([]jsonSpan, 0, len(r.InvalidRanges)),
		Diagnostics:   make([]jsonDiagnostic, 0, len(r.Diagnostics)),
	}
	for _, span := range r.InvalidRanges {
		jr.InvalidRanges = append(jr.InvalidRanges, jsonSpan{Start: span.Start, Length: span.Length})
	}
	for _, d := range r.Diagnostics {
		jr.Diagnostics = append(jr.Diagnostics, d.toJSON())
	}
	return json.Marshal(jr)
}

func (n *Node) toJSON() *jsonNode {
	if n == nil {
		return nil
	}
	jn := &jsonNode{
		Kind: n.Kind.String(),
	}

	if span, ok := n.Span(); ok {
		jn.Span = &jsonSpan{Start: span.Start, Length: span.Length}
	}

	if n.Token != nil {
		jt := n.Token.toJSON()
		jn.Token = &jt
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}

func (t Token) toJSON() jsonToken {
	jt := jsonToken{
		Kind:           t.Kind.String(),
		Text:           t.Text,
		Start:          t.Start,
		End:            t.End,
		LeadingTrivia:  t.LeadingTrivia,
		TrailingTrivia: t.TrailingTrivia,
	}
	switch t.Kind {
	case KindBoolean:
		jt.Value = t.BoolValue
	case KindInteger:
		jt.Value = t.IntValue
	case KindRune:
		jt.Value = string(t.RuneValue)
	case KindString:
		jt.Value = t.StringValue
	}
	return jt
}

func (d Diagnostic) toJSON() jsonDiagnostic {
	jd := jsonDiagnostic{
		Kind:    d.Kind.String(),
		Span:    jsonSpan{Start: d.Span.Start, Length: d.Span.Length},
		Message: d.Message(),
	}
	for _, k := range d.Expected {
		jd.Expected = append(jd.Expected, k.String())
	}
	return jd
}
