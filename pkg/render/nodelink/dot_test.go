package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/teeplot"
)

const sample = "digraph G {\n  a -> b;\n  a -> c;\n}\n"

func TestDigraph(t *testing.T) {
	d, err := Digraph(context.Background(), []any{[]byte(sample)}, teeplot.Kwargs{"rankdir": "lr"})
	if err != nil {
		t.Fatalf("Digraph() error: %v", err)
	}
	dot := string(d.DOT(true))
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Errorf("DOT() missing rankdir: %s", dot)
	}
	if !strings.Contains(dot, `bgcolor="transparent"`) {
		t.Errorf("DOT() missing transparent background: %s", dot)
	}
	if !strings.HasPrefix(dot, "digraph G {\n  bgcolor") {
		t.Errorf("DOT() attributes not placed first: %s", dot)
	}
}

func TestDigraph_SourceKwarg(t *testing.T) {
	d, err := Digraph(context.Background(), nil, teeplot.Kwargs{"source": sample})
	if err != nil {
		t.Fatalf("Digraph() error: %v", err)
	}
	if got := string(d.DOT(false)); got != sample {
		t.Errorf("DOT() = %q, want source unchanged", got)
	}
}

func TestDigraph_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []any
		kw   teeplot.Kwargs
		code errors.Code
	}{
		{"no source", nil, nil, errors.ErrCodeInvalidArgument},
		{"bad source type", []any{42}, nil, errors.ErrCodeInvalidType},
		{"bad rankdir", []any{sample}, teeplot.Kwargs{"rankdir": "up"}, errors.ErrCodeInvalidArgument},
		{"rankdir type", []any{sample}, teeplot.Kwargs{"rankdir": 1}, errors.ErrCodeInvalidType},
		{"syntax", []any{"digraph {"}, nil, errors.ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Digraph(context.Background(), tt.args, tt.kw)
			if !errors.Is(err, tt.code) {
				t.Errorf("Digraph() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := validate([]byte(sample)); err != nil {
		t.Fatalf("validate() error: %v", err)
	}
	if err := validate([]byte("digraph { a -> ")); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("validate() error = %v, want %s", err, errors.ErrCodeInvalidArgument)
	}
}

func TestDiagram_SetTitle(t *testing.T) {
	d := &Diagram{source: []byte(sample)}
	d.SetTitle("deps")
	if !strings.Contains(string(d.DOT(false)), `label="deps";`) {
		t.Error("DOT() missing title label")
	}
}

func TestRenderSVG(t *testing.T) {
	d, err := Digraph(context.Background(), []any{sample}, nil)
	if err != nil {
		t.Fatalf("Digraph() error: %v", err)
	}
	var buf bytes.Buffer
	if err := d.Render(&buf, teeplot.FormatSVG, teeplot.RenderOptions{Transparent: true}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("Render() output is not SVG")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="10" height="20"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
}
