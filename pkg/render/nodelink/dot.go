package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/render"
	"github.com/matzehuels/teeplot/pkg/teeplot"
)

// Rank directions accepted by [Diagram.SetRankDir].
var rankDirs = []string{"TB", "LR", "BT", "RL"}

// Diagram is a Graphviz graph. Graph-level attributes set on the diagram are
// placed before the source's own statements, so the source can override them.
type Diagram struct {
	source  []byte
	rankDir string
	label   string
}

// Digraph is a plotter that parses DOT source into a [Diagram].
//
// The source is args[0] or the "source" kwarg, as []byte so that it stays
// out of the filename. The "rankdir" kwarg sets the layout direction.
func Digraph(_ context.Context, args []any, kw teeplot.Kwargs) (*Diagram, error) {
	var src any
	if len(args) > 0 {
		src = args[0]
	} else {
		src = kw["source"]
	}

	d := &Diagram{}
	switch x := src.(type) {
	case []byte:
		d.source = x
	case string:
		d.source = []byte(x)
	case nil:
		return nil, errors.New(errors.ErrCodeInvalidArgument, "digraph needs DOT source")
	default:
		return nil, errors.TypeError("source", "[]byte or string", src)
	}

	if v, ok := kw["rankdir"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, errors.TypeError("rankdir", "string", v)
		}
		if err := d.SetRankDir(s); err != nil {
			return nil, err
		}
	}

	if err := validate(d.source); err != nil {
		return nil, err
	}
	return d, nil
}

// SetRankDir sets the layout direction: TB, LR, BT or RL.
func (d *Diagram) SetRankDir(dir string) error {
	dir = strings.ToUpper(dir)
	for _, r := range rankDirs {
		if r == dir {
			d.rankDir = dir
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidArgument, "rankdir must be one of %s, not %q", strings.Join(rankDirs, ", "), dir)
}

// SetTitle sets the graph label, drawn at the top.
func (d *Diagram) SetTitle(title string) {
	d.label = title
}

// DOT returns the source with the diagram's attributes applied.
func (d *Diagram) DOT(transparent bool) []byte {
	var attrs bytes.Buffer
	if transparent {
		attrs.WriteString("  bgcolor=\"transparent\";\n")
	}
	if d.rankDir != "" {
		fmt.Fprintf(&attrs, "  rankdir=%s;\n", d.rankDir)
	}
	if d.label != "" {
		fmt.Fprintf(&attrs, "  label=%q;\n  labelloc=t;\n", d.label)
	}

	i := bytes.IndexByte(d.source, '{')
	if i < 0 || attrs.Len() == 0 {
		return d.source
	}
	var out bytes.Buffer
	out.Write(d.source[:i+1])
	out.WriteString("\n")
	out.Write(attrs.Bytes())
	out.Write(d.source[i+1:])
	return out.Bytes()
}

// Render writes the diagram. SVG comes from Graphviz; the other formats are
// converted from it.
func (d *Diagram) Render(w io.Writer, format teeplot.Format, opts teeplot.RenderOptions) error {
	svg, err := RenderSVG(d.DOT(opts.Transparent))
	if err != nil {
		return err
	}
	return render.WriteSVG(w, svg, format, opts)
}

// validate parses dot and reports a syntax error as INVALID_ARGUMENT.
func validate(dot []byte) error {
	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "parse DOT")
	}
	defer g.Close()
	return nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
