// Package nodelink draws Graphviz DOT source as node-link diagrams.
//
// [Digraph] is a teeplot plotter: pass the DOT source as []byte so it does
// not end up in the filename, and string kwargs such as "rankdir" name the
// output:
//
//	d, err := teeplot.Tee(ctx, tp, nodelink.Digraph, []any{src}, teeplot.Kwargs{
//	    "rankdir": "LR",
//	})
//	// writes teeplots/rankdir=lr+viz=digraph+ext=.pdf and .png
//
// SVG is produced by Graphviz through github.com/goccy/go-graphviz. PDF, PS,
// EPS and PNG are converted from the SVG by package render, which needs
// rsvg-convert on PATH.
package nodelink
