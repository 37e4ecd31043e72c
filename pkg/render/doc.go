// Package render turns figures into files.
//
// # Format Conversion
//
// The [ToPDF], [ToPS], [ToEPS] and [ToPNG] functions convert any SVG to other
// formats using the external rsvg-convert tool (from librsvg). [WriteSVG]
// picks the conversion for a [teeplot.Format] and is shared by the figure
// backends:
//
//	err := render.WriteSVG(w, svg, teeplot.FormatPDF, opts)
//
// # Figure Backends
//
//   - [chart]: line plots on go-chart, PNG and SVG natively
//   - [nodelink]: Graphviz DOT diagrams, SVG natively
//
// [chart]: github.com/matzehuels/teeplot/pkg/render/chart
// [nodelink]: github.com/matzehuels/teeplot/pkg/render/nodelink
package render
