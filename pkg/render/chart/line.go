package chart

import (
	"bytes"
	"context"
	"io"
	"slices"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/render"
	"github.com/matzehuels/teeplot/pkg/teeplot"
)

// Table holds named numeric columns of equal length.
type Table map[string][]float64

// Columns returns the column names in sorted order.
func (t Table) Columns() []string {
	names := make([]string, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// LineChart is a line plot of one or more series over a shared x column.
type LineChart struct {
	title  string
	xLabel string
	yLabel string
	width  int
	height int
	series []gochart.ContinuousSeries
}

// LinePlot is a teeplot plotter drawing column "y" of the "data" table over
// column "x". Both are strings, so they name the output; "data" is not.
// An optional "title" string sets the chart title.
func LinePlot(_ context.Context, _ []any, kw teeplot.Kwargs) (*LineChart, error) {
	data, err := tableArg(kw["data"])
	if err != nil {
		return nil, err
	}
	x, err := columnArg(data, kw, "x")
	if err != nil {
		return nil, err
	}
	y, err := columnArg(data, kw, "y")
	if err != nil {
		return nil, err
	}

	xs, ys := data[x], data[y]
	if len(xs) != len(ys) {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "columns %s and %s differ in length: %d != %d", x, y, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "line plot needs at least 2 rows, got %d", len(xs))
	}

	lc := &LineChart{
		xLabel: x,
		yLabel: y,
		width:  gochart.DefaultChartWidth,
		height: gochart.DefaultChartHeight,
	}
	if v, ok := kw["title"]; ok {
		title, ok := v.(string)
		if !ok {
			return nil, errors.TypeError("title", "string", v)
		}
		lc.title = title
	}
	lc.AddSeries(y, xs, ys)
	return lc, nil
}

func tableArg(v any) (Table, error) {
	switch x := v.(type) {
	case Table:
		return x, nil
	case map[string][]float64:
		return Table(x), nil
	case nil:
		return nil, errors.New(errors.ErrCodeInvalidArgument, "line plot needs a data table")
	}
	return nil, errors.TypeError("data", "a table of float64 columns", v)
}

func columnArg(data Table, kw teeplot.Kwargs, key string) (string, error) {
	v, ok := kw[key]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidArgument, "line plot needs a %q column", key)
	}
	name, ok := v.(string)
	if !ok {
		return "", errors.TypeError(key, "string", v)
	}
	if _, ok := data[name]; !ok {
		return "", errors.New(errors.ErrCodeInvalidArgument, "no column %q in data, have %v", name, data.Columns())
	}
	return name, nil
}

// AddSeries adds a named series.
func (c *LineChart) AddSeries(name string, xs, ys []float64) {
	c.series = append(c.series, gochart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
	})
}

// SetTitle sets the chart title.
func (c *LineChart) SetTitle(title string) { c.title = title }

// SetXLabel sets the x axis name.
func (c *LineChart) SetXLabel(label string) { c.xLabel = label }

// SetYLabel sets the y axis name.
func (c *LineChart) SetYLabel(label string) { c.yLabel = label }

// SetSize sets the canvas size in pixels at the base resolution.
func (c *LineChart) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "chart size must be positive, not %dx%d", width, height)
	}
	c.width, c.height = width, height
	return nil
}

// Title returns the chart title.
func (c *LineChart) Title() string { return c.title }

func (c *LineChart) build(opts teeplot.RenderOptions) gochart.Chart {
	series := make([]gochart.Series, len(c.series))
	for i, s := range c.series {
		series[i] = s
	}
	ch := gochart.Chart{
		Title:  c.title,
		Width:  c.width,
		Height: c.height,
		XAxis:  gochart.XAxis{Name: c.xLabel},
		YAxis:  gochart.YAxis{Name: c.yLabel},
		Series: series,
	}
	if opts.Transparent {
		ch.Background = gochart.Style{FillColor: drawing.ColorTransparent}
		ch.Canvas = gochart.Style{FillColor: drawing.ColorTransparent}
	}
	if len(c.series) > 1 {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}
	return ch
}

// Render draws the chart. PNG and SVG are native; PNG is scaled to
// opts.DPI. PDF, PS and EPS are converted from SVG.
func (c *LineChart) Render(w io.Writer, format teeplot.Format, opts teeplot.RenderOptions) error {
	ch := c.build(opts)
	switch format {
	case teeplot.FormatPNG:
		if opts.DPI > 0 {
			scale := opts.DPI / gochart.DefaultDPI
			ch.DPI = opts.DPI
			ch.Width = int(float64(c.width) * scale)
			ch.Height = int(float64(c.height) * scale)
		}
		return ch.Render(gochart.PNG, w)
	case teeplot.FormatSVG:
		return ch.Render(gochart.SVG, w)
	}

	var svg bytes.Buffer
	if err := ch.Render(gochart.SVG, &svg); err != nil {
		return err
	}
	return render.WriteSVG(w, svg.Bytes(), format, opts)
}
