// Package chart draws line plots with github.com/wcharczuk/go-chart/v2.
//
// [LinePlot] is a teeplot plotter over a [Table] of columns:
//
//	data := chart.Table{"timepoint": {0, 1, 2}, "signal": {0.1, 0.4, 0.2}}
//	lc, err := teeplot.Tee(ctx, tp, chart.LinePlot, nil, teeplot.Kwargs{
//	    "data": data,
//	    "x":    "timepoint",
//	    "y":    "signal",
//	})
//	// writes teeplots/viz=lineplot+x=timepoint+y=signal+ext=.pdf and .png
//
// The setters on [LineChart] can be used from post-process snippets, e.g.
// "teed.set_title('Signal')".
package chart
