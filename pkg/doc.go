// Package pkg provides the libraries behind teeplot.
//
// # Overview
//
// Teeplot calls a plotting function and saves the resulting figure to every
// enabled output format, under a filename that records the plot's
// attributes. The pkg directory is organized as follows:
//
//  1. [teeplot] - Tee, Teed and Wrap; format selection, collision policy,
//     post-processing and configuration
//  2. [keyname] - Packing attributes into filenames and back
//  3. [slug] - Filename-safe slugs
//  4. [render] - Format conversion, with line charts in [render/chart] and
//     Graphviz diagrams in [render/nodelink]
//  5. [errors] - Coded errors shared by every package
//  6. [observability] - Hooks receiving save events
//
// # Data Flow
//
// A tee call runs through these steps:
//
//	plotter(ctx, args, kwargs)
//	         ↓
//	    post-process (function or snippet)
//	         ↓
//	    [keyname] packed filename per format
//	         ↓
//	    collision policy (error, fix, ignore, warn)
//	         ↓
//	    Figure.Render → teeplots/viz=lineplot+x=time+y=signal+ext=.png
//
// # Quick Start
//
//	tp, _ := teeplot.New(teeplot.Config{})
//	fig, err := teeplot.Tee(ctx, tp, chart.LinePlot, nil, teeplot.Kwargs{
//	    "data": table, "x": "time", "y": "signal",
//	})
package pkg
