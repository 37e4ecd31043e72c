// Package teeplot saves a copy of every figure a plotting function produces.
//
// A plotting function is called through [Tee], which forwards its arguments,
// then renders the returned [Figure] to every enabled output format under a
// filename built from the call's keyword arguments:
//
//	tp, err := teeplot.New(teeplot.Config{})
//	if err != nil {
//	    return err
//	}
//	fig, err := teeplot.Tee(ctx, tp, chart.LinePlot, nil, teeplot.Kwargs{
//	    "x":    "timepoint",
//	    "y":    "signal",
//	    "data": table,
//	})
//	// writes teeplots/viz=lineplot+x=timepoint+y=signal+ext=.pdf
//	//    and teeplots/viz=lineplot+x=timepoint+y=signal+ext=.png
//
// # Filenames
//
// Every keyword argument with a string value is slugified into a key=value
// pair. The plotter's name is added under "viz", the format under "ext", the
// post-processing step (if any) under "post", and [OutAttrs] last. Pairs are
// sorted with "ext" at the end and joined by '+'; see package keyname.
//
// # Formats
//
// A [Registry] maps each known format to On, Off, or Defer. Defer formats are
// written only when a call asks for them with [Save]. The environment
// variables TEEPLOT_EPS, TEEPLOT_PDF, TEEPLOT_PNG, TEEPLOT_PS and TEEPLOT_SVG
// override the registry, and TEEPLOT_DRAFTMODE suppresses all output.
//
// # Collisions
//
// Each [Teeplot] remembers the paths it wrote, per output directory. Writing
// the same path twice is handled by the collision [Policy]: error, fix
// (splice a "#=<n>+" marker before the extension), ignore, or warn.
//
// # Variants
//
// [TeeCallback] defers the save and returns it as a function; [Teed] runs a
// scope between plotting and saving; [Wrap] binds options to a plotter.
//
// A Teeplot is not safe for concurrent use.
package teeplot
