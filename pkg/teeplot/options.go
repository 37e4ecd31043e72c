package teeplot

import (
	"maps"
	"slices"
)

// Options are the per-call settings of a tee call. They start from the
// [Config] defaults, then [Option] values are applied, then reserved
// teeplot_* keyword arguments.
type Options struct {
	// Callback defers the save; see [TeeCallback].
	Callback bool

	// DPI is the resolution of rasterized output.
	DPI float64

	// OnCollision overrides the Teeplot policy for this call.
	OnCollision Policy

	// OutAttrs are extra filename attributes, merged last. Keys starting
	// with '_' go to the .meta sidecar instead of the filename.
	OutAttrs map[string]any

	// OutDir and Subdir locate the output: <OutDir>/<Subdir>/<name>.
	OutDir string
	Subdir string

	// OutInclude names keyword arguments that are always part of the
	// filename, whatever their type.
	OutInclude []string

	// OutExclude names attributes that are never part of the filename.
	OutExclude []string

	// PostProcess runs on the plotter result before saving: a func or a
	// snippet string. See [Named].
	PostProcess any

	// Save selects output formats: nil or true for the registry defaults,
	// false for none, or a format, format name, or collection of them.
	Save any

	// Show calls the Teeplot Viewer after saving. Nil shows only in
	// interactive sessions.
	Show *bool

	// Transparent requests a transparent background.
	Transparent bool

	// Verbose is 0 for silence, 1 to log saved paths and skipped formats,
	// 2 to also log each format that was not selected.
	Verbose int

	// Viz overrides the plotter name used for the "viz" attribute.
	Viz string
}

// Option sets a call option.
type Option func(*Options)

// DPI sets the raster resolution.
func DPI(dpi float64) Option {
	return func(o *Options) { o.DPI = dpi }
}

// OnCollision sets the collision policy for the call.
func OnCollision(p Policy) Option {
	return func(o *Options) { o.OnCollision = p }
}

// OutAttrs merges attrs into the extra filename attributes.
func OutAttrs(attrs map[string]any) Option {
	return func(o *Options) {
		if o.OutAttrs == nil {
			o.OutAttrs = make(map[string]any, len(attrs))
		}
		maps.Copy(o.OutAttrs, attrs)
	}
}

// OutAttr adds a single extra filename attribute.
func OutAttr(key string, value any) Option {
	return OutAttrs(map[string]any{key: value})
}

// OutDir sets the base output directory.
func OutDir(dir string) Option {
	return func(o *Options) { o.OutDir = dir }
}

// Subdir sets the subdirectory within the output directory.
func Subdir(dir string) Option {
	return func(o *Options) { o.Subdir = dir }
}

// OutInclude adds keyword arguments that always appear in the filename.
func OutInclude(keys ...string) Option {
	return func(o *Options) { o.OutInclude = append(o.OutInclude, keys...) }
}

// OutExclude adds attributes that never appear in the filename.
func OutExclude(keys ...string) Option {
	return func(o *Options) { o.OutExclude = append(o.OutExclude, keys...) }
}

// PostProcess sets the post-processing step.
func PostProcess(p any) Option {
	return func(o *Options) { o.PostProcess = p }
}

// Save selects the output formats of the call.
func Save(sel any) Option {
	return func(o *Options) { o.Save = sel }
}

// Show forces the viewer on or off.
func Show(show bool) Option {
	return func(o *Options) { o.Show = &show }
}

// Transparent sets background transparency.
func Transparent(t bool) Option {
	return func(o *Options) { o.Transparent = t }
}

// Verbose sets the logging verbosity of the call.
func Verbose(level int) Option {
	return func(o *Options) { o.Verbose = level }
}

// Viz sets the plotter name used in the filename.
func Viz(name string) Option {
	return func(o *Options) { o.Viz = name }
}

// clone returns a copy of o that shares no slices or maps with it.
func (o Options) clone() Options {
	o.OutAttrs = maps.Clone(o.OutAttrs)
	o.OutInclude = slices.Clone(o.OutInclude)
	o.OutExclude = slices.Clone(o.OutExclude)
	return o
}
