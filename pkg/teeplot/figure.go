package teeplot

import (
	"context"
	"io"
	"reflect"
	"runtime"
	"strings"
)

// Format is an output format identified by its file extension, e.g. ".png".
type Format string

// Formats known to the default registry.
const (
	FormatEPS Format = ".eps"
	FormatPDF Format = ".pdf"
	FormatPNG Format = ".png"
	FormatPS  Format = ".ps"
	FormatSVG Format = ".svg"
)

// ParseFormat normalizes a format token. A missing leading dot is added and
// the token is lower-cased, so "PNG", "png" and ".png" are all FormatPNG.
// ParseFormat does not check that the format is known.
func ParseFormat(s string) Format {
	s = strings.ToLower(strings.TrimSpace(s))
	if s != "" && !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	return Format(s)
}

// Name returns the format without its leading dot.
func (f Format) Name() string {
	return strings.TrimPrefix(string(f), ".")
}

// RenderOptions are passed to [Figure.Render] for every saved file.
type RenderOptions struct {
	// DPI is the resolution of rasterized output.
	DPI float64
	// Transparent requests a transparent background where the format allows.
	Transparent bool
}

// Figure is the value a plotter returns. Render writes the figure to w in
// the given format; figures return an error for formats they cannot encode.
type Figure interface {
	Render(w io.Writer, format Format, opts RenderOptions) error
}

// Kwargs are keyword arguments to a plotter. Keys starting with
// [ReservedPrefix] configure teeplot and are not forwarded.
type Kwargs map[string]any

// Plotter is a plotting function. args are forwarded positionally, kw by name.
type Plotter[F Figure] func(ctx context.Context, args []any, kw Kwargs) (F, error)

// FuncName returns the bare name of a function value: the package path,
// receiver, generic instantiation and method-value suffix are stripped.
// It returns "" for nil or non-function values.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
