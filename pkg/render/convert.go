package render

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/teeplot"
)

// BaseDPI is the resolution SVG user units are drawn at.
const BaseDPI = 96.0

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte, background string) ([]byte, error) {
	return rsvgConvert(svg, "pdf", backgroundArgs(background)...)
}

// ToPS converts SVG bytes to PostScript using rsvg-convert.
func ToPS(svg []byte, background string) ([]byte, error) {
	return rsvgConvert(svg, "ps", backgroundArgs(background)...)
}

// ToEPS converts SVG bytes to Encapsulated PostScript using rsvg-convert.
func ToEPS(svg []byte, background string) ([]byte, error) {
	return rsvgConvert(svg, "eps", backgroundArgs(background)...)
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64, background string) ([]byte, error) {
	args := append([]string{"-z", fmt.Sprintf("%.2f", scale)}, backgroundArgs(background)...)
	return rsvgConvert(svg, "png", args...)
}

// Background returns the background color for opts: "" keeps the SVG's own
// (transparent) background, "white" fills it.
func Background(opts teeplot.RenderOptions) string {
	if opts.Transparent {
		return ""
	}
	return "white"
}

// Scale returns the zoom factor that renders SVG user units at opts.DPI.
func Scale(opts teeplot.RenderOptions) float64 {
	if opts.DPI <= 0 {
		return 1
	}
	return opts.DPI / BaseDPI
}

// WriteSVG writes an SVG document in format. SVG is written as-is; the
// other formats are converted with rsvg-convert.
func WriteSVG(w io.Writer, svg []byte, format teeplot.Format, opts teeplot.RenderOptions) error {
	var out []byte
	var err error
	bg := Background(opts)
	switch format {
	case teeplot.FormatSVG:
		out = svg
	case teeplot.FormatPDF:
		out, err = ToPDF(svg, bg)
	case teeplot.FormatPS:
		out, err = ToPS(svg, bg)
	case teeplot.FormatEPS:
		out, err = ToEPS(svg, bg)
	case teeplot.FormatPNG:
		out, err = ToPNG(svg, Scale(opts), bg)
	default:
		return errors.New(errors.ErrCodeUnsupported, "cannot convert SVG to %s", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func backgroundArgs(background string) []string {
	if background == "" {
		return nil
	}
	return []string{"-b", background}
}

var lookPath = exec.LookPath

// rsvgConvert shells out to rsvg-convert for format conversion.
var rsvgConvert = func(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := lookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
