package teeplot

import (
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/teeplot/pkg/errors"
)

// State is the tri-state enable flag of a registered format.
type State int

const (
	// Defer leaves the decision to the call: the format is written only
	// when a call names it in [Save].
	Defer State = iota
	// On writes the format by default.
	On
	// Off never writes the format, even when a call names it.
	Off
)

// String returns "defer", "on" or "off".
func (s State) String() string {
	switch s {
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return "defer"
	}
}

// ParseState parses a textual state, case-insensitively. "none", "defer"
// and "deferred" select Defer; everything else is read with [ParseBool].
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "defer", "deferred":
		return Defer, nil
	}
	b, err := ParseBool(s)
	if err != nil {
		return Defer, err
	}
	if b {
		return On, nil
	}
	return Off, nil
}

// Registry maps each known output format to its state.
type Registry map[Format]State

// DefaultRegistry returns the built-in format defaults: PDF and PNG on,
// EPS, PS and SVG deferred.
func DefaultRegistry() Registry {
	return Registry{
		FormatEPS: Defer,
		FormatPDF: On,
		FormatPNG: On,
		FormatPS:  Defer,
		FormatSVG: Defer,
	}
}

// Clone returns a copy of r.
func (r Registry) Clone() Registry {
	return maps.Clone(r)
}

// Formats returns every registered format in sorted order.
func (r Registry) Formats() []Format {
	return slices.Sorted(maps.Keys(r))
}

// With returns the registered formats whose state is s, in sorted order.
func (r Registry) With(s State) []Format {
	var out []Format
	for _, f := range r.Formats() {
		if r[f] == s {
			out = append(out, f)
		}
	}
	return out
}

// Known reports whether f is registered.
func (r Registry) Known(f Format) bool {
	_, ok := r[f]
	return ok
}

// ParseBool reads a boolean the way Python's strtobool does: y, yes, t,
// true, on and 1 are true; n, no, f, false, off and 0 are false. Matching is
// case-insensitive; anything else is an INVALID_ARGUMENT error.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "t", "true", "on", "1":
		return true, nil
	case "n", "no", "f", "false", "off", "0":
		return false, nil
	}
	return false, errors.New(errors.ErrCodeInvalidArgument, "invalid truth value %q", s)
}
