package teeplot

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/keyname"
	"github.com/matzehuels/teeplot/pkg/observability"
)

// Policy decides what happens when a call is about to write a path that
// this Teeplot already wrote.
type Policy string

// Collision policies.
const (
	// PolicyError aborts the call.
	PolicyError Policy = "error"
	// PolicyFix writes to a disambiguated path instead.
	PolicyFix Policy = "fix"
	// PolicyIgnore overwrites silently.
	PolicyIgnore Policy = "ignore"
	// PolicyWarn overwrites and logs a warning.
	PolicyWarn Policy = "warn"
)

// Policies lists the valid collision policies.
var Policies = []Policy{PolicyError, PolicyFix, PolicyIgnore, PolicyWarn}

// ParsePolicy parses a policy name, case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", errors.New(errors.ErrCodeInvalidArgument,
			"oncollision must be one of 'error', 'fix', 'ignore', or 'warn', not %q", s)
	}
	return p, nil
}

// Valid reports whether p is one of [Policies].
func (p Policy) Valid() bool {
	switch p {
	case PolicyError, PolicyFix, PolicyIgnore, PolicyWarn:
		return true
	}
	return false
}

// collisionMarker is the key spliced into fixed paths.
const collisionMarker = "#"

// history counts writes per resolved path within one output root.
type history map[string]int

// historyFor returns the write history of an output root, creating it on
// first use. Roots are compared after cleaning.
func (tp *Teeplot) historyFor(root string) history {
	root = filepath.Clean(root)
	h, ok := tp.histories[root]
	if !ok {
		h = make(history)
		tp.histories[root] = h
	}
	return h
}

// Writes returns how many times path was claimed under root.
func (tp *Teeplot) Writes(root, path string) int {
	return tp.historyFor(root)[path]
}

// claim records an attempted write of path under root and applies policy
// when the path was written before. It returns the path to actually write.
func (tp *Teeplot) claim(ctx context.Context, root, path string, policy Policy) (string, error) {
	h := tp.historyFor(root)
	count := h[path]
	out := path

	if count > 0 {
		observability.Save().OnCollision(ctx, path, string(policy), count)
		switch policy {
		case PolicyError:
			return "", errors.New(errors.ErrCodeCollision, "teeplot already created file %s", path)
		case PolicyFix:
			out = fixPath(path, count)
		case PolicyIgnore:
		case PolicyWarn:
			tp.Logger.Warn("teeplot already created file, overwriting it", "path", path)
		default:
			return "", errors.New(errors.ErrCodeInvalidArgument,
				"oncollision must be one of 'error', 'fix', 'ignore', or 'warn', not %q", string(policy))
		}
	}

	h[path]++
	if out != path {
		h[out]++
	}
	return out, nil
}

// fixPath splices "#=<count>+" immediately before the "ext=" pair of the
// final path element. Names without an "ext" pair get the marker appended.
func fixPath(path string, count int) string {
	marker := collisionMarker + keyname.KeyValueSeparator + strconv.Itoa(count)
	ext := keyname.ExtKey + keyname.KeyValueSeparator

	dir, base := filepath.Split(path)
	switch i := strings.LastIndex(base, keyname.PairSeparator+ext); {
	case i >= 0:
		base = base[:i+1] + marker + keyname.PairSeparator + base[i+1:]
	case strings.HasPrefix(base, ext):
		base = marker + keyname.PairSeparator + base
	default:
		base += keyname.PairSeparator + marker
	}
	return dir + base
}
