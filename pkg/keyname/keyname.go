// Package keyname serializes attribute maps into descriptive filenames.
//
// A packed name is a sequence of key=value pairs joined by '+':
//
//	hue=region+style=event+viz=lineplot+x=timepoint+ext=.png
//
// Keys are sorted lexically except "ext", which always comes last so the
// file extension stays at the end of the name. Keys beginning with '_' are
// private: they never appear in a packed name.
//
// Packed names can grow past what filesystems accept for a single path
// segment. [Chop] splits such names into nested directories at pair
// boundaries, and [Hash] shortens any single pair that is too long on its own.
package keyname

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// PairSeparator joins key=value pairs.
	PairSeparator = "+"

	// KeyValueSeparator splits a key from its value.
	KeyValueSeparator = "="

	// ExtKey is always serialized last.
	ExtKey = "ext"

	// PrivatePrefix marks keys that are never packed.
	PrivatePrefix = "_"
)

// Pack serializes attrs into a packed name.
func Pack(attrs map[string]string) string {
	keys := slices.Sorted(maps.Keys(attrs))

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == ExtKey || IsPrivate(k) {
			continue
		}
		parts = append(parts, k+KeyValueSeparator+attrs[k])
	}
	if ext, ok := attrs[ExtKey]; ok {
		parts = append(parts, ExtKey+KeyValueSeparator+ext)
	}
	return strings.Join(parts, PairSeparator)
}

// Unpack parses the final path element of name back into an attribute map.
// Pairs without a '=' are ignored. Values keep any '=' after the first one.
func Unpack(name string) map[string]string {
	attrs := make(map[string]string)
	for _, pair := range strings.Split(filepath.Base(name), PairSeparator) {
		k, v, ok := strings.Cut(pair, KeyValueSeparator)
		if !ok || k == "" {
			continue
		}
		attrs[k] = v
	}
	return attrs
}

// IsPrivate reports whether key is excluded from packed names.
func IsPrivate(key string) bool {
	return strings.HasPrefix(key, PrivatePrefix)
}
