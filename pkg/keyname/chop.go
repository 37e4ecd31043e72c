package keyname

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultSegmentLimit is the longest path segment Chop produces.
// It sits below the common 255-byte filesystem limit to leave room for a
// collision marker spliced in after chopping.
const DefaultSegmentLimit = 240

// digestLength is the number of hex digits kept when a pair is shortened.
const digestLength = 16

// Chop shortens the final element of path so that no segment exceeds limit
// bytes. A limit <= 0 selects DefaultSegmentLimit.
//
// Over-long names are split into nested directories at pair boundaries; each
// directory segment keeps its trailing '+', so concatenating the segments
// yields the original name. A pair that alone exceeds the limit is replaced by
// its leading bytes plus a digest of the whole pair.
//
// Chop never touches the filesystem. Callers create the parent directories of
// the returned path.
func Chop(path string, limit int) string {
	if limit <= 0 {
		limit = DefaultSegmentLimit
	}

	dir, name := filepath.Split(path)
	if len(name) <= limit {
		return path
	}

	pairs := strings.Split(name, PairSeparator)
	var segments []string
	var cur strings.Builder
	for i, pair := range pairs {
		last := i == len(pairs)-1
		if !last {
			pair += PairSeparator
		}
		if len(pair) > limit {
			pair = shorten(pair, limit, last)
		}
		if cur.Len()+len(pair) > limit {
			segments = append(segments, cur.String())
			cur.Reset()
		}
		cur.WriteString(pair)
	}
	if cur.Len() > 0 {
		segments = append(segments, cur.String())
	}

	return filepath.Join(append([]string{dir}, segments...)...)
}

// shorten replaces an over-long pair with a prefix and a digest, keeping the
// trailing separator when the pair is not the last one.
func shorten(pair string, limit int, last bool) string {
	suffix := ""
	if !last {
		pair = strings.TrimSuffix(pair, PairSeparator)
		suffix = PairSeparator
	}
	digest := Hash([]byte(pair))[:digestLength]
	keep := limit - len(digest) - len(suffix) - 1
	if keep < 0 {
		keep = 0
	}
	for keep > 0 && !utf8.RuneStart(pair[keep]) {
		keep--
	}
	return pair[:keep] + "~" + digest + suffix
}
