package teeplot

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/keyname"
)

// MetaSuffix is appended to an output path to name its sidecar.
const MetaSuffix = ".meta"

// writeMeta writes the private attributes of an output next to it. The
// private prefix is stripped from keys; non-string values are recorded as a
// digest of their content.
func writeMeta(fs afero.Fs, path string, private map[string]any) error {
	pairs := make(map[string]string, len(private))
	for k, v := range private {
		key := strings.TrimLeft(k, keyname.PrivatePrefix)
		if s, ok := v.(string); ok {
			pairs[key] = s
		} else {
			pairs[key] = keyname.Digest(v)
		}
	}
	if err := afero.WriteFile(fs, path+MetaSuffix, []byte(keyname.Pack(pairs)+"\n"), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s%s", path, MetaSuffix)
	}
	return nil
}

// ReadMeta reads the sidecar of an output path back into an attribute map.
func ReadMeta(fs afero.Fs, path string) (map[string]string, error) {
	data, err := afero.ReadFile(fs, path+MetaSuffix)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s%s", path, MetaSuffix)
	}
	return keyname.Unpack(strings.TrimSpace(string(data))), nil
}
