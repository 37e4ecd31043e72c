package teeplot

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/matzehuels/teeplot/pkg/errors"
)

// FileConfig is the on-disk configuration, read from TOML or YAML.
//
//	oncollision = "fix"
//	outdir = "figures"
//
//	[formats]
//	svg = "on"
//	png = "off"
type FileConfig struct {
	Formats     map[string]string `toml:"formats" yaml:"formats"`
	OnCollision string            `toml:"oncollision" yaml:"oncollision"`
	DraftMode   bool              `toml:"draftmode" yaml:"draftmode"`
	OutDir      string            `toml:"outdir" yaml:"outdir"`
	DPI         float64           `toml:"dpi" yaml:"dpi"`
	Transparent *bool             `toml:"transparent" yaml:"transparent"`
	Verbose     *int              `toml:"verbose" yaml:"verbose"`
}

// LoadConfig reads a configuration file from fs. The format follows the
// extension: .toml, or .yaml/.yml. The result is validated.
func LoadConfig(fs afero.Fs, path string) (*FileConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "read config %s", path)
	}

	var fc FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &fc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, &fc, yaml.Strict()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "parse %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeConfig, "config %s: unsupported extension %q", path, ext)
	}

	if err := fc.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "invalid config %s", path)
	}
	return &fc, nil
}

// Validate reports every invalid field at once.
func (fc *FileConfig) Validate() error {
	var result *multierror.Error
	for _, name := range slices.Sorted(maps.Keys(fc.Formats)) {
		if ParseFormat(name) == "" {
			result = multierror.Append(result, fmt.Errorf("formats: empty format name"))
		}
		if _, err := ParseState(fc.Formats[name]); err != nil {
			result = multierror.Append(result, fmt.Errorf("formats.%s: %w", name, err))
		}
	}
	if fc.OnCollision != "" {
		if _, err := ParsePolicy(fc.OnCollision); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if fc.DPI < 0 {
		result = multierror.Append(result, fmt.Errorf("dpi must be positive, not %g", fc.DPI))
	}
	if fc.Verbose != nil && (*fc.Verbose < 0 || *fc.Verbose > 2) {
		result = multierror.Append(result, fmt.Errorf("verbose must be 0, 1 or 2, not %d", *fc.Verbose))
	}
	return result.ErrorOrNil()
}

// Apply copies the set fields of fc into cfg. Formats named in fc are
// added to the registry or change its state; others keep their defaults.
func (fc *FileConfig) Apply(cfg *Config) error {
	if err := fc.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, err, "invalid config")
	}
	if len(fc.Formats) > 0 {
		if cfg.Formats == nil {
			cfg.Formats = DefaultRegistry()
		} else {
			cfg.Formats = cfg.Formats.Clone()
		}
		for name, value := range fc.Formats {
			state, _ := ParseState(value)
			cfg.Formats[ParseFormat(name)] = state
		}
	}
	if fc.OnCollision != "" {
		cfg.OnCollision = fc.OnCollision
	}
	if fc.DraftMode {
		cfg.DraftMode = true
	}
	if fc.OutDir != "" {
		cfg.OutDir = fc.OutDir
	}
	if fc.DPI != 0 {
		cfg.DPI = fc.DPI
	}
	if fc.Transparent != nil {
		cfg.Transparent = fc.Transparent
	}
	if fc.Verbose != nil {
		cfg.Verbose = fc.Verbose
	}
	return nil
}
