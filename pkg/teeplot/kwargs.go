package teeplot

import (
	"fmt"
	"strings"

	"github.com/matzehuels/teeplot/pkg/errors"
)

// ReservedPrefix marks keyword arguments that configure teeplot rather than
// the plotter. Such kwargs are stripped before the plotter is called.
const ReservedPrefix = "teeplot_"

// splitKwargs separates reserved kwargs, keyed without their prefix, from
// the kwargs forwarded to the plotter.
func splitKwargs(kw Kwargs) (forward, reserved Kwargs) {
	forward = make(Kwargs, len(kw))
	reserved = make(Kwargs)
	for k, v := range kw {
		if name, ok := strings.CutPrefix(k, ReservedPrefix); ok {
			reserved[name] = v
			continue
		}
		forward[k] = v
	}
	return forward, reserved
}

// applyKwargs sets options from reserved kwargs.
func (o *Options) applyKwargs(reserved Kwargs) error {
	for name, v := range reserved {
		if err := o.applyKwarg(name, v); err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) applyKwarg(name string, v any) error {
	key := ReservedPrefix + name
	var err error
	switch name {
	case "callback":
		o.Callback, err = boolKwarg(key, v)
	case "dpi":
		o.DPI, err = floatKwarg(key, v)
	case "oncollision":
		switch x := v.(type) {
		case nil:
			o.OnCollision = ""
		case string:
			o.OnCollision = Policy(strings.ToLower(x))
		case Policy:
			o.OnCollision = x
		default:
			err = errors.TypeError(key, "a policy string", v)
		}
	case "outattrs":
		switch x := v.(type) {
		case map[string]any:
			OutAttrs(x)(o)
		case Kwargs:
			OutAttrs(x)(o)
		case map[string]string:
			for k, s := range x {
				OutAttr(k, s)(o)
			}
		default:
			err = errors.TypeError(key, "a map of attributes", v)
		}
	case "outdir":
		o.OutDir, err = stringKwarg(key, v)
	case "subdir":
		o.Subdir, err = stringKwarg(key, v)
	case "viz":
		o.Viz, err = stringKwarg(key, v)
	case "outinclude":
		var keys []string
		keys, err = stringsKwarg(key, v)
		o.OutInclude = append(o.OutInclude, keys...)
	case "outexclude":
		var keys []string
		keys, err = stringsKwarg(key, v)
		o.OutExclude = append(o.OutExclude, keys...)
	case "postprocess":
		o.PostProcess = v
	case "save":
		o.Save = v
	case "show":
		switch x := v.(type) {
		case nil:
			o.Show = nil
		case bool:
			o.Show = &x
		case *bool:
			o.Show = x
		default:
			err = errors.TypeError(key, "bool or nil", v)
		}
	case "transparent":
		o.Transparent, err = boolKwarg(key, v)
	case "verbose":
		switch x := v.(type) {
		case bool:
			o.Verbose = 0
			if x {
				o.Verbose = 1
			}
		case int:
			o.Verbose = x
		default:
			err = errors.TypeError(key, "bool or int", v)
		}
	default:
		err = errors.New(errors.ErrCodeInvalidArgument, "unknown reserved kwarg %s", key)
	}
	return err
}

func boolKwarg(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, errors.TypeError(key, "bool", v)
	}
	return b, nil
}

func stringKwarg(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.TypeError(key, "string", v)
	}
	return s, nil
}

func floatKwarg(key string, v any) (float64, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	}
	return 0, errors.TypeError(key, "a number", v)
}

// stringsKwarg accepts a single string as a one-element list.
func stringsKwarg(key string, v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{x}, nil
	case []string:
		return x, nil
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, errors.TypeError(key, "a list of strings", v)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, errors.TypeError(key, "string or a list of strings", v)
}

// stringify renders an attribute value for a filename.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
