package teeplot

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/teeplot/pkg/errors"
	"github.com/matzehuels/teeplot/pkg/keyname"
	"github.com/matzehuels/teeplot/pkg/slug"
)

// Fixed attribute keys.
const (
	vizKey  = "viz"
	postKey = "post"
)

// attributes is the output attribute map of a call, split into the pairs
// that name the file and the private pairs that go to the sidecar.
type attributes struct {
	public  map[string]string
	private map[string]any

	// formatExt is set when "ext" survived merging and exclusion with its
	// per-format value, so name fills it in for each format.
	formatExt bool
}

// extPlaceholder stands for the per-format "ext" value while the map is
// merged with extra attributes and the exclude list.
type extPlaceholder struct{}

// buildAttributes assembles the attribute map of a call. The "ext" entry is
// present before extra attributes and excludes apply, so both can replace
// or drop it.
func buildAttributes(viz string, kw Kwargs, o *Options) (attributes, error) {
	all := make(map[string]any, len(kw)+len(o.OutAttrs)+3)
	for k, v := range kw {
		if _, ok := v.(string); ok || slices.Contains(o.OutInclude, k) {
			all[slug.Make(k)] = slug.Make(stringify(v))
		}
	}
	all[vizKey] = slug.Make(viz)
	if name, ok := postName(o.PostProcess); ok {
		all[postKey] = name
	}
	all[keyname.ExtKey] = extPlaceholder{}
	maps.Copy(all, o.OutAttrs)
	for _, k := range o.OutExclude {
		delete(all, k)
	}

	attrs := attributes{
		public:  make(map[string]string, len(all)),
		private: make(map[string]any),
	}
	for k, v := range all {
		if _, ok := v.(extPlaceholder); ok {
			attrs.formatExt = true
			continue
		}
		if keyname.IsPrivate(k) {
			attrs.private[k] = v
			continue
		}
		s := stringify(v)
		if err := errors.ValidateAttrKey(k); err != nil {
			return attributes{}, err
		}
		if err := errors.ValidateAttrValue(k, s); err != nil {
			return attributes{}, err
		}
		attrs.public[k] = s
	}
	return attrs, nil
}

// name returns the packed filename for format f.
func (a attributes) name(f Format) string {
	pairs := maps.Clone(a.public)
	if a.formatExt {
		pairs[keyname.ExtKey] = string(f)
	}
	return keyname.Pack(pairs)
}

// postName returns the "post" attribute of a post-process step. Snippets
// ending in ';' run without naming the file.
func postName(p any) (string, bool) {
	switch x := p.(type) {
	case nil:
		return "", false
	case string:
		if x == "" || strings.HasSuffix(x, ";") {
			return "", false
		}
		return slug.Make(x), true
	case NamedFunc:
		return x.Name, x.Name != ""
	}
	if name := FuncName(p); name != "" {
		return name, true
	}
	return "", false
}

// OutPath returns the path a call of the plotter named viz with kwargs kw
// and options o writes for format f, before collision handling. Reserved
// kwargs in kw are ignored; apply them to o first.
func (tp *Teeplot) OutPath(viz string, kw Kwargs, o *Options, f Format) (string, error) {
	forward, _ := splitKwargs(kw)
	attrs, err := buildAttributes(viz, forward, o)
	if err != nil {
		return "", err
	}
	return outPath(o, attrs, f), nil
}

func outPath(o *Options, attrs attributes, f Format) string {
	return keyname.Chop(filepath.Join(o.OutDir, o.Subdir, attrs.name(f)), keyname.DefaultSegmentLimit)
}
