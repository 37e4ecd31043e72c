package teeplot

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/teeplot/pkg/errors"
)

// ResolveFormats returns the formats a call with the given save selection
// writes, in sorted order.
//
// Draft mode selects nothing. A nil or true selection writes every format
// that is On; false writes nothing. A format, a format name, or a slice or
// set of either writes exactly those formats, minus any that are Off. With
// verbose >= 1 the Off formats that were dropped are logged.
func (tp *Teeplot) ResolveFormats(save any, verbose int) ([]Format, error) {
	formats, err := tp.EffectiveFormats()
	if err != nil {
		return nil, err
	}
	draft, err := tp.draftMode()
	if err != nil {
		return nil, err
	}
	if draft {
		if verbose >= 2 {
			tp.Logger.Debug("draft mode, skipping all formats")
		}
		return nil, nil
	}

	switch x := save.(type) {
	case nil:
		return formats.With(On), nil
	case bool:
		if x {
			return formats.With(On), nil
		}
		return nil, nil
	}

	requested, err := formatSet(save)
	if err != nil {
		return nil, err
	}

	var unsupported []string
	for _, f := range requested {
		if !formats.Known(f) {
			unsupported = append(unsupported, string(f))
		}
	}
	if len(unsupported) > 0 {
		supported := make([]string, 0, len(formats))
		for _, f := range formats.Formats() {
			supported = append(supported, string(f))
		}
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"only %s formats are supported, not %s",
			strings.Join(supported, ", "), strings.Join(unsupported, ", "))
	}

	var selected []Format
	var skipped []string
	for _, f := range requested {
		if formats[f] == Off {
			skipped = append(skipped, string(f))
			continue
		}
		selected = append(selected, f)
	}
	if len(skipped) > 0 && verbose >= 1 {
		tp.Logger.Info("skipping", "formats", strings.Join(skipped, ","))
	}
	return selected, nil
}

// formatSet normalizes every accepted selection shape into a sorted,
// de-duplicated list of formats.
func formatSet(save any) ([]Format, error) {
	var tokens []Format
	switch x := save.(type) {
	case string:
		tokens = []Format{ParseFormat(x)}
	case Format:
		tokens = []Format{ParseFormat(string(x))}
	case []string:
		for _, s := range x {
			tokens = append(tokens, ParseFormat(s))
		}
	case []Format:
		for _, f := range x {
			tokens = append(tokens, ParseFormat(string(f)))
		}
	case []any:
		for _, v := range x {
			switch tok := v.(type) {
			case string:
				tokens = append(tokens, ParseFormat(tok))
			case Format:
				tokens = append(tokens, ParseFormat(string(tok)))
			default:
				return nil, errors.New(errors.ErrCodeInvalidType,
					"save entries must be formats, not %s", describe(v))
			}
		}
	case map[string]bool:
		for s, ok := range x {
			if ok {
				tokens = append(tokens, ParseFormat(s))
			}
		}
	case map[Format]bool:
		for f, ok := range x {
			if ok {
				tokens = append(tokens, ParseFormat(string(f)))
			}
		}
	case map[string]struct{}:
		for s := range x {
			tokens = append(tokens, ParseFormat(s))
		}
	case map[Format]struct{}:
		for f := range maps.Keys(x) {
			tokens = append(tokens, ParseFormat(string(f)))
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidType,
			"save must be bool, a format, or a collection of formats, not %s", describe(save))
	}
	slices.Sort(tokens)
	return slices.Compact(tokens), nil
}

// describe renders a value and its type for error messages.
func describe(v any) string {
	return fmt.Sprintf("%T %v", v, v)
}
