package errors

import (
	"strings"
	"unicode"
)

// ValidateAttrKey checks that key can appear in a packed filename.
//
// Keys cannot be empty and cannot contain the pair separators '=' and '+',
// path separators, or control characters, since any of those would make the
// packed name ambiguous or escape the output directory.
func ValidateAttrKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidAttr, "attribute key cannot be empty")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAttr, "attribute key %q contains control characters", key)
		}
	}
	if strings.ContainsAny(key, "=+/\\") {
		return New(ErrCodeInvalidAttr, "attribute key %q contains a reserved character", key)
	}
	return nil
}

// ValidateAttrValue checks that value can appear in a packed filename.
// Values may be empty; they may not contain path separators or control
// characters. Length is not checked: over-long names are shortened when the
// path is chopped.
func ValidateAttrValue(key, value string) error {
	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAttr, "attribute %q value contains control characters", key)
		}
	}
	if strings.ContainsAny(value, "/\\") {
		return New(ErrCodeInvalidAttr, "attribute %q value %q contains a path separator", key, value)
	}
	return nil
}
