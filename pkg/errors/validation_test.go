package errors

import (
	"strings"
	"testing"
)

func TestValidateAttrKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "hue", false},
		{"with dash", "one-for", false},
		{"private", "_datafordigest", false},
		{"collision marker", "#", false},

		{"empty", "", true},
		{"long", strings.Repeat("k", 2000), false},
		{"equals", "a=b", true},
		{"plus", "a+b", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"control char", "a\x01b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttrKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAttrKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidAttr) {
				t.Errorf("ValidateAttrKey(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidAttr)
			}
		})
	}
}

func TestValidateAttrValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "timepoint", false},
		{"empty", "", false},
		{"underscores kept", "metadata__", false},
		{"extension", ".png", false},

		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"long", strings.Repeat("v", 2000), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttrValue("k", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAttrValue(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
