// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestPackageNameValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  PackageName
		valid bool
	}{
		{"meow", true},
		{"m", true},
		{"type-friend", true},
		{"Type_Friend.ext2", true},
		{"", false},
		{"-meow", false},
		{"meow.", false},
		{"meow/../etc", false},
		{"meow cat", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			t.Parallel()

			err := tt.name.Validate()
			if tt.valid && err != nil {
				t.Errorf("PackageName(%q).Validate() = %v, want nil", tt.name, err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidPackageName) {
				t.Errorf("PackageName(%q).Validate() = %v, want ErrInvalidPackageName", tt.name, err)
			}
		})
	}
}

func TestPackageNameEscaped(t *testing.T) {
	t.Parallel()

	tests := map[PackageName]string{
		"meow":           "meow",
		"type-friend":    "type_friend",
		"type--friend":   "type_friend",
		"type.-_friend":  "type_friend",
		"Type_Friend.v2": "Type_Friend_v2",
	}
	for in, want := range tests {
		if got := in.Escaped(); got != want {
			t.Errorf("PackageName(%q).Escaped() = %q, want %q", in, got, want)
		}
	}
}
