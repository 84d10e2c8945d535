package randomize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/catalog"
)

func TestSettingsFileName(t *testing.T) {
	tests := []struct {
		platform catalog.Platform
		expected string
	}{
		{catalog.PlatformGB, "gb.rnqs"},
		{catalog.PlatformGBC, "gbc.rnqs"},
		{catalog.PlatformGBA, "gba.rnqs"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			got := SettingsFileName(tc.platform)
			if got != tc.expected {
				t.Errorf("SettingsFileName(%v) = %q, want %q", tc.platform, got, tc.expected)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"gb.rnqs", "gba.rnqs"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("settings"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}

	r := Resolver{Dir: dir}

	t.Run("existing profile resolves", func(t *testing.T) {
		path, err := r.Resolve(catalog.PlatformGB)
		if err != nil {
			t.Fatalf("Resolve(GB) error = %v, want nil", err)
		}
		if path != filepath.Join(dir, "gb.rnqs") {
			t.Errorf("Resolve(GB) = %q, want %q", path, filepath.Join(dir, "gb.rnqs"))
		}
	})

	t.Run("missing profile is a configuration error", func(t *testing.T) {
		_, err := r.Resolve(catalog.PlatformGBC)
		if !errors.Is(err, ErrSettingsMissing) {
			t.Errorf("Resolve(GBC) error = %v, want ErrSettingsMissing", err)
		}
	})

	t.Run("unknown platform is rejected", func(t *testing.T) {
		if _, err := r.Resolve(catalog.PlatformUnknown); err == nil {
			t.Error("Resolve(Unknown) = nil error, want error")
		}
	})
}
