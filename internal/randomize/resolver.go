// Package randomize resolves per-platform settings profiles and drives
// the external randomizer engine against a staged copy of a ROM.
package randomize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/catalog"
)

// ErrSettingsMissing is returned when a platform's settings profile does
// not exist under the configured settings directory.
var ErrSettingsMissing = errors.New("settings profile not found")

// SettingsFileName returns the profile filename for a platform, e.g.
// "gb.rnqs" for Game Boy.
func SettingsFileName(p catalog.Platform) string {
	return p.Ext() + ".rnqs"
}

// Resolver maps a ROM platform to its .rnqs settings profile under Dir.
// Resolution is a pure extension lookup plus an existence check; it runs
// before a job starts so a missing profile never spawns a process.
type Resolver struct {
	Dir string
}

// Resolve returns the settings profile path for a platform. A missing or
// unreadable profile is a configuration error, not a job failure.
func (r Resolver) Resolve(p catalog.Platform) (string, error) {
	if p == catalog.PlatformUnknown {
		return "", fmt.Errorf("no settings profile for unknown platform")
	}

	path := filepath.Join(r.Dir, SettingsFileName(p))
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSettingsMissing, path)
		}
		return "", fmt.Errorf("cannot access settings profile %s: %w", path, err)
	}

	return path, nil
}
