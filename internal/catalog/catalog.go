// Package catalog scans the configured ROM directories and classifies
// candidate files by platform, including ROMs packed inside archives.
package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Platform identifies the handheld system a ROM targets.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformGB
	PlatformGBC
	PlatformGBA
)

// String returns the display name for the platform
func (p Platform) String() string {
	switch p {
	case PlatformGB:
		return "GB"
	case PlatformGBC:
		return "GBC"
	case PlatformGBA:
		return "GBA"
	default:
		return "Unknown"
	}
}

// Ext returns the canonical file extension for the platform, without dot
func (p Platform) Ext() string {
	switch p {
	case PlatformGB:
		return "gb"
	case PlatformGBC:
		return "gbc"
	case PlatformGBA:
		return "gba"
	default:
		return ""
	}
}

// PlatformForExt maps a file extension (with or without leading dot,
// any case) to its platform. Unrecognized extensions map to
// PlatformUnknown.
func PlatformForExt(ext string) Platform {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "gb":
		return PlatformGB
	case "gbc":
		return PlatformGBC
	case "gba":
		return PlatformGBA
	default:
		return PlatformUnknown
	}
}

// romExtensions lists the raw ROM extensions the catalog recognizes
var romExtensions = []string{".gb", ".gbc", ".gba"}

// archiveExtensions lists container formats probed for a packed ROM
var archiveExtensions = []string{".zip", ".7z", ".gz", ".tgz", ".rar"}

// Entry is one selectable ROM. Immutable once scanned.
type Entry struct {
	Path        string   // Absolute path of the file on disk
	Root        string   // The configured root it was found under
	Platform    Platform // Classified platform
	DisplayName string   // Path relative to Root, extension stripped
	Archived    bool     // True when Path is an archive holding the ROM
}

// Warning records a path the scan had to skip and why
type Warning struct {
	Path string
	Err  error
}

// Scan walks each configured root and returns the ROMs found, sorted by
// display name. Unreadable directories or files are skipped and reported
// as warnings, never as a fatal error. Roots that do not exist are
// reported the same way.
func Scan(roots []string) ([]Entry, []Warning) {
	var entries []Entry
	var warnings []Warning

	for _, root := range roots {
		walkFn := func(path string, info os.FileInfo, err error) error {
			if err != nil {
				warnings = append(warnings, Warning{Path: path, Err: err})
				if info != nil && info.IsDir() && path != root {
					return filepath.SkipDir
				}
				return nil
			}

			// Skip symlinks
			if info.Mode()&os.ModeSymlink != 0 {
				return nil
			}

			if info.IsDir() {
				// Skip hidden directories
				if path != root && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}

			entry, ok, err := classify(path, root)
			if err != nil {
				warnings = append(warnings, Warning{Path: path, Err: err})
				return nil
			}
			if ok {
				entries = append(entries, entry)
			}
			return nil
		}

		if err := filepath.Walk(root, walkFn); err != nil {
			warnings = append(warnings, Warning{Path: root, Err: err})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		an, bn := strings.ToLower(a.DisplayName), strings.ToLower(b.DisplayName)
		if an != bn {
			return an < bn
		}
		return a.Path < b.Path
	})

	return entries, warnings
}

// classify decides whether a file is a catalog entry. Raw ROMs match by
// extension; archives are probed for a single contained ROM.
func classify(path, root string) (Entry, bool, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if p := PlatformForExt(ext); p != PlatformUnknown {
		return Entry{
			Path:        path,
			Root:        root,
			Platform:    p,
			DisplayName: displayName(path, root),
		}, true, nil
	}

	if !isArchiveExt(path) {
		return Entry{}, false, nil
	}

	inner, err := probeArchive(path)
	if err != nil {
		if errors.Is(err, ErrNoRomInArchive) || errors.Is(err, ErrUnsupportedFormat) {
			// Archive without a ROM inside is simply not an entry
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}

	p := PlatformForExt(filepath.Ext(inner))
	if p == PlatformUnknown {
		return Entry{}, false, nil
	}

	return Entry{
		Path:        path,
		Root:        root,
		Platform:    p,
		DisplayName: displayName(path, root),
		Archived:    true,
	}, true, nil
}

// displayName strips the root prefix and the extension so nested ROMs
// read as "folder/game" in the browser.
func displayName(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)
	ext := filepath.Ext(rel)
	return strings.TrimSuffix(rel, ext)
}

func isArchiveExt(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
