package storage

import (
	"encoding/json"
	"fmt"
)

// detectPresentKeys unmarshals JSON bytes to determine which config keys
// are explicitly present in the file. Returns a flat set of dotted-path
// keys (e.g., "engine.heapMB", "video.fullscreen"). Presence matters for
// booleans and zero values: an explicit false must not be replaced by a
// true default.
func detectPresentKeys(jsonBytes []byte) map[string]bool {
	present := make(map[string]bool)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return present
	}

	// Top-level keys
	topKeys := []string{"version", "romDirs", "settingsDir"}
	for _, k := range topKeys {
		if _, ok := raw[k]; ok {
			present[k] = true
		}
	}

	// Nested: engine
	if engineRaw, ok := raw["engine"]; ok {
		var engine map[string]json.RawMessage
		if json.Unmarshal(engineRaw, &engine) == nil {
			if _, ok := engine["javaPath"]; ok {
				present["engine.javaPath"] = true
			}
			if _, ok := engine["jarPath"]; ok {
				present["engine.jarPath"] = true
			}
			if _, ok := engine["heapMB"]; ok {
				present["engine.heapMB"] = true
			}
		}
	}

	// Nested: video
	if videoRaw, ok := raw["video"]; ok {
		var video map[string]json.RawMessage
		if json.Unmarshal(videoRaw, &video) == nil {
			if _, ok := video["windowWidth"]; ok {
				present["video.windowWidth"] = true
			}
			if _, ok := video["windowHeight"]; ok {
				present["video.windowHeight"] = true
			}
			if _, ok := video["fullscreen"]; ok {
				present["video.fullscreen"] = true
			}
		}
	}

	// Nested: audio
	if audioRaw, ok := raw["audio"]; ok {
		var audio map[string]json.RawMessage
		if json.Unmarshal(audioRaw, &audio) == nil {
			if _, ok := audio["chime"]; ok {
				present["audio.chime"] = true
			}
		}
	}

	return present
}

// ApplyMissingDefaults sets default values for config fields that are
// absent from the JSON file. Only truly missing fields get defaults,
// preserving intentional zero values (e.g., fullscreen=false).
func ApplyMissingDefaults(config *Config, presentKeys map[string]bool) {
	defaults := DefaultConfig()

	if !presentKeys["version"] {
		config.Version = defaults.Version
	}
	if !presentKeys["romDirs"] {
		config.RomDirs = defaults.RomDirs
	}
	if !presentKeys["settingsDir"] {
		config.SettingsDir = defaults.SettingsDir
	}
	if !presentKeys["engine.javaPath"] {
		config.Engine.JavaPath = defaults.Engine.JavaPath
	}
	if !presentKeys["engine.jarPath"] {
		config.Engine.JarPath = defaults.Engine.JarPath
	}
	if !presentKeys["engine.heapMB"] {
		config.Engine.HeapMB = defaults.Engine.HeapMB
	}
	if !presentKeys["video.windowWidth"] {
		config.Video.WindowWidth = defaults.Video.WindowWidth
	}
	if !presentKeys["video.windowHeight"] {
		config.Video.WindowHeight = defaults.Video.WindowHeight
	}
	if !presentKeys["video.fullscreen"] {
		config.Video.Fullscreen = defaults.Video.Fullscreen
	}
	if !presentKeys["audio.chime"] {
		config.Audio.Chime = defaults.Audio.Chime
	}
}

// ValidateConfig checks every field against its allowed range and returns
// a human-readable finding per violation. An empty slice means valid.
func ValidateConfig(config *Config) []string {
	var errors []string

	// version
	if config.Version != 1 {
		errors = append(errors, fmt.Sprintf("version: %d (valid: 1)", config.Version))
	}

	// romDirs
	if len(config.RomDirs) == 0 {
		errors = append(errors, "romDirs: empty (valid: at least one directory)")
	}
	for i, dir := range config.RomDirs {
		if dir == "" {
			errors = append(errors, fmt.Sprintf("romDirs[%d]: empty path", i))
		}
	}

	// engine.javaPath
	if config.Engine.JavaPath == "" {
		errors = append(errors, "engine.javaPath: empty (valid: path to a java binary)")
	}

	// engine.heapMB
	if config.Engine.HeapMB < 512 || config.Engine.HeapMB > 16384 {
		errors = append(errors, fmt.Sprintf("engine.heapMB: %d (valid: 512-16384)", config.Engine.HeapMB))
	}

	// video.windowWidth
	if config.Video.WindowWidth < 640 {
		errors = append(errors, fmt.Sprintf("video.windowWidth: %d (valid: >= 640)", config.Video.WindowWidth))
	}

	// video.windowHeight
	if config.Video.WindowHeight < 480 {
		errors = append(errors, fmt.Sprintf("video.windowHeight: %d (valid: >= 480)", config.Video.WindowHeight))
	}

	return errors
}

// CorrectConfig resets any invalid fields to their defaults from
// DefaultConfig(). Valid fields are preserved.
func CorrectConfig(config *Config) *Config {
	defaults := DefaultConfig()

	// version
	if config.Version != 1 {
		config.Version = defaults.Version
	}

	// romDirs
	if len(config.RomDirs) == 0 {
		config.RomDirs = defaults.RomDirs
	} else {
		dirs := config.RomDirs[:0]
		for _, dir := range config.RomDirs {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
		if len(dirs) == 0 {
			dirs = defaults.RomDirs
		}
		config.RomDirs = dirs
	}

	// engine.javaPath
	if config.Engine.JavaPath == "" {
		config.Engine.JavaPath = defaults.Engine.JavaPath
	}

	// engine.heapMB
	if config.Engine.HeapMB < 512 || config.Engine.HeapMB > 16384 {
		config.Engine.HeapMB = defaults.Engine.HeapMB
	}

	// video.windowWidth
	if config.Video.WindowWidth < 640 {
		config.Video.WindowWidth = defaults.Video.WindowWidth
	}

	// video.windowHeight
	if config.Video.WindowHeight < 480 {
		config.Video.WindowHeight = defaults.Video.WindowHeight
	}

	return config
}
