package storage

// Config represents the application configuration stored in config.json
type Config struct {
	Version     int          `json:"version"`
	RomDirs     []string     `json:"romDirs"`     // Directories scanned for ROM files
	SettingsDir string       `json:"settingsDir"` // Directory holding <platform>.rnqs profiles; empty = <base>/configs
	Engine      EngineConfig `json:"engine"`
	Video       VideoConfig  `json:"video"`
	Audio       AudioConfig  `json:"audio"`
}

// EngineConfig describes how the external randomizer engine is invoked
type EngineConfig struct {
	JavaPath string `json:"javaPath"` // Java runtime binary
	JarPath  string `json:"jarPath"`  // Engine jar; empty = <base>/PokeRandoZX.jar
	HeapMB   int    `json:"heapMB"`   // JVM max heap passed as -Xmx<n>M
}

// VideoConfig contains display settings
type VideoConfig struct {
	WindowWidth  int  `json:"windowWidth"`  // Windowed-mode size; design canvas is scaled into it
	WindowHeight int  `json:"windowHeight"`
	Fullscreen   bool `json:"fullscreen"`
}

// AudioConfig contains audio settings
type AudioConfig struct {
	Chime bool `json:"chime"` // Play a chime/buzz when a job finishes
}

// DefaultConfig returns the configuration used when config.json is absent.
// The ROM roots match the handheld's stock SD card layout.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		RomDirs: []string{
			"/mnt/mmc/ROMS",
			"/mnt/sdcard/ROMS",
		},
		SettingsDir: "",
		Engine: EngineConfig{
			JavaPath: "/opt/java/bin/java",
			JarPath:  "",
			HeapMB:   4608,
		},
		Video: VideoConfig{
			WindowWidth:  1280,
			WindowHeight: 960,
			Fullscreen:   true,
		},
		Audio: AudioConfig{
			Chime: true,
		},
	}
}
