package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/randomize"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/storage"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui"
)

const appName = "pokemon-randomizer"

// romDirsFlag accumulates repeated -roms flags.
type romDirsFlag []string

func (f *romDirsFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *romDirsFlag) Set(value string) error {
	if value == "" {
		return fmt.Errorf("empty ROM directory")
	}
	*f = append(*f, value)
	return nil
}

func main() {
	var romDirs romDirsFlag
	dataDir := flag.String("data", "", "Override the data directory (config, logs, profiles)")
	windowed := flag.Bool("windowed", false, "Run in a window instead of fullscreen")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Var(&romDirs, "roms", "ROM directory to scan (repeatable, overrides config)")
	flag.Parse()

	if *showVersion {
		fmt.Println(appName + " " + ui.Version)
		return
	}

	storage.Init(appName)
	if *dataDir != "" {
		storage.SetBaseDir(*dataDir)
	}

	if err := run(romDirs, *windowed); err != nil {
		log.Fatalf("Fatal: %v", err)
	}
}

func run(romDirs []string, windowed bool) error {
	if err := storage.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to prepare data directory: %w", err)
	}

	closeLog, err := setupLogging()
	if err != nil {
		// Log file is best effort, stderr still works
		log.Printf("Warning: file logging unavailable: %v", err)
	} else {
		defer closeLog()
	}

	log.Printf("%s %s starting", appName, ui.Version)

	if err := storage.CreateConfigIfMissing(); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	config, err := storage.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if findings := storage.ValidateConfig(config); len(findings) > 0 {
		for _, f := range findings {
			log.Printf("Config: %s", f)
		}
		config = storage.CorrectConfig(config)
	}

	if len(romDirs) > 0 {
		config.RomDirs = romDirs
	}
	if windowed {
		config.Video.Fullscreen = false
	}

	jarPath, err := storage.GetJarPath(config)
	if err != nil {
		return err
	}
	settingsDir, err := storage.GetSettingsDir(config)
	if err != nil {
		return err
	}

	engine := randomize.Engine{
		JavaPath: config.Engine.JavaPath,
		JarPath:  jarPath,
		HeapMB:   config.Engine.HeapMB,
	}
	resolver := randomize.Resolver{Dir: settingsDir}

	app := ui.NewApp(config, engine, resolver, config.RomDirs)

	ebiten.SetWindowTitle("Pokemon Randomizer")
	ebiten.SetTPS(60)
	if config.Video.Fullscreen {
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetWindowSize(config.Video.WindowWidth, config.Video.WindowHeight)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(app); err != nil {
		return fmt.Errorf("app loop failed: %w", err)
	}

	log.Printf("%s exiting", appName)
	return nil
}

// setupLogging tees the standard logger to stderr and a timestamped
// file under the log directory. Returns a close func for the file.
func setupLogging() (func(), error) {
	logDir, err := storage.GetLogDir()
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405"))
	f, err := os.OpenFile(filepath.Join(logDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetPrefix("randomizer: ")
	log.SetOutput(io.MultiWriter(os.Stderr, f))

	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
