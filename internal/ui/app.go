package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/catalog"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/jobs"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/randomize"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/storage"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

// Version is the application version shown in the header.
const Version = "0.1.1"

const appTitle = "Pokemon Randomizer"

// scanResult carries an async catalog scan back to the app loop.
type scanResult struct {
	entries  []catalog.Entry
	warnings []catalog.Warning
}

// App is the top-level ebiten.Game: it owns the scene state machine,
// input, rendering, and the job manager. Update runs at a fixed 60 TPS
// and never blocks; long work happens on the job worker or the scan
// goroutine.
// shutdownGrace bounds how long exit waits for a cancelled job to wind
// down. Covers the engine's termination grace with margin.
const shutdownGrace = 5 * time.Second

type App struct {
	config *storage.Config
	state  AppState
	quit   bool

	// quitDeadline is set when quit finds a job still running; exit is
	// deferred until the job reaches a terminal state or this passes.
	quitDeadline time.Time

	input    *InputManager
	renderer *Renderer

	manager  *jobs.Manager
	resolver randomize.Resolver
	engine   randomize.Engine
	romRoots []string

	mainMenu MainMenuScene
	browser  BrowserScene
	confirm  ConfirmScene
	running  RunningScene
	result   ResultScene

	exitMenu     ExitMenu
	notification *Notification
	sounds       *SoundBank

	scanCh chan scanResult
}

// NewApp wires the application together from the loaded configuration.
func NewApp(config *storage.Config, engine randomize.Engine, resolver randomize.Resolver, romRoots []string) *App {
	pipeline := randomize.NewPipeline(engine)
	return &App{
		config:       config,
		state:        StateMainMenu,
		input:        NewInputManager(),
		renderer:     NewRenderer(),
		manager:      jobs.NewManager(pipeline),
		resolver:     resolver,
		engine:       engine,
		romRoots:     romRoots,
		notification: NewNotification(),
		sounds:       NewSoundBank(config.Audio.Chime),
	}
}

// Update advances one tick: drain async results, poll the job manager,
// and dispatch input events to the exit menu or the active scene.
func (a *App) Update() error {
	if a.quit {
		if !a.readyToExit() {
			return nil
		}
		a.sounds.Close()
		return ebiten.Termination
	}

	a.drainScan()
	a.pollJob()

	events := a.input.Poll()

	if a.exitMenu.IsVisible() {
		for _, e := range events {
			if a.exitMenu.Handle(e) == ExitMenuQuit {
				a.quit = true
				return nil
			}
		}
		return nil
	}

	for _, e := range events {
		// The Menu button opens the exit overlay everywhere except
		// while a job is running; there Back must be used so the job
		// gets cancelled first.
		if e == EventMenu && a.state != StateRunningJob {
			a.exitMenu.Show()
			return nil
		}
		a.dispatch(e)
	}

	return nil
}

// readyToExit reports whether the app may terminate. A running job is
// cancelled and given a bounded wait first, so the engine receives its
// SIGTERM and grace period instead of being orphaned when the process
// exits. The loop keeps ticking until then.
func (a *App) readyToExit() bool {
	if a.manager.Poll().State != jobs.StateRunning {
		return true
	}
	if a.quitDeadline.IsZero() {
		a.quitDeadline = time.Now().Add(shutdownGrace)
		if err := a.manager.Cancel(); err == nil {
			log.Printf("Cancelling running job before exit")
		}
		a.notification.ShowDefault("Shutting down...")
	}
	return time.Now().After(a.quitDeadline)
}

// dispatch routes one event to the active scene and applies the
// resulting transition.
func (a *App) dispatch(e Event) {
	switch a.state {
	case StateMainMenu:
		switch a.mainMenu.Handle(e) {
		case MainMenuRandomize:
			a.enterBrowser()
		case MainMenuExit:
			a.exitMenu.Show()
		}

	case StateRomBrowser:
		switch a.browser.Handle(e) {
		case BrowserSelected:
			if entry, ok := a.browser.Selected(); ok {
				a.enterConfirm(entry)
			}
		case BrowserBack:
			a.state = StateMainMenu
		}

	case StateConfirmStart:
		switch a.confirm.Handle(e) {
		case ConfirmStart:
			a.startJob()
		case ConfirmBack:
			a.state = StateRomBrowser
		}

	case StateRunningJob:
		if a.running.Handle(e) == RunningCancel {
			if err := a.manager.Cancel(); err == nil {
				a.notification.ShowDefault("Cancelling...")
			}
			a.state = StateRomBrowser
		}

	case StateJobResult:
		if a.result.Handle(e) == ResultDismiss {
			if err := a.manager.Acknowledge(); err != nil {
				log.Printf("Acknowledge failed: %v", err)
			}
			a.state = StateRomBrowser
		}
	}
}

// enterBrowser switches to the ROM browser and kicks off a rescan on a
// goroutine so a slow SD card never stalls the frame.
func (a *App) enterBrowser() {
	a.state = StateRomBrowser

	if a.scanCh != nil {
		return // scan already in flight
	}
	ch := make(chan scanResult, 1)
	a.scanCh = ch
	roots := a.romRoots
	go func() {
		entries, warnings := catalog.Scan(roots)
		ch <- scanResult{entries: entries, warnings: warnings}
	}()
}

// drainScan applies a finished catalog scan, if any.
func (a *App) drainScan() {
	if a.scanCh == nil {
		return
	}
	select {
	case res := <-a.scanCh:
		a.scanCh = nil
		a.browser.SetEntries(res.entries)
		for _, w := range res.warnings {
			log.Printf("Scan warning: %s: %v", w.Path, w.Err)
		}
		if len(res.warnings) > 0 {
			a.notification.ShowDefault(fmt.Sprintf("%d file(s) could not be read during the scan", len(res.warnings)))
		}
	default:
	}
}

// enterConfirm resolves the settings profile and preflights the engine
// for the chosen entry, then shows the confirmation scene.
func (a *App) enterConfirm(entry catalog.Entry) {
	settingsPath, err := a.resolver.Resolve(entry.Platform)
	if err == nil {
		err = a.engine.Preflight()
	}
	if err != nil {
		log.Printf("Setup check failed for %s: %v", entry.Path, err)
	}
	a.confirm.Prepare(entry, settingsPath, err)
	a.state = StateConfirmStart
}

// startJob hands the confirmed selection to the job manager. The entry
// comes from the confirm scene, not the browser: a rescan finishing
// while the confirmation is up may reorder the browser list, and the job
// must run on exactly the ROM the user was shown.
func (a *App) startJob() {
	entry := a.confirm.Entry()
	if entry.Path == "" {
		return
	}

	id, err := a.manager.Start(jobs.Request{
		RomPath:      entry.Path,
		SettingsPath: a.confirm.SettingsPath(),
	})
	if err != nil {
		log.Printf("Could not start job: %v", err)
		a.notification.ShowDefault("A job is already running")
		return
	}

	log.Printf("Job %s started for %s", id, entry.Path)
	a.state = StateRunningJob
}

// pollJob reads the job snapshot once per tick. Terminal states reached
// while the progress scene is up move to the result scene; terminal
// states reached after the user cancelled and left are acknowledged
// quietly with a toast.
func (a *App) pollJob() {
	status := a.manager.Poll()

	switch {
	case status.State == jobs.StateRunning:
		if a.state == StateRunningJob {
			a.running.SetStatus(status)
		}

	case status.State.Terminal():
		if a.state == StateRunningJob {
			a.result.SetStatus(status)
			a.state = StateJobResult
			a.logOutcome(status)
			if status.State == jobs.StateSucceeded {
				a.sounds.PlayChime()
			} else if status.State == jobs.StateFailed {
				a.sounds.PlayBuzz()
			}
		} else if a.state != StateJobResult {
			a.logOutcome(status)
			if err := a.manager.Acknowledge(); err == nil {
				a.notification.ShowDefault("Job finished: " + status.State.String())
			}
		}
	}
}

func (a *App) logOutcome(status jobs.Status) {
	switch status.State {
	case jobs.StateSucceeded:
		log.Printf("Job %s succeeded: %s", status.ID, status.OutputPath)
	case jobs.StateFailed:
		log.Printf("Job %s failed at %s: %s", status.ID, status.Stage, status.ErrorDetail)
	case jobs.StateCancelled:
		log.Printf("Job %s cancelled", status.ID)
	}
}

// Draw renders the active scene into the design canvas and presents it
// letterboxed on the physical screen.
func (a *App) Draw(screen *ebiten.Image) {
	canvas := a.renderer.Canvas()
	canvas.Fill(style.Background)

	drawHeader(canvas, appTitle, Version)

	var hints []ButtonHint
	switch a.state {
	case StateMainMenu:
		a.mainMenu.Draw(canvas)
		hints = a.mainMenu.Hints()
	case StateRomBrowser:
		a.browser.Draw(canvas)
		hints = a.browser.Hints()
	case StateConfirmStart:
		a.confirm.Draw(canvas)
		hints = a.confirm.Hints()
	case StateRunningJob:
		a.running.Draw(canvas)
		hints = a.running.Hints()
	case StateJobResult:
		a.result.Draw(canvas)
		hints = a.result.Hints()
	}
	drawFooter(canvas, hints)

	a.exitMenu.Draw(canvas)
	a.notification.Draw(canvas)

	screen.Fill(style.Background)
	a.renderer.Present(screen)
}

// Layout reports the physical resolution; scaling happens in Present.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
