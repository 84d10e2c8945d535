package ui

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/catalog"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/jobs"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/randomize"
)

// fakeRunner stands in for the randomize pipeline. It records the
// request and either returns immediately or blocks until cancelled.
type fakeRunner struct {
	mu      sync.Mutex
	block   bool          // wait for cancel before returning
	release chan struct{} // when set, wait here instead (ignores cancel)
	started chan struct{}
	lastReq randomize.Request
}

func (f *fakeRunner) Run(cancel <-chan struct{}, req randomize.Request) (randomize.Result, error) {
	f.mu.Lock()
	f.lastReq = req
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
		return randomize.Result{}, randomize.ErrCancelled
	}
	if f.block {
		<-cancel
		return randomize.Result{}, randomize.ErrCancelled
	}
	return randomize.Result{OutputPath: req.RomPath + ".out"}, nil
}

func (f *fakeRunner) request() randomize.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq
}

// newTestApp builds an app around a fake runner, without the rendering
// and audio surfaces the interactive-loop tests never touch.
func newTestApp(runner jobs.Runner) *App {
	return &App{
		manager:      jobs.NewManager(runner),
		notification: NewNotification(),
		sounds:       NewSoundBank(false),
	}
}

func waitForTerminal(t *testing.T, m *jobs.Manager) jobs.Status {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		status := m.Poll()
		if status.State.Terminal() {
			return status
		}
		if time.Now().After(deadline) {
			t.Fatalf("job did not reach a terminal state, still %v", status.State)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStartJobUsesConfirmedEntry(t *testing.T) {
	runner := &fakeRunner{block: true, started: make(chan struct{})}
	app := newTestApp(runner)

	red := catalog.Entry{Path: "/roms/red.gb", Platform: catalog.PlatformGB, DisplayName: "red"}
	app.browser.SetEntries([]catalog.Entry{red})
	app.confirm.Prepare(red, "/data/configs/gb.rnqs", nil)
	app.state = StateConfirmStart

	// A rescan finishing while the confirmation is up reorders the
	// browser list and moves a different platform under the cursor.
	emerald := catalog.Entry{Path: "/roms/emerald.gba", Platform: catalog.PlatformGBA, DisplayName: "emerald"}
	app.browser.SetEntries([]catalog.Entry{emerald, red})

	started := runner.started
	app.dispatch(EventConfirm)

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("job never started")
	}

	req := runner.request()
	if req.RomPath != "/roms/red.gb" {
		t.Errorf("job RomPath = %q, want the confirmed %q", req.RomPath, "/roms/red.gb")
	}
	if req.SettingsPath != "/data/configs/gb.rnqs" {
		t.Errorf("job SettingsPath = %q, want %q", req.SettingsPath, "/data/configs/gb.rnqs")
	}
	if app.state != StateRunningJob {
		t.Errorf("state = %v, want %v", app.state, StateRunningJob)
	}

	if err := app.manager.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	waitForTerminal(t, app.manager)
}

func TestQuitWaitsForRunningJob(t *testing.T) {
	runner := &fakeRunner{block: true, started: make(chan struct{})}
	app := newTestApp(runner)

	if _, err := app.manager.Start(jobs.Request{RomPath: "/roms/red.gb"}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	select {
	case <-runner.started:
	case <-time.After(2 * time.Second):
		t.Fatal("job never started")
	}

	app.quit = true

	// The first tick after quit cancels the job and keeps the loop
	// alive so the engine gets its termination grace.
	if err := app.Update(); err != nil {
		t.Fatalf("Update() during shutdown = %v, want nil", err)
	}
	if app.quitDeadline.IsZero() {
		t.Fatal("quit did not arm the shutdown deadline")
	}

	status := waitForTerminal(t, app.manager)
	if status.State != jobs.StateCancelled {
		t.Errorf("job state = %v, want %v", status.State, jobs.StateCancelled)
	}

	if err := app.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() after wind-down = %v, want ebiten.Termination", err)
	}
}

func TestQuitGivesUpAfterDeadline(t *testing.T) {
	runner := &fakeRunner{release: make(chan struct{}), started: make(chan struct{})}
	app := newTestApp(runner)

	if _, err := app.manager.Start(jobs.Request{RomPath: "/roms/red.gb"}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	select {
	case <-runner.started:
	case <-time.After(2 * time.Second):
		t.Fatal("job never started")
	}

	app.quit = true
	if err := app.Update(); err != nil {
		t.Fatalf("Update() during shutdown = %v, want nil", err)
	}

	// The job never winds down; exit happens anyway once the bounded
	// wait expires.
	app.quitDeadline = time.Now().Add(-time.Millisecond)
	if err := app.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() past deadline = %v, want ebiten.Termination", err)
	}

	close(runner.release)
	waitForTerminal(t, app.manager)
}

func TestScanWarningToastCount(t *testing.T) {
	app := newTestApp(&fakeRunner{})

	ch := make(chan scanResult, 1)
	ch <- scanResult{warnings: []catalog.Warning{
		{Path: "/roms/broken.zip", Err: errors.New("bad archive")},
		{Path: "/roms/locked.gb", Err: errors.New("permission denied")},
	}}
	app.scanCh = ch

	app.drainScan()

	app.notification.mu.Lock()
	msg := app.notification.message
	app.notification.mu.Unlock()
	if !strings.Contains(msg, "2") {
		t.Errorf("toast = %q, want the warning count in the message", msg)
	}
}
