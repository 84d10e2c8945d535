package randomize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/catalog"
)

// Pipeline stage names, in execution order. Stages are reported through
// Request.OnStage and carried on PipelineError for the result screen.
const (
	StageStage   = "staging"
	StageLaunch  = "launching"
	StageAwait   = "randomizing"
	StageCollect = "collecting"
	StageDeliver = "delivering"
)

// ErrCancelled is returned by Run when the job was cancelled by the
// user. Cancellation is not a failure.
var ErrCancelled = errors.New("randomization cancelled")

// gracePeriod is how long a terminated engine gets to exit before it is
// force-killed. Kept short so the UI stays responsive after a cancel.
const gracePeriod = 2 * time.Second

// Request describes one randomization run.
type Request struct {
	RomPath      string // catalog entry path; raw ROM or archive
	SettingsPath string // resolved .rnqs profile
	OnStage      func(stage string)
	OnLine       func(line string) // engine output lines, best-effort progress
}

// Result holds the delivered output path on success.
type Result struct {
	OutputPath string
}

// PipelineError is a stage-aware failure carrying the captured tail of
// engine output for the result screen.
type PipelineError struct {
	Stage   string
	Message string
	Tail    []string
	Err     error
}

func (e *PipelineError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Detail formats the failure for display: the stage message followed by
// the retained engine output.
func (e *PipelineError) Detail() string {
	if e == nil {
		return ""
	}
	if len(e.Tail) == 0 {
		return e.Error()
	}
	return e.Error() + "\n" + strings.Join(e.Tail, "\n")
}

// OutputPath returns the delivered filename for a source ROM randomized
// at time t: the timestamp and the original extension appended to the
// full original path. The name keeps the original extension even when
// the engine emits a different one (a .gb input can produce a .gbc).
func OutputPath(src string, t time.Time) string {
	ext := strings.TrimPrefix(filepath.Ext(src), ".")
	return fmt.Sprintf("%s.randomized.%s.%s", src, t.Format("20060102150405"), ext)
}

// Pipeline stages one ROM into a private temp directory, runs the engine
// against the staged copy, and delivers the produced file beside the
// source. The source file is only ever opened for reading.
type Pipeline struct {
	engine Invoker
	grace  time.Duration

	// OS seams, injectable for tests
	now       func() time.Time
	mkdirTemp func(dir, pattern string) (string, error)
	removeAll func(path string) error
	remove    func(path string) error
	readDir   func(name string) ([]os.DirEntry, error)
	loadRom   func(path string) ([]byte, string, error)
	writeFile func(name string, data []byte, perm os.FileMode) error
	copyFile  func(src, dst string) error
}

// NewPipeline constructs the production pipeline around an engine.
func NewPipeline(engine Invoker) *Pipeline {
	return &Pipeline{
		engine:    engine,
		grace:     gracePeriod,
		now:       time.Now,
		mkdirTemp: os.MkdirTemp,
		removeAll: os.RemoveAll,
		remove:    os.Remove,
		readDir:   os.ReadDir,
		loadRom:   catalog.LoadRom,
		writeFile: os.WriteFile,
		copyFile:  copyFile,
	}
}

// Run executes the full pipeline. It blocks until the engine exits or
// cancellation completes, so it must only be called from a worker
// goroutine. Closing cancel requests termination: SIGTERM first, then a
// forced kill after the grace period.
func (p *Pipeline) Run(cancel <-chan struct{}, req Request) (Result, error) {
	started := p.now()

	emitStage(req.OnStage, StageStage)
	tempDir, err := p.mkdirTemp("", "randomizer-*")
	if err != nil {
		return Result{}, &PipelineError{
			Stage:   StageStage,
			Message: "failed to create staging directory",
			Err:     err,
		}
	}
	defer func() {
		if err := p.removeAll(tempDir); err != nil {
			// Staging dir leaks are not worth failing a finished job over
			_ = err
		}
	}()

	// Copy the source ROM (or extract it from its archive) into the
	// staging dir. The engine only ever sees this copy.
	data, romName, err := p.loadRom(req.RomPath)
	if err != nil {
		return Result{}, &PipelineError{
			Stage:   StageStage,
			Message: fmt.Sprintf("cannot read ROM: %s", req.RomPath),
			Err:     err,
		}
	}
	stagedName := "src" + strings.ToLower(filepath.Ext(romName))
	stagedSrc := filepath.Join(tempDir, stagedName)
	if err := p.writeFile(stagedSrc, data, 0644); err != nil {
		return Result{}, &PipelineError{
			Stage:   StageStage,
			Message: "failed to stage ROM copy",
			Err:     err,
		}
	}

	if cancelRequested(cancel) {
		return Result{}, ErrCancelled
	}

	emitStage(req.OnStage, StageLaunch)
	tail := newTailBuffer(req.OnLine)
	stagedDst := filepath.Join(tempDir, "randomized"+strings.ToLower(filepath.Ext(romName)))
	handle, err := p.engine.Invoke(stagedSrc, req.SettingsPath, stagedDst, tail)
	if err != nil {
		return Result{}, &PipelineError{
			Stage:   StageLaunch,
			Message: "engine failed to start",
			Err:     err,
		}
	}

	emitStage(req.OnStage, StageAwait)
	select {
	case <-handle.Done():
	case <-cancel:
		p.terminate(handle)
		return Result{}, ErrCancelled
	}

	if waitErr := handle.Err(); waitErr != nil || handle.ExitCode() != 0 {
		return Result{}, &PipelineError{
			Stage:   StageAwait,
			Message: fmt.Sprintf("engine exited with status %d", handle.ExitCode()),
			Tail:    tail.Lines(),
			Err:     waitErr,
		}
	}

	// The engine may write a different extension than it was asked for
	// (.gb input produces a .gbc output, for example), so the produced
	// file is found by scanning the staging dir for the single new file
	// rather than trusting the requested name.
	emitStage(req.OnStage, StageCollect)
	produced, err := p.collectProduced(tempDir, stagedName)
	if err != nil {
		return Result{}, &PipelineError{
			Stage:   StageCollect,
			Message: err.Error(),
			Tail:    tail.Lines(),
			Err:     err,
		}
	}

	// A cancel landing after the engine already exited still wins:
	// nothing is delivered once the user has asked to stop.
	if cancelRequested(cancel) {
		return Result{}, ErrCancelled
	}

	emitStage(req.OnStage, StageDeliver)
	finalPath := OutputPath(req.RomPath, started)
	if err := p.copyFile(produced, finalPath); err != nil {
		// Never leave a partially written output beside the source
		_ = p.remove(finalPath)
		return Result{}, &PipelineError{
			Stage:   StageDeliver,
			Message: fmt.Sprintf("failed to write output: %s", finalPath),
			Err:     err,
		}
	}

	return Result{OutputPath: finalPath}, nil
}

// terminate stops the engine process: graceful first, forced after the
// grace period. Blocks until the process has exited.
func (p *Pipeline) terminate(handle Handle) {
	_ = handle.Terminate()
	select {
	case <-handle.Done():
	case <-time.After(p.grace):
		_ = handle.Kill()
		<-handle.Done()
	}
}

// collectProduced finds the single file the engine wrote into the
// staging dir. Zero or multiple new files is a failure.
func (p *Pipeline) collectProduced(tempDir, stagedName string) (string, error) {
	entries, err := p.readDir(tempDir)
	if err != nil {
		return "", fmt.Errorf("cannot read staging directory: %w", err)
	}

	var produced []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == stagedName {
			continue
		}
		produced = append(produced, filepath.Join(tempDir, entry.Name()))
	}

	switch len(produced) {
	case 1:
		return produced[0], nil
	case 0:
		return "", fmt.Errorf("engine exited cleanly but produced no output file")
	default:
		return "", fmt.Errorf("expected one produced file, found %d", len(produced))
	}
}

func cancelRequested(cancel <-chan struct{}) bool {
	select {
	case <-cancel:
		return true
	default:
		return false
	}
}

func emitStage(cb func(stage string), stage string) {
	if cb != nil {
		cb(stage)
	}
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
