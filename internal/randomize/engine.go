package randomize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"syscall"
)

// Engine describes how the external randomizer jar is invoked. The
// engine is an opaque collaborator: it is observed only through its exit
// status, its output stream, and the files it writes.
type Engine struct {
	JavaPath string
	JarPath  string
	HeapMB   int
}

// Preflight verifies the Java runtime and the engine jar exist. These
// are configuration errors surfaced before a job can start.
func (e Engine) Preflight() error {
	if e.JavaPath == "" {
		return fmt.Errorf("java runtime not configured")
	}
	if _, err := os.Stat(e.JavaPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("java runtime not found: %s", e.JavaPath)
		}
		return fmt.Errorf("cannot access java runtime %s: %w", e.JavaPath, err)
	}
	if e.JarPath == "" {
		return fmt.Errorf("randomizer jar not configured")
	}
	if _, err := os.Stat(e.JarPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("randomizer jar not found: %s", e.JarPath)
		}
		return fmt.Errorf("cannot access randomizer jar %s: %w", e.JarPath, err)
	}
	return nil
}

// Args builds the engine command line deterministically from the staged
// input, the settings profile, and the destination path. Argv only, no
// shell.
func (e Engine) Args(src, settings, dst string) []string {
	return []string{
		fmt.Sprintf("-Xmx%dM", e.HeapMB),
		"-jar", e.JarPath,
		"cli",
		"-i", src,
		"-o", dst,
		"-s", settings,
	}
}

// Handle is one started engine invocation. The pipeline worker is the
// only consumer; it waits on Done and controls termination.
type Handle interface {
	// Done is closed when the process has exited.
	Done() <-chan struct{}
	// Err returns the wait error. Only valid after Done is closed.
	Err() error
	// ExitCode returns the process exit code, or -1 if it has not
	// exited or was killed by a signal.
	ExitCode() int
	// Terminate requests a graceful stop (SIGTERM; immediate kill on
	// Windows where POSIX signals are unavailable).
	Terminate() error
	// Kill force-terminates the process.
	Kill() error
}

// Invoker starts one engine run. Engine is the production
// implementation; tests substitute a fake so no process is spawned.
type Invoker interface {
	Invoke(src, settings, dst string, output io.Writer) (Handle, error)
}

// Invoke spawns the engine process with stdout and stderr wired to
// output. The returned Handle owns the process for its lifetime.
func (e Engine) Invoke(src, settings, dst string, output io.Writer) (Handle, error) {
	cmd := exec.Command(e.JavaPath, e.Args(src, settings, dst)...)
	cmd.Stdout = output
	cmd.Stderr = output

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}

	h := &execHandle{cmd: cmd, done: make(chan struct{})}
	go func() {
		h.err = cmd.Wait()
		close(h.done)
	}()
	return h, nil
}

// execHandle wraps a started exec.Cmd. A single goroutine performs the
// blocking Wait and publishes completion by closing done.
type execHandle struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (h *execHandle) Done() <-chan struct{} {
	return h.done
}

func (h *execHandle) Err() error {
	return h.err
}

func (h *execHandle) ExitCode() int {
	if h.cmd.ProcessState == nil {
		return -1
	}
	return h.cmd.ProcessState.ExitCode()
}

func (h *execHandle) Terminate() error {
	if h.cmd.Process == nil {
		return nil
	}
	if runtime.GOOS == "windows" {
		return h.cmd.Process.Kill()
	}
	return h.cmd.Process.Signal(syscall.SIGTERM)
}

func (h *execHandle) Kill() error {
	if h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Kill()
}
