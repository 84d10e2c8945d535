package randomize

import (
	"strings"
	"sync"
)

// tailLimit is how many recent engine output lines are retained for the
// progress display and failure detail.
const tailLimit = 20

// tailBuffer is an io.Writer that keeps the most recent complete lines
// written to it. The engine process writes concurrently with the worker
// reading, so all access is mutex-guarded.
type tailBuffer struct {
	mu      sync.Mutex
	lines   []string
	partial strings.Builder
	onLine  func(line string)
}

func newTailBuffer(onLine func(line string)) *tailBuffer {
	return &tailBuffer{onLine: onLine}
}

// Write splits incoming bytes into lines. Completed lines are appended
// to the tail and forwarded to the onLine callback outside the lock.
func (t *tailBuffer) Write(p []byte) (int, error) {
	var completed []string

	t.mu.Lock()
	for _, b := range p {
		if b == '\n' {
			line := strings.TrimRight(t.partial.String(), "\r")
			t.partial.Reset()
			if line == "" {
				continue
			}
			t.lines = append(t.lines, line)
			if len(t.lines) > tailLimit {
				t.lines = t.lines[len(t.lines)-tailLimit:]
			}
			completed = append(completed, line)
			continue
		}
		t.partial.WriteByte(b)
	}
	t.mu.Unlock()

	if t.onLine != nil {
		for _, line := range completed {
			t.onLine(line)
		}
	}
	return len(p), nil
}

// Lines returns a copy of the retained tail.
func (t *tailBuffer) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	lines := make([]string, len(t.lines))
	copy(lines, t.lines)
	return lines
}
