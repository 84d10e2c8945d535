package ui

import (
	"testing"
	"time"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

func TestResolveDirectionFiresOnPress(t *testing.T) {
	im := NewInputManager()
	now := time.Unix(100, 0)

	if got := im.resolveDirection(EventDown, now); got != EventDown {
		t.Errorf("press = %v, want %v", got, EventDown)
	}
}

func TestResolveDirectionSuppressedBeforeHoldThreshold(t *testing.T) {
	im := NewInputManager()
	now := time.Unix(100, 0)

	im.resolveDirection(EventDown, now)

	// Held but still inside the initial delay: no repeat
	for _, offset := range []time.Duration{50 * time.Millisecond, 200 * time.Millisecond, style.NavInitialDelay - time.Millisecond} {
		if got := im.resolveDirection(EventDown, now.Add(offset)); got != EventNone {
			t.Errorf("at +%v got %v, want EventNone", offset, got)
		}
	}
}

func TestResolveDirectionRepeatsAfterHold(t *testing.T) {
	im := NewInputManager()
	now := time.Unix(100, 0)

	im.resolveDirection(EventDown, now)

	// Past the hold threshold the direction repeats
	at := now.Add(style.NavInitialDelay)
	if got := im.resolveDirection(EventDown, at); got != EventDown {
		t.Fatalf("first repeat = %v, want %v", got, EventDown)
	}

	// Immediately after a repeat, the interval gate blocks
	if got := im.resolveDirection(EventDown, at.Add(10*time.Millisecond)); got != EventNone {
		t.Errorf("inside interval got %v, want EventNone", got)
	}

	// The next repeat comes one (accelerated) interval later
	at = at.Add(style.NavStartInterval - style.NavAcceleration)
	if got := im.resolveDirection(EventDown, at); got != EventDown {
		t.Errorf("second repeat = %v, want %v", got, EventDown)
	}
}

func TestResolveDirectionAccelerationFloor(t *testing.T) {
	im := NewInputManager()
	now := time.Unix(100, 0)

	im.resolveDirection(EventDown, now)
	at := now.Add(style.NavInitialDelay)

	// Drive enough repeats to hit the floor
	for i := 0; i < 20; i++ {
		im.resolveDirection(EventDown, at)
		at = at.Add(time.Second)
	}

	if im.repeatDelay != style.NavMinInterval {
		t.Errorf("repeatDelay = %v, want floor %v", im.repeatDelay, style.NavMinInterval)
	}
}

func TestResolveDirectionReleaseResets(t *testing.T) {
	im := NewInputManager()
	now := time.Unix(100, 0)

	im.resolveDirection(EventDown, now)
	im.resolveDirection(EventNone, now.Add(time.Second))

	// A fresh press fires immediately even right after the release
	if got := im.resolveDirection(EventDown, now.Add(time.Second+time.Millisecond)); got != EventDown {
		t.Errorf("press after release = %v, want %v", got, EventDown)
	}
	if im.repeatDelay != style.NavStartInterval {
		t.Errorf("repeatDelay = %v, want reset to %v", im.repeatDelay, style.NavStartInterval)
	}
}

func TestResolveDirectionChangeFiresImmediately(t *testing.T) {
	im := NewInputManager()
	now := time.Unix(100, 0)

	im.resolveDirection(EventDown, now)

	// Switching direction mid-hold fires right away
	if got := im.resolveDirection(EventUp, now.Add(50*time.Millisecond)); got != EventUp {
		t.Errorf("direction change = %v, want %v", got, EventUp)
	}
}
