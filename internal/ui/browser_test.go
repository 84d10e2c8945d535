package ui

import (
	"fmt"
	"testing"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/catalog"
)

func makeEntries(n int) []catalog.Entry {
	entries := make([]catalog.Entry, n)
	for i := range entries {
		entries[i] = catalog.Entry{
			Path:        fmt.Sprintf("/roms/game%02d.gb", i),
			Platform:    catalog.PlatformGB,
			DisplayName: fmt.Sprintf("game%02d", i),
		}
	}
	return entries
}

func TestBrowserSelectionBounds(t *testing.T) {
	var s BrowserScene
	s.SetEntries(makeEntries(3))

	// Up at the top stays at the top
	s.Handle(EventUp)
	if s.selectedIndex != 0 {
		t.Errorf("selectedIndex = %d, want 0", s.selectedIndex)
	}

	// Down clamps at the last entry
	for i := 0; i < 10; i++ {
		s.Handle(EventDown)
	}
	if s.selectedIndex != 2 {
		t.Errorf("selectedIndex = %d, want 2", s.selectedIndex)
	}
}

func TestBrowserSelectReturnsEntry(t *testing.T) {
	var s BrowserScene
	s.SetEntries(makeEntries(3))
	s.Handle(EventDown)

	if got := s.Handle(EventConfirm); got != BrowserSelected {
		t.Fatalf("Handle(Confirm) = %v, want BrowserSelected", got)
	}

	entry, ok := s.Selected()
	if !ok {
		t.Fatal("Selected() returned no entry")
	}
	if entry.Path != "/roms/game01.gb" {
		t.Errorf("Selected().Path = %q, want %q", entry.Path, "/roms/game01.gb")
	}
}

func TestBrowserEmptyCatalog(t *testing.T) {
	var s BrowserScene
	s.SetEntries(nil)

	if got := s.Handle(EventConfirm); got != BrowserNone {
		t.Errorf("Handle(Confirm) on empty = %v, want BrowserNone", got)
	}
	if _, ok := s.Selected(); ok {
		t.Error("Selected() on empty catalog returned ok")
	}
	if got := s.Handle(EventBack); got != BrowserBack {
		t.Errorf("Handle(Back) = %v, want BrowserBack", got)
	}
}

func TestBrowserRescanClampsSelection(t *testing.T) {
	var s BrowserScene
	s.SetEntries(makeEntries(10))
	for i := 0; i < 9; i++ {
		s.Handle(EventDown)
	}

	// Rescan shrinks the catalog below the selection
	s.SetEntries(makeEntries(4))
	if s.selectedIndex != 3 {
		t.Errorf("selectedIndex after shrink = %d, want 3", s.selectedIndex)
	}

	s.SetEntries(nil)
	if s.selectedIndex != 0 {
		t.Errorf("selectedIndex after empty rescan = %d, want 0", s.selectedIndex)
	}
}

func TestBrowserScrollFollowsSelection(t *testing.T) {
	var s BrowserScene
	s.SetEntries(makeEntries(visibleRows * 3))

	// Walk below the window: the offset tracks the selection
	for i := 0; i < visibleRows+2; i++ {
		s.Handle(EventDown)
	}
	if want := visibleRows + 2 - (visibleRows - 1); s.scrollOffset != want {
		t.Errorf("scrollOffset = %d, want %d", s.scrollOffset, want)
	}

	// Walking back above the window pulls the offset up
	for i := 0; i < visibleRows+2; i++ {
		s.Handle(EventUp)
	}
	if s.scrollOffset != 0 {
		t.Errorf("scrollOffset after return = %d, want 0", s.scrollOffset)
	}
}

func TestBrowserPaging(t *testing.T) {
	var s BrowserScene
	s.SetEntries(makeEntries(visibleRows * 2))

	s.Handle(EventRight)
	if s.selectedIndex != visibleRows {
		t.Errorf("selectedIndex after page down = %d, want %d", s.selectedIndex, visibleRows)
	}

	s.Handle(EventLeft)
	if s.selectedIndex != 0 {
		t.Errorf("selectedIndex after page up = %d, want 0", s.selectedIndex)
	}

	// Paging past the end clamps
	s.Handle(EventRight)
	s.Handle(EventRight)
	s.Handle(EventRight)
	if want := visibleRows*2 - 1; s.selectedIndex != want {
		t.Errorf("selectedIndex after over-page = %d, want %d", s.selectedIndex, want)
	}
}
