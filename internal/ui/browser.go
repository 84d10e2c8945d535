package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/catalog"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

// BrowserAction is the outcome of a browser event.
type BrowserAction int

const (
	BrowserNone BrowserAction = iota
	BrowserSelected
	BrowserBack
)

// visibleRows is how many list rows fit in the content area.
const visibleRows = contentHeight / style.ListRowHeight

// BrowserScene lists the scanned ROM entries with a scroll window.
type BrowserScene struct {
	entries       []catalog.Entry
	selectedIndex int
	scrollOffset  int
}

// SetEntries replaces the listing and clamps the selection so it stays
// valid when a rescan shrinks the catalog.
func (s *BrowserScene) SetEntries(entries []catalog.Entry) {
	s.entries = entries
	if s.selectedIndex >= len(entries) {
		s.selectedIndex = len(entries) - 1
	}
	if s.selectedIndex < 0 {
		s.selectedIndex = 0
	}
	s.clampScroll()
}

// Selected returns the highlighted entry, or false when the catalog is
// empty.
func (s *BrowserScene) Selected() (catalog.Entry, bool) {
	if len(s.entries) == 0 {
		return catalog.Entry{}, false
	}
	return s.entries[s.selectedIndex], true
}

// Handle processes one navigation event.
func (s *BrowserScene) Handle(e Event) BrowserAction {
	switch e {
	case EventUp:
		if s.selectedIndex > 0 {
			s.selectedIndex--
		}
	case EventDown:
		if s.selectedIndex < len(s.entries)-1 {
			s.selectedIndex++
		}
	case EventLeft:
		// Page up
		s.selectedIndex -= visibleRows
		if s.selectedIndex < 0 {
			s.selectedIndex = 0
		}
	case EventRight:
		// Page down
		s.selectedIndex += visibleRows
		if s.selectedIndex > len(s.entries)-1 {
			s.selectedIndex = len(s.entries) - 1
		}
		if s.selectedIndex < 0 {
			s.selectedIndex = 0
		}
	case EventConfirm:
		if len(s.entries) > 0 {
			return BrowserSelected
		}
	case EventBack:
		return BrowserBack
	}
	s.clampScroll()
	return BrowserNone
}

// clampScroll keeps the selection inside the visible window.
func (s *BrowserScene) clampScroll() {
	if s.selectedIndex < s.scrollOffset {
		s.scrollOffset = s.selectedIndex
	}
	if s.selectedIndex >= s.scrollOffset+visibleRows {
		s.scrollOffset = s.selectedIndex - visibleRows + 1
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

// Hints returns the footer legend for this scene.
func (s *BrowserScene) Hints() []ButtonHint {
	return []ButtonHint{
		{"A", "Select"},
		{"B", "Back"},
		{"</>", "Page"},
	}
}

// Draw renders the entry list with the selection highlighted and a
// platform tag on the right of each row.
func (s *BrowserScene) Draw(canvas *ebiten.Image) {
	if len(s.entries) == 0 {
		textOpts := &text.DrawOptions{}
		textOpts.GeoM.Translate(style.DesignWidth/2, style.DesignHeight/2)
		textOpts.PrimaryAlign = text.AlignCenter
		textOpts.SecondaryAlign = text.AlignCenter
		textOpts.ColorScale.ScaleWithColor(style.TextSecondary)
		text.Draw(canvas, "No ROMs found in the configured directories", *style.FontFace(), textOpts)
		return
	}

	end := s.scrollOffset + visibleRows
	if end > len(s.entries) {
		end = len(s.entries)
	}

	for row, i := 0, s.scrollOffset; i < end; row, i = row+1, i+1 {
		entry := s.entries[i]
		rowY := contentTop + row*style.ListRowHeight

		if i == s.selectedIndex {
			vector.DrawFilledRect(canvas, 0, float32(rowY), style.DesignWidth, style.ListRowHeight, style.Surface, false)
		}

		tag := entry.Platform.String()
		if entry.Archived {
			tag += " zip"
		}
		tagWidth, _ := text.Measure(tag, *style.FontFace(), 0)

		nameMaxWidth := float64(style.DesignWidth) - float64(style.DefaultPadding)*2 - tagWidth - style.SmallSpacing
		name, _ := style.TruncateToWidth(entry.DisplayName, *style.FontFace(), nameMaxWidth)

		textOpts := &text.DrawOptions{}
		textOpts.GeoM.Translate(style.DefaultPadding, float64(rowY)+style.ListRowHeight/2)
		textOpts.SecondaryAlign = text.AlignCenter
		textOpts.ColorScale.ScaleWithColor(style.Text)
		text.Draw(canvas, name, *style.FontFace(), textOpts)

		textOpts = &text.DrawOptions{}
		textOpts.GeoM.Translate(style.DesignWidth-style.DefaultPadding, float64(rowY)+style.ListRowHeight/2)
		textOpts.PrimaryAlign = text.AlignEnd
		textOpts.SecondaryAlign = text.AlignCenter
		textOpts.ColorScale.ScaleWithColor(style.TextSecondary)
		text.Draw(canvas, tag, *style.FontFace(), textOpts)
	}

	// Scroll indicator when the list does not fit
	if len(s.entries) > visibleRows {
		trackH := float32(contentHeight)
		thumbH := trackH * float32(visibleRows) / float32(len(s.entries))
		thumbY := float32(contentTop) + trackH*float32(s.scrollOffset)/float32(len(s.entries))
		vector.DrawFilledRect(canvas, style.DesignWidth-4, thumbY, 3, thumbH, style.Border, false)
	}
}
