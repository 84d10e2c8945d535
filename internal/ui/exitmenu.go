package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

// ExitMenuAction is the outcome of an exit-menu event.
type ExitMenuAction int

const (
	ExitMenuNone ExitMenuAction = iota
	ExitMenuResume
	ExitMenuQuit
)

var exitMenuOptions = []string{"Resume", "Quit"}

// ExitMenu is the modal overlay opened with the Menu button. While
// visible it captures all navigation events.
type ExitMenu struct {
	visible       bool
	selectedIndex int
}

// Show opens the menu with Resume selected.
func (m *ExitMenu) Show() {
	m.visible = true
	m.selectedIndex = 0
}

// Hide closes the menu.
func (m *ExitMenu) Hide() {
	m.visible = false
}

// IsVisible returns whether the menu is open.
func (m *ExitMenu) IsVisible() bool {
	return m.visible
}

// Handle processes one navigation event while the menu is open. Back
// and Menu both resume, regardless of selection.
func (m *ExitMenu) Handle(e Event) ExitMenuAction {
	switch e {
	case EventUp:
		m.selectedIndex--
		if m.selectedIndex < 0 {
			m.selectedIndex = len(exitMenuOptions) - 1
		}
	case EventDown:
		m.selectedIndex++
		if m.selectedIndex >= len(exitMenuOptions) {
			m.selectedIndex = 0
		}
	case EventConfirm:
		m.Hide()
		if m.selectedIndex == 0 {
			return ExitMenuResume
		}
		return ExitMenuQuit
	case EventBack, EventMenu:
		m.Hide()
		return ExitMenuResume
	}
	return ExitMenuNone
}

// Draw renders the dim overlay and the centered panel.
func (m *ExitMenu) Draw(canvas *ebiten.Image) {
	if !m.visible {
		return
	}

	vector.DrawFilledRect(canvas, 0, 0, style.DesignWidth, style.DesignHeight, style.DimOverlay, false)

	const btnSpacing = style.ExitMenuBtnHeight / 4
	const padding = style.ExitMenuBtnHeight / 2
	panelH := padding*2 + len(exitMenuOptions)*style.ExitMenuBtnHeight + (len(exitMenuOptions)-1)*btnSpacing
	panelX := (style.DesignWidth - style.ExitMenuWidth) / 2
	panelY := (style.DesignHeight - panelH) / 2

	vector.DrawFilledRect(canvas, float32(panelX), float32(panelY), style.ExitMenuWidth, float32(panelH), style.Surface, false)
	vector.StrokeRect(canvas, float32(panelX), float32(panelY), style.ExitMenuWidth, float32(panelH), 1, style.Border, false)

	btnW := style.ExitMenuWidth * 80 / 100
	btnX := panelX + (style.ExitMenuWidth-btnW)/2
	btnY := panelY + padding

	for i, label := range exitMenuOptions {
		bg := style.Background
		if i == m.selectedIndex {
			bg = style.Border
		}
		vector.DrawFilledRect(canvas, float32(btnX), float32(btnY), float32(btnW), style.ExitMenuBtnHeight, bg, false)
		vector.StrokeRect(canvas, float32(btnX), float32(btnY), float32(btnW), style.ExitMenuBtnHeight, 1, style.Border, false)

		textOpts := &text.DrawOptions{}
		textOpts.GeoM.Translate(float64(btnX+btnW/2), float64(btnY+style.ExitMenuBtnHeight/2))
		textOpts.PrimaryAlign = text.AlignCenter
		textOpts.SecondaryAlign = text.AlignCenter
		textOpts.ColorScale.ScaleWithColor(style.Text)
		text.Draw(canvas, label, *style.FontFace(), textOpts)

		btnY += style.ExitMenuBtnHeight + btnSpacing
	}
}
