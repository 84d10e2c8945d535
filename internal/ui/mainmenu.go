package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

// MainMenuAction is the outcome of a main-menu event.
type MainMenuAction int

const (
	MainMenuNone MainMenuAction = iota
	MainMenuRandomize
	MainMenuExit
)

var mainMenuOptions = []string{"Randomize a ROM", "Exit"}

// MainMenuScene is the landing screen.
type MainMenuScene struct {
	selectedIndex int
}

// Handle processes one navigation event and returns the resulting
// action. Pure so it can be driven directly in tests.
func (s *MainMenuScene) Handle(e Event) MainMenuAction {
	switch e {
	case EventUp:
		s.selectedIndex--
		if s.selectedIndex < 0 {
			s.selectedIndex = len(mainMenuOptions) - 1
		}
	case EventDown:
		s.selectedIndex++
		if s.selectedIndex >= len(mainMenuOptions) {
			s.selectedIndex = 0
		}
	case EventConfirm:
		if s.selectedIndex == 0 {
			return MainMenuRandomize
		}
		return MainMenuExit
	case EventBack:
		return MainMenuExit
	}
	return MainMenuNone
}

// Hints returns the footer legend for this scene.
func (s *MainMenuScene) Hints() []ButtonHint {
	return []ButtonHint{
		{"A", "Select"},
		{"B", "Exit"},
	}
}

// Draw renders the menu options centered in the content area.
func (s *MainMenuScene) Draw(canvas *ebiten.Image) {
	const btnWidth = 280
	const btnHeight = 48
	const btnSpacing = style.DefaultPadding

	totalHeight := len(mainMenuOptions)*btnHeight + (len(mainMenuOptions)-1)*btnSpacing
	startY := contentTop + (contentHeight-totalHeight)/2
	btnX := (style.DesignWidth - btnWidth) / 2

	for i, label := range mainMenuOptions {
		btnY := startY + i*(btnHeight+btnSpacing)

		bg := style.Surface
		if i == s.selectedIndex {
			bg = style.Border
		}
		vector.DrawFilledRect(canvas, float32(btnX), float32(btnY), btnWidth, btnHeight, bg, false)
		vector.StrokeRect(canvas, float32(btnX), float32(btnY), btnWidth, btnHeight, 1, style.Border, false)

		textOpts := &text.DrawOptions{}
		textOpts.GeoM.Translate(float64(btnX+btnWidth/2), float64(btnY+btnHeight/2))
		textOpts.PrimaryAlign = text.AlignCenter
		textOpts.SecondaryAlign = text.AlignCenter
		textOpts.ColorScale.ScaleWithColor(style.Text)
		text.Draw(canvas, label, *style.FontFace(), textOpts)
	}
}
