package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

// ButtonHint is a single entry in the footer control legend.
type ButtonHint struct {
	Button string // e.g. "A", "B", "START"
	Label  string // e.g. "Select", "Back"
}

// drawHeader renders the fixed top bar: title on the left, version on
// the right, separated from the content by a border line.
func drawHeader(canvas *ebiten.Image, title, version string) {
	vector.DrawFilledRect(canvas, 0, 0, style.DesignWidth, style.HeaderHeight, style.Surface, false)
	vector.StrokeLine(canvas, 0, style.HeaderHeight, style.DesignWidth, style.HeaderHeight, 1, style.Border, false)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(style.DefaultPadding, style.HeaderHeight/2)
	textOpts.SecondaryAlign = text.AlignCenter
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(canvas, title, *style.LargeFontFace(), textOpts)

	if version != "" {
		textOpts = &text.DrawOptions{}
		textOpts.GeoM.Translate(style.DesignWidth-style.DefaultPadding, style.HeaderHeight/2)
		textOpts.PrimaryAlign = text.AlignEnd
		textOpts.SecondaryAlign = text.AlignCenter
		textOpts.ColorScale.ScaleWithColor(style.TextSecondary)
		text.Draw(canvas, "v"+version, *style.FontFace(), textOpts)
	}
}

// drawFooter renders the fixed bottom bar with the control legend for
// the active scene.
func drawFooter(canvas *ebiten.Image, hints []ButtonHint) {
	footerY := float32(style.DesignHeight - style.FooterHeight)
	vector.DrawFilledRect(canvas, 0, footerY, style.DesignWidth, style.FooterHeight, style.Surface, false)
	vector.StrokeLine(canvas, 0, footerY, style.DesignWidth, footerY, 1, style.Border, false)

	x := float64(style.DefaultPadding)
	centerY := float64(style.DesignHeight) - style.FooterHeight/2
	for _, hint := range hints {
		buttonText := "[" + hint.Button + "]"
		textOpts := &text.DrawOptions{}
		textOpts.GeoM.Translate(x, centerY)
		textOpts.SecondaryAlign = text.AlignCenter
		textOpts.ColorScale.ScaleWithColor(style.Text)
		text.Draw(canvas, buttonText, *style.FontFace(), textOpts)
		w, _ := text.Measure(buttonText, *style.FontFace(), 0)
		x += w + style.TinySpacing

		textOpts = &text.DrawOptions{}
		textOpts.GeoM.Translate(x, centerY)
		textOpts.SecondaryAlign = text.AlignCenter
		textOpts.ColorScale.ScaleWithColor(style.TextSecondary)
		text.Draw(canvas, hint.Label, *style.FontFace(), textOpts)
		w, _ = text.Measure(hint.Label, *style.FontFace(), 0)
		x += w + style.DefaultPadding
	}
}

// contentTop and contentBottom bound the scene area between the header
// and the footer.
const (
	contentTop    = style.HeaderHeight
	contentBottom = style.DesignHeight - style.FooterHeight
	contentHeight = contentBottom - contentTop
)
