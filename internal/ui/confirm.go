package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/catalog"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

// ConfirmAction is the outcome of a confirm-scene event.
type ConfirmAction int

const (
	ConfirmNone ConfirmAction = iota
	ConfirmStart
	ConfirmBack
)

// ConfirmScene shows the selected ROM with its resolved settings
// profile and asks for confirmation before starting a job. When the
// setup check fails (missing profile, missing Java or engine jar) the
// problem is shown and starting is refused.
type ConfirmScene struct {
	entry        catalog.Entry
	settingsPath string
	setupErr     error
}

// Prepare installs the selection and the outcome of the readiness
// checks performed on entry. A non-nil err disables Confirm.
func (s *ConfirmScene) Prepare(entry catalog.Entry, settingsPath string, err error) {
	s.entry = entry
	s.settingsPath = settingsPath
	s.setupErr = err
}

// Entry returns the selection captured at Prepare time. Job starts use
// this snapshot so a concurrent rescan can never swap the ROM out from
// under the confirmation.
func (s *ConfirmScene) Entry() catalog.Entry {
	return s.entry
}

// SettingsPath returns the resolved profile path.
func (s *ConfirmScene) SettingsPath() string {
	return s.settingsPath
}

// Ready reports whether a job may be started from this scene.
func (s *ConfirmScene) Ready() bool {
	return s.setupErr == nil
}

// Handle processes one navigation event. Confirm is ignored while the
// setup check is failing.
func (s *ConfirmScene) Handle(e Event) ConfirmAction {
	switch e {
	case EventConfirm:
		if s.setupErr == nil {
			return ConfirmStart
		}
	case EventBack:
		return ConfirmBack
	}
	return ConfirmNone
}

// Hints returns the footer legend for this scene.
func (s *ConfirmScene) Hints() []ButtonHint {
	if s.setupErr != nil {
		return []ButtonHint{{"B", "Back"}}
	}
	return []ButtonHint{
		{"A", "Start"},
		{"B", "Back"},
	}
}

// Draw renders the confirmation details.
func (s *ConfirmScene) Draw(canvas *ebiten.Image) {
	y := float64(contentTop + style.DefaultPadding*2)
	maxWidth := float64(style.DesignWidth) - style.DefaultPadding*2

	drawLabeled := func(label, value string, valueColor color.Color) {
		textOpts := &text.DrawOptions{}
		textOpts.GeoM.Translate(style.DefaultPadding, y)
		textOpts.ColorScale.ScaleWithColor(style.TextSecondary)
		text.Draw(canvas, label, *style.FontFace(), textOpts)
		y += style.ListRowHeight - style.SmallSpacing

		value, _ = style.TruncateToWidth(value, *style.FontFace(), maxWidth)
		textOpts = &text.DrawOptions{}
		textOpts.GeoM.Translate(style.DefaultPadding, y)
		textOpts.ColorScale.ScaleWithColor(valueColor)
		text.Draw(canvas, value, *style.FontFace(), textOpts)
		y += style.ListRowHeight + style.SmallSpacing
	}

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(style.DesignWidth/2, y)
	textOpts.PrimaryAlign = text.AlignCenter
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(canvas, "Randomize this ROM?", *style.LargeFontFace(), textOpts)
	y += style.ListRowHeight * 2

	drawLabeled("ROM", s.entry.DisplayName, style.Text)

	pathText, _ := style.TruncateStart(s.entry.Path, 72)
	drawLabeled("Path", pathText, style.Text)
	drawLabeled("Platform", s.entry.Platform.String(), style.Text)

	if s.setupErr != nil {
		drawLabeled("Problem", s.setupErr.Error(), style.Error)

		textOpts = &text.DrawOptions{}
		textOpts.GeoM.Translate(style.DefaultPadding, y)
		textOpts.ColorScale.ScaleWithColor(style.TextSecondary)
		text.Draw(canvas, "Fix the configuration and try again.", *style.FontFace(), textOpts)
		return
	}

	profileText, _ := style.TruncateStart(s.settingsPath, 72)
	drawLabeled("Settings profile", profileText, style.Text)
	drawLabeled("Output", "A new file will be written beside the original.", style.Text)
}
