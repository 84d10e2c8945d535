package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/jobs"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

// ResultAction is the outcome of a result-scene event.
type ResultAction int

const (
	ResultNone ResultAction = iota
	ResultDismiss
)

// ResultScene shows the terminal outcome of a job until the user
// acknowledges it.
type ResultScene struct {
	status jobs.Status
}

// SetStatus installs the terminal job snapshot to display.
func (s *ResultScene) SetStatus(status jobs.Status) {
	s.status = status
}

// Handle processes one navigation event. Confirm or Back dismisses the
// result and acknowledges the job.
func (s *ResultScene) Handle(e Event) ResultAction {
	if e == EventConfirm || e == EventBack {
		return ResultDismiss
	}
	return ResultNone
}

// Hints returns the footer legend for this scene.
func (s *ResultScene) Hints() []ButtonHint {
	return []ButtonHint{{"A", "Continue"}}
}

// Draw renders the outcome: green success with the output path, red
// failure with the error detail, or a cancellation notice.
func (s *ResultScene) Draw(canvas *ebiten.Image) {
	y := float64(contentTop + style.DefaultPadding*3)
	maxWidth := float64(style.DesignWidth) - style.DefaultPadding*2

	drawCentered := func(msg string, face text.Face, clr color.Color) {
		msg, _ = style.TruncateToWidth(msg, face, maxWidth)
		textOpts := &text.DrawOptions{}
		textOpts.GeoM.Translate(style.DesignWidth/2, y)
		textOpts.PrimaryAlign = text.AlignCenter
		textOpts.ColorScale.ScaleWithColor(clr)
		text.Draw(canvas, msg, face, textOpts)
		y += style.ListRowHeight + style.SmallSpacing
	}

	switch s.status.State {
	case jobs.StateSucceeded:
		drawCentered("Randomization complete", *style.LargeFontFace(), style.Success)
		y += style.DefaultPadding
		drawCentered("Saved as:", *style.FontFace(), style.TextSecondary)
		outPath, _ := style.TruncateStart(s.status.OutputPath, 80)
		drawCentered(outPath, *style.FontFace(), style.Text)
		y += style.DefaultPadding
		drawCentered("The original ROM was not modified.", *style.FontFace(), style.TextSecondary)

	case jobs.StateFailed:
		drawCentered("Randomization failed", *style.LargeFontFace(), style.Error)
		y += style.DefaultPadding
		for _, line := range splitDetail(s.status.ErrorDetail) {
			drawCentered(line, *style.FontFace(), style.Text)
		}

	case jobs.StateCancelled:
		drawCentered("Randomization cancelled", *style.LargeFontFace(), style.Alert)
		y += style.DefaultPadding
		drawCentered("No output was written.", *style.FontFace(), style.TextSecondary)
	}
}

// splitDetail breaks a multi-line error detail into display lines,
// keeping at most enough to fit the content area.
func splitDetail(detail string) []string {
	const maxLines = 10
	var lines []string
	start := 0
	for i := 0; i <= len(detail); i++ {
		if i == len(detail) || detail[i] == '\n' {
			if i > start {
				lines = append(lines, detail[start:i])
			}
			start = i + 1
		}
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
