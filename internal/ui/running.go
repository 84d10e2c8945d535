package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/jobs"
	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

// RunningAction is the outcome of a running-scene event.
type RunningAction int

const (
	RunningNone RunningAction = iota
	RunningCancel
)

// RunningScene shows live progress while the engine runs: the current
// stage, elapsed time, and the tail of the engine's output.
type RunningScene struct {
	status jobs.Status
}

// SetStatus installs the latest job snapshot for drawing.
func (s *RunningScene) SetStatus(status jobs.Status) {
	s.status = status
}

// Handle processes one navigation event. Only Back does anything here;
// it requests cancellation.
func (s *RunningScene) Handle(e Event) RunningAction {
	if e == EventBack {
		return RunningCancel
	}
	return RunningNone
}

// Hints returns the footer legend for this scene.
func (s *RunningScene) Hints() []ButtonHint {
	return []ButtonHint{{"B", "Cancel"}}
}

// stageLabel maps pipeline stage names to display text.
func stageLabel(stage string) string {
	switch stage {
	case "staging":
		return "Preparing ROM..."
	case "launching":
		return "Starting engine..."
	case "randomizing":
		return "Randomizing..."
	case "collecting":
		return "Collecting output..."
	case "delivering":
		return "Writing result..."
	default:
		return "Working..."
	}
}

// Draw renders the progress view.
func (s *RunningScene) Draw(canvas *ebiten.Image) {
	y := float64(contentTop + style.DefaultPadding*2)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(style.DesignWidth/2, y)
	textOpts.PrimaryAlign = text.AlignCenter
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(canvas, stageLabel(s.status.Stage), *style.LargeFontFace(), textOpts)
	y += style.ListRowHeight * 2

	elapsed := s.status.Elapsed()
	elapsedText := fmt.Sprintf("Elapsed: %d:%02d", int(elapsed.Minutes()), int(elapsed.Seconds())%60)
	textOpts = &text.DrawOptions{}
	textOpts.GeoM.Translate(style.DesignWidth/2, y)
	textOpts.PrimaryAlign = text.AlignCenter
	textOpts.ColorScale.ScaleWithColor(style.TextSecondary)
	text.Draw(canvas, elapsedText, *style.FontFace(), textOpts)
	y += style.ListRowHeight + style.DefaultPadding

	// Engine output tail in a bordered panel
	panelX := float32(style.DefaultPadding)
	panelW := float32(style.DesignWidth - style.DefaultPadding*2)
	panelY := float32(y)
	panelH := float32(contentBottom) - panelY - style.DefaultPadding
	vector.DrawFilledRect(canvas, panelX, panelY, panelW, panelH, style.Surface, false)
	vector.StrokeRect(canvas, panelX, panelY, panelW, panelH, 1, style.Border, false)

	lineY := float64(panelY) + style.SmallSpacing
	maxWidth := float64(panelW) - style.SmallSpacing*2
	for _, line := range s.status.LogLines {
		if lineY+style.ListRowHeight > float64(panelY+panelH) {
			break
		}
		line, _ = style.TruncateToWidth(line, *style.FontFace(), maxWidth)
		textOpts = &text.DrawOptions{}
		textOpts.GeoM.Translate(float64(panelX)+style.SmallSpacing, lineY)
		textOpts.ColorScale.ScaleWithColor(style.TextSecondary)
		text.Draw(canvas, line, *style.FontFace(), textOpts)
		lineY += style.ListRowHeight - style.SmallSpacing
	}
}
