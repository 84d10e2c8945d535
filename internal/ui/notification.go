package ui

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

// Notification displays temporary messages in the bottom-right corner.
// Safe to call Show from any goroutine.
type Notification struct {
	mu        sync.Mutex
	message   string
	startTime time.Time
	duration  time.Duration
}

// NewNotification creates a new notification overlay
func NewNotification() *Notification {
	return &Notification{}
}

// Show displays a notification message
func (n *Notification) Show(message string, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = message
	n.startTime = time.Now()
	n.duration = duration
}

// ShowDefault displays a notification with default 3 second duration
func (n *Notification) ShowDefault(message string) {
	n.Show(message, 3*time.Second)
}

// Clear removes the current notification
func (n *Notification) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = ""
}

// Draw renders the notification if one is active
func (n *Notification) Draw(canvas *ebiten.Image) {
	n.mu.Lock()
	if n.message == "" || time.Since(n.startTime) >= n.duration {
		n.mu.Unlock()
		return
	}
	message := n.message
	n.mu.Unlock()

	maxWidth := float64(style.DesignWidth) - style.OverlayMargin*2 - style.OverlayPadding*2
	message, _ = style.TruncateToWidth(message, *style.FontFace(), maxWidth)
	textWidth, textHeight := text.Measure(message, *style.FontFace(), 0)

	bgWidth := float32(textWidth) + style.OverlayPadding*2
	bgHeight := float32(textHeight) + style.OverlayPadding*2
	bgX := style.DesignWidth - bgWidth - style.OverlayMargin
	bgY := style.DesignHeight - bgHeight - style.OverlayMargin

	vector.DrawFilledRect(canvas, bgX, bgY, bgWidth, bgHeight, style.Surface, false)
	vector.StrokeRect(canvas, bgX, bgY, bgWidth, bgHeight, 1, style.Border, false)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(bgX)+style.OverlayPadding, float64(bgY)+style.OverlayPadding)
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(canvas, message, *style.FontFace(), textOpts)
}
