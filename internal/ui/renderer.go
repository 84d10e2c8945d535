package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

// Renderer owns the fixed-resolution design canvas and presents it onto
// the physical screen with aspect-ratio-preserving scaling. Scenes draw
// to the canvas at 640x480 and never see the real panel size.
type Renderer struct {
	canvas   *ebiten.Image
	drawOpts ebiten.DrawImageOptions
}

// NewRenderer creates a renderer with its design canvas allocated.
func NewRenderer() *Renderer {
	return &Renderer{
		canvas: ebiten.NewImage(style.DesignWidth, style.DesignHeight),
	}
}

// Canvas returns the design-resolution target scenes draw into.
func (r *Renderer) Canvas() *ebiten.Image {
	return r.canvas
}

// Present scales and centers the canvas onto the screen.
func (r *Renderer) Present(screen *ebiten.Image) {
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale, offsetX, offsetY := letterboxTransform(style.DesignWidth, style.DesignHeight, screenW, screenH)

	r.drawOpts = ebiten.DrawImageOptions{}
	r.drawOpts.GeoM.Scale(scale, scale)
	r.drawOpts.GeoM.Translate(offsetX, offsetY)
	r.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(r.canvas, &r.drawOpts)
}

// letterboxTransform computes the uniform scale and centering offsets
// that fit a designW x designH canvas inside a screenW x screenH panel
// without distorting aspect ratio.
func letterboxTransform(designW, designH, screenW, screenH int) (scale, offsetX, offsetY float64) {
	scaleX := float64(screenW) / float64(designW)
	scaleY := float64(screenH) / float64(designH)
	scale = scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	offsetX = (float64(screenW) - float64(designW)*scale) / 2
	offsetY = (float64(screenH) - float64(designH)*scale) / 2
	return scale, offsetX, offsetY
}
