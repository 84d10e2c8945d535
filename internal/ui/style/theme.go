// Package style holds the palette, layout metrics, and font faces shared
// by all scenes.
package style

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Palette. High-contrast colors tuned for small handheld panels.
var (
	Background    = color.NRGBA{0x00, 0x00, 0x00, 0xff}
	Text          = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	TextSecondary = color.NRGBA{0xaa, 0xaa, 0xaa, 0xff}
	Surface       = color.NRGBA{0x20, 0x20, 0x20, 0xff}
	Border        = color.NRGBA{0x55, 0x55, 0x55, 0xff}
	Error         = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	Success       = color.NRGBA{0x19, 0xcb, 0x00, 0xff}
	Alert         = color.NRGBA{0xb0, 0x30, 0x30, 0xff}
	DimOverlay    = color.NRGBA{0x00, 0x00, 0x00, 0x80}
)

// Font sizes in points at the design resolution
const (
	fontSize      = 14
	largeFontSize = 22
)

var (
	sharedFontSource *text.GoTextFaceSource
	fontFace         text.Face
	largeFontFace    text.Face
)

// loadFontSource loads the shared TrueType source from goregular (once)
func loadFontSource() *text.GoTextFaceSource {
	if sharedFontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("Failed to load font source: %v", err)
			return nil
		}
		sharedFontSource = source
	}
	return sharedFontSource
}

// FontFace returns the face used for regular UI text
func FontFace() *text.Face {
	if fontFace == nil {
		source := loadFontSource()
		if source == nil {
			return &fontFace
		}
		fontFace = &text.GoTextFace{
			Source: source,
			Size:   fontSize,
		}
	}
	return &fontFace
}

// LargeFontFace returns the face for headings and the header title
func LargeFontFace() *text.Face {
	if largeFontFace == nil {
		source := loadFontSource()
		if source == nil {
			return &largeFontFace
		}
		largeFontFace = &text.GoTextFace{
			Source: source,
			Size:   largeFontSize,
		}
	}
	return &largeFontFace
}
