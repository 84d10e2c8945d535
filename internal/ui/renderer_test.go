package ui

import "testing"

func TestLetterboxTransform(t *testing.T) {
	tests := []struct {
		name             string
		screenW, screenH int
		scale            float64
		offsetX, offsetY float64
	}{
		{"exact fit", 640, 480, 1.0, 0, 0},
		{"integer upscale", 1280, 960, 2.0, 0, 0},
		{"wide panel pillarboxes", 1280, 720, 1.5, 160, 0},
		{"tall panel letterboxes", 640, 960, 1.0, 0, 240},
		{"downscale", 320, 240, 0.5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, offsetX, offsetY := letterboxTransform(640, 480, tt.screenW, tt.screenH)
			if scale != tt.scale {
				t.Errorf("scale = %v, want %v", scale, tt.scale)
			}
			if offsetX != tt.offsetX {
				t.Errorf("offsetX = %v, want %v", offsetX, tt.offsetX)
			}
			if offsetY != tt.offsetY {
				t.Errorf("offsetY = %v, want %v", offsetY, tt.offsetY)
			}
		})
	}
}
