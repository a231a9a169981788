package host

import (
	"testing"

	"github.com/Faultbox/diwan-tower/internal/config"
)

func TestDetectCapabilities(t *testing.T) {
	fx := config.Default().Effects

	tests := []struct {
		name        string
		width       int
		forceMobile bool
		bloom       bool
		want        Capabilities
	}{
		{"desktop", 1280, false, true, Capabilities{ParticleCount: 600, Samples: 4, PixelRatioCap: 2, Bloom: true}},
		{"desktop without bloom", 1280, false, false, Capabilities{ParticleCount: 600, Samples: 4, PixelRatioCap: 2}},
		{"breakpoint is desktop", 768, false, true, Capabilities{ParticleCount: 600, Samples: 4, PixelRatioCap: 2, Bloom: true}},
		{"narrow", 767, false, true, Capabilities{Constrained: true, ParticleCount: 300, PixelRatioCap: 1}},
		{"forced", 1920, true, true, Capabilities{Constrained: true, ParticleCount: 300, PixelRatioCap: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx.Bloom = tt.bloom
			if got := DetectCapabilities(tt.width, tt.forceMobile, fx); got != tt.want {
				t.Errorf("DetectCapabilities() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewViewport(t *testing.T) {
	tests := []struct {
		name           string
		w, h, dw, dh   int
		ratioCap       float64
		wantRW, wantRH int
	}{
		{"standard density", 1280, 720, 1280, 720, 2, 1280, 720},
		{"retina", 1280, 720, 2560, 1440, 2, 2560, 1440},
		{"3x capped to 2x", 1000, 500, 3000, 1500, 2, 2000, 1000},
		{"mobile capped to 1x", 400, 800, 1200, 2400, 1, 400, 800},
		{"missing drawable", 640, 480, 0, 0, 2, 640, 480},
		{"zero size", 0, 0, 0, 0, 2, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := NewViewport(tt.w, tt.h, tt.dw, tt.dh, tt.ratioCap)
			if vp.RenderWidth != tt.wantRW || vp.RenderHeight != tt.wantRH {
				t.Errorf("render = %dx%d, want %dx%d", vp.RenderWidth, vp.RenderHeight, tt.wantRW, tt.wantRH)
			}
		})
	}
}

func TestViewportAspect(t *testing.T) {
	if a := (Viewport{Width: 1600, Height: 800}).Aspect(); a != 2 {
		t.Errorf("Aspect() = %v", a)
	}
	if a := (Viewport{}).Aspect(); a != 1 {
		t.Errorf("empty Aspect() = %v", a)
	}
}
