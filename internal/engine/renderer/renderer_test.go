package renderer

import (
	"testing"

	"github.com/Faultbox/diwan-tower/internal/engine/building"
	"github.com/Faultbox/diwan-tower/internal/engine/material"
	"github.com/Faultbox/diwan-tower/internal/host"
	"github.com/Faultbox/diwan-tower/pkg/math"
)

func TestPackInstances(t *testing.T) {
	transforms := []math.Mat4{math.Translate(1, 2, 3), math.Translate(4, 5, 6)}
	data := packInstances(transforms, 0.5)

	if len(data) != 2*instanceFloats {
		t.Fatalf("len = %d, want %d", len(data), 2*instanceFloats)
	}
	// Translation lives in elements 12-14 of each column-major matrix.
	second := data[instanceFloats:]
	if second[12] != 4 || second[13] != 5 || second[14] != 6 {
		t.Errorf("second translation = %v", second[12:15])
	}
	if data[16] != 0.5 || second[16] != 0.5 {
		t.Errorf("alpha not packed after each matrix")
	}
}

func TestPackGlowReusesStorage(t *testing.T) {
	lines := []building.GlowLine{{Floor: 0, Y: 0.2, Opacity: 0.1}, {Floor: 1, Y: 3.7, Opacity: 0.2}}
	buf := packGlow(nil, lines)

	lines[1].Opacity = 0.15
	again := packGlow(buf, lines)

	if &again[0] != &buf[0] {
		t.Error("packGlow reallocated")
	}
	if again[instanceFloats+13] != 3.7 {
		t.Errorf("glow y = %v", again[instanceFloats+13])
	}
	if again[2*instanceFloats-1] != 0.15 {
		t.Errorf("glow alpha = %v", again[2*instanceFloats-1])
	}
}

func TestBloomSize(t *testing.T) {
	w, h := bloomSize(host.Viewport{RenderWidth: 1281, RenderHeight: 1})
	if w != 640 || h != 1 {
		t.Errorf("bloomSize = %dx%d, want 640x1", w, h)
	}
}

func TestLinear(t *testing.T) {
	c := linear([3]float32{0, 1, 0.5})
	if c[0] != 0 || c[1] != 1 {
		t.Errorf("linear endpoints = %v", c)
	}
	if c[2] >= 0.5 || c[2] <= 0.2 {
		t.Errorf("linear(0.5) = %v", c[2])
	}
	bg := linear(material.BackgroundColor)
	if bg[2] >= material.BackgroundColor[2] {
		t.Error("background not darkened by linearisation")
	}
}
