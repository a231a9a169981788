package lighting

import (
	gomath "math"
	"testing"
)

func TestPointLightBufferTruncates(t *testing.T) {
	b := NewPointLightBuffer()
	lights := make([]PointLight, MaxPointLights+3)
	b.SetLights(lights)

	if b.Count != MaxPointLights {
		t.Errorf("Count = %d, want %d", b.Count, MaxPointLights)
	}
	if b.AddLight(PointLight{}) {
		t.Error("AddLight succeeded on a full buffer")
	}
}

func TestPointLightDefaultsRange(t *testing.T) {
	b := NewPointLightBuffer()
	b.AddLight(PointLight{Intensity: 1})
	if b.Lights[0].Range != 100 {
		t.Errorf("Range = %v, want 100", b.Lights[0].Range)
	}
}

func TestFlattenedBuffers(t *testing.T) {
	b := NewPointLightBuffer()
	b.AddLight(PointLight{
		Position:  [3]float32{1, 2, 3},
		Color:     [3]float32{0, 0.5, 1},
		Range:     10,
		Intensity: 2,
	})

	pos := b.Positions()
	if len(pos) != MaxPointLights*3 || pos[0] != 1 || pos[1] != 2 || pos[2] != 3 {
		t.Errorf("Positions() = %v", pos)
	}
	col := b.Colors()
	if col[0] != 0 || col[1] != 1 || col[2] != 2 {
		t.Errorf("Colors() not premultiplied: %v", col[:3])
	}
	if r := b.Ranges(); len(r) != MaxPointLights || r[0] != 10 || r[1] != 0 {
		t.Errorf("Ranges() = %v", r)
	}
}

func TestDefaultRig(t *testing.T) {
	r := DefaultRig()
	if r.Points.Count != 3 {
		t.Fatalf("point lights = %d, want 3", r.Points.Count)
	}

	d := r.SunDirection()
	l := gomath.Sqrt(float64(d[0]*d[0] + d[1]*d[1] + d[2]*d[2]))
	if gomath.Abs(l-1) > 1e-5 {
		t.Errorf("sun direction length = %v", l)
	}
	if d[1] <= d[0] {
		t.Errorf("sun should be mostly overhead: %v", d)
	}
	if s := r.Sun(); s != [3]float32{0.8, 0.8, 0.8} {
		t.Errorf("Sun() = %v", s)
	}
}
