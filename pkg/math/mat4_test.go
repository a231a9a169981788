package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	for i := 0; i < 16; i++ {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if m[i] != want {
			t.Errorf("Identity()[%d] = %v, want %v", i, m[i], want)
		}
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		name string
		a, b Mat4
		want Mat4
	}{
		{"identity right", Translate(1, 2, 3), Identity(), Translate(1, 2, 3)},
		{"identity left", Identity(), Translate(1, 2, 3), Translate(1, 2, 3)},
		{"translations add", Translate(1, 2, 3), Translate(4, 5, 6), Translate(5, 7, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Mul(tt.b); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	v := Vec3{3, -2, 7}
	m := Translate(v.X, v.Y, v.Z)
	if got := m.Translation(); got != v {
		t.Errorf("Translation() = %v, want %v", got, v)
	}
	if got := m.TransformVec3(Vec3{1, 1, 1}); got != (Vec3{4, -1, 8}) {
		t.Errorf("TransformVec3 = %v", got)
	}
}

func TestPerspectiveMapsNearAndFar(t *testing.T) {
	near, far := float32(0.1), float32(1000)
	m := Perspective(float32(math.Pi/3), 16.0/9, near, far)

	if m[11] != -1 || m[15] != 0 {
		t.Fatalf("not a perspective matrix: %v", m)
	}
	if z := m.TransformVec3(Vec3{Z: -near}).Z; abs(z+1) > 1e-4 {
		t.Errorf("near plane maps to z=%v, want -1", z)
	}
	if z := m.TransformVec3(Vec3{Z: -far}).Z; abs(z-1) > 1e-3 {
		t.Errorf("far plane maps to z=%v, want 1", z)
	}
}

func TestLookAtMapsTargetOntoForwardAxis(t *testing.T) {
	eye := Vec3{10, 5, 10}
	target := Vec3{0, 5, 0}
	m := LookAt(eye, target, Up)

	if p := m.TransformVec3(eye); p.Length() > 1e-4 {
		t.Errorf("eye in view space = %v, want origin", p)
	}
	p := m.TransformVec3(target)
	want := eye.Distance(target)
	if abs(p.X) > 1e-4 || abs(p.Y) > 1e-4 || abs(p.Z+want) > 1e-4 {
		t.Errorf("target in view space = %v, want (0, 0, %f)", p, -want)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
