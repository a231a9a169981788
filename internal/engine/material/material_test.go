package material

import "testing"

func TestNewStateIsBlueprint(t *testing.T) {
	s := NewState()
	if s.SolidOpacity != 0 {
		t.Errorf("SolidOpacity = %v, want 0", s.SolidOpacity)
	}
	if s.WireOpacity != InitialWireOpacity {
		t.Errorf("WireOpacity = %v, want %v", s.WireOpacity, InitialWireOpacity)
	}
}

func TestSetClamps(t *testing.T) {
	s := NewState()
	s.Set(1.5, -0.2)
	if s.SolidOpacity != 1 || s.WireOpacity != 0 {
		t.Errorf("Set(1.5, -0.2) = %+v, want {1 0}", *s)
	}
}

func TestOneStateDrivesEveryBatchOfAKind(t *testing.T) {
	s := NewState()
	kinds := []Kind{Solid, Wire, Solid, Solid, Wire}

	s.Set(0.6, 0.1)
	for i, k := range kinds {
		want := float32(0.6)
		if k == Wire {
			want = 0.1
		}
		if got := s.Opacity(k); got != want {
			t.Errorf("batch %d (%s) opacity = %v, want %v", i, k, got, want)
		}
	}
}

func TestHex(t *testing.T) {
	got := Hex(0xff0080)
	if got[0] != 1 || got[1] != 0 || got[2] < 0.50 || got[2] > 0.51 {
		t.Errorf("Hex(0xff0080) = %v", got)
	}
}
