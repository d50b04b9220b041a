package engine

import "testing"

func TestVec2_Angle(t *testing.T) {
	tests := []struct {
		vec Vec2
		ang Angle
	}{
		{Vec2{0, 0}, 0},
		{Vec2{1, 1}, Pi / 4},
		{Vec2{0, 1}, Pi / 2},
		{Vec2{0, -1}, Pi / 2 * 3},
	}

	for _, test := range tests {
		if !approx(float32(test.ang), float32(test.vec.Angle())) {
			t.Errorf("expected %v.Angle(): %v, got %v", test.vec, test.ang, test.vec.Angle())
		}
	}
}

func TestVec2_DistanceBoundary(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 600, Y: 0}
	const radius = 600
	if a.DistanceSquared(b) > radius*radius {
		t.Fatalf("expected boundary point to be inside-or-equal to radius")
	}
}

func TestVec2_ClampMagnitude(t *testing.T) {
	v := Vec2{X: 10, Y: 0}.ClampMagnitude(5)
	if v.Length() > 5.0001 {
		t.Fatalf("expected clamp to 5, got length %v", v.Length())
	}
	v = Vec2{X: 1, Y: 0}.ClampMagnitude(5)
	if v.X != 1 || v.Y != 0 {
		t.Fatalf("expected unmodified vector below magnitude, got %v", v)
	}
}
