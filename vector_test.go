package physics

import "testing"

func TestVectorAddSub(t *testing.T) {
	a := V(1, 2)
	b := V(3, -1)

	if got := a.Add(b); got != (Vector{4, 1}) {
		t.Errorf("Add = %v, want {4 1}", got)
	}
	if got := a.Sub(b); got != (Vector{-2, 3}) {
		t.Errorf("Sub = %v, want {-2 3}", got)
	}
}

func TestVectorRotateUnrotate(t *testing.T) {
	v := V(1, 0)
	rot := ForAngle(1.2345)

	rotated := v.Rotate(rot)
	back := rotated.Unrotate(rot)

	if !back.Near(v, 1e-9) {
		t.Errorf("Rotate/Unrotate round trip = %v, want %v", back, v)
	}
}

func TestVectorPerpOrthogonal(t *testing.T) {
	v := V(3, 4)
	if d := v.Dot(v.Perp()); d != 0 {
		t.Errorf("v.Dot(v.Perp()) = %v, want 0", d)
	}
	if d := v.Dot(v.RPerp()); d != 0 {
		t.Errorf("v.Dot(v.RPerp()) = %v, want 0", d)
	}
}

func TestVectorNormalizeZero(t *testing.T) {
	if got := VectorZero().Normalize(); got != VectorZero() {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a, b := V(0, 0), V(10, 0)

	cases := []struct {
		p    Vector
		want Vector
	}{
		{V(5, 3), V(5, 0)},
		{V(-5, 0), V(0, 0)},
		{V(15, 0), V(10, 0)},
	}

	for _, c := range cases {
		if got := ClosestPointOnSegment(c.p, a, b); got != c.want {
			t.Errorf("ClosestPointOnSegment(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}
