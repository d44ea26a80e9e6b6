package physics

import "math"

// BB is an axis-aligned bounding box.
type BB struct {
	L, B, R, T float64
}

func NewBB(l, b, r, t float64) BB {
	return BB{l, b, r, t}
}

func NewBBForCircle(p Vector, r float64) BB {
	return BB{p.X - r, p.Y - r, p.X + r, p.Y + r}
}

func (bb BB) Intersects(o BB) bool {
	return bb.L <= o.R && o.L <= bb.R && bb.B <= o.T && o.B <= bb.T
}

func (bb BB) Contains(o BB) bool {
	return bb.L <= o.L && bb.R >= o.R && bb.B <= o.B && bb.T >= o.T
}

func (bb BB) ContainsVector(v Vector) bool {
	return bb.L <= v.X && v.X <= bb.R && bb.B <= v.Y && v.Y <= bb.T
}

func (bb BB) Merge(o BB) BB {
	return BB{
		math.Min(bb.L, o.L),
		math.Min(bb.B, o.B),
		math.Max(bb.R, o.R),
		math.Max(bb.T, o.T),
	}
}

func (bb BB) Expand(v Vector) BB {
	return bb.Merge(BB{v.X, v.Y, v.X, v.Y})
}

func (bb BB) Center() Vector {
	return V((bb.L+bb.R)/2, (bb.B+bb.T)/2)
}

func (bb BB) Area() float64 {
	return (bb.R - bb.L) * (bb.T - bb.B)
}

// ClampVector clamps v to the box.
func (bb BB) ClampVector(v Vector) Vector {
	return V(clamp(v.X, bb.L, bb.R), clamp(v.Y, bb.B, bb.T))
}

// SegmentQuery returns the fraction t at which the segment a->b first enters
// the box, or +Inf if it never does.
func (bb BB) SegmentQuery(a, b Vector) float64 {
	delta := b.Sub(a)

	txMin, txMax := axisSlab(a.X, delta.X, bb.L, bb.R)
	tyMin, tyMax := axisSlab(a.Y, delta.Y, bb.B, bb.T)

	if tyMin <= txMax && txMin <= tyMax {
		t := math.Max(txMin, tyMin)
		if 0 <= t && t <= 1 {
			return t
		}
	}
	return math.Inf(1)
}

// axisSlab computes the entry/exit fractions of a ray along one axis against
// the [lo, hi] slab. A zero delta (ray parallel to the slab) yields an
// unbounded interval when origin lies within [lo, hi], so the other axis
// alone decides, and an empty interval (+Inf, -Inf) when it lies outside.
func axisSlab(origin, delta, lo, hi float64) (float64, float64) {
	if delta == 0 {
		if origin < lo || origin > hi {
			return math.Inf(1), math.Inf(-1)
		}
		return math.Inf(-1), math.Inf(1)
	}
	inv := 1 / delta
	t1 := (lo - origin) * inv
	t2 := (hi - origin) * inv
	return math.Min(t1, t2), math.Max(t1, t2)
}
