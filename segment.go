package physics

import "math"

// Segment is a line-segment shape variant with a thickness radius, used for
// one-sided or two-sided "walls".
type Segment struct {
	a, b Vector // local endpoints
	n    Vector // local normal, perp(normalize(b-a))
	r    float64

	ta, tb, tn Vector // cached world-space versions
}

// NewSegmentShape creates a segment shape from local endpoints a, b with
// thickness radius r.
func NewSegmentShape(body *Body, a, b Vector, r float64) *Shape {
	return newShape(body, &Segment{
		a: a,
		b: b,
		n: b.Sub(a).Normalize().Perp(),
		r: r,
	})
}

func (s *Segment) shapeType() ShapeType { return SegmentShapeType }

func (s *Segment) cacheData(body *Body) BB {
	s.ta = body.LocalToWorld(s.a)
	s.tb = body.LocalToWorld(s.b)
	s.tn = s.n.Rotate(body.Rot())

	l := math.Min(s.ta.X, s.tb.X)
	r := math.Max(s.ta.X, s.tb.X)
	bo := math.Min(s.ta.Y, s.tb.Y)
	t := math.Max(s.ta.Y, s.tb.Y)

	return NewBB(l-s.r, bo-s.r, r+s.r, t+s.r)
}

func (s *Segment) pointQuery(p Vector) PointQueryInfo {
	closest := ClosestPointOnSegment(p, s.ta, s.tb)
	d := VectorDist(p, closest)
	if d == 0 {
		return PointQueryInfo{Point: closest.Add(s.tn.Mult(s.r)), Distance: -s.r}
	}

	toP := p.Sub(closest).Normalize()
	return PointQueryInfo{Point: closest.Add(toP.Mult(s.r)), Distance: d - s.r}
}

func (s *Segment) segmentQuery(a, b Vector) (SegmentQueryInfo, bool) {
	if s.r == 0 {
		return segmentVsSegmentQuery(a, b, s.ta, s.tb, s.tn)
	}
	return thickSegmentQuery(a, b, s.ta, s.tb, s.tn, s.r)
}

// segmentVsSegmentQuery intersects ray a->b with the zero-thickness segment
// [segA, segB], whose outward normal is segN.
func segmentVsSegmentQuery(a, b, segA, segB, segN Vector) (SegmentQueryInfo, bool) {
	dOffset := segA.Sub(a).Dot(segN)

	rayDelta := b.Sub(a)
	denom := rayDelta.Dot(segN)
	if denom == 0 {
		return SegmentQueryInfo{}, false
	}

	t := dOffset / denom
	if t < 0 || t > 1 {
		return SegmentQueryInfo{}, false
	}

	point := a.Add(rayDelta.Mult(t))

	segDelta := segB.Sub(segA)
	segLenSq := segDelta.LengthSq()
	if segLenSq == 0 {
		return SegmentQueryInfo{}, false
	}
	u := point.Sub(segA).Dot(segDelta) / segLenSq
	if u < 0 || u > 1 {
		return SegmentQueryInfo{}, false
	}

	n := segN
	if rayDelta.Dot(n) > 0 {
		n = n.Neg()
	}
	return SegmentQueryInfo{Point: point, Normal: n, T: t}, true
}

// thickSegmentQuery intersects ray a->b with a segment of radius r, modeled
// as the two side-offset rectangles capped by circular arcs at the
// endpoints (a capsule).
func thickSegmentQuery(a, b, segA, segB, segN Vector, r float64) (SegmentQueryInfo, bool) {
	best := SegmentQueryInfo{T: math.Inf(1)}
	found := false

	consider := func(info SegmentQueryInfo, ok bool) {
		if ok && info.T < best.T {
			best = info
			found = true
		}
	}

	offset := segN.Mult(r)
	if info, ok := segmentVsSegmentQuery(a, b, segA.Add(offset), segB.Add(offset), segN); ok {
		consider(info, ok)
	}
	if info, ok := segmentVsSegmentQuery(a, b, segA.Sub(offset), segB.Sub(offset), segN.Neg()); ok {
		consider(info, ok)
	}
	if info, ok := circleSegmentQuery(a, b, segA, r); ok {
		consider(info, ok)
	}
	if info, ok := circleSegmentQuery(a, b, segB, r); ok {
		consider(info, ok)
	}

	return best, found
}

func (s *Shape) SegmentA() Vector      { c := s.segmentClass(); return c.a }
func (s *Shape) SegmentB() Vector      { c := s.segmentClass(); return c.b }
func (s *Shape) SegmentNormal() Vector { c := s.segmentClass(); return c.n }
func (s *Shape) SegmentRadius() float64 { c := s.segmentClass(); return c.r }

func (s *Shape) segmentClass() *Segment {
	c, ok := s.class.(*Segment)
	assert(ok, "Shape is not a segment")
	return c
}
