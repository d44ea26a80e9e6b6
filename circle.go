package physics

import "math"

// Circle is a circular shape variant, offset from its body's center by c.
type Circle struct {
	c Vector
	r float64

	tc Vector // cached world-space center
}

// NewCircleShape creates a circle shape attached to body, with the given
// radius and local-space center offset.
func NewCircleShape(body *Body, radius float64, offset Vector) *Shape {
	return newShape(body, &Circle{c: offset, r: radius})
}

func (c *Circle) shapeType() ShapeType { return CircleShapeType }

func (c *Circle) cacheData(body *Body) BB {
	c.tc = body.LocalToWorld(c.c)
	return NewBBForCircle(c.tc, c.r)
}

func (c *Circle) pointQuery(p Vector) PointQueryInfo {
	delta := p.Sub(c.tc)
	d := delta.Length()
	var closest Vector
	if d == 0 {
		closest = c.tc.Add(Vector{c.r, 0})
	} else {
		closest = c.tc.Add(delta.Mult(c.r / d))
	}
	return PointQueryInfo{Point: closest, Distance: d - c.r}
}

func (c *Circle) segmentQuery(a, b Vector) (SegmentQueryInfo, bool) {
	return circleSegmentQuery(a, b, c.tc, c.r)
}

// circleSegmentQuery solves the ray a->b against a circle centered at
// center with radius r, returning the first crossing inside [0,1].
func circleSegmentQuery(a, b, center Vector, r float64) (SegmentQueryInfo, bool) {
	da := a.Sub(center)
	db := b.Sub(center)

	qa := da.Dot(da) - 2*da.Dot(db) + db.Dot(db)
	qb := -2*da.Dot(da) + 2*da.Dot(db)
	qc := da.Dot(da) - r*r

	det := qb*qb - 4*qa*qc
	if det < 0 || qa == 0 {
		return SegmentQueryInfo{}, false
	}

	t := (-qb - math.Sqrt(det)) / (2 * qa)
	if 0 <= t && t <= 1 {
		point := a.Lerp(b, t)
		return SegmentQueryInfo{
			Point:  point,
			Normal: point.Sub(center).Normalize(),
			T:      t,
		}, true
	}
	return SegmentQueryInfo{}, false
}

// CircleRadius returns the circle's radius.
func (s *Shape) CircleRadius() float64 {
	c, ok := s.class.(*Circle)
	assert(ok, "Shape is not a circle")
	return c.r
}

// CircleOffset returns the circle's local-space center offset.
func (s *Shape) CircleOffset() Vector {
	c, ok := s.class.(*Circle)
	assert(ok, "Shape is not a circle")
	return c.c
}
