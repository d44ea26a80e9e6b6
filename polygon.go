package physics

import "math"

// polySplittingPlane is one edge of a convex polygon expressed as an
// outward-facing plane: points p with n.Dot(p) <= d are inside.
type polySplittingPlane struct {
	n Vector
	d float64
}

// Polygon is a convex-polygon shape variant with a uniform corner radius.
// Vertices are stored counter-clockwise.
type Polygon struct {
	r       float64
	verts   []Vector // local-space vertices
	planes  []polySplittingPlane // local-space

	tVerts  []Vector // cached world-space vertices
	tPlanes []polySplittingPlane // cached world-space
}

// NewPolygonShape creates a convex polygon shape. verts must be in
// counter-clockwise order; the hull is used as-is (callers needing a
// convex hull of arbitrary points should compute it before calling this).
func NewPolygonShape(body *Body, verts []Vector, r float64) *Shape {
	p := &Polygon{r: r}
	p.setVerts(verts)
	return newShape(body, p)
}

// NewBoxShape creates an axis-aligned box polygon of the given width and
// height, centered on the body's origin.
func NewBoxShape(body *Body, width, height, r float64) *Shape {
	hw, hh := width/2, height/2
	verts := []Vector{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	}
	return NewPolygonShape(body, verts, r)
}

func (p *Polygon) setVerts(verts []Vector) {
	n := len(verts)
	assert(n >= 3, "Polygon must have at least 3 vertices")

	p.verts = make([]Vector, n)
	copy(p.verts, verts)

	p.planes = make([]polySplittingPlane, n)
	for i := 0; i < n; i++ {
		a := p.verts[i]
		b := p.verts[(i+1)%n]
		normal := b.Sub(a).RPerp().Normalize()
		p.planes[i] = polySplittingPlane{n: normal, d: normal.Dot(a)}
	}

	p.tVerts = make([]Vector, n)
	p.tPlanes = make([]polySplittingPlane, n)
}

func (p *Polygon) shapeType() ShapeType { return PolygonShapeType }

func (p *Polygon) cacheData(body *Body) BB {
	rot := body.Rot()
	pos := body.Position()

	l, bo := math.Inf(1), math.Inf(1)
	rr, t := math.Inf(-1), math.Inf(-1)

	for i, v := range p.verts {
		wv := pos.Add(v.Rotate(rot))
		p.tVerts[i] = wv

		l = math.Min(l, wv.X)
		rr = math.Max(rr, wv.X)
		bo = math.Min(bo, wv.Y)
		t = math.Max(t, wv.Y)
	}

	for i, pl := range p.planes {
		n := pl.n.Rotate(rot)
		p.tPlanes[i] = polySplittingPlane{n: n, d: n.Dot(p.tVerts[i])}
	}

	return NewBB(l-p.r, bo-p.r, rr+p.r, t+p.r)
}

// valueOnAxis returns the maximum separation of point p outside the
// polygon's planes; non-positive when p is inside the (unrounded) core.
func (p *Polygon) valueOnAxis(point Vector) float64 {
	max := math.Inf(-1)
	for _, pl := range p.tPlanes {
		v := pl.n.Dot(point) - pl.d
		if v > max {
			max = v
		}
	}
	return max
}

func (p *Polygon) pointQuery(point Vector) PointQueryInfo {
	n := len(p.tVerts)

	maxDist := math.Inf(-1)
	maxIdx := 0
	for i, pl := range p.tPlanes {
		d := pl.n.Dot(point) - pl.d
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist < 0 {
		// Point is inside the polygon core.
		closest := p.tPlanes[maxIdx].n.Mult(maxDist).Neg().Add(point)
		return PointQueryInfo{Point: closest, Distance: maxDist - p.r}
	}

	// Outside: clamp against the nearest edge segment.
	v0 := p.tVerts[maxIdx]
	v1 := p.tVerts[(maxIdx+1)%n]
	closest := ClosestPointOnSegment(point, v0, v1)
	d := VectorDist(point, closest)
	return PointQueryInfo{Point: closest, Distance: d - p.r}
}

func (p *Polygon) segmentQuery(a, b Vector) (SegmentQueryInfo, bool) {
	n := len(p.tVerts)
	if p.r == 0 {
		return convexSegmentQuery(p.tPlanes, p.tVerts, a, b)
	}

	// Rounded polygon: test each edge as a thick segment of radius r and
	// keep the earliest hit.
	best := SegmentQueryInfo{T: math.Inf(1)}
	found := false
	consider := func(info SegmentQueryInfo, ok bool) {
		if ok && info.T < best.T {
			best, found = info, true
		}
	}

	for i := 0; i < n; i++ {
		v0 := p.tVerts[i]
		v1 := p.tVerts[(i+1)%n]
		normal := p.tPlanes[i].n
		if info, ok := thickSegmentQuery(a, b, v0, v1, normal, p.r); ok {
			consider(info, ok)
		}
	}

	return best, found
}

// convexSegmentQuery intersects ray a->b against the convex half-plane
// intersection defined by planes/verts (zero-radius fast path).
func convexSegmentQuery(planes []polySplittingPlane, verts []Vector, a, b Vector) (SegmentQueryInfo, bool) {
	n := len(planes)

	tMin, tMax := 0.0, 1.0
	var hitPlane int = -1

	rayDelta := b.Sub(a)
	for i := 0; i < n; i++ {
		denom := rayDelta.Dot(planes[i].n)
		dist := planes[i].d - planes[i].n.Dot(a)

		if denom == 0 {
			if dist < 0 {
				return SegmentQueryInfo{}, false
			}
			continue
		}

		t := dist / denom
		if denom < 0 {
			if t > tMin {
				tMin = t
				hitPlane = i
			}
		} else {
			if t < tMax {
				tMax = t
			}
		}
		if tMin > tMax {
			return SegmentQueryInfo{}, false
		}
	}

	if hitPlane < 0 {
		return SegmentQueryInfo{}, false
	}

	point := a.Lerp(b, tMin)
	return SegmentQueryInfo{Point: point, Normal: planes[hitPlane].n, T: tMin}, true
}

func (s *Shape) PolygonVertexCount() int { return len(s.polygonClass().tVerts) }

func (s *Shape) PolygonVertex(i int) Vector { return s.polygonClass().tVerts[i] }

func (s *Shape) PolygonRadius() float64 { return s.polygonClass().r }

func (s *Shape) polygonClass() *Polygon {
	c, ok := s.class.(*Polygon)
	assert(ok, "Shape is not a polygon")
	return c
}
