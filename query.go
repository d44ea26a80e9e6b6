package physics

import "math"

// PointQueryNearest finds the shape (if any) whose surface is closest to
// p, within maxDistance, and not rejected by filter.
func (s *Space) PointQueryNearest(p Vector, maxDistance float64, filter ShapeFilter) (PointQueryInfo, bool) {
	best := PointQueryInfo{Distance: math.Inf(1)}
	found := false

	bb := NewBB(p.X-maxDistance, p.Y-maxDistance, p.X+maxDistance, p.Y+maxDistance)

	visit := func(sh *Shape) {
		if filter.Reject(sh.filter) {
			return
		}
		info := sh.PointQuery(p)
		if info.Distance < maxDistance && info.Distance < best.Distance {
			best = info
			found = true
		}
	}

	s.dynamicShapes.Query(bb, visit)
	s.staticShapes.Query(bb, visit)

	return best, found
}

// PointQueryAll visits every shape whose surface is within maxDistance of
// p and not rejected by filter.
func (s *Space) PointQueryAll(p Vector, maxDistance float64, filter ShapeFilter, f func(PointQueryInfo)) {
	bb := NewBB(p.X-maxDistance, p.Y-maxDistance, p.X+maxDistance, p.Y+maxDistance)

	visit := func(sh *Shape) {
		if filter.Reject(sh.filter) {
			return
		}
		info := sh.PointQuery(p)
		if info.Distance < maxDistance {
			f(info)
		}
	}

	s.dynamicShapes.Query(bb, visit)
	s.staticShapes.Query(bb, visit)
}

// SegmentQueryFirst finds the closest crossing of the ray a->b with any
// shape not rejected by filter.
func (s *Space) SegmentQueryFirst(a, b Vector, filter ShapeFilter) (SegmentQueryInfo, bool) {
	best := SegmentQueryInfo{T: math.Inf(1)}
	found := false

	visit := func(sh *Shape) {
		if filter.Reject(sh.filter) {
			return
		}
		info, ok := sh.SegmentQuery(a, b)
		if ok && info.T < best.T {
			best = info
			found = true
		}
	}

	s.dynamicShapes.SegmentQuery(a, b, visit)
	s.staticShapes.SegmentQuery(a, b, visit)

	return best, found
}

// SegmentQueryAll visits every crossing of the ray a->b with a shape not
// rejected by filter, in no particular order.
func (s *Space) SegmentQueryAll(a, b Vector, filter ShapeFilter, f func(SegmentQueryInfo)) {
	visit := func(sh *Shape) {
		if filter.Reject(sh.filter) {
			return
		}
		if info, ok := sh.SegmentQuery(a, b); ok {
			f(info)
		}
	}

	s.dynamicShapes.SegmentQuery(a, b, visit)
	s.staticShapes.SegmentQuery(a, b, visit)
}

// BBQuery visits every shape whose AABB overlaps bb and is not rejected
// by filter. This is a broad-phase-only query: callers needing exact
// overlap should refine with the shape's own geometry.
func (s *Space) BBQuery(bb BB, filter ShapeFilter, f func(*Shape)) {
	visit := func(sh *Shape) {
		if filter.Reject(sh.filter) {
			return
		}
		f(sh)
	}

	s.dynamicShapes.Query(bb, visit)
	s.staticShapes.Query(bb, visit)
}
