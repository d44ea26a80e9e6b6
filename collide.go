package physics

import "math"

// collisionSlop is the allowed penetration before the solver tries to push
// shapes apart; a small slop avoids jitter from resolving to exact contact.
const collisionSlop = 0.1

// collide dispatches to the narrow-phase routine for the pair's shape
// types and returns contacts whose normal points from a to b. Shapes are
// internally reordered so every routine below only has to handle one
// ordering; contacts are flipped back before returning.
func collide(a, b *Shape) []*contact {
	ta, tb := a.Type(), b.Type()
	if ta > tb {
		cs := collide(b, a)
		for _, c := range cs {
			c.n = c.n.Neg()
		}
		return cs
	}

	switch {
	case ta == CircleShapeType && tb == CircleShapeType:
		return circleToCircle(a, b)
	case ta == CircleShapeType && tb == SegmentShapeType:
		return circleToSegment(a, b)
	case ta == CircleShapeType && tb == PolygonShapeType:
		return circleToPolygon(a, b)
	case ta == SegmentShapeType && tb == SegmentShapeType:
		// Two infinitely thin (or capsule) segments colliding is not a
		// configuration the simulation needs: segments only ever model
		// static geometry (walls, one-way platforms) in this engine, and
		// static shapes never generate contacts against each other.
		return nil
	case ta == SegmentShapeType && tb == PolygonShapeType:
		return segmentToPolygon(a, b)
	case ta == PolygonShapeType && tb == PolygonShapeType:
		return polygonToPolygon(a, b)
	}
	return nil
}

func circleToCircle(a, b *Shape) []*contact {
	ca, cb := a.class.(*Circle), b.class.(*Circle)
	minDist := ca.r + cb.r

	delta := cb.tc.Sub(ca.tc)
	distSq := delta.LengthSq()
	if distSq >= minDist*minDist {
		return nil
	}

	dist := math.Sqrt(distSq)
	var n Vector
	if dist != 0 {
		n = delta.Mult(1 / dist)
	} else {
		n = Vector{1, 0}
	}

	p := ca.tc.Add(n.Mult(ca.r + (dist-minDist)*0.5))
	return []*contact{{
		p:    p,
		n:    n,
		dist: dist - minDist,
		hash: hashPair(0, 0),
	}}
}

func circleToSegment(a, b *Shape) []*contact {
	ca := a.class.(*Circle)
	seg := b.class.(*Segment)

	closest := ClosestPointOnSegment(ca.tc, seg.ta, seg.tb)
	delta := ca.tc.Sub(closest)
	distSq := delta.LengthSq()
	minDist := ca.r + seg.r

	if distSq >= minDist*minDist {
		return nil
	}

	dist := math.Sqrt(distSq)
	var n Vector
	if dist != 0 {
		n = delta.Mult(1 / dist)
	} else {
		n = seg.tn
	}

	p := closest.Add(n.Mult(seg.r))
	return []*contact{{
		p:    p,
		n:    n.Neg(),
		dist: dist - minDist,
		hash: hashPair(0, 0),
	}}
}

func circleToPolygon(a, b *Shape) []*contact {
	ca := a.class.(*Circle)
	poly := b.class.(*Polygon)

	info := poly.pointQuery(ca.tc)
	if info.Distance >= ca.r {
		return nil
	}

	n := ca.tc.Sub(info.Point)
	if n.LengthSq() == 0 {
		n = Vector{0, 1}
	} else {
		n = n.Normalize()
	}
	n = n.Neg()

	return []*contact{{
		p:    info.Point,
		n:    n,
		dist: info.Distance - ca.r,
		hash: hashPair(0, 0),
	}}
}

func segmentToPolygon(a, b *Shape) []*contact {
	seg := a.class.(*Segment)
	poly := b.class.(*Polygon)

	var out []*contact
	for i, wv := range []Vector{seg.ta, seg.tb} {
		info := poly.pointQuery(wv)
		if info.Distance >= seg.r {
			continue
		}
		n := wv.Sub(info.Point)
		if n.LengthSq() == 0 {
			n = seg.tn
		} else {
			n = n.Normalize()
		}
		out = append(out, &contact{
			p:    info.Point,
			n:    n.Neg(),
			dist: info.Distance - seg.r,
			hash: hashPair(uint32(i), 0),
		})
	}
	return out
}

// polygonToPolygon implements the separating-axis test over both
// polygons' face normals, then clips the incident edge against the
// reference edge's side planes to produce up to two contact points.
func polygonToPolygon(a, b *Shape) []*contact {
	pa := a.class.(*Polygon)
	pb := b.class.(*Polygon)

	sepA, edgeA := maxSeparatingEdge(pa, pb)
	if sepA > pa.r+pb.r {
		return nil
	}
	sepB, edgeB := maxSeparatingEdge(pb, pa)
	if sepB > pa.r+pb.r {
		return nil
	}

	var refPoly, incPoly *Polygon
	var refEdge int
	var flipped bool
	if sepA >= sepB {
		refPoly, incPoly, refEdge = pa, pb, edgeA
		flipped = false
	} else {
		refPoly, incPoly, refEdge = pb, pa, edgeB
		flipped = true
	}

	refN := refPoly.tPlanes[refEdge].n
	incEdge := incidentEdge(incPoly, refN)

	clipped := clipEdgeAgainstRef(refPoly, refEdge, incPoly, incEdge)

	radiiSum := pa.r + pb.r
	var out []*contact
	for i, p := range clipped {
		dist := refN.Dot(p) - refPoly.tPlanes[refEdge].d - radiiSum
		if dist > 0 {
			continue
		}
		n := refN
		if flipped {
			n = n.Neg()
		}
		out = append(out, &contact{
			p:    p,
			n:    n,
			dist: dist,
			hash: hashPair(uint32(refEdge), uint32(i)),
		})
	}
	return out
}

// maxSeparatingEdge returns the greatest separation of poly's vertices
// along any of ref's face normals, and which edge achieved it (the best
// separating axis candidate from ref against poly).
func maxSeparatingEdge(ref, other *Polygon) (float64, int) {
	best := math.Inf(-1)
	bestEdge := 0
	for i, pl := range ref.tPlanes {
		minProj := math.Inf(1)
		for _, v := range other.tVerts {
			d := pl.n.Dot(v)
			if d < minProj {
				minProj = d
			}
		}
		sep := minProj - pl.d
		if sep > best {
			best = sep
			bestEdge = i
		}
	}
	return best, bestEdge
}

// incidentEdge returns the index of the edge of poly whose normal is most
// anti-parallel to refNormal (the edge that poly is pressing into ref
// with).
func incidentEdge(poly *Polygon, refNormal Vector) int {
	best := math.Inf(1)
	bestI := 0
	for i, pl := range poly.tPlanes {
		d := pl.n.Dot(refNormal)
		if d < best {
			best = d
			bestI = i
		}
	}
	return bestI
}

// clipEdgeAgainstRef clips the incident edge's two endpoints against the
// reference edge's two side planes (Sutherland-Hodgman, 2 planes).
func clipEdgeAgainstRef(ref *Polygon, refEdge int, inc *Polygon, incEdge int) []Vector {
	n := len(ref.tVerts)
	refV0 := ref.tVerts[refEdge]
	refV1 := ref.tVerts[(refEdge+1)%n]
	tangent := refV1.Sub(refV0).Normalize()

	m := len(inc.tVerts)
	v0 := inc.tVerts[incEdge]
	v1 := inc.tVerts[(incEdge+1)%m]

	poly := []Vector{v0, v1}
	poly = clipPolyToHalfPlane(poly, tangent.Neg(), tangent.Neg().Dot(refV0))
	poly = clipPolyToHalfPlane(poly, tangent, tangent.Dot(refV1))
	return poly
}

// clipPolyToHalfPlane clips a short polyline against the half-plane
// n.Dot(p) <= d, inserting an intersection point when an edge crosses it.
func clipPolyToHalfPlane(poly []Vector, n Vector, d float64) []Vector {
	if len(poly) == 0 {
		return nil
	}
	var out []Vector
	for i := 0; i < len(poly); i++ {
		cur := poly[i]
		prev := poly[(i-1+len(poly))%len(poly)]

		curIn := n.Dot(cur)-d <= 0
		prevIn := n.Dot(prev)-d <= 0

		if curIn {
			if !prevIn {
				out = append(out, segPlaneIntersect(prev, cur, n, d))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, segPlaneIntersect(prev, cur, n, d))
		}
	}
	return out
}

func segPlaneIntersect(a, b Vector, n Vector, d float64) Vector {
	da := n.Dot(a) - d
	db := n.Dot(b) - d
	t := da / (da - db)
	return a.Lerp(b, t)
}
