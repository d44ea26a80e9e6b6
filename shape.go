package physics

// ShapeType tags which geometry variant a Shape wraps. Narrow-phase
// dispatch is keyed on the ordered pair of these.
type ShapeType int

const (
	CircleShapeType ShapeType = iota
	SegmentShapeType
	PolygonShapeType
	numShapeTypes
)

// shapeGeometry is the per-variant behavior a Shape delegates to. Each
// variant (Circle, Segment, Polygon) implements this once; Shape itself
// carries only the fields common to every variant.
type shapeGeometry interface {
	shapeType() ShapeType
	cacheData(body *Body) BB
	pointQuery(p Vector) PointQueryInfo
	segmentQuery(a, b Vector) (SegmentQueryInfo, bool)
}

// PointQueryInfo is the result of querying a shape against a world point.
type PointQueryInfo struct {
	Shape    *Shape
	Point    Vector // closest point on the shape's surface
	Distance float64 // signed distance to that point; negative means inside
}

// SegmentQueryInfo is the result of querying a shape against a ray.
type SegmentQueryInfo struct {
	Shape  *Shape
	Point  Vector
	Normal Vector
	T      float64 // parameter along the ray in [0,1]
}

// shapeIDCounter is a process-wide monotonically increasing counter that
// supplies shape ids (the keys of the arbiter table's shape pairs).
// Resettable for deterministic replay in tests.
var shapeIDCounter uint

// ResetShapeIDCounter resets the global shape id counter to zero. Intended
// for tests that need deterministic ids across scene rebuilds.
func ResetShapeIDCounter() {
	shapeIDCounter = 0
}

// Shape is geometry attached to a body. It does not own the body: the body
// must outlive every shape attached to it.
type Shape struct {
	id   uint
	body *Body

	space *Space

	class shapeGeometry

	bb BB

	e float64 // elasticity (coefficient of restitution)
	u float64 // friction
	surfaceV Vector

	collisionType uint
	filter        ShapeFilter

	sensor bool

	// UserData is an opaque, user-owned slot. The engine never reads it.
	UserData any
}

func newShape(body *Body, class shapeGeometry) *Shape {
	assert(body != nil, "Shape must be attached to a body")
	s := &Shape{
		body:   body,
		class:  class,
		filter: FilterAll,
	}
	s.CacheBB()
	return s
}

func (s *Shape) Type() ShapeType { return s.class.shapeType() }

func (s *Shape) Body() *Body { return s.body }

func (s *Shape) ID() uint { return s.id }

func (s *Shape) BB() BB { return s.bb }

// CacheBB recomputes the shape's cached world-space data and AABB from its
// body's current position and orientation.
func (s *Shape) CacheBB() BB {
	s.bb = s.class.cacheData(s.body)
	return s.bb
}

func (s *Shape) Elasticity() float64     { return s.e }
func (s *Shape) SetElasticity(e float64) { s.e = e }

func (s *Shape) Friction() float64     { return s.u }
func (s *Shape) SetFriction(u float64) { s.u = u }

func (s *Shape) SurfaceVelocity() Vector     { return s.surfaceV }
func (s *Shape) SetSurfaceVelocity(v Vector) { s.surfaceV = v }

func (s *Shape) CollisionType() uint     { return s.collisionType }
func (s *Shape) SetCollisionType(t uint) { s.collisionType = t }

func (s *Shape) Filter() ShapeFilter     { return s.filter }
func (s *Shape) SetFilter(f ShapeFilter) { s.filter = f }

func (s *Shape) Sensor() bool      { return s.sensor }
func (s *Shape) SetSensor(v bool)  { s.sensor = v }

// PointQuery reports the closest point on the shape's surface to p and the
// signed distance to it (negative means p is inside the shape).
func (s *Shape) PointQuery(p Vector) PointQueryInfo {
	info := s.class.pointQuery(p)
	info.Shape = s
	return info
}

// SegmentQuery reports the first crossing of the ray a->b with the shape, if
// any.
func (s *Shape) SegmentQuery(a, b Vector) (SegmentQueryInfo, bool) {
	info, ok := s.class.segmentQuery(a, b)
	if ok {
		info.Shape = s
	}
	return info, ok
}
