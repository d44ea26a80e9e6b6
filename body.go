package physics

import "math"

// BodyType distinguishes how a body's position/velocity relate to the
// solver. Dynamic bodies are fully simulated. Static bodies never move.
// Kinematic bodies have infinite mass (so impulses never move them) but
// their velocity is user-driven and still integrates into position, so they
// can act as moving obstacles (platforms, conveyor belts) without being
// pushed around by collisions.
type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyKinematic
	BodyStatic
)

// VelocityFunc integrates a body's velocity for one step, given the space's
// gravity and the per-step damping factor (damping^dt).
type VelocityFunc func(body *Body, gravity Vector, damping float64, dt float64)

// PositionFunc integrates a body's position for one step.
type PositionFunc func(body *Body, dt float64)

// Body is a point mass with orientation. It owns its kinematic state
// exclusively; shapes and constraints only ever read it or are applied to it
// through the solver.
type Body struct {
	bodyType BodyType

	p Vector // position
	a float64 // angle, radians
	rot Vector // cached (cos a, sin a)

	v Vector // linear velocity
	w float64 // angular velocity

	f Vector  // accumulated force
	t float64 // accumulated torque

	vBias Vector
	wBias float64

	m, mInv float64
	i, iInv float64

	velocityFunc VelocityFunc
	positionFunc PositionFunc

	space *Space

	shapeList      []*Shape
	constraintList []*Constraint

	// UserData is an opaque, user-owned slot. The engine never reads it.
	UserData any
}

// NewBody constructs a dynamic body with the given mass and moment of
// inertia. Use NewStaticBody/NewKinematicBody for the other body types.
func NewBody(mass, moment float64) *Body {
	b := &Body{
		rot:          ForAngle(0),
		velocityFunc: BodyUpdateVelocity,
		positionFunc: BodyUpdatePosition,
	}
	b.SetMass(mass)
	b.SetMoment(moment)
	return b
}

// NewStaticBody constructs a body with infinite mass and moment that the
// solver never moves.
func NewStaticBody() *Body {
	b := NewBody(math.Inf(1), math.Inf(1))
	b.bodyType = BodyStatic
	return b
}

// NewKinematicBody constructs a body with infinite mass and moment whose
// velocity (set directly by the caller) still integrates into position.
func NewKinematicBody() *Body {
	b := NewBody(math.Inf(1), math.Inf(1))
	b.bodyType = BodyKinematic
	return b
}

func (b *Body) Type() BodyType { return b.bodyType }

// IsStatic reports whether the solver never moves this body.
func (b *Body) IsStatic() bool { return b.bodyType == BodyStatic }

func (b *Body) Position() Vector { return b.p }
func (b *Body) SetPosition(p Vector) { b.p = p }

func (b *Body) Angle() float64 { return b.a }

// SetAngle updates the angle and keeps the cached rotation vector in sync.
func (b *Body) SetAngle(angle float64) {
	b.a = angle
	b.rot = ForAngle(angle)
}

func (b *Body) Rot() Vector { return b.rot }

func (b *Body) Velocity() Vector     { return b.v }
func (b *Body) SetVelocity(v Vector) { b.v = v }

func (b *Body) AngularVelocity() float64     { return b.w }
func (b *Body) SetAngularVelocity(w float64) { b.w = w }

func (b *Body) Mass() float64 { return b.m }

// SetMass updates the mass and its cached inverse. A mass of +Inf yields
// mInv = 0 (the static/kinematic case).
func (b *Body) SetMass(mass float64) {
	assert(mass > 0, "Mass must be positive")
	b.m = mass
	if math.IsInf(mass, 1) {
		b.mInv = 0
	} else {
		b.mInv = 1 / mass
	}
}

func (b *Body) MassInv() float64 { return b.mInv }

func (b *Body) Moment() float64 { return b.i }

// SetMoment updates the moment of inertia and its cached inverse.
func (b *Body) SetMoment(moment float64) {
	assert(moment > 0, "Moment must be positive")
	b.i = moment
	if math.IsInf(moment, 1) {
		b.iInv = 0
	} else {
		b.iInv = 1 / moment
	}
}

func (b *Body) MomentInv() float64 { return b.iInv }

func (b *Body) Force() Vector         { return b.f }
func (b *Body) SetForce(f Vector)     { b.f = f }
func (b *Body) ApplyForce(f Vector)   { b.f = b.f.Add(f) }

func (b *Body) Torque() float64       { return b.t }
func (b *Body) SetTorque(t float64)   { b.t = t }
func (b *Body) ApplyTorque(t float64) { b.t += t }

func (b *Body) VelocityBias() Vector         { return b.vBias }
func (b *Body) AngularVelocityBias() float64 { return b.wBias }

func (b *Body) SetVelocityUpdateFunc(f VelocityFunc) { b.velocityFunc = f }
func (b *Body) SetPositionUpdateFunc(f PositionFunc) { b.positionFunc = f }

// LocalToWorld transforms a point in body-local space to world space.
func (b *Body) LocalToWorld(p Vector) Vector {
	return b.p.Add(p.Rotate(b.rot))
}

// WorldToLocal transforms a point in world space to body-local space.
func (b *Body) WorldToLocal(p Vector) Vector {
	return p.Sub(b.p).Unrotate(b.rot)
}

// VelocityAtWorldPoint returns the world-space velocity of the material
// point on the body currently located at the given world point.
func (b *Body) VelocityAtWorldPoint(point Vector) Vector {
	r := point.Sub(b.p)
	return b.v.Add(r.Perp().Mult(b.w))
}

// ApplyImpulseAtWorldPoint applies impulse j at the world-space point.
// A no-op on bodies with infinite mass (static and kinematic).
func (b *Body) ApplyImpulseAtWorldPoint(j, point Vector) {
	r := point.Sub(b.p)
	b.ApplyImpulseAtLocalOffset(j, r)
}

// ApplyImpulseAtLocalOffset applies impulse j at the body-relative
// (world-oriented) offset r from the body's position.
func (b *Body) ApplyImpulseAtLocalOffset(j, r Vector) {
	b.v = b.v.Add(j.Mult(b.mInv))
	b.w += b.iInv * r.Cross(j)
}

// applyBiasImpulse is identical to ApplyImpulseAtLocalOffset but targets the
// bias channel instead of real velocity.
func (b *Body) applyBiasImpulse(j, r Vector) {
	b.vBias = b.vBias.Add(j.Mult(b.mInv))
	b.wBias += b.iInv * r.Cross(j)
}

// KineticEnergy returns 1/2 m v^2 + 1/2 i w^2.
func (b *Body) KineticEnergy() float64 {
	vDotV := b.v.Dot(b.v)
	var e float64
	if vDotV != 0 {
		e += vDotV * b.m
	}
	if b.w != 0 {
		e += b.w * b.w * b.i
	}
	return e * 0.5
}

// BodyUpdateVelocity is the default velocity integrator: gravity and
// per-step exponential damping, then forces/torques are cleared.
func BodyUpdateVelocity(body *Body, gravity Vector, damping float64, dt float64) {
	if body.bodyType != BodyDynamic {
		return
	}

	accel := gravity.Add(body.f.Mult(body.mInv))
	body.v = body.v.Mult(damping).Add(accel.Mult(dt))
	body.w = body.w*damping + body.t*body.iInv*dt

	body.f = VectorZero()
	body.t = 0
}

// BodyUpdatePosition is the default position integrator: explicit Euler
// using velocity plus the solver's bias channel, which is cleared after.
func BodyUpdatePosition(body *Body, dt float64) {
	body.p = body.p.Add(body.v.Add(body.vBias).Mult(dt))
	body.SetAngle(body.a + (body.w+body.wBias)*dt)

	body.vBias = VectorZero()
	body.wBias = 0
}

// EachShape visits every shape attached to the body.
func (b *Body) EachShape(f func(*Shape)) {
	for _, s := range b.shapeList {
		f(s)
	}
}

func (b *Body) addShape(s *Shape) {
	b.shapeList = append(b.shapeList, s)
}

func (b *Body) removeShape(s *Shape) {
	for i, sh := range b.shapeList {
		if sh == s {
			b.shapeList = append(b.shapeList[:i], b.shapeList[i+1:]...)
			return
		}
	}
}

func (b *Body) addConstraint(c *Constraint) {
	b.constraintList = append(b.constraintList, c)
}

func (b *Body) removeConstraint(c *Constraint) {
	for i, cc := range b.constraintList {
		if cc == c {
			b.constraintList = append(b.constraintList[:i], b.constraintList[i+1:]...)
			return
		}
	}
}

// Standard moment-of-inertia helpers for the built-in shape variants,
// offset is the shape's local offset from the body's center of gravity.

// MomentForCircle returns the moment of inertia of a circle (or annulus, if
// r1 > 0) of the given mass.
func MomentForCircle(mass, r1, r2 float64, offset Vector) float64 {
	return mass * (0.5*(r1*r1+r2*r2) + offset.LengthSq())
}

// MomentForSegment returns the moment of inertia of a line segment of the
// given mass and radius.
func MomentForSegment(mass float64, a, b Vector, r float64) float64 {
	offset := a.Lerp(b, 0.5)
	length := VectorDist(b, a) + 2*r
	return mass * ((length*length + 4*r*r) / 12 + offset.LengthSq())
}

// MomentForPoly returns the moment of inertia of a convex polygon of the
// given mass around its centroid, offset by `offset`.
func MomentForPoly(mass float64, verts []Vector, offset Vector, r float64) float64 {
	if len(verts) < 3 {
		return 0
	}
	var sum1, sum2 float64
	n := len(verts)
	for i := 0; i < n; i++ {
		v1 := verts[i].Add(offset)
		v2 := verts[(i+1)%n].Add(offset)
		a := v2.Cross(v1)
		b := v1.Dot(v1) + v1.Dot(v2) + v2.Dot(v2)
		sum1 += a * b
		sum2 += a
	}
	return (mass * sum1) / (6 * sum2)
}
