package physics

import "math"

// constraintClass is the per-variant behavior a Constraint delegates to,
// the joint-specific counterpart to shapeGeometry.
type constraintClass interface {
	preStep(c *Constraint, dt float64)
	applyCachedImpulse(c *Constraint, dtCoef float64)
	applyImpulse(c *Constraint, dt float64)
	getImpulse(c *Constraint) float64
}

// Constraint is a velocity constraint between exactly two bodies (a pin
// joint, spring, motor, etc). Like Shape, it carries the fields common to
// every variant and delegates variant-specific math to class.
type Constraint struct {
	class constraintClass

	a, b *Body

	space *Space

	maxForce  float64
	maxBias   float64
	errorBias float64

	collideBodies bool

	// UserData is an opaque, user-owned slot. The engine never reads it.
	UserData any
}

func newConstraint(a, b *Body, class constraintClass) *Constraint {
	assert(a != b, "Constraint cannot join a body to itself")
	return &Constraint{
		class:         class,
		a:             a,
		b:             b,
		maxForce:      math.Inf(1),
		maxBias:       math.Inf(1),
		errorBias:     math.Pow(1.0-0.1, 60),
		collideBodies: true,
	}
}

func (c *Constraint) BodyA() *Body { return c.a }
func (c *Constraint) BodyB() *Body { return c.b }

func (c *Constraint) MaxForce() float64     { return c.maxForce }
func (c *Constraint) SetMaxForce(f float64) { c.maxForce = f }

func (c *Constraint) MaxBias() float64     { return c.maxBias }
func (c *Constraint) SetMaxBias(f float64) { c.maxBias = f }

// CollideBodies reports whether the two constrained bodies still generate
// contacts against each other through the normal narrow phase.
func (c *Constraint) CollideBodies() bool     { return c.collideBodies }
func (c *Constraint) SetCollideBodies(v bool) { c.collideBodies = v }

// Impulse returns the magnitude of the impulse applied by this constraint
// on the last solved step.
func (c *Constraint) Impulse() float64 { return c.class.getImpulse(c) }

func (c *Constraint) preStep(dt float64)              { c.class.preStep(c, dt) }
func (c *Constraint) applyCachedImpulse(coef float64) { c.class.applyCachedImpulse(c, coef) }
func (c *Constraint) applyImpulse(dt float64)         { c.class.applyImpulse(c, dt) }

// kScalar returns the effective mass (scalar) for a constraint acting
// along direction n at relative offsets r1, r2 from each body's center.
func kScalar(a, b *Body, r1, r2, n Vector) float64 {
	return a.mInv + b.mInv + a.iInv*sq(r1.Cross(n)) + b.iInv*sq(r2.Cross(n))
}

// k2x2 mass matrix terms, used by joints that constrain a full 2D point
// (pivot, groove).
type mat2x2 struct {
	a, b, c, d float64
}

func k2x2(body1, body2 *Body, r1, r2 Vector) mat2x2 {
	mSum := body1.mInv + body2.mInv

	k11 := mSum + body1.iInv*r1.Y*r1.Y + body2.iInv*r2.Y*r2.Y
	k12 := -body1.iInv*r1.X*r1.Y - body2.iInv*r2.X*r2.Y
	k22 := mSum + body1.iInv*r1.X*r1.X + body2.iInv*r2.X*r2.X

	return mat2x2{k11, k12, k12, k22}
}

func (m mat2x2) transform(v Vector) Vector {
	return Vector{v.X*m.a + v.Y*m.b, v.X*m.c + v.Y*m.d}
}

func (m mat2x2) inverse() mat2x2 {
	det := m.a*m.d - m.b*m.c
	assert(det != 0, "constraint mass matrix is singular")
	inv := 1 / det
	return mat2x2{m.d * inv, -m.b * inv, -m.c * inv, m.a * inv}
}

// biasCoefFor converts the constraint's errorBias (a per-step decay
// factor) into the velocity-bias coefficient used to correct position
// error without adding energy, following the same scheme as contacts.
func biasCoefFor(errorBias, dt float64) float64 {
	return 1 - math.Pow(errorBias, dt)
}
