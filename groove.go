package physics

import "math"

// GrooveJoint constrains a point on body b to slide along a line segment
// (the groove) fixed in body a's local frame.
type GrooveJoint struct {
	grooveA, grooveB Vector // local to a, the segment endpoints
	anchorB          Vector // local to b

	r1, r2 Vector
	k      mat2x2

	jAcc Vector
	bias Vector
}

// NewGrooveJoint creates a groove joint. grooveA/grooveB are the segment
// endpoints in a's local space; anchorB is the sliding point in b's
// local space.
func NewGrooveJoint(a, b *Body, grooveA, grooveB, anchorB Vector) *Constraint {
	return newConstraint(a, b, &GrooveJoint{grooveA: grooveA, grooveB: grooveB, anchorB: anchorB})
}

func (j *GrooveJoint) preStep(c *Constraint, dt float64) {
	a, b := c.a, c.b

	// Groove endpoints and direction in world space, but expressed as an
	// offset from a's center (so the effective mass math stays in terms
	// of r1/r2 like every other point constraint).
	ga := j.grooveA.Rotate(a.rot)
	gb := j.grooveB.Rotate(a.rot)

	j.r2 = j.anchorB.Rotate(b.rot)
	anchorBWorld := b.p.Add(j.r2)

	// Clamp the world anchor point onto the groove segment (in world
	// space), then express it as an offset from a's center for r1.
	clamped := ClosestPointOnSegment(anchorBWorld, a.p.Add(ga), a.p.Add(gb))
	j.r1 = clamped.Sub(a.p)

	j.k = k2x2(a, b, j.r1, j.r2)

	delta := anchorBWorld.Sub(clamped)
	coef := biasCoefFor(c.errorBias, dt)
	bias := delta.Mult(-coef / dt)
	j.bias = Vector{
		clampVal(bias.X, -c.maxBias, c.maxBias),
		clampVal(bias.Y, -c.maxBias, c.maxBias),
	}
}

func (j *GrooveJoint) applyCachedImpulse(c *Constraint, dtCoef float64) {
	impulse := j.jAcc.Mult(dtCoef)
	c.a.ApplyImpulseAtLocalOffset(impulse.Neg(), j.r1)
	c.b.ApplyImpulseAtLocalOffset(impulse, j.r2)
}

func (j *GrooveJoint) applyImpulse(c *Constraint, dt float64) {
	a, b := c.a, c.b

	relVel := relativeVelocity(a, b, j.r1, j.r2)
	impulse := j.k.inverse().transform(j.bias.Sub(relVel))

	maxJ := math.Abs(c.maxForce * dt)
	oldAcc := j.jAcc
	newAcc := oldAcc.Add(impulse)
	if newAcc.Length() > maxJ {
		newAcc = newAcc.Normalize().Mult(maxJ)
	}
	j.jAcc = newAcc
	applied := newAcc.Sub(oldAcc)

	a.ApplyImpulseAtLocalOffset(applied.Neg(), j.r1)
	b.ApplyImpulseAtLocalOffset(applied, j.r2)
}

func (j *GrooveJoint) getImpulse(c *Constraint) float64 { return j.jAcc.Length() }
