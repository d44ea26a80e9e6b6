package physics

import "math"

// PivotJoint holds a single point on each body coincident, like a pin
// through both (a hinge with no angular limit).
type PivotJoint struct {
	anchorA, anchorB Vector

	r1, r2 Vector
	k      mat2x2

	jAcc Vector
	bias Vector
}

// NewPivotJoint creates a pivot joint at the given world-space pivot
// point, converting it to each body's local anchor.
func NewPivotJoint(a, b *Body, pivot Vector) *Constraint {
	return newConstraint(a, b, &PivotJoint{
		anchorA: a.WorldToLocal(pivot),
		anchorB: b.WorldToLocal(pivot),
	})
}

// NewPivotJointAnchors creates a pivot joint from explicit body-local
// anchors, for the (rarer) case where the two bodies aren't already
// positioned with a shared pivot point.
func NewPivotJointAnchors(a, b *Body, anchorA, anchorB Vector) *Constraint {
	return newConstraint(a, b, &PivotJoint{anchorA: anchorA, anchorB: anchorB})
}

func (j *PivotJoint) preStep(c *Constraint, dt float64) {
	a, b := c.a, c.b

	j.r1 = j.anchorA.Rotate(a.rot)
	j.r2 = j.anchorB.Rotate(b.rot)

	j.k = k2x2(a, b, j.r1, j.r2)

	delta := b.p.Add(j.r2).Sub(a.p.Add(j.r1))
	coef := biasCoefFor(c.errorBias, dt)
	bias := delta.Mult(-coef / dt)
	j.bias = Vector{
		clampVal(bias.X, -c.maxBias, c.maxBias),
		clampVal(bias.Y, -c.maxBias, c.maxBias),
	}
}

func (j *PivotJoint) applyCachedImpulse(c *Constraint, dtCoef float64) {
	impulse := j.jAcc.Mult(dtCoef)
	c.a.ApplyImpulseAtLocalOffset(impulse.Neg(), j.r1)
	c.b.ApplyImpulseAtLocalOffset(impulse, j.r2)
}

func (j *PivotJoint) applyImpulse(c *Constraint, dt float64) {
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

func (j *PivotJoint) getImpulse(c *Constraint) float64 { return j.jAcc.Length() }
