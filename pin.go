package physics

import "math"

// PinJoint holds two anchor points at a fixed distance apart, like a
// rigid rod pinned at each end.
type PinJoint struct {
	anchorA, anchorB Vector // body-local
	dist             float64

	r1, r2 Vector
	n      Vector
	nMass  float64

	jnAcc float64
	bias  float64
}

// NewPinJoint creates a pin joint between anchorA (local to a) and
// anchorB (local to b), holding them the distance apart they are at
// construction time.
func NewPinJoint(a, b *Body, anchorA, anchorB Vector) *Constraint {
	dist := VectorDist(a.LocalToWorld(anchorA), b.LocalToWorld(anchorB))
	return newConstraint(a, b, &PinJoint{anchorA: anchorA, anchorB: anchorB, dist: dist})
}

func (j *PinJoint) Distance() float64     { return j.dist }
func (j *PinJoint) SetDistance(d float64) { j.dist = d }

func (j *PinJoint) preStep(c *Constraint, dt float64) {
	a, b := c.a, c.b

	j.r1 = j.anchorA.Rotate(a.rot)
	j.r2 = j.anchorB.Rotate(b.rot)

	delta := b.p.Add(j.r2).Sub(a.p.Add(j.r1))
	dist := delta.Length()
	if dist > 1e-9 {
		j.n = delta.Mult(1 / dist)
	} else {
		j.n = Vector{1, 0}
	}

	j.nMass = 1 / kScalar(a, b, j.r1, j.r2, j.n)

	coef := biasCoefFor(c.errorBias, dt)
	j.bias = clampVal(-coef*(dist-j.dist)/dt, -c.maxBias, c.maxBias)
}

func (j *PinJoint) applyCachedImpulse(c *Constraint, dtCoef float64) {
	impulse := j.n.Mult(j.jnAcc * dtCoef)
	c.a.ApplyImpulseAtLocalOffset(impulse.Neg(), j.r1)
	c.b.ApplyImpulseAtLocalOffset(impulse, j.r2)
}

func (j *PinJoint) applyImpulse(c *Constraint, dt float64) {
	a, b := c.a, c.b

	relVel := relativeVelocity(a, b, j.r1, j.r2)
	vrn := relVel.Dot(j.n)

	jn := (j.bias - vrn) * j.nMass
	maxJ := math.Abs(c.maxForce * dt)
	oldAcc := j.jnAcc
	j.jnAcc = clampVal(oldAcc+jn, -maxJ, maxJ)
	jn = j.jnAcc - oldAcc

	impulse := j.n.Mult(jn)
	a.ApplyImpulseAtLocalOffset(impulse.Neg(), j.r1)
	b.ApplyImpulseAtLocalOffset(impulse, j.r2)
}

func (j *PinJoint) getImpulse(c *Constraint) float64 { return math.Abs(j.jnAcc) }
