package physics

import "math"

// SlideJoint holds two anchor points within a distance range [min, max],
// acting like a pin joint only once the rod would stretch past max or
// compress past min.
type SlideJoint struct {
	anchorA, anchorB Vector
	min, max         float64

	r1, r2 Vector
	n      Vector
	nMass  float64

	jnAcc float64
	bias  float64
}

// NewSlideJoint creates a slide joint between anchorA (local to a) and
// anchorB (local to b), allowed to separate anywhere within [min, max].
func NewSlideJoint(a, b *Body, anchorA, anchorB Vector, min, max float64) *Constraint {
	return newConstraint(a, b, &SlideJoint{anchorA: anchorA, anchorB: anchorB, min: min, max: max})
}

func (j *SlideJoint) Min() float64     { return j.min }
func (j *SlideJoint) Max() float64     { return j.max }
func (j *SlideJoint) SetMin(v float64) { j.min = v }
func (j *SlideJoint) SetMax(v float64) { j.max = v }

func (j *SlideJoint) preStep(c *Constraint, dt float64) {
	a, b := c.a, c.b

	j.r1 = j.anchorA.Rotate(a.rot)
	j.r2 = j.anchorB.Rotate(b.rot)

	delta := b.p.Add(j.r2).Sub(a.p.Add(j.r1))
	dist := delta.Length()

	var clamped float64
	switch {
	case dist < j.min:
		clamped = j.min - dist
	case dist > j.max:
		clamped = dist - j.max
	default:
		j.jnAcc = 0
		j.bias = 0
		return
	}

	if dist > 1e-9 {
		j.n = delta.Mult(1 / dist)
	} else {
		j.n = Vector{1, 0}
	}
	if dist < j.min {
		j.n = j.n.Neg()
	}

	j.nMass = 1 / kScalar(a, b, j.r1, j.r2, j.n)

	coef := biasCoefFor(c.errorBias, dt)
	j.bias = clampVal(-coef*clamped/dt, -c.maxBias, c.maxBias)
}

func (j *SlideJoint) applyCachedImpulse(c *Constraint, dtCoef float64) {
	if j.jnAcc == 0 {
		return
	}
	impulse := j.n.Mult(j.jnAcc * dtCoef)
	c.a.ApplyImpulseAtLocalOffset(impulse.Neg(), j.r1)
	c.b.ApplyImpulseAtLocalOffset(impulse, j.r2)
}

func (j *SlideJoint) applyImpulse(c *Constraint, dt float64) {
	if j.bias == 0 && j.jnAcc == 0 {
		return
	}
	a, b := c.a, c.b

	relVel := relativeVelocity(a, b, j.r1, j.r2)
	vrn := relVel.Dot(j.n)

	jn := (j.bias - vrn) * j.nMass
	oldAcc := j.jnAcc
	maxJ := math.Abs(c.maxForce * dt)
	j.jnAcc = clampVal(oldAcc+jn, -maxJ, 0)
	jn = j.jnAcc - oldAcc

	impulse := j.n.Mult(jn)
	a.ApplyImpulseAtLocalOffset(impulse.Neg(), j.r1)
	b.ApplyImpulseAtLocalOffset(impulse, j.r2)
}

func (j *SlideJoint) getImpulse(c *Constraint) float64 { return math.Abs(j.jnAcc) }
