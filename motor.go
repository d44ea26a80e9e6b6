package physics

import "math"

// SimpleMotor drives the relative angular velocity between two bodies
// towards a fixed rate, like an idealized electric motor with no
// position target.
type SimpleMotor struct {
	rate float64

	iSum float64
	jAcc float64
}

// NewSimpleMotor creates a motor driving b.AngularVelocity - a.AngularVelocity
// towards rate.
func NewSimpleMotor(a, b *Body, rate float64) *Constraint {
	return newConstraint(a, b, &SimpleMotor{rate: rate})
}

func (m *SimpleMotor) Rate() float64     { return m.rate }
func (m *SimpleMotor) SetRate(r float64) { m.rate = r }

func (m *SimpleMotor) preStep(c *Constraint, dt float64) {
	a, b := c.a, c.b
	m.iSum = 1 / (a.iInv + b.iInv)
}

func (m *SimpleMotor) applyCachedImpulse(c *Constraint, dtCoef float64) {
	j := m.jAcc * dtCoef
	c.a.w -= j * c.a.iInv
	c.b.w += j * c.b.iInv
}

func (m *SimpleMotor) applyImpulse(c *Constraint, dt float64) {
	a, b := c.a, c.b

	wErr := b.w - a.w - m.rate
	j := -wErr * m.iSum

	maxJ := math.Abs(c.maxForce * dt)
	oldAcc := m.jAcc
	m.jAcc = clampVal(oldAcc+j, -maxJ, maxJ)
	j = m.jAcc - oldAcc

	a.w -= j * a.iInv
	b.w += j * b.iInv
}

func (m *SimpleMotor) getImpulse(c *Constraint) float64 {
	if m.jAcc < 0 {
		return -m.jAcc
	}
	return m.jAcc
}
