package physics

import "math"

// GearJoint keeps two bodies' angular velocities (and, through the bias
// channel, their angles) locked to a fixed ratio, like a pair of meshed
// gears.
type GearJoint struct {
	phase float64
	ratio float64

	iSum  float64
	jAcc  float64
	bias  float64
}

// NewGearJoint creates a gear joint holding b.Angle == a.Angle*ratio +
// phase.
func NewGearJoint(a, b *Body, phase, ratio float64) *Constraint {
	return newConstraint(a, b, &GearJoint{phase: phase, ratio: ratio})
}

func (g *GearJoint) Ratio() float64     { return g.ratio }
func (g *GearJoint) SetRatio(r float64) { g.ratio = r }

func (g *GearJoint) Phase() float64     { return g.phase }
func (g *GearJoint) SetPhase(p float64) { g.phase = p }

func (g *GearJoint) preStep(c *Constraint, dt float64) {
	a, b := c.a, c.b

	g.iSum = 1 / (a.iInv*g.ratio*g.ratio + b.iInv)

	angleErr := b.a - a.a*g.ratio - g.phase
	coef := biasCoefFor(c.errorBias, dt)
	g.bias = clampVal(-coef*angleErr/dt, -c.maxBias, c.maxBias)
}

func (g *GearJoint) applyCachedImpulse(c *Constraint, dtCoef float64) {
	j := g.jAcc * dtCoef
	c.a.w -= j * c.a.iInv * g.ratio
	c.b.w += j * c.b.iInv
}

func (g *GearJoint) applyImpulse(c *Constraint, dt float64) {
	a, b := c.a, c.b

	wErr := b.w - a.w*g.ratio
	j := (g.bias - wErr) * g.iSum

	maxJ := math.Abs(c.maxForce * dt)
	oldAcc := g.jAcc
	g.jAcc = clampVal(oldAcc+j, -maxJ, maxJ)
	j = g.jAcc - oldAcc

	a.w -= j * a.iInv * g.ratio
	b.w += j * b.iInv
}

func (g *GearJoint) getImpulse(c *Constraint) float64 {
	if g.jAcc < 0 {
		return -g.jAcc
	}
	return g.jAcc
}
