package physics

// DampedSpring is a force-based spring between two anchor points: unlike
// the other constraint variants it doesn't solve a velocity constraint,
// it just applies a force every step (Hooke's law plus damping), so it
// never fights the solver for a "correct" length.
type DampedSpring struct {
	anchorA, anchorB Vector
	restLength       float64
	stiffness        float64
	damping          float64

	r1, r2 Vector
	n      Vector

	jAcc    float64 // impulse applied last step, for Impulse() reporting
	applied bool    // whether this step's impulse has been applied
}

// NewDampedSpring creates a spring between anchorA (local to a) and
// anchorB (local to b) with the given rest length, stiffness and damping.
func NewDampedSpring(a, b *Body, anchorA, anchorB Vector, restLength, stiffness, damping float64) *Constraint {
	return newConstraint(a, b, &DampedSpring{
		anchorA: anchorA, anchorB: anchorB,
		restLength: restLength, stiffness: stiffness, damping: damping,
	})
}

func (s *DampedSpring) preStep(c *Constraint, dt float64) {
	a, b := c.a, c.b

	s.r1 = s.anchorA.Rotate(a.rot)
	s.r2 = s.anchorB.Rotate(b.rot)

	delta := b.p.Add(s.r2).Sub(a.p.Add(s.r1))
	dist := delta.Length()
	if dist > 1e-9 {
		s.n = delta.Mult(1 / dist)
	} else {
		s.n = Vector{0, 1}
	}
	s.applied = false
}

func (s *DampedSpring) applyCachedImpulse(c *Constraint, dtCoef float64) {}

// applyImpulse applies the spring's Hooke's-law force plus a damping
// term proportional to the closing velocity, converted to an impulse for
// this step. The solver calls it once per iteration; only the first call
// after preStep applies anything.
func (s *DampedSpring) applyImpulse(c *Constraint, dt float64) {
	if s.applied {
		return
	}
	s.applied = true
	a, b := c.a, c.b

	dist := b.p.Add(s.r2).Sub(a.p.Add(s.r1)).Dot(s.n)
	relVel := relativeVelocity(a, b, s.r1, s.r2).Dot(s.n)

	force := (dist-s.restLength)*s.stiffness + relVel*s.damping
	s.jAcc = force * dt

	j := s.n.Mult(s.jAcc)
	a.ApplyImpulseAtLocalOffset(j, s.r1)
	b.ApplyImpulseAtLocalOffset(j.Neg(), s.r2)
}

func (s *DampedSpring) getImpulse(c *Constraint) float64 {
	if s.jAcc < 0 {
		return -s.jAcc
	}
	return s.jAcc
}
