package physics

import "math"

// arbiterState tracks an Arbiter's lifecycle across steps, driving which
// collision handler callbacks fire.
type arbiterState int

const (
	arbiterStateFirstCollision arbiterState = iota
	arbiterStateNormal
	arbiterStateIgnore
)

// Arbiter is the persistent contact manifold between a pair of colliding
// shapes. It survives across steps so accumulated impulses can be carried
// forward (warm starting), and across the gap between separation and
// re-collision long enough for late-arriving postSolve/separate callbacks.
type Arbiter struct {
	a, b         *Shape
	bodyA, bodyB *Body

	contacts []*contact

	e float64 // combined restitution
	u float64 // combined friction
	surfaceVr Vector

	touchedStamp uint // space.stamp of the step this arbiter last had contacts
	state        arbiterState

	handler *CollisionHandler
}

func newArbiter(a, b *Shape) *Arbiter {
	return &Arbiter{
		a: a, b: b,
		bodyA: a.body, bodyB: b.body,
	}
}

// update replaces the arbiter's contact set with fresh narrow-phase
// contacts, carrying over accumulated impulses from any contact whose hash
// matches one from the previous step (warm starting).
func (arb *Arbiter) update(contacts []*contact, handler *CollisionHandler, a, b *Shape) {
	old := arb.contacts
	for _, nc := range contacts {
		for _, oc := range old {
			if oc.hash == nc.hash {
				nc.jnAcc = oc.jnAcc
				nc.jtAcc = oc.jtAcc
				break
			}
		}
	}

	arb.contacts = contacts
	arb.a, arb.b = a, b
	arb.bodyA, arb.bodyB = a.body, b.body
	arb.handler = handler
	arb.e = a.e * b.e
	arb.u = a.u * b.u
	arb.surfaceVr = a.surfaceV.Sub(b.surfaceV)

	if arb.state == arbiterStateIgnore {
		arb.state = arbiterStateNormal
	}
}

// ShapeA and ShapeB return the arbiter's two shapes, in the order the
// pair's collision handler sees them.
func (arb *Arbiter) ShapeA() *Shape { return arb.a }
func (arb *Arbiter) ShapeB() *Shape { return arb.b }

// BodyA and BodyB return the arbiter's two bodies.
func (arb *Arbiter) BodyA() *Body { return arb.bodyA }
func (arb *Arbiter) BodyB() *Body { return arb.bodyB }

// ContactCount returns the number of points in the manifold (0-4).
func (arb *Arbiter) ContactCount() int { return len(arb.contacts) }

// ContactNormal returns the manifold's contact normal, pointing from
// ShapeA towards ShapeB.
func (arb *Arbiter) ContactNormal() Vector {
	if len(arb.contacts) == 0 {
		return VectorZero()
	}
	return arb.contacts[0].n
}

// ContactPoint returns the world-space position of contact i.
func (arb *Arbiter) ContactPoint(i int) Vector { return arb.contacts[i].p }

// ContactDepth returns the penetration depth of contact i (negative
// values are separation, not overlap).
func (arb *Arbiter) ContactDepth(i int) float64 { return -arb.contacts[i].dist }

// Restitution returns the combined coefficient of restitution used for
// this pair. Overridable from a begin/preSolve callback via
// SetRestitution.
func (arb *Arbiter) Restitution() float64     { return arb.e }
func (arb *Arbiter) SetRestitution(e float64) { arb.e = e }

// Friction returns the combined coefficient of friction used for this
// pair. Overridable from a begin/preSolve callback via SetFriction.
func (arb *Arbiter) Friction() float64     { return arb.u }
func (arb *Arbiter) SetFriction(u float64) { arb.u = u }

// IsFirstContact reports whether this pair started touching this step.
func (arb *Arbiter) IsFirstContact() bool { return arb.state == arbiterStateFirstCollision }

// preStep computes the effective masses, bias velocity and restitution
// target for every contact, readying the manifold for iterative solving.
func (arb *Arbiter) preStep(dt, slop, biasCoef float64) {
	a, b := arb.bodyA, arb.bodyB

	for _, c := range arb.contacts {
		c.r1 = c.p.Sub(a.p)
		c.r2 = c.p.Sub(b.p)

		nMassK := a.mInv + b.mInv +
			a.iInv*sq(c.r1.Cross(c.n)) + b.iInv*sq(c.r2.Cross(c.n))
		c.nMass = 1 / nMassK

		tangent := c.n.RPerp()
		tMassK := a.mInv + b.mInv +
			a.iInv*sq(c.r1.Cross(tangent)) + b.iInv*sq(c.r2.Cross(tangent))
		c.tMass = 1 / tMassK

		relVel := relativeVelocity(a, b, c.r1, c.r2)
		c.bounce = arb.e * math.Min(0, relVel.Dot(c.n))

		c.bias = -biasCoef * math.Min(0, c.dist+slop) / dt

		c.jBias = 0
	}
}

// applyCachedImpulse re-applies the warm-started accumulated impulses from
// the previous step, scaled by dtCoef (typically 1.0).
func (arb *Arbiter) applyCachedImpulse(dtCoef float64) {
	a, b := arb.bodyA, arb.bodyB
	for _, c := range arb.contacts {
		tangent := c.n.RPerp()
		j := c.n.Mult(c.jnAcc).Add(tangent.Mult(c.jtAcc)).Mult(dtCoef)
		a.ApplyImpulseAtLocalOffset(j.Neg(), c.r1)
		b.ApplyImpulseAtLocalOffset(j, c.r2)
	}
}

// applyImpulse runs one iteration of the sequential-impulse solver over
// every contact in the manifold: bias velocity (positional correction)
// first, then normal and tangent (friction) impulses clamped against the
// Coulomb cone.
func (arb *Arbiter) applyImpulse() {
	a, b := arb.bodyA, arb.bodyB
	surfaceVr := arb.surfaceVr

	for _, c := range arb.contacts {
		n := c.n

		// Bias (pseudo-velocity) channel: pure positional correction that
		// never feeds back into real velocity or restitution.
		vBias := b.vBias.Add(c.r2.Perp().Mult(b.wBias)).Sub(
			a.vBias.Add(c.r1.Perp().Mult(a.wBias)))
		vrBias := vBias.Dot(n)
		jBias := (c.bias - vrBias) * c.nMass
		newJBias := math.Max(c.jBias+jBias, 0)
		jBias = newJBias - c.jBias
		c.jBias = newJBias
		biasImpulse := n.Mult(jBias)
		a.applyBiasImpulse(biasImpulse.Neg(), c.r1)
		b.applyBiasImpulse(biasImpulse, c.r2)

		// Normal impulse.
		relVel := relativeVelocity(a, b, c.r1, c.r2)
		vr := relVel.Dot(n)
		jn := -(c.bounce + vr) * c.nMass
		newJn := math.Max(c.jnAcc+jn, 0)
		jn = newJn - c.jnAcc
		c.jnAcc = newJn

		// Friction impulse, clamped to the Coulomb cone scaled by the
		// normal impulse magnitude.
		tangent := n.RPerp()
		vrt := relVel.Add(surfaceVr).Dot(tangent)
		jt := -vrt * c.tMass
		maxJt := arb.u * c.jnAcc
		newJt := clampVal(c.jtAcc+jt, -maxJt, maxJt)
		jt = newJt - c.jtAcc
		c.jtAcc = newJt

		j := n.Mult(jn).Add(tangent.Mult(jt))
		a.ApplyImpulseAtLocalOffset(j.Neg(), c.r1)
		b.ApplyImpulseAtLocalOffset(j, c.r2)
	}
}

// TotalImpulse returns the sum of accumulated normal+tangent impulses
// across the manifold, in world space. Useful from a postSolve callback
// to gauge collision "intensity" (e.g. for impact sound effects).
func (arb *Arbiter) TotalImpulse() Vector {
	sum := VectorZero()
	for _, c := range arb.contacts {
		tangent := c.n.RPerp()
		sum = sum.Add(c.n.Mult(c.jnAcc)).Add(tangent.Mult(c.jtAcc))
	}
	return sum
}

func relativeVelocity(a, b *Body, r1, r2 Vector) Vector {
	bv := b.v.Add(r2.Perp().Mult(b.w))
	av := a.v.Add(r1.Perp().Mult(a.w))
	return bv.Sub(av)
}

func sq(x float64) float64 { return x * x }

func clampVal(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
