package physics

import (
	"math"
	"testing"
)

func freeBody(p Vector) *Body {
	b := NewBody(1, 1)
	b.SetPosition(p)
	return b
}

func TestPinJointHoldsDistance(t *testing.T) {
	a := freeBody(V(0, 0))
	b := freeBody(V(5, 0))
	b.SetVelocity(V(1, 0)) // stretching the pin

	c := NewPinJoint(a, b, VectorZero(), VectorZero())
	if j, ok := c.class.(*PinJoint); !ok || math.Abs(j.Distance()-5) > 1e-9 {
		t.Fatalf("expected initial distance 5, got %v", c.class)
	}

	dt := 1.0 / 60.0
	c.preStep(dt)
	for i := 0; i < 20; i++ {
		c.applyImpulse(dt)
	}

	relVel := relativeVelocity(a, b, c.class.(*PinJoint).r1, c.class.(*PinJoint).r2)
	n := c.class.(*PinJoint).n
	if math.Abs(relVel.Dot(n)) > 0.5 {
		t.Errorf("relative normal velocity = %v, want near 0 after solving a taut pin", relVel.Dot(n))
	}
}

func TestSlideJointAllowsFreeMovementWithinRange(t *testing.T) {
	a := freeBody(V(0, 0))
	b := freeBody(V(3, 0))

	c := NewSlideJoint(a, b, VectorZero(), VectorZero(), 1, 5)
	c.preStep(1.0 / 60.0)

	j := c.class.(*SlideJoint)
	if j.jnAcc != 0 {
		t.Errorf("expected no accumulated impulse while within [min,max], got %v", j.jnAcc)
	}
}

func TestSlideJointClampsAtMax(t *testing.T) {
	a := freeBody(V(0, 0))
	b := freeBody(V(10, 0))
	b.SetVelocity(V(5, 0)) // stretching further past max

	c := NewSlideJoint(a, b, VectorZero(), VectorZero(), 1, 5)
	dt := 1.0 / 60.0
	c.preStep(dt)
	for i := 0; i < 20; i++ {
		c.applyImpulse(dt)
	}

	j := c.class.(*SlideJoint)
	if j.jnAcc > 1e-9 {
		t.Errorf("slide joint impulse should stay <= 0 (it only pulls in), got %v", j.jnAcc)
	}
}

func TestPivotJointPullsSharedPointTogether(t *testing.T) {
	a := freeBody(V(0, 0))
	b := freeBody(V(2, 0))

	c := NewPivotJointAnchors(a, b, V(1, 0), V(-1, 0))
	dt := 1.0 / 60.0
	for i := 0; i < 30; i++ {
		c.preStep(dt)
		c.applyCachedImpulse(1)
		for k := 0; k < 10; k++ {
			c.applyImpulse(dt)
		}
	}

	worldA := a.LocalToWorld(V(1, 0))
	worldB := b.LocalToWorld(V(-1, 0))
	if VectorDist(worldA, worldB) > 0.1 {
		t.Errorf("pivot anchor points did not converge: %v vs %v", worldA, worldB)
	}
}

func TestGrooveJointClampsAnchorOntoSegment(t *testing.T) {
	a := freeBody(V(0, 0))
	b := freeBody(V(5, 5))

	c := NewGrooveJoint(a, b, V(-10, 0), V(10, 0), VectorZero())
	c.preStep(1.0 / 60.0)

	j := c.class.(*GrooveJoint)
	clamped := a.p.Add(j.r1)
	if math.Abs(clamped.Y) > 1e-9 {
		t.Errorf("expected the clamped anchor to lie on the groove's Y=0 line, got %v", clamped)
	}
}

func TestDampedSpringPullsTowardRestLength(t *testing.T) {
	a := freeBody(V(0, 0))
	b := freeBody(V(10, 0))

	c := NewDampedSpring(a, b, VectorZero(), VectorZero(), 5, 50, 1)
	dt := 1.0 / 60.0
	c.preStep(dt)
	c.applyImpulse(dt)

	// Stretched past rest length: spring should pull b back toward a (negative X).
	if b.v.X >= 0 {
		t.Errorf("expected stretched spring to pull b toward a, got velocity %v", b.v)
	}
}

func TestDampedRotarySpringAppliesRestoringTorque(t *testing.T) {
	a := freeBody(V(0, 0))
	b := freeBody(V(0, 0))
	b.SetAngle(1.0)

	c := NewDampedRotarySpring(a, b, 0, 10, 1)
	c.applyImpulse(1.0 / 60.0)

	if b.w >= 0 {
		t.Errorf("expected restoring torque to reduce b's angle, got angular velocity %v", b.w)
	}
}

func TestGearJointLocksAngularVelocityRatio(t *testing.T) {
	a := freeBody(V(0, 0))
	a.SetAngularVelocity(2)
	b := freeBody(V(0, 0))

	c := NewGearJoint(a, b, 0, 2)
	dt := 1.0 / 60.0
	for i := 0; i < 20; i++ {
		c.preStep(dt)
		c.applyImpulse(dt)
	}

	if math.Abs(b.w-a.w*2) > 0.5 {
		t.Errorf("b.w = %v, want close to a.w*ratio = %v", b.w, a.w*2)
	}
}

func TestSimpleMotorDrivesRelativeRate(t *testing.T) {
	a := freeBody(V(0, 0))
	b := freeBody(V(0, 0))

	c := NewSimpleMotor(a, b, 3)
	dt := 1.0 / 60.0
	for i := 0; i < 30; i++ {
		c.preStep(dt)
		c.applyImpulse(dt)
	}

	if math.Abs((b.w-a.w)-3) > 0.5 {
		t.Errorf("b.w-a.w = %v, want close to rate 3", b.w-a.w)
	}
}
