package physics

import (
	"math"
	"testing"
)

func TestSpaceFallingBallComesToRestOnGround(t *testing.T) {
	s := NewSpace()
	s.Gravity = V(0, -100)

	ground := NewStaticBody()
	groundShape := NewSegmentShape(ground, V(-320, -240), V(320, -240), 0)
	groundShape.SetElasticity(1)
	groundShape.SetFriction(1)
	s.AddBody(ground)
	s.AddShape(groundShape)

	ball := NewBody(1, MomentForCircle(1, 0, 15, VectorZero()))
	ball.SetPosition(V(0, 0))
	ballShape := NewCircleShape(ball, 15, VectorZero())
	ballShape.SetElasticity(1)
	ballShape.SetFriction(1)
	s.AddBody(ball)
	s.AddShape(ballShape)

	dt := 1.0 / 60.0
	for i := 0; i < 600; i++ {
		s.Step(dt)
	}

	want := -240.0 + 15
	if math.Abs(ball.Position().Y-want) > s.CollisionSlop {
		t.Errorf("ball settled at Y = %v, want within %v of %v", ball.Position().Y, s.CollisionSlop, want)
	}
	if math.Abs(ball.Velocity().Y) >= 1 {
		t.Errorf("ball vertical velocity = %v, want |v| < 1 once resting", ball.Velocity().Y)
	}
}

func TestSpaceElasticBallBouncesOffFloor(t *testing.T) {
	s := NewSpace()
	s.Gravity = V(0, -100)

	ground := NewStaticBody()
	groundShape := NewSegmentShape(ground, V(-50, 0), V(50, 0), 0)
	groundShape.SetElasticity(1)
	s.AddBody(ground)
	s.AddShape(groundShape)

	ball := NewBody(1, MomentForCircle(1, 0, 1, VectorZero()))
	// Slightly overlapping the floor already, falling fast: the very next
	// Step must turn this approach velocity into a separating one.
	ball.SetPosition(V(0, 0.99))
	ball.SetVelocity(V(0, -10))
	ballShape := NewCircleShape(ball, 1, VectorZero())
	ballShape.SetElasticity(1)
	s.AddBody(ball)
	s.AddShape(ballShape)

	s.Step(1.0 / 60.0)

	if ball.Velocity().Y <= 0 {
		t.Fatalf("expected an e=1 bounce to reverse the ball's velocity, got %v", ball.Velocity().Y)
	}
	if ball.Velocity().Y < 7 {
		t.Errorf("post-impact separation velocity = %v, want close to the 10 incoming (minus one step of gravity)", ball.Velocity().Y)
	}
}

func TestSpaceStackedBoxesDoNotInterpenetrate(t *testing.T) {
	s := NewSpace()
	s.Gravity = V(0, -100)
	s.Iterations = 20

	ground := NewStaticBody()
	groundShape := NewBoxShape(ground, 100, 2, 0)
	ground.SetPosition(V(0, -1))
	groundShape.SetFriction(1)
	s.AddBody(ground)
	s.AddShape(groundShape)

	var boxes []*Body
	for i := 0; i < 3; i++ {
		b := NewBody(1, 1.0/12.0*(2*2+2*2))
		b.SetPosition(V(0, float64(i)*2.01))
		sh := NewBoxShape(b, 2, 2, 0)
		sh.SetFriction(1)
		s.AddBody(b)
		s.AddShape(sh)
		boxes = append(boxes, b)
	}

	dt := 1.0 / 60.0
	for i := 0; i < 600; i++ {
		s.Step(dt)
	}

	for i := 1; i < len(boxes); i++ {
		gap := boxes[i].Position().Y - boxes[i-1].Position().Y
		if gap < 1.5 {
			t.Errorf("box %d interpenetrated box %d: gap = %v, want >= ~2", i, i-1, gap)
		}
	}
}

func TestSpacePendulumConservesEnergyApproximately(t *testing.T) {
	s := NewSpace()
	s.Gravity = V(0, -10)
	s.Iterations = 20

	anchor := NewStaticBody()
	s.AddBody(anchor)

	bob := NewBody(1, MomentForCircle(1, 0, 0.5, VectorZero()))
	bob.SetPosition(V(5, 0))
	bobShape := NewCircleShape(bob, 0.5, VectorZero())
	s.AddBody(bob)
	s.AddShape(bobShape)

	joint := NewPinJoint(anchor, bob, VectorZero(), VectorZero())
	s.AddConstraint(joint)

	// Potential energy is measured from the bottom of the swing (y = -5),
	// so the reference energy the drift is relative to is not zero.
	initialEnergy := bob.KineticEnergy() - s.Gravity.Y*bob.Mass()*(bob.Position().Y+5)

	dt := 1.0 / 240.0
	for i := 0; i < 2000; i++ {
		s.Step(dt)
	}

	finalEnergy := bob.KineticEnergy() - s.Gravity.Y*bob.Mass()*(bob.Position().Y+5)
	drift := math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	if drift > 0.2 {
		t.Errorf("pendulum energy drifted by %.1f%%, want < 20%%", drift*100)
	}
}

func TestSpaceSensorShapeReportsNoImpulse(t *testing.T) {
	s := NewSpace()

	static := NewStaticBody()
	sensorShape := NewCircleShape(static, 5, VectorZero())
	sensorShape.SetSensor(true)
	s.AddBody(static)
	s.AddShape(sensorShape)

	ball := NewBody(1, 1)
	ball.SetPosition(V(1, 0))
	ball.SetVelocity(V(-1, 0))
	ballShape := NewCircleShape(ball, 1, VectorZero())
	s.AddBody(ball)
	s.AddShape(ballShape)

	var touched bool
	h := newDefaultHandler()
	h.Begin = func(arb *Arbiter, space *Space) bool {
		touched = true
		return true
	}
	s.AddCollisionHandler(0, 0, h)

	dt := 1.0 / 60.0
	for i := 0; i < 10; i++ {
		s.Step(dt)
	}

	if !touched {
		t.Error("expected the sensor to fire Begin when the ball entered it")
	}
	if ball.Velocity().X >= -0.5 {
		t.Errorf("sensor shape should not have slowed the ball, velocity = %v", ball.Velocity())
	}
}

func TestSpaceMotorDrivesGearedBody(t *testing.T) {
	s := NewSpace()

	a := NewBody(1, 1)
	b := NewBody(1, 1)
	s.AddBody(a)
	s.AddBody(b)

	motor := NewSimpleMotor(a, b, 5)
	gear := NewGearJoint(a, b, 0, -1)
	s.AddConstraint(motor)
	s.AddConstraint(gear)

	dt := 1.0 / 60.0
	for i := 0; i < 120; i++ {
		s.Step(dt)
	}

	if math.Abs(b.AngularVelocity()-a.AngularVelocity()*-1) > 1 {
		t.Errorf("gear ratio not maintained: a.w=%v b.w=%v", a.AngularVelocity(), b.AngularVelocity())
	}
}

func TestSpaceBroadPhaseDeterministicContactCount(t *testing.T) {
	build := func() *Space {
		s := NewSpace()
		s.Gravity = V(0, -20)
		for i := 0; i < 10; i++ {
			b := NewBody(1, 1)
			b.SetPosition(V(float64(i)*0.5, float64(i)))
			sh := NewCircleShape(b, 1, VectorZero())
			s.AddBody(b)
			s.AddShape(sh)
		}
		return s
	}

	s1 := build()
	s2 := build()

	dt := 1.0 / 60.0
	for i := 0; i < 60; i++ {
		s1.Step(dt)
		s2.Step(dt)
	}

	if len(s1.arbiters) != len(s2.arbiters) {
		t.Errorf("arbiter counts diverged across identical runs: %d vs %d", len(s1.arbiters), len(s2.arbiters))
	}
}
