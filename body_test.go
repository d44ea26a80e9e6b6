package physics

import (
	"math"
	"testing"
)

func TestBodyMassInv(t *testing.T) {
	b := NewBody(2, 4)
	if b.MassInv() != 0.5 {
		t.Errorf("MassInv = %v, want 0.5", b.MassInv())
	}

	static := NewStaticBody()
	if static.MassInv() != 0 {
		t.Errorf("static MassInv = %v, want 0", static.MassInv())
	}
	if static.Type() != BodyStatic {
		t.Errorf("static Type = %v, want BodyStatic", static.Type())
	}
}

func TestBodyLocalWorldRoundTrip(t *testing.T) {
	b := NewBody(1, 1)
	b.SetPosition(V(3, 4))
	b.SetAngle(0.7)

	local := V(1, 2)
	world := b.LocalToWorld(local)
	back := b.WorldToLocal(world)

	if !back.Near(local, 1e-9) {
		t.Errorf("LocalToWorld/WorldToLocal round trip = %v, want %v", back, local)
	}
}

func TestBodyUpdateVelocityAppliesGravity(t *testing.T) {
	b := NewBody(1, 1)
	BodyUpdateVelocity(b, V(0, -10), 1, 1)

	if !b.Velocity().Near(V(0, -10), 1e-9) {
		t.Errorf("Velocity = %v, want {0 -10}", b.Velocity())
	}
}

func TestBodyUpdateVelocityNoOpForStatic(t *testing.T) {
	b := NewStaticBody()
	BodyUpdateVelocity(b, V(0, -10), 1, 1)
	if b.Velocity() != VectorZero() {
		t.Errorf("static body velocity changed: %v", b.Velocity())
	}
}

func TestBodyUpdatePositionIntegratesVelocity(t *testing.T) {
	b := NewBody(1, 1)
	b.SetVelocity(V(2, 0))
	BodyUpdatePosition(b, 0.5)

	if !b.Position().Near(V(1, 0), 1e-9) {
		t.Errorf("Position = %v, want {1 0}", b.Position())
	}
}

func TestKineticEnergy(t *testing.T) {
	b := NewBody(2, 3)
	b.SetVelocity(V(2, 0))
	b.SetAngularVelocity(1)

	// 1/2 m v^2 + 1/2 i w^2 = 1/2*2*4 + 1/2*3*1 = 4 + 1.5 = 5.5
	if got := b.KineticEnergy(); math.Abs(got-5.5) > 1e-9 {
		t.Errorf("KineticEnergy = %v, want 5.5", got)
	}
}

func TestApplyImpulseAtWorldPoint(t *testing.T) {
	b := NewBody(1, 1)
	b.SetPosition(VectorZero())

	b.ApplyImpulseAtWorldPoint(V(0, 1), V(1, 0))

	if b.Velocity().Y != 1 {
		t.Errorf("Velocity.Y = %v, want 1", b.Velocity().Y)
	}
	if b.AngularVelocity() == 0 {
		t.Error("expected an off-center impulse to induce spin")
	}
}

func TestMomentForCircleSolidDisk(t *testing.T) {
	// A solid disk (r1=0) of mass m and radius r has I = 1/2 m r^2.
	got := MomentForCircle(2, 0, 3, VectorZero())
	want := 0.5 * 2 * 9.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("MomentForCircle = %v, want %v", got, want)
	}
}
