package physics

import (
	"math"
	"testing"
)

func TestArbiterWarmStartsMatchingContacts(t *testing.T) {
	a := circleBodyAt(V(0, 0), 1)
	b := circleBodyAt(V(1.8, 0), 1)

	arb := newArbiter(a, b)
	handler := newDefaultHandler()

	first := collide(a, b)
	arb.update(first, handler, a, b)
	if len(arb.contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(arb.contacts))
	}
	arb.contacts[0].jnAcc = 5

	second := collide(a, b)
	arb.update(second, handler, a, b)

	if arb.contacts[0].jnAcc != 5 {
		t.Errorf("jnAcc = %v, want 5 (carried over from matching hash)", arb.contacts[0].jnAcc)
	}
}

func TestArbiterApplyImpulseSeparatesBodies(t *testing.T) {
	a := NewBody(1, math.Inf(1))
	a.SetPosition(V(0, 0))
	sa := NewCircleShape(a, 1, VectorZero())
	sa.CacheBB()

	b := NewBody(1, math.Inf(1))
	b.SetPosition(V(1.8, 0))
	b.SetVelocity(V(-1, 0))
	sb := NewCircleShape(b, 1, VectorZero())
	sb.CacheBB()

	arb := newArbiter(sa, sb)
	arb.update(collide(sa, sb), newDefaultHandler(), sa, sb)

	dt := 1.0 / 60.0
	arb.preStep(dt, 0.1, 0.2)
	for i := 0; i < 10; i++ {
		arb.applyImpulse()
	}

	relVel := relativeVelocity(a, b, arb.contacts[0].r1, arb.contacts[0].r2)
	if relVel.Dot(arb.contacts[0].n) < -1e-6 {
		t.Errorf("bodies still approaching after solving: relative normal velocity = %v", relVel.Dot(arb.contacts[0].n))
	}
}
