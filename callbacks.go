package physics

// CollisionBeginFunc is called the step a pair of shapes starts touching.
// Returning false rejects the collision for this step: no impulses are
// applied and PreSolve/PostSolve are skipped. If the pair is still
// touching on the next step it is handled normally from then on, and
// Separate fires when its arbiter is dropped; if it has already stopped
// touching, its arbiter is dropped without Separate.
type CollisionBeginFunc func(arb *Arbiter, space *Space) bool

// CollisionPreSolveFunc is called every step a pair of shapes is
// touching, before the solver runs. Returning false skips the solver for
// this pair this step (useful for one-way platforms).
type CollisionPreSolveFunc func(arb *Arbiter, space *Space) bool

// CollisionPostSolveFunc is called every step a pair of shapes is
// touching, after the solver has run; Arbiter.TotalImpulse is valid here.
type CollisionPostSolveFunc func(arb *Arbiter, space *Space)

// CollisionSeparateFunc is called when a pair's arbiter is dropped after
// Space.CollisionPersistence steps without touching, or immediately if
// either shape is removed while the arbiter still exists.
type CollisionSeparateFunc func(arb *Arbiter, space *Space)

// CollisionHandler is the set of callbacks invoked for collisions between
// a specific pair of collision types (or, for a wildcard handler, between
// one type and anything else).
type CollisionHandler struct {
	TypeA, TypeB uint

	Begin     CollisionBeginFunc
	PreSolve  CollisionPreSolveFunc
	PostSolve CollisionPostSolveFunc
	Separate  CollisionSeparateFunc
}

func defaultBegin(arb *Arbiter, space *Space) bool    { return true }
func defaultPreSolve(arb *Arbiter, space *Space) bool { return true }
func defaultPostSolve(arb *Arbiter, space *Space)     {}
func defaultSeparate(arb *Arbiter, space *Space)      {}

// newDefaultHandler returns a handler whose callbacks are all the
// permissive no-op defaults; used to fill any nil callback of a
// caller-provided handler and as the fallback for untyped pairs.
func newDefaultHandler() *CollisionHandler {
	return &CollisionHandler{
		Begin:     defaultBegin,
		PreSolve:  defaultPreSolve,
		PostSolve: defaultPostSolve,
		Separate:  defaultSeparate,
	}
}

func (h *CollisionHandler) fillDefaults() {
	if h.Begin == nil {
		h.Begin = defaultBegin
	}
	if h.PreSolve == nil {
		h.PreSolve = defaultPreSolve
	}
	if h.PostSolve == nil {
		h.PostSolve = defaultPostSolve
	}
	if h.Separate == nil {
		h.Separate = defaultSeparate
	}
}

type collisionTypePair struct {
	a, b uint
}

func orderedPair(a, b uint) collisionTypePair {
	if a <= b {
		return collisionTypePair{a, b}
	}
	return collisionTypePair{b, a}
}
