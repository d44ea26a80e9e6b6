package physics

import "math"

// shapePairKey identifies an unordered pair of shapes for the arbiter
// table, ordered by shape id so (a,b) and (b,a) hash identically.
type shapePairKey struct {
	a, b uint
}

func makeShapePairKey(a, b *Shape) shapePairKey {
	if a.id <= b.id {
		return shapePairKey{a.id, b.id}
	}
	return shapePairKey{b.id, a.id}
}

// Space is the simulation world: it owns every body, shape and
// constraint, and drives the fixed-timestep Step that advances them.
type Space struct {
	Gravity Vector
	Damping float64

	Iterations int

	// CollisionSlop is the amount of penetration contacts are allowed
	// before the solver tries to push them apart.
	CollisionSlop float64
	// CollisionBias is the fraction of remaining penetration (after slop)
	// corrected per second of simulated time; Step turns it into the
	// per-step fraction 1-(1-CollisionBias)^dt (about 0.1 at 60 Hz for
	// the default), applied as a pseudo-velocity that never adds kinetic
	// energy.
	CollisionBias float64
	// CollisionPersistence is the number of consecutive steps without a
	// narrow-phase hit after which an arbiter is dropped (firing
	// Separate). Until then it keeps its last contacts, so a pair that
	// touches again within that window is warm-started from them.
	CollisionPersistence uint

	bodies      []*Body
	staticShapes *SpaceHash
	dynamicShapes *SpaceHash

	constraints []*Constraint

	arbiters map[shapePairKey]*Arbiter

	handlers         map[collisionTypePair]*CollisionHandler
	wildcardHandlers map[uint]*CollisionHandler
	defaultHandler   *CollisionHandler

	locked        bool
	postStepQueue []func()
	postStepSeen  map[any]bool

	stamp uint
}

// NewSpace creates an empty space with sane default tuning parameters.
func NewSpace() *Space {
	return &Space{
		Gravity:              VectorZero(),
		Damping:              1,
		Iterations:           10,
		CollisionSlop:        0.1,
		CollisionBias:        1 - math.Pow(0.9, 60),
		CollisionPersistence: 3,

		staticShapes:  NewSpaceHash(10, 1999),
		dynamicShapes: NewSpaceHash(10, 1999),

		arbiters:         make(map[shapePairKey]*Arbiter),
		handlers:         make(map[collisionTypePair]*CollisionHandler),
		wildcardHandlers: make(map[uint]*CollisionHandler),
		defaultHandler:   newDefaultHandler(),
		postStepSeen:     make(map[any]bool),
	}
}

// IsLocked reports whether the space is mid-Step; Add/Remove calls made
// while locked are deferred to a post-step callback automatically.
func (s *Space) IsLocked() bool { return s.locked }

// AddCollisionHandler registers (or replaces) the handler for the
// unordered pair (typeA, typeB). Any nil callback on h defaults to the
// permissive no-op.
func (s *Space) AddCollisionHandler(typeA, typeB uint, h *CollisionHandler) {
	h.fillDefaults()
	h.TypeA, h.TypeB = typeA, typeB
	s.handlers[orderedPair(typeA, typeB)] = h
}

// AddWildcardHandler registers a handler that runs for any collision
// involving collisionType, when no more specific pair handler exists.
func (s *Space) AddWildcardHandler(collisionType uint, h *CollisionHandler) {
	h.fillDefaults()
	s.wildcardHandlers[collisionType] = h
}

// SetDefaultCollisionHandler replaces the fallback handler used for pairs
// with no specific or wildcard handler registered. It defaults to a
// handler that always accepts the collision.
func (s *Space) SetDefaultCollisionHandler(h *CollisionHandler) {
	h.fillDefaults()
	s.defaultHandler = h
}

func (s *Space) lookupHandler(typeA, typeB uint) *CollisionHandler {
	if h, ok := s.handlers[orderedPair(typeA, typeB)]; ok {
		return h
	}
	if h, ok := s.wildcardHandlers[typeA]; ok {
		return h
	}
	if h, ok := s.wildcardHandlers[typeB]; ok {
		return h
	}
	return s.defaultHandler
}

// AddBody adds a body to the space. If called while the space is locked
// (from inside a callback during Step), the add is deferred until Step
// finishes.
func (s *Space) AddBody(b *Body) *Body {
	if s.locked {
		s.AddPostStepCallback(func() { s.AddBody(b) })
		return b
	}
	assert(b.space == nil, "Body is already added to a space")
	b.space = s
	s.bodies = append(s.bodies, b)
	return b
}

// RemoveBody removes a body (and, implicitly, leaves its shapes and
// constraints dangling - callers must remove those first).
func (s *Space) RemoveBody(b *Body) {
	if s.locked {
		s.AddPostStepCallback(func() { s.RemoveBody(b) })
		return
	}
	for i, bb := range s.bodies {
		if bb == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			break
		}
	}
	b.space = nil
}

// AddShape adds a shape to the space's broad phase, filing it under the
// static or dynamic hash depending on its body's type.
func (s *Space) AddShape(shape *Shape) *Shape {
	if s.locked {
		s.AddPostStepCallback(func() { s.AddShape(shape) })
		return shape
	}
	assert(shape.space == nil, "Shape is already added to a space")
	shape.id = nextShapeID()
	shape.space = s
	shape.body.addShape(shape)
	shape.CacheBB()
	s.hashFor(shape).Insert(shape)
	return shape
}

// RemoveShape removes a shape from the broad phase and clears any
// arbiters referencing it, firing Separate first.
func (s *Space) RemoveShape(shape *Shape) {
	if s.locked {
		s.AddPostStepCallback(func() { s.RemoveShape(shape) })
		return
	}
	for key, arb := range s.arbiters {
		if arb.a == shape || arb.b == shape {
			if arb.state != arbiterStateIgnore {
				arb.handler.Separate(arb, s)
			}
			delete(s.arbiters, key)
		}
	}
	s.hashFor(shape).Remove(shape)
	shape.body.removeShape(shape)
	shape.space = nil
}

func (s *Space) hashFor(shape *Shape) *SpaceHash {
	if shape.body.IsStatic() {
		return s.staticShapes
	}
	return s.dynamicShapes
}

// AddConstraint adds a constraint to the space's solver.
func (s *Space) AddConstraint(c *Constraint) *Constraint {
	if s.locked {
		s.AddPostStepCallback(func() { s.AddConstraint(c) })
		return c
	}
	assert(c.space == nil, "Constraint is already added to a space")
	c.space = s
	c.a.addConstraint(c)
	c.b.addConstraint(c)
	s.constraints = append(s.constraints, c)
	return c
}

// RemoveConstraint removes a constraint from the space's solver.
func (s *Space) RemoveConstraint(c *Constraint) {
	if s.locked {
		s.AddPostStepCallback(func() { s.RemoveConstraint(c) })
		return
	}
	for i, cc := range s.constraints {
		if cc == c {
			s.constraints = append(s.constraints[:i], s.constraints[i+1:]...)
			break
		}
	}
	c.a.removeConstraint(c)
	c.b.removeConstraint(c)
	c.space = nil
}

// AddPostStepCallback schedules f to run once, immediately after the
// current Step finishes unlocking the space. Safe to call from any
// collision callback. Outside of Step, f runs immediately.
func (s *Space) AddPostStepCallback(f func()) {
	if !s.locked {
		f()
		return
	}
	s.postStepQueue = append(s.postStepQueue, f)
}

// EachBody visits every body in the space.
func (s *Space) EachBody(f func(*Body)) {
	for _, b := range s.bodies {
		f(b)
	}
}

// EachConstraint visits every constraint in the space.
func (s *Space) EachConstraint(f func(*Constraint)) {
	for _, c := range s.constraints {
		f(c)
	}
}

func nextShapeID() uint {
	shapeIDCounter++
	return shapeIDCounter
}

// Step advances the simulation by dt seconds:
//
//  1. integrate positions using this step's starting velocity
//  2. reindex every dynamic shape's AABB and run the broad and narrow
//     phases against the new positions, updating the persistent arbiter
//     table and firing Begin
//  3. fire PreSolve, dropping rejected, sensor-only, or persistence-only
//     arbiters from the set the solver sees this step
//  4. preStep every surviving arbiter and constraint (effective mass,
//     bias targets) - still against the pre-gravity velocity
//  5. integrate velocities (gravity, damping, clear forces)
//  6. warm-start from last step's accumulated impulses
//  7. run the iterative sequential-impulse solver
//  8. fire PostSolve for arbiters that were solved this step
//  9. drop arbiters that have gone CollisionPersistence steps without a
//     hit, firing Separate for each
//
// Step locks the space for its duration; Add/Remove calls made from
// inside a callback are queued and flushed once Step returns.
func (s *Space) Step(dt float64) {
	if dt == 0 {
		return
	}

	s.locked = true
	s.stamp++

	for _, b := range s.bodies {
		b.positionFunc(b, dt)
	}

	s.reindexDynamicShapes()
	s.updateArbiters(dt)

	biasCoef := 1 - math.Pow(1-s.CollisionBias, dt)
	solvedArbiters := s.solvedArbiters()

	for _, arb := range solvedArbiters {
		arb.preStep(dt, s.CollisionSlop, biasCoef)
	}
	for _, c := range s.constraints {
		c.preStep(dt)
	}

	for _, b := range s.bodies {
		b.velocityFunc(b, s.Gravity, math.Pow(s.Damping, dt), dt)
	}

	for _, arb := range solvedArbiters {
		arb.applyCachedImpulse(1)
	}
	for _, c := range s.constraints {
		c.applyCachedImpulse(1)
	}

	for i := 0; i < s.Iterations; i++ {
		for _, arb := range solvedArbiters {
			arb.applyImpulse()
		}
		for _, c := range s.constraints {
			c.applyImpulse(dt)
		}
	}

	for _, arb := range solvedArbiters {
		arb.handler.PostSolve(arb, s)
	}

	s.pruneArbiters()

	s.locked = false
	s.flushPostStep()
}

func (s *Space) reindexDynamicShapes() {
	for _, b := range s.bodies {
		if b.IsStatic() {
			continue
		}
		b.EachShape(func(sh *Shape) {
			sh.CacheBB()
			s.dynamicShapes.Reindex(sh)
		})
	}
}

// updateArbiters runs the broad and narrow phases: every dynamic shape is
// queried against both hashes, candidate pairs are filtered and narrow
// phased, and the resulting contacts fold into the persistent Arbiter
// table (creating new arbiters and firing Begin as needed).
func (s *Space) updateArbiters(dt float64) {
	seenPair := make(map[shapePairKey]bool)

	s.dynamicShapes.Each(func(a *Shape) {
		test := func(b *Shape) {
			if a == b {
				return
			}
			key := makeShapePairKey(a, b)
			if seenPair[key] {
				return
			}
			seenPair[key] = true

			if !s.shouldCollide(a, b) {
				return
			}

			cs := collide(a, b)
			s.foldContacts(a, b, cs)
		}
		s.dynamicShapes.Query(a.BB(), test)
		s.staticShapes.Query(a.BB(), test)
	})
}

// shouldCollide applies the shape filter, skips pairs whose bodies both
// have infinite mass, and applies the collideBodies=false constraint rule:
// two bodies directly joined by a constraint that opted out of collisions
// never generate contacts against each other.
func (s *Space) shouldCollide(a, b *Shape) bool {
	if a.body == b.body {
		return false
	}
	if a.body.mInv == 0 && b.body.mInv == 0 {
		return false
	}
	if a.filter.Reject(b.filter) {
		return false
	}
	for _, c := range a.body.constraintList {
		if !c.collideBodies {
			if (c.a == a.body && c.b == b.body) || (c.a == b.body && c.b == a.body) {
				return false
			}
		}
	}
	return true
}

func (s *Space) foldContacts(a, b *Shape, cs []*contact) {
	key := makeShapePairKey(a, b)

	if len(cs) == 0 {
		// A miss leaves an existing arbiter's contacts (and their
		// accumulated impulses) in place until pruneArbiters drops it.
		return
	}

	handler := s.lookupHandler(a.collisionType, b.collisionType)
	// Present the pair in the order its handler was registered with,
	// flipping the normals so they still point from a to b.
	if handler.TypeA != handler.TypeB && a.collisionType == handler.TypeB && b.collisionType == handler.TypeA {
		a, b = b, a
		for _, c := range cs {
			c.n = c.n.Neg()
		}
	}

	arb, existed := s.arbiters[key]
	if !existed {
		arb = newArbiter(a, b)
		arb.state = arbiterStateFirstCollision
		s.arbiters[key] = arb
	}
	arb.update(cs, handler, a, b)
	arb.touchedStamp = s.stamp

	if !existed {
		if !handler.Begin(arb, s) {
			arb.state = arbiterStateIgnore
		}
	}
}

// solvedArbiters returns the arbiters touched this step that should be
// fed to the solver: sensors never generate impulses (they exist purely
// to drive callbacks), and a false PreSolve skips the pair for this step
// without forgetting it (still eligible next step).
func (s *Space) solvedArbiters() []*Arbiter {
	var out []*Arbiter
	for _, arb := range s.arbiters {
		if arb.touchedStamp != s.stamp || arb.state == arbiterStateIgnore {
			continue
		}
		if len(arb.contacts) == 0 {
			continue
		}
		if arb.a.sensor || arb.b.sensor {
			arb.handler.PreSolve(arb, s)
			continue
		}
		if !arb.handler.PreSolve(arb, s) {
			continue
		}
		out = append(out, arb)
		if arb.state == arbiterStateFirstCollision {
			arb.state = arbiterStateNormal
		}
	}
	return out
}

// pruneArbiters drops arbiters that have gone CollisionPersistence steps
// without a hit, firing Separate for each one not being ignored. Until
// then an arbiter keeps its last contacts, so a single missed
// narrow-phase hit doesn't discard its warm-start state.
func (s *Space) pruneArbiters() {
	for key, arb := range s.arbiters {
		if arb.touchedStamp == s.stamp && len(arb.contacts) > 0 {
			continue
		}
		if s.stamp-arb.touchedStamp >= s.CollisionPersistence {
			if arb.state != arbiterStateIgnore {
				arb.handler.Separate(arb, s)
			}
			delete(s.arbiters, key)
		}
	}
}

func (s *Space) flushPostStep() {
	for len(s.postStepQueue) > 0 {
		queue := s.postStepQueue
		s.postStepQueue = nil
		for _, f := range queue {
			f()
		}
	}
}
