package physics

import "math"

// spatialHandle is the entry a SpaceHash stores per shape, once in every
// bucket the shape's AABB overlaps; refs counts those bucket entries.
// Remove drops the handle from the table and deletes all of its bucket
// entries in one call, without consulting refs.
type spatialHandle struct {
	shape *Shape
	bb    BB // bounding box the shape was filed under
	refs  int
}

// SpaceHash is the broad phase: a bucketed uniform grid. Shapes are filed
// under every cell their AABB overlaps; queries walk only the cells a
// query shape/ray touches, instead of testing every shape pair.
//
// cellSize should be close to the typical shape size in the scene: too
// small and large shapes span (and get tested against) too many cells,
// too large and the grid stops culling anything.
type SpaceHash struct {
	cellSize float64
	numCells int

	table   map[int]*[]*spatialHandle
	handles map[*Shape]*spatialHandle

	stamp   uint
	visited map[*Shape]uint
}

// NewSpaceHash creates a grid with the given cell size and bucket table
// size (the table size need not match the number of live cells; it's the
// modulus used to fold infinite cell coordinates into a finite table).
func NewSpaceHash(cellSize float64, numCells int) *SpaceHash {
	if numCells < 1 {
		numCells = 1
	}
	return &SpaceHash{
		cellSize: cellSize,
		numCells: numCells,
		table:    make(map[int]*[]*spatialHandle),
		handles:  make(map[*Shape]*spatialHandle),
		visited:  make(map[*Shape]uint),
	}
}

func (h *SpaceHash) floorCell(x float64) int {
	return int(math.Floor(x / h.cellSize))
}

func (h *SpaceHash) hashCell(i, j int) int {
	// Large odd multipliers spread adjacent cells across the table; folded
	// into [0, numCells) with a Go-safe modulus (no negative results).
	v := (i*1640531513 ^ j*2654435761)
	v %= h.numCells
	if v < 0 {
		v += h.numCells
	}
	return v
}

func (h *SpaceHash) bucket(i, j int) *[]*spatialHandle {
	key := h.hashCell(i, j)
	b, ok := h.table[key]
	if !ok {
		empty := []*spatialHandle{}
		b = &empty
		h.table[key] = b
	}
	return b
}

func (h *SpaceHash) cellRange(bb BB) (lo, hi [2]int) {
	lo = [2]int{h.floorCell(bb.L), h.floorCell(bb.B)}
	hi = [2]int{h.floorCell(bb.R), h.floorCell(bb.T)}
	return
}

// Insert files the shape under its current AABB.
func (h *SpaceHash) Insert(s *Shape) {
	if _, ok := h.handles[s]; ok {
		h.Remove(s)
	}

	bb := s.BB()
	handle := &spatialHandle{shape: s, bb: bb}
	h.handles[s] = handle

	lo, hi := h.cellRange(bb)
	for i := lo[0]; i <= hi[0]; i++ {
		for j := lo[1]; j <= hi[1]; j++ {
			b := h.bucket(i, j)
			*b = append(*b, handle)
			handle.refs++
		}
	}
}

// Remove drops every bucket entry for the shape.
func (h *SpaceHash) Remove(s *Shape) {
	handle, ok := h.handles[s]
	if !ok {
		return
	}
	delete(h.handles, s)
	delete(h.visited, s)

	lo, hi := h.cellRange(handle.bb)
	for i := lo[0]; i <= hi[0]; i++ {
		for j := lo[1]; j <= hi[1]; j++ {
			key := h.hashCell(i, j)
			b, ok := h.table[key]
			if !ok {
				continue
			}
			for idx, hd := range *b {
				if hd == handle {
					*b = append((*b)[:idx], (*b)[idx+1:]...)
					handle.refs--
					break
				}
			}
		}
	}
}

// Reindex re-files a shape whose AABB has moved since it was last
// inserted (or reindexed).
func (h *SpaceHash) Reindex(s *Shape) {
	h.Remove(s)
	h.Insert(s)
}

// ReindexAll re-files every shape currently held by the hash, rebuilding
// it from scratch, e.g. after bulk geometry changes.
func (h *SpaceHash) ReindexAll() {
	shapes := make([]*Shape, 0, len(h.handles))
	for s := range h.handles {
		shapes = append(shapes, s)
	}
	for _, s := range shapes {
		h.Reindex(s)
	}
}

// Each visits every shape currently held by the hash, exactly once.
func (h *SpaceHash) Each(f func(*Shape)) {
	for s := range h.handles {
		f(s)
	}
}

func (h *SpaceHash) nextStamp() uint {
	h.stamp++
	return h.stamp
}

// Query visits every shape whose cells overlap bb and whose current AABB
// intersects bb, each exactly once. Callers are responsible for any exact
// shape-geometry test; this only narrows the candidate set.
func (h *SpaceHash) Query(bb BB, f func(*Shape)) {
	stamp := h.nextStamp()
	lo, hi := h.cellRange(bb)
	for i := lo[0]; i <= hi[0]; i++ {
		for j := lo[1]; j <= hi[1]; j++ {
			key := h.hashCell(i, j)
			b, ok := h.table[key]
			if !ok {
				continue
			}
			for _, handle := range *b {
				if h.visited[handle.shape] == stamp {
					continue
				}
				h.visited[handle.shape] = stamp
				if bb.Intersects(handle.shape.BB()) {
					f(handle.shape)
				}
			}
		}
	}
}

// SegmentQuery walks the grid cells crossed by the ray a->b (a 2D DDA
// traversal) and visits every shape found along the way exactly once,
// in roughly front-to-back order.
func (h *SpaceHash) SegmentQuery(a, b Vector, f func(*Shape)) {
	stamp := h.nextStamp()

	delta := b.Sub(a)
	if delta.LengthSq() == 0 {
		h.Query(NewBB(a.X, a.Y, a.X, a.Y), f)
		return
	}

	cell := h.cellSize

	x, y := a.X, a.Y
	i, j := h.floorCell(x), h.floorCell(y)

	stepX, stepY := 1, 1
	if delta.X < 0 {
		stepX = -1
	}
	if delta.Y < 0 {
		stepY = -1
	}

	nextBoundaryX := float64(i) * cell
	if stepX > 0 {
		nextBoundaryX += cell
	}
	nextBoundaryY := float64(j) * cell
	if stepY > 0 {
		nextBoundaryY += cell
	}

	var tMaxX, tMaxY float64
	if delta.X != 0 {
		tMaxX = (nextBoundaryX - x) / delta.X
	} else {
		tMaxX = math.Inf(1)
	}
	if delta.Y != 0 {
		tMaxY = (nextBoundaryY - y) / delta.Y
	} else {
		tMaxY = math.Inf(1)
	}

	var tDeltaX, tDeltaY float64
	if delta.X != 0 {
		tDeltaX = cell / math.Abs(delta.X)
	} else {
		tDeltaX = math.Inf(1)
	}
	if delta.Y != 0 {
		tDeltaY = cell / math.Abs(delta.Y)
	} else {
		tDeltaY = math.Inf(1)
	}

	visit := func(ci, cj int) {
		key := h.hashCell(ci, cj)
		bucket, ok := h.table[key]
		if !ok {
			return
		}
		for _, handle := range *bucket {
			if h.visited[handle.shape] == stamp {
				continue
			}
			h.visited[handle.shape] = stamp
			f(handle.shape)
		}
	}

	visit(i, j)
	t := 0.0
	for t <= 1.0 {
		if tMaxX < tMaxY {
			t = tMaxX
			tMaxX += tDeltaX
			i += stepX
		} else {
			t = tMaxY
			tMaxY += tDeltaY
			j += stepY
		}
		if t > 1.0 {
			break
		}
		visit(i, j)
	}
}

// Count returns the number of distinct shapes currently held.
func (h *SpaceHash) Count() int { return len(h.handles) }
