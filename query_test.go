package physics

import (
	"testing"
)

func addCircle(s *Space, p Vector, r float64) *Shape {
	b := NewBody(1, 1)
	b.SetPosition(p)
	sh := NewCircleShape(b, r, VectorZero())
	s.AddBody(b)
	s.AddShape(sh)
	return sh
}

func TestSpacePointQueryNearestFindsClosest(t *testing.T) {
	s := NewSpace()
	addCircle(s, V(10, 0), 1)
	near := addCircle(s, V(0, 0), 1)

	info, ok := s.PointQueryNearest(V(0, 3), 10, FilterAll)
	if !ok {
		t.Fatal("expected a hit")
	}
	if info.Shape != near {
		t.Errorf("expected the nearer circle to be found, got %v", info.Shape)
	}
}

func TestSpacePointQueryAllVisitsEverythingInRange(t *testing.T) {
	s := NewSpace()
	addCircle(s, V(0, 0), 1)
	addCircle(s, V(3, 0), 1)

	count := 0
	s.PointQueryAll(V(0, 0), 10, FilterAll, func(info PointQueryInfo) { count++ })
	if count != 2 {
		t.Errorf("got %d hits, want 2", count)
	}
}

func TestSpaceSegmentQueryFirstReturnsClosestCrossing(t *testing.T) {
	s := NewSpace()
	addCircle(s, V(5, 0), 1)
	near := addCircle(s, V(2, 0), 1)

	info, ok := s.SegmentQueryFirst(V(-10, 0), V(10, 0), FilterAll)
	if !ok {
		t.Fatal("expected a hit")
	}
	if info.Shape != near {
		t.Errorf("expected the nearer circle's crossing first, got %v", info.Shape)
	}
}

func TestSpaceBBQueryRespectsFilter(t *testing.T) {
	s := NewSpace()
	sh := addCircle(s, V(0, 0), 1)
	sh.SetFilter(NewShapeFilter(0, 0b01))

	hits := 0
	s.BBQuery(NewBB(-5, -5, 5, 5), NewShapeFilter(0, 0b10), func(*Shape) { hits++ })
	if hits != 0 {
		t.Errorf("got %d hits, want 0 for a disjoint category mask", hits)
	}

	hits = 0
	s.BBQuery(NewBB(-5, -5, 5, 5), NewShapeFilter(0, 0b01), func(*Shape) { hits++ })
	if hits != 1 {
		t.Errorf("got %d hits, want 1 for a matching category mask", hits)
	}
}
