package orbits

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTrailFillsThenEvictsOldest(t *testing.T) {
	var tr Trail
	for i := 0; i < 50; i++ {
		tr.Push(mgl64.Vec3{float64(i), 0, 0})
	}
	if tr.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", tr.Len())
	}
	if got := tr.At(0); got[0] != 0 {
		t.Errorf("At(0) = %v, want first push", got)
	}

	for i := 50; i < 250; i++ {
		tr.Push(mgl64.Vec3{float64(i), 0, 0})
	}
	if tr.Len() != TrailCapacity {
		t.Fatalf("Len() = %d, want %d", tr.Len(), TrailCapacity)
	}
	if got := tr.At(0); got[0] != 50 {
		t.Errorf("oldest = %v, want 50", got[0])
	}
	if got := tr.At(TrailCapacity - 1); got[0] != 249 {
		t.Errorf("newest = %v, want 249", got[0])
	}

	points := tr.Points()
	if len(points) != TrailCapacity {
		t.Fatalf("len(Points()) = %d", len(points))
	}
	for i, p := range points {
		if p[0] != float64(50+i) {
			t.Fatalf("Points()[%d] = %v, want %d", i, p[0], 50+i)
		}
	}
}

func TestTrailReset(t *testing.T) {
	var tr Trail
	tr.Push(mgl64.Vec3{1, 1, 1})
	tr.Reset()
	if tr.Len() != 0 || len(tr.Points()) != 0 {
		t.Errorf("trail not empty after Reset")
	}
	tr.Push(mgl64.Vec3{2, 2, 2})
	if tr.At(0) != (mgl64.Vec3{2, 2, 2}) {
		t.Errorf("At(0) = %v after reset and push", tr.At(0))
	}
}

func TestTrailAtOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("At on empty trail did not panic")
		}
	}()
	var tr Trail
	tr.At(0)
}
