package orbits

import "github.com/go-gl/mathgl/mgl64"

const (
	TrailCapacity = 200 // positions kept per body
	TrailInterval = 3   // completed steps between samples
)

// Trail is a fixed-capacity ring of recent positions. Once full, pushing
// evicts the oldest entry. The zero value is an empty trail.
type Trail struct {
	buf  [TrailCapacity]mgl64.Vec3
	head int // index of the oldest entry
	n    int
}

// Push appends p, evicting the oldest position when full.
func (t *Trail) Push(p mgl64.Vec3) {
	if t.n < TrailCapacity {
		t.buf[(t.head+t.n)%TrailCapacity] = p
		t.n++
		return
	}
	t.buf[t.head] = p
	t.head = (t.head + 1) % TrailCapacity
}

// Len is the number of stored positions.
func (t *Trail) Len() int { return t.n }

// At returns the i-th stored position, 0 being the oldest.
func (t *Trail) At(i int) mgl64.Vec3 {
	if i < 0 || i >= t.n {
		panic("orbits: trail index out of range")
	}
	return t.buf[(t.head+i)%TrailCapacity]
}

// Points copies the trail, oldest first.
func (t *Trail) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, t.n)
	for i := range out {
		out[i] = t.buf[(t.head+i)%TrailCapacity]
	}
	return out
}

// Reset empties the trail.
func (t *Trail) Reset() {
	t.head, t.n = 0, 0
}
