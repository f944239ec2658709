package orbits

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

/*

gravity section

*/

// ForceField fills in the Acceleration of every body from the gravity of
// all the others. Implementations must overwrite, not accumulate, and must
// only read Mass, Position and Radius.
type ForceField interface {
	ComputeAccelerations(bodies []*Body, G float64)
}

// DirectField is the exact O(n²) pairwise sum. With Workers > 1 the bodies
// are split among that many goroutines; each one writes only the
// accelerations of its own bodies.
type DirectField struct {
	Workers int
}

func (f DirectField) ComputeAccelerations(bodies []*Body, G float64) {
	eachBody(bodies, f.Workers, func(b *Body) {
		var a mgl64.Vec3
		for _, other := range bodies {
			if other == b {
				continue
			}
			a = a.Add(pull(b, other, G))
		}
		b.Acceleration = a
	})
}

// acceleration of b due to the gravity of other.
// the separation is clamped to the sum of the radii to avoid the singularity
// when centers nearly coincide. coincident centers contribute nothing since
// the direction is undefined.
func pull(b, other *Body, G float64) mgl64.Vec3 {
	d := other.Position.Sub(b.Position)
	l := d.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	r := math.Max(l, b.Radius+other.Radius)
	return d.Mul(G * other.Mass / (r * r * l)) // normalize(d) * G*m/r²
}

// runs fn once for each body, split into contiguous groups over at most
// workers goroutines.
func eachBody(bodies []*Body, workers int, fn func(b *Body)) {
	if workers <= 1 || len(bodies) < 2 {
		for _, b := range bodies {
			fn(b)
		}
		return
	}
	if workers > len(bodies) {
		workers = len(bodies)
	}

	groupsize := (len(bodies) + workers - 1) / workers
	wg := sync.WaitGroup{}
	for lo := 0; lo < len(bodies); lo += groupsize {
		hi := lo + groupsize
		if hi > len(bodies) {
			hi = len(bodies)
		}
		wg.Add(1)
		go func(group []*Body) {
			defer wg.Done()
			for _, b := range group {
				fn(b)
			}
		}(bodies[lo:hi])
	}
	wg.Wait()
}
