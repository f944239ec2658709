package orbits

import (
	"math"
	"slices"
)

// ResolveCollisions merges every pair of overlapping bodies and returns the
// shortened slice. Each merge is perfectly inelastic: mass, momentum and
// volume are conserved. The heavier body survives and absorbs the lighter
// one in place; on equal mass the body at the lower index survives.
//
// Pairs are scanned with the outer index running high to low and the inner
// index running from just below it down to 0. After a removal the indices
// are adjusted so the scan continues with the merged survivor, which means a
// single pass can chain merges (A absorbs B, then A absorbs C).
func ResolveCollisions(bodies []*Body) []*Body {
	for i := len(bodies) - 1; i > 0; i-- {
		for j := i - 1; j >= 0; j-- {
			lower, upper := bodies[j], bodies[i]
			if !overlapping(lower, upper) {
				continue
			}

			if upper.Mass > lower.Mass {
				// the body at i survives. everything past j shifts down one,
				// so the survivor is now at i-1.
				combine(upper, lower)
				bodies = slices.Delete(bodies, j, j+1)
				i--
				continue
			}

			// the body at j survives and i is gone. the outer loop moves on
			// to the body that was below i.
			combine(lower, upper)
			bodies = slices.Delete(bodies, i, i+1)
			break
		}
	}
	return bodies
}

// calculates the final velocity of a and b in a perfectly inelastic collision.
func inelastic(ma, mb float64, va, vb [3]float64) (vc [3]float64) {
	for k := range vc {
		vc[k] = (ma*va[k] + mb*vb[k]) / (ma + mb)
	}
	return
}

// combine b into a. every merged quantity is computed from the state of both
// bodies before either is touched.
func combine(a, b *Body) {
	ma, mb := a.Mass, b.Mass
	velocity := inelastic(ma, mb, a.Velocity, b.Velocity)
	position := inelastic(ma, mb, a.Position, b.Position) // mass-weighted centroid
	// (F_a + F_b) / (m_a + m_b)
	acceleration := inelastic(ma, mb, a.Acceleration, b.Acceleration)
	radius := math.Cbrt(a.Radius*a.Radius*a.Radius + b.Radius*b.Radius*b.Radius)

	a.Mass = ma + mb
	a.Velocity = velocity
	a.Position = position
	a.Acceleration = acceleration
	a.Radius = radius
	if b.Primary && !a.Primary {
		a.Primary = true
		a.Trail.Reset()
	}
}
