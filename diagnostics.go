package orbits

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// TotalEnergy is the kinetic plus gravitational potential energy of the
// system. It should stay nearly constant between collisions; merges
// dissipate energy. Coincident bodies make the potential infinite.
func TotalEnergy(bodies []*Body, G float64) float64 {
	var kinetic, potential float64
	for i, a := range bodies {
		kinetic += 0.5 * a.Mass * a.Velocity.Dot(a.Velocity)
		for _, b := range bodies[i+1:] {
			potential -= G * a.Mass * b.Mass / dist(a, b)
		}
	}
	return kinetic + potential
}

// CenterOfMass is the mass-weighted mean position. An empty collection has
// none and returns ErrEmpty.
func CenterOfMass(bodies []*Body) (mgl64.Vec3, error) {
	if len(bodies) == 0 {
		return mgl64.Vec3{}, fmt.Errorf("center of mass: %w", ErrEmpty)
	}
	var weighted mgl64.Vec3
	total := 0.0
	for _, b := range bodies {
		total += b.Mass
		weighted = weighted.Add(b.Position.Mul(b.Mass))
	}
	return weighted.Mul(1 / total), nil
}

// TotalMomentum is the sum of mass times velocity.
func TotalMomentum(bodies []*Body) (p mgl64.Vec3) {
	for _, b := range bodies {
		p = p.Add(b.Momentum())
	}
	return
}

// TotalMass is the sum of all masses.
func TotalMass(bodies []*Body) (m float64) {
	for _, b := range bodies {
		m += b.Mass
	}
	return
}
