// Package orbits simulates a small set of massive bodies under mutual
// Newtonian gravitation, integrates their trajectories over discrete time
// steps and merges bodies that collide.
//
// A host calls Simulation.Tick once per frame, or drives the passes itself in
// this order: ForceField.ComputeAccelerations, Integrator.Step,
// ResolveCollisions.
package orbits

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is the mutable physical state of one celestial object.
type Body struct {
	Mass         float64 // > 0
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3 // filled in by a ForceField
	Radius       float64    // collision extent, >= 0
	Primary      bool       // luminous/central body; never records a trail
	Trail        Trail      // recent positions, oldest first

	prevAcceleration mgl64.Vec3 // a(t) held between the verlet phases
}

// NewBody creates a body, rejecting non-positive mass and negative radius.
func NewBody(mass float64, position, velocity mgl64.Vec3, radius float64, primary bool) (*Body, error) {
	b := &Body{
		Mass:     mass,
		Position: position,
		Velocity: velocity,
		Radius:   radius,
		Primary:  primary,
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Body) validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil body", ErrInvalidMass)
	}
	if !finite(b.Mass) || b.Mass <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidMass, b.Mass)
	}
	if !finite(b.Radius) || b.Radius < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidRadius, b.Radius)
	}
	return nil
}

// Momentum is mass times velocity.
func (b *Body) Momentum() mgl64.Vec3 {
	return b.Velocity.Mul(b.Mass)
}

func (b *Body) String() string {
	return fmt.Sprintf("m: %.4f r: %.4f primary: %t\np: [%.2f, %.2f, %.2f]\nv: [%.2f, %.2f, %.2f]\n",
		b.Mass, b.Radius, b.Primary,
		b.Position[0], b.Position[1], b.Position[2],
		b.Velocity[0], b.Velocity[1], b.Velocity[2])
}

// distance between the centers of two bodies.
func dist(a, b *Body) float64 {
	return b.Position.Sub(a.Position).Len()
}

// do the spheres of a and b intersect?
func overlapping(a, b *Body) bool {
	return dist(a, b) < a.Radius+b.Radius
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Volume of a sphere from its radius.
func Volume(radius float64) float64 {
	return 4.0 / 3.0 * math.Pi * (radius * radius * radius)
}

// RadiusForVolume is the sphere radius from its volume.
func RadiusForVolume(volume float64) float64 {
	return math.Cbrt((3.0 * volume) / (4.0 * math.Pi))
}

// RadiusForDensity is the sphere radius given a mass and density.
func RadiusForDensity(mass, density float64) float64 {
	return math.Cbrt((3.0 * mass) / (4.0 * math.Pi * density))
}
