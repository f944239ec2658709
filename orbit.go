package orbits

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

/*

orbit initialization section

the constructors below only create new bodies. the central or parent body
is read, never modified.

*/

// Orbit describes a body placed on a prescribed orbit around a reference
// mass. The body starts at Radius from the reference, at Angle (radians)
// within the orbital plane, moving perpendicular to the radius vector.
// A non-zero Eccentricity starts the body at apoapsis.
type Orbit struct {
	Radius       float64
	Eccentricity float64    // [0, 1)
	Angle        float64    // radians
	Axis         mgl64.Vec3 // orbital plane normal; zero means +Z
	Mass         float64    // of the new body
	BodyRadius   float64    // of the new body
}

// OrbitalSpeed is sqrt(G*M/r) * sqrt((1-e)/(1+e)), the circular speed for
// e = 0 and the apoapsis speed of an ellipse otherwise.
func OrbitalSpeed(G, M, r, e float64) float64 {
	return math.Sqrt(G*M/r) * math.Sqrt((1-e)/(1+e))
}

// NewOrbit places a body on an orbit around central. The position is
// relative to central's position; central is taken to be at rest.
func NewOrbit(central *Body, G float64, o Orbit) (*Body, error) {
	if central == nil {
		return nil, fmt.Errorf("%w: nil central body", ErrInvalidOrbit)
	}
	pos, vel, err := place(central.Mass, G, o)
	if err != nil {
		return nil, err
	}
	return NewBody(o.Mass, central.Position.Add(pos), vel, o.BodyRadius, false)
}

// NewSatellite places a body on an orbit around parent and carries it along
// with the parent by adding the parent's position and velocity.
func NewSatellite(parent *Body, G float64, o Orbit) (*Body, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: nil parent body", ErrInvalidOrbit)
	}
	pos, vel, err := place(parent.Mass, G, o)
	if err != nil {
		return nil, err
	}
	return NewBody(o.Mass, parent.Position.Add(pos), parent.Velocity.Add(vel), o.BodyRadius, false)
}

// position and velocity of o relative to a reference mass M.
func place(M, G float64, o Orbit) (pos, vel mgl64.Vec3, err error) {
	if err = checkConstant(G); err != nil {
		return
	}
	if !finite(M) || M <= 0 {
		err = fmt.Errorf("%w: reference mass %v", ErrInvalidMass, M)
		return
	}
	if !finite(o.Radius) || o.Radius <= 0 {
		err = fmt.Errorf("%w: radius %v", ErrInvalidOrbit, o.Radius)
		return
	}
	if !(o.Eccentricity >= 0 && o.Eccentricity < 1) {
		err = fmt.Errorf("%w: eccentricity %v outside [0, 1)", ErrInvalidOrbit, o.Eccentricity)
		return
	}
	radial, tangent, err := directions(o.Axis, o.Angle)
	if err != nil {
		return
	}
	pos = radial.Mul(o.Radius)
	vel = tangent.Mul(OrbitalSpeed(G, M, o.Radius, o.Eccentricity))
	return
}

// unit radial vector at angle within the plane normal to axis, and the
// direction of travel: the radial vector rotated 90° about the axis.
func directions(axis mgl64.Vec3, angle float64) (radial, tangent mgl64.Vec3, err error) {
	if axis == (mgl64.Vec3{}) {
		axis = mgl64.Vec3{0, 0, 1}
	}
	l := axis.Len()
	if !finite(l) || l == 0 {
		err = fmt.Errorf("%w: axis %v", ErrInvalidOrbit, axis)
		return
	}
	n := axis.Mul(1 / l)

	// in-plane basis (u, w) with u × w = n. for +Z this is (X, Y).
	ref := mgl64.Vec3{0, 1, 0}
	if math.Abs(n.Dot(ref)) > 0.9 {
		ref = mgl64.Vec3{1, 0, 0}
	}
	u := ref.Cross(n).Normalize()
	w := n.Cross(u)

	sin, cos := math.Sincos(angle)
	radial = u.Mul(cos).Add(w.Mul(sin))
	tangent = n.Cross(radial)
	return
}

// Binary describes two primary bodies orbiting their common center of mass,
// which is placed at the origin.
type Binary struct {
	Separation   float64
	TotalMass    float64
	MassFraction float64    // share of TotalMass in the first body; zero means 0.5
	Angle        float64    // direction from the first body to the second, radians
	Axis         mgl64.Vec3 // orbital plane normal; zero means +Z
	BodyRadius   float64
}

// NewBinaryPair creates a bound pair with zero net momentum. The relative
// speed is sqrt(G*M/d); each body moves with the other's mass fraction of
// it, in opposite directions, and sits at the other's mass fraction of the
// separation from the origin. Equal masses sit at ±d/2.
func NewBinaryPair(G float64, b Binary) (pair [2]*Body, err error) {
	if err = checkConstant(G); err != nil {
		return
	}
	if !finite(b.Separation) || b.Separation <= 0 {
		err = fmt.Errorf("%w: separation %v", ErrInvalidOrbit, b.Separation)
		return
	}
	if !finite(b.TotalMass) || b.TotalMass <= 0 {
		err = fmt.Errorf("%w: total mass %v", ErrInvalidMass, b.TotalMass)
		return
	}
	f := b.MassFraction
	if f == 0 {
		f = 0.5
	}
	if !(f > 0 && f < 1) {
		err = fmt.Errorf("%w: mass fraction %v outside (0, 1)", ErrInvalidOrbit, b.MassFraction)
		return
	}
	radial, tangent, err := directions(b.Axis, b.Angle)
	if err != nil {
		return
	}

	m1, m2 := b.TotalMass*f, b.TotalMass*(1-f)
	v := math.Sqrt(G * b.TotalMass / b.Separation)

	pos1 := radial.Mul(-b.Separation * m2 / b.TotalMass)
	pos2 := radial.Mul(b.Separation * m1 / b.TotalMass)
	vel1 := tangent.Mul(-v * m2 / b.TotalMass)
	vel2 := tangent.Mul(v * m1 / b.TotalMass)

	if pair[0], err = NewBody(m1, pos1, vel1, b.BodyRadius, true); err != nil {
		return
	}
	pair[1], err = NewBody(m2, pos2, vel2, b.BodyRadius, true)
	return
}

// Resonance describes a chain of circular orbits whose periods follow
// Ratios. Kepler's third law puts orbit k at BaseRadius * Ratios[k]^(2/3).
type Resonance struct {
	Ratios     []float64
	BaseRadius float64
	Phases     []float64  // starting angle per orbit; nil means all zero
	Axis       mgl64.Vec3 // orbital plane normal; zero means +Z
	Mass       float64    // of each new body
	BodyRadius float64    // of each new body
}

// ResonantRadius is base * ratio^(2/3).
func ResonantRadius(base, ratio float64) float64 {
	return base * math.Pow(ratio, 2.0/3.0)
}

// NewResonantChain creates one body per ratio on circular orbits around
// central.
func NewResonantChain(central *Body, G float64, r Resonance) ([]*Body, error) {
	if len(r.Phases) != 0 && len(r.Phases) != len(r.Ratios) {
		return nil, fmt.Errorf("%w: %d phases for %d ratios", ErrInvalidOrbit, len(r.Phases), len(r.Ratios))
	}
	bodies := make([]*Body, 0, len(r.Ratios))
	for k, ratio := range r.Ratios {
		if !finite(ratio) || ratio <= 0 {
			return nil, fmt.Errorf("%w: ratio %v", ErrInvalidOrbit, ratio)
		}
		o := Orbit{
			Radius:     ResonantRadius(r.BaseRadius, ratio),
			Axis:       r.Axis,
			Mass:       r.Mass,
			BodyRadius: r.BodyRadius,
		}
		if len(r.Phases) != 0 {
			o.Angle = r.Phases[k]
		}
		b, err := NewOrbit(central, G, o)
		if err != nil {
			return nil, fmt.Errorf("resonant orbit %d: %w", k, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}
