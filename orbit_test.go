package orbits

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestOrbitalSpeed(t *testing.T) {
	if got, want := OrbitalSpeed(1, 1000, 10, 0), 10.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("circular speed = %v, want %v", got, want)
	}
	if got, want := OrbitalSpeed(1, 1000, 10, 0.5), 10*math.Sqrt(0.5/1.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("eccentric speed = %v, want %v", got, want)
	}
}

func TestNewOrbit(t *testing.T) {
	star := mustBody(t, 1000, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{}, 5, true)
	tests := []struct {
		name    string
		orbit   Orbit
		wantPos mgl64.Vec3 // relative to the star
		wantVel mgl64.Vec3
	}{
		{
			name:    "circular at zero angle",
			orbit:   Orbit{Radius: 10, Mass: 1},
			wantPos: mgl64.Vec3{10, 0, 0},
			wantVel: mgl64.Vec3{0, 10, 0},
		},
		{
			name:    "circular at quarter turn",
			orbit:   Orbit{Radius: 10, Angle: math.Pi / 2, Mass: 1},
			wantPos: mgl64.Vec3{0, 10, 0},
			wantVel: mgl64.Vec3{-10, 0, 0},
		},
		{
			name:    "eccentric",
			orbit:   Orbit{Radius: 10, Eccentricity: 0.5, Mass: 1},
			wantPos: mgl64.Vec3{10, 0, 0},
			wantVel: mgl64.Vec3{0, 10 * math.Sqrt(0.5/1.5), 0},
		},
		{
			name:    "tilted plane",
			orbit:   Orbit{Radius: 10, Axis: mgl64.Vec3{0, 3, 0}, Mass: 1},
			wantPos: mgl64.Vec3{0, 0, 10},
			wantVel: mgl64.Vec3{10, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewOrbit(star, 1, tt.orbit)
			if err != nil {
				t.Fatal(err)
			}
			if got := b.Position.Sub(star.Position); !vecClose(got, tt.wantPos, 1e-9) {
				t.Errorf("relative position = %v, want %v", got, tt.wantPos)
			}
			if !vecClose(b.Velocity, tt.wantVel, 1e-9) {
				t.Errorf("velocity = %v, want %v", b.Velocity, tt.wantVel)
			}
			if d := b.Position.Sub(star.Position).Dot(b.Velocity); math.Abs(d) > 1e-9 {
				t.Errorf("velocity not perpendicular to radius: dot = %v", d)
			}
			if b.Primary {
				t.Errorf("orbiting body should not be primary")
			}
		})
	}
	if star.Position != (mgl64.Vec3{1, 2, 3}) || star.Velocity != (mgl64.Vec3{}) {
		t.Errorf("central body was modified: %v", star)
	}
}

func TestNewOrbitInvalid(t *testing.T) {
	star := mustBody(t, 1000, mgl64.Vec3{}, mgl64.Vec3{}, 5, true)
	tests := []struct {
		name    string
		central *Body
		G       float64
		orbit   Orbit
		want    error
	}{
		{"nil central", nil, 1, Orbit{Radius: 1, Mass: 1}, ErrInvalidOrbit},
		{"zero radius", star, 1, Orbit{Radius: 0, Mass: 1}, ErrInvalidOrbit},
		{"eccentricity one", star, 1, Orbit{Radius: 1, Eccentricity: 1, Mass: 1}, ErrInvalidOrbit},
		{"negative eccentricity", star, 1, Orbit{Radius: 1, Eccentricity: -0.1, Mass: 1}, ErrInvalidOrbit},
		{"zero mass", star, 1, Orbit{Radius: 1}, ErrInvalidMass},
		{"negative G", star, -1, Orbit{Radius: 1, Mass: 1}, ErrInvalidConstant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewOrbit(tt.central, tt.G, tt.orbit); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewSatelliteMovesWithParent(t *testing.T) {
	planet := mustBody(t, 10, mgl64.Vec3{100, 0, 0}, mgl64.Vec3{0, 5, 0}, 1, false)
	moon, err := NewSatellite(planet, 1, Orbit{Radius: 2, Mass: 0.1, BodyRadius: 0.2})
	if err != nil {
		t.Fatal(err)
	}
	if want := (mgl64.Vec3{102, 0, 0}); !vecClose(moon.Position, want, 1e-12) {
		t.Errorf("position = %v, want %v", moon.Position, want)
	}
	if want := (mgl64.Vec3{0, 5 + math.Sqrt(10.0/2), 0}); !vecClose(moon.Velocity, want, 1e-12) {
		t.Errorf("velocity = %v, want %v", moon.Velocity, want)
	}
	if planet.Position != (mgl64.Vec3{100, 0, 0}) || planet.Velocity != (mgl64.Vec3{0, 5, 0}) {
		t.Errorf("parent was modified")
	}
}

func TestNewBinaryPair(t *testing.T) {
	pair, err := NewBinaryPair(1, Binary{Separation: 100, TotalMass: 10000, BodyRadius: 5})
	if err != nil {
		t.Fatal(err)
	}
	a, b := pair[0], pair[1]

	if !vecClose(a.Position, mgl64.Vec3{-50, 0, 0}, 1e-12) || !vecClose(b.Position, mgl64.Vec3{50, 0, 0}, 1e-12) {
		t.Errorf("positions = %v %v", a.Position, b.Position)
	}
	if a.Mass != 5000 || b.Mass != 5000 {
		t.Errorf("masses = %v %v", a.Mass, b.Mass)
	}
	if math.Abs(a.Velocity.Len()-b.Velocity.Len()) > 1e-12 || !vecClose(a.Velocity, b.Velocity.Mul(-1), 1e-12) {
		t.Errorf("velocities %v %v not equal and opposite", a.Velocity, b.Velocity)
	}
	if got, want := a.Velocity.Sub(b.Velocity).Len(), 10.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("relative speed = %v, want sqrt(GM/d) = %v", got, want)
	}
	com, err := CenterOfMass(pair[:])
	if err != nil || !vecClose(com, mgl64.Vec3{}, 1e-12) {
		t.Errorf("center of mass = %v, %v", com, err)
	}
	if p := TotalMomentum(pair[:]); p.Len() > 1e-9 {
		t.Errorf("net momentum = %v", p)
	}
	if !a.Primary || !b.Primary {
		t.Errorf("binary components should be primary")
	}
}

func TestNewBinaryPairUnequalStaysBound(t *testing.T) {
	pair, err := NewBinaryPair(1, Binary{Separation: 20, TotalMass: 400, MassFraction: 0.75, BodyRadius: 1})
	if err != nil {
		t.Fatal(err)
	}
	if p := TotalMomentum(pair[:]); p.Len() > 1e-9 {
		t.Errorf("net momentum = %v", p)
	}
	com, _ := CenterOfMass(pair[:])
	if !vecClose(com, mgl64.Vec3{}, 1e-12) {
		t.Errorf("center of mass = %v", com)
	}

	sim, err := New(Config{G: 1, Dt: 0.001, Method: Verlet}, pair[0], pair[1])
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5000; i++ {
		sim.Tick()
		if d := dist(pair[0], pair[1]); math.Abs(d-20) > 0.2 {
			t.Fatalf("step %d: separation %v drifted from 20", i, d)
		}
	}
}

func TestNewBinaryPairInvalid(t *testing.T) {
	for _, b := range []Binary{
		{Separation: 0, TotalMass: 1},
		{Separation: 1, TotalMass: 0},
		{Separation: 1, TotalMass: 1, MassFraction: 1},
		{Separation: 1, TotalMass: 1, MassFraction: -0.5},
	} {
		if _, err := NewBinaryPair(1, b); err == nil {
			t.Errorf("NewBinaryPair(%+v) should fail", b)
		}
	}
}

func TestNewResonantChain(t *testing.T) {
	star := mustBody(t, 1000, mgl64.Vec3{}, mgl64.Vec3{}, 5, true)
	bodies, err := NewResonantChain(star, 1, Resonance{
		Ratios:     []float64{1, 2, 4},
		BaseRadius: 50,
		Phases:     []float64{0, 1, 2},
		Mass:       1,
		BodyRadius: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{50, 50 * math.Pow(2, 2.0/3), 50 * math.Pow(4, 2.0/3)}
	if len(bodies) != len(want) {
		t.Fatalf("len = %d, want %d", len(bodies), len(want))
	}
	for i, b := range bodies {
		r := dist(star, b)
		if math.Abs(r-want[i]) > 1e-9 {
			t.Errorf("orbit %d radius = %v, want %v", i, r, want[i])
		}
		if v, vc := b.Velocity.Len(), math.Sqrt(1000/want[i]); math.Abs(v-vc) > 1e-9 {
			t.Errorf("orbit %d speed = %v, want circular %v", i, v, vc)
		}
	}

	// period ratios follow from kepler's third law
	period := func(r float64) float64 { return 2 * math.Pi * math.Sqrt(r*r*r/1000) }
	if got := period(want[2]) / period(want[0]); math.Abs(got-4) > 1e-9 {
		t.Errorf("outer/inner period ratio = %v, want 4", got)
	}
}

func TestNewResonantChainInvalid(t *testing.T) {
	star := mustBody(t, 1000, mgl64.Vec3{}, mgl64.Vec3{}, 5, true)
	for _, r := range []Resonance{
		{Ratios: []float64{1, 0}, BaseRadius: 10, Mass: 1},
		{Ratios: []float64{1, 2}, BaseRadius: 10, Mass: 1, Phases: []float64{0}},
		{Ratios: []float64{1}, BaseRadius: -10, Mass: 1},
	} {
		if _, err := NewResonantChain(star, 1, r); !errors.Is(err, ErrInvalidOrbit) {
			t.Errorf("NewResonantChain(%+v) error = %v, want ErrInvalidOrbit", r, err)
		}
	}
}
