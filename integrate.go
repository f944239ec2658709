package orbits

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Method selects the integration strategy once, at configuration time.
type Method uint8

const (
	Euler  Method = iota // semi-implicit euler
	Verlet               // velocity verlet
)

func (m Method) String() string {
	switch m {
	case Euler:
		return "euler"
	case Verlet:
		return "verlet"
	}
	return fmt.Sprintf("Method(%d)", uint8(m))
}

// ParseMethod accepts "euler" or "verlet", case insensitive.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euler":
		return Euler, nil
	case "verlet":
		return Verlet, nil
	}
	return 0, fmt.Errorf("orbits: unknown integration method %q", s)
}

// Integrator returns the stepping strategy for m.
func (m Method) Integrator() (Integrator, error) {
	switch m {
	case Euler:
		return EulerStep{}, nil
	case Verlet:
		return VerletStep{}, nil
	}
	return nil, fmt.Errorf("orbits: unknown integration method %v", m)
}

// Integrator advances every body by one time step. Bodies must already hold
// their accelerations at time t.
type Integrator interface {
	Step(bodies []*Body, field ForceField, G, dt float64) error
}

func checkStep(dt float64) error {
	if !finite(dt) || dt <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTimeStep, dt)
	}
	return nil
}

// EulerStep is the semi-implicit (symplectic) euler method. The velocity is
// updated before the position. The field is not used.
type EulerStep struct{}

func (EulerStep) Step(bodies []*Body, _ ForceField, _, dt float64) error {
	if err := checkStep(dt); err != nil {
		return err
	}
	for _, b := range bodies {
		stepEuler(b, dt)
	}
	return nil
}

// update body velocity and position, reset accumulated acceleration.
func stepEuler(b *Body, dt float64) {
	// dv = a*dt
	b.Velocity = b.Velocity.Add(b.Acceleration.Mul(dt))
	// dp = v*dt
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	// clear acceleration
	b.Acceleration = mgl64.Vec3{}
}

// VerletStep is the velocity verlet method. Step runs the whole protocol:
// Drift for every body, one field pass for a(t+dt), then Kick for every
// body. Hosts that drive the phases themselves must keep that interleaving
// or energy is no longer conserved.
type VerletStep struct{}

func (v VerletStep) Step(bodies []*Body, field ForceField, G, dt float64) error {
	if err := checkStep(dt); err != nil {
		return err
	}
	for _, b := range bodies {
		v.Drift(b, dt)
	}
	field.ComputeAccelerations(bodies, G)
	for _, b := range bodies {
		v.Kick(b, dt)
	}
	return nil
}

// Drift is the first phase: x += v*dt + a*dt²/2, remembering a(t).
func (VerletStep) Drift(b *Body, dt float64) {
	b.prevAcceleration = b.Acceleration
	b.Position = b.Position.
		Add(b.Velocity.Mul(dt)).
		Add(b.Acceleration.Mul(0.5 * dt * dt))
}

// Kick is the last phase: v += (a(t) + a(t+dt))*dt/2. Acceleration must
// already hold a(t+dt).
func (VerletStep) Kick(b *Body, dt float64) {
	b.Velocity = b.Velocity.Add(b.prevAcceleration.Add(b.Acceleration).Mul(0.5 * dt))
}
