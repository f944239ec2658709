package orbits

import "fmt"

// Config is the explicit simulation configuration, threaded through every
// pass rather than held in package state.
type Config struct {
	G                 float64    // gravitational constant
	Dt                float64    // time step per tick
	Method            Method     // integration strategy
	Field             ForceField // nil means DirectField{}
	DisableCollisions bool
}

// Validate rejects a non-positive time step, a negative gravitational
// constant and an unknown method.
func (c Config) Validate() error {
	if err := checkConstant(c.G); err != nil {
		return err
	}
	if err := checkStep(c.Dt); err != nil {
		return err
	}
	if _, err := c.Method.Integrator(); err != nil {
		return err
	}
	return nil
}

func checkConstant(G float64) error {
	if !finite(G) || G < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidConstant, G)
	}
	return nil
}

// Simulation owns the body collection and runs one tick at a time. It is not
// safe for concurrent use.
type Simulation struct {
	cfg        Config
	field      ForceField
	integrator Integrator
	bodies     []*Body
	steps      uint64
}

// New validates cfg and every body and returns a simulation ready to tick.
func New(cfg Config, bodies ...*Body) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	integrator, _ := cfg.Method.Integrator()
	s := &Simulation{
		cfg:        cfg,
		field:      cfg.Field,
		integrator: integrator,
		bodies:     make([]*Body, 0, len(bodies)),
	}
	if s.field == nil {
		s.field = DirectField{}
	}
	for _, b := range bodies {
		if err := s.Add(b); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add injects a body, at setup or mid-run.
func (s *Simulation) Add(b *Body) error {
	if err := b.validate(); err != nil {
		return fmt.Errorf("body %d: %w", len(s.bodies), err)
	}
	s.bodies = append(s.bodies, b)
	return nil
}

// Tick advances the simulation by one time step: a force pass, the
// integration step, trail sampling and finally collision merging.
func (s *Simulation) Tick() {
	s.field.ComputeAccelerations(s.bodies, s.cfg.G)

	// dt was validated in New; Step cannot fail here.
	_ = s.integrator.Step(s.bodies, s.field, s.cfg.G, s.cfg.Dt)
	s.steps++

	if s.steps%TrailInterval == 0 {
		for _, b := range s.bodies {
			if !b.Primary {
				b.Trail.Push(b.Position)
			}
		}
	}

	if !s.cfg.DisableCollisions {
		s.bodies = ResolveCollisions(s.bodies)
	}
}

// Bodies returns the live collection. Callers may read it between ticks but
// must not add or remove entries; use Add.
func (s *Simulation) Bodies() []*Body { return s.bodies }

// Steps is the number of completed ticks.
func (s *Simulation) Steps() uint64 { return s.steps }

// Time is the simulated time elapsed.
func (s *Simulation) Time() float64 { return float64(s.steps) * s.cfg.Dt }

func (s *Simulation) Config() Config { return s.cfg }

// Energy is TotalEnergy of the current bodies.
func (s *Simulation) Energy() float64 { return TotalEnergy(s.bodies, s.cfg.G) }
