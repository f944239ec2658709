package orbits

import "errors"

// configuration errors. these are returned eagerly and never clamped.
var (
	ErrInvalidMass     = errors.New("orbits: mass must be finite and positive")
	ErrInvalidRadius   = errors.New("orbits: radius must be finite and non-negative")
	ErrInvalidTimeStep = errors.New("orbits: time step must be finite and positive")
	ErrInvalidConstant = errors.New("orbits: gravitational constant must be finite and non-negative")
	ErrInvalidOrbit    = errors.New("orbits: invalid orbit parameters")
)

// ErrEmpty is returned when a result needs at least one body.
var ErrEmpty = errors.New("orbits: empty body collection")
