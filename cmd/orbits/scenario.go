package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/quillaja/orbits"
)

// a ready to run set of bodies and the configuration they were built for.
type scenario struct {
	Name   string
	G      float64
	Dt     float64
	Method orbits.Method
	Bodies []*orbits.Body
}

/*

scenario file

bodies are created in file order: explicit bodies, then binaries, then orbits
(which may refer to any named body created before them, including earlier
orbits), then resonant chains.

*/

type scenarioFile struct {
	Name       string          `yaml:"name"`
	G          float64         `yaml:"g"`
	Dt         float64         `yaml:"dt"`
	Method     string          `yaml:"method"`
	Bodies     []bodyEntry     `yaml:"bodies"`
	Binaries   []binaryEntry   `yaml:"binaries"`
	Orbits     []orbitEntry    `yaml:"orbits"`
	Resonances []resonantEntry `yaml:"resonances"`
}

type bodyEntry struct {
	Name     string    `yaml:"name"`
	Mass     float64   `yaml:"mass"`
	Position []float64 `yaml:"position"`
	Velocity []float64 `yaml:"velocity"`
	Radius   float64   `yaml:"radius"`
	Density  float64   `yaml:"density"` // used for the radius when radius is 0
	Primary  bool      `yaml:"primary"`
}

type binaryEntry struct {
	Names        []string  `yaml:"names"`
	Separation   float64   `yaml:"separation"`
	TotalMass    float64   `yaml:"total_mass"`
	MassFraction float64   `yaml:"mass_fraction"`
	Angle        float64   `yaml:"angle"`
	Axis         []float64 `yaml:"axis"`
	Radius       float64   `yaml:"radius"`
}

type orbitEntry struct {
	Name         string    `yaml:"name"`
	Around       string    `yaml:"around"`
	Satellite    bool      `yaml:"satellite"` // move with the parent
	Radius       float64   `yaml:"radius"`
	Eccentricity float64   `yaml:"eccentricity"`
	Angle        float64   `yaml:"angle"`
	Axis         []float64 `yaml:"axis"`
	Mass         float64   `yaml:"mass"`
	BodyRadius   float64   `yaml:"body_radius"`
}

type resonantEntry struct {
	Around     string    `yaml:"around"`
	Ratios     []float64 `yaml:"ratios"`
	BaseRadius float64   `yaml:"base_radius"`
	Phases     []float64 `yaml:"phases"`
	Axis       []float64 `yaml:"axis"`
	Mass       float64   `yaml:"mass"`
	BodyRadius float64   `yaml:"body_radius"`
}

// reads and builds a scenario file.
func loadScenario(filename string) (*scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*scenario, error) {
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return f.build()
}

func (f *scenarioFile) build() (*scenario, error) {
	s := &scenario{Name: f.Name, G: f.G, Dt: f.Dt, Method: orbits.Verlet}
	if f.Method != "" {
		m, err := orbits.ParseMethod(f.Method)
		if err != nil {
			return nil, err
		}
		s.Method = m
	}

	named := make(map[string]*orbits.Body)
	add := func(name string, b *orbits.Body) error {
		if name != "" {
			if _, dup := named[name]; dup {
				return fmt.Errorf("duplicate body name %q", name)
			}
			named[name] = b
		}
		s.Bodies = append(s.Bodies, b)
		return nil
	}
	lookup := func(name string) (*orbits.Body, error) {
		b, ok := named[name]
		if !ok {
			return nil, fmt.Errorf("no body named %q", name)
		}
		return b, nil
	}

	for i, e := range f.Bodies {
		pos, err := vec(e.Position)
		if err != nil {
			return nil, fmt.Errorf("body %d position: %w", i, err)
		}
		vel, err := vec(e.Velocity)
		if err != nil {
			return nil, fmt.Errorf("body %d velocity: %w", i, err)
		}
		radius := e.Radius
		if radius == 0 && e.Density > 0 {
			radius = orbits.RadiusForDensity(e.Mass, e.Density)
		}
		b, err := orbits.NewBody(e.Mass, pos, vel, radius, e.Primary)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		if err := add(e.Name, b); err != nil {
			return nil, err
		}
	}

	for i, e := range f.Binaries {
		axis, err := vec(e.Axis)
		if err != nil {
			return nil, fmt.Errorf("binary %d axis: %w", i, err)
		}
		pair, err := orbits.NewBinaryPair(s.G, orbits.Binary{
			Separation:   e.Separation,
			TotalMass:    e.TotalMass,
			MassFraction: e.MassFraction,
			Angle:        e.Angle,
			Axis:         axis,
			BodyRadius:   e.Radius,
		})
		if err != nil {
			return nil, fmt.Errorf("binary %d: %w", i, err)
		}
		for k, b := range pair {
			name := ""
			if k < len(e.Names) {
				name = e.Names[k]
			}
			if err := add(name, b); err != nil {
				return nil, err
			}
		}
	}

	for i, e := range f.Orbits {
		central, err := lookup(e.Around)
		if err != nil {
			return nil, fmt.Errorf("orbit %d: %w", i, err)
		}
		axis, err := vec(e.Axis)
		if err != nil {
			return nil, fmt.Errorf("orbit %d axis: %w", i, err)
		}
		o := orbits.Orbit{
			Radius:       e.Radius,
			Eccentricity: e.Eccentricity,
			Angle:        e.Angle,
			Axis:         axis,
			Mass:         e.Mass,
			BodyRadius:   e.BodyRadius,
		}
		create := orbits.NewOrbit
		if e.Satellite {
			create = orbits.NewSatellite
		}
		b, err := create(central, s.G, o)
		if err != nil {
			return nil, fmt.Errorf("orbit %d: %w", i, err)
		}
		if err := add(e.Name, b); err != nil {
			return nil, err
		}
	}

	for i, e := range f.Resonances {
		central, err := lookup(e.Around)
		if err != nil {
			return nil, fmt.Errorf("resonance %d: %w", i, err)
		}
		axis, err := vec(e.Axis)
		if err != nil {
			return nil, fmt.Errorf("resonance %d axis: %w", i, err)
		}
		chain, err := orbits.NewResonantChain(central, s.G, orbits.Resonance{
			Ratios:     e.Ratios,
			BaseRadius: e.BaseRadius,
			Phases:     e.Phases,
			Axis:       axis,
			Mass:       e.Mass,
			BodyRadius: e.BodyRadius,
		})
		if err != nil {
			return nil, fmt.Errorf("resonance %d: %w", i, err)
		}
		for _, b := range chain {
			if err := add("", b); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

// converts an optional [x, y, z] list.
func vec(v []float64) (mgl64.Vec3, error) {
	switch len(v) {
	case 0:
		return mgl64.Vec3{}, nil
	case 3:
		return mgl64.Vec3{v[0], v[1], v[2]}, nil
	}
	return mgl64.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
}

/*

presets

*/

var presets = map[string]func(n int, rnd *rand.Rand) (*scenario, error){
	"solar":    solarsystem,
	"binary":   binarystar,
	"resonant": resonant,
	"cluster":  cluster,
}

// a star with five planets on mildly eccentric orbits and a moon.
func solarsystem(_ int, rnd *rand.Rand) (*scenario, error) {
	const G = 1
	sun, err := orbits.NewBody(5000, mgl64.Vec3{}, mgl64.Vec3{}, 60, true)
	if err != nil {
		return nil, err
	}
	s := &scenario{Name: "solar", G: G, Dt: 0.01, Method: orbits.Verlet, Bodies: []*orbits.Body{sun}}

	for i := 0; i < 5; i++ {
		planet, err := orbits.NewOrbit(sun, G, orbits.Orbit{
			Radius:       150 + float64(i)*80,
			Eccentricity: 0.2,
			Angle:        2 * math.Pi * rnd.Float64(),
			Mass:         5 + 45*rnd.Float64(),
			BodyRadius:   10 + 15*rnd.Float64(),
		})
		if err != nil {
			return nil, err
		}
		s.Bodies = append(s.Bodies, planet)
	}

	parent := s.Bodies[3]
	moon, err := orbits.NewSatellite(parent, G, orbits.Orbit{
		Radius:     parent.Radius*2 + 10 + 20*rnd.Float64(),
		Angle:      2 * math.Pi * rnd.Float64(),
		Mass:       0.5 + 2.5*rnd.Float64(),
		BodyRadius: 2 + 4*rnd.Float64(),
	})
	if err != nil {
		return nil, err
	}
	s.Bodies = append(s.Bodies, moon)
	return s, nil
}

// two equal stars and a planet on a wide circumbinary orbit.
func binarystar(_ int, rnd *rand.Rand) (*scenario, error) {
	const G = 1
	pair, err := orbits.NewBinaryPair(G, orbits.Binary{Separation: 100, TotalMass: 10000, BodyRadius: 20})
	if err != nil {
		return nil, err
	}
	// the pair orbits its barycenter at the origin; a planet far outside
	// sees roughly a single point of the total mass there.
	barycenter, err := orbits.NewBody(10000, mgl64.Vec3{}, mgl64.Vec3{}, 0, true)
	if err != nil {
		return nil, err
	}
	planet, err := orbits.NewOrbit(barycenter, G, orbits.Orbit{
		Radius:     600,
		Angle:      2 * math.Pi * rnd.Float64(),
		Mass:       10,
		BodyRadius: 10,
	})
	if err != nil {
		return nil, err
	}
	return &scenario{Name: "binary", G: G, Dt: 0.005, Method: orbits.Verlet,
		Bodies: []*orbits.Body{pair[0], pair[1], planet}}, nil
}

// a star with a 1:2:4 chain.
func resonant(_ int, rnd *rand.Rand) (*scenario, error) {
	const G = 1
	star, err := orbits.NewBody(5000, mgl64.Vec3{}, mgl64.Vec3{}, 30, true)
	if err != nil {
		return nil, err
	}
	chain, err := orbits.NewResonantChain(star, G, orbits.Resonance{
		Ratios:     []float64{1, 2, 4},
		BaseRadius: 100,
		Phases:     []float64{0, 2 * math.Pi * rnd.Float64(), 2 * math.Pi * rnd.Float64()},
		Mass:       10,
		BodyRadius: 8,
	})
	if err != nil {
		return nil, err
	}
	return &scenario{Name: "resonant", G: G, Dt: 0.01, Method: orbits.Verlet,
		Bodies: append([]*orbits.Body{star}, chain...)}, nil
}

// n light bodies in clouds around two heavy cores, each cloud orbiting its
// core in its own plane. SI units, one hour per step.
func cluster(n int, rnd *rand.Rand) (*scenario, error) {
	const G = 6.67408e-11
	const meanMass = 50e3   // 50e3kg@2m =1492 kg/m3
	const defaultRadius = 2 // given mean mass, this will produce very "nondense" bodies

	type core struct {
		mass          float64
		position, vel mgl64.Vec3
		axis          mgl64.Vec3
	}
	cores := []core{
		{1e10, mgl64.Vec3{-9000, -100, -2000}, mgl64.Vec3{0.004, 0, -0.001}, mgl64.Vec3{0, 1, 0}},
		{1e10, mgl64.Vec3{9000, 100, 2000}, mgl64.Vec3{-0.003, 0, 0.002}, mgl64.Vec3{0, 0, -1}},
	}

	s := &scenario{Name: "cluster", G: G, Dt: 60 * 60, Method: orbits.Verlet}
	centers := make([]*orbits.Body, len(cores))
	for i, c := range cores {
		b, err := orbits.NewBody(c.mass, c.position, c.vel, 1, true)
		if err != nil {
			return nil, err
		}
		centers[i] = b
		s.Bodies = append(s.Bodies, b)
	}

	for i := 0; i < n; i++ {
		group := rnd.Intn(len(cores))
		b, err := orbits.NewSatellite(centers[group], G, orbits.Orbit{
			Radius:     50 + math.Abs(rnd.NormFloat64())*1000,
			Angle:      2 * math.Pi * rnd.Float64(),
			Axis:       cores[group].axis,
			Mass:       math.Abs(rnd.NormFloat64()*500 + meanMass),
			BodyRadius: defaultRadius,
		})
		if err != nil {
			return nil, err
		}
		s.Bodies = append(s.Bodies, b)
	}
	return s, nil
}
