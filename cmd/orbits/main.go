// runs the orbits physics core headless: builds a scenario, ticks it and
// reports energy drift, optionally recording diagnostics to sqlite.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/quillaja/orbits"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("orbits", flag.ContinueOnError)
	preset := fs.String("scenario", "solar", "preset scenario: "+strings.Join(presetNames(), ", "))
	config := fs.String("config", "", "yaml scenario file, used instead of -scenario")
	numbodies := fs.Int("n", 100, "number of bodies for the cluster scenario")
	seed := fs.Int64("seed", 1, "random seed for preset scenarios")
	steps := fs.Int("steps", 10000, "number of ticks to run")
	dt := fs.Float64("dt", 0, "time step; overrides the scenario")
	g := fs.Float64("G", 0, "gravitational constant; overrides the scenario")
	method := fs.String("method", "", "euler or verlet; overrides the scenario")
	tree := fs.Bool("tree", false, "use the barnes-hut tree")
	theta := fs.Float64("theta", 1, "tree accuracy, lower is more accurate")
	workers := fs.Int("workers", 1, "goroutines for the force pass")
	nocollision := fs.Bool("nocollision", false, "do not perform collision merging")
	dbname := fs.String("db", "", "sqlite file to record diagnostics to")
	every := fs.Int("every", 100, "ticks between diagnostic samples")
	if err := fs.Parse(args); err != nil {
		return err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// scenario
	var sc *scenario
	var err error
	if *config != "" {
		sc, err = loadScenario(*config)
	} else {
		build, ok := presets[*preset]
		if !ok {
			return fmt.Errorf("unknown scenario %q", *preset)
		}
		sc, err = build(*numbodies, rand.New(rand.NewSource(*seed)))
	}
	if err != nil {
		return err
	}

	// simulation parameters
	cfg := orbits.Config{G: sc.G, Dt: sc.Dt, Method: sc.Method, DisableCollisions: *nocollision}
	if set["dt"] {
		cfg.Dt = *dt
	}
	if set["G"] {
		cfg.G = *g
	}
	if set["method"] {
		if cfg.Method, err = orbits.ParseMethod(*method); err != nil {
			return err
		}
	}
	if *tree {
		cfg.Field = orbits.TreeField{Theta: *theta, Workers: *workers}
	} else {
		cfg.Field = orbits.DirectField{Workers: *workers}
	}
	if *every < 1 {
		*every = 1
	}

	sim, err := orbits.New(cfg, sc.Bodies...)
	if err != nil {
		return err
	}

	var rec *recorder
	if *dbname != "" {
		db, err := opendb(*dbname)
		if err != nil {
			return err
		}
		defer db.Close()
		rec = newRecorder(db)
	}

	// print parameters
	fmt.Printf("scenario: %s\nmethod: %s\ncollisions: %t\ntree: %t\nbodies: %d\nG: %g\nstep: %g\nticks: %d\nsimulation time: %g\n",
		sc.Name,
		cfg.Method,
		!cfg.DisableCollisions,
		*tree,
		len(sim.Bodies()),
		cfg.G,
		cfg.Dt,
		*steps,
		cfg.Dt*float64(*steps))

	drift := &driftLog{}
	observe := func() {
		s := takeSample(sim)
		drift.add(s)
		if rec != nil {
			rec.record(s)
		}
	}

	start := time.Now()
	observe()
	for tick := 1; tick <= *steps; tick++ {
		sim.Tick()
		if tick%*every == 0 || tick == *steps {
			observe()

			// progress
			avg := time.Since(start) / time.Duration(tick)
			left := avg * time.Duration(*steps-tick)
			fmt.Printf("%.1f%%, %d bodies, %s/tick, %s remaining, %s elapsed                    \r",
				100*float64(tick)/float64(*steps),
				len(sim.Bodies()),
				avg,
				left.Truncate(time.Second),
				time.Since(start).Truncate(time.Second),
			)
		}
	}
	fmt.Printf("\nDone. Took %s\n", time.Since(start).Truncate(time.Millisecond))

	summarize(os.Stdout, drift, sim.Bodies())

	if rec != nil {
		if err := rec.close(); err != nil {
			return fmt.Errorf("recording diagnostics: %w", err)
		}
		fmt.Printf("diagnostics written to %s\n", *dbname)
	}
	return nil
}

func presetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
