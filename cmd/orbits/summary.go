package main

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/quillaja/orbits"
)

type stats struct {
	avg, min, max float64
}

func (s stats) String() string {
	return fmt.Sprintf("avg %.4g, min %.4g, max %.4g", s.avg, s.min, s.max)
}

func calculateStats(x []float64) stats {
	if len(x) == 0 {
		return stats{}
	}
	return stats{avg: stat.Mean(x, nil), min: floats.Min(x), max: floats.Max(x)}
}

// tracks the relative energy departure from the first sample.
type driftLog struct {
	e0    float64
	drift []float64 // (E - E0) / |E0|
	count []float64 // bodies per sample
}

func (d *driftLog) add(s *sample) {
	if d.drift == nil {
		d.e0 = s.Energy
	}
	rel := s.Energy - d.e0
	if d.e0 != 0 {
		rel /= math.Abs(d.e0)
	}
	d.drift = append(d.drift, rel)
	d.count = append(d.count, float64(len(s.Bodies)))
}

// largest absolute relative drift seen.
func (d *driftLog) worst() float64 {
	if len(d.drift) == 0 {
		return 0
	}
	abs := make([]float64, len(d.drift))
	for i, x := range d.drift {
		abs[i] = math.Abs(x)
	}
	return floats.Max(abs)
}

// prints the energy drift and body statistics of a finished run.
func summarize(w io.Writer, d *driftLog, bodies []*orbits.Body) {
	if len(d.drift) > 0 {
		mean, std := stat.MeanStdDev(d.drift, nil)
		fmt.Fprintf(w, "energy drift: mean %+.3e, stddev %.3e, worst %.3e over %d samples\n",
			mean, std, d.worst(), len(d.drift))
		fmt.Fprintf(w, "bodies per sample: %s\n", calculateStats(d.count))
	}

	masses := make([]float64, len(bodies))
	radii := make([]float64, len(bodies))
	for i, b := range bodies {
		masses[i] = b.Mass
		radii[i] = b.Radius
	}
	fmt.Fprintf(w, "final bodies: %d\nmass: %s\nradius: %s\n",
		len(bodies), calculateStats(masses), calculateStats(radii))
}
