package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	_ "github.com/mattn/go-sqlite3"

	"github.com/quillaja/orbits"
)

/*
diagnostic samples are written to sqlite so long runs can be inspected
(energy drift, center of mass wander, merges) without keeping them in memory.

really only 1 worker is useful for sqlite since it allows only 1 writer at a time.
*/

const schema = `
CREATE TABLE diagnostics (
	tick 	INTEGER PRIMARY KEY,
	time 	REAL,
	bodies 	INTEGER,
	energy 	REAL,
	com_x 	REAL,
	com_y 	REAL,
	com_z 	REAL,
	p_x 	REAL,
	p_y 	REAL,
	p_z 	REAL);

CREATE TABLE bodies (
	tick 	INTEGER,
	idx 	INTEGER, -- position in the collection at that tick
	x 		REAL,
	y 		REAL,
	z 		REAL,
	mass 	REAL,
	radius 	REAL,
	primary_body INTEGER);
`

const indices = `
CREATE INDEX idx_tick ON bodies (tick, idx);
CREATE INDEX idx_mass ON bodies (mass);
`

const insertDiagnostics = `INSERT INTO diagnostics VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
const insertBody = `INSERT INTO bodies VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

// opens and initializes a new db in filename. refuses to touch an
// existing file.
func opendb(filename string) (*sql.DB, error) {
	if _, err := os.Stat(filename); err == nil {
		return nil, fmt.Errorf("%s exists", filename)
	}
	db, err := sql.Open("sqlite3", "file:"+filename+"?_journal_mode=OFF&_synchronous=OFF")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return db, nil
}

// one diagnostic sample of the simulation.
type sample struct {
	Tick     uint64
	Time     float64
	Energy   float64
	COM      mgl64.Vec3
	Momentum mgl64.Vec3
	Bodies   []snapshot
}

type snapshot struct {
	Position mgl64.Vec3
	Mass     float64
	Radius   float64
	Primary  bool
}

// copies what is needed out of the live bodies so the sample can be written
// while the simulation keeps running.
func takeSample(sim *orbits.Simulation) *sample {
	bodies := sim.Bodies()
	s := &sample{
		Tick:     sim.Steps(),
		Time:     sim.Time(),
		Energy:   sim.Energy(),
		Momentum: orbits.TotalMomentum(bodies),
		Bodies:   make([]snapshot, len(bodies)),
	}
	if com, err := orbits.CenterOfMass(bodies); err == nil {
		s.COM = com
	}
	for i, b := range bodies {
		s.Bodies[i] = snapshot{Position: b.Position, Mass: b.Mass, Radius: b.Radius, Primary: b.Primary}
	}
	return s
}

// writes samples to the db from a single goroutine.
type recorder struct {
	db   *sql.DB
	ch   chan *sample
	done chan error
}

func newRecorder(db *sql.DB) *recorder {
	r := &recorder{
		db:   db,
		ch:   make(chan *sample, 32),
		done: make(chan error, 1),
	}
	go r.run()
	return r
}

func (r *recorder) record(s *sample) { r.ch <- s }

// stops accepting samples, waits for the writer and indexes the tables.
// returns the first write error, if any.
func (r *recorder) close() error {
	close(r.ch)
	err := <-r.done
	if _, ierr := r.db.Exec(indices); ierr != nil {
		err = errors.Join(err, fmt.Errorf("creating indices: %w", ierr))
	}
	return err
}

func (r *recorder) run() {
	var first error
	for s := range r.ch {
		if first != nil {
			continue // drain so record never blocks
		}
		first = r.write(s)
	}
	r.done <- first
}

// writes one sample in a transaction.
func (r *recorder) write(s *sample) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	_, err = tx.Exec(insertDiagnostics,
		s.Tick, s.Time, len(s.Bodies), s.Energy,
		s.COM[0], s.COM[1], s.COM[2],
		s.Momentum[0], s.Momentum[1], s.Momentum[2])
	if err != nil {
		return fmt.Errorf("tick %d: %w", s.Tick, err)
	}

	stmt, err := tx.Prepare(insertBody)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, b := range s.Bodies {
		_, err = stmt.Exec(s.Tick, i,
			b.Position[0], b.Position[1], b.Position[2],
			b.Mass, b.Radius, b.Primary)
		if err != nil {
			return fmt.Errorf("tick %d body %d: %w", s.Tick, i, err)
		}
	}
	return nil
}
