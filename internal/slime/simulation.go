package slime

import (
	"fmt"
	"math/rand"
	"time"
)

// Simulation owns the field, the agents and the parameters driving them.
// It is not safe for concurrent use: one goroutine calls Step and the
// accessors, Step itself fans out internally.
type Simulation struct {
	width, height int
	params        Params
	field         *Field
	agents        []Agent
	deposits      []int // cell (y*width+x) each agent deposits into this tick
	rngs          []*rand.Rand
	seed          int64
	workers       int
	tick          int64
	lastStep      time.Duration
	logger        Logger
}

// Stats is a point-in-time summary of a simulation.
type Stats struct {
	Tick     int64
	Agents   [NumSpecies]int
	Totals   [NumSpecies]float64 // summed field strength per species
	LastStep time.Duration
}

// NewSimulation sizes the field and seeds the population from params.
// The same seed and worker count reproduce the same run.
func NewSimulation(width, height int, params Params, seed int64) (*Simulation, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", width, height)
	}
	if err := validateFor(params, width, height); err != nil {
		return nil, err
	}

	s := &Simulation{
		width:   width,
		height:  height,
		params:  params,
		field:   NewField(width, height, NumSpecies),
		seed:    seed,
		workers: defaultWorkers(),
		logger:  NewNoOpLogger(),
	}
	s.field.SetWorkers(s.workers)
	s.initRNGs()
	s.populate()
	return s, nil
}

func validateFor(p Params, width, height int) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	if err := p.validateGrid(width, height); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

func (s *Simulation) initRNGs() {
	chunks := s.workers * 4
	s.rngs = make([]*rand.Rand, chunks)
	for c := range s.rngs {
		s.rngs[c] = rand.New(rand.NewSource(s.seed + int64(c+1)*7919))
	}
}

func (s *Simulation) populate() {
	rng := rand.New(rand.NewSource(s.seed))
	s.agents = spawnAgents(s.width, s.height, s.params, rng)
	s.deposits = make([]int, len(s.agents))
	seedNoise(s.field, s.params.NoiseAmplitude, s.seed)
}

// SetLogger sets the logger for this simulation
func (s *Simulation) SetLogger(logger Logger) {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	s.logger = logger
}

// SetWorkers sets how many goroutines the passes may use. Changing it
// re-derives the per-chunk random streams.
func (s *Simulation) SetWorkers(n int) {
	if n < 1 {
		n = defaultWorkers()
	}
	s.workers = n
	s.field.SetWorkers(n)
	s.initRNGs()
}

func (s *Simulation) Width() int     { return s.width }
func (s *Simulation) Height() int    { return s.height }
func (s *Simulation) Tick() int64    { return s.tick }
func (s *Simulation) Field() *Field  { return s.field }
func (s *Simulation) Params() Params { return s.params }

// Agents returns the live agent slice. Callers must not modify it while
// Step is running.
func (s *Simulation) Agents() []Agent { return s.agents }

// SetParams swaps in new tuning without reseeding. Agent counts are fixed
// for a run; changing them requires Reset.
func (s *Simulation) SetParams(p Params) error {
	if err := validateFor(p, s.width, s.height); err != nil {
		return err
	}
	if p.NumAgents != s.params.NumAgents {
		return fmt.Errorf("agent counts changed from %v to %v, reset required", s.params.NumAgents, p.NumAgents)
	}
	s.params = p
	return nil
}

// Reset clears the field and reseeds the population from p.
func (s *Simulation) Reset(p Params) error {
	if err := validateFor(p, s.width, s.height); err != nil {
		return err
	}
	s.params = p
	s.field.Reset()
	s.seed++
	s.initRNGs()
	s.populate()
	s.tick = 0
	s.logger.Infof("simulation reset: %d agents on %dx%d", len(s.agents), s.width, s.height)
	return nil
}

// Step advances the simulation by one tick:
//  1. diffuse and decay the field,
//  2. move every agent against the settled field, recording where it deposits,
//  3. apply all recorded deposits.
//
// Sensing in a tick never sees that tick's deposits, and deposits landing in
// the same cell are all kept.
func (s *Simulation) Step() {
	start := time.Now()
	p := &s.params

	s.field.DiffuseAndDecay(p.DiffusionRate, p.DecayRate)

	parallelChunks(len(s.agents), len(s.rngs), s.workers, func(c, lo, hi int) {
		rng := s.rngs[c]
		for i := lo; i < hi; i++ {
			x, y := s.agents[i].update(s.field, p, rng)
			s.deposits[i] = y*s.width + x
		}
	})

	s.applyDeposits()

	s.tick++
	s.lastStep = time.Since(start)
	s.logger.Debugf("tick %d took %s", s.tick, s.lastStep)
}

func (s *Simulation) applyDeposits() {
	ns := s.field.species
	amount := s.params.PheromoneStrength
	cells := s.field.cells
	for i, cell := range s.deposits {
		cells[cell*ns+int(s.agents[i].Species)] += amount
	}
}

// Stats summarises the current state.
func (s *Simulation) Stats() Stats {
	st := Stats{Tick: s.tick, LastStep: s.lastStep}
	for _, a := range s.agents {
		st.Agents[a.Species]++
	}
	for sp := 0; sp < NumSpecies; sp++ {
		st.Totals[sp] = s.field.Total(sp)
	}
	return st
}
