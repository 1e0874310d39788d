package slime

import (
	"errors"
	"fmt"
	"math"

	"github.com/olivierh59500/slime-go/internal/config"
)

// MaxAgents caps the population so an absurd config fails cleanly instead of
// taking the process down inside the allocator.
const MaxAgents = 50_000_000

var ErrTooManyAgents = errors.New("requested agent count exceeds limit")

// Params holds every tunable of the simulation. Field names mirror the keys
// of the config file.
type Params struct {
	NumAgents [NumSpecies]int `json:"num_agents"` // Agents per species

	DecayRate            float64 `json:"decay_rate"`            // Multiplier applied to every interior cell each tick
	DiffusionRate        float64 `json:"diffusion_rate"`        // Share of the four neighbours added to a cell each tick
	TurnRate             float64 `json:"turn_rate"`             // Base turn angle in radians
	SensorDistance       float64 `json:"sensor_distance"`       // Distance to the forward sensor
	SensorRadius         float64 `json:"sensor_radius"`         // Sensor window; 1 reads a single cell
	LRSensorDistance     float64 `json:"lr_sensor_distance"`    // Multiplier on the side sensors' reach
	PheromoneStrength    float64 `json:"pheromone_strength"`    // Amount deposited per agent per tick
	AvoidanceStrength    float64 `json:"avoidance_strength"`    // Weight of other species' trails
	PheromoneSensitivity float64 `json:"pheromone_sensitivity"` // Multiplier on the steering angle
	FreeWill             float64 `json:"free_will"`             // Amplitude of the random turn
	Speed                float64 `json:"speed"`                 // Cells travelled per tick

	SpawnFraction  float64 `json:"spawn_fraction"`  // Side of the spawn square relative to the grid width
	NoiseAmplitude float64 `json:"noise_amplitude"` // Initial perlin texture of the field, 0 disables
	CycleColors    bool    `json:"cycle_colors"`    // Rotate the first species' hue over time
	CycleSpeed     float64 `json:"cycle_speed"`     // Degrees of hue per second when cycling
}

// DefaultParams returns the stock tuning, overridden by the config file.
func DefaultParams() Params {
	return Params{
		NumAgents:            [NumSpecies]int{10000, 10000, 10000},
		DecayRate:            0.99,
		DiffusionRate:        0.0001,
		TurnRate:             0.5,
		SensorDistance:       10,
		SensorRadius:         1,
		LRSensorDistance:     3,
		PheromoneStrength:    15,
		AvoidanceStrength:    0.5,
		PheromoneSensitivity: 2,
		FreeWill:             1,
		Speed:                1,
		SpawnFraction:        0.1,
		NoiseAmplitude:       0,
		CycleColors:          false,
		CycleSpeed:           30,
	}
}

// Register binds every parameter to its config file key.
func (p *Params) Register(r *config.Registry) {
	for s := range p.NumAgents {
		r.Int(speciesTable[s].ConfigKey, &p.NumAgents[s])
	}
	r.Float("decayRate", &p.DecayRate)
	r.Float("diffusionRate", &p.DiffusionRate)
	r.Float("turnRate", &p.TurnRate)
	r.Float("sensorDistance", &p.SensorDistance)
	r.Float("sensorRadius", &p.SensorRadius)
	r.Float("lrSensorDistance", &p.LRSensorDistance)
	r.Float("pheromoneStrength", &p.PheromoneStrength)
	r.Float("avoidanceStrength", &p.AvoidanceStrength)
	r.Float("pheromoneSensitivity", &p.PheromoneSensitivity)
	r.Float("freeWill", &p.FreeWill)
	r.Float("speed", &p.Speed)
	r.Float("spawnFraction", &p.SpawnFraction)
	r.Float("noiseAmplitude", &p.NoiseAmplitude)
	r.Bool("cycleColors", &p.CycleColors)
	r.Float("cycleSpeed", &p.CycleSpeed)
}

// TotalAgents sums the per-species counts.
func (p Params) TotalAgents() int {
	total := 0
	for _, n := range p.NumAgents {
		total += n
	}
	return total
}

// Validate rejects parameter sets the simulation cannot be sized from.
func (p Params) Validate() error {
	total := 0
	for s, n := range p.NumAgents {
		if n < 0 {
			return fmt.Errorf("%s: negative agent count %d", speciesTable[s].ConfigKey, n)
		}
		total += n
		if total > MaxAgents {
			return fmt.Errorf("%w: %d > %d", ErrTooManyAgents, total, MaxAgents)
		}
	}
	for _, f := range p.floats() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s: value %v is not finite", f.key, f.value)
		}
	}
	if p.SpawnFraction < 0 || p.SpawnFraction > 1 {
		return fmt.Errorf("spawnFraction %v outside [0, 1]", p.SpawnFraction)
	}
	if p.SensorRadius < 0 {
		return fmt.Errorf("sensorRadius %v is negative", p.SensorRadius)
	}
	return nil
}

// validateGrid checks the parameters that are bounded by the grid size.
func (p Params) validateGrid(width, height int) error {
	if limit := float64(max(width, height)); p.SensorRadius > limit {
		return fmt.Errorf("sensorRadius %v exceeds grid size %v", p.SensorRadius, limit)
	}
	return nil
}

type namedFloat struct {
	key   string
	value float64
}

func (p Params) floats() []namedFloat {
	return []namedFloat{
		{"decayRate", p.DecayRate},
		{"diffusionRate", p.DiffusionRate},
		{"turnRate", p.TurnRate},
		{"sensorDistance", p.SensorDistance},
		{"sensorRadius", p.SensorRadius},
		{"lrSensorDistance", p.LRSensorDistance},
		{"pheromoneStrength", p.PheromoneStrength},
		{"avoidanceStrength", p.AvoidanceStrength},
		{"pheromoneSensitivity", p.PheromoneSensitivity},
		{"freeWill", p.FreeWill},
		{"speed", p.Speed},
		{"spawnFraction", p.SpawnFraction},
		{"noiseAmplitude", p.NoiseAmplitude},
		{"cycleSpeed", p.CycleSpeed},
	}
}
