package slime

import (
	"math"
	"math/rand"
)

// Agent is a point walker. (DX, DY) is its unit heading.
type Agent struct {
	X, Y    float64
	DX, DY  float64
	Species Species
}

// spawnAgents places the configured number of agents of each species
// uniformly in a square centred on the grid, with uniform random headings.
func spawnAgents(width, height int, p Params, rng *rand.Rand) []Agent {
	agents := make([]Agent, 0, p.TotalAgents())
	side := p.SpawnFraction * float64(width)
	x0 := (float64(width) - side) / 2
	y0 := (float64(height) - side) / 2
	maxX := float64(width) - 1
	maxY := float64(height) - 1

	for s := range p.NumAgents {
		for i := 0; i < p.NumAgents[s]; i++ {
			angle := rng.Float64() * 2 * math.Pi
			agents = append(agents, Agent{
				X:       clampFloat(x0+rng.Float64()*side, 0, maxX),
				Y:       clampFloat(y0+rng.Float64()*side, 0, maxY),
				DX:      math.Cos(angle),
				DY:      math.Sin(angle),
				Species: Species(s),
			})
		}
	}
	return agents
}

// sensorCell truncates a sensor point toward zero and clamps it into the grid.
// A point with no defined position reads the origin cell.
func sensorCell(f *Field, x, y float64) (int, int) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return f.clampXY(0, 0)
	}
	cx := int(clampFloat(x, -1, float64(f.width)))
	cy := int(clampFloat(y, -1, float64(f.height)))
	return f.clampXY(cx, cy)
}

// sense reads the attraction of a cell for species s: its own trail minus
// avoidance times every other species' trail, summed over the sensor window
// and floored at zero.
func sense(f *Field, cx, cy int, s Species, avoidance float64, half int) float64 {
	own, others := 0.0, 0.0
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			for o := 0; o < f.species; o++ {
				v := f.Sample(x, y, o)
				if Species(o) == s {
					own += v
				} else {
					others += v
				}
			}
		}
	}
	// Saturated channels can give Inf-Inf; a NaN reading counts as nothing.
	if v := own - avoidance*others; v > 0 {
		return v
	}
	return 0
}

// sensorHalfWidth converts sensorRadius into the half-width of the sensor
// window, bounded by the grid.
func sensorHalfWidth(f *Field, radius float64) int {
	if !(radius > 1) {
		return 0
	}
	limit := max(f.width, f.height)
	return int(clampFloat(radius-1, 0, float64(limit)))
}

// turnAngle picks the steering angle from the three sensor readings.
// Forward wins ties; between left and right, left wins ties. The random term
// only applies when the agent actually turns.
func turnAngle(forward, left, right float64, p *Params, rng *rand.Rand) float64 {
	maxStrength := math.Max(math.Max(forward, left), right)
	if maxStrength <= 0 {
		return 0
	}
	if forward >= left && forward >= right {
		return 0
	}
	randomTurn := p.FreeWill * (rng.Float64() - 0.5)
	if left >= right {
		return p.TurnRate*(left/maxStrength)*p.PheromoneSensitivity + randomTurn
	}
	return -p.TurnRate*(right/maxStrength)*p.PheromoneSensitivity + randomTurn
}

// update advances one agent by a tick against a read-only field and returns
// the cell it deposits into. The deposit itself is applied by the caller.
func (a *Agent) update(f *Field, p *Params, rng *rand.Rand) (cx, cy int) {
	half := sensorHalfWidth(f, p.SensorRadius)

	sdx := a.DX * p.SensorDistance
	sdy := a.DY * p.SensorDistance
	lrdx := sdx * p.LRSensorDistance
	lrdy := sdy * p.LRSensorDistance

	// Left is the side a positive rotation turns toward: heading rotated
	// by +90 degrees, i.e. (-dy, dx).
	fx, fy := sensorCell(f, a.X+sdx, a.Y+sdy)
	lx, ly := sensorCell(f, a.X-lrdy, a.Y+lrdx)
	rx, ry := sensorCell(f, a.X+lrdy, a.Y-lrdx)

	forward := sense(f, fx, fy, a.Species, p.AvoidanceStrength, half)
	left := sense(f, lx, ly, a.Species, p.AvoidanceStrength, half)
	right := sense(f, rx, ry, a.Species, p.AvoidanceStrength, half)

	if angle := turnAngle(forward, left, right, p, rng); angle != 0 && !math.IsNaN(angle) && !math.IsInf(angle, 0) {
		cos, sin := math.Cos(angle), math.Sin(angle)
		a.DX, a.DY = cos*a.DX-sin*a.DY, sin*a.DX+cos*a.DY
	}

	a.X += a.DX * p.Speed
	a.Y += a.DY * p.Speed

	maxX := float64(f.width - 1)
	maxY := float64(f.height - 1)
	if a.X < 0 || a.X >= float64(f.width) {
		a.DX = -a.DX
		a.X = clampFloat(a.X, 0, maxX)
	}
	if a.Y < 0 || a.Y >= float64(f.height) {
		a.DY = -a.DY
		a.Y = clampFloat(a.Y, 0, maxY)
	}

	return int(a.X), int(a.Y)
}
