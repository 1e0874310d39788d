package slime

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/olivierh59500/slime-go/internal/config"
)

func TestParams_Register(t *testing.T) {
	p := DefaultParams()
	reg := config.NewRegistry(nil)
	p.Register(reg)

	want := []string{
		"numRedAgents", "numGreenAgents", "numBlueAgents",
		"decayRate", "diffusionRate", "turnRate",
		"sensorDistance", "sensorRadius", "lrSensorDistance",
		"pheromoneStrength", "avoidanceStrength", "pheromoneSensitivity",
		"freeWill", "speed", "spawnFraction", "noiseAmplitude",
		"cycleColors", "cycleSpeed",
	}
	names := reg.Names()
	if len(names) != len(want) {
		t.Fatalf("Expected %d keys, got %d: %v", len(want), len(names), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Key %d: expected %s, got %s", i, want[i], names[i])
		}
	}

	input := `# tuned
numGreenAgents: 42
turnRate: 0.25
cycleColors: 1
speed: fast
`
	report, err := reg.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(report.Applied) != 3 || len(report.Malformed) != 1 {
		t.Errorf("Unexpected report %+v", report)
	}
	if p.NumAgents[Green] != 42 {
		t.Errorf("Expected 42 green agents, got %d", p.NumAgents[Green])
	}
	if p.TurnRate != 0.25 {
		t.Errorf("Expected turnRate 0.25, got %v", p.TurnRate)
	}
	if !p.CycleColors {
		t.Error("Expected cycleColors to be true")
	}
	if p.Speed != 1 {
		t.Errorf("Expected speed to keep its default, got %v", p.Speed)
	}
}

func TestParams_TotalAgents(t *testing.T) {
	p := Params{NumAgents: [NumSpecies]int{1, 20, 300}}
	if got := p.TotalAgents(); got != 321 {
		t.Errorf("Expected 321, got %d", got)
	}
}

func TestParams_Validate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("Defaults must validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
		target error
	}{
		{"negative count", func(p *Params) { p.NumAgents[2] = -5 }, nil},
		{"over limit", func(p *Params) { p.NumAgents = [NumSpecies]int{MaxAgents / 2, MaxAgents / 2, 1} }, ErrTooManyAgents},
		{"spawn below zero", func(p *Params) { p.SpawnFraction = -0.1 }, nil},
		{"spawn above one", func(p *Params) { p.SpawnFraction = 1.5 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestParams_ValidateRejectsNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"speed NaN", func(p *Params) { p.Speed = nan }},
		{"avoidance Inf", func(p *Params) { p.AvoidanceStrength = inf }},
		{"spawn fraction NaN", func(p *Params) { p.SpawnFraction = nan }},
		{"sensor radius -Inf", func(p *Params) { p.SensorRadius = -inf }},
		{"decay Inf", func(p *Params) { p.DecayRate = inf }},
		{"diffusion NaN", func(p *Params) { p.DiffusionRate = nan }},
		{"turn rate NaN", func(p *Params) { p.TurnRate = nan }},
		{"sensor distance Inf", func(p *Params) { p.SensorDistance = inf }},
		{"lr distance -Inf", func(p *Params) { p.LRSensorDistance = -inf }},
		{"strength NaN", func(p *Params) { p.PheromoneStrength = nan }},
		{"sensitivity Inf", func(p *Params) { p.PheromoneSensitivity = inf }},
		{"free will NaN", func(p *Params) { p.FreeWill = nan }},
		{"noise Inf", func(p *Params) { p.NoiseAmplitude = inf }},
		{"cycle speed NaN", func(p *Params) { p.CycleSpeed = nan }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("Expected an error for a non-finite value")
			}
		})
	}
}

func TestParams_NonFiniteConfigLinesKeepDefaults(t *testing.T) {
	p := DefaultParams()
	p.NumAgents = [NumSpecies]int{20, 20, 20}
	reg := config.NewRegistry(nil)
	p.Register(reg)

	input := "speed: NaN\navoidanceStrength: Inf\nspawnFraction: NaN\nturnRate: -Inf\n"
	report, err := reg.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(report.Malformed) != 4 || len(report.Applied) != 0 {
		t.Errorf("Expected 4 malformed lines, got %+v", report)
	}

	def := DefaultParams()
	if p.Speed != def.Speed || p.AvoidanceStrength != def.AvoidanceStrength ||
		p.SpawnFraction != def.SpawnFraction || p.TurnRate != def.TurnRate {
		t.Errorf("Expected defaults to survive, got %+v", p)
	}

	sim, err := NewSimulation(30, 20, p, 1)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		sim.Step()
	}
}

func TestParams_SensorRadiusBounds(t *testing.T) {
	tests := []struct {
		name    string
		radius  float64
		wantErr bool
	}{
		{"single cell", 1, false},
		{"zero", 0, false},
		{"grid size", 40, false},
		{"negative", -1, true},
		{"beyond grid", 41, true},
		{"huge", 1e6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.NumAgents = [NumSpecies]int{1, 1, 1}
			p.SensorRadius = tt.radius
			_, err := NewSimulation(40, 30, p, 1)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSimulation(sensorRadius=%v) error = %v, wantErr %v", tt.radius, err, tt.wantErr)
			}
		})
	}

	p := DefaultParams()
	p.NumAgents = [NumSpecies]int{1, 1, 1}
	sim, err := NewSimulation(40, 30, p, 1)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	p.SensorRadius = 1e6
	if err := sim.SetParams(p); err == nil {
		t.Error("Expected SetParams to reject an oversized sensorRadius")
	}
	if err := sim.Reset(p); err == nil {
		t.Error("Expected Reset to reject an oversized sensorRadius")
	}
	if sim.Params().SensorRadius != 1 {
		t.Errorf("Expected running sensorRadius to stay 1, got %v", sim.Params().SensorRadius)
	}
}
