package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivierh59500/slime-go/internal/config"
	"github.com/olivierh59500/slime-go/internal/logging"
	"github.com/olivierh59500/slime-go/internal/slime"
)

// newTestGame wires the config side of a Game without any ebiten state.
func newTestGame(t *testing.T, configFile string) *Game {
	t.Helper()
	logger := logging.NewWithOutput("error", log.New(io.Discard, "", 0))

	params := slime.DefaultParams()
	params.NumAgents = [slime.NumSpecies]int{5, 5, 5}
	registry := config.NewRegistry(logger)
	params.Register(registry)

	sim, err := slime.NewSimulation(40, 30, params, 1)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	return &Game{
		sim:      sim,
		params:   &params,
		registry: registry,
		cfg:      AppConfig{ConfigFile: configFile},
		logger:   logger,
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestGame_ReloadConfigAppliesLive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slimeconfig.txt")
	g := newTestGame(t, path)
	g.sim.Step()

	writeConfig(t, path, "turnRate: 0.75\n")
	g.reloadConfig()

	if g.sim.Params().TurnRate != 0.75 {
		t.Errorf("Expected turnRate 0.75, got %v", g.sim.Params().TurnRate)
	}
	if g.sim.Tick() != 1 {
		t.Errorf("Expected a live update to keep the tick, got %d", g.sim.Tick())
	}
}

func TestGame_ReloadConfigResetsOnNewCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slimeconfig.txt")
	g := newTestGame(t, path)
	g.sim.Step()

	writeConfig(t, path, "numRedAgents: 9\n")
	g.reloadConfig()

	if g.sim.Tick() != 0 {
		t.Errorf("Expected a reset, tick is %d", g.sim.Tick())
	}
	if n := len(g.sim.Agents()); n != 19 {
		t.Errorf("Expected 19 agents, got %d", n)
	}
}

func TestGame_ReloadConfigRejectedKeepsParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slimeconfig.txt")
	g := newTestGame(t, path)

	writeConfig(t, path, "turnRate: 0.9\nsensorRadius: 1000000\n")
	g.reloadConfig()

	if g.params.TurnRate != 0.5 || g.params.SensorRadius != 1 {
		t.Errorf("Expected bound params restored, got turnRate=%v sensorRadius=%v", g.params.TurnRate, g.params.SensorRadius)
	}
	if g.sim.Params().SensorRadius != 1 {
		t.Errorf("Expected running sensorRadius 1, got %v", g.sim.Params().SensorRadius)
	}
}

func TestGame_ReloadConfigReadErrorKeepsParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slimeconfig.txt")
	g := newTestGame(t, path)

	// The first line applies, then the scanner gives up on an over-long line.
	writeConfig(t, path, "turnRate: 1.25\n"+strings.Repeat("x", 128*1024)+"\n")
	g.reloadConfig()

	if g.params.TurnRate != 0.5 {
		t.Errorf("Expected turnRate restored to 0.5, got %v", g.params.TurnRate)
	}
	if g.sim.Params().TurnRate != 0.5 {
		t.Errorf("Expected running turnRate 0.5, got %v", g.sim.Params().TurnRate)
	}
}

func TestGame_SaveConfigLeavesSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slimeconfig.txt")
	original := "# hand-tuned\nturnRate: 0.5\n"
	writeConfig(t, path, original)

	g := newTestGame(t, path)
	g.saveConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if string(data) != original {
		t.Errorf("Expected source config untouched, got:\n%s", data)
	}

	saved, err := os.ReadFile(savedConfigPath(path))
	if err != nil {
		t.Fatalf("Expected saved config: %v", err)
	}
	if !strings.Contains(string(saved), "turnRate: 0.5\n") || !strings.Contains(string(saved), "numRedAgents: 5\n") {
		t.Errorf("Unexpected saved config:\n%s", saved)
	}
}
