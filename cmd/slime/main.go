package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/slime-go/internal/config"
	"github.com/olivierh59500/slime-go/internal/logging"
	"github.com/olivierh59500/slime-go/internal/slime"
)

func main() {
	cfg, err := loadAppConfig(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(cfg.LogLevel)

	// Parameters start at their defaults and the file overrides what it names
	params := slime.DefaultParams()
	registry := config.NewRegistry(logger)
	params.Register(registry)
	if err := registry.Load(cfg.ConfigFile); err != nil {
		logger.Errorf("%v", err)
	}
	for _, name := range registry.Names() {
		v, _ := registry.Lookup(name)
		logger.Infof("%s: %s", name, v.String())
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim, err := slime.NewSimulation(cfg.Width, cfg.Height, params, seed)
	if err != nil {
		logger.Fatalf("creating simulation: %v", err)
	}
	sim.SetLogger(logger)
	if cfg.Workers > 0 {
		sim.SetWorkers(cfg.Workers)
	}
	logger.Infof("simulating %d agents on a %dx%d grid (seed %d)",
		params.TotalAgents(), cfg.Width, cfg.Height, seed)

	game := NewGame(sim, &params, registry, cfg, logger)
	for s := slime.Species(0); s < slime.NumSpecies; s++ {
		logger.Debugf("%s trail colour #%06x", s, slime.PackRGB(game.palette.Color(s)))
	}

	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowTitle("Slime Mold Simulation")
	ebiten.SetTPS(cfg.TPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatalf("%v", err)
	}

	if lo, avg, hi, ok := game.stats.summary(); ok {
		logger.Infof("fps min %.1f avg %.1f max %.1f", lo, avg, hi)
	}
}
