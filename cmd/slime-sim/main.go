package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/olivierh59500/slime-go/internal/config"
	"github.com/olivierh59500/slime-go/internal/logging"
	"github.com/olivierh59500/slime-go/internal/slime"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run executes a headless simulation and writes a summary to out.
func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("slime-sim", flag.ContinueOnError)
	var (
		configFile = fs.String("config", "slimeconfig.txt", "path to the key: value parameter file")
		ticks      = fs.Int("ticks", 500, "number of ticks to run")
		width      = fs.Int("width", 400, "grid width in cells")
		height     = fs.Int("height", 300, "grid height in cells")
		seed       = fs.Int64("seed", 1, "random seed")
		workers    = fs.Int("workers", 0, "parallel workers per pass; 0 uses every CPU")
		outFile    = fs.String("out", "", "write the final colour buffer to this PNG file (optional)")
		dumpParams = fs.Bool("dump-params", false, "print the effective parameters as JSON")
		logLevel   = fs.String("log-level", "warn", "Log level: debug, info, warn, error")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", *ticks)
	}

	logger := logging.New(*logLevel)

	params := slime.DefaultParams()
	registry := config.NewRegistry(logger)
	params.Register(registry)
	if err := registry.Load(*configFile); err != nil {
		logger.Errorf("%v", err)
	}

	if *dumpParams {
		data, err := json.MarshalIndent(params, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding parameters: %w", err)
		}
		fmt.Fprintln(out, string(data))
	}

	sim, err := slime.NewSimulation(*width, *height, params, *seed)
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}
	sim.SetLogger(logger)
	if *workers > 0 {
		sim.SetWorkers(*workers)
	}

	start := time.Now()
	for i := 0; i < *ticks; i++ {
		sim.Step()
	}
	elapsed := time.Since(start)

	if *outFile != "" {
		if err := writePNG(*outFile, sim.Field()); err != nil {
			return err
		}
	}

	printSummary(out, sim, elapsed)
	return nil
}

// writePNG renders every species with the default palette.
func writePNG(path string, f *slime.Field) error {
	img := image.NewRGBA(image.Rect(0, 0, f.Width(), f.Height()))
	slime.NewPalette().BlendRGBA(f, img.Pix, slime.AllSpecies)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding image: %w", err)
	}
	return file.Close()
}

func printSummary(out io.Writer, sim *slime.Simulation, elapsed time.Duration) {
	st := sim.Stats()

	fmt.Fprintf(out, "Simulation finished (grid=%dx%d, ticks=%d)\n", sim.Width(), sim.Height(), st.Tick)
	fmt.Fprintln(out, "Species:")
	for s := slime.Species(0); s < slime.NumSpecies; s++ {
		fmt.Fprintf(out, "  %-6s agents=%d pheromone=%.1f\n", s, st.Agents[s], st.Totals[s])
	}
	if st.Tick > 0 {
		perStep := float64(elapsed.Microseconds()) / 1000 / float64(st.Tick)
		fmt.Fprintf(out, "Mean step: %.3fms\n", perStep)
	}
}
