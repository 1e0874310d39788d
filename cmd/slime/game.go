package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/olivierh59500/slime-go/internal/config"
	"github.com/olivierh59500/slime-go/internal/logging"
	"github.com/olivierh59500/slime-go/internal/slime"
)

const (
	minZoom  = 1.0
	maxZoom  = 16.0
	zoomStep = 0.1
)

// visMode selects which species are drawn.
type visMode struct {
	name string
	mask uint
}

var visModes = []visMode{
	{"all", slime.AllSpecies},
	{slime.Red.String(), 1 << uint(slime.Red)},
	{slime.Green.String(), 1 << uint(slime.Green)},
	{slime.Blue.String(), 1 << uint(slime.Blue)},
}

// Game adapts a slime.Simulation to ebiten: it steps once per Update and
// draws the blended field once per Draw.
type Game struct {
	sim      *slime.Simulation
	palette  *slime.Palette
	params   *slime.Params // storage bound to registry
	registry *config.Registry
	cfg      AppConfig
	logger   *logging.Logger

	frame *ebiten.Image
	pix   []byte

	paused  bool
	visMode int

	zoom           float64
	camX, camY     float64
	prevMX, prevMY float64

	start time.Time
	stats *frameStats
}

// NewGame wires a simulation to a window-sized frame buffer.
func NewGame(sim *slime.Simulation, params *slime.Params, registry *config.Registry, cfg AppConfig, logger *logging.Logger) *Game {
	now := time.Now()
	return &Game{
		sim:      sim,
		palette:  slime.NewPalette(),
		params:   params,
		registry: registry,
		cfg:      cfg,
		logger:   logger,
		frame:    ebiten.NewImage(sim.Width(), sim.Height()),
		pix:      make([]byte, sim.Width()*sim.Height()*4),
		zoom:     1,
		start:    now,
		stats:    newFrameStats(time.Second, now),
	}
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}

	if g.params.CycleColors {
		g.palette.Cycle(time.Since(g.start), g.params.CycleSpeed)
	}

	if g.paused {
		return nil
	}
	g.sim.Step()
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	g.palette.BlendRGBA(g.sim.Field(), g.pix, visModes[g.visMode].mask)
	g.frame.WritePixels(g.pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-g.camX, -g.camY)
	op.GeoM.Scale(g.zoom, g.zoom)
	screen.DrawImage(g.frame, op)

	text.Draw(screen, g.hud(), basicfont.Face7x13, 8, 16, color.White)

	if fps, ok := g.stats.frame(time.Now()); ok {
		g.logger.Infof("fps %.1f tps %.1f tick %d", fps, ebiten.ActualTPS(), g.sim.Tick())
	}
}

// Layout keeps one logical pixel per grid cell; the window scale stretches it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.sim.Width(), g.sim.Height()
}

func (g *Game) hud() string {
	st := g.sim.Stats()
	status := ""
	if g.paused {
		status = "  [paused]"
	}
	return fmt.Sprintf("tick %d  fps %.0f  tps %.0f  step %.2fms  view %s%s",
		st.Tick, ebiten.ActualFPS(), ebiten.ActualTPS(),
		float64(st.LastStep.Microseconds())/1000, visModes[g.visMode].name, status)
}

// handleInput processes keyboard and mouse input
func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.sim.Reset(*g.params); err != nil {
			g.logger.Errorf("reset failed: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.reloadConfig()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveConfig()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.visMode = (g.visMode + 1) % len(visModes)
	}

	// Zoom
	_, wheelY := ebiten.Wheel()
	g.zoom = clamp(g.zoom+wheelY*zoomStep, minZoom, maxZoom)

	// Pan (drag)
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.camX -= (float64(mx) - g.prevMX) / g.zoom
		g.camY -= (float64(my) - g.prevMY) / g.zoom
	}
	g.prevMX = float64(mx)
	g.prevMY = float64(my)

	g.clampCamera()
	return nil
}

// reloadConfig re-reads the parameter file. Changes that keep the agent counts
// are applied live; anything else restarts the run. An invalid file leaves
// the running parameters in place.
func (g *Game) reloadConfig() {
	prev := *g.params
	if err := g.registry.Load(g.cfg.ConfigFile); err != nil {
		g.logger.Errorf("reloading config: %v", err)
		*g.params = prev
		return
	}

	var err error
	if g.params.NumAgents == prev.NumAgents {
		err = g.sim.SetParams(*g.params)
	} else {
		err = g.sim.Reset(*g.params)
	}
	if err != nil {
		g.logger.Errorf("applying config: %v", err)
		*g.params = prev
	}
}

// saveConfig writes the effective parameters next to the config file so the
// user's file and its comments stay untouched.
func (g *Game) saveConfig() {
	path := savedConfigPath(g.cfg.ConfigFile)
	if err := g.registry.Save(path); err != nil {
		g.logger.Errorf("saving config: %v", err)
		return
	}
	g.logger.Infof("config saved to %s", path)
}

func savedConfigPath(configFile string) string {
	return configFile + ".saved"
}

// clampCamera keeps the visible window inside the grid.
func (g *Game) clampCamera() {
	viewW := float64(g.sim.Width()) / g.zoom
	viewH := float64(g.sim.Height()) / g.zoom
	g.camX = clamp(g.camX, 0, float64(g.sim.Width())-viewW)
	g.camY = clamp(g.camY, 0, float64(g.sim.Height())-viewH)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
