// Package game runs a headless flow-field session: one noise field, a fixed
// population of flow particles and windowed telemetry.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/noise"
	"github.com/pthm-cable/flowfield/systems"
	"github.com/pthm-cable/flowfield/telemetry"
)

// Options configures a session.
type Options struct {
	Seed           int64  // RNG seed (0 = time-based)
	LogStats       bool   // Log window stats via slog
	StatsWindow    int    // Ticks per stats window (0 = use config)
	OutputDir      string // Directory for telemetry.csv and config.yaml (empty = disabled)
	StepsPerUpdate int    // Ticks per Update call (0 = 1)
}

// Game holds the simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	field *noise.Field
	flow  *systems.FlowFieldSystem

	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	stepsPerUpdate int
	tick           int32
	speeds         []float64
}

// NewGameWithOptions creates a session from cfg.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	noiseSeed := cfg.Noise.Seed
	if noiseSeed == 0 {
		noiseSeed = seed
	}

	window := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		window = opts.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	outputManager, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := outputManager.WriteConfig(cfg); err != nil {
		outputManager.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		world:          world,
		rng:            rng,
		cfg:            cfg,
		field:          noise.NewSeeded(noiseSeed),
		collector:      telemetry.NewCollector(int32(window)),
		outputManager:  outputManager,
		logStats:       opts.LogStats,
		stepsPerUpdate: steps,
	}
	g.flow = systems.NewFlowFieldSystem(world, g.field, rng, cfg)
	g.flow.SetObserver(g.collector)

	return g, nil
}

// SetStatsCallback sets a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Update runs StepsPerUpdate simulation ticks.
func (g *Game) Update() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep runs a single tick of the simulation.
func (g *Game) simulationStep() {
	g.flow.Update(g.tick)
	g.tick++
	g.flushTelemetry()
}

// Tick returns the number of ticks simulated.
func (g *Game) Tick() int32 {
	return g.tick
}

// Field returns the session noise field.
func (g *Game) Field() *noise.Field {
	return g.field
}

// Flow returns the flow particle system.
func (g *Game) Flow() *systems.FlowFieldSystem {
	return g.flow
}

// Unload releases output files.
func (g *Game) Unload() error {
	return g.outputManager.Close()
}
