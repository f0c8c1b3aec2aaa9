// Package systems contains ECS systems for the simulation.
package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/flowfield/components"
	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/noise"
	"github.com/pthm-cable/flowfield/particle"
)

// Bounds represents the simulation bounds.
type Bounds struct {
	Width, Height float64
}

// Observer receives per-tick flow events. Implemented by telemetry.Collector.
type Observer interface {
	RecordNoise(v float64)
	RecordRespawn()
}

// FlowFieldSystem drives flow particles through a noise field.
// Each particle is an entity holding a particle.Particle and a Lifespan.
type FlowFieldSystem struct {
	field    noise.Sampler
	rng      *rand.Rand
	mapper   *ecs.Map2[particle.Particle, components.Lifespan]
	filter   *ecs.Filter2[particle.Particle, components.Lifespan]
	bounds   Bounds
	flow     config.FlowConfig
	noise    config.NoiseConfig
	count    int
	observer Observer
}

// NewFlowFieldSystem creates a flow field system over the given world.
func NewFlowFieldSystem(w *ecs.World, field noise.Sampler, rng *rand.Rand, cfg *config.Config) *FlowFieldSystem {
	return &FlowFieldSystem{
		field:  field,
		rng:    rng,
		mapper: ecs.NewMap2[particle.Particle, components.Lifespan](w),
		filter: ecs.NewFilter2[particle.Particle, components.Lifespan](w),
		bounds: Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
		flow:   cfg.Flow,
		noise:  cfg.Noise,
	}
}

// SetObserver sets an optional observer for noise samples and respawns.
func (s *FlowFieldSystem) SetObserver(o Observer) {
	s.observer = o
}

// Count returns the number of live flow particles.
func (s *FlowFieldSystem) Count() int {
	return s.count
}

// Update advances every flow particle by one tick.
func (s *FlowFieldSystem) Update(tick int32) {
	// Spawn new particles if below target
	for i := 0; i < s.flow.SpawnRate && s.count < s.flow.Count; i++ {
		p, life := s.spawn()
		s.mapper.NewEntity(&p, &life)
		s.count++
	}

	query := s.filter.Query()
	for query.Next() {
		p, life := query.Get()

		life.Remaining--
		if life.Expired() {
			*p, *life = s.spawn()
			if s.observer != nil {
				s.observer.RecordRespawn()
			}
			continue
		}

		p.ApplyForce(s.FlowForce(p.Position, tick))
		p.ApplyForce(r2.Scale(-s.flow.Drag, p.Velocity))
		p.Update()

		// Limit velocity, skipping sqrt when clearly under limit
		if speedSq := r2.Dot(p.Velocity, p.Velocity); speedSq > s.flow.MaxSpeed*s.flow.MaxSpeed {
			p.Velocity = r2.Scale(s.flow.MaxSpeed/math.Sqrt(speedSq), p.Velocity)
		}

		p.Position.X = wrap(p.Position.X, s.bounds.Width)
		p.Position.Y = wrap(p.Position.Y, s.bounds.Height)
	}
}

// FlowForce returns the flow force at a world position. The first noise
// sample picks the direction, the second (offset) sample the magnitude.
func (s *FlowFieldSystem) FlowForce(pos r2.Vec, tick int32) r2.Vec {
	t := float64(tick)
	nx := pos.X*s.noise.Scale + t*s.noise.DriftX
	ny := pos.Y*s.noise.Scale + t*s.noise.DriftY

	angleNoise := s.field.Noise(nx, ny)
	magNoise := s.field.Noise(nx+s.noise.MagnitudeOffset, ny+s.noise.MagnitudeOffset)
	if s.observer != nil {
		s.observer.RecordNoise(angleNoise)
	}

	angle := angleNoise * 2 * math.Pi
	magnitude := (magNoise + 1) * 0.5 * s.flow.Strength
	return r2.Vec{
		X: math.Cos(angle) * magnitude,
		Y: math.Sin(angle)*magnitude + s.flow.DownwardDrift,
	}
}

// Speeds appends the speed of every flow particle to dst.
func (s *FlowFieldSystem) Speeds(dst []float64) []float64 {
	query := s.filter.Query()
	for query.Next() {
		p, _ := query.Get()
		dst = append(dst, p.Speed())
	}
	return dst
}

// Each calls fn with every flow particle. fn must not retain p.
func (s *FlowFieldSystem) Each(fn func(p *particle.Particle, life *components.Lifespan)) {
	query := s.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// spawn returns a resting particle at a random position with a fresh lifespan.
func (s *FlowFieldSystem) spawn() (particle.Particle, components.Lifespan) {
	pos := r2.Vec{
		X: s.rng.Float64() * s.bounds.Width,
		Y: s.rng.Float64() * s.bounds.Height,
	}
	lifespan := int32(s.flow.MinLifespan)
	if s.flow.LifespanJitter > 0 {
		lifespan += int32(s.rng.Intn(s.flow.LifespanJitter))
	}
	return particle.New(pos, r2.Vec{}, r2.Vec{}), components.Lifespan{Remaining: lifespan, Max: lifespan}
}

// wrap maps v into [0, size).
func wrap(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		v = 0
	}
	return v
}
