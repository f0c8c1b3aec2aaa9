// Package particle implements a point-mass integrated with a fixed unit
// Euler step.
package particle

import "gonum.org/v1/gonum/spatial/r2"

// Particle holds the kinematic state of a point mass.
// Forces accumulate into Acceleration until the next Update.
type Particle struct {
	Position     r2.Vec
	Velocity     r2.Vec
	Acceleration r2.Vec
}

// New creates a particle with exactly the given state.
func New(position, velocity, acceleration r2.Vec) Particle {
	return Particle{
		Position:     position,
		Velocity:     velocity,
		Acceleration: acceleration,
	}
}

// ApplyForce adds force to the accumulated acceleration.
func (p *Particle) ApplyForce(force r2.Vec) {
	p.Acceleration = r2.Add(p.Acceleration, force)
}

// Update advances one step: velocity += acceleration, position += velocity,
// then acceleration is cleared. Continuous forces must be reapplied every step.
func (p *Particle) Update() {
	p.Velocity = r2.Add(p.Velocity, p.Acceleration)
	p.Position = r2.Add(p.Position, p.Velocity)
	p.Acceleration = r2.Vec{}
}

// Speed returns the magnitude of the velocity.
func (p *Particle) Speed() float64 {
	return r2.Norm(p.Velocity)
}
