package particle

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNew(t *testing.T) {
	position := r2.Vec{X: 5, Y: 6}
	velocity := r2.Vec{X: 1, Y: 2}
	acceleration := r2.Vec{X: 3, Y: 4}

	p := New(position, velocity, acceleration)

	if p.Position != position {
		t.Errorf("position = %v, want %v", p.Position, position)
	}
	if p.Velocity != velocity {
		t.Errorf("velocity = %v, want %v", p.Velocity, velocity)
	}
	if p.Acceleration != acceleration {
		t.Errorf("acceleration = %v, want %v", p.Acceleration, acceleration)
	}
}

func TestApplyForce(t *testing.T) {
	p := New(r2.Vec{}, r2.Vec{}, r2.Vec{})
	force := r2.Vec{X: 1, Y: 2}

	p.ApplyForce(force)

	if p.Acceleration != force {
		t.Errorf("acceleration = %v, want %v", p.Acceleration, force)
	}
	if p.Velocity != (r2.Vec{}) || p.Position != (r2.Vec{}) {
		t.Error("ApplyForce must only touch acceleration")
	}
}

func TestApplyForceAccumulates(t *testing.T) {
	f1 := r2.Vec{X: 1.5, Y: -2}
	f2 := r2.Vec{X: -0.25, Y: 4}
	want := r2.Vec{X: 1.25, Y: 2}

	a := New(r2.Vec{}, r2.Vec{}, r2.Vec{})
	a.ApplyForce(f1)
	a.ApplyForce(f2)

	b := New(r2.Vec{}, r2.Vec{}, r2.Vec{})
	b.ApplyForce(f2)
	b.ApplyForce(f1)

	if a.Acceleration != want {
		t.Errorf("acceleration = %v, want %v", a.Acceleration, want)
	}
	if a.Acceleration != b.Acceleration {
		t.Errorf("order dependent: %v vs %v", a.Acceleration, b.Acceleration)
	}
}

func TestUpdate(t *testing.T) {
	p := New(r2.Vec{}, r2.Vec{}, r2.Vec{})
	p.ApplyForce(r2.Vec{X: 1, Y: 2})
	p.Update()

	if p.Velocity != (r2.Vec{X: 1, Y: 2}) {
		t.Errorf("velocity = %v, want (1, 2)", p.Velocity)
	}
	if p.Position != (r2.Vec{X: 1, Y: 2}) {
		t.Errorf("position = %v, want (1, 2)", p.Position)
	}
	if p.Acceleration != (r2.Vec{}) {
		t.Errorf("acceleration = %v, want (0, 0)", p.Acceleration)
	}

	// No force: drift under existing velocity
	p.Update()

	if p.Velocity != (r2.Vec{X: 1, Y: 2}) {
		t.Errorf("velocity = %v, want (1, 2)", p.Velocity)
	}
	if p.Position != (r2.Vec{X: 2, Y: 4}) {
		t.Errorf("position = %v, want (2, 4)", p.Position)
	}
	if p.Acceleration != (r2.Vec{}) {
		t.Errorf("acceleration = %v, want (0, 0)", p.Acceleration)
	}
}

func TestUpdateUsesInitialAcceleration(t *testing.T) {
	p := New(r2.Vec{X: 10, Y: 10}, r2.Vec{X: -1, Y: 0}, r2.Vec{X: 0, Y: 3})
	p.Update()

	if p.Velocity != (r2.Vec{X: -1, Y: 3}) {
		t.Errorf("velocity = %v, want (-1, 3)", p.Velocity)
	}
	if p.Position != (r2.Vec{X: 9, Y: 13}) {
		t.Errorf("position = %v, want (9, 13)", p.Position)
	}
}

func TestNonFinitePropagates(t *testing.T) {
	p := New(r2.Vec{}, r2.Vec{}, r2.Vec{})
	p.ApplyForce(r2.Vec{X: math.Inf(1), Y: math.NaN()})
	p.Update()

	if !math.IsInf(p.Position.X, 1) || !math.IsNaN(p.Position.Y) {
		t.Errorf("position = %v, want (+Inf, NaN)", p.Position)
	}
}

func TestSpeed(t *testing.T) {
	p := New(r2.Vec{}, r2.Vec{X: 3, Y: 4}, r2.Vec{})
	if got := p.Speed(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Speed() = %v, want 5", got)
	}
}
