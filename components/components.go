// Package components defines ECS components for the simulation.
package components

// Lifespan counts down the ticks a flow particle has left before respawning.
type Lifespan struct {
	Remaining int32
	Max       int32
}

// Expired reports whether the lifespan has run out.
func (l *Lifespan) Expired() bool {
	return l.Remaining <= 0
}

// Fraction returns the remaining share of the lifespan in [0, 1].
func (l *Lifespan) Fraction() float64 {
	if l.Max <= 0 {
		return 0
	}
	return float64(l.Remaining) / float64(l.Max)
}
