// Package noise provides a 2D gradient (Perlin) noise field.
package noise

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Size is the number of lattice hash slots and gradient directions.
const Size = 256

// Sampler maps continuous 2D coordinates to a scalar.
type Sampler interface {
	Noise(x, y float64) float64
}

// Field generates coherent noise values from a shuffled permutation table
// and a table of random unit gradients. A Field is immutable after
// construction and safe for concurrent use.
type Field struct {
	perm      [2 * Size]int
	gradients [Size]r2.Vec
}

// New creates a noise field using rng for the permutation shuffle and
// gradient directions. A nil rng uses a time-seeded source.
func New(rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	f := &Field{}

	// Initialize permutation table
	var perm [Size]int
	for i := range perm {
		perm[i] = i
	}

	// Shuffle
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	// Duplicate
	for i := 0; i < Size; i++ {
		f.perm[i] = perm[i]
		f.perm[i+Size] = perm[i]
	}

	for i := range f.gradients {
		angle := rng.Float64() * 2 * math.Pi
		f.gradients[i] = r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
	}

	return f
}

// NewSeeded creates a noise field from a deterministic seed.
func NewSeeded(seed int64) *Field {
	return New(rand.New(rand.NewSource(seed)))
}

// Noise returns the noise value at (x, y). The result is exactly 0 at
// integer lattice points and stays within [-1, 1], but is not renormalized.
func (f *Field) Noise(x, y float64) float64 {
	// Find unit cell
	fx := math.Floor(x)
	fy := math.Floor(y)
	x0 := int(fx)
	y0 := int(fy)

	// Find relative position in cell
	dx := x - fx
	dy := y - fy

	// Compute fade curves
	u := fade(dx)
	v := fade(dy)

	// Blend results from 4 corners
	g00 := f.dot(x0, y0, dx, dy)
	g10 := f.dot(x0+1, y0, dx-1, dy)
	g01 := f.dot(x0, y0+1, dx, dy-1)
	g11 := f.dot(x0+1, y0+1, dx-1, dy-1)

	nx0 := lerp(u, g00, g10)
	nx1 := lerp(u, g01, g11)
	return lerp(v, nx0, nx1)
}

// dot returns the dot product of the gradient at lattice point (ix, iy)
// with the offset (ox, oy) from that point to the sample.
func (f *Field) dot(ix, iy int, ox, oy float64) float64 {
	g := f.gradients[f.hash(ix, iy)]
	return r2.Dot(g, r2.Vec{X: ox, Y: oy})
}

// hash selects a gradient index for a lattice point. The masks act as
// modulo for negative coordinates too.
func (f *Field) hash(ix, iy int) int {
	h := f.perm[iy&(Size-1)] + ix
	return f.perm[h&(2*Size-1)] & (Size - 1)
}

// Permutation returns a copy of the base permutation table.
func (f *Field) Permutation() [Size]int {
	var p [Size]int
	copy(p[:], f.perm[:Size])
	return p
}

// Gradients returns a copy of the gradient table.
func (f *Field) Gradients() [Size]r2.Vec {
	return f.gradients
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}
