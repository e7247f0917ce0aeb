// Package heightfield provides square grids of terrain heights, normal
// estimation, bilinear sampling and ray marching against the surface.
package heightfield

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand/v2"

	"github.com/Faultbox/tinymesh/pkg/math"
)

// NoData is returned by Height for coordinates outside the grid.
const NoData = -1.0

// ErrInvalidSize is returned for non-positive grid sizes or sample counts
// that do not match the size.
var ErrInvalidSize = errors.New("invalid heightfield size")

// HeightField is a square grid of (n+1) x (n+1) height samples addressed by
// integer coordinates 0..n on both axes. Samples are stored row by row in a
// single buffer: sample (x, y) lives at x*(n+1)+y.
type HeightField struct {
	n       int
	heights []float64
}

// New creates a heightfield of size n from (n+1)*(n+1) samples laid out as
// described on HeightField. The slice is copied.
func New(n int, heights []float64) (*HeightField, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	if len(heights) != (n+1)*(n+1) {
		return nil, fmt.Errorf("%w: %d samples for size %d, want %d", ErrInvalidSize, len(heights), n, (n+1)*(n+1))
	}
	hf := newEmpty(n)
	copy(hf.heights, heights)
	return hf, nil
}

// NewRandom creates a heightfield of size n whose heights are drawn
// uniformly from [0, 1) using rng.
func NewRandom(n int, rng *rand.Rand) (*HeightField, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	hf := newEmpty(n)
	for i := range hf.heights {
		hf.heights[i] = rng.Float64()
	}
	return hf, nil
}

// NewSeeded is NewRandom with a PCG generator seeded from seed.
func NewSeeded(n int, seed uint64) (*HeightField, error) {
	return NewRandom(n, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func newEmpty(n int) *HeightField {
	return &HeightField{
		n:       n,
		heights: make([]float64, (n+1)*(n+1)),
	}
}

// Size returns n; valid coordinates are 0..n on both axes.
func (hf *HeightField) Size() int {
	return hf.n
}

func (hf *HeightField) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x <= hf.n && y <= hf.n
}

func (hf *HeightField) at(x, y int) float64 {
	return hf.heights[x*(hf.n+1)+y]
}

// Lookup returns the height at (x, y) and whether the coordinate is inside the grid.
func (hf *HeightField) Lookup(x, y int) (float64, bool) {
	if !hf.inBounds(x, y) {
		return 0, false
	}
	return hf.at(x, y), true
}

// Height returns the height at (x, y), or NoData outside the grid.
func (hf *HeightField) Height(x, y int) float64 {
	h, ok := hf.Lookup(x, y)
	if !ok {
		return NoData
	}
	return h
}

// Set changes the height at (x, y). It reports false outside the grid.
func (hf *HeightField) Set(x, y int, h float64) bool {
	if !hf.inBounds(x, y) {
		return false
	}
	hf.heights[x*(hf.n+1)+y] = h
	return true
}

// Normal estimates the unit surface normal at (x, y) from central
// differences of the neighbouring heights. Neighbours are clamped to the
// grid, so border samples use one-sided differences. Coordinates outside
// the grid are clamped as well.
func (hf *HeightField) Normal(x, y int) math.Vec3 {
	x = clamp(x, 0, hf.n)
	y = clamp(y, 0, hf.n)

	xp, xn := clamp(x-1, 0, hf.n), clamp(x+1, 0, hf.n)
	yp, yn := clamp(y-1, 0, hf.n), clamp(y+1, 0, hf.n)

	var dx, dy float64
	if xn != xp {
		dx = (hf.at(xn, y) - hf.at(xp, y)) / float64(xn-xp)
	}
	if yn != yp {
		dy = (hf.at(x, yn) - hf.at(x, yp)) / float64(yn-yp)
	}

	// (1, 0, dx) x (0, 1, dy)
	return math.V3(-dx, -dy, 1).Normalize()
}

// Sample returns the bilinearly interpolated height at a fractional
// coordinate and whether the coordinate is inside the grid.
func (hf *HeightField) Sample(x, y float64) (float64, bool) {
	if gomath.IsNaN(x) || gomath.IsNaN(y) || x < 0 || y < 0 || x > float64(hf.n) || y > float64(hf.n) {
		return 0, false
	}

	cellX := min(int(x), hf.n-1)
	cellY := min(int(y), hf.n-1)
	fracX := x - float64(cellX)
	fracY := y - float64(cellY)

	h00 := hf.at(cellX, cellY)
	h10 := hf.at(cellX+1, cellY)
	h01 := hf.at(cellX, cellY+1)
	h11 := hf.at(cellX+1, cellY+1)

	low := h00*(1-fracX) + h10*fracX
	high := h01*(1-fracX) + h11*fracX
	return low*(1-fracY) + high*fracY, true
}

// Range returns the minimum and maximum height.
func (hf *HeightField) Range() (lo, hi float64) {
	lo, hi = hf.heights[0], hf.heights[0]
	for _, h := range hf.heights[1:] {
		lo = gomath.Min(lo, h)
		hi = gomath.Max(hi, h)
	}
	return lo, hi
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
