package heightfield

import (
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tinymesh/pkg/math"
)

// flat returns a size n heightfield at constant height h.
func flat(t *testing.T, n int, h float64) *HeightField {
	t.Helper()
	heights := make([]float64, (n+1)*(n+1))
	for i := range heights {
		heights[i] = h
	}
	hf, err := New(n, heights)
	require.NoError(t, err)
	return hf
}

// slope returns a size n heightfield with height = a*x + b*y.
func slope(t *testing.T, n int, a, b float64) *HeightField {
	t.Helper()
	heights := make([]float64, (n+1)*(n+1))
	for x := 0; x <= n; x++ {
		for y := 0; y <= n; y++ {
			heights[x*(n+1)+y] = a*float64(x) + b*float64(y)
		}
	}
	hf, err := New(n, heights)
	require.NoError(t, err)
	return hf
}

func gradientImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.SetGray(x, y, color.Gray{Y: uint8(255 * x / (w - 1))})
		}
	}
	return img
}

func TestNewRejectsBadSizes(t *testing.T) {
	_, err := New(0, nil)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = New(2, make([]float64, 4))
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewSeeded(-3, 1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestNewRandomRangeAndDeterminism(t *testing.T) {
	a, err := NewRandom(16, rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, err)
	b, err := NewRandom(16, rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, err)

	for x := 0; x <= 16; x++ {
		for y := 0; y <= 16; y++ {
			h := a.Height(x, y)
			assert.GreaterOrEqual(t, h, 0.0)
			assert.Less(t, h, 1.0)
			assert.Equal(t, h, b.Height(x, y), "same seed must give the same grid")
		}
	}
}

func TestHeightOutOfRange(t *testing.T) {
	n := 8
	hf, err := NewSeeded(n, 42)
	require.NoError(t, err)

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {n + 1, 0}, {0, n + 1}} {
		assert.Equal(t, NoData, hf.Height(c[0], c[1]), "Height(%d, %d)", c[0], c[1])
		_, ok := hf.Lookup(c[0], c[1])
		assert.False(t, ok, "Lookup(%d, %d)", c[0], c[1])
	}

	// The far border is still inside the grid.
	_, ok := hf.Lookup(n, n)
	assert.True(t, ok)
}

func TestNewFromImage(t *testing.T) {
	const noise = 20.0
	hf, err := NewFromImage(32, gradientImage(64, 64), noise)
	require.NoError(t, err)

	for x := 0; x <= 32; x++ {
		for y := 0; y <= 32; y++ {
			h := hf.Height(x, y)
			assert.GreaterOrEqual(t, h, 0.0)
			assert.LessOrEqual(t, h, noise)
		}
	}

	// The gradient runs along x.
	assert.Less(t, hf.Height(0, 5), hf.Height(32, 5))
	assert.InDelta(t, hf.Height(16, 0), hf.Height(16, 32), 1e-9)
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, gradientImage(8, 8)))
	require.NoError(t, f.Close())

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestNewPerlin(t *testing.T) {
	p := DefaultPerlinParams()
	hf, err := NewPerlin(32, p)
	require.NoError(t, err)

	lo, hi := hf.Range()
	assert.GreaterOrEqual(t, lo, 0.0)
	assert.LessOrEqual(t, hi, p.Amplitude)
	assert.Less(t, lo, hi, "noise should not be flat")

	again, err := NewPerlin(32, p)
	require.NoError(t, err)
	assert.Equal(t, hf.Height(10, 20), again.Height(10, 20))
}

func TestNormalFlat(t *testing.T) {
	hf := flat(t, 4, 3)
	for _, c := range [][2]int{{0, 0}, {2, 2}, {4, 4}, {4, 0}} {
		assert.Equal(t, math.UnitZ, hf.Normal(c[0], c[1]))
	}
}

func TestNormalSlope(t *testing.T) {
	// z = x  =>  normal ~ (-1, 0, 1) / sqrt(2), on the border too.
	hf := slope(t, 4, 1, 0)
	want := math.V3(-1, 0, 1).Normalize()
	for _, c := range [][2]int{{0, 0}, {2, 1}, {4, 4}} {
		n := hf.Normal(c[0], c[1])
		assert.True(t, n.ApproxEqual(want, 1e-12), "Normal(%d, %d) = %v, want %v", c[0], c[1], n, want)
	}
}

func TestSample(t *testing.T) {
	hf := slope(t, 4, 1, 2)

	h, ok := hf.Sample(1.5, 2.25)
	require.True(t, ok)
	assert.InDelta(t, 1.5+4.5, h, 1e-12)

	h, ok = hf.Sample(4, 4)
	require.True(t, ok)
	assert.InDelta(t, 12, h, 1e-12)

	_, ok = hf.Sample(-0.1, 1)
	assert.False(t, ok)
	_, ok = hf.Sample(1, 4.01)
	assert.False(t, ok)
}

func TestSet(t *testing.T) {
	hf := flat(t, 2, 0)
	assert.True(t, hf.Set(1, 2, 5))
	assert.Equal(t, 5.0, hf.Height(1, 2))
	assert.False(t, hf.Set(3, 0, 5))
}

func TestCastRayHitsPlane(t *testing.T) {
	hf := flat(t, 8, 1)
	r := math.NewRay(math.V3(4, 4, 5), math.V3(0, 0, -1))

	d, hit := hf.CastRay(r, DefaultMarchParams())
	require.True(t, hit)
	assert.InDelta(t, 4, d, 1e-9)
}

func TestCastRayOblique(t *testing.T) {
	hf := flat(t, 16, 0)
	r := math.NewRayThrough(math.V3(1, 1, 3), math.V3(4, 5, 0))
	want := math.V3(1, 1, 3).Distance(math.V3(4, 5, 0))

	d, hit := hf.CastRay(r, DefaultMarchParams())
	require.True(t, hit)
	assert.InDelta(t, want, d, 1e-9)
}

func TestCastRayMisses(t *testing.T) {
	hf := flat(t, 8, 1)

	// Pointing up.
	_, hit := hf.CastRay(math.NewRay(math.V3(4, 4, 5), math.V3(0, 0, 1)), DefaultMarchParams())
	assert.False(t, hit)

	// Too far away for the marching distance.
	p := DefaultMarchParams()
	p.MaxT = 2
	_, hit = hf.CastRay(math.NewRay(math.V3(4, 4, 5), math.V3(0, 0, -1)), p)
	assert.False(t, hit)

	// Outside the grid.
	_, hit = hf.CastRay(math.NewRay(math.V3(-20, -20, 5), math.V3(0, 0, -1)), DefaultMarchParams())
	assert.False(t, hit)

	// Invalid step.
	_, hit = hf.CastRay(math.NewRay(math.V3(4, 4, 5), math.V3(0, 0, -1)), MarchParams{MaxT: 10})
	assert.False(t, hit)
}
