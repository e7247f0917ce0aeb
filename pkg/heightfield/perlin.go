package heightfield

import (
	"fmt"

	"github.com/aquilax/go-perlin"
)

// PerlinParams configures NewPerlin.
type PerlinParams struct {
	Alpha     float64 `yaml:"alpha"`     // Weight of each octave relative to the previous one
	Beta      float64 `yaml:"beta"`      // Frequency multiplier between octaves
	Octaves   int32   `yaml:"octaves"`   // Number of octaves
	Seed      int64   `yaml:"seed"`      // Noise seed
	Frequency float64 `yaml:"frequency"` // Noise cycles per grid sample
	Amplitude float64 `yaml:"amplitude"` // Heights span [0, Amplitude]
}

// DefaultPerlinParams returns gentle rolling hills.
func DefaultPerlinParams() PerlinParams {
	return PerlinParams{
		Alpha:     2,
		Beta:      2,
		Octaves:   3,
		Seed:      1,
		Frequency: 0.05,
		Amplitude: 20,
	}
}

// NewPerlin creates a heightfield of size n from 2D Perlin noise. Noise
// values are mapped from [-1, 1] to [0, Amplitude] and clamped.
func NewPerlin(n int, p PerlinParams) (*HeightField, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	noise := perlin.NewPerlin(p.Alpha, p.Beta, p.Octaves, p.Seed)
	hf := newEmpty(n)
	for x := 0; x <= n; x++ {
		for y := 0; y <= n; y++ {
			v := noise.Noise2D(float64(x)*p.Frequency, float64(y)*p.Frequency)
			v = min(max((v+1)/2, 0), 1)
			hf.heights[x*(n+1)+y] = v * p.Amplitude
		}
	}
	return hf, nil
}
