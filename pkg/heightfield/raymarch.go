package heightfield

import "github.com/Faultbox/tinymesh/pkg/math"

// MarchParams controls CastRay.
type MarchParams struct {
	Step float64 `yaml:"step"`  // Distance between two samples along the ray
	MinT float64 `yaml:"min_t"` // First sampled distance
	MaxT float64 `yaml:"max_t"` // Marching stops before this distance
}

// DefaultMarchParams returns the step sizes used for terrain coloring.
func DefaultMarchParams() MarchParams {
	return MarchParams{
		Step: 0.05,
		MinT: 0.001,
		MaxT: 100,
	}
}

// CastRay marches along r in fixed steps and returns the distance of the
// first point below the surface. The distance is refined by linear
// interpolation between the last sample above the surface and the first
// one below it. The surface is only known over the grid; samples whose
// horizontal projection falls outside it never hit.
func (hf *HeightField) CastRay(r math.Ray, p MarchParams) (float64, bool) {
	if p.Step <= 0 {
		return 0, false
	}

	var lastH, lastZ float64
	haveLast := false
	for i := 0; ; i++ {
		t := p.MinT + float64(i)*p.Step
		if t >= p.MaxT {
			return 0, false
		}

		pos := r.At(t)
		h, ok := hf.Sample(pos.X, pos.Y)
		if !ok {
			haveLast = false
			continue
		}

		if pos.Z < h {
			if !haveLast {
				return t, true
			}
			// Zero crossing of (z - h) between the previous and current sample.
			return t - p.Step + p.Step*(lastZ-lastH)/(lastZ-lastH-pos.Z+h), true
		}

		lastH, lastZ = h, pos.Z
		haveLast = true
	}
}
