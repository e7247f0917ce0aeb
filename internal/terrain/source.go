package terrain

import (
	"fmt"

	"github.com/Faultbox/tinymesh/pkg/heightfield"
)

// Source selects how a heightfield is produced. An image takes precedence
// over Perlin noise, which takes precedence over uniform random heights.
type Source struct {
	Size   int
	Image  string  // Grayscale height image path
	Noise  float64 // Height of a white pixel
	Seed   uint64  // Seed for random heights
	Perlin *heightfield.PerlinParams
}

// Kind names the generator Source will use.
func (s Source) Kind() string {
	switch {
	case s.Image != "":
		return "image"
	case s.Perlin != nil:
		return "perlin"
	default:
		return "random"
	}
}

// HeightField builds the heightfield described by s.
func (s Source) HeightField() (*heightfield.HeightField, error) {
	switch s.Kind() {
	case "image":
		img, err := heightfield.LoadImage(s.Image)
		if err != nil {
			return nil, fmt.Errorf("loading height image: %w", err)
		}
		return heightfield.NewFromImage(s.Size, img, s.Noise)
	case "perlin":
		return heightfield.NewPerlin(s.Size, *s.Perlin)
	default:
		return heightfield.NewSeeded(s.Size, s.Seed)
	}
}
