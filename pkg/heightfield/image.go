package heightfield

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// NewFromImage creates a heightfield of size n from the gray intensity of
// img. The image is resampled to (n+1) x (n+1) pixels; a gray value g in
// [0, 255] becomes the height noise*g/255. Image columns map to x and rows to y.
func NewFromImage(n int, img image.Image, noise float64) (*HeightField, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	gray := image.NewGray(image.Rect(0, 0, n+1, n+1))
	draw.BiLinear.Scale(gray, gray.Bounds(), img, img.Bounds(), draw.Src, nil)

	hf := newEmpty(n)
	for x := 0; x <= n; x++ {
		for y := 0; y <= n; y++ {
			g := float64(gray.GrayAt(x, y).Y)
			hf.heights[x*(n+1)+y] = noise * g / 255
		}
	}
	return hf, nil
}

// LoadImage decodes a png, jpeg, gif or bmp image from disk.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening heightmap image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding heightmap image %s: %w", path, err)
	}
	return img, nil
}
