package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type ImageLoader struct{}

// Load decodes any format registered with image.Decode.
func (il *ImageLoader) Load(path string) (interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	b := img.Bounds()
	return &Image{
		Format: format,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
		Image:  img,
	}, nil
}

type Image struct {
	Format string
	Width  uint32
	Height uint32
	Image  image.Image
}
