package facemark

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// maxDetectSize caps the longest image edge before detection.
// The landmark coordinates are normalized to [0, 1], so downscaling the
// source image does not change the emitted values, it only bounds the
// peak memory used per image.
const maxDetectSize = 1280

// loadImage decodes the image file and converts it to *image.NRGBA
// with min-point at (0, 0). The EXIF orientation tag is applied during
// decoding, since portrait photos are commonly stored rotated.
func loadImage(path string) (*image.NRGBA, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("unable to decode the image file: %w", err)
	}

	b := src.Bounds()
	if b.Dx() > maxDetectSize || b.Dy() > maxDetectSize {
		src = imaging.Fit(src, maxDetectSize, maxDetectSize, imaging.Lanczos)
	}
	return imaging.Clone(src), nil
}

// rgbToGrayscale converts an image to grayscale mode and
// returns the pixel values as an one dimensional array.
func rgbToGrayscale(src *image.NRGBA) []uint8 {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	gray := make([]uint8, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			gray[y*width+x] = uint8(
				(0.299*float64(r) +
					0.587*float64(g) +
					0.114*float64(b)) / 256,
			)
		}
	}

	return gray
}
