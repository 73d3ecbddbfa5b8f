package frame

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// aspectTolerance bounds how far the decoded pixel grid's ratio may sit
// from the stored DAR before a rescale kicks in. Matching ratios must
// leave dimensions untouched exactly.
const aspectTolerance = 0.01

// fixDAR corrects anamorphic sources: when the stored display aspect
// ratio differs from the decoded frame's pixel ratio, the width is
// rescaled so the pixel grid matches playback proportions. Height is
// never touched.
func fixDAR(img image.Image, dar float64) image.Image {
	if dar <= 0 {
		return img
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if height == 0 {
		return img
	}

	pixelAspect := float64(width) / float64(height)
	if math.Abs(dar-pixelAspect) < aspectTolerance {
		return img
	}

	newWidth := int(math.Round(float64(height) * dar))
	if newWidth == width || newWidth <= 0 {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
