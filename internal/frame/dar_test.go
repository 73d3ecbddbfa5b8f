package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 40, B: 40, A: 255})
		}
	}
	return img
}

func TestFixDARMatchingRatioUntouched(t *testing.T) {
	src := solidImage(1920, 1080)

	out := fixDAR(src, 16.0/9.0)
	assert.Same(t, src, out)
}

func TestFixDARRescalesWidthOnly(t *testing.T) {
	// Anamorphic DVD storage: 720x576 pixels meant for 16:9 playback.
	src := solidImage(720, 576)

	out := fixDAR(src, 16.0/9.0)
	bounds := out.Bounds()
	assert.Equal(t, 1024, bounds.Dx())
	assert.Equal(t, 576, bounds.Dy())
}

func TestFixDARHeightConstantAcrossRatios(t *testing.T) {
	for _, dar := range []float64{4.0 / 3.0, 16.0 / 9.0, 2.4} {
		out := fixDAR(solidImage(1000, 500), dar)
		assert.Equal(t, 500, out.Bounds().Dy(), "dar %v", dar)
	}
}

func TestFixDARZeroIgnored(t *testing.T) {
	src := solidImage(640, 480)
	assert.Same(t, src, fixDAR(src, 0))
}

func TestSessionLifecycle(t *testing.T) {
	x := NewExtractor("", "", nil)

	_, err := x.Open("/nonexistent/path.mkv")
	assert.ErrorIs(t, err, ErrIO)
}

func TestOpenRemoteSkipsStat(t *testing.T) {
	x := NewExtractor("", "", nil)

	s, err := x.Open("https://example.com/watch?v=abc123")
	assert.NoError(t, err)
	assert.NoError(t, s.Close())
}
