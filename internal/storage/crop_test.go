package storage

import (
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildTestGIF(w, h int, frames int) *gif.GIF {
	palette := []color.Color{color.White, color.Black}
	g := &gif.GIF{
		Config: image.Config{Width: w, Height: h, ColorModel: color.Palette(palette)},
	}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, w, h), palette)
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 10)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}
	return g
}

func TestCropAnimatedGIFPreservesFrameCountAndDelay(t *testing.T) {
	src := buildTestGIF(200, 100, 3)
	cropped := cropAnimatedGIF(src)

	assert.Len(t, cropped.Image, 3)
	assert.Equal(t, []int{10, 10, 10}, cropped.Delay)
	assert.Equal(t, 0, cropped.LoopCount)

	for _, frame := range cropped.Image {
		assert.Equal(t, 100, frame.Bounds().Dx())
		assert.Equal(t, 100, frame.Bounds().Dy())
	}
}

func TestFirstFrameRGBA(t *testing.T) {
	src := buildTestGIF(50, 50, 2)
	rgba := firstFrameRGBA(src)
	assert.Equal(t, 50, rgba.Bounds().Dx())
	assert.Equal(t, 50, rgba.Bounds().Dy())
}
