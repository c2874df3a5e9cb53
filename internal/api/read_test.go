package api

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeSourcePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeSourceGIF(t *testing.T, w, h, frames int) []byte {
	t.Helper()
	palette := []color.Color{color.White, color.Black, color.RGBA{R: 255, A: 255}}
	g := &gif.GIF{}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, w, h), palette)
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 7)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, g))
	return buf.Bytes()
}

func TestResizePNGProducesExactTargetSize(t *testing.T) {
	source := encodeSourcePNG(t, 400, 300)

	out, err := resizePNG(source, 128)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestResizePNGRejectsGarbage(t *testing.T) {
	_, err := resizePNG([]byte("not an image"), 128)
	assert.Error(t, err)
}

func TestResizeGIFPreservesFrameCountAndDelay(t *testing.T) {
	source := encodeSourceGIF(t, 64, 64, 3)

	out, err := resizeGIF(source, 256)
	require.NoError(t, err)

	resized, err := gif.DecodeAll(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Len(t, resized.Image, 3)
	assert.Equal(t, []int{7, 7, 7}, resized.Delay)
	assert.Equal(t, 0, resized.LoopCount)
	for _, frame := range resized.Image {
		assert.Equal(t, 256, frame.Bounds().Dx())
		assert.Equal(t, 256, frame.Bounds().Dy())
	}
}

func TestResizeGIFRejectsGarbage(t *testing.T) {
	_, err := resizeGIF([]byte("not a gif"), 256)
	assert.Error(t, err)
}

func TestBoundedPaletteTruncatesOversizedPalette(t *testing.T) {
	big := make(color.Palette, gifMaxColors+10)
	for i := range big {
		big[i] = color.Gray{Y: uint8(i)}
	}
	assert.Len(t, boundedPalette(big), gifMaxColors)

	small := color.Palette{color.White, color.Black}
	assert.Equal(t, small, boundedPalette(small))
}
