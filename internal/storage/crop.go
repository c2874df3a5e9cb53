package storage

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
)

// cropRect computes the centered square crop rectangle for a w x h source,
// per spec.md §4.1: side = min(w, h), origin = ((w-s)/2, (h-s)/2), integer
// division truncating toward zero.
func cropRect(w, h int) image.Rectangle {
	s := w
	if h < s {
		s = h
	}
	x0 := (w - s) / 2
	y0 := (h - s) / 2
	return image.Rect(x0, y0, x0+s, y0+s)
}

// gifMaxColors is the palette ceiling spec.md §4.1 names as the GIF
// encoder's quality/speed trade-off knob; gif.EncodeAll has no speed
// parameter to set, so this is enforced directly on every frame's palette
// instead, via boundedPalette.
const gifMaxColors = 256

// boundedPalette truncates p to at most gifMaxColors entries. Source GIFs
// are already paletted to 256 colors or fewer, so this is normally a no-op;
// it only bites a source with a non-conformant larger palette.
func boundedPalette(p color.Palette) color.Palette {
	if len(p) <= gifMaxColors {
		return p
	}
	return p[:gifMaxColors]
}

// cropAnimatedGIF crops every frame of src to the same centered square and
// returns a new animation with per-frame delay preserved, infinite repeat.
func cropAnimatedGIF(src *gif.GIF) *gif.GIF {
	rect := cropRect(src.Config.Width, src.Config.Height)
	side := rect.Dx()

	out := &gif.GIF{
		Image:     make([]*image.Paletted, len(src.Image)),
		Delay:     append([]int(nil), src.Delay...),
		Disposal:  append([]byte(nil), src.Disposal...),
		LoopCount: 0,
		Config: image.Config{
			ColorModel: src.Config.ColorModel,
			Width:      side,
			Height:     side,
		},
	}

	for i, frame := range src.Image {
		srcRect := frame.Bounds().Intersect(rect)
		dst := image.NewPaletted(image.Rect(0, 0, side, side), boundedPalette(frame.Palette))
		if !srcRect.Empty() {
			dstOrigin := srcRect.Min.Sub(rect.Min)
			draw.Draw(dst, image.Rectangle{Min: dstOrigin, Max: dstOrigin.Add(srcRect.Size())}, frame, srcRect.Min, draw.Src)
		}
		out.Image[i] = dst
	}

	return out
}

// firstFrameRGBA renders the first frame of an animation as a standalone
// RGBA image, for the still-preview PNG.
func firstFrameRGBA(src *gif.GIF) *image.RGBA {
	first := src.Image[0]
	bounds := first.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, first, bounds.Min, draw.Src)
	return dst
}
