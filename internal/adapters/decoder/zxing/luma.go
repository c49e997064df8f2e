package zxing

import (
	"image"

	"golang.org/x/image/draw"
)

// Luma converts img to 8-bit luminance with BT.601 weights and stretches the
// result to the full 0-255 range.
func Luma(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	lo, hi := uint8(255), uint8(0)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := (y - bounds.Min.Y) * gray.Stride
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// 16-bit channels, weights scaled by 1000.
			v := uint8((299*r + 587*g + 114*b) / 1000 >> 8)
			gray.Pix[row+x-bounds.Min.X] = v
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	stretch(gray, lo, hi)
	return gray
}

func stretch(gray *image.Gray, lo, hi uint8) {
	if hi <= lo || (lo == 0 && hi == 255) {
		return
	}

	span := uint32(hi - lo)
	for i, v := range gray.Pix {
		gray.Pix[i] = uint8(uint32(v-lo) * 255 / span)
	}
}

// Downscale shrinks img to fit within maxWidth x maxHeight, keeping its
// aspect ratio. Images that already fit are returned as they are.
func Downscale(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	if !exceeds(bounds, maxWidth, maxHeight) {
		return img
	}

	w, h := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

func exceeds(bounds image.Rectangle, maxWidth, maxHeight int) bool {
	return bounds.Dx() > maxWidth || bounds.Dy() > maxHeight
}

func fitWithin(w, h, maxWidth, maxHeight int) (int, int) {
	scale := min(float64(maxWidth)/float64(w), float64(maxHeight)/float64(h))
	sw := max(1, int(float64(w)*scale))
	sh := max(1, int(float64(h)*scale))
	return sw, sh
}
