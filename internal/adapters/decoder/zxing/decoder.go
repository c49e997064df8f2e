// Package zxing decodes QR codes from camera frames with a tiered fallback:
// the frame as captured, then a contrast-stretched luma copy, then a
// downscaled copy for frames too large to decode reliably.
package zxing

import (
	"image"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

const (
	DefaultMaxWidth  = 1280
	DefaultMaxHeight = 720
)

const (
	TierDirect = iota + 1
	TierLuma
	TierDownscaled
)

// readFunc decodes one image in one polarity.
type readFunc func(img image.Image, inverted bool) (string, bool)

type Option func(*Decoder)

// WithMaxSize sets the frame size above which the downscale tier runs.
func WithMaxSize(width, height int) Option {
	return func(d *Decoder) {
		if width > 0 && height > 0 {
			d.maxWidth, d.maxHeight = width, height
		}
	}
}

// Decoder holds no state between calls and is safe for concurrent use.
type Decoder struct {
	maxWidth  int
	maxHeight int
	read      readFunc
}

var _ ports.Decoder = (*Decoder)(nil)

func New(opts ...Option) *Decoder {
	d := &Decoder{maxWidth: DefaultMaxWidth, maxHeight: DefaultMaxHeight, read: readQR}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) Decode(frame domain.Frame) (domain.Decoded, bool) {
	img := frame.Image
	if img == nil || img.Bounds().Empty() {
		return domain.Decoded{}, false
	}

	if decoded, ok := d.bothPolarities(img, TierDirect); ok {
		return decoded, true
	}

	luma := Luma(img)
	if decoded, ok := d.bothPolarities(luma, TierLuma); ok {
		return decoded, true
	}

	if !exceeds(img.Bounds(), d.maxWidth, d.maxHeight) {
		return domain.Decoded{}, false
	}
	return d.bothPolarities(Downscale(luma, d.maxWidth, d.maxHeight), TierDownscaled)
}

func (d *Decoder) bothPolarities(img image.Image, tier int) (domain.Decoded, bool) {
	for _, inverted := range []bool{false, true} {
		if text, ok := d.read(img, inverted); ok {
			return domain.Decoded{Text: text, Tier: tier, Inverted: inverted}, true
		}
	}
	return domain.Decoded{}, false
}

var decodeHints = map[gozxing.DecodeHintType]interface{}{
	gozxing.DecodeHintType_TRY_HARDER: true,
}

func readQR(img image.Image, inverted bool) (string, bool) {
	source := gozxing.NewLuminanceSourceFromImage(img)
	if inverted {
		source = source.Invert()
	}

	bitmap, err := gozxing.NewBinaryBitmap(gozxing.NewHybridBinarizer(source))
	if err != nil {
		return "", false
	}

	result, err := qrcode.NewQRCodeReader().Decode(bitmap, decodeHints)
	if err != nil {
		return "", false
	}
	return result.GetText(), true
}
