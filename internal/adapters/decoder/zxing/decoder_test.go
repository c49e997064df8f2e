package zxing

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/bnema/invscan/internal/domain"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qrFrame(t *testing.T, content string, fg, bg color.Color) domain.Frame {
	t.Helper()

	code, err := qrcode.New(content, qrcode.Medium)
	require.NoError(t, err)
	code.ForegroundColor = fg
	code.BackgroundColor = bg
	return domain.Frame{Seq: 1, Image: code.Image(320)}
}

func TestDecodeNormalPolarityUsesDirectTier(t *testing.T) {
	t.Parallel()

	decoded, ok := New().Decode(qrFrame(t, "PROD-123", color.Black, color.White))

	require.True(t, ok)
	assert.Equal(t, "PROD-123", decoded.Text)
	assert.Equal(t, TierDirect, decoded.Tier)
	assert.False(t, decoded.Inverted)
}

func TestDecodeInvertedCode(t *testing.T) {
	t.Parallel()

	decoded, ok := New().Decode(qrFrame(t, "PROD-77", color.White, color.Black))

	require.True(t, ok)
	assert.Equal(t, "PROD-77", decoded.Text)
	assert.LessOrEqual(t, decoded.Tier, TierLuma)
	assert.True(t, decoded.Inverted)
}

func TestDecodeLowContrastColoredCode(t *testing.T) {
	t.Parallel()

	fg := color.RGBA{R: 90, G: 70, B: 60, A: 255}
	bg := color.RGBA{R: 150, G: 140, B: 120, A: 255}
	decoded, ok := New().Decode(qrFrame(t, "https://hub.example.com/inventory/product/42", fg, bg))

	require.True(t, ok)
	assert.Equal(t, "https://hub.example.com/inventory/product/42", decoded.Text)
	assert.LessOrEqual(t, decoded.Tier, TierLuma)
}

func TestDecodeBlankFrameMisses(t *testing.T) {
	t.Parallel()

	blank := image.NewGray(image.Rect(0, 0, 200, 200))
	_, ok := New().Decode(domain.Frame{Image: blank})
	assert.False(t, ok)

	_, ok = New().Decode(domain.Frame{})
	assert.False(t, ok)
}

type recordingReader struct {
	mu    sync.Mutex
	sizes []image.Point
	fits  image.Point
}

func (r *recordingReader) read(img image.Image, inverted bool) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := img.Bounds().Size()
	r.sizes = append(r.sizes, size)
	if size.X <= r.fits.X && size.Y <= r.fits.Y && !inverted {
		return "PROD-9", true
	}
	return "", false
}

func TestDecodeDownscalesLargeFrames(t *testing.T) {
	t.Parallel()

	reader := &recordingReader{fits: image.Pt(64, 36)}
	decoder := New(WithMaxSize(64, 36))
	decoder.read = reader.read

	decoded, ok := decoder.Decode(domain.Frame{Image: image.NewRGBA(image.Rect(0, 0, 256, 144))})

	require.True(t, ok)
	assert.Equal(t, TierDownscaled, decoded.Tier)
	assert.Equal(t, []image.Point{
		{X: 256, Y: 144}, {X: 256, Y: 144},
		{X: 256, Y: 144}, {X: 256, Y: 144},
		{X: 64, Y: 36},
	}, reader.sizes)
}

func TestDecodeSkipsDownscaleForSmallFrames(t *testing.T) {
	t.Parallel()

	reader := &recordingReader{}
	decoder := New()
	decoder.read = reader.read

	_, ok := decoder.Decode(domain.Frame{Image: image.NewRGBA(image.Rect(0, 0, 640, 480))})

	assert.False(t, ok)
	assert.Len(t, reader.sizes, 4)
}

func TestLumaStretchesContrast(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(10, 10, 12, 11))
	img.Set(10, 10, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	img.Set(11, 10, color.RGBA{R: 150, G: 150, B: 150, A: 255})

	gray := Luma(img)

	assert.Equal(t, image.Rect(0, 0, 2, 1), gray.Bounds())
	assert.Equal(t, []uint8{0, 255}, gray.Pix)
}

func TestLumaUsesBroadcastWeights(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(2, 0, color.RGBA{B: 255, A: 255})

	gray := Luma(img)

	// green > red > blue before the stretch maps blue to 0 and green to 255
	assert.Equal(t, uint8(0), gray.Pix[2])
	assert.Equal(t, uint8(255), gray.Pix[1])
	assert.Greater(t, gray.Pix[0], gray.Pix[2])
	assert.Less(t, gray.Pix[0], gray.Pix[1])
}

func TestDownscaleKeepsAspectRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  image.Rectangle
		want image.Point
	}{
		{name: "landscape 1440p", src: image.Rect(0, 0, 2560, 1440), want: image.Pt(1280, 720)},
		{name: "portrait", src: image.Rect(0, 0, 1000, 2000), want: image.Pt(360, 720)},
		{name: "already fits", src: image.Rect(0, 0, 640, 480), want: image.Pt(640, 480)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Downscale(image.NewGray(tt.src), DefaultMaxWidth, DefaultMaxHeight)
			assert.Equal(t, tt.want, got.Bounds().Size())
		})
	}
}
