package label

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/invscan/internal/adapters/decoder/zxing"
	"github.com/bnema/invscan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGDecodesBackToItemPayload(t *testing.T) {
	data, err := PNG(123, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())

	decoded, ok := zxing.New().Decode(domain.Frame{Image: img})
	require.True(t, ok)
	assert.Equal(t, "PROD-123", decoded.Text)

	payload := domain.ParsePayload(decoded.Text)
	assert.True(t, payload.Numeric())
	assert.Equal(t, domain.ItemID(123), payload.ItemID)
}

func TestPNGRejectsNonPositiveID(t *testing.T) {
	_, err := PNG(0, 128)
	require.Error(t, err)
}

func TestWriteDefaultsFileNameInsideDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "labels")

	path, err := Write(context.Background(), 42, dir, "", 128)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "label-42.png"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteHonoursExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kit.png")

	got, err := Write(context.Background(), 7, "ignored", path, 128)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.FileExists(t, path)
}

func TestWriteStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Write(ctx, 7, t.TempDir(), "", 128)
	require.ErrorIs(t, err, context.Canceled)
}
