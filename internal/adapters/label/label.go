package label

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/invscan/internal/domain"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	labelPrefix = "PROD-"
)

// Payload is the text printed into an item's label.
func Payload(id domain.ItemID) string {
	return fmt.Sprintf("%s%d", labelPrefix, id)
}

// PNG encodes the label of id at size x size pixels.
func PNG(id domain.ItemID, size int) ([]byte, error) {
	if id <= 0 {
		return nil, fmt.Errorf("item id must be positive")
	}
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(Payload(id), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode label %d: %w", id, err)
	}
	return png, nil
}

// Write stores the label of id at path, creating parent directories. An
// empty path writes label-<id>.png into dir.
func Write(ctx context.Context, id domain.ItemID, dir string, path string, size int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	png, err := PNG(id, size)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(path) == "" {
		path = filepath.Join(dir, fmt.Sprintf("label-%d.png", id))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create label directory: %w", err)
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write label: %w", err)
	}

	return path, nil
}
