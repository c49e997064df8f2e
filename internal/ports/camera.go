package ports

import (
	"context"

	"github.com/bnema/invscan/internal/domain"
)

// Camera hands out the capture device. Every successful Open must be
// matched by exactly one FrameStream.Close.
type Camera interface {
	Open(ctx context.Context) (FrameStream, error)
}

// FrameStream yields successive frames. Next blocks until a frame is
// available, the stream ends (io.EOF) or ctx is done.
type FrameStream interface {
	Next(ctx context.Context) (domain.Frame, error)
	Close() error
}

type Decoder interface {
	Decode(frame domain.Frame) (domain.Decoded, bool)
}
