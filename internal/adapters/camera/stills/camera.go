// Package stills is a camera backed by image files on disk. Each file is one
// frame; the stream ends with io.EOF after the last file, or loops.
package stills

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

type Options struct {
	// Interval is the pause before each frame after the first, standing in
	// for the device frame rate.
	Interval time.Duration
	Loop     bool
	Now      func() time.Time
}

// Camera hands out at most one open stream at a time.
type Camera struct {
	paths []string
	opts  Options

	mu   sync.Mutex
	held bool
}

var _ ports.Camera = (*Camera)(nil)

// New expands directories in paths to the image files they contain, sorted by name.
func New(paths []string, opts Options) (*Camera, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat frame source: %w", err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read frame directory: %w", err)
		}
		var dir []string
		for _, entry := range entries {
			if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
			dir = append(dir, filepath.Join(path, entry.Name()))
		}
		sort.Strings(dir)
		files = append(files, dir...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no frames found in %s", strings.Join(paths, ", "))
	}

	return &Camera{paths: files, opts: opts}, nil
}

func (c *Camera) Open(ctx context.Context) (ports.FrameStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.held {
		return nil, domain.ErrCameraBusy
	}
	c.held = true

	return &stream{camera: c, done: make(chan struct{})}, nil
}

func (c *Camera) release() {
	c.mu.Lock()
	c.held = false
	c.mu.Unlock()
}

type stream struct {
	camera *Camera
	done   chan struct{}

	mu     sync.Mutex
	next   int
	seq    uint64
	closed bool
}

func (s *stream) Next(ctx context.Context) (domain.Frame, error) {
	if err := s.pace(ctx); err != nil {
		return domain.Frame{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.Frame{}, io.ErrClosedPipe
	}
	paths := s.camera.paths
	if s.next >= len(paths) {
		if !s.camera.opts.Loop {
			return domain.Frame{}, io.EOF
		}
		s.next = 0
	}

	path := paths[s.next]
	s.next++
	img, err := decodeFile(path)
	if err != nil {
		return domain.Frame{}, err
	}

	s.seq++
	return domain.Frame{Seq: s.seq, Image: img, CapturedAt: s.camera.opts.Now()}, nil
}

// pace waits one frame interval, except before the first frame. Close
// interrupts the wait.
func (s *stream) pace(ctx context.Context) error {
	s.mu.Lock()
	first := s.seq == 0
	s.mu.Unlock()

	if first || s.camera.opts.Interval <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.camera.opts.Interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return io.ErrClosedPipe
	case <-timer.C:
		return nil
	}
}

func (s *stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	s.camera.release()
	return nil
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
