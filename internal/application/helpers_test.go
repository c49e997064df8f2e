package application

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"sync"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
	"github.com/stretchr/testify/mock"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeCamera hands out streams over a fixed list of frames and tracks how
// many handles are held.
type fakeCamera struct {
	mu      sync.Mutex
	frames  []domain.Frame
	openErr error
	endWith error
	opened  int
	closed  int
}

func newFakeCamera(payloads ...string) *fakeCamera {
	frames := make([]domain.Frame, 0, len(payloads))
	for i, payload := range payloads {
		frames = append(frames, domain.Frame{Seq: uint64(i + 1), Image: payloadImage{payload: payload}})
	}
	return &fakeCamera{frames: frames, endWith: io.EOF}
}

func (c *fakeCamera) Open(context.Context) (ports.FrameStream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.openErr != nil {
		return nil, c.openErr
	}
	c.opened++
	return &fakeStream{camera: c, frames: c.frames, endWith: c.endWith}, nil
}

func (c *fakeCamera) Held() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opened - c.closed
}

func (c *fakeCamera) Counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opened, c.closed
}

type fakeStream struct {
	camera  *fakeCamera
	mu      sync.Mutex
	frames  []domain.Frame
	next    int
	endWith error
	closed  bool
}

// Next returns the queued frames, then endWith. A nil endWith blocks like a
// live camera until ctx is done.
func (s *fakeStream) Next(ctx context.Context) (domain.Frame, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.Frame{}, errors.New("stream closed")
	}
	if s.next < len(s.frames) {
		frame := s.frames[s.next]
		s.next++
		s.mu.Unlock()
		return frame, nil
	}
	endWith := s.endWith
	s.mu.Unlock()

	if endWith != nil {
		return domain.Frame{}, endWith
	}
	<-ctx.Done()
	return domain.Frame{}, ctx.Err()
}

func (s *fakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	s.camera.mu.Lock()
	s.camera.closed++
	s.camera.mu.Unlock()
	return nil
}

// payloadImage is a 1x1 raster that carries the text a fake decoder reads back.
type payloadImage struct {
	payload string
}

func (payloadImage) ColorModel() color.Model {
	return color.GrayModel
}

func (payloadImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, 1, 1)
}

func (payloadImage) At(int, int) color.Color {
	return color.Gray{}
}

type payloadDecoder struct {
	mu    sync.Mutex
	calls int
}

func (d *payloadDecoder) Decode(frame domain.Frame) (domain.Decoded, bool) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()

	img, ok := frame.Image.(payloadImage)
	if !ok || img.payload == "" {
		return domain.Decoded{}, false
	}
	return domain.Decoded{Text: img.payload, Tier: 1}, true
}

func (d *payloadDecoder) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

type recordingFeedback struct {
	mu      sync.Mutex
	acks    []string
	notices []domain.Notice
	manual  []error
}

func (f *recordingFeedback) Acknowledge(_ domain.Frame, payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acks = append(f.acks, payload)
}

func (f *recordingFeedback) Notify(notice domain.Notice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, notice)
}

func (f *recordingFeedback) OfferManualEntry(cause error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manual = append(f.manual, cause)
}

func (f *recordingFeedback) Notices() []domain.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Notice, len(f.notices))
	copy(out, f.notices)
	return out
}

func (f *recordingFeedback) Errors() []domain.Notice {
	var out []domain.Notice
	for _, notice := range f.Notices() {
		if notice.Level == domain.NoticeError {
			out = append(out, notice)
		}
	}
	return out
}

func newItemCache(clock ports.Clock) *ItemCache {
	return NewCache(domain.ItemKey, CacheOptions[domain.ItemID]{Clock: clock, StaleAfter: 9 * time.Second})
}

func newEntryCache(clock ports.Clock) *EntryCache {
	return NewCache(domain.EntryKey, CacheOptions[domain.ItemID]{Clock: clock, StaleAfter: 9 * time.Second})
}

func anyCtx() interface{} {
	return mock.Anything
}

func ptr[T any](v T) *T {
	return &v
}
