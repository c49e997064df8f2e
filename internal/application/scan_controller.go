package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
)

const DefaultAckDuration = 600 * time.Millisecond

type ScanState int

const (
	StateIdle ScanState = iota
	StateAcquiring
	StateScanning
	StateCandidateFound
	StateResolving
	StateStopped
)

func (s ScanState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	case StateScanning:
		return "scanning"
	case StateCandidateFound:
		return "candidate_found"
	case StateResolving:
		return "resolving"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Transition struct {
	From ScanState
	To   ScanState
}

// DispatchResult tells the controller what to do once an action completes.
// Done releases the camera. Resume restarts decoding at once. With neither
// set the controller waits for RequestResume.
type DispatchResult struct {
	Resume bool
	Done   bool
}

type ScanRequest struct {
	Payload       string
	Mode          domain.Mode
	RequestResume func()
}

type PayloadDispatcher interface {
	Dispatch(ctx context.Context, req ScanRequest) DispatchResult
}

type ControllerOptions struct {
	AckDuration  time.Duration
	Logger       *slog.Logger
	OnTransition func(Transition)
}

// ScanController paces the capture/decode loop of one scan session and
// owns the camera handle for that session. A controller is single use:
// once stopped it cannot be started again.
type ScanController struct {
	camera       ports.Camera
	decoder      ports.Decoder
	dispatcher   PayloadDispatcher
	feedback     ports.Feedback
	mode         domain.Mode
	ackDuration  time.Duration
	logger       *slog.Logger
	onTransition func(Transition)

	mu      sync.Mutex
	state   ScanState
	stream  ports.FrameStream
	cancel  context.CancelFunc
	lastErr error
	done    chan struct{}
	resume  chan struct{}
}

func NewScanController(camera ports.Camera, decoder ports.Decoder, dispatcher PayloadDispatcher, feedback ports.Feedback, mode domain.Mode, opts ControllerOptions) *ScanController {
	if opts.AckDuration < 0 {
		opts.AckDuration = 0
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}

	return &ScanController{
		camera:       camera,
		decoder:      decoder,
		dispatcher:   dispatcher,
		feedback:     feedback,
		mode:         mode,
		ackDuration:  opts.AckDuration,
		logger:       opts.Logger,
		onTransition: opts.OnTransition,
		state:        StateIdle,
		done:         make(chan struct{}),
		resume:       make(chan struct{}, 1),
	}
}

func (c *ScanController) State() ScanState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *ScanController) Mode() domain.Mode {
	return c.mode
}

// Done is closed once the session reaches Stopped and the camera is released.
func (c *ScanController) Done() <-chan struct{} {
	return c.done
}

// Err returns the device error that ended the session, if any.
func (c *ScanController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastErr
}

// Start acquires the camera and begins the capture loop. A camera that
// cannot be opened stops the session and offers manual entry instead.
func (c *ScanController) Start(ctx context.Context) error {
	if !c.transition(StateIdle, StateAcquiring) {
		return domain.ErrSessionFinished
	}

	stream, err := c.camera.Open(ctx)
	if err != nil {
		deviceErr := domain.NewScanError(domain.KindDevice, "open camera", err)
		c.fail(deviceErr)
		c.feedback.OfferManualEntry(deviceErr)
		return deviceErr
	}

	loopCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.state == StateStopped {
		c.mu.Unlock()
		cancel()
		if err := stream.Close(); err != nil {
			c.logger.Warn("release camera", "error", err)
		}
		return domain.ErrSessionFinished
	}
	c.stream = stream
	c.cancel = cancel
	c.mu.Unlock()

	go c.run(loopCtx, stream)
	return nil
}

// Stop releases the camera and halts decode scheduling. It is safe to call
// from any state, any number of times.
func (c *ScanController) Stop() {
	c.mu.Lock()
	if c.state == StateStopped {
		c.mu.Unlock()
		return
	}
	from := c.state
	c.state = StateStopped
	stream, cancel := c.stream, c.cancel
	c.stream, c.cancel = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if stream != nil {
		if err := stream.Close(); err != nil {
			c.logger.Warn("release camera", "error", err)
		}
	}
	c.notify(Transition{From: from, To: StateStopped})
	close(c.done)
}

// RequestResume lets a session that is waiting on external UI look for the
// next code. Signals sent while the session is not waiting are kept until
// the next wait and dropped when a new payload is dispatched.
func (c *ScanController) RequestResume() {
	select {
	case c.resume <- struct{}{}:
	default:
	}
}

func (c *ScanController) run(ctx context.Context, stream ports.FrameStream) {
	defer c.Stop()

	for {
		frame, err := stream.Next(ctx)
		if err != nil {
			if ctx.Err() != nil || isCanceled(err) {
				return
			}
			if errors.Is(err, io.EOF) {
				c.logger.Debug("frame stream ended")
				return
			}
			deviceErr := domain.NewScanError(domain.KindDevice, "read frame", err)
			c.setErr(deviceErr)
			c.feedback.Notify(domain.Notice{Level: domain.NoticeError, Mode: c.mode, Message: "camera stopped delivering frames", Err: deviceErr})
			c.feedback.OfferManualEntry(deviceErr)
			return
		}

		if !c.transition(StateAcquiring, StateScanning) && c.State() != StateScanning {
			return
		}

		decoded, ok := c.decoder.Decode(frame)
		if !ok {
			continue
		}

		if !c.transition(StateScanning, StateCandidateFound) {
			return
		}
		c.feedback.Acknowledge(frame, decoded.Text)
		if !sleepContext(ctx, c.ackDuration) {
			return
		}
		if !c.transition(StateCandidateFound, StateResolving) {
			return
		}

		c.drainResume()
		result := c.dispatcher.Dispatch(ctx, ScanRequest{
			Payload:       decoded.Text,
			Mode:          c.mode,
			RequestResume: c.RequestResume,
		})
		if result.Done {
			return
		}
		if !result.Resume {
			select {
			case <-ctx.Done():
				return
			case <-c.resume:
			}
		}
		if !c.transition(StateResolving, StateScanning) {
			return
		}
	}
}

func (c *ScanController) transition(from, to ScanState) bool {
	c.mu.Lock()
	if c.state != from {
		c.mu.Unlock()
		return false
	}
	c.state = to
	c.mu.Unlock()

	c.notify(Transition{From: from, To: to})
	return true
}

func (c *ScanController) fail(err error) {
	c.setErr(err)
	c.Stop()
}

func (c *ScanController) setErr(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

func (c *ScanController) notify(t Transition) {
	c.logger.Debug("scan state", "mode", c.mode, "from", t.From, "to", t.To)
	if c.onTransition != nil {
		c.onTransition(t)
	}
}

func (c *ScanController) drainResume() {
	select {
	case <-c.resume:
	default:
	}
}

// ScanHost enforces that at most one scan session holds the camera.
type ScanHost struct {
	mu      sync.Mutex
	current *ScanController
}

func NewScanHost() *ScanHost {
	return &ScanHost{}
}

// Begin stops the active session, if any, before starting next.
func (h *ScanHost) Begin(ctx context.Context, next *ScanController) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil && h.current != next {
		h.current.Stop()
	}
	h.current = next
	return next.Start(ctx)
}

func (h *ScanHost) Current() *ScanController {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.current
}

func (h *ScanHost) Stop() {
	h.mu.Lock()
	current := h.current
	h.current = nil
	h.mu.Unlock()

	if current != nil {
		current.Stop()
	}
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
