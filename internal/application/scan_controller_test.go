package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
	"github.com/bnema/invscan/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type scriptedDispatcher struct {
	mu       sync.Mutex
	requests []ScanRequest
	results  []DispatchResult
}

func (d *scriptedDispatcher) Dispatch(_ context.Context, req ScanRequest) DispatchResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.requests = append(d.requests, req)
	if len(d.results) == 0 {
		return DispatchResult{Resume: true}
	}
	result := d.results[0]
	d.results = d.results[1:]
	return result
}

func (d *scriptedDispatcher) Requests() []ScanRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]ScanRequest, len(d.requests))
	copy(out, d.requests)
	return out
}

func waitStopped(t *testing.T, c *ScanController) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("session did not stop, state %s", c.State())
	}
}

func TestScanControllerPermissionDeniedStopsWithManualEntry(t *testing.T) {
	camera := newFakeCamera()
	camera.openErr = errors.New("permission denied")
	decoder := mocks.NewMockDecoder(t)
	feedback := mocks.NewMockFeedback(t)
	feedback.EXPECT().OfferManualEntry(mock.MatchedBy(func(err error) bool {
		return errors.Is(err, &domain.ScanError{Kind: domain.KindDevice})
	})).Once()

	controller := NewScanController(camera, decoder, &scriptedDispatcher{}, feedback, domain.ModeBorrowCart, ControllerOptions{})

	err := controller.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, &domain.ScanError{Kind: domain.KindDevice})
	assert.Equal(t, StateStopped, controller.State())
	assert.Equal(t, 0, camera.Held())
	waitStopped(t, controller)
}

func TestScanControllerWalksStatesForContinuousMode(t *testing.T) {
	camera := newFakeCamera("", "PROD-1", "", "PROD-2")
	decoder := &payloadDecoder{}
	dispatcher := &scriptedDispatcher{}
	feedback := &recordingFeedback{}

	var mu sync.Mutex
	var transitions []Transition
	controller := NewScanController(camera, decoder, dispatcher, feedback, domain.ModeBorrowCart, ControllerOptions{
		OnTransition: func(tr Transition) {
			mu.Lock()
			transitions = append(transitions, tr)
			mu.Unlock()
		},
	})

	require.NoError(t, controller.Start(context.Background()))
	waitStopped(t, controller)

	requests := dispatcher.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "PROD-1", requests[0].Payload)
	assert.Equal(t, "PROD-2", requests[1].Payload)
	assert.Equal(t, domain.ModeBorrowCart, requests[0].Mode)
	assert.Equal(t, 4, decoder.Calls())
	assert.Equal(t, []string{"PROD-1", "PROD-2"}, feedback.acks)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Transition{
		{From: StateIdle, To: StateAcquiring},
		{From: StateAcquiring, To: StateScanning},
		{From: StateScanning, To: StateCandidateFound},
		{From: StateCandidateFound, To: StateResolving},
		{From: StateResolving, To: StateScanning},
		{From: StateScanning, To: StateCandidateFound},
		{From: StateCandidateFound, To: StateResolving},
		{From: StateResolving, To: StateScanning},
		{From: StateScanning, To: StateStopped},
	}, transitions)
	opened, closed := camera.Counts()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)
}

func TestScanControllerSingleShotReleasesCamera(t *testing.T) {
	camera := newFakeCamera("PROD-123", "PROD-124")
	camera.endWith = nil
	decoder := &payloadDecoder{}
	dispatcher := &scriptedDispatcher{results: []DispatchResult{{Done: true}}}

	controller := NewScanController(camera, decoder, dispatcher, &recordingFeedback{}, domain.ModeReturn, ControllerOptions{})
	require.NoError(t, controller.Start(context.Background()))
	waitStopped(t, controller)

	assert.Len(t, dispatcher.Requests(), 1)
	assert.Equal(t, 1, decoder.Calls())
	assert.Equal(t, 0, camera.Held())
}

func TestScanControllerWaitsForExternalResume(t *testing.T) {
	camera := newFakeCamera("42", "43")
	camera.endWith = nil
	decoder := &payloadDecoder{}
	dispatcher := &scriptedDispatcher{results: []DispatchResult{{}, {}}}

	controller := NewScanController(camera, decoder, dispatcher, &recordingFeedback{}, domain.ModeCycleCount, ControllerOptions{})
	require.NoError(t, controller.Start(context.Background()))
	t.Cleanup(controller.Stop)

	require.Eventually(t, func() bool { return len(dispatcher.Requests()) == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StateResolving, controller.State())
	assert.Equal(t, 1, decoder.Calls())

	dispatcher.Requests()[0].RequestResume()

	require.Eventually(t, func() bool { return len(dispatcher.Requests()) == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, "43", dispatcher.Requests()[1].Payload)
}

type blockingDecoder struct {
	entered chan struct{}
	release chan struct{}
}

func (d *blockingDecoder) Decode(domain.Frame) (domain.Decoded, bool) {
	d.entered <- struct{}{}
	<-d.release
	return domain.Decoded{Text: "PROD-9"}, true
}

func TestScanControllerStopMidDecodeReleasesCamera(t *testing.T) {
	camera := newFakeCamera("PROD-9")
	decoder := &blockingDecoder{entered: make(chan struct{}, 1), release: make(chan struct{})}
	dispatcher := &scriptedDispatcher{}

	controller := NewScanController(camera, decoder, dispatcher, &recordingFeedback{}, domain.ModeBorrowCart, ControllerOptions{})
	require.NoError(t, controller.Start(context.Background()))

	<-decoder.entered
	controller.Stop()
	assert.Equal(t, StateStopped, controller.State())
	assert.Equal(t, 0, camera.Held())

	close(decoder.release)
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, dispatcher.Requests())

	controller.Stop()
	opened, closed := camera.Counts()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)
}

func TestScanControllerCannotRestart(t *testing.T) {
	camera := newFakeCamera()
	controller := NewScanController(camera, &payloadDecoder{}, &scriptedDispatcher{}, &recordingFeedback{}, domain.ModeReturn, ControllerOptions{})
	controller.Stop()

	err := controller.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionFinished)
	opened, _ := camera.Counts()
	assert.Zero(t, opened)
}

func TestScanHostKeepsOneCameraHandle(t *testing.T) {
	camera := newFakeCamera()
	camera.endWith = nil
	host := NewScanHost()

	newController := func() *ScanController {
		return NewScanController(camera, &payloadDecoder{}, &scriptedDispatcher{}, &recordingFeedback{}, domain.ModeBorrowCart, ControllerOptions{})
	}

	first := newController()
	require.NoError(t, host.Begin(context.Background(), first))
	assert.Equal(t, 1, camera.Held())

	second := newController()
	require.NoError(t, host.Begin(context.Background(), second))
	assert.Equal(t, 1, camera.Held())
	assert.Equal(t, StateStopped, first.State())
	assert.Same(t, second, host.Current())

	host.Stop()
	assert.Equal(t, 0, camera.Held())
}

var _ ports.Camera = (*fakeCamera)(nil)
