package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
)

type WorkflowDeps struct {
	Camera    ports.Camera
	Decoder   ports.Decoder
	Inventory ports.InventoryService
	Items     *ItemCache
	Entries   *EntryCache
	Feedback  ports.Feedback
	Dialog    ports.EntryDialog
	Clock     ports.Clock
	Logger    *slog.Logger
}

type WorkflowConfig struct {
	Mode         domain.Mode
	SessionID    domain.InventorySessionID
	AckDuration  time.Duration
	SettleDelay  time.Duration
	OnTransition func(Transition)
}

// Workflow is one borrow, return or cycle-count run: a scan controller, its
// dispatcher and the cart they share. The cart is discarded with the workflow.
type Workflow struct {
	mode       domain.Mode
	controller *ScanController
	dispatcher *ActionDispatcher
}

func NewWorkflow(deps WorkflowDeps, cfg WorkflowConfig) (*Workflow, error) {
	if !cfg.Mode.Valid() {
		return nil, fmt.Errorf("unsupported scan mode %q", cfg.Mode)
	}
	if cfg.Mode == domain.ModeCycleCount && cfg.SessionID == "" {
		return nil, fmt.Errorf("cycle count: %w", domain.ErrSessionNotFound)
	}
	if deps.Inventory == nil || deps.Feedback == nil {
		return nil, errors.New("inventory service and feedback are required")
	}
	if deps.Items == nil {
		deps.Items = NewCache(domain.ItemKey, CacheOptions[domain.ItemID]{Clock: deps.Clock})
	}
	if deps.Entries == nil {
		deps.Entries = NewCache(domain.EntryKey, CacheOptions[domain.ItemID]{Clock: deps.Clock})
	}

	dispatcher := NewActionDispatcher(deps.Inventory, deps.Items, deps.Entries, deps.Feedback, deps.Dialog, DispatcherOptions{
		SessionID:   cfg.SessionID,
		SettleDelay: cfg.SettleDelay,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	})

	var controller *ScanController
	if deps.Camera != nil && deps.Decoder != nil {
		controller = NewScanController(deps.Camera, deps.Decoder, dispatcher, deps.Feedback, cfg.Mode, ControllerOptions{
			AckDuration:  cfg.AckDuration,
			Logger:       deps.Logger,
			OnTransition: cfg.OnTransition,
		})
	}

	return &Workflow{mode: cfg.Mode, controller: controller, dispatcher: dispatcher}, nil
}

func (w *Workflow) Mode() domain.Mode {
	return w.mode
}

// Controller is nil for a manual-entry-only workflow.
func (w *Workflow) Controller() *ScanController {
	return w.controller
}

func (w *Workflow) Start(ctx context.Context, host *ScanHost) error {
	if w.controller == nil {
		return errors.New("workflow has no camera")
	}
	if host == nil {
		return w.controller.Start(ctx)
	}
	return host.Begin(ctx, w.controller)
}

// Submit dispatches a typed payload exactly as if it had been scanned.
func (w *Workflow) Submit(ctx context.Context, text string) DispatchResult {
	resume := func() {}
	if w.controller != nil {
		resume = w.controller.RequestResume
	}
	return w.dispatcher.Dispatch(ctx, ScanRequest{Payload: text, Mode: w.mode, RequestResume: resume})
}

func (w *Workflow) Cart() []domain.Item {
	return w.dispatcher.Cart()
}

func (w *Workflow) RemoveFromCart(ctx context.Context, id domain.ItemID) error {
	return w.dispatcher.RemoveFromCart(ctx, id)
}

func (w *Workflow) Checkout(ctx context.Context, req ports.CheckoutRequest) (string, error) {
	if w.mode != domain.ModeBorrowCart {
		return "", fmt.Errorf("checkout requires %s mode", domain.ModeBorrowCart)
	}
	return w.dispatcher.Checkout(ctx, req)
}

func (w *Workflow) Stop() {
	if w.controller != nil {
		w.controller.Stop()
	}
}
