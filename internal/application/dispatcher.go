package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
)

const DefaultSettleDelay = 1200 * time.Millisecond

var errEmptyPayload = errors.New("payload is empty")

type DispatcherOptions struct {
	SessionID   domain.InventorySessionID
	SettleDelay time.Duration
	Clock       ports.Clock
	Logger      *slog.Logger
}

// ActionDispatcher turns one decoded payload into one inventory action for
// the active workflow mode. Mutations run detached from the session context
// so a stopped session still lands their results in the caches.
type ActionDispatcher struct {
	inventory   ports.InventoryService
	items       *ItemCache
	entries     *EntryCache
	feedback    ports.Feedback
	dialog      ports.EntryDialog
	sessionID   domain.InventorySessionID
	settleDelay time.Duration
	clock       ports.Clock
	logger      *slog.Logger

	mu   sync.Mutex
	cart *domain.Cart
}

func NewActionDispatcher(inventory ports.InventoryService, items *ItemCache, entries *EntryCache, feedback ports.Feedback, dialog ports.EntryDialog, opts DispatcherOptions) *ActionDispatcher {
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}

	return &ActionDispatcher{
		inventory:   inventory,
		items:       items,
		entries:     entries,
		feedback:    feedback,
		dialog:      dialog,
		sessionID:   opts.SessionID,
		settleDelay: opts.SettleDelay,
		clock:       opts.Clock,
		logger:      opts.Logger,
		cart:        domain.NewCart(),
	}
}

func (d *ActionDispatcher) Dispatch(ctx context.Context, req ScanRequest) DispatchResult {
	result := domain.ScanResult{Payload: domain.ParsePayload(req.Payload)}
	mutationCtx := context.WithoutCancel(ctx)
	if result.Payload.Code == "" {
		d.fail(req.Mode, result, domain.KindDecodeMiss, "parse payload", errEmptyPayload)
		return DispatchResult{Resume: true}
	}

	switch req.Mode {
	case domain.ModeReturn:
		d.returnItem(mutationCtx, result)
		return DispatchResult{Done: true}
	case domain.ModeBorrowCart:
		d.addToCart(mutationCtx, result)
		sleepContext(ctx, d.settleDelay)
		return DispatchResult{Resume: true}
	case domain.ModeCycleCount:
		if d.checkEntry(ctx, mutationCtx, result, req.RequestResume) {
			return DispatchResult{}
		}
		sleepContext(ctx, d.settleDelay)
		return DispatchResult{Resume: true}
	default:
		d.fail(req.Mode, result, domain.KindResolution, "dispatch", fmt.Errorf("unsupported scan mode %q", req.Mode))
		return DispatchResult{Done: true}
	}
}

func (d *ActionDispatcher) Cart() []domain.Item {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.cart.Items()
}

func (d *ActionDispatcher) RemoveFromCart(ctx context.Context, id domain.ItemID) error {
	if err := d.inventory.RemoveFromCart(ctx, id); err != nil {
		return domain.NewScanError(domain.KindMutation, "remove from cart", err)
	}

	d.mu.Lock()
	d.cart.Remove(id)
	d.mu.Unlock()
	return nil
}

// Checkout borrows every cart item and empties the cart.
func (d *ActionDispatcher) Checkout(ctx context.Context, req ports.CheckoutRequest) (string, error) {
	d.mu.Lock()
	ids := d.cart.IDs()
	d.mu.Unlock()
	if len(ids) == 0 {
		return "", errors.New("cart is empty")
	}

	transactionID, err := d.inventory.Checkout(ctx, req)
	if err != nil {
		return "", domain.NewScanError(domain.KindMutation, "checkout", err)
	}

	borrowed := domain.ItemStatusBorrowed
	for _, id := range ids {
		d.applyItem(id, domain.ItemPatch{Status: &borrowed})
	}

	d.mu.Lock()
	d.cart.Clear()
	d.mu.Unlock()
	return transactionID, nil
}

func (d *ActionDispatcher) returnItem(ctx context.Context, result domain.ScanResult) {
	code := result.Payload.Forward()
	record, err := d.inventory.FindActiveBorrow(ctx, code)
	if err != nil {
		d.fail(domain.ModeReturn, result, resolutionOrMutation(err), "find active borrow", err)
		return
	}
	if len(record.Items) > 0 {
		item, ok := d.items.Get(record.Items[0])
		if !ok {
			item = domain.Item{ID: record.Items[0]}
		}
		result.Item = &item
	}

	if err := d.inventory.ReturnItem(ctx, code, record.TransactionID); err != nil {
		d.fail(domain.ModeReturn, result, domain.KindMutation, "return item", err)
		return
	}

	available := domain.ItemStatusAvailable
	for _, id := range record.Items {
		d.applyItem(id, domain.ItemPatch{Status: &available})
	}
	d.feedback.Notify(domain.Notice{
		Level:   domain.NoticeSuccess,
		Mode:    domain.ModeReturn,
		Message: fmt.Sprintf("returned %d item(s) from %s", len(record.Items), record.TransactionID),
		Result:  &result,
	})
}

func (d *ActionDispatcher) addToCart(ctx context.Context, result domain.ScanResult) {
	added, err := d.inventory.AddToCart(ctx, result.Payload.Forward())
	if err != nil {
		d.fail(domain.ModeBorrowCart, result, resolutionOrMutation(err), "add to cart", err)
		return
	}

	item := added.Item
	if cached, ok := d.items.Get(item.ID); ok {
		item = mergeSummary(cached, item)
	}
	d.items.Upsert(item)
	result.Item = &item

	d.mu.Lock()
	err = d.cart.Add(item)
	d.mu.Unlock()
	if err != nil {
		d.fail(domain.ModeBorrowCart, result, domain.KindResolution, "add to cart", err)
		return
	}

	d.feedback.Notify(domain.Notice{
		Level:   domain.NoticeSuccess,
		Mode:    domain.ModeBorrowCart,
		Message: fmt.Sprintf("%s added (%d in cart)", item.Name, added.CartCount),
		Result:  &result,
	})
}

// checkEntry marks the scanned item present and opens its editor. It
// reports whether the editor took over, in which case the editor's close
// event resumes scanning.
func (d *ActionDispatcher) checkEntry(sessionCtx, ctx context.Context, result domain.ScanResult, resume func()) bool {
	if d.sessionID == "" {
		d.fail(domain.ModeCycleCount, result, domain.KindResolution, "check item", domain.ErrSessionNotFound)
		return false
	}

	item, err := d.resolveItem(ctx, result.Payload)
	if err != nil {
		d.fail(domain.ModeCycleCount, result, resolutionOrMutation(err), "resolve item", err)
		return false
	}
	result.Item = &item

	checked := true
	now := d.clock.Now()
	mutationID, cacheErr := d.entries.ApplyLocal(item.ID, domain.EntryPatch{Checked: &checked, CheckedAt: &now})

	checkResult, err := d.inventory.SetChecked(ctx, d.sessionID, item.ID, checked)
	if err != nil {
		if cacheErr == nil {
			d.entries.Discard(item.ID, mutationID)
		}
		d.fail(domain.ModeCycleCount, result, domain.KindMutation, "check item", err)
		return false
	}
	if errors.Is(cacheErr, ErrNotCached) {
		d.entries.Upsert(domain.SessionEntry{ItemID: item.ID, Checked: checkResult.Checked, CheckedAt: checkResult.CheckedAt})
	}

	entry, _ := d.entries.Get(item.ID)
	result.Entry = &entry
	d.feedback.Notify(domain.Notice{
		Level:   domain.NoticeSuccess,
		Mode:    domain.ModeCycleCount,
		Message: fmt.Sprintf("%s checked", displayName(item)),
		Result:  &result,
	})

	if d.dialog == nil {
		return false
	}
	d.dialog.Open(sessionCtx, ports.EntryEditRequest{SessionID: d.sessionID, Item: item, Entry: entry}, resume)
	return true
}

func (d *ActionDispatcher) resolveItem(ctx context.Context, payload domain.Payload) (domain.Item, error) {
	if payload.Numeric() {
		if item, ok := d.items.Get(payload.ItemID); ok {
			return item, nil
		}
		return domain.Item{ID: payload.ItemID}, nil
	}

	item, err := d.inventory.ScanInSession(ctx, d.sessionID, payload.Forward())
	if err != nil {
		return domain.Item{}, err
	}
	if cached, ok := d.items.Get(item.ID); ok {
		item = mergeSummary(cached, item)
	}
	d.items.Upsert(item)
	return item, nil
}

func (d *ActionDispatcher) applyItem(id domain.ItemID, patch domain.ItemPatch) {
	if _, err := d.items.ApplyLocal(id, patch); err != nil && !errors.Is(err, ErrNotCached) {
		d.logger.Warn("apply local item edit", "item", id, "error", err)
	}
}

// fail reports err to the user when its kind is surfaced and only logs it otherwise.
func (d *ActionDispatcher) fail(mode domain.Mode, result domain.ScanResult, kind domain.ErrorKind, op string, err error) {
	scanErr := domain.NewScanError(kind, op, err)
	if !kind.Surfaced() {
		d.logger.Debug("scan not dispatched", "mode", mode, "kind", kind, "error", err)
		return
	}
	if kind == domain.KindMutation {
		d.logger.Warn("inventory mutation failed", "mode", mode, "op", op, "error", err)
	}
	d.feedback.Notify(domain.Notice{Level: domain.NoticeError, Mode: mode, Message: scanErr.Error(), Result: &result, Err: scanErr})
}

func resolutionOrMutation(err error) domain.ErrorKind {
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrNoActiveBorrow),
		errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, domain.ErrItemUnavailable),
		errors.Is(err, domain.ErrSessionNotFound):
		return domain.KindResolution
	default:
		return domain.KindMutation
	}
}

// mergeSummary overlays the non-empty fields of a server summary on the cached item.
func mergeSummary(cached, summary domain.Item) domain.Item {
	merged := cached
	if summary.Name != "" {
		merged.Name = summary.Name
	}
	if summary.Category != "" {
		merged.Category = summary.Category
	}
	if summary.FolderName != "" {
		merged.FolderName = summary.FolderName
	}
	if summary.Location != "" {
		merged.Location = summary.Location
	}
	if summary.Condition != "" {
		merged.Condition = summary.Condition
	}
	if summary.Status != "" {
		merged.Status = summary.Status
	}
	if summary.QRCode != "" {
		merged.QRCode = summary.QRCode
	}
	return merged
}

func displayName(item domain.Item) string {
	if item.Name != "" {
		return item.Name
	}
	return fmt.Sprintf("item %d", item.ID)
}
