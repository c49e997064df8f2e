package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
)

const DefaultPollInterval = 3 * time.Second

type ItemCache = Cache[domain.ItemID, domain.Item]
type EntryCache = Cache[domain.ItemID, domain.SessionEntry]

// Reconciler polls one list endpoint on a fixed interval and merges every
// snapshot into its cache. A failed poll is logged and the next tick polls again.
type Reconciler struct {
	name     string
	interval time.Duration
	poll     func(ctx context.Context) (ReconcileReport, error)
	logger   *slog.Logger
}

func NewReconciler[K comparable, V comparable](name string, fetch func(ctx context.Context) ([]V, error), cache *Cache[K, V], interval time.Duration, logger *slog.Logger) *Reconciler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = discardLogger()
	}

	return &Reconciler{
		name:     name,
		interval: interval,
		logger:   logger,
		poll: func(ctx context.Context) (ReconcileReport, error) {
			snapshot, err := fetch(ctx)
			if err != nil {
				return ReconcileReport{}, err
			}
			return cache.Reconcile(snapshot), nil
		},
	}
}

func NewItemReconciler(catalog ports.ItemCatalog, cache *ItemCache, interval time.Duration, logger *slog.Logger) *Reconciler {
	return NewReconciler("items", catalog.ListItems, cache, interval, logger)
}

func NewEntryReconciler(svc ports.CycleCountService, sessionID domain.InventorySessionID, cache *EntryCache, interval time.Duration, logger *slog.Logger) *Reconciler {
	fetch := func(ctx context.Context) ([]domain.SessionEntry, error) {
		session, err := svc.ListSessionEntries(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return sortedEntries(session), nil
	}
	return NewReconciler("session "+string(sessionID), fetch, cache, interval, logger)
}

func (r *Reconciler) Name() string {
	return r.name
}

func (r *Reconciler) PollOnce(ctx context.Context) (ReconcileReport, error) {
	report, err := r.poll(ctx)
	if err != nil {
		return ReconcileReport{}, fmt.Errorf("poll %s: %w", r.name, err)
	}
	if report.Expired > 0 {
		r.logger.Warn("stale local edits replaced by server state", "source", r.name, "expired", report.Expired)
	}
	r.logger.Debug("reconciled", "source", r.name, "updated", report.Updated, "removed", report.Removed, "confirmed", report.Confirmed)
	return report, nil
}

// Run polls immediately and then every interval until ctx is done.
func (r *Reconciler) Run(ctx context.Context) error {
	for {
		if _, err := r.PollOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.logger.Warn("reconcile poll failed", "source", r.name, "error", err)
		}
		if !r.wait(ctx) {
			return nil
		}
	}
}

func (r *Reconciler) wait(ctx context.Context) bool {
	timer := time.NewTimer(r.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func sortedEntries(session domain.InventorySession) []domain.SessionEntry {
	entries := make([]domain.SessionEntry, 0, len(session.Entries))
	for _, entry := range session.Entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ItemID < entries[j].ItemID })
	return entries
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
