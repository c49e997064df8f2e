package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
)

// CycleCountService edits inventory session entries with optimistic cache updates.
type CycleCountService struct {
	inventory ports.CycleCountService
	entries   *EntryCache
}

func NewCycleCountService(inventory ports.CycleCountService, entries *EntryCache) *CycleCountService {
	return &CycleCountService{inventory: inventory, entries: entries}
}

func (s *CycleCountService) Load(ctx context.Context, sessionID domain.InventorySessionID) (domain.InventorySession, error) {
	session, err := s.inventory.ListSessionEntries(ctx, sessionID)
	if err != nil {
		return domain.InventorySession{}, fmt.Errorf("list session entries: %w", err)
	}
	s.entries.Reconcile(sortedEntries(session))

	return s.View(session), nil
}

// View returns session with entries taken from the cache, local edits included.
func (s *CycleCountService) View(session domain.InventorySession) domain.InventorySession {
	view := domain.InventorySession{ID: session.ID, Name: session.Name, Entries: map[domain.ItemID]domain.SessionEntry{}}
	for _, entry := range s.entries.List() {
		view.Apply(entry)
	}
	return view
}

// UpdateEntry shows patch locally right away, then submits the full entry.
// A rejected update drops the local edit again.
func (s *CycleCountService) UpdateEntry(ctx context.Context, sessionID domain.InventorySessionID, itemID domain.ItemID, patch domain.EntryPatch) (domain.SessionEntry, error) {
	if patch.Empty() {
		entry, ok := s.entries.Get(itemID)
		if !ok {
			return domain.SessionEntry{}, ErrNotCached
		}
		return entry, nil
	}

	mutationID, err := s.entries.ApplyLocal(itemID, patch)
	if errors.Is(err, ErrNotCached) {
		s.entries.Upsert(domain.SessionEntry{ItemID: itemID})
		mutationID, err = s.entries.ApplyLocal(itemID, patch)
	}
	if err != nil {
		return domain.SessionEntry{}, fmt.Errorf("apply local edit: %w", err)
	}

	local, _ := s.entries.Get(itemID)
	updated, err := s.inventory.UpdateEntry(context.WithoutCancel(ctx), sessionID, local)
	if err != nil {
		s.entries.Discard(itemID, mutationID)
		return domain.SessionEntry{}, domain.NewScanError(domain.KindMutation, "update entry", err)
	}
	if updated.ItemID == 0 {
		updated.ItemID = itemID
	}
	s.entries.Upsert(updated)

	return updated, nil
}
