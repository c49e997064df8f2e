package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
	"github.com/bnema/invscan/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// A poll that lands while the edit dialog is still open must not put the old
// location back.
func TestCycleCountPollDuringDialogKeepsLocalLocation(t *testing.T) {
	clock := newManualClock()
	inventory := mocks.NewMockInventoryService(t)
	items := newItemCache(clock)
	entries := newEntryCache(clock)
	feedback := &recordingFeedback{}
	dialog := mocks.NewMockEntryDialog(t)
	service := NewCycleCountService(inventory, entries)

	serverBefore := domain.InventorySession{
		ID:      "s-1",
		Entries: map[domain.ItemID]domain.SessionEntry{42: {ItemID: 42, NewLocation: "A1"}},
	}
	inventory.EXPECT().ListSessionEntries(anyCtx(), domain.InventorySessionID("s-1")).Return(serverBefore, nil)
	_, err := service.Load(context.Background(), "s-1")
	require.NoError(t, err)

	checkedAt := clock.Now()
	inventory.EXPECT().SetChecked(anyCtx(), domain.InventorySessionID("s-1"), domain.ItemID(42), true).
		Return(ports.CheckResult{Checked: true, CheckedAt: checkedAt}, nil).Once()

	reconciler := NewEntryReconciler(inventory, "s-1", entries, time.Second, nil)
	inventory.EXPECT().UpdateEntry(anyCtx(), domain.InventorySessionID("s-1"), mock.MatchedBy(func(e domain.SessionEntry) bool {
		return e.ItemID == 42 && e.NewLocation == "B3" && e.Checked
	})).RunAndReturn(func(ctx context.Context, _ domain.InventorySessionID, e domain.SessionEntry) (domain.SessionEntry, error) {
		clock.Advance(time.Second)
		_, err := reconciler.PollOnce(ctx)
		require.NoError(t, err)

		during, _ := entries.Get(42)
		assert.Equal(t, "B3", during.NewLocation)
		assert.True(t, during.Checked)
		return e, nil
	}).Once()

	resumed := make(chan struct{}, 1)
	dialog.EXPECT().Open(anyCtx(), mock.Anything, mock.Anything).Run(func(ctx context.Context, req ports.EntryEditRequest, onClose func()) {
		_, err := service.UpdateEntry(ctx, req.SessionID, req.Entry.ItemID, domain.EntryPatch{NewLocation: ptr("B3")})
		assert.NoError(t, err)
		onClose()
	}).Once()

	dispatcher := NewActionDispatcher(inventory, items, entries, feedback, dialog, DispatcherOptions{SessionID: "s-1", Clock: clock})
	result := dispatcher.Dispatch(context.Background(), ScanRequest{
		Payload:       "42",
		Mode:          domain.ModeCycleCount,
		RequestResume: func() { resumed <- struct{}{} },
	})

	assert.False(t, result.Resume)
	assert.Len(t, resumed, 1)
	entry, _ := entries.Get(42)
	assert.Equal(t, "B3", entry.NewLocation)
	assert.Empty(t, feedback.Errors())
}

func TestCycleCountUpdateRejectedDropsLocalEdit(t *testing.T) {
	clock := newManualClock()
	inventory := mocks.NewMockInventoryService(t)
	entries := newEntryCache(clock)
	entries.Reconcile([]domain.SessionEntry{{ItemID: 3, Notes: "ok"}})
	inventory.EXPECT().UpdateEntry(anyCtx(), domain.InventorySessionID("s-2"), mock.Anything).
		Return(domain.SessionEntry{}, errors.New("status 403")).Once()

	service := NewCycleCountService(inventory, entries)
	_, err := service.UpdateEntry(context.Background(), "s-2", 3, domain.EntryPatch{Notes: ptr("dented")})

	require.Error(t, err)
	assert.ErrorIs(t, err, &domain.ScanError{Kind: domain.KindMutation})
	entry, _ := entries.Get(3)
	assert.Equal(t, "ok", entry.Notes)
}

func TestCycleCountUpdateCreatesUnknownEntry(t *testing.T) {
	clock := newManualClock()
	inventory := mocks.NewMockInventoryService(t)
	entries := newEntryCache(clock)
	inventory.EXPECT().UpdateEntry(anyCtx(), domain.InventorySessionID("s-2"), domain.SessionEntry{ItemID: 5, NewCondition: "defekt"}).
		Return(domain.SessionEntry{ItemID: 5, NewCondition: "defekt", ConditionChanged: true}, nil).Once()

	service := NewCycleCountService(inventory, entries)
	updated, err := service.UpdateEntry(context.Background(), "s-2", 5, domain.EntryPatch{NewCondition: ptr("defekt")})

	require.NoError(t, err)
	assert.True(t, updated.ConditionChanged)
	assert.Equal(t, 1, entries.Pending(5))

	entries.Reconcile([]domain.SessionEntry{updated})
	assert.Zero(t, entries.Pending(5))

	view := service.View(domain.InventorySession{ID: "s-2"})
	checked, total := view.Progress()
	assert.Equal(t, 0, checked)
	assert.Equal(t, 1, total)
}

// The update response lands before a poll that was fetched earlier; that poll
// must not put the old location back.
func TestCycleCountUpdateSurvivesPollFetchedBeforeIt(t *testing.T) {
	clock := newManualClock()
	inventory := mocks.NewMockInventoryService(t)
	entries := newEntryCache(clock)
	before := []domain.SessionEntry{{ItemID: 42, NewLocation: "A1"}}
	entries.Reconcile(before)

	inventory.EXPECT().UpdateEntry(anyCtx(), domain.InventorySessionID("s-1"), mock.Anything).
		RunAndReturn(func(_ context.Context, _ domain.InventorySessionID, e domain.SessionEntry) (domain.SessionEntry, error) {
			e.LocationChanged = true
			return e, nil
		}).Once()

	service := NewCycleCountService(inventory, entries)
	_, err := service.UpdateEntry(context.Background(), "s-1", 42, domain.EntryPatch{NewLocation: ptr("B3")})
	require.NoError(t, err)

	clock.Advance(time.Second)
	entries.Reconcile(before)

	entry, _ := entries.Get(42)
	assert.Equal(t, "B3", entry.NewLocation)
	assert.Equal(t, 1, entries.Pending(42))

	clock.Advance(time.Second)
	report := entries.Reconcile([]domain.SessionEntry{{ItemID: 42, NewLocation: "B3", LocationChanged: true}})
	assert.Equal(t, 1, report.Confirmed)
	assert.Zero(t, entries.Pending(42))
	entry, _ = entries.Get(42)
	assert.Equal(t, "B3", entry.NewLocation)
}
