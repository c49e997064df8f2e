package ports

import (
	"context"

	"github.com/bnema/invscan/internal/domain"
)

// Feedback is the user-facing side of a scan session.
type Feedback interface {
	Acknowledge(frame domain.Frame, payload string)
	Notify(notice domain.Notice)
	OfferManualEntry(cause error)
}

type EntryEditRequest struct {
	SessionID domain.InventorySessionID
	Item      domain.Item
	Entry     domain.SessionEntry
}

// EntryDialog opens an editor for a session entry without blocking and
// calls onClose once the human is done with it.
type EntryDialog interface {
	Open(ctx context.Context, req EntryEditRequest, onClose func())
}
