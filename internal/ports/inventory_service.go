package ports

import (
	"context"
	"time"

	"github.com/bnema/invscan/internal/domain"
)

type CartAddResult struct {
	Item      domain.Item
	CartCount int
}

type CheckoutRequest struct {
	Borrower         string
	ExpectedReturnAt time.Time
}

type CheckResult struct {
	Checked   bool
	CheckedAt time.Time
}

type ItemCatalog interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
}

type BorrowService interface {
	AddToCart(ctx context.Context, code string) (CartAddResult, error)
	RemoveFromCart(ctx context.Context, id domain.ItemID) error
	Checkout(ctx context.Context, req CheckoutRequest) (string, error)
	FindActiveBorrow(ctx context.Context, code string) (domain.BorrowRecord, error)
	ReturnItem(ctx context.Context, code string, transactionID string) error
}

type CycleCountService interface {
	ListSessionEntries(ctx context.Context, sessionID domain.InventorySessionID) (domain.InventorySession, error)
	ScanInSession(ctx context.Context, sessionID domain.InventorySessionID, qrData string) (domain.Item, error)
	SetChecked(ctx context.Context, sessionID domain.InventorySessionID, itemID domain.ItemID, checked bool) (CheckResult, error)
	UpdateEntry(ctx context.Context, sessionID domain.InventorySessionID, entry domain.SessionEntry) (domain.SessionEntry, error)
}

type InventoryService interface {
	ItemCatalog
	BorrowService
	CycleCountService
}
