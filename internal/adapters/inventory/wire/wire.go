// Package wire holds the JSON and form shapes of the inventory REST API.
package wire

import (
	"strings"
	"time"

	"github.com/bnema/invscan/internal/domain"
)

const (
	PathProducts      = "/inventory/api/products"
	PathBorrowScanner = "/inventory/borrow-scanner"
	PathReturn        = "/inventory/return"
	PathActiveBorrow  = "/inventory/api/borrows/active"
	PathSessionItems  = "/inventory/api/inventory/{session}/items"
	PathSessionCheck  = "/inventory/api/inventory/{session}/item/{item}/check"
	PathSessionUpdate = "/inventory/api/inventory/{session}/item/{item}/update"
	PathSessionScan   = "/inventory/api/inventory/{session}/scan"
)

const (
	ActionAddToCart      = "add_to_cart"
	ActionRemoveFromCart = "remove_from_cart"
	ActionCheckout       = "checkout"
)

// Error codes sent next to the human readable error text.
const (
	CodeAlreadyInCart = "already_in_cart"
	CodeUnavailable   = "unavailable"
	CodeNotFound      = "not_found"
	CodeEmptyCart     = "empty_cart"
)

const timeLayout = time.RFC3339

type Product struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CategoryName string `json:"category_name,omitempty"`
	FolderName   string `json:"folder_name,omitempty"`
	Location     string `json:"location,omitempty"`
	Condition    string `json:"condition,omitempty"`
	Status       string `json:"status,omitempty"`
	QRCode       string `json:"qr_code,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Failed reports the error text and code of a response with success=false.
func (r ErrorResponse) Failed() (string, string, bool) {
	return r.Error, r.Code, !r.Success
}

type CartResponse struct {
	ErrorResponse
	Product   *Product `json:"product,omitempty"`
	CartCount int      `json:"cart_count"`
}

type CheckoutResponse struct {
	ErrorResponse
	TransactionID string `json:"transaction_id,omitempty"`
}

type Borrow struct {
	TransactionID    string  `json:"transaction_id"`
	Borrower         string  `json:"borrower"`
	BorrowedAt       string  `json:"borrowed_at"`
	ExpectedReturnAt string  `json:"expected_return_at"`
	ReturnedAt       string  `json:"returned_at,omitempty"`
	ProductIDs       []int64 `json:"product_ids"`
	IsOverdue        bool    `json:"is_overdue"`
}

type BorrowResponse struct {
	ErrorResponse
	Borrow *Borrow `json:"borrow,omitempty"`
}

type Session struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Entry struct {
	ProductID        int64  `json:"product_id"`
	ProductName      string `json:"product_name,omitempty"`
	Checked          bool   `json:"checked"`
	CheckedAt        string `json:"checked_at,omitempty"`
	NewLocation      string `json:"new_location,omitempty"`
	NewCondition     string `json:"new_condition,omitempty"`
	Notes            string `json:"notes,omitempty"`
	LocationChanged  bool   `json:"location_changed"`
	ConditionChanged bool   `json:"condition_changed"`
}

type SessionItemsResponse struct {
	Inventory Session `json:"inventory"`
	Items     []Entry `json:"items"`
}

type CheckRequest struct {
	Checked bool `json:"checked"`
}

type CheckResponse struct {
	Checked   bool   `json:"checked"`
	CheckedAt string `json:"checked_at,omitempty"`
}

type UpdateRequest struct {
	Checked      bool   `json:"checked"`
	Notes        string `json:"notes"`
	NewLocation  string `json:"new_location"`
	NewCondition string `json:"new_condition"`
}

type UpdateResponse struct {
	Item Entry `json:"item"`
}

type ScanRequest struct {
	QRData string `json:"qr_data"`
}

type ScanResponse struct {
	Product Product `json:"product"`
}

// ToItem converts a product; a missing status means available.
func (p Product) ToItem() domain.Item {
	status := domain.ItemStatus(strings.ToLower(strings.TrimSpace(p.Status)))
	if status == "" {
		status = domain.ItemStatusAvailable
	}
	return domain.Item{
		ID:         domain.ItemID(p.ID),
		Name:       p.Name,
		Category:   p.CategoryName,
		FolderName: p.FolderName,
		Location:   p.Location,
		Condition:  p.Condition,
		Status:     status,
		QRCode:     p.QRCode,
	}
}

func FromItem(item domain.Item) Product {
	return Product{
		ID:           int64(item.ID),
		Name:         item.Name,
		CategoryName: item.Category,
		FolderName:   item.FolderName,
		Location:     item.Location,
		Condition:    item.Condition,
		Status:       string(item.Status),
		QRCode:       item.QRCode,
	}
}

func (b Borrow) ToRecord() domain.BorrowRecord {
	items := make([]domain.ItemID, 0, len(b.ProductIDs))
	for _, id := range b.ProductIDs {
		items = append(items, domain.ItemID(id))
	}
	return domain.BorrowRecord{
		TransactionID:    b.TransactionID,
		Items:            items,
		Borrower:         b.Borrower,
		BorrowedAt:       ParseTime(b.BorrowedAt),
		ExpectedReturnAt: ParseTime(b.ExpectedReturnAt),
		ReturnedAt:       ParseTime(b.ReturnedAt),
	}
}

func FromRecord(record domain.BorrowRecord, now time.Time) Borrow {
	ids := make([]int64, 0, len(record.Items))
	for _, id := range record.Items {
		ids = append(ids, int64(id))
	}
	return Borrow{
		TransactionID:    record.TransactionID,
		Borrower:         record.Borrower,
		BorrowedAt:       FormatTime(record.BorrowedAt),
		ExpectedReturnAt: FormatTime(record.ExpectedReturnAt),
		ReturnedAt:       FormatTime(record.ReturnedAt),
		ProductIDs:       ids,
		IsOverdue:        record.IsOverdue(now),
	}
}

func (e Entry) ToSessionEntry() domain.SessionEntry {
	return domain.SessionEntry{
		ItemID:           domain.ItemID(e.ProductID),
		Checked:          e.Checked,
		NewLocation:      e.NewLocation,
		NewCondition:     e.NewCondition,
		Notes:            e.Notes,
		CheckedAt:        ParseTime(e.CheckedAt),
		LocationChanged:  e.LocationChanged,
		ConditionChanged: e.ConditionChanged,
	}
}

func FromSessionEntry(entry domain.SessionEntry) Entry {
	return Entry{
		ProductID:        int64(entry.ItemID),
		Checked:          entry.Checked,
		CheckedAt:        FormatTime(entry.CheckedAt),
		NewLocation:      entry.NewLocation,
		NewCondition:     entry.NewCondition,
		Notes:            entry.Notes,
		LocationChanged:  entry.LocationChanged,
		ConditionChanged: entry.ConditionChanged,
	}
}

// ParseTime accepts RFC 3339 and the SQL datetime layout some servers emit.
// Unparseable values read as the zero time.
func ParseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func FormatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(timeLayout)
}
