package domain

import (
	"fmt"
	"strings"
)

type ItemID int64
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusBorrowed  ItemStatus = "borrowed"
	ItemStatusMissing   ItemStatus = "missing"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusAvailable, ItemStatusBorrowed, ItemStatusMissing:
		return true
	default:
		return false
	}
}

type Item struct {
	ID         ItemID
	Name       string
	Category   string
	FolderName string
	Location   string
	Condition  string
	Status     ItemStatus
	QRCode     string
}

func (i Item) Validate() error {
	if i.ID <= 0 {
		return fmt.Errorf("id must be positive")
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !i.Status.Valid() {
		return fmt.Errorf("unsupported status %q", i.Status)
	}

	return nil
}

func (i Item) Borrowable() bool {
	return i.Status == ItemStatusAvailable
}

// ItemPatch is a local edit of an item. Nil fields are not covered by the edit.
type ItemPatch struct {
	Status    *ItemStatus
	Location  *string
	Condition *string
}

func (p ItemPatch) Apply(item Item) Item {
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.Location != nil {
		item.Location = *p.Location
	}
	if p.Condition != nil {
		item.Condition = *p.Condition
	}
	return item
}

func (p ItemPatch) Reflected(item Item) bool {
	if p.Status != nil && item.Status != *p.Status {
		return false
	}
	if p.Location != nil && item.Location != *p.Location {
		return false
	}
	if p.Condition != nil && item.Condition != *p.Condition {
		return false
	}
	return true
}

func ItemKey(item Item) ItemID {
	return item.ID
}
