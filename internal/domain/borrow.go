package domain

import (
	"errors"
	"time"
)

var ErrBorrowClosed = errors.New("borrow record already closed")

type BorrowRecord struct {
	TransactionID    string
	Items            []ItemID
	Borrower         string
	BorrowedAt       time.Time
	ExpectedReturnAt time.Time
	ReturnedAt       time.Time
}

func (r BorrowRecord) Open() bool {
	return r.ReturnedAt.IsZero()
}

func (r BorrowRecord) IsOverdue(now time.Time) bool {
	if !r.Open() || r.ExpectedReturnAt.IsZero() {
		return false
	}
	return now.After(r.ExpectedReturnAt)
}

func (r BorrowRecord) Contains(id ItemID) bool {
	for _, itemID := range r.Items {
		if itemID == id {
			return true
		}
	}
	return false
}

// Close marks the record returned. A closed record cannot be closed again.
func (r *BorrowRecord) Close(at time.Time) error {
	if !r.Open() {
		return ErrBorrowClosed
	}
	r.ReturnedAt = at
	return nil
}
