package domain

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrAlreadyInCart   = errors.New("item already in cart")
	ErrItemUnavailable = errors.New("item is not available")
	ErrNoActiveBorrow  = errors.New("no active borrow for item")
	ErrSessionNotFound = errors.New("inventory session not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrSecretNotFound  = errors.New("secret not found")
	ErrCameraBusy      = errors.New("camera already held by this session")
	ErrSessionFinished = errors.New("scan session already started or stopped")
)

type ErrorKind string

const (
	KindDecodeMiss ErrorKind = "decode_miss"
	KindDevice     ErrorKind = "device"
	KindResolution ErrorKind = "resolution"
	KindMutation   ErrorKind = "mutation"
	KindStaleCache ErrorKind = "stale_cache"
)

// ScanError classifies a failure in the scan pipeline.
type ScanError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *ScanError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Is matches another ScanError by kind.
func (e *ScanError) Is(target error) bool {
	t, ok := target.(*ScanError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func NewScanError(kind ErrorKind, op string, err error) *ScanError {
	return &ScanError{Kind: kind, Op: op, Err: err}
}

func KindOf(err error) (ErrorKind, bool) {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Kind, true
	}
	return "", false
}

// Surfaced reports whether an error of this kind must reach the interacting user.
func (k ErrorKind) Surfaced() bool {
	return k == KindDevice || k == KindMutation || k == KindResolution
}
