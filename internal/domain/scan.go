package domain

import (
	"fmt"
	"image"
	"time"
)

type Mode string

const (
	ModeReturn     Mode = "return"
	ModeBorrowCart Mode = "cart"
	ModeCycleCount Mode = "count"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeReturn, ModeBorrowCart, ModeCycleCount:
		return true
	default:
		return false
	}
}

// Continuous reports whether a session in this mode keeps scanning after a dispatched action.
func (m Mode) Continuous() bool {
	return m == ModeBorrowCart || m == ModeCycleCount
}

func ParseMode(raw string) (Mode, error) {
	mode := Mode(raw)
	switch raw {
	case "borrow", "borrow-cart", "borrow_cart":
		mode = ModeBorrowCart
	case "inventur", "cycle-count", "cycle_count":
		mode = ModeCycleCount
	}
	if !mode.Valid() {
		return "", fmt.Errorf("unsupported scan mode %q", raw)
	}
	return mode, nil
}

// Frame is one raster buffer captured from the camera.
type Frame struct {
	Seq        uint64
	Image      image.Image
	CapturedAt time.Time
}

func (f Frame) Size() (int, int) {
	if f.Image == nil {
		return 0, 0
	}
	b := f.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Decoded is a payload extracted from a frame together with the decoder tier that produced it.
type Decoded struct {
	Text     string
	Tier     int
	Inverted bool
}

type ScanResult struct {
	Payload Payload
	Item    *Item
	Entry   *SessionEntry
}

func (r ScanResult) Resolved() bool {
	return r.Item != nil || r.Entry != nil
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel
	Mode    Mode
	Message string
	// Result is the scan the notice is about; nil for notices outside a dispatch.
	Result *ScanResult
	Err    error
}
