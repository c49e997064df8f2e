package domain

import (
	"net/url"
	"path"
	"strconv"
	"strings"
)

var payloadPrefixes = []string{"PRODUCT-", "PROD-", "PROD:", "ITEM-", "INV-", "#"}

// Payload is a decoded or typed code after normalization.
type Payload struct {
	Raw    string
	Code   string
	ItemID ItemID
}

func (p Payload) Numeric() bool {
	return p.ItemID > 0
}

// ParsePayload strips URL wrapping and one known prefix, then accepts the
// remainder as an item id only when it is all digits. Everything else keeps
// the trimmed raw payload as an opaque code for the inventory service.
func ParsePayload(raw string) Payload {
	trimmed := strings.TrimSpace(raw)
	p := Payload{Raw: raw, Code: trimmed}
	if trimmed == "" {
		return p
	}

	candidate := unwrapURL(trimmed)
	upper := strings.ToUpper(candidate)
	for _, prefix := range payloadPrefixes {
		if strings.HasPrefix(upper, prefix) {
			candidate = candidate[len(prefix):]
			break
		}
	}

	candidate = strings.TrimSpace(candidate)
	if !allDigits(candidate) {
		return p
	}

	id, err := strconv.ParseInt(candidate, 10, 64)
	if err != nil || id <= 0 {
		return p
	}
	p.ItemID = ItemID(id)
	return p
}

func unwrapURL(raw string) string {
	if !strings.Contains(raw, "://") {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}
	for _, key := range []string{"id", "qr_code", "product_id"} {
		if value := parsed.Query().Get(key); value != "" {
			return value
		}
	}
	if base := path.Base(parsed.Path); base != "/" && base != "." {
		return base
	}
	return raw
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Forward is the code sent to the inventory service: the item id when the
// payload normalized to one, the trimmed payload otherwise.
func (p Payload) Forward() string {
	if p.Numeric() {
		return strconv.FormatInt(int64(p.ItemID), 10)
	}
	return p.Code
}
