package domain

import "time"

type InventorySessionID string

type InventorySession struct {
	ID      InventorySessionID
	Name    string
	Entries map[ItemID]SessionEntry
}

type SessionEntry struct {
	ItemID           ItemID
	Checked          bool
	NewLocation      string
	NewCondition     string
	Notes            string
	CheckedAt        time.Time
	LocationChanged  bool
	ConditionChanged bool
}

func (s InventorySession) Progress() (checked int, total int) {
	for _, entry := range s.Entries {
		if entry.Checked {
			checked++
		}
	}
	return checked, len(s.Entries)
}

// Apply records an entry; entries are never removed while the session is open.
func (s *InventorySession) Apply(entry SessionEntry) {
	if s.Entries == nil {
		s.Entries = map[ItemID]SessionEntry{}
	}
	s.Entries[entry.ItemID] = entry
}

// EntryPatch is a local edit of a session entry. Nil fields are not covered by the edit.
type EntryPatch struct {
	Checked      *bool
	NewLocation  *string
	NewCondition *string
	Notes        *string
	CheckedAt    *time.Time
}

func (p EntryPatch) Apply(entry SessionEntry) SessionEntry {
	if p.Checked != nil {
		entry.Checked = *p.Checked
	}
	if p.NewLocation != nil {
		entry.NewLocation = *p.NewLocation
	}
	if p.NewCondition != nil {
		entry.NewCondition = *p.NewCondition
	}
	if p.Notes != nil {
		entry.Notes = *p.Notes
	}
	if p.CheckedAt != nil {
		entry.CheckedAt = *p.CheckedAt
	}
	return entry
}

// Reflected reports whether entry already carries every field of the patch.
// CheckedAt is server-assigned and never compared.
func (p EntryPatch) Reflected(entry SessionEntry) bool {
	if p.Checked != nil && entry.Checked != *p.Checked {
		return false
	}
	if p.NewLocation != nil && entry.NewLocation != *p.NewLocation {
		return false
	}
	if p.NewCondition != nil && entry.NewCondition != *p.NewCondition {
		return false
	}
	if p.Notes != nil && entry.Notes != *p.Notes {
		return false
	}
	return true
}

func (p EntryPatch) Empty() bool {
	return p.Checked == nil && p.NewLocation == nil && p.NewCondition == nil && p.Notes == nil
}

func EntryKey(entry SessionEntry) ItemID {
	return entry.ItemID
}
