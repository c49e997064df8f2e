package inventory

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// View is what one render shows. Nil or empty sections are left out.
type View struct {
	Title   string
	Items   []domain.Item
	Cart    []domain.Item
	Session *domain.InventorySession
	Borrows []domain.BorrowRecord
	// Pending counts unconfirmed local edits per item.
	Pending map[domain.ItemID]int
}

type RenderOptions struct {
	Now time.Time
}

func renderView(view View, opts RenderOptions, s styles) string {
	title := view.Title
	if title == "" {
		title = "Inventory"
	}
	lines := []string{s.title.Render(title)}

	names := make(map[domain.ItemID]domain.Item, len(view.Items))
	for _, item := range view.Items {
		names[item.ID] = item
	}

	sections := 0
	if view.Session != nil {
		lines = append(lines, s.section.Render(renderSession(*view.Session, names, view.Pending, s)))
		sections++
	}
	if view.Cart != nil {
		lines = append(lines, s.section.Render(renderCart(view.Cart, s)))
		sections++
	}
	if len(view.Borrows) > 0 {
		lines = append(lines, s.section.Render(renderBorrows(view.Borrows, opts, s)))
		sections++
	}
	if sections == 0 {
		lines = append(lines, s.header.Render(fmt.Sprintf("items: %d", len(view.Items))))
		if len(view.Items) == 0 {
			lines = append(lines, s.empty.Render("No items available."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}
		for _, item := range view.Items {
			lines = append(lines, itemLine(item, view.Pending[item.ID], s))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func itemLine(item domain.Item, pending int, s styles) string {
	parts := []string{
		s.item.Render(fmt.Sprintf("#%-5d %s", item.ID, item.Name)),
		statusBadge(item.Status, s),
	}
	if place := placeLabel(item); place != "" {
		parts = append(parts, s.detail.Render(place))
	}
	if pending > 0 {
		parts = append(parts, s.warning.Render("[syncing]"))
	}
	return strings.Join(parts, " ")
}

func placeLabel(item domain.Item) string {
	var fields []string
	for _, field := range []string{item.Category, item.FolderName, item.Location} {
		if strings.TrimSpace(field) != "" {
			fields = append(fields, field)
		}
	}
	return strings.Join(fields, " / ")
}

func statusBadge(status domain.ItemStatus, s styles) string {
	switch status {
	case domain.ItemStatusAvailable:
		return s.available.Render("available")
	case domain.ItemStatusBorrowed:
		return s.borrowed.Render("borrowed")
	case domain.ItemStatusMissing:
		return s.missing.Render("missing")
	default:
		return s.empty.Render("unknown")
	}
}

func renderCart(cart []domain.Item, s styles) string {
	lines := []string{s.header.Render(fmt.Sprintf("cart: %d", len(cart)))}
	if len(cart) == 0 {
		lines = append(lines, s.empty.Render("Cart is empty."))
	}
	for i, item := range cart {
		lines = append(lines, fmt.Sprintf("%2d. %s", i+1, itemLine(item, 0, s)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(session domain.InventorySession, items map[domain.ItemID]domain.Item, pending map[domain.ItemID]int, s styles) string {
	checked, total := session.Progress()
	name := session.Name
	if name == "" {
		name = string(session.ID)
	}

	percent := 0.0
	if total > 0 {
		percent = float64(checked) / float64(total) * 100
	}
	lines := []string{
		s.item.Render("Cycle count: " + name),
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderProgressBar(percent, 24, s),
			" ",
			lipgloss.NewStyle().Foreground(interpolateColor(percent, 0, 100)).Render(fmt.Sprintf("%d/%d checked", checked, total)),
		),
	}

	ids := make([]domain.ItemID, 0, len(session.Entries))
	for id := range session.Entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		lines = append(lines, entryLine(session.Entries[id], items[id], pending[id], s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func entryLine(entry domain.SessionEntry, item domain.Item, pending int, s styles) string {
	mark := s.unchecked.Render("[ ]")
	if entry.Checked {
		mark = s.checked.Render("[x]")
	}
	name := item.Name
	if name == "" {
		name = fmt.Sprintf("item %d", entry.ItemID)
	}

	parts := []string{mark, s.detail.Render(fmt.Sprintf("#%-5d %s", entry.ItemID, name))}
	if entry.NewLocation != "" {
		parts = append(parts, changeLabel("location", item.Location, entry.NewLocation, entry.LocationChanged, s))
	}
	if entry.NewCondition != "" {
		parts = append(parts, changeLabel("condition", item.Condition, entry.NewCondition, entry.ConditionChanged, s))
	}
	if entry.Notes != "" {
		parts = append(parts, s.empty.Render(fmt.Sprintf("%q", entry.Notes)))
	}
	if pending > 0 {
		parts = append(parts, s.warning.Render("[syncing]"))
	}
	return strings.Join(parts, " ")
}

func changeLabel(field, before, after string, changed bool, s styles) string {
	if !changed || before == "" {
		return s.detail.Render(fmt.Sprintf("%s: %s", field, after))
	}
	return s.changed.Render(fmt.Sprintf("%s: %s -> %s", field, before, after))
}

func renderBorrows(borrows []domain.BorrowRecord, opts RenderOptions, s styles) string {
	lines := []string{s.header.Render(fmt.Sprintf("borrows: %d", len(borrows)))}
	for _, record := range borrows {
		line := fmt.Sprintf("%s  %s  %d item(s)  due %s", shortID(record.TransactionID), record.Borrower, len(record.Items), formatDue(record.ExpectedReturnAt, opts.Now))
		switch {
		case !record.Open():
			line = s.empty.Render(line + "  returned")
		case record.IsOverdue(opts.Now):
			line = s.detail.Render(line) + " " + s.warning.Render("[overdue]")
		default:
			line = s.detail.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDue(due, now time.Time) string {
	if due.IsZero() {
		return "open-ended"
	}
	if now.IsZero() {
		return due.Format("02 Jan 15:04")
	}

	remaining := due.Sub(now)
	if remaining < 0 {
		return due.Format("02 Jan 15:04")
	}
	if remaining < 24*time.Hour {
		hours := max(1, int(math.Ceil(remaining.Hours())))
		return fmt.Sprintf("in %dh (%s)", hours, due.Format("15:04"))
	}
	days := max(1, int(math.Ceil(remaining.Hours()/24)))
	return fmt.Sprintf("in %dd (%s)", days, due.Format("02 Jan"))
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the 240-255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
