package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

var ErrInputClosed = errors.New("terminal input closed")

// EntryUpdater applies an edit of a cycle-count entry.
type EntryUpdater interface {
	UpdateEntry(ctx context.Context, sessionID domain.InventorySessionID, itemID domain.ItemID, patch domain.EntryPatch) (domain.SessionEntry, error)
}

type Options struct {
	Out     io.Writer
	In      io.Reader
	Updater EntryUpdater
	Logger  *slog.Logger
}

// Terminal reports scan progress as lines of text and edits session entries
// through prompts. It serves as both Feedback and EntryDialog.
type Terminal struct {
	out     io.Writer
	updater EntryUpdater
	logger  *slog.Logger
	styles  styles

	writeMu  sync.Mutex
	promptMu sync.Mutex

	startInput sync.Once
	in         io.Reader
	lines      chan string

	manual  chan error
	dialogs sync.WaitGroup
}

var (
	_ ports.Feedback    = (*Terminal)(nil)
	_ ports.EntryDialog = (*Terminal)(nil)
)

func New(opts Options) *Terminal {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Terminal{
		out:     opts.Out,
		in:      opts.In,
		updater: opts.Updater,
		logger:  opts.Logger,
		styles:  newStyles(),
		manual:  make(chan error, 1),
	}
}

func (t *Terminal) Acknowledge(_ domain.Frame, payload string) {
	t.println(t.styles.ack.Render("scanned") + " " + sanitize(payload))
}

func (t *Terminal) Notify(notice domain.Notice) {
	label := t.styles.ok.Render("ok")
	if notice.Level == domain.NoticeError {
		label = t.styles.fail.Render("error")
	}
	prefix := ""
	if notice.Mode != "" {
		prefix = t.styles.mode.Render("["+string(notice.Mode)+"]") + " "
	}
	line := prefix + label + " " + sanitize(notice.Message)
	if notice.Level == domain.NoticeError && notice.Result != nil && !notice.Result.Resolved() {
		line += t.styles.hint.Render(" (code " + sanitize(notice.Result.Payload.Forward()) + ")")
	}
	t.println(line)
}

// OfferManualEntry announces that codes must be typed from now on. The
// first cause is delivered on ManualEntry.
func (t *Terminal) OfferManualEntry(cause error) {
	t.println(t.styles.fail.Render("camera unavailable") + ": " + sanitize(errString(cause)))
	t.println(t.styles.hint.Render("type a code and press enter, empty line to finish"))

	select {
	case t.manual <- cause:
	default:
	}
}

// ManualEntry yields the device error that made the camera unusable.
func (t *Terminal) ManualEntry() <-chan error {
	return t.manual
}

// ReadLine prompts and waits for one line of input.
func (t *Terminal) ReadLine(ctx context.Context, prompt string) (string, error) {
	t.promptMu.Lock()
	defer t.promptMu.Unlock()

	return t.readLocked(ctx, prompt)
}

// Open edits the scanned entry in the background and calls onClose once the
// prompts are answered or abandoned.
func (t *Terminal) Open(ctx context.Context, req ports.EntryEditRequest, onClose func()) {
	t.dialogs.Add(1)
	go func() {
		defer t.dialogs.Done()
		defer onClose()

		if err := t.edit(ctx, req); err != nil {
			if ctx.Err() == nil && !errors.Is(err, ErrInputClosed) {
				t.Notify(domain.Notice{Level: domain.NoticeError, Mode: domain.ModeCycleCount, Message: err.Error(), Err: err})
			}
			t.logger.Debug("entry dialog closed", "item", req.Item.ID, "error", err)
		}
	}()
}

// WaitDialogs blocks until every open entry dialog has closed.
func (t *Terminal) WaitDialogs() {
	t.dialogs.Wait()
}

func (t *Terminal) edit(ctx context.Context, req ports.EntryEditRequest) error {
	if t.in == nil || t.updater == nil {
		return nil
	}

	t.promptMu.Lock()
	patch, err := t.promptPatch(ctx, req)
	t.promptMu.Unlock()
	if err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}

	updated, err := t.updater.UpdateEntry(ctx, req.SessionID, req.Item.ID, patch)
	if err != nil {
		return fmt.Errorf("update item %d: %w", req.Item.ID, err)
	}

	t.Notify(domain.Notice{
		Level:   domain.NoticeSuccess,
		Mode:    domain.ModeCycleCount,
		Message: fmt.Sprintf("item %d updated (location %q, condition %q)", updated.ItemID, updated.NewLocation, updated.NewCondition),
	})
	return nil
}

func (t *Terminal) promptPatch(ctx context.Context, req ports.EntryEditRequest) (domain.EntryPatch, error) {
	name := req.Item.Name
	if name == "" {
		name = fmt.Sprintf("item %d", req.Item.ID)
	}
	t.println(t.styles.title.Render("Edit "+sanitize(name)) + t.styles.hint.Render("  (enter keeps the current value)"))

	var patch domain.EntryPatch
	location, err := t.readLocked(ctx, fieldPrompt("location", current(req.Entry.NewLocation, req.Item.Location)))
	if err != nil {
		return patch, err
	}
	if location != "" {
		patch.NewLocation = &location
	}

	condition, err := t.readLocked(ctx, fieldPrompt("condition", current(req.Entry.NewCondition, req.Item.Condition)))
	if err != nil {
		return patch, err
	}
	if condition != "" {
		patch.NewCondition = &condition
	}

	notes, err := t.readLocked(ctx, fieldPrompt("notes", req.Entry.Notes))
	if err != nil {
		return patch, err
	}
	if notes != "" {
		patch.Notes = &notes
	}

	return patch, nil
}

func (t *Terminal) readLocked(ctx context.Context, prompt string) (string, error) {
	if t.in == nil {
		return "", ErrInputClosed
	}
	t.startInput.Do(t.pump)

	if prompt != "" {
		t.print(prompt)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			return "", ErrInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

func (t *Terminal) pump() {
	t.lines = make(chan string)
	go func() {
		defer close(t.lines)

		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			t.lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			t.logger.Warn("read terminal input", "error", err)
		}
	}()
}

func (t *Terminal) println(line string) {
	t.print(line + "\n")
}

func (t *Terminal) print(text string) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	_, _ = io.WriteString(t.out, text)
}

func fieldPrompt(field string, value string) string {
	if value == "" {
		return field + ": "
	}
	return fmt.Sprintf("%s [%s]: ", field, sanitize(value))
}

func current(edited string, original string) string {
	if edited != "" {
		return edited
	}
	return original
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

func sanitize(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}

type styles struct {
	title lipgloss.Style
	ack   lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
	mode  lipgloss.Style
	hint  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true),
		ack:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		fail:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		mode:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		hint:  lipgloss.NewStyle().Faint(true),
	}
}
