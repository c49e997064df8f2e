// Package httpapi talks to the inventory REST service.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/invscan/internal/adapters/inventory/wire"
	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
)

const maxResponseBytes = 4 << 20

// Client implements ports.InventoryService over HTTP. The zero value is not
// usable; BaseURL is required.
type Client struct {
	BaseURL        string
	Token          string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.InventoryService = Client{}

// StatusError is a non-2xx response that maps to no domain error.
type StatusError struct {
	Op      string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
}

func (c Client) ListItems(ctx context.Context) ([]domain.Item, error) {
	var products []wire.Product
	if err := c.doJSON(ctx, "list products", http.MethodGet, wire.PathProducts, nil, &products); err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(products))
	for _, product := range products {
		items = append(items, product.ToItem())
	}
	return items, nil
}

func (c Client) AddToCart(ctx context.Context, code string) (ports.CartAddResult, error) {
	form := url.Values{}
	form.Set("action", wire.ActionAddToCart)
	form.Set("qr_code", code)

	var resp wire.CartResponse
	if err := c.postScanner(ctx, "add to cart", form, &resp); err != nil {
		return ports.CartAddResult{}, err
	}
	if resp.Product == nil {
		return ports.CartAddResult{}, errors.New("add to cart: response missing product")
	}

	return ports.CartAddResult{Item: resp.Product.ToItem(), CartCount: resp.CartCount}, nil
}

func (c Client) RemoveFromCart(ctx context.Context, id domain.ItemID) error {
	form := url.Values{}
	form.Set("action", wire.ActionRemoveFromCart)
	form.Set("product_id", strconv.FormatInt(int64(id), 10))

	var resp wire.ErrorResponse
	return c.postScanner(ctx, "remove from cart", form, &resp)
}

func (c Client) Checkout(ctx context.Context, req ports.CheckoutRequest) (string, error) {
	if strings.TrimSpace(req.Borrower) == "" {
		return "", errors.New("checkout: borrower is required")
	}

	form := url.Values{}
	form.Set("action", wire.ActionCheckout)
	form.Set("borrower", req.Borrower)
	if !req.ExpectedReturnAt.IsZero() {
		form.Set("expected_return_at", wire.FormatTime(req.ExpectedReturnAt))
	}

	var resp wire.CheckoutResponse
	if err := c.postScanner(ctx, "checkout", form, &resp); err != nil {
		return "", err
	}
	if resp.TransactionID == "" {
		return "", errors.New("checkout: response missing transaction id")
	}
	return resp.TransactionID, nil
}

func (c Client) FindActiveBorrow(ctx context.Context, code string) (domain.BorrowRecord, error) {
	path := wire.PathActiveBorrow + "?" + url.Values{"qr_code": {code}}.Encode()

	var resp wire.BorrowResponse
	if err := c.doJSON(ctx, "find active borrow", http.MethodGet, path, nil, &resp); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return domain.BorrowRecord{}, fmt.Errorf("find active borrow %q: %w", code, domain.ErrNoActiveBorrow)
		}
		return domain.BorrowRecord{}, err
	}
	if resp.Borrow == nil || resp.Borrow.TransactionID == "" {
		return domain.BorrowRecord{}, fmt.Errorf("find active borrow %q: %w", code, domain.ErrNoActiveBorrow)
	}

	return resp.Borrow.ToRecord(), nil
}

// ReturnItem posts the return form. The form answers with a redirect or an
// HTML page, so success is read from the redirect target or the page body.
func (c Client) ReturnItem(ctx context.Context, code string, transactionID string) error {
	form := url.Values{}
	form.Set("qr_code", code)
	if transactionID != "" {
		form.Set("transaction_id", transactionID)
	}

	noRedirect := *c.httpClient()
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := c.send(ctx, "return item", http.MethodPost, wire.PathReturn, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &noRedirect)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	return returnOutcome(resp)
}

func (c Client) ListSessionEntries(ctx context.Context, sessionID domain.InventorySessionID) (domain.InventorySession, error) {
	var resp wire.SessionItemsResponse
	if err := c.doJSON(ctx, "list session entries", http.MethodGet, sessionPath(wire.PathSessionItems, sessionID, 0), nil, &resp); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return domain.InventorySession{}, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotFound)
		}
		return domain.InventorySession{}, err
	}

	id := domain.InventorySessionID(resp.Inventory.ID)
	if id == "" {
		id = sessionID
	}
	session := domain.InventorySession{ID: id, Name: resp.Inventory.Name, Entries: map[domain.ItemID]domain.SessionEntry{}}
	for _, entry := range resp.Items {
		session.Apply(entry.ToSessionEntry())
	}
	return session, nil
}

func (c Client) ScanInSession(ctx context.Context, sessionID domain.InventorySessionID, qrData string) (domain.Item, error) {
	var resp wire.ScanResponse
	body := wire.ScanRequest{QRData: qrData}
	if err := c.doJSON(ctx, "scan in session", http.MethodPost, sessionPath(wire.PathSessionScan, sessionID, 0), body, &resp); err != nil {
		return domain.Item{}, err
	}
	if resp.Product.ID == 0 {
		return domain.Item{}, fmt.Errorf("scan %q: %w", qrData, domain.ErrItemNotFound)
	}
	return resp.Product.ToItem(), nil
}

func (c Client) SetChecked(ctx context.Context, sessionID domain.InventorySessionID, itemID domain.ItemID, checked bool) (ports.CheckResult, error) {
	var resp wire.CheckResponse
	body := wire.CheckRequest{Checked: checked}
	if err := c.doJSON(ctx, "check item", http.MethodPost, sessionPath(wire.PathSessionCheck, sessionID, itemID), body, &resp); err != nil {
		return ports.CheckResult{}, err
	}
	return ports.CheckResult{Checked: resp.Checked, CheckedAt: wire.ParseTime(resp.CheckedAt)}, nil
}

func (c Client) UpdateEntry(ctx context.Context, sessionID domain.InventorySessionID, entry domain.SessionEntry) (domain.SessionEntry, error) {
	var resp wire.UpdateResponse
	body := wire.UpdateRequest{
		Checked:      entry.Checked,
		Notes:        entry.Notes,
		NewLocation:  entry.NewLocation,
		NewCondition: entry.NewCondition,
	}
	if err := c.doJSON(ctx, "update entry", http.MethodPost, sessionPath(wire.PathSessionUpdate, sessionID, entry.ItemID), body, &resp); err != nil {
		return domain.SessionEntry{}, err
	}

	updated := resp.Item.ToSessionEntry()
	if updated.ItemID == 0 {
		updated.ItemID = entry.ItemID
	}
	return updated, nil
}

func (c Client) postScanner(ctx context.Context, op string, form url.Values, out interface{ Failed() (string, string, bool) }) error {
	return c.do(ctx, op, http.MethodPost, wire.PathBorrowScanner, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), out, func() error {
		if message, code, failed := out.Failed(); failed {
			return scannerError(op, code, message)
		}
		return nil
	})
}

func (c Client) doJSON(ctx context.Context, op string, method string, path string, body any, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, contentType, reader, out, nil)
}

func (c Client) do(ctx context.Context, op string, method string, path string, contentType string, body io.Reader, out any, check func() error) error {
	resp, err := c.send(ctx, op, method, path, contentType, body, c.httpClient())
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(op, resp)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	if check != nil {
		return check()
	}
	return nil
}

func (c Client) send(ctx context.Context, op string, method string, path string, contentType string, body io.Reader, client *http.Client) (*http.Response, error) {
	endpoint, err := buildAPIURL(c.BaseURL, path)
	if err != nil {
		return nil, err
	}

	requestCtx, cancel := c.requestContext(ctx)
	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, body)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := client.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

var returnErrorMarkers = []string{"alert-danger", `class="error"`, `"success":false`, `"success": false`}

func returnOutcome(resp *http.Response) error {
	const op = "return item"

	switch {
	case resp.StatusCode >= http.StatusMultipleChoices && resp.StatusCode < http.StatusBadRequest:
		target, err := resp.Location()
		if err != nil {
			return fmt.Errorf("%s: redirect without target: %w", op, err)
		}
		if message := target.Query().Get("error"); message != "" {
			return scannerError(op, "", message)
		}
		if strings.TrimSuffix(target.Path, "/") == wire.PathReturn {
			return fmt.Errorf("%s: redirected back to the return form", op)
		}
		return nil
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return fmt.Errorf("%s: read response: %w", op, err)
		}

		var payload wire.ErrorResponse
		if json.Unmarshal(data, &payload) == nil && (payload.Success || payload.Error != "") {
			if message, code, failed := payload.Failed(); failed {
				return scannerError(op, code, message)
			}
			return nil
		}

		body := string(data)
		for _, marker := range returnErrorMarkers {
			if strings.Contains(body, marker) {
				return fmt.Errorf("%s: return form reported an error", op)
			}
		}
		return nil
	default:
		return decodeError(op, resp)
	}
}

func decodeError(op string, resp *http.Response) error {
	var payload wire.ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err := json.Unmarshal(data, &payload); err != nil {
		payload.Error = strings.TrimSpace(string(data))
	}

	if sentinel := sentinelForCode(payload.Code); sentinel != nil {
		return fmt.Errorf("%s: %s: %w", op, payload.Error, sentinel)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %s: %w", op, payload.Error, domain.ErrItemNotFound)
	}
	return &StatusError{Op: op, Status: resp.StatusCode, Message: payload.Error}
}

func scannerError(op string, code string, message string) error {
	if sentinel := sentinelForCode(code); sentinel != nil {
		return fmt.Errorf("%s: %s: %w", op, message, sentinel)
	}
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "already in cart"), strings.Contains(lower, "bereits im warenkorb"):
		return fmt.Errorf("%s: %s: %w", op, message, domain.ErrAlreadyInCart)
	case strings.Contains(lower, "no active borrow"), strings.Contains(lower, "nicht ausgeliehen"):
		return fmt.Errorf("%s: %s: %w", op, message, domain.ErrNoActiveBorrow)
	case strings.Contains(lower, "not found"), strings.Contains(lower, "nicht gefunden"):
		return fmt.Errorf("%s: %s: %w", op, message, domain.ErrItemNotFound)
	}
	if message == "" {
		message = "request rejected"
	}
	return fmt.Errorf("%s: %s", op, message)
}

func sentinelForCode(code string) error {
	switch code {
	case wire.CodeAlreadyInCart:
		return domain.ErrAlreadyInCart
	case wire.CodeUnavailable:
		return domain.ErrItemUnavailable
	case wire.CodeNotFound:
		return domain.ErrItemNotFound
	default:
		return nil
	}
}

func sessionPath(template string, sessionID domain.InventorySessionID, itemID domain.ItemID) string {
	return strings.NewReplacer(
		"{session}", url.PathEscape(string(sessionID)),
		"{item}", strconv.FormatInt(int64(itemID), 10),
	).Replace(template)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("inventory base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse inventory base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("inventory base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("inventory base url host is required")
	}

	endpoint, err := parsed.Parse(strings.TrimSuffix(parsed.Path, "/") + path)
	if err != nil {
		return "", fmt.Errorf("parse inventory path: %w", err)
	}
	return endpoint.String(), nil
}
